package mocks

//go:generate mockery --name ReportSource --srcpkg github.com/storepulse/storepulse/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
