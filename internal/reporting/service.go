package reporting

import (
	"github.com/gin-gonic/gin"
)

// Service exposes report generation over HTTP.
type Service struct {
	tracker *Tracker
}

func NewService(tracker *Tracker) *Service {
	if tracker == nil {
		panic("reporting: tracker must not be nil")
	}
	return &Service{tracker: tracker}
}

// RegisterRoutes registers the report routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	// Canonical report endpoints.
	r.POST("/v1/reports", s.TriggerHandler)
	r.GET("/v1/reports/:report_id", s.StatusHandler)
	r.GET("/v1/reports/:report_id/file", s.DownloadHandler)

	// Backward-compatible aliases. Can be removed after clients migrate.
	r.POST("/trigger_report", s.TriggerHandler)
	r.GET("/get_report/:report_id", s.StatusHandler)
}
