package uptime

import (
	"time"

	"github.com/shopspring/decimal"
	v1 "github.com/storepulse/storepulse/internal/api/v1"
	"github.com/storepulse/storepulse/internal/core/schedule"
)

// Input is everything needed to compute one store's report row.
// Compute treats it as read-only, so the same slices may be shared between goroutines.
type Input struct {
	StoreID string

	// Observations must be ascending by TimestampUTC. Entries older than
	// ObservationHorizon(Reference) are clipped.
	Observations []v1.Observation

	// Location is the store's local zone. Nil means UTC.
	Location *time.Location

	// Schedule returns the store's open ranges per weekday. Nil means always open.
	Schedule schedule.Lookup

	// Reference is the report's "now". Time after it never counts.
	Reference time.Time
}

// Totals is the uptime/downtime of one window in the window's unit.
type Totals struct {
	Uptime   decimal.Decimal
	Downtime decimal.Decimal
}

// Result is the per-store outcome for all windows.
type Result struct {
	StoreID  string
	LastHour Totals
	LastDay  Totals
	LastWeek Totals
}

func newResult(storeID string) Result {
	zero := Totals{Uptime: decimal.Zero, Downtime: decimal.Zero}
	return Result{StoreID: storeID, LastHour: zero, LastDay: zero, LastWeek: zero}
}

// Row renders the result as a report row.
func (r Result) Row() v1.ReportRow {
	return v1.ReportRow{
		StoreID:          r.StoreID,
		UptimeLastHour:   r.LastHour.Uptime.String(),
		DowntimeLastHour: r.LastHour.Downtime.String(),
		UptimeLastDay:    r.LastDay.Uptime.String(),
		DowntimeLastDay:  r.LastDay.Downtime.String(),
		UptimeLastWeek:   r.LastWeek.Uptime.String(),
		DowntimeLastWeek: r.LastWeek.Downtime.String(),
	}
}
