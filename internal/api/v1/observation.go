package v1

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidStatus is returned when a status literal is neither "active" nor "inactive".
var ErrInvalidStatus = errors.New("invalid store status")

// Status is the polled state of a store at one instant.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// ParseStatus normalizes a stored status literal.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusActive:
		return StatusActive, nil
	case StatusInactive:
		return StatusInactive, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// Observation is one poll result for a store.
// Observations are produced by an external poller and are read-only here.
type Observation struct {
	// StoreID identifies the monitored location.
	StoreID string `json:"store_id"`

	// TimestampUTC is the instant of the poll. Storage keeps it zone-less;
	// adapters re-tag it as UTC before handing it out.
	TimestampUTC time.Time `json:"timestamp_utc"`

	Status Status `json:"status"`
}

// Active reports whether the observed state counts toward uptime.
func (o Observation) Active() bool {
	return o.Status == StatusActive
}

// Validate ensures the observation has all required attributes.
func (o *Observation) Validate() error {
	if o.StoreID == "" {
		return fmt.Errorf("store_id is required")
	}
	if o.TimestampUTC.IsZero() {
		return fmt.Errorf("timestamp_utc is required")
	}
	if _, err := ParseStatus(string(o.Status)); err != nil {
		return err
	}
	return nil
}

// StoreTimezone maps a store to its IANA timezone name.
type StoreTimezone struct {
	StoreID     string `json:"store_id"`
	TimezoneStr string `json:"timezone_str"`
}

// ReportRow is one line of the uptime report.
// Hour-window figures are minutes, day and week figures are hours.
type ReportRow struct {
	StoreID          string `json:"store_id"`
	UptimeLastHour   string `json:"uptime_last_hour"`
	DowntimeLastHour string `json:"downtime_last_hour"`
	UptimeLastDay    string `json:"uptime_last_day"`
	DowntimeLastDay  string `json:"downtime_last_day"`
	UptimeLastWeek   string `json:"uptime_last_week"`
	DowntimeLastWeek string `json:"downtime_last_week"`
}

// ReportHeader is the column order of every serialized report.
var ReportHeader = []string{
	"store_id",
	"uptime_last_hour",
	"downtime_last_hour",
	"uptime_last_day",
	"downtime_last_day",
	"uptime_last_week",
	"downtime_last_week",
}

// Values returns the row's fields in ReportHeader order.
func (r ReportRow) Values() []string {
	return []string{
		r.StoreID,
		r.UptimeLastHour,
		r.DowntimeLastHour,
		r.UptimeLastDay,
		r.DowntimeLastDay,
		r.UptimeLastWeek,
		r.DowntimeLastWeek,
	}
}
