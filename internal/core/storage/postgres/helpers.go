package postgres

import (
	"fmt"
	"time"

	v1 "github.com/storepulse/storepulse/internal/api/v1"
	"github.com/storepulse/storepulse/internal/core/schedule"
)

type scanner interface {
	Scan(dest ...interface{}) error
}

// asUTC re-tags a zone-less timestamp as UTC, keeping its wall clock.
// Columns are "timestamp without time zone" holding UTC instants; the driver may hand
// them back with an arbitrary fixed zone, so the zone is replaced rather than converted.
func asUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// scanObservationRow scans one store_status row.
// Compatible with both sql.Row (single) and sql.Rows (multiple).
func scanObservationRow(row scanner) (v1.Observation, error) {
	var (
		obs    v1.Observation
		ts     time.Time
		status string
	)
	if err := row.Scan(&obs.StoreID, &ts, &status); err != nil {
		return v1.Observation{}, fmt.Errorf("failed to scan observation row: %w", err)
	}

	parsed, err := v1.ParseStatus(status)
	if err != nil {
		return v1.Observation{}, fmt.Errorf("store %s at %s: %w", obs.StoreID, ts.Format(time.RFC3339), err)
	}
	obs.Status = parsed
	obs.TimestampUTC = asUTC(ts)
	return obs, nil
}

// scanBusinessHourRow scans one business_hours row. The time-of-day columns are scanned
// untyped because drivers return them as time.Time, string or []byte depending on the column type.
func scanBusinessHourRow(row scanner) (schedule.Rule, error) {
	var (
		rule       schedule.Rule
		start, end interface{}
	)
	if err := row.Scan(&rule.StoreID, &rule.DayOfWeek, &start, &end); err != nil {
		return schedule.Rule{}, fmt.Errorf("failed to scan business hours row: %w", err)
	}

	var err error
	if rule.Start, err = schedule.ParseTimeOfDay(start); err != nil {
		return schedule.Rule{}, fmt.Errorf("store %s day %d start_time_local: %w", rule.StoreID, rule.DayOfWeek, err)
	}
	if rule.End, err = schedule.ParseTimeOfDay(end); err != nil {
		return schedule.Rule{}, fmt.Errorf("store %s day %d end_time_local: %w", rule.StoreID, rule.DayOfWeek, err)
	}
	return rule, nil
}
