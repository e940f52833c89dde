package storage

import (
	"context"
	"errors"
	"time"

	v1 "github.com/storepulse/storepulse/internal/api/v1"
	"github.com/storepulse/storepulse/internal/core/schedule"
)

// ErrNoObservations is returned when the observation table is empty and no reference timestamp exists.
var ErrNoObservations = errors.New("no observations stored")

// ObservationStore reads polled store statuses.
type ObservationStore interface {
	// MaxObservationTime returns the latest stored timestamp (UTC). It is the report's "now".
	// Returns ErrNoObservations when nothing is stored.
	MaxObservationTime(ctx context.Context) (time.Time, error)

	// ObservationsSince returns every observation with timestamp >= since, for all stores,
	// in one round trip, ordered by store_id then timestamp ascending.
	ObservationsSince(ctx context.Context, since time.Time) ([]v1.Observation, error)
}

// ScheduleStore reads business-hour rules.
type ScheduleStore interface {
	// BusinessHours returns all rules for all stores with time-of-day values normalized.
	// A value that cannot be normalized is an error, never a dropped rule.
	BusinessHours(ctx context.Context) ([]schedule.Rule, error)
}

// TimezoneStore reads store timezones.
type TimezoneStore interface {
	Timezones(ctx context.Context) ([]v1.StoreTimezone, error)
}

// ReportSource is everything the report generator reads.
type ReportSource interface {
	ObservationStore
	ScheduleStore
	TimezoneStore
}

// BulkWriter loads source rows into storage. Each call is one transaction.
type BulkWriter interface {
	CopyObservations(ctx context.Context, rows []v1.Observation) (int64, error)
	CopyBusinessHours(ctx context.Context, rows []schedule.Rule) (int64, error)
	CopyTimezones(ctx context.Context, rows []v1.StoreTimezone) (int64, error)
}
