package reporting

import (
	"context"
	"log/slog"
	"time"
)

// Scheduler triggers a report run on a fixed interval.
// Each tick is independent: a report reads the latest reference timestamp on its own.
type Scheduler struct {
	interval time.Duration
	tracker  *Tracker
}

// NewScheduler creates a periodic report scheduler.
func NewScheduler(interval time.Duration, tracker *Tracker) *Scheduler {
	return &Scheduler{interval: interval, tracker: tracker}
}

// Start triggers one report immediately and then one per interval.
// Runs until context is cancelled. In-flight runs are drained by Tracker.Shutdown.
func (s *Scheduler) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	slog.Info("[Scheduler] Starting periodic report scheduler", "interval", s.interval)

	s.trigger()

	for {
		select {
		case <-ticker.C:
			s.trigger()
		case <-ctx.Done():
			slog.Info("[Scheduler] Stopping (context cancelled)")
			return nil
		}
	}
}

func (s *Scheduler) trigger() {
	id, err := s.tracker.Trigger()
	if err != nil {
		slog.Warn("[Scheduler] Periodic report skipped", "error", err)
		return
	}
	slog.Info("[Scheduler] Periodic report started", "report_id", id)
}
