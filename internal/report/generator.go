package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	v1 "github.com/storepulse/storepulse/internal/api/v1"
	"github.com/storepulse/storepulse/internal/core/partition"
	"github.com/storepulse/storepulse/internal/core/schedule"
	"github.com/storepulse/storepulse/internal/core/storage"
	"github.com/storepulse/storepulse/internal/core/timezone"
	"github.com/storepulse/storepulse/internal/core/uptime"
	"golang.org/x/sync/errgroup"
)

const defaultWorkerCount = 8

// Options controls where reports land and how much parallelism a run uses.
type Options struct {
	OutputDir       string
	WorkerCount     int
	DefaultTimezone string
}

func (o Options) normalized() Options {
	n := o
	if n.OutputDir == "" {
		n.OutputDir = "reports"
	}
	if n.WorkerCount <= 0 {
		n.WorkerCount = defaultWorkerCount
	}
	if n.DefaultTimezone == "" {
		n.DefaultTimezone = timezone.DefaultZone
	}
	return n
}

// Generator produces one uptime report per call.
// It loads every source once, then fans per-store aggregation out to a bounded pool.
type Generator struct {
	source    storage.ReportSource
	locations *timezone.LocationCache
	writer    Writer
	opts      Options
}

// NewGenerator creates a report generator. A nil cache gets a private one.
func NewGenerator(
	source storage.ReportSource,
	locations *timezone.LocationCache,
	writer Writer,
	opts Options,
) *Generator {
	if source == nil {
		panic("report: source must not be nil")
	}
	if writer == nil {
		panic("report: writer must not be nil")
	}
	if locations == nil {
		locations = timezone.NewLocationCache()
	}
	return &Generator{
		source:    source,
		locations: locations,
		writer:    writer,
		opts:      opts.normalized(),
	}
}

// PathFor returns the output path of a report id.
func (g *Generator) PathFor(reportID string) string {
	return filepath.Join(g.opts.OutputDir, fmt.Sprintf("report_%s.%s", reportID, g.writer.Extension()))
}

// Generate computes the report and writes it to PathFor(reportID), returning the path.
func (g *Generator) Generate(ctx context.Context, reportID string) (string, error) {
	started := time.Now()

	rows, reference, err := g.Rows(ctx)
	if err != nil {
		return "", err
	}

	path := g.PathFor(reportID)
	if err := g.writer.Write(path, rows); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}

	slog.Info("[ReportGenerator] Report written",
		"report_id", reportID,
		"path", path,
		"stores", len(rows),
		"reference", reference,
		"duration", time.Since(started),
	)
	return path, nil
}

// Rows computes one row per store that has observations in the trailing week,
// ordered by store id, together with the reference timestamp used.
// An empty observation table yields no rows and a zero reference.
func (g *Generator) Rows(ctx context.Context) ([]v1.ReportRow, time.Time, error) {
	reference, err := g.source.MaxObservationTime(ctx)
	if errors.Is(err, storage.ErrNoObservations) {
		slog.Warn("[ReportGenerator] No observations stored, report will be empty")
		return nil, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("load reference timestamp: %w", err)
	}

	observations, err := g.source.ObservationsSince(ctx, uptime.ObservationHorizon(reference))
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("load observations: %w", err)
	}
	zones, err := g.source.Timezones(ctx)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("load timezones: %w", err)
	}
	rules, err := g.source.BusinessHours(ctx)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("load business hours: %w", err)
	}

	resolver, err := timezone.NewResolver(zones, g.opts.DefaultTimezone, g.locations)
	if err != nil {
		return nil, time.Time{}, err
	}
	book, err := schedule.NewBook(rules)
	if err != nil {
		return nil, time.Time{}, err
	}

	groups := partition.ByStore(observations)
	slog.Info("[ReportGenerator] Sources loaded",
		"reference", reference,
		"observations", len(observations),
		"stores", len(groups),
		"timezones", resolver.Len(),
		"scheduled_stores", book.Stores(),
		"workers", g.opts.WorkerCount,
		slog.Group("windows", uptime.LogAttrs()...),
	)

	rows := make([]v1.ReportRow, len(groups))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.opts.WorkerCount)
	for i := range groups {
		group := groups[i]
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			loc, err := resolver.Location(group.StoreID)
			if err != nil {
				return err
			}
			rows[i] = uptime.Compute(uptime.Input{
				StoreID:      group.StoreID,
				Observations: group.Observations,
				Location:     loc,
				Schedule:     book.Lookup(group.StoreID),
				Reference:    reference,
			}).Row()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, time.Time{}, fmt.Errorf("aggregate stores: %w", err)
	}

	return rows, reference, nil
}
