package reporting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/maypok86/otter/v2"
)

const (
	defaultJobTTL      = 24 * time.Hour
	finishedJobsMaxLen = 10_000
)

var (
	// ErrNotFound is returned for a report id that was never issued or has expired.
	ErrNotFound = errors.New("report not found")
	// ErrShuttingDown is returned by Trigger once the tracker stops accepting runs.
	ErrShuttingDown = errors.New("report tracker is shutting down")
)

// Status is the lifecycle state of a report job.
type Status string

const (
	StatusRunning  Status = "Running"
	StatusComplete Status = "Complete"
	StatusFailed   Status = "Failed"
)

// Job is a snapshot of one report run.
type Job struct {
	ID         string
	Status     Status
	File       string
	Error      string
	StartedAt  time.Time
	FinishedAt time.Time
}

// Runner produces the report file for an id and returns its path.
type Runner interface {
	Generate(ctx context.Context, reportID string) (string, error)
}

// Tracker runs reports in the background and remembers their outcome.
// Running jobs are held until they finish; finished jobs expire after the configured TTL.
type Tracker struct {
	runner  Runner
	baseCtx context.Context

	mu      sync.Mutex
	running map[string]Job
	closed  bool

	finished *otter.Cache[string, Job]
	wg       sync.WaitGroup
	newID    func() string
	nowFn    func() time.Time
}

// NewTracker creates a tracker whose runs inherit ctx, so cancelling it stops
// in-flight loads during shutdown.
func NewTracker(ctx context.Context, runner Runner, ttl time.Duration) *Tracker {
	if runner == nil {
		panic("reporting: runner must not be nil")
	}
	if ttl <= 0 {
		ttl = defaultJobTTL
	}
	return &Tracker{
		runner:  runner,
		baseCtx: ctx,
		running: make(map[string]Job),
		finished: otter.Must(&otter.Options[string, Job]{
			MaximumSize:      finishedJobsMaxLen,
			InitialCapacity:  64,
			ExpiryCalculator: otter.ExpiryWriting[string, Job](ttl),
		}),
		newID: uuid.NewString,
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Trigger starts a new report run and returns its id immediately.
// It returns ErrShuttingDown after the base context is cancelled or Shutdown was called.
func (t *Tracker) Trigger() (string, error) {
	job := Job{
		ID:        t.newID(),
		Status:    StatusRunning,
		StartedAt: t.nowFn(),
	}

	// wg.Add happens under mu so it can never race with Shutdown's wg.Wait.
	t.mu.Lock()
	if t.closed || t.baseCtx.Err() != nil {
		t.mu.Unlock()
		return "", ErrShuttingDown
	}
	t.running[job.ID] = job
	t.wg.Add(1)
	t.mu.Unlock()

	slog.Info("[ReportTracker] Report triggered", "report_id", job.ID)

	go t.run(job)
	return job.ID, nil
}

// Get returns the current snapshot of a job.
func (t *Tracker) Get(reportID string) (Job, error) {
	t.mu.Lock()
	job, ok := t.running[reportID]
	t.mu.Unlock()
	if ok {
		return job, nil
	}

	if job, ok := t.finished.GetIfPresent(reportID); ok {
		return job, nil
	}
	return Job{}, fmt.Errorf("%w: %s", ErrNotFound, reportID)
}

// Shutdown stops accepting new runs and blocks until every triggered run has finished.
// Finished jobs stay readable through Get.
func (t *Tracker) Shutdown() {
	t.mu.Lock()
	t.closed = true
	t.mu.Unlock()

	t.wg.Wait()
}

func (t *Tracker) run(job Job) {
	defer t.wg.Done()

	path, err := t.generate(job.ID)

	job.FinishedAt = t.nowFn()
	if err != nil {
		job.Status = StatusFailed
		job.Error = err.Error()
		slog.Error("[ReportTracker] Report failed",
			"report_id", job.ID,
			"error", err,
			"duration", job.FinishedAt.Sub(job.StartedAt),
		)
	} else {
		job.Status = StatusComplete
		job.File = path
		slog.Info("[ReportTracker] Report complete",
			"report_id", job.ID,
			"file", path,
			"duration", job.FinishedAt.Sub(job.StartedAt),
		)
	}

	// Publish to the finished cache before dropping the running entry so Get never misses.
	t.finished.Set(job.ID, job)
	t.mu.Lock()
	delete(t.running, job.ID)
	t.mu.Unlock()
}

// generate converts a panic in the runner into a failed job; the process keeps serving.
func (t *Tracker) generate(reportID string) (path string, err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("[ReportTracker] Report panicked", "report_id", reportID, "panic", r, "stack", string(debug.Stack()))
			err = fmt.Errorf("report generation panicked: %v", r)
		}
	}()
	return t.runner.Generate(t.baseCtx, reportID)
}
