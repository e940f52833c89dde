package ingestion

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/storepulse/storepulse/internal/core/storage"
)

const defaultBatchSize = 10_000

// Paths names the three source files. An empty path skips that source.
type Paths struct {
	StoreStatus string
	MenuHours   string
	Timezones   string
}

// Summary counts the rows loaded per table.
type Summary struct {
	Observations  int64
	BusinessHours int64
	Timezones     int64
}

// Loader streams CSV exports into storage in fixed-size COPY batches.
// Each batch commits on its own, so a malformed row stops the load but keeps earlier batches.
type Loader struct {
	writer    storage.BulkWriter
	batchSize int
}

func NewLoader(writer storage.BulkWriter, batchSize int) *Loader {
	if writer == nil {
		panic("ingestion: writer must not be nil")
	}
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &Loader{writer: writer, batchSize: batchSize}
}

// LoadAll loads every configured file in dependency-free order.
func (l *Loader) LoadAll(ctx context.Context, paths Paths) (Summary, error) {
	var (
		summary Summary
		err     error
	)
	if summary.Observations, err = l.loadFile(ctx, paths.StoreStatus, l.LoadObservations); err != nil {
		return summary, err
	}
	if summary.BusinessHours, err = l.loadFile(ctx, paths.MenuHours, l.LoadBusinessHours); err != nil {
		return summary, err
	}
	if summary.Timezones, err = l.loadFile(ctx, paths.Timezones, l.LoadTimezones); err != nil {
		return summary, err
	}
	return summary, nil
}

func (l *Loader) loadFile(
	ctx context.Context,
	path string,
	load func(ctx context.Context, r io.Reader, source string) (int64, error),
) (int64, error) {
	if path == "" {
		return 0, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	started := time.Now()
	n, err := load(ctx, f, path)
	if err != nil {
		return n, err
	}
	slog.Info("[Ingest] File loaded", "file", path, "rows", n, "duration", time.Since(started))
	return n, nil
}

// LoadObservations reads store_id, status and timestamp_utc columns.
func (l *Loader) LoadObservations(ctx context.Context, r io.Reader, source string) (int64, error) {
	return loadBatches(ctx, r, source, l.batchSize,
		[]column{{"store_id"}, {"status"}, {"timestamp_utc"}},
		parseObservation, l.writer.CopyObservations)
}

// LoadBusinessHours reads store_id, dayOfWeek, start_time_local and end_time_local columns.
func (l *Loader) LoadBusinessHours(ctx context.Context, r io.Reader, source string) (int64, error) {
	return loadBatches(ctx, r, source, l.batchSize,
		[]column{{"store_id"}, dayOfWeekColumn, {"start_time_local"}, {"end_time_local"}},
		parseBusinessHour, l.writer.CopyBusinessHours)
}

// LoadTimezones reads store_id and timezone_str columns.
func (l *Loader) LoadTimezones(ctx context.Context, r io.Reader, source string) (int64, error) {
	return loadBatches(ctx, r, source, l.batchSize,
		[]column{{"store_id"}, {"timezone_str"}},
		parseTimezone, l.writer.CopyTimezones)
}

// column lists the accepted header names for one field; the first is reported when none is present.
type column []string

var dayOfWeekColumn = column{"dayofweek", "day_of_week", "day"}

// record is one CSV line addressed by lower-cased header name.
type record struct {
	columns map[string]int
	fields  []string
}

// get returns the first present column among names.
func (r record) get(names ...string) string {
	for _, name := range names {
		if i, ok := r.columns[name]; ok && i < len(r.fields) {
			return r.fields[i]
		}
	}
	return ""
}

func loadBatches[T any](
	ctx context.Context,
	r io.Reader,
	source string,
	batchSize int,
	required []column,
	parse func(record) (T, error),
	flush func(context.Context, []T) (int64, error),
) (int64, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%s: read header: %w", source, err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}
	for _, col := range required {
		if !hasAny(columns, col) {
			return 0, fmt.Errorf("%s: missing column %q", source, col[0])
		}
	}

	var (
		total int64
		batch = make([]T, 0, batchSize)
	)
	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return total, fmt.Errorf("%s: %w", source, err)
		}

		line, _ := reader.FieldPos(0)
		row, err := parse(record{columns: columns, fields: fields})
		if err != nil {
			return total, fmt.Errorf("%s line %d: %w", source, line, err)
		}
		batch = append(batch, row)

		if len(batch) == batchSize {
			n, err := flush(ctx, batch)
			if err != nil {
				return total, fmt.Errorf("%s: %w", source, err)
			}
			total += n
			batch = batch[:0]
		}
	}

	if len(batch) > 0 {
		n, err := flush(ctx, batch)
		if err != nil {
			return total, fmt.Errorf("%s: %w", source, err)
		}
		total += n
	}
	return total, nil
}

func hasAny(columns map[string]int, names column) bool {
	for _, name := range names {
		if _, ok := columns[name]; ok {
			return true
		}
	}
	return false
}
