package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lib/pq"
	v1 "github.com/storepulse/storepulse/internal/api/v1"
	"github.com/storepulse/storepulse/internal/core/schedule"
)

var (
	observationColumns   = []string{"store_id", "timestamp_utc", "status"}
	businessHourColumns  = []string{"store_id", "day_of_week", "start_time_local", "end_time_local"}
	storeTimezoneColumns = []string{"store_id", "timezone_str"}
)

// CopyObservations bulk-loads observations with COPY in one transaction.
// Timestamps are written as UTC wall clock into the zone-less column.
func (a *Adapter) CopyObservations(ctx context.Context, rows []v1.Observation) (int64, error) {
	return a.copyIn(ctx, "store_status", observationColumns, len(rows), func(i int) []interface{} {
		return []interface{}{rows[i].StoreID, rows[i].TimestampUTC.UTC(), string(rows[i].Status)}
	})
}

// CopyBusinessHours bulk-loads business-hour rules with COPY in one transaction.
func (a *Adapter) CopyBusinessHours(ctx context.Context, rows []schedule.Rule) (int64, error) {
	return a.copyIn(ctx, "business_hours", businessHourColumns, len(rows), func(i int) []interface{} {
		return []interface{}{rows[i].StoreID, rows[i].DayOfWeek, rows[i].Start.String(), rows[i].End.String()}
	})
}

// CopyTimezones bulk-loads store timezones with COPY in one transaction.
func (a *Adapter) CopyTimezones(ctx context.Context, rows []v1.StoreTimezone) (int64, error) {
	return a.copyIn(ctx, "store_timezone", storeTimezoneColumns, len(rows), func(i int) []interface{} {
		return []interface{}{rows[i].StoreID, rows[i].TimezoneStr}
	})
}

// copyIn streams n rows into table. Either every row lands or none does.
func (a *Adapter) copyIn(
	ctx context.Context,
	table string,
	columns []string,
	n int,
	row func(i int) []interface{},
) (int64, error) {
	if n == 0 {
		return 0, nil
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("copy %s: begin tx: %w", table, err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn(table, columns...))
	if err != nil {
		return 0, fmt.Errorf("copy %s: prepare: %w", table, err)
	}

	for i := 0; i < n; i++ {
		if _, err := stmt.ExecContext(ctx, row(i)...); err != nil {
			stmt.Close()
			return 0, fmt.Errorf("copy %s: row %d: %w", table, i, err)
		}
	}

	// An Exec without arguments flushes the buffered COPY data.
	if _, err := stmt.ExecContext(ctx); err != nil {
		stmt.Close()
		return 0, fmt.Errorf("copy %s: flush: %w", table, err)
	}
	if err := stmt.Close(); err != nil {
		return 0, fmt.Errorf("copy %s: close: %w", table, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("copy %s: commit: %w", table, err)
	}

	slog.Info("[Postgres] Copied rows", "table", table, "rows", n)
	return int64(n), nil
}
