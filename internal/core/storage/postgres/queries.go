package postgres

// SQL queries for the report read path. Each one is a single bulk read so the number of
// round trips per report does not depend on the number of stores.

const (
	// queryMaxObservationTime is the report's reference timestamp.
	// MAX over an empty table returns one NULL row.
	queryMaxObservationTime = `
		SELECT MAX(timestamp_utc)
		FROM store_status
	`

	// queryObservationsSince loads the widest trailing window for all stores.
	// Ordering by store first lets the caller partition the result in one pass.
	queryObservationsSince = `
		SELECT store_id, timestamp_utc, status
		FROM store_status
		WHERE timestamp_utc >= $1
		ORDER BY store_id ASC, timestamp_utc ASC
	`

	queryBusinessHours = `
		SELECT store_id, day_of_week, start_time_local, end_time_local
		FROM business_hours
		ORDER BY store_id ASC, day_of_week ASC, start_time_local ASC
	`

	queryTimezones = `
		SELECT store_id, timezone_str
		FROM store_timezone
	`

	querySchemaTables = `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_name IN ('store_status', 'business_hours', 'store_timezone')
	`
)

var requiredTables = []string{"store_status", "business_hours", "store_timezone"}
