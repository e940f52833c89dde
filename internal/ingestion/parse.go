package ingestion

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	v1 "github.com/storepulse/storepulse/internal/api/v1"
	"github.com/storepulse/storepulse/internal/core/schedule"
)

// Source exports write timestamps as "2023-01-22 12:09:39.388884 UTC".
var timestampLayouts = []string{
	"2006-01-02 15:04:05.999999999 UTC",
	"2006-01-02 15:04:05.999999999",
	time.RFC3339Nano,
}

func parseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range timestampLayouts {
		if ts, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", raw)
}

func parseObservation(rec record) (v1.Observation, error) {
	ts, err := parseTimestamp(rec.get("timestamp_utc"))
	if err != nil {
		return v1.Observation{}, err
	}
	status, err := v1.ParseStatus(rec.get("status"))
	if err != nil {
		return v1.Observation{}, err
	}
	obs := v1.Observation{
		StoreID:      strings.TrimSpace(rec.get("store_id")),
		TimestampUTC: ts,
		Status:       status,
	}
	if err := obs.Validate(); err != nil {
		return v1.Observation{}, err
	}
	return obs, nil
}

func parseBusinessHour(rec record) (schedule.Rule, error) {
	storeID := strings.TrimSpace(rec.get("store_id"))
	if storeID == "" {
		return schedule.Rule{}, fmt.Errorf("store_id is required")
	}

	day, err := strconv.Atoi(strings.TrimSpace(rec.get(dayOfWeekColumn...)))
	if err != nil {
		return schedule.Rule{}, fmt.Errorf("invalid day of week: %w", err)
	}
	if day < 0 || day >= schedule.DaysPerWeek {
		return schedule.Rule{}, fmt.Errorf("day of week %d out of range 0..6", day)
	}

	start, err := schedule.ParseTimeOfDay(rec.get("start_time_local"))
	if err != nil {
		return schedule.Rule{}, fmt.Errorf("start_time_local: %w", err)
	}
	end, err := schedule.ParseTimeOfDay(rec.get("end_time_local"))
	if err != nil {
		return schedule.Rule{}, fmt.Errorf("end_time_local: %w", err)
	}

	return schedule.Rule{StoreID: storeID, DayOfWeek: day, Start: start, End: end}, nil
}

func parseTimezone(rec record) (v1.StoreTimezone, error) {
	tz := v1.StoreTimezone{
		StoreID:     strings.TrimSpace(rec.get("store_id")),
		TimezoneStr: strings.TrimSpace(rec.get("timezone_str")),
	}
	if tz.StoreID == "" {
		return v1.StoreTimezone{}, fmt.Errorf("store_id is required")
	}
	if tz.TimezoneStr == "" {
		return v1.StoreTimezone{}, fmt.Errorf("timezone_str is required")
	}
	return tz, nil
}
