package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidTimeOfDay is returned when a business-hour value cannot be read as a local time of day.
var ErrInvalidTimeOfDay = errors.New("invalid time of day")

// TimeOfDay is a local wall-clock offset from midnight.
// Valid values are in [Midnight, EndOfDay]; EndOfDay is the exclusive end of a calendar day.
type TimeOfDay time.Duration

const (
	Midnight TimeOfDay = 0
	EndOfDay TimeOfDay = TimeOfDay(24 * time.Hour)

	// lastSecond is how "open until end of day" is usually written in source data.
	lastSecond TimeOfDay = EndOfDay - TimeOfDay(time.Second)
)

var timeOfDayLayouts = []string{
	"15:04:05.999999999",
	"15:04:05",
	"15:04",
}

// ParseTimeOfDay normalizes the representations storage drivers hand back for a
// time-of-day column: time.Time (date part ignored), time.Duration since midnight,
// or an "HH:MM[:SS[.ffffff]]" string or byte slice.
func ParseTimeOfDay(v any) (TimeOfDay, error) {
	switch val := v.(type) {
	case TimeOfDay:
		return checkRange(time.Duration(val), v)
	case time.Time:
		return clockOf(val), nil
	case time.Duration:
		return checkRange(val, v)
	case []byte:
		return parseClockString(string(val))
	case string:
		return parseClockString(val)
	case nil:
		return 0, fmt.Errorf("%w: value is NULL", ErrInvalidTimeOfDay)
	}
	return 0, fmt.Errorf("%w: unsupported type %T", ErrInvalidTimeOfDay, v)
}

// MustParseTimeOfDay is like ParseTimeOfDay but panics on error. Intended for tests and constants.
func MustParseTimeOfDay(v any) TimeOfDay {
	t, err := ParseTimeOfDay(v)
	if err != nil {
		panic(err)
	}
	return t
}

func parseClockString(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	if s == "24:00" || s == "24:00:00" {
		return EndOfDay, nil
	}
	for _, layout := range timeOfDayLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return clockOf(t), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
}

func checkRange(d time.Duration, raw any) (TimeOfDay, error) {
	if d < 0 || d > time.Duration(EndOfDay) {
		return 0, fmt.Errorf("%w: %v out of range", ErrInvalidTimeOfDay, raw)
	}
	return TimeOfDay(d), nil
}

func clockOf(t time.Time) TimeOfDay {
	h, m, s := t.Clock()
	return TimeOfDay(time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second +
		time.Duration(t.Nanosecond()))
}

// On materializes the time of day on the given local calendar date.
// Wall-clock fields go through time.Date so the day's own UTC offset applies (DST-safe).
// EndOfDay resolves to midnight of the following day.
func (t TimeOfDay) On(year int, month time.Month, day int, loc *time.Location) time.Time {
	d := time.Duration(t)
	h := int(d / time.Hour)
	d -= time.Duration(h) * time.Hour
	m := int(d / time.Minute)
	d -= time.Duration(m) * time.Minute
	s := int(d / time.Second)
	d -= time.Duration(s) * time.Second
	return time.Date(year, month, day, h, m, s, int(d), loc)
}

// String renders the value as HH:MM:SS.
func (t TimeOfDay) String() string {
	d := time.Duration(t)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
