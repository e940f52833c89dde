package schedule

import (
	"fmt"
	"time"
)

// DaysPerWeek is the number of weekday slots in a schedule (0=Monday .. 6=Sunday).
const DaysPerWeek = 7

// Rule is one stored business-hour row after time-of-day normalization.
type Rule struct {
	StoreID   string
	DayOfWeek int
	Start     TimeOfDay
	End       TimeOfDay
}

// OpenRange is one local time-of-day interval during which a store counts toward uptime/downtime.
// End <= Start means the range crosses midnight into the next calendar day.
type OpenRange struct {
	Start TimeOfDay
	End   TimeOfDay
}

// FullDay is the range used when a store has no rows for a weekday.
var FullDay = OpenRange{Start: Midnight, End: EndOfDay}

// NewOpenRange builds a range, reading a 23:59:59 end as "until the end of the day"
// so the last second is not lost.
func NewOpenRange(start, end TimeOfDay) OpenRange {
	if end == lastSecond && start < end {
		end = EndOfDay
	}
	return OpenRange{Start: start, End: end}
}

// CrossesMidnight reports whether the range spills into the following day.
func (r OpenRange) CrossesMidnight() bool {
	return r.End <= r.Start
}

// Segment is a concrete business-hours interval [Start, End).
type Segment struct {
	Start time.Time
	End   time.Time
}

// Segments materializes the range on one local calendar date.
// A midnight-crossing range becomes [start, midnight) on the date and
// [midnight, end) on the following date; the two halves share the midnight instant.
func (r OpenRange) Segments(year int, month time.Month, day int, loc *time.Location) []Segment {
	if !r.CrossesMidnight() {
		return []Segment{{
			Start: r.Start.On(year, month, day, loc),
			End:   r.End.On(year, month, day, loc),
		}}
	}

	segments := []Segment{{
		Start: r.Start.On(year, month, day, loc),
		End:   EndOfDay.On(year, month, day, loc),
	}}
	if r.End > Midnight {
		segments = append(segments, Segment{
			Start: Midnight.On(year, month, day+1, loc),
			End:   r.End.On(year, month, day+1, loc),
		})
	}
	return segments
}

func (r OpenRange) String() string {
	return r.Start.String() + "-" + r.End.String()
}

// Weekday converts a Go weekday (Sunday=0) to the schedule index (Monday=0).
func Weekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % DaysPerWeek
}

// Lookup returns the open ranges of one store for a weekday index.
type Lookup func(day int) []OpenRange

// Book holds every store's business-hour rules, keyed by store and weekday.
// It is read-only after construction and safe for concurrent use.
type Book struct {
	rules map[string][DaysPerWeek][]OpenRange
}

// NewBook indexes the rules. Rules with a weekday outside 0..6 are rejected.
func NewBook(rules []Rule) (*Book, error) {
	b := &Book{rules: make(map[string][DaysPerWeek][]OpenRange)}
	for _, r := range rules {
		if r.StoreID == "" {
			return nil, fmt.Errorf("business hours: store_id must not be empty")
		}
		if r.DayOfWeek < 0 || r.DayOfWeek >= DaysPerWeek {
			return nil, fmt.Errorf("business hours: store %s: day_of_week %d out of range 0-6", r.StoreID, r.DayOfWeek)
		}
		week := b.rules[r.StoreID]
		week[r.DayOfWeek] = append(week[r.DayOfWeek], NewOpenRange(r.Start, r.End))
		b.rules[r.StoreID] = week
	}
	return b, nil
}

// Resolve returns the store's open ranges for a weekday index.
// A weekday with no rules is open the whole day, even when other weekdays are configured.
func (b *Book) Resolve(storeID string, day int) []OpenRange {
	if b != nil {
		if week, ok := b.rules[storeID]; ok && day >= 0 && day < DaysPerWeek && len(week[day]) > 0 {
			return week[day]
		}
	}
	return []OpenRange{FullDay}
}

// Lookup binds Resolve to one store.
func (b *Book) Lookup(storeID string) Lookup {
	return func(day int) []OpenRange {
		return b.Resolve(storeID, day)
	}
}

// Stores returns the number of stores with at least one rule.
func (b *Book) Stores() int {
	if b == nil {
		return 0
	}
	return len(b.rules)
}
