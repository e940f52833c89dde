package uptime

import (
	"time"

	"github.com/storepulse/storepulse/internal/core/schedule"
)

const (
	stateUp = iota
	stateDown
)

// accumulator holds exact per-window durations; scaling and rounding happen once at the end.
type accumulator [len(Windows)][2]time.Duration

// Compute estimates uptime and downtime during business hours for each trailing window.
//
// Every observation holds its state until the next observation; the last one holds
// until the reference timestamp. Only the parts of those validity intervals that fall
// inside the store's open ranges and inside a window count toward that window.
// Overlapping open ranges on the same day are summed as given.
//
// Compute is a pure function of its input and is safe to call concurrently.
func Compute(in Input) Result {
	result := newResult(in.StoreID)
	if len(in.Observations) == 0 {
		return result
	}

	loc := in.Location
	if loc == nil {
		loc = time.UTC
	}
	lookup := in.Schedule
	if lookup == nil {
		lookup = alwaysOpen
	}

	now := in.Reference.In(loc)
	var windowStarts [len(Windows)]time.Time
	for i, w := range Windows {
		windowStarts[i] = w.Start(now)
	}
	horizon := windowStarts[len(Windows)-1]

	var acc accumulator
	for i, obs := range in.Observations {
		start := obs.TimestampUTC.In(loc)
		end := now
		if i+1 < len(in.Observations) {
			end = in.Observations[i+1].TimestampUTC.In(loc)
		}
		if end.After(now) {
			end = now
		}
		if start.Before(horizon) {
			start = horizon
		}
		if !start.Before(end) {
			continue
		}

		state := stateDown
		if obs.Active() {
			state = stateUp
		}
		acc.addInterval(start, end, state, loc, lookup, &windowStarts)
	}

	result.LastHour = acc.totals(0)
	result.LastDay = acc.totals(1)
	result.LastWeek = acc.totals(2)
	return result
}

// addInterval walks the local calendar days touched by [start, end) and adds the
// business-hour overlap to every window it reaches. The walk starts one day early so
// that a previous day's midnight-crossing range is seen on the interval's first day.
func (acc *accumulator) addInterval(
	start, end time.Time,
	state int,
	loc *time.Location,
	lookup schedule.Lookup,
	windowStarts *[len(Windows)]time.Time,
) {
	y, m, d := start.Date()
	lastY, lastM, lastD := end.Date()
	last := civilDate(lastY, lastM, lastD)

	for offset := -1; ; offset++ {
		// Noon is never skipped or repeated by a DST transition.
		day := time.Date(y, m, d+offset, 12, 0, 0, 0, loc)
		dy, dm, dd := day.Date()
		if civilDate(dy, dm, dd) > last {
			return
		}

		for _, r := range lookup(schedule.Weekday(day)) {
			for _, seg := range r.Segments(dy, dm, dd, loc) {
				sliceStart := latest(seg.Start, start)
				sliceEnd := earliest(seg.End, end)
				if !sliceStart.Before(sliceEnd) {
					continue
				}
				for w := range windowStarts {
					from := latest(sliceStart, windowStarts[w])
					if from.Before(sliceEnd) {
						acc[w][state] += sliceEnd.Sub(from)
					}
				}
			}
		}
	}
}

func (acc *accumulator) totals(w int) Totals {
	return Totals{
		Uptime:   Windows[w].Scale(acc[w][stateUp]),
		Downtime: Windows[w].Scale(acc[w][stateDown]),
	}
}

func alwaysOpen(int) []schedule.OpenRange {
	return []schedule.OpenRange{schedule.FullDay}
}

func civilDate(y int, m time.Month, d int) int {
	return y*10_000 + int(m)*100 + d
}

func latest(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func earliest(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
