package uptime

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	v1 "github.com/storepulse/storepulse/internal/api/v1"
	"github.com/storepulse/storepulse/internal/core/schedule"
	"github.com/stretchr/testify/require"
)

type entry struct {
	at     time.Time
	status v1.Status
}

func observations(storeID string, entries ...entry) []v1.Observation {
	out := make([]v1.Observation, 0, len(entries))
	for _, e := range entries {
		out = append(out, v1.Observation{StoreID: storeID, TimestampUTC: e.at, Status: e.status})
	}
	return out
}

func mustLoad(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

// everyDay builds a lookup returning the same ranges for all weekdays.
func everyDay(ranges ...schedule.OpenRange) schedule.Lookup {
	return func(int) []schedule.OpenRange { return ranges }
}

func hm(s string) schedule.TimeOfDay {
	return schedule.MustParseTimeOfDay(s)
}

func requireDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, decimal.RequireFromString(want).Equal(got), "want=%s got=%s", want, got.String())
}

func TestCompute_NoObservationsYieldsZeros(t *testing.T) {
	ref := time.Date(2023, 1, 25, 18, 0, 0, 0, time.UTC)

	res := Compute(Input{StoreID: "empty", Reference: ref})

	require.Equal(t, "empty", res.StoreID)
	for _, totals := range []Totals{res.LastHour, res.LastDay, res.LastWeek} {
		require.True(t, totals.Uptime.IsZero())
		require.True(t, totals.Downtime.IsZero())
	}
	row := res.Row()
	require.Equal(t, []string{"empty", "0", "0", "0", "0", "0", "0"}, row.Values())
}

func TestCompute_ActiveThenInactiveAlwaysOpen(t *testing.T) {
	ref := time.Date(2023, 1, 25, 18, 0, 0, 0, time.UTC)

	res := Compute(Input{
		StoreID: "S1",
		Observations: observations("S1",
			entry{ref.Add(-90 * time.Minute), v1.StatusActive},
			entry{ref.Add(-30 * time.Minute), v1.StatusInactive},
		),
		Location:  time.UTC,
		Reference: ref,
	})

	// Last hour: active from T-60 to T-30, inactive from T-30 to T.
	requireDecimal(t, "30", res.LastHour.Uptime)
	requireDecimal(t, "30", res.LastHour.Downtime)

	// Nothing is known before the first observation, so the day only sees 90 minutes.
	requireDecimal(t, "1", res.LastDay.Uptime)
	requireDecimal(t, "0.5", res.LastDay.Downtime)
	requireDecimal(t, "1", res.LastWeek.Uptime)
	requireDecimal(t, "0.5", res.LastWeek.Downtime)
}

func TestCompute_ExcludesTimeOutsideBusinessHours(t *testing.T) {
	ny := mustLoad(t, "America/New_York")
	// Wednesday 2023-01-25, EST (UTC-5): 08:00 local observation, 10:00 local reference.
	obsAt := time.Date(2023, 1, 25, 8, 0, 0, 0, ny)
	ref := time.Date(2023, 1, 25, 10, 0, 0, 0, ny).UTC()

	book, err := schedule.NewBook([]schedule.Rule{
		{StoreID: "s9", DayOfWeek: 2, Start: hm("09:00"), End: hm("17:00")},
	})
	require.NoError(t, err)

	res := Compute(Input{
		StoreID:      "s9",
		Observations: observations("s9", entry{obsAt.UTC(), v1.StatusActive}),
		Location:     ny,
		Schedule:     book.Lookup("s9"),
		Reference:    ref,
	})

	requireDecimal(t, "60", res.LastHour.Uptime)
	requireDecimal(t, "0", res.LastHour.Downtime)
	requireDecimal(t, "1", res.LastDay.Uptime)
	requireDecimal(t, "1", res.LastWeek.Uptime)
	requireDecimal(t, "0", res.LastWeek.Downtime)
}

func TestCompute_MidnightCrossingRuleMatchesManualSplit(t *testing.T) {
	// Monday 2023-01-23 21:00 -> Tuesday 03:00, open 22:00-02:00 every day.
	start := time.Date(2023, 1, 23, 21, 0, 0, 0, time.UTC)
	ref := time.Date(2023, 1, 24, 3, 0, 0, 0, time.UTC)
	lookup := everyDay(schedule.NewOpenRange(hm("22:00"), hm("02:00")))

	res := Compute(Input{
		StoreID: "night",
		Observations: observations("night",
			entry{start, v1.StatusActive},
			entry{ref, v1.StatusInactive},
		),
		Location:  time.UTC,
		Schedule:  lookup,
		Reference: ref,
	})

	beforeMidnight := time.Date(2023, 1, 24, 0, 0, 0, 0, time.UTC).Sub(time.Date(2023, 1, 23, 22, 0, 0, 0, time.UTC))
	afterMidnight := time.Date(2023, 1, 24, 2, 0, 0, 0, time.UTC).Sub(time.Date(2023, 1, 24, 0, 0, 0, 0, time.UTC))
	manual := LastDay.Scale(beforeMidnight + afterMidnight)

	require.True(t, manual.Equal(res.LastDay.Uptime), "manual=%s got=%s", manual, res.LastDay.Uptime)
	requireDecimal(t, "4", res.LastWeek.Uptime)
	requireDecimal(t, "0", res.LastHour.Uptime)
	requireDecimal(t, "0", res.LastDay.Downtime)
}

func TestCompute_PreviousDayRangeSpillsIntoFirstDay(t *testing.T) {
	// Interval starts after midnight; only Monday's 22:00-02:00 range covers 01:00-02:00 Tuesday.
	ref := time.Date(2023, 1, 24, 3, 0, 0, 0, time.UTC)

	res := Compute(Input{
		StoreID:      "night",
		Observations: observations("night", entry{time.Date(2023, 1, 24, 1, 0, 0, 0, time.UTC), v1.StatusInactive}),
		Location:     time.UTC,
		Schedule:     everyDay(schedule.NewOpenRange(hm("22:00"), hm("02:00"))),
		Reference:    ref,
	})

	requireDecimal(t, "1", res.LastDay.Downtime)
	requireDecimal(t, "0", res.LastDay.Uptime)
}

func TestCompute_AlwaysOpenSumsToWindowLength(t *testing.T) {
	chicago := mustLoad(t, "America/Chicago")
	// The week spans the 2023-03-12 DST switch in Chicago.
	ref := time.Date(2023, 3, 15, 4, 17, 0, 0, time.UTC)
	horizon := ObservationHorizon(ref)

	var entries []entry
	status := v1.StatusActive
	for at := horizon; at.Before(ref); at = at.Add(5*time.Hour + 37*time.Minute) {
		entries = append(entries, entry{at, status})
		if status == v1.StatusActive {
			status = v1.StatusInactive
		} else {
			status = v1.StatusActive
		}
	}

	res := Compute(Input{
		StoreID:      "open",
		Observations: observations("open", entries...),
		Location:     chicago,
		Reference:    ref,
	})

	tolerance := decimal.New(2, -Precision)
	check := func(totals Totals, want int64) {
		sum := totals.Uptime.Add(totals.Downtime)
		require.True(t, sum.Sub(decimal.NewFromInt(want)).Abs().LessThanOrEqual(tolerance),
			"want=%d got=%s", want, sum)
	}
	check(res.LastHour, 60)
	check(res.LastDay, 24)
	check(res.LastWeek, 168)
}

func TestCompute_BusinessHoursAcrossDST(t *testing.T) {
	chicago := mustLoad(t, "America/Chicago")
	ref := time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC)

	res := Compute(Input{
		StoreID:      "dst",
		Observations: observations("dst", entry{ObservationHorizon(ref), v1.StatusActive}),
		Location:     chicago,
		Schedule:     everyDay(schedule.NewOpenRange(hm("09:00"), hm("17:00"))),
		Reference:    ref,
	})

	// Seven full 8h days from March 8 to March 14 local, regardless of the offset change.
	requireDecimal(t, "56", res.LastWeek.Uptime)
	requireDecimal(t, "8", res.LastDay.Uptime)
	requireDecimal(t, "0", res.LastHour.Uptime)
}

func TestCompute_OverlappingRangesAccumulateIndependently(t *testing.T) {
	ref := time.Date(2023, 1, 23, 23, 0, 0, 0, time.UTC)

	res := Compute(Input{
		StoreID:      "overlap",
		Observations: observations("overlap", entry{time.Date(2023, 1, 23, 0, 0, 0, 0, time.UTC), v1.StatusActive}),
		Location:     time.UTC,
		Schedule: everyDay(
			schedule.NewOpenRange(hm("09:00"), hm("12:00")),
			schedule.NewOpenRange(hm("10:00"), hm("11:00")),
		),
		Reference: ref,
	})

	requireDecimal(t, "4", res.LastDay.Uptime)
}

func TestCompute_ClipsObservationsBeforeHorizon(t *testing.T) {
	ref := time.Date(2023, 1, 25, 18, 0, 0, 0, time.UTC)

	res := Compute(Input{
		StoreID:      "old",
		Observations: observations("old", entry{ref.Add(-200 * time.Hour), v1.StatusInactive}),
		Reference:    ref,
	})

	requireDecimal(t, "168", res.LastWeek.Downtime)
	requireDecimal(t, "24", res.LastDay.Downtime)
	requireDecimal(t, "60", res.LastHour.Downtime)
}

func TestCompute_IgnoresTimeAfterReference(t *testing.T) {
	ref := time.Date(2023, 1, 25, 18, 0, 0, 0, time.UTC)

	res := Compute(Input{
		StoreID: "future",
		Observations: observations("future",
			entry{ref.Add(-10 * time.Minute), v1.StatusActive},
			entry{ref.Add(10 * time.Minute), v1.StatusInactive},
		),
		Reference: ref,
	})

	requireDecimal(t, "10", res.LastHour.Uptime)
	requireDecimal(t, "0", res.LastHour.Downtime)
}

func TestCompute_IsIdempotent(t *testing.T) {
	beirut := mustLoad(t, "Asia/Beirut")
	ref := time.Date(2023, 1, 25, 18, 13, 22, 479220000, time.UTC)
	in := Input{
		StoreID: "repeat",
		Observations: observations("repeat",
			entry{ref.Add(-50 * time.Hour), v1.StatusActive},
			entry{ref.Add(-26 * time.Hour), v1.StatusInactive},
			entry{ref.Add(-3 * time.Hour), v1.StatusActive},
			entry{ref.Add(-20 * time.Minute), v1.StatusInactive},
		),
		Location:  beirut,
		Schedule:  everyDay(schedule.NewOpenRange(hm("07:30"), hm("01:15"))),
		Reference: ref,
	}

	first := Compute(in)
	second := Compute(in)
	require.Equal(t, first.Row(), second.Row())
}

func TestCompute_WindowsNest(t *testing.T) {
	ref := time.Date(2023, 1, 25, 18, 0, 0, 0, time.UTC)
	res := Compute(Input{
		StoreID: "nest",
		Observations: observations("nest",
			entry{ref.Add(-100 * time.Hour), v1.StatusActive},
			entry{ref.Add(-20 * time.Hour), v1.StatusInactive},
			entry{ref.Add(-45 * time.Minute), v1.StatusActive},
		),
		Schedule:  everyDay(schedule.NewOpenRange(hm("08:00"), hm("20:00"))),
		Reference: ref,
	})

	sixty := decimal.NewFromInt(60)
	hourUp := res.LastHour.Uptime.Div(sixty)
	hourDown := res.LastHour.Downtime.Div(sixty)

	require.True(t, hourUp.LessThanOrEqual(res.LastDay.Uptime))
	require.True(t, hourDown.LessThanOrEqual(res.LastDay.Downtime))
	require.True(t, res.LastDay.Uptime.LessThanOrEqual(res.LastWeek.Uptime))
	require.True(t, res.LastDay.Downtime.LessThanOrEqual(res.LastWeek.Downtime))
}

func TestWindow_Scale(t *testing.T) {
	requireDecimal(t, "1.5", LastHour.Scale(90*time.Second))
	requireDecimal(t, "0.333333", LastDay.Scale(20*time.Minute))
	requireDecimal(t, "168", LastWeek.Scale(LastWeek.Span))
	require.Equal(t, "minutes", LastHour.UnitLabel())
	require.Equal(t, "hours", LastWeek.UnitLabel())
	require.Equal(t, "x1s", Window{Unit: time.Second}.UnitLabel())
}

func TestWindow_LogAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	logger.Info("windows", slog.Group("windows", LogAttrs()...))

	var line struct {
		Windows map[string]struct {
			Span int64  `json:"span"`
			Unit string `json:"unit"`
		} `json:"windows"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Len(t, line.Windows, len(Windows))
	require.Equal(t, "minutes", line.Windows["last_hour"].Unit)
	require.Equal(t, int64(time.Hour), line.Windows["last_hour"].Span)
	require.Equal(t, "hours", line.Windows["last_day"].Unit)
	require.Equal(t, int64(7*24*time.Hour), line.Windows["last_week"].Span)
}
