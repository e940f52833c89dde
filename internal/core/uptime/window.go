package uptime

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
)

// Window is a trailing lookback period ending at the reference timestamp.
type Window struct {
	Name string
	// Span is how far back the window reaches from the reference timestamp.
	Span time.Duration
	// Unit is the reporting unit of the window's totals.
	Unit time.Duration
}

var (
	LastHour = Window{Name: "last_hour", Span: time.Hour, Unit: time.Minute}
	LastDay  = Window{Name: "last_day", Span: 24 * time.Hour, Unit: time.Hour}
	LastWeek = Window{Name: "last_week", Span: 7 * 24 * time.Hour, Unit: time.Hour}
)

// Windows lists the reported windows, narrowest first. LastWeek must stay the widest.
var Windows = [...]Window{LastHour, LastDay, LastWeek}

// Precision is the number of decimal places every total is rounded to.
const Precision = 6

// Start returns the first instant covered by the window.
func (w Window) Start(reference time.Time) time.Time {
	return reference.Add(-w.Span)
}

// Scale converts an exact duration into the window's unit, rounded to Precision places.
func (w Window) Scale(d time.Duration) decimal.Decimal {
	return decimal.NewFromInt(int64(d)).
		Div(decimal.NewFromInt(int64(w.Unit))).
		Round(Precision)
}

// UnitLabel renders the reporting unit, e.g. "minutes".
func (w Window) UnitLabel() string {
	switch w.Unit {
	case time.Minute:
		return "minutes"
	case time.Hour:
		return "hours"
	}
	return fmt.Sprintf("x%s", w.Unit)
}

// LogValue renders the window as a log group keyed by span and unit.
func (w Window) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Duration("span", w.Span),
		slog.String("unit", w.UnitLabel()),
	)
}

// LogAttrs returns one attribute per reported window, keyed by window name.
func LogAttrs() []any {
	attrs := make([]any, 0, len(Windows))
	for _, w := range Windows {
		attrs = append(attrs, slog.Any(w.Name, w))
	}
	return attrs
}

// ObservationHorizon is the widest window start: observations older than this never contribute.
func ObservationHorizon(reference time.Time) time.Time {
	return LastWeek.Start(reference)
}
