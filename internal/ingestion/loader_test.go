package ingestion

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	v1 "github.com/storepulse/storepulse/internal/api/v1"
	"github.com/storepulse/storepulse/internal/core/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingWriter keeps copies of every batch it receives.
type recordingWriter struct {
	observations [][]v1.Observation
	rules        [][]schedule.Rule
	zones        [][]v1.StoreTimezone
	failOn       int
	calls        int
}

var errCopyFailed = errors.New("copy failed")

func (w *recordingWriter) tick() error {
	w.calls++
	if w.failOn > 0 && w.calls == w.failOn {
		return errCopyFailed
	}
	return nil
}

func (w *recordingWriter) CopyObservations(_ context.Context, rows []v1.Observation) (int64, error) {
	if err := w.tick(); err != nil {
		return 0, err
	}
	w.observations = append(w.observations, append([]v1.Observation(nil), rows...))
	return int64(len(rows)), nil
}

func (w *recordingWriter) CopyBusinessHours(_ context.Context, rows []schedule.Rule) (int64, error) {
	if err := w.tick(); err != nil {
		return 0, err
	}
	w.rules = append(w.rules, append([]schedule.Rule(nil), rows...))
	return int64(len(rows)), nil
}

func (w *recordingWriter) CopyTimezones(_ context.Context, rows []v1.StoreTimezone) (int64, error) {
	if err := w.tick(); err != nil {
		return 0, err
	}
	w.zones = append(w.zones, append([]v1.StoreTimezone(nil), rows...))
	return int64(len(rows)), nil
}

const storeStatusCSV = `store_id,status,timestamp_utc
8419537941919820732,active,2023-01-22 12:09:39.388884 UTC
8419537941919820732,inactive,2023-01-24 09:06:42.605777 UTC
54515546588432327,active,2023-01-24 09:07:26.441407 UTC
`

func TestLoadObservations_BatchesAndParses(t *testing.T) {
	w := &recordingWriter{}
	loader := NewLoader(w, 2)

	n, err := loader.LoadObservations(context.Background(), strings.NewReader(storeStatusCSV), "store_status.csv")
	require.NoError(t, err)
	require.Equal(t, int64(3), n)

	require.Len(t, w.observations, 2)
	assert.Len(t, w.observations[0], 2)
	assert.Len(t, w.observations[1], 1)

	first := w.observations[0][0]
	assert.Equal(t, "8419537941919820732", first.StoreID)
	assert.Equal(t, v1.StatusActive, first.Status)
	assert.True(t, first.TimestampUTC.Equal(time.Date(2023, 1, 22, 12, 9, 39, 388884000, time.UTC)))
	assert.Equal(t, v1.StatusInactive, w.observations[0][1].Status)
}

func TestLoadObservations_MalformedRowNamesLine(t *testing.T) {
	input := `store_id,status,timestamp_utc
s1,active,2023-01-22 12:09:39.388884 UTC
s1,sleeping,2023-01-22 13:09:39.388884 UTC
`
	w := &recordingWriter{}
	_, err := NewLoader(w, 100).LoadObservations(context.Background(), strings.NewReader(input), "store_status.csv")
	require.ErrorIs(t, err, v1.ErrInvalidStatus)
	require.ErrorContains(t, err, "store_status.csv line 3")
	require.Empty(t, w.observations)
}

func TestLoadObservations_MissingColumn(t *testing.T) {
	_, err := NewLoader(&recordingWriter{}, 10).LoadObservations(context.Background(),
		strings.NewReader("store_id,timestamp_utc\ns1,2023-01-22 12:09:39 UTC\n"), "store_status.csv")
	require.ErrorContains(t, err, `missing column "status"`)
}

func TestLoadBusinessHours_MissingDayColumn(t *testing.T) {
	w := &recordingWriter{}
	_, err := NewLoader(w, 10).LoadBusinessHours(context.Background(),
		strings.NewReader("store_id,start_time_local,end_time_local\ns1,09:00:00,17:00:00\n"), "menu_hours.csv")
	require.ErrorContains(t, err, `menu_hours.csv: missing column "dayofweek"`)
	require.Empty(t, w.rules)
}

func TestLoadBusinessHours_DayColumnAliases(t *testing.T) {
	for _, name := range []string{"dayOfWeek", "day_of_week", "Day"} {
		t.Run(name, func(t *testing.T) {
			w := &recordingWriter{}
			n, err := NewLoader(w, 10).LoadBusinessHours(context.Background(),
				strings.NewReader("store_id,"+name+",start_time_local,end_time_local\ns1,3,09:00:00,17:00:00\n"), "menu_hours.csv")
			require.NoError(t, err)
			require.Equal(t, int64(1), n)
			require.Equal(t, 3, w.rules[0][0].DayOfWeek)
		})
	}
}

func TestLoadBusinessHours(t *testing.T) {
	input := `store_id,dayOfWeek,start_time_local,end_time_local
s1,0,00:00:00,00:10:00
s1,4,22:00:00,02:00:00
`
	w := &recordingWriter{}
	n, err := NewLoader(w, 10).LoadBusinessHours(context.Background(), strings.NewReader(input), "menu_hours.csv")
	require.NoError(t, err)
	require.Equal(t, int64(2), n)
	require.Equal(t, []schedule.Rule{
		{StoreID: "s1", DayOfWeek: 0, Start: schedule.MustParseTimeOfDay("00:00"), End: schedule.MustParseTimeOfDay("00:10")},
		{StoreID: "s1", DayOfWeek: 4, Start: schedule.MustParseTimeOfDay("22:00"), End: schedule.MustParseTimeOfDay("02:00")},
	}, w.rules[0])
}

func TestLoadBusinessHours_Rejects(t *testing.T) {
	tests := []struct {
		name string
		row  string
		want string
	}{
		{name: "day out of range", row: "s1,7,09:00:00,17:00:00", want: "out of range"},
		{name: "day not a number", row: "s1,mon,09:00:00,17:00:00", want: "invalid day of week"},
		{name: "bad time", row: "s1,1,9am,17:00:00", want: "start_time_local"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			input := "store_id,dayOfWeek,start_time_local,end_time_local\n" + tc.row + "\n"
			_, err := NewLoader(&recordingWriter{}, 10).LoadBusinessHours(context.Background(), strings.NewReader(input), "menu_hours.csv")
			require.ErrorContains(t, err, "menu_hours.csv line 2")
			require.ErrorContains(t, err, tc.want)
		})
	}
}

func TestLoadTimezones_WriterErrorIsWrapped(t *testing.T) {
	input := "store_id,timezone_str\ns1,America/Chicago\ns2,Asia/Beirut\n"
	w := &recordingWriter{failOn: 1}

	_, err := NewLoader(w, 10).LoadTimezones(context.Background(), strings.NewReader(input), "timezones.csv")
	require.ErrorIs(t, err, errCopyFailed)
	require.ErrorContains(t, err, "timezones.csv")
}

func TestLoadAll(t *testing.T) {
	dir := t.TempDir()
	statusPath := filepath.Join(dir, "store_status.csv")
	zonesPath := filepath.Join(dir, "timezones.csv")
	require.NoError(t, os.WriteFile(statusPath, []byte(storeStatusCSV), 0o644))
	require.NoError(t, os.WriteFile(zonesPath, []byte("\ufeffstore_id,timezone_str\ns1,America/Denver\n"), 0o644))

	w := &recordingWriter{}
	summary, err := NewLoader(w, 0).LoadAll(context.Background(), Paths{
		StoreStatus: statusPath,
		Timezones:   zonesPath,
	})
	require.NoError(t, err)
	require.Equal(t, Summary{Observations: 3, Timezones: 1}, summary)
	require.Empty(t, w.rules)
	require.Equal(t, "America/Denver", w.zones[0][0].TimezoneStr)
}

func TestLoadAll_MissingFile(t *testing.T) {
	_, err := NewLoader(&recordingWriter{}, 10).LoadAll(context.Background(), Paths{
		MenuHours: filepath.Join(t.TempDir(), "absent.csv"),
	})
	require.ErrorContains(t, err, "absent.csv")
}
