package timezone

import (
	"testing"

	v1 "github.com/storepulse/storepulse/internal/api/v1"
	"github.com/stretchr/testify/require"
)

func TestResolver_Resolve(t *testing.T) {
	r, err := NewResolver([]v1.StoreTimezone{
		{StoreID: "s1", TimezoneStr: "Asia/Beirut"},
		{StoreID: "s2", TimezoneStr: "  America/Denver "},
		{StoreID: "s3", TimezoneStr: ""},
	}, "", nil)
	require.NoError(t, err)

	require.Equal(t, "Asia/Beirut", r.Resolve("s1"))
	require.Equal(t, "America/Denver", r.Resolve("s2"))
	require.Equal(t, DefaultZone, r.Resolve("s3"))
	require.Equal(t, DefaultZone, r.Resolve("missing"))
	require.Equal(t, 2, r.Len())
}

func TestResolver_CustomFallback(t *testing.T) {
	r, err := NewResolver(nil, "UTC", nil)
	require.NoError(t, err)
	require.Equal(t, "UTC", r.Resolve("any"))

	loc, err := r.Location("any")
	require.NoError(t, err)
	require.Equal(t, "UTC", loc.String())
}

func TestResolver_InvalidFallbackFails(t *testing.T) {
	_, err := NewResolver(nil, "Mars/Olympus_Mons", nil)
	require.Error(t, err)
}

func TestResolver_LocationUnknownZoneIsError(t *testing.T) {
	r, err := NewResolver([]v1.StoreTimezone{{StoreID: "bad", TimezoneStr: "Not/AZone"}}, "", nil)
	require.NoError(t, err)

	_, err = r.Location("bad")
	require.Error(t, err)
	require.Contains(t, err.Error(), "bad")
}

func TestLocationCache_ReusesLoadedLocation(t *testing.T) {
	cache := NewLocationCache()

	first, err := cache.Load("Europe/Berlin")
	require.NoError(t, err)
	second, err := cache.Load("Europe/Berlin")
	require.NoError(t, err)
	require.Same(t, first, second)
}
