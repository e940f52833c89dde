package timezone

import (
	"fmt"
	"strings"
	"time"

	"github.com/maypok86/otter/v2"
	v1 "github.com/storepulse/storepulse/internal/api/v1"
)

// DefaultZone is used for stores without a timezone row.
const DefaultZone = "America/Chicago"

const locationCacheSize = 1_024

// LocationCache memoizes time.LoadLocation, which reads the zoneinfo database on every call.
// It is safe for concurrent use and meant to live for the whole process.
type LocationCache struct {
	cache *otter.Cache[string, *time.Location]
}

// NewLocationCache creates an empty cache.
func NewLocationCache() *LocationCache {
	return &LocationCache{
		cache: otter.Must(&otter.Options[string, *time.Location]{
			MaximumSize:     locationCacheSize,
			InitialCapacity: 64,
		}),
	}
}

// Load returns the named location, loading it on first use.
func (c *LocationCache) Load(name string) (*time.Location, error) {
	if loc, ok := c.cache.GetIfPresent(name); ok {
		return loc, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", name, err)
	}
	c.cache.Set(name, loc)
	return loc, nil
}

// Resolver maps store ids to their timezone, falling back to a fixed zone.
// It is built once per report run from the bulk-loaded timezone rows and is read-only afterwards.
type Resolver struct {
	zones    map[string]string
	fallback string
	cache    *LocationCache
}

// NewResolver indexes the rows. An empty fallback means DefaultZone; a fallback
// that cannot be loaded is an error because every unmapped store would depend on it.
func NewResolver(rows []v1.StoreTimezone, fallback string, cache *LocationCache) (*Resolver, error) {
	if strings.TrimSpace(fallback) == "" {
		fallback = DefaultZone
	}
	if cache == nil {
		cache = NewLocationCache()
	}
	if _, err := cache.Load(fallback); err != nil {
		return nil, fmt.Errorf("fallback timezone: %w", err)
	}

	zones := make(map[string]string, len(rows))
	for _, row := range rows {
		name := strings.TrimSpace(row.TimezoneStr)
		if row.StoreID == "" || name == "" {
			continue
		}
		zones[row.StoreID] = name
	}

	return &Resolver{zones: zones, fallback: fallback, cache: cache}, nil
}

// Resolve returns the store's IANA zone name. It never fails.
func (r *Resolver) Resolve(storeID string) string {
	if name, ok := r.zones[storeID]; ok {
		return name
	}
	return r.fallback
}

// Location returns the loaded zone for the store.
// A configured but unknown zone name is an error, not a silent fallback.
func (r *Resolver) Location(storeID string) (*time.Location, error) {
	name := r.Resolve(storeID)
	loc, err := r.cache.Load(name)
	if err != nil {
		return nil, fmt.Errorf("store %s: %w", storeID, err)
	}
	return loc, nil
}

// Len returns the number of stores with an explicit timezone.
func (r *Resolver) Len() int {
	return len(r.zones)
}
