package partition

import (
	"sort"

	v1 "github.com/storepulse/storepulse/internal/api/v1"
)

// Group is one store's slice of the observation window, oldest first.
type Group struct {
	StoreID      string
	Observations []v1.Observation
}

// ByStore splits a bulk-loaded observation window into per-store groups.
// Groups come back ordered by store id. Input already ordered by (store_id, timestamp)
// is split in one pass without copying; anything else is regrouped and sorted.
func ByStore(observations []v1.Observation) []Group {
	if len(observations) == 0 {
		return nil
	}
	if sortedByStore(observations) {
		return contiguous(observations)
	}

	index := make(map[string]int)
	var groups []Group
	for _, obs := range observations {
		i, ok := index[obs.StoreID]
		if !ok {
			i = len(groups)
			index[obs.StoreID] = i
			groups = append(groups, Group{StoreID: obs.StoreID})
		}
		groups[i].Observations = append(groups[i].Observations, obs)
	}

	for i := range groups {
		obs := groups[i].Observations
		sort.SliceStable(obs, func(a, b int) bool {
			return obs[a].TimestampUTC.Before(obs[b].TimestampUTC)
		})
	}
	sort.Slice(groups, func(a, b int) bool {
		return groups[a].StoreID < groups[b].StoreID
	})
	return groups
}

func sortedByStore(observations []v1.Observation) bool {
	for i := 1; i < len(observations); i++ {
		prev, cur := observations[i-1], observations[i]
		if cur.StoreID < prev.StoreID {
			return false
		}
		if cur.StoreID == prev.StoreID && cur.TimestampUTC.Before(prev.TimestampUTC) {
			return false
		}
	}
	return true
}

func contiguous(observations []v1.Observation) []Group {
	var groups []Group
	start := 0
	for i := 1; i <= len(observations); i++ {
		if i == len(observations) || observations[i].StoreID != observations[start].StoreID {
			groups = append(groups, Group{
				StoreID:      observations[start].StoreID,
				Observations: observations[start:i:i],
			})
			start = i
		}
	}
	return groups
}
