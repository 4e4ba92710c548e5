package recalc

import "sort"

// SignificantChangeThreshold is the minimum absolute composite-score delta
// worth reporting after a recalculation.
const SignificantChangeThreshold = 5

// ScoreChange is one station's before/after composite score pair.
type ScoreChange struct {
	StationID string `json:"station_id"`
	Before    int    `json:"before"`
	After     int    `json:"after"`
	Delta     int    `json:"delta"`
}

// SignificantChanges diffs two composite-score maps keyed by station ID and
// returns the changes whose absolute delta meets the reporting threshold,
// sorted descending by magnitude. Stations present in only one map are not
// reported; a change needs both a before and an after.
func SignificantChanges(before, after map[string]int) []ScoreChange {
	var changes []ScoreChange
	for id, b := range before {
		a, ok := after[id]
		if !ok {
			continue
		}
		delta := a - b
		if abs(delta) >= SignificantChangeThreshold {
			changes = append(changes, ScoreChange{StationID: id, Before: b, After: a, Delta: delta})
		}
	}

	sort.Slice(changes, func(i, j int) bool {
		di, dj := abs(changes[i].Delta), abs(changes[j].Delta)
		if di != dj {
			return di > dj
		}
		return changes[i].StationID < changes[j].StationID
	})
	return changes
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
