// Package scoring implements the station upgrade-priority scoring engine.
// It turns a station record and a weight profile into a composite score built
// from four normalized sub-metrics.
package scoring

// ScoreMetrics is the per-station scoring output. All values are integers
// in [0,100].
type ScoreMetrics struct {
	TrafficVolume       int `json:"traffic_volume"`
	CapacityConstraints int `json:"capacity_constraints"`
	StrategicImportance int `json:"strategic_importance"`
	FacilityDeficits    int `json:"facility_deficits"`
	CompositeScore      int `json:"composite_score"`
}

// StationScore pairs a station with its computed metrics.
type StationScore struct {
	StationID string       `json:"station_id"`
	Name      string       `json:"name"`
	Metrics   ScoreMetrics `json:"metrics"`
}

// clampScore bounds a sub-metric or composite value to [0,100].
func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
