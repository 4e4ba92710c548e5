package scoring

import "math"

// Traffic volume normalization bounds: a station with 10 or fewer daily
// scheduled stops scores 0, one with 500 or more scores 100.
const (
	trafficLowStops  = 10
	trafficHighStops = 500

	// NeutralTrafficScore is the fallback when the traffic source is
	// unavailable for a station.
	NeutralTrafficScore = 50
)

// TrafficVolumeScore normalizes a daily scheduled-stop count into [0,100].
// Counts outside the source range saturate at the boundary.
func TrafficVolumeScore(dailyStops int) int {
	if dailyStops <= trafficLowStops {
		return 0
	}
	if dailyStops >= trafficHighStops {
		return 100
	}
	ratio := float64(dailyStops-trafficLowStops) / float64(trafficHighStops-trafficLowStops)
	return clampScore(int(math.Round(ratio * 100)))
}
