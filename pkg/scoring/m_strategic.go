package scoring

import (
	"math"

	"github.com/sanjujohn8055/berlin-hamburg-corridor-analysis-sub001/pkg/corridor"
)

// categoryImportance indexes baseline strategic importance by station
// category.
var categoryImportance = map[corridor.Category]int{
	1: 100,
	2: 85,
	3: 70,
	4: 55,
	5: 40,
	6: 25,
	7: 10,
}

// Blend weights for the strategic importance score.
const (
	strategicCategoryWeight = 0.4
	strategicPositionWeight = 0.3
	strategicHubWeight      = 0.3
)

// Interior landmarks of the corridor: the Wittenberge and Ludwigslust
// interchange areas, where the line meets the Magdeburg and Rostock axes.
var interiorLandmarksKM = []float64{140, 170}

const landmarkWindowKM = 10.0

// positionImportance rewards corridor endpoints and the interior landmark
// interchanges; everywhere else along the line scores a flat base.
func positionImportance(distanceKM float64) int {
	if distanceKM <= corridor.EndpointWindowKM || distanceKM >= corridor.LengthKM-corridor.EndpointWindowKM {
		return 100
	}
	for _, landmark := range interiorLandmarksKM {
		if math.Abs(distanceKM-landmark) <= landmarkWindowKM {
			return 70
		}
	}
	return 40
}

// StrategicImportanceScore blends category importance, corridor position and
// the strategic-hub flag into [0,100].
func StrategicImportanceScore(station corridor.StationRecord) int {
	catScore, ok := categoryImportance[station.Category]
	if !ok {
		catScore = 10
	}

	hubScore := 0
	if station.IsStrategicHub {
		hubScore = 100
	}

	blended := strategicCategoryWeight*float64(catScore) +
		strategicPositionWeight*float64(positionImportance(station.DistanceKM)) +
		strategicHubWeight*float64(hubScore)
	return clampScore(int(math.Round(blended)))
}
