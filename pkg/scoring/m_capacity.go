package scoring

import (
	"math"

	"github.com/sanjujohn8055/berlin-hamburg-corridor-analysis-sub001/pkg/corridor"
)

// expectedPlatforms indexes the platform count a station of each category is
// expected to operate.
var expectedPlatforms = map[corridor.Category]int{
	1: 12,
	2: 8,
	3: 6,
	4: 4,
	5: 3,
	6: 2,
	7: 1,
}

// Blend weights for the capacity constraint score.
const (
	capacityPlatformWeight = 0.6
	capacityFacilityWeight = 0.4
)

// PlatformAdequacyScore compares a station's actual platform count to its
// category expectation. A ratio of 1.0 or better means no constraint (0);
// the score escalates in discrete steps as the ratio falls.
func PlatformAdequacyScore(station corridor.StationRecord) int {
	expected, ok := expectedPlatforms[station.Category]
	if !ok || expected <= 0 {
		expected = 1
	}

	ratio := float64(station.PlatformCount) / float64(expected)
	switch {
	case ratio >= 1.0:
		return 0
	case ratio >= 0.8:
		return 25
	case ratio >= 0.6:
		return 50
	case ratio >= 0.4:
		return 75
	default:
		return 100
	}
}

// CapacityConstraintScore blends platform adequacy with the facility deficit
// sub-score. The facility score is the one computed by FacilityDeficitScore
// for the same station.
func CapacityConstraintScore(platformScore, facilityScore int) int {
	blended := capacityPlatformWeight*float64(platformScore) + capacityFacilityWeight*float64(facilityScore)
	return clampScore(int(math.Round(blended)))
}
