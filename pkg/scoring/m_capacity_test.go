package scoring_test

import (
	"testing"

	"github.com/sanjujohn8055/berlin-hamburg-corridor-analysis-sub001/pkg/corridor"
	"github.com/sanjujohn8055/berlin-hamburg-corridor-analysis-sub001/pkg/scoring"
)

func TestPlatformAdequacyScore(t *testing.T) {
	cases := []struct {
		category  corridor.Category
		platforms int
		want      int
	}{
		{1, 14, 0},  // above expectation
		{1, 12, 0},  // exactly expected
		{1, 10, 25}, // ratio 0.83
		{1, 8, 50},  // ratio 0.67
		{1, 5, 75},  // ratio 0.42
		{1, 4, 100}, // ratio 0.33
		{2, 8, 0},
		{3, 6, 0},
		{3, 4, 50}, // ratio 0.67
		{3, 3, 75}, // ratio 0.5
		{4, 2, 75},
		{5, 3, 0},
		{6, 1, 75},
		{7, 1, 0},
		{7, 0, 100},
	}
	for _, tc := range cases {
		station := corridor.StationRecord{Category: tc.category, PlatformCount: tc.platforms}
		if got := scoring.PlatformAdequacyScore(station); got != tc.want {
			t.Errorf("PlatformAdequacyScore(cat %d, %d platforms) = %d, want %d",
				tc.category, tc.platforms, got, tc.want)
		}
	}
}

func TestCapacityConstraintScoreBlend(t *testing.T) {
	cases := []struct {
		platform, facility, want int
	}{
		{0, 0, 0},
		{100, 100, 100},
		{50, 100, 70}, // 0.6*50 + 0.4*100
		{100, 0, 60},
		{0, 100, 40},
		{25, 50, 35},
	}
	for _, tc := range cases {
		if got := scoring.CapacityConstraintScore(tc.platform, tc.facility); got != tc.want {
			t.Errorf("CapacityConstraintScore(%d, %d) = %d, want %d",
				tc.platform, tc.facility, got, tc.want)
		}
	}
}
