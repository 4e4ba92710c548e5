package scoring_test

import (
	"testing"

	"github.com/sanjujohn8055/berlin-hamburg-corridor-analysis-sub001/pkg/corridor"
	"github.com/sanjujohn8055/berlin-hamburg-corridor-analysis-sub001/pkg/scoring"
)

func TestStrategicImportanceScore(t *testing.T) {
	cases := []struct {
		name    string
		station corridor.StationRecord
		want    int
	}{
		{
			name:    "category 1 hub at the Berlin endpoint",
			station: corridor.StationRecord{Category: 1, DistanceKM: 0, IsStrategicHub: true},
			want:    100, // 0.4*100 + 0.3*100 + 0.3*100
		},
		{
			name:    "category 1 hub at the Hamburg endpoint",
			station: corridor.StationRecord{Category: 1, DistanceKM: 286, IsStrategicHub: true},
			want:    100,
		},
		{
			name:    "category 7 halt in the open stretch",
			station: corridor.StationRecord{Category: 7, DistanceKM: 100},
			want:    16, // 0.4*10 + 0.3*40
		},
		{
			name:    "category 3 station near the Wittenberge interchange",
			station: corridor.StationRecord{Category: 3, DistanceKM: 145},
			want:    49, // 0.4*70 + 0.3*70
		},
		{
			name:    "category 3 hub at the Ludwigslust interchange",
			station: corridor.StationRecord{Category: 3, DistanceKM: 170, IsStrategicHub: true},
			want:    79, // 0.4*70 + 0.3*70 + 0.3*100
		},
		{
			name:    "category 5 just inside the Hamburg endpoint window",
			station: corridor.StationRecord{Category: 5, DistanceKM: 282},
			want:    46, // 0.4*40 + 0.3*100
		},
		{
			name:    "category 5 just outside the endpoint window",
			station: corridor.StationRecord{Category: 5, DistanceKM: 280},
			want:    28, // 0.4*40 + 0.3*40
		},
	}
	for _, tc := range cases {
		if got := scoring.StrategicImportanceScore(tc.station); got != tc.want {
			t.Errorf("%s: StrategicImportanceScore = %d, want %d", tc.name, got, tc.want)
		}
	}
}
