package scoring_test

import (
	"testing"

	"github.com/sanjujohn8055/berlin-hamburg-corridor-analysis-sub001/pkg/scoring"
)

func TestTrafficVolumeScore(t *testing.T) {
	cases := []struct {
		stops int
		want  int
	}{
		{0, 0},
		{10, 0},
		{11, 0}, // rounds down to 0
		{132, 25},
		{255, 50},
		{378, 75},
		{500, 100},
		{10000, 100},
	}
	for _, tc := range cases {
		if got := scoring.TrafficVolumeScore(tc.stops); got != tc.want {
			t.Errorf("TrafficVolumeScore(%d) = %d, want %d", tc.stops, got, tc.want)
		}
	}
}

func TestTrafficVolumeScoreMonotonic(t *testing.T) {
	prev := -1
	for stops := 0; stops <= 600; stops += 10 {
		got := scoring.TrafficVolumeScore(stops)
		if got < prev {
			t.Fatalf("score decreased at %d stops: %d < %d", stops, got, prev)
		}
		prev = got
	}
}
