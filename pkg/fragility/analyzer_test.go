package fragility_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sanjujohn8055/berlin-hamburg-corridor-analysis-sub001/pkg/corridor"
	"github.com/sanjujohn8055/berlin-hamburg-corridor-analysis-sub001/pkg/fragility"
)

type fakeDownstream struct {
	departures []corridor.Departure
	err        error
}

func (f *fakeDownstream) DownstreamConnections(_ context.Context, _ string, _ time.Time) ([]corridor.Departure, error) {
	return f.departures, f.err
}

type fakeRegistry struct {
	stations map[string]*corridor.StationRecord
	err      error
}

func (f *fakeRegistry) ListStations(_ context.Context) ([]corridor.StationRecord, error) {
	return nil, f.err
}

func (f *fakeRegistry) GetStation(_ context.Context, id string) (*corridor.StationRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.stations[id], nil
}

func TestBufferFragilityScore(t *testing.T) {
	cases := []struct {
		buffer float64
		want   int
	}{
		{3, 100},
		{4.9, 100},
		{5, 80},
		{7, 80},
		{10, 60},
		{12, 60},
		{15, 40},
		{18, 40},
		{20, 20},
		{25, 20},
	}
	for _, tc := range cases {
		if got := fragility.BufferFragilityScore(tc.buffer); got != tc.want {
			t.Errorf("BufferFragilityScore(%.1f) = %d, want %d", tc.buffer, got, tc.want)
		}
	}
}

func TestImportanceWeight(t *testing.T) {
	cases := []struct {
		class string
		want  float64
	}{
		{"ICE", 1.0},
		{"ICE 802", 1.0},
		{"ic", 1.0},
		{"EC/IC", 1.0},
		{"RE", 0.7},
		{"rb 14", 0.7},
		{"S-Bahn", 0.4},
		{"", 0.4},
	}
	for _, tc := range cases {
		if got := fragility.ImportanceWeight(tc.class); got != tc.want {
			t.Errorf("ImportanceWeight(%q) = %.1f, want %.1f", tc.class, got, tc.want)
		}
	}
}

func TestAnalyzeCascadeRisk(t *testing.T) {
	arrival := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	conn := corridor.ConnectionRecord{
		FromStationID: "8011160",
		ToStationID:   "8010405",
		ArrivalTime:   arrival,
		DepartureTime: arrival.Add(25 * time.Minute),
		TrainClass:    "RE",
		BufferMinutes: 25,
	}

	t.Run("no downstream departures floors the risk", func(t *testing.T) {
		a := fragility.NewAnalyzer(&fakeDownstream{}, &fakeRegistry{})
		if got := a.Analyze(context.Background(), conn).CascadeRisk; got != 20 {
			t.Errorf("CascadeRisk = %d, want floor 20", got)
		}
	})

	t.Run("source failure degrades to the default", func(t *testing.T) {
		a := fragility.NewAnalyzer(&fakeDownstream{err: errors.New("feed down")}, &fakeRegistry{})
		if got := a.Analyze(context.Background(), conn).CascadeRisk; got != 50 {
			t.Errorf("CascadeRisk = %d, want default 50", got)
		}
	})

	t.Run("mixed gaps average their contributions", func(t *testing.T) {
		// Gaps of 20, 45 and 90 minutes contribute 80, 60 and 20.
		src := &fakeDownstream{departures: []corridor.Departure{
			{DepartureTime: arrival.Add(20 * time.Minute)},
			{DepartureTime: arrival.Add(45 * time.Minute)},
			{DepartureTime: arrival.Add(90 * time.Minute)},
		}}
		a := fragility.NewAnalyzer(src, &fakeRegistry{})
		if got := a.Analyze(context.Background(), conn).CascadeRisk; got != 53 {
			t.Errorf("CascadeRisk = %d, want 53", got)
		}
	})
}

func TestAnalyzeAlternativeRoutes(t *testing.T) {
	berlin := &corridor.StationRecord{ID: "8011160", Category: 1, DistanceKM: 0}
	hamburg := &corridor.StationRecord{ID: "8002549", Category: 1, DistanceKM: 286}
	wittenberge := &corridor.StationRecord{ID: "8010405", Category: 3, DistanceKM: 141}
	hagenow := &corridor.StationRecord{ID: "hagenow", Category: 5, DistanceKM: 196}

	registry := &fakeRegistry{stations: map[string]*corridor.StationRecord{
		berlin.ID: berlin, hamburg.ID: hamburg, wittenberge.ID: wittenberge, hagenow.ID: hagenow,
	}}
	a := fragility.NewAnalyzer(&fakeDownstream{}, registry)

	cases := []struct {
		name     string
		from, to string
		want     int
	}{
		{"two major hubs far apart", berlin.ID, hamburg.ID, 4},
		{"regional pair close together", wittenberge.ID, hagenow.ID, 2},
		{"hub to regional far apart", berlin.ID, wittenberge.ID, 3},
		{"unknown endpoint", berlin.ID, "nope", 1},
	}
	for _, tc := range cases {
		conn := corridor.ConnectionRecord{FromStationID: tc.from, ToStationID: tc.to, BufferMinutes: 30}
		if got := a.Analyze(context.Background(), conn).AlternativeRouteCount; got != tc.want {
			t.Errorf("%s: AlternativeRouteCount = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestAnalyzeRegistryFailureDefaultsToDirectRoute(t *testing.T) {
	a := fragility.NewAnalyzer(&fakeDownstream{}, &fakeRegistry{err: errors.New("db down")})
	conn := corridor.ConnectionRecord{FromStationID: "a", ToStationID: "b", BufferMinutes: 30}
	if got := a.Analyze(context.Background(), conn).AlternativeRouteCount; got != 1 {
		t.Errorf("AlternativeRouteCount = %d, want 1 on registry failure", got)
	}
}

func TestAnalyzeFullRecord(t *testing.T) {
	arrival := time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC)
	berlin := &corridor.StationRecord{ID: "8011160", Category: 1, DistanceKM: 0}
	hamburg := &corridor.StationRecord{ID: "8002549", Category: 1, DistanceKM: 286}

	src := &fakeDownstream{departures: []corridor.Departure{
		{DepartureTime: arrival.Add(20 * time.Minute), TrainClass: "RE"},
	}}
	registry := &fakeRegistry{stations: map[string]*corridor.StationRecord{
		berlin.ID: berlin, hamburg.ID: hamburg,
	}}
	a := fragility.NewAnalyzer(src, registry)

	conn := corridor.ConnectionRecord{
		FromStationID: berlin.ID,
		ToStationID:   hamburg.ID,
		ArrivalTime:   arrival,
		DepartureTime: arrival.Add(3 * time.Minute),
		TrainClass:    "ICE",
		BufferMinutes: 3,
	}
	rec := a.Analyze(context.Background(), conn)

	// buffer 100, cascade 80, 4 alternatives:
	// 0.4*100 + 0.4*80 + 0.2*60 = 84, ICE weight 1.0.
	if rec.FragilityScore != 84 {
		t.Errorf("FragilityScore = %d, want 84", rec.FragilityScore)
	}
	if rec.CascadeRisk != 80 {
		t.Errorf("CascadeRisk = %d, want 80", rec.CascadeRisk)
	}
	if rec.AlternativeRouteCount != 4 {
		t.Errorf("AlternativeRouteCount = %d, want 4", rec.AlternativeRouteCount)
	}
	if len(rec.Recommendations) != 4 {
		t.Errorf("got %d recommendations, want 4: %v", len(rec.Recommendations), rec.Recommendations)
	}
}

func TestAnalyzeRegionalWeightDampensScore(t *testing.T) {
	a := fragility.NewAnalyzer(&fakeDownstream{}, &fakeRegistry{})
	conn := corridor.ConnectionRecord{
		FromStationID: "a",
		ToStationID:   "b",
		TrainClass:    "RB 14",
		BufferMinutes: 3,
	}
	rec := a.Analyze(context.Background(), conn)

	// buffer 100, cascade floor 20, direct route only:
	// (0.4*100 + 0.4*20 + 0.2*90) * 0.7 = 46.2, rounded 46.
	if rec.FragilityScore != 46 {
		t.Errorf("FragilityScore = %d, want 46", rec.FragilityScore)
	}
}
