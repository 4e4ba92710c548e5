package scoring_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sanjujohn8055/berlin-hamburg-corridor-analysis-sub001/pkg/corridor"
	"github.com/sanjujohn8055/berlin-hamburg-corridor-analysis-sub001/pkg/scoring"
)

// fakeTraffic serves fixed daily stop counts per station and fails for
// stations outside its table.
type fakeTraffic struct {
	stops map[string]int
}

func (f *fakeTraffic) DailyStopCount(_ context.Context, stationID string, _ time.Time) (int, error) {
	stops, ok := f.stops[stationID]
	if !ok {
		return 0, errors.New("no traffic data")
	}
	return stops, nil
}

func balancedProfile() scoring.WeightProfile {
	p, _ := scoring.Preset(scoring.PresetBalanced)
	return p
}

func TestScoreStationDeterministic(t *testing.T) {
	engine := scoring.NewEngine(&fakeTraffic{stops: map[string]int{"8011160": 255}}, 0)
	station := corridor.StationRecord{
		ID:             "8011160",
		Category:       1,
		PlatformCount:  12,
		DistanceKM:     0,
		IsStrategicHub: true,
	}

	first, err := engine.ScoreStation(context.Background(), station, balancedProfile(), time.Now())
	if err != nil {
		t.Fatalf("ScoreStation: %v", err)
	}
	second, err := engine.ScoreStation(context.Background(), station, balancedProfile(), time.Now())
	if err != nil {
		t.Fatalf("ScoreStation: %v", err)
	}
	if first != second {
		t.Errorf("repeated scoring diverged: %+v vs %+v", first, second)
	}
	if first.TrafficVolume != 50 {
		t.Errorf("TrafficVolume = %d, want 50 for 255 stops", first.TrafficVolume)
	}
	if first.CompositeScore < 0 || first.CompositeScore > 100 {
		t.Errorf("CompositeScore %d outside [0,100]", first.CompositeScore)
	}
}

func TestScoreStationTrafficFallback(t *testing.T) {
	engine := scoring.NewEngine(&fakeTraffic{}, 0)
	station := corridor.StationRecord{ID: "8010404", Category: 2, PlatformCount: 8}

	m, err := engine.ScoreStation(context.Background(), station, balancedProfile(), time.Now())
	if err != nil {
		t.Fatalf("ScoreStation: %v", err)
	}
	if m.TrafficVolume != scoring.NeutralTrafficScore {
		t.Errorf("TrafficVolume = %d, want neutral %d on source failure",
			m.TrafficVolume, scoring.NeutralTrafficScore)
	}
}

func TestScoreStationRejectsBadCategory(t *testing.T) {
	engine := scoring.NewEngine(&fakeTraffic{}, 0)
	station := corridor.StationRecord{ID: "x", Category: 9, PlatformCount: 1}

	if _, err := engine.ScoreStation(context.Background(), station, balancedProfile(), time.Now()); err == nil {
		t.Error("category 9 should be rejected")
	}
}

func TestCompositeFocusRaisesInfrastructureShare(t *testing.T) {
	// A bare halt with a saturated capacity score. Shifting weight toward
	// infrastructure must raise the composite.
	m := scoring.ScoreMetrics{
		TrafficVolume:       50,
		CapacityConstraints: 100,
		StrategicImportance: 16,
		FacilityDeficits:    100,
	}

	balanced := scoring.Composite(m, balancedProfile())
	if balanced != 67 {
		t.Errorf("balanced composite = %d, want 67", balanced)
	}

	infra, _ := scoring.Preset(scoring.PresetInfrastructure)
	focused := scoring.Composite(m, infra)
	if focused != 74 {
		t.Errorf("infrastructure-focus composite = %d, want 74", focused)
	}
	if focused <= balanced {
		t.Errorf("focus should raise the composite: %d <= %d", focused, balanced)
	}
}

func TestCompositeIgnoresFocusedProfileWeights(t *testing.T) {
	m := scoring.ScoreMetrics{TrafficVolume: 100, CapacityConstraints: 100, StrategicImportance: 0, FacilityDeficits: 0}

	override := scoring.WeightProfile{
		InfrastructureWeight: 0.4,
		TimetableWeight:      0.3,
		PopulationRiskWeight: 0.3,
		FocusArea:            scoring.FocusInfrastructure,
	}
	// The override table pins infrastructure at 0.6 regardless of the
	// profile's stored 0.4.
	if got := scoring.Composite(m, override); got != 60 {
		t.Errorf("Composite = %d, want 60 from the 0.6 override", got)
	}
}

func TestScoreBatchSkipsInvalidStations(t *testing.T) {
	engine := scoring.NewEngine(&fakeTraffic{stops: map[string]int{"a": 100, "c": 100}}, 0)
	stations := []corridor.StationRecord{
		{ID: "a", Category: 3, PlatformCount: 6},
		{ID: "b", Category: 0, PlatformCount: 1}, // invalid, skipped
		{ID: "c", Category: 5, PlatformCount: 2},
	}

	scores, err := engine.ScoreBatch(context.Background(), stations, balancedProfile(), time.Now())
	if err != nil {
		t.Fatalf("ScoreBatch: %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("got %d scores, want 2", len(scores))
	}
	if scores[0].StationID != "a" || scores[1].StationID != "c" {
		t.Errorf("unexpected batch order: %s, %s", scores[0].StationID, scores[1].StationID)
	}
}

func TestScoreBatchStopsOnCancel(t *testing.T) {
	engine := scoring.NewEngine(&fakeTraffic{}, time.Hour)
	stations := []corridor.StationRecord{
		{ID: "a", Category: 3, PlatformCount: 6},
		{ID: "b", Category: 3, PlatformCount: 6},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.ScoreBatch(ctx, stations, balancedProfile(), time.Now())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
