package scoring

import (
	"context"
	"fmt"
	"log"
	"math"
	"sync/atomic"
	"time"

	"github.com/sanjujohn8055/berlin-hamburg-corridor-analysis-sub001/pkg/corridor"
)

// Composite formula split of the infrastructure weight between the traffic
// and capacity sub-metrics.
const (
	compositeTrafficShare  = 0.3
	compositeCapacityShare = 0.7
)

// DefaultThrottle is the inter-station delay during batch scoring. The
// upstream timetable feed behind the traffic source is rate limited.
const DefaultThrottle = 100 * time.Millisecond

// Engine computes station upgrade-priority scores. It reads traffic data
// through the corridor.TrafficSource contract and degrades to a neutral
// traffic score when that collaborator is unavailable.
type Engine struct {
	traffic  corridor.TrafficSource
	throttle atomic.Int64 // nanoseconds between stations in a batch
}

// NewEngine creates a scoring engine. A throttle of 0 disables the
// inter-station delay (useful in tests); pass DefaultThrottle otherwise.
func NewEngine(traffic corridor.TrafficSource, throttle time.Duration) *Engine {
	e := &Engine{traffic: traffic}
	e.throttle.Store(int64(throttle))
	return e
}

// SetThrottle adjusts the inter-station delay. Safe to call while a batch is
// running; the new value applies from the next station.
func (e *Engine) SetThrottle(throttle time.Duration) {
	e.throttle.Store(int64(throttle))
}

// ScoreStation computes all sub-metrics and the composite score for one
// station under the given profile. The result is deterministic for a fixed
// (station, profile, traffic reading); a traffic source failure falls back to
// NeutralTrafficScore instead of failing the computation.
func (e *Engine) ScoreStation(ctx context.Context, station corridor.StationRecord, profile WeightProfile, date time.Time) (ScoreMetrics, error) {
	if station.Category < 1 || station.Category > 7 {
		return ScoreMetrics{}, fmt.Errorf("station %s: category %d out of range", station.ID, station.Category)
	}
	if station.PlatformCount < 0 {
		return ScoreMetrics{}, fmt.Errorf("station %s: negative platform count", station.ID)
	}

	traffic := NeutralTrafficScore
	if e.traffic != nil {
		stops, err := e.traffic.DailyStopCount(ctx, station.ID, date)
		if err != nil {
			log.Printf("score %s: traffic source unavailable, using neutral score: %v", station.ID, err)
		} else {
			traffic = TrafficVolumeScore(stops)
		}
	}

	facility := FacilityDeficitScore(station)
	capacity := CapacityConstraintScore(PlatformAdequacyScore(station), facility)
	strategic := StrategicImportanceScore(station)

	m := ScoreMetrics{
		TrafficVolume:       traffic,
		CapacityConstraints: capacity,
		StrategicImportance: strategic,
		FacilityDeficits:    facility,
	}
	m.CompositeScore = Composite(m, profile)
	return m, nil
}

// Composite applies the weighting formula to already-computed sub-metrics.
// The profile's weights are replaced by the focus-area override table when
// the profile is focused.
func Composite(m ScoreMetrics, profile WeightProfile) int {
	w := ResolveEffectiveWeights(profile)
	raw := float64(m.TrafficVolume)*w.Infrastructure*compositeTrafficShare +
		float64(m.CapacityConstraints)*w.Infrastructure*compositeCapacityShare +
		float64(m.StrategicImportance)*w.Timetable +
		float64(m.FacilityDeficits)*w.PopulationRisk
	return clampScore(int(math.Round(raw)))
}

// ScoreBatch scores stations sequentially with the engine's inter-station
// throttle. A failure for one station is logged and the station skipped; the
// batch only aborts when ctx is cancelled.
func (e *Engine) ScoreBatch(ctx context.Context, stations []corridor.StationRecord, profile WeightProfile, date time.Time) ([]StationScore, error) {
	scores := make([]StationScore, 0, len(stations))
	for i, station := range stations {
		if throttle := time.Duration(e.throttle.Load()); i > 0 && throttle > 0 {
			select {
			case <-ctx.Done():
				return scores, ctx.Err()
			case <-time.After(throttle):
			}
		} else if err := ctx.Err(); err != nil {
			return scores, err
		}

		m, err := e.ScoreStation(ctx, station, profile, date)
		if err != nil {
			log.Printf("score batch: skipping station %s: %v", station.ID, err)
			continue
		}
		scores = append(scores, StationScore{StationID: station.ID, Name: station.Name, Metrics: m})
	}
	return scores, nil
}
