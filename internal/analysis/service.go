// Package analysis orchestrates full corridor analysis runs: batch station
// scoring under the governing weight profile, the connection fragility sweep,
// result persistence and report archival. Its Service is also the primary
// recalculation subscriber.
package analysis

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/sanjujohn8055/berlin-hamburg-corridor-analysis-sub001/internal/archive"
	"github.com/sanjujohn8055/berlin-hamburg-corridor-analysis-sub001/internal/recalc"
	"github.com/sanjujohn8055/berlin-hamburg-corridor-analysis-sub001/pkg/corridor"
	"github.com/sanjujohn8055/berlin-hamburg-corridor-analysis-sub001/pkg/fragility"
	"github.com/sanjujohn8055/berlin-hamburg-corridor-analysis-sub001/pkg/scoring"
)

// ConnectionLister supplies the full connection set for the fragility sweep.
type ConnectionLister interface {
	ListConnections(ctx context.Context) ([]corridor.ConnectionRecord, error)
}

// Service runs the analysis pipeline.
type Service struct {
	db          *sql.DB
	registry    corridor.StationRegistry
	connections ConnectionLister
	engine      *scoring.Engine
	analyzer    *fragility.Analyzer
	archive     archive.Client

	mu          sync.Mutex
	lastChanges []recalc.ScoreChange
}

// NewService creates an analysis Service. The archive client may be nil, in
// which case reports are not archived.
func NewService(db *sql.DB, reg corridor.StationRegistry, conns ConnectionLister, engine *scoring.Engine, analyzer *fragility.Analyzer, arc archive.Client) *Service {
	return &Service{
		db:          db,
		registry:    reg,
		connections: conns,
		engine:      engine,
		analyzer:    analyzer,
		archive:     arc,
	}
}

// Name identifies the service in recalculation settlements.
func (s *Service) Name() string { return "station-scores" }

// Recalculate implements recalc.Subscriber: it re-scores the full station
// set under the changed profile, persists the new scores and records the
// significant changes against the previously stored state.
func (s *Service) Recalculate(ctx context.Context, ev recalc.Event) error {
	date := time.Now().UTC()
	_, changes, _, err := s.rescoreStations(ctx, ev.Profile, date)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.lastChanges = changes
	s.mu.Unlock()
	return nil
}

// LastChanges returns the significant changes surfaced by the most recent
// recalculation, sorted descending by magnitude.
func (s *Service) LastChanges() []recalc.ScoreChange {
	s.mu.Lock()
	defer s.mu.Unlock()
	changes := make([]recalc.ScoreChange, len(s.lastChanges))
	copy(changes, s.lastChanges)
	return changes
}

// Run executes a full analysis for the user's active profile: station
// scoring, fragility sweep, persistence and report archival.
func (s *Service) Run(ctx context.Context, userID, profileName string, profile scoring.WeightProfile) (*RunReport, error) {
	started := time.Now()
	date := started.UTC()

	scores, changes, total, err := s.rescoreStations(ctx, profile, date)
	if err != nil {
		return nil, err
	}

	records, err := s.fragilitySweep(ctx, date)
	if err != nil {
		return nil, err
	}

	report := &RunReport{
		RunID:              uuid.New().String(),
		AnalysisDate:       date.Format("2006-01-02"),
		UserID:             userID,
		ProfileName:        profileName,
		Profile:            profile,
		StationScores:      scores,
		Fragility:          records,
		SignificantChanges: changes,
		StartedAt:          started,
		DurationMs:         int(time.Since(started).Milliseconds()),
		SkippedStations:    total - len(scores),
	}

	if s.archive != nil {
		data, err := json.Marshal(report)
		if err != nil {
			return nil, fmt.Errorf("marshal report: %w", err)
		}
		if err := s.archive.PutReport(ctx, report.AnalysisDate, report.RunID, data); err != nil {
			// Archival is best effort; the persisted rows are authoritative.
			log.Printf("analysis %s: archive report: %v", report.RunID, err)
		}
	}

	return report, nil
}

// ArchivedReport fetches a previously archived run report.
func (s *Service) ArchivedReport(ctx context.Context, analysisDate, runID string) ([]byte, error) {
	if s.archive == nil {
		return nil, fmt.Errorf("report archive not configured")
	}
	return s.archive.GetReport(ctx, analysisDate, runID)
}

// rescoreStations scores every station, upserts the rows for the analysis
// date and diffs the composites against the previously stored state. The
// third return value is the total station count before skips.
func (s *Service) rescoreStations(ctx context.Context, profile scoring.WeightProfile, date time.Time) ([]scoring.StationScore, []recalc.ScoreChange, int, error) {
	stations, err := s.registry.ListStations(ctx)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("list stations: %w", err)
	}

	before, err := s.latestComposites(ctx)
	if err != nil {
		return nil, nil, 0, err
	}

	scores, err := s.engine.ScoreBatch(ctx, stations, profile, date)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("score batch: %w", err)
	}

	after := make(map[string]int, len(scores))
	for _, sc := range scores {
		after[sc.StationID] = sc.Metrics.CompositeScore
		if err := s.upsertScore(ctx, sc, date); err != nil {
			return nil, nil, 0, err
		}
	}

	return scores, recalc.SignificantChanges(before, after), len(stations), nil
}

// latestComposites reads the most recent composite score per station.
func (s *Service) latestComposites(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT ON (station_id) station_id, composite_score
		 FROM station_scores ORDER BY station_id, analysis_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("load prior scores: %w", err)
	}
	defer rows.Close()

	composites := make(map[string]int)
	for rows.Next() {
		var id string
		var score int
		if err := rows.Scan(&id, &score); err != nil {
			return nil, fmt.Errorf("scan prior score: %w", err)
		}
		composites[id] = score
	}
	return composites, rows.Err()
}

func (s *Service) upsertScore(ctx context.Context, sc scoring.StationScore, date time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO station_scores (station_id, analysis_date, traffic_volume, capacity_constraints, strategic_importance, facility_deficits, composite_score)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (station_id, analysis_date) DO UPDATE
		   SET traffic_volume = EXCLUDED.traffic_volume,
		       capacity_constraints = EXCLUDED.capacity_constraints,
		       strategic_importance = EXCLUDED.strategic_importance,
		       facility_deficits = EXCLUDED.facility_deficits,
		       composite_score = EXCLUDED.composite_score,
		       updated_at = now()`,
		sc.StationID, date.Format("2006-01-02"),
		sc.Metrics.TrafficVolume, sc.Metrics.CapacityConstraints,
		sc.Metrics.StrategicImportance, sc.Metrics.FacilityDeficits,
		sc.Metrics.CompositeScore,
	)
	if err != nil {
		return fmt.Errorf("upsert score %s: %w", sc.StationID, err)
	}
	return nil
}

// fragilitySweep analyzes every scheduled connection and upserts one
// fragility row per connection per analysis date.
func (s *Service) fragilitySweep(ctx context.Context, date time.Time) ([]fragility.Record, error) {
	conns, err := s.connections.ListConnections(ctx)
	if err != nil {
		return nil, fmt.Errorf("list connections: %w", err)
	}

	records := make([]fragility.Record, 0, len(conns))
	for _, conn := range conns {
		rec := s.analyzer.Analyze(ctx, conn)
		if err := s.upsertFragility(ctx, rec, date); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func (s *Service) upsertFragility(ctx context.Context, rec fragility.Record, date time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO connection_fragility (from_station_id, to_station_id, analysis_date, buffer_minutes, fragility_score, cascade_risk, alternative_route_count, recommendations)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (from_station_id, to_station_id, analysis_date) DO UPDATE
		   SET buffer_minutes = EXCLUDED.buffer_minutes,
		       fragility_score = EXCLUDED.fragility_score,
		       cascade_risk = EXCLUDED.cascade_risk,
		       alternative_route_count = EXCLUDED.alternative_route_count,
		       recommendations = EXCLUDED.recommendations,
		       updated_at = now()`,
		rec.FromStationID, rec.ToStationID, date.Format("2006-01-02"),
		rec.BufferMinutes, rec.FragilityScore, rec.CascadeRisk,
		rec.AlternativeRouteCount, pq.Array(rec.Recommendations),
	)
	if err != nil {
		return fmt.Errorf("upsert fragility %s -> %s: %w", rec.FromStationID, rec.ToStationID, err)
	}
	return nil
}
