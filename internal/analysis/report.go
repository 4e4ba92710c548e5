package analysis

import (
	"time"

	"github.com/sanjujohn8055/berlin-hamburg-corridor-analysis-sub001/internal/recalc"
	"github.com/sanjujohn8055/berlin-hamburg-corridor-analysis-sub001/pkg/fragility"
	"github.com/sanjujohn8055/berlin-hamburg-corridor-analysis-sub001/pkg/scoring"
)

// RunReport is the archived output of one full analysis run.
type RunReport struct {
	RunID              string                 `json:"run_id"`
	AnalysisDate       string                 `json:"analysis_date"`
	UserID             string                 `json:"user_id"`
	ProfileName        string                 `json:"profile_name"`
	Profile            scoring.WeightProfile  `json:"profile"`
	StationScores      []scoring.StationScore `json:"station_scores"`
	Fragility          []fragility.Record     `json:"fragility"`
	SignificantChanges []recalc.ScoreChange   `json:"significant_changes"`
	StartedAt          time.Time              `json:"started_at"`
	DurationMs         int                    `json:"duration_ms"`
	SkippedStations    int                    `json:"skipped_stations"`
}
