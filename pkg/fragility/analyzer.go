// Package fragility implements the connection fragility analyzer: it rates
// scheduled transfer opportunities by buffer tightness, cascade risk into
// downstream departures and the availability of alternative routing.
package fragility

import (
	"context"
	"log"
	"math"
	"strings"

	"github.com/sanjujohn8055/berlin-hamburg-corridor-analysis-sub001/pkg/corridor"
)

// Record is the analyzer output for one connection.
type Record struct {
	FromStationID         string   `json:"from"`
	ToStationID           string   `json:"to"`
	BufferMinutes         float64  `json:"buffer_minutes"`
	FragilityScore        int      `json:"fragility_score"`
	CascadeRisk           int      `json:"cascade_risk"`
	AlternativeRouteCount int      `json:"alternative_route_count"`
	Recommendations       []string `json:"recommendations"`
}

// Buffer fragility thresholds in minutes. Fixed constants of the design, not
// configurable.
const (
	bufferCriticalMin = 5
	bufferHighMin     = 10
	bufferMediumMin   = 15
	bufferLowMin      = 20
)

// Cascade gap thresholds and contributions.
const (
	cascadeTightGapMin    = 30
	cascadeModerateGapMin = 60

	cascadeFloor          = 20
	cascadeDefaultOnError = 50
)

// Score blend weights and the importance multiplier per train class.
const (
	bufferWeight      = 0.4
	cascadeWeight     = 0.4
	alternativeWeight = 0.2

	maxAlternativeRoutes = 5
)

// Analyzer computes fragility records. Collaborator failures degrade to
// documented defaults; Analyze never fails.
type Analyzer struct {
	connections corridor.ConnectionSource
	stations    corridor.StationRegistry
}

// NewAnalyzer creates a fragility analyzer over the given collaborators.
func NewAnalyzer(connections corridor.ConnectionSource, stations corridor.StationRegistry) *Analyzer {
	return &Analyzer{connections: connections, stations: stations}
}

// Analyze rates one scheduled connection.
func (a *Analyzer) Analyze(ctx context.Context, conn corridor.ConnectionRecord) Record {
	buffer := BufferFragilityScore(conn.BufferMinutes)
	cascade := a.cascadeRisk(ctx, conn)
	routes := a.alternativeRouteCount(ctx, conn)
	weight := ImportanceWeight(conn.TrainClass)

	raw := bufferWeight*float64(buffer) +
		cascadeWeight*float64(cascade) +
		alternativeWeight*float64(100-routes*10)
	score := int(math.Round(raw * weight))
	if score > 100 {
		score = 100
	}

	rec := Record{
		FromStationID:         conn.FromStationID,
		ToStationID:           conn.ToStationID,
		BufferMinutes:         conn.BufferMinutes,
		FragilityScore:        score,
		CascadeRisk:           cascade,
		AlternativeRouteCount: routes,
	}
	rec.Recommendations = Recommendations(buffer, cascade, routes, score)
	return rec
}

// BufferFragilityScore maps scheduled buffer minutes onto the fixed step
// function: the tighter the transfer, the higher the fragility.
func BufferFragilityScore(bufferMinutes float64) int {
	switch {
	case bufferMinutes < bufferCriticalMin:
		return 100
	case bufferMinutes < bufferHighMin:
		return 80
	case bufferMinutes < bufferMediumMin:
		return 60
	case bufferMinutes < bufferLowMin:
		return 40
	default:
		return 20
	}
}

// cascadeRisk inspects downstream departures from the destination after the
// arrival. No downstream connections means the floor risk; a source failure
// degrades to the default rather than aborting the analysis.
func (a *Analyzer) cascadeRisk(ctx context.Context, conn corridor.ConnectionRecord) int {
	if a.connections == nil {
		return cascadeDefaultOnError
	}
	downstream, err := a.connections.DownstreamConnections(ctx, conn.ToStationID, conn.ArrivalTime)
	if err != nil {
		log.Printf("fragility %s -> %s: downstream source unavailable, using default risk: %v", conn.FromStationID, conn.ToStationID, err)
		return cascadeDefaultOnError
	}
	if len(downstream) == 0 {
		return cascadeFloor
	}

	total := 0
	for _, dep := range downstream {
		gap := dep.DepartureTime.Sub(conn.ArrivalTime).Minutes()
		switch {
		case gap < cascadeTightGapMin:
			total += 80
		case gap < cascadeModerateGapMin:
			total += 60
		default:
			total += 20
		}
	}

	risk := int(math.Round(float64(total) / float64(len(downstream))))
	if risk > 100 {
		risk = 100
	}
	return risk
}

// alternativeRouteCount estimates routing alternatives from endpoint
// categories and their distance apart along the corridor. This is a
// heuristic, not a graph traversal; a registry failure defaults to the
// direct route only.
func (a *Analyzer) alternativeRouteCount(ctx context.Context, conn corridor.ConnectionRecord) int {
	if a.stations == nil {
		return 1
	}
	from, err := a.stations.GetStation(ctx, conn.FromStationID)
	if err != nil || from == nil {
		return 1
	}
	to, err := a.stations.GetStation(ctx, conn.ToStationID)
	if err != nil || to == nil {
		return 1
	}

	count := 1 // the direct route
	if from.Category <= 2 && to.Category <= 2 {
		count += 2
	} else if from.Category <= 4 || to.Category <= 4 {
		count++
	}
	if math.Abs(from.DistanceKM-to.DistanceKM) > 100 {
		count++
	}
	if count > maxAlternativeRoutes {
		count = maxAlternativeRoutes
	}
	return count
}

// ImportanceWeight maps a train class to its connection importance
// multiplier. Matching is case-insensitive substring matching, long-distance
// classes first so "ICE" is not caught by a shorter pattern.
func ImportanceWeight(trainClass string) float64 {
	class := strings.ToLower(trainClass)
	switch {
	case strings.Contains(class, "ice"), strings.Contains(class, "ic"):
		return 1.0
	case strings.Contains(class, "re"), strings.Contains(class, "rb"):
		return 0.7
	default:
		return 0.4
	}
}
