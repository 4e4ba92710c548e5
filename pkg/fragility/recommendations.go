package fragility

import "fmt"

// Recommendation trigger thresholds.
const (
	recommendBufferAt     = 80
	recommendCascadeAt    = 70
	recommendUrgentAt     = 80
	recommendMonitoringAt = 60
)

// Recommendations generates the ordered advisory list for a connection. The
// check order is fixed (buffer, cascade, alternatives, overall) and every
// matching advisory is included.
func Recommendations(bufferScore, cascadeRisk, alternativeRoutes, fragilityScore int) []string {
	var recs []string

	if bufferScore >= recommendBufferAt {
		recs = append(recs, fmt.Sprintf("Increase scheduled buffer to at least %d minutes", bufferMediumMin))
	}
	if cascadeRisk >= recommendCascadeAt {
		recs = append(recs,
			"Activate delay-management protocol for this connection",
			"Stagger downstream departures to absorb propagated delays")
	}
	if alternativeRoutes <= 1 {
		recs = append(recs, "Develop alternative routing for this relation")
	}
	if fragilityScore >= recommendUrgentAt {
		recs = append(recs, "Connection requires immediate optimization")
	} else if fragilityScore >= recommendMonitoringAt {
		recs = append(recs, "Place connection under regular monitoring")
	}

	return recs
}
