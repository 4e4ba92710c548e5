package api

import (
	"net/http"
	"sort"

	"github.com/lib/pq"
)

func (h *Handler) handleListStations(w http.ResponseWriter, r *http.Request) {
	stations, err := h.registry.ListStations(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list stations: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stations)
}

type scoreRow struct {
	StationID           string `json:"station_id"`
	Name                string `json:"name"`
	AnalysisDate        string `json:"analysis_date"`
	TrafficVolume       int    `json:"traffic_volume"`
	CapacityConstraints int    `json:"capacity_constraints"`
	StrategicImportance int    `json:"strategic_importance"`
	FacilityDeficits    int    `json:"facility_deficits"`
	CompositeScore      int    `json:"composite_score"`
}

// handleListScores returns the latest stored score per station, ranked by
// composite score descending.
func (h *Handler) handleListScores(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.QueryContext(r.Context(),
		`SELECT DISTINCT ON (s.station_id)
		        s.station_id, st.name, s.analysis_date::text,
		        s.traffic_volume, s.capacity_constraints, s.strategic_importance,
		        s.facility_deficits, s.composite_score
		 FROM station_scores s
		 JOIN stations st ON st.id = s.station_id
		 ORDER BY s.station_id, s.analysis_date DESC`)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "query scores: "+err.Error())
		return
	}
	defer rows.Close()

	var scores []scoreRow
	for rows.Next() {
		var sr scoreRow
		if err := rows.Scan(&sr.StationID, &sr.Name, &sr.AnalysisDate,
			&sr.TrafficVolume, &sr.CapacityConstraints, &sr.StrategicImportance,
			&sr.FacilityDeficits, &sr.CompositeScore); err != nil {
			writeError(w, http.StatusInternalServerError, "scan score: "+err.Error())
			return
		}
		scores = append(scores, sr)
	}
	if err := rows.Err(); err != nil {
		writeError(w, http.StatusInternalServerError, "iterate scores: "+err.Error())
		return
	}

	// Rank by priority.
	sort.Slice(scores, func(i, j int) bool {
		return scores[i].CompositeScore > scores[j].CompositeScore
	})

	writeJSON(w, http.StatusOK, scores)
}

type fragilityRow struct {
	FromStationID         string   `json:"from"`
	ToStationID           string   `json:"to"`
	AnalysisDate          string   `json:"analysis_date"`
	BufferMinutes         float64  `json:"buffer_minutes"`
	FragilityScore        int      `json:"fragility_score"`
	CascadeRisk           int      `json:"cascade_risk"`
	AlternativeRouteCount int      `json:"alternative_route_count"`
	Recommendations       []string `json:"recommendations"`
}

// handleListFragility returns the latest fragility record per connection,
// most fragile first.
func (h *Handler) handleListFragility(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.QueryContext(r.Context(),
		`SELECT DISTINCT ON (from_station_id, to_station_id)
		        from_station_id, to_station_id, analysis_date::text,
		        buffer_minutes, fragility_score, cascade_risk,
		        alternative_route_count, recommendations
		 FROM connection_fragility
		 ORDER BY from_station_id, to_station_id, analysis_date DESC`)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "query fragility: "+err.Error())
		return
	}
	defer rows.Close()

	var records []fragilityRow
	for rows.Next() {
		var fr fragilityRow
		if err := rows.Scan(&fr.FromStationID, &fr.ToStationID, &fr.AnalysisDate,
			&fr.BufferMinutes, &fr.FragilityScore, &fr.CascadeRisk,
			&fr.AlternativeRouteCount, pq.Array(&fr.Recommendations)); err != nil {
			writeError(w, http.StatusInternalServerError, "scan fragility: "+err.Error())
			return
		}
		records = append(records, fr)
	}
	if err := rows.Err(); err != nil {
		writeError(w, http.StatusInternalServerError, "iterate fragility: "+err.Error())
		return
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].FragilityScore > records[j].FragilityScore
	})

	writeJSON(w, http.StatusOK, records)
}
