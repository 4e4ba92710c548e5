package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/sanjujohn8055/berlin-hamburg-corridor-analysis-sub001/internal/analysis"
)

type runAnalysisRequest struct {
	UserID string `json:"user_id"`
}

// handleRunAnalysis executes a full corridor analysis under the user's
// active profile and returns the run report.
func (h *Handler) handleRunAnalysis(w http.ResponseWriter, r *http.Request) {
	var req runAnalysisRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
	}
	if req.UserID == "" {
		req.UserID = "default"
	}

	name, p, err := h.profiles.GetActiveProfile(r.Context(), req.UserID)
	if err != nil {
		writeProfileError(w, err)
		return
	}

	report, err := h.analysis.Run(r.Context(), req.UserID, name, p)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "analysis run: "+err.Error())
		return
	}

	h.cache.Put(report)
	writeJSON(w, http.StatusOK, report)
}

// handleGetReport serves an archived run report, from cache when possible.
func (h *Handler) handleGetReport(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	date, runID := vars["date"], vars["runID"]

	if report := h.cache.Get(runID); report != nil {
		writeJSON(w, http.StatusOK, report)
		return
	}

	data, err := h.analysis.ArchivedReport(r.Context(), date, runID)
	if err != nil {
		writeError(w, http.StatusNotFound, "report not found")
		return
	}

	var report analysis.RunReport
	if err := json.Unmarshal(data, &report); err != nil {
		writeError(w, http.StatusInternalServerError, "decode report: "+err.Error())
		return
	}
	h.cache.Put(&report)
	writeJSON(w, http.StatusOK, &report)
}
