package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/sanjujohn8055/berlin-hamburg-corridor-analysis-sub001/internal/profile"
	"github.com/sanjujohn8055/berlin-hamburg-corridor-analysis-sub001/internal/recalc"
	"github.com/sanjujohn8055/berlin-hamburg-corridor-analysis-sub001/pkg/scoring"
)

type saveProfileResponse struct {
	Profile            scoring.WeightProfile `json:"profile"`
	Subscribers        int                   `json:"subscribers"`
	SubscriberFailures int                   `json:"subscriber_failures"`
	SignificantChanges []recalc.ScoreChange  `json:"significant_changes"`
}

// handleSaveProfile validates and stores a profile, blocking until every
// recalculation subscriber has settled.
func (h *Handler) handleSaveProfile(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID, name := vars["userID"], vars["name"]

	var p scoring.WeightProfile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	settlement, err := h.profiles.Save(r.Context(), userID, name, p)
	if err != nil {
		writeProfileError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, saveProfileResponse{
		Profile:            p,
		Subscribers:        len(settlement.Outcomes),
		SubscriberFailures: settlement.Failed(),
		SignificantChanges: h.analysis.LastChanges(),
	})
}

func (h *Handler) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	p, err := h.profiles.Get(r.Context(), vars["userID"], vars["name"])
	if err != nil {
		writeProfileError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	names, err := h.profiles.List(r.Context(), vars["userID"])
	if err != nil {
		writeProfileError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"presets":  scoring.PresetNames(),
		"profiles": names,
	})
}

func (h *Handler) handleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.profiles.Delete(r.Context(), vars["userID"], vars["name"]); err != nil {
		writeProfileError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type focusProfileRequest struct {
	Name      string                `json:"name"`
	FocusArea scoring.FocusArea     `json:"focus_area"`
	Weights   *scoring.WeightTriple `json:"weights,omitempty"`
}

func (h *Handler) handleCreateFocusProfile(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req focusProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "profile name is required")
		return
	}

	p, settlement, err := h.profiles.CreateFocusProfile(r.Context(), vars["userID"], req.Name, req.FocusArea, req.Weights)
	if err != nil {
		writeProfileError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, saveProfileResponse{
		Profile:            p,
		Subscribers:        len(settlement.Outcomes),
		SubscriberFailures: settlement.Failed(),
		SignificantChanges: h.analysis.LastChanges(),
	})
}

func (h *Handler) handleActivateProfile(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	settlement, err := h.profiles.SetActiveProfile(r.Context(), vars["userID"], vars["name"])
	if err != nil {
		writeProfileError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"active":              vars["name"],
		"subscribers":         len(settlement.Outcomes),
		"subscriber_failures": settlement.Failed(),
		"significant_changes": h.analysis.LastChanges(),
	})
}

// handleApplyProfile re-runs recalculation under a profile without storing
// anything; useful for previewing how a profile reshapes the rankings.
func (h *Handler) handleApplyProfile(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	settlement, err := h.profiles.ApplyProfile(r.Context(), vars["userID"], vars["name"])
	if err != nil {
		writeProfileError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"applied":             vars["name"],
		"subscribers":         len(settlement.Outcomes),
		"subscriber_failures": settlement.Failed(),
		"significant_changes": h.analysis.LastChanges(),
	})
}

func (h *Handler) handleGetActiveProfile(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	name, p, err := h.profiles.GetActiveProfile(r.Context(), vars["userID"])
	if err != nil {
		writeProfileError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"name": name, "profile": p})
}

// writeProfileError maps the store's error taxonomy onto HTTP statuses.
func writeProfileError(w http.ResponseWriter, err error) {
	var validationErr *scoring.ValidationError
	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":      "validation failed",
			"violations": validationErr.Violations,
		})
	case errors.Is(err, profile.ErrImmutableProfile):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, profile.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
