// Package api implements the corridor analysis REST surface: weight-profile
// management, station scores, connection fragility and analysis runs. The
// handlers stay thin; all scoring semantics live in the library packages.
package api

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/sanjujohn8055/berlin-hamburg-corridor-analysis-sub001/internal/analysis"
	"github.com/sanjujohn8055/berlin-hamburg-corridor-analysis-sub001/internal/profile"
	"github.com/sanjujohn8055/berlin-hamburg-corridor-analysis-sub001/internal/registry"
)

// Handler is the top-level API handler.
type Handler struct {
	db       *sql.DB
	profiles *profile.Service
	analysis *analysis.Service
	registry *registry.Store
	cache    *ReportCache
}

// NewHandler creates an API handler.
func NewHandler(db *sql.DB, profiles *profile.Service, analysisSvc *analysis.Service, reg *registry.Store, cache *ReportCache) *Handler {
	if cache == nil {
		cache = NewReportCacheFromEnv()
	}
	return &Handler{
		db:       db,
		profiles: profiles,
		analysis: analysisSvc,
		registry: reg,
		cache:    cache,
	}
}

// Router builds the route table.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", h.handleHealth).Methods("GET")

	// Profiles. The /active and /focus routes are registered before /{name}
	// so those words never resolve as profile names.
	r.HandleFunc("/api/v1/profiles/{userID}/active", h.handleGetActiveProfile).Methods("GET")
	r.HandleFunc("/api/v1/profiles/{userID}/focus", h.handleCreateFocusProfile).Methods("POST")
	r.HandleFunc("/api/v1/profiles/{userID}", h.handleListProfiles).Methods("GET")
	r.HandleFunc("/api/v1/profiles/{userID}/{name}", h.handleGetProfile).Methods("GET")
	r.HandleFunc("/api/v1/profiles/{userID}/{name}", h.handleSaveProfile).Methods("PUT")
	r.HandleFunc("/api/v1/profiles/{userID}/{name}", h.handleDeleteProfile).Methods("DELETE")
	r.HandleFunc("/api/v1/profiles/{userID}/{name}/activate", h.handleActivateProfile).Methods("POST")
	r.HandleFunc("/api/v1/profiles/{userID}/{name}/apply", h.handleApplyProfile).Methods("POST")

	// Corridor data and results.
	r.HandleFunc("/api/v1/stations", h.handleListStations).Methods("GET")
	r.HandleFunc("/api/v1/scores", h.handleListScores).Methods("GET")
	r.HandleFunc("/api/v1/fragility", h.handleListFragility).Methods("GET")

	// Analysis.
	r.HandleFunc("/api/v1/analysis/run", h.handleRunAnalysis).Methods("POST")
	r.HandleFunc("/api/v1/analysis/reports/{date}/{runID}", h.handleGetReport).Methods("GET")

	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "database unreachable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
