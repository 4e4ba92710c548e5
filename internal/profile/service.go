// Package profile manages named weighting configurations per user: preset
// and user-defined weight profiles, the per-user active-profile pointer, and
// the recalculation fan-out that fires when a configuration changes.
package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sanjujohn8055/berlin-hamburg-corridor-analysis-sub001/internal/recalc"
	"github.com/sanjujohn8055/berlin-hamburg-corridor-analysis-sub001/pkg/scoring"
)

// Service provides weight-profile management backed by Postgres.
//
// Concurrent writers to the same (userID, profileName) key are resolved
// last-write-wins through the upsert; there is no version column.
type Service struct {
	db          *sql.DB
	coordinator *recalc.Coordinator
}

// NewService creates a profile Service. The coordinator may be shared with
// other components that register recalculation subscribers directly.
func NewService(db *sql.DB, coordinator *recalc.Coordinator) *Service {
	if coordinator == nil {
		coordinator = recalc.NewCoordinator()
	}
	return &Service{db: db, coordinator: coordinator}
}

// RegisterRecalculationSubscriber adds a consumer to the fan-out list.
// Subscribers live for the process lifetime; there is no removal.
func (s *Service) RegisterRecalculationSubscriber(sub recalc.Subscriber) {
	s.coordinator.Register(sub)
}

// Coordinator exposes the fan-out coordinator for callers that need to
// compute significant changes around a save.
func (s *Service) Coordinator() *recalc.Coordinator {
	return s.coordinator
}

// Save validates and persists a profile, then notifies every registered
// recalculation subscriber and blocks until all of them have settled. The
// profile must not be observed as saved while stale scores are still being
// served, so the fan-out is synchronous from the caller's perspective.
//
// Validation failures and preset-name collisions are rejected before any
// persistence side effect.
func (s *Service) Save(ctx context.Context, userID, name string, p scoring.WeightProfile) (recalc.Settlement, error) {
	if scoring.IsPreset(name) {
		return recalc.Settlement{}, fmt.Errorf("save profile %s: %w", name, ErrImmutableProfile)
	}
	if err := scoring.Validate(p); err != nil {
		return recalc.Settlement{}, err
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO weight_profiles (user_id, profile_name, infrastructure_weight, timetable_weight, population_risk_weight, focus_area)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (user_id, profile_name) DO UPDATE
		   SET infrastructure_weight = EXCLUDED.infrastructure_weight,
		       timetable_weight = EXCLUDED.timetable_weight,
		       population_risk_weight = EXCLUDED.population_risk_weight,
		       focus_area = EXCLUDED.focus_area,
		       updated_at = now()`,
		userID, name, p.InfrastructureWeight, p.TimetableWeight, p.PopulationRiskWeight, string(p.FocusArea),
	)
	if err != nil {
		return recalc.Settlement{}, &PersistenceError{Op: fmt.Sprintf("save profile %s/%s", userID, name), Err: err}
	}

	settlement := s.coordinator.Notify(ctx, recalc.Event{UserID: userID, ProfileName: name, Profile: p})
	return settlement, nil
}

// Get resolves a profile. Presets resolve without touching the store.
func (s *Service) Get(ctx context.Context, userID, name string) (scoring.WeightProfile, error) {
	if p, ok := scoring.Preset(name); ok {
		return p, nil
	}

	var p scoring.WeightProfile
	var focus string
	err := s.db.QueryRowContext(ctx,
		`SELECT infrastructure_weight, timetable_weight, population_risk_weight, focus_area
		 FROM weight_profiles WHERE user_id = $1 AND profile_name = $2`,
		userID, name,
	).Scan(&p.InfrastructureWeight, &p.TimetableWeight, &p.PopulationRiskWeight, &focus)
	if errors.Is(err, sql.ErrNoRows) {
		return scoring.WeightProfile{}, fmt.Errorf("profile %s/%s: %w", userID, name, ErrNotFound)
	}
	if err != nil {
		return scoring.WeightProfile{}, &PersistenceError{Op: fmt.Sprintf("get profile %s/%s", userID, name), Err: err}
	}
	p.FocusArea = scoring.FocusArea(focus)
	return p, nil
}

// List returns the names of the user's stored profiles, presets excluded.
func (s *Service) List(ctx context.Context, userID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT profile_name FROM weight_profiles WHERE user_id = $1 ORDER BY profile_name`,
		userID,
	)
	if err != nil {
		return nil, &PersistenceError{Op: fmt.Sprintf("list profiles %s", userID), Err: err}
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, &PersistenceError{Op: "scan profile name", Err: err}
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Delete removes a user-defined profile. Presets cannot be deleted.
func (s *Service) Delete(ctx context.Context, userID, name string) error {
	if scoring.IsPreset(name) {
		return fmt.Errorf("delete profile %s: %w", name, ErrImmutableProfile)
	}

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM weight_profiles WHERE user_id = $1 AND profile_name = $2`,
		userID, name,
	)
	if err != nil {
		return &PersistenceError{Op: fmt.Sprintf("delete profile %s/%s", userID, name), Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("profile %s/%s: %w", userID, name, ErrNotFound)
	}
	return nil
}

// CreateFocusProfile creates a named profile emphasising one focus area.
// Explicit weights must independently satisfy the sum invariant; when they
// are omitted the matching preset template is cloned. The save re-triggers
// recalculation like any other save.
func (s *Service) CreateFocusProfile(ctx context.Context, userID, name string, focus scoring.FocusArea, customWeights *scoring.WeightTriple) (scoring.WeightProfile, recalc.Settlement, error) {
	var p scoring.WeightProfile
	if customWeights != nil {
		p = scoring.WeightProfile{
			InfrastructureWeight: customWeights.Infrastructure,
			TimetableWeight:      customWeights.Timetable,
			PopulationRiskWeight: customWeights.PopulationRisk,
			FocusArea:            focus,
		}
	} else {
		template, ok := scoring.PresetForFocus(focus)
		if !ok {
			return scoring.WeightProfile{}, recalc.Settlement{}, &scoring.ValidationError{Violations: []string{fmt.Sprintf("unknown focus area %q", focus)}}
		}
		p = template
		p.FocusArea = focus
	}

	settlement, err := s.Save(ctx, userID, name, p)
	if err != nil {
		return scoring.WeightProfile{}, recalc.Settlement{}, err
	}
	return p, settlement, nil
}

// ApplyProfile triggers recalculation under the named profile without
// changing any stored state. The profile must resolve (preset or stored);
// like Save, the call blocks until every subscriber has settled.
func (s *Service) ApplyProfile(ctx context.Context, userID, name string) (recalc.Settlement, error) {
	p, err := s.Get(ctx, userID, name)
	if err != nil {
		return recalc.Settlement{}, err
	}
	return s.coordinator.Notify(ctx, recalc.Event{UserID: userID, ProfileName: name, Profile: p}), nil
}

// SetActiveProfile points a user's view at the named profile and triggers
// recalculation under it. The profile must resolve (preset or stored).
func (s *Service) SetActiveProfile(ctx context.Context, userID, name string) (recalc.Settlement, error) {
	p, err := s.Get(ctx, userID, name)
	if err != nil {
		return recalc.Settlement{}, err
	}

	if err := s.setActivePointer(ctx, userID, name); err != nil {
		return recalc.Settlement{}, err
	}

	settlement := s.coordinator.Notify(ctx, recalc.Event{UserID: userID, ProfileName: name, Profile: p})
	return settlement, nil
}

// GetActiveProfile returns the profile currently governing a user's view.
// When no pointer is set, or the referenced profile no longer exists, it
// falls back to the balanced preset; in the latter case it also self-heals
// by re-pointing the user at balanced.
func (s *Service) GetActiveProfile(ctx context.Context, userID string) (string, scoring.WeightProfile, error) {
	balanced, _ := scoring.Preset(scoring.PresetBalanced)

	var name string
	err := s.db.QueryRowContext(ctx,
		`SELECT profile_name FROM active_profiles WHERE user_id = $1`,
		userID,
	).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return scoring.PresetBalanced, balanced, nil
	}
	if err != nil {
		return "", scoring.WeightProfile{}, &PersistenceError{Op: fmt.Sprintf("get active profile %s", userID), Err: err}
	}

	p, err := s.Get(ctx, userID, name)
	if errors.Is(err, ErrNotFound) {
		if healErr := s.setActivePointer(ctx, userID, scoring.PresetBalanced); healErr != nil {
			return "", scoring.WeightProfile{}, healErr
		}
		return scoring.PresetBalanced, balanced, nil
	}
	if err != nil {
		return "", scoring.WeightProfile{}, err
	}
	return name, p, nil
}

func (s *Service) setActivePointer(ctx context.Context, userID, name string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO active_profiles (user_id, profile_name)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE
		   SET profile_name = EXCLUDED.profile_name, updated_at = now()`,
		userID, name,
	)
	if err != nil {
		return &PersistenceError{Op: fmt.Sprintf("set active profile %s", userID), Err: err}
	}
	return nil
}
