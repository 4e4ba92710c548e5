package scoring_test

import (
	"errors"
	"testing"

	"github.com/sanjujohn8055/berlin-hamburg-corridor-analysis-sub001/pkg/scoring"
)

func TestValidateAcceptsBalancedTriple(t *testing.T) {
	p := scoring.WeightProfile{
		InfrastructureWeight: 0.34,
		TimetableWeight:      0.33,
		PopulationRiskWeight: 0.33,
		FocusArea:            scoring.FocusBalanced,
	}
	if err := scoring.Validate(p); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateWithinSumTolerance(t *testing.T) {
	// Sum is 1.009, inside the 0.01 tolerance.
	p := scoring.WeightProfile{
		InfrastructureWeight: 0.339,
		TimetableWeight:      0.34,
		PopulationRiskWeight: 0.33,
		FocusArea:            scoring.FocusBalanced,
	}
	if err := scoring.Validate(p); err != nil {
		t.Errorf("sum 1.009 should pass: %v", err)
	}
}

func TestValidateRejectsBadSum(t *testing.T) {
	p := scoring.WeightProfile{
		InfrastructureWeight: 0.5,
		TimetableWeight:      0.5,
		PopulationRiskWeight: 0.5,
		FocusArea:            scoring.FocusBalanced,
	}
	err := scoring.Validate(p)
	if err == nil {
		t.Fatal("sum 1.5 should fail validation")
	}
	var verr *scoring.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
}

func TestValidateRejectsOutOfRangeWeights(t *testing.T) {
	p := scoring.WeightProfile{
		InfrastructureWeight: 1.2,
		TimetableWeight:      -0.1,
		PopulationRiskWeight: -0.1,
		FocusArea:            scoring.FocusBalanced,
	}
	err := scoring.Validate(p)
	if err == nil {
		t.Fatal("out-of-range weights should fail validation")
	}
	var verr *scoring.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	// All three range violations must be reported at once.
	if len(verr.Violations) != 3 {
		t.Errorf("expected 3 violations, got %d: %v", len(verr.Violations), verr.Violations)
	}
}

func TestValidateFocusWeightFloor(t *testing.T) {
	p := scoring.WeightProfile{
		InfrastructureWeight: 0.3,
		TimetableWeight:      0.35,
		PopulationRiskWeight: 0.35,
		FocusArea:            scoring.FocusInfrastructure,
	}
	if err := scoring.Validate(p); err == nil {
		t.Error("infrastructure focus with weight 0.3 should fail the 0.4 floor")
	}

	p.InfrastructureWeight = 0.4
	p.TimetableWeight = 0.3
	p.PopulationRiskWeight = 0.3
	if err := scoring.Validate(p); err != nil {
		t.Errorf("infrastructure focus at exactly 0.4 should pass: %v", err)
	}
}

func TestValidateUnknownFocusArea(t *testing.T) {
	p := scoring.WeightProfile{
		InfrastructureWeight: 0.34,
		TimetableWeight:      0.33,
		PopulationRiskWeight: 0.33,
		FocusArea:            scoring.FocusArea("velocity"),
	}
	if err := scoring.Validate(p); err == nil {
		t.Error("unknown focus area should fail validation")
	}
}

func TestPresetsAreValid(t *testing.T) {
	for _, name := range scoring.PresetNames() {
		p, ok := scoring.Preset(name)
		if !ok {
			t.Fatalf("Preset(%q) not found", name)
		}
		if err := scoring.Validate(p); err != nil {
			t.Errorf("preset %s fails its own validation: %v", name, err)
		}
	}
}

func TestPresetReturnsCopy(t *testing.T) {
	p, _ := scoring.Preset(scoring.PresetBalanced)
	p.InfrastructureWeight = 0.9

	again, _ := scoring.Preset(scoring.PresetBalanced)
	if again.InfrastructureWeight == 0.9 {
		t.Error("mutating a returned preset must not affect the preset table")
	}
}

func TestIsPreset(t *testing.T) {
	if !scoring.IsPreset(scoring.PresetInfrastructure) {
		t.Error("infrastructure_focus is a preset")
	}
	if scoring.IsPreset("my_custom_profile") {
		t.Error("my_custom_profile is not a preset")
	}
}

func TestPresetForFocus(t *testing.T) {
	p, ok := scoring.PresetForFocus(scoring.FocusTimetable)
	if !ok {
		t.Fatal("timetable focus should map to a preset")
	}
	if p.TimetableWeight != 0.6 {
		t.Errorf("timetable preset weight = %.2f, want 0.6", p.TimetableWeight)
	}
	if _, ok := scoring.PresetForFocus(scoring.FocusArea("velocity")); ok {
		t.Error("unknown focus must not map to a preset")
	}
}

func TestResolveEffectiveWeightsBalancedPassthrough(t *testing.T) {
	p := scoring.WeightProfile{
		InfrastructureWeight: 0.5,
		TimetableWeight:      0.25,
		PopulationRiskWeight: 0.25,
		FocusArea:            scoring.FocusBalanced,
	}
	w := scoring.ResolveEffectiveWeights(p)
	if w.Infrastructure != 0.5 || w.Timetable != 0.25 || w.PopulationRisk != 0.25 {
		t.Errorf("balanced profile weights must pass through unchanged, got %+v", w)
	}
}

func TestResolveEffectiveWeightsFocusOverride(t *testing.T) {
	// The profile's own weights are discarded when it is focused.
	p := scoring.WeightProfile{
		InfrastructureWeight: 0.45,
		TimetableWeight:      0.3,
		PopulationRiskWeight: 0.25,
		FocusArea:            scoring.FocusTimetable,
	}
	w := scoring.ResolveEffectiveWeights(p)
	if w.Infrastructure != 0.2 || w.Timetable != 0.6 || w.PopulationRisk != 0.2 {
		t.Errorf("timetable focus should override to 0.2/0.6/0.2, got %+v", w)
	}
}
