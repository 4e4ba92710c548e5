package scoring

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// FocusArea names the emphasis a weight profile applies to the composite
// score.
type FocusArea string

const (
	FocusBalanced       FocusArea = "balanced"
	FocusInfrastructure FocusArea = "infrastructure"
	FocusTimetable      FocusArea = "timetable"
	FocusPopulation     FocusArea = "population"
)

// KnownFocusAreas lists the valid focus areas.
func KnownFocusAreas() []FocusArea {
	return []FocusArea{FocusBalanced, FocusInfrastructure, FocusTimetable, FocusPopulation}
}

// WeightProfile is one named weighting configuration. The three weights must
// sum to 1.0 within WeightSumTolerance, and when FocusArea is not balanced
// the corresponding weight must be at least FocusWeightFloor.
type WeightProfile struct {
	InfrastructureWeight float64   `json:"infrastructure_weight" yaml:"infrastructure_weight"`
	TimetableWeight      float64   `json:"timetable_weight" yaml:"timetable_weight"`
	PopulationRiskWeight float64   `json:"population_risk_weight" yaml:"population_risk_weight"`
	FocusArea            FocusArea `json:"focus_area" yaml:"focus_area"`
}

// Validation constants for weight profiles.
const (
	WeightSumTolerance = 0.01
	FocusWeightFloor   = 0.4
)

// Sum returns the total of the three weights.
func (p WeightProfile) Sum() float64 {
	return p.InfrastructureWeight + p.TimetableWeight + p.PopulationRiskWeight
}

// focusWeight returns the weight corresponding to the profile's focus area.
func (p WeightProfile) focusWeight() float64 {
	switch p.FocusArea {
	case FocusInfrastructure:
		return p.InfrastructureWeight
	case FocusTimetable:
		return p.TimetableWeight
	case FocusPopulation:
		return p.PopulationRiskWeight
	}
	return 0
}

// ValidationError reports every invariant a weight profile violates.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "invalid weight profile: " + strings.Join(e.Violations, "; ")
}

// Validate checks all weight-profile invariants and reports every violation
// at once. A nil return means the profile is safe to persist.
func Validate(p WeightProfile) error {
	var violations []string

	for _, w := range []struct {
		name  string
		value float64
	}{
		{"infrastructure_weight", p.InfrastructureWeight},
		{"timetable_weight", p.TimetableWeight},
		{"population_risk_weight", p.PopulationRiskWeight},
	} {
		if w.value < 0 || w.value > 1 {
			violations = append(violations, fmt.Sprintf("%s %.3f outside [0,1]", w.name, w.value))
		}
	}

	if sum := p.Sum(); math.Abs(sum-1.0) > WeightSumTolerance {
		violations = append(violations, fmt.Sprintf("weights sum to %.3f, must be 1.0 within %.2f", sum, WeightSumTolerance))
	}

	switch p.FocusArea {
	case FocusBalanced:
	case FocusInfrastructure, FocusTimetable, FocusPopulation:
		if p.focusWeight() < FocusWeightFloor {
			violations = append(violations, fmt.Sprintf("focus area %s requires its weight >= %.1f, got %.3f", p.FocusArea, FocusWeightFloor, p.focusWeight()))
		}
	default:
		violations = append(violations, fmt.Sprintf("unknown focus area %q", p.FocusArea))
	}

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}

// Preset profile names. These profiles always exist, resolve without touching
// the store, and can never be overwritten or deleted.
const (
	PresetBalanced       = "balanced"
	PresetInfrastructure = "infrastructure_focus"
	PresetTimetable      = "timetable_focus"
	PresetPopulation     = "population_focus"
)

// presets is the process-wide preset table. Read access goes through Preset
// and PresetNames; the map itself is never handed out.
var presets = map[string]WeightProfile{
	PresetBalanced:       {InfrastructureWeight: 0.34, TimetableWeight: 0.33, PopulationRiskWeight: 0.33, FocusArea: FocusBalanced},
	PresetInfrastructure: {InfrastructureWeight: 0.6, TimetableWeight: 0.2, PopulationRiskWeight: 0.2, FocusArea: FocusInfrastructure},
	PresetTimetable:      {InfrastructureWeight: 0.2, TimetableWeight: 0.6, PopulationRiskWeight: 0.2, FocusArea: FocusTimetable},
	PresetPopulation:     {InfrastructureWeight: 0.2, TimetableWeight: 0.2, PopulationRiskWeight: 0.6, FocusArea: FocusPopulation},
}

// Preset returns the named preset profile by value.
func Preset(name string) (WeightProfile, bool) {
	p, ok := presets[name]
	return p, ok
}

// IsPreset reports whether name is a reserved preset profile name.
func IsPreset(name string) bool {
	_, ok := presets[name]
	return ok
}

// PresetNames returns the preset names in stable order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PresetForFocus returns the preset template matching a focus area.
func PresetForFocus(focus FocusArea) (WeightProfile, bool) {
	switch focus {
	case FocusBalanced:
		return presets[PresetBalanced], true
	case FocusInfrastructure:
		return presets[PresetInfrastructure], true
	case FocusTimetable:
		return presets[PresetTimetable], true
	case FocusPopulation:
		return presets[PresetPopulation], true
	}
	return WeightProfile{}, false
}

// WeightTriple is the effective weighting fed into the composite formula.
type WeightTriple struct {
	Infrastructure float64
	Timetable      float64
	PopulationRisk float64
}

// focusOverrides maps a non-balanced focus area to the weight triple that
// replaces the profile's own weights during composite scoring.
var focusOverrides = map[FocusArea]WeightTriple{
	FocusInfrastructure: {Infrastructure: 0.6, Timetable: 0.2, PopulationRisk: 0.2},
	FocusTimetable:      {Infrastructure: 0.2, Timetable: 0.6, PopulationRisk: 0.2},
	FocusPopulation:     {Infrastructure: 0.2, Timetable: 0.2, PopulationRisk: 0.6},
}

// ResolveEffectiveWeights returns the weights the composite formula actually
// uses: the focus-area override when the profile is focused, otherwise the
// profile's own weights unchanged.
func ResolveEffectiveWeights(p WeightProfile) WeightTriple {
	if w, ok := focusOverrides[p.FocusArea]; ok {
		return w
	}
	return WeightTriple{
		Infrastructure: p.InfrastructureWeight,
		Timetable:      p.TimetableWeight,
		PopulationRisk: p.PopulationRiskWeight,
	}
}
