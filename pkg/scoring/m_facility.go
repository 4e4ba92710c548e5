package scoring

import "github.com/sanjujohn8055/berlin-hamburg-corridor-analysis-sub001/pkg/corridor"

// facilityCheck is one checklist item: the penalty applies when present
// reports false for the station.
type facilityCheck struct {
	name    string
	penalty int
	present func(corridor.Facilities) bool
}

// Checklists are tiered by station category. Major stations answer for the
// full amenity set with moderate per-item penalties; the smaller the station,
// the shorter the list and the heavier each missing item weighs, since
// baseline accessibility matters most where amenities are otherwise sparse.
var (
	majorStationChecklist = []facilityCheck{
		{"elevator", 20, func(f corridor.Facilities) bool { return f.Elevator }},
		{"escalator", 15, func(f corridor.Facilities) bool { return f.Escalator }},
		{"tactile_guidance", 15, func(f corridor.Facilities) bool { return f.TactileGuidance }},
		{"travel_center", 15, func(f corridor.Facilities) bool { return f.TravelCenter }},
		{"restrooms", 15, func(f corridor.Facilities) bool { return f.Restrooms }},
		{"wifi", 10, func(f corridor.Facilities) bool { return f.WiFi }},
		{"parking", 10, func(f corridor.Facilities) bool { return f.Parking }},
	}

	regionalStationChecklist = []facilityCheck{
		{"elevator", 25, func(f corridor.Facilities) bool { return f.Elevator }},
		{"step_free_access", 25, func(f corridor.Facilities) bool { return f.StepFreeAccess }},
		{"tactile_guidance", 20, func(f corridor.Facilities) bool { return f.TactileGuidance }},
		{"restrooms", 15, func(f corridor.Facilities) bool { return f.Restrooms }},
		{"parking", 15, func(f corridor.Facilities) bool { return f.Parking }},
	}

	minorStationChecklist = []facilityCheck{
		{"step_free_access", 40, func(f corridor.Facilities) bool { return f.StepFreeAccess }},
		{"tactile_guidance", 30, func(f corridor.Facilities) bool { return f.TactileGuidance }},
		{"shelter", 30, func(f corridor.Facilities) bool { return f.Shelter }},
	}
)

func checklistFor(category corridor.Category) []facilityCheck {
	switch {
	case category <= 2:
		return majorStationChecklist
	case category <= 4:
		return regionalStationChecklist
	default:
		return minorStationChecklist
	}
}

// FacilityDeficitScore sums the penalties for every checklist item the
// station is missing, capped at 100. A fully equipped station scores 0.
func FacilityDeficitScore(station corridor.StationRecord) int {
	deficit := 0
	for _, check := range checklistFor(station.Category) {
		if !check.present(station.Facilities) {
			deficit += check.penalty
		}
	}
	return clampScore(deficit)
}

// MissingFacilities lists the checklist items the station lacks, in checklist
// order. Used for report output.
func MissingFacilities(station corridor.StationRecord) []string {
	var missing []string
	for _, check := range checklistFor(station.Category) {
		if !check.present(station.Facilities) {
			missing = append(missing, check.name)
		}
	}
	return missing
}
