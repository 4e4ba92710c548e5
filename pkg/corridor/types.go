// Package corridor defines the domain model for the Berlin–Hamburg corridor:
// stations positioned by distance from Berlin Hbf, scheduled transfer
// connections between them, and the narrow collaborator contracts the
// scoring and fragility engines consume.
package corridor

import (
	"context"
	"time"
)

// Corridor geometry. Stations are positioned by kilometre distance from
// Berlin Hbf; Hamburg Hbf sits at the far end.
const (
	LengthKM         = 286.0
	EndpointWindowKM = 5.0
)

// Category ranks a station from 1 (major long-distance hub) to 7 (minor halt),
// following the DB station category scheme.
type Category int

const (
	CategoryMajorHub  Category = 1
	CategoryMinorHalt Category = 7
)

// Facilities records the amenity flags relevant to the facility-deficit
// checklists. Absence of a flag is what scores, so the zero value is the
// worst-equipped station.
type Facilities struct {
	Elevator        bool `yaml:"elevator" json:"elevator"`
	Escalator       bool `yaml:"escalator" json:"escalator"`
	TactileGuidance bool `yaml:"tactile_guidance" json:"tactile_guidance"`
	StepFreeAccess  bool `yaml:"step_free_access" json:"step_free_access"`
	Restrooms       bool `yaml:"restrooms" json:"restrooms"`
	WiFi            bool `yaml:"wifi" json:"wifi"`
	TravelCenter    bool `yaml:"travel_center" json:"travel_center"`
	Parking         bool `yaml:"parking" json:"parking"`
	Shelter         bool `yaml:"shelter" json:"shelter"`
}

// StationRecord is a read-only snapshot of one corridor station as served by
// the station registry.
type StationRecord struct {
	ID             string     `yaml:"id" json:"id"` // EVA-style identifier
	Name           string     `yaml:"name" json:"name"`
	Latitude       float64    `yaml:"lat" json:"lat"`
	Longitude      float64    `yaml:"lon" json:"lon"`
	DistanceKM     float64    `yaml:"distance_km" json:"distance_km"` // from corridor origin
	Category       Category   `yaml:"category" json:"category"`
	PlatformCount  int        `yaml:"platform_count" json:"platform_count"`
	Facilities     Facilities `yaml:"facilities" json:"facilities"`
	IsStrategicHub bool       `yaml:"strategic_hub" json:"strategic_hub"`
}

// ConnectionRecord is one scheduled transfer opportunity: an arriving service
// at From connecting onto a departing service towards To.
type ConnectionRecord struct {
	FromStationID string    `yaml:"from" json:"from"`
	ToStationID   string    `yaml:"to" json:"to"`
	ArrivalTime   time.Time `yaml:"arrival" json:"arrival"`
	DepartureTime time.Time `yaml:"departure" json:"departure"`
	TrainClass    string    `yaml:"train_class" json:"train_class"`
	BufferMinutes float64   `yaml:"buffer_minutes" json:"buffer_minutes"`
}

// Departure is a downstream service leaving a station, as reported by the
// connection source.
type Departure struct {
	DepartureTime time.Time `json:"departure"`
	TrainClass    string    `json:"train_class"`
}

// StationRegistry serves the corridor's station set. ListStations returns
// stations ordered by distance from the corridor origin.
type StationRegistry interface {
	ListStations(ctx context.Context) ([]StationRecord, error)
	GetStation(ctx context.Context, id string) (*StationRecord, error)
}

// TrafficSource reports daily scheduled stop counts per station. It fronts a
// rate-limited upstream timetable feed and may fail; consumers degrade to a
// neutral value rather than propagate the error.
type TrafficSource interface {
	DailyStopCount(ctx context.Context, stationID string, date time.Time) (int, error)
}

// ConnectionSource serves the downstream departures from a station after a
// given time, used for cascade-risk estimation.
type ConnectionSource interface {
	DownstreamConnections(ctx context.Context, stationID string, after time.Time) ([]Departure, error)
}
