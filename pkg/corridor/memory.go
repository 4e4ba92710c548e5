package corridor

import (
	"context"
	"fmt"
	"time"
)

// SeedSource serves a loaded seed through the collaborator contracts. It
// backs offline analysis (the CLI) where no database is available.
type SeedSource struct {
	seed *Seed
}

// NewSeedSource wraps a seed.
func NewSeedSource(seed *Seed) *SeedSource {
	return &SeedSource{seed: seed}
}

// ListStations returns the seeded stations, already ordered by distance.
func (s *SeedSource) ListStations(ctx context.Context) ([]StationRecord, error) {
	stations := make([]StationRecord, len(s.seed.Stations))
	copy(stations, s.seed.Stations)
	return stations, nil
}

// GetStation returns the seeded station with the given ID, or nil.
func (s *SeedSource) GetStation(ctx context.Context, id string) (*StationRecord, error) {
	if st := s.seed.Station(id); st != nil {
		cp := *st
		return &cp, nil
	}
	return nil, nil
}

// DailyStopCount counts the scheduled stops touching the station in the
// seed. It is a schedule-derived reading, not a live traffic feed.
func (s *SeedSource) DailyStopCount(ctx context.Context, stationID string, date time.Time) (int, error) {
	if s.seed.Station(stationID) == nil {
		return 0, fmt.Errorf("unknown station %s", stationID)
	}
	count := 0
	for _, c := range s.seed.Connections {
		if c.FromStationID == stationID || c.ToStationID == stationID {
			count++
		}
	}
	return count, nil
}

// DownstreamConnections returns the seeded departures leaving a station
// after the given time.
func (s *SeedSource) DownstreamConnections(ctx context.Context, stationID string, after time.Time) ([]Departure, error) {
	var deps []Departure
	for _, c := range s.seed.Connections {
		if c.FromStationID == stationID && c.DepartureTime.After(after) {
			deps = append(deps, Departure{DepartureTime: c.DepartureTime, TrainClass: c.TrainClass})
		}
	}
	return deps, nil
}
