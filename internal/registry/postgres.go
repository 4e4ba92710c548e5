// Package registry provides the Postgres-backed corridor collaborators: the
// station registry, the daily traffic source and the downstream connection
// source consumed by the scoring and fragility engines.
package registry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sanjujohn8055/berlin-hamburg-corridor-analysis-sub001/pkg/corridor"
)

// Store implements corridor.StationRegistry, corridor.TrafficSource and
// corridor.ConnectionSource over the corridor schema.
type Store struct {
	db *sql.DB
}

// NewStore creates a registry store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

const stationColumns = `id, name, lat, lon, distance_km, category, platform_count,
	elevator, escalator, tactile_guidance, step_free_access, restrooms,
	wifi, travel_center, parking, shelter, strategic_hub`

func scanStation(row interface{ Scan(...any) error }) (*corridor.StationRecord, error) {
	var st corridor.StationRecord
	err := row.Scan(&st.ID, &st.Name, &st.Latitude, &st.Longitude, &st.DistanceKM,
		&st.Category, &st.PlatformCount,
		&st.Facilities.Elevator, &st.Facilities.Escalator, &st.Facilities.TactileGuidance,
		&st.Facilities.StepFreeAccess, &st.Facilities.Restrooms, &st.Facilities.WiFi,
		&st.Facilities.TravelCenter, &st.Facilities.Parking, &st.Facilities.Shelter,
		&st.IsStrategicHub)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// ListStations returns all corridor stations ordered by distance from the
// corridor origin.
func (s *Store) ListStations(ctx context.Context) ([]corridor.StationRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+stationColumns+` FROM stations ORDER BY distance_km`)
	if err != nil {
		return nil, fmt.Errorf("list stations: %w", err)
	}
	defer rows.Close()

	var stations []corridor.StationRecord
	for rows.Next() {
		st, err := scanStation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan station: %w", err)
		}
		stations = append(stations, *st)
	}
	return stations, rows.Err()
}

// GetStation returns one station, or nil when the ID is unknown.
func (s *Store) GetStation(ctx context.Context, id string) (*corridor.StationRecord, error) {
	st, err := scanStation(s.db.QueryRowContext(ctx,
		`SELECT `+stationColumns+` FROM stations WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get station %s: %w", id, err)
	}
	return st, nil
}

// DailyStopCount reads the ingested stop count for a station and day. The
// feed behind this table is external; a missing row is an error the scoring
// engine degrades from.
func (s *Store) DailyStopCount(ctx context.Context, stationID string, date time.Time) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT stop_count FROM station_traffic WHERE station_id = $1 AND day = $2`,
		stationID, date.Format("2006-01-02"),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("daily stop count %s: %w", stationID, err)
	}
	return count, nil
}

// ListConnections returns every scheduled connection, ordered by origin
// distance then arrival time.
func (s *Store) ListConnections(ctx context.Context) ([]corridor.ConnectionRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT c.from_station_id, c.to_station_id, c.arrival_time, c.departure_time, c.train_class, c.buffer_minutes
		 FROM connections c
		 JOIN stations f ON f.id = c.from_station_id
		 ORDER BY f.distance_km, c.arrival_time`)
	if err != nil {
		return nil, fmt.Errorf("list connections: %w", err)
	}
	defer rows.Close()

	var conns []corridor.ConnectionRecord
	for rows.Next() {
		var c corridor.ConnectionRecord
		if err := rows.Scan(&c.FromStationID, &c.ToStationID, &c.ArrivalTime, &c.DepartureTime, &c.TrainClass, &c.BufferMinutes); err != nil {
			return nil, fmt.Errorf("scan connection: %w", err)
		}
		conns = append(conns, c)
	}
	return conns, rows.Err()
}

// DownstreamConnections returns the departures leaving a station after the
// given time.
func (s *Store) DownstreamConnections(ctx context.Context, stationID string, after time.Time) ([]corridor.Departure, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT departure_time, train_class FROM connections
		 WHERE from_station_id = $1 AND departure_time > $2
		 ORDER BY departure_time`,
		stationID, after,
	)
	if err != nil {
		return nil, fmt.Errorf("downstream connections %s: %w", stationID, err)
	}
	defer rows.Close()

	var deps []corridor.Departure
	for rows.Next() {
		var d corridor.Departure
		if err := rows.Scan(&d.DepartureTime, &d.TrainClass); err != nil {
			return nil, fmt.Errorf("scan departure: %w", err)
		}
		deps = append(deps, d)
	}
	return deps, rows.Err()
}
