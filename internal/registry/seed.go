package registry

import (
	"context"
	"fmt"

	"github.com/sanjujohn8055/berlin-hamburg-corridor-analysis-sub001/pkg/corridor"
)

// ApplySeed upserts the seed's stations and replaces the connection table
// wholesale. Run on daemon startup against a fresh or already-seeded
// database; station upserts keep manually adjusted traffic rows intact.
func (s *Store) ApplySeed(ctx context.Context, seed *corridor.Seed) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	for _, st := range seed.Stations {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO stations (id, name, lat, lon, distance_km, category, platform_count,
			                       elevator, escalator, tactile_guidance, step_free_access, restrooms,
			                       wifi, travel_center, parking, shelter, strategic_hub)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
			 ON CONFLICT (id) DO UPDATE
			   SET name = EXCLUDED.name, lat = EXCLUDED.lat, lon = EXCLUDED.lon,
			       distance_km = EXCLUDED.distance_km, category = EXCLUDED.category,
			       platform_count = EXCLUDED.platform_count,
			       elevator = EXCLUDED.elevator, escalator = EXCLUDED.escalator,
			       tactile_guidance = EXCLUDED.tactile_guidance, step_free_access = EXCLUDED.step_free_access,
			       restrooms = EXCLUDED.restrooms, wifi = EXCLUDED.wifi,
			       travel_center = EXCLUDED.travel_center, parking = EXCLUDED.parking,
			       shelter = EXCLUDED.shelter, strategic_hub = EXCLUDED.strategic_hub`,
			st.ID, st.Name, st.Latitude, st.Longitude, st.DistanceKM, st.Category, st.PlatformCount,
			st.Facilities.Elevator, st.Facilities.Escalator, st.Facilities.TactileGuidance,
			st.Facilities.StepFreeAccess, st.Facilities.Restrooms, st.Facilities.WiFi,
			st.Facilities.TravelCenter, st.Facilities.Parking, st.Facilities.Shelter,
			st.IsStrategicHub,
		)
		if err != nil {
			return fmt.Errorf("seed station %s: %w", st.ID, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM connections`); err != nil {
		return fmt.Errorf("clear connections: %w", err)
	}
	for _, c := range seed.Connections {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO connections (from_station_id, to_station_id, arrival_time, departure_time, train_class, buffer_minutes)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			c.FromStationID, c.ToStationID, c.ArrivalTime, c.DepartureTime, c.TrainClass, c.BufferMinutes,
		)
		if err != nil {
			return fmt.Errorf("seed connection %s -> %s: %w", c.FromStationID, c.ToStationID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	return nil
}
