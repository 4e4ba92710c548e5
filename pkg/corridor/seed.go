package corridor

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Seed is a corridor fixture: the full station set and the scheduled
// connections between them. The daemon loads it to populate a fresh database;
// the CLI scores it directly without a database.
type Seed struct {
	Stations    []StationRecord    `yaml:"stations"`
	Connections []ConnectionRecord `yaml:"connections"`
}

// LoadSeed reads a corridor seed file and orders its stations by distance
// from the corridor origin.
func LoadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed: %w", err)
	}

	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parsing seed: %w", err)
	}

	sort.Slice(seed.Stations, func(i, j int) bool {
		return seed.Stations[i].DistanceKM < seed.Stations[j].DistanceKM
	})

	if err := seed.validate(); err != nil {
		return nil, err
	}
	return &seed, nil
}

func (s *Seed) validate() error {
	ids := make(map[string]bool, len(s.Stations))
	for _, st := range s.Stations {
		if st.ID == "" {
			return fmt.Errorf("seed station %q: empty id", st.Name)
		}
		if ids[st.ID] {
			return fmt.Errorf("seed station %q: duplicate id %s", st.Name, st.ID)
		}
		ids[st.ID] = true
		if st.DistanceKM < 0 {
			return fmt.Errorf("seed station %s: negative distance", st.ID)
		}
		if st.Category < 1 || st.Category > 7 {
			return fmt.Errorf("seed station %s: category %d out of range", st.ID, st.Category)
		}
		if st.PlatformCount < 0 {
			return fmt.Errorf("seed station %s: negative platform count", st.ID)
		}
	}
	for _, c := range s.Connections {
		if !ids[c.FromStationID] || !ids[c.ToStationID] {
			return fmt.Errorf("seed connection %s -> %s references unknown station", c.FromStationID, c.ToStationID)
		}
		if c.BufferMinutes < 0 {
			return fmt.Errorf("seed connection %s -> %s: negative buffer", c.FromStationID, c.ToStationID)
		}
	}
	return nil
}

// Station returns the seeded station with the given ID, or nil.
func (s *Seed) Station(id string) *StationRecord {
	for i := range s.Stations {
		if s.Stations[i].ID == id {
			return &s.Stations[i]
		}
	}
	return nil
}
