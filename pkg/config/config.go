// Package config handles loading and managing the corridor analysis
// configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration for the daemon and CLI.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Archive  ArchiveConfig  `yaml:"archive"`
	Analysis AnalysisConfig `yaml:"analysis"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Port string `yaml:"port"`
}

// DatabaseConfig controls the Postgres connection.
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// ArchiveConfig selects the report archive backend.
type ArchiveConfig struct {
	Backend    string `yaml:"backend"` // "local", "gcs" or "s3"
	LocalDir   string `yaml:"local_dir"`
	GCSBucket  string `yaml:"gcs_bucket"`
	S3Bucket   string `yaml:"s3_bucket"`
	S3Region   string `yaml:"s3_region"`
	S3Endpoint string `yaml:"s3_endpoint"`
}

// AnalysisConfig controls the scoring pipeline.
type AnalysisConfig struct {
	ThrottleMs int    `yaml:"throttle_ms"` // inter-station delay during batch scoring
	SeedPath   string `yaml:"seed_path"`   // corridor seed fixture
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server:   ServerConfig{Port: "8080"},
		Database: DatabaseConfig{URL: "postgres://localhost:5432/corridor?sslmode=disable"},
		Archive:  ArchiveConfig{Backend: "local", LocalDir: "/tmp/corridor-reports"},
		Analysis: AnalysisConfig{ThrottleMs: 100, SeedPath: "corridor.yaml"},
	}
}

// Load reads a config file from the given path and applies environment
// overrides. If the file does not exist, it returns the default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnv()
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv lets deployment environments override the file without editing it.
func (c *Config) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Database.URL = v
	}
	if v := os.Getenv("ARCHIVE_BACKEND"); v != "" {
		c.Archive.Backend = v
	}
	if v := os.Getenv("GCS_BUCKET"); v != "" {
		c.Archive.GCSBucket = v
	}
	if v := os.Getenv("S3_BUCKET"); v != "" {
		c.Archive.S3Bucket = v
	}
	if v := os.Getenv("CORRIDOR_SEED"); v != "" {
		c.Analysis.SeedPath = v
	}
}
