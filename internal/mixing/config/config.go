// Package config holds server configuration loaded from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Server holds all configuration for the mixing server.
type Server struct {
	// Path to the SQLite catalog database.
	DBPath string `yaml:"db_path"`
	// Verbose enables debug logging.
	Verbose bool `yaml:"verbose"`

	Search Search `yaml:"search"`
}

// Search holds defaults and limits for the top_mixes search.
type Search struct {
	// MaxMixers is the default sequence length bound.
	MaxMixers int `yaml:"max_mixers"`
	// Limit is the default result count.
	Limit int `yaml:"limit"`
	// Workers is the parallel worker count; zero means one per CPU.
	Workers int `yaml:"workers"`
	// CacheSize bounds the evaluator result cache.
	CacheSize int `yaml:"cache_size"`
	// MaxEvaluations caps sequences evaluated per search; zero means no cap.
	MaxEvaluations int64 `yaml:"max_evaluations"`
}

// Default returns a Server config with sensible defaults.
func Default() Server {
	return Server{
		DBPath: "data/mixing/catalog.db",
		Search: Search{
			MaxMixers: 4,
			Limit:     5,
			CacheSize: 1 << 16,
		},
	}
}

// Load reads a YAML config file over the defaults.
func Load(path string) (Server, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Search.MaxMixers <= 0 {
		return cfg, fmt.Errorf("search.max_mixers must be positive, got %d", cfg.Search.MaxMixers)
	}
	if cfg.Search.Limit <= 0 {
		return cfg, fmt.Errorf("search.limit must be positive, got %d", cfg.Search.Limit)
	}

	return cfg, nil
}
