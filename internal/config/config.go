// Package config centralizes all application configuration into typed structs.
//
// Go Learning Note — Configuration Management:
// Defaults live in NewDefaultConfig as plain struct literals; FromEnv then
// overlays whatever the environment sets. cmd/server loads a .env file with
// godotenv first, so local overrides and real environment variables take the
// same path.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"transgrid/internal/grid"
)

// Config is the top-level configuration container.
type Config struct {
	Server ServerConfig
	Grid   GridConfig
	Match  MatchConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// GridConfig sets the defaults applied when a request leaves grid fields out.
type GridConfig struct {
	DefaultFamily     grid.Family
	DefaultSizeMeters float64
	// MaxCells caps cover and aggregate responses, and optimize targets, so a
	// tiny cell size over a large area cannot exhaust memory.
	MaxCells int
	Optimize grid.OptimizeOptions
}

// MatchConfig controls nearest-feature matching.
type MatchConfig struct {
	// Geodesic reports distances in haversine meters unless a request
	// overrides it.
	Geodesic bool
}

// NewDefaultConfig returns a Config populated with sensible defaults: 500 m
// rectangular cells and coordinate-space match distances.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         ":8080",
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Grid: GridConfig{
			DefaultFamily:     grid.Rect,
			DefaultSizeMeters: 500,
			MaxCells:          1_000_000,
			Optimize:          grid.DefaultOptimizeOptions,
		},
		Match: MatchConfig{
			Geodesic: false,
		},
	}
}

// FromEnv returns the defaults overlaid with PORT, GRID_DEFAULT_FAMILY,
// GRID_DEFAULT_SIZE_METERS, GRID_OPTIMIZE_TOLERANCE, GRID_OPTIMIZE_MAX_ITER,
// GRID_MAX_CELLS and MATCH_GEODESIC. A set but malformed variable is an error
// rather than a silent fallback.
func FromEnv() (*Config, error) {
	cfg := NewDefaultConfig()

	if v, ok := os.LookupEnv("PORT"); ok && v != "" {
		if v[0] != ':' {
			v = ":" + v
		}
		cfg.Server.Port = v
	}
	if v, ok := os.LookupEnv("GRID_DEFAULT_FAMILY"); ok {
		f, err := grid.ParseFamily(v)
		if err != nil {
			return nil, fmt.Errorf("GRID_DEFAULT_FAMILY: %w", err)
		}
		cfg.Grid.DefaultFamily = f
	}
	if err := envFloat("GRID_DEFAULT_SIZE_METERS", &cfg.Grid.DefaultSizeMeters); err != nil {
		return nil, err
	}
	if err := envFloat("GRID_OPTIMIZE_TOLERANCE", &cfg.Grid.Optimize.Tolerance); err != nil {
		return nil, err
	}
	if err := envInt("GRID_OPTIMIZE_MAX_ITER", &cfg.Grid.Optimize.MaxIterations); err != nil {
		return nil, err
	}
	if err := envInt("GRID_MAX_CELLS", &cfg.Grid.MaxCells); err != nil {
		return nil, err
	}
	if v, ok := os.LookupEnv("MATCH_GEODESIC"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("MATCH_GEODESIC: %w", err)
		}
		cfg.Match.Geodesic = b
	}

	if cfg.Grid.DefaultSizeMeters <= 0 {
		return nil, fmt.Errorf("GRID_DEFAULT_SIZE_METERS: must be positive, got %v", cfg.Grid.DefaultSizeMeters)
	}
	if cfg.Grid.MaxCells <= 0 {
		return nil, fmt.Errorf("GRID_MAX_CELLS: must be positive, got %d", cfg.Grid.MaxCells)
	}
	return cfg, nil
}

func envFloat(key string, dst *float64) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = f
	return nil
}

func envInt(key string, dst *int) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}
