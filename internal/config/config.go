// Package config loads runtime settings from the environment, with an
// optional .env file for development.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config are the NEUROPLAY_* environment settings. Everything has a
// default; the app runs with no environment at all.
type Config struct {
	// DBPath overrides where the SQLite database lives. Empty means
	// the platform data directory.
	DBPath string `env:"NEUROPLAY_DB"`

	// BreakThreshold is how long continuous play runs before the
	// break reminder appears.
	BreakThreshold time.Duration `env:"NEUROPLAY_BREAK_THRESHOLD" envDefault:"20m"`

	// InactivityTimeout pauses a game session after this much idle
	// time.
	InactivityTimeout time.Duration `env:"NEUROPLAY_INACTIVITY_TIMEOUT" envDefault:"2m"`

	// RobuxPerMinute is the reward rate while playing.
	RobuxPerMinute int `env:"NEUROPLAY_ROBUX_PER_MINUTE" envDefault:"1"`
}

// Load reads a .env file when present, then the environment.
func Load() (Config, error) {
	// Missing .env is the normal case outside development.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.BreakThreshold <= 0 {
		cfg.BreakThreshold = 20 * time.Minute
	}
	if cfg.InactivityTimeout <= 0 {
		cfg.InactivityTimeout = 2 * time.Minute
	}
	if cfg.RobuxPerMinute < 0 {
		cfg.RobuxPerMinute = 1
	}
	return cfg, nil
}
