package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config carries all runtime settings, loaded from the environment.
type Config struct {
	DBPath                   string        `env:"POINTAGE_DB"`
	MaxConcurrentPerOperator int           `env:"POINTAGE_MAX_CONCURRENT" envDefault:"3"`
	ReservationTTL           time.Duration `env:"POINTAGE_RESERVATION_TTL" envDefault:"2h"`
	SweepInterval            time.Duration `env:"POINTAGE_SWEEP_INTERVAL" envDefault:"60s"`
	NoColor                  bool          `env:"POINTAGE_NO_COLOR"`
}

// Load parses the environment and fills in the default database path
// (~/.pointage/pointage.db) when none is set.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}
	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(home, ".pointage", "pointage.db")
	}
	return cfg, nil
}
