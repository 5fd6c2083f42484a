// Package config loads runtime settings from a .env file and the
// process environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/hammamikhairi/fuelforge/internal/domain"
	"github.com/hammamikhairi/fuelforge/internal/logger"
)

// DefaultAPIURL is where the reference backend listens.
const DefaultAPIURL = "http://127.0.0.1:5001/api"

// Config is the application configuration.
type Config struct {
	APIURL      string        `env:"FUELFORGE_API_URL" envDefault:"http://127.0.0.1:5001/api"`
	HTTPTimeout time.Duration `env:"FUELFORGE_HTTP_TIMEOUT" envDefault:"30s"`
	ExportDir   string        `env:"FUELFORGE_EXPORT_DIR" envDefault:"."`
	// DBPath selects the SQLite archive. Empty keeps results in memory.
	DBPath   string `env:"FUELFORGE_DB_PATH"`
	LogLevel string `env:"FUELFORGE_LOG_LEVEL" envDefault:"normal"`
	LogFile  string `env:"FUELFORGE_LOG_FILE" envDefault:".fuelforge-logs/fuelforge.log"`
	Fuel     string `env:"FUELFORGE_FUEL" envDefault:"gasoline"`
}

// Load reads the optional dotenv files (missing files are ignored) and
// then parses the environment into a Config.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values the environment parser cannot.
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("FUELFORGE_API_URL must not be empty")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("FUELFORGE_HTTP_TIMEOUT must be positive, got %s", c.HTTPTimeout)
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("FUELFORGE_LOG_LEVEL: %w", err)
	}
	if _, err := domain.ParseFuelType(c.Fuel); err != nil {
		return fmt.Errorf("FUELFORGE_FUEL: %w", err)
	}
	return nil
}

// Level returns the parsed log level.
func (c *Config) Level() logger.Level {
	l, _ := logger.ParseLevel(c.LogLevel)
	return l
}

// FuelType returns the parsed starting fuel type.
func (c *Config) FuelType() domain.FuelType {
	f, _ := domain.ParseFuelType(c.Fuel)
	return f
}
