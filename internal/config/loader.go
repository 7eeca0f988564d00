package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	// EnvFiles are loaded before reading the environment. Missing files are
	// skipped; variables already set are never overwritten.
	EnvFiles []string
}

// NewLoader creates a new configuration loader reading an optional .env file
func NewLoader() *Loader {
	return &Loader{EnvFiles: []string{".env"}}
}

// Load loads configuration using the cascading strategy:
// 1. Defaults from struct tags
// 2. .env files
// 3. Environment variables
func (l *Loader) Load() (*Config, error) {
	return l.LoadWithOverrides(nil)
}

// LoadWithOverrides loads configuration, applies command line overrides on
// top and validates the result.
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	for _, file := range l.EnvFiles {
		// Missing files are fine; only the process environment is required.
		_ = godotenv.Load(file)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env config: %w", err)
	}

	if overrides != nil {
		overrides.apply(&cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ConfigOverrides holds command line flag overrides. Nil fields leave the
// loaded value alone.
type ConfigOverrides struct {
	Env      *string
	LogLevel *string
	Timezone *string
	Addr     *string
	DBDriver *string
	DBDSN    *string
}

func (o *ConfigOverrides) apply(cfg *Config) {
	if o.Env != nil {
		cfg.App.Env = *o.Env
	}
	if o.LogLevel != nil {
		cfg.App.LogLevel = *o.LogLevel
	}
	if o.Timezone != nil {
		cfg.App.Timezone = *o.Timezone
	}
	if o.Addr != nil {
		cfg.HTTP.Addr = *o.Addr
	}
	if o.DBDriver != nil {
		cfg.Database.Driver = *o.DBDriver
	}
	if o.DBDSN != nil {
		cfg.Database.DSN = *o.DBDSN
	}
}
