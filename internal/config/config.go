package config

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Config holds all configuration options for the journal service
type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Metrics  MetricsConfig
}

// AppConfig holds application-level configuration
type AppConfig struct {
	Env      string `envconfig:"JOURNAL_ENV" default:"development"`
	LogLevel string `envconfig:"JOURNAL_LOG_LEVEL" default:"info"`
	// Timezone is the location calendar days and weeks are computed in for stats.
	Timezone string `envconfig:"JOURNAL_TIMEZONE" default:"UTC"`
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	Addr              string        `envconfig:"JOURNAL_HTTP_ADDR" default:":8080"`
	ReadTimeout       time.Duration `envconfig:"JOURNAL_HTTP_READ_TIMEOUT" default:"10s"`
	WriteTimeout      time.Duration `envconfig:"JOURNAL_HTTP_WRITE_TIMEOUT" default:"15s"`
	IdleTimeout       time.Duration `envconfig:"JOURNAL_HTTP_IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout   time.Duration `envconfig:"JOURNAL_HTTP_SHUTDOWN_TIMEOUT" default:"10s"`
	CORSOrigin        string        `envconfig:"JOURNAL_CORS_ORIGIN" default:"*"`
	AuthRatePerMinute int           `envconfig:"JOURNAL_AUTH_RATE_PER_MINUTE" default:"20"`
	AuthRateBurst     int           `envconfig:"JOURNAL_AUTH_RATE_BURST" default:"5"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Driver       string        `envconfig:"JOURNAL_DB_DRIVER" default:"sqlite"`
	DSN          string        `envconfig:"JOURNAL_DB_DSN" default:"journal.db"`
	QueryTimeout time.Duration `envconfig:"JOURNAL_DB_QUERY_TIMEOUT" default:"5s"`
	MaxConns     int           `envconfig:"JOURNAL_DB_MAX_CONNS" default:"10"`
	AutoMigrate  bool          `envconfig:"JOURNAL_DB_AUTO_MIGRATE" default:"true"`
}

// RedisConfig holds the optional stats cache configuration. An empty Addr
// disables caching.
type RedisConfig struct {
	Addr          string        `envconfig:"JOURNAL_REDIS_ADDR"`
	Password      string        `envconfig:"JOURNAL_REDIS_PASSWORD"`
	DB            int           `envconfig:"JOURNAL_REDIS_DB" default:"0"`
	StatsCacheTTL time.Duration `envconfig:"JOURNAL_STATS_CACHE_TTL" default:"10m"`
}

// Enabled reports whether a Redis address is configured.
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

// AuthConfig holds token and password hashing configuration
type AuthConfig struct {
	JWTSecret  string        `envconfig:"JOURNAL_JWT_SECRET"`
	Issuer     string        `envconfig:"JOURNAL_JWT_ISSUER" default:"fitness-journal"`
	TokenTTL   time.Duration `envconfig:"JOURNAL_TOKEN_TTL" default:"168h"`
	BcryptCost int           `envconfig:"JOURNAL_BCRYPT_COST" default:"10"`
}

// MetricsConfig holds Prometheus exposition configuration
type MetricsConfig struct {
	Enabled bool   `envconfig:"JOURNAL_METRICS_ENABLED" default:"true"`
	Path    string `envconfig:"JOURNAL_METRICS_PATH" default:"/metrics"`
}

// NewConfig creates a new configuration with the same defaults the
// environment loader applies.
func NewConfig() *Config {
	return &Config{
		App: AppConfig{
			Env:      "development",
			LogLevel: "info",
			Timezone: "UTC",
		},
		HTTP: HTTPConfig{
			Addr:              ":8080",
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
			ShutdownTimeout:   10 * time.Second,
			CORSOrigin:        "*",
			AuthRatePerMinute: 20,
			AuthRateBurst:     5,
		},
		Database: DatabaseConfig{
			Driver:       "sqlite",
			DSN:          "journal.db",
			QueryTimeout: 5 * time.Second,
			MaxConns:     10,
			AutoMigrate:  true,
		},
		Redis: RedisConfig{
			StatsCacheTTL: 10 * time.Minute,
		},
		Auth: AuthConfig{
			Issuer:     "fitness-journal",
			TokenTTL:   7 * 24 * time.Hour,
			BcryptCost: bcrypt.DefaultCost,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// Location returns the configured stats timezone. Validate guarantees it loads.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Validate validates the configuration and returns the first problem found
func (c *Config) Validate() error {
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return &ConfigError{Field: "app.timezone", Message: "unknown timezone " + c.App.Timezone}
	}

	if c.HTTP.Addr == "" {
		return &ConfigError{Field: "http.addr", Message: "listen address cannot be empty"}
	}
	if c.HTTP.ReadTimeout <= 0 || c.HTTP.WriteTimeout <= 0 {
		return &ConfigError{Field: "http.timeouts", Message: "read and write timeouts must be positive"}
	}
	if c.HTTP.ShutdownTimeout <= 0 {
		return &ConfigError{Field: "http.shutdown_timeout", Message: "shutdown timeout must be positive"}
	}
	if c.HTTP.AuthRatePerMinute < 0 {
		return &ConfigError{Field: "http.auth_rate_per_minute", Message: "rate cannot be negative"}
	}
	if c.HTTP.AuthRatePerMinute > 0 && c.HTTP.AuthRateBurst < 1 {
		return &ConfigError{Field: "http.auth_rate_burst", Message: "burst must be at least 1 when rate limiting is on"}
	}

	if c.Database.Driver != "sqlite" && c.Database.Driver != "postgres" {
		return &ConfigError{Field: "database.driver", Message: "driver must be sqlite or postgres"}
	}
	if c.Database.DSN == "" {
		return &ConfigError{Field: "database.dsn", Message: "database DSN cannot be empty"}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}

	if c.Redis.Enabled() && c.Redis.StatsCacheTTL <= 0 {
		return &ConfigError{Field: "redis.stats_cache_ttl", Message: "cache TTL must be positive"}
	}

	if c.Auth.JWTSecret == "" {
		return &ConfigError{Field: "auth.jwt_secret", Message: "JOURNAL_JWT_SECRET must be set"}
	}
	if c.Auth.TokenTTL <= 0 {
		return &ConfigError{Field: "auth.token_ttl", Message: "token TTL must be positive"}
	}
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		return &ConfigError{Field: "auth.bcrypt_cost", Message: "bcrypt cost out of range"}
	}

	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return &ConfigError{Field: "metrics.path", Message: "metrics path cannot be empty"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
