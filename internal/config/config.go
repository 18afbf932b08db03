package config

import (
	"fmt"
	"strings"
	"time"
)

// Config holds runtime configuration for the server.
type Config struct {
	Port            string        `env:"PORT" envDefault:"4000"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"text"`
	Version         string        `env:"APP_VERSION" envDefault:"dev"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	HTTP            HTTPConfig
	Data            DataConfig
	CORS            CORSConfig
	Metrics         MetricsConfig
}

// HTTPConfig bounds how long the API server spends on one connection. Zero falls back to
// the server defaults.
type HTTPConfig struct {
	ReadTimeout       time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"10s"`
	ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" envDefault:"5s"`
	WriteTimeout      time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
	IdleTimeout       time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`
}

// DataConfig selects where match and simulation data comes from.
type DataConfig struct {
	// Source is one of sqlite, memory or fixture.
	Source       string `env:"DATA_SOURCE" envDefault:"sqlite"`
	Dir          string `env:"DATA_DIR" envDefault:"data"`
	DatabasePath string `env:"DATABASE_PATH" envDefault:"data/cricket.db"`
}

// CORSConfig lists browser origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:5173"`
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	cfg.Data.Source = strings.ToLower(strings.TrimSpace(cfg.Data.Source))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that env defaults cannot guard.
func (c Config) Validate() error {
	switch c.Data.Source {
	case SourceSQLite, SourceMemory, SourceFixture:
	default:
		return fmt.Errorf("unknown DATA_SOURCE %q (want %s, %s or %s)", c.Data.Source, SourceSQLite, SourceMemory, SourceFixture)
	}
	if strings.TrimSpace(c.Port) == "" {
		return fmt.Errorf("PORT is required")
	}
	for name, d := range map[string]time.Duration{
		"HTTP_READ_TIMEOUT":        c.HTTP.ReadTimeout,
		"HTTP_READ_HEADER_TIMEOUT": c.HTTP.ReadHeaderTimeout,
		"HTTP_WRITE_TIMEOUT":       c.HTTP.WriteTimeout,
		"HTTP_IDLE_TIMEOUT":        c.HTTP.IdleTimeout,
	} {
		if d < 0 {
			return fmt.Errorf("%s must not be negative, got %s", name, d)
		}
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %s", c.ShutdownTimeout)
	}
	return nil
}

// ServiceName returns the name used for logs and telemetry.
func (c Config) ServiceName() string {
	if c.Metrics.ServiceName != "" {
		return c.Metrics.ServiceName
	}
	return defaultServiceName
}
