// Package config loads the chart server configuration from environment
// variables, applies defaults and validates everything on startup so a bad
// setting fails fast instead of producing an empty page.
package config

import (
	"strconv"
	"time"
)

// Data source kinds.
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Data     DataConfig
	Database DatabaseConfig
	Chart    ChartConfig
	Export   ExportConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout bounds a single render (default: 30s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"30s"`
}

// DataConfig selects where the dataset comes from.
type DataConfig struct {
	// Source is "file" or "postgres" (default: file)
	Source string `env:"DATA_SOURCE" default:"file"`

	// Path is the CSV file read by the file source
	Path string `env:"DATA_PATH" default:"./data/dataEveryYear.csv"`

	// Watch reloads the dataset when the CSV file changes (file source only)
	Watch bool `env:"DATA_WATCH" default:"false"`

	// WatchDebounce collapses bursts of file events into one reload
	WatchDebounce time.Duration `env:"DATA_WATCH_DEBOUNCE" default:"500ms"`

	// Table is the postgres table read by the postgres source
	Table string `env:"DATA_TABLE" default:"life_stats"`
}

// DatabaseConfig holds the optional postgres connection.
type DatabaseConfig struct {
	// URL is required only when Data.Source is postgres.
	// Supports both DATABASE_URL and DB_URL env vars for compatibility
	URL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	MaxConns int `env:"DB_MAX_CONNS" default:"4"`
}

// ChartConfig holds chart presentation settings.
type ChartConfig struct {
	// DefaultCountry is selected on first page load (default: AUS)
	DefaultCountry string `env:"CHART_DEFAULT_COUNTRY" default:"AUS"`
}

// ExportConfig bounds PNG rendering, which is CPU heavy.
type ExportConfig struct {
	// MaxConcurrent is the number of PNGs rendered at once (default: 2)
	MaxConcurrent int `env:"EXPORT_MAX_CONCURRENT" default:"2"`

	// MaxWait is how long a request waits for a render slot (default: 10s)
	MaxWait time.Duration `env:"EXPORT_MAX_WAIT" default:"10s"`
}

// RateLimitConfig holds per-IP rate limiting settings.
type RateLimitConfig struct {
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute per client IP; hovering fires a request per enter
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"300"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`

	// RequireAPIKey protects the reload endpoint
	RequireAPIKey bool     `env:"REQUIRE_API_KEY" default:"false"`
	APIKeys       []string `env:"API_KEYS"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
