package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
	Preview   PreviewConfig
	Resolver  ResolverConfig
	Surface   SurfaceConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration for the host API.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
	// Scope is "client" for one limiter per client IP or "global" for one
	// limiter shared by every client.
	Scope string `envconfig:"RATE_LIMIT_SCOPE" default:"client"`
}

// PreviewConfig holds preview manager configuration.
type PreviewConfig struct {
	Debug bool `envconfig:"PREVIEW_DEBUG" default:"false"`
	// ExcludedDomains are handed to the external-content strategy on top of
	// the domains claimed by the built-in strategies.
	ExcludedDomains []string `envconfig:"PREVIEW_EXCLUDED_DOMAINS"`
	ViewportWidth   int      `envconfig:"PREVIEW_VIEWPORT_WIDTH" default:"1280"`
	ViewportHeight  int      `envconfig:"PREVIEW_VIEWPORT_HEIGHT" default:"800"`
}

// ResolverConfig holds URL resolution configuration.
type ResolverConfig struct {
	Timeout           time.Duration `envconfig:"RESOLVER_TIMEOUT" default:"15s"`
	MaxRedirects      int           `envconfig:"RESOLVER_MAX_REDIRECTS" default:"10"`
	Retries           int           `envconfig:"RESOLVER_RETRIES" default:"2"`
	RequestsPerSecond float64       `envconfig:"RESOLVER_RPS" default:"0"`
}

// SurfaceConfig holds rendering surface configuration.
type SurfaceConfig struct {
	Timeout   time.Duration `envconfig:"SURFACE_TIMEOUT" default:"30s"`
	MaxBytes  int64         `envconfig:"SURFACE_MAX_BYTES" default:"10485760"`
	UserAgent string        `envconfig:"SURFACE_USER_AGENT" default:"Mozilla/5.0 (AgentOS Preview/1.0) AppleWebKit/537.36 (KHTML, like Gecko)"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8000",
			Host: "0.0.0.0",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
			Scope:             "client",
		},
		Preview: PreviewConfig{
			ViewportWidth:  1280,
			ViewportHeight: 800,
		},
		Resolver: ResolverConfig{
			Timeout:      15 * time.Second,
			MaxRedirects: 10,
			Retries:      2,
		},
		Surface: SurfaceConfig{
			Timeout:   30 * time.Second,
			MaxBytes:  10 << 20,
			UserAgent: "Mozilla/5.0 (AgentOS Preview/1.0) AppleWebKit/537.36 (KHTML, like Gecko)",
		},
	}
}

// Addr returns the listen address for the host API.
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}
