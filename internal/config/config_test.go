package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "0.0.0.0:8000", cfg.Addr())

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)

	assert.Equal(t, 100, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 200, cfg.RateLimit.Burst)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, "client", cfg.RateLimit.Scope)

	assert.False(t, cfg.Preview.Debug)
	assert.Empty(t, cfg.Preview.ExcludedDomains)
	assert.Equal(t, 1280, cfg.Preview.ViewportWidth)
	assert.Equal(t, 800, cfg.Preview.ViewportHeight)

	assert.Equal(t, 15*time.Second, cfg.Resolver.Timeout)
	assert.Equal(t, 10, cfg.Resolver.MaxRedirects)
	assert.Equal(t, int64(10<<20), cfg.Surface.MaxBytes)
}

func TestLoadMatchesDefault(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"PORT":                     "9000",
		"HOST":                     "127.0.0.1",
		"LOG_LEVEL":                "debug",
		"LOG_DEV":                  "true",
		"RATE_LIMIT_ENABLED":       "false",
		"PREVIEW_DEBUG":            "true",
		"PREVIEW_EXCLUDED_DOMAINS": "reddit.com,v.redd.it",
		"PREVIEW_VIEWPORT_WIDTH":   "1920",
		"RESOLVER_TIMEOUT":         "3s",
		"RESOLVER_MAX_REDIRECTS":   "4",
		"SURFACE_MAX_BYTES":        "2048",
	}
	for key, value := range envVars {
		t.Setenv(key, value)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Addr())
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.True(t, cfg.Preview.Debug)
	assert.Equal(t, []string{"reddit.com", "v.redd.it"}, cfg.Preview.ExcludedDomains)
	assert.Equal(t, 1920, cfg.Preview.ViewportWidth)
	assert.Equal(t, 800, cfg.Preview.ViewportHeight)
	assert.Equal(t, 3*time.Second, cfg.Resolver.Timeout)
	assert.Equal(t, 4, cfg.Resolver.MaxRedirects)
	assert.Equal(t, int64(2048), cfg.Surface.MaxBytes)
}

func TestLoadRejectsMalformedValues(t *testing.T) {
	t.Setenv("RESOLVER_TIMEOUT", "soon")

	_, err := Load()
	assert.Error(t, err)

	cfg := LoadOrDefault()
	assert.Equal(t, 15*time.Second, cfg.Resolver.Timeout)
}
