// Package config provides 12-factor configuration for the preview service.
//
// Configuration is loaded from environment variables with defaults; CLI flags
// in cmd/server override a subset of them.
//
// Configuration Sections:
//   - Server: host API listen address
//   - Logging: log level and output format
//   - RateLimit: global rate limiting for the host API
//   - Preview: debug flag, extra excluded domains, initial viewport
//   - Resolver: redirect-following limits for URL resolution
//   - Surface: fetch limits for the rendering surface
//
// Environment Variables:
//   - PORT, HOST
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
//   - PREVIEW_DEBUG, PREVIEW_EXCLUDED_DOMAINS, PREVIEW_VIEWPORT_WIDTH, PREVIEW_VIEWPORT_HEIGHT
//   - RESOLVER_TIMEOUT, RESOLVER_MAX_REDIRECTS, RESOLVER_RETRIES, RESOLVER_RPS
//   - SURFACE_TIMEOUT, SURFACE_MAX_BYTES, SURFACE_USER_AGENT
package config
