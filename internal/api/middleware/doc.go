// Package middleware provides the Gin middleware of the preview host API:
// CORS for the host UI, rate limiting and request logging.
package middleware
