// Package logging provides structured logging for the preview service using uber/zap.
//
// Two modes are supported:
//   - Production: JSON output for machine parsing
//   - Development: colored console output
//
// Components take a *zap.Logger obtained from Component so every entry carries
// the emitting component's name ("manager", "surface", ...).
//
// Example Usage:
//
//	logger := logging.NewDefault()
//	mgr := preview.NewManager(strategies, preview.WithLogger(logger.Component("manager")))
package logging
