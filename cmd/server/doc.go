// Package main runs the headless preview host.
//
// The server exposes the preview manager over HTTP and a WebSocket style
// stream so a UI can route links to strategies, push viewport changes and
// render the returned styles.
//
// Configuration:
//   - Environment variables (see internal/config)
//   - CLI flags (override env vars)
//
// Usage:
//
//	./server -port 8000 -width 1440 -height 900
//
//	# Development mode (colored logs, preview debug logging)
//	./server -dev -log-level debug -debug
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
