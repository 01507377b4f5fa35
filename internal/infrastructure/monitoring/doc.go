/*
Package monitoring provides Prometheus metrics for the preview service.

# Overview

Metrics cover host API requests, preview shows and hides, load pipeline
failures and the style stream. Metrics implements preview.Observer and
preview.LoadObserver so the manager and strategies report into it directly.

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", monitoring.Handler(metrics))

	manager := preview.NewManager(strategies, preview.WithObserver(metrics))
*/
package monitoring
