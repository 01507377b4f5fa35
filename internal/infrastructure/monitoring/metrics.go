package monitoring

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics of the preview service. Metrics are
// registered on their own registry so tests can create as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Preview metrics
	ShowsTotal         *prometheus.CounterVec
	UnmatchedTotal     prometheus.Counter
	HidesTotal         prometheus.Counter
	ResolutionFailures *prometheus.CounterVec
	NavigationFailures *prometheus.CounterVec

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec

	// System metrics
	Uptime    prometheus.GaugeFunc
	startTime time.Time
}

// NewMetrics creates a metrics collector with a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	m := &Metrics{
		registry:  reg,
		startTime: time.Now(),

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "preview_http_requests_total",
				Help: "Total number of host API requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "preview_http_request_duration_seconds",
				Help:    "Host API request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),

		ShowsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "preview_shows_total",
				Help: "Previews shown, by strategy",
			},
			[]string{"strategy"},
		),
		UnmatchedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "preview_unmatched_total",
				Help: "Show requests no strategy matched",
			},
		),
		HidesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "preview_hides_total",
				Help: "Requests to hide every preview",
			},
		),
		ResolutionFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "preview_resolution_failures_total",
				Help: "Links that could not be resolved, by strategy",
			},
			[]string{"strategy"},
		),
		NavigationFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "preview_navigation_failures_total",
				Help: "Failed surface navigations, by strategy and whether they were aborted",
			},
			[]string{"strategy", "aborted"},
		),

		WSConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "preview_ws_connections",
				Help: "Open style stream connections",
			},
		),
		WSMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "preview_ws_messages_total",
				Help: "Style stream messages, by direction",
			},
			[]string{"direction"},
		),
	}

	m.Uptime = factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "preview_uptime_seconds",
			Help: "Service uptime in seconds",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// Registry returns the registry holding every metric.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordHTTPRequest records one host API request.
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func (m *Metrics) PreviewShown(strategy string) {
	m.ShowsTotal.WithLabelValues(strategy).Inc()
}

func (m *Metrics) PreviewUnmatched() {
	m.UnmatchedTotal.Inc()
}

func (m *Metrics) PreviewsHidden() {
	m.HidesTotal.Inc()
}

func (m *Metrics) ResolutionFailed(strategy string) {
	m.ResolutionFailures.WithLabelValues(strategy).Inc()
}

func (m *Metrics) NavigationFailed(strategy string, aborted bool) {
	m.NavigationFailures.WithLabelValues(strategy, strconv.FormatBool(aborted)).Inc()
}

// WSConnected tracks a style stream opening.
func (m *Metrics) WSConnected() { m.WSConnections.Inc() }

// WSDisconnected tracks a style stream closing.
func (m *Metrics) WSDisconnected() { m.WSConnections.Dec() }

// WSMessage counts a stream message; direction is "in" or "out".
func (m *Metrics) WSMessage(direction string) {
	m.WSMessages.WithLabelValues(direction).Inc()
}
