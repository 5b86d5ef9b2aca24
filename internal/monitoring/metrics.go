// Package monitoring exposes Prometheus metrics for the studio backend.
package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Build metrics
	BuildsTotal      prometheus.Counter
	BuildDuration    prometheus.Histogram
	BuildsSuperseded prometheus.Counter

	// Tool metrics
	ToolCalls  *prometheus.CounterVec
	ToolErrors *prometheus.CounterVec

	// Workspace metrics
	WorkspacesActive prometheus.Gauge
	FilesTotal       prometheus.Gauge

	// WebSocket metrics
	WSConnections prometheus.Gauge
}

// New creates and registers all metrics with the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers all metrics with the given registerer. Tests pass a
// fresh registry to avoid duplicate registration.
func NewWith(reg prometheus.Registerer) *Metrics {
	promauto := promauto.With(reg)

	return &Metrics{
		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "studio_http_requests_total",
			Help: "Total HTTP requests by method, path, and status",
		}, []string{"method", "path", "status"}),

		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "studio_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),

		BuildsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "studio_preview_builds_total",
			Help: "Total preview builds performed",
		}),

		BuildDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "studio_preview_build_duration_seconds",
			Help:    "Preview build latency",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}),

		BuildsSuperseded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "studio_preview_builds_superseded_total",
			Help: "Builds dropped because a newer one was already published",
		}),

		ToolCalls: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "studio_tool_calls_total",
			Help: "Tool executions by tool ID",
		}, []string{"tool"}),

		ToolErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "studio_tool_errors_total",
			Help: "Failed tool executions by tool ID",
		}, []string{"tool"}),

		WorkspacesActive: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "studio_workspaces_active",
			Help: "Currently live workspaces",
		}),

		FilesTotal: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "studio_files_total",
			Help: "Files across all workspaces",
		}),

		WSConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "studio_ws_connections",
			Help: "Open preview WebSocket connections",
		}),
	}
}
