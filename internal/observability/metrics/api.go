package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// APIMetrics tracks outbound calls to the digitization service and
// tool invocations. It owns a dedicated registry so the optional
// /metrics listener exposes only this process's series.
type APIMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	toolCallsTotal  *prometheus.CounterVec
	toolDuration    *prometheus.HistogramVec
}

func NewAPIMetrics(service string) *APIMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "upstage",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Outbound Upstage API requests by operation and outcome kind.",
		},
		[]string{"service", "operation", "kind"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "upstage",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "Outbound Upstage API call duration in seconds, retries included.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 300},
		},
		[]string{"service", "operation"},
	)
	toolCallsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "upstage",
			Subsystem: "mcp",
			Name:      "tool_calls_total",
			Help:      "Tool invocations by tool name and outcome kind.",
		},
		[]string{"service", "tool", "kind"},
	)
	toolDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "upstage",
			Subsystem: "mcp",
			Name:      "tool_duration_seconds",
			Help:      "Tool invocation duration in seconds.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 300},
		},
		[]string{"service", "tool"},
	)

	registry.MustRegister(requestTotal, requestDuration, toolCallsTotal, toolDuration)

	return &APIMetrics{
		registry:        registry,
		requestTotal:    requestTotal,
		requestDuration: requestDuration,
		toolCallsTotal:  toolCallsTotal,
		toolDuration:    toolDuration,
	}
}

func (m *APIMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one outbound API call. kind is empty on
// success, otherwise the taxonomy name of the failure.
func (m *APIMetrics) ObserveRequest(operation, kind string, duration time.Duration) {
	if kind == "" {
		kind = "ok"
	}
	m.requestTotal.WithLabelValues("upstage-mcp", operation, kind).Inc()
	m.requestDuration.WithLabelValues("upstage-mcp", operation).Observe(duration.Seconds())
}

func (m *APIMetrics) ObserveToolCall(tool, kind string, duration time.Duration) {
	if kind == "" {
		kind = "ok"
	}
	m.toolCallsTotal.WithLabelValues("upstage-mcp", tool, kind).Inc()
	m.toolDuration.WithLabelValues("upstage-mcp", tool).Observe(duration.Seconds())
}
