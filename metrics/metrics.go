// Package metrics provides Prometheus metrics for the Feedly client and MCP server.
// It tracks Feedly API calls, retries, circuit breaker state and MCP tool calls.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace for all metrics
const (
	Namespace = "feedly"
)

var (
	// RequestsTotal counts total MCP tool calls by tool name and status
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: "mcp",
		Name:      "requests_total",
		Help:      "Total number of MCP tool calls",
	}, []string{"tool", "status"})

	// RequestDuration measures tool call latency
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Subsystem: "mcp",
		Name:      "request_duration_seconds",
		Help:      "MCP tool call latency distribution by tool",
		Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"tool"})

	// RequestInFlight tracks tool calls currently executing
	RequestInFlight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: Namespace,
		Subsystem: "mcp",
		Name:      "requests_in_flight",
		Help:      "Number of MCP tool calls currently being processed",
	}, []string{"tool"})

	// PanicsRecovered counts recovered panics
	PanicsRecovered = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: "mcp",
		Name:      "panics_recovered_total",
		Help:      "Number of panics recovered in tool handlers",
	}, []string{"tool"})

	// APIRequestsTotal counts Feedly API requests
	APIRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: "api",
		Name:      "requests_total",
		Help:      "Total Feedly API requests by operation and status",
	}, []string{"operation", "status"})

	// APILatency measures Feedly API call latency, retries included
	APILatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Subsystem: "api",
		Name:      "latency_seconds",
		Help:      "Feedly API call latency by operation",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})

	// APIErrors counts failed Feedly API calls by error code
	APIErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: "api",
		Name:      "errors_total",
		Help:      "Feedly API errors by operation and error code (HTTP status, transport, canceled or deadline_exceeded)",
	}, []string{"operation", "error_code"})

	// APIRetries counts retried Feedly API requests
	APIRetries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: "api",
		Name:      "retries_total",
		Help:      "Feedly API retry count by operation",
	}, []string{"operation"})

	// CircuitRejections counts requests rejected by an open circuit breaker
	CircuitRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: "api",
		Name:      "circuit_rejections_total",
		Help:      "Feedly API requests rejected by the circuit breaker",
	}, []string{"operation"})

	// CircuitState exposes the breaker state: 0 closed, 1 open, 2 half-open
	CircuitState = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Subsystem: "api",
		Name:      "circuit_state",
		Help:      "Circuit breaker state (0 closed, 1 open, 2 half-open)",
	})

	// MarkedEntries counts entries sent to the markers endpoint by action. Unknown actions share the "other" label.
	MarkedEntries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: "api",
		Name:      "marked_entries_total",
		Help:      "Entries submitted to the markers endpoint by action",
	}, []string{"action"})
)

// RecordRequest records a completed tool call with its duration and status
func RecordRequest(tool string, duration float64, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	RequestsTotal.WithLabelValues(tool, status).Inc()
	RequestDuration.WithLabelValues(tool).Observe(duration)
}

// RecordAPICall records a Feedly API call. errorCode is empty on success.
func RecordAPICall(operation string, duration float64, success bool, errorCode string) {
	status := "success"
	if !success {
		status = "error"
	}
	APIRequestsTotal.WithLabelValues(operation, status).Inc()
	APILatency.WithLabelValues(operation).Observe(duration)
	if errorCode != "" {
		APIErrors.WithLabelValues(operation, errorCode).Inc()
	}
}

// SetCircuitState updates the circuit breaker gauge
func SetCircuitState(state int) {
	CircuitState.Set(float64(state))
}
