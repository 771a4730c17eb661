// Package metrics exposes Prometheus collectors for protocol dispatch.
// file: internal/metrics/metrics.go
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder implements the handler's metrics sink on Prometheus collectors.
type Recorder struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestFailures *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	toolErrorsTotal *prometheus.CounterVec
}

// NewRecorder creates a recorder with its own registry, so tests can build
// independent instances without collector name collisions.
func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()

	r := &Recorder{
		registry: registry,
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scenebridge_requests_total",
			Help: "Protocol requests dispatched, by method.",
		}, []string{"method"}),
		requestFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scenebridge_request_failures_total",
			Help: "Protocol requests that failed at the request level, by method.",
		}, []string{"method"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "scenebridge_request_duration_seconds",
			Help:    "Protocol request dispatch latency, by method.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
		toolErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scenebridge_tool_errors_total",
			Help: "Tool calls that produced an error-shaped result, by tool.",
		}, []string{"tool"}),
	}

	registry.MustRegister(r.requestsTotal, r.requestFailures, r.requestDuration, r.toolErrorsTotal)
	return r
}

// ObserveRequest records one dispatched request.
func (r *Recorder) ObserveRequest(method string, duration time.Duration, failed bool) {
	r.requestsTotal.WithLabelValues(method).Inc()
	r.requestDuration.WithLabelValues(method).Observe(duration.Seconds())
	if failed {
		r.requestFailures.WithLabelValues(method).Inc()
	}
}

// ObserveToolError records one error-shaped tool result.
func (r *Recorder) ObserveToolError(toolName string) {
	r.toolErrorsTotal.WithLabelValues(toolName).Inc()
}

// HTTPHandler returns the scrape endpoint for this recorder's registry.
func (r *Recorder) HTTPHandler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
