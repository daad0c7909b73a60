package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/onedm/sdf-matter-translator/pkg/logger"
)

// PrometheusMetrics implements metrics collection for the translation
// service.
type PrometheusMetrics struct {
	requestDuration *prometheus.HistogramVec
	requests        *prometheus.CounterVec

	conversions        *prometheus.CounterVec
	conversionDuration *prometheus.HistogramVec

	unresolvedConformance *prometheus.CounterVec

	schemaValidations *prometheus.CounterVec

	logger logger.Logger
}

// NewPrometheusMetrics creates a new PrometheusMetrics.
func NewPrometheusMetrics(log logger.Logger) *PrometheusMetrics {
	m := &PrometheusMetrics{logger: log}

	m.requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	m.requests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "path", "status"},
	)

	m.conversions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "conversions_total",
			Help: "Total number of sdf->matter or matter->sdf conversions",
		},
		[]string{"direction", "status"},
	)

	m.conversionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "conversion_duration_seconds",
			Help:    "Duration of a conversion pipeline run in seconds",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10, 30},
		},
		[]string{"direction"},
	)

	m.unresolvedConformance = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "unresolved_conformance_total",
			Help: "Total number of conformance expressions the translator could not evaluate",
		},
		[]string{"kind"},
	)

	m.schemaValidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schema_validations_total",
			Help: "Total number of --validate structural checks",
		},
		[]string{"document", "status"},
	)

	return m
}

// RecordRequest records an API request.
func (m *PrometheusMetrics) RecordRequest(method, path string, status int, duration time.Duration) {
	labels := prometheus.Labels{"method": method, "path": path, "status": statusLabel(status)}
	m.requests.With(labels).Inc()
	m.requestDuration.With(labels).Observe(duration.Seconds())
}

// RecordConversion records one conversion pipeline run.
func (m *PrometheusMetrics) RecordConversion(direction string, success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "failure"
	}

	m.conversions.With(prometheus.Labels{"direction": direction, "status": status}).Inc()
	m.conversionDuration.With(prometheus.Labels{"direction": direction}).Observe(duration.Seconds())
}

// RecordUnresolvedConformance records an unresolved conformance expression.
func (m *PrometheusMetrics) RecordUnresolvedConformance(kind string) {
	m.unresolvedConformance.With(prometheus.Labels{"kind": kind}).Inc()
}

// RecordSchemaValidation records the outcome of a --validate pass.
func (m *PrometheusMetrics) RecordSchemaValidation(document string, success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "failure"
	}
	m.schemaValidations.With(prometheus.Labels{"document": document, "status": status}).Inc()
}

func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
