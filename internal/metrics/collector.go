package metrics

import (
	"time"

	"github.com/onedm/sdf-matter-translator/pkg/logger"
)

// Collector provides an interface for metrics collection.
type Collector interface {
	// RecordRequest records a HTTP request.
	RecordRequest(method, path string, status int, duration time.Duration)

	// RecordConversion records one sdf->matter or matter->sdf run, whether
	// it succeeded, and how long it took.
	RecordConversion(direction string, success bool, duration time.Duration)

	// RecordUnresolvedConformance records a conformance expression the
	// translator could not evaluate.
	RecordUnresolvedConformance(kind string)

	// RecordSchemaValidation records the outcome of a --validate pass.
	RecordSchemaValidation(document string, success bool, duration time.Duration)
}

// NewCollector creates a new metrics collector.
func NewCollector(impl string, log logger.Logger) Collector {
	switch impl {
	case "prometheus":
		return NewPrometheusMetrics(log)
	case "noop":
		return &NoopCollector{}
	default:
		return &NoopCollector{}
	}
}

// NoopCollector is a no-operation metrics collector for testing or when
// metrics are disabled.
type NoopCollector struct{}

// RecordRequest is a no-op implementation.
func (n *NoopCollector) RecordRequest(method, path string, status int, duration time.Duration) {}

// RecordConversion is a no-op implementation.
func (n *NoopCollector) RecordConversion(direction string, success bool, duration time.Duration) {}

// RecordUnresolvedConformance is a no-op implementation.
func (n *NoopCollector) RecordUnresolvedConformance(kind string) {}

// RecordSchemaValidation is a no-op implementation.
func (n *NoopCollector) RecordSchemaValidation(document string, success bool, duration time.Duration) {
}
