package httpapi

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metricsHandler exposes the process's registered Prometheus collectors at
// the standard /metrics path.
func metricsHandler() http.Handler {
	return promhttp.Handler()
}
