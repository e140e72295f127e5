package middleware

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "Duration of HTTP request handling in seconds",
		},
		[]string{"method"},
	)

	DecisionRunsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "decision_runs_total",
			Help: "Total number of decision-agent runs scheduled",
		},
	)

	DecisionRunsFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "decision_runs_failed_total",
			Help: "Total number of decision-agent runs that returned an error",
		},
	)

	DecisionRunsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "decision_runs_active",
			Help: "Number of decision-agent runs currently in flight",
		},
	)
)

// MetricsMiddleware tracks request counts and latency.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		timer := prometheus.NewTimer(RequestDuration.WithLabelValues(r.Method))
		defer timer.ObserveDuration()

		wrapped := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapped, r)

		RequestsTotal.WithLabelValues(r.Method, strconv.Itoa(wrapped.statusCode)).Inc()
	})
}

// MetricsHandler serves the Prometheus scrape endpoint.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
