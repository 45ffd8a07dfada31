package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Counter metrics
var (
	LoginCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "staffboard_login_total",
			Help: "Total number of login attempts",
		},
	)

	// Roster mutation counter by operation
	MutationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "staffboard_mutations_total",
			Help: "Total number of roster mutations by operation",
		},
		[]string{"operation"}, // "assign", "create_worker", "delete_area", "distribute", ...
	)

	// HTTP request counter by endpoint and status
	HTTPRequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "staffboard_http_requests_total",
			Help: "Total number of HTTP requests by endpoint and status",
		},
		[]string{"endpoint", "method", "status"},
	)

	// Error counters
	AuthErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "staffboard_auth_errors_total",
			Help: "Total number of authentication errors",
		},
		[]string{"type"}, // "missing_token", "invalid_token", "forbidden", ...
	)

	// Capacity rejections on the manual assignment path
	CapacityRejectionCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "staffboard_capacity_rejections_total",
			Help: "Total number of manual assignments rejected for capacity",
		},
	)

	// Snapshot broadcasts pushed to observers
	BroadcastCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "staffboard_broadcasts_total",
			Help: "Total number of state snapshots broadcast to observers",
		},
	)
)

// Histogram metrics
var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "staffboard_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	DistributeDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "staffboard_distribute_duration_seconds",
			Help:    "Duration of fair-distribution passes in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// Gauge metrics
var (
	// Connected push-channel observers
	ObserversGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "staffboard_connected_observers",
			Help: "Number of currently connected push-channel observers",
		},
	)

	InfoGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "staffboard_info",
			Help: "Information about the staffboard service",
		},
		[]string{"version"},
	)
)

func init() {
	prometheus.MustRegister(LoginCounter)
	prometheus.MustRegister(MutationCounter)
	prometheus.MustRegister(HTTPRequestCounter)
	prometheus.MustRegister(AuthErrorCounter)
	prometheus.MustRegister(CapacityRejectionCounter)
	prometheus.MustRegister(BroadcastCounter)

	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(DistributeDuration)

	prometheus.MustRegister(ObserversGauge)
	prometheus.MustRegister(InfoGauge)

	InfoGauge.With(prometheus.Labels{"version": "1.0.0"}).Set(1)
}

// GetPrometheusHandler returns an HTTP handler for the Prometheus metrics
func GetPrometheusHandler() http.Handler {
	return promhttp.Handler()
}

// RecordAuthError increments the auth error counter for the given type.
func RecordAuthError(errorType string) {
	AuthErrorCounter.WithLabelValues(errorType).Inc()
}

// RecordMutation increments the mutation counter for the given operation.
func RecordMutation(operation string) {
	MutationCounter.WithLabelValues(operation).Inc()
}

// MetricsMiddleware adds prometheus metrics to track HTTP requests
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			duration := time.Since(start).Seconds()
			method := c.Request().Method
			path := c.Path()
			status := strconv.Itoa(c.Response().Status)

			HTTPRequestCounter.WithLabelValues(path, method, status).Inc()
			RequestDuration.WithLabelValues(path, method, status).Observe(duration)

			return err
		}
	}
}
