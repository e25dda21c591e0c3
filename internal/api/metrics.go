package api

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rosa",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, path and status",
		},
		[]string{"method", "path", "status"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "rosa",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "path"},
	)

	clustersCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "rosa",
			Subsystem: "console",
			Name:      "clusters_created_total",
			Help:      "Total number of cluster creation requests accepted",
		},
	)

	validationFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "rosa",
			Subsystem: "console",
			Name:      "validation_failures_total",
			Help:      "Total number of config validations that reported errors",
		},
	)
)

// MetricsMiddleware records request counts and latencies per route
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			// Use the route pattern, not the raw URI, to bound cardinality
			path := c.Path()
			if path == "" {
				path = "unmatched"
			}

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}

			requestsTotal.WithLabelValues(c.Request().Method, path, strconv.Itoa(status)).Inc()
			requestDuration.WithLabelValues(c.Request().Method, path).Observe(time.Since(start).Seconds())

			return err
		}
	}
}

// MetricsHandler serves the Prometheus scrape endpoint
func MetricsHandler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}
