package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects HTTP and workflow counters for the /metrics endpoint.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	RegistrationsTotal prometheus.Counter
	EnrollmentsTotal   prometheus.Counter
	PinsRedeemedTotal  prometheus.Counter
	ResultsImported    prometheus.Counter
}

// NewMetrics builds the metric set on its own registry so tests can run
// side by side without duplicate-registration panics.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "acadport_http_requests_total",
			Help: "HTTP requests by route, method, and status.",
		}, []string{"route", "method", "status"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "acadport_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		RegistrationsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "acadport_registrations_total",
			Help: "Student accounts created.",
		}),
		EnrollmentsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "acadport_enrollments_total",
			Help: "Course registrations completed.",
		}),
		PinsRedeemedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "acadport_pins_redeemed_total",
			Help: "Registration pins redeemed.",
		}),
		ResultsImported: factory.NewCounter(prometheus.CounterOpts{
			Name: "acadport_results_imported_total",
			Help: "Result rows ingested from spreadsheets.",
		}),
	}
}

// Instrument records request counts and latency per route.
func (m *Metrics) Instrument() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requestsTotal.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the scrape endpoint for this metric set.
func (m *Metrics) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
