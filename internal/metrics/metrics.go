package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service collectors on a private registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry       *prometheus.Registry
	lookupOutcomes *prometheus.CounterVec
	riskLevels     *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		lookupOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "availability",
			Name:      "breakdown_lookups_total",
			Help:      "Item breakdown resolutions by outcome.",
		}, []string{"outcome"}),
		riskLevels: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "availability",
			Name:      "risk_classifications_total",
			Help:      "Risk classifications by scope (line, quote) and level.",
		}, []string{"scope", "level"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "availability",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	registry.MustRegister(m.lookupOutcomes, m.riskLevels, m.httpDuration)

	return m
}

// ObserveLookup counts one breakdown resolution
func (m *Metrics) ObserveLookup(outcome string) {
	if m == nil {
		return
	}
	m.lookupOutcomes.WithLabelValues(outcome).Inc()
}

// ObserveRisk counts one classification
func (m *Metrics) ObserveRisk(scope, level string) {
	if m == nil {
		return
	}
	m.riskLevels.WithLabelValues(scope, level).Inc()
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry is exposed for tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// GinMiddleware records request latency per matched route
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpDuration.WithLabelValues(
			c.Request.Method,
			route,
			strconv.Itoa(c.Writer.Status()),
		).Observe(time.Since(start).Seconds())
	}
}
