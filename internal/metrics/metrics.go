// Package metrics exposes Prometheus collectors for the HTTP surface and
// the recommendation engine.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every collector behind its own registry, so constructing a
// second instance (tests) never trips duplicate registration.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	recommendationsTotal   *prometheus.CounterVec
	recommendationDuration prometheus.Histogram
	cacheLookupsTotal      *prometheus.CounterVec

	corpusRecipes prometheus.Gauge
	corpusTerms   prometheus.Gauge
}

// New creates the collectors and registers them, together with the standard
// Go and process collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pantrypal_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pantrypal_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		recommendationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pantrypal_recommendations_total",
				Help: "Total number of recommendation requests by outcome",
			},
			[]string{"outcome"},
		),
		recommendationDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "pantrypal_recommendation_duration_seconds",
				Help:    "Engine ranking duration in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
		),
		cacheLookupsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pantrypal_cache_lookups_total",
				Help: "Recommendation cache lookups by result",
			},
			[]string{"result"},
		),

		corpusRecipes: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "pantrypal_corpus_recipes",
				Help: "Number of recipes in the loaded corpus",
			},
		),
		corpusTerms: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "pantrypal_corpus_vocabulary_terms",
				Help: "Number of terms in the fitted vector space",
			},
		),
	}
}

// Handler serves the Prometheus exposition format for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// HTTPMiddleware records request counts and durations per route.
func (m *Metrics) HTTPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.httpRequestsTotal.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		m.httpRequestDuration.WithLabelValues(
			c.Request.Method,
			path,
		).Observe(time.Since(start).Seconds())
	}
}

// RecommendationServed records one recommendation request and how it ended:
// "ok", "cache_hit", "empty_query", "invalid_request" or "error".
func (m *Metrics) RecommendationServed(outcome string, duration time.Duration) {
	m.recommendationsTotal.WithLabelValues(outcome).Inc()
	if outcome == "ok" {
		m.recommendationDuration.Observe(duration.Seconds())
	}
}

// CacheLookup records a recommendation cache hit or miss.
func (m *Metrics) CacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookupsTotal.WithLabelValues(result).Inc()
}

// SetCorpusStats publishes the loaded corpus dimensions.
func (m *Metrics) SetCorpusStats(recipes, terms int) {
	m.corpusRecipes.Set(float64(recipes))
	m.corpusTerms.Set(float64(terms))
}
