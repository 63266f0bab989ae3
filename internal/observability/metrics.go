package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles the Prometheus collectors exposed on /metrics.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	errorsTotal     *prometheus.CounterVec

	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	upstreamTotal   *prometheus.CounterVec
	searchesTotal   *prometheus.CounterVec
	usersRegistered prometheus.Counter
}

// NewMetrics registers collectors on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		errorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_errors_total",
			Help: "Request errors by domain error code.",
		}, []string{"route", "method", "code"}),
		cacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "forecast_cache_hits_total",
			Help: "Forecast lookups served from Redis.",
		}),
		cacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "forecast_cache_misses_total",
			Help: "Forecast lookups that required an upstream call.",
		}),
		upstreamTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "weather_upstream_requests_total",
			Help: "Upstream provider calls by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		searchesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "searches_recorded_total",
			Help: "Search rows recorded, split by ownership.",
		}, []string{"owner"}),
		usersRegistered: factory.NewCounter(prometheus.CounterOpts{
			Name: "users_registered_total",
			Help: "Successful registrations.",
		}),
	}
}

// Registry exposes the underlying registry for the /metrics handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordRequest observes one completed HTTP request.
func (m *Metrics) RecordRequest(route, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(route, method).Observe(duration.Seconds())
}

// RecordError counts a request that failed with a domain error.
func (m *Metrics) RecordError(route, method, code string) {
	if m == nil {
		return
	}
	m.errorsTotal.WithLabelValues(route, method, code).Inc()
}

// RecordCacheHit counts a forecast served from cache.
func (m *Metrics) RecordCacheHit() {
	if m != nil {
		m.cacheHits.Inc()
	}
}

// RecordCacheMiss counts a forecast that went upstream.
func (m *Metrics) RecordCacheMiss() {
	if m != nil {
		m.cacheMisses.Inc()
	}
}

// RecordUpstream counts one provider call.
func (m *Metrics) RecordUpstream(endpoint, outcome string) {
	if m != nil {
		m.upstreamTotal.WithLabelValues(endpoint, outcome).Inc()
	}
}

// RecordSearch counts one recorded search row.
func (m *Metrics) RecordSearch(anonymous bool) {
	if m == nil {
		return
	}
	owner := "user"
	if anonymous {
		owner = "anonymous"
	}
	m.searchesTotal.WithLabelValues(owner).Inc()
}

// RecordRegistration counts one successful registration.
func (m *Metrics) RecordRegistration() {
	if m != nil {
		m.usersRegistered.Inc()
	}
}
