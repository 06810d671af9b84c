package telemetry

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusNamespace prefixes every scraped series
const PrometheusNamespace = "backoffice"

// PrometheusMetrics owns a private registry exposed on the scrape endpoint.
// It carries the HTTP series and mirrors the gate series recorded over OTLP.
type PrometheusMetrics struct {
	registry *prometheus.Registry

	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
	gateLookups      *prometheus.CounterVec
	throttleWait     prometheus.Histogram
	upstreamCalls    *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
}

// NewPrometheusMetrics creates the registry with Go runtime and process
// collectors plus the backoffice series.
func NewPrometheusMetrics() *PrometheusMetrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &PrometheusMetrics{
		registry: registry,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: PrometheusNamespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests served, by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: PrometheusNamespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds.",
			Buckets:   HTTPDurationBuckets,
		}, []string{"method", "route"}),
		gateLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: PrometheusNamespace,
			Subsystem: "gate",
			Name:      "lookups_total",
			Help:      "Gate cache lookups, by key and outcome (hit or miss).",
		}, []string{"key", "outcome"}),
		throttleWait: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: PrometheusNamespace,
			Subsystem: "gate",
			Name:      "throttle_wait_seconds",
			Help:      "Time spent waiting out the minimum upstream interval.",
			Buckets:   ThrottleWaitBuckets,
		}),
		upstreamCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: PrometheusNamespace,
			Subsystem: "upstream",
			Name:      "calls_total",
			Help:      "Upstream fetches, by key and outcome (success or error).",
		}, []string{"key", "outcome"}),
		upstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: PrometheusNamespace,
			Subsystem: "upstream",
			Name:      "call_duration_seconds",
			Help:      "Upstream fetch latency in seconds.",
			Buckets:   UpstreamDurationBuckets,
		}, []string{"key"}),
	}

	registry.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.gateLookups,
		m.throttleWait,
		m.upstreamCalls,
		m.upstreamDuration,
	)
	return m
}

// Registry returns the underlying registry
func (m *PrometheusMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *PrometheusMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveHTTPRequest records one served request. route is the matched
// pattern, never the raw path.
func (m *PrometheusMetrics) ObserveHTTPRequest(method, route string, status int, d time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *PrometheusMetrics) observeLookup(key, outcome string) {
	m.gateLookups.WithLabelValues(key, outcome).Inc()
}

func (m *PrometheusMetrics) observeThrottle(wait time.Duration) {
	m.throttleWait.Observe(wait.Seconds())
}

func (m *PrometheusMetrics) observeUpstream(key, outcome string, d time.Duration) {
	m.upstreamCalls.WithLabelValues(key, outcome).Inc()
	m.upstreamDuration.WithLabelValues(key).Observe(d.Seconds())
}
