package middleware

import (
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/marketops/backoffice/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// unmatchedRoute labels requests that matched no route, keeping raw paths
// out of metric labels.
const unmatchedRoute = "unknown"

// HTTPMetricsConfig holds configuration for HTTP metrics middleware.
type HTTPMetricsConfig struct {
	// MeterProvider exports OTel instruments. Nil or disabled skips them.
	MeterProvider *telemetry.MeterProvider
	// Prometheus receives the scrape series. Nil skips them.
	Prometheus *telemetry.PrometheusMetrics
	// Enabled controls whether metrics collection is active.
	Enabled bool
	Logger  *zap.Logger
}

// httpMetrics holds the OTel HTTP instruments.
type httpMetrics struct {
	requestTotal    *telemetry.Counter
	requestDuration *telemetry.Histogram
	responseSize    *telemetry.Histogram
	activeRequests  *telemetry.Gauge
	active          atomic.Int64
}

// newHTTPMetrics creates all HTTP metrics instruments from a meter.
func newHTTPMetrics(meter metric.Meter) (*httpMetrics, error) {
	requestTotal, err := telemetry.NewCounter(
		meter,
		"http_server_request_total",
		"Total number of HTTP requests",
		"{request}",
	)
	if err != nil {
		return nil, err
	}

	requestDuration, err := telemetry.NewHistogram(meter, telemetry.HistogramOpts{
		Name:        "http_server_request_duration_seconds",
		Description: "HTTP request latency distribution in seconds",
		Unit:        "s",
		Boundaries:  telemetry.HTTPDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	responseSize, err := telemetry.NewHistogram(meter, telemetry.HistogramOpts{
		Name:        "http_server_response_size_bytes",
		Description: "HTTP response body size distribution in bytes",
		Unit:        "By",
		Boundaries:  []float64{100, 1000, 10000, 100000, 1000000, 5000000},
	})
	if err != nil {
		return nil, err
	}

	activeRequests, err := telemetry.NewGauge(
		meter,
		"http_server_active_requests",
		"Number of currently active HTTP requests",
		"{request}",
	)
	if err != nil {
		return nil, err
	}

	return &httpMetrics{
		requestTotal:    requestTotal,
		requestDuration: requestDuration,
		responseSize:    responseSize,
		activeRequests:  activeRequests,
	}, nil
}

// HTTPMetrics returns a Gin middleware that records request count, latency
// and response size by method and route pattern. Series go to the OTel
// meter and to the Prometheus registry, whichever are configured.
func HTTPMetrics(cfg HTTPMetricsConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return passThrough
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var otelMetrics *httpMetrics
	if cfg.MeterProvider != nil && cfg.MeterProvider.IsEnabled() {
		m, err := newHTTPMetrics(cfg.MeterProvider.Meter("http.server"))
		if err != nil {
			logger.Warn("Failed to create HTTP metric instruments", zap.Error(err))
		} else {
			otelMetrics = m
		}
	}

	if otelMetrics == nil && cfg.Prometheus == nil {
		return passThrough
	}
	return httpMetricsMiddleware(otelMetrics, cfg.Prometheus)
}

// HTTPMetricsWithMeter returns HTTP metrics middleware using an existing meter.
func HTTPMetricsWithMeter(meter metric.Meter, enabled bool) gin.HandlerFunc {
	if !enabled {
		return passThrough
	}
	metrics, err := newHTTPMetrics(meter)
	if err != nil {
		return passThrough
	}
	return httpMetricsMiddleware(metrics, nil)
}

// httpMetricsMiddleware records to either sink; both may be set.
func httpMetricsMiddleware(metrics *httpMetrics, prom *telemetry.PrometheusMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		start := time.Now()

		if metrics != nil {
			metrics.activeRequests.Record(ctx, metrics.active.Add(1))
		}

		c.Next()

		duration := time.Since(start)
		method := c.Request.Method
		route := routePattern(c)
		status := c.Writer.Status()

		if prom != nil {
			prom.ObserveHTTPRequest(method, route, status, duration)
		}
		if metrics == nil {
			return
		}

		metrics.activeRequests.Record(ctx, metrics.active.Add(-1))

		baseAttrs := []attribute.KeyValue{
			telemetry.AttrHTTPMethod.String(method),
			telemetry.AttrHTTPRoute.String(route),
		}
		metrics.requestTotal.Inc(ctx, append(baseAttrs, telemetry.AttrHTTPStatusCode.Int(status))...)
		metrics.requestDuration.RecordDuration(ctx, duration, baseAttrs...)
		if size := c.Writer.Size(); size > 0 {
			metrics.responseSize.Record(ctx, float64(size), baseAttrs...)
		}
	}
}

// routePattern returns the matched route (e.g. "/api/v1/inventory") instead
// of the raw path.
func routePattern(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return unmatchedRoute
}

func passThrough(c *gin.Context) {
	c.Next()
}
