package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// Gate lookup and upstream outcomes
const (
	OutcomeHit     = "hit"
	OutcomeMiss    = "miss"
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// GateMetrics records upstream gate activity as OTel instruments and, when a
// Prometheus registry is attached, as scrapeable series.
type GateMetrics struct {
	lookups          *Counter
	throttleWait     *Histogram
	upstreamCalls    *Counter
	upstreamDuration *Histogram

	prom   *PrometheusMetrics
	logger *zap.Logger
}

// NewGateMetrics creates the gate instruments on meter. prom may be nil.
func NewGateMetrics(meter metric.Meter, prom *PrometheusMetrics, logger *zap.Logger) (*GateMetrics, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	lookups, err := NewCounter(meter,
		"backoffice.gate.lookups",
		"Gate cache lookups by outcome",
		"{lookup}",
	)
	if err != nil {
		return nil, err
	}

	throttleWait, err := NewHistogram(meter, HistogramOpts{
		Name:        "backoffice.gate.throttle_wait",
		Description: "Time spent waiting out the minimum upstream interval",
		Unit:        "s",
		Boundaries:  ThrottleWaitBuckets,
	})
	if err != nil {
		return nil, err
	}

	upstreamCalls, err := NewCounter(meter,
		"backoffice.upstream.calls",
		"Upstream fetches by outcome",
		"{call}",
	)
	if err != nil {
		return nil, err
	}

	upstreamDuration, err := NewHistogram(meter, HistogramOpts{
		Name:        "backoffice.upstream.duration",
		Description: "Upstream fetch latency",
		Unit:        "s",
		Boundaries:  UpstreamDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	return &GateMetrics{
		lookups:          lookups,
		throttleWait:     throttleWait,
		upstreamCalls:    upstreamCalls,
		upstreamDuration: upstreamDuration,
		prom:             prom,
		logger:           logger,
	}, nil
}

// CacheHit records a lookup served from the store
func (m *GateMetrics) CacheHit(ctx context.Context, key string) {
	m.lookup(ctx, key, OutcomeHit)
}

// CacheMiss records a lookup that needs the upstream
func (m *GateMetrics) CacheMiss(ctx context.Context, key string) {
	m.lookup(ctx, key, OutcomeMiss)
}

func (m *GateMetrics) lookup(ctx context.Context, key, outcome string) {
	m.lookups.Inc(ctx, AttrGateKey.String(key), AttrOutcome.String(outcome))
	if m.prom != nil {
		m.prom.observeLookup(key, outcome)
	}
}

// ThrottleWait records time spent honouring the minimum interval
func (m *GateMetrics) ThrottleWait(ctx context.Context, key string, wait time.Duration) {
	m.throttleWait.RecordDuration(ctx, wait, AttrGateKey.String(key))
	if m.prom != nil {
		m.prom.observeThrottle(wait)
	}
}

// UpstreamCall records one upstream fetch
func (m *GateMetrics) UpstreamCall(ctx context.Context, key string, duration time.Duration, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
		m.logger.Debug("Upstream call recorded as failed",
			zap.String("key", key),
			zap.Error(err))
	}

	m.upstreamCalls.Inc(ctx, AttrGateKey.String(key), AttrOutcome.String(outcome))
	m.upstreamDuration.RecordDuration(ctx, duration,
		AttrGateKey.String(key), AttrOutcome.String(outcome))
	if m.prom != nil {
		m.prom.observeUpstream(key, outcome, duration)
	}
}
