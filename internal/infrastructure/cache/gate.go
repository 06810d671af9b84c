package cache

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Gate defaults, matching the limits the inventory upstream asks clients to respect.
const (
	DefaultMinInterval = 60 * time.Second
	DefaultCacheTTL    = 5 * time.Minute
)

// GateRecorder receives gate events for metrics collection
type GateRecorder interface {
	CacheHit(ctx context.Context, key string)
	CacheMiss(ctx context.Context, key string)
	ThrottleWait(ctx context.Context, key string, wait time.Duration)
	UpstreamCall(ctx context.Context, key string, duration time.Duration, err error)
}

type nopRecorder struct{}

func (nopRecorder) CacheHit(context.Context, string)                           {}
func (nopRecorder) CacheMiss(context.Context, string)                          {}
func (nopRecorder) ThrottleWait(context.Context, string, time.Duration)        {}
func (nopRecorder) UpstreamCall(context.Context, string, time.Duration, error) {}

// Gate throttles and memoizes calls to a slow upstream. A fresh entry is
// served from the store; otherwise the caller queues for the upstream slot,
// waits out the minimum interval since the previous call and performs the
// fetch. Failed fetches are never stored.
//
// One Gate is shared by every request in the process.
type Gate struct {
	store       Store
	clock       Clock
	recorder    GateRecorder
	logger      *zap.Logger
	minInterval time.Duration
	cacheTTL    time.Duration

	// slot serializes the throttle-then-call sequence. Holding it guards lastCall.
	slot     chan struct{}
	lastCall time.Time
}

// GateOption is a functional option for configuring the gate
type GateOption func(*Gate)

// WithClock sets the clock used for freshness and throttling
func WithClock(clock Clock) GateOption {
	return func(g *Gate) {
		g.clock = clock
	}
}

// WithMinInterval sets the minimum interval between upstream calls
func WithMinInterval(d time.Duration) GateOption {
	return func(g *Gate) {
		g.minInterval = d
	}
}

// WithCacheTTL sets how long a stored entry stays fresh
func WithCacheTTL(d time.Duration) GateOption {
	return func(g *Gate) {
		g.cacheTTL = d
	}
}

// WithGateLogger sets the logger for the gate
func WithGateLogger(logger *zap.Logger) GateOption {
	return func(g *Gate) {
		g.logger = logger
	}
}

// WithRecorder sets the metrics recorder
func WithRecorder(recorder GateRecorder) GateOption {
	return func(g *Gate) {
		g.recorder = recorder
	}
}

// NewGate creates a gate backed by store
func NewGate(store Store, opts ...GateOption) *Gate {
	g := &Gate{
		store:       store,
		clock:       SystemClock{},
		recorder:    nopRecorder{},
		logger:      zap.NewNop(),
		minInterval: DefaultMinInterval,
		cacheTTL:    DefaultCacheTTL,
		slot:        make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Do returns the fresh entry for key or, failing that, the result of fetch.
func (g *Gate) Do(ctx context.Context, key string, fetch func(context.Context) ([]byte, error)) ([]byte, error) {
	if data, ok := g.lookup(ctx, key); ok {
		g.recorder.CacheHit(ctx, key)
		return data, nil
	}

	select {
	case g.slot <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	defer func() { <-g.slot }()

	// Another caller may have filled the entry while we queued.
	if data, ok := g.lookup(ctx, key); ok {
		g.recorder.CacheHit(ctx, key)
		return data, nil
	}
	g.recorder.CacheMiss(ctx, key)

	if err := g.throttle(ctx, key); err != nil {
		return nil, err
	}

	start := g.clock.Now()
	g.lastCall = start
	data, err := fetch(ctx)
	g.recorder.UpstreamCall(ctx, key, g.clock.Now().Sub(start), err)
	if err != nil {
		g.logger.Warn("Upstream call failed",
			zap.String("key", key),
			zap.Error(err))
		return nil, err
	}

	if err := g.store.Set(ctx, key, Entry{Data: data, StoredAt: g.clock.Now()}); err != nil {
		g.logger.Warn("Failed to store upstream response",
			zap.String("key", key),
			zap.Error(err))
	} else {
		g.logger.Debug("Cached upstream response",
			zap.String("key", key),
			zap.Int("bytes", len(data)))
	}

	return data, nil
}

// Invalidate drops every stored entry. The throttle state is kept.
func (g *Gate) Invalidate(ctx context.Context) error {
	if err := g.store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear gate store: %w", err)
	}
	return nil
}

// Len returns the number of stored entries, fresh or not.
func (g *Gate) Len(ctx context.Context) (int, error) {
	return g.store.Len(ctx)
}

// lookup returns the stored payload for key when it is still fresh. Store
// failures degrade to a miss.
func (g *Gate) lookup(ctx context.Context, key string) ([]byte, bool) {
	entry, err := g.store.Get(ctx, key)
	if err != nil {
		g.logger.Warn("Gate store read failed, treating as miss",
			zap.String("key", key),
			zap.Error(err))
		return nil, false
	}
	if entry == nil || !entry.Fresh(g.clock.Now(), g.cacheTTL) {
		return nil, false
	}
	g.logger.Debug("Using cached upstream response", zap.String("key", key))
	return entry.Data, true
}

// throttle sleeps for whatever remains of the minimum interval since the
// previous upstream call. The caller must hold the slot.
func (g *Gate) throttle(ctx context.Context, key string) error {
	if g.lastCall.IsZero() {
		return nil
	}
	wait := g.minInterval - g.clock.Now().Sub(g.lastCall)
	if wait <= 0 {
		return nil
	}

	g.logger.Info("Rate limiting upstream call",
		zap.String("key", key),
		zap.Duration("wait", wait))
	g.recorder.ThrottleWait(ctx, key, wait)

	return g.clock.Sleep(ctx, wait)
}
