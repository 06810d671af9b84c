package cache

import (
	"fmt"

	"github.com/marketops/backoffice/internal/infrastructure/config"
	"go.uber.org/zap"
)

// StoreFactory creates gate stores based on configuration
type StoreFactory struct {
	gateConfig            config.GateConfig
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// StoreFactoryOption is a functional option for configuring the factory
type StoreFactoryOption func(*StoreFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) StoreFactoryOption {
	return func(f *StoreFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to in-memory store when Redis is unavailable
// Default is true (allow fallback)
func WithInMemoryFallback(allow bool) StoreFactoryOption {
	return func(f *StoreFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewStoreFactory creates a new factory
func NewStoreFactory(gateCfg config.GateConfig, redisCfg config.RedisConfig, opts ...StoreFactoryOption) *StoreFactory {
	f := &StoreFactory{
		gateConfig:            gateCfg,
		redisConfig:           redisCfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: !gateCfg.RequireRedis,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateRedisStore creates a Redis-backed store
func (f *StoreFactory) CreateRedisStore() (Store, error) {
	store, err := NewRedisStore(RedisConfig{
		Host:      f.redisConfig.Host,
		Port:      f.redisConfig.Port,
		Password:  f.redisConfig.Password,
		DB:        f.redisConfig.DB,
		KeyPrefix: f.redisConfig.KeyPrefix,
	}, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis gate store: %w", err)
	}
	return store, nil
}

// CreateInMemoryStore creates an in-memory store.
// WARNING: In-memory stores do not share state across process instances, so
// each instance throttles and caches on its own.
func (f *StoreFactory) CreateInMemoryStore() Store {
	return NewInMemoryStore()
}

// CreateStore creates the store named by gate.store. When Redis is requested
// but unreachable it falls back to memory unless fallback is disabled.
func (f *StoreFactory) CreateStore() (Store, error) {
	if f.gateConfig.Store != config.StoreRedis {
		f.logger.Info("using in-memory gate store")
		return f.CreateInMemoryStore(), nil
	}

	store, err := f.CreateRedisStore()
	if err == nil {
		f.logger.Info("using Redis gate store", zap.String("addr", f.redisConfig.Addr()))
		return store, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for gate store but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory gate store. "+
		"Upstream throttling will not be shared across instances.",
		zap.Error(err),
	)
	return f.CreateInMemoryStore(), nil
}

// NewGateFromConfig creates a gate over store using the configured interval and TTL
func NewGateFromConfig(cfg config.GateConfig, store Store, opts ...GateOption) *Gate {
	base := []GateOption{
		WithMinInterval(cfg.MinInterval),
		WithCacheTTL(cfg.CacheTTL),
	}
	return NewGate(store, append(base, opts...)...)
}
