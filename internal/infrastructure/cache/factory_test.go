package cache

import (
	"testing"

	"github.com/marketops/backoffice/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// unreachableRedis points at a port nothing listens on
var unreachableRedis = config.RedisConfig{Host: "127.0.0.1", Port: 1}

func TestStoreFactory_CreateStore(t *testing.T) {
	t.Run("memory store by default", func(t *testing.T) {
		f := NewStoreFactory(config.GateConfig{Store: config.StoreMemory}, unreachableRedis)

		store, err := f.CreateStore()
		require.NoError(t, err)
		assert.IsType(t, &InMemoryStore{}, store)
	})

	t.Run("falls back to memory when redis is unreachable", func(t *testing.T) {
		core, logs := observer.New(zap.WarnLevel)
		f := NewStoreFactory(config.GateConfig{Store: config.StoreRedis}, unreachableRedis, WithLogger(zap.New(core)))

		store, err := f.CreateStore()
		require.NoError(t, err)
		assert.IsType(t, &InMemoryStore{}, store)
		assert.Equal(t, 1, logs.FilterMessageSnippet("falling back to in-memory").Len())
	})

	t.Run("fails when redis is required", func(t *testing.T) {
		f := NewStoreFactory(config.GateConfig{Store: config.StoreRedis, RequireRedis: true}, unreachableRedis)

		store, err := f.CreateStore()
		require.Error(t, err)
		assert.Nil(t, store)
		assert.Contains(t, err.Error(), "Redis required")
	})

	t.Run("explicit fallback option overrides config", func(t *testing.T) {
		f := NewStoreFactory(config.GateConfig{Store: config.StoreRedis, RequireRedis: true}, unreachableRedis,
			WithInMemoryFallback(true))

		store, err := f.CreateStore()
		require.NoError(t, err)
		assert.NotNil(t, store)
	})
}
