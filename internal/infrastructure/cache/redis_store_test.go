package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNewRedisStoreWithClient_Defaults(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	defer client.Close()

	store := NewRedisStoreWithClient(client, "", nil)

	assert.Equal(t, defaultKeyPrefix, store.keyPrefix)
	assert.NotNil(t, store.logger)
	assert.False(t, store.ownsClient)
	assert.NoError(t, store.Close(), "borrowed client is left open")
}

func TestNewRedisStore_Unreachable(t *testing.T) {
	store, err := NewRedisStore(RedisConfig{Host: "127.0.0.1", Port: 1}, zaptest.NewLogger(t))

	require.Error(t, err)
	assert.Nil(t, store)
	assert.Contains(t, err.Error(), "failed to connect to Redis")
}

func TestRedisStore_UnreachableOperationsFail(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	store := NewRedisStoreWithClient(client, "test:", zaptest.NewLogger(t))
	ctx := context.Background()

	_, err := store.Get(ctx, "k")
	assert.ErrorContains(t, err, "failed to get gate entry")

	err = store.Set(ctx, "k", Entry{Data: []byte(`[]`), StoredAt: time.Now()})
	assert.ErrorContains(t, err, "failed to set gate entry")

	_, err = store.Len(ctx)
	assert.ErrorContains(t, err, "failed to scan gate keys")

	assert.ErrorContains(t, store.Clear(ctx), "failed to scan gate keys")
}
