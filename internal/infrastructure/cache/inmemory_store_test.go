package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	storedAt := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	entry, err := store.Get(ctx, "products")
	require.NoError(t, err)
	assert.Nil(t, entry)

	require.NoError(t, store.Set(ctx, "products", Entry{Data: []byte(`[]`), StoredAt: storedAt}))
	require.NoError(t, store.Set(ctx, "dashboardStats", Entry{Data: []byte(`{}`), StoredAt: storedAt}))

	entry, err = store.Get(ctx, "products")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, []byte(`[]`), entry.Data)
	assert.Equal(t, storedAt, entry.StoredAt)

	n, err := store.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, store.Clear(ctx))
	n, err = store.Len(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	assert.NoError(t, store.Close())
}

func TestEntry_Fresh(t *testing.T) {
	storedAt := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	e := Entry{StoredAt: storedAt}

	assert.True(t, e.Fresh(storedAt, time.Minute))
	assert.True(t, e.Fresh(storedAt.Add(59*time.Second), time.Minute))
	assert.False(t, e.Fresh(storedAt.Add(time.Minute), time.Minute))
}
