package cache

import (
	"context"
	"time"
)

// Entry is a memoized upstream payload together with the time it was stored.
type Entry struct {
	Data     []byte    `json:"data"`
	StoredAt time.Time `json:"storedAt"`
}

// Fresh reports whether the entry is younger than ttl at now.
func (e Entry) Fresh(now time.Time, ttl time.Duration) bool {
	return now.Sub(e.StoredAt) < ttl
}

// Store holds gate entries. Expiry is decided by the gate on read, stores
// never evict on their own.
type Store interface {
	// Get returns the entry for key, or nil when there is none.
	Get(ctx context.Context, key string) (*Entry, error)
	Set(ctx context.Context, key string, entry Entry) error
	// Clear removes every entry.
	Clear(ctx context.Context) error
	// Len returns the number of stored entries.
	Len(ctx context.Context) (int, error)
	Close() error
}
