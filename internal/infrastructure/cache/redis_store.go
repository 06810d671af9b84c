package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	defaultKeyPrefix     = "backoffice:gate:"
	defaultScanBatchSize = 100
)

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host      string
	Port      int
	Password  string
	DB        int
	KeyPrefix string
}

// RedisStore implements Store using Redis, so that several instances
// behind a load balancer share memoized upstream responses.
type RedisStore struct {
	client     *redis.Client
	ownsClient bool
	keyPrefix  string
	logger     *zap.Logger
}

// NewRedisStore connects to Redis and creates a store
func NewRedisStore(cfg RedisConfig, logger *zap.Logger) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	store := NewRedisStoreWithClient(client, cfg.KeyPrefix, logger)
	store.ownsClient = true
	return store, nil
}

// NewRedisStoreWithClient creates a store with an existing Redis client.
// The caller retains ownership of the client.
func NewRedisStoreWithClient(client *redis.Client, keyPrefix string, logger *zap.Logger) *RedisStore {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisStore{
		client:    client,
		keyPrefix: keyPrefix,
		logger:    logger,
	}
}

// Get retrieves an entry
func (s *RedisStore) Get(ctx context.Context, key string) (*Entry, error) {
	cacheKey := s.keyPrefix + key

	data, err := s.client.Get(ctx, cacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get gate entry: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		s.logger.Warn("Dropping corrupted gate entry",
			zap.String("key", key),
			zap.Error(err))
		_ = s.client.Del(ctx, cacheKey)
		return nil, nil
	}
	return &entry, nil
}

// Set stores an entry without expiration
func (s *RedisStore) Set(ctx context.Context, key string, entry Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal gate entry: %w", err)
	}
	if err := s.client.Set(ctx, s.keyPrefix+key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set gate entry: %w", err)
	}
	return nil
}

// Clear removes every key under the store prefix.
// SCAN is used instead of KEYS to avoid blocking Redis.
func (s *RedisStore) Clear(ctx context.Context) error {
	var cursor uint64
	var deleted int64

	for {
		keys, next, err := s.client.Scan(ctx, cursor, s.keyPrefix+"*", defaultScanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("failed to scan gate keys: %w", err)
		}
		if len(keys) > 0 {
			n, err := s.client.Del(ctx, keys...).Result()
			if err != nil {
				return fmt.Errorf("failed to delete gate keys: %w", err)
			}
			deleted += n
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}

	s.logger.Debug("Cleared gate entries", zap.Int64("deleted_count", deleted))
	return nil
}

// Len counts the keys under the store prefix
func (s *RedisStore) Len(ctx context.Context) (int, error) {
	var cursor uint64
	count := 0

	for {
		keys, next, err := s.client.Scan(ctx, cursor, s.keyPrefix+"*", defaultScanBatchSize).Result()
		if err != nil {
			return 0, fmt.Errorf("failed to scan gate keys: %w", err)
		}
		count += len(keys)
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return count, nil
}

// Close closes the client if the store created it
func (s *RedisStore) Close() error {
	if s.ownsClient {
		return s.client.Close()
	}
	return nil
}

var _ Store = (*RedisStore)(nil)
