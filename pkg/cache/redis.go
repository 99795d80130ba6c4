package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces all cache records in Redis.
const keyPrefix = "fetchres:"

// Compile-time interface check.
var _ Store = (*RedisStore)(nil)

// RedisStore is a Store backed by Redis, for deployments that already run
// one. Records carry their own expires_at and additionally get a native
// Redis TTL, so unread expired entries are reclaimed by Redis itself.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Store on top of an existing Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	if client == nil {
		panic("redis client cannot be nil")
	}
	return &RedisStore{client: client}
}

// Get returns the record for key, or ErrNotFound.
func (s *RedisStore) Get(ctx context.Context, key string) (*Record, error) {
	data, err := s.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("cache/redis: get: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("cache/redis: unmarshal record: %w", err)
	}
	return &rec, nil
}

// Put stores the record with a native TTL derived from its ExpiresAt.
func (s *RedisStore) Put(ctx context.Context, rec *Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("cache/redis: marshal record: %w", err)
	}

	ttl := time.Duration(rec.ExpiresAt - time.Now().UnixNano())
	if ttl <= 0 {
		// Already expired, nothing to persist.
		return nil
	}

	if err := s.client.Set(ctx, keyPrefix+rec.Key, data, ttl).Err(); err != nil {
		return fmt.Errorf("cache/redis: set: %w", err)
	}
	return nil
}

// Delete removes the record for key.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("cache/redis: del: %w", err)
	}
	return nil
}

// DeleteExpired is a no-op for Redis: native TTLs already reclaim expired
// records.
func (s *RedisStore) DeleteExpired(ctx context.Context, now int64) (int, error) {
	return 0, nil
}

// DeleteContaining removes every record whose key contains fragment, using
// an incremental SCAN over the namespaced keyspace.
func (s *RedisStore) DeleteContaining(ctx context.Context, fragment string) (int, error) {
	return s.deleteByPattern(ctx, keyPrefix+"*"+fragment+"*")
}

// Clear removes all records in the cache namespace.
func (s *RedisStore) Clear(ctx context.Context) error {
	_, err := s.deleteByPattern(ctx, keyPrefix+"*")
	return err
}

func (s *RedisStore) deleteByPattern(ctx context.Context, pattern string) (int, error) {
	var deleted int
	iter := s.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return deleted, fmt.Errorf("cache/redis: del scanned: %w", err)
		}
		deleted++
	}
	if err := iter.Err(); err != nil {
		return deleted, fmt.Errorf("cache/redis: scan: %w", err)
	}
	return deleted, nil
}

// Name implements Store.
func (s *RedisStore) Name() string { return "redis" }

// Close closes the underlying Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
