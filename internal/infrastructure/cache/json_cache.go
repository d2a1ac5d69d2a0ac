package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Cache stores JSON-encoded values by key
type Cache interface {
	// Get decodes the value of key into dest. Returns false on a miss.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// RedisCache implements Cache on Redis strings
type RedisCache struct {
	client    Client
	keyPrefix string
}

// NewRedisCache creates a Redis-backed cache
func NewRedisCache(client Client, keyPrefix string) *RedisCache {
	return &RedisCache{client: client, keyPrefix: keyPrefix}
}

// Get reads and decodes key
func (c *RedisCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read cache key: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to decode cached value: %w", err)
	}
	return true, nil
}

// Set encodes value and stores it for ttl
func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache value: %w", err)
	}
	if err := c.client.Set(ctx, c.keyPrefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache key: %w", err)
	}
	return nil
}

// Delete removes keys
func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = c.keyPrefix + k
	}
	if err := c.client.Del(ctx, prefixed...).Err(); err != nil {
		return fmt.Errorf("failed to delete cache keys: %w", err)
	}
	return nil
}

// cacheEntry wraps an encoded value with its expiration time
type cacheEntry struct {
	data      []byte
	expiresAt time.Time
}

func (e *cacheEntry) isExpired() bool {
	return time.Now().After(e.expiresAt)
}

// InMemoryCache implements Cache in process memory. Values are stored
// encoded so readers never share mutable state with writers.
type InMemoryCache struct {
	entries sync.Map // map[string]*cacheEntry
}

// NewInMemoryCache creates an in-memory cache
func NewInMemoryCache() *InMemoryCache {
	return &InMemoryCache{}
}

// Get reads and decodes key
func (c *InMemoryCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	v, ok := c.entries.Load(key)
	if !ok {
		return false, nil
	}
	e := v.(*cacheEntry)
	if e.isExpired() {
		c.entries.Delete(key)
		return false, nil
	}
	if err := json.Unmarshal(e.data, dest); err != nil {
		return false, fmt.Errorf("failed to decode cached value: %w", err)
	}
	return true, nil
}

// Set encodes value and stores it for ttl
func (c *InMemoryCache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache value: %w", err)
	}
	c.entries.Store(key, &cacheEntry{data: data, expiresAt: time.Now().Add(ttl)})
	return nil
}

// Delete removes keys
func (c *InMemoryCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		c.entries.Delete(k)
	}
	return nil
}

// TieredCache reads through a short-lived local L1 in front of the shared
// L2. Writes and deletes go to both tiers.
type TieredCache struct {
	l1     *InMemoryCache
	l2     Cache
	l1TTL  time.Duration
	logger *zap.Logger

	l1Hits int64
	l2Hits int64
	misses int64
}

// TieredCacheStats reports hit counters
type TieredCacheStats struct {
	L1Hits int64
	L2Hits int64
	Misses int64
}

// NewTieredCache creates a two-tier cache. l1TTL caps how stale a local copy
// may get after another instance changes the value.
func NewTieredCache(l2 Cache, l1TTL time.Duration, logger *zap.Logger) *TieredCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TieredCache{
		l1:     NewInMemoryCache(),
		l2:     l2,
		l1TTL:  l1TTL,
		logger: logger,
	}
}

// Get tries L1 then L2, filling L1 on an L2 hit. L2 errors are logged and
// reported as a miss.
func (c *TieredCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if ok, err := c.l1.Get(ctx, key, dest); err == nil && ok {
		atomic.AddInt64(&c.l1Hits, 1)
		return true, nil
	}

	ok, err := c.l2.Get(ctx, key, dest)
	if err != nil {
		c.logger.Warn("L2 cache read failed", zap.String("key", key), zap.Error(err))
		atomic.AddInt64(&c.misses, 1)
		return false, nil
	}
	if !ok {
		atomic.AddInt64(&c.misses, 1)
		return false, nil
	}

	atomic.AddInt64(&c.l2Hits, 1)
	_ = c.l1.Set(ctx, key, dest, c.l1TTL)
	return true, nil
}

// Set writes both tiers
func (c *TieredCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	l1TTL := c.l1TTL
	if ttl < l1TTL {
		l1TTL = ttl
	}
	_ = c.l1.Set(ctx, key, value, l1TTL)
	return c.l2.Set(ctx, key, value, ttl)
}

// Delete removes keys from both tiers
func (c *TieredCache) Delete(ctx context.Context, keys ...string) error {
	_ = c.l1.Delete(ctx, keys...)
	return c.l2.Delete(ctx, keys...)
}

// Stats returns the hit counters
func (c *TieredCache) Stats() TieredCacheStats {
	return TieredCacheStats{
		L1Hits: atomic.LoadInt64(&c.l1Hits),
		L2Hits: atomic.LoadInt64(&c.l2Hits),
		Misses: atomic.LoadInt64(&c.misses),
	}
}

var (
	_ Cache = (*RedisCache)(nil)
	_ Cache = (*InMemoryCache)(nil)
	_ Cache = (*TieredCache)(nil)
)
