package cache

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Counter counts hits on a key within a fixed window that starts at the
// first hit
type Counter interface {
	// Hit records one hit and returns the count within the current window
	Hit(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RedisCounter implements Counter with INCR and EXPIRE
type RedisCounter struct {
	client    Client
	keyPrefix string
}

// NewRedisCounter creates a counter on an existing Redis client
func NewRedisCounter(client Client, keyPrefix string) *RedisCounter {
	return &RedisCounter{client: client, keyPrefix: keyPrefix}
}

// Hit increments the key; the first hit of a window sets its expiry
func (c *RedisCounter) Hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	k := c.keyPrefix + key
	n, err := c.client.Incr(ctx, k).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment counter: %w", err)
	}
	if n == 1 {
		if err := c.client.Expire(ctx, k, window).Err(); err != nil {
			return 0, fmt.Errorf("failed to set counter window: %w", err)
		}
	}
	return n, nil
}

type counterEntry struct {
	count     int64
	expiresAt time.Time
}

// InMemoryCounter implements Counter in process memory
type InMemoryCounter struct {
	mu      sync.Mutex
	entries map[string]*counterEntry
	now     func() time.Time
}

// NewInMemoryCounter creates an in-memory counter
func NewInMemoryCounter() *InMemoryCounter {
	return &InMemoryCounter{
		entries: make(map[string]*counterEntry),
		now:     time.Now,
	}
}

// Hit records one hit for key
func (c *InMemoryCounter) Hit(_ context.Context, key string, window time.Duration) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	e, ok := c.entries[key]
	if !ok || !now.Before(e.expiresAt) {
		e = &counterEntry{expiresAt: now.Add(window)}
		c.entries[key] = e
	}
	e.count++

	if len(c.entries) > 10000 {
		for k, v := range c.entries {
			if !now.Before(v.expiresAt) {
				delete(c.entries, k)
			}
		}
	}
	return e.count, nil
}

var (
	_ Counter = (*RedisCounter)(nil)
	_ Counter = (*InMemoryCounter)(nil)
)
