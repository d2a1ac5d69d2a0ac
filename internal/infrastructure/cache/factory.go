package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/travelhub/backend/internal/domain/shared"
	"github.com/travelhub/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Factory builds the Redis-backed stores on one shared client, falling back
// to in-memory implementations when Redis is unreachable and fallback is
// allowed
type Factory struct {
	client                *redis.Client
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// FactoryOption is a functional option for configuring the factory
type FactoryOption func(*Factory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *Factory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether an unreachable Redis is tolerated
func WithInMemoryFallback(allow bool) FactoryOption {
	return func(f *Factory) {
		f.allowInMemoryFallback = allow
	}
}

// NewFactory connects to Redis. With fallback allowed a connection failure
// is logged and every store is served from memory.
func NewFactory(cfg config.RedisConfig, opts ...FactoryOption) (*Factory, error) {
	f := &Factory{
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}

	client, err := NewRedisClient(cfg)
	if err != nil {
		if !f.allowInMemoryFallback {
			return nil, fmt.Errorf("redis required but unavailable: %w", err)
		}
		f.logger.Warn("Redis unavailable, falling back to in-memory stores. "+
			"Idempotency and rate limits will not be shared across instances.",
			zap.String("addr", cfg.Addr()),
			zap.Error(err),
		)
		return f, nil
	}

	f.logger.Info("Connected to Redis", zap.String("addr", cfg.Addr()))
	f.client = client
	return f, nil
}

// NewFactoryWithClient creates a factory on an existing client; nil selects
// in-memory stores
func NewFactoryWithClient(client *redis.Client, logger *zap.Logger) *Factory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Factory{client: client, logger: logger, allowInMemoryFallback: true}
}

// HasRedis reports whether the stores are shared through Redis
func (f *Factory) HasRedis() bool {
	return f.client != nil
}

// Client returns the shared client, or nil without Redis
func (f *Factory) Client() Client {
	if f.client == nil {
		return nil
	}
	return f.client
}

// IdempotencyStore creates an idempotency store under keyPrefix
func (f *Factory) IdempotencyStore(keyPrefix string) shared.IdempotencyStore {
	if f.client == nil {
		return NewInMemoryIdempotencyStore()
	}
	return NewRedisIdempotencyStore(f.client, keyPrefix)
}

// Counter creates a fixed-window counter under keyPrefix
func (f *Factory) Counter(keyPrefix string) Counter {
	if f.client == nil {
		return NewInMemoryCounter()
	}
	return NewRedisCounter(f.client, keyPrefix)
}

// Cache creates a JSON cache under keyPrefix. With Redis the cache is tiered
// behind a local copy that lives at most l1TTL.
func (f *Factory) Cache(keyPrefix string, l1TTL time.Duration) Cache {
	if f.client == nil {
		return NewInMemoryCache()
	}
	return NewTieredCache(NewRedisCache(f.client, keyPrefix), l1TTL, f.logger)
}

// Ping checks the shared client. In-memory stores are always up.
func (f *Factory) Ping(ctx context.Context) error {
	if f.client == nil {
		return nil
	}
	return f.client.Ping(ctx).Err()
}

// Close closes the shared client
func (f *Factory) Close() error {
	if f.client == nil {
		return nil
	}
	return f.client.Close()
}
