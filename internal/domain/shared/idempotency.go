package shared

import (
	"context"
	"time"
)

// IdempotencyStore records operation keys so that a repeated request is
// detected and only the first caller performs the side effect.
type IdempotencyStore interface {
	// MarkProcessed claims the key for ttl.
	// Returns true if this call claimed it, false if it was already claimed.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsProcessed checks whether the key has been claimed
	IsProcessed(ctx context.Context, key string) (bool, error)

	// Release drops a claim so a failed operation can be retried
	Release(ctx context.Context, key string) error

	// Close closes the store and releases resources
	Close() error
}

// IdempotencyConfig holds configuration for idempotency handling
type IdempotencyConfig struct {
	// TTL is how long a claimed key blocks repeats
	TTL time.Duration

	// Enabled determines whether idempotency checking is enabled
	Enabled bool
}

// DefaultIdempotencyConfig returns the default idempotency configuration
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		TTL:     24 * time.Hour,
		Enabled: true,
	}
}
