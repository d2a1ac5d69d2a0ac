package cache

import (
	"context"
	"time"

	"github.com/travelhub/backend/internal/domain/content"
)

// LikeLimiter admits the first like of a client on a post per window
type LikeLimiter struct {
	counter Counter
}

// NewLikeLimiter creates a like limiter on top of a counter
func NewLikeLimiter(counter Counter) *LikeLimiter {
	return &LikeLimiter{counter: counter}
}

// Allow reports whether key has not been seen within window
func (l *LikeLimiter) Allow(ctx context.Context, key string, window time.Duration) (bool, error) {
	n, err := l.counter.Hit(ctx, key, window)
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

var _ content.LikeLimiter = (*LikeLimiter)(nil)
