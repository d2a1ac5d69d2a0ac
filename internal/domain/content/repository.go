package content

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/travelhub/backend/internal/domain/shared"
)

// HeroSlideRepository defines the persistence port for hero slides
type HeroSlideRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*HeroSlide, error)
	// FindByTenant lists slides ordered by SortOrder
	FindByTenant(ctx context.Context, tenantID uuid.UUID, activeOnly bool) ([]*HeroSlide, error)
	Save(ctx context.Context, s *HeroSlide) error
	SaveAll(ctx context.Context, slides []*HeroSlide) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// BlogPostRepository defines the persistence port for blog posts
type BlogPostRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*BlogPost, error)
	FindBySlug(ctx context.Context, tenantID uuid.UUID, slug string, publishedOnly bool) (*BlogPost, error)
	FindAll(ctx context.Context, tenantID uuid.UUID, publishedOnly bool, filter shared.Filter) ([]BlogPost, int64, error)
	ExistsBySlug(ctx context.Context, tenantID uuid.UUID, slug string, excludeID *uuid.UUID) (bool, error)
	Save(ctx context.Context, p *BlogPost) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	// IncrementLikes adds one like and returns the new total
	IncrementLikes(ctx context.Context, tenantID, id uuid.UUID) (int64, error)
}

// LikeLimiter admits at most one like per client per post per window.
// Backed by a shared counter so every API instance sees the same state.
type LikeLimiter interface {
	Allow(ctx context.Context, key string, window time.Duration) (bool, error)
}

// LikeKey builds the limiter key for a client liking a post
func LikeKey(tenantID, postID uuid.UUID, clientKey string) string {
	return "blog:like:" + tenantID.String() + ":" + postID.String() + ":" + clientKey
}
