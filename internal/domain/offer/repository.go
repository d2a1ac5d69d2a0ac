package offer

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/travelhub/backend/internal/domain/shared"
)

// OfferRepository defines the persistence port for special offers
type OfferRepository interface {
	// FindByID finds an offer owned by tenantID
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*SpecialOffer, error)

	// FindByPromoCode finds a promo offer by its normalized code
	FindByPromoCode(ctx context.Context, tenantID uuid.UUID, code string) (*SpecialOffer, error)

	// FindLive returns enabled offers whose date window contains now.
	// Usage and applicability rules are left to the evaluator.
	FindLive(ctx context.Context, tenantID uuid.UUID, now time.Time) ([]SpecialOffer, error)

	// FindAll lists offers with paging
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]SpecialOffer, error)

	// Count counts offers matching the filter
	Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// ExistsByPromoCode reports whether another offer uses code
	ExistsByPromoCode(ctx context.Context, tenantID uuid.UUID, code string, excludeID *uuid.UUID) (bool, error)

	// Save creates or updates an offer
	Save(ctx context.Context, o *SpecialOffer) error

	// Delete removes an offer
	Delete(ctx context.Context, tenantID, id uuid.UUID) error

	// IncrementUsage atomically counts one redemption, only while
	// used_count < usage_limit. Returns shared.ErrOfferExhausted otherwise.
	IncrementUsage(ctx context.Context, tenantID, id uuid.UUID) error

	// ReleaseUsage gives back one redemption, never going below zero
	ReleaseUsage(ctx context.Context, tenantID, id uuid.UUID) error
}
