package review

import (
	"context"

	"github.com/google/uuid"
	"github.com/travelhub/backend/internal/domain/shared"
)

// FilterStatus filters reviews by moderation status
const FilterStatus = "status"

// ReviewRepository defines the persistence port for reviews
type ReviewRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Review, error)
	// FindApprovedByTour lists public reviews of a tour, newest first
	FindApprovedByTour(ctx context.Context, tourID uuid.UUID, filter shared.Filter) ([]Review, int64, error)
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Review, int64, error)
	ExistsForUser(ctx context.Context, tenantID, userID, tourID uuid.UUID) (bool, error)
	// SummarizeTour averages the approved ratings of a tour
	SummarizeTour(ctx context.Context, tourID uuid.UUID) (Summary, error)
	Save(ctx context.Context, r *Review) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}
