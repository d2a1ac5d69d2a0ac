package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/travelhub/backend/internal/domain/shared"
)

// Filter keys understood by TourRepository.FindInScope
const (
	FilterCategoryID    = "category_id"
	FilterDestinationID = "destination_id"
	FilterMinPrice      = "min_price"
	FilterMaxPrice      = "max_price"
	FilterFeatured      = "is_featured"
	FilterPublished     = "is_published"
)

// TourRepository defines the persistence port for tours
type TourRepository interface {
	// FindByID finds a tour by ID regardless of tenant
	FindByID(ctx context.Context, id uuid.UUID) (*Tour, error)

	// FindByIDInScope finds a tour by ID visible within scope
	FindByIDInScope(ctx context.Context, scope Scope, id uuid.UUID) (*Tour, error)

	// FindBySlug finds a tour by slug visible within scope
	FindBySlug(ctx context.Context, scope Scope, slug string) (*Tour, error)

	// FindInScope lists tours visible within scope with filtering and paging
	FindInScope(ctx context.Context, scope Scope, filter shared.Filter) ([]Tour, error)

	// CountInScope counts tours visible within scope
	CountInScope(ctx context.Context, scope Scope, filter shared.Filter) (int64, error)

	// CountByTenant counts every tour the tenant owns, published or not
	CountByTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)

	// ExistsBySlug reports whether the tenant already uses slug on another tour
	ExistsBySlug(ctx context.Context, tenantID uuid.UUID, slug string, excludeID *uuid.UUID) (bool, error)

	// Save creates or updates a tour
	Save(ctx context.Context, tour *Tour) error

	// Delete removes a tour owned by tenantID
	Delete(ctx context.Context, tenantID, id uuid.UUID) error

	// UpdateRating stores the review aggregate of a tour
	UpdateRating(ctx context.Context, id uuid.UUID, avg float64, count int) error
}

// CategoryRepository defines the persistence port for categories
type CategoryRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Category, error)
	FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]Category, error)
	ExistsBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (bool, error)
	Save(ctx context.Context, c *Category) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// DestinationRepository defines the persistence port for destinations
type DestinationRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Destination, error)
	FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]Destination, error)
	ExistsBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (bool, error)
	Save(ctx context.Context, d *Destination) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}
