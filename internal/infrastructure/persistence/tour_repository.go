package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/travelhub/backend/internal/domain/catalog"
	"github.com/travelhub/backend/internal/domain/shared"
	"github.com/travelhub/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormTourRepository implements TourRepository using GORM
type GormTourRepository struct {
	db *gorm.DB
}

// NewGormTourRepository creates a new GormTourRepository
func NewGormTourRepository(db *gorm.DB) *GormTourRepository {
	return &GormTourRepository{db: db}
}

// FindByID finds a tour by ID
func (r *GormTourRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Tour, error) {
	var model models.TourModel
	if err := r.db.WithContext(ctx).Preload("Categories").Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByIDInScope finds a tour by ID within scope
func (r *GormTourRepository) FindByIDInScope(ctx context.Context, scope catalog.Scope, id uuid.UUID) (*catalog.Tour, error) {
	var model models.TourModel
	err := r.scoped(ctx, scope).Preload("Categories").Where("id = ?", id).First(&model).Error
	if err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindBySlug finds a tour by slug within scope
func (r *GormTourRepository) FindBySlug(ctx context.Context, scope catalog.Scope, slug string) (*catalog.Tour, error) {
	var model models.TourModel
	err := r.scoped(ctx, scope).Preload("Categories").Where("slug = ?", slug).First(&model).Error
	if err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindInScope lists tours within scope with filtering and paging
func (r *GormTourRepository) FindInScope(ctx context.Context, scope catalog.Scope, filter shared.Filter) ([]catalog.Tour, error) {
	var tourModels []models.TourModel
	query := r.applyFilter(r.scoped(ctx, scope), filter)
	query = paginate(query, filter, TourSortFields, "created_at")
	if err := query.Preload("Categories").Find(&tourModels).Error; err != nil {
		return nil, err
	}
	tours := make([]catalog.Tour, len(tourModels))
	for i, model := range tourModels {
		tours[i] = *model.ToDomain()
	}
	return tours, nil
}

// CountInScope counts tours within scope
func (r *GormTourRepository) CountInScope(ctx context.Context, scope catalog.Scope, filter shared.Filter) (int64, error) {
	var count int64
	err := r.applyFilter(r.scoped(ctx, scope), filter).Count(&count).Error
	return count, err
}

// CountByTenant counts all tours owned by a tenant
func (r *GormTourRepository) CountByTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.TourModel{}).Where("tenant_id = ?", tenantID).Count(&count).Error
	return count, err
}

// ExistsBySlug reports whether slug is used by another tour of the tenant
func (r *GormTourRepository) ExistsBySlug(ctx context.Context, tenantID uuid.UUID, slug string, excludeID *uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.TourModel{}).Where("tenant_id = ? AND slug = ?", tenantID, slug)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

// Save creates or updates a tour and replaces its category links
func (r *GormTourRepository) Save(ctx context.Context, tour *catalog.Tour) error {
	model := models.TourModelFromDomain(tour)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Categories").Save(model).Error; err != nil {
			return err
		}
		if err := tx.Where("tour_id = ?", tour.ID).Delete(&models.TourCategoryModel{}).Error; err != nil {
			return err
		}
		if len(model.Categories) == 0 {
			return nil
		}
		return tx.Create(&model.Categories).Error
	})
}

// Delete removes a tour owned by tenantID
func (r *GormTourRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND tenant_id = ?", id, tenantID).Delete(&models.TourModel{})
		if err := deleteResult(result); err != nil {
			return err
		}
		return tx.Where("tour_id = ?", id).Delete(&models.TourCategoryModel{}).Error
	})
}

// UpdateRating stores the review aggregate of a tour
func (r *GormTourRepository) UpdateRating(ctx context.Context, id uuid.UUID, avg float64, count int) error {
	result := r.db.WithContext(ctx).Model(&models.TourModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"rating": avg, "review_count": count})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormTourRepository) scoped(ctx context.Context, scope catalog.Scope) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.TourModel{}).Where("tenant_id = ?", scope.TenantID)
	if scope.PublishedOnly {
		query = query.Where("is_published = ?", true)
	}
	return query
}

func (r *GormTourRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("LOWER(title) LIKE ? OR LOWER(summary) LIKE ?", pattern, pattern)
	}
	if id, ok := filter.Filters[catalog.FilterCategoryID].(uuid.UUID); ok {
		query = query.Where("id IN (SELECT tour_id FROM tour_categories WHERE category_id = ?)", id)
	}
	if id, ok := filter.Filters[catalog.FilterDestinationID].(uuid.UUID); ok {
		query = query.Where("destination_id = ?", id)
	}
	if v, ok := filter.Filters[catalog.FilterMinPrice].(decimal.Decimal); ok {
		query = query.Where("COALESCE(discount_price, price) >= ?", v)
	}
	if v, ok := filter.Filters[catalog.FilterMaxPrice].(decimal.Decimal); ok {
		query = query.Where("COALESCE(discount_price, price) <= ?", v)
	}
	if v, ok := filter.Filters[catalog.FilterFeatured].(bool); ok {
		query = query.Where("is_featured = ?", v)
	}
	if v, ok := filter.Filters[catalog.FilterPublished].(bool); ok {
		query = query.Where("is_published = ?", v)
	}
	return query
}

var _ catalog.TourRepository = (*GormTourRepository)(nil)
