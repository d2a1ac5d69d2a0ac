package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/travelhub/backend/internal/domain/catalog"
	"github.com/travelhub/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCategoryRepository implements CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// FindByID finds a category owned by tenantID
func (r *GormCategoryRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Category, error) {
	var model models.CategoryModel
	if err := r.db.WithContext(ctx).Where("id = ? AND tenant_id = ?", id, tenantID).First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByTenant lists a tenant's categories by sort order
func (r *GormCategoryRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]catalog.Category, error) {
	var categoryModels []models.CategoryModel
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("sort_order ASC, name ASC").
		Find(&categoryModels).Error
	if err != nil {
		return nil, err
	}
	categories := make([]catalog.Category, len(categoryModels))
	for i, model := range categoryModels {
		categories[i] = *model.ToDomain()
	}
	return categories, nil
}

// ExistsBySlug reports whether the tenant uses slug
func (r *GormCategoryRepository) ExistsBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CategoryModel{}).
		Where("tenant_id = ? AND slug = ?", tenantID, slug).
		Count(&count).Error
	return count > 0, err
}

// Save creates or updates a category
func (r *GormCategoryRepository) Save(ctx context.Context, c *catalog.Category) error {
	return r.db.WithContext(ctx).Save(models.CategoryModelFromDomain(c)).Error
}

// Delete removes a category and its tour links
func (r *GormCategoryRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND tenant_id = ?", id, tenantID).Delete(&models.CategoryModel{})
		if err := deleteResult(result); err != nil {
			return err
		}
		return tx.Where("category_id = ?", id).Delete(&models.TourCategoryModel{}).Error
	})
}

var _ catalog.CategoryRepository = (*GormCategoryRepository)(nil)

// GormDestinationRepository implements DestinationRepository using GORM
type GormDestinationRepository struct {
	db *gorm.DB
}

// NewGormDestinationRepository creates a new GormDestinationRepository
func NewGormDestinationRepository(db *gorm.DB) *GormDestinationRepository {
	return &GormDestinationRepository{db: db}
}

// FindByID finds a destination owned by tenantID
func (r *GormDestinationRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Destination, error) {
	var model models.DestinationModel
	if err := r.db.WithContext(ctx).Where("id = ? AND tenant_id = ?", id, tenantID).First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByTenant lists a tenant's destinations, featured first
func (r *GormDestinationRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]catalog.Destination, error) {
	var destinationModels []models.DestinationModel
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("is_featured DESC, name ASC").
		Find(&destinationModels).Error
	if err != nil {
		return nil, err
	}
	destinations := make([]catalog.Destination, len(destinationModels))
	for i, model := range destinationModels {
		destinations[i] = *model.ToDomain()
	}
	return destinations, nil
}

// ExistsBySlug reports whether the tenant uses slug
func (r *GormDestinationRepository) ExistsBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.DestinationModel{}).
		Where("tenant_id = ? AND slug = ?", tenantID, slug).
		Count(&count).Error
	return count > 0, err
}

// Save creates or updates a destination
func (r *GormDestinationRepository) Save(ctx context.Context, d *catalog.Destination) error {
	return r.db.WithContext(ctx).Save(models.DestinationModelFromDomain(d)).Error
}

// Delete removes a destination and detaches it from tours
func (r *GormDestinationRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND tenant_id = ?", id, tenantID).Delete(&models.DestinationModel{})
		if err := deleteResult(result); err != nil {
			return err
		}
		return tx.Model(&models.TourModel{}).
			Where("tenant_id = ? AND destination_id = ?", tenantID, id).
			Update("destination_id", nil).Error
	})
}

var _ catalog.DestinationRepository = (*GormDestinationRepository)(nil)
