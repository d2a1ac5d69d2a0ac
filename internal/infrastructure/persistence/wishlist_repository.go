package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/travelhub/backend/internal/domain/wishlist"
	"github.com/travelhub/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormWishlistRepository implements WishlistRepository using GORM
type GormWishlistRepository struct {
	db *gorm.DB
}

// NewGormWishlistRepository creates a new GormWishlistRepository
func NewGormWishlistRepository(db *gorm.DB) *GormWishlistRepository {
	return &GormWishlistRepository{db: db}
}

// FindByUser lists a user's saved tours, newest first
func (r *GormWishlistRepository) FindByUser(ctx context.Context, tenantID, userID uuid.UUID) ([]wishlist.Item, error) {
	var itemModels []models.WishlistItemModel
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND user_id = ?", tenantID, userID).
		Order("created_at DESC").
		Find(&itemModels).Error
	if err != nil {
		return nil, err
	}
	items := make([]wishlist.Item, len(itemModels))
	for i, model := range itemModels {
		items[i] = *model.ToDomain()
	}
	return items, nil
}

// Find finds one saved tour
func (r *GormWishlistRepository) Find(ctx context.Context, tenantID, userID, tourID uuid.UUID) (*wishlist.Item, error) {
	var model models.WishlistItemModel
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND user_id = ? AND tour_id = ?", tenantID, userID, tourID).
		First(&model).Error
	if err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// Add saves a tour to the wishlist
func (r *GormWishlistRepository) Add(ctx context.Context, item *wishlist.Item) error {
	return r.db.WithContext(ctx).Create(models.WishlistItemModelFromDomain(item)).Error
}

// Remove deletes a saved tour
func (r *GormWishlistRepository) Remove(ctx context.Context, tenantID, userID, tourID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("tenant_id = ? AND user_id = ? AND tour_id = ?", tenantID, userID, tourID).
		Delete(&models.WishlistItemModel{})
	return deleteResult(result)
}

var _ wishlist.WishlistRepository = (*GormWishlistRepository)(nil)
