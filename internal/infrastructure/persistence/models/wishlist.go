package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/travelhub/backend/internal/domain/wishlist"
)

// WishlistItemModel is the persistence model for a saved tour
type WishlistItemModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_user_tour,priority:1"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_user_tour,priority:2"`
	TourID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_user_tour,priority:3"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (WishlistItemModel) TableName() string {
	return "wishlist_items"
}

// ToDomain converts the persistence model to a domain Item
func (m *WishlistItemModel) ToDomain() *wishlist.Item {
	return &wishlist.Item{
		ID:        m.ID,
		TenantID:  m.TenantID,
		UserID:    m.UserID,
		TourID:    m.TourID,
		CreatedAt: m.CreatedAt,
	}
}

// WishlistItemModelFromDomain creates a persistence model from a domain Item
func WishlistItemModelFromDomain(i *wishlist.Item) *WishlistItemModel {
	return &WishlistItemModel{
		ID:        i.ID,
		TenantID:  i.TenantID,
		UserID:    i.UserID,
		TourID:    i.TourID,
		CreatedAt: i.CreatedAt,
	}
}
