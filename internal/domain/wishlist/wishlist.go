package wishlist

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Item is a tour saved by a customer
type Item struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	UserID    uuid.UUID
	TourID    uuid.UUID
	CreatedAt time.Time
}

// NewItem creates a wishlist entry
func NewItem(tenantID, userID, tourID uuid.UUID) *Item {
	return &Item{
		ID:        uuid.New(),
		TenantID:  tenantID,
		UserID:    userID,
		TourID:    tourID,
		CreatedAt: time.Now(),
	}
}

// WishlistRepository defines the persistence port for wishlists
type WishlistRepository interface {
	FindByUser(ctx context.Context, tenantID, userID uuid.UUID) ([]Item, error)
	Find(ctx context.Context, tenantID, userID, tourID uuid.UUID) (*Item, error)
	Add(ctx context.Context, item *Item) error
	Remove(ctx context.Context, tenantID, userID, tourID uuid.UUID) error
}
