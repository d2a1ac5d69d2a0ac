package wishlist

import (
	"context"
	"errors"

	"github.com/google/uuid"
	catalogapp "github.com/travelhub/backend/internal/application/catalog"
	"github.com/travelhub/backend/internal/domain/catalog"
	"github.com/travelhub/backend/internal/domain/shared"
	"github.com/travelhub/backend/internal/domain/tenant"
	"github.com/travelhub/backend/internal/domain/wishlist"
	"go.uber.org/zap"
)

// TourLookup finds a tour visible to a storefront
type TourLookup interface {
	GetPublic(ctx context.Context, cfg tenant.Config, id uuid.UUID) (*catalog.Tour, error)
}

// ToggleResponse reports the wishlist state of a tour after a toggle
type ToggleResponse struct {
	TourID uuid.UUID `json:"tour_id"`
	Saved  bool      `json:"saved"`
}

// ToggleRequest names the tour to add or remove
type ToggleRequest struct {
	TourID string `json:"tour_id" binding:"required,uuid"`
}

// WishlistService manages customers' saved tours
type WishlistService struct {
	repo   wishlist.WishlistRepository
	tours  TourLookup
	logger *zap.Logger
}

// NewWishlistService creates a new WishlistService
func NewWishlistService(repo wishlist.WishlistRepository, tours TourLookup, logger *zap.Logger) *WishlistService {
	return &WishlistService{repo: repo, tours: tours, logger: logger}
}

// Toggle saves the tour when absent and removes it otherwise
func (s *WishlistService) Toggle(ctx context.Context, cfg tenant.Config, userID uuid.UUID, req ToggleRequest) (*ToggleResponse, error) {
	tourID, err := uuid.Parse(req.TourID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid tour ID")
	}

	_, err = s.repo.Find(ctx, cfg.TenantID, userID, tourID)
	switch {
	case err == nil:
		if err := s.repo.Remove(ctx, cfg.TenantID, userID, tourID); err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		return &ToggleResponse{TourID: tourID, Saved: false}, nil
	case !errors.Is(err, shared.ErrNotFound):
		return nil, err
	}

	if _, err := s.tours.GetPublic(ctx, cfg, tourID); err != nil {
		return nil, err
	}
	if err := s.repo.Add(ctx, wishlist.NewItem(cfg.TenantID, userID, tourID)); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return &ToggleResponse{TourID: tourID, Saved: true}, nil
		}
		return nil, err
	}
	return &ToggleResponse{TourID: tourID, Saved: true}, nil
}

// List returns the saved tours still visible to the storefront
func (s *WishlistService) List(ctx context.Context, cfg tenant.Config, userID uuid.UUID) ([]catalogapp.TourListItem, error) {
	items, err := s.repo.FindByUser(ctx, cfg.TenantID, userID)
	if err != nil {
		return nil, err
	}

	out := make([]catalogapp.TourListItem, 0, len(items))
	for _, item := range items {
		t, err := s.tours.GetPublic(ctx, cfg, item.TourID)
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Debug("Skipping unavailable wishlist tour", zap.String("tour_id", item.TourID.String()))
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, catalogapp.ToTourListItem(t))
	}
	return out, nil
}
