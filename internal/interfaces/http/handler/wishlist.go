package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/travelhub/backend/internal/application/catalog"
	wishlistapp "github.com/travelhub/backend/internal/application/wishlist"
	"github.com/travelhub/backend/internal/domain/tenant"
)

// WishlistService is the part of wishlist.WishlistService the handler uses
type WishlistService interface {
	Toggle(ctx context.Context, cfg tenant.Config, userID uuid.UUID, req wishlistapp.ToggleRequest) (*wishlistapp.ToggleResponse, error)
	List(ctx context.Context, cfg tenant.Config, userID uuid.UUID) ([]catalogapp.TourListItem, error)
}

// WishlistHandler serves a customer's saved tours
type WishlistHandler struct {
	BaseHandler
	wishlistService WishlistService
}

// NewWishlistHandler creates a new WishlistHandler
func NewWishlistHandler(wishlistService WishlistService) *WishlistHandler {
	return &WishlistHandler{wishlistService: wishlistService}
}

// List GET /api/wishlist
func (h *WishlistHandler) List(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	tours, err := h.wishlistService.List(c.Request.Context(), h.tenantConfig(c), p.UserID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tours)
}

// Toggle saves a tour, or removes it when already saved
// POST /api/wishlist
func (h *WishlistHandler) Toggle(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	var req wishlistapp.ToggleRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.wishlistService.Toggle(c.Request.Context(), h.tenantConfig(c), p.UserID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
