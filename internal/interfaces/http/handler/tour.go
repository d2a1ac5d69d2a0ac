package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/travelhub/backend/internal/application/catalog"
	"github.com/travelhub/backend/internal/domain/shared"
	"github.com/travelhub/backend/internal/domain/tenant"
)

// TourService is the part of catalog.TourService the handler uses
type TourService interface {
	ListPublic(ctx context.Context, cfg tenant.Config, filter catalogapp.TourListFilter) (*shared.Paginated[catalogapp.TourListItem], error)
	GetPublicBySlug(ctx context.Context, cfg tenant.Config, slug string) (*catalogapp.TourResponse, error)
	ListAdmin(ctx context.Context, tenantID uuid.UUID, filter catalogapp.TourListFilter) (*shared.Paginated[catalogapp.TourResponse], error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*catalogapp.TourResponse, error)
	Create(ctx context.Context, tenantID uuid.UUID, req catalogapp.CreateTourRequest) (*catalogapp.TourResponse, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, req catalogapp.UpdateTourRequest) (*catalogapp.TourResponse, error)
	Publish(ctx context.Context, tenantID, id uuid.UUID) (*catalogapp.TourResponse, error)
	Unpublish(ctx context.Context, tenantID, id uuid.UUID) (*catalogapp.TourResponse, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// TourHandler handles tour catalog requests
type TourHandler struct {
	BaseHandler
	tourService TourService
}

// NewTourHandler creates a new TourHandler
func NewTourHandler(tourService TourService) *TourHandler {
	return &TourHandler{tourService: tourService}
}

// ListPublic lists the published tours the storefront may sell, with
// their best current offer
// GET /api/tours/public
func (h *TourHandler) ListPublic(c *gin.Context) {
	var filter catalogapp.TourListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	page, err := h.tourService.ListPublic(c.Request.Context(), h.tenantConfig(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	respondPage(c, page)
}

// GetPublic GET /api/tours/public/:slug
func (h *TourHandler) GetPublic(c *gin.Context) {
	t, err := h.tourService.GetPublicBySlug(c.Request.Context(), h.tenantConfig(c), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, t)
}

// List GET /api/admin/tours
func (h *TourHandler) List(c *gin.Context) {
	var filter catalogapp.TourListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	page, err := h.tourService.ListAdmin(c.Request.Context(), h.tenantID(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	respondPage(c, page)
}

// Get GET /api/admin/tours/:id
func (h *TourHandler) Get(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	t, err := h.tourService.GetByID(c.Request.Context(), h.tenantID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, t)
}

// Create POST /api/admin/tours
func (h *TourHandler) Create(c *gin.Context) {
	var req catalogapp.CreateTourRequest
	if !h.bindJSON(c, &req) {
		return
	}
	t, err := h.tourService.Create(c.Request.Context(), h.tenantID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, t)
}

// Update applies a partial update
// PUT /api/admin/tours/:id
func (h *TourHandler) Update(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req catalogapp.UpdateTourRequest
	if !h.bindJSON(c, &req) {
		return
	}
	t, err := h.tourService.Update(c.Request.Context(), h.tenantID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, t)
}

// Publish POST /api/admin/tours/:id/publish
func (h *TourHandler) Publish(c *gin.Context) {
	h.transition(c, h.tourService.Publish)
}

// Unpublish POST /api/admin/tours/:id/unpublish
func (h *TourHandler) Unpublish(c *gin.Context) {
	h.transition(c, h.tourService.Unpublish)
}

func (h *TourHandler) transition(c *gin.Context, fn func(ctx context.Context, tenantID, id uuid.UUID) (*catalogapp.TourResponse, error)) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	t, err := fn(c.Request.Context(), h.tenantID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, t)
}

// Delete removes a tour without bookings
// DELETE /api/admin/tours/:id
func (h *TourHandler) Delete(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.tourService.Delete(c.Request.Context(), h.tenantID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
