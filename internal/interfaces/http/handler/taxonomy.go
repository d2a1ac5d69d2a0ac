package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/travelhub/backend/internal/application/catalog"
)

// TaxonomyService is the part of catalog.TaxonomyService the handler uses
type TaxonomyService interface {
	ListCategories(ctx context.Context, tenantID uuid.UUID) ([]catalogapp.CategoryResponse, error)
	CreateCategory(ctx context.Context, tenantID uuid.UUID, req catalogapp.CategoryRequest) (*catalogapp.CategoryResponse, error)
	UpdateCategory(ctx context.Context, tenantID, id uuid.UUID, req catalogapp.CategoryRequest) (*catalogapp.CategoryResponse, error)
	DeleteCategory(ctx context.Context, tenantID, id uuid.UUID) error
	ListDestinations(ctx context.Context, tenantID uuid.UUID) ([]catalogapp.DestinationResponse, error)
	CreateDestination(ctx context.Context, tenantID uuid.UUID, req catalogapp.DestinationRequest) (*catalogapp.DestinationResponse, error)
	UpdateDestination(ctx context.Context, tenantID, id uuid.UUID, req catalogapp.DestinationRequest) (*catalogapp.DestinationResponse, error)
	DeleteDestination(ctx context.Context, tenantID, id uuid.UUID) error
}

// TaxonomyHandler serves categories and destinations. Public and admin
// routes share the list endpoints.
type TaxonomyHandler struct {
	BaseHandler
	taxonomyService TaxonomyService
}

// NewTaxonomyHandler creates a new TaxonomyHandler
func NewTaxonomyHandler(taxonomyService TaxonomyService) *TaxonomyHandler {
	return &TaxonomyHandler{taxonomyService: taxonomyService}
}

// ListCategories GET /api/categories
func (h *TaxonomyHandler) ListCategories(c *gin.Context) {
	items, err := h.taxonomyService.ListCategories(c.Request.Context(), h.tenantID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// CreateCategory POST /api/admin/categories
func (h *TaxonomyHandler) CreateCategory(c *gin.Context) {
	var req catalogapp.CategoryRequest
	if !h.bindJSON(c, &req) {
		return
	}
	cat, err := h.taxonomyService.CreateCategory(c.Request.Context(), h.tenantID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, cat)
}

// UpdateCategory PUT /api/admin/categories/:id
func (h *TaxonomyHandler) UpdateCategory(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req catalogapp.CategoryRequest
	if !h.bindJSON(c, &req) {
		return
	}
	cat, err := h.taxonomyService.UpdateCategory(c.Request.Context(), h.tenantID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cat)
}

// DeleteCategory DELETE /api/admin/categories/:id
func (h *TaxonomyHandler) DeleteCategory(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.taxonomyService.DeleteCategory(c.Request.Context(), h.tenantID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListDestinations GET /api/destinations
func (h *TaxonomyHandler) ListDestinations(c *gin.Context) {
	items, err := h.taxonomyService.ListDestinations(c.Request.Context(), h.tenantID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// CreateDestination POST /api/admin/destinations
func (h *TaxonomyHandler) CreateDestination(c *gin.Context) {
	var req catalogapp.DestinationRequest
	if !h.bindJSON(c, &req) {
		return
	}
	d, err := h.taxonomyService.CreateDestination(c.Request.Context(), h.tenantID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, d)
}

// UpdateDestination PUT /api/admin/destinations/:id
func (h *TaxonomyHandler) UpdateDestination(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req catalogapp.DestinationRequest
	if !h.bindJSON(c, &req) {
		return
	}
	d, err := h.taxonomyService.UpdateDestination(c.Request.Context(), h.tenantID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, d)
}

// DeleteDestination DELETE /api/admin/destinations/:id
func (h *TaxonomyHandler) DeleteDestination(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.taxonomyService.DeleteDestination(c.Request.Context(), h.tenantID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
