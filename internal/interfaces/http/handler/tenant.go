package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	tenantapp "github.com/travelhub/backend/internal/application/tenant"
	"github.com/travelhub/backend/internal/domain/shared"
)

// TenantService is the part of tenant.TenantService the handler uses
type TenantService interface {
	List(ctx context.Context, filter tenantapp.TenantListFilter) (*shared.Paginated[tenantapp.TenantResponse], error)
	GetByID(ctx context.Context, id uuid.UUID) (*tenantapp.TenantResponse, error)
	Create(ctx context.Context, req tenantapp.CreateTenantRequest) (*tenantapp.TenantResponse, error)
	Update(ctx context.Context, id uuid.UUID, req tenantapp.UpdateTenantRequest) (*tenantapp.TenantResponse, error)
	SetDefault(ctx context.Context, id uuid.UUID) (*tenantapp.TenantResponse, error)
}

// TenantHandler serves the storefront config and the super admin tenant API
type TenantHandler struct {
	BaseHandler
	tenantService TenantService
}

// NewTenantHandler creates a new TenantHandler
func NewTenantHandler(tenantService TenantService) *TenantHandler {
	return &TenantHandler{tenantService: tenantService}
}

// GetConfig returns branding, contact and locale of the resolved tenant
// GET /api/tenant/config
func (h *TenantHandler) GetConfig(c *gin.Context) {
	h.Success(c, h.tenantConfig(c))
}

// List GET /api/admin/tenants
func (h *TenantHandler) List(c *gin.Context) {
	var filter tenantapp.TenantListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	page, err := h.tenantService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	respondPage(c, page)
}

// Get GET /api/admin/tenants/:id
func (h *TenantHandler) Get(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	t, err := h.tenantService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, t)
}

// Create POST /api/admin/tenants
func (h *TenantHandler) Create(c *gin.Context) {
	var req tenantapp.CreateTenantRequest
	if !h.bindJSON(c, &req) {
		return
	}
	t, err := h.tenantService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, t)
}

// Update PUT /api/admin/tenants/:id
func (h *TenantHandler) Update(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req tenantapp.UpdateTenantRequest
	if !h.bindJSON(c, &req) {
		return
	}
	t, err := h.tenantService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, t)
}

// SetDefault makes the tenant the fallback for unmatched hosts
// POST /api/admin/tenants/:id/default
func (h *TenantHandler) SetDefault(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	t, err := h.tenantService.SetDefault(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, t)
}
