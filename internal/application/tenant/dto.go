package tenant

import (
	"time"

	"github.com/google/uuid"
	"github.com/travelhub/backend/internal/domain/tenant"
)

// CreateTenantRequest represents a request to create a tenant
type CreateTenantRequest struct {
	Key      string           `json:"key" binding:"required,min=3,max=50"`
	Name     string           `json:"name" binding:"required,min=1,max=200"`
	Domain   string           `json:"domain" binding:"omitempty,max=253"`
	Branding *tenant.Branding `json:"branding"`
	Contact  *tenant.Contact  `json:"contact"`
	Currency string           `json:"currency" binding:"omitempty,len=3"`
	Locale   string           `json:"locale" binding:"omitempty,max=10"`
}

// UpdateTenantRequest represents a request to update a tenant
type UpdateTenantRequest struct {
	Name     *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Domain   *string          `json:"domain" binding:"omitempty,max=253"`
	Branding *tenant.Branding `json:"branding"`
	Contact  *tenant.Contact  `json:"contact"`
	Currency string           `json:"currency" binding:"omitempty,len=3"`
	Locale   string           `json:"locale" binding:"omitempty,max=10"`
	IsActive *bool            `json:"is_active"`
}

// TenantListFilter represents filter options for the tenant list
type TenantListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// TenantResponse represents a tenant in API responses
type TenantResponse struct {
	ID        uuid.UUID       `json:"id"`
	Key       string          `json:"key"`
	Name      string          `json:"name"`
	Domain    string          `json:"domain"`
	Branding  tenant.Branding `json:"branding"`
	Contact   tenant.Contact  `json:"contact"`
	Currency  string          `json:"currency"`
	Locale    string          `json:"locale"`
	IsDefault bool            `json:"is_default"`
	IsActive  bool            `json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ToTenantResponse converts a domain Tenant to TenantResponse
func ToTenantResponse(t *tenant.Tenant) TenantResponse {
	return TenantResponse{
		ID:        t.ID,
		Key:       t.Key,
		Name:      t.Name,
		Domain:    t.Domain,
		Branding:  t.Branding,
		Contact:   t.Contact,
		Currency:  t.Currency,
		Locale:    t.Locale,
		IsDefault: t.IsDefault,
		IsActive:  t.IsActive,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
