package tenant

import (
	"context"

	"github.com/google/uuid"
	"github.com/travelhub/backend/internal/domain/shared"
)

// TenantRepository defines the persistence port for tenants
type TenantRepository interface {
	// FindByID finds a tenant by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)

	// FindByKey finds a tenant by its unique key
	FindByKey(ctx context.Context, key string) (*Tenant, error)

	// FindByDomain finds an active tenant serving the given host
	FindByDomain(ctx context.Context, domain string) (*Tenant, error)

	// FindDefault finds the tenant flagged as default
	FindDefault(ctx context.Context) (*Tenant, error)

	// FindAll lists tenants with paging
	FindAll(ctx context.Context, filter shared.Filter) ([]Tenant, error)

	// Count counts tenants matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save creates or updates a tenant
	Save(ctx context.Context, t *Tenant) error

	// ExistsByKey reports whether a key is taken
	ExistsByKey(ctx context.Context, key string) (bool, error)

	// ClearDefault unsets the default flag on every tenant except keepID
	ClearDefault(ctx context.Context, keepID uuid.UUID) error
}
