package catalog

import "github.com/google/uuid"

// Scope says which tenant's catalog a storefront request reads.
// A brand with no tours of its own inherits the default brand's
// published tours; as soon as it owns one tour it sees only its own.
type Scope struct {
	TenantID      uuid.UUID
	PublishedOnly bool
	Inherited     bool
}

// PublicScope decides the storefront scope for tenantID given how many tours
// it owns. defaultTenantID may be uuid.Nil when no default brand exists.
func PublicScope(tenantID, defaultTenantID uuid.UUID, ownTours int64) Scope {
	if ownTours > 0 || defaultTenantID == uuid.Nil || tenantID == defaultTenantID {
		return Scope{TenantID: tenantID, PublishedOnly: true}
	}
	return Scope{TenantID: defaultTenantID, PublishedOnly: true, Inherited: true}
}

// AdminScope is the scope of back-office listings: own records only,
// published or not
func AdminScope(tenantID uuid.UUID) Scope {
	return Scope{TenantID: tenantID}
}
