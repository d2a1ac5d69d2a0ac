package tenant

import (
	"github.com/travelhub/backend/internal/domain/shared"
)

// AggregateTypeTenant is the aggregate type name for tenants
const AggregateTypeTenant = "Tenant"

// EventTypeTenantCreated is published when a brand is created
const EventTypeTenantCreated = "TenantCreated"

// TenantCreatedEvent is published when a tenant is created
type TenantCreatedEvent struct {
	shared.BaseDomainEvent
	Key    string `json:"key"`
	Name   string `json:"name"`
	Domain string `json:"domain"`
}

// NewTenantCreatedEvent creates a new TenantCreatedEvent
func NewTenantCreatedEvent(t *Tenant) *TenantCreatedEvent {
	return &TenantCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTenantCreated, AggregateTypeTenant, t.ID, t.ID),
		Key:             t.Key,
		Name:            t.Name,
		Domain:          t.Domain,
	}
}
