package models

import (
	"github.com/travelhub/backend/internal/domain/tenant"
)

// TenantModel is the persistence model for the Tenant aggregate
type TenantModel struct {
	AggregateModel
	Key       string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name      string          `gorm:"type:varchar(200);not null"`
	Domain    string          `gorm:"type:varchar(255);index"`
	Branding  tenant.Branding `gorm:"type:jsonb;serializer:json"`
	Contact   tenant.Contact  `gorm:"type:jsonb;serializer:json"`
	Currency  string          `gorm:"type:varchar(3);not null;default:'USD'"`
	Locale    string          `gorm:"type:varchar(10);not null;default:'en'"`
	IsDefault bool            `gorm:"not null;default:false"`
	IsActive  bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (TenantModel) TableName() string {
	return "tenants"
}

// ToDomain converts the persistence model to a domain Tenant
func (m *TenantModel) ToDomain() *tenant.Tenant {
	return &tenant.Tenant{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Key:               m.Key,
		Name:              m.Name,
		Domain:            m.Domain,
		Branding:          m.Branding,
		Contact:           m.Contact,
		Currency:          m.Currency,
		Locale:            m.Locale,
		IsDefault:         m.IsDefault,
		IsActive:          m.IsActive,
	}
}

// TenantModelFromDomain creates a persistence model from a domain Tenant
func TenantModelFromDomain(t *tenant.Tenant) *TenantModel {
	m := &TenantModel{
		Key:       t.Key,
		Name:      t.Name,
		Domain:    t.Domain,
		Branding:  t.Branding,
		Contact:   t.Contact,
		Currency:  t.Currency,
		Locale:    t.Locale,
		IsDefault: t.IsDefault,
		IsActive:  t.IsActive,
	}
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	return m
}
