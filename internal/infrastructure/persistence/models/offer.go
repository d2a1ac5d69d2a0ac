package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/travelhub/backend/internal/domain/offer"
)

// SpecialOfferModel is the persistence model for the SpecialOffer aggregate.
// Applicability rules are JSON columns; they are evaluated in memory.
type SpecialOfferModel struct {
	TenantAggregateModel
	Name               string             `gorm:"type:varchar(200);not null"`
	Description        string             `gorm:"type:text"`
	Type               offer.OfferType    `gorm:"type:varchar(20);not null"`
	DiscountKind       offer.DiscountKind `gorm:"type:varchar(20);not null"`
	DiscountValue      decimal.Decimal    `gorm:"type:decimal(12,2);not null"`
	PromoCode          string             `gorm:"type:varchar(50);index"`
	StartDate          time.Time          `gorm:"not null;index"`
	EndDate            time.Time          `gorm:"not null;index"`
	UsageLimit         *int
	UsedCount          int               `gorm:"not null;default:0"`
	ApplicableTours    []uuid.UUID       `gorm:"type:jsonb;serializer:json"`
	ExcludedTours      []uuid.UUID       `gorm:"type:jsonb;serializer:json"`
	BookingOptionTypes []string          `gorm:"type:jsonb;serializer:json"`
	BlackoutDates      []time.Time       `gorm:"type:jsonb;serializer:json"`
	TravelDateRanges   []offer.DateRange `gorm:"type:jsonb;serializer:json"`
	MinGroupSize       int               `gorm:"not null;default:0"`
	Priority           int               `gorm:"not null;default:0"`
	BadgeText          string            `gorm:"type:varchar(50)"`
	Enabled            bool              `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (SpecialOfferModel) TableName() string {
	return "special_offers"
}

// ToDomain converts the persistence model to a domain SpecialOffer
func (m *SpecialOfferModel) ToDomain() *offer.SpecialOffer {
	return &offer.SpecialOffer{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Name:                m.Name,
		Description:         m.Description,
		Type:                m.Type,
		DiscountKind:        m.DiscountKind,
		DiscountValue:       m.DiscountValue,
		PromoCode:           m.PromoCode,
		StartDate:           m.StartDate,
		EndDate:             m.EndDate,
		UsageLimit:          m.UsageLimit,
		UsedCount:           m.UsedCount,
		ApplicableTours:     m.ApplicableTours,
		ExcludedTours:       m.ExcludedTours,
		BookingOptionTypes:  m.BookingOptionTypes,
		BlackoutDates:       m.BlackoutDates,
		TravelDateRanges:    m.TravelDateRanges,
		MinGroupSize:        m.MinGroupSize,
		Priority:            m.Priority,
		BadgeText:           m.BadgeText,
		Enabled:             m.Enabled,
	}
}

// SpecialOfferModelFromDomain creates a persistence model from a domain SpecialOffer
func SpecialOfferModelFromDomain(o *offer.SpecialOffer) *SpecialOfferModel {
	m := &SpecialOfferModel{
		Name:               o.Name,
		Description:        o.Description,
		Type:               o.Type,
		DiscountKind:       o.DiscountKind,
		DiscountValue:      o.DiscountValue,
		PromoCode:          o.PromoCode,
		StartDate:          o.StartDate,
		EndDate:            o.EndDate,
		UsageLimit:         o.UsageLimit,
		UsedCount:          o.UsedCount,
		ApplicableTours:    o.ApplicableTours,
		ExcludedTours:      o.ExcludedTours,
		BookingOptionTypes: o.BookingOptionTypes,
		BlackoutDates:      o.BlackoutDates,
		TravelDateRanges:   o.TravelDateRanges,
		MinGroupSize:       o.MinGroupSize,
		Priority:           o.Priority,
		BadgeText:          o.BadgeText,
		Enabled:            o.Enabled,
	}
	m.FromDomainTenantAggregateRoot(o.TenantAggregateRoot)
	return m
}
