package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/travelhub/backend/internal/domain/booking"
)

// BookingModel is the persistence model for the Booking aggregate
type BookingModel struct {
	TenantAggregateModel
	Reference        string          `gorm:"type:varchar(20);not null;uniqueIndex"`
	TourID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	TourTitle        string          `gorm:"type:varchar(200)"`
	UserID           uuid.UUID       `gorm:"type:uuid;index"`
	OptionID         string          `gorm:"type:varchar(50)"`
	OptionType       string          `gorm:"type:varchar(50)"`
	Date             time.Time       `gorm:"type:date;not null;index"`
	SlotTime         string          `gorm:"type:varchar(5)"`
	Guests           int             `gorm:"not null"`
	Status           booking.Status  `gorm:"type:varchar(20);not null;index"`
	Currency         string          `gorm:"type:varchar(3);not null"`
	UnitPrice        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DiscountAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalPrice       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	OfferID          *uuid.UUID      `gorm:"type:uuid"`
	PromoCode        string          `gorm:"type:varchar(50)"`
	CustomerName     string          `gorm:"type:varchar(200);not null"`
	CustomerEmail    string          `gorm:"type:varchar(200);not null"`
	CustomerPhone    string          `gorm:"type:varchar(50)"`
	PaymentIntentID  string          `gorm:"type:varchar(100);index"`
	PaidAt           *time.Time
	ConfirmedAt      *time.Time
	CancelledAt      *time.Time
	CancelledBy      string          `gorm:"type:varchar(20)"`
	CancelReason     string          `gorm:"type:varchar(500)"`
	RefundPercentage int             `gorm:"not null;default:0"`
	RefundAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	RefundedAt       *time.Time
	CompletedAt      *time.Time
	Notes            string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (BookingModel) TableName() string {
	return "bookings"
}

// ToDomain converts the persistence model to a domain Booking
func (m *BookingModel) ToDomain() *booking.Booking {
	return &booking.Booking{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Reference:           m.Reference,
		TourID:              m.TourID,
		TourTitle:           m.TourTitle,
		UserID:              m.UserID,
		OptionID:            m.OptionID,
		OptionType:          m.OptionType,
		Date:                m.Date.UTC(),
		SlotTime:            m.SlotTime,
		Guests:              m.Guests,
		Status:              m.Status,
		Currency:            m.Currency,
		UnitPrice:           m.UnitPrice,
		Subtotal:            m.Subtotal,
		DiscountAmount:      m.DiscountAmount,
		TotalPrice:          m.TotalPrice,
		OfferID:             m.OfferID,
		PromoCode:           m.PromoCode,
		Customer: booking.Customer{
			Name:  m.CustomerName,
			Email: m.CustomerEmail,
			Phone: m.CustomerPhone,
		},
		PaymentIntentID:  m.PaymentIntentID,
		PaidAt:           m.PaidAt,
		ConfirmedAt:      m.ConfirmedAt,
		CancelledAt:      m.CancelledAt,
		CancelledBy:      m.CancelledBy,
		CancelReason:     m.CancelReason,
		RefundPercentage: m.RefundPercentage,
		RefundAmount:     m.RefundAmount,
		RefundedAt:       m.RefundedAt,
		CompletedAt:      m.CompletedAt,
		Notes:            m.Notes,
	}
}

// BookingModelFromDomain creates a persistence model from a domain Booking
func BookingModelFromDomain(b *booking.Booking) *BookingModel {
	m := &BookingModel{
		Reference:        b.Reference,
		TourID:           b.TourID,
		TourTitle:        b.TourTitle,
		UserID:           b.UserID,
		OptionID:         b.OptionID,
		OptionType:       b.OptionType,
		Date:             b.Date,
		SlotTime:         b.SlotTime,
		Guests:           b.Guests,
		Status:           b.Status,
		Currency:         b.Currency,
		UnitPrice:        b.UnitPrice,
		Subtotal:         b.Subtotal,
		DiscountAmount:   b.DiscountAmount,
		TotalPrice:       b.TotalPrice,
		OfferID:          b.OfferID,
		PromoCode:        b.PromoCode,
		CustomerName:     b.Customer.Name,
		CustomerEmail:    b.Customer.Email,
		CustomerPhone:    b.Customer.Phone,
		PaymentIntentID:  b.PaymentIntentID,
		PaidAt:           b.PaidAt,
		ConfirmedAt:      b.ConfirmedAt,
		CancelledAt:      b.CancelledAt,
		CancelledBy:      b.CancelledBy,
		CancelReason:     b.CancelReason,
		RefundPercentage: b.RefundPercentage,
		RefundAmount:     b.RefundAmount,
		RefundedAt:       b.RefundedAt,
		CompletedAt:      b.CompletedAt,
		Notes:            b.Notes,
	}
	m.FromDomainTenantAggregateRoot(b.TenantAggregateRoot)
	return m
}
