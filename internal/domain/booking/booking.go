package booking

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/travelhub/backend/internal/domain/shared"
)

// Who triggered a cancellation
const (
	CancelledByCustomer = "customer"
	CancelledByAdmin    = "admin"
	CancelledBySystem   = "system"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Customer holds the lead traveller contact details
type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Booking is a customer's reservation of a tour on a date
type Booking struct {
	shared.TenantAggregateRoot
	Reference        string
	TourID           uuid.UUID
	TourTitle        string
	UserID           uuid.UUID
	OptionID         string
	OptionType       string
	Date             time.Time
	SlotTime         string
	Guests           int
	Status           Status
	Currency         string
	UnitPrice        decimal.Decimal
	Subtotal         decimal.Decimal
	DiscountAmount   decimal.Decimal
	TotalPrice       decimal.Decimal
	OfferID          *uuid.UUID
	PromoCode        string
	Customer         Customer
	PaymentIntentID  string
	PaidAt           *time.Time
	ConfirmedAt      *time.Time
	CancelledAt      *time.Time
	CancelledBy      string
	CancelReason     string
	RefundPercentage int
	RefundAmount     decimal.Decimal
	RefundedAt       *time.Time
	CompletedAt      *time.Time
	Notes            string
}

// NewBookingParams holds the fields needed to create a booking
type NewBookingParams struct {
	TourID     uuid.UUID
	TourTitle  string
	UserID     uuid.UUID
	OptionID   string
	OptionType string
	Date       time.Time
	SlotTime   string
	Guests     int
	Currency   string
	UnitPrice  decimal.Decimal
	Customer   Customer
	Notes      string
	Now        time.Time
}

// NewBooking creates a pending booking priced at UnitPrice x Guests.
// Discounts are applied afterwards with ApplyDiscount.
func NewBooking(tenantID uuid.UUID, p NewBookingParams) (*Booking, error) {
	now := p.Now
	if now.IsZero() {
		now = time.Now()
	}
	if p.TourID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TOUR", "Tour is required")
	}
	if p.Guests < 1 {
		return nil, shared.NewDomainError("INVALID_GUESTS", "At least one guest is required")
	}
	if p.Date.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Tour date is required")
	}
	if shared.DaysBetween(now, p.Date) < 0 {
		return nil, shared.NewDomainError("INVALID_DATE", "Tour date cannot be in the past")
	}
	if p.UnitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if err := validateCustomer(p.Customer); err != nil {
		return nil, err
	}

	subtotal := p.UnitPrice.Mul(decimal.NewFromInt(int64(p.Guests)))
	b := &Booking{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		TourID:              p.TourID,
		TourTitle:           p.TourTitle,
		UserID:              p.UserID,
		OptionID:            p.OptionID,
		OptionType:          p.OptionType,
		Date:                shared.DateOnly(p.Date),
		SlotTime:            p.SlotTime,
		Guests:              p.Guests,
		Status:              StatusPending,
		Currency:            strings.ToUpper(p.Currency),
		UnitPrice:           p.UnitPrice,
		Subtotal:            subtotal,
		DiscountAmount:      decimal.Zero,
		TotalPrice:          subtotal,
		RefundAmount:        decimal.Zero,
		Customer:            normalizeCustomer(p.Customer),
		Notes:               p.Notes,
	}
	b.Reference = NewReference(b.ID, now)

	b.AddDomainEvent(NewBookingCreatedEvent(b))
	return b, nil
}

// NewReference derives a short human-friendly reference like "TH-260615-1A2B3C"
func NewReference(id uuid.UUID, now time.Time) string {
	return fmt.Sprintf("TH-%s-%s", now.UTC().Format("060102"), strings.ToUpper(id.String()[:6]))
}

// ApplyDiscount records an offer discount on the whole subtotal.
// The discount never exceeds the subtotal.
func (b *Booking) ApplyDiscount(offerID uuid.UUID, promoCode string, amount decimal.Decimal) error {
	if b.Status != StatusPending {
		return shared.NewDomainError("INVALID_STATE", "Discounts can only be applied to pending bookings")
	}
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot be negative")
	}
	if amount.GreaterThan(b.Subtotal) {
		amount = b.Subtotal
	}
	b.OfferID = &offerID
	b.PromoCode = promoCode
	b.DiscountAmount = amount
	b.TotalPrice = b.Subtotal.Sub(amount)
	return nil
}

// IsOwnedBy reports whether userID made the booking
func (b *Booking) IsOwnedBy(userID uuid.UUID) bool {
	return b.UserID != uuid.Nil && b.UserID == userID
}

// Confirm marks a pending booking as confirmed, recording the payment
// reference when the confirmation comes from a payment
func (b *Booking) Confirm(paymentIntentID string, now time.Time) error {
	if b.Status != StatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot confirm a booking in %s status", b.Status))
	}
	b.Status = StatusConfirmed
	b.ConfirmedAt = &now
	if paymentIntentID != "" {
		b.PaymentIntentID = paymentIntentID
		b.PaidAt = &now
	}
	b.touch(now)
	b.AddDomainEvent(NewBookingConfirmedEvent(b))
	return nil
}

// IsPaid reports whether a payment was captured
func (b *Booking) IsPaid() bool {
	return b.PaidAt != nil
}

// Cancel moves a pending or confirmed booking to cancelled. The refund
// percentage follows the days-before-tour policy; unpaid bookings refund nothing.
func (b *Booking) Cancel(by, reason string, now time.Time) error {
	if b.Status != StatusPending && b.Status != StatusConfirmed {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel a booking in %s status", b.Status))
	}
	pct := RefundPercentage(DaysUntil(b.Date, now))
	b.Status = StatusCancelled
	b.CancelledAt = &now
	b.CancelledBy = by
	b.CancelReason = strings.TrimSpace(reason)
	b.RefundPercentage = pct
	b.RefundAmount = decimal.Zero
	if b.IsPaid() {
		b.RefundAmount = RefundAmount(b.TotalPrice, pct)
	}
	b.touch(now)
	b.AddDomainEvent(NewBookingCancelledEvent(b))
	return nil
}

// Refund settles money back to the customer. pct overrides the stored
// policy percentage when given. A 100% refund ends in refunded, anything
// lower in partial_refunded.
func (b *Booking) Refund(pct *int, now time.Time) error {
	if b.Status != StatusCancelled && b.Status != StatusConfirmed {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot refund a booking in %s status", b.Status))
	}
	p := b.RefundPercentage
	if b.Status == StatusConfirmed {
		p = RefundPercentage(DaysUntil(b.Date, now))
	}
	if pct != nil {
		p = *pct
	}
	if p <= 0 || p > 100 {
		return shared.NewDomainError("INVALID_REFUND", "Refund percentage must be between 1 and 100")
	}
	if b.CancelledAt == nil {
		b.CancelledAt = &now
		b.CancelledBy = CancelledByAdmin
	}
	b.RefundPercentage = p
	b.RefundAmount = RefundAmount(b.TotalPrice, p)
	b.RefundedAt = &now
	if p == 100 {
		b.Status = StatusRefunded
	} else {
		b.Status = StatusPartialRefunded
	}
	b.touch(now)
	b.AddDomainEvent(NewBookingRefundedEvent(b))
	return nil
}

// Complete marks a confirmed booking as completed once the tour date is reached
func (b *Booking) Complete(now time.Time) error {
	if b.Status != StatusConfirmed {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot complete a booking in %s status", b.Status))
	}
	if DaysUntil(b.Date, now) > 0 {
		return shared.NewDomainError("TOUR_NOT_STARTED", "Cannot complete a booking before the tour date")
	}
	b.Status = StatusCompleted
	b.CompletedAt = &now
	b.touch(now)
	return nil
}

// HoldsSeats reports whether the booking still occupies slot capacity
func (b *Booking) HoldsSeats() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed || b.Status == StatusCompleted
}

func (b *Booking) touch(now time.Time) {
	b.UpdatedAt = now
	b.IncrementVersion()
}

func normalizeCustomer(c Customer) Customer {
	return Customer{
		Name:  strings.TrimSpace(c.Name),
		Email: strings.ToLower(strings.TrimSpace(c.Email)),
		Phone: strings.TrimSpace(c.Phone),
	}
}

func validateCustomer(c Customer) error {
	if strings.TrimSpace(c.Name) == "" {
		return shared.NewDomainError("INVALID_CUSTOMER", "Customer name is required")
	}
	if !emailPattern.MatchString(strings.TrimSpace(c.Email)) {
		return shared.NewDomainError("INVALID_EMAIL", "A valid customer email is required")
	}
	return nil
}
