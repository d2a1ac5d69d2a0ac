package booking

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/travelhub/backend/internal/domain/shared"
)

// AggregateTypeBooking is the aggregate type name for bookings
const AggregateTypeBooking = "Booking"

// Booking domain event types
const (
	EventTypeBookingCreated   = "BookingCreated"
	EventTypeBookingConfirmed = "BookingConfirmed"
	EventTypeBookingCancelled = "BookingCancelled"
	EventTypeBookingRefunded  = "BookingRefunded"
)

// Snapshot is the booking data every booking event carries, enough to
// render a customer email without reloading the booking
type Snapshot struct {
	BookingID  uuid.UUID       `json:"booking_id"`
	Reference  string          `json:"reference"`
	TourID     uuid.UUID       `json:"tour_id"`
	TourTitle  string          `json:"tour_title"`
	Date       time.Time       `json:"date"`
	SlotTime   string          `json:"slot_time"`
	Guests     int             `json:"guests"`
	Currency   string          `json:"currency"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Customer   Customer        `json:"customer"`
	Status     Status          `json:"status"`
}

func snapshotOf(b *Booking) Snapshot {
	return Snapshot{
		BookingID:  b.ID,
		Reference:  b.Reference,
		TourID:     b.TourID,
		TourTitle:  b.TourTitle,
		Date:       b.Date,
		SlotTime:   b.SlotTime,
		Guests:     b.Guests,
		Currency:   b.Currency,
		TotalPrice: b.TotalPrice,
		Customer:   b.Customer,
		Status:     b.Status,
	}
}

// BookingEvent is implemented by every booking event
type BookingEvent interface {
	shared.DomainEvent
	Booking() Snapshot
}

// BookingCreatedEvent is published when a booking is placed
type BookingCreatedEvent struct {
	shared.BaseDomainEvent
	Snapshot
}

// NewBookingCreatedEvent creates a new BookingCreatedEvent
func NewBookingCreatedEvent(b *Booking) *BookingCreatedEvent {
	return &BookingCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBookingCreated, AggregateTypeBooking, b.ID, b.TenantID),
		Snapshot:        snapshotOf(b),
	}
}

// Booking returns the booking snapshot
func (e *BookingCreatedEvent) Booking() Snapshot { return e.Snapshot }

// BookingConfirmedEvent is published when a booking is confirmed
type BookingConfirmedEvent struct {
	shared.BaseDomainEvent
	Snapshot
	PaymentIntentID string `json:"payment_intent_id,omitempty"`
}

// NewBookingConfirmedEvent creates a new BookingConfirmedEvent
func NewBookingConfirmedEvent(b *Booking) *BookingConfirmedEvent {
	return &BookingConfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBookingConfirmed, AggregateTypeBooking, b.ID, b.TenantID),
		Snapshot:        snapshotOf(b),
		PaymentIntentID: b.PaymentIntentID,
	}
}

// Booking returns the booking snapshot
func (e *BookingConfirmedEvent) Booking() Snapshot { return e.Snapshot }

// BookingCancelledEvent is published when a booking is cancelled
type BookingCancelledEvent struct {
	shared.BaseDomainEvent
	Snapshot
	CancelledBy      string          `json:"cancelled_by"`
	Reason           string          `json:"reason"`
	RefundPercentage int             `json:"refund_percentage"`
	RefundAmount     decimal.Decimal `json:"refund_amount"`
}

// NewBookingCancelledEvent creates a new BookingCancelledEvent
func NewBookingCancelledEvent(b *Booking) *BookingCancelledEvent {
	return &BookingCancelledEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeBookingCancelled, AggregateTypeBooking, b.ID, b.TenantID),
		Snapshot:         snapshotOf(b),
		CancelledBy:      b.CancelledBy,
		Reason:           b.CancelReason,
		RefundPercentage: b.RefundPercentage,
		RefundAmount:     b.RefundAmount,
	}
}

// Booking returns the booking snapshot
func (e *BookingCancelledEvent) Booking() Snapshot { return e.Snapshot }

// BookingRefundedEvent is published when money is returned
type BookingRefundedEvent struct {
	shared.BaseDomainEvent
	Snapshot
	RefundPercentage int             `json:"refund_percentage"`
	RefundAmount     decimal.Decimal `json:"refund_amount"`
}

// NewBookingRefundedEvent creates a new BookingRefundedEvent
func NewBookingRefundedEvent(b *Booking) *BookingRefundedEvent {
	return &BookingRefundedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeBookingRefunded, AggregateTypeBooking, b.ID, b.TenantID),
		Snapshot:         snapshotOf(b),
		RefundPercentage: b.RefundPercentage,
		RefundAmount:     b.RefundAmount,
	}
}

// Booking returns the booking snapshot
func (e *BookingRefundedEvent) Booking() Snapshot { return e.Snapshot }
