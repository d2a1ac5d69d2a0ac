package booking

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/travelhub/backend/internal/domain/booking"
	"github.com/travelhub/backend/internal/domain/shared"
)

// CustomerInput is the lead traveller of a checkout
type CustomerInput struct {
	Name  string `json:"name" binding:"required,min=1,max=200"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone" binding:"max=50"`
}

// CheckoutRequest places a booking for a tour date
type CheckoutRequest struct {
	TourID    string        `json:"tour_id" binding:"required,uuid"`
	Date      string        `json:"date" binding:"required,datetime=2006-01-02"`
	Time      string        `json:"time" binding:"omitempty,slot_time"`
	OptionID  string        `json:"option_id" binding:"max=100"`
	Guests    int           `json:"guests" binding:"required,min=1,max=100"`
	PromoCode string        `json:"promo_code" binding:"max=50"`
	Customer  CustomerInput `json:"customer" binding:"required"`
	Notes     string        `json:"notes" binding:"max=2000"`
}

// CancelRequest carries an optional cancellation reason
type CancelRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// RefundRequest overrides the policy refund percentage when set
type RefundRequest struct {
	Percentage *int `json:"percentage" binding:"omitempty,min=1,max=100"`
}

// BookingListFilter represents filter options for booking lists
type BookingListFilter struct {
	Status   string `form:"status"`
	TourID   string `form:"tour_id" binding:"omitempty,uuid"`
	DateFrom string `form:"date_from" binding:"omitempty,datetime=2006-01-02"`
	DateTo   string `form:"date_to" binding:"omitempty,datetime=2006-01-02"`
	Search   string `form:"search"`
	OrderBy  string `form:"order_by" binding:"omitempty,oneof=created_at date total_price status"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

func (f BookingListFilter) toFilter() (shared.Filter, error) {
	out := shared.Filter{
		Page:     f.Page,
		PageSize: f.PageSize,
		OrderBy:  f.OrderBy,
		OrderDir: f.OrderDir,
		Search:   f.Search,
	}.Normalize()

	if f.Status != "" {
		status := booking.ToBookingStatusCode(f.Status)
		if status == nil {
			return out, shared.NewDomainError("INVALID_STATUS", "Unknown booking status")
		}
		out.Filters[booking.FilterStatus] = *status
	}
	if f.TourID != "" {
		id, err := uuid.Parse(f.TourID)
		if err != nil {
			return out, shared.NewDomainError("INVALID_INPUT", "Invalid tour ID")
		}
		out.Filters[booking.FilterTourID] = id
	}
	if f.DateFrom != "" {
		d, err := shared.ParseDate(f.DateFrom)
		if err != nil {
			return out, err
		}
		out.Filters[booking.FilterDateFrom] = d
	}
	if f.DateTo != "" {
		d, err := shared.ParseDate(f.DateTo)
		if err != nil {
			return out, err
		}
		out.Filters[booking.FilterDateTo] = d
	}
	return out, nil
}

// BookingResponse represents a booking in API responses
type BookingResponse struct {
	ID               uuid.UUID        `json:"id"`
	Reference        string           `json:"reference"`
	TourID           uuid.UUID        `json:"tour_id"`
	TourTitle        string           `json:"tour_title"`
	UserID           *uuid.UUID       `json:"user_id,omitempty"`
	OptionID         string           `json:"option_id,omitempty"`
	OptionType       string           `json:"option_type,omitempty"`
	Date             string           `json:"date"`
	Time             string           `json:"time,omitempty"`
	Guests           int              `json:"guests"`
	Status           string           `json:"status"`
	StatusLabel      string           `json:"status_label"`
	Currency         string           `json:"currency"`
	UnitPrice        decimal.Decimal  `json:"unit_price"`
	Subtotal         decimal.Decimal  `json:"subtotal"`
	DiscountAmount   decimal.Decimal  `json:"discount_amount"`
	TotalPrice       decimal.Decimal  `json:"total_price"`
	OfferID          *uuid.UUID       `json:"offer_id,omitempty"`
	PromoCode        string           `json:"promo_code,omitempty"`
	Customer         booking.Customer `json:"customer"`
	PaymentIntentID  string           `json:"payment_intent_id,omitempty"`
	PaidAt           *time.Time       `json:"paid_at,omitempty"`
	ConfirmedAt      *time.Time       `json:"confirmed_at,omitempty"`
	CancelledAt      *time.Time       `json:"cancelled_at,omitempty"`
	CancelledBy      string           `json:"cancelled_by,omitempty"`
	CancelReason     string           `json:"cancel_reason,omitempty"`
	RefundPercentage int              `json:"refund_percentage"`
	RefundAmount     decimal.Decimal  `json:"refund_amount"`
	RefundedAt       *time.Time       `json:"refunded_at,omitempty"`
	CompletedAt      *time.Time       `json:"completed_at,omitempty"`
	Notes            string           `json:"notes,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// ToBookingResponse converts a domain Booking to BookingResponse
func ToBookingResponse(b *booking.Booking) BookingResponse {
	resp := BookingResponse{
		ID:               b.ID,
		Reference:        b.Reference,
		TourID:           b.TourID,
		TourTitle:        b.TourTitle,
		OptionID:         b.OptionID,
		OptionType:       b.OptionType,
		Date:             b.Date.Format(shared.DateLayout),
		Time:             b.SlotTime,
		Guests:           b.Guests,
		Status:           string(b.Status),
		StatusLabel:      b.Status.Label(),
		Currency:         b.Currency,
		UnitPrice:        b.UnitPrice,
		Subtotal:         b.Subtotal,
		DiscountAmount:   b.DiscountAmount,
		TotalPrice:       b.TotalPrice,
		OfferID:          b.OfferID,
		PromoCode:        b.PromoCode,
		Customer:         b.Customer,
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
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
	if b.UserID != uuid.Nil {
		id := b.UserID
		resp.UserID = &id
	}
	return resp
}

// ToBookingResponses converts a slice of bookings
func ToBookingResponses(items []booking.Booking) []BookingResponse {
	out := make([]BookingResponse, len(items))
	for i := range items {
		out[i] = ToBookingResponse(&items[i])
	}
	return out
}
