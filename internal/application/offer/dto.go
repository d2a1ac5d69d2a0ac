package offer

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/travelhub/backend/internal/domain/offer"
	"github.com/travelhub/backend/internal/domain/shared"
)

// DateRangeInput is an inclusive travel date range in YYYY-MM-DD form
type DateRangeInput struct {
	From string `json:"from" binding:"required,datetime=2006-01-02"`
	To   string `json:"to" binding:"required,datetime=2006-01-02"`
}

// OfferRequest represents a create or full update of a special offer
type OfferRequest struct {
	Name               string           `json:"name" binding:"required,min=1,max=200"`
	Description        string           `json:"description" binding:"max=2000"`
	Type               string           `json:"type" binding:"required,oneof=percentage fixed promo_code"`
	DiscountKind       string           `json:"discount_kind" binding:"omitempty,oneof=percentage fixed"`
	DiscountValue      decimal.Decimal  `json:"discount_value"`
	PromoCode          string           `json:"promo_code" binding:"max=50"`
	StartDate          time.Time        `json:"start_date" binding:"required"`
	EndDate            time.Time        `json:"end_date" binding:"required"`
	UsageLimit         *int             `json:"usage_limit" binding:"omitempty,min=0"`
	ApplicableTours    []uuid.UUID      `json:"applicable_tours"`
	ExcludedTours      []uuid.UUID      `json:"excluded_tours"`
	BookingOptionTypes []string         `json:"booking_option_types"`
	BlackoutDates      []string         `json:"blackout_dates" binding:"dive,datetime=2006-01-02"`
	TravelDateRanges   []DateRangeInput `json:"travel_date_ranges" binding:"dive"`
	MinGroupSize       int              `json:"min_group_size" binding:"min=0"`
	Priority           int              `json:"priority"`
	BadgeText          string           `json:"badge_text" binding:"max=50"`
	Enabled            *bool            `json:"enabled"`
}

// OfferListFilter represents filter options for the offer list
type OfferListFilter struct {
	Search   string `form:"search"`
	Type     string `form:"type" binding:"omitempty,oneof=percentage fixed promo_code"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// VerifyPromoRequest is a customer checking a promo code before checkout
type VerifyPromoRequest struct {
	Code     string `json:"code" binding:"required,max=50"`
	TourID   string `json:"tour_id" binding:"required,uuid"`
	Date     string `json:"date" binding:"omitempty,datetime=2006-01-02"`
	OptionID string `json:"option_id"`
	Guests   int    `json:"guests" binding:"omitempty,min=1,max=100"`
}

// OfferResponse represents a special offer in API responses
type OfferResponse struct {
	ID                 uuid.UUID         `json:"id"`
	Name               string            `json:"name"`
	Description        string            `json:"description"`
	Type               string            `json:"type"`
	DiscountKind       string            `json:"discount_kind"`
	DiscountValue      decimal.Decimal   `json:"discount_value"`
	PromoCode          string            `json:"promo_code,omitempty"`
	StartDate          time.Time         `json:"start_date"`
	EndDate            time.Time         `json:"end_date"`
	UsageLimit         *int              `json:"usage_limit,omitempty"`
	UsedCount          int               `json:"used_count"`
	ApplicableTours    []uuid.UUID       `json:"applicable_tours"`
	ExcludedTours      []uuid.UUID       `json:"excluded_tours"`
	BookingOptionTypes []string          `json:"booking_option_types"`
	BlackoutDates      []string          `json:"blackout_dates"`
	TravelDateRanges   []offer.DateRange `json:"travel_date_ranges"`
	MinGroupSize       int               `json:"min_group_size"`
	Priority           int               `json:"priority"`
	BadgeText          string            `json:"badge_text"`
	Enabled            bool              `json:"enabled"`
	IsActive           bool              `json:"is_active"`
	CreatedAt          time.Time         `json:"created_at"`
}

// AppliedOffer is an offer evaluated against a tour price
type AppliedOffer struct {
	OfferID         uuid.UUID       `json:"offer_id"`
	Name            string          `json:"name"`
	Type            string          `json:"type"`
	Badge           string          `json:"badge"`
	Priority        int             `json:"priority"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	DiscountedPrice decimal.Decimal `json:"discounted_price"`
	EndDate         time.Time       `json:"end_date"`
}

// TourOffersResponse lists the offers a tour qualifies for
type TourOffersResponse struct {
	TourID     uuid.UUID       `json:"tour_id"`
	BasePrice  decimal.Decimal `json:"base_price"`
	Currency   string          `json:"currency"`
	Best       *AppliedOffer   `json:"best,omitempty"`
	BestPrice  decimal.Decimal `json:"best_price"`
	Qualifying []AppliedOffer  `json:"qualifying"`
}

// ToOfferResponse converts a domain SpecialOffer to OfferResponse
func ToOfferResponse(o *offer.SpecialOffer, now time.Time) OfferResponse {
	blackouts := make([]string, len(o.BlackoutDates))
	for i, d := range o.BlackoutDates {
		blackouts[i] = d.Format(shared.DateLayout)
	}
	return OfferResponse{
		ID:                 o.ID,
		Name:               o.Name,
		Description:        o.Description,
		Type:               string(o.Type),
		DiscountKind:       string(o.DiscountKind),
		DiscountValue:      o.DiscountValue,
		PromoCode:          o.PromoCode,
		StartDate:          o.StartDate,
		EndDate:            o.EndDate,
		UsageLimit:         o.UsageLimit,
		UsedCount:          o.UsedCount,
		ApplicableTours:    o.ApplicableTours,
		ExcludedTours:      o.ExcludedTours,
		BookingOptionTypes: o.BookingOptionTypes,
		BlackoutDates:      blackouts,
		TravelDateRanges:   o.TravelDateRanges,
		MinGroupSize:       o.MinGroupSize,
		Priority:           o.Priority,
		BadgeText:          o.BadgeText,
		Enabled:            o.Enabled,
		IsActive:           o.Enabled && offer.IsOfferActive(o, now),
		CreatedAt:          o.CreatedAt,
	}
}

// ToAppliedOffer converts an evaluated candidate
func ToAppliedOffer(c offer.Candidate) AppliedOffer {
	return AppliedOffer{
		OfferID:         c.Offer.ID,
		Name:            c.Offer.Name,
		Type:            string(c.Offer.Type),
		Badge:           c.Badge,
		Priority:        c.Offer.Priority,
		DiscountAmount:  c.DiscountAmount,
		DiscountedPrice: c.DiscountedPrice,
		EndDate:         c.Offer.EndDate,
	}
}
