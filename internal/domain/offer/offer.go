package offer

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/travelhub/backend/internal/domain/shared"
)

// OfferType says how an offer is applied
type OfferType string

const (
	OfferTypePercentage OfferType = "percentage"
	OfferTypeFixed      OfferType = "fixed"
	OfferTypePromoCode  OfferType = "promo_code" // applied only when the customer enters the code
)

// DiscountKind is the arithmetic of a discount
type DiscountKind string

const (
	DiscountPercentage DiscountKind = "percentage"
	DiscountFixed      DiscountKind = "fixed"
)

// DateRange is an inclusive calendar date range
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Contains reports whether the calendar day of d is inside the range
func (r DateRange) Contains(d time.Time) bool {
	day := shared.DateOnly(d)
	return !day.Before(shared.DateOnly(r.From)) && !day.After(shared.DateOnly(r.To))
}

// SpecialOffer is a promotional discount rule owned by a tenant
type SpecialOffer struct {
	shared.TenantAggregateRoot
	Name               string
	Description        string
	Type               OfferType
	DiscountKind       DiscountKind
	DiscountValue      decimal.Decimal
	PromoCode          string
	StartDate          time.Time
	EndDate            time.Time
	UsageLimit         *int
	UsedCount          int
	ApplicableTours    []uuid.UUID
	ExcludedTours      []uuid.UUID
	BookingOptionTypes []string
	BlackoutDates      []time.Time
	TravelDateRanges   []DateRange
	MinGroupSize       int
	Priority           int
	BadgeText          string
	Enabled            bool
}

// NewOfferParams holds the fields needed to create an offer
type NewOfferParams struct {
	Name          string
	Type          OfferType
	DiscountKind  DiscountKind
	DiscountValue decimal.Decimal
	PromoCode     string
	StartDate     time.Time
	EndDate       time.Time
	UsageLimit    *int
	Priority      int
}

// NewSpecialOffer creates an enabled offer
func NewSpecialOffer(tenantID uuid.UUID, p NewOfferParams) (*SpecialOffer, error) {
	o := &SpecialOffer{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ApplicableTours:     make([]uuid.UUID, 0),
		ExcludedTours:       make([]uuid.UUID, 0),
		BookingOptionTypes:  make([]string, 0),
		BlackoutDates:       make([]time.Time, 0),
		TravelDateRanges:    make([]DateRange, 0),
		Enabled:             true,
	}
	if err := o.apply(p); err != nil {
		return nil, err
	}
	return o, nil
}

// Update replaces the core terms of the offer
func (o *SpecialOffer) Update(p NewOfferParams) error {
	if err := o.apply(p); err != nil {
		return err
	}
	o.touch()
	return nil
}

func (o *SpecialOffer) apply(p NewOfferParams) error {
	name := strings.TrimSpace(p.Name)
	if name == "" || len(name) > 200 {
		return shared.NewDomainError("INVALID_OFFER_NAME", "Offer name must be 1-200 characters")
	}
	kind, err := resolveKind(p.Type, p.DiscountKind)
	if err != nil {
		return err
	}
	if !p.DiscountValue.IsPositive() {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount value must be positive")
	}
	if kind == DiscountPercentage && p.DiscountValue.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_DISCOUNT", "Percentage discount cannot exceed 100")
	}
	code := NormalizeCode(p.PromoCode)
	if p.Type == OfferTypePromoCode && code == "" {
		return shared.NewDomainError("INVALID_PROMO_CODE", "Promo code offers need a code")
	}
	if p.Type != OfferTypePromoCode {
		code = ""
	}
	if p.StartDate.IsZero() || p.EndDate.IsZero() {
		return shared.NewDomainError("INVALID_OFFER_DATES", "Start and end dates are required")
	}
	if p.EndDate.Before(p.StartDate) {
		return shared.NewDomainError("INVALID_OFFER_DATES", "End date must not be before start date")
	}
	if p.UsageLimit != nil && *p.UsageLimit < 0 {
		return shared.NewDomainError("INVALID_USAGE_LIMIT", "Usage limit cannot be negative")
	}

	o.Name = name
	o.Type = p.Type
	o.DiscountKind = kind
	o.DiscountValue = p.DiscountValue
	o.PromoCode = code
	o.StartDate = p.StartDate
	o.EndDate = p.EndDate
	o.UsageLimit = p.UsageLimit
	o.Priority = p.Priority
	return nil
}

func resolveKind(t OfferType, kind DiscountKind) (DiscountKind, error) {
	switch t {
	case OfferTypePercentage:
		return DiscountPercentage, nil
	case OfferTypeFixed:
		return DiscountFixed, nil
	case OfferTypePromoCode:
		switch kind {
		case DiscountPercentage, DiscountFixed:
			return kind, nil
		case "":
			return DiscountPercentage, nil
		}
		return "", shared.NewDomainError("INVALID_DISCOUNT_KIND", "Discount kind must be percentage or fixed")
	}
	return "", shared.NewDomainError("INVALID_OFFER_TYPE", "Offer type must be percentage, fixed or promo_code")
}

// SetTourRules sets which tours and booking option types the offer covers.
// An empty applicable list means every tour.
func (o *SpecialOffer) SetTourRules(applicable, excluded []uuid.UUID, optionTypes []string) {
	o.ApplicableTours = append(make([]uuid.UUID, 0, len(applicable)), applicable...)
	o.ExcludedTours = append(make([]uuid.UUID, 0, len(excluded)), excluded...)
	types := make([]string, 0, len(optionTypes))
	for _, t := range optionTypes {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			types = append(types, t)
		}
	}
	o.BookingOptionTypes = types
	o.touch()
}

// SetTravelRules sets blackout dates, allowed travel ranges and minimum group size
func (o *SpecialOffer) SetTravelRules(blackouts []time.Time, ranges []DateRange, minGroupSize int) error {
	for _, r := range ranges {
		if r.To.Before(r.From) {
			return shared.NewDomainError("INVALID_DATE_RANGE", "Travel date range end must not be before its start")
		}
	}
	if minGroupSize < 0 {
		return shared.NewDomainError("INVALID_GROUP_SIZE", "Minimum group size cannot be negative")
	}
	days := make([]time.Time, 0, len(blackouts))
	for _, d := range blackouts {
		days = append(days, shared.DateOnly(d))
	}
	o.BlackoutDates = days
	o.TravelDateRanges = append(make([]DateRange, 0, len(ranges)), ranges...)
	o.MinGroupSize = minGroupSize
	o.touch()
	return nil
}

// SetBadge overrides the generated badge text
func (o *SpecialOffer) SetBadge(text string) {
	o.BadgeText = strings.TrimSpace(text)
	o.touch()
}

// Enable turns the offer on
func (o *SpecialOffer) Enable() {
	o.Enabled = true
	o.touch()
}

// Disable turns the offer off without deleting it
func (o *SpecialOffer) Disable() {
	o.Enabled = false
	o.touch()
}

// IsAutoApplied reports whether the offer can be picked without a code
func (o *SpecialOffer) IsAutoApplied() bool {
	return o.Type != OfferTypePromoCode
}

// IsOfferActive reports whether the offer window contains now and its usage
// budget is not exhausted. A nil UsageLimit means unlimited.
func IsOfferActive(o *SpecialOffer, now time.Time) bool {
	if now.Before(o.StartDate) || now.After(o.EndDate) {
		return false
	}
	return o.UsageLimit == nil || o.UsedCount < *o.UsageLimit
}

// AppliesToTour checks tour and booking option applicability. An empty
// optionType skips the option type rule (listing pages).
func (o *SpecialOffer) AppliesToTour(tourID uuid.UUID, optionType string) bool {
	for _, id := range o.ExcludedTours {
		if id == tourID {
			return false
		}
	}
	if len(o.ApplicableTours) > 0 {
		found := false
		for _, id := range o.ApplicableTours {
			if id == tourID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	optionType = strings.ToLower(strings.TrimSpace(optionType))
	if len(o.BookingOptionTypes) == 0 || optionType == "" {
		return true
	}
	for _, t := range o.BookingOptionTypes {
		if t == optionType {
			return true
		}
	}
	return false
}

// AllowsTravelDate checks blackout dates and allowed ranges. A nil date
// (no date chosen yet) passes.
func (o *SpecialOffer) AllowsTravelDate(date *time.Time) bool {
	if date == nil {
		return true
	}
	day := shared.DateOnly(*date)
	for _, b := range o.BlackoutDates {
		if shared.DateOnly(b).Equal(day) {
			return false
		}
	}
	if len(o.TravelDateRanges) == 0 {
		return true
	}
	for _, r := range o.TravelDateRanges {
		if r.Contains(day) {
			return true
		}
	}
	return false
}

// AllowsGroupSize checks the minimum group size. Zero guests (unknown) passes.
func (o *SpecialOffer) AllowsGroupSize(guests int) bool {
	return o.MinGroupSize == 0 || guests == 0 || guests >= o.MinGroupSize
}

// DiscountAmount is the saving on price, never more than price itself
func (o *SpecialOffer) DiscountAmount(price decimal.Decimal) decimal.Decimal {
	if !price.IsPositive() {
		return decimal.Zero
	}
	var amount decimal.Decimal
	switch o.DiscountKind {
	case DiscountPercentage:
		amount = price.Mul(o.DiscountValue).Div(decimal.NewFromInt(100)).Round(2)
	default:
		amount = o.DiscountValue
	}
	if amount.GreaterThan(price) {
		return price
	}
	return amount
}

// DiscountedPrice applies the offer to price, clamped at zero
func (o *SpecialOffer) DiscountedPrice(price decimal.Decimal) decimal.Decimal {
	return decimal.Max(price.Sub(o.DiscountAmount(price)), decimal.Zero)
}

// DiscountText renders a badge such as "15% OFF" or "SAVE 20.00 EUR"
func (o *SpecialOffer) DiscountText(currency string) string {
	if o.BadgeText != "" {
		return o.BadgeText
	}
	if o.DiscountKind == DiscountPercentage {
		return fmt.Sprintf("%s%% OFF", o.DiscountValue.String())
	}
	return strings.TrimSpace(fmt.Sprintf("SAVE %s %s", o.DiscountValue.StringFixed(2), currency))
}

// RecordUse counts one redemption against the usage budget
func (o *SpecialOffer) RecordUse() error {
	if o.UsageLimit != nil && o.UsedCount >= *o.UsageLimit {
		return shared.ErrOfferExhausted
	}
	o.UsedCount++
	o.touch()
	return nil
}

func (o *SpecialOffer) touch() {
	o.Touch()
	o.IncrementVersion()
}

// NormalizeCode upper-cases and trims a promo code
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
