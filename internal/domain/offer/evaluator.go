package offer

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/travelhub/backend/internal/domain/shared"
)

// EvaluationInput describes the tour and booking context an offer is tested against
type EvaluationInput struct {
	TourID     uuid.UUID
	Price      decimal.Decimal
	Currency   string
	TravelDate *time.Time
	GroupSize  int
	OptionType string
	Now        time.Time
}

// Candidate is an offer that qualified for the input, with its computed price
type Candidate struct {
	Offer           *SpecialOffer
	DiscountAmount  decimal.Decimal
	DiscountedPrice decimal.Decimal
	Badge           string
}

// Evaluation is the result of evaluating a tenant's offers for one tour
type Evaluation struct {
	Best       *Candidate
	Qualifying []Candidate
}

// Qualifies runs every applicability rule except the offer type
func Qualifies(o *SpecialOffer, in EvaluationInput) bool {
	return o.Enabled &&
		IsOfferActive(o, in.Now) &&
		o.AppliesToTour(in.TourID, in.OptionType) &&
		o.AllowsTravelDate(in.TravelDate) &&
		o.AllowsGroupSize(in.GroupSize)
}

// Evaluate filters offers down to the auto-applied ones that qualify and
// picks the best: highest priority first, then the largest saving, then the
// largest raw discount value. Promo code offers are never returned.
func Evaluate(offers []SpecialOffer, in EvaluationInput) Evaluation {
	if in.Now.IsZero() {
		in.Now = time.Now()
	}

	qualifying := make([]Candidate, 0, len(offers))
	for i := range offers {
		o := &offers[i]
		if !o.IsAutoApplied() || !Qualifies(o, in) {
			continue
		}
		qualifying = append(qualifying, newCandidate(o, in))
	}

	sort.SliceStable(qualifying, func(i, j int) bool {
		a, b := qualifying[i], qualifying[j]
		if a.Offer.Priority != b.Offer.Priority {
			return a.Offer.Priority > b.Offer.Priority
		}
		if !a.DiscountAmount.Equal(b.DiscountAmount) {
			return a.DiscountAmount.GreaterThan(b.DiscountAmount)
		}
		return a.Offer.DiscountValue.GreaterThan(b.Offer.DiscountValue)
	})

	ev := Evaluation{Qualifying: qualifying}
	if len(qualifying) > 0 {
		best := qualifying[0]
		ev.Best = &best
	}
	return ev
}

// VerifyPromoCode checks a customer-entered code against a promo offer using
// the same activity, usage and applicability rules as automatic offers.
func VerifyPromoCode(o *SpecialOffer, code string, in EvaluationInput) (*Candidate, error) {
	if in.Now.IsZero() {
		in.Now = time.Now()
	}
	if o == nil || o.Type != OfferTypePromoCode || o.PromoCode != NormalizeCode(code) {
		return nil, shared.ErrPromoCodeUnknown
	}
	if !o.Enabled || !IsOfferActive(o, in.Now) {
		if o.UsageLimit != nil && o.UsedCount >= *o.UsageLimit {
			return nil, shared.ErrOfferExhausted
		}
		return nil, shared.NewDomainError("OFFER_INACTIVE", "Promo code is not active")
	}
	if !o.AppliesToTour(in.TourID, in.OptionType) {
		return nil, shared.NewDomainError("OFFER_NOT_APPLICABLE", "Promo code does not apply to this tour")
	}
	if !o.AllowsTravelDate(in.TravelDate) {
		return nil, shared.NewDomainError("OFFER_DATE_RESTRICTED", "Promo code is not valid for the selected date")
	}
	if !o.AllowsGroupSize(in.GroupSize) {
		return nil, shared.NewDomainError("OFFER_GROUP_SIZE", "Group is too small for this promo code")
	}
	c := newCandidate(o, in)
	return &c, nil
}

func newCandidate(o *SpecialOffer, in EvaluationInput) Candidate {
	return Candidate{
		Offer:           o,
		DiscountAmount:  o.DiscountAmount(in.Price),
		DiscountedPrice: o.DiscountedPrice(in.Price),
		Badge:           o.DiscountText(in.Currency),
	}
}
