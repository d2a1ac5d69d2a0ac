package offer

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/travelhub/backend/internal/domain/catalog"
	"github.com/travelhub/backend/internal/domain/offer"
	"github.com/travelhub/backend/internal/domain/shared"
	"github.com/travelhub/backend/internal/domain/tenant"
	"go.uber.org/zap"
)

// TourLookup finds a tour visible to a storefront
type TourLookup interface {
	GetPublic(ctx context.Context, cfg tenant.Config, id uuid.UUID) (*catalog.Tour, error)
}

// QuoteInput describes a priced booking an offer is looked up for
type QuoteInput struct {
	Tour       *catalog.Tour
	Price      decimal.Decimal
	TravelDate *time.Time
	Guests     int
	OptionType string
	PromoCode  string
}

// OfferService manages special offers and evaluates them against tours
type OfferService struct {
	repo   offer.OfferRepository
	tours  TourLookup
	logger *zap.Logger
	now    func() time.Time
}

// NewOfferService creates a new OfferService
func NewOfferService(repo offer.OfferRepository, tours TourLookup, logger *zap.Logger) *OfferService {
	return &OfferService{
		repo:   repo,
		tours:  tours,
		logger: logger,
		now:    time.Now,
	}
}

// List returns the tenant's offers
func (s *OfferService) List(ctx context.Context, tenantID uuid.UUID, filter OfferListFilter) (*shared.Paginated[OfferResponse], error) {
	f := shared.Filter{Page: filter.Page, PageSize: filter.PageSize, Search: filter.Search}.Normalize()
	if filter.Type != "" {
		f.Filters["type"] = offer.OfferType(filter.Type)
	}

	offers, err := s.repo.FindAll(ctx, tenantID, f)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx, tenantID, f)
	if err != nil {
		return nil, err
	}

	now := s.now()
	items := make([]OfferResponse, len(offers))
	for i := range offers {
		items[i] = ToOfferResponse(&offers[i], now)
	}
	page := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &page, nil
}

// GetByID returns one offer
func (s *OfferService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*OfferResponse, error) {
	o, err := s.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToOfferResponse(o, s.now())
	return &resp, nil
}

// Create adds an offer
func (s *OfferService) Create(ctx context.Context, tenantID uuid.UUID, req OfferRequest) (*OfferResponse, error) {
	o, err := offer.NewSpecialOffer(tenantID, toParams(req))
	if err != nil {
		return nil, err
	}
	if err := s.applyRules(o, req); err != nil {
		return nil, err
	}
	if err := s.ensureUniqueCode(ctx, o); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, o); err != nil {
		return nil, err
	}

	s.logger.Info("Offer created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("offer_id", o.ID.String()),
		zap.String("type", string(o.Type)))
	resp := ToOfferResponse(o, s.now())
	return &resp, nil
}

// Update replaces an offer's terms
func (s *OfferService) Update(ctx context.Context, tenantID, id uuid.UUID, req OfferRequest) (*OfferResponse, error) {
	o, err := s.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := o.Update(toParams(req)); err != nil {
		return nil, err
	}
	if err := s.applyRules(o, req); err != nil {
		return nil, err
	}
	if err := s.ensureUniqueCode(ctx, o); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, o); err != nil {
		return nil, err
	}
	resp := ToOfferResponse(o, s.now())
	return &resp, nil
}

// Delete removes an offer
func (s *OfferService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.repo.Delete(ctx, tenantID, id)
}

// ForTour evaluates the requesting tenant's automatic offers against a tour
// it can see. Inherited tours are priced with the requesting tenant's offers.
func (s *OfferService) ForTour(ctx context.Context, cfg tenant.Config, tourID uuid.UUID, date *time.Time, optionID string, guests int) (*TourOffersResponse, error) {
	t, err := s.tours.GetPublic(ctx, cfg, tourID)
	if err != nil {
		return nil, err
	}
	offers, err := s.repo.FindLive(ctx, cfg.TenantID, s.now())
	if err != nil {
		return nil, err
	}

	price := t.PriceFor(optionID)
	ev := offer.Evaluate(offers, offer.EvaluationInput{
		TourID:     t.ID,
		Price:      price,
		Currency:   t.Currency,
		TravelDate: date,
		GroupSize:  guests,
		OptionType: optionType(t, optionID),
		Now:        s.now(),
	})

	resp := &TourOffersResponse{
		TourID:     t.ID,
		BasePrice:  price,
		Currency:   t.Currency,
		BestPrice:  price,
		Qualifying: make([]AppliedOffer, len(ev.Qualifying)),
	}
	for i, c := range ev.Qualifying {
		resp.Qualifying[i] = ToAppliedOffer(c)
	}
	if ev.Best != nil {
		best := ToAppliedOffer(*ev.Best)
		resp.Best = &best
		resp.BestPrice = best.DiscountedPrice
	}
	return resp, nil
}

// VerifyPromo checks a customer-entered code against a tour before checkout
func (s *OfferService) VerifyPromo(ctx context.Context, cfg tenant.Config, req VerifyPromoRequest) (*AppliedOffer, error) {
	tourID, err := uuid.Parse(req.TourID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid tour ID")
	}
	t, err := s.tours.GetPublic(ctx, cfg, tourID)
	if err != nil {
		return nil, err
	}
	var date *time.Time
	if req.Date != "" {
		d, err := shared.ParseDate(req.Date)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_DATE", "Date must be YYYY-MM-DD")
		}
		date = &d
	}

	guests := req.Guests
	price := t.PriceFor(req.OptionID)
	if guests > 0 {
		price = price.Mul(decimal.NewFromInt(int64(guests)))
	}
	c, err := s.Quote(ctx, cfg.TenantID, QuoteInput{
		Tour:       t,
		Price:      price,
		TravelDate: date,
		Guests:     guests,
		OptionType: optionType(t, req.OptionID),
		PromoCode:  req.Code,
	})
	if err != nil {
		return nil, err
	}
	applied := ToAppliedOffer(*c)
	return &applied, nil
}

// Quote picks the offer for a booking: the verified promo code when one is
// given, otherwise the best automatic offer. Returns nil without a match.
func (s *OfferService) Quote(ctx context.Context, tenantID uuid.UUID, in QuoteInput) (*offer.Candidate, error) {
	evalIn := offer.EvaluationInput{
		TourID:     in.Tour.ID,
		Price:      in.Price,
		Currency:   in.Tour.Currency,
		TravelDate: in.TravelDate,
		GroupSize:  in.Guests,
		OptionType: in.OptionType,
		Now:        s.now(),
	}

	if code := offer.NormalizeCode(in.PromoCode); code != "" {
		o, err := s.repo.FindByPromoCode(ctx, tenantID, code)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.ErrPromoCodeUnknown
			}
			return nil, err
		}
		return offer.VerifyPromoCode(o, code, evalIn)
	}

	offers, err := s.repo.FindLive(ctx, tenantID, evalIn.Now)
	if err != nil {
		return nil, err
	}
	return offer.Evaluate(offers, evalIn).Best, nil
}

// Redeem counts one use of an offer. Fails with ErrOfferExhausted when the
// usage limit was reached concurrently.
func (s *OfferService) Redeem(ctx context.Context, tenantID, offerID uuid.UUID) error {
	if err := s.repo.IncrementUsage(ctx, tenantID, offerID); err != nil {
		if errors.Is(err, shared.ErrOfferExhausted) {
			s.logger.Info("Offer usage limit reached", zap.String("offer_id", offerID.String()))
		}
		return err
	}
	return nil
}

// Unredeem gives back a redemption taken by Redeem
func (s *OfferService) Unredeem(ctx context.Context, tenantID, offerID uuid.UUID) error {
	return s.repo.ReleaseUsage(ctx, tenantID, offerID)
}

func (s *OfferService) applyRules(o *offer.SpecialOffer, req OfferRequest) error {
	o.Description = strings.TrimSpace(req.Description)
	o.SetTourRules(req.ApplicableTours, req.ExcludedTours, req.BookingOptionTypes)

	blackouts := make([]time.Time, 0, len(req.BlackoutDates))
	for _, raw := range req.BlackoutDates {
		d, err := shared.ParseDate(raw)
		if err != nil {
			return shared.NewDomainError("INVALID_DATE", "Blackout dates must be YYYY-MM-DD")
		}
		blackouts = append(blackouts, d)
	}
	ranges := make([]offer.DateRange, 0, len(req.TravelDateRanges))
	for _, r := range req.TravelDateRanges {
		from, err := shared.ParseDate(r.From)
		if err != nil {
			return shared.NewDomainError("INVALID_DATE", "Travel range dates must be YYYY-MM-DD")
		}
		to, err := shared.ParseDate(r.To)
		if err != nil {
			return shared.NewDomainError("INVALID_DATE", "Travel range dates must be YYYY-MM-DD")
		}
		ranges = append(ranges, offer.DateRange{From: from, To: to})
	}
	if err := o.SetTravelRules(blackouts, ranges, req.MinGroupSize); err != nil {
		return err
	}
	o.SetBadge(req.BadgeText)
	if req.Enabled != nil {
		if *req.Enabled {
			o.Enable()
		} else {
			o.Disable()
		}
	}
	return nil
}

func (s *OfferService) ensureUniqueCode(ctx context.Context, o *offer.SpecialOffer) error {
	if o.PromoCode == "" {
		return nil
	}
	taken, err := s.repo.ExistsByPromoCode(ctx, o.TenantID, o.PromoCode, &o.ID)
	if err != nil {
		return err
	}
	if taken {
		return shared.NewDomainError("PROMO_CODE_TAKEN", "Another offer already uses this promo code")
	}
	return nil
}

func toParams(req OfferRequest) offer.NewOfferParams {
	return offer.NewOfferParams{
		Name:          req.Name,
		Type:          offer.OfferType(req.Type),
		DiscountKind:  offer.DiscountKind(req.DiscountKind),
		DiscountValue: req.DiscountValue,
		PromoCode:     req.PromoCode,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		UsageLimit:    req.UsageLimit,
		Priority:      req.Priority,
	}
}

func optionType(t *catalog.Tour, optionID string) string {
	if opt, ok := t.Option(optionID); ok {
		return opt.Type
	}
	return ""
}
