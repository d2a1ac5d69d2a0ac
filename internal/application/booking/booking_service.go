package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	availabilityapp "github.com/travelhub/backend/internal/application/availability"
	offerapp "github.com/travelhub/backend/internal/application/offer"
	"github.com/travelhub/backend/internal/domain/booking"
	"github.com/travelhub/backend/internal/domain/catalog"
	"github.com/travelhub/backend/internal/domain/offer"
	"github.com/travelhub/backend/internal/domain/shared"
	"github.com/travelhub/backend/internal/domain/tenant"
	"github.com/travelhub/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// cancelClaimTTL bounds how long a cancel claim blocks repeated cancels
const cancelClaimTTL = 24 * time.Hour

// TourLookup finds a tour visible to a storefront
type TourLookup interface {
	GetPublic(ctx context.Context, cfg tenant.Config, id uuid.UUID) (*catalog.Tour, error)
}

// SeatKeeper holds and returns slot seats
type SeatKeeper interface {
	Reserve(ctx context.Context, t *catalog.Tour, date time.Time, slotTime, optionID string, qty int) (*availabilityapp.Reservation, error)
	Release(ctx context.Context, ownerID, tourID uuid.UUID, date time.Time, slotTime string, qty int) error
}

// OfferPricer picks the discount of a checkout and counts its use
type OfferPricer interface {
	Quote(ctx context.Context, tenantID uuid.UUID, in offerapp.QuoteInput) (*offer.Candidate, error)
	Redeem(ctx context.Context, tenantID, offerID uuid.UUID) error
	Unredeem(ctx context.Context, tenantID, offerID uuid.UUID) error
}

// Actor identifies who performs a booking action. A nil UserID with Admin
// set is a back-office user acting on any booking of the tenant.
type Actor struct {
	UserID uuid.UUID
	Admin  bool
}

// BookingService handles checkout and the booking lifecycle
type BookingService struct {
	bookingRepo    booking.BookingRepository
	tourRepo       catalog.TourRepository
	tours          TourLookup
	seats          SeatKeeper
	offers         OfferPricer
	claims         shared.IdempotencyStore
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
	now            func() time.Time
}

// NewBookingService creates a new BookingService
func NewBookingService(
	bookingRepo booking.BookingRepository,
	tourRepo catalog.TourRepository,
	tours TourLookup,
	seats SeatKeeper,
	offers OfferPricer,
	claims shared.IdempotencyStore,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		tourRepo:    tourRepo,
		tours:       tours,
		seats:       seats,
		offers:      offers,
		claims:      claims,
		logger:      logger,
		now:         time.Now,
	}
}

// SetEventPublisher sets the publisher booking events are sent to
func (s *BookingService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Checkout places a pending booking. Seats are held with a conditional
// update before the booking is written and given back if any later step fails.
func (s *BookingService) Checkout(ctx context.Context, cfg tenant.Config, userID uuid.UUID, req CheckoutRequest) (*BookingResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "booking", "checkout",
		telemetry.SpanAttrTenantID, cfg.TenantID,
		telemetry.SpanAttrTourID, req.TourID,
		telemetry.SpanAttrGuests, req.Guests)
	defer span.End()

	resp, err := s.checkout(ctx, cfg, userID, req)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttributes(span,
		telemetry.SpanAttrBookingID, resp.ID,
		telemetry.SpanAttrReference, resp.Reference)
	return resp, nil
}

func (s *BookingService) checkout(ctx context.Context, cfg tenant.Config, userID uuid.UUID, req CheckoutRequest) (*BookingResponse, error) {
	tourID, err := uuid.Parse(req.TourID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid tour ID")
	}
	date, err := shared.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if shared.DaysBetween(now, date) < 0 {
		return nil, shared.NewDomainError("INVALID_DATE", "Tour date cannot be in the past")
	}

	t, err := s.tours.GetPublic(ctx, cfg, tourID)
	if err != nil {
		return nil, err
	}
	if t.MaxGroupSize > 0 && req.Guests > t.MaxGroupSize {
		return nil, shared.NewDomainError("GROUP_TOO_LARGE", "Number of guests exceeds the maximum group size")
	}
	var optionType string
	if req.OptionID != "" {
		opt, ok := t.Option(req.OptionID)
		if !ok {
			return nil, shared.NewDomainError("INVALID_BOOKING_OPTION", "Booking option not found")
		}
		optionType = opt.Type
	}

	unit := t.PriceFor(req.OptionID)
	subtotal := unit.Mul(decimal.NewFromInt(int64(req.Guests)))
	candidate, err := s.offers.Quote(ctx, cfg.TenantID, offerapp.QuoteInput{
		Tour:       t,
		Price:      subtotal,
		TravelDate: &date,
		Guests:     req.Guests,
		OptionType: optionType,
		PromoCode:  req.PromoCode,
	})
	if err != nil {
		return nil, err
	}

	res, err := s.seats.Reserve(ctx, t, date, req.Time, req.OptionID, req.Guests)
	if err != nil {
		return nil, err
	}
	release := func() {
		if err := s.seats.Release(ctx, t.TenantID, t.ID, date, res.SlotTime, req.Guests); err != nil {
			s.logger.Error("Failed to release seats",
				zap.String("tour_id", t.ID.String()),
				zap.String("date", req.Date),
				zap.Error(err))
		}
	}

	b, err := booking.NewBooking(cfg.TenantID, booking.NewBookingParams{
		TourID:     t.ID,
		TourTitle:  t.Title,
		UserID:     userID,
		OptionID:   req.OptionID,
		OptionType: optionType,
		Date:       date,
		SlotTime:   res.SlotTime,
		Guests:     req.Guests,
		Currency:   t.Currency,
		UnitPrice:  unit,
		Customer: booking.Customer{
			Name:  req.Customer.Name,
			Email: req.Customer.Email,
			Phone: req.Customer.Phone,
		},
		Notes: strings.TrimSpace(req.Notes),
		Now:   now,
	})
	if err != nil {
		release()
		return nil, err
	}

	if candidate != nil {
		if err := s.applyOffer(ctx, cfg.TenantID, b, candidate, req.PromoCode); err != nil {
			release()
			return nil, err
		}
	}

	if err := s.bookingRepo.Save(ctx, b); err != nil {
		release()
		if b.OfferID != nil {
			s.unredeem(ctx, cfg.TenantID, *b.OfferID)
		}
		return nil, err
	}

	s.logger.Info("Booking created",
		zap.String("booking_id", b.ID.String()),
		zap.String("reference", b.Reference),
		zap.String("tour_id", t.ID.String()),
		zap.Int("guests", b.Guests),
		zap.String("total", b.TotalPrice.StringFixed(2)))
	s.publish(ctx, b)

	resp := ToBookingResponse(b)
	return &resp, nil
}

// applyOffer redeems the quoted offer. An auto-applied offer that ran out
// concurrently is skipped; an exhausted promo code fails the checkout.
func (s *BookingService) applyOffer(ctx context.Context, tenantID uuid.UUID, b *booking.Booking, c *offer.Candidate, promoCode string) error {
	if err := s.offers.Redeem(ctx, tenantID, c.Offer.ID); err != nil {
		if errors.Is(err, shared.ErrOfferExhausted) && promoCode == "" {
			return nil
		}
		return err
	}
	code := ""
	if promoCode != "" {
		code = offer.NormalizeCode(promoCode)
	}
	if err := b.ApplyDiscount(c.Offer.ID, code, c.DiscountAmount); err != nil {
		s.unredeem(ctx, tenantID, c.Offer.ID)
		return err
	}
	return nil
}

func (s *BookingService) unredeem(ctx context.Context, tenantID, offerID uuid.UUID) {
	if err := s.offers.Unredeem(ctx, tenantID, offerID); err != nil {
		s.logger.Error("Failed to release offer usage",
			zap.String("offer_id", offerID.String()),
			zap.Error(err))
	}
}

// Confirm moves a pending booking to confirmed from the back office
func (s *BookingService) Confirm(ctx context.Context, tenantID, id uuid.UUID) (*BookingResponse, error) {
	b, err := s.bookingRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := b.Confirm("", s.now()); err != nil {
		return nil, err
	}
	return s.save(ctx, b)
}

// ConfirmPayment confirms a booking paid through a payment intent. A
// redelivered payment for an already confirmed booking is a no-op.
func (s *BookingService) ConfirmPayment(ctx context.Context, bookingID uuid.UUID, paymentIntentID string) (*BookingResponse, error) {
	b, err := s.bookingRepo.FindByIDAnyTenant(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status != booking.StatusPending && b.PaymentIntentID == paymentIntentID {
		resp := ToBookingResponse(b)
		return &resp, nil
	}
	if err := b.Confirm(paymentIntentID, s.now()); err != nil {
		return nil, err
	}
	return s.save(ctx, b)
}

// Cancel cancels a pending or confirmed booking and returns its seats.
// Concurrent and repeated cancels are collapsed: the first caller claims
// the booking, later callers get the booking back unchanged.
func (s *BookingService) Cancel(ctx context.Context, tenantID, id uuid.UUID, actor Actor, req CancelRequest) (*BookingResponse, error) {
	b, err := s.bookingRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if !actor.Admin && !b.IsOwnedBy(actor.UserID) {
		return nil, shared.ErrNotFound
	}

	key := cancelClaimKey(b.ID)
	claimed, err := s.claims.MarkProcessed(ctx, key, cancelClaimTTL)
	if err != nil {
		s.logger.Warn("Cancel claim unavailable, continuing without it",
			zap.String("booking_id", b.ID.String()),
			zap.Error(err))
		claimed = true
	}
	if !claimed {
		resp := ToBookingResponse(b)
		return &resp, nil
	}

	by := booking.CancelledByCustomer
	if actor.Admin {
		by = booking.CancelledByAdmin
	}
	held := b.HoldsSeats()
	if err := b.Cancel(by, req.Reason, s.now()); err != nil {
		s.dropClaim(ctx, key)
		return nil, err
	}
	if err := s.bookingRepo.Save(ctx, b); err != nil {
		s.dropClaim(ctx, key)
		return nil, err
	}
	if held {
		s.releaseSeats(ctx, b)
	}

	s.logger.Info("Booking cancelled",
		zap.String("booking_id", b.ID.String()),
		zap.String("cancelled_by", by),
		zap.Int("refund_percentage", b.RefundPercentage))
	s.publish(ctx, b)

	resp := ToBookingResponse(b)
	return &resp, nil
}

// Refund returns money for a cancelled or confirmed booking
func (s *BookingService) Refund(ctx context.Context, tenantID, id uuid.UUID, req RefundRequest) (*BookingResponse, error) {
	b, err := s.bookingRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return s.refund(ctx, b, req.Percentage)
}

// RefundPayment records a refund issued at the payment provider.
// amountRefunded and amount are in minor units.
func (s *BookingService) RefundPayment(ctx context.Context, paymentIntentID string, amountRefunded, amount int64) (*BookingResponse, error) {
	b, err := s.bookingRepo.FindByPaymentIntent(ctx, paymentIntentID)
	if err != nil {
		return nil, err
	}
	if b.Status == booking.StatusRefunded || b.Status == booking.StatusPartialRefunded {
		resp := ToBookingResponse(b)
		return &resp, nil
	}
	pct := 100
	if amount > 0 && amountRefunded < amount {
		pct = int(decimal.NewFromInt(amountRefunded * 100).Div(decimal.NewFromInt(amount)).Round(0).IntPart())
		if pct < 1 {
			pct = 1
		}
	}
	return s.refund(ctx, b, &pct)
}

func (s *BookingService) refund(ctx context.Context, b *booking.Booking, pct *int) (*BookingResponse, error) {
	held := b.HoldsSeats()
	if err := b.Refund(pct, s.now()); err != nil {
		return nil, err
	}
	if err := s.bookingRepo.Save(ctx, b); err != nil {
		return nil, err
	}
	if held {
		s.releaseSeats(ctx, b)
	}
	s.logger.Info("Booking refunded",
		zap.String("booking_id", b.ID.String()),
		zap.String("status", string(b.Status)),
		zap.String("refund_amount", b.RefundAmount.StringFixed(2)))
	s.publish(ctx, b)

	resp := ToBookingResponse(b)
	return &resp, nil
}

// Complete marks a confirmed booking as completed
func (s *BookingService) Complete(ctx context.Context, tenantID, id uuid.UUID) (*BookingResponse, error) {
	b, err := s.bookingRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := b.Complete(s.now()); err != nil {
		return nil, err
	}
	return s.save(ctx, b)
}

// Get returns a booking. Customers only see their own bookings.
func (s *BookingService) Get(ctx context.Context, tenantID, id uuid.UUID, actor Actor) (*BookingResponse, error) {
	b, err := s.bookingRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if !actor.Admin && !b.IsOwnedBy(actor.UserID) {
		return nil, shared.ErrNotFound
	}
	resp := ToBookingResponse(b)
	return &resp, nil
}

// GetByReference returns a booking by its human reference
func (s *BookingService) GetByReference(ctx context.Context, tenantID uuid.UUID, reference string) (*BookingResponse, error) {
	b, err := s.bookingRepo.FindByReference(ctx, tenantID, strings.ToUpper(strings.TrimSpace(reference)))
	if err != nil {
		return nil, err
	}
	resp := ToBookingResponse(b)
	return &resp, nil
}

// ListMine lists the bookings of one customer
func (s *BookingService) ListMine(ctx context.Context, tenantID, userID uuid.UUID, filter BookingListFilter) (*shared.Paginated[BookingResponse], error) {
	f, err := filter.toFilter()
	if err != nil {
		return nil, err
	}
	f.Filters[booking.FilterUserID] = userID
	return s.list(ctx, tenantID, f)
}

// ListAdmin lists the tenant's bookings for the back office
func (s *BookingService) ListAdmin(ctx context.Context, tenantID uuid.UUID, filter BookingListFilter) (*shared.Paginated[BookingResponse], error) {
	f, err := filter.toFilter()
	if err != nil {
		return nil, err
	}
	return s.list(ctx, tenantID, f)
}

func (s *BookingService) list(ctx context.Context, tenantID uuid.UUID, f shared.Filter) (*shared.Paginated[BookingResponse], error) {
	items, err := s.bookingRepo.FindAll(ctx, tenantID, f)
	if err != nil {
		return nil, err
	}
	total, err := s.bookingRepo.Count(ctx, tenantID, f)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(ToBookingResponses(items), total, f.Page, f.PageSize)
	return &page, nil
}

func (s *BookingService) save(ctx context.Context, b *booking.Booking) (*BookingResponse, error) {
	if err := s.bookingRepo.Save(ctx, b); err != nil {
		return nil, err
	}
	s.logger.Info("Booking status changed",
		zap.String("booking_id", b.ID.String()),
		zap.String("status", string(b.Status)))
	s.publish(ctx, b)
	resp := ToBookingResponse(b)
	return &resp, nil
}

// releaseSeats returns the booking's seats to the tour owner's calendar.
// Failures are logged; the booking change is already stored.
func (s *BookingService) releaseSeats(ctx context.Context, b *booking.Booking) {
	t, err := s.tourRepo.FindByID(ctx, b.TourID)
	if err != nil {
		s.logger.Warn("Tour of cancelled booking not found, seats not released",
			zap.String("booking_id", b.ID.String()),
			zap.Error(err))
		return
	}
	if err := s.seats.Release(ctx, t.TenantID, t.ID, b.Date, b.SlotTime, b.Guests); err != nil {
		s.logger.Error("Failed to release seats",
			zap.String("booking_id", b.ID.String()),
			zap.Error(err))
	}
}

func (s *BookingService) dropClaim(ctx context.Context, key string) {
	if err := s.claims.Release(ctx, key); err != nil {
		s.logger.Warn("Failed to drop cancel claim", zap.String("key", key), zap.Error(err))
	}
}

func (s *BookingService) publish(ctx context.Context, b *booking.Booking) {
	events := b.PullDomainEvents()
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish booking events",
			zap.String("booking_id", b.ID.String()),
			zap.Strings("event_types", shared.EventTypesOf(events)),
			zap.Error(err))
	}
}

func cancelClaimKey(id uuid.UUID) string {
	return "booking:cancel:" + id.String()
}
