package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	availabilityapp "github.com/travelhub/backend/internal/application/availability"
	offerapp "github.com/travelhub/backend/internal/application/offer"
	"github.com/travelhub/backend/internal/domain/booking"
	"github.com/travelhub/backend/internal/domain/catalog"
	"github.com/travelhub/backend/internal/domain/offer"
	"github.com/travelhub/backend/internal/domain/shared"
	"github.com/travelhub/backend/internal/domain/tenant"
)

// MockBookingRepository is a mock implementation of booking.BookingRepository
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*booking.Booking, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindByIDAnyTenant(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindByReference(ctx context.Context, tenantID uuid.UUID, reference string) (*booking.Booking, error) {
	args := m.Called(ctx, tenantID, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindByPaymentIntent(ctx context.Context, paymentIntentID string) (*booking.Booking, error) {
	args := m.Called(ctx, paymentIntentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]booking.Booking, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]booking.Booking), args.Error(1)
}

func (m *MockBookingRepository) Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingRepository) Save(ctx context.Context, b *booking.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookingRepository) HasCompletedBooking(ctx context.Context, tenantID, userID, tourID uuid.UUID) (bool, error) {
	args := m.Called(ctx, tenantID, userID, tourID)
	return args.Bool(0), args.Error(1)
}

// MockTourRepository is a mock implementation of catalog.TourRepository
type MockTourRepository struct {
	mock.Mock
}

func (m *MockTourRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Tour, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Tour), args.Error(1)
}

func (m *MockTourRepository) FindByIDInScope(ctx context.Context, scope catalog.Scope, id uuid.UUID) (*catalog.Tour, error) {
	args := m.Called(ctx, scope, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Tour), args.Error(1)
}

func (m *MockTourRepository) FindBySlug(ctx context.Context, scope catalog.Scope, slug string) (*catalog.Tour, error) {
	args := m.Called(ctx, scope, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Tour), args.Error(1)
}

func (m *MockTourRepository) FindInScope(ctx context.Context, scope catalog.Scope, filter shared.Filter) ([]catalog.Tour, error) {
	args := m.Called(ctx, scope, filter)
	return args.Get(0).([]catalog.Tour), args.Error(1)
}

func (m *MockTourRepository) CountInScope(ctx context.Context, scope catalog.Scope, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, scope, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTourRepository) CountByTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTourRepository) ExistsBySlug(ctx context.Context, tenantID uuid.UUID, slug string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, tenantID, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTourRepository) Save(ctx context.Context, tour *catalog.Tour) error {
	args := m.Called(ctx, tour)
	return args.Error(0)
}

func (m *MockTourRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockTourRepository) UpdateRating(ctx context.Context, id uuid.UUID, avg float64, count int) error {
	args := m.Called(ctx, id, avg, count)
	return args.Error(0)
}

// MockSeatKeeper is a mock implementation of SeatKeeper
type MockSeatKeeper struct {
	mock.Mock
}

func (m *MockSeatKeeper) Reserve(ctx context.Context, t *catalog.Tour, date time.Time, slotTime, optionID string, qty int) (*availabilityapp.Reservation, error) {
	args := m.Called(ctx, t, date, slotTime, optionID, qty)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*availabilityapp.Reservation), args.Error(1)
}

func (m *MockSeatKeeper) Release(ctx context.Context, ownerID, tourID uuid.UUID, date time.Time, slotTime string, qty int) error {
	args := m.Called(ctx, ownerID, tourID, date, slotTime, qty)
	return args.Error(0)
}

// MockOfferPricer is a mock implementation of OfferPricer
type MockOfferPricer struct {
	mock.Mock
}

func (m *MockOfferPricer) Quote(ctx context.Context, tenantID uuid.UUID, in offerapp.QuoteInput) (*offer.Candidate, error) {
	args := m.Called(ctx, tenantID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*offer.Candidate), args.Error(1)
}

func (m *MockOfferPricer) Redeem(ctx context.Context, tenantID, offerID uuid.UUID) error {
	args := m.Called(ctx, tenantID, offerID)
	return args.Error(0)
}

func (m *MockOfferPricer) Unredeem(ctx context.Context, tenantID, offerID uuid.UUID) error {
	args := m.Called(ctx, tenantID, offerID)
	return args.Error(0)
}

// MockPaymentRecorder is a mock implementation of PaymentRecorder
type MockPaymentRecorder struct {
	mock.Mock
}

func (m *MockPaymentRecorder) ConfirmPayment(ctx context.Context, bookingID uuid.UUID, paymentIntentID string) (*BookingResponse, error) {
	args := m.Called(ctx, bookingID, paymentIntentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*BookingResponse), args.Error(1)
}

func (m *MockPaymentRecorder) RefundPayment(ctx context.Context, paymentIntentID string, amountRefunded, amount int64) (*BookingResponse, error) {
	args := m.Called(ctx, paymentIntentID, amountRefunded, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*BookingResponse), args.Error(1)
}

type stubTours map[uuid.UUID]*catalog.Tour

func (s stubTours) GetPublic(_ context.Context, _ tenant.Config, id uuid.UUID) (*catalog.Tour, error) {
	if t, ok := s[id]; ok {
		return t, nil
	}
	return nil, shared.ErrNotFound
}

type recordingPublisher struct {
	events []shared.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}

func (p *recordingPublisher) types() []string {
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.EventType()
	}
	return out
}
