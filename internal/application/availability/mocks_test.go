package availability

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/travelhub/backend/internal/domain/availability"
	"github.com/travelhub/backend/internal/domain/catalog"
	"github.com/travelhub/backend/internal/domain/shared"
	"github.com/travelhub/backend/internal/domain/tenant"
)

// MockAvailabilityRepository is a mock implementation of availability.AvailabilityRepository
type MockAvailabilityRepository struct {
	mock.Mock
}

func (m *MockAvailabilityRepository) FindByTourAndDate(ctx context.Context, tenantID, tourID uuid.UUID, date time.Time) (*availability.Availability, error) {
	args := m.Called(ctx, tenantID, tourID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*availability.Availability), args.Error(1)
}

func (m *MockAvailabilityRepository) FindByTourAndRange(ctx context.Context, tenantID, tourID uuid.UUID, from, to time.Time) ([]availability.Availability, error) {
	args := m.Called(ctx, tenantID, tourID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]availability.Availability), args.Error(1)
}

func (m *MockAvailabilityRepository) Save(ctx context.Context, a *availability.Availability) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAvailabilityRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockAvailabilityRepository) ReserveSlot(ctx context.Context, tenantID, tourID uuid.UUID, date time.Time, slotTime string, qty int) error {
	args := m.Called(ctx, tenantID, tourID, date, slotTime, qty)
	return args.Error(0)
}

func (m *MockAvailabilityRepository) ReleaseSlot(ctx context.Context, tenantID, tourID uuid.UUID, date time.Time, slotTime string, qty int) error {
	args := m.Called(ctx, tenantID, tourID, date, slotTime, qty)
	return args.Error(0)
}

// MockStopSaleRepository is a mock implementation of availability.StopSaleRepository
type MockStopSaleRepository struct {
	mock.Mock
}

func (m *MockStopSaleRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*availability.StopSale, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*availability.StopSale), args.Error(1)
}

func (m *MockStopSaleRepository) FindOverlapping(ctx context.Context, tenantID, tourID uuid.UUID, from, to time.Time) ([]availability.StopSale, error) {
	args := m.Called(ctx, tenantID, tourID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]availability.StopSale), args.Error(1)
}

func (m *MockStopSaleRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]availability.StopSale, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]availability.StopSale), args.Error(1)
}

func (m *MockStopSaleRepository) Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStopSaleRepository) Save(ctx context.Context, s *availability.StopSale) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStopSaleRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

type stubTours map[uuid.UUID]*catalog.Tour

func (s stubTours) GetPublic(_ context.Context, _ tenant.Config, id uuid.UUID) (*catalog.Tour, error) {
	if t, ok := s[id]; ok {
		return t, nil
	}
	return nil, shared.ErrNotFound
}
