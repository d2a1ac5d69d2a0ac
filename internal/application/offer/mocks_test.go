package offer

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/travelhub/backend/internal/domain/catalog"
	"github.com/travelhub/backend/internal/domain/offer"
	"github.com/travelhub/backend/internal/domain/shared"
	"github.com/travelhub/backend/internal/domain/tenant"
)

// MockOfferRepository is a mock implementation of offer.OfferRepository
type MockOfferRepository struct {
	mock.Mock
}

func (m *MockOfferRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*offer.SpecialOffer, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*offer.SpecialOffer), args.Error(1)
}

func (m *MockOfferRepository) FindByPromoCode(ctx context.Context, tenantID uuid.UUID, code string) (*offer.SpecialOffer, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*offer.SpecialOffer), args.Error(1)
}

func (m *MockOfferRepository) FindLive(ctx context.Context, tenantID uuid.UUID, now time.Time) ([]offer.SpecialOffer, error) {
	args := m.Called(ctx, tenantID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]offer.SpecialOffer), args.Error(1)
}

func (m *MockOfferRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]offer.SpecialOffer, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]offer.SpecialOffer), args.Error(1)
}

func (m *MockOfferRepository) Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOfferRepository) ExistsByPromoCode(ctx context.Context, tenantID uuid.UUID, code string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, tenantID, code, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockOfferRepository) Save(ctx context.Context, o *offer.SpecialOffer) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOfferRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockOfferRepository) IncrementUsage(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockOfferRepository) ReleaseUsage(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// stubTours serves tours from a map regardless of tenant
type stubTours map[uuid.UUID]*catalog.Tour

func (s stubTours) GetPublic(_ context.Context, _ tenant.Config, id uuid.UUID) (*catalog.Tour, error) {
	if t, ok := s[id]; ok {
		return t, nil
	}
	return nil, shared.ErrNotFound
}
