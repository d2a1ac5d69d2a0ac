package catalog

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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
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

func (m *MockTourRepository) Save(ctx context.Context, t *catalog.Tour) error {
	args := m.Called(ctx, t)
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

// MockCategoryRepository is a mock implementation of catalog.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Category, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]catalog.Category, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) ExistsBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (bool, error) {
	args := m.Called(ctx, tenantID, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockCategoryRepository) Save(ctx context.Context, c *catalog.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// MockDestinationRepository is a mock implementation of catalog.DestinationRepository
type MockDestinationRepository struct {
	mock.Mock
}

func (m *MockDestinationRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Destination, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Destination), args.Error(1)
}

func (m *MockDestinationRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]catalog.Destination, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Destination), args.Error(1)
}

func (m *MockDestinationRepository) ExistsBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (bool, error) {
	args := m.Called(ctx, tenantID, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockDestinationRepository) Save(ctx context.Context, d *catalog.Destination) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDestinationRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

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

// fixedScoper returns the same scope for every tenant
type fixedScoper struct {
	scope catalog.Scope
	err   error
}

func (f fixedScoper) Scope(_ context.Context, _ tenant.Config) (catalog.Scope, error) {
	return f.scope, f.err
}
