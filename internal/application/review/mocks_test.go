package review

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/travelhub/backend/internal/domain/catalog"
	"github.com/travelhub/backend/internal/domain/review"
	"github.com/travelhub/backend/internal/domain/shared"
	"github.com/travelhub/backend/internal/domain/tenant"
)

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*review.Review, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*review.Review), args.Error(1)
}

func (m *MockReviewRepository) FindApprovedByTour(ctx context.Context, tourID uuid.UUID, filter shared.Filter) ([]review.Review, int64, error) {
	args := m.Called(ctx, tourID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]review.Review), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]review.Review, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]review.Review), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewRepository) ExistsForUser(ctx context.Context, tenantID, userID, tourID uuid.UUID) (bool, error) {
	args := m.Called(ctx, tenantID, userID, tourID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReviewRepository) SummarizeTour(ctx context.Context, tourID uuid.UUID) (review.Summary, error) {
	args := m.Called(ctx, tourID)
	return args.Get(0).(review.Summary), args.Error(1)
}

func (m *MockReviewRepository) Save(ctx context.Context, r *review.Review) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReviewRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

type MockTravelHistory struct {
	mock.Mock
}

func (m *MockTravelHistory) HasCompletedBooking(ctx context.Context, tenantID, userID, tourID uuid.UUID) (bool, error) {
	args := m.Called(ctx, tenantID, userID, tourID)
	return args.Bool(0), args.Error(1)
}

type MockRatingWriter struct {
	mock.Mock
}

func (m *MockRatingWriter) UpdateRating(ctx context.Context, id uuid.UUID, avg float64, count int) error {
	args := m.Called(ctx, id, avg, count)
	return args.Error(0)
}

type stubTours map[uuid.UUID]*catalog.Tour

func (s stubTours) GetPublic(_ context.Context, _ tenant.Config, id uuid.UUID) (*catalog.Tour, error) {
	if t, ok := s[id]; ok {
		return t, nil
	}
	return nil, shared.ErrNotFound
}
