package content

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/travelhub/backend/internal/domain/content"
	"github.com/travelhub/backend/internal/domain/shared"
)

type MockHeroSlideRepository struct {
	mock.Mock
}

func (m *MockHeroSlideRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*content.HeroSlide, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*content.HeroSlide), args.Error(1)
}

func (m *MockHeroSlideRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID, activeOnly bool) ([]*content.HeroSlide, error) {
	args := m.Called(ctx, tenantID, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*content.HeroSlide), args.Error(1)
}

func (m *MockHeroSlideRepository) Save(ctx context.Context, s *content.HeroSlide) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockHeroSlideRepository) SaveAll(ctx context.Context, slides []*content.HeroSlide) error {
	args := m.Called(ctx, slides)
	return args.Error(0)
}

func (m *MockHeroSlideRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

type MockBlogPostRepository struct {
	mock.Mock
}

func (m *MockBlogPostRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*content.BlogPost, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*content.BlogPost), args.Error(1)
}

func (m *MockBlogPostRepository) FindBySlug(ctx context.Context, tenantID uuid.UUID, slug string, publishedOnly bool) (*content.BlogPost, error) {
	args := m.Called(ctx, tenantID, slug, publishedOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*content.BlogPost), args.Error(1)
}

func (m *MockBlogPostRepository) FindAll(ctx context.Context, tenantID uuid.UUID, publishedOnly bool, filter shared.Filter) ([]content.BlogPost, int64, error) {
	args := m.Called(ctx, tenantID, publishedOnly, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]content.BlogPost), args.Get(1).(int64), args.Error(2)
}

func (m *MockBlogPostRepository) ExistsBySlug(ctx context.Context, tenantID uuid.UUID, slug string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, tenantID, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBlogPostRepository) Save(ctx context.Context, p *content.BlogPost) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockBlogPostRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockBlogPostRepository) IncrementLikes(ctx context.Context, tenantID, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, id)
	return args.Get(0).(int64), args.Error(1)
}

type MockLikeLimiter struct {
	mock.Mock
}

func (m *MockLikeLimiter) Allow(ctx context.Context, key string, window time.Duration) (bool, error) {
	args := m.Called(ctx, key, window)
	return args.Bool(0), args.Error(1)
}
