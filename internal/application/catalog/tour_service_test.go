package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/travelhub/backend/internal/domain/catalog"
	"github.com/travelhub/backend/internal/domain/offer"
	"github.com/travelhub/backend/internal/domain/shared"
	"github.com/travelhub/backend/internal/domain/tenant"
	"go.uber.org/zap"
)

type tourFixture struct {
	tours   *MockTourRepository
	cats    *MockCategoryRepository
	dests   *MockDestinationRepository
	offers  *MockOfferRepository
	service *TourService
	now     time.Time
}

func newTourFixture(scope catalog.Scope) *tourFixture {
	f := &tourFixture{
		tours:  new(MockTourRepository),
		cats:   new(MockCategoryRepository),
		dests:  new(MockDestinationRepository),
		offers: new(MockOfferRepository),
		now:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	f.service = NewTourService(f.tours, f.cats, f.dests, f.offers, fixedScoper{scope: scope}, zap.NewNop())
	f.service.now = func() time.Time { return f.now }
	return f
}

func newPublishedTour(t *testing.T, tenantID uuid.UUID, title string, price int64) catalog.Tour {
	t.Helper()
	tour, err := catalog.NewTour(tenantID, title, decimal.NewFromInt(price), "EUR")
	require.NoError(t, err)
	require.NoError(t, tour.Publish())
	return *tour
}

func newOffer(t *testing.T, tenantID uuid.UUID, name string, typ offer.OfferType, value int64, priority int, now time.Time) offer.SpecialOffer {
	t.Helper()
	var code string
	if typ == offer.OfferTypePromoCode {
		code = "SAVE10"
	}
	o, err := offer.NewSpecialOffer(tenantID, offer.NewOfferParams{
		Name:          name,
		Type:          typ,
		DiscountValue: decimal.NewFromInt(value),
		PromoCode:     code,
		StartDate:     now.AddDate(0, 0, -1),
		EndDate:       now.AddDate(0, 0, 30),
		Priority:      priority,
	})
	require.NoError(t, err)
	return *o
}

func TestTourService_ListPublic(t *testing.T) {
	ctx := context.Background()
	defaultID := uuid.New()
	brand := tenant.Config{TenantID: uuid.New(), Key: "brand"}

	t.Run("inherited tours carry the requesting tenant's best offer", func(t *testing.T) {
		scope := catalog.Scope{TenantID: defaultID, PublishedOnly: true, Inherited: true}
		f := newTourFixture(scope)
		tours := []catalog.Tour{
			newPublishedTour(t, defaultID, "Lisbon Walk", 100),
			newPublishedTour(t, defaultID, "Porto Wine", 50),
		}
		offers := []offer.SpecialOffer{
			newOffer(t, brand.TenantID, "Summer", offer.OfferTypePercentage, 10, 1, f.now),
			newOffer(t, brand.TenantID, "Flat", offer.OfferTypeFixed, 30, 1, f.now),
			newOffer(t, brand.TenantID, "Code", offer.OfferTypePromoCode, 90, 9, f.now),
		}
		f.tours.On("FindInScope", ctx, scope, mock.Anything).Return(tours, nil)
		f.tours.On("CountInScope", ctx, scope, mock.Anything).Return(int64(2), nil)
		f.offers.On("FindLive", ctx, brand.TenantID, f.now).Return(offers, nil)

		page, err := f.service.ListPublic(ctx, brand, TourListFilter{})
		require.NoError(t, err)
		require.Len(t, page.Items, 2)
		assert.Equal(t, int64(2), page.Total)

		// 30 off beats 10% of 100; promo codes never show as badges
		require.NotNil(t, page.Items[0].Offer)
		assert.Equal(t, "Flat", page.Items[0].Offer.Name)
		assert.True(t, decimal.NewFromInt(70).Equal(page.Items[0].Offer.DiscountedPrice))
		assert.Equal(t, "Flat", page.Items[1].Offer.Name)
		assert.True(t, decimal.NewFromInt(20).Equal(page.Items[1].Offer.DiscountedPrice))
		f.offers.AssertNotCalled(t, "FindLive", ctx, defaultID, mock.Anything)
	})

	t.Run("offer lookup failure only hides badges", func(t *testing.T) {
		scope := catalog.Scope{TenantID: brand.TenantID, PublishedOnly: true}
		f := newTourFixture(scope)
		f.tours.On("FindInScope", ctx, scope, mock.Anything).Return([]catalog.Tour{newPublishedTour(t, brand.TenantID, "Own Tour", 40)}, nil)
		f.tours.On("CountInScope", ctx, scope, mock.Anything).Return(int64(1), nil)
		f.offers.On("FindLive", ctx, brand.TenantID, f.now).Return(nil, assert.AnError)

		page, err := f.service.ListPublic(ctx, brand, TourListFilter{})
		require.NoError(t, err)
		assert.Nil(t, page.Items[0].Offer)
	})

	t.Run("filters are passed to the repository", func(t *testing.T) {
		scope := catalog.Scope{TenantID: brand.TenantID, PublishedOnly: true}
		f := newTourFixture(scope)
		catID := uuid.New()
		matchFilter := mock.MatchedBy(func(sf shared.Filter) bool {
			_, published := sf.Filters[catalog.FilterPublished]
			return sf.Filters[catalog.FilterCategoryID] == catID &&
				sf.Filters[catalog.FilterMinPrice].(decimal.Decimal).Equal(decimal.NewFromInt(20)) &&
				!published && sf.Search == "wine" && sf.PageSize == 5
		})
		f.tours.On("FindInScope", ctx, scope, matchFilter).Return([]catalog.Tour{}, nil)
		f.tours.On("CountInScope", ctx, scope, matchFilter).Return(int64(0), nil)
		f.offers.On("FindLive", ctx, brand.TenantID, f.now).Return([]offer.SpecialOffer{}, nil)

		published := false
		_, err := f.service.ListPublic(ctx, brand, TourListFilter{
			Search:     "wine",
			CategoryID: catID.String(),
			MinPrice:   "20",
			Published:  &published,
			PageSize:   5,
		})
		require.NoError(t, err)
		f.tours.AssertExpectations(t)
	})
}

func TestTourService_GetPublicBySlug(t *testing.T) {
	ctx := context.Background()
	cfg := tenant.Config{TenantID: uuid.New()}
	scope := catalog.Scope{TenantID: cfg.TenantID, PublishedOnly: true}
	f := newTourFixture(scope)
	f.tours.On("FindBySlug", ctx, scope, "missing").Return(nil, shared.ErrNotFound)

	_, err := f.service.GetPublicBySlug(ctx, cfg, "missing")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestTourService_Create(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("suffixes a generated slug that is taken", func(t *testing.T) {
		f := newTourFixture(catalog.Scope{})
		f.tours.On("ExistsBySlug", ctx, tenantID, "sunset-cruise", mock.Anything).Return(true, nil)
		f.tours.On("ExistsBySlug", ctx, tenantID, "sunset-cruise-2", mock.Anything).Return(false, nil)
		f.tours.On("Save", ctx, mock.AnythingOfType("*catalog.Tour")).Return(nil)

		resp, err := f.service.Create(ctx, tenantID, CreateTourRequest{
			Title:   "Sunset Cruise",
			Price:   decimal.NewFromInt(80),
			Publish: true,
		})
		require.NoError(t, err)
		assert.Equal(t, "sunset-cruise-2", resp.Slug)
		assert.True(t, resp.IsPublished)
	})

	t.Run("rejects a taken explicit slug", func(t *testing.T) {
		f := newTourFixture(catalog.Scope{})
		f.tours.On("ExistsBySlug", ctx, tenantID, "cruise", mock.Anything).Return(true, nil)

		_, err := f.service.Create(ctx, tenantID, CreateTourRequest{Title: "Sunset Cruise", Slug: "cruise", Price: decimal.NewFromInt(80)})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "SLUG_TAKEN", domainErr.Code)
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		f := newTourFixture(catalog.Scope{})
		catID := uuid.New()
		f.tours.On("ExistsBySlug", ctx, tenantID, mock.Anything, mock.Anything).Return(false, nil)
		f.cats.On("FindByID", ctx, tenantID, catID).Return(nil, shared.ErrNotFound)

		_, err := f.service.Create(ctx, tenantID, CreateTourRequest{
			Title:       "Sunset Cruise",
			Price:       decimal.NewFromInt(80),
			CategoryIDs: []uuid.UUID{catID},
		})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CATEGORY", domainErr.Code)
		f.tours.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestTourService_Update(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	f := newTourFixture(catalog.Scope{})
	tour := newPublishedTour(t, tenantID, "Old Title", 100)
	discount := decimal.NewFromInt(80)
	require.NoError(t, tour.SetPrice(tour.Price, &discount))

	f.tours.On("FindByIDInScope", ctx, catalog.AdminScope(tenantID), tour.ID).Return(&tour, nil)
	f.tours.On("Save", ctx, &tour).Return(nil)

	title := "New Title"
	featured := true
	resp, err := f.service.Update(ctx, tenantID, tour.ID, UpdateTourRequest{
		Title:         &title,
		ClearDiscount: true,
		IsFeatured:    &featured,
	})
	require.NoError(t, err)
	assert.Equal(t, "New Title", resp.Title)
	assert.Equal(t, "old-title", resp.Slug)
	assert.Nil(t, resp.DiscountPrice)
	assert.True(t, resp.IsFeatured)
}

func TestTourService_PublishLifecycle(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	f := newTourFixture(catalog.Scope{})
	tour := newPublishedTour(t, tenantID, "City Tour", 10)
	f.tours.On("FindByIDInScope", ctx, catalog.AdminScope(tenantID), tour.ID).Return(&tour, nil)
	f.tours.On("Save", ctx, &tour).Return(nil)

	_, err := f.service.Publish(ctx, tenantID, tour.ID)
	assert.Error(t, err)

	resp, err := f.service.Unpublish(ctx, tenantID, tour.ID)
	require.NoError(t, err)
	assert.False(t, resp.IsPublished)

	resp, err = f.service.AttachImages(ctx, tenantID, tour.ID, []string{"https://cdn.example.com/a.jpg"})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn.example.com/a.jpg"}, resp.Images)
}
