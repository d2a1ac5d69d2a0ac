package offer

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

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestService(repo *MockOfferRepository, tours stubTours) *OfferService {
	svc := NewOfferService(repo, tours, zap.NewNop())
	svc.now = func() time.Time { return testNow }
	return svc
}

func newTestTour(t *testing.T, tenantID uuid.UUID, price int64) *catalog.Tour {
	t.Helper()
	tour, err := catalog.NewTour(tenantID, "Harbour Cruise", decimal.NewFromInt(price), "EUR")
	require.NoError(t, err)
	require.NoError(t, tour.SetBookingOptions([]catalog.BookingOption{
		{ID: "private", Type: "private", Label: "Private boat", Price: decimal.NewFromInt(300)},
	}))
	return tour
}

func mustOffer(t *testing.T, tenantID uuid.UUID, p offer.NewOfferParams) *offer.SpecialOffer {
	t.Helper()
	if p.StartDate.IsZero() {
		p.StartDate = testNow.AddDate(0, 0, -7)
		p.EndDate = testNow.AddDate(0, 1, 0)
	}
	o, err := offer.NewSpecialOffer(tenantID, p)
	require.NoError(t, err)
	return o
}

func TestOfferService_Create(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	valid := OfferRequest{
		Name:             "Spring code",
		Type:             "promo_code",
		DiscountKind:     "fixed",
		DiscountValue:    decimal.NewFromInt(15),
		PromoCode:        " spring15 ",
		StartDate:        testNow,
		EndDate:          testNow.AddDate(0, 2, 0),
		BlackoutDates:    []string{"2025-06-10"},
		TravelDateRanges: []DateRangeInput{{From: "2025-06-01", To: "2025-08-31"}},
		MinGroupSize:     2,
	}

	t.Run("creates promo offer with travel rules", func(t *testing.T) {
		repo := new(MockOfferRepository)
		repo.On("ExistsByPromoCode", ctx, tenantID, "SPRING15", mock.Anything).Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*offer.SpecialOffer")).Return(nil)
		svc := newTestService(repo, nil)

		resp, err := svc.Create(ctx, tenantID, valid)
		require.NoError(t, err)
		assert.Equal(t, "SPRING15", resp.PromoCode)
		assert.Equal(t, "fixed", resp.DiscountKind)
		assert.Equal(t, []string{"2025-06-10"}, resp.BlackoutDates)
		assert.Len(t, resp.TravelDateRanges, 1)
		assert.True(t, resp.IsActive)
	})

	t.Run("rejects duplicate promo code", func(t *testing.T) {
		repo := new(MockOfferRepository)
		repo.On("ExistsByPromoCode", ctx, tenantID, "SPRING15", mock.Anything).Return(true, nil)
		svc := newTestService(repo, nil)

		_, err := svc.Create(ctx, tenantID, valid)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "PROMO_CODE_TAKEN", domainErr.Code)
	})

	t.Run("rejects inverted travel range", func(t *testing.T) {
		repo := new(MockOfferRepository)
		svc := newTestService(repo, nil)
		req := valid
		req.TravelDateRanges = []DateRangeInput{{From: "2025-08-31", To: "2025-06-01"}}

		_, err := svc.Create(ctx, tenantID, req)
		require.Error(t, err)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestOfferService_ForTour(t *testing.T) {
	ctx := context.Background()
	brand := tenant.Config{TenantID: uuid.New()}
	tour := newTestTour(t, uuid.New(), 100)

	pct := mustOffer(t, brand.TenantID, offer.NewOfferParams{Name: "Ten", Type: offer.OfferTypePercentage, DiscountValue: decimal.NewFromInt(10), Priority: 5})
	fixed := mustOffer(t, brand.TenantID, offer.NewOfferParams{Name: "Fifty", Type: offer.OfferTypeFixed, DiscountValue: decimal.NewFromInt(50)})
	groupOnly := mustOffer(t, brand.TenantID, offer.NewOfferParams{Name: "Group", Type: offer.OfferTypePercentage, DiscountValue: decimal.NewFromInt(40), Priority: 9})
	require.NoError(t, groupOnly.SetTravelRules(nil, nil, 4))

	repo := new(MockOfferRepository)
	repo.On("FindLive", ctx, brand.TenantID, testNow).Return([]offer.SpecialOffer{*pct, *fixed, *groupOnly}, nil)
	svc := newTestService(repo, stubTours{tour.ID: tour})

	t.Run("priority beats saving", func(t *testing.T) {
		resp, err := svc.ForTour(ctx, brand, tour.ID, nil, "", 2)
		require.NoError(t, err)
		require.NotNil(t, resp.Best)
		assert.Equal(t, "Ten", resp.Best.Name)
		assert.True(t, decimal.NewFromInt(90).Equal(resp.BestPrice))
		assert.Len(t, resp.Qualifying, 2)
	})

	t.Run("group size unlocks higher priority offer", func(t *testing.T) {
		resp, err := svc.ForTour(ctx, brand, tour.ID, nil, "private", 4)
		require.NoError(t, err)
		assert.Equal(t, "Group", resp.Best.Name)
		assert.True(t, decimal.NewFromInt(300).Equal(resp.BasePrice))
		assert.True(t, decimal.NewFromInt(180).Equal(resp.BestPrice))
	})

	t.Run("unknown tour", func(t *testing.T) {
		_, err := svc.ForTour(ctx, brand, uuid.New(), nil, "", 0)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestOfferService_VerifyPromo(t *testing.T) {
	ctx := context.Background()
	brand := tenant.Config{TenantID: uuid.New()}
	tour := newTestTour(t, brand.TenantID, 100)
	limit := 1
	code := mustOffer(t, brand.TenantID, offer.NewOfferParams{
		Name:          "Welcome",
		Type:          offer.OfferTypePromoCode,
		DiscountValue: decimal.NewFromInt(20),
		PromoCode:     "WELCOME",
		UsageLimit:    &limit,
	})
	code.SetTourRules(nil, nil, []string{"private"})

	repo := new(MockOfferRepository)
	repo.On("FindByPromoCode", ctx, brand.TenantID, "WELCOME").Return(code, nil)
	repo.On("FindByPromoCode", ctx, brand.TenantID, "NOPE").Return(nil, shared.ErrNotFound)
	svc := newTestService(repo, stubTours{tour.ID: tour})

	t.Run("matches case-insensitively and prices the group", func(t *testing.T) {
		applied, err := svc.VerifyPromo(ctx, brand, VerifyPromoRequest{Code: "welcome", TourID: tour.ID.String(), OptionID: "private", Guests: 2})
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(120).Equal(applied.DiscountAmount))
		assert.True(t, decimal.NewFromInt(480).Equal(applied.DiscountedPrice))
	})

	t.Run("option type restriction", func(t *testing.T) {
		_, err := svc.VerifyPromo(ctx, brand, VerifyPromoRequest{Code: "WELCOME", TourID: tour.ID.String(), OptionID: "", Guests: 1})
		// no option chosen skips the option type rule
		require.NoError(t, err)
	})

	t.Run("unknown code", func(t *testing.T) {
		_, err := svc.VerifyPromo(ctx, brand, VerifyPromoRequest{Code: "nope", TourID: tour.ID.String()})
		assert.ErrorIs(t, err, shared.ErrPromoCodeUnknown)
	})

	t.Run("exhausted code", func(t *testing.T) {
		code.UsedCount = 1
		defer func() { code.UsedCount = 0 }()
		_, err := svc.VerifyPromo(ctx, brand, VerifyPromoRequest{Code: "WELCOME", TourID: tour.ID.String()})
		assert.ErrorIs(t, err, shared.ErrOfferExhausted)
	})

	t.Run("bad date", func(t *testing.T) {
		_, err := svc.VerifyPromo(ctx, brand, VerifyPromoRequest{Code: "WELCOME", TourID: tour.ID.String(), Date: "06/01/2025"})
		require.Error(t, err)
	})
}

func TestOfferService_Redeem(t *testing.T) {
	ctx := context.Background()
	tenantID, offerID := uuid.New(), uuid.New()
	repo := new(MockOfferRepository)
	repo.On("IncrementUsage", ctx, tenantID, offerID).Return(shared.ErrOfferExhausted).Once()
	svc := newTestService(repo, nil)

	assert.ErrorIs(t, svc.Redeem(ctx, tenantID, offerID), shared.ErrOfferExhausted)

	repo.On("ReleaseUsage", ctx, tenantID, offerID).Return(nil).Once()
	require.NoError(t, svc.Unredeem(ctx, tenantID, offerID))
	repo.AssertExpectations(t)
}
