package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	catalogapp "github.com/travelhub/backend/internal/application/catalog"
	"github.com/travelhub/backend/internal/domain/shared"
	"github.com/travelhub/backend/internal/domain/tenant"
	"github.com/travelhub/backend/internal/interfaces/http/dto"
	"github.com/travelhub/backend/internal/interfaces/http/middleware"
)

type MockTourService struct {
	mock.Mock
}

func (m *MockTourService) ListPublic(ctx context.Context, cfg tenant.Config, filter catalogapp.TourListFilter) (*shared.Paginated[catalogapp.TourListItem], error) {
	args := m.Called(ctx, cfg, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[catalogapp.TourListItem]), args.Error(1)
}

func (m *MockTourService) GetPublicBySlug(ctx context.Context, cfg tenant.Config, slug string) (*catalogapp.TourResponse, error) {
	args := m.Called(ctx, cfg, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.TourResponse), args.Error(1)
}

func (m *MockTourService) ListAdmin(ctx context.Context, tenantID uuid.UUID, filter catalogapp.TourListFilter) (*shared.Paginated[catalogapp.TourResponse], error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[catalogapp.TourResponse]), args.Error(1)
}

func (m *MockTourService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*catalogapp.TourResponse, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.TourResponse), args.Error(1)
}

func (m *MockTourService) Create(ctx context.Context, tenantID uuid.UUID, req catalogapp.CreateTourRequest) (*catalogapp.TourResponse, error) {
	args := m.Called(ctx, tenantID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.TourResponse), args.Error(1)
}

func (m *MockTourService) Update(ctx context.Context, tenantID, id uuid.UUID, req catalogapp.UpdateTourRequest) (*catalogapp.TourResponse, error) {
	args := m.Called(ctx, tenantID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.TourResponse), args.Error(1)
}

func (m *MockTourService) Publish(ctx context.Context, tenantID, id uuid.UUID) (*catalogapp.TourResponse, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.TourResponse), args.Error(1)
}

func (m *MockTourService) Unpublish(ctx context.Context, tenantID, id uuid.UUID) (*catalogapp.TourResponse, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.TourResponse), args.Error(1)
}

func (m *MockTourService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func tourRouter(env testEnv, svc TourService) *gin.Engine {
	h := NewTourHandler(svc)
	r := env.router()
	r.GET("/api/tours/public", h.ListPublic)
	r.GET("/api/tours/public/:slug", h.GetPublic)

	admin := r.Group("/api/admin/tours", middleware.RequireAdmin())
	admin.GET("", h.List)
	admin.GET("/:id", h.Get)
	admin.POST("", h.Create)
	admin.PUT("/:id", h.Update)
	admin.POST("/:id/publish", h.Publish)
	admin.POST("/:id/unpublish", h.Unpublish)
	admin.DELETE("/:id", h.Delete)
	return r
}

func TestTourHandler_Public(t *testing.T) {
	env := newTestEnv()

	t.Run("lists published tours of the resolved tenant", func(t *testing.T) {
		svc := new(MockTourService)
		featured := true
		filter := catalogapp.TourListFilter{Search: "lisbon", Featured: &featured, Page: 1}
		page := shared.NewPaginated([]catalogapp.TourListItem{{
			Title: "Lisbon Food Walk",
			Slug:  "lisbon-food-walk",
			Price: decimal.NewFromInt(60),
			Offer: &catalogapp.OfferBadge{Badge: "-10%"},
		}}, 1, 1, 20)
		svc.On("ListPublic", mock.Anything, env.cfg, filter).Return(&page, nil)

		w := doRequest(tourRouter(env, svc), http.MethodGet, "/api/tours/public?search=lisbon&featured=true&page=1", "", nil)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var items []catalogapp.TourListItem
		decodeData(t, w, &items)
		require.Len(t, items, 1)
		assert.Equal(t, "lisbon-food-walk", items[0].Slug)
		require.NotNil(t, items[0].Offer)
		assert.Equal(t, "-10%", items[0].Offer.Badge)
		svc.AssertExpectations(t)
	})

	t.Run("rejects an unknown sort column", func(t *testing.T) {
		svc := new(MockTourService)
		w := doRequest(tourRouter(env, svc), http.MethodGet, "/api/tours/public?order_by=secret", "", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unpublished slug is not found", func(t *testing.T) {
		svc := new(MockTourService)
		svc.On("GetPublicBySlug", mock.Anything, env.cfg, "draft-tour").
			Return(nil, shared.NewDomainError("TOUR_NOT_FOUND", "Tour not found"))

		w := doRequest(tourRouter(env, svc), http.MethodGet, "/api/tours/public/draft-tour", "", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "ERR_TOUR_NOT_FOUND", decode(t, w).Error.Code)
	})
}

func TestTourHandler_Admin(t *testing.T) {
	env := newTestEnv()
	id := uuid.New()

	t.Run("anonymous callers are rejected", func(t *testing.T) {
		svc := new(MockTourService)
		w := doRequest(tourRouter(env, svc), http.MethodGet, "/api/admin/tours", "", nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("create", func(t *testing.T) {
		svc := new(MockTourService)
		svc.On("Create", mock.Anything, env.cfg.TenantID, mock.MatchedBy(func(req catalogapp.CreateTourRequest) bool {
			return req.Title == "Sintra Day Trip" && req.Price.Equal(decimal.NewFromInt(95)) && len(req.BookingOptions) == 1
		})).Return(&catalogapp.TourResponse{ID: id, Title: "Sintra Day Trip", Slug: "sintra-day-trip"}, nil)

		body := `{"title":"Sintra Day Trip","price":"95","booking_options":[{"type":"private","label":"Private","price":"250"}]}`
		w := doRequest(tourRouter(env, svc), http.MethodPost, "/api/admin/tours", adminToken, body)

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var got catalogapp.TourResponse
		decodeData(t, w, &got)
		assert.Equal(t, "sintra-day-trip", got.Slug)
		svc.AssertExpectations(t)
	})

	t.Run("create requires a title", func(t *testing.T) {
		svc := new(MockTourService)
		w := doRequest(tourRouter(env, svc), http.MethodPost, "/api/admin/tours", adminToken, `{"price":"10"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decode(t, w)
		require.NotEmpty(t, resp.Error.Details)
		assert.Equal(t, "title", resp.Error.Details[0].Field)
	})

	t.Run("partial update", func(t *testing.T) {
		svc := new(MockTourService)
		svc.On("Update", mock.Anything, env.cfg.TenantID, id, mock.MatchedBy(func(req catalogapp.UpdateTourRequest) bool {
			return req.Title != nil && *req.Title == "New title" && req.Price == nil
		})).Return(&catalogapp.TourResponse{ID: id, Title: "New title"}, nil)

		w := doRequest(tourRouter(env, svc), http.MethodPut, "/api/admin/tours/"+id.String(), adminToken, `{"title":"New title"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("publish and unpublish", func(t *testing.T) {
		svc := new(MockTourService)
		svc.On("Publish", mock.Anything, env.cfg.TenantID, id).Return(&catalogapp.TourResponse{ID: id, IsPublished: true}, nil)
		svc.On("Unpublish", mock.Anything, env.cfg.TenantID, id).Return(&catalogapp.TourResponse{ID: id}, nil)

		r := tourRouter(env, svc)
		w := doRequest(r, http.MethodPost, "/api/admin/tours/"+id.String()+"/publish", adminToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var got catalogapp.TourResponse
		decodeData(t, w, &got)
		assert.True(t, got.IsPublished)

		w = doRequest(r, http.MethodPost, "/api/admin/tours/"+id.String()+"/unpublish", adminToken, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("delete", func(t *testing.T) {
		svc := new(MockTourService)
		svc.On("Delete", mock.Anything, env.cfg.TenantID, id).Return(nil).Once()
		svc.On("Delete", mock.Anything, env.cfg.TenantID, id).
			Return(shared.NewDomainError("TOUR_HAS_BOOKINGS", "Tour has bookings")).Once()

		r := tourRouter(env, svc)
		w := doRequest(r, http.MethodDelete, "/api/admin/tours/"+id.String(), adminToken, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = doRequest(r, http.MethodDelete, "/api/admin/tours/"+id.String(), adminToken, nil)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "ERR_TOUR_HAS_BOOKINGS", decode(t, w).Error.Code)
	})

	t.Run("service failure is a 500", func(t *testing.T) {
		svc := new(MockTourService)
		svc.On("GetByID", mock.Anything, env.cfg.TenantID, id).Return(nil, assert.AnError)

		w := doRequest(tourRouter(env, svc), http.MethodGet, "/api/admin/tours/"+id.String(), adminToken, nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, dto.ErrCodeInternal, decode(t, w).Error.Code)
	})
}
