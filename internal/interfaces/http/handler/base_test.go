package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	identityapp "github.com/travelhub/backend/internal/application/identity"
	"github.com/travelhub/backend/internal/domain/identity"
	"github.com/travelhub/backend/internal/domain/shared"
	"github.com/travelhub/backend/internal/domain/tenant"
	"github.com/travelhub/backend/internal/infrastructure/auth"
	"github.com/travelhub/backend/internal/interfaces/http/dto"
	"github.com/travelhub/backend/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

const (
	customerToken = "customer-token"
	adminToken    = "admin-token"
)

// testEnv holds the tenant and callers every handler test runs with
type testEnv struct {
	cfg      tenant.Config
	customer *identityapp.Principal
	admin    *identityapp.Principal
}

func newTestEnv() testEnv {
	tenantID := uuid.New()
	return testEnv{
		cfg: tenant.Config{
			TenantID: tenantID,
			Key:      "alpha",
			Name:     "Alpha Travel",
			Domain:   "alpha.example.com",
			Currency: "EUR",
			Locale:   "en",
		},
		customer: &identityapp.Principal{
			UserID:   uuid.New(),
			TenantID: tenantID,
			Email:    "jane@example.com",
			Role:     identity.RoleCustomer,
			Source:   "jwt",
		},
		admin: &identityapp.Principal{
			UserID:   uuid.New(),
			TenantID: tenantID,
			Email:    "admin@example.com",
			Role:     identity.RoleAdmin,
			Source:   "jwt",
		},
	}
}

type fixedResolver struct{ cfg tenant.Config }

func (r fixedResolver) Resolve(context.Context, tenant.Hints) tenant.Config { return r.cfg }

type tokenTable map[string]*identityapp.Principal

func (t tokenTable) Authenticate(_ context.Context, _ uuid.UUID, bearer string) (*identityapp.Principal, *auth.Claims, error) {
	p, ok := t[bearer]
	if !ok {
		return nil, nil, shared.NewDomainError("TOKEN_INVALID", "Invalid token")
	}
	return p, nil, nil
}

// router returns an engine with tenant resolution and authentication in
// front of the routes registered by the caller
func (e testEnv) router() *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.ResolveTenant(fixedResolver{cfg: e.cfg}))
	r.Use(middleware.Authenticate(tokenTable{customerToken: e.customer, adminToken: e.admin}))
	return r
}

// apiResponse mirrors dto.Response with data left raw for typed decoding
type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *dto.ErrorInfo  `json:"error"`
	Meta    *dto.Meta       `json:"meta"`
}

func doRequest(r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf *bytes.Buffer
	switch b := body.(type) {
	case nil:
		buf = &bytes.Buffer{}
	case string:
		buf = bytes.NewBufferString(b)
	default:
		raw, _ := json.Marshal(b)
		buf = bytes.NewBuffer(raw)
	}
	req := httptest.NewRequest(method, path, buf)
	if buf.Len() > 0 {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(middleware.AuthHeaderKey, middleware.BearerPrefix+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var resp apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	resp := decode(t, w)
	require.True(t, resp.Success, w.Body.String())
	require.NoError(t, json.Unmarshal(resp.Data, out))
}

func TestBaseHandler_HandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		expose     bool
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"not found", shared.ErrNotFound, false, http.StatusNotFound, dto.ErrCodeNotFound, "Resource not found"},
		{"domain not found suffix", shared.NewDomainError("TOUR_NOT_FOUND", "Tour not found"), false, http.StatusNotFound, "ERR_TOUR_NOT_FOUND", "Tour not found"},
		{"slot full", shared.ErrSlotFull, false, http.StatusConflict, dto.ErrCodeSlotFull, shared.ErrSlotFull.Message},
		{"promo code", shared.ErrPromoCodeUnknown, false, http.StatusUnprocessableEntity, dto.ErrCodePromoCodeInvalid, shared.ErrPromoCodeUnknown.Message},
		{"invalid date", shared.NewDomainError("INVALID_DATE", "bad date"), false, http.StatusBadRequest, "ERR_INVALID_DATE", "bad date"},
		{"slug taken", shared.NewDomainError("SLUG_TAKEN", "Slug in use"), false, http.StatusConflict, "ERR_SLUG_TAKEN", "Slug in use"},
		{"credentials", shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password"), false, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Invalid email or password"},
		{"wrapped domain error", errors.Join(errors.New("context"), shared.ErrInvalidState), false, http.StatusUnprocessableEntity, dto.ErrCodeInvalidState, shared.ErrInvalidState.Message},
		{"internal hidden", errors.New("pq: connection refused"), false, http.StatusInternalServerError, dto.ErrCodeInternal, "An unexpected error occurred"},
		{"internal exposed", errors.New("pq: connection refused"), true, http.StatusInternalServerError, dto.ErrCodeInternal, "pq: connection refused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &BaseHandler{}
			r := gin.New()
			r.Use(middleware.RequestID(), middleware.ExposeErrors(tt.expose))
			r.GET("/fail", func(c *gin.Context) { h.HandleError(c, tt.err) })

			w := doRequest(r, http.MethodGet, "/fail", "", nil)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decode(t, w)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.Equal(t, tt.wantMsg, resp.Error.Message)
			assert.NotEmpty(t, resp.Error.RequestID)
		})
	}
}

func TestBaseHandler_Responses(t *testing.T) {
	h := &BaseHandler{}
	r := gin.New()
	r.GET("/ok", func(c *gin.Context) { h.Success(c, gin.H{"name": "tour"}) })
	r.POST("/created", func(c *gin.Context) { h.Created(c, gin.H{"id": 1}) })
	r.DELETE("/gone", func(c *gin.Context) { h.NoContent(c) })
	r.GET("/page", func(c *gin.Context) {
		page := shared.NewPaginated([]string{"a", "b"}, 5, 1, 2)
		respondPage(c, &page)
	})
	r.GET("/empty", func(c *gin.Context) {
		page := shared.NewPaginated[string](nil, 0, 1, 20)
		respondPage(c, &page)
	})

	w := doRequest(r, http.MethodGet, "/ok", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":{"name":"tour"}}`, w.Body.String())

	w = doRequest(r, http.MethodPost, "/created", "", nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(r, http.MethodDelete, "/gone", "", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = doRequest(r, http.MethodGet, "/page", "", nil)
	resp := decode(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(5), resp.Meta.Total)
	assert.Equal(t, 3, resp.Meta.TotalPages)
	assert.JSONEq(t, `["a","b"]`, string(resp.Data))

	w = doRequest(r, http.MethodGet, "/empty", "", nil)
	assert.JSONEq(t, `[]`, string(decode(t, w).Data))
}

func TestBaseHandler_UUIDParam(t *testing.T) {
	h := &BaseHandler{}
	r := gin.New()
	r.GET("/items/:id", func(c *gin.Context) {
		id, ok := h.uuidParam(c, "id")
		if !ok {
			return
		}
		h.Success(c, id)
	})

	id := uuid.New()
	w := doRequest(r, http.MethodGet, "/items/"+id.String(), "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodGet, "/items/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode(t, w)
	assert.Equal(t, dto.ErrCodeInvalidInput, resp.Error.Code)
	assert.Equal(t, "Invalid id", resp.Error.Message)
}

func TestBaseHandler_Principal(t *testing.T) {
	env := newTestEnv()
	h := &BaseHandler{}
	r := env.router()
	r.GET("/whoami", func(c *gin.Context) {
		p, ok := h.principal(c)
		if !ok {
			return
		}
		h.Success(c, gin.H{"user_id": p.UserID, "tenant": h.tenantConfig(c).Key, "tenant_id": h.tenantID(c)})
	})

	w := doRequest(r, http.MethodGet, "/whoami", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(r, http.MethodGet, "/whoami", customerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got struct {
		UserID   uuid.UUID `json:"user_id"`
		Tenant   string    `json:"tenant"`
		TenantID uuid.UUID `json:"tenant_id"`
	}
	decodeData(t, w, &got)
	assert.Equal(t, env.customer.UserID, got.UserID)
	assert.Equal(t, "alpha", got.Tenant)
	assert.Equal(t, env.cfg.TenantID, got.TenantID)
}
