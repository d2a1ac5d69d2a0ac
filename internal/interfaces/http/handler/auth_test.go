package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/travelhub/backend/internal/application/identity"
	"github.com/travelhub/backend/internal/domain/shared"
	"github.com/travelhub/backend/internal/infrastructure/auth"
	"github.com/travelhub/backend/internal/interfaces/http/dto"
	"github.com/travelhub/backend/internal/interfaces/http/middleware"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, input identity.RegisterInput) (*identity.AuthResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.AuthResult), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, input identity.LoginInput) (*identity.AuthResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.AuthResult), args.Error(1)
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (*identity.AuthResult, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.AuthResult), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, input identity.LogoutInput) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}

func (m *MockAuthService) Me(ctx context.Context, userID uuid.UUID) (*identity.UserInfo, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.UserInfo), args.Error(1)
}

// jwtAuthenticator hands out the principal together with token claims
type jwtAuthenticator struct {
	principal *identity.Principal
	claims    *auth.Claims
}

func (a jwtAuthenticator) Authenticate(context.Context, uuid.UUID, string) (*identity.Principal, *auth.Claims, error) {
	return a.principal, a.claims, nil
}

func authRoutes(r *gin.Engine, svc AuthService) {
	h := NewAuthHandler(svc)
	r.POST("/api/auth/register", h.Register)
	r.POST("/api/auth/login", h.Login)
	r.POST("/api/auth/refresh", h.Refresh)
	r.POST("/api/auth/logout", middleware.RequireAuth(), h.Logout)
	r.GET("/api/auth/me", middleware.RequireAuth(), h.Me)
}

func authResult(p *identity.Principal) *identity.AuthResult {
	return &identity.AuthResult{
		User:         identity.UserInfo{ID: p.UserID, TenantID: p.TenantID, Email: p.Email, Role: string(p.Role)},
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
	}
}

func TestAuthHandler_Register(t *testing.T) {
	env := newTestEnv()

	t.Run("registers on the resolved tenant", func(t *testing.T) {
		svc := new(MockAuthService)
		svc.On("Register", mock.Anything, identity.RegisterInput{
			TenantID: env.cfg.TenantID,
			Email:    "jane@example.com",
			Password: "s3cret-pass",
			Name:     "Jane",
		}).Return(authResult(env.customer), nil)

		r := env.router()
		authRoutes(r, svc)
		w := doRequest(r, http.MethodPost, "/api/auth/register", "", RegisterRequest{
			Email: "jane@example.com", Password: "s3cret-pass", Name: "Jane",
		})

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var got identity.AuthResult
		decodeData(t, w, &got)
		assert.Equal(t, "access", got.AccessToken)
		assert.Equal(t, "customer", got.User.Role)
		svc.AssertExpectations(t)
	})

	t.Run("short password", func(t *testing.T) {
		svc := new(MockAuthService)
		r := env.router()
		authRoutes(r, svc)
		w := doRequest(r, http.MethodPost, "/api/auth/register", "", `{"email":"jane@example.com","password":"short"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decode(t, w)
		require.Len(t, resp.Error.Details, 1)
		assert.Equal(t, "password", resp.Error.Details[0].Field)
	})

	t.Run("email taken", func(t *testing.T) {
		svc := new(MockAuthService)
		svc.On("Register", mock.Anything, mock.Anything).
			Return(nil, shared.NewDomainError("EMAIL_TAKEN", "An account with this email already exists"))

		r := env.router()
		authRoutes(r, svc)
		w := doRequest(r, http.MethodPost, "/api/auth/register", "", RegisterRequest{Email: "jane@example.com", Password: "s3cret-pass"})

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "ERR_EMAIL_TAKEN", decode(t, w).Error.Code)
	})
}

func TestAuthHandler_LoginAndRefresh(t *testing.T) {
	env := newTestEnv()

	svc := new(MockAuthService)
	svc.On("Login", mock.Anything, identity.LoginInput{
		TenantID: env.cfg.TenantID, Email: "jane@example.com", Password: "right-password",
	}).Return(authResult(env.customer), nil)
	svc.On("Login", mock.Anything, identity.LoginInput{
		TenantID: env.cfg.TenantID, Email: "jane@example.com", Password: "wrong-password",
	}).Return(nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password"))
	svc.On("Refresh", mock.Anything, "refresh").Return(authResult(env.customer), nil)
	svc.On("Refresh", mock.Anything, "revoked").Return(nil, shared.NewDomainError("TOKEN_REVOKED", "Token has been revoked"))

	r := env.router()
	authRoutes(r, svc)

	w := doRequest(r, http.MethodPost, "/api/auth/login", "", LoginRequest{Email: "jane@example.com", Password: "right-password"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodPost, "/api/auth/login", "", LoginRequest{Email: "jane@example.com", Password: "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, dto.ErrCodeUnauthorized, decode(t, w).Error.Code)

	w = doRequest(r, http.MethodPost, "/api/auth/refresh", "", RefreshTokenRequest{RefreshToken: "refresh"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodPost, "/api/auth/refresh", "", RefreshTokenRequest{RefreshToken: "revoked"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, dto.ErrCodeTokenInvalid, decode(t, w).Error.Code)

	w = doRequest(r, http.MethodPost, "/api/auth/refresh", "", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertExpectations(t)
}

func TestAuthHandler_Logout(t *testing.T) {
	env := newTestEnv()

	t.Run("revokes the presented token", func(t *testing.T) {
		claims := &auth.Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ID:        "jti-1",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(10 * time.Minute)),
			},
		}
		svc := new(MockAuthService)
		svc.On("Logout", mock.Anything, mock.MatchedBy(func(in identity.LogoutInput) bool {
			return in.UserID == env.customer.UserID && in.JTI == "jti-1" &&
				in.TokenTTL > 9*time.Minute && in.TokenTTL <= 10*time.Minute && !in.AllDevice
		})).Return(nil)

		r := gin.New()
		r.Use(middleware.ResolveTenant(fixedResolver{cfg: env.cfg}))
		r.Use(middleware.Authenticate(jwtAuthenticator{principal: env.customer, claims: claims}))
		authRoutes(r, svc)

		w := doRequest(r, http.MethodPost, "/api/auth/logout", "any", nil)

		assert.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
		svc.AssertExpectations(t)
	})

	t.Run("all devices", func(t *testing.T) {
		svc := new(MockAuthService)
		svc.On("Logout", mock.Anything, identity.LogoutInput{UserID: env.customer.UserID, AllDevice: true}).Return(nil)

		r := env.router()
		authRoutes(r, svc)
		w := doRequest(r, http.MethodPost, "/api/auth/logout", customerToken, `{"all_devices":true}`)

		assert.Equal(t, http.StatusNoContent, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("requires a token", func(t *testing.T) {
		svc := new(MockAuthService)
		r := env.router()
		authRoutes(r, svc)
		w := doRequest(r, http.MethodPost, "/api/auth/logout", "", nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthHandler_Me(t *testing.T) {
	env := newTestEnv()
	svc := new(MockAuthService)
	svc.On("Me", mock.Anything, env.customer.UserID).
		Return(&identity.UserInfo{ID: env.customer.UserID, Email: env.customer.Email, Name: "Jane"}, nil)

	r := env.router()
	authRoutes(r, svc)

	w := doRequest(r, http.MethodGet, "/api/auth/me", customerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got identity.UserInfo
	decodeData(t, w, &got)
	assert.Equal(t, "Jane", got.Name)

	w = doRequest(r, http.MethodGet, "/api/auth/me", "unknown-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, dto.ErrCodeTokenInvalid, decode(t, w).Error.Code)
}
