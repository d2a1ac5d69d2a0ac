package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/travelhub/backend/internal/domain/identity"
	"github.com/travelhub/backend/internal/domain/shared"
	"github.com/travelhub/backend/internal/infrastructure/auth"
	"github.com/travelhub/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*identity.User, error) {
	args := m.Called(ctx, tenantID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByFirebaseUID(ctx context.Context, tenantID uuid.UUID, uid string) (*identity.User, error) {
	args := m.Called(ctx, tenantID, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, tenantID uuid.UUID, email string) (bool, error) {
	args := m.Called(ctx, tenantID, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type stubVerifier struct {
	identity *auth.ExternalIdentity
	err      error
}

func (s *stubVerifier) VerifyIDToken(_ context.Context, _ string) (*auth.ExternalIdentity, error) {
	return s.identity, s.err
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-for-testing-only-32b",
		RefreshSecret:          "test-refresh-secret-for-testing-32b",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "travelhub-test",
		MaxRefreshCount:        5,
	})
}

func newTestService(repo *MockUserRepository, verifier auth.IDTokenVerifier) (*AuthService, auth.TokenBlacklist) {
	blacklist := auth.NewInMemoryTokenBlacklist()
	return NewAuthService(repo, newTestJWTService(), blacklist, verifier, zap.NewNop()), blacklist
}

func newTestUser(t *testing.T, tenantID uuid.UUID) *identity.User {
	t.Helper()
	u, err := identity.NewUser(tenantID, "jane@example.com", "secret123", "Jane", identity.RoleCustomer)
	require.NoError(t, err)
	return u
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("creates customer and returns tokens", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc, _ := newTestService(repo, nil)
		repo.On("ExistsByEmail", ctx, tenantID, "jane@example.com").Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

		result, err := svc.Register(ctx, RegisterInput{
			TenantID: tenantID,
			Email:    "jane@example.com",
			Password: "secret123",
			Name:     "Jane",
		})
		require.NoError(t, err)
		assert.Equal(t, "customer", result.User.Role)
		assert.Equal(t, tenantID, result.User.TenantID)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)
		repo.AssertExpectations(t)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc, _ := newTestService(repo, nil)
		repo.On("ExistsByEmail", ctx, tenantID, "jane@example.com").Return(true, nil)

		_, err := svc.Register(ctx, RegisterInput{TenantID: tenantID, Email: "jane@example.com", Password: "secret123"})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "EMAIL_TAKEN", domainErr.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects weak password", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc, _ := newTestService(repo, nil)
		repo.On("ExistsByEmail", ctx, tenantID, "jane@example.com").Return(false, nil)

		_, err := svc.Register(ctx, RegisterInput{TenantID: tenantID, Email: "jane@example.com", Password: "short"})
		require.Error(t, err)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("succeeds with valid credentials", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc, _ := newTestService(repo, nil)
		user := newTestUser(t, tenantID)
		repo.On("FindByEmail", ctx, tenantID, "jane@example.com").Return(user, nil)
		repo.On("Save", ctx, user).Return(nil)

		result, err := svc.Login(ctx, LoginInput{TenantID: tenantID, Email: "jane@example.com", Password: "secret123"})
		require.NoError(t, err)
		assert.Equal(t, user.ID, result.User.ID)
		assert.NotNil(t, user.LastLoginAt)
	})

	t.Run("unknown email and wrong password share one error", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc, _ := newTestService(repo, nil)
		user := newTestUser(t, tenantID)
		repo.On("FindByEmail", ctx, tenantID, "nobody@example.com").Return(nil, shared.ErrNotFound)
		repo.On("FindByEmail", ctx, tenantID, "jane@example.com").Return(user, nil)

		_, err1 := svc.Login(ctx, LoginInput{TenantID: tenantID, Email: "nobody@example.com", Password: "secret123"})
		_, err2 := svc.Login(ctx, LoginInput{TenantID: tenantID, Email: "jane@example.com", Password: "wrong-pass1"})
		assert.ErrorIs(t, err1, errInvalidCredentials)
		assert.ErrorIs(t, err2, errInvalidCredentials)
	})

	t.Run("rejects deactivated account", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc, _ := newTestService(repo, nil)
		user := newTestUser(t, tenantID)
		user.Deactivate()
		repo.On("FindByEmail", ctx, tenantID, "jane@example.com").Return(user, nil)

		_, err := svc.Login(ctx, LoginInput{TenantID: tenantID, Email: "jane@example.com", Password: "secret123"})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ACCOUNT_DEACTIVATED", domainErr.Code)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("issues new pair and revokes the used refresh token", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc, _ := newTestService(repo, nil)
		user := newTestUser(t, tenantID)
		repo.On("ExistsByEmail", ctx, tenantID, "jane@example.com").Return(false, nil)
		repo.On("Save", ctx, mock.Anything).Return(nil)
		repo.On("FindByID", ctx, mock.AnythingOfType("uuid.UUID")).Return(user, nil)

		first, err := svc.Register(ctx, RegisterInput{TenantID: tenantID, Email: "jane@example.com", Password: "secret123"})
		require.NoError(t, err)

		second, err := svc.Refresh(ctx, first.RefreshToken)
		require.NoError(t, err)
		assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

		_, err = svc.Refresh(ctx, first.RefreshToken)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "TOKEN_REVOKED", domainErr.Code)
	})

	t.Run("rejects an access token", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc, _ := newTestService(repo, nil)
		pair, err := newTestJWTService().GenerateTokenPair(auth.Subject{TenantID: tenantID, UserID: uuid.New(), Role: "customer"})
		require.NoError(t, err)

		_, err = svc.Refresh(ctx, pair.AccessToken)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "TOKEN_INVALID", domainErr.Code)
	})
}

func TestAuthService_Authenticate(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("accepts own access token", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc, _ := newTestService(repo, nil)
		userID := uuid.New()
		pair, err := newTestJWTService().GenerateTokenPair(auth.Subject{TenantID: tenantID, UserID: userID, Email: "a@b.co", Role: "admin"})
		require.NoError(t, err)

		p, claims, err := svc.Authenticate(ctx, tenantID, pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, userID, p.UserID)
		assert.Equal(t, SourceJWT, p.Source)
		assert.True(t, p.IsAdmin())
		assert.NotNil(t, claims)
	})

	t.Run("rejects a token revoked by logout", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc, _ := newTestService(repo, nil)
		userID := uuid.New()
		pair, err := newTestJWTService().GenerateTokenPair(auth.Subject{TenantID: tenantID, UserID: userID, Role: "customer"})
		require.NoError(t, err)
		_, claims, err := svc.Authenticate(ctx, tenantID, pair.AccessToken)
		require.NoError(t, err)

		require.NoError(t, svc.Logout(ctx, LogoutInput{UserID: userID, JTI: claims.ID, TokenTTL: time.Minute}))

		_, _, err = svc.Authenticate(ctx, tenantID, pair.AccessToken)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "TOKEN_REVOKED", domainErr.Code)
	})

	t.Run("rejects unknown token without firebase", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc, _ := newTestService(repo, nil)

		_, _, err := svc.Authenticate(ctx, tenantID, "not-a-token")
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "TOKEN_INVALID", domainErr.Code)
	})

	t.Run("creates customer on first firebase sign-in", func(t *testing.T) {
		repo := new(MockUserRepository)
		verifier := &stubVerifier{identity: &auth.ExternalIdentity{UID: "fb-1", Email: "new@example.com", Name: "New"}}
		svc, _ := newTestService(repo, verifier)
		repo.On("FindByFirebaseUID", ctx, tenantID, "fb-1").Return(nil, shared.ErrNotFound)
		repo.On("Save", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

		p, claims, err := svc.Authenticate(ctx, tenantID, "firebase-id-token")
		require.NoError(t, err)
		assert.Nil(t, claims)
		assert.Equal(t, SourceFirebase, p.Source)
		assert.Equal(t, identity.RoleCustomer, p.Role)
		assert.Equal(t, "new@example.com", p.Email)
		repo.AssertExpectations(t)
	})

	t.Run("links firebase uid to existing verified email", func(t *testing.T) {
		repo := new(MockUserRepository)
		verifier := &stubVerifier{identity: &auth.ExternalIdentity{UID: "fb-2", Email: "jane@example.com", EmailVerified: true}}
		svc, _ := newTestService(repo, verifier)
		user := newTestUser(t, tenantID)
		repo.On("FindByFirebaseUID", ctx, tenantID, "fb-2").Return(nil, shared.ErrNotFound)
		repo.On("FindByEmail", ctx, tenantID, "jane@example.com").Return(user, nil)
		repo.On("Save", ctx, user).Return(nil)

		p, _, err := svc.Authenticate(ctx, tenantID, "firebase-id-token")
		require.NoError(t, err)
		assert.Equal(t, user.ID, p.UserID)
		assert.Equal(t, "fb-2", user.FirebaseUID)
	})

	t.Run("firebase rejection reads as invalid token", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc, _ := newTestService(repo, &stubVerifier{err: errors.New("bad token")})

		_, _, err := svc.Authenticate(ctx, tenantID, "garbage")
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "TOKEN_INVALID", domainErr.Code)
	})
}

func TestAuthService_LogoutAllDevices(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	svc, blacklist := newTestService(repo, nil)
	userID := uuid.New()

	require.NoError(t, svc.Logout(ctx, LogoutInput{UserID: userID, AllDevice: true}))

	invalidated, err := blacklist.IsUserTokenInvalidated(ctx, userID.String(), time.Now().Add(-time.Minute))
	require.NoError(t, err)
	assert.True(t, invalidated)
}
