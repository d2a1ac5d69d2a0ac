package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/travelhub/backend/internal/domain/identity"
	"github.com/travelhub/backend/internal/domain/shared"
	"github.com/travelhub/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// Principal sources
const (
	SourceJWT      = "jwt"
	SourceFirebase = "firebase"
)

var errInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")

// AuthService handles storefront sign-up, sign-in and bearer token checks
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	firebase   auth.IDTokenVerifier
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service. firebase may be nil
// when Firebase sign-in is not configured.
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	firebase auth.IDTokenVerifier,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		firebase:   firebase,
		logger:     logger,
	}
}

// Register creates a customer account in the tenant and signs it in
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, input.TenantID, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("EMAIL_TAKEN", "An account with this email already exists")
	}

	user, err := identity.NewUser(input.TenantID, input.Email, input.Password, input.Name, identity.RoleCustomer)
	if err != nil {
		return nil, err
	}
	user.RecordLogin(time.Now())
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("tenant_id", user.TenantID.String()))
	return s.issue(user)
}

// Login authenticates with email and password
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, input.TenantID, input.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}
	if !user.CanLogin() {
		s.logger.Warn("Login attempt for deactivated account", zap.String("user_id", user.ID.String()))
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}
	if !user.VerifyPassword(input.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("user_id", user.ID.String()))
		return nil, errInvalidCredentials
	}

	user.RecordLogin(time.Now())
	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to record login", zap.Error(err))
	}
	return s.issue(user)
}

// Refresh exchanges a refresh token for a new pair
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, mapTokenError(err)
	}
	if err := s.checkRevoked(ctx, claims); err != nil {
		return nil, err
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid user ID in token")
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}
	if !user.CanLogin() {
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}

	pair, old, err := s.jwtService.RefreshTokenPair(refreshToken, string(user.Role))
	if err != nil {
		return nil, mapTokenError(err)
	}
	// a refresh token is single use
	if err := s.blacklist.AddToBlacklist(ctx, old.ID, old.GetRemainingTTL()); err != nil {
		s.logger.Error("Failed to revoke used refresh token", zap.Error(err))
	}

	return toAuthResult(user, pair), nil
}

// Logout revokes the presented access token, or every token of the user
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	if input.AllDevice {
		if err := s.blacklist.AddUserTokensToBlacklist(ctx, input.UserID.String(), s.jwtService.GetRefreshTokenExpiration()); err != nil {
			return err
		}
	} else if input.JTI != "" {
		if err := s.blacklist.AddToBlacklist(ctx, input.JTI, input.TokenTTL); err != nil {
			return err
		}
	}
	s.logger.Info("User logged out",
		zap.String("user_id", input.UserID.String()),
		zap.Bool("all_devices", input.AllDevice))
	return nil
}

// Me returns the profile of the authenticated user
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	info := ToUserInfo(user)
	return &info, nil
}

// Authenticate turns a bearer token into a principal. Our own JWTs are
// tried first; anything else is verified as a Firebase ID token when
// Firebase is configured, creating the customer account on first sight.
func (s *AuthService) Authenticate(ctx context.Context, tenantID uuid.UUID, bearer string) (*Principal, *auth.Claims, error) {
	claims, err := s.jwtService.ValidateAccessToken(bearer)
	if err == nil {
		if err := s.checkRevoked(ctx, claims); err != nil {
			return nil, nil, err
		}
		p, err := principalFromClaims(claims)
		if err != nil {
			return nil, nil, err
		}
		return p, claims, nil
	}
	if s.firebase == nil || errors.Is(err, auth.ErrExpiredToken) {
		return nil, nil, mapTokenError(err)
	}

	id, ferr := s.firebase.VerifyIDToken(ctx, bearer)
	if ferr != nil {
		return nil, nil, mapTokenError(err)
	}
	user, err := s.userForFirebase(ctx, tenantID, id)
	if err != nil {
		return nil, nil, err
	}
	return &Principal{
		UserID:   user.ID,
		TenantID: user.TenantID,
		Email:    user.Email,
		Role:     user.Role,
		Source:   SourceFirebase,
	}, nil, nil
}

func (s *AuthService) userForFirebase(ctx context.Context, tenantID uuid.UUID, id *auth.ExternalIdentity) (*identity.User, error) {
	user, err := s.userRepo.FindByFirebaseUID(ctx, tenantID, id.UID)
	if err == nil {
		if !user.CanLogin() {
			return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
		}
		return user, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	// link an existing password account with the same verified email
	if id.Email != "" && id.EmailVerified {
		existing, err := s.userRepo.FindByEmail(ctx, tenantID, id.Email)
		if err == nil {
			existing.LinkFirebase(id.UID)
			if err := s.userRepo.Save(ctx, existing); err != nil {
				return nil, err
			}
			return existing, nil
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	}

	user, err = identity.NewFirebaseUser(tenantID, id.UID, id.Email, id.Name)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("Created user from Firebase identity",
		zap.String("user_id", user.ID.String()),
		zap.String("tenant_id", tenantID.String()))
	return user, nil
}

func (s *AuthService) checkRevoked(ctx context.Context, claims *auth.Claims) error {
	revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		s.logger.Error("Token blacklist unavailable", zap.Error(err))
		return err
	}
	if revoked {
		return shared.NewDomainError("TOKEN_REVOKED", "Token has been revoked")
	}
	invalidated, err := s.blacklist.IsUserTokenInvalidated(ctx, claims.UserID, claims.GetIssuedAtTime())
	if err != nil {
		return err
	}
	if invalidated {
		return shared.NewDomainError("TOKEN_REVOKED", "Token has been revoked")
	}
	return nil
}

func (s *AuthService) issue(user *identity.User) (*AuthResult, error) {
	pair, err := s.jwtService.GenerateTokenPair(auth.Subject{
		TenantID: user.TenantID,
		UserID:   user.ID,
		Email:    user.Email,
		Role:     string(user.Role),
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}
	return toAuthResult(user, pair), nil
}

func toAuthResult(user *identity.User, pair *auth.TokenPair) *AuthResult {
	return &AuthResult{
		User:                  ToUserInfo(user),
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
	}
}

func principalFromClaims(c *auth.Claims) (*Principal, error) {
	userID, err := c.GetUserUUID()
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid user ID in token")
	}
	tenantID, err := c.GetTenantUUID()
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid tenant ID in token")
	}
	return &Principal{
		UserID:   userID,
		TenantID: tenantID,
		Email:    c.Email,
		Role:     identity.Role(c.Role),
		Source:   SourceJWT,
	}, nil
}

func mapTokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return shared.NewDomainError("TOKEN_EXPIRED", "Token has expired")
	case errors.Is(err, auth.ErrMaxRefreshExceeded):
		return shared.NewDomainError("TOKEN_MAX_REFRESH", "Maximum token refresh count exceeded. Please log in again")
	default:
		return shared.NewDomainError("TOKEN_INVALID", "Invalid token")
	}
}
