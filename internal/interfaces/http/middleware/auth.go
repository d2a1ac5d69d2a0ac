package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	identityapp "github.com/travelhub/backend/internal/application/identity"
	"github.com/travelhub/backend/internal/domain/identity"
	"github.com/travelhub/backend/internal/domain/shared"
	"github.com/travelhub/backend/internal/infrastructure/auth"
	"github.com/travelhub/backend/internal/infrastructure/logger"
	"github.com/travelhub/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

const (
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "

	principalKey = "principal"
	claimsKey    = "jwt_claims"
)

// Authenticator turns a bearer token into a principal
type Authenticator interface {
	Authenticate(ctx context.Context, tenantID uuid.UUID, bearer string) (*identityapp.Principal, *auth.Claims, error)
}

// Authenticate attaches the caller to the request when an Authorization
// header is present. Requests without one continue anonymously; a header
// that does not carry a valid token is rejected with 401. The token must
// belong to the resolved tenant unless the caller is a super admin.
func Authenticate(authn Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(AuthHeaderKey)
		if header == "" {
			c.Next()
			return
		}
		if !strings.HasPrefix(header, BearerPrefix) {
			abortUnauthorized(c, dto.ErrCodeTokenInvalid, "Invalid authorization header format")
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
		if token == "" {
			abortUnauthorized(c, dto.ErrCodeTokenInvalid, "Missing token")
			return
		}

		tenantID := GetTenantID(c)
		principal, claims, err := authn.Authenticate(c.Request.Context(), tenantID, token)
		if err != nil {
			code := dto.ErrCodeUnauthorized
			var domainErr *shared.DomainError
			if errors.As(err, &domainErr) {
				code = dto.NormalizeErrorCode(domainErr.Code)
			} else {
				logger.FromContext(c.Request.Context()).Warn("Authentication failed", zap.Error(err))
			}
			abortUnauthorized(c, code, "Authentication failed")
			return
		}
		if principal.TenantID != tenantID && principal.Role != identity.RoleSuperAdmin {
			abortUnauthorized(c, dto.ErrCodeTokenInvalid, "Token was issued for another tenant")
			return
		}

		c.Set(principalKey, principal)
		if claims != nil {
			c.Set(claimsKey, claims)
		}

		ctx := logger.WithUserID(c.Request.Context(), principal.UserID.String())
		ctx = logger.WithContext(ctx, logger.FromContext(ctx).With(zap.String("user_id", principal.UserID.String())))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireAuth rejects anonymous requests
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetPrincipal(c); !ok {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Authentication required")
			return
		}
		c.Next()
	}
}

// RequireAdmin allows admins and super admins
func RequireAdmin() gin.HandlerFunc {
	return requireRole(func(p *identityapp.Principal) bool { return p.IsAdmin() })
}

// RequireSuperAdmin allows super admins only
func RequireSuperAdmin() gin.HandlerFunc {
	return requireRole(func(p *identityapp.Principal) bool { return p.Role == identity.RoleSuperAdmin })
}

func requireRole(allowed func(*identityapp.Principal) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := GetPrincipal(c)
		if !ok {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Authentication required")
			return
		}
		if !allowed(p) {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeForbidden,
				"Insufficient permissions",
				GetRequestID(c),
			))
			return
		}
		c.Next()
	}
}

// GetPrincipal returns the authenticated caller, if any
func GetPrincipal(c *gin.Context) (*identityapp.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil, false
	}
	p, ok := v.(*identityapp.Principal)
	return p, ok && p != nil
}

// GetClaims returns the JWT claims of the caller. Firebase sessions have none.
func GetClaims(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}

func abortUnauthorized(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(code, message, GetRequestID(c)))
}
