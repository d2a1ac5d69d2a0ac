package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/travelhub/backend/internal/domain/tenant"
	"github.com/travelhub/backend/internal/infrastructure/logger"
	"github.com/travelhub/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

const tenantConfigKey = "tenant_config"

// TenantResolver maps request hints to the served tenant config
type TenantResolver interface {
	Resolve(ctx context.Context, hints tenant.Hints) tenant.Config
}

// ResolveTenant resolves the tenant of every request from the tenant query
// parameter, the X-Tenant-ID header, the tenant_id cookie or the host.
// Resolution never fails: unknown tenants get the fallback config.
func ResolveTenant(resolver TenantResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, _ := c.Cookie(tenant.CookieName)
		host := c.GetHeader("X-Forwarded-Host")
		if host == "" {
			host = c.Request.Host
		}

		cfg := resolver.Resolve(c.Request.Context(), tenant.Hints{
			Query:  c.Query(tenant.QueryParam),
			Header: c.GetHeader(tenant.HeaderName),
			Cookie: cookie,
			Host:   host,
		})

		c.Set(tenantConfigKey, cfg)
		c.Set(logger.GinTenantKey, cfg.Key)

		ctx := logger.WithTenant(c.Request.Context(), cfg.Key)
		ctx = logger.WithContext(ctx, logger.FromContext(ctx).With(zap.String("tenant", cfg.Key)))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// GetTenantConfig returns the config stored by ResolveTenant
func GetTenantConfig(c *gin.Context) (tenant.Config, bool) {
	v, ok := c.Get(tenantConfigKey)
	if !ok {
		return tenant.Config{}, false
	}
	cfg, ok := v.(tenant.Config)
	return cfg, ok
}

// GetTenantID returns the id of the resolved tenant, uuid.Nil when the
// request was served a fallback config without a stored tenant
func GetTenantID(c *gin.Context) uuid.UUID {
	cfg, _ := GetTenantConfig(c)
	return cfg.TenantID
}

// RequireStoredTenant rejects requests whose tenant has no active record.
// A fallback config carries the default tenant's id, so IsFallback decides.
func RequireStoredTenant() gin.HandlerFunc {
	return func(c *gin.Context) {
		cfg, ok := GetTenantConfig(c)
		if !ok || cfg.IsFallback || cfg.TenantID == uuid.Nil {
			c.AbortWithStatusJSON(http.StatusNotFound, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeNotFound,
				"Unknown tenant",
				GetRequestID(c),
			))
			return
		}
		c.Next()
	}
}
