package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/travelhub/backend/internal/infrastructure/logger"
	"github.com/travelhub/backend/internal/infrastructure/telemetry"
)

// ProfilingLabels tags profile samples of each request with its route
// pattern, method and tenant key. It must run after ResolveTenant.
func ProfilingLabels(enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enabled {
			c.Next()
			return
		}
		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		telemetry.WithProfilingLabels(c.Request.Context(), map[string]string{
			"route":  route,
			"method": c.Request.Method,
			"tenant": c.GetString(logger.GinTenantKey),
		}, func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}
