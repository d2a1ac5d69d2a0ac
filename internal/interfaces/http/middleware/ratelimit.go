package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/travelhub/backend/internal/infrastructure/cache"
	"github.com/travelhub/backend/internal/infrastructure/logger"
	"github.com/travelhub/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// RateLimitKeyFunc derives the bucket a request is counted in
type RateLimitKeyFunc func(c *gin.Context) string

// ClientKey counts requests per tenant and client IP
func ClientKey(c *gin.Context) string {
	key := c.ClientIP()
	if t := c.GetString(logger.GinTenantKey); t != "" {
		key = t + ":" + key
	}
	return key
}

// RateLimit allows limit requests per window for each key. The counter is
// shared across instances when it is Redis-backed. Counter failures let the
// request through.
func RateLimit(counter cache.Counter, limit int, window time.Duration) gin.HandlerFunc {
	return RateLimitByKey(counter, limit, window, ClientKey)
}

// RateLimitByKey is RateLimit with a custom key extractor
func RateLimitByKey(counter cache.Counter, limit int, window time.Duration, keyFunc RateLimitKeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, err := counter.Hit(c.Request.Context(), keyFunc(c), window)
		if err != nil {
			logger.FromContext(c.Request.Context()).Warn("Rate limit counter unavailable", zap.Error(err))
			c.Next()
			return
		}

		remaining := int64(limit) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > int64(limit) {
			c.Header("Retry-After", strconv.Itoa(int(window.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeRateLimited,
				"Too many requests. Please try again later.",
				GetRequestID(c),
			))
			return
		}
		c.Next()
	}
}
