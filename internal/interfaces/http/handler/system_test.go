package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func healthRouter(checks map[string]HealthCheck) *gin.Engine {
	h := NewSystemHandler("1.2.3", checks)
	r := gin.New()
	r.GET("/health", h.Health)
	return r
}

func TestSystemHandler_Health(t *testing.T) {
	ok := func(context.Context) error { return nil }

	t.Run("all dependencies up", func(t *testing.T) {
		w := doRequest(healthRouter(map[string]HealthCheck{"database": ok, "redis": ok}), http.MethodGet, "/health", "", nil)

		require.Equal(t, http.StatusOK, w.Code)
		var got HealthResponse
		decodeData(t, w, &got)
		assert.Equal(t, "ok", got.Status)
		assert.Equal(t, "1.2.3", got.Version)
		assert.Equal(t, map[string]string{"database": "ok", "redis": "ok"}, got.Checks)
	})

	t.Run("a failing dependency degrades the service", func(t *testing.T) {
		down := func(context.Context) error { return errors.New("dial tcp: connection refused") }
		w := doRequest(healthRouter(map[string]HealthCheck{"database": ok, "redis": down}), http.MethodGet, "/health", "", nil)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		resp := decode(t, w)
		assert.False(t, resp.Success)
		assert.Contains(t, string(resp.Data), `"redis":"down"`)
		assert.Contains(t, string(resp.Data), `"status":"degraded"`)
	})

	t.Run("checks see a deadline", func(t *testing.T) {
		var hasDeadline bool
		probe := func(ctx context.Context) error {
			_, hasDeadline = ctx.Deadline()
			return nil
		}
		w := doRequest(healthRouter(map[string]HealthCheck{"database": probe}), http.MethodGet, "/health", "", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, hasDeadline)
	})
}
