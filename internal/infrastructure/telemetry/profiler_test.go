package telemetry

import (
	"context"
	"runtime/pprof"
	"testing"

	"github.com/grafana/pyroscope-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNewProfiler(t *testing.T) {
	t.Run("disabled is a no-op", func(t *testing.T) {
		p, err := NewProfiler(ProfilerConfig{ServerAddress: "http://localhost:4040"}, zaptest.NewLogger(t))
		require.NoError(t, err)
		assert.False(t, p.IsEnabled())
		assert.NoError(t, p.Stop())
		assert.NoError(t, p.Stop())
	})

	t.Run("enabled needs a server and an application", func(t *testing.T) {
		_, err := NewProfiler(ProfilerConfig{Enabled: true, ApplicationName: "travelhub"}, zaptest.NewLogger(t))
		assert.ErrorContains(t, err, "server address is required")

		_, err = NewProfiler(ProfilerConfig{Enabled: true, ServerAddress: "http://localhost:4040"}, zaptest.NewLogger(t))
		assert.ErrorContains(t, err, "application name is required")
	})

	t.Run("unknown profile type fails before starting", func(t *testing.T) {
		_, err := NewProfiler(ProfilerConfig{
			Enabled:         true,
			ServerAddress:   "http://localhost:4040",
			ApplicationName: "travelhub",
			ProfileTypes:    []string{"cpu", "heap"},
		}, zaptest.NewLogger(t))
		assert.ErrorContains(t, err, `unknown profile type "heap"`)
	})
}

func TestParseProfileTypes(t *testing.T) {
	types, err := ParseProfileTypes(nil)
	require.NoError(t, err)
	assert.Equal(t, defaultProfileTypes, types)

	types, err = ParseProfileTypes([]string{" CPU ", "mutex_count"})
	require.NoError(t, err)
	assert.Equal(t, []pyroscope.ProfileType{pyroscope.ProfileCPU, pyroscope.ProfileMutexCount}, types)
}

func TestWithProfilingLabels(t *testing.T) {
	var route, tenantKey string
	var hasEmpty bool
	WithProfilingLabels(context.Background(), map[string]string{
		"route":  "/api/bookings",
		"tenant": "island",
		"empty":  "",
	}, func(ctx context.Context) {
		route, _ = pprof.Label(ctx, "route")
		tenantKey, _ = pprof.Label(ctx, "tenant")
		_, hasEmpty = pprof.Label(ctx, "empty")
	})

	assert.Equal(t, "/api/bookings", route)
	assert.Equal(t, "island", tenantKey)
	assert.False(t, hasEmpty)

	called := false
	WithProfilingLabels(context.Background(), nil, func(context.Context) { called = true })
	assert.True(t, called)
}
