package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// managedEnv lists every variable the tests touch. t.Setenv restores them
// after each test; viper treats an empty value as unset.
var managedEnv = []string{
	"TRAVEL_APP_NAME",
	"TRAVEL_APP_ENV",
	"TRAVEL_APP_PORT",
	"TRAVEL_DATABASE_HOST",
	"TRAVEL_DATABASE_PORT",
	"TRAVEL_DATABASE_PASSWORD",
	"TRAVEL_DATABASE_MAX_OPEN_CONNS",
	"TRAVEL_DATABASE_MAX_IDLE_CONNS",
	"TRAVEL_JWT_SECRET",
	"TRAVEL_STRIPE_ENABLED",
	"TRAVEL_STRIPE_WEBHOOK_SECRET",
	"TRAVEL_STORAGE_ENABLED",
	"TRAVEL_STORAGE_BUCKET",
	"TRAVEL_MAIL_ENABLED",
	"TRAVEL_TENANT_DEFAULT_KEY",
	"TRAVEL_TENANT_CACHE_TTL",
	"TRAVEL_RATELIMIT_LIKE_WINDOW",
	"TRAVEL_HTTP_CORS_ALLOW_ORIGINS",
	"TRAVEL_TELEMETRY_PROFILING_ENABLED",
	"TRAVEL_TELEMETRY_PROFILING_SERVER_ADDRESS",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range managedEnv {
		t.Setenv(k, "")
	}
}

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv(t)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "travelhub-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "travelhub", cfg.Database.DBName)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, "default", cfg.Tenant.DefaultKey)
		assert.Equal(t, 5*time.Minute, cfg.Tenant.CacheTTL)
		assert.Equal(t, 24*time.Hour, cfg.RateLimit.LikeWindow)
		assert.Equal(t, []string{"/admin", "/api"}, cfg.Site.DisallowPaths)
		assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	})

	t.Run("loads values from environment variables with TRAVEL prefix", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("TRAVEL_APP_NAME", "travel-test")
		t.Setenv("TRAVEL_APP_PORT", "9000")
		t.Setenv("TRAVEL_DATABASE_HOST", "db.local")
		t.Setenv("TRAVEL_DATABASE_PORT", "5433")
		t.Setenv("TRAVEL_TENANT_DEFAULT_KEY", "acme")
		t.Setenv("TRAVEL_TENANT_CACHE_TTL", "30s")
		t.Setenv("TRAVEL_RATELIMIT_LIKE_WINDOW", "1h")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "travel-test", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "db.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "acme", cfg.Tenant.DefaultKey)
		assert.Equal(t, 30*time.Second, cfg.Tenant.CacheTTL)
		assert.Equal(t, time.Hour, cfg.RateLimit.LikeWindow)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("TRAVEL_DATABASE_MAX_OPEN_CONNS", "10")
		t.Setenv("TRAVEL_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("stripe requires a webhook secret", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("TRAVEL_STRIPE_ENABLED", "true")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "stripe.webhook_secret")

		t.Setenv("TRAVEL_STRIPE_WEBHOOK_SECRET", "whsec_test")
		_, err = Load()
		require.NoError(t, err)
	})

	t.Run("storage requires a bucket", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("TRAVEL_STORAGE_ENABLED", "true")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "storage.bucket")
	})

	t.Run("profiling requires a server address", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("TRAVEL_TELEMETRY_PROFILING_ENABLED", "true")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "telemetry.profiling.server_address")

		t.Setenv("TRAVEL_TELEMETRY_PROFILING_SERVER_ADDRESS", "http://pyroscope:4040")
		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.Telemetry.Profiling.Enabled)
		assert.Equal(t, "http://pyroscope:4040", cfg.Telemetry.Profiling.ServerAddress)
	})

	t.Run("mail requires an api key", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("TRAVEL_MAIL_ENABLED", "true")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "mail.api_key")
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	setValidProductionBase := func(t *testing.T) {
		clearEnv(t)
		t.Setenv("TRAVEL_APP_ENV", "production")
		t.Setenv("TRAVEL_JWT_SECRET", "this-is-a-very-secure-jwt-secret-key-32chars")
		t.Setenv("TRAVEL_DATABASE_PASSWORD", "secure-password")
	}

	t.Run("passes validation with valid production config", func(t *testing.T) {
		setValidProductionBase(t)

		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.App.IsProduction())
	})

	t.Run("requires jwt.secret in production", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("TRAVEL_JWT_SECRET", "")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret is required in production")
	})

	t.Run("requires jwt.secret at least 32 characters in production", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("TRAVEL_JWT_SECRET", "short-secret")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 32 characters")
	})

	t.Run("rejects default database password in production", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("TRAVEL_DATABASE_PASSWORD", "postgres")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password")
	})

	t.Run("rejects wildcard CORS in production", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("TRAVEL_HTTP_CORS_ALLOW_ORIGINS", "*")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cors_allow_origins")
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("generates valid DSN", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "testuser",
			Password: "testpass",
			DBName:   "testdb",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		assert.Contains(t, dsn, "localhost:5432")
		assert.Contains(t, dsn, "testuser")
		assert.Contains(t, dsn, "testdb")
		assert.Contains(t, dsn, "sslmode=disable")
	})

	t.Run("escapes special characters in password", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "user",
			Password: "pass@word#123",
			DBName:   "db",
			SSLMode:  "disable",
		}

		assert.Contains(t, cfg.DSN(), "pass%40word%23123")
	})
}
