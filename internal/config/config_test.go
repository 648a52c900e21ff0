package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnvVars = []string{
	"ENVIRONMENT", "APP_VERSION", "LOG_LEVEL", "LOG_FORMAT", "PORT", "API_KEY", "SHUTDOWN_TIMEOUT",
	"STORE_DRIVER", "DATABASE_URL", "DB_MAX_CONNS", "DB_MAX_CONN_IDLE", "DB_MAX_CONN_LIFE",
	"SQLITE_PATH", "SQLITE_COMPRESS", "CATALOG_PATH", "PROFILE_CACHE_SIZE", "PROFILE_CACHE_TTL",
	"PROFILE_MAX_RETRIES", "OTEL_ENABLED", "OTEL_ENDPOINT", "TRUSTED_PROXIES",
	"EVENT_MAX_RETRIES", "EVENT_RETRY_DELAY", "EVENT_DEAD_LETTER_PATH", "EVENT_LOG_RETENTION",
	"EVENT_LOG_CLEANUP_INTERVAL",
}

// clearEnvVars unsets every variable Load reads and restores them after the test
func clearEnvVars(t *testing.T) {
	t.Helper()
	for _, key := range configEnvVars {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	// Keep a stray .env in the working directory out of the test
	t.Chdir(t.TempDir())
}

// TestLoad tests configuration loading from environment
func TestLoad(t *testing.T) {
	t.Run("loads config with defaults when no env vars set", func(t *testing.T) {
		clearEnvVars(t)

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Port, "Should use default port")
		assert.Equal(t, ":8080", cfg.Addr())
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, "dev", cfg.Environment)
		assert.Equal(t, StoreMemory, cfg.StoreDriver)
		assert.Equal(t, 5*time.Minute, cfg.ProfileCacheTTL)
		assert.Equal(t, 3, cfg.MaxRetries)
		assert.True(t, cfg.SQLiteCompress)
		assert.False(t, cfg.OTELEnabled)
		assert.Empty(t, cfg.TrustedProxies)
		assert.Equal(t, 5, cfg.EventMaxRetries)
		assert.Equal(t, 2*time.Second, cfg.EventRetryDelay)
		assert.Equal(t, 30*24*time.Hour, cfg.EventLogRetention)
	})

	t.Run("loads config from environment variables", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("PORT", "3000")
		t.Setenv("API_KEY", "custom-api-key")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("LOG_FORMAT", "json")
		t.Setenv("ENVIRONMENT", "prod")
		t.Setenv("STORE_DRIVER", "postgres")
		t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/progression")
		t.Setenv("PROFILE_CACHE_TTL", "30s")
		t.Setenv("TRUSTED_PROXIES", "10.0.0.1,10.0.0.2")
		t.Setenv("OTEL_ENABLED", "true")
		t.Setenv("OTEL_ENDPOINT", "http://collector:4318")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 3000, cfg.Port)
		assert.Equal(t, "custom-api-key", cfg.APIKey)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.True(t, cfg.IsProduction())
		assert.Equal(t, StorePostgres, cfg.StoreDriver)
		assert.Equal(t, 30*time.Second, cfg.ProfileCacheTTL)
		assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, cfg.TrustedProxies)
		assert.True(t, cfg.LoggerConfig().IsJSON())
		assert.False(t, cfg.LoggerConfig().AddSource)
	})

	t.Run("rejects unparsable values", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("PORT", "not-a-number")

		_, err := Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgParseEnv)
	})

	t.Run("reads a .env file", func(t *testing.T) {
		clearEnvVars(t)
		require.NoError(t, os.WriteFile(".env", []byte("PORT=9090\nSTORE_DRIVER=sqlite\n"), 0o600))

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 9090, cfg.Port)
		assert.Equal(t, StoreSQLite, cfg.StoreDriver)
		t.Cleanup(func() {
			os.Unsetenv("PORT")
			os.Unsetenv("STORE_DRIVER")
		})
	})
}
