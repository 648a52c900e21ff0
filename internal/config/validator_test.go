package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() Config {
	return Config{
		Environment:      "dev",
		LogFormat:        "text",
		Port:             8080,
		StoreDriver:      StoreMemory,
		DBMaxConns:       10,
		SQLitePath:       "data/profiles.db",
		ProfileCacheSize: 100,
		MaxRetries:       3,

		EventLogCleanupInterval: time.Hour,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"unknown driver", func(c *Config) { c.StoreDriver = "redis" }, "STORE_DRIVER must be one of"},
		{"postgres without url", func(c *Config) { c.StoreDriver = StorePostgres }, ErrMsgDatabaseURLMissing},
		{"postgres with url", func(c *Config) { c.StoreDriver = StorePostgres; c.DatabaseURL = "postgres://x" }, ""},
		{"sqlite without path", func(c *Config) { c.StoreDriver = StoreSQLite; c.SQLitePath = " " }, ErrMsgSQLitePathMissing},
		{"port out of range", func(c *Config) { c.Port = 70000 }, "PORT must be between"},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }, "LOG_FORMAT must be"},
		{"zero retries", func(c *Config) { c.MaxRetries = 0 }, "PROFILE_MAX_RETRIES must be positive"},
		{"negative event retries", func(c *Config) { c.EventMaxRetries = -1 }, "EVENT_MAX_RETRIES must not be negative"},
		{"zero cleanup interval", func(c *Config) { c.EventLogCleanupInterval = 0 }, "EVENT_LOG_CLEANUP_INTERVAL must be positive"},
		{"production without api key", func(c *Config) { c.Environment = "prod" }, ErrMsgAPIKeyMissing},
		{"otel without endpoint", func(c *Config) { c.OTELEnabled = true }, ErrMsgOTELEndpoint},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := validConfig()
	cfg.Port = 0
	cfg.MaxRetries = -1

	err := cfg.Validate()

	assert.ErrorContains(t, err, "PORT must be between")
	assert.ErrorContains(t, err, "PROFILE_MAX_RETRIES must be positive")
}

func TestWarnings(t *testing.T) {
	cfg := validConfig()
	cfg.APIKey = ExampleAPIKey

	warnings := cfg.Warnings()

	assert.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], "example value")
}
