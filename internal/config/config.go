package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/osse101/brandish-progression/internal/logger"
)

// Config holds the process configuration. Game tuning lives in the catalog.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`
	Version     string `env:"APP_VERSION" envDefault:"dev"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"text"`

	Port            int           `env:"PORT" envDefault:"8080"`
	APIKey          string        `env:"API_KEY"`
	TrustedProxies  []string      `env:"TRUSTED_PROXIES" envSeparator:","`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	StoreDriver    string        `env:"STORE_DRIVER" envDefault:"memory"`
	DatabaseURL    string        `env:"DATABASE_URL"`
	DBMaxConns     int           `env:"DB_MAX_CONNS" envDefault:"10"`
	DBMaxConnIdle  time.Duration `env:"DB_MAX_CONN_IDLE" envDefault:"1m"`
	DBMaxConnLife  time.Duration `env:"DB_MAX_CONN_LIFE" envDefault:"30m"`
	SQLitePath     string        `env:"SQLITE_PATH" envDefault:"data/profiles.db"`
	SQLiteCompress bool          `env:"SQLITE_COMPRESS" envDefault:"true"`

	CatalogPath      string        `env:"CATALOG_PATH"`
	ProfileCacheSize int           `env:"PROFILE_CACHE_SIZE" envDefault:"1000"`
	ProfileCacheTTL  time.Duration `env:"PROFILE_CACHE_TTL" envDefault:"5m"`
	MaxRetries       int           `env:"PROFILE_MAX_RETRIES" envDefault:"3"`

	EventMaxRetries         int           `env:"EVENT_MAX_RETRIES" envDefault:"5"`
	EventRetryDelay         time.Duration `env:"EVENT_RETRY_DELAY" envDefault:"2s"`
	EventDeadLetterPath     string        `env:"EVENT_DEAD_LETTER_PATH" envDefault:"data/deadletter.jsonl"`
	EventLogRetention       time.Duration `env:"EVENT_LOG_RETENTION" envDefault:"720h"`
	EventLogCleanupInterval time.Duration `env:"EVENT_LOG_CLEANUP_INTERVAL" envDefault:"1h"`

	OTELEnabled  bool   `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint string `env:"OTEL_ENDPOINT"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgParseEnv, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Addr returns the HTTP listen address
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// IsProduction reports whether the process runs in production
func (c *Config) IsProduction() bool {
	return c.Environment == logger.EnvironmentProduction || c.Environment == "production"
}

// LoggerConfig derives the logger configuration
func (c *Config) LoggerConfig() logger.Config {
	return logger.NewConfig(c.LogLevel, c.LogFormat, logger.DefaultServiceName, c.Version, c.Environment, !c.IsProduction())
}
