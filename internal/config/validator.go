package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/osse101/brandish-progression/internal/logger"
)

// Validate checks the driver-specific requirements and value ranges
func (c *Config) Validate() error {
	var errs []error

	switch c.StoreDriver {
	case StoreMemory:
	case StorePostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New(ErrMsgDatabaseURLMissing))
		}
		if c.DBMaxConns <= 0 {
			errs = append(errs, fmt.Errorf(ErrFmtPositive, "DB_MAX_CONNS", c.DBMaxConns))
		}
	case StoreSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			errs = append(errs, errors.New(ErrMsgSQLitePathMissing))
		}
	default:
		errs = append(errs, fmt.Errorf(ErrFmtUnknownDriver, c.StoreDriver))
	}

	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf(ErrFmtInvalidPort, c.Port))
	}
	if f := strings.ToLower(c.LogFormat); f != logger.LogFormatText && f != logger.LogFormatJSON {
		errs = append(errs, fmt.Errorf(ErrFmtInvalidLogFormat, c.LogFormat))
	}
	if c.ProfileCacheSize <= 0 {
		errs = append(errs, fmt.Errorf(ErrFmtPositive, "PROFILE_CACHE_SIZE", c.ProfileCacheSize))
	}
	if c.MaxRetries <= 0 {
		errs = append(errs, fmt.Errorf(ErrFmtPositive, "PROFILE_MAX_RETRIES", c.MaxRetries))
	}
	if c.EventMaxRetries < 0 {
		errs = append(errs, fmt.Errorf(ErrFmtNonNegative, "EVENT_MAX_RETRIES", c.EventMaxRetries))
	}
	if c.EventLogCleanupInterval <= 0 {
		errs = append(errs, fmt.Errorf(ErrFmtPositiveDuration, "EVENT_LOG_CLEANUP_INTERVAL", c.EventLogCleanupInterval))
	}
	if c.IsProduction() && c.APIKey == "" {
		errs = append(errs, errors.New(ErrMsgAPIKeyMissing))
	}
	if c.OTELEnabled && c.OTELEndpoint == "" {
		errs = append(errs, errors.New(ErrMsgOTELEndpoint))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s: %w", ErrMsgInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// Warnings returns non-fatal configuration issues worth logging at startup
func (c *Config) Warnings() []string {
	var warnings []string
	if c.APIKey == "" {
		warnings = append(warnings, "API_KEY is empty - the HTTP API accepts unauthenticated requests")
	}
	if c.APIKey == ExampleAPIKey {
		warnings = append(warnings, "API_KEY appears to be using the example value - generate a secure key with: openssl rand -hex 32")
	}
	if c.StoreDriver == StoreMemory {
		warnings = append(warnings, "STORE_DRIVER=memory - profiles are lost on restart")
	}
	return warnings
}
