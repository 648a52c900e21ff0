package config

// Store drivers
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

// Error messages
const (
	ErrMsgParseEnv           = "parse env"
	ErrMsgInvalidConfig      = "invalid configuration"
	ErrFmtUnknownDriver      = "STORE_DRIVER must be one of memory, postgres, sqlite (got %q)"
	ErrFmtInvalidPort        = "PORT must be between 1 and 65535 (got %d)"
	ErrFmtInvalidLogFormat   = "LOG_FORMAT must be text or json (got %q)"
	ErrMsgDatabaseURLMissing = "DATABASE_URL is required for the postgres store"
	ErrMsgSQLitePathMissing  = "SQLITE_PATH is required for the sqlite store"
	ErrMsgAPIKeyMissing      = "API_KEY must be set in production"
	ErrMsgOTELEndpoint       = "OTEL_ENDPOINT is required when OTEL_ENABLED is true"
	ErrFmtPositive           = "%s must be positive (got %d)"
	ErrFmtNonNegative        = "%s must not be negative (got %d)"
	ErrFmtPositiveDuration   = "%s must be positive (got %s)"
)

// Insecure example values shipped in .env.example
const (
	ExampleAPIKey = "generate_with_openssl_rand_hex_32"
)
