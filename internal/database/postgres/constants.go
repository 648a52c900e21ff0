package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
)

// Error Messages - Profile Operations
const (
	ErrMsgFailedToLoadProfile   = "failed to load profile"
	ErrMsgFailedToInsertProfile = "failed to insert profile"
	ErrMsgFailedToUpdateProfile = "failed to update profile"
	ErrMsgFailedToOpenSQLDB     = "failed to open database/sql handle"
)

// Error Messages - Event Log
const (
	ErrMsgFailedToLogEvent      = "failed to log event"
	ErrMsgFailedToQueryEvents   = "failed to query events"
	ErrMsgFailedToCleanupEvents = "failed to clean up events"
)

// Error Formats
const (
	ErrFmtNotFound     = "%w: %s"
	ErrFmtAlreadyExist = "%w: %s already exists"
	ErrFmtStale        = "%w: %s is not at version %d"
)
