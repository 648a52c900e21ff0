package sqlite

// Connection settings
const (
	driverName = "sqlite"
	dsnOptions = "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
)

// Error Messages
const (
	ErrMsgPathRequired          = "sqlite path is required"
	ErrMsgFailedToOpen          = "failed to open sqlite database"
	ErrMsgFailedToPing          = "failed to ping sqlite database"
	ErrMsgFailedToMigrate       = "failed to migrate sqlite database"
	ErrMsgFailedToLoadProfile   = "failed to load profile"
	ErrMsgFailedToSaveProfile   = "failed to save profile"
	ErrMsgFailedToEncodeProfile = "failed to encode profile"
)

// Error Messages - Event Log
const (
	ErrMsgFailedToLogEvent      = "failed to log event"
	ErrMsgFailedToQueryEvents   = "failed to query events"
	ErrMsgFailedToCleanupEvents = "failed to clean up events"
)

// Error Formats
const (
	ErrFmtNotFound = "%w: %s"
	ErrFmtStale    = "%w: %s is not at version %d"
)
