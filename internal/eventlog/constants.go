package eventlog

import "time"

// Retention and paging defaults
const (
	DefaultRetention      = 30 * 24 * time.Hour
	DefaultHistoryLimit   = 50
	MaxHistoryLimit       = 500
	DefaultMemoryCapacity = 10000
)

// Log messages - service events
const (
	LogMsgActorMissing     = "Event payload carries no player, skipping log"
	LogMsgFailedToLogEvent = "Failed to record event"
	LogMsgEventLogged      = "Event recorded"
)

// Log messages - cleanup job
const (
	LogMsgCleanupJobStarting  = "Starting event log cleanup job"
	LogMsgCleanupJobFailed    = "Event log cleanup failed"
	LogMsgCleanupJobCompleted = "Event log cleanup completed"
)

// Log field keys - structured logging fields
const (
	LogFieldType         = "type"
	LogFieldPlayerID     = "player_id"
	LogFieldError        = "error"
	LogFieldRetention    = "retention"
	LogFieldDuration     = "duration"
	LogFieldDeletedCount = "deleted_count"
)

// Error messages
const (
	ErrMsgEncodePayload = "encode event payload"
	ErrFmtLimit         = "%w: history limit %d"
)
