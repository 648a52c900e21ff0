package handler

// Generic HTTP error messages for client responses.
// These messages do not expose internal error details.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgInvalidSource         = "source must be inventory or adhoc"
	ErrMsgInvalidLimit          = "limit must be a non-negative integer"
)

// User-facing messages per error kind
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnavailable        = "unavailable"
)

// Cooldown messages rendered from ErrOnCooldown
const (
	MsgFmtCooldownHours   = "You can %s again in %dh %dm"
	MsgFmtCooldownMinutes = "You can %s again in %dm %ds"
	MsgFmtCooldownSeconds = "You can %s again in %ds"
)

// Success messages for API responses
const (
	MsgJobLeft      = "Job left"
	MsgJobActivated = "Job activated"
)

// Log message constants
const (
	LogMsgDecodeFailed    = "Failed to decode request"
	LogMsgRequestDecoded  = "Request decoded"
	LogMsgServiceError    = "Service call failed"
	LogMsgReadinessFailed = "Readiness check failed"
	LogMsgEncodeFailed    = "Failed to encode JSON response"
	LogMsgWriteFailed     = "Failed to write response buffer"
)

// Route parameter names
const (
	ParamGuildID     = "guildID"
	ParamPlayerID    = "playerID"
	ParamBlueprintID = "blueprintID"
	ParamToolID      = "toolID"
	ParamJobID       = "jobID"
	ParamMissionID   = "missionID"
	ParamBoxID       = "boxID"
	ParamPeriod      = "period"
	QuerySource      = "source"
	QueryLimit       = "limit"
)

// HeaderRetryAfter carries the cooldown remainder in whole seconds
const HeaderRetryAfter = "Retry-After"
