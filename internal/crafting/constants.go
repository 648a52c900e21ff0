package crafting

// ==================== Error Messages ====================

// Validation error messages
const (
	ErrMsgUnknownBlueprintFmt = "%w: %s"
	ErrMsgLevelTooLowFmt      = "%w: %s needs level %d, have %d"
	ErrMsgCannotAffordFmt     = "cannot afford %s: %w"
	ErrMsgResultWontFitFmt    = "result of %s: %w"
	ErrMsgSettleFailedFmt     = "settle %s: %w"
)

// ==================== Log Messages ====================

const (
	LogMsgCraftValidated = "Craft validated"
	LogMsgCraftRolled    = "Craft rolled"
	LogMsgCraftSucceeded = "Craft succeeded"
	LogMsgCraftFailed    = "Craft failed, inputs consumed"
)
