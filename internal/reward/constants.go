package reward

// Error format strings
const (
	ErrFmtEmptyPool       = "%w: %d entries"
	ErrFmtUnknownBox      = "%w: box %q"
	ErrFmtNoBoxes         = "%w: no boxes to pick a random box from"
	ErrFmtUnsupportedKind = "%w: unsupported reward kind %s"
	ErrFmtApplyReward     = "apply %s reward: %w"
)

// Log message constants
const (
	LogMsgPityTriggered = "Pity pool forced"
	LogMsgRewardsRolled = "Rewards rolled"
)
