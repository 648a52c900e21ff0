package mining

// Error format strings
const (
	ErrFmtUnknownZone   = "%w: %s"
	ErrFmtZoneLevel     = "%w: %s needs level %d, have %d"
	ErrFmtToolTier      = "%w: %s needs tier %d, %s is tier %d"
	ErrFmtToolBroken    = "%w: %s"
	ErrFmtActiveMissing = "%w: active zone %q is no longer defined"
	ErrFmtSettle        = "settle mine in %s: %w"
)

// Log message constants
const (
	LogMsgMineRolled   = "Mine rolled"
	LogMsgMineSettled  = "Mine settled"
	LogMsgToolBroke    = "Tool broke while mining"
	LogMsgZoneSelected = "Mining zone selected"
)
