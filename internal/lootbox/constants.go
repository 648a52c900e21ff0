package lootbox

// Where an opened box comes from
const (
	// SourceInventory consumes one box from the player's inventory
	SourceInventory = "inventory"
	// SourceAdhoc opens a box granted by the caller without touching the inventory
	SourceAdhoc = "adhoc"
)

// Error format strings
const (
	ErrFmtUnknownBox     = "%w: %s"
	ErrFmtNotInInventory = "%w: %s"
	ErrFmtUnknownSource  = "%w: box source %q"
	ErrFmtResolve        = "resolve %s: %w"
	ErrFmtGrant          = "grant %s rewards: %w"
)

// Log message constants
const (
	LogMsgBoxOpened     = "Lootbox opened"
	LogMsgPityReset     = "Pity counter reset"
	LogMsgPityIncreased = "Pity counter increased"
)
