package ledger

// Error format strings
const (
	ErrFmtCapacity         = "%w: adding %d %s at %d weight each, %d of %d used"
	ErrFmtMissingMaterial  = "%w: need %d %s, have %d"
	ErrFmtToolNotOwned     = "%w: %s"
	ErrFmtUnknownMaterial  = "%w: material %q"
	ErrFmtUnknownToolDef   = "%w: tool %q"
	ErrFmtToolBroken       = "%w: %s has no durability left"
	ErrFmtToolNotDamaged   = "%w: %s is at %d/%d"
	ErrFmtToolAlreadyHeld  = "%w: %s"
	ErrFmtInvalidQuantity  = "%w: material quantity %d"
	ErrFmtInvalidWearCost  = "%w: durability cost %d"
	ErrFmtRepairFundsShort = "repair %s: %w"
)
