package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Wallet errors
	ErrMsgInvalidAmount      = "invalid amount"
	ErrMsgInsufficientFunds  = "insufficient funds"
	ErrMsgInsufficientTokens = "insufficient tokens"
	ErrMsgUnknownCurrency    = "unknown currency"

	// Inventory and ledger errors
	ErrMsgInsufficientMaterial = "insufficient material"
	ErrMsgInsufficientItems    = "insufficient items"
	ErrMsgCapacityExceeded     = "inventory capacity exceeded"

	// Gating errors
	ErrMsgLevelTooLow     = "level too low"
	ErrMsgToolNotOwned    = "tool not owned"
	ErrMsgNoToolEquipped  = "no tool equipped"
	ErrMsgToolTierTooLow  = "tool tier too low"
	ErrMsgZoneNotSet      = "no mining zone selected"
	ErrMsgNoActiveJob     = "no active job"
	ErrMsgNoSuchSalary    = "job has no such salary"
	ErrMsgInvalidInput    = "invalid input"
	ErrMsgNotInInventory  = "box not in inventory"
	ErrMsgToolNotDamaged  = "tool does not need repair"
	ErrMsgToolBroken      = "tool is broken"
	ErrMsgAlreadyInJob    = "job already held"
	ErrMsgNotInJob        = "job not held"
	ErrMsgToolAlreadyHeld = "tool already owned"

	// Lookup errors
	ErrMsgUnknownBlueprint = "blueprint not found"
	ErrMsgUnknownZone      = "zone not found"
	ErrMsgUnknownTool      = "tool not found"
	ErrMsgUnknownJob       = "job not found"
	ErrMsgUnknownBox       = "lootbox not found"
	ErrMsgUnknownMaterial  = "material not found"
	ErrMsgMissionNotFound  = "mission not found"
	ErrMsgProfileNotFound  = "profile not found"

	// Mission claim errors
	ErrMsgMissionNotCompleted = "mission not completed"
	ErrMsgMissionClaimed      = "mission already claimed"

	// Cooldown errors
	ErrMsgCooldownActive = "action on cooldown"

	// Persistence errors
	ErrMsgVersionConflict = "profile version conflict"

	// Configuration errors
	ErrMsgCatalogCorrupt = "catalog reference is broken"
	ErrMsgEmptyPool      = "reward pool is empty"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrInvalidAmount      = errors.New(ErrMsgInvalidAmount)
	ErrInsufficientFunds  = errors.New(ErrMsgInsufficientFunds)
	ErrInsufficientTokens = errors.New(ErrMsgInsufficientTokens)
	ErrUnknownCurrency    = errors.New(ErrMsgUnknownCurrency)

	ErrInsufficientMaterial = errors.New(ErrMsgInsufficientMaterial)
	ErrInsufficientItems    = errors.New(ErrMsgInsufficientItems)
	ErrCapacityExceeded     = errors.New(ErrMsgCapacityExceeded)

	ErrLevelTooLow    = errors.New(ErrMsgLevelTooLow)
	ErrToolNotOwned   = errors.New(ErrMsgToolNotOwned)
	ErrNoToolEquipped = errors.New(ErrMsgNoToolEquipped)
	ErrToolTierTooLow = errors.New(ErrMsgToolTierTooLow)
	ErrZoneNotSet     = errors.New(ErrMsgZoneNotSet)
	ErrNoActiveJob    = errors.New(ErrMsgNoActiveJob)
	ErrNoSuchSalary   = errors.New(ErrMsgNoSuchSalary)
	ErrInvalidInput   = errors.New(ErrMsgInvalidInput)
	ErrNotInInventory = errors.New(ErrMsgNotInInventory)

	ErrToolNotDamaged  = errors.New(ErrMsgToolNotDamaged)
	ErrToolBroken      = errors.New(ErrMsgToolBroken)
	ErrAlreadyInJob    = errors.New(ErrMsgAlreadyInJob)
	ErrNotInJob        = errors.New(ErrMsgNotInJob)
	ErrToolAlreadyHeld = errors.New(ErrMsgToolAlreadyHeld)

	ErrUnknownBlueprint = errors.New(ErrMsgUnknownBlueprint)
	ErrUnknownZone      = errors.New(ErrMsgUnknownZone)
	ErrUnknownTool      = errors.New(ErrMsgUnknownTool)
	ErrUnknownJob       = errors.New(ErrMsgUnknownJob)
	ErrUnknownBox       = errors.New(ErrMsgUnknownBox)
	ErrUnknownMaterial  = errors.New(ErrMsgUnknownMaterial)
	ErrMissionNotFound  = errors.New(ErrMsgMissionNotFound)
	ErrProfileNotFound  = errors.New(ErrMsgProfileNotFound)

	ErrMissionNotCompleted = errors.New(ErrMsgMissionNotCompleted)
	ErrMissionClaimed      = errors.New(ErrMsgMissionClaimed)

	// ErrCooldownActive is matched by cooldown.ErrOnCooldown through errors.Is
	ErrCooldownActive = errors.New(ErrMsgCooldownActive)

	ErrVersionConflict = errors.New(ErrMsgVersionConflict)

	ErrCatalogCorrupt = errors.New(ErrMsgCatalogCorrupt)
	ErrEmptyPool      = errors.New(ErrMsgEmptyPool)
)

// ErrorKind is the failure class an error belongs to
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindValidation
	KindCooldown
	KindCapacity
	KindConflict
	KindNotFound
	KindFatal
)

var errorKindNames = map[ErrorKind]string{
	KindUnknown:    "unknown",
	KindValidation: "validation",
	KindCooldown:   "cooldown",
	KindCapacity:   "capacity",
	KindConflict:   "conflict",
	KindNotFound:   "not_found",
	KindFatal:      "fatal",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return errorKindNames[KindUnknown]
}

type kindedError struct {
	err  error
	kind ErrorKind
}

// Ordered so the cooldown sentinel wins over anything a cooldown error might also wrap.
var errorKinds = []kindedError{
	{ErrCooldownActive, KindCooldown},

	{ErrInvalidAmount, KindValidation},
	{ErrInsufficientFunds, KindValidation},
	{ErrInsufficientTokens, KindValidation},
	{ErrUnknownCurrency, KindValidation},
	{ErrInsufficientMaterial, KindValidation},
	{ErrInsufficientItems, KindValidation},
	{ErrLevelTooLow, KindValidation},
	{ErrToolNotOwned, KindValidation},
	{ErrNoToolEquipped, KindValidation},
	{ErrToolTierTooLow, KindValidation},
	{ErrZoneNotSet, KindValidation},
	{ErrNoActiveJob, KindValidation},
	{ErrNoSuchSalary, KindValidation},
	{ErrInvalidInput, KindValidation},
	{ErrNotInInventory, KindValidation},

	{ErrCapacityExceeded, KindCapacity},

	{ErrToolNotDamaged, KindConflict},
	{ErrToolBroken, KindConflict},
	{ErrAlreadyInJob, KindConflict},
	{ErrNotInJob, KindConflict},
	{ErrToolAlreadyHeld, KindConflict},
	{ErrMissionNotCompleted, KindConflict},
	{ErrMissionClaimed, KindConflict},
	{ErrVersionConflict, KindConflict},

	{ErrUnknownBlueprint, KindNotFound},
	{ErrUnknownZone, KindNotFound},
	{ErrUnknownTool, KindNotFound},
	{ErrUnknownJob, KindNotFound},
	{ErrUnknownBox, KindNotFound},
	{ErrUnknownMaterial, KindNotFound},
	{ErrMissionNotFound, KindNotFound},
	{ErrProfileNotFound, KindNotFound},

	{ErrCatalogCorrupt, KindFatal},
	{ErrEmptyPool, KindFatal},
}

// KindOf classifies err into the failure taxonomy.
// Errors that match no domain sentinel are KindUnknown and should be treated as unexpected.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindUnknown
}
