package catalog

// Embedded resource paths
const (
	SchemaPath         = "data/catalog.schema.json"
	DefaultCatalogPath = "data/default.yaml"
)

// Default rule values applied when a catalog leaves them unset
const (
	DefaultInventoryCapacity = 500
	DefaultJobBoostWeight    = 5

	DefaultUpgradeCostPerLevel   = 200
	DefaultUpgradeDurabilityStep = 20
	DefaultUpgradeTierEvery      = 3
	DefaultUpgradeQuantityStep   = 0.1
	DefaultUpgradeRareChanceStep = 0.02
	DefaultUpgradeQualityStep    = 2

	DefaultQualityPivot     = 70
	DefaultQualityDivisor   = 300
	DefaultMaxSuccessRate   = 0.99
	DefaultMinDropQuality   = 70
	DefaultMaxDropQuality   = 100
	DefaultDailyCount       = 3
	DefaultWeeklyCount      = 5
	DefaultRewardPerGoal    = 2
	DefaultDailySchedule    = "0 0 * * *"
	DefaultWeeklySchedule   = "0 0 * * 1"
	DefaultRepairMultiplier = 1.0
)

// Error message constants
const (
	ErrMsgReadCatalogFailed  = "failed to read catalog file: %w"
	ErrMsgParseCatalogFailed = "failed to parse catalog: %w"
	ErrMsgSchemaFailed       = "catalog schema validation failed: %w"
	ErrMsgStructFailed       = "catalog validation failed: %w"
	ErrFmtDuplicateID        = "%w: duplicate %s id %q"
	ErrFmtMissingReference   = "%w: %s %q references unknown %s %q"
	ErrFmtInvalidReward      = "%w: %s %q has invalid reward: %s"
)

// Log message constants
const (
	LogMsgCatalogLoaded = "Catalog loaded"
)
