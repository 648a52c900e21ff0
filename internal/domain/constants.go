package domain

// CurrencyKind identifies one of the two wallet balances
type CurrencyKind string

const (
	CurrencyCoins  CurrencyKind = "coins"
	CurrencyTokens CurrencyKind = "tokens"
)

// Valid reports whether the currency is one the wallet knows about
func (c CurrencyKind) Valid() bool {
	return c == CurrencyCoins || c == CurrencyTokens
}

// ItemKind identifies what an inventory stack holds
type ItemKind string

const (
	ItemLootbox    ItemKind = "lootbox"
	ItemConsumable ItemKind = "consumable"
)

// Rarity grades materials and tools
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// MissionScope groups missions by their regeneration epoch
type MissionScope string

const (
	ScopeDaily  MissionScope = "daily"
	ScopeWeekly MissionScope = "weekly"
)

// Mission progress types emitted by the engines themselves.
// External triggers may report any other type configured in the catalog (e.g. "messages").
const (
	ProgressMine        = "mine"
	ProgressCraft       = "craft"
	ProgressWork        = "work"
	ProgressOpenLootbox = "open_lootbox"
	ProgressRepair      = "repair"
)

// Material origins recorded on stacks
const (
	OriginMined   = "mined"
	OriginCrafted = "crafted"
	OriginLootbox = "lootbox"
	OriginReward  = "reward"
)

// Quality bounds for material stacks
const (
	MinQuality     = 1
	MaxQuality     = 100
	DefaultQuality = 70
)

// Tool tier bounds
const (
	MinToolTier = 1
	MaxToolTier = 4
)
