package domain

import "time"

// Static definitions loaded from the catalog. They are read-only once loaded.

// MaterialDef describes a material that can sit in a player's ledger
type MaterialDef struct {
	ID     string `json:"id" yaml:"id" validate:"required"`
	Name   string `json:"name" yaml:"name" validate:"required"`
	Weight int    `json:"weight" yaml:"weight" validate:"gte=0"`
	Rarity Rarity `json:"rarity" yaml:"rarity" validate:"required,oneof=common uncommon rare epic legendary"`
}

// MaterialRequirement is one line item of a recipe or repair cost
type MaterialRequirement struct {
	MaterialID string `json:"material" yaml:"material" validate:"required"`
	Quantity   int    `json:"quantity" yaml:"quantity" validate:"gt=0"`
}

// ToolDef is the template a Tool is instantiated from
type ToolDef struct {
	ID              string                `json:"id" yaml:"id" validate:"required"`
	Name            string                `json:"name" yaml:"name" validate:"required"`
	Tier            int                   `json:"tier" yaml:"tier" validate:"min=1,max=4"`
	Rarity          Rarity                `json:"rarity" yaml:"rarity" validate:"required,oneof=common uncommon rare epic legendary"`
	MaxDurability   int                   `json:"max_durability" yaml:"max_durability" validate:"gt=0"`
	Bonus           ToolBonus             `json:"bonus" yaml:"bonus"`
	RepairBaseCost  int64                 `json:"repair_base_cost" yaml:"repair_base_cost" validate:"gte=0"`
	RepairMaterials []MaterialRequirement `json:"repair_materials,omitempty" yaml:"repair_materials,omitempty" validate:"dive"`
}

// Blueprint is a crafting recipe
type Blueprint struct {
	ID            string                `json:"id" yaml:"id" validate:"required"`
	Name          string                `json:"name" yaml:"name" validate:"required"`
	RequiredLevel int                   `json:"required_level" yaml:"required_level" validate:"gte=0"`
	CostCoins     int64                 `json:"cost_coins" yaml:"cost_coins" validate:"gte=0"`
	CostTokens    int64                 `json:"cost_tokens" yaml:"cost_tokens" validate:"gte=0"`
	Materials     []MaterialRequirement `json:"materials" yaml:"materials" validate:"dive"`
	SuccessRate   float64               `json:"success_rate" yaml:"success_rate" validate:"gte=0,lte=1"`
	Result        Reward                `json:"result" yaml:"result"`
}

// DropEntry is one weighted material in a zone's pool.
// Job, when set, boosts the entry for players holding that job.
type DropEntry struct {
	MaterialID string `json:"material" yaml:"material" validate:"required"`
	Weight     int    `json:"weight" yaml:"weight" validate:"gte=0"`
	Job        string `json:"job,omitempty" yaml:"job,omitempty"`
}

// Zone is a mining location
type Zone struct {
	ID               string      `json:"id" yaml:"id" validate:"required"`
	Name             string      `json:"name" yaml:"name" validate:"required"`
	MinLevel         int         `json:"min_level" yaml:"min_level" validate:"gte=0"`
	RequiredToolTier int         `json:"required_tool_tier" yaml:"required_tool_tier" validate:"min=1,max=4"`
	MinQuantity      int         `json:"min_quantity" yaml:"min_quantity" validate:"gt=0"`
	MaxQuantity      int         `json:"max_quantity" yaml:"max_quantity" validate:"gtefield=MinQuantity"`
	DurabilityCost   int         `json:"durability_cost" yaml:"durability_cost" validate:"gte=0"`
	Drops            []DropEntry `json:"drops" yaml:"drops" validate:"required,min=1,dive"`
}

// IntRange is an inclusive integer range
type IntRange struct {
	Min int64 `json:"min" yaml:"min" validate:"gte=0"`
	Max int64 `json:"max" yaml:"max" validate:"gtefield=Min"`
}

// CurrencyReward is a rolled payout of one currency
type CurrencyReward struct {
	Currency CurrencyKind `json:"currency" yaml:"currency" validate:"required,oneof=coins tokens"`
	Min      int64        `json:"min" yaml:"min" validate:"gte=0"`
	Max      int64        `json:"max" yaml:"max" validate:"gtefield=Min"`
}

// TaxRule levies a fraction of a currency payout
type TaxRule struct {
	Currency CurrencyKind `json:"currency" yaml:"currency" validate:"required,oneof=coins tokens"`
	Rate     float64      `json:"rate" yaml:"rate" validate:"gte=0,lte=1"`
}

// EvasionRule gives a chance to keep part of a tax
type EvasionRule struct {
	Chance    float64 `json:"chance" yaml:"chance" validate:"gte=0,lte=1"`
	Reduction float64 `json:"reduction" yaml:"reduction" validate:"gte=0,lte=1"`
}

// RankDef names the rank reached at MinLevel
type RankDef struct {
	Name     string `json:"name" yaml:"name" validate:"required"`
	MinLevel int    `json:"min_level" yaml:"min_level" validate:"gte=0"`
}

// SalaryLine is a fixed salary payout
type SalaryLine struct {
	Currency CurrencyKind `json:"currency" yaml:"currency" validate:"required,oneof=coins tokens"`
	Amount   int64        `json:"amount" yaml:"amount" validate:"gt=0"`
}

// JobDef describes a job players can hold
type JobDef struct {
	ID            string           `json:"id" yaml:"id" validate:"required"`
	Name          string           `json:"name" yaml:"name" validate:"required"`
	Cooldown      time.Duration    `json:"cooldown" yaml:"cooldown" validate:"gte=0"`
	FailChance    float64          `json:"fail_chance" yaml:"fail_chance" validate:"gte=0,lte=1"`
	Penalty       IntRange         `json:"penalty" yaml:"penalty"`
	Rewards       []CurrencyReward `json:"rewards" yaml:"rewards" validate:"dive"`
	Taxes         []TaxRule        `json:"taxes,omitempty" yaml:"taxes,omitempty" validate:"dive"`
	TaxEvasion    *EvasionRule     `json:"tax_evasion,omitempty" yaml:"tax_evasion,omitempty"`
	XPReward      IntRange         `json:"xp_reward" yaml:"xp_reward"`
	XPPerLevel    int              `json:"xp_per_level" yaml:"xp_per_level" validate:"gt=0"`
	MaxLevel      int              `json:"max_level" yaml:"max_level" validate:"gt=0"`
	Ranks         []RankDef        `json:"ranks" yaml:"ranks" validate:"dive"`
	WeeklySalary  []SalaryLine     `json:"weekly_salary,omitempty" yaml:"weekly_salary,omitempty" validate:"dive"`
	MonthlySalary []SalaryLine     `json:"monthly_salary,omitempty" yaml:"monthly_salary,omitempty" validate:"dive"`
}

// TaxRate returns the configured rate for currency and whether one exists
func (j *JobDef) TaxRate(currency CurrencyKind) (float64, bool) {
	for _, t := range j.Taxes {
		if t.Currency == currency {
			return t.Rate, true
		}
	}
	return 0, false
}

// RewardEntry is one weighted reward in a box pool. Tier orders entries by value for pity.
type RewardEntry struct {
	Reward `yaml:",inline"`
	Weight int `json:"weight" yaml:"weight" validate:"gte=0"`
	Tier   int `json:"tier" yaml:"tier" validate:"gte=0"`
}

// LuckyRule multiplies an amount by a random factor
type LuckyRule struct {
	Chance        float64 `json:"chance" yaml:"chance" validate:"gte=0,lte=1"`
	MinMultiplier float64 `json:"min_multiplier" yaml:"min_multiplier" validate:"gt=0"`
	MaxMultiplier float64 `json:"max_multiplier" yaml:"max_multiplier" validate:"gtefield=MinMultiplier"`
}

// ExtraDropRule adds 1..MaxExtra independent draws
type ExtraDropRule struct {
	Chance   float64 `json:"chance" yaml:"chance" validate:"gte=0,lte=1"`
	MaxExtra int     `json:"max_extra" yaml:"max_extra" validate:"gt=0"`
}

// JackpotRule appends a fixed reward
type JackpotRule struct {
	Chance float64 `json:"chance" yaml:"chance" validate:"gte=0,lte=1"`
	Reward Reward  `json:"reward" yaml:"reward"`
}

// PityRule forces the upgraded pool after Threshold draws below MinTier
type PityRule struct {
	Threshold int           `json:"threshold" yaml:"threshold" validate:"gt=0"`
	MinTier   int           `json:"min_tier" yaml:"min_tier" validate:"gte=0"`
	Pool      []RewardEntry `json:"pool" yaml:"pool" validate:"required,min=1,dive"`
}

// Modifiers bundles the optional resolver modifiers of a pool
type Modifiers struct {
	Lucky      *LuckyRule     `json:"lucky,omitempty" yaml:"lucky,omitempty"`
	ExtraDrops *ExtraDropRule `json:"extra_drops,omitempty" yaml:"extra_drops,omitempty"`
	Jackpot    *JackpotRule   `json:"jackpot,omitempty" yaml:"jackpot,omitempty"`
	Pity       *PityRule      `json:"pity,omitempty" yaml:"pity,omitempty"`
}

// BoxDef is a lootbox
type BoxDef struct {
	ID        string        `json:"id" yaml:"id" validate:"required"`
	Name      string        `json:"name" yaml:"name" validate:"required"`
	Pool      []RewardEntry `json:"pool" yaml:"pool" validate:"required,min=1,dive"`
	Modifiers `yaml:",inline"`
}

// MissionTypeDef is a mission template in a scope pool
type MissionTypeDef struct {
	Type        string `json:"type" yaml:"type" validate:"required"`
	Description string `json:"description" yaml:"description"`
	MinGoal     int    `json:"min_goal" yaml:"min_goal" validate:"gt=0"`
	MaxGoal     int    `json:"max_goal" yaml:"max_goal" validate:"gtefield=MinGoal"`
}
