package catalog

import (
	"github.com/osse101/brandish-progression/internal/cooldown"
	"github.com/osse101/brandish-progression/internal/domain"
	"github.com/osse101/brandish-progression/internal/leveling"
)

// Document is the on-disk shape of a catalog (YAML or JSON)
type Document struct {
	Version      string               `yaml:"version" validate:"required"`
	Description  string               `yaml:"description"`
	Defaults     Defaults             `yaml:"defaults"`
	Rules        Rules                `yaml:"rules"`
	Materials    []domain.MaterialDef `yaml:"materials" validate:"required,min=1,dive"`
	Tools        []domain.ToolDef     `yaml:"tools" validate:"dive"`
	Blueprints   []domain.Blueprint   `yaml:"blueprints" validate:"dive"`
	Zones        []domain.Zone        `yaml:"zones" validate:"dive"`
	Jobs         []domain.JobDef      `yaml:"jobs" validate:"dive"`
	Boxes        []domain.BoxDef      `yaml:"boxes" validate:"dive"`
	MissionPools MissionPools         `yaml:"mission_pools"`
}

// MissionPools holds the mission templates of each scope
type MissionPools struct {
	Daily  []domain.MissionTypeDef `yaml:"daily" validate:"dive"`
	Weekly []domain.MissionTypeDef `yaml:"weekly" validate:"dive"`
}

// Defaults are applied to freshly created profiles
type Defaults struct {
	Coins             int64          `yaml:"coins" validate:"gte=0"`
	Tokens            int64          `yaml:"tokens" validate:"gte=0"`
	InventoryCapacity int            `yaml:"inventory_capacity" validate:"gte=0"`
	StarterTool       string         `yaml:"starter_tool"`
	Zone              string         `yaml:"zone"`
	LevelCurve        leveling.Curve `yaml:"level_curve"`
}

// Rules are the tunable constants of the engines
type Rules struct {
	Cooldowns               cooldown.Config           `yaml:"cooldowns"`
	RarityRepairMultipliers map[domain.Rarity]float64 `yaml:"rarity_repair_multipliers"`
	Upgrade                 UpgradeRules              `yaml:"upgrade"`
	JobBoostWeight          int                       `yaml:"job_boost_weight" validate:"gte=0"`
	Crafting                CraftingRules             `yaml:"crafting"`
	Mining                  MiningRules               `yaml:"mining"`
	Missions                MissionRules              `yaml:"missions"`
}

// UpgradeRules tune tool upgrades
type UpgradeRules struct {
	CostPerLevel   int64   `yaml:"cost_per_level" validate:"gte=0"`
	DurabilityStep int     `yaml:"durability_step" validate:"gte=0"`
	TierEvery      int     `yaml:"tier_every" validate:"gte=0"`
	QuantityStep   float64 `yaml:"quantity_step" validate:"gte=0"`
	RareChanceStep float64 `yaml:"rare_chance_step" validate:"gte=0"`
	QualityStep    int     `yaml:"quality_step" validate:"gte=0"`
}

// CraftingRules tune the quality bonus and success cap
type CraftingRules struct {
	QualityPivot   float64 `yaml:"quality_pivot"`
	QualityDivisor float64 `yaml:"quality_divisor" validate:"gte=0"`
	MaxSuccessRate float64 `yaml:"max_success_rate" validate:"gte=0,lte=1"`
}

// MiningRules tune the base quality roll of drops
type MiningRules struct {
	MinQuality int `yaml:"min_quality" validate:"gte=0,lte=100"`
	MaxQuality int `yaml:"max_quality" validate:"gte=0,lte=100"`
}

// MissionRules tune mission generation
type MissionRules struct {
	DailyCount     int    `yaml:"daily_count" validate:"gte=0"`
	WeeklyCount    int    `yaml:"weekly_count" validate:"gte=0"`
	RewardPerGoal  int64  `yaml:"reward_per_goal" validate:"gte=0"`
	DailySchedule  string `yaml:"daily_schedule"`
	WeeklySchedule string `yaml:"weekly_schedule"`
}

// withDefaults fills zero values with the stock tuning
func (d Defaults) withDefaults() Defaults {
	if d.InventoryCapacity == 0 {
		d.InventoryCapacity = DefaultInventoryCapacity
	}
	stock := leveling.DefaultCurve()
	if d.LevelCurve.BaseXP <= 0 {
		d.LevelCurve.BaseXP = stock.BaseXP
	}
	if d.LevelCurve.GrowthRate <= 0 {
		d.LevelCurve.GrowthRate = stock.GrowthRate
	}
	if d.LevelCurve.MaxLevel <= 0 {
		d.LevelCurve.MaxLevel = stock.MaxLevel
	}
	return d
}

// withDefaults fills zero values with the stock tuning
func (r Rules) withDefaults() Rules {
	r.Cooldowns = r.Cooldowns.WithDefaults()

	multipliers := map[domain.Rarity]float64{
		domain.RarityCommon:    1.0,
		domain.RarityUncommon:  1.25,
		domain.RarityRare:      1.5,
		domain.RarityEpic:      2.0,
		domain.RarityLegendary: 3.0,
	}
	for rarity, m := range r.RarityRepairMultipliers {
		multipliers[rarity] = m
	}
	r.RarityRepairMultipliers = multipliers

	if r.Upgrade == (UpgradeRules{}) {
		r.Upgrade = UpgradeRules{
			CostPerLevel:   DefaultUpgradeCostPerLevel,
			DurabilityStep: DefaultUpgradeDurabilityStep,
			TierEvery:      DefaultUpgradeTierEvery,
			QuantityStep:   DefaultUpgradeQuantityStep,
			RareChanceStep: DefaultUpgradeRareChanceStep,
			QualityStep:    DefaultUpgradeQualityStep,
		}
	}
	if r.JobBoostWeight == 0 {
		r.JobBoostWeight = DefaultJobBoostWeight
	}
	if r.Crafting.QualityDivisor == 0 {
		r.Crafting.QualityDivisor = DefaultQualityDivisor
	}
	if r.Crafting.QualityPivot == 0 {
		r.Crafting.QualityPivot = DefaultQualityPivot
	}
	if r.Crafting.MaxSuccessRate == 0 {
		r.Crafting.MaxSuccessRate = DefaultMaxSuccessRate
	}
	if r.Mining.MinQuality == 0 && r.Mining.MaxQuality == 0 {
		r.Mining.MinQuality = DefaultMinDropQuality
		r.Mining.MaxQuality = DefaultMaxDropQuality
	}
	if r.Missions.DailyCount == 0 {
		r.Missions.DailyCount = DefaultDailyCount
	}
	if r.Missions.WeeklyCount == 0 {
		r.Missions.WeeklyCount = DefaultWeeklyCount
	}
	if r.Missions.RewardPerGoal == 0 {
		r.Missions.RewardPerGoal = DefaultRewardPerGoal
	}
	if r.Missions.DailySchedule == "" {
		r.Missions.DailySchedule = DefaultDailySchedule
	}
	if r.Missions.WeeklySchedule == "" {
		r.Missions.WeeklySchedule = DefaultWeeklySchedule
	}
	return r
}
