package domain

import (
	"maps"
	"slices"
	"time"
)

// PlayerProfile is the aggregate root holding all progression state of one player in one guild.
// Engines mutate it in memory; the profile service persists it as a whole document.
type PlayerProfile struct {
	PlayerID string `json:"player_id"`
	GuildID  string `json:"guild_id"`
	// Version is bumped by the store on every successful save
	Version int64 `json:"version"`

	Currency Currency `json:"currency"`
	Level    int      `json:"level"`
	XP       int64    `json:"xp"`
	TotalXP  int64    `json:"total_xp"`

	Inventory      []ItemStack     `json:"inventory"`
	Materials      []MaterialStack `json:"materials"`
	Tools          []Tool          `json:"tools"`
	EquippedToolID string          `json:"equipped_tool_id,omitempty"`

	Crafting CraftingState `json:"crafting"`
	Jobs     JobsState     `json:"jobs"`
	Missions MissionsState `json:"missions"`
	Stats    Stats         `json:"stats"`

	// Pity counts consecutive below-threshold draws per box id
	Pity map[string]int `json:"pity,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Currency holds the two balances. Neither is ever negative.
type Currency struct {
	Coins  int64 `json:"coins"`
	Tokens int64 `json:"tokens"`
}

// ItemStack is a stack of lootboxes or consumables
type ItemStack struct {
	Kind       ItemKind  `json:"kind"`
	TypeID     string    `json:"type_id"`
	Quantity   int       `json:"quantity"`
	AcquiredAt time.Time `json:"acquired_at"`
}

// MaterialStack is a stack of one material with a running average quality
type MaterialStack struct {
	MaterialID string `json:"material_id"`
	Quantity   int    `json:"quantity"`
	Quality    int    `json:"quality"`
	Rarity     Rarity `json:"rarity"`
	Origin     string `json:"origin,omitempty"`
	Bound      bool   `json:"bound,omitempty"`
}

// ToolBonus modifies mining outcomes
type ToolBonus struct {
	QuantityMultiplier float64 `json:"quantity_multiplier" yaml:"quantity_multiplier" validate:"gte=0"`
	RareChanceBonus    float64 `json:"rare_chance_bonus" yaml:"rare_chance_bonus" validate:"gte=0,lte=1"`
	QualityBonus       int     `json:"quality_bonus" yaml:"quality_bonus" validate:"gte=0"`
}

// Tool is an owned instance of a ToolDef
type Tool struct {
	ToolID        string    `json:"tool_id"`
	Tier          int       `json:"tier"`
	Durability    int       `json:"durability"`
	MaxDurability int       `json:"max_durability"`
	UpgradeLevel  int       `json:"upgrade_level"`
	Bonus         ToolBonus `json:"bonus"`
}

// Broken reports whether the tool has no durability left
func (t *Tool) Broken() bool {
	return t.Durability <= 0
}

// CraftingState holds mining and carrying state
type CraftingState struct {
	ActiveZone          string    `json:"active_zone,omitempty"`
	InventoryCapacity   int       `json:"inventory_capacity"`
	MiningCooldownUntil time.Time `json:"mining_cooldown_until,omitzero"`
}

// JobsState holds job membership and salary bookkeeping
type JobsState struct {
	ActiveJobID         string      `json:"active_job_id,omitempty"`
	LastJobChangeAt     time.Time   `json:"last_job_change_at,omitzero"`
	LastWeeklySalaryAt  time.Time   `json:"last_weekly_salary_at,omitzero"`
	LastMonthlySalaryAt time.Time   `json:"last_monthly_salary_at,omitzero"`
	Membership          []JobRecord `json:"membership"`
}

// JobRecord is the player's progress in one job
type JobRecord struct {
	JobID         string    `json:"job_id"`
	Level         int       `json:"level"`
	XP            int       `json:"xp"`
	Rank          string    `json:"rank,omitempty"`
	CooldownUntil time.Time `json:"cooldown_until,omitzero"`
	Stats         JobStats  `json:"stats"`
}

// JobStats accumulates per-job work statistics
type JobStats struct {
	Shifts        int   `json:"shifts"`
	Failures      int   `json:"failures"`
	GrossEarned   int64 `json:"gross_earned"`
	TaxPaid       int64 `json:"tax_paid"`
	TaxEvaded     int64 `json:"tax_evaded"`
	PenaltiesPaid int64 `json:"penalties_paid"`
}

// MissionsState holds both mission scopes. Each scope tracks its own generation time.
type MissionsState struct {
	Daily             []Mission `json:"daily"`
	Weekly            []Mission `json:"weekly"`
	DailyGeneratedAt  time.Time `json:"daily_generated_at,omitzero"`
	WeeklyGeneratedAt time.Time `json:"weekly_generated_at,omitzero"`
}

// Scope returns the missions of one scope
func (m *MissionsState) Scope(scope MissionScope) []Mission {
	if scope == ScopeWeekly {
		return m.Weekly
	}
	return m.Daily
}

// GeneratedAt returns the generation time of one scope
func (m *MissionsState) GeneratedAt(scope MissionScope) time.Time {
	if scope == ScopeWeekly {
		return m.WeeklyGeneratedAt
	}
	return m.DailyGeneratedAt
}

// Replace swaps in a freshly generated set for one scope
func (m *MissionsState) Replace(scope MissionScope, missions []Mission, at time.Time) {
	if scope == ScopeWeekly {
		m.Weekly = missions
		m.WeeklyGeneratedAt = at
		return
	}
	m.Daily = missions
	m.DailyGeneratedAt = at
}

// Mission is one generated objective
type Mission struct {
	ID          string       `json:"id"`
	Scope       MissionScope `json:"scope"`
	Type        string       `json:"type"`
	Goal        int          `json:"goal"`
	Progress    int          `json:"progress"`
	Completed   bool         `json:"completed"`
	Claimed     bool         `json:"claimed"`
	RewardXP    int64        `json:"reward_xp"`
	RewardCoins int64        `json:"reward_coins"`
}

// Stats are lifetime counters
type Stats struct {
	Mined           int `json:"mined"`
	Crafted         int `json:"crafted"`
	CraftFailed     int `json:"craft_failed"`
	Worked          int `json:"worked"`
	WorkFailed      int `json:"work_failed"`
	BoxesOpened     int `json:"boxes_opened"`
	MissionsClaimed int `json:"missions_claimed"`
	ToolsBroken     int `json:"tools_broken"`
}

// NewPlayerProfile returns an empty level 1 profile. Starting balances, capacity and tools
// are applied by the caller from catalog defaults.
func NewPlayerProfile(playerID, guildID string, now time.Time) *PlayerProfile {
	return &PlayerProfile{
		PlayerID:  playerID,
		GuildID:   guildID,
		Level:     1,
		Inventory: []ItemStack{},
		Materials: []MaterialStack{},
		Tools:     []Tool{},
		Jobs:      JobsState{Membership: []JobRecord{}},
		Pity:      map[string]int{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Key identifies the profile across stores and locks
func (p *PlayerProfile) Key() ProfileKey {
	return ProfileKey{GuildID: p.GuildID, PlayerID: p.PlayerID}
}

// ProfileKey addresses one profile
type ProfileKey struct {
	GuildID  string
	PlayerID string
}

func (k ProfileKey) String() string {
	return k.GuildID + ":" + k.PlayerID
}

// Clone returns a deep copy so a failed mutation never leaks into a cached profile
func (p *PlayerProfile) Clone() *PlayerProfile {
	if p == nil {
		return nil
	}
	c := *p
	c.Inventory = slices.Clone(p.Inventory)
	c.Materials = slices.Clone(p.Materials)
	c.Tools = slices.Clone(p.Tools)
	c.Jobs.Membership = slices.Clone(p.Jobs.Membership)
	c.Missions.Daily = slices.Clone(p.Missions.Daily)
	c.Missions.Weekly = slices.Clone(p.Missions.Weekly)
	c.Pity = maps.Clone(p.Pity)
	if c.Pity == nil {
		c.Pity = map[string]int{}
	}
	return &c
}
