package ledger

import (
	"fmt"
	"math"

	"github.com/osse101/brandish-progression/internal/catalog"
	"github.com/osse101/brandish-progression/internal/domain"
)

// RepairResult describes a completed repair
type RepairResult struct {
	ToolID     string                       `json:"tool_id"`
	Cost       int64                        `json:"cost"`
	Materials  []domain.MaterialRequirement `json:"materials,omitempty"`
	Durability int                          `json:"durability"`
}

// UpgradeResult describes a completed upgrade
type UpgradeResult struct {
	ToolID        string           `json:"tool_id"`
	Cost          int64            `json:"cost"`
	NewLevel      int              `json:"new_level"`
	NewTier       int              `json:"new_tier"`
	TierIncreased bool             `json:"tier_increased"`
	MaxDurability int              `json:"max_durability"`
	Bonus         domain.ToolBonus `json:"bonus"`
}

// WearResult describes durability lost by the equipped tool
type WearResult struct {
	ToolID     string `json:"tool_id"`
	Durability int    `json:"durability"`
	Broken     bool   `json:"broken"`
}

// GrantTool instantiates a tool from its definition at full durability
func (l *Ledger) GrantTool(p *domain.PlayerProfile, toolID string) (*domain.Tool, error) {
	def, ok := l.catalog.Tool(toolID)
	if !ok {
		return nil, fmt.Errorf(ErrFmtUnknownToolDef, domain.ErrUnknownTool, toolID)
	}
	if p.FindTool(def.ID) != nil {
		return nil, fmt.Errorf(ErrFmtToolAlreadyHeld, domain.ErrToolAlreadyHeld, def.ID)
	}
	p.Tools = append(p.Tools, domain.Tool{
		ToolID:        def.ID,
		Tier:          def.Tier,
		Durability:    def.MaxDurability,
		MaxDurability: def.MaxDurability,
		Bonus:         def.Bonus,
	})
	return &p.Tools[len(p.Tools)-1], nil
}

// EquipTool makes an owned, unbroken tool the active one
func (l *Ledger) EquipTool(p *domain.PlayerProfile, toolID string) (*domain.Tool, error) {
	t := p.FindTool(catalog.NormalizeID(toolID))
	if t == nil {
		return nil, fmt.Errorf(ErrFmtToolNotOwned, domain.ErrToolNotOwned, toolID)
	}
	if t.Broken() {
		return nil, fmt.Errorf(ErrFmtToolBroken, domain.ErrToolBroken, t.ToolID)
	}
	p.EquippedToolID = t.ToolID
	return t, nil
}

// Wear removes durability from the equipped tool. Reaching zero unequips it.
func (l *Ledger) Wear(p *domain.PlayerProfile, cost int) (WearResult, error) {
	if cost < 0 {
		return WearResult{}, fmt.Errorf(ErrFmtInvalidWearCost, domain.ErrInvalidAmount, cost)
	}
	t := p.EquippedTool()
	if t == nil {
		return WearResult{}, domain.ErrNoToolEquipped
	}
	t.Durability -= cost
	if t.Durability < 0 {
		t.Durability = 0
	}
	res := WearResult{ToolID: t.ToolID, Durability: t.Durability}
	if t.Broken() {
		p.EquippedToolID = ""
		p.Stats.ToolsBroken++
		res.Broken = true
	}
	return res, nil
}

// RepairCost returns the coin cost of restoring a tool to full durability.
// The cost scales with missing durability and the tool's rarity.
func (l *Ledger) RepairCost(t *domain.Tool, def domain.ToolDef) int64 {
	if t.MaxDurability <= 0 || t.Durability >= t.MaxDurability {
		return 0
	}
	missing := 1 - float64(t.Durability)/float64(t.MaxDurability)
	return int64(math.Ceil(float64(def.RepairBaseCost) * missing * l.catalog.RepairMultiplier(def.Rarity)))
}

// RepairTool restores a tool to full durability, paying coins and any repair materials
func (l *Ledger) RepairTool(p *domain.PlayerProfile, toolID string) (RepairResult, error) {
	t := p.FindTool(catalog.NormalizeID(toolID))
	if t == nil {
		return RepairResult{}, fmt.Errorf(ErrFmtToolNotOwned, domain.ErrToolNotOwned, toolID)
	}
	def, ok := l.catalog.Tool(t.ToolID)
	if !ok {
		return RepairResult{}, fmt.Errorf(ErrFmtUnknownToolDef, domain.ErrCatalogCorrupt, t.ToolID)
	}
	if t.Durability >= t.MaxDurability {
		return RepairResult{}, fmt.Errorf(ErrFmtToolNotDamaged, domain.ErrToolNotDamaged, t.ToolID, t.Durability, t.MaxDurability)
	}

	cost := l.RepairCost(t, def)
	if err := p.CanAfford(cost, 0); err != nil {
		return RepairResult{}, fmt.Errorf(ErrFmtRepairFundsShort, t.ToolID, err)
	}
	if err := l.CheckMaterials(p, def.RepairMaterials); err != nil {
		return RepairResult{}, err
	}

	if err := p.Debit(domain.CurrencyCoins, cost); err != nil {
		return RepairResult{}, err
	}
	if err := l.ConsumeMaterials(p, def.RepairMaterials); err != nil {
		return RepairResult{}, err
	}
	t.Durability = t.MaxDurability

	return RepairResult{
		ToolID:     t.ToolID,
		Cost:       cost,
		Materials:  def.RepairMaterials,
		Durability: t.Durability,
	}, nil
}

// UpgradeCost returns the coin cost of the next upgrade
func (l *Ledger) UpgradeCost(t *domain.Tool) int64 {
	return l.catalog.Rules().Upgrade.CostPerLevel * int64(t.UpgradeLevel+1)
}

// UpgradeTool raises a tool's upgrade level, improving durability and bonuses.
// Every TierEvery upgrades the tier rises by one, up to the maximum tier.
func (l *Ledger) UpgradeTool(p *domain.PlayerProfile, toolID string) (UpgradeResult, error) {
	t := p.FindTool(catalog.NormalizeID(toolID))
	if t == nil {
		return UpgradeResult{}, fmt.Errorf(ErrFmtToolNotOwned, domain.ErrToolNotOwned, toolID)
	}

	rules := l.catalog.Rules().Upgrade
	cost := l.UpgradeCost(t)
	if err := p.Debit(domain.CurrencyCoins, cost); err != nil {
		return UpgradeResult{}, err
	}

	t.UpgradeLevel++
	t.MaxDurability += rules.DurabilityStep
	t.Durability = min(t.Durability+rules.DurabilityStep, t.MaxDurability)
	t.Bonus.QuantityMultiplier += rules.QuantityStep
	t.Bonus.RareChanceBonus = math.Min(t.Bonus.RareChanceBonus+rules.RareChanceStep, 1)
	t.Bonus.QualityBonus += rules.QualityStep

	res := UpgradeResult{ToolID: t.ToolID, Cost: cost, NewLevel: t.UpgradeLevel}
	if rules.TierEvery > 0 && t.UpgradeLevel%rules.TierEvery == 0 && t.Tier < domain.MaxToolTier {
		t.Tier++
		res.TierIncreased = true
	}
	res.NewTier = t.Tier
	res.MaxDurability = t.MaxDurability
	res.Bonus = t.Bonus
	return res, nil
}
