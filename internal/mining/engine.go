package mining

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/brandish-progression/internal/catalog"
	"github.com/osse101/brandish-progression/internal/cooldown"
	"github.com/osse101/brandish-progression/internal/domain"
	"github.com/osse101/brandish-progression/internal/ledger"
	"github.com/osse101/brandish-progression/internal/logger"
	"github.com/osse101/brandish-progression/internal/reward"
	"github.com/osse101/brandish-progression/internal/utils"
)

// Engine runs the mine action: cooldown, zone gate, tool gate, drop, durability decay, settle
type Engine struct {
	catalog  *catalog.Catalog
	ledger   *ledger.Ledger
	resolver *reward.Resolver
}

// NewEngine creates a mining engine. The resolver's source drives every roll.
func NewEngine(c *catalog.Catalog, l *ledger.Ledger, r *reward.Resolver) *Engine {
	return &Engine{catalog: c, ledger: l, resolver: r}
}

// Result is the outcome of one mine action
type Result struct {
	ZoneID        string        `json:"zone_id"`
	MaterialID    string        `json:"material_id"`
	Rarity        domain.Rarity `json:"rarity"`
	Quantity      int           `json:"quantity"`
	Quality       int           `json:"quality"`
	RareReroll    bool          `json:"rare_reroll,omitempty"`
	JobBoosted    bool          `json:"job_boosted,omitempty"`
	ToolID        string        `json:"tool_id"`
	Durability    int           `json:"durability"`
	ToolBroken    bool          `json:"tool_broken"`
	CooldownUntil time.Time     `json:"cooldown_until"`
}

// CooldownForTier returns the mining cooldown after mining with a tool of tier
func (e *Engine) CooldownForTier(tier int) time.Duration {
	cfg := e.catalog.Rules().Cooldowns
	return cfg.MiningCooldown(tier)
}

// SetZone selects the active mining zone after checking the level and tool gates
func (e *Engine) SetZone(ctx context.Context, p *domain.PlayerProfile, zoneID string) (domain.Zone, error) {
	zone, ok := e.catalog.Zone(zoneID)
	if !ok {
		return domain.Zone{}, fmt.Errorf(ErrFmtUnknownZone, domain.ErrUnknownZone, zoneID)
	}
	if err := checkLevel(p, zone); err != nil {
		return domain.Zone{}, err
	}
	if _, err := checkTool(p, zone); err != nil {
		return domain.Zone{}, err
	}
	p.Crafting.ActiveZone = zone.ID
	logger.FromContext(ctx).Info(LogMsgZoneSelected, "player", p.PlayerID, "zone", zone.ID)
	return zone, nil
}

// Mine extracts one drop from the active zone. Any failure, including a full
// inventory, leaves the profile unchanged: no durability loss and no cooldown.
func (e *Engine) Mine(ctx context.Context, p *domain.PlayerProfile, now time.Time) (*Result, error) {
	log := logger.FromContext(ctx)

	if err := cooldown.CheckUntil(cooldown.ActionMine, now, p.Crafting.MiningCooldownUntil); err != nil {
		return nil, err
	}

	if p.Crafting.ActiveZone == "" {
		return nil, domain.ErrZoneNotSet
	}
	zone, ok := e.catalog.Zone(p.Crafting.ActiveZone)
	if !ok {
		return nil, fmt.Errorf(ErrFmtActiveMissing, domain.ErrUnknownZone, p.Crafting.ActiveZone)
	}
	if err := checkLevel(p, zone); err != nil {
		return nil, err
	}
	tool, err := checkTool(p, zone)
	if err != nil {
		return nil, err
	}

	drop, err := e.roll(p, zone, *tool)
	if err != nil {
		return nil, err
	}
	log.Debug(LogMsgMineRolled, "zone", zone.ID, "material", drop.MaterialID, "quantity", drop.Quantity,
		"quality", drop.Quality, "rare_reroll", drop.RareReroll)

	// Settle. The material goes in first: if it does not fit nothing else changes.
	stack, err := e.ledger.AddMaterial(p, drop.MaterialID, drop.Quantity, drop.Quality, domain.OriginMined)
	if err != nil {
		return nil, fmt.Errorf(ErrFmtSettle, zone.ID, err)
	}
	drop.Rarity = stack.Rarity

	tier := tool.Tier
	wear, err := e.ledger.Wear(p, zone.DurabilityCost)
	if err != nil {
		return nil, fmt.Errorf(ErrFmtSettle, zone.ID, err)
	}
	drop.ToolID = wear.ToolID
	drop.Durability = wear.Durability
	drop.ToolBroken = wear.Broken
	if wear.Broken {
		log.Info(LogMsgToolBroke, "player", p.PlayerID, "tool", wear.ToolID)
	}

	p.Stats.Mined++
	p.Crafting.MiningCooldownUntil = now.Add(e.CooldownForTier(tier))
	drop.CooldownUntil = p.Crafting.MiningCooldownUntil

	log.Info(LogMsgMineSettled, "player", p.PlayerID, "zone", zone.ID, "material", drop.MaterialID,
		"quantity", drop.Quantity, "tool_broken", drop.ToolBroken)
	return drop, nil
}

// roll draws material, quantity and quality without touching the profile
func (e *Engine) roll(p *domain.PlayerProfile, zone domain.Zone, tool domain.Tool) (*Result, error) {
	rng := e.resolver.Source()
	rules := e.catalog.Rules()
	res := &Result{ZoneID: zone.ID}

	baseQty := utils.RandomInt(rng, zone.MinQuantity, zone.MaxQuantity)

	weights := make([]int, len(zone.Drops))
	boosted := make([]bool, len(zone.Drops))
	for i, d := range zone.Drops {
		weights[i] = d.Weight
		if d.Job != "" && p.HoldsJob(d.Job) {
			weights[i] += rules.JobBoostWeight
			boosted[i] = true
		}
	}
	idx, err := e.resolver.PickIndex(weights)
	if err != nil {
		return nil, err
	}

	if tool.Bonus.RareChanceBonus > 0 && utils.Roll(rng, tool.Bonus.RareChanceBonus) {
		if rareIdx, ok, err := e.rareReroll(weights); err != nil {
			return nil, err
		} else if ok {
			idx = rareIdx
			res.RareReroll = true
		}
	}
	res.MaterialID = zone.Drops[idx].MaterialID
	res.JobBoosted = boosted[idx]

	multiplier := tool.Bonus.QuantityMultiplier
	if multiplier <= 0 {
		multiplier = 1
	}
	res.Quantity = max(int(float64(baseQty)*multiplier), 1)

	quality := utils.RandomInt(rng, rules.Mining.MinQuality, rules.Mining.MaxQuality) + tool.Bonus.QualityBonus
	res.Quality = utils.ClampQuality(quality)
	return res, nil
}

// rareReroll draws again among the entries weighted below the pool's mean.
// Reports false when no entry is below the mean.
func (e *Engine) rareReroll(weights []int) (int, bool, error) {
	total := 0
	for _, w := range weights {
		total += w
	}
	mean := float64(total) / float64(len(weights))

	rare := make([]int, len(weights))
	found := false
	for i, w := range weights {
		if w > 0 && float64(w) < mean {
			rare[i] = w
			found = true
		}
	}
	if !found {
		return 0, false, nil
	}
	idx, err := e.resolver.PickIndex(rare)
	return idx, err == nil, err
}

func checkLevel(p *domain.PlayerProfile, zone domain.Zone) error {
	if p.Level < zone.MinLevel {
		return fmt.Errorf(ErrFmtZoneLevel, domain.ErrLevelTooLow, zone.ID, zone.MinLevel, p.Level)
	}
	return nil
}

func checkTool(p *domain.PlayerProfile, zone domain.Zone) (*domain.Tool, error) {
	tool := p.EquippedTool()
	if tool == nil {
		return nil, domain.ErrNoToolEquipped
	}
	if tool.Broken() {
		return nil, fmt.Errorf(ErrFmtToolBroken, domain.ErrToolBroken, tool.ToolID)
	}
	if tool.Tier < zone.RequiredToolTier {
		return nil, fmt.Errorf(ErrFmtToolTier, domain.ErrToolTierTooLow, zone.ID, zone.RequiredToolTier, tool.ToolID, tool.Tier)
	}
	return tool, nil
}
