package crafting

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/osse101/brandish-progression/internal/catalog"
	"github.com/osse101/brandish-progression/internal/domain"
	"github.com/osse101/brandish-progression/internal/ledger"
	"github.com/osse101/brandish-progression/internal/logger"
	"github.com/osse101/brandish-progression/internal/reward"
	"github.com/osse101/brandish-progression/internal/utils"
)

// Engine runs blueprints through validate, roll and settle
type Engine struct {
	catalog *catalog.Catalog
	ledger  *ledger.Ledger
	applier *reward.Applier
	rng     utils.RandomSource
}

// NewEngine creates a crafting engine
func NewEngine(c *catalog.Catalog, l *ledger.Ledger, a *reward.Applier, rng utils.RandomSource) *Engine {
	if rng == nil {
		rng = utils.DefaultSource()
	}
	return &Engine{catalog: c, ledger: l, applier: a, rng: rng}
}

// Result is the outcome of one craft attempt
type Result struct {
	BlueprintID  string                       `json:"blueprint_id"`
	Crafted      bool                         `json:"crafted"`
	SuccessRate  float64                      `json:"success_rate"`
	QualityBonus float64                      `json:"quality_bonus"`
	CostCoins    int64                        `json:"cost_coins"`
	CostTokens   int64                        `json:"cost_tokens"`
	Consumed     []domain.MaterialRequirement `json:"consumed"`
	Reward       *reward.Applied              `json:"reward,omitempty"`
}

// SuccessRate returns the chance a blueprint succeeds for this player and the quality bonus
// that went into it. Better inputs raise the chance; worse inputs never lower it below the
// blueprint's own rate. The result is capped at the catalog's maximum success rate.
func (e *Engine) SuccessRate(p *domain.PlayerProfile, bp domain.Blueprint) (float64, float64) {
	rules := e.catalog.Rules().Crafting
	avg := e.ledger.QualityOf(p, bp.Materials)
	bonus := (avg - rules.QualityPivot) / rules.QualityDivisor
	rate := math.Max(bp.SuccessRate, bp.SuccessRate+bonus)
	return math.Min(rate, rules.MaxSuccessRate), bonus
}

// Craft attempts a blueprint. Validation failures leave p untouched. Once validated,
// the costs are always paid and the result is granted only on a successful roll.
func (e *Engine) Craft(ctx context.Context, p *domain.PlayerProfile, blueprintID string, now time.Time) (*Result, error) {
	log := logger.FromContext(ctx)

	bp, err := e.validate(p, blueprintID)
	if err != nil {
		return nil, err
	}

	rate, bonus := e.SuccessRate(p, bp)
	log.Debug(LogMsgCraftValidated, "blueprint", bp.ID, "success_rate", rate, "quality_bonus", bonus)

	roll := e.rng.Float64()
	crafted := roll <= rate
	log.Debug(LogMsgCraftRolled, "blueprint", bp.ID, "roll", roll, "crafted", crafted)

	// Settle: pay regardless of the roll.
	if err := p.Debit(domain.CurrencyCoins, bp.CostCoins); err != nil {
		return nil, fmt.Errorf(ErrMsgSettleFailedFmt, bp.ID, err)
	}
	if err := p.Debit(domain.CurrencyTokens, bp.CostTokens); err != nil {
		return nil, fmt.Errorf(ErrMsgSettleFailedFmt, bp.ID, err)
	}
	if err := e.ledger.ConsumeMaterials(p, bp.Materials); err != nil {
		return nil, fmt.Errorf(ErrMsgSettleFailedFmt, bp.ID, err)
	}

	res := &Result{
		BlueprintID:  bp.ID,
		Crafted:      crafted,
		SuccessRate:  rate,
		QualityBonus: bonus,
		CostCoins:    bp.CostCoins,
		CostTokens:   bp.CostTokens,
		Consumed:     bp.Materials,
	}

	if !crafted {
		p.Stats.CraftFailed++
		log.Info(LogMsgCraftFailed, "blueprint", bp.ID, "player", p.PlayerID)
		return res, nil
	}

	applied, err := e.applier.Apply(p, []domain.Reward{bp.Result}, domain.OriginCrafted, now)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgSettleFailedFmt, bp.ID, err)
	}
	p.Stats.Crafted++
	res.Reward = &applied
	log.Info(LogMsgCraftSucceeded, "blueprint", bp.ID, "player", p.PlayerID)
	return res, nil
}

// validate runs every check against the profile without mutating it
func (e *Engine) validate(p *domain.PlayerProfile, blueprintID string) (domain.Blueprint, error) {
	bp, ok := e.catalog.Blueprint(blueprintID)
	if !ok {
		return domain.Blueprint{}, fmt.Errorf(ErrMsgUnknownBlueprintFmt, domain.ErrUnknownBlueprint, blueprintID)
	}
	if p.Level < bp.RequiredLevel {
		return domain.Blueprint{}, fmt.Errorf(ErrMsgLevelTooLowFmt, domain.ErrLevelTooLow, bp.ID, bp.RequiredLevel, p.Level)
	}
	if err := p.CanAfford(bp.CostCoins, bp.CostTokens); err != nil {
		return domain.Blueprint{}, fmt.Errorf(ErrMsgCannotAffordFmt, bp.ID, err)
	}
	if err := e.ledger.CheckMaterials(p, bp.Materials); err != nil {
		return domain.Blueprint{}, err
	}

	// The result must fit once the inputs are gone, or a success could not be paid out.
	trial := p.Clone()
	if err := e.ledger.ConsumeMaterials(trial, bp.Materials); err != nil {
		return domain.Blueprint{}, err
	}
	if err := e.applier.Check(trial, []domain.Reward{bp.Result}); err != nil {
		return domain.Blueprint{}, fmt.Errorf(ErrMsgResultWontFitFmt, bp.ID, err)
	}
	return bp, nil
}
