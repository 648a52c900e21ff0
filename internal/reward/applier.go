package reward

import (
	"fmt"
	"time"

	"github.com/osse101/brandish-progression/internal/catalog"
	"github.com/osse101/brandish-progression/internal/domain"
	"github.com/osse101/brandish-progression/internal/ledger"
	"github.com/osse101/brandish-progression/internal/utils"
)

// Applier grants resolved rewards to a profile
type Applier struct {
	catalog *catalog.Catalog
	ledger  *ledger.Ledger
	curve   domain.LevelCurve
	rng     utils.RandomSource
}

// NewApplier creates an applier. XP is levelled on the catalog's level curve.
func NewApplier(c *catalog.Catalog, l *ledger.Ledger, rng utils.RandomSource) *Applier {
	if rng == nil {
		rng = utils.DefaultSource()
	}
	return &Applier{
		catalog: c,
		ledger:  l,
		curve:   c.Defaults().LevelCurve,
		rng:     rng,
	}
}

// Applied reports what was actually granted. Random boxes appear as the concrete box picked.
type Applied struct {
	Granted      []domain.Reward `json:"granted"`
	LevelsGained int             `json:"levels_gained,omitempty"`
}

// Coins sums the coins granted
func (a Applied) Coins() int64 {
	var total int64
	for _, r := range a.Granted {
		if r.Kind == domain.RewardCoins {
			total += r.Amount
		}
	}
	return total
}

// Apply grants every reward or none. Capacity and tool ownership are checked
// for the whole batch before the first grant, so a failure leaves p unchanged.
func (a *Applier) Apply(p *domain.PlayerProfile, rewards []domain.Reward, origin string, now time.Time) (Applied, error) {
	resolved, err := a.prepare(p, rewards)
	if err != nil {
		return Applied{}, err
	}

	out := Applied{Granted: resolved}
	for _, r := range resolved {
		switch r.Kind {
		case domain.RewardCoins:
			err = p.Credit(domain.CurrencyCoins, r.Amount)
		case domain.RewardTokens:
			err = p.Credit(domain.CurrencyTokens, r.Amount)
		case domain.RewardXP:
			out.LevelsGained += p.AddXP(r.Amount, a.curve)
		case domain.RewardMaterial:
			_, err = a.ledger.AddMaterial(p, r.ID, int(r.Amount), r.Quality, origin)
		case domain.RewardLootbox:
			err = p.AddItem(domain.ItemLootbox, r.ID, int(r.Amount), now)
		case domain.RewardTool:
			_, err = a.ledger.GrantTool(p, r.ID)
		default:
			err = fmt.Errorf(ErrFmtUnsupportedKind, domain.ErrCatalogCorrupt, r.Kind)
		}
		if err != nil {
			return Applied{}, fmt.Errorf(ErrFmtApplyReward, r.Kind, err)
		}
	}
	return out, nil
}

// Check runs the batch checks of Apply without granting anything
func (a *Applier) Check(p *domain.PlayerProfile, rewards []domain.Reward) error {
	_, err := a.prepare(p, rewards)
	return err
}

// prepare resolves random boxes, fills default amounts and runs the batch checks
func (a *Applier) prepare(p *domain.PlayerProfile, rewards []domain.Reward) ([]domain.Reward, error) {
	resolved := make([]domain.Reward, 0, len(rewards))
	var grants []ledger.MaterialGrant
	tools := make(map[string]bool)

	for _, r := range rewards {
		if r.Amount <= 0 {
			switch r.Kind {
			case domain.RewardLootbox, domain.RewardRandomBox, domain.RewardTool:
				r.Amount = 1
			default:
				continue
			}
		}

		switch r.Kind {
		case domain.RewardCoins, domain.RewardTokens, domain.RewardXP:
			resolved = append(resolved, r)
		case domain.RewardMaterial:
			def, ok := a.catalog.Material(r.ID)
			if !ok {
				return nil, fmt.Errorf("%w: material %q", domain.ErrCatalogCorrupt, r.ID)
			}
			r.ID = def.ID
			grants = append(grants, ledger.MaterialGrant{MaterialID: def.ID, Quantity: int(r.Amount)})
			resolved = append(resolved, r)
		case domain.RewardLootbox:
			box, ok := a.catalog.Box(r.ID)
			if !ok {
				return nil, fmt.Errorf(ErrFmtUnknownBox, domain.ErrCatalogCorrupt, r.ID)
			}
			r.ID = box.ID
			resolved = append(resolved, r)
		case domain.RewardRandomBox:
			picked, err := a.pickBoxes(r)
			if err != nil {
				return nil, err
			}
			resolved = append(resolved, picked...)
		case domain.RewardTool:
			def, ok := a.catalog.Tool(r.ID)
			if !ok {
				return nil, fmt.Errorf("%w: tool %q", domain.ErrCatalogCorrupt, r.ID)
			}
			if p.FindTool(def.ID) != nil || tools[def.ID] {
				return nil, fmt.Errorf("%w: %s", domain.ErrToolAlreadyHeld, def.ID)
			}
			tools[def.ID] = true
			r.ID = def.ID
			r.Amount = 1
			resolved = append(resolved, r)
		default:
			return nil, fmt.Errorf(ErrFmtUnsupportedKind, domain.ErrCatalogCorrupt, r.Kind)
		}
	}

	if len(grants) > 0 {
		if err := a.ledger.CheckCapacity(p, grants...); err != nil {
			return nil, err
		}
	}
	return resolved, nil
}

// pickBoxes turns a random_box reward into concrete lootbox grants, one uniform pick per unit
func (a *Applier) pickBoxes(r domain.Reward) ([]domain.Reward, error) {
	candidates := r.Pool
	if len(candidates) == 0 {
		candidates = a.catalog.BoxIDs()
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf(ErrFmtNoBoxes, domain.ErrCatalogCorrupt)
	}

	counts := make(map[string]int64, len(candidates))
	var order []string
	for range r.Amount {
		id := candidates[a.rng.IntN(len(candidates))]
		box, ok := a.catalog.Box(id)
		if !ok {
			return nil, fmt.Errorf(ErrFmtUnknownBox, domain.ErrCatalogCorrupt, id)
		}
		if counts[box.ID] == 0 {
			order = append(order, box.ID)
		}
		counts[box.ID]++
	}

	out := make([]domain.Reward, 0, len(order))
	for _, id := range order {
		out = append(out, domain.Reward{Kind: domain.RewardLootbox, ID: id, Amount: counts[id]})
	}
	return out, nil
}
