package reward

import (
	"fmt"

	"github.com/osse101/brandish-progression/internal/domain"
	"github.com/osse101/brandish-progression/internal/utils"
)

// Resolver draws from weighted pools. It has no side effects beyond its random source;
// callers apply the returned rewards.
type Resolver struct {
	rng utils.RandomSource
}

// NewResolver creates a resolver drawing from rng
func NewResolver(rng utils.RandomSource) *Resolver {
	if rng == nil {
		rng = utils.DefaultSource()
	}
	return &Resolver{rng: rng}
}

// Source exposes the random source so engines share one stream of rolls
func (r *Resolver) Source() utils.RandomSource {
	return r.rng
}

// PickIndex selects an index with probability weight/totalWeight.
// It draws r in [0, total) and walks the weights subtracting until r <= 0.
// Falls back to index 0 when nothing carries weight.
func (r *Resolver) PickIndex(weights []int) (int, error) {
	if len(weights) == 0 {
		return 0, fmt.Errorf(ErrFmtEmptyPool, domain.ErrEmptyPool, 0)
	}
	total := 0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total == 0 {
		return 0, nil
	}

	roll := r.rng.Float64() * float64(total)
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		roll -= float64(w)
		if roll <= 0 {
			return i, nil
		}
	}
	return 0, nil
}

// Resolve draws a single entry from a reward pool
func (r *Resolver) Resolve(pool []domain.RewardEntry) (domain.RewardEntry, error) {
	weights := make([]int, len(pool))
	for i, e := range pool {
		weights[i] = e.Weight
	}
	i, err := r.PickIndex(weights)
	if err != nil {
		return domain.RewardEntry{}, err
	}
	return pool[i], nil
}

// Resolution is the outcome of a draw with modifiers
type Resolution struct {
	Rewards       []domain.Reward `json:"rewards"`
	Lucky         bool            `json:"lucky,omitempty"`
	Multiplier    float64         `json:"multiplier,omitempty"`
	ExtraDrops    int             `json:"extra_drops,omitempty"`
	Jackpot       bool            `json:"jackpot,omitempty"`
	PityTriggered bool            `json:"pity_triggered,omitempty"`
	// BestTier is the highest tier among the drawn pool entries
	BestTier int `json:"best_tier"`
}

// ResolveWithModifiers draws from pool and applies each configured modifier
// through its own Bernoulli trial. pityCounter is the caller's count of draws
// that stayed below the pity tier; reaching the threshold forces the pity pool.
func (r *Resolver) ResolveWithModifiers(pool []domain.RewardEntry, mods domain.Modifiers, pityCounter int) (Resolution, error) {
	var res Resolution

	primaryPool := pool
	if mods.Pity != nil && mods.Pity.Threshold > 0 && pityCounter >= mods.Pity.Threshold && len(mods.Pity.Pool) > 0 {
		primaryPool = mods.Pity.Pool
		res.PityTriggered = true
	}

	primary, err := r.Resolve(primaryPool)
	if err != nil {
		return Resolution{}, err
	}
	res.BestTier = primary.Tier
	first := primary.Reward

	if lucky := mods.Lucky; lucky != nil && Scalable(first.Kind) && utils.Roll(r.rng, lucky.Chance) {
		res.Lucky = true
		res.Multiplier = utils.RandomFloat(r.rng, lucky.MinMultiplier, lucky.MaxMultiplier)
		first = first.Scaled(res.Multiplier)
	}
	res.Rewards = append(res.Rewards, first)

	if extra := mods.ExtraDrops; extra != nil && extra.MaxExtra > 0 && utils.Roll(r.rng, extra.Chance) {
		res.ExtraDrops = utils.RandomInt(r.rng, 1, extra.MaxExtra)
		for range res.ExtraDrops {
			e, err := r.Resolve(pool)
			if err != nil {
				return Resolution{}, err
			}
			res.BestTier = max(res.BestTier, e.Tier)
			res.Rewards = append(res.Rewards, e.Reward)
		}
	}

	if jackpot := mods.Jackpot; jackpot != nil && utils.Roll(r.rng, jackpot.Chance) {
		res.Jackpot = true
		res.Rewards = append(res.Rewards, jackpot.Reward)
	}

	return res, nil
}

// Scalable reports whether a reward kind carries an amount a lucky roll can multiply
func Scalable(kind domain.RewardKind) bool {
	switch kind {
	case domain.RewardCoins, domain.RewardTokens, domain.RewardXP, domain.RewardMaterial:
		return true
	case domain.RewardLootbox, domain.RewardRandomBox, domain.RewardTool:
		return false
	}
	return false
}
