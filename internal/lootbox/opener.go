package lootbox

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/brandish-progression/internal/catalog"
	"github.com/osse101/brandish-progression/internal/domain"
	"github.com/osse101/brandish-progression/internal/logger"
	"github.com/osse101/brandish-progression/internal/reward"
)

// Opener opens lootboxes: it resolves the box pool with its modifiers, grants the
// rewards and keeps the per-box pity counter on the profile.
type Opener struct {
	catalog  *catalog.Catalog
	resolver *reward.Resolver
	applier  *reward.Applier
}

// NewOpener creates a lootbox opener
func NewOpener(c *catalog.Catalog, r *reward.Resolver, a *reward.Applier) *Opener {
	return &Opener{catalog: c, resolver: r, applier: a}
}

// Result is the outcome of opening one box
type Result struct {
	BoxID  string         `json:"box_id"`
	Source string         `json:"source"`
	Reward reward.Applied `json:"reward"`
	reward.Resolution
	PityCounter int `json:"pity_counter"`
}

// Open opens one box. From SourceInventory the box must be held and is consumed;
// SourceAdhoc opens it without an inventory check. Rewards are granted all or
// nothing, so a failed grant keeps the box and the pity counter as they were.
func (o *Opener) Open(ctx context.Context, p *domain.PlayerProfile, boxID, source string, now time.Time) (*Result, error) {
	log := logger.FromContext(ctx)

	box, ok := o.catalog.Box(boxID)
	if !ok {
		return nil, fmt.Errorf(ErrFmtUnknownBox, domain.ErrUnknownBox, boxID)
	}

	switch source {
	case SourceInventory:
		if p.ItemQuantity(domain.ItemLootbox, box.ID) < 1 {
			return nil, fmt.Errorf(ErrFmtNotInInventory, domain.ErrNotInInventory, box.ID)
		}
	case SourceAdhoc:
	default:
		return nil, fmt.Errorf(ErrFmtUnknownSource, domain.ErrInvalidInput, source)
	}

	resolution, err := o.resolver.ResolveWithModifiers(box.Pool, box.Modifiers, p.Pity[box.ID])
	if err != nil {
		return nil, fmt.Errorf(ErrFmtResolve, box.ID, err)
	}
	if resolution.PityTriggered {
		log.Info(reward.LogMsgPityTriggered, "player", p.PlayerID, "box", box.ID, "counter", p.Pity[box.ID])
	}

	applied, err := o.applier.Apply(p, resolution.Rewards, domain.OriginLootbox, now)
	if err != nil {
		return nil, fmt.Errorf(ErrFmtGrant, box.ID, err)
	}

	if source == SourceInventory {
		if err := p.RemoveItem(domain.ItemLootbox, box.ID, 1); err != nil {
			return nil, err
		}
	}

	if box.Pity != nil {
		if p.Pity == nil {
			p.Pity = map[string]int{}
		}
		if resolution.PityTriggered || resolution.BestTier >= box.Pity.MinTier {
			p.Pity[box.ID] = 0
			log.Debug(LogMsgPityReset, "box", box.ID)
		} else {
			p.Pity[box.ID]++
			log.Debug(LogMsgPityIncreased, "box", box.ID, "counter", p.Pity[box.ID])
		}
	}
	p.Stats.BoxesOpened++

	log.Info(LogMsgBoxOpened, "player", p.PlayerID, "box", box.ID, "source", source,
		"rewards", len(applied.Granted), "lucky", resolution.Lucky, "jackpot", resolution.Jackpot)
	return &Result{
		BoxID:       box.ID,
		Source:      source,
		Reward:      applied,
		Resolution:  resolution,
		PityCounter: p.Pity[box.ID],
	}, nil
}
