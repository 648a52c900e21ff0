package domain

import (
	"fmt"
	"time"
)

// Balance returns the current balance of a currency
func (p *PlayerProfile) Balance(kind CurrencyKind) int64 {
	switch kind {
	case CurrencyCoins:
		return p.Currency.Coins
	case CurrencyTokens:
		return p.Currency.Tokens
	}
	return 0
}

// CanAfford reports whether both balances cover the given costs
func (p *PlayerProfile) CanAfford(coins, tokens int64) error {
	if coins > p.Currency.Coins {
		return fmt.Errorf("%w: need %d coins, have %d", ErrInsufficientFunds, coins, p.Currency.Coins)
	}
	if tokens > p.Currency.Tokens {
		return fmt.Errorf("%w: need %d tokens, have %d", ErrInsufficientTokens, tokens, p.Currency.Tokens)
	}
	return nil
}

// Credit adds amount to a balance
func (p *PlayerProfile) Credit(kind CurrencyKind, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidAmount, amount)
	}
	switch kind {
	case CurrencyCoins:
		p.Currency.Coins += amount
	case CurrencyTokens:
		p.Currency.Tokens += amount
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCurrency, kind)
	}
	return nil
}

// Debit removes amount from a balance. The balance is checked before it is touched.
func (p *PlayerProfile) Debit(kind CurrencyKind, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidAmount, amount)
	}
	have := p.Balance(kind)
	switch kind {
	case CurrencyCoins:
		if have < amount {
			return fmt.Errorf("%w: need %d coins, have %d", ErrInsufficientFunds, amount, have)
		}
		p.Currency.Coins -= amount
	case CurrencyTokens:
		if have < amount {
			return fmt.Errorf("%w: need %d tokens, have %d", ErrInsufficientTokens, amount, have)
		}
		p.Currency.Tokens -= amount
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCurrency, kind)
	}
	return nil
}

// ItemQuantity returns how many of an item the player holds
func (p *PlayerProfile) ItemQuantity(kind ItemKind, typeID string) int {
	for _, s := range p.Inventory {
		if s.Kind == kind && s.TypeID == typeID {
			return s.Quantity
		}
	}
	return 0
}

// AddItem adds qty of an item, merging into an existing stack
func (p *PlayerProfile) AddItem(kind ItemKind, typeID string, qty int, now time.Time) error {
	if qty <= 0 {
		return fmt.Errorf("%w: item quantity %d", ErrInvalidAmount, qty)
	}
	for i := range p.Inventory {
		if p.Inventory[i].Kind == kind && p.Inventory[i].TypeID == typeID {
			p.Inventory[i].Quantity += qty
			return nil
		}
	}
	p.Inventory = append(p.Inventory, ItemStack{Kind: kind, TypeID: typeID, Quantity: qty, AcquiredAt: now})
	return nil
}

// RemoveItem removes qty of an item and prunes the stack if it empties
func (p *PlayerProfile) RemoveItem(kind ItemKind, typeID string, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("%w: item quantity %d", ErrInvalidAmount, qty)
	}
	for i := range p.Inventory {
		s := &p.Inventory[i]
		if s.Kind != kind || s.TypeID != typeID {
			continue
		}
		if s.Quantity < qty {
			break
		}
		s.Quantity -= qty
		if s.Quantity == 0 {
			p.Inventory = append(p.Inventory[:i], p.Inventory[i+1:]...)
		}
		return nil
	}
	return fmt.Errorf("%w: need %d %s", ErrInsufficientItems, qty, typeID)
}

// LevelCurve maps cumulative XP onto a level and the XP earned inside that level
type LevelCurve interface {
	Progress(totalXP int64) (level int, intoLevel int64)
}

// AddXP grants experience and re-derives the level. Returns the number of levels gained.
func (p *PlayerProfile) AddXP(amount int64, curve LevelCurve) int {
	if amount <= 0 {
		return 0
	}
	before := p.Level
	p.TotalXP += amount
	level, into := curve.Progress(p.TotalXP)
	// Level never goes down, even if the curve is retuned.
	if level > p.Level {
		p.Level = level
	}
	p.XP = into
	return p.Level - before
}

// FindTool returns the owned tool with id, or nil
func (p *PlayerProfile) FindTool(toolID string) *Tool {
	for i := range p.Tools {
		if p.Tools[i].ToolID == toolID {
			return &p.Tools[i]
		}
	}
	return nil
}

// EquippedTool returns the equipped tool, or nil when none is equipped
func (p *PlayerProfile) EquippedTool() *Tool {
	if p.EquippedToolID == "" {
		return nil
	}
	return p.FindTool(p.EquippedToolID)
}

// FindMaterial returns the stack of a material, or nil
func (p *PlayerProfile) FindMaterial(materialID string) *MaterialStack {
	for i := range p.Materials {
		if p.Materials[i].MaterialID == materialID {
			return &p.Materials[i]
		}
	}
	return nil
}

// MaterialQuantity returns the held quantity of a material
func (p *PlayerProfile) MaterialQuantity(materialID string) int {
	if s := p.FindMaterial(materialID); s != nil {
		return s.Quantity
	}
	return 0
}

// PruneMaterials drops empty stacks
func (p *PlayerProfile) PruneMaterials() {
	kept := p.Materials[:0]
	for _, s := range p.Materials {
		if s.Quantity > 0 {
			kept = append(kept, s)
		}
	}
	p.Materials = kept
}

// FindJob returns the membership record for a job, or nil
func (p *PlayerProfile) FindJob(jobID string) *JobRecord {
	for i := range p.Jobs.Membership {
		if p.Jobs.Membership[i].JobID == jobID {
			return &p.Jobs.Membership[i]
		}
	}
	return nil
}

// HoldsJob reports whether the player is a member of a job
func (p *PlayerProfile) HoldsJob(jobID string) bool {
	return p.FindJob(jobID) != nil
}

// RemoveJob deletes a membership record entirely
func (p *PlayerProfile) RemoveJob(jobID string) bool {
	for i := range p.Jobs.Membership {
		if p.Jobs.Membership[i].JobID == jobID {
			p.Jobs.Membership = append(p.Jobs.Membership[:i], p.Jobs.Membership[i+1:]...)
			if p.Jobs.ActiveJobID == jobID {
				p.Jobs.ActiveJobID = ""
			}
			return true
		}
	}
	return false
}

// FindMission returns a mission from either scope, or nil
func (p *PlayerProfile) FindMission(missionID string) *Mission {
	for i := range p.Missions.Daily {
		if p.Missions.Daily[i].ID == missionID {
			return &p.Missions.Daily[i]
		}
	}
	for i := range p.Missions.Weekly {
		if p.Missions.Weekly[i].ID == missionID {
			return &p.Missions.Weekly[i]
		}
	}
	return nil
}
