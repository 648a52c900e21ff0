package leveling

import (
	"math"
)

// Curve derives a level from cumulative XP.
// Reaching level N from level N-1 costs BaseXP * (N-1)^GrowthRate; level 1 is free.
type Curve struct {
	BaseXP     float64 `json:"base_xp" yaml:"base_xp" validate:"gte=0"`
	GrowthRate float64 `json:"growth_rate" yaml:"growth_rate" validate:"gte=0"`
	MaxLevel   int     `json:"max_level" yaml:"max_level" validate:"gte=0"`
}

// Default curve values
const (
	DefaultBaseXP     = 100
	DefaultGrowthRate = 1.5
	DefaultMaxLevel   = 100
)

// DefaultCurve returns the stock progression curve
func DefaultCurve() Curve {
	return Curve{BaseXP: DefaultBaseXP, GrowthRate: DefaultGrowthRate, MaxLevel: DefaultMaxLevel}
}

// XPNeeded returns the XP to go from level-1 to level
func (c Curve) XPNeeded(level int) int64 {
	if level <= 1 {
		return 0
	}
	return int64(c.BaseXP * math.Pow(float64(level-1), c.GrowthRate))
}

// XPForLevel returns the cumulative XP required to reach level
func (c Curve) XPForLevel(level int) int64 {
	cumulative := int64(0)
	for l := 2; l <= level; l++ {
		cumulative += c.XPNeeded(l)
	}
	return cumulative
}

// Progress returns the level for totalXP and the XP earned inside that level
func (c Curve) Progress(totalXP int64) (int, int64) {
	level, cumulative := c.walk(totalXP)
	return level, totalXP - cumulative
}

// ToNext returns the XP still missing for the next level, 0 at the cap
func (c Curve) ToNext(totalXP int64) int64 {
	level, cumulative := c.walk(totalXP)
	if c.MaxLevel > 0 && level >= c.MaxLevel {
		return 0
	}
	return cumulative + c.XPNeeded(level+1) - totalXP
}

// walk returns the level and the cumulative XP at which that level started
func (c Curve) walk(totalXP int64) (int, int64) {
	level := 1
	cumulative := int64(0)
	limit := c.MaxLevel
	if limit <= 0 {
		limit = DefaultMaxLevel
	}
	for level < limit {
		next := c.XPNeeded(level + 1)
		if next <= 0 || cumulative+next > totalXP {
			break
		}
		cumulative += next
		level++
	}
	return level, cumulative
}
