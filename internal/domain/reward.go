package domain

import (
	"fmt"
)

// RewardKind is the closed set of things a reward can grant.
// Every switch over RewardKind must handle all values; adding one is a compile-visible change.
type RewardKind int

const (
	RewardCoins RewardKind = iota + 1
	RewardTokens
	RewardXP
	RewardMaterial
	RewardLootbox
	RewardRandomBox
	RewardTool
)

var rewardKindNames = map[RewardKind]string{
	RewardCoins:     "coins",
	RewardTokens:    "tokens",
	RewardXP:        "xp",
	RewardMaterial:  "material",
	RewardLootbox:   "lootbox",
	RewardRandomBox: "random_box",
	RewardTool:      "tool",
}

// AllRewardKinds lists every kind in declaration order
func AllRewardKinds() []RewardKind {
	return []RewardKind{RewardCoins, RewardTokens, RewardXP, RewardMaterial, RewardLootbox, RewardRandomBox, RewardTool}
}

func (k RewardKind) String() string {
	if name, ok := rewardKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("reward_kind(%d)", int(k))
}

// Valid reports whether k is one of the declared kinds
func (k RewardKind) Valid() bool {
	_, ok := rewardKindNames[k]
	return ok
}

// ParseRewardKind converts the configuration spelling into a RewardKind
func ParseRewardKind(s string) (RewardKind, error) {
	for k, name := range rewardKindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown reward kind %q", ErrInvalidInput, s)
}

// MarshalText implements encoding.TextMarshaler
func (k RewardKind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: unknown reward kind %d", ErrInvalidInput, int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *RewardKind) UnmarshalText(text []byte) error {
	parsed, err := ParseRewardKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Reward describes one grant. ID names the material, box or tool for kinds that need one.
type Reward struct {
	Kind    RewardKind `json:"kind" yaml:"kind"`
	ID      string     `json:"id,omitempty" yaml:"id,omitempty"`
	Amount  int64      `json:"amount" yaml:"amount"`
	Quality int        `json:"quality,omitempty" yaml:"quality,omitempty"`
	// Pool restricts which boxes a random_box reward may hand out; empty means any box.
	Pool []string `json:"pool,omitempty" yaml:"pool,omitempty"`
}

// Scaled returns a copy with Amount multiplied and floored, never below 1 for positive amounts.
func (r Reward) Scaled(multiplier float64) Reward {
	if r.Amount <= 0 || multiplier <= 0 {
		return r
	}
	scaled := int64(float64(r.Amount) * multiplier)
	if scaled < 1 {
		scaled = 1
	}
	r.Amount = scaled
	return r
}
