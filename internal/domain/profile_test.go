package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type linearCurve struct{ perLevel int64 }

func (c linearCurve) Progress(total int64) (int, int64) {
	return int(total/c.perLevel) + 1, total % c.perLevel
}

var testNow = time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)

func TestDebit(t *testing.T) {
	tests := []struct {
		name      string
		kind      CurrencyKind
		amount    int64
		wantErr   error
		wantCoins int64
	}{
		{"exact balance", CurrencyCoins, 25, nil, 0},
		{"partial", CurrencyCoins, 10, nil, 15},
		{"overdraw", CurrencyCoins, 26, ErrInsufficientFunds, 25},
		{"negative", CurrencyCoins, -1, ErrInvalidAmount, 25},
		{"tokens overdraw", CurrencyTokens, 1, ErrInsufficientTokens, 25},
		{"unknown currency", CurrencyKind("gems"), 1, ErrUnknownCurrency, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPlayerProfile("p1", "g1", testNow)
			p.Currency.Coins = 25

			err := p.Debit(tt.kind, tt.amount)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantCoins, p.Currency.Coins)
		})
	}
}

func TestCredit(t *testing.T) {
	p := NewPlayerProfile("p1", "g1", testNow)

	require.NoError(t, p.Credit(CurrencyTokens, 7))
	require.NoError(t, p.Credit(CurrencyCoins, 3))
	assert.Equal(t, int64(7), p.Balance(CurrencyTokens))
	assert.Equal(t, int64(3), p.Balance(CurrencyCoins))

	assert.ErrorIs(t, p.Credit(CurrencyCoins, -5), ErrInvalidAmount)
	assert.Equal(t, int64(3), p.Currency.Coins)
}

func TestItems(t *testing.T) {
	t.Run("merge and prune", func(t *testing.T) {
		p := NewPlayerProfile("p1", "g1", testNow)
		require.NoError(t, p.AddItem(ItemLootbox, "basic_box", 2, testNow))
		require.NoError(t, p.AddItem(ItemLootbox, "basic_box", 1, testNow.Add(time.Hour)))
		require.Len(t, p.Inventory, 1)
		assert.Equal(t, 3, p.ItemQuantity(ItemLootbox, "basic_box"))
		assert.Equal(t, testNow, p.Inventory[0].AcquiredAt, "merge keeps the first acquisition time")

		require.NoError(t, p.RemoveItem(ItemLootbox, "basic_box", 3))
		assert.Empty(t, p.Inventory, "zero-quantity stacks are pruned")
	})

	t.Run("remove more than held leaves stack unchanged", func(t *testing.T) {
		p := NewPlayerProfile("p1", "g1", testNow)
		require.NoError(t, p.AddItem(ItemConsumable, "potion", 1, testNow))

		err := p.RemoveItem(ItemConsumable, "potion", 2)

		assert.ErrorIs(t, err, ErrInsufficientItems)
		assert.Equal(t, 1, p.ItemQuantity(ItemConsumable, "potion"))
	})

	t.Run("kind distinguishes stacks", func(t *testing.T) {
		p := NewPlayerProfile("p1", "g1", testNow)
		require.NoError(t, p.AddItem(ItemConsumable, "x", 1, testNow))
		assert.ErrorIs(t, p.RemoveItem(ItemLootbox, "x", 1), ErrInsufficientItems)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		p := NewPlayerProfile("p1", "g1", testNow)
		assert.ErrorIs(t, p.AddItem(ItemLootbox, "x", 0, testNow), ErrInvalidAmount)
	})
}

func TestAddXP(t *testing.T) {
	p := NewPlayerProfile("p1", "g1", testNow)
	curve := linearCurve{perLevel: 100}

	assert.Equal(t, 0, p.AddXP(50, curve))
	assert.Equal(t, 1, p.Level)
	assert.Equal(t, int64(50), p.XP)

	assert.Equal(t, 2, p.AddXP(170, curve))
	assert.Equal(t, 3, p.Level)
	assert.Equal(t, int64(20), p.XP)
	assert.Equal(t, int64(220), p.TotalXP)

	assert.Equal(t, 0, p.AddXP(-10, curve))
	assert.Equal(t, int64(220), p.TotalXP)
}

func TestRemoveJobClearsActive(t *testing.T) {
	p := NewPlayerProfile("p1", "g1", testNow)
	p.Jobs.Membership = []JobRecord{{JobID: "miner", Level: 1}, {JobID: "smith", Level: 1}}
	p.Jobs.ActiveJobID = "miner"

	assert.True(t, p.RemoveJob("miner"))
	assert.Empty(t, p.Jobs.ActiveJobID)
	assert.False(t, p.HoldsJob("miner"))
	assert.True(t, p.HoldsJob("smith"))
	assert.False(t, p.RemoveJob("miner"))
}

func TestClone_IsDeep(t *testing.T) {
	p := NewPlayerProfile("p1", "g1", testNow)
	p.Materials = append(p.Materials, MaterialStack{MaterialID: "iron", Quantity: 3, Quality: 80})
	p.Tools = append(p.Tools, Tool{ToolID: "pick", Durability: 10, MaxDurability: 10})
	p.Missions.Daily = []Mission{{ID: "m1", Goal: 5}}
	p.Pity["box"] = 2

	c := p.Clone()
	c.Materials[0].Quantity = 0
	c.Tools[0].Durability = 1
	c.Missions.Daily[0].Progress = 5
	c.Pity["box"] = 9

	assert.Equal(t, 3, p.Materials[0].Quantity)
	assert.Equal(t, 10, p.Tools[0].Durability)
	assert.Equal(t, 0, p.Missions.Daily[0].Progress)
	assert.Equal(t, 2, p.Pity["box"])
}

func TestPruneMaterials(t *testing.T) {
	p := NewPlayerProfile("p1", "g1", testNow)
	p.Materials = []MaterialStack{{MaterialID: "a", Quantity: 0}, {MaterialID: "b", Quantity: 2}, {MaterialID: "c", Quantity: 0}}

	p.PruneMaterials()

	require.Len(t, p.Materials, 1)
	assert.Equal(t, "b", p.Materials[0].MaterialID)
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want ErrorKind
	}{
		{ErrInsufficientFunds, KindValidation},
		{errors.Join(errors.New("ctx"), ErrCapacityExceeded), KindCapacity},
		{ErrMissionClaimed, KindConflict},
		{ErrUnknownZone, KindNotFound},
		{ErrCatalogCorrupt, KindFatal},
		{ErrCooldownActive, KindCooldown},
		{errors.New("boom"), KindUnknown},
		{nil, KindUnknown},
	}

	for _, tt := range tests {
		name := "nil"
		if tt.err != nil {
			name = tt.err.Error()
		}
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestRewardKind_Text(t *testing.T) {
	for _, k := range AllRewardKinds() {
		text, err := k.MarshalText()
		require.NoError(t, err)

		var parsed RewardKind
		require.NoError(t, parsed.UnmarshalText(text))
		assert.Equal(t, k, parsed)
	}

	var bad RewardKind
	assert.ErrorIs(t, bad.UnmarshalText([]byte("gems")), ErrInvalidInput)
	_, err := RewardKind(99).MarshalText()
	assert.Error(t, err)
}

func TestReward_Scaled(t *testing.T) {
	r := Reward{Kind: RewardCoins, Amount: 10}
	assert.Equal(t, int64(15), r.Scaled(1.59).Amount)
	assert.Equal(t, int64(1), r.Scaled(0.01).Amount, "positive amounts never scale to zero")
	assert.Equal(t, int64(10), r.Scaled(0).Amount)
}
