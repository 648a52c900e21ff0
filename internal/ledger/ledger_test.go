package ledger

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/brandish-progression/internal/catalog"
	"github.com/osse101/brandish-progression/internal/domain"
)

var testNow = time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)

func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	c, err := catalog.New(catalog.Document{
		Version: "test",
		Materials: []domain.MaterialDef{
			{ID: "stone", Name: "Stone", Weight: 1, Rarity: domain.RarityCommon},
			{ID: "iron_ore", Name: "Iron Ore", Weight: 2, Rarity: domain.RarityUncommon},
			{ID: "crystal", Name: "Crystal", Weight: 5, Rarity: domain.RarityRare},
		},
		Tools: []domain.ToolDef{
			{ID: "wooden_pickaxe", Name: "Wooden", Tier: 1, Rarity: domain.RarityCommon, MaxDurability: 50, RepairBaseCost: 20,
				Bonus: domain.ToolBonus{QuantityMultiplier: 1}},
			{ID: "crystal_pickaxe", Name: "Crystal", Tier: 3, Rarity: domain.RarityEpic, MaxDurability: 100, RepairBaseCost: 100,
				RepairMaterials: []domain.MaterialRequirement{{MaterialID: "crystal", Quantity: 2}}},
		},
	})
	require.NoError(t, err)
	return New(c)
}

func newProfile(capacity int) *domain.PlayerProfile {
	p := domain.NewPlayerProfile("p1", "g1", testNow)
	p.Crafting.InventoryCapacity = capacity
	return p
}

func TestAddMaterial(t *testing.T) {
	t.Run("creates a stack with catalog rarity", func(t *testing.T) {
		l := newTestLedger(t)
		p := newProfile(100)

		s, err := l.AddMaterial(p, "Iron_Ore", 3, 80, domain.OriginMined)

		require.NoError(t, err)
		assert.Equal(t, "iron_ore", s.MaterialID)
		assert.Equal(t, domain.RarityUncommon, s.Rarity)
		assert.Equal(t, domain.OriginMined, s.Origin)
		assert.Equal(t, 3, p.MaterialQuantity("iron_ore"))
	})

	t.Run("merge floors the weighted quality", func(t *testing.T) {
		l := newTestLedger(t)
		p := newProfile(100)

		_, err := l.AddMaterial(p, "stone", 3, 80, domain.OriginMined)
		require.NoError(t, err)
		s, err := l.AddMaterial(p, "stone", 1, 71, domain.OriginMined)
		require.NoError(t, err)

		assert.Equal(t, 4, s.Quantity)
		assert.Equal(t, 77, s.Quality)
		assert.Len(t, p.Materials, 1)
	})

	t.Run("zero quality means default", func(t *testing.T) {
		l := newTestLedger(t)
		p := newProfile(100)

		s, err := l.AddMaterial(p, "stone", 1, 0, domain.OriginReward)

		require.NoError(t, err)
		assert.Equal(t, domain.DefaultQuality, s.Quality)
	})

	t.Run("capacity exceeded leaves the ledger unchanged", func(t *testing.T) {
		l := newTestLedger(t)
		p := newProfile(10)
		_, err := l.AddMaterial(p, "iron_ore", 4, 80, domain.OriginMined)
		require.NoError(t, err)

		_, err = l.AddMaterial(p, "iron_ore", 2, 80, domain.OriginMined)

		assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
		assert.Equal(t, domain.KindCapacity, domain.KindOf(err))
		assert.Equal(t, 4, p.MaterialQuantity("iron_ore"))
		w, err := l.Weight(p)
		require.NoError(t, err)
		assert.Equal(t, 8, w)
	})

	t.Run("exactly full is allowed", func(t *testing.T) {
		l := newTestLedger(t)
		p := newProfile(10)

		_, err := l.AddMaterial(p, "crystal", 2, 90, domain.OriginMined)

		require.NoError(t, err)
		free, err := l.FreeCapacity(p)
		require.NoError(t, err)
		assert.Zero(t, free)
	})

	t.Run("unknown material is fatal", func(t *testing.T) {
		l := newTestLedger(t)
		p := newProfile(10)

		_, err := l.AddMaterial(p, "mithril", 1, 90, domain.OriginMined)

		assert.Equal(t, domain.KindFatal, domain.KindOf(err))
	})

	t.Run("non-positive quantity", func(t *testing.T) {
		l := newTestLedger(t)
		_, err := l.AddMaterial(newProfile(10), "stone", 0, 90, domain.OriginMined)
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	})
}

func TestCheckCapacity_Batch(t *testing.T) {
	l := newTestLedger(t)
	p := newProfile(10)

	assert.NoError(t, l.CheckCapacity(p, MaterialGrant{"stone", 5}, MaterialGrant{"iron_ore", 2}))
	assert.ErrorIs(t, l.CheckCapacity(p, MaterialGrant{"stone", 5}, MaterialGrant{"iron_ore", 3}), domain.ErrCapacityExceeded)
	assert.ErrorIs(t, l.CheckCapacity(p, MaterialGrant{"iron_ore", math.MaxInt/2 + 1}), domain.ErrCapacityExceeded)
}

func TestAddMaterial_HugeQuantity(t *testing.T) {
	l := newTestLedger(t)
	p := newProfile(100)

	_, err := l.AddMaterial(p, "iron_ore", math.MaxInt/2+1, 80, domain.OriginMined)
	require.ErrorIs(t, err, domain.ErrCapacityExceeded)
	assert.Empty(t, p.Materials)

	weight, err := l.Weight(p)
	require.NoError(t, err)
	assert.Equal(t, 0, weight)
}

func TestConsumeMaterials(t *testing.T) {
	tests := []struct {
		name      string
		reqs      []domain.MaterialRequirement
		wantErr   error
		wantStone int
		wantIron  int
		wantStack int
	}{
		{
			name:      "exact amounts prune stacks",
			reqs:      []domain.MaterialRequirement{{MaterialID: "stone", Quantity: 5}, {MaterialID: "iron_ore", Quantity: 2}},
			wantStone: 0, wantIron: 0, wantStack: 0,
		},
		{
			name:      "partial",
			reqs:      []domain.MaterialRequirement{{MaterialID: "stone", Quantity: 2}},
			wantStone: 3, wantIron: 2, wantStack: 2,
		},
		{
			name:      "one unmet line deducts nothing",
			reqs:      []domain.MaterialRequirement{{MaterialID: "stone", Quantity: 1}, {MaterialID: "iron_ore", Quantity: 3}},
			wantErr:   domain.ErrInsufficientMaterial,
			wantStone: 5, wantIron: 2, wantStack: 2,
		},
		{
			name:      "duplicate lines are summed",
			reqs:      []domain.MaterialRequirement{{MaterialID: "stone", Quantity: 3}, {MaterialID: "stone", Quantity: 3}},
			wantErr:   domain.ErrInsufficientMaterial,
			wantStone: 5, wantIron: 2, wantStack: 2,
		},
		{
			name:      "missing material",
			reqs:      []domain.MaterialRequirement{{MaterialID: "crystal", Quantity: 1}},
			wantErr:   domain.ErrInsufficientMaterial,
			wantStone: 5, wantIron: 2, wantStack: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newTestLedger(t)
			p := newProfile(100)
			_, err := l.AddMaterial(p, "stone", 5, 80, domain.OriginMined)
			require.NoError(t, err)
			_, err = l.AddMaterial(p, "iron_ore", 2, 80, domain.OriginMined)
			require.NoError(t, err)

			err = l.ConsumeMaterials(p, tt.reqs)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantStone, p.MaterialQuantity("stone"))
			assert.Equal(t, tt.wantIron, p.MaterialQuantity("iron_ore"))
			assert.Len(t, p.Materials, tt.wantStack)
		})
	}
}

func TestQualityOf(t *testing.T) {
	l := newTestLedger(t)
	p := newProfile(100)
	p.Materials = []domain.MaterialStack{
		{MaterialID: "stone", Quantity: 10, Quality: 100},
		{MaterialID: "iron_ore", Quantity: 10, Quality: 40},
	}

	q := l.QualityOf(p, []domain.MaterialRequirement{{MaterialID: "stone", Quantity: 1}, {MaterialID: "iron_ore", Quantity: 3}})

	assert.InDelta(t, 55.0, q, 1e-9)
	assert.InDelta(t, float64(domain.DefaultQuality), l.QualityOf(p, nil), 1e-9)
}
