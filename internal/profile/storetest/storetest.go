// Package storetest holds the behaviour every profile.Store must share.
package storetest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/brandish-progression/internal/domain"
	"github.com/osse101/brandish-progression/internal/profile"
)

var testNow = time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)

// Sample returns a profile touching every persisted section
func Sample(guildID, playerID string) *domain.PlayerProfile {
	p := domain.NewPlayerProfile(playerID, guildID, testNow)
	p.Currency = domain.Currency{Coins: 250, Tokens: 3}
	p.Level = 2
	p.XP = 40
	p.TotalXP = 140
	p.Inventory = append(p.Inventory, domain.ItemStack{Kind: domain.ItemLootbox, TypeID: "basic_box", Quantity: 2, AcquiredAt: testNow})
	p.Materials = append(p.Materials, domain.MaterialStack{MaterialID: "stone", Quantity: 12, Quality: 55, Rarity: domain.RarityCommon, Origin: domain.OriginMined})
	p.Tools = append(p.Tools, domain.Tool{ToolID: "wooden_pickaxe", Tier: 1, Durability: 40, MaxDurability: 50, Bonus: domain.ToolBonus{QuantityMultiplier: 1}})
	p.EquippedToolID = "wooden_pickaxe"
	p.Crafting = domain.CraftingState{ActiveZone: "forest_mine", InventoryCapacity: 500, MiningCooldownUntil: testNow.Add(3 * time.Minute)}
	p.Jobs.ActiveJobID = "miner"
	p.Jobs.LastJobChangeAt = testNow
	p.Jobs.Membership = append(p.Jobs.Membership, domain.JobRecord{JobID: "miner", Level: 2, XP: 10, Rank: "Digger", Stats: domain.JobStats{Shifts: 4, GrossEarned: 400, TaxPaid: 20}})
	p.Missions.Replace(domain.ScopeDaily, []domain.Mission{{ID: "m1", Scope: domain.ScopeDaily, Type: "mine", Goal: 5, Progress: 2, RewardXP: 10, RewardCoins: 10}}, testNow)
	p.Stats.Mined = 7
	p.Pity["basic_box"] = 3
	return p
}

// Run exercises a store through its public contract. newStore must return an empty store.
func Run(t *testing.T, newStore func(t *testing.T) profile.Store) {
	t.Run("missing profile is not found", func(t *testing.T) {
		s := newStore(t)

		_, err := s.Load(context.Background(), domain.ProfileKey{GuildID: "g", PlayerID: "nobody"})

		assert.ErrorIs(t, err, domain.ErrProfileNotFound)
		assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	})

	t.Run("save then load round trips", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		p := Sample("g1", "p1")

		require.NoError(t, s.Save(ctx, p))
		assert.Equal(t, int64(1), p.Version)

		loaded, err := s.Load(ctx, p.Key())
		require.NoError(t, err)
		assertSameProfile(t, p, loaded)
	})

	t.Run("versions advance and stale saves conflict", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		p := Sample("g1", "p1")
		require.NoError(t, s.Save(ctx, p))

		first, err := s.Load(ctx, p.Key())
		require.NoError(t, err)
		second, err := s.Load(ctx, p.Key())
		require.NoError(t, err)

		first.Currency.Coins = 1
		require.NoError(t, s.Save(ctx, first))
		assert.Equal(t, int64(2), first.Version)

		second.Currency.Coins = 2
		err = s.Save(ctx, second)
		assert.ErrorIs(t, err, domain.ErrVersionConflict)
		assert.Equal(t, int64(1), second.Version, "a rejected save keeps the caller's version")

		loaded, err := s.Load(ctx, p.Key())
		require.NoError(t, err)
		assert.Equal(t, int64(1), loaded.Currency.Coins)
		assert.Equal(t, int64(2), loaded.Version)
	})

	t.Run("creating an existing profile conflicts", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		require.NoError(t, s.Save(ctx, Sample("g1", "p1")))

		err := s.Save(ctx, Sample("g1", "p1"))

		assert.ErrorIs(t, err, domain.ErrVersionConflict)
	})

	t.Run("guilds are isolated", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		a := Sample("g1", "p1")
		b := Sample("g2", "p1")
		b.Currency.Coins = 9
		require.NoError(t, s.Save(ctx, a))
		require.NoError(t, s.Save(ctx, b))

		loaded, err := s.Load(ctx, a.Key())
		require.NoError(t, err)
		assert.Equal(t, int64(250), loaded.Currency.Coins)
	})

	t.Run("concurrent saves of one version let exactly one win", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		require.NoError(t, s.Save(ctx, Sample("g1", "p1")))

		const writers = 8
		var wg sync.WaitGroup
		results := make(chan error, writers)
		for i := range writers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				p := Sample("g1", "p1")
				p.Version = 1
				p.Currency.Coins = int64(i)
				results <- s.Save(ctx, p)
			}()
		}
		wg.Wait()
		close(results)

		wins := 0
		for err := range results {
			if err == nil {
				wins++
				continue
			}
			assert.ErrorIs(t, err, domain.ErrVersionConflict)
		}
		assert.Equal(t, 1, wins)
	})
}

func assertSameProfile(t *testing.T, want, got *domain.PlayerProfile) {
	t.Helper()
	assert.Equal(t, want.Version, got.Version)
	assert.Equal(t, want.Currency, got.Currency)
	assert.Equal(t, want.Level, got.Level)
	assert.Equal(t, want.TotalXP, got.TotalXP)
	assert.Equal(t, want.Materials, got.Materials)
	assert.Equal(t, want.Tools, got.Tools)
	assert.Equal(t, want.EquippedToolID, got.EquippedToolID)
	assert.Equal(t, want.Jobs.Membership, got.Jobs.Membership)
	assert.Equal(t, want.Missions.Daily, got.Missions.Daily)
	assert.Equal(t, want.Stats, got.Stats)
	assert.Equal(t, want.Pity, got.Pity)
	assert.True(t, want.Crafting.MiningCooldownUntil.Equal(got.Crafting.MiningCooldownUntil))
	assert.True(t, want.Missions.DailyGeneratedAt.Equal(got.Missions.DailyGeneratedAt))
	require.Len(t, got.Inventory, len(want.Inventory))
	for i := range want.Inventory {
		assert.Equal(t, want.Inventory[i].Quantity, got.Inventory[i].Quantity)
		assert.True(t, want.Inventory[i].AcquiredAt.Equal(got.Inventory[i].AcquiredAt))
	}
}
