package crafting

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/brandish-progression/internal/catalog"
	"github.com/osse101/brandish-progression/internal/domain"
	"github.com/osse101/brandish-progression/internal/ledger"
	"github.com/osse101/brandish-progression/internal/reward"
	"github.com/osse101/brandish-progression/internal/utils"
)

var testNow = time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T, rolls ...float64) *Engine {
	t.Helper()
	c, err := catalog.New(catalog.Document{
		Version: "test",
		Materials: []domain.MaterialDef{
			{ID: "iron_ore", Name: "Iron Ore", Weight: 1, Rarity: domain.RarityCommon},
			{ID: "iron_ingot", Name: "Iron Ingot", Weight: 2, Rarity: domain.RarityUncommon},
		},
		Tools: []domain.ToolDef{
			{ID: "iron_pickaxe", Name: "Iron Pickaxe", Tier: 2, Rarity: domain.RarityUncommon, MaxDurability: 100},
		},
		Blueprints: []domain.Blueprint{
			{
				ID: "iron_ingot", Name: "Iron Ingot", CostCoins: 25, SuccessRate: 0.9,
				Materials: []domain.MaterialRequirement{{MaterialID: "iron_ore", Quantity: 3}},
				Result:    domain.Reward{Kind: domain.RewardMaterial, ID: "iron_ingot", Amount: 1},
			},
			{
				ID: "iron_pickaxe", Name: "Iron Pickaxe", RequiredLevel: 5, SuccessRate: 0.5,
				Materials: []domain.MaterialRequirement{{MaterialID: "iron_ingot", Quantity: 2}},
				Result:    domain.Reward{Kind: domain.RewardTool, ID: "iron_pickaxe", Amount: 1},
			},
			{
				ID: "tokens", Name: "Tokens", CostTokens: 2, SuccessRate: 1,
				Result: domain.Reward{Kind: domain.RewardCoins, Amount: 100},
			},
		},
	})
	require.NoError(t, err)
	l := ledger.New(c)
	src := utils.NewSequenceSource(rolls...)
	return NewEngine(c, l, reward.NewApplier(c, l, src), src)
}

func newProfile(coins int64, ore, quality int) *domain.PlayerProfile {
	p := domain.NewPlayerProfile("p1", "g1", testNow)
	p.Currency.Coins = coins
	p.Crafting.InventoryCapacity = 100
	if ore > 0 {
		p.Materials = []domain.MaterialStack{{MaterialID: "iron_ore", Quantity: ore, Quality: quality, Rarity: domain.RarityCommon}}
	}
	return p
}

// Costs are paid whatever the roll says.
func TestCraft_PaysRegardlessOfOutcome(t *testing.T) {
	tests := []struct {
		name        string
		roll        float64
		wantCrafted bool
		wantIngots  int
		wantFailed  int
		wantCrafts  int
	}{
		{"success", 0.5, true, 1, 0, 1},
		{"roll on the rate succeeds", 0.9, true, 1, 0, 1},
		{"failure", 0.95, false, 0, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, tt.roll)
			p := newProfile(25, 3, domain.DefaultQuality)

			res, err := e.Craft(context.Background(), p, "iron_ingot", testNow)

			require.NoError(t, err)
			assert.Equal(t, tt.wantCrafted, res.Crafted)
			assert.InDelta(t, 0.9, res.SuccessRate, 1e-9)
			assert.Zero(t, res.QualityBonus)
			assert.Zero(t, p.Currency.Coins)
			assert.Zero(t, p.MaterialQuantity("iron_ore"))
			assert.Equal(t, tt.wantIngots, p.MaterialQuantity("iron_ingot"))
			assert.Equal(t, tt.wantFailed, p.Stats.CraftFailed)
			assert.Equal(t, tt.wantCrafts, p.Stats.Crafted)
			if tt.wantCrafted {
				require.NotNil(t, res.Reward)
				assert.Equal(t, domain.OriginCrafted, p.FindMaterial("iron_ingot").Origin)
			} else {
				assert.Nil(t, res.Reward)
			}
		})
	}
}

func TestSuccessRate_Bounds(t *testing.T) {
	tests := []struct {
		name    string
		quality int
		want    float64
	}{
		{"pivot quality adds nothing", 70, 0.9},
		{"high quality capped", 100, 0.99},
		{"low quality never lowers the rate", 1, 0.9},
		{"small bonus", 85, 0.95},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t)
			p := newProfile(0, 3, tt.quality)
			bp, ok := e.catalog.Blueprint("iron_ingot")
			require.True(t, ok)

			rate, _ := e.SuccessRate(p, bp)

			assert.InDelta(t, tt.want, rate, 1e-9)
			assert.GreaterOrEqual(t, rate, bp.SuccessRate)
			assert.LessOrEqual(t, rate, 0.99)
		})
	}
}

func TestCraft_ValidationLeavesProfileUntouched(t *testing.T) {
	tests := []struct {
		name      string
		blueprint string
		setup     func(p *domain.PlayerProfile)
		wantErr   error
		wantKind  domain.ErrorKind
	}{
		{
			name:      "unknown blueprint",
			blueprint: "gold_ingot",
			wantErr:   domain.ErrUnknownBlueprint,
			wantKind:  domain.KindNotFound,
		},
		{
			name:      "not enough coins",
			blueprint: "iron_ingot",
			setup:     func(p *domain.PlayerProfile) { p.Currency.Coins = 24 },
			wantErr:   domain.ErrInsufficientFunds,
			wantKind:  domain.KindValidation,
		},
		{
			name:      "not enough tokens",
			blueprint: "tokens",
			wantErr:   domain.ErrInsufficientTokens,
			wantKind:  domain.KindValidation,
		},
		{
			name:      "partial materials",
			blueprint: "iron_ingot",
			setup:     func(p *domain.PlayerProfile) { p.Materials[0].Quantity = 2 },
			wantErr:   domain.ErrInsufficientMaterial,
			wantKind:  domain.KindValidation,
		},
		{
			name:      "level too low",
			blueprint: "iron_pickaxe",
			wantErr:   domain.ErrLevelTooLow,
			wantKind:  domain.KindValidation,
		},
		{
			name:      "tool result already owned",
			blueprint: "iron_pickaxe",
			setup: func(p *domain.PlayerProfile) {
				p.Level = 5
				p.Materials = append(p.Materials, domain.MaterialStack{MaterialID: "iron_ingot", Quantity: 2, Quality: 80})
				p.Tools = []domain.Tool{{ToolID: "iron_pickaxe", Tier: 2, Durability: 1, MaxDurability: 100}}
			},
			wantErr:  domain.ErrToolAlreadyHeld,
			wantKind: domain.KindConflict,
		},
		{
			name:      "result would not fit",
			blueprint: "iron_ingot",
			setup:     func(p *domain.PlayerProfile) { p.Crafting.InventoryCapacity = 1 },
			wantErr:   domain.ErrCapacityExceeded,
			wantKind:  domain.KindCapacity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, 0.0)
			p := newProfile(25, 3, 80)
			if tt.setup != nil {
				tt.setup(p)
			}
			before := p.Clone()

			res, err := e.Craft(context.Background(), p, tt.blueprint, testNow)

			assert.Nil(t, res)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantKind, domain.KindOf(err))
			assert.Equal(t, before, p)
		})
	}
}

func TestCraft_CurrencyResult(t *testing.T) {
	e := newTestEngine(t, 0.99)
	p := newProfile(0, 0, 0)
	p.Currency.Tokens = 2

	res, err := e.Craft(context.Background(), p, "TOKENS", testNow)

	require.NoError(t, err)
	assert.True(t, res.Crafted, "rate of 1 is capped at 0.99 and a roll of 0.99 still succeeds")
	assert.Zero(t, p.Currency.Tokens)
	assert.Equal(t, int64(100), p.Currency.Coins)
}
