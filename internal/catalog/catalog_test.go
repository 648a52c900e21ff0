package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/brandish-progression/internal/domain"
)

const minimalYAML = `
version: "test"
materials:
  - {id: Stone, name: Stone, weight: 1, rarity: common}
zones:
  - id: pit
    name: Pit
    required_tool_tier: 1
    min_quantity: 1
    max_quantity: 1
    drops:
      - {material: stone, weight: 1}
`

func TestDefault(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "1", c.Version())
	assert.Equal(t, "wooden_pickaxe", c.Defaults().StarterTool)
	assert.Equal(t, "forest_mine", c.Defaults().Zone)

	zone, ok := c.Zone("forest_mine")
	require.True(t, ok)
	assert.Equal(t, 1, zone.MinLevel)
	assert.NotEmpty(t, zone.Drops)

	job, ok := c.Job("miner")
	require.True(t, ok)
	assert.Equal(t, 30*time.Minute, job.Cooldown)
	rate, taxed := job.TaxRate(domain.CurrencyCoins)
	assert.True(t, taxed)
	assert.InDelta(t, 0.05, rate, 1e-9)

	bp, ok := c.Blueprint("iron_pickaxe")
	require.True(t, ok)
	assert.Equal(t, domain.RewardTool, bp.Result.Kind)

	box, ok := c.Box("basic_box")
	require.True(t, ok)
	require.NotNil(t, box.Pity)
	assert.Equal(t, 10, box.Pity.Threshold)

	assert.Len(t, c.MissionPool(domain.ScopeDaily), 5)
	assert.Len(t, c.MissionPool(domain.ScopeWeekly), 6)
	assert.Equal(t, []string{"basic_box", "mystery_box", "rare_box"}, c.BoxIDs())
}

func TestRanksSortedDescending(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	job, _ := c.Job("miner")
	for i := 1; i < len(job.Ranks); i++ {
		assert.Greater(t, job.Ranks[i-1].MinLevel, job.Ranks[i].MinLevel)
	}
}

func TestLookupsAreCaseInsensitive(t *testing.T) {
	c, err := LoadBytes([]byte(minimalYAML))
	require.NoError(t, err)

	m, ok := c.Material("STONE")
	require.True(t, ok)
	assert.Equal(t, "stone", m.ID)

	_, ok = c.Zone(" Pit ")
	assert.True(t, ok)
}

func TestRulesDefaultsApplied(t *testing.T) {
	c, err := LoadBytes([]byte(minimalYAML))
	require.NoError(t, err)

	rules := c.Rules()
	assert.Equal(t, DefaultJobBoostWeight, rules.JobBoostWeight)
	assert.Equal(t, int64(DefaultUpgradeCostPerLevel), rules.Upgrade.CostPerLevel)
	assert.InDelta(t, DefaultMaxSuccessRate, rules.Crafting.MaxSuccessRate, 1e-9)
	assert.Equal(t, DefaultDailyCount, rules.Missions.DailyCount)
	assert.Equal(t, DefaultWeeklyCount, rules.Missions.WeeklyCount)
	assert.Equal(t, 5*time.Minute, rules.Cooldowns.MiningCooldown(1))
	assert.Equal(t, time.Hour, rules.Cooldowns.JobChange)
	assert.Equal(t, DefaultInventoryCapacity, c.Defaults().InventoryCapacity)
	assert.InDelta(t, 3.0, c.RepairMultiplier(domain.RarityLegendary), 1e-9)
}

func TestLoadBytes_JSON(t *testing.T) {
	data := `{"version": "j", "materials": [{"id": "ore", "name": "Ore", "weight": 2, "rarity": "rare"}]}`

	c, err := LoadBytes([]byte(data))
	require.NoError(t, err)

	w, err := c.MaterialWeight("ore")
	require.NoError(t, err)
	assert.Equal(t, 2, w)
}

func TestLoadBytes_Failures(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		errorMsg string
	}{
		{
			name:     "unknown top level field",
			data:     "version: x\nmaterials: [{id: a, name: A, weight: 1, rarity: common}]\nshops: []\n",
			errorMsg: "schema validation failed",
		},
		{
			name:     "bad rarity",
			data:     "version: x\nmaterials: [{id: a, name: A, weight: 1, rarity: shiny}]\n",
			errorMsg: "schema validation failed",
		},
		{
			name:     "inverted range caught by struct validation",
			data:     "version: x\nmaterials: [{id: a, name: A, weight: 1, rarity: common}]\nzones: [{id: z, name: Z, required_tool_tier: 1, min_quantity: 3, max_quantity: 1, drops: [{material: a, weight: 1}]}]\n",
			errorMsg: "catalog validation failed",
		},
		{
			name:     "zone drops unknown material",
			data:     "version: x\nmaterials: [{id: a, name: A, weight: 1, rarity: common}]\nzones: [{id: z, name: Z, required_tool_tier: 1, min_quantity: 1, max_quantity: 1, drops: [{material: b, weight: 1}]}]\n",
			errorMsg: "references unknown material",
		},
		{
			name:     "duplicate material after folding",
			data:     "version: x\nmaterials: [{id: a, name: A, weight: 1, rarity: common}, {id: A, name: A2, weight: 1, rarity: common}]\n",
			errorMsg: "duplicate material",
		},
		{
			name:     "starter tool missing",
			data:     "version: x\ndefaults: {starter_tool: pick}\nmaterials: [{id: a, name: A, weight: 1, rarity: common}]\n",
			errorMsg: "starter_tool",
		},
		{
			name:     "not yaml",
			data:     "version: [",
			errorMsg: "failed to parse catalog",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadBytes([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestReferenceErrorsWrapInvalidConfig(t *testing.T) {
	_, err := New(Document{
		Version:   "x",
		Materials: []domain.MaterialDef{{ID: "a", Name: "A", Rarity: domain.RarityCommon}},
		Blueprints: []domain.Blueprint{{
			ID: "bp", Name: "BP", SuccessRate: 1,
			Result: domain.Reward{Kind: domain.RewardLootbox, ID: "nope", Amount: 1},
		}},
	})

	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestMaterialWeight_MissingIsFatal(t *testing.T) {
	c, err := LoadBytes([]byte(minimalYAML))
	require.NoError(t, err)

	_, err = c.MaterialWeight("unobtainium")

	assert.ErrorIs(t, err, domain.ErrCatalogCorrupt)
	assert.Equal(t, domain.KindFatal, domain.KindOf(err))
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimalYAML), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "test", c.Version())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLookupsReturnCopies(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	ids := c.BoxIDs()
	ids[0] = "tampered"

	assert.Equal(t, "basic_box", c.BoxIDs()[0])
}
