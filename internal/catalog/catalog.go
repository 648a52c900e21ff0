package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/osse101/brandish-progression/internal/domain"
)

// ErrInvalidConfig is returned when a catalog fails validation
var ErrInvalidConfig = errors.New("invalid catalog configuration")

// Catalog is the immutable set of lookup tables every engine is built with.
// Lookups return copies, so callers cannot mutate the shared definitions.
type Catalog struct {
	version  string
	defaults Defaults
	rules    Rules

	materials    map[string]domain.MaterialDef
	tools        map[string]domain.ToolDef
	blueprints   map[string]domain.Blueprint
	zones        map[string]domain.Zone
	jobs         map[string]domain.JobDef
	boxes        map[string]domain.BoxDef
	boxIDs       []string
	missionPools map[domain.MissionScope][]domain.MissionTypeDef
}

// NormalizeID case-folds and trims an id so "Iron_Ore" and "iron_ore" address the same entry
func NormalizeID(id string) string {
	return cases.Fold().String(strings.TrimSpace(id))
}

// New builds a catalog from a parsed document, filling defaults and checking references
func New(doc Document) (*Catalog, error) {
	c := &Catalog{
		version:      doc.Version,
		defaults:     doc.Defaults.withDefaults(),
		rules:        doc.Rules.withDefaults(),
		materials:    make(map[string]domain.MaterialDef, len(doc.Materials)),
		tools:        make(map[string]domain.ToolDef, len(doc.Tools)),
		blueprints:   make(map[string]domain.Blueprint, len(doc.Blueprints)),
		zones:        make(map[string]domain.Zone, len(doc.Zones)),
		jobs:         make(map[string]domain.JobDef, len(doc.Jobs)),
		boxes:        make(map[string]domain.BoxDef, len(doc.Boxes)),
		missionPools: make(map[domain.MissionScope][]domain.MissionTypeDef, 2),
	}
	c.defaults.StarterTool = NormalizeID(c.defaults.StarterTool)
	c.defaults.Zone = NormalizeID(c.defaults.Zone)

	for _, m := range doc.Materials {
		m.ID = NormalizeID(m.ID)
		if _, dup := c.materials[m.ID]; dup {
			return nil, fmt.Errorf(ErrFmtDuplicateID, ErrInvalidConfig, "material", m.ID)
		}
		c.materials[m.ID] = m
	}
	for _, t := range doc.Tools {
		t.ID = NormalizeID(t.ID)
		t.RepairMaterials = normalizeRequirements(t.RepairMaterials)
		if _, dup := c.tools[t.ID]; dup {
			return nil, fmt.Errorf(ErrFmtDuplicateID, ErrInvalidConfig, "tool", t.ID)
		}
		c.tools[t.ID] = t
	}
	for _, b := range doc.Boxes {
		b.ID = NormalizeID(b.ID)
		b.Pool = normalizeEntries(b.Pool)
		if b.Jackpot != nil {
			jackpot := *b.Jackpot
			jackpot.Reward = normalizeReward(jackpot.Reward)
			b.Jackpot = &jackpot
		}
		if b.Pity != nil {
			pity := *b.Pity
			pity.Pool = normalizeEntries(pity.Pool)
			b.Pity = &pity
		}
		if _, dup := c.boxes[b.ID]; dup {
			return nil, fmt.Errorf(ErrFmtDuplicateID, ErrInvalidConfig, "box", b.ID)
		}
		c.boxes[b.ID] = b
		c.boxIDs = append(c.boxIDs, b.ID)
	}
	sort.Strings(c.boxIDs)
	for _, bp := range doc.Blueprints {
		bp.ID = NormalizeID(bp.ID)
		bp.Materials = normalizeRequirements(bp.Materials)
		bp.Result = normalizeReward(bp.Result)
		if _, dup := c.blueprints[bp.ID]; dup {
			return nil, fmt.Errorf(ErrFmtDuplicateID, ErrInvalidConfig, "blueprint", bp.ID)
		}
		c.blueprints[bp.ID] = bp
	}
	for _, j := range doc.Jobs {
		j.ID = NormalizeID(j.ID)
		ranks := append([]domain.RankDef(nil), j.Ranks...)
		// Descending by threshold so the first match is the highest reachable rank.
		sort.SliceStable(ranks, func(a, b int) bool { return ranks[a].MinLevel > ranks[b].MinLevel })
		j.Ranks = ranks
		if _, dup := c.jobs[j.ID]; dup {
			return nil, fmt.Errorf(ErrFmtDuplicateID, ErrInvalidConfig, "job", j.ID)
		}
		c.jobs[j.ID] = j
	}
	for _, z := range doc.Zones {
		z.ID = NormalizeID(z.ID)
		drops := make([]domain.DropEntry, len(z.Drops))
		for i, d := range z.Drops {
			d.MaterialID = NormalizeID(d.MaterialID)
			d.Job = NormalizeID(d.Job)
			drops[i] = d
		}
		z.Drops = drops
		if _, dup := c.zones[z.ID]; dup {
			return nil, fmt.Errorf(ErrFmtDuplicateID, ErrInvalidConfig, "zone", z.ID)
		}
		c.zones[z.ID] = z
	}
	c.missionPools[domain.ScopeDaily] = append([]domain.MissionTypeDef(nil), doc.MissionPools.Daily...)
	c.missionPools[domain.ScopeWeekly] = append([]domain.MissionTypeDef(nil), doc.MissionPools.Weekly...)

	if err := c.checkReferences(); err != nil {
		return nil, err
	}
	return c, nil
}

func normalizeRequirements(reqs []domain.MaterialRequirement) []domain.MaterialRequirement {
	out := make([]domain.MaterialRequirement, len(reqs))
	for i, r := range reqs {
		r.MaterialID = NormalizeID(r.MaterialID)
		out[i] = r
	}
	return out
}

func normalizeReward(r domain.Reward) domain.Reward {
	r.ID = NormalizeID(r.ID)
	if len(r.Pool) > 0 {
		pool := make([]string, len(r.Pool))
		for i, id := range r.Pool {
			pool[i] = NormalizeID(id)
		}
		r.Pool = pool
	}
	return r
}

func normalizeEntries(entries []domain.RewardEntry) []domain.RewardEntry {
	out := make([]domain.RewardEntry, len(entries))
	for i, e := range entries {
		e.Reward = normalizeReward(e.Reward)
		out[i] = e
	}
	return out
}

// checkReferences verifies that every id a definition points at exists
func (c *Catalog) checkReferences() error {
	if c.defaults.StarterTool != "" {
		if _, ok := c.tools[c.defaults.StarterTool]; !ok {
			return fmt.Errorf(ErrFmtMissingReference, ErrInvalidConfig, "defaults", "starter_tool", "tool", c.defaults.StarterTool)
		}
	}
	if c.defaults.Zone != "" {
		if _, ok := c.zones[c.defaults.Zone]; !ok {
			return fmt.Errorf(ErrFmtMissingReference, ErrInvalidConfig, "defaults", "zone", "zone", c.defaults.Zone)
		}
	}
	for id, t := range c.tools {
		if err := c.checkRequirements("tool", id, t.RepairMaterials); err != nil {
			return err
		}
	}
	for id, bp := range c.blueprints {
		if err := c.checkRequirements("blueprint", id, bp.Materials); err != nil {
			return err
		}
		if err := c.checkReward("blueprint", id, bp.Result); err != nil {
			return err
		}
	}
	for id, z := range c.zones {
		for _, d := range z.Drops {
			if _, ok := c.materials[d.MaterialID]; !ok {
				return fmt.Errorf(ErrFmtMissingReference, ErrInvalidConfig, "zone", id, "material", d.MaterialID)
			}
			if d.Job != "" {
				if _, ok := c.jobs[d.Job]; !ok {
					return fmt.Errorf(ErrFmtMissingReference, ErrInvalidConfig, "zone", id, "job", d.Job)
				}
			}
		}
	}
	for id, b := range c.boxes {
		for _, e := range b.Pool {
			if err := c.checkReward("box", id, e.Reward); err != nil {
				return err
			}
		}
		if b.Jackpot != nil {
			if err := c.checkReward("box", id, b.Jackpot.Reward); err != nil {
				return err
			}
		}
		if b.Pity != nil {
			for _, e := range b.Pity.Pool {
				if err := c.checkReward("box", id, e.Reward); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (c *Catalog) checkRequirements(owner, id string, reqs []domain.MaterialRequirement) error {
	for _, r := range reqs {
		if _, ok := c.materials[r.MaterialID]; !ok {
			return fmt.Errorf(ErrFmtMissingReference, ErrInvalidConfig, owner, id, "material", r.MaterialID)
		}
	}
	return nil
}

func (c *Catalog) checkReward(owner, id string, r domain.Reward) error {
	switch r.Kind {
	case domain.RewardCoins, domain.RewardTokens, domain.RewardXP:
		if r.Amount <= 0 {
			return fmt.Errorf(ErrFmtInvalidReward, ErrInvalidConfig, owner, id, "amount must be positive")
		}
	case domain.RewardMaterial:
		if _, ok := c.materials[r.ID]; !ok {
			return fmt.Errorf(ErrFmtMissingReference, ErrInvalidConfig, owner, id, "material", r.ID)
		}
		if r.Amount <= 0 {
			return fmt.Errorf(ErrFmtInvalidReward, ErrInvalidConfig, owner, id, "amount must be positive")
		}
	case domain.RewardLootbox:
		if _, ok := c.boxes[r.ID]; !ok {
			return fmt.Errorf(ErrFmtMissingReference, ErrInvalidConfig, owner, id, "box", r.ID)
		}
	case domain.RewardRandomBox:
		for _, boxID := range r.Pool {
			if _, ok := c.boxes[boxID]; !ok {
				return fmt.Errorf(ErrFmtMissingReference, ErrInvalidConfig, owner, id, "box", boxID)
			}
		}
		if len(c.boxes) == 0 {
			return fmt.Errorf(ErrFmtInvalidReward, ErrInvalidConfig, owner, id, "random_box needs at least one box")
		}
	case domain.RewardTool:
		if _, ok := c.tools[r.ID]; !ok {
			return fmt.Errorf(ErrFmtMissingReference, ErrInvalidConfig, owner, id, "tool", r.ID)
		}
	default:
		return fmt.Errorf(ErrFmtInvalidReward, ErrInvalidConfig, owner, id, "unknown kind "+r.Kind.String())
	}
	return nil
}

// Version returns the catalog document version
func (c *Catalog) Version() string { return c.version }

// Defaults returns the profile defaults
func (c *Catalog) Defaults() Defaults { return c.defaults }

// Rules returns the engine tuning
func (c *Catalog) Rules() Rules { return c.rules }

// Material looks up a material definition
func (c *Catalog) Material(id string) (domain.MaterialDef, bool) {
	m, ok := c.materials[NormalizeID(id)]
	return m, ok
}

// MaterialWeight returns the carrying weight of one unit of a material.
// A missing material means the tables are corrupt and is reported as fatal.
func (c *Catalog) MaterialWeight(id string) (int, error) {
	m, ok := c.materials[NormalizeID(id)]
	if !ok {
		return 0, fmt.Errorf("%w: material %q", domain.ErrCatalogCorrupt, id)
	}
	return m.Weight, nil
}

// Tool looks up a tool definition
func (c *Catalog) Tool(id string) (domain.ToolDef, bool) {
	t, ok := c.tools[NormalizeID(id)]
	return t, ok
}

// Blueprint looks up a blueprint
func (c *Catalog) Blueprint(id string) (domain.Blueprint, bool) {
	b, ok := c.blueprints[NormalizeID(id)]
	return b, ok
}

// Zone looks up a mining zone
func (c *Catalog) Zone(id string) (domain.Zone, bool) {
	z, ok := c.zones[NormalizeID(id)]
	return z, ok
}

// Job looks up a job definition
func (c *Catalog) Job(id string) (domain.JobDef, bool) {
	j, ok := c.jobs[NormalizeID(id)]
	return j, ok
}

// Box looks up a lootbox definition
func (c *Catalog) Box(id string) (domain.BoxDef, bool) {
	b, ok := c.boxes[NormalizeID(id)]
	return b, ok
}

// BoxIDs returns every box id in sorted order
func (c *Catalog) BoxIDs() []string {
	return append([]string(nil), c.boxIDs...)
}

// MissionPool returns the mission templates of a scope
func (c *Catalog) MissionPool(scope domain.MissionScope) []domain.MissionTypeDef {
	return append([]domain.MissionTypeDef(nil), c.missionPools[scope]...)
}

// RepairMultiplier returns the repair cost multiplier of a rarity
func (c *Catalog) RepairMultiplier(rarity domain.Rarity) float64 {
	if m, ok := c.rules.RarityRepairMultipliers[rarity]; ok {
		return m
	}
	return DefaultRepairMultiplier
}
