package ledger

import (
	"fmt"

	"github.com/osse101/brandish-progression/internal/catalog"
	"github.com/osse101/brandish-progression/internal/domain"
	"github.com/osse101/brandish-progression/internal/utils"
)

// Ledger owns the material and tool mutations of a profile.
// Every method checks first and mutates only when all checks pass.
type Ledger struct {
	catalog *catalog.Catalog
}

// New creates a ledger bound to a catalog
func New(c *catalog.Catalog) *Ledger {
	return &Ledger{catalog: c}
}

// MaterialGrant is one pending material addition, used for batch capacity checks
type MaterialGrant struct {
	MaterialID string
	Quantity   int
}

// Weight returns the total carried weight of the profile's materials
func (l *Ledger) Weight(p *domain.PlayerProfile) (int, error) {
	total := 0
	for _, s := range p.Materials {
		w, err := l.catalog.MaterialWeight(s.MaterialID)
		if err != nil {
			return 0, err
		}
		total += w * s.Quantity
	}
	return total, nil
}

// FreeCapacity returns the weight still available
func (l *Ledger) FreeCapacity(p *domain.PlayerProfile) (int, error) {
	used, err := l.Weight(p)
	if err != nil {
		return 0, err
	}
	free := p.Crafting.InventoryCapacity - used
	if free < 0 {
		free = 0
	}
	return free, nil
}

// CheckCapacity reports whether every grant fits at once.
// Returns ErrCapacityExceeded naming the first grant that overflows.
func (l *Ledger) CheckCapacity(p *domain.PlayerProfile, grants ...MaterialGrant) error {
	used, err := l.Weight(p)
	if err != nil {
		return err
	}
	projected := used
	for _, g := range grants {
		w, err := l.catalog.MaterialWeight(g.MaterialID)
		if err != nil {
			return err
		}
		// Compare by division so a huge quantity cannot wrap the product
		if w > 0 && g.Quantity > (p.Crafting.InventoryCapacity-projected)/w {
			return fmt.Errorf(ErrFmtCapacity, domain.ErrCapacityExceeded,
				g.Quantity, g.MaterialID, w, used, p.Crafting.InventoryCapacity)
		}
		projected += w * g.Quantity
	}
	return nil
}

// AddMaterial adds qty units of a material at the given quality.
// A quality of 0 means the default quality. On ErrCapacityExceeded the ledger is unchanged.
func (l *Ledger) AddMaterial(p *domain.PlayerProfile, materialID string, qty, quality int, origin string) (*domain.MaterialStack, error) {
	if qty <= 0 {
		return nil, fmt.Errorf(ErrFmtInvalidQuantity, domain.ErrInvalidAmount, qty)
	}
	def, ok := l.catalog.Material(materialID)
	if !ok {
		return nil, fmt.Errorf(ErrFmtUnknownMaterial, domain.ErrCatalogCorrupt, materialID)
	}
	if err := l.CheckCapacity(p, MaterialGrant{MaterialID: def.ID, Quantity: qty}); err != nil {
		return nil, err
	}

	if quality == 0 {
		quality = domain.DefaultQuality
	}
	quality = utils.ClampQuality(quality)

	if s := p.FindMaterial(def.ID); s != nil {
		s.Quality = utils.MergeQuality(s.Quantity, s.Quality, qty, quality)
		s.Quantity += qty
		return s, nil
	}

	p.Materials = append(p.Materials, domain.MaterialStack{
		MaterialID: def.ID,
		Quantity:   qty,
		Quality:    quality,
		Rarity:     def.Rarity,
		Origin:     origin,
	})
	return &p.Materials[len(p.Materials)-1], nil
}

// CheckMaterials verifies that every requirement is held in full.
// Duplicate lines for the same material are summed.
func (l *Ledger) CheckMaterials(p *domain.PlayerProfile, reqs []domain.MaterialRequirement) error {
	for _, r := range mergeRequirements(reqs) {
		if r.Quantity <= 0 {
			continue
		}
		if have := p.MaterialQuantity(r.MaterialID); have < r.Quantity {
			return fmt.Errorf(ErrFmtMissingMaterial, domain.ErrInsufficientMaterial, r.Quantity, r.MaterialID, have)
		}
	}
	return nil
}

// ConsumeMaterials deducts every requirement or nothing at all
func (l *Ledger) ConsumeMaterials(p *domain.PlayerProfile, reqs []domain.MaterialRequirement) error {
	if err := l.CheckMaterials(p, reqs); err != nil {
		return err
	}
	for _, r := range mergeRequirements(reqs) {
		if r.Quantity <= 0 {
			continue
		}
		p.FindMaterial(r.MaterialID).Quantity -= r.Quantity
	}
	p.PruneMaterials()
	return nil
}

func mergeRequirements(reqs []domain.MaterialRequirement) []domain.MaterialRequirement {
	if len(reqs) < 2 {
		return reqs
	}
	merged := make([]domain.MaterialRequirement, 0, len(reqs))
	index := make(map[string]int, len(reqs))
	for _, r := range reqs {
		if i, ok := index[r.MaterialID]; ok {
			merged[i].Quantity += r.Quantity
			continue
		}
		index[r.MaterialID] = len(merged)
		merged = append(merged, r)
	}
	return merged
}

// QualityOf returns the quantity-weighted quality of the stacks a requirement list draws from
func (l *Ledger) QualityOf(p *domain.PlayerProfile, reqs []domain.MaterialRequirement) float64 {
	inputs := make([]utils.WeightedQuality, 0, len(reqs))
	for _, r := range reqs {
		s := p.FindMaterial(r.MaterialID)
		if s == nil {
			continue
		}
		inputs = append(inputs, utils.WeightedQuality{Quality: s.Quality, Weight: r.Quantity})
	}
	return utils.WeightedAverageQuality(inputs)
}
