package utils

import (
	"github.com/osse101/brandish-progression/internal/domain"
)

// ClampQuality bounds a quality value to the valid stack range
func ClampQuality(q int) int {
	if q < domain.MinQuality {
		return domain.MinQuality
	}
	if q > domain.MaxQuality {
		return domain.MaxQuality
	}
	return q
}

// MergeQuality folds incoming units into an existing stack's average.
// Integer floor division keeps parity with stored stacks.
//
// Example:
//   - 3x 80 + 1x 71 = (240 + 71) / 4 = 77.75 → 77
func MergeQuality(existingQty, existingQuality, addedQty, addedQuality int) int {
	total := existingQty + addedQty
	if total <= 0 {
		return ClampQuality(addedQuality)
	}
	return ClampQuality((existingQuality*existingQty + addedQuality*addedQty) / total)
}

// WeightedQuality is one input to WeightedAverageQuality
type WeightedQuality struct {
	Quality int
	Weight  int
}

// WeightedAverageQuality returns the weight-averaged quality as a float.
// Returns domain.DefaultQuality if nothing carries weight.
func WeightedAverageQuality(inputs []WeightedQuality) float64 {
	totalValue := 0
	totalWeight := 0
	for _, in := range inputs {
		if in.Weight <= 0 {
			continue
		}
		totalValue += in.Quality * in.Weight
		totalWeight += in.Weight
	}
	if totalWeight == 0 {
		return domain.DefaultQuality
	}
	return float64(totalValue) / float64(totalWeight)
}
