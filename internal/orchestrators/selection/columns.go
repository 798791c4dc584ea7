package selection

import (
	"github.com/cabeard21/ao-bin-dumps/internal/errors"
)

// SlotsFromColumns zips parallel per-slot lists into build slots. Mode is left
// unset so negative targets keep selecting efficiency mode.
func SlotsFromColumns(items []string, bonusPoints []float64, minTiers []int, targets []float64) ([]*BuildSlot, error) {
	n := len(items)
	if len(bonusPoints) != n || len(minTiers) != n || len(targets) != n {
		return nil, errors.InvalidArgumentf("slot columns differ in length: items=%d bonus=%d min_tier=%d target=%d",
			n, len(bonusPoints), len(minTiers), len(targets))
	}

	slots := make([]*BuildSlot, n)
	for i := range items {
		slots[i] = &BuildSlot{
			ItemID:      items[i],
			BonusPoints: bonusPoints[i],
			MinTier:     minTiers[i],
			TargetPower: targets[i],
		}
	}
	return slots, nil
}
