package engine

import (
	"github.com/cabeard21/ao-bin-dumps/internal/catalog"
	"github.com/cabeard21/ao-bin-dumps/internal/entities/albion"
	"github.com/cabeard21/ao-bin-dumps/internal/errors"
)

// ComputePower returns the item power of itemID at a quality with the given
// mastery bonus points:
//
//	base + qualityBonus(quality) + bonusPoints*(1+masteryModifier)
//
// base is the enchantment override when itemID carries @<level>, otherwise the
// item's own power.
func ComputePower(cat catalog.Catalog, itemID string, quality int, bonusPoints float64) (float64, error) {
	if !albion.ValidQuality(quality) {
		return 0, errors.InvalidArgumentf("quality %d outside %d-%d", quality, albion.QualityNormal, albion.QualityMasterpiece).
			WithMeta("item_id", itemID)
	}

	baseName, enchant, hasEnchant, err := albion.ParseItemID(itemID)
	if err != nil {
		return 0, err
	}

	item, ok := cat.LookupItem(baseName)
	if !ok {
		return 0, errors.ItemNotFound(baseName)
	}

	basePower := item.ItemPower
	if hasEnchant {
		enchanted, ok := item.EnchantedPower(enchant)
		if !ok {
			return 0, errors.DataInconsistency(baseName, "%s has no enchantment entry for level %d", baseName, enchant).
				WithMeta("enchant", enchant)
		}
		basePower = enchanted
	}

	power := float64(basePower)
	if quality > albion.QualityNormal {
		power += cat.QualityBonus(quality)
	}

	// TODO: confirm the additive mastery term against in-game tooltips. Older
	// game data scaled the whole sum by (1+modifier) instead.
	power += bonusPoints * (1 + item.MasteryModifier)

	return power, nil
}
