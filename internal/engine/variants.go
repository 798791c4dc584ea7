package engine

import (
	"log/slog"
	"math"

	"github.com/cabeard21/ao-bin-dumps/internal/catalog"
	"github.com/cabeard21/ao-bin-dumps/internal/entities/albion"
	"github.com/cabeard21/ao-bin-dumps/internal/errors"
)

// EnumerateAbovePower walks tier MinTier..8, enchant 0..3 and quality 1..5 in
// that nesting order and keeps every variant whose power is at least |MinPower|.
// The scan is exhaustive; callers rely on the order for tie-breaks. Variants
// missing from the catalog are skipped, any other failure aborts the scan.
func EnumerateAbovePower(cat catalog.Catalog, input *EnumerateAbovePowerInput) (*EnumerateAbovePowerOutput, error) {
	if input.MinTier < albion.MinTier || input.MinTier > albion.MaxTier {
		return nil, errors.InvalidArgumentf("min tier %d outside %d-%d", input.MinTier, albion.MinTier, albion.MaxTier)
	}

	suffix, err := albion.TypeSuffix(input.BaseItemID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve item type of %s", input.BaseItemID)
	}

	floor := math.Abs(input.MinPower)
	out := &EnumerateAbovePowerOutput{}

	for tier := input.MinTier; tier <= albion.MaxTier; tier++ {
		for enchant := 0; enchant <= albion.MaxSearchEnchant; enchant++ {
			for quality := albion.QualityNormal; quality <= albion.QualityMasterpiece; quality++ {
				variant := &albion.ItemVariant{
					Tier:    tier,
					Suffix:  suffix,
					Enchant: enchant,
					Quality: quality,
				}
				id := variant.ID()
				out.Scanned++

				power, err := ComputePower(cat, id, quality, input.BonusPoints)
				if err != nil {
					if !errors.IsCatalogDefect(err) {
						return nil, errors.Wrapf(err, "failed to compute power of %s", id)
					}
					out.Skipped = append(out.Skipped, SkippedVariant{ItemID: id, Quality: quality, Err: err})
					continue
				}
				if power < floor {
					continue
				}

				out.Variants = append(out.Variants, variant)
				out.ItemIDs = append(out.ItemIDs, id)
				out.Qualities = append(out.Qualities, quality)
				out.Powers = append(out.Powers, power)
			}
		}
	}

	if len(out.Skipped) > 0 {
		slog.Debug("Variants skipped during enumeration",
			"item_type", suffix,
			"skipped", len(out.Skipped),
			"first_error", out.Skipped[0].Err,
		)
	}

	return out, nil
}
