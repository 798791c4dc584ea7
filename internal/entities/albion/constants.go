package albion

import "time"

// Tier bounds for equipment items
const (
	MinTier = 1
	MaxTier = 8
)

// Enchantment bounds. Variant searches stop at MaxSearchEnchant because level 4
// items are not traded in volume.
const (
	MaxEnchant       = 4
	MaxSearchEnchant = 3
)

// Quality levels, 1 (Normal) through 5 (Masterpiece)
const (
	QualityNormal      = 1
	QualityGood        = 2
	QualityOutstanding = 3
	QualityExcellent   = 4
	QualityMasterpiece = 5
)

// MaxQuoteAge is the oldest market observation accepted as a price.
const MaxQuoteAge = 24 * time.Hour

// EntityTypeItemVariant is the core.Entity type of an ItemVariant.
const EntityTypeItemVariant = "item_variant"

// ValidQuality reports whether q is a quality level
func ValidQuality(q int) bool {
	return q >= QualityNormal && q <= QualityMasterpiece
}
