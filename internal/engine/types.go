package engine

import (
	"github.com/cabeard21/ao-bin-dumps/internal/entities/albion"
	"github.com/cabeard21/ao-bin-dumps/internal/errors"
)

// CalculateItemPowerInput identifies the item and the player's mastery
type CalculateItemPowerInput struct {
	// ItemID may carry an @<enchant> suffix
	ItemID      string
	Quality     int
	BonusPoints float64
}

// CalculateItemPowerOutput contains the resolved item power
type CalculateItemPowerOutput struct {
	ItemPower float64
}

// EnumerateAbovePowerInput describes a variant search
type EnumerateAbovePowerInput struct {
	// BaseItemID is any tier/enchant of the item type, e.g. T4_OFF_SHIELD@1
	BaseItemID string
	// MinPower is the floor; its absolute value is used
	MinPower    float64
	BonusPoints float64
	MinTier     int
}

// SkippedVariant is a scanned variant whose power could not be computed
type SkippedVariant struct {
	ItemID  string
	Quality int
	Err     error
}

// EnumerateAbovePowerOutput lists qualifying variants in scan order.
// ItemIDs, Qualities and Powers are parallel to Variants.
type EnumerateAbovePowerOutput struct {
	Variants  []*albion.ItemVariant
	ItemIDs   []string
	Qualities []int
	Powers    []float64
	// Skipped holds variants missing from the catalog; they never abort the scan
	Skipped []SkippedVariant
	// Scanned counts every variant the scan visited
	Scanned int
}

// Len returns the number of qualifying variants
func (o *EnumerateAbovePowerOutput) Len() int {
	return len(o.Variants)
}

// Last returns the final qualifying variant, or nil when none qualified
func (o *EnumerateAbovePowerOutput) Last() *albion.ItemVariant {
	if len(o.Variants) == 0 {
		return nil
	}
	return o.Variants[len(o.Variants)-1]
}

// UnknownItem reports whether no scanned variant exists in the catalog, which
// means the item type itself is unknown from the minimum tier up
func (o *EnumerateAbovePowerOutput) UnknownItem() bool {
	if o.Scanned == 0 || len(o.Skipped) != o.Scanned {
		return false
	}
	for _, skipped := range o.Skipped {
		if !errors.IsNotFound(skipped.Err) {
			return false
		}
	}
	return true
}

// ResolveItemInput carries an item id or localized display name
type ResolveItemInput struct {
	Name string
}

// ResolveItemOutput contains the unique item id a name refers to
type ResolveItemOutput struct {
	ItemID string
	// LocalizedName is set when the input was a display name
	LocalizedName string
}
