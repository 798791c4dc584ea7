// Package engine computes item power and searches item variants
package engine

// Engine provides the item power rules. All methods are pure: they read the
// injected catalog and perform no I/O.
type Engine interface {
	// CalculateItemPower resolves the item power of one item id at a quality.
	// Returns errors.NotFound when the base item is not in the catalog and
	// errors.DataLoss when an enchantment level has no catalog entry.
	CalculateItemPower(input *CalculateItemPowerInput) (*CalculateItemPowerOutput, error)

	// EnumerateAbovePower scans tier, then enchantment, then quality and returns
	// every variant whose power meets the floor, in scan order.
	EnumerateAbovePower(input *EnumerateAbovePowerInput) (*EnumerateAbovePowerOutput, error)

	// ResolveItem turns a unique name or a localized display name into an item
	// id. Ids already of the form T<tier>_<suffix>[@<enchant>] pass through
	// unchanged; unknown display names return errors.NotFound.
	ResolveItem(input *ResolveItemInput) (*ResolveItemOutput, error)
}
