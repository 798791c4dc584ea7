// Package albion holds the item, variant and market quote types shared by the
// power engine, the price fetcher and the selection orchestrator.
package albion

// ItemDefinition is the static catalog entry for one unique item name
type ItemDefinition struct {
	// UniqueName follows the pattern T<tier>_<suffix>, e.g. T5_OFF_SHIELD
	UniqueName string `json:"unique_name"`
	// LocalizedName is the English display name, e.g. Expert's Shield
	LocalizedName string `json:"localized_name,omitempty"`
	// ItemPower is the unenchanted base item power
	ItemPower int `json:"item_power"`
	// MasteryModifier scales mastery bonus points, e.g. 0.05
	MasteryModifier float64 `json:"mastery_modifier"`
	// Enchantments maps enchantment level (1-4) to the item power that replaces
	// ItemPower at that level. Nil when the item cannot be enchanted.
	Enchantments map[int]int `json:"enchantments,omitempty"`
}

// EnchantedPower returns the item power override for an enchantment level
func (d *ItemDefinition) EnchantedPower(level int) (int, bool) {
	if d.Enchantments == nil {
		return 0, false
	}
	power, ok := d.Enchantments[level]
	return power, ok
}
