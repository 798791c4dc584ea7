// Package catalog provides read-only access to static item data
package catalog

import (
	"github.com/cabeard21/ao-bin-dumps/internal/entities/albion"
	"github.com/cabeard21/ao-bin-dumps/internal/errors"
)

// Catalog is the item and game data consumed by the power engine.
// Implementations must be safe for concurrent readers.
type Catalog interface {
	// LookupItem returns the definition for a unique name (no @ suffix)
	LookupItem(uniqueName string) (*albion.ItemDefinition, bool)

	// LookupByName returns the definition whose localized name matches exactly
	LookupByName(localizedName string) (*albion.ItemDefinition, bool)

	// QualityBonus returns the item power added at a quality level.
	// Level 1 and unknown levels return 0.
	QualityBonus(level int) float64
}

// DefaultQualityBonuses returns the quality table shipped with the game data
func DefaultQualityBonuses() map[int]float64 {
	return map[int]float64{
		albion.QualityGood:        10,
		albion.QualityOutstanding: 20,
		albion.QualityExcellent:   50,
		albion.QualityMasterpiece: 100,
	}
}

// StaticConfig contains the data for an in-memory catalog
type StaticConfig struct {
	Items []*albion.ItemDefinition
	// QualityBonuses maps quality level 2-5 to its item power bonus
	QualityBonuses map[int]float64
}

// Validate rejects duplicate or malformed definitions
func (cfg *StaticConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	seen := make(map[string]struct{}, len(cfg.Items))
	for i, item := range cfg.Items {
		if item == nil || item.UniqueName == "" {
			vb.Fieldf("items", "entry %d has no unique name", i)
			continue
		}
		if _, dup := seen[item.UniqueName]; dup {
			vb.Fieldf("items", "duplicate unique name %s", item.UniqueName)
		}
		seen[item.UniqueName] = struct{}{}

		for level := range item.Enchantments {
			if level < 1 || level > albion.MaxEnchant {
				vb.Fieldf("items", "%s has enchantment level %d outside 1-%d", item.UniqueName, level, albion.MaxEnchant)
			}
		}
	}
	for level := range cfg.QualityBonuses {
		if level < albion.QualityGood || level > albion.QualityMasterpiece {
			vb.Fieldf("quality_bonuses", "level %d outside %d-%d", level, albion.QualityGood, albion.QualityMasterpiece)
		}
	}

	return vb.Build()
}

// Static is an immutable in-memory Catalog. It is never written after
// construction, so concurrent readers need no locking.
type Static struct {
	items   map[string]*albion.ItemDefinition
	names   map[string]*albion.ItemDefinition
	quality map[int]float64
}

// NewStatic builds a Static catalog. Definitions are copied.
func NewStatic(cfg *StaticConfig) (*Static, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	items := make(map[string]*albion.ItemDefinition, len(cfg.Items))
	names := make(map[string]*albion.ItemDefinition, len(cfg.Items))
	for _, item := range cfg.Items {
		def := cloneDefinition(item)
		items[def.UniqueName] = def
		// several unique names share a display name; the first one listed wins
		if _, taken := names[def.LocalizedName]; def.LocalizedName != "" && !taken {
			names[def.LocalizedName] = def
		}
	}

	quality := make(map[int]float64, len(cfg.QualityBonuses))
	for level, bonus := range cfg.QualityBonuses {
		quality[level] = bonus
	}

	return &Static{items: items, names: names, quality: quality}, nil
}

// LookupItem implements Catalog
func (s *Static) LookupItem(uniqueName string) (*albion.ItemDefinition, bool) {
	item, ok := s.items[uniqueName]
	return item, ok
}

// LookupByName implements Catalog
func (s *Static) LookupByName(localizedName string) (*albion.ItemDefinition, bool) {
	item, ok := s.names[localizedName]
	return item, ok
}

// QualityBonus implements Catalog
func (s *Static) QualityBonus(level int) float64 {
	return s.quality[level]
}

// Len returns the number of item definitions
func (s *Static) Len() int {
	return len(s.items)
}

func cloneDefinition(item *albion.ItemDefinition) *albion.ItemDefinition {
	out := *item
	if item.Enchantments != nil {
		out.Enchantments = make(map[int]int, len(item.Enchantments))
		for level, power := range item.Enchantments {
			out.Enchantments[level] = power
		}
	}
	return &out
}
