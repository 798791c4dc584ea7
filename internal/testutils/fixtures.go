package testutils

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cabeard21/ao-bin-dumps/internal/catalog"
	"github.com/cabeard21/ao-bin-dumps/internal/entities/albion"
)

// Item suffixes present in the test catalog
const (
	SuffixShield        = "OFF_SHIELD"
	SuffixHellionShoes  = "SHOES_PLATE_HELL"
	TestMasteryModifier = 0.05
)

var tierTitles = map[int]string{
	4: "Adept's",
	5: "Expert's",
	6: "Master's",
	7: "Grandmaster's",
	8: "Elder's",
}

// CreateTestItemDefinitions returns shield definitions for tiers 4-8 with
// enchantments 1-3 (each level adds 100 item power) and a tier 4 pair of plate
// shoes with no enchantment table. Shields carry their in-game names, so
// "Expert's Shield" is T5_OFF_SHIELD.
func CreateTestItemDefinitions() []*albion.ItemDefinition {
	var items []*albion.ItemDefinition
	for tier := 4; tier <= albion.MaxTier; tier++ {
		base := 700 + (tier-4)*100
		items = append(items, &albion.ItemDefinition{
			UniqueName:      albion.FormatItemID(tier, SuffixShield, 0),
			LocalizedName:   tierTitles[tier] + " Shield",
			ItemPower:       base,
			MasteryModifier: TestMasteryModifier,
			Enchantments: map[int]int{
				1: base + 100,
				2: base + 200,
				3: base + 300,
			},
		})
	}

	items = append(items, &albion.ItemDefinition{
		UniqueName:      albion.FormatItemID(4, SuffixHellionShoes, 0),
		LocalizedName:   "Adept's Demon Boots",
		ItemPower:       750,
		MasteryModifier: TestMasteryModifier,
	})

	return items
}

// CreateTestCatalog builds the static test catalog with the game's quality table
func CreateTestCatalog(t *testing.T) *catalog.Static {
	t.Helper()

	cat, err := catalog.NewStatic(&catalog.StaticConfig{
		Items:          CreateTestItemDefinitions(),
		QualityBonuses: catalog.DefaultQualityBonuses(),
	})
	require.NoError(t, err, "failed to build test catalog")

	return cat
}
