package albion

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/cabeard21/ao-bin-dumps/internal/errors"
)

const enchantSeparator = "@"

// ItemVariant is one concrete tier/enchant/quality combination of a base item type
type ItemVariant struct {
	Tier    int
	Suffix  string
	Enchant int
	Quality int
}

var _ core.Entity = (*ItemVariant)(nil)

// ID returns the canonical market identifier, e.g. T5_OFF_SHIELD@1.
// Enchant 0 has no suffix.
func (v *ItemVariant) ID() string {
	return FormatItemID(v.Tier, v.Suffix, v.Enchant)
}

// GetID returns an identifier unique per quality as well as per item
func (v *ItemVariant) GetID() string {
	return VariantKey(v.ID(), v.Quality)
}

// GetType returns the entity type for rpg-toolkit
func (v *ItemVariant) GetType() string {
	return EntityTypeItemVariant
}

// FormatItemID builds T{tier}_{suffix} with @{enchant} appended when enchant > 0
func FormatItemID(tier int, suffix string, enchant int) string {
	id := fmt.Sprintf("T%d_%s", tier, suffix)
	if enchant > 0 {
		id += enchantSeparator + strconv.Itoa(enchant)
	}
	return id
}

// ParseItemID splits an identifier on @ into its base unique name and the
// enchantment level. hasEnchant is false when no @ is present.
func ParseItemID(id string) (base string, enchant int, hasEnchant bool, err error) {
	base, level, found := strings.Cut(id, enchantSeparator)
	if base == "" {
		return "", 0, false, errors.InvalidArgumentf("item id %q has no base name", id)
	}
	if !found {
		return base, 0, false, nil
	}

	enchant, convErr := strconv.Atoi(level)
	if convErr != nil || enchant < 0 {
		return "", 0, false, errors.InvalidArgumentf("item id %q has invalid enchantment %q", id, level)
	}
	return base, enchant, true, nil
}

// SplitTier strips the T<tier>_ prefix from a base unique name
func SplitTier(base string) (tier int, suffix string, err error) {
	prefix, suffix, found := strings.Cut(base, "_")
	if !found || len(prefix) < 2 || prefix[0] != 'T' || suffix == "" {
		return 0, "", errors.InvalidArgumentf("item name %q does not match T<tier>_<suffix>", base)
	}

	tier, convErr := strconv.Atoi(prefix[1:])
	if convErr != nil {
		return 0, "", errors.InvalidArgumentf("item name %q has invalid tier %q", base, prefix[1:])
	}
	return tier, suffix, nil
}

// TypeSuffix returns the tier-invariant part of any identifier, so
// T4_OFF_SHIELD@1 and T8_OFF_SHIELD both yield OFF_SHIELD.
func TypeSuffix(id string) (string, error) {
	base, _, _, err := ParseItemID(id)
	if err != nil {
		return "", err
	}
	_, suffix, err := SplitTier(base)
	return suffix, err
}
