package selection

import (
	"github.com/cabeard21/ao-bin-dumps/internal/entities/albion"
)

// Mode picks the selection strategy of a slot
type Mode string

const (
	// ModeDefault is cheapest unless TargetPower is negative
	ModeDefault    Mode = ""
	ModeCheapest   Mode = "cheapest"
	ModeEfficiency Mode = "efficiency"
)

// BuildSlot is one item slot of a build
type BuildSlot struct {
	// ItemID is any variant of the wanted item type, e.g. T4_OFF_SHIELD@1, or
	// its localized name, e.g. Expert's Shield
	ItemID      string  `json:"item_id" validate:"required,itemid"`
	BonusPoints float64 `json:"bonus_points" validate:"gte=0"`
	MinTier     int     `json:"min_tier" validate:"min=1,max=8"`
	// TargetPower is the item power floor. A negative value requests
	// efficiency mode when Mode is unset.
	TargetPower float64 `json:"target_power"`
	Mode        Mode    `json:"mode,omitempty" validate:"omitempty,oneof=cheapest efficiency"`
}

// Efficiency reports whether the slot maximizes power per silver
func (s *BuildSlot) Efficiency() bool {
	switch s.Mode {
	case ModeEfficiency:
		return true
	case ModeCheapest:
		return false
	default:
		return s.TargetPower < 0
	}
}

// SelectBuildInput contains the slots to price
type SelectBuildInput struct {
	Slots []*BuildSlot `json:"slots" validate:"required,min=1,dive,required"`
	// Location is the preferred market; empty uses the configured default
	Location string `json:"location,omitempty"`
	// Persist stores the result so it can be read back with GetSelection
	Persist bool `json:"persist,omitempty"`
}

// SelectBuildOutput holds one entry per slot in slot order. The four columns
// mirror Selections for callers that want flat lists.
type SelectBuildOutput struct {
	// ID is set when the selection was persisted
	ID         string                  `json:"id,omitempty"`
	ItemNames  []string                `json:"item_names"`
	Qualities  []int                   `json:"qualities"`
	ItemPowers []float64               `json:"item_powers"`
	Prices     []float64               `json:"prices"`
	Selections []*albion.SlotSelection `json:"selections"`
}

// GetSelectionInput identifies a persisted selection
type GetSelectionInput struct {
	ID string `json:"id"`
}

// GetSelectionOutput contains a persisted selection
type GetSelectionOutput struct {
	Selection *albion.Selection `json:"selection"`
}

// DeleteSelectionInput identifies a persisted selection to remove
type DeleteSelectionInput struct {
	ID string `json:"id"`
}

// DeleteSelectionOutput is empty on success
type DeleteSelectionOutput struct{}
