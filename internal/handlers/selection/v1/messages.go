package v1

// Slot is one build slot on the wire
type Slot struct {
	ItemID      string  `json:"item_id"`
	BonusPoints float64 `json:"bonus_points,omitempty"`
	MinTier     int     `json:"min_tier"`
	TargetPower float64 `json:"target_power"`
	// Mode is "cheapest", "efficiency" or empty
	Mode string `json:"mode,omitempty"`
}

// SelectBuildRequest lists the slots either as objects or as parallel columns.
// The columns are read only when Slots is empty.
type SelectBuildRequest struct {
	Slots []*Slot `json:"slots,omitempty"`

	Items        []string  `json:"items,omitempty"`
	BonusPoints  []float64 `json:"bonus_points,omitempty"`
	MinTiers     []int     `json:"min_tiers,omitempty"`
	TargetPowers []float64 `json:"target_powers,omitempty"`

	Location string `json:"location,omitempty"`
	Persist  bool   `json:"persist,omitempty"`
}

// SlotSelection is the outcome of one slot
type SlotSelection struct {
	Slot             int     `json:"slot"`
	RequestedItemID  string  `json:"requested_item_id"`
	ItemID           string  `json:"item_id"`
	Quality          int     `json:"quality"`
	ItemPower        float64 `json:"item_power"`
	Price            float64 `json:"price"`
	City             string  `json:"city,omitempty"`
	Strategy         string  `json:"strategy"`
	PriceUnavailable bool    `json:"price_unavailable,omitempty"`
	Candidates       int     `json:"candidates"`
}

// SelectBuildResponse carries the flat columns plus per-slot detail
type SelectBuildResponse struct {
	ID         string           `json:"id,omitempty"`
	ItemNames  []string         `json:"item_names"`
	Qualities  []int            `json:"qualities"`
	ItemPowers []float64        `json:"item_powers"`
	Prices     []float64        `json:"prices"`
	TotalPrice float64          `json:"total_price"`
	Selections []*SlotSelection `json:"selections"`
}

// GetSelectionRequest names a persisted selection
type GetSelectionRequest struct {
	ID string `json:"id"`
}

// Selection is a persisted build selection. Times are unix seconds.
type Selection struct {
	ID         string           `json:"id"`
	Location   string           `json:"location"`
	Slots      []*SlotSelection `json:"slots"`
	TotalPrice float64          `json:"total_price"`
	CreatedAt  int64            `json:"created_at"`
	ExpiresAt  int64            `json:"expires_at,omitempty"`
}

// GetSelectionResponse wraps the stored selection
type GetSelectionResponse struct {
	Selection *Selection `json:"selection"`
}

// DeleteSelectionRequest names a persisted selection to remove
type DeleteSelectionRequest struct {
	ID string `json:"id"`
}

// DeleteSelectionResponse echoes the removed id
type DeleteSelectionResponse struct {
	ID string `json:"id"`
}

// CalculateItemPowerRequest identifies one item at one quality. ItemID may be
// a localized name such as Expert's Shield.
type CalculateItemPowerRequest struct {
	ItemID      string  `json:"item_id"`
	Quality     int     `json:"quality"`
	BonusPoints float64 `json:"bonus_points,omitempty"`
}

// CalculateItemPowerResponse carries the computed power
type CalculateItemPowerResponse struct {
	ItemID        string  `json:"item_id"`
	LocalizedName string  `json:"localized_name,omitempty"`
	Quality       int     `json:"quality"`
	ItemPower     float64 `json:"item_power"`
}

// EnumerateVariantsRequest describes a variant search
type EnumerateVariantsRequest struct {
	ItemID      string  `json:"item_id"`
	MinPower    float64 `json:"min_power"`
	BonusPoints float64 `json:"bonus_points,omitempty"`
	// MinTier defaults to 1
	MinTier int `json:"min_tier,omitempty"`
}

// Variant is one qualifying item id and quality
type Variant struct {
	ItemID  string `json:"item_id"`
	Quality int    `json:"quality"`
}

// EnumerateVariantsResponse lists variants in scan order
type EnumerateVariantsResponse struct {
	Variants []*Variant `json:"variants"`
	// Skipped counts scanned variants missing from the catalog
	Skipped int `json:"skipped"`
}
