package albion

import "time"

// Selection strategies recorded on a slot
const (
	StrategyCheapest   = "cheapest"
	StrategyEfficiency = "efficiency"
)

// SlotSelection is the variant picked for one build slot. A slot without any
// market price keeps the last enumerated variant with zero quality, power and
// price and sets PriceUnavailable.
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
	// Candidates is the number of variants that met the power floor
	Candidates int `json:"candidates"`
}

// Selection is a complete build, one entry per requested slot in request order
type Selection struct {
	ID        string           `json:"id"`
	Location  string           `json:"location"`
	Slots     []*SlotSelection `json:"slots"`
	CreatedAt time.Time        `json:"created_at"`
	ExpiresAt time.Time        `json:"expires_at,omitempty"`
}

// TotalPrice sums the slot prices
func (s *Selection) TotalPrice() float64 {
	var total float64
	for _, slot := range s.Slots {
		total += slot.Price
	}
	return total
}
