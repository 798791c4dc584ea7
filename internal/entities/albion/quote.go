package albion

import "time"

// PriceQuote is a market sell price observed for one item and quality
type PriceQuote struct {
	ItemID     string        `json:"item_id"`
	Quality    int           `json:"quality"`
	Price      float64       `json:"price"`
	City       string        `json:"city,omitempty"`
	ObservedAt time.Time     `json:"observed_at"`
	Age        time.Duration `json:"age"`
}

// Usable reports whether the quote has a real price and is recent enough.
// Observations stamped in the future count as fresh.
func (q *PriceQuote) Usable() bool {
	return q.Price > 0 && q.Age <= MaxQuoteAge
}
