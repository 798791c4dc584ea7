package market

import (
	"math"
	"time"
)

// GetPricesInput filters a price lookup
type GetPricesInput struct {
	ItemIDs   []string
	Qualities []int
	// Locations are city names; empty means every market
	Locations []string
}

// GetPricesOutput holds the entries of one lookup in service order
type GetPricesOutput struct {
	Entries []*PriceEntry
}

// PriceEntry is one (item, city, quality) row of the price service
type PriceEntry struct {
	ItemID       string
	City         string
	Quality      int
	SellPriceMin float64
	// SellPriceMinDate is the zero time when the service has never seen a sell order
	SellPriceMinDate time.Time
}

// Age reports how old the observation is at now. Entries without a date are
// treated as infinitely old.
func (e *PriceEntry) Age(now time.Time) time.Duration {
	if e.SellPriceMinDate.IsZero() {
		return time.Duration(math.MaxInt64)
	}
	return now.Sub(e.SellPriceMinDate)
}
