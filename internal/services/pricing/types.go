package pricing

import (
	"github.com/cabeard21/ao-bin-dumps/internal/entities/albion"
)

// ItemQuality identifies one priceable variant
type ItemQuality struct {
	ItemID  string `json:"item_id"`
	Quality int    `json:"quality"`
}

// FetchPricesInput holds parallel item id and quality lists
type FetchPricesInput struct {
	ItemIDs   []string
	Qualities []int
	// Location is the preferred market; empty means every market
	Location string
}

// FetchPricesOutput holds quotes in the order they were resolved
type FetchPricesOutput struct {
	Quotes     []*albion.PriceQuote
	Unresolved []ItemQuality
	Rounds     int
	// Aborted is set when the loop gave up after too many rounds without a match
	Aborted bool
}

// Lookup returns the quote resolved for an item and quality
func (o *FetchPricesOutput) Lookup(itemID string, quality int) (*albion.PriceQuote, bool) {
	if o == nil {
		return nil, false
	}
	for _, q := range o.Quotes {
		if q.ItemID == itemID && q.Quality == quality {
			return q, true
		}
	}
	return nil, false
}
