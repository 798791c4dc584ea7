// Package pricing resolves market prices for (item, quality) pairs with
// batched, deduplicated and retried rounds against the market service.
package pricing

import (
	"context"
)

//go:generate mockgen -destination=mock/mock_fetcher.go -package=pricingmock github.com/cabeard21/ao-bin-dumps/internal/services/pricing Fetcher

// Fetcher resolves prices for a set of item variants
type Fetcher interface {
	// FetchPrices returns a quote for every pair the market could price within
	// the round budget. Running out of rounds is not an error; the output
	// lists what stayed unresolved.
	FetchPrices(ctx context.Context, input *FetchPricesInput) (*FetchPricesOutput, error)
}
