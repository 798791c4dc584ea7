package pricing

import (
	"time"

	"github.com/cabeard21/ao-bin-dumps/internal/clients/market"
	"github.com/cabeard21/ao-bin-dumps/internal/entities/albion"
)

// batchQuery is the round state of one FetchPrices call. It knows nothing
// about timing or transport; the fetcher feeds it responses and asks whether
// another round is due.
type batchQuery struct {
	pending  []ItemQuality
	resolved []*albion.PriceQuote
	failures int
	rounds   int

	hubFallbackAfter int
	maxFailures      int
}

func newBatchQuery(itemIDs []string, qualities []int, hubFallbackAfter, maxFailures int) *batchQuery {
	seen := make(map[ItemQuality]struct{}, len(itemIDs))
	pending := make([]ItemQuality, 0, len(itemIDs))
	for i, id := range itemIDs {
		pair := ItemQuality{ItemID: id, Quality: qualities[i]}
		if _, ok := seen[pair]; ok {
			continue
		}
		seen[pair] = struct{}{}
		pending = append(pending, pair)
	}

	return &batchQuery{
		pending:          pending,
		hubFallbackAfter: hubFallbackAfter,
		maxFailures:      maxFailures,
	}
}

// request returns the distinct pending item ids and qualities in first-seen order
func (q *batchQuery) request() ([]string, []int) {
	var ids []string
	var qualities []int
	seenIDs := make(map[string]struct{})
	seenQualities := make(map[int]struct{})

	for _, pair := range q.pending {
		if _, ok := seenIDs[pair.ItemID]; !ok {
			seenIDs[pair.ItemID] = struct{}{}
			ids = append(ids, pair.ItemID)
		}
		if _, ok := seenQualities[pair.Quality]; !ok {
			seenQualities[pair.Quality] = struct{}{}
			qualities = append(qualities, pair.Quality)
		}
	}
	return ids, qualities
}

// useHubs reports whether the next round should query the hub cities. The
// caller's location gets the first hubFallbackAfter consecutive misses.
func (q *batchQuery) useHubs() bool {
	return q.failures >= q.hubFallbackAfter
}

// apply matches one round's entries against the pending pairs and returns how
// many were resolved. A nil slice records a failed round.
func (q *batchQuery) apply(entries []*market.PriceEntry, now time.Time) int {
	q.rounds++

	remaining := make([]ItemQuality, 0, len(q.pending))
	resolved := 0
	for _, pair := range q.pending {
		quote := cheapestUsable(pair, entries, now)
		if quote == nil {
			remaining = append(remaining, pair)
			continue
		}
		q.resolved = append(q.resolved, quote)
		resolved++
	}
	q.pending = remaining

	if resolved > 0 {
		q.failures = 0
	} else {
		q.failures++
	}
	return resolved
}

// next reports whether another round is due after a round that did or did not
// make progress
func (q *batchQuery) next(progress bool) bool {
	if len(q.pending) == 0 || q.exhausted() {
		return false
	}
	return progress || len(q.resolved) == 0
}

// exhausted reports whether the consecutive miss budget is spent
func (q *batchQuery) exhausted() bool {
	return q.failures > q.maxFailures
}

func (q *batchQuery) output() *FetchPricesOutput {
	return &FetchPricesOutput{
		Quotes:     q.resolved,
		Unresolved: append([]ItemQuality(nil), q.pending...),
		Rounds:     q.rounds,
		Aborted:    q.exhausted(),
	}
}

// cheapestUsable picks the lowest priced fresh entry for a pair across cities
func cheapestUsable(pair ItemQuality, entries []*market.PriceEntry, now time.Time) *albion.PriceQuote {
	var best *albion.PriceQuote
	for _, entry := range entries {
		if entry.ItemID != pair.ItemID || entry.Quality != pair.Quality {
			continue
		}

		quote := &albion.PriceQuote{
			ItemID:     entry.ItemID,
			Quality:    entry.Quality,
			Price:      entry.SellPriceMin,
			City:       entry.City,
			ObservedAt: entry.SellPriceMinDate,
			Age:        entry.Age(now),
		}
		if !quote.Usable() {
			continue
		}
		if best == nil || quote.Price < best.Price {
			best = quote
		}
	}
	return best
}
