package market

import (
	"time"

	"github.com/cabeard21/ao-bin-dumps/internal/errors"
)

// Layouts accepted for sell_price_min_date. The service usually omits the zone.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// unsetDate is what the service sends for items without sell orders
const unsetDate = "0001-01-01T00:00:00"

type priceEntryJSON struct {
	ItemID           string  `json:"item_id"`
	City             string  `json:"city"`
	Quality          int     `json:"quality"`
	SellPriceMin     float64 `json:"sell_price_min"`
	SellPriceMinDate string  `json:"sell_price_min_date"`
}

func (r *priceEntryJSON) toEntry() (*PriceEntry, error) {
	observed, err := parseDate(r.SellPriceMinDate)
	if err != nil {
		return nil, err
	}

	return &PriceEntry{
		ItemID:           r.ItemID,
		City:             r.City,
		Quality:          r.Quality,
		SellPriceMin:     r.SellPriceMin,
		SellPriceMinDate: observed,
	}, nil
}

// parseDate reads an ISO-8601 timestamp. Values without a zone are UTC.
func parseDate(value string) (time.Time, error) {
	if value == "" || value == unsetDate {
		return time.Time{}, nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.InvalidArgumentf("unrecognized date %q", value)
}
