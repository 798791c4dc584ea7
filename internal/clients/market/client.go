// Package market is the client for the Albion Online Data price API
package market

//go:generate mockgen -destination=mock/mock_client.go -package=marketmock github.com/cabeard21/ao-bin-dumps/internal/clients/market Client

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cabeard21/ao-bin-dumps/internal/errors"
)

const (
	// DefaultBaseURL is the public Americas server of the data project
	DefaultBaseURL = "https://west.albion-online-data.com"
	// DefaultHTTPTimeout bounds a single price request
	DefaultHTTPTimeout = 30 * time.Second

	pricesPath = "/api/v2/stats/prices/"
	// maxLoggedBody caps how much of an error response ends up in logs
	maxLoggedBody = 256
)

// Client defines the interface for market price lookups
type Client interface {
	// GetPrices returns every price entry the service knows for the item ids,
	// filtered by quality and location. One call is one HTTP request.
	GetPrices(ctx context.Context, input *GetPricesInput) (*GetPricesOutput, error)
}

// Config contains configuration options for the market client.
type Config struct {
	// BaseURL of the price service (optional, defaults to DefaultBaseURL)
	BaseURL string
	// HTTPTimeout for API requests (optional, defaults to 30 seconds)
	HTTPTimeout time.Duration
	// HTTPClient overrides the client built from HTTPTimeout (optional)
	HTTPClient *http.Client
}

// Validate validates the Config and sets defaults if not provided.
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = DefaultHTTPTimeout
	}

	vb := errors.NewValidationBuilder()
	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		vb.Fieldf("BaseURL", "is not a valid url: %v", err)
	}
	if cfg.HTTPTimeout < 0 {
		vb.Field("HTTPTimeout", "must not be negative")
	}
	return vb.Build()
}

type client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new market client with the given configuration.
func New(cfg *Config) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: cfg.HTTPTimeout,
		}
	}

	return &client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
	}, nil
}

func (c *client) GetPrices(ctx context.Context, input *GetPricesInput) (*GetPricesOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if len(input.ItemIDs) == 0 {
		return nil, errors.InvalidArgument("at least one item id is required")
	}

	reqURL := c.pricesURL(input)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build price request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.WrapWithCode(err, errors.CodeCanceled, "price request canceled")
		}
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "price request failed")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to read price response")
	}

	if resp.StatusCode != http.StatusOK {
		slog.Warn("Market service returned non-OK status",
			"status", resp.StatusCode,
			"items", len(input.ItemIDs),
			"body", truncate(body, maxLoggedBody),
		)
		return nil, errors.Newf(errors.CodeFromHTTPStatus(resp.StatusCode), "market service returned %s", resp.Status).
			WithMeta("status", resp.StatusCode)
	}

	var raw []*priceEntryJSON
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "failed to decode price response")
	}

	entries := make([]*PriceEntry, 0, len(raw))
	for _, r := range raw {
		entry, err := r.toEntry()
		if err != nil {
			slog.Debug("Dropping price entry with unreadable date",
				"item_id", r.ItemID,
				"city", r.City,
				"error", err,
			)
			continue
		}
		entries = append(entries, entry)
	}

	return &GetPricesOutput{Entries: entries}, nil
}

// pricesURL renders {base}/api/v2/stats/prices/{ids}.json?locations=..&qualities=..
func (c *client) pricesURL(input *GetPricesInput) string {
	escaped := make([]string, len(input.ItemIDs))
	for i, id := range input.ItemIDs {
		escaped[i] = url.PathEscape(id)
	}

	query := url.Values{}
	if len(input.Locations) > 0 {
		query.Set("locations", strings.Join(input.Locations, ","))
	}
	if len(input.Qualities) > 0 {
		qualities := make([]string, len(input.Qualities))
		for i, q := range input.Qualities {
			qualities[i] = strconv.Itoa(q)
		}
		query.Set("qualities", strings.Join(qualities, ","))
	}

	u := c.baseURL + pricesPath + strings.Join(escaped, ",") + ".json"
	if encoded := query.Encode(); encoded != "" {
		u += "?" + encoded
	}
	return u
}

func truncate(body []byte, limit int) string {
	if len(body) <= limit {
		return string(body)
	}
	return string(body[:limit]) + "..."
}
