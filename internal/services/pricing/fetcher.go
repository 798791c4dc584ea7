package pricing

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/cabeard21/ao-bin-dumps/internal/clients/market"
	"github.com/cabeard21/ao-bin-dumps/internal/errors"
	"github.com/cabeard21/ao-bin-dumps/internal/metrics"
	"github.com/cabeard21/ao-bin-dumps/internal/pkg/clock"
)

// Round loop defaults
const (
	DefaultRoundDelay       = time.Second
	DefaultRetryDelay       = DefaultRoundDelay / 4
	DefaultHubFallbackAfter = 10
	DefaultMaxFailures      = 20
)

// DefaultHubLocations are the royal cities and Caerleon, queried once the
// preferred market keeps coming back empty
func DefaultHubLocations() []string {
	return []string{"Caerleon", "Bridgewatch", "Lymhurst", "Martlock", "Fort Sterling", "Thetford"}
}

// Config holds the dependencies and tuning of the fetcher
type Config struct {
	Client market.Client
	// Limiter is shared by every fetch so concurrent callers split one request
	// budget (optional, unlimited when nil)
	Limiter *rate.Limiter
	// Clock drives delays and quote ages (optional, defaults to the real clock)
	Clock clock.Clock

	// RoundDelay follows a round that resolved something
	RoundDelay time.Duration
	// RetryDelay follows a round that resolved nothing; lower than RoundDelay,
	// defaults to a quarter of it
	RetryDelay time.Duration
	// HubFallbackAfter is the miss count after which hub cities replace the location
	HubFallbackAfter int
	// MaxFailures is the miss count after which the fetch gives up
	MaxFailures  int
	HubLocations []string
}

// Validate ensures all required dependencies are provided and fills defaults
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	if cfg.Limiter == nil {
		cfg.Limiter = rate.NewLimiter(rate.Inf, 1)
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}
	if cfg.RoundDelay == 0 {
		cfg.RoundDelay = DefaultRoundDelay
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = cfg.RoundDelay / 4
	}
	if cfg.HubFallbackAfter == 0 {
		cfg.HubFallbackAfter = DefaultHubFallbackAfter
	}
	if cfg.MaxFailures == 0 {
		cfg.MaxFailures = DefaultMaxFailures
	}
	if len(cfg.HubLocations) == 0 {
		cfg.HubLocations = DefaultHubLocations()
	}

	vb := errors.NewValidationBuilder()
	if cfg.Client == nil {
		vb.RequiredField("Client")
	}
	if cfg.RetryDelay < 0 || cfg.RoundDelay < 0 {
		vb.Field("RoundDelay", "delays must not be negative")
	} else if cfg.RetryDelay >= cfg.RoundDelay {
		vb.Fieldf("RetryDelay", "must be lower than RoundDelay (%s)", cfg.RoundDelay)
	}
	if cfg.HubFallbackAfter < 0 {
		vb.Field("HubFallbackAfter", "must not be negative")
	}
	if cfg.MaxFailures < cfg.HubFallbackAfter {
		vb.Field("MaxFailures", "must be at least HubFallbackAfter")
	}
	return vb.Build()
}

type fetcher struct {
	client           market.Client
	limiter          *rate.Limiter
	clock            clock.Clock
	roundDelay       time.Duration
	retryDelay       time.Duration
	hubFallbackAfter int
	maxFailures      int
	hubLocations     []string
}

// New creates a fetcher
func New(cfg *Config) (Fetcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &fetcher{
		client:           cfg.Client,
		limiter:          cfg.Limiter,
		clock:            cfg.Clock,
		roundDelay:       cfg.RoundDelay,
		retryDelay:       cfg.RetryDelay,
		hubFallbackAfter: cfg.HubFallbackAfter,
		maxFailures:      cfg.MaxFailures,
		hubLocations:     append([]string(nil), cfg.HubLocations...),
	}, nil
}

func (f *fetcher) FetchPrices(ctx context.Context, input *FetchPricesInput) (*FetchPricesOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if len(input.ItemIDs) != len(input.Qualities) {
		return nil, errors.InvalidArgumentf("got %d item ids and %d qualities", len(input.ItemIDs), len(input.Qualities)).
			WithMeta("item_ids", len(input.ItemIDs)).
			WithMeta("qualities", len(input.Qualities))
	}

	query := newBatchQuery(input.ItemIDs, input.Qualities, f.hubFallbackAfter, f.maxFailures)
	if len(query.pending) == 0 {
		return query.output(), nil
	}

	start := f.clock.Now()
	defer func() {
		metrics.PriceFetchDuration.Observe(f.clock.Now().Sub(start).Seconds())
	}()

	for {
		if err := f.limiter.Wait(ctx); err != nil {
			return query.output(), contextError(ctx, err)
		}

		ids, qualities := query.request()
		locations := f.locations(query, input.Location)

		resp, err := f.client.GetPrices(ctx, &market.GetPricesInput{
			ItemIDs:   ids,
			Qualities: qualities,
			Locations: locations,
		})

		var resolved int
		if err != nil {
			if ctx.Err() != nil {
				return query.output(), contextError(ctx, err)
			}
			slog.Warn("Price round failed",
				"round", query.rounds+1,
				"items", len(ids),
				"locations", locations,
				"error", err,
			)
			metrics.PriceRounds.WithLabelValues(metrics.OutcomeError).Inc()
			query.apply(nil, f.clock.Now())
		} else {
			resolved = query.apply(resp.Entries, f.clock.Now())
			if resolved > 0 {
				metrics.PriceRounds.WithLabelValues(metrics.OutcomeProgress).Inc()
				metrics.PriceQuotes.Add(float64(resolved))
			} else {
				metrics.PriceRounds.WithLabelValues(metrics.OutcomeMiss).Inc()
			}
		}

		slog.Debug("Price round finished",
			"round", query.rounds,
			"resolved", resolved,
			"pending", len(query.pending),
			"failures", query.failures,
		)

		progress := resolved > 0
		if !query.next(progress) {
			break
		}

		delay := f.retryDelay
		if progress {
			delay = f.roundDelay
		}
		if err := f.clock.Sleep(ctx, delay); err != nil {
			return query.output(), contextError(ctx, err)
		}
	}

	out := query.output()
	if out.Aborted {
		metrics.PriceFetchAborted.Inc()
	}

	slog.Info("Price fetch finished",
		"resolved", len(out.Quotes),
		"unresolved", len(out.Unresolved),
		"rounds", out.Rounds,
		"aborted", out.Aborted,
	)

	return out, nil
}

func (f *fetcher) locations(query *batchQuery, location string) []string {
	if query.useHubs() {
		return f.hubLocations
	}
	if location == "" {
		return nil
	}
	return []string{location}
}

// contextError reports why a fetch stopped early. Limiter errors that are not
// caused by the context (a wait longer than the deadline) count as deadline
// exceeded.
func contextError(ctx context.Context, err error) error {
	switch ctx.Err() {
	case context.Canceled:
		return errors.WrapWithCode(ctx.Err(), errors.CodeCanceled, "price fetch canceled")
	case context.DeadlineExceeded:
		return errors.WrapWithCode(ctx.Err(), errors.CodeDeadlineExceeded, "price fetch deadline exceeded")
	default:
		return errors.WrapWithCode(err, errors.CodeDeadlineExceeded, "price fetch cannot finish before deadline")
	}
}
