// Package selection picks the cheapest or most efficient market variant for
// every slot of a build
package selection

//go:generate mockgen -destination=mock/mock_service.go -package=selectionmock github.com/cabeard21/ao-bin-dumps/internal/orchestrators/selection Service

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"github.com/cabeard21/ao-bin-dumps/internal/engine"
	"github.com/cabeard21/ao-bin-dumps/internal/entities/albion"
	"github.com/cabeard21/ao-bin-dumps/internal/errors"
	"github.com/cabeard21/ao-bin-dumps/internal/metrics"
	"github.com/cabeard21/ao-bin-dumps/internal/pkg/idgen"
	"github.com/cabeard21/ao-bin-dumps/internal/repositories/selections"
	"github.com/cabeard21/ao-bin-dumps/internal/services/pricing"
)

const (
	// DefaultMaxConcurrentSlots bounds how many slots fetch prices at once
	DefaultMaxConcurrentSlots = 4
	// DefaultSelectionTTL is how long persisted selections stay readable
	DefaultSelectionTTL = 24 * time.Hour

	selectionIDPrefix = "sel"
)

// Service defines the interface for build selection
type Service interface {
	// SelectBuild resolves one variant per slot. Slots without any market
	// price degrade to a zero-priced entry instead of failing the build.
	SelectBuild(ctx context.Context, input *SelectBuildInput) (*SelectBuildOutput, error)

	// GetSelection reads back a persisted selection
	GetSelection(ctx context.Context, input *GetSelectionInput) (*GetSelectionOutput, error)

	// DeleteSelection removes a persisted selection before its TTL runs out
	DeleteSelection(ctx context.Context, input *DeleteSelectionInput) (*DeleteSelectionOutput, error)
}

// Config holds the dependencies for the selection orchestrator
type Config struct {
	Engine  engine.Engine
	Fetcher pricing.Fetcher

	// SelectionRepo enables Persist and GetSelection (optional)
	SelectionRepo selections.Repository
	// IDGenerator names persisted selections (optional, defaults to UUIDs)
	IDGenerator idgen.Generator

	// DefaultLocation is used when a request names no market (optional)
	DefaultLocation string
	// MaxConcurrentSlots of 1 processes slots strictly in order (optional, defaults to 4)
	MaxConcurrentSlots int
	// SelectionTTL of persisted selections (optional, defaults to 24 hours)
	SelectionTTL time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	if c.IDGenerator == nil {
		c.IDGenerator = idgen.NewUUID(selectionIDPrefix)
	}
	if c.MaxConcurrentSlots == 0 {
		c.MaxConcurrentSlots = DefaultMaxConcurrentSlots
	}
	if c.SelectionTTL == 0 {
		c.SelectionTTL = DefaultSelectionTTL
	}

	vb := errors.NewValidationBuilder()
	if c.Engine == nil {
		vb.RequiredField("Engine")
	}
	if c.Fetcher == nil {
		vb.RequiredField("Fetcher")
	}
	if c.MaxConcurrentSlots < 0 {
		vb.Field("MaxConcurrentSlots", "must not be negative")
	}
	if c.SelectionTTL < 0 {
		vb.Field("SelectionTTL", "must not be negative")
	}
	return vb.Build()
}

type orchestrator struct {
	engine          engine.Engine
	fetcher         pricing.Fetcher
	selectionRepo   selections.Repository
	idGen           idgen.Generator
	validate        *validator.Validate
	defaultLocation string
	maxConcurrent   int
	selectionTTL    time.Duration
}

// NewOrchestrator creates a new selection orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	validate, err := newValidator(cfg.Engine)
	if err != nil {
		return nil, err
	}

	return &orchestrator{
		engine:          cfg.Engine,
		fetcher:         cfg.Fetcher,
		selectionRepo:   cfg.SelectionRepo,
		idGen:           cfg.IDGenerator,
		validate:        validate,
		defaultLocation: cfg.DefaultLocation,
		maxConcurrent:   cfg.MaxConcurrentSlots,
		selectionTTL:    cfg.SelectionTTL,
	}, nil
}

func (o *orchestrator) SelectBuild(ctx context.Context, input *SelectBuildInput) (*SelectBuildOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := o.validate.Struct(input); err != nil {
		return nil, validationError(err)
	}
	if input.Persist && o.selectionRepo == nil {
		return nil, errors.New(errors.CodeFailedPrecondition, "selection storage is not configured")
	}

	start := time.Now()
	defer func() {
		metrics.SelectionDuration.Observe(time.Since(start).Seconds())
	}()

	location := input.Location
	if location == "" {
		location = o.defaultLocation
	}

	results := make([]*albion.SlotSelection, len(input.Slots))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.maxConcurrent)
	for i, slot := range input.Slots {
		g.Go(func() error {
			result, err := o.selectSlot(gctx, i, slot, location)
			if err != nil {
				return errors.Wrapf(err, "slot %d (%s)", i, slot.ItemID)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	output := &SelectBuildOutput{
		ItemNames:  make([]string, len(results)),
		Qualities:  make([]int, len(results)),
		ItemPowers: make([]float64, len(results)),
		Prices:     make([]float64, len(results)),
		Selections: results,
	}
	for i, r := range results {
		output.ItemNames[i] = r.ItemID
		output.Qualities[i] = r.Quality
		output.ItemPowers[i] = r.ItemPower
		output.Prices[i] = r.Price
	}

	if input.Persist {
		created, err := o.selectionRepo.Create(ctx, selections.CreateInput{
			Selection: &albion.Selection{
				ID:       o.idGen.Generate(),
				Location: location,
				Slots:    results,
			},
			TTL: o.selectionTTL,
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to store selection")
		}
		output.ID = created.Selection.ID
	}

	slog.Info("Build selected",
		"slots", len(results),
		"location", location,
		"selection_id", output.ID,
	)

	return output, nil
}

// selectSlot enumerates, prices and picks one slot. It owns its own fetch
// state so slots never share mutable data.
func (o *orchestrator) selectSlot(ctx context.Context, index int, slot *BuildSlot, location string) (*albion.SlotSelection, error) {
	strategy := StrategyFor(slot)

	item, err := o.engine.ResolveItem(&engine.ResolveItemInput{Name: slot.ItemID})
	if err != nil {
		return nil, err
	}

	variants, err := o.engine.EnumerateAbovePower(&engine.EnumerateAbovePowerInput{
		BaseItemID:  item.ItemID,
		MinPower:    slot.TargetPower,
		BonusPoints: slot.BonusPoints,
		MinTier:     slot.MinTier,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to enumerate variants")
	}
	if len(variants.Skipped) > 0 {
		metrics.VariantsSkipped.Add(float64(len(variants.Skipped)))
	}
	if variants.UnknownItem() {
		return nil, errors.ItemNotFound(item.ItemID)
	}

	result := &albion.SlotSelection{
		Slot:            index,
		RequestedItemID: slot.ItemID,
		Strategy:        strategy.Name(),
		Candidates:      variants.Len(),
	}

	var candidates []*Candidate
	if variants.Len() > 0 {
		prices, err := o.fetcher.FetchPrices(ctx, &pricing.FetchPricesInput{
			ItemIDs:   variants.ItemIDs,
			Qualities: variants.Qualities,
			Location:  location,
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to fetch prices")
		}

		candidates = candidatesFor(variants, prices.Quotes)
	}

	chosen := strategy.Choose(candidates)
	if chosen == nil {
		if last := variants.Last(); last != nil {
			result.ItemID = last.ID()
		}
		result.PriceUnavailable = true

		metrics.SlotsSelected.WithLabelValues(metrics.ResultDegraded, strategy.Name()).Inc()
		slog.Warn("No market price for any qualifying variant",
			"slot", index,
			"item_id", slot.ItemID,
			"variants", variants.Len(),
			"location", location,
		)
		return result, nil
	}

	power, err := o.engine.CalculateItemPower(&engine.CalculateItemPowerInput{
		ItemID:      chosen.ItemID,
		Quality:     chosen.Quality,
		BonusPoints: slot.BonusPoints,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to compute power of %s", chosen.ItemID)
	}

	result.ItemID = chosen.ItemID
	result.Quality = chosen.Quality
	result.ItemPower = power.ItemPower
	result.Price = chosen.Price
	result.City = chosen.City

	metrics.SlotsSelected.WithLabelValues(metrics.ResultPriced, strategy.Name()).Inc()
	slog.Debug("Slot selected",
		"slot", index,
		"item_id", result.ItemID,
		"quality", result.Quality,
		"price", result.Price,
		"strategy", result.Strategy,
	)

	return result, nil
}

// candidatesFor pairs each quote with the enumerated variant it prices,
// keeping quote order. Quotes for variants that were never requested are
// dropped.
func candidatesFor(variants *engine.EnumerateAbovePowerOutput, quotes []*albion.PriceQuote) []*Candidate {
	index := albion.IndexEntities(variants.Variants)

	candidates := make([]*Candidate, 0, len(quotes))
	for _, q := range quotes {
		pos, ok := index[albion.VariantKey(q.ItemID, q.Quality)]
		if !ok {
			slog.Warn("Dropping quote for a variant that was not requested",
				"item_id", q.ItemID,
				"quality", q.Quality,
			)
			continue
		}
		candidates = append(candidates, &Candidate{
			ItemID:    q.ItemID,
			Quality:   q.Quality,
			ItemPower: variants.Powers[pos],
			Price:     q.Price,
			City:      q.City,
		})
	}
	return candidates
}

func (o *orchestrator) GetSelection(ctx context.Context, input *GetSelectionInput) (*GetSelectionOutput, error) {
	if input == nil || input.ID == "" {
		return nil, errors.InvalidArgument("selection ID is required")
	}
	if o.selectionRepo == nil {
		return nil, errors.New(errors.CodeFailedPrecondition, "selection storage is not configured")
	}

	out, err := o.selectionRepo.Get(ctx, selections.GetInput{ID: input.ID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get selection %s", input.ID)
	}

	return &GetSelectionOutput{Selection: out.Selection}, nil
}

func (o *orchestrator) DeleteSelection(ctx context.Context, input *DeleteSelectionInput) (*DeleteSelectionOutput, error) {
	if input == nil || input.ID == "" {
		return nil, errors.InvalidArgument("selection ID is required")
	}
	if o.selectionRepo == nil {
		return nil, errors.New(errors.CodeFailedPrecondition, "selection storage is not configured")
	}

	if _, err := o.selectionRepo.Delete(ctx, selections.DeleteInput{ID: input.ID}); err != nil {
		return nil, errors.Wrapf(err, "failed to delete selection %s", input.ID)
	}

	slog.Info("Selection deleted", "selection_id", input.ID)

	return &DeleteSelectionOutput{}, nil
}
