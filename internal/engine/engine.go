package engine

import (
	"github.com/cabeard21/ao-bin-dumps/internal/catalog"
	"github.com/cabeard21/ao-bin-dumps/internal/entities/albion"
	"github.com/cabeard21/ao-bin-dumps/internal/errors"
)

type engine struct {
	catalog catalog.Catalog
}

// Config holds the dependencies for the engine
type Config struct {
	Catalog catalog.Catalog
}

// Validate ensures all required dependencies are provided
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if cfg.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	return vb.Build()
}

// New creates an engine bound to a catalog
func New(cfg *Config) (Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &engine{catalog: cfg.Catalog}, nil
}

func (e *engine) CalculateItemPower(input *CalculateItemPowerInput) (*CalculateItemPowerOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	power, err := ComputePower(e.catalog, input.ItemID, input.Quality, input.BonusPoints)
	if err != nil {
		return nil, err
	}
	return &CalculateItemPowerOutput{ItemPower: power}, nil
}

func (e *engine) EnumerateAbovePower(input *EnumerateAbovePowerInput) (*EnumerateAbovePowerOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	return EnumerateAbovePower(e.catalog, input)
}

func (e *engine) ResolveItem(input *ResolveItemInput) (*ResolveItemOutput, error) {
	if input == nil || input.Name == "" {
		return nil, errors.InvalidArgument("name is required")
	}

	if _, err := albion.TypeSuffix(input.Name); err == nil {
		return &ResolveItemOutput{ItemID: input.Name}, nil
	}

	item, ok := e.catalog.LookupByName(input.Name)
	if !ok {
		return nil, errors.ItemNotFound(input.Name)
	}
	return &ResolveItemOutput{ItemID: item.UniqueName, LocalizedName: item.LocalizedName}, nil
}
