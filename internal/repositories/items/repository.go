// Package items stores the item catalog snapshot extracted from the game data
// dumps so the server can build its catalog without reading the dump files.
package items

import (
	"context"

	"github.com/cabeard21/ao-bin-dumps/internal/entities/albion"
)

// SaveInput replaces the stored snapshot
type SaveInput struct {
	Items          []*albion.ItemDefinition
	QualityBonuses map[int]float64
}

// SaveOutput reports how much was written
type SaveOutput struct {
	ItemCount int
}

// LoadOutput is the complete snapshot
type LoadOutput struct {
	Items          []*albion.ItemDefinition
	QualityBonuses map[int]float64
}

// GetInput contains parameters for reading one item
type GetInput struct {
	UniqueName string
}

// GetOutput contains one item definition
type GetOutput struct {
	Item *albion.ItemDefinition
}

// Repository defines the interface for catalog snapshot storage
type Repository interface {
	// Save atomically replaces every stored item and the quality table
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// Load returns the whole snapshot; NotFound when nothing was saved
	Load(ctx context.Context) (*LoadOutput, error)

	// Get reads a single item definition
	Get(ctx context.Context, input GetInput) (*GetOutput, error)
}
