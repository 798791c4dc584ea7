// Package selections stores build selections so clients can read them back by id
package selections

import (
	"context"
	"time"

	"github.com/cabeard21/ao-bin-dumps/internal/entities/albion"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=selectionsmock github.com/cabeard21/ao-bin-dumps/internal/repositories/selections Repository

// CreateInput contains parameters for storing a selection
type CreateInput struct {
	Selection *albion.Selection
	// TTL is how long the selection stays readable (optional, defaults to 24 hours)
	TTL time.Duration
}

// CreateOutput contains the stored selection with its timestamps set
type CreateOutput struct {
	Selection *albion.Selection
}

// GetInput contains parameters for retrieving a selection
type GetInput struct {
	ID string
}

// GetOutput contains the retrieved selection
type GetOutput struct {
	Selection *albion.Selection
}

// DeleteInput contains parameters for deleting a selection
type DeleteInput struct {
	ID string
}

// DeleteOutput is empty on success
type DeleteOutput struct{}

// Repository defines the interface for selection storage operations
type Repository interface {
	// Create stores a selection under its id with the specified TTL
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a selection by id
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Delete removes a selection
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}
