package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-explorer/domain"
	"github.com/google/uuid"
)

// RunRepo defines the interface for finished run persistence.
type RunRepo interface {
	// Save inserts or updates a run in the repository.
	Save(ctx context.Context, run *dmn.RunRecord) error

	// ByID retrieves a run by its session ID.
	// Returns dmn.ErrRunNotFound if there is none.
	ByID(ctx context.Context, id uuid.UUID) (*dmn.RunRecord, error)

	// Best returns up to limit runs through mazes of the given size,
	// fewest moves first.
	Best(ctx context.Context, rows, cols int, limit int64) ([]*dmn.RunRecord, error)
}
