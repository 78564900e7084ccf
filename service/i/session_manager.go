package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-explorer/domain"
	"github.com/beka-birhanu/vinom-explorer/game"
	"github.com/google/uuid"
)

// SessionManager runs maze sessions on behalf of the API.
type SessionManager interface {
	// Create generates a width x height maze and starts a session in it.
	// A zero seed picks a random maze.
	Create(ctx context.Context, width, height int, seed int64) (uuid.UUID, *game.Snapshot, error)

	// Get returns the current state of a session.
	Get(ctx context.Context, id uuid.UUID) (*game.Snapshot, error)

	// Apply runs cmds against a session in order and returns how many of
	// them changed its state.
	Apply(ctx context.Context, id uuid.UUID, cmds ...game.Command) (int, *game.Snapshot, error)

	// Leaderboard returns the best finished runs for a maze size.
	Leaderboard(ctx context.Context, rows, cols int, limit int64) ([]*dmn.RunRecord, error)
}
