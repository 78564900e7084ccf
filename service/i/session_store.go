package i

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// StoredSession is what the session store keeps for one session.
type StoredSession struct {
	Snapshot  []byte    // encoded game.Snapshot
	StartedAt time.Time // when the session was created
	Recorded  bool      // whether the finished run was already saved
}

// UnlockFunc releases a session lock.
type UnlockFunc func(context.Context) error

// SessionStore keeps live sessions between requests.
type SessionStore interface {
	// Create stores a new session. It fails if the ID is already taken.
	Create(ctx context.Context, id uuid.UUID, s *StoredSession) error

	// Load returns the stored session or domain.ErrSessionNotFound.
	Load(ctx context.Context, id uuid.UUID) (*StoredSession, error)

	// Save overwrites an existing session and refreshes its expiry.
	Save(ctx context.Context, id uuid.UUID, s *StoredSession) error

	// Lock acquires the exclusive lock of a session. The returned func
	// must be called to release it.
	Lock(ctx context.Context, id uuid.UUID) (UnlockFunc, error)
}
