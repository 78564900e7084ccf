package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrRunNotFound     = errors.New("run not found")
	ErrInvalidRun      = errors.New("invalid run record")
)

// RunRecord is a finished walk through a maze, stored for the leaderboard.
type RunRecord struct {
	ID         uuid.UUID `bson:"_id"`
	Rows       int       `bson:"rows"`
	Cols       int       `bson:"cols"`
	Moves      int       `bson:"moves"`
	Blocked    int       `bson:"blocked"`
	Rotations  int       `bson:"rotations"`
	Visited    int       `bson:"visited"`
	StartedAt  time.Time `bson:"startedAt"`
	FinishedAt time.Time `bson:"finishedAt"`
}

// RunConfig holds the parameters for creating a RunRecord.
type RunConfig struct {
	SessionID  uuid.UUID
	Rows, Cols int
	Moves      int
	Blocked    int
	Rotations  int
	Visited    int
	StartedAt  time.Time
	FinishedAt time.Time
}

// NewRunRecord validates config and creates a RunRecord keyed by the session ID.
func NewRunRecord(config RunConfig) (*RunRecord, error) {
	if config.SessionID == uuid.Nil {
		return nil, errors.Join(ErrInvalidRun, errors.New("missing session id"))
	}
	if config.Rows <= 0 || config.Cols <= 0 {
		return nil, errors.Join(ErrInvalidRun, errors.New("maze dimensions must be positive"))
	}
	if config.FinishedAt.Before(config.StartedAt) {
		return nil, errors.Join(ErrInvalidRun, errors.New("finished before it started"))
	}

	return &RunRecord{
		ID:         config.SessionID,
		Rows:       config.Rows,
		Cols:       config.Cols,
		Moves:      config.Moves,
		Blocked:    config.Blocked,
		Rotations:  config.Rotations,
		Visited:    config.Visited,
		StartedAt:  config.StartedAt.UTC(),
		FinishedAt: config.FinishedAt.UTC(),
	}, nil
}

// Duration returns how long the run took.
func (r *RunRecord) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
