package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/vinom-explorer/domain"
	"github.com/beka-birhanu/vinom-explorer/game"
	"github.com/beka-birhanu/vinom-explorer/service/i"
	"github.com/google/uuid"
)

const (
	defaultLeaderboardSize = 10
	maxLeaderboardSize     = 100
	maxCommandsPerRequest  = 200
)

var (
	ErrInvalidCommand  = errors.New("invalid command")
	ErrTooManyCommands = errors.New("too many commands in one request")
)

// MazeFactory generates a new maze of the given size from a seed.
type MazeFactory func(width, height int, seed int64) (game.Maze, error)

// LayoutFactory rebuilds a maze from a stored layout.
type LayoutFactory func(game.MazeLayout) (game.Maze, error)

type Config struct {
	Store         i.SessionStore
	Runs          i.RunRepo
	Encoder       game.Encoder
	MazeFactory   MazeFactory
	LayoutFactory LayoutFactory
	Settings      game.Settings
	Logger        i.Logger
	Clock         func() time.Time
}

// SessionManager keeps sessions in a SessionStore and replays every request
// against a session restored from its snapshot.
type SessionManager struct {
	store         i.SessionStore
	runs          i.RunRepo
	encoder       game.Encoder
	mazeFactory   MazeFactory
	layoutFactory LayoutFactory
	settings      game.Settings
	logger        i.Logger
	now           func() time.Time
}

var _ i.SessionManager = &SessionManager{}

func NewSessionManager(c *Config) (*SessionManager, error) {
	if c.Store == nil || c.Runs == nil || c.Encoder == nil || c.MazeFactory == nil || c.LayoutFactory == nil || c.Logger == nil {
		return nil, errors.New("session manager: missing dependency")
	}
	if err := c.Settings.Validate(); err != nil {
		return nil, fmt.Errorf("session manager: %w", err)
	}

	now := c.Clock
	if now == nil {
		now = time.Now
	}

	return &SessionManager{
		store:         c.Store,
		runs:          c.Runs,
		encoder:       c.Encoder,
		mazeFactory:   c.MazeFactory,
		layoutFactory: c.LayoutFactory,
		settings:      c.Settings,
		logger:        c.Logger,
		now:           now,
	}, nil
}

func (sm *SessionManager) Create(ctx context.Context, width, height int, seed int64) (uuid.UUID, *game.Snapshot, error) {
	m, err := sm.mazeFactory(width, height, seed)
	if err != nil {
		return uuid.Nil, nil, err
	}

	sess, err := game.NewSession(m, sm.settings)
	if err != nil {
		return uuid.Nil, nil, err
	}

	snap := sess.Snapshot()
	data, err := sm.encoder.MarshalSnapshot(snap)
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("encoding snapshot: %w", err)
	}

	id := uuid.New()
	stored := &i.StoredSession{Snapshot: data, StartedAt: sm.now().UTC()}
	if err := sm.store.Create(ctx, id, stored); err != nil {
		sm.logger.Error(fmt.Sprintf("storing new session %s: %s", id, err))
		return uuid.Nil, nil, err
	}

	sm.logger.Info(fmt.Sprintf("started session %s in a %dx%d maze", id, width, height))
	return id, &snap, nil
}

func (sm *SessionManager) Get(ctx context.Context, id uuid.UUID) (*game.Snapshot, error) {
	stored, err := sm.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	snap, err := sm.encoder.UnmarshalSnapshot(stored.Snapshot)
	if err != nil {
		sm.logger.Error(fmt.Sprintf("decoding session %s: %s", id, err))
		return nil, err
	}
	return &snap, nil
}

func (sm *SessionManager) Apply(ctx context.Context, id uuid.UUID, cmds ...game.Command) (int, *game.Snapshot, error) {
	if len(cmds) > maxCommandsPerRequest {
		return 0, nil, ErrTooManyCommands
	}
	for _, cmd := range cmds {
		if !cmd.Valid() {
			return 0, nil, fmt.Errorf("%w: %q", ErrInvalidCommand, cmd)
		}
	}

	unlock, err := sm.store.Lock(ctx, id)
	if err != nil {
		return 0, nil, err
	}
	defer func() {
		if err := unlock(context.WithoutCancel(ctx)); err != nil {
			sm.logger.Warning(fmt.Sprintf("releasing lock of session %s: %s", id, err))
		}
	}()

	stored, err := sm.store.Load(ctx, id)
	if err != nil {
		return 0, nil, err
	}
	sess, err := sm.restore(stored)
	if err != nil {
		sm.logger.Error(fmt.Sprintf("restoring session %s: %s", id, err))
		return 0, nil, err
	}

	applied := 0
	for _, cmd := range cmds {
		if sess.Apply(cmd) {
			applied++
		}
	}

	snap := sess.Snapshot()
	if applied == 0 {
		return 0, &snap, nil
	}

	if stored.Snapshot, err = sm.encoder.MarshalSnapshot(snap); err != nil {
		return 0, nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	if sess.Finished() && !stored.Recorded {
		stored.Recorded = sm.recordRun(ctx, id, stored.StartedAt, sess)
	}
	if err := sm.store.Save(ctx, id, stored); err != nil {
		sm.logger.Error(fmt.Sprintf("saving session %s: %s", id, err))
		return 0, nil, err
	}

	return applied, &snap, nil
}

func (sm *SessionManager) Leaderboard(ctx context.Context, rows, cols int, limit int64) ([]*dmn.RunRecord, error) {
	if limit <= 0 {
		limit = defaultLeaderboardSize
	}
	if limit > maxLeaderboardSize {
		limit = maxLeaderboardSize
	}
	return sm.runs.Best(ctx, rows, cols, limit)
}

func (sm *SessionManager) restore(stored *i.StoredSession) (*game.Session, error) {
	snap, err := sm.encoder.UnmarshalSnapshot(stored.Snapshot)
	if err != nil {
		return nil, err
	}

	m, err := sm.layoutFactory(snap.Layout)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", game.ErrCorruptSnapshot, err)
	}
	return game.Restore(m, snap)
}

// recordRun saves a finished run and reports whether it was stored. A failed
// save is retried on the next state change.
func (sm *SessionManager) recordRun(ctx context.Context, id uuid.UUID, startedAt time.Time, sess *game.Session) bool {
	rows, cols := sess.Maze().Dimensions()
	stats := sess.Stats()
	run, err := dmn.NewRunRecord(dmn.RunConfig{
		SessionID:  id,
		Rows:       rows,
		Cols:       cols,
		Moves:      stats.Moves,
		Blocked:    stats.Blocked,
		Rotations:  stats.Rotations,
		Visited:    sess.VisitedCount(),
		StartedAt:  startedAt,
		FinishedAt: sm.now(),
	})
	if err != nil {
		sm.logger.Error(fmt.Sprintf("building run record for session %s: %s", id, err))
		return false
	}

	if err := sm.runs.Save(ctx, run); err != nil {
		sm.logger.Warning(fmt.Sprintf("saving run of session %s: %s", id, err))
		return false
	}

	sm.logger.Info(fmt.Sprintf("session %s reached the end in %d moves", id, stats.Moves))
	return true
}
