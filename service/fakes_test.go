package service

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"testing"
	"time"

	dmn "github.com/beka-birhanu/vinom-explorer/domain"
	"github.com/beka-birhanu/vinom-explorer/game"
	"github.com/beka-birhanu/vinom-explorer/game/maze"
	mp "github.com/beka-birhanu/vinom-explorer/game/msgpack_encoder"
	"github.com/beka-birhanu/vinom-explorer/logger"
	"github.com/beka-birhanu/vinom-explorer/service/i"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]i.StoredSession
	locked   map[uuid.UUID]bool
	saves    int
}

func newMemStore() *memStore {
	return &memStore{
		sessions: make(map[uuid.UUID]i.StoredSession),
		locked:   make(map[uuid.UUID]bool),
	}
}

func (s *memStore) Create(_ context.Context, id uuid.UUID, stored *i.StoredSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; ok {
		return errors.New("duplicate session")
	}
	s.sessions[id] = *stored
	return nil
}

func (s *memStore) Load(_ context.Context, id uuid.UUID) (*i.StoredSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.sessions[id]
	if !ok {
		return nil, dmn.ErrSessionNotFound
	}
	return &stored, nil
}

func (s *memStore) Save(_ context.Context, id uuid.UUID, stored *i.StoredSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return dmn.ErrSessionNotFound
	}
	s.sessions[id] = *stored
	s.saves++
	return nil
}

func (s *memStore) Lock(_ context.Context, id uuid.UUID) (i.UnlockFunc, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locked[id] {
		return nil, errors.New("already locked")
	}
	s.locked[id] = true
	return func(context.Context) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.locked, id)
		return nil
	}, nil
}

type memRuns struct {
	runs    map[uuid.UUID]*dmn.RunRecord
	failing bool
}

func newMemRuns() *memRuns {
	return &memRuns{runs: make(map[uuid.UUID]*dmn.RunRecord)}
}

func (r *memRuns) Save(_ context.Context, run *dmn.RunRecord) error {
	if r.failing {
		return errors.New("database down")
	}
	r.runs[run.ID] = run
	return nil
}

func (r *memRuns) ByID(_ context.Context, id uuid.UUID) (*dmn.RunRecord, error) {
	run, ok := r.runs[id]
	if !ok {
		return nil, dmn.ErrRunNotFound
	}
	return run, nil
}

func (r *memRuns) Best(_ context.Context, rows, cols int, limit int64) ([]*dmn.RunRecord, error) {
	var best []*dmn.RunRecord
	for _, run := range r.runs {
		if run.Rows == rows && run.Cols == cols {
			best = append(best, run)
		}
	}
	sort.Slice(best, func(a, b int) bool { return best[a].Moves < best[b].Moves })
	if int64(len(best)) > limit {
		best = best[:limit]
	}
	return best, nil
}

type fixture struct {
	manager *SessionManager
	store   *memStore
	runs    *memRuns
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log, err := logger.New("TEST", "", io.Discard)
	require.NoError(t, err)

	f := &fixture{store: newMemStore(), runs: newMemRuns()}
	clock := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	f.manager, err = NewSessionManager(&Config{
		Store:   f.store,
		Runs:    f.runs,
		Encoder: &mp.Msgpack{},
		MazeFactory: func(width, height int, seed int64) (game.Maze, error) {
			m, err := maze.New(width, height, seed)
			if err != nil {
				return nil, err
			}
			return m, nil
		},
		LayoutFactory: func(l game.MazeLayout) (game.Maze, error) {
			m, err := maze.NewFromLayout(l)
			if err != nil {
				return nil, err
			}
			return m, nil
		},
		Settings: game.DefaultSettings(),
		Logger:   log,
		Clock: func() time.Time {
			clock = clock.Add(time.Second)
			return clock
		},
	})
	require.NoError(t, err)
	return f
}
