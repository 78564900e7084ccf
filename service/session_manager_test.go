package service

import (
	"context"
	"testing"

	dmn "github.com/beka-birhanu/vinom-explorer/domain"
	"github.com/beka-birhanu/vinom-explorer/game"
	"github.com/beka-birhanu/vinom-explorer/game/maze"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func repeat(cmd game.Command, n int) []game.Command {
	cmds := make([]game.Command, n)
	for i := range cmds {
		cmds[i] = cmd
	}
	return cmds
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("Starts at the start cell", func(t *testing.T) {
		f := newFixture(t)
		id, snap, err := f.manager.Create(ctx, 4, 3, 7)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, id)
		assert.Equal(t, game.Normal, snap.Mode)
		assert.Equal(t, game.CellPosition{Row: 0, Col: 0}, snap.Pose.Cell())
		assert.Equal(t, 3, snap.Layout.Rows)
		assert.Equal(t, 4, snap.Layout.Cols)

		got, err := f.manager.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, snap, got)
	})

	t.Run("Rejects bad dimensions", func(t *testing.T) {
		f := newFixture(t)
		_, _, err := f.manager.Create(ctx, 0, 3, 7)
		assert.ErrorIs(t, err, maze.ErrInvalidDimensions)
		assert.Empty(t, f.store.sessions)
	})

	t.Run("Unknown session", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.manager.Get(ctx, uuid.New())
		assert.ErrorIs(t, err, dmn.ErrSessionNotFound)
	})
}

func TestApply(t *testing.T) {
	ctx := context.Background()

	t.Run("Rejects invalid commands before locking", func(t *testing.T) {
		f := newFixture(t)
		id, _, err := f.manager.Create(ctx, 2, 1, 1)
		require.NoError(t, err)

		_, _, err = f.manager.Apply(ctx, id, game.CmdForward, game.Command("fly"))
		assert.ErrorIs(t, err, ErrInvalidCommand)
		assert.Empty(t, f.store.locked)
		assert.Zero(t, f.store.saves)
	})

	t.Run("Rejects oversized batches", func(t *testing.T) {
		f := newFixture(t)
		_, _, err := f.manager.Apply(ctx, uuid.New(), repeat(game.CmdTick, maxCommandsPerRequest+1)...)
		assert.ErrorIs(t, err, ErrTooManyCommands)
	})

	t.Run("Unknown session", func(t *testing.T) {
		f := newFixture(t)
		_, _, err := f.manager.Apply(ctx, uuid.New(), game.CmdForward)
		assert.ErrorIs(t, err, dmn.ErrSessionNotFound)
		assert.Empty(t, f.store.locked)
	})

	t.Run("Moves are persisted", func(t *testing.T) {
		f := newFixture(t)
		id, _, err := f.manager.Create(ctx, 3, 3, 5)
		require.NoError(t, err)

		applied, snap, err := f.manager.Apply(ctx, id, game.CmdRotateLeft, game.CmdRotateLeft)
		require.NoError(t, err)
		assert.Equal(t, 2, applied)
		assert.Equal(t, 20.0, snap.Pose.Heading)
		assert.Empty(t, f.store.locked)

		got, err := f.manager.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 20.0, got.Pose.Heading)
		assert.Equal(t, 1, f.store.saves)
	})

	t.Run("Ignored commands are not saved", func(t *testing.T) {
		f := newFixture(t)
		id, _, err := f.manager.Create(ctx, 3, 3, 5)
		require.NoError(t, err)

		applied, snap, err := f.manager.Apply(ctx, id, game.CmdTick)
		require.NoError(t, err)
		assert.Zero(t, applied)
		assert.Equal(t, game.Normal, snap.Mode)
		assert.Zero(t, f.store.saves)
	})

	t.Run("Jump to overhead across requests", func(t *testing.T) {
		f := newFixture(t)
		id, _, err := f.manager.Create(ctx, 3, 3, 5)
		require.NoError(t, err)

		_, snap, err := f.manager.Apply(ctx, id, game.CmdToggleView, game.CmdTick)
		require.NoError(t, err)
		require.Equal(t, game.RisingToOverhead, snap.Mode)
		require.NotNil(t, snap.Animation)

		applied, snap, err := f.manager.Apply(ctx, id, repeat(game.CmdTick, 40)...)
		require.NoError(t, err)
		assert.Equal(t, 37, applied)
		assert.Equal(t, game.Overhead, snap.Mode)
		assert.Equal(t, game.DefaultOverheadHeight, snap.Pose.Y)

		applied, _, err = f.manager.Apply(ctx, id, game.CmdForward)
		require.NoError(t, err)
		assert.Zero(t, applied)
	})
}

func TestFinishedRunIsRecordedOnce(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	id, _, err := f.manager.Create(ctx, 2, 1, 3)
	require.NoError(t, err)

	applied, snap, err := f.manager.Apply(ctx, id, repeat(game.CmdForward, 6)...)
	require.NoError(t, err)
	assert.Equal(t, 6, applied)
	require.True(t, snap.Finished)

	run, err := f.runs.ByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 6, run.Moves)
	assert.Equal(t, 1, run.Rows)
	assert.Equal(t, 2, run.Cols)
	assert.Positive(t, run.Duration())

	_, _, err = f.manager.Apply(ctx, id, game.CmdRotateLeft)
	require.NoError(t, err)
	again, err := f.runs.ByID(ctx, id)
	require.NoError(t, err)
	assert.Same(t, run, again)

	board, err := f.manager.Leaderboard(ctx, 1, 2, 0)
	require.NoError(t, err)
	assert.Len(t, board, 1)
}

func TestFailedRunSaveIsRetried(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	id, _, err := f.manager.Create(ctx, 2, 1, 3)
	require.NoError(t, err)

	f.runs.failing = true
	_, snap, err := f.manager.Apply(ctx, id, repeat(game.CmdForward, 6)...)
	require.NoError(t, err)
	require.True(t, snap.Finished)
	assert.False(t, f.store.sessions[id].Recorded)

	f.runs.failing = false
	_, _, err = f.manager.Apply(ctx, id, game.CmdRotateRight)
	require.NoError(t, err)
	assert.True(t, f.store.sessions[id].Recorded)
	_, err = f.runs.ByID(ctx, id)
	assert.NoError(t, err)
}

func TestLeaderboardLimit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	for n := 0; n < maxLeaderboardSize+5; n++ {
		f.runs.runs[uuid.New()] = &dmn.RunRecord{Rows: 5, Cols: 5, Moves: n}
	}

	board, err := f.manager.Leaderboard(ctx, 5, 5, 1000)
	require.NoError(t, err)
	assert.Len(t, board, maxLeaderboardSize)
	assert.Equal(t, 0, board[0].Moves)

	board, err = f.manager.Leaderboard(ctx, 5, 5, -1)
	require.NoError(t, err)
	assert.Len(t, board, defaultLeaderboardSize)
}
