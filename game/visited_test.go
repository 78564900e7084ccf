package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVisitedTracker(t *testing.T) {
	m := newGridMaze(3, 4, cell(0, 0), cell(2, 3))

	t.Run("Start and end are never marked", func(t *testing.T) {
		v := NewVisitedTracker(m)
		for i := 0; i < 3; i++ {
			assert.False(t, v.Mark(m.StartCell()))
			assert.False(t, v.Mark(m.EndCell()))
		}
		assert.False(t, v.IsVisited(m.StartCell()))
		assert.False(t, v.IsVisited(m.EndCell()))
		assert.Zero(t, v.Count())
	})

	t.Run("Other cells are marked once", func(t *testing.T) {
		v := NewVisitedTracker(m)
		assert.False(t, v.IsVisited(cell(1, 2)))
		assert.True(t, v.Mark(cell(1, 2)))
		assert.False(t, v.Mark(cell(1, 2)))
		assert.True(t, v.IsVisited(cell(1, 2)))
		assert.Equal(t, 1, v.Count())
	})

	t.Run("Out of range cells are ignored", func(t *testing.T) {
		v := NewVisitedTracker(m)
		assert.False(t, v.Mark(cell(3, 0)))
		assert.False(t, v.Mark(cell(0, -1)))
		assert.False(t, v.IsVisited(cell(3, 0)))
	})

	t.Run("Cells are listed in row-major order", func(t *testing.T) {
		v := NewVisitedTracker(m)
		v.Mark(cell(2, 0))
		v.Mark(cell(0, 3))
		v.Mark(cell(1, 1))
		assert.Equal(t, []CellPosition{cell(0, 3), cell(1, 1), cell(2, 0)}, v.Cells())
	})
}
