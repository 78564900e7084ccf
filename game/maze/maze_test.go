package maze

import (
	"strings"
	"testing"

	"github.com/beka-birhanu/vinom-explorer/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("Rejects invalid dimensions", func(t *testing.T) {
		for _, dims := range [][2]int{{0, 5}, {5, 0}, {-1, 3}, {maxMazeDimension + 1, 2}} {
			_, err := New(dims[0], dims[1], 1)
			assert.ErrorIs(t, err, ErrInvalidDimensions, "dims %v", dims)
		}
	})

	t.Run("Places endpoints in opposite corners", func(t *testing.T) {
		m, err := New(7, 4, 42)
		require.NoError(t, err)

		rows, cols := m.Dimensions()
		assert.Equal(t, 4, rows)
		assert.Equal(t, 7, cols)
		assert.Equal(t, game.CellPosition{Row: 0, Col: 0}, m.StartCell())
		assert.Equal(t, game.CellPosition{Row: 3, Col: 6}, m.EndCell())
	})

	t.Run("Same seed gives same maze", func(t *testing.T) {
		a, err := New(8, 8, 7)
		require.NoError(t, err)
		b, err := New(8, 8, 7)
		require.NoError(t, err)
		assert.Equal(t, a.String(), b.String())
	})
}

func TestGeneratedMazeIsPerfect(t *testing.T) {
	m, err := New(9, 6, 1234)
	require.NoError(t, err)
	rows, cols := m.Dimensions()

	t.Run("Outer boundary is closed", func(t *testing.T) {
		for c := 0; c < cols; c++ {
			assert.True(t, m.WallsOf(game.CellPosition{Row: 0, Col: c}).Has(game.South))
			assert.True(t, m.WallsOf(game.CellPosition{Row: rows - 1, Col: c}).Has(game.North))
		}
		for r := 0; r < rows; r++ {
			assert.True(t, m.WallsOf(game.CellPosition{Row: r, Col: 0}).Has(game.West))
			assert.True(t, m.WallsOf(game.CellPosition{Row: r, Col: cols - 1}).Has(game.East))
		}
	})

	t.Run("Walls agree between neighbors", func(t *testing.T) {
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				pos := game.CellPosition{Row: r, Col: c}
				for _, d := range game.Directions {
					to := step(pos, d)
					if !m.InBound(to) {
						continue
					}
					assert.Equal(t, m.WallsOf(pos).Has(d), m.WallsOf(to).Has(opposite[d]), "%v %s", pos, d)
				}
			}
		}
	})

	t.Run("Spanning tree reaches every cell", func(t *testing.T) {
		seen := map[game.CellPosition]bool{m.StartCell(): true}
		queue := []game.CellPosition{m.StartCell()}
		passages := 0
		for len(queue) > 0 {
			pos := queue[0]
			queue = queue[1:]
			for _, d := range game.Directions {
				if !m.CanMove(pos, d) {
					continue
				}
				passages++
				if to := step(pos, d); !seen[to] {
					seen[to] = true
					queue = append(queue, to)
				}
			}
		}

		assert.Len(t, seen, rows*cols)
		// Each passage is counted from both sides.
		assert.Equal(t, rows*cols-1, passages/2)
	})
}

func TestNewFromLayout(t *testing.T) {
	original, err := New(5, 5, 99)
	require.NoError(t, err)

	t.Run("Round trips a layout", func(t *testing.T) {
		rebuilt, err := NewFromLayout(game.LayoutOf(original))
		require.NoError(t, err)
		assert.Equal(t, original.String(), rebuilt.String())
		assert.Equal(t, original.EndCell(), rebuilt.EndCell())
	})

	t.Run("Rejects wrong wall count", func(t *testing.T) {
		layout := game.LayoutOf(original)
		layout.Walls = layout.Walls[:3]
		_, err := NewFromLayout(layout)
		assert.ErrorIs(t, err, ErrInvalidLayout)
	})

	t.Run("Rejects endpoints outside", func(t *testing.T) {
		layout := game.LayoutOf(original)
		layout.End = game.CellPosition{Row: 5, Col: 0}
		_, err := NewFromLayout(layout)
		assert.ErrorIs(t, err, ErrInvalidLayout)
	})
}

func TestString(t *testing.T) {
	m, err := NewFromLayout(game.MazeLayout{
		Rows: 1,
		Cols: 2,
		Walls: []game.WallSet{
			game.WallSet(0).With(game.North).With(game.South).With(game.West),
			game.WallSet(0).With(game.North).With(game.South).With(game.East),
		},
		Start: game.CellPosition{Row: 0, Col: 0},
		End:   game.CellPosition{Row: 0, Col: 1},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(m.String()), "\n")
	assert.Equal(t, []string{
		"+---+---+",
		"| S   E |",
		"+---+---+",
	}, lines)
}
