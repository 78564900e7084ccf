/*
Package maze provides rectangular mazes for the explorer engine.

A maze is a grid of Cell values with a wall flag on each side, a start cell and
an end cell. Row indices grow toward North and column indices grow toward East,
so the wall on the North side of cell (r, c) lies on z = r+1 in world space.

Mazes are generated with Wilson's algorithm, or rebuilt from a stored layout.
*/
package maze

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/beka-birhanu/vinom-explorer/game"
)

const (
	maxMazeDimension = 100
)

var (
	// deltas maps each side of a cell to the position offset of its neighbor.
	deltas = map[game.Direction]game.CellPosition{
		game.North: {Row: 1, Col: 0},
		game.South: {Row: -1, Col: 0},
		game.East:  {Row: 0, Col: 1},
		game.West:  {Row: 0, Col: -1},
	}

	opposite = map[game.Direction]game.Direction{
		game.North: game.South,
		game.South: game.North,
		game.East:  game.West,
		game.West:  game.East,
	}

	ErrInvalidDimensions = errors.New("invalid maze dimensions")
	ErrInvalidLayout     = errors.New("invalid maze layout")
)

var _ game.Maze = &WillsonMaze{}

// WillsonMaze represents a rectangular maze of cells with walls.
type WillsonMaze struct {
	width  int               // Width of the maze (number of columns)
	height int               // Height of the maze (number of rows)
	grid   [][]*Cell         // 2D grid of cells forming the maze, indexed [row][col]
	start  game.CellPosition // Cell the player starts in
	end    game.CellPosition // Cell the player must reach
	rng    *rand.Rand        // Source used while generating
}

// New generates a width x height maze. The start cell is the south-west corner
// and the end cell the north-east corner. A zero seed picks a time-based one.
func New(width, height int, seed int64) (*WillsonMaze, error) {
	m, err := newClosed(width, height)
	if err != nil {
		return nil, err
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	m.rng = rand.New(rand.NewSource(seed))
	m.generateMaze()
	m.rng = nil
	return m, nil
}

// NewFromLayout rebuilds a maze from a stored layout.
func NewFromLayout(l game.MazeLayout) (*WillsonMaze, error) {
	m, err := newClosed(l.Cols, l.Rows)
	if err != nil {
		return nil, err
	}
	if len(l.Walls) != l.Rows*l.Cols {
		return nil, fmt.Errorf("%w: %d wall sets for %dx%d cells", ErrInvalidLayout, len(l.Walls), l.Rows, l.Cols)
	}
	if !m.InBound(l.Start) || !m.InBound(l.End) {
		return nil, fmt.Errorf("%w: start or end outside the maze", ErrInvalidLayout)
	}

	for i, w := range l.Walls {
		m.grid[i/l.Cols][i%l.Cols] = cellFromWalls(w)
	}
	m.start, m.end = l.Start, l.End
	return m, nil
}

// newClosed builds a maze with every wall standing.
func newClosed(width, height int) (*WillsonMaze, error) {
	if min(width, height) <= 0 || max(width, height) > maxMazeDimension {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	grid := make([][]*Cell, height)
	for i := range grid {
		grid[i] = make([]*Cell, width)
		for j := range grid[i] {
			grid[i][j] = closedCell()
		}
	}

	return &WillsonMaze{
		width:  width,
		height: height,
		grid:   grid,
		start:  game.CellPosition{Row: 0, Col: 0},
		end:    game.CellPosition{Row: height - 1, Col: width - 1},
	}, nil
}

// Dimensions implements game.Maze.
func (m *WillsonMaze) Dimensions() (rows, cols int) {
	return m.height, m.width
}

// WallsOf implements game.Maze. Cells outside the maze report all walls.
func (m *WillsonMaze) WallsOf(pos game.CellPosition) game.WallSet {
	if !m.InBound(pos) {
		return closedCell().Walls()
	}
	return m.grid[pos.Row][pos.Col].Walls()
}

// StartCell implements game.Maze.
func (m *WillsonMaze) StartCell() game.CellPosition {
	return m.start
}

// EndCell implements game.Maze.
func (m *WillsonMaze) EndCell() game.CellPosition {
	return m.end
}

// SetEndpoints moves the start and end cells.
func (m *WillsonMaze) SetEndpoints(start, end game.CellPosition) error {
	if !m.InBound(start) || !m.InBound(end) {
		return fmt.Errorf("%w: start or end outside the maze", ErrInvalidLayout)
	}
	m.start, m.end = start, end
	return nil
}

// InBound reports whether pos lies inside the maze.
func (m *WillsonMaze) InBound(pos game.CellPosition) bool {
	return pos.Row >= 0 && pos.Row < m.height && pos.Col >= 0 && pos.Col < m.width
}

// CanMove reports whether the wall between pos and its neighbor on side d is down.
func (m *WillsonMaze) CanMove(pos game.CellPosition, d game.Direction) bool {
	to := step(pos, d)
	if !m.InBound(pos) || !m.InBound(to) {
		return false
	}
	return !m.WallsOf(pos).Has(d) && !m.WallsOf(to).Has(opposite[d])
}

// step returns the neighbor of pos on side d.
func step(pos game.CellPosition, d game.Direction) game.CellPosition {
	delta := deltas[d]
	return game.CellPosition{Row: pos.Row + delta.Row, Col: pos.Col + delta.Col}
}

// randomCellPosition generates a random position within the maze.
func (m *WillsonMaze) randomCellPosition() game.CellPosition {
	return game.CellPosition{Row: m.rng.Intn(m.height), Col: m.rng.Intn(m.width)}
}

// randomUnvisitedCellPosition selects a random position that has not been visited.
func (m *WillsonMaze) randomUnvisitedCellPosition(visited map[game.CellPosition]struct{}) game.CellPosition {
	for {
		pos := m.randomCellPosition()
		if _, included := visited[pos]; !included {
			return pos
		}
	}
}

// neighbors finds all in-bound moves from a given cell position.
func (m *WillsonMaze) neighbors(pos game.CellPosition) []Move {
	var result []Move
	for _, dir := range game.Directions {
		to := step(pos, dir)
		if m.InBound(to) {
			result = append(result, Move{From: pos, To: to, Direction: dir})
		}
	}
	return result
}

// openWall removes the wall between two adjacent cells.
func (m *WillsonMaze) openWall(move Move) {
	m.grid[move.From.Row][move.From.Col].setWall(move.Direction, false)
	m.grid[move.To.Row][move.To.Col].setWall(opposite[move.Direction], false)
}

// randomWalk walks from an unvisited cell until it meets the visited tree and
// returns the loop-erased path as the moves to carve.
func (m *WillsonMaze) randomWalk(visited map[game.CellPosition]struct{}) []Move {
	start := m.randomUnvisitedCellPosition(visited)
	exits := make(map[game.CellPosition]Move)
	cell := start

	for {
		neighbors := m.neighbors(cell)
		next := neighbors[m.rng.Intn(len(neighbors))]
		exits[cell] = next
		if _, included := visited[next.To]; included {
			break
		}
		cell = next.To
	}

	// Following the last exit of every cell erases the loops.
	var path []Move
	for cell = start; ; {
		move := exits[cell]
		path = append(path, move)
		if _, included := visited[move.To]; included {
			return path
		}
		cell = move.To
	}
}

// generateMaze carves a uniform spanning tree with Wilson's algorithm.
func (m *WillsonMaze) generateMaze() {
	visited := make(map[game.CellPosition]struct{})
	visited[m.randomCellPosition()] = struct{}{}

	for len(visited) < m.width*m.height {
		for _, move := range m.randomWalk(visited) {
			m.openWall(move)
			visited[move.From] = struct{}{}
		}
	}
}

// String draws the maze with North at the top. S and E mark the endpoints.
func (m *WillsonMaze) String() string {
	var b strings.Builder

	// Top boundary
	b.WriteString("+")
	for col := 0; col < m.width; col++ {
		if m.grid[m.height-1][col].NorthWall {
			b.WriteString("---+")
		} else {
			b.WriteString("   +")
		}
	}
	b.WriteString("\n")

	for row := m.height - 1; row >= 0; row-- {
		if m.grid[row][0].WestWall {
			b.WriteString("|")
		} else {
			b.WriteString(" ")
		}
		for col := 0; col < m.width; col++ {
			pos := game.CellPosition{Row: row, Col: col}
			switch pos {
			case m.start:
				b.WriteString(" S ")
			case m.end:
				b.WriteString(" E ")
			default:
				b.WriteString("   ")
			}

			if m.grid[row][col].EastWall {
				b.WriteString("|")
			} else {
				b.WriteString(" ")
			}
		}
		b.WriteString("\n")

		b.WriteString("+")
		for col := 0; col < m.width; col++ {
			if m.grid[row][col].SouthWall {
				b.WriteString("---+")
			} else {
				b.WriteString("   +")
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}
