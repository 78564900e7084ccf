package game

import "fmt"

// Direction names one side of a cell.
type Direction uint8

const (
	North Direction = 1 << iota
	South
	East
	West
)

// Directions lists every cell side in a stable order.
var Directions = [...]Direction{North, South, East, West}

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case South:
		return "South"
	case East:
		return "East"
	case West:
		return "West"
	default:
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
}

// WallSet is the set of walls present on one cell.
type WallSet uint8

// Has reports whether the wall on side d is present.
func (w WallSet) Has(d Direction) bool {
	return w&WallSet(d) != 0
}

// With returns a copy of w with the wall on side d present.
func (w WallSet) With(d Direction) WallSet {
	return w | WallSet(d)
}

// Without returns a copy of w with the wall on side d removed.
func (w WallSet) Without(d Direction) WallSet {
	return w &^ WallSet(d)
}

// CellPosition identifies a grid square by row and column.
type CellPosition struct {
	Row int `json:"row" msgpack:"row"`
	Col int `json:"col" msgpack:"col"`
}

// Maze is the read-only wall oracle the engine navigates.
type Maze interface {
	// Dimensions returns the number of rows and columns.
	Dimensions() (rows, cols int)

	// WallsOf returns the walls present on the given cell.
	WallsOf(CellPosition) WallSet

	// StartCell returns the cell the player begins in.
	StartCell() CellPosition

	// EndCell returns the cell the player is trying to reach.
	EndCell() CellPosition
}

// inBound reports whether pos lies inside a rows x cols grid.
func inBound(pos CellPosition, rows, cols int) bool {
	return pos.Row >= 0 && pos.Row < rows && pos.Col >= 0 && pos.Col < cols
}
