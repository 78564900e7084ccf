package maze

import "github.com/beka-birhanu/vinom-explorer/game"

// Cell represents a single cell in a maze grid.
type Cell struct {
	NorthWall bool // NorthWall indicates whether there is a wall on the north side of the cell.
	SouthWall bool // SouthWall indicates whether there is a wall on the south side of the cell.
	EastWall  bool // EastWall indicates whether there is a wall on the east side of the cell.
	WestWall  bool // WestWall indicates whether there is a wall on the west side of the cell.
}

// closedCell returns a cell with all four walls standing.
func closedCell() *Cell {
	return &Cell{NorthWall: true, SouthWall: true, EastWall: true, WestWall: true}
}

// cellFromWalls builds a cell from a wall set.
func cellFromWalls(w game.WallSet) *Cell {
	return &Cell{
		NorthWall: w.Has(game.North),
		SouthWall: w.Has(game.South),
		EastWall:  w.Has(game.East),
		WestWall:  w.Has(game.West),
	}
}

// Walls returns the cell's walls as a set.
func (c *Cell) Walls() game.WallSet {
	var w game.WallSet
	if c.NorthWall {
		w = w.With(game.North)
	}
	if c.SouthWall {
		w = w.With(game.South)
	}
	if c.EastWall {
		w = w.With(game.East)
	}
	if c.WestWall {
		w = w.With(game.West)
	}
	return w
}

// setWall sets the presence of the wall on side d.
func (c *Cell) setWall(d game.Direction, present bool) {
	switch d {
	case game.North:
		c.NorthWall = present
	case game.South:
		c.SouthWall = present
	case game.East:
		c.EastWall = present
	case game.West:
		c.WestWall = present
	}
}

// Move represents a step from one cell to an adjacent one.
type Move struct {
	From      game.CellPosition // Starting cell
	To        game.CellPosition // Destination cell
	Direction game.Direction    // Side of From that To lies on
}
