package game

// gridMaze is a fixed-layout Maze for tests.
type gridMaze struct {
	rows, cols int
	walls      map[CellPosition]WallSet
	start, end CellPosition
}

func newGridMaze(rows, cols int, start, end CellPosition) *gridMaze {
	return &gridMaze{
		rows:  rows,
		cols:  cols,
		walls: make(map[CellPosition]WallSet),
		start: start,
		end:   end,
	}
}

func (g *gridMaze) wall(cell CellPosition, dirs ...Direction) *gridMaze {
	for _, d := range dirs {
		g.walls[cell] = g.walls[cell].With(d)
	}
	return g
}

func (g *gridMaze) Dimensions() (int, int)         { return g.rows, g.cols }
func (g *gridMaze) WallsOf(c CellPosition) WallSet { return g.walls[c] }
func (g *gridMaze) StartCell() CellPosition        { return g.start }
func (g *gridMaze) EndCell() CellPosition          { return g.end }

func cell(r, c int) CellPosition {
	return CellPosition{Row: r, Col: c}
}

// testSettings are the concrete numbers the scenarios below are worked out with.
func testSettings() Settings {
	return Settings{
		StepLength:         0.1,
		RotateStep:         10,
		WallThickness:      0.1,
		CollisionThreshold: 0.2,
		EyeHeight:          0.5,
		OverheadHeight:     10,
		AnimationStep:      0.25,
	}
}
