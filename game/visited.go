package game

// VisitedTracker records which cells the player has entered. The start and
// end cells are never recorded.
type VisitedTracker struct {
	rows, cols int
	start, end CellPosition
	visited    [][]bool
	count      int
}

// NewVisitedTracker sizes the tracker from the maze dimensions.
func NewVisitedTracker(m Maze) *VisitedTracker {
	rows, cols := m.Dimensions()
	visited := make([][]bool, rows)
	for i := range visited {
		visited[i] = make([]bool, cols)
	}

	return &VisitedTracker{
		rows:    rows,
		cols:    cols,
		start:   m.StartCell(),
		end:     m.EndCell(),
		visited: visited,
	}
}

// Mark records cell as visited. It returns true only when the cell was newly
// recorded.
func (v *VisitedTracker) Mark(cell CellPosition) bool {
	if cell == v.start || cell == v.end || !inBound(cell, v.rows, v.cols) {
		return false
	}
	if v.visited[cell.Row][cell.Col] {
		return false
	}
	v.visited[cell.Row][cell.Col] = true
	v.count++
	return true
}

// IsVisited reports whether cell has been recorded.
func (v *VisitedTracker) IsVisited(cell CellPosition) bool {
	if !inBound(cell, v.rows, v.cols) {
		return false
	}
	return v.visited[cell.Row][cell.Col]
}

// Count returns the number of recorded cells.
func (v *VisitedTracker) Count() int {
	return v.count
}

// Cells lists the recorded cells in row-major order.
func (v *VisitedTracker) Cells() []CellPosition {
	cells := make([]CellPosition, 0, v.count)
	for r, row := range v.visited {
		for c, seen := range row {
			if seen {
				cells = append(cells, CellPosition{Row: r, Col: c})
			}
		}
	}
	return cells
}
