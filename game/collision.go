package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Horizontal axes of a position vector.
const (
	axisX = 0
	axisZ = 2
)

// wallPlane describes where a wall sits relative to the cell it bounds.
type wallPlane struct {
	axis   int     // axis the wall is perpendicular to
	offset float64 // boundary position relative to the cell's low corner (0 or 1)
	inward float64 // sign pointing from the boundary into the cell
}

var wallPlanes = map[Direction]wallPlane{
	North: {axis: axisZ, offset: 1, inward: -1},
	South: {axis: axisZ, offset: 0, inward: 1},
	East:  {axis: axisX, offset: 1, inward: -1},
	West:  {axis: axisX, offset: 0, inward: 1},
}

// CollisionDetector tests candidate positions against the walls of a maze.
type CollisionDetector struct {
	maze      Maze
	halfWall  float64
	threshold float64
}

// NewCollisionDetector creates a detector using the wall thickness and
// collision threshold from s.
func NewCollisionDetector(m Maze, s Settings) *CollisionDetector {
	return &CollisionDetector{
		maze:      m,
		halfWall:  s.WallThickness / 2,
		threshold: s.CollisionThreshold,
	}
}

// CellAt returns the cell owning a world position. Boundaries belong to the
// cell on their high side.
func CellAt(p mgl64.Vec3) CellPosition {
	return CellPosition{
		Row: int(math.Floor(p[axisZ])),
		Col: int(math.Floor(p[axisX])),
	}
}

// Collides reports whether candidate lies within the collision threshold of
// any wall present on its cell. Positions outside the grid always collide.
func (d *CollisionDetector) Collides(candidate mgl64.Vec3) bool {
	cell := CellAt(candidate)
	rows, cols := d.maze.Dimensions()
	if !inBound(cell, rows, cols) {
		return true
	}

	walls := d.maze.WallsOf(cell)
	for _, dir := range Directions {
		if !walls.Has(dir) {
			continue
		}
		if d.distanceToWall(candidate, cell, dir) < d.threshold {
			return true
		}
	}
	return false
}

// distanceToWall returns the horizontal distance from p to the nearest point
// of the wall on side dir of cell.
func (d *CollisionDetector) distanceToWall(p mgl64.Vec3, cell CellPosition, dir Direction) float64 {
	plane := wallPlanes[dir]
	low := mgl64.Vec3{float64(cell.Col), 0, float64(cell.Row)}

	along := axisX
	if plane.axis == axisX {
		along = axisZ
	}

	nearest := p
	nearest[plane.axis] = low[plane.axis] + plane.offset + plane.inward*d.halfWall
	nearest[along] = mgl64.Clamp(p[along], low[along], low[along]+1)

	dx := p[axisX] - nearest[axisX]
	dz := p[axisZ] - nearest[axisZ]
	return math.Hypot(dx, dz)
}
