package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/beka-birhanu/vinom-explorer/game"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	fieldOfView = 66.0 // degrees
	maxRaySteps = 256
)

// shades goes from near to far.
var shades = []rune{'█', '▓', '▒', '░'}

// hit is where a ray met a wall.
type hit struct {
	distance float64
	side     game.Direction
	end      bool // the wall belongs to the end cell
}

// castRay walks the grid from (x, z) along dir until it meets a wall.
func castRay(m game.Maze, x, z float64, dir mgl64.Vec3) hit {
	rows, cols := m.Dimensions()
	cell := game.CellAt(mgl64.Vec3{x, 0, z})
	dx, dz := dir.X(), dir.Z()

	stepCol, eastWest, tMaxX, tDeltaX := axisStep(x, dx, game.East, game.West)
	stepRow, northSouth, tMaxZ, tDeltaZ := axisStep(z, dz, game.North, game.South)

	for i := 0; i < maxRaySteps; i++ {
		if cell.Row < 0 || cell.Row >= rows || cell.Col < 0 || cell.Col >= cols {
			return hit{distance: math.Min(tMaxX, tMaxZ)}
		}
		walls := m.WallsOf(cell)
		end := cell == m.EndCell()

		if tMaxX < tMaxZ {
			if walls.Has(eastWest) {
				return hit{distance: tMaxX, side: eastWest, end: end}
			}
			cell.Col += stepCol
			tMaxX += tDeltaX
		} else {
			if walls.Has(northSouth) {
				return hit{distance: tMaxZ, side: northSouth, end: end}
			}
			cell.Row += stepRow
			tMaxZ += tDeltaZ
		}
	}
	return hit{distance: math.Inf(1)}
}

// axisStep returns the DDA parameters along one axis.
func axisStep(p, d float64, positive, negative game.Direction) (step int, side game.Direction, tMax, tDelta float64) {
	switch {
	case d > 0:
		return 1, positive, (math.Floor(p) + 1 - p) / d, 1 / d
	case d < 0:
		return -1, negative, (p - math.Floor(p)) / -d, 1 / -d
	default:
		return 0, positive, math.Inf(1), math.Inf(1)
	}
}

// firstPerson renders the view from the player's eye into width x height runes.
func firstPerson(s *game.Session, width, height int) [][]rune {
	frame := make([][]rune, height)
	for y := range frame {
		frame[y] = make([]rune, width)
		for x := range frame[y] {
			if y > height/2 {
				frame[y][x] = '.'
			} else {
				frame[y][x] = ' '
			}
		}
	}
	if width == 0 || height == 0 {
		return frame
	}

	pose := s.Pose()
	for col := 0; col < width; col++ {
		// Left of the screen is counter-clockwise, the same way Left rotates.
		offset := fieldOfView / 2
		if width > 1 {
			offset -= fieldOfView * float64(col) / float64(width-1)
		}
		ray := game.Pose{Heading: pose.Heading + offset}.Facing()
		h := castRay(s.Maze(), pose.X, pose.Z, ray)

		// Project on the view plane to avoid fish-eye.
		dist := h.distance * math.Cos(mgl64.DegToRad(offset))
		if dist <= 0 || math.IsInf(dist, 1) {
			continue
		}

		wallHeight := int(float64(height) / dist)
		top := max(height/2-wallHeight/2, 0)
		bottom := min(height/2+wallHeight/2, height-1)
		shade := shadeFor(dist, h)
		for y := top; y <= bottom; y++ {
			frame[y][col] = shade
		}
	}
	return frame
}

func shadeFor(dist float64, h hit) rune {
	if h.end {
		return 'E'
	}
	i := int(dist / 1.5)
	if h.side == game.North || h.side == game.South {
		i++
	}
	return shades[min(i, len(shades)-1)]
}

// overheadMap draws the maze from above with North up. Visited cells are
// marked with breadcrumbs and the player with an arrow for its heading.
func overheadMap(s *game.Session) []string {
	m := s.Maze()
	rows, cols := m.Dimensions()
	player := s.Pose().Cell()
	arrow := headingArrow(s.Pose().Heading)

	lines := make([]string, 0, 2*rows+1)
	for r := rows - 1; r >= 0; r-- {
		var top, mid strings.Builder
		for c := 0; c < cols; c++ {
			pos := game.CellPosition{Row: r, Col: c}
			walls := m.WallsOf(pos)

			top.WriteString("+")
			if walls.Has(game.North) {
				top.WriteString("---")
			} else {
				top.WriteString("   ")
			}

			if walls.Has(game.West) {
				mid.WriteString("|")
			} else {
				mid.WriteString(" ")
			}
			mid.WriteString(" " + string(cellMarker(s, pos, player, arrow)) + " ")
		}
		top.WriteString("+")
		if m.WallsOf(game.CellPosition{Row: r, Col: cols - 1}).Has(game.East) {
			mid.WriteString("|")
		} else {
			mid.WriteString(" ")
		}
		lines = append(lines, top.String(), mid.String())
	}

	var bottom strings.Builder
	for c := 0; c < cols; c++ {
		bottom.WriteString("+")
		if m.WallsOf(game.CellPosition{Row: 0, Col: c}).Has(game.South) {
			bottom.WriteString("---")
		} else {
			bottom.WriteString("   ")
		}
	}
	bottom.WriteString("+")
	return append(lines, bottom.String())
}

func cellMarker(s *game.Session, pos, player game.CellPosition, arrow rune) rune {
	m := s.Maze()
	switch {
	case pos == player:
		return arrow
	case pos == m.StartCell():
		return 'S'
	case pos == m.EndCell():
		return 'E'
	case s.IsVisited(pos):
		return '·'
	}
	return ' '
}

// headingArrow picks the arrow closest to the heading. North is up.
func headingArrow(heading float64) rune {
	switch int(math.Mod(heading+45, 360) / 90) {
	case 0:
		return '>'
	case 1:
		return '^'
	case 2:
		return '<'
	}
	return 'v'
}

// statusLine summarizes the session for the bottom of the screen.
func statusLine(s *game.Session) string {
	pose := s.Pose()
	cell := pose.Cell()
	stats := s.Stats()
	line := fmt.Sprintf("%-8s heading %5.1f  cell (%d,%d)  visited %d  moves %d  blocked %d",
		s.Mode(), pose.Heading, cell.Row, cell.Col, s.VisitedCount(), stats.Moves, stats.Blocked)
	if anim, ok := s.Animation(); ok {
		line += fmt.Sprintf("  height %.2f", anim.Height)
	}
	if s.Finished() {
		line += "  FINISHED"
	}
	return line
}
