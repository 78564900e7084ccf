package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Rotation is the turn direction of a rotate command.
type Rotation int8

const (
	Left  Rotation = 1
	Right Rotation = -1
)

// Step is the direction of a move command.
type Step int8

const (
	Forward  Step = 1
	Backward Step = -1
)

// Pose is the player's position and heading. Heading is in degrees, measured
// from +x toward +z, and always lies in [0, 360).
type Pose struct {
	X       float64 `json:"x" msgpack:"x"`
	Y       float64 `json:"y" msgpack:"y"`
	Z       float64 `json:"z" msgpack:"z"`
	Heading float64 `json:"heading" msgpack:"heading"`
}

// Position returns the pose location as a vector.
func (p Pose) Position() mgl64.Vec3 {
	return mgl64.Vec3{p.X, p.Y, p.Z}
}

// Facing returns the horizontal unit vector the pose looks along.
func (p Pose) Facing() mgl64.Vec3 {
	rad := mgl64.DegToRad(p.Heading)
	return mgl64.Vec3{math.Cos(rad), 0, math.Sin(rad)}
}

// Cell returns the cell containing the pose.
func (p Pose) Cell() CellPosition {
	return CellAt(p.Position())
}

// headingPrecision is the number of decimals a heading keeps.
const headingPrecision = 9

// NormalizeHeading wraps deg into [0, 360).
func NormalizeHeading(deg float64) float64 {
	h := math.Mod(deg, 360)
	if h < 0 {
		h += 360
	}
	// Headings are kept at a fixed decimal precision so that turning back
	// by the same step lands on the same value.
	h = mgl64.Round(h, headingPrecision)
	if h >= 360 || h == 0 {
		h = 0
	}
	return h
}

// Stats counts what the player has done in a session.
type Stats struct {
	Moves     int `json:"moves" msgpack:"moves"`
	Blocked   int `json:"blocked" msgpack:"blocked"`
	Rotations int `json:"rotations" msgpack:"rotations"`
}

// Navigator owns the pose and commits moves the collision detector allows.
type Navigator struct {
	pose     Pose
	settings Settings
	detector *CollisionDetector
	tracker  *VisitedTracker
	end      CellPosition
	finished bool
	stats    Stats
}

// NewNavigator places the player at the center of the maze start cell,
// facing heading 0 at eye height.
func NewNavigator(m Maze, s Settings, d *CollisionDetector, t *VisitedTracker) *Navigator {
	start := m.StartCell()
	return &Navigator{
		pose: Pose{
			X: float64(start.Col) + 0.5,
			Y: s.EyeHeight,
			Z: float64(start.Row) + 0.5,
		},
		settings: s,
		detector: d,
		tracker:  t,
		end:      m.EndCell(),
	}
}

// Pose returns the current pose.
func (n *Navigator) Pose() Pose {
	return n.pose
}

// Rotate turns the heading by one rotate step.
func (n *Navigator) Rotate(r Rotation) {
	n.pose.Heading = NormalizeHeading(n.pose.Heading + float64(r)*n.settings.RotateStep)
	n.stats.Rotations++
}

// Move steps along the heading. It returns false, leaving the pose untouched,
// when the candidate position is too close to a wall.
func (n *Navigator) Move(s Step) bool {
	delta := n.pose.Facing().Mul(float64(s) * n.settings.StepLength)
	candidate := n.pose.Position().Add(delta)
	candidate[1] = n.settings.EyeHeight

	if n.detector.Collides(candidate) {
		n.stats.Blocked++
		return false
	}

	n.pose.X, n.pose.Y, n.pose.Z = candidate[0], candidate[1], candidate[2]
	n.stats.Moves++

	cell := n.pose.Cell()
	n.tracker.Mark(cell)
	if cell == n.end {
		n.finished = true
	}
	return true
}

// Finished reports whether the player has ever stepped into the end cell.
func (n *Navigator) Finished() bool {
	return n.finished
}

// Stats returns the command counters.
func (n *Navigator) Stats() Stats {
	return n.stats
}

// setHeight moves the pose vertically; used by the view animation.
func (n *Navigator) setHeight(y float64) {
	n.pose.Y = y
}
