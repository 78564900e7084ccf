package game

import (
	"errors"
	"fmt"
)

// ErrCorruptSnapshot is returned when a snapshot cannot describe a valid session.
var ErrCorruptSnapshot = errors.New("corrupt session snapshot")

// MazeLayout is a serializable copy of a maze's walls.
type MazeLayout struct {
	Rows  int          `msgpack:"rows"`
	Cols  int          `msgpack:"cols"`
	Walls []WallSet    `msgpack:"walls"` // row-major
	Start CellPosition `msgpack:"start"`
	End   CellPosition `msgpack:"end"`
}

// LayoutOf copies the walls of m.
func LayoutOf(m Maze) MazeLayout {
	rows, cols := m.Dimensions()
	walls := make([]WallSet, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			walls = append(walls, m.WallsOf(CellPosition{Row: r, Col: c}))
		}
	}

	return MazeLayout{
		Rows:  rows,
		Cols:  cols,
		Walls: walls,
		Start: m.StartCell(),
		End:   m.EndCell(),
	}
}

// Snapshot is the full state of a session.
type Snapshot struct {
	Layout    MazeLayout      `msgpack:"layout"`
	Settings  Settings        `msgpack:"settings"`
	Pose      Pose            `msgpack:"pose"`
	Mode      ViewMode        `msgpack:"mode"`
	Animation *AnimationState `msgpack:"animation,omitempty"`
	Visited   []CellPosition  `msgpack:"visited"`
	Finished  bool            `msgpack:"finished"`
	Stats     Stats           `msgpack:"stats"`
}

// Snapshot captures the session state.
func (s *Session) Snapshot() Snapshot {
	var anim *AnimationState
	if a, ok := s.view.Animation(); ok {
		anim = &a
	}

	return Snapshot{
		Layout:    LayoutOf(s.maze),
		Settings:  s.settings,
		Pose:      s.nav.pose,
		Mode:      s.view.mode,
		Animation: anim,
		Visited:   s.tracker.Cells(),
		Finished:  s.nav.finished,
		Stats:     s.nav.stats,
	}
}

// Restore rebuilds a session from snap. The maze m must have the snapshot's
// layout dimensions.
func Restore(m Maze, snap Snapshot) (*Session, error) {
	rows, cols := m.Dimensions()
	if rows != snap.Layout.Rows || cols != snap.Layout.Cols {
		return nil, fmt.Errorf("%w: maze is %dx%d, snapshot is %dx%d", ErrCorruptSnapshot, rows, cols, snap.Layout.Rows, snap.Layout.Cols)
	}
	if _, ok := viewModeNames[snap.Mode]; !ok {
		return nil, fmt.Errorf("%w: unknown view mode %d", ErrCorruptSnapshot, snap.Mode)
	}
	if (snap.Mode == Normal) != (snap.Animation == nil) {
		return nil, fmt.Errorf("%w: animation state does not match mode %s", ErrCorruptSnapshot, snap.Mode)
	}
	if !inBound(snap.Pose.Cell(), rows, cols) {
		return nil, fmt.Errorf("%w: pose outside the maze", ErrCorruptSnapshot)
	}

	s, err := NewSession(m, snap.Settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}
	if snap.Animation != nil && (snap.Animation.Ticks < 0 || snap.Animation.Ticks > snap.Settings.AnimationTicks()) {
		return nil, fmt.Errorf("%w: animation tick %d out of range", ErrCorruptSnapshot, snap.Animation.Ticks)
	}

	s.nav.pose = snap.Pose
	s.nav.pose.Heading = NormalizeHeading(snap.Pose.Heading)
	s.nav.finished = snap.Finished
	s.nav.stats = snap.Stats
	for _, cell := range snap.Visited {
		s.tracker.Mark(cell)
	}
	s.view.mode = snap.Mode
	if snap.Animation != nil {
		anim := *snap.Animation
		s.view.anim = &anim
	}
	return s, nil
}

// Encoder serializes session snapshots.
type Encoder interface {
	MarshalSnapshot(Snapshot) ([]byte, error)
	UnmarshalSnapshot([]byte) (Snapshot, error)
}
