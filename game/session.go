package game

// Command is a discrete input delivered to a session.
type Command string

const (
	CmdRotateLeft  Command = "rotate_left"
	CmdRotateRight Command = "rotate_right"
	CmdForward     Command = "forward"
	CmdBackward    Command = "backward"
	CmdToggleView  Command = "toggle_view"
	CmdTick        Command = "tick"
)

// accepted lists the commands each view mode acts on. Anything else is
// dropped before it reaches the navigator or the view machine.
var accepted = map[ViewMode]map[Command]bool{
	Normal: {
		CmdRotateLeft:  true,
		CmdRotateRight: true,
		CmdForward:     true,
		CmdBackward:    true,
		CmdToggleView:  true,
	},
	RisingToOverhead: {CmdTick: true},
	Overhead:         {CmdToggleView: true},
	FallingToNormal:  {CmdTick: true},
}

// Valid reports whether c is a known command.
func (c Command) Valid() bool {
	switch c {
	case CmdRotateLeft, CmdRotateRight, CmdForward, CmdBackward, CmdToggleView, CmdTick:
		return true
	}
	return false
}

// Session owns the whole navigation state of one player in one maze.
// It is not safe for concurrent use.
type Session struct {
	maze     Maze
	settings Settings
	detector *CollisionDetector
	tracker  *VisitedTracker
	nav      *Navigator
	view     *ViewMachine

	camera      Camera
	cameraStale bool
}

// NewSession places a new player at the start of m.
func NewSession(m Maze, s Settings) (*Session, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	detector := NewCollisionDetector(m, s)
	tracker := NewVisitedTracker(m)
	nav := NewNavigator(m, s, detector, tracker)

	return &Session{
		maze:        m,
		settings:    s,
		detector:    detector,
		tracker:     tracker,
		nav:         nav,
		view:        NewViewMachine(s, nav),
		cameraStale: true,
	}, nil
}

// Accepts reports whether cmd would be acted on in the current view mode.
func (s *Session) Accepts(cmd Command) bool {
	return accepted[s.view.Mode()][cmd]
}

// Apply dispatches cmd after checking the current view mode. It returns
// whether the session state changed.
func (s *Session) Apply(cmd Command) bool {
	if !s.Accepts(cmd) {
		return false
	}

	var changed bool
	switch cmd {
	case CmdRotateLeft:
		s.nav.Rotate(Left)
		changed = true
	case CmdRotateRight:
		s.nav.Rotate(Right)
		changed = true
	case CmdForward:
		changed = s.nav.Move(Forward)
	case CmdBackward:
		changed = s.nav.Move(Backward)
	case CmdToggleView:
		changed = s.view.Toggle()
	case CmdTick:
		changed = s.view.Tick()
	}

	if changed {
		s.cameraStale = true
	}
	return changed
}

// Rotate turns the player. Ignored outside Normal mode.
func (s *Session) Rotate(r Rotation) bool {
	if r == Right {
		return s.Apply(CmdRotateRight)
	}
	return s.Apply(CmdRotateLeft)
}

// Move steps the player. Ignored outside Normal mode or when blocked by a wall.
func (s *Session) Move(st Step) bool {
	if st == Backward {
		return s.Apply(CmdBackward)
	}
	return s.Apply(CmdForward)
}

// ToggleView starts a jump or a descent.
func (s *Session) ToggleView() bool {
	return s.Apply(CmdToggleView)
}

// Tick advances a running view animation.
func (s *Session) Tick() bool {
	return s.Apply(CmdTick)
}

// Pose returns the current player pose.
func (s *Session) Pose() Pose {
	return s.nav.Pose()
}

// Mode returns the current view mode.
func (s *Session) Mode() ViewMode {
	return s.view.Mode()
}

// Animation returns the running jump state, if any.
func (s *Session) Animation() (AnimationState, bool) {
	return s.view.Animation()
}

// IsVisited reports whether the player has entered cell.
func (s *Session) IsVisited(cell CellPosition) bool {
	return s.tracker.IsVisited(cell)
}

// Visited lists every visited cell.
func (s *Session) Visited() []CellPosition {
	return s.tracker.Cells()
}

// VisitedCount returns how many cells have been visited.
func (s *Session) VisitedCount() int {
	return s.tracker.Count()
}

// Finished reports whether the player has reached the end cell.
func (s *Session) Finished() bool {
	return s.nav.Finished()
}

// Stats returns the command counters.
func (s *Session) Stats() Stats {
	return s.nav.Stats()
}

// Maze returns the maze being navigated.
func (s *Session) Maze() Maze {
	return s.maze
}

// Settings returns the engine tuning of the session.
func (s *Session) Settings() Settings {
	return s.settings
}

// Camera returns the view transform for the current pose, recomputing it
// after any change.
func (s *Session) Camera() Camera {
	if s.cameraStale {
		var anim *AnimationState
		if a, ok := s.view.Animation(); ok {
			anim = &a
		}
		s.camera = newCamera(s.nav.Pose(), anim)
		s.cameraStale = false
	}
	return s.camera
}
