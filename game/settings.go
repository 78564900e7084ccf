package game

import (
	"errors"
	"math"
)

// Settings errors.
var (
	ErrInvalidStepLength     = errors.New("step length must be positive")
	ErrStepTooLong           = errors.New("step length must be shorter than a wall and both collision margins")
	ErrInvalidRotateStep     = errors.New("rotate step must be in (0, 360)")
	ErrInvalidWallThickness  = errors.New("wall thickness must be in [0, 1)")
	ErrInvalidThreshold      = errors.New("collision threshold must be positive")
	ErrInvalidEyeHeight      = errors.New("eye height must be positive")
	ErrInvalidOverheadHeight = errors.New("overhead height must be above eye height")
	ErrInvalidAnimationStep  = errors.New("animation step must be positive")
)

// Default engine tuning.
const (
	DefaultStepLength         = 0.1
	DefaultRotateStep         = 10.0
	DefaultWallThickness      = 0.1
	DefaultCollisionThreshold = 0.2
	DefaultEyeHeight          = 0.5
	DefaultOverheadHeight     = 10.0
	DefaultAnimationStep      = 0.25
)

// Settings holds the fixed increments and geometry the engine works with.
// Lengths are in cell units, angles in degrees.
type Settings struct {
	StepLength         float64 // Distance covered by one move command.
	RotateStep         float64 // Degrees turned by one rotate command.
	WallThickness      float64 // Drawn thickness of a wall.
	CollisionThreshold float64 // Minimum allowed distance to a wall plane.
	EyeHeight          float64 // Camera height in first-person view.
	OverheadHeight     float64 // Camera height in the jump view.
	AnimationStep      float64 // Height change per animation tick.
}

// DefaultSettings returns the stock tuning.
func DefaultSettings() Settings {
	return Settings{
		StepLength:         DefaultStepLength,
		RotateStep:         DefaultRotateStep,
		WallThickness:      DefaultWallThickness,
		CollisionThreshold: DefaultCollisionThreshold,
		EyeHeight:          DefaultEyeHeight,
		OverheadHeight:     DefaultOverheadHeight,
		AnimationStep:      DefaultAnimationStep,
	}
}

// Validate checks that every value is usable.
func (s Settings) Validate() error {
	switch {
	case s.StepLength <= 0:
		return ErrInvalidStepLength
	case s.StepLength >= 2*s.CollisionThreshold+s.WallThickness:
		return ErrStepTooLong
	case s.RotateStep <= 0 || s.RotateStep >= 360:
		return ErrInvalidRotateStep
	case s.WallThickness < 0 || s.WallThickness >= 1:
		return ErrInvalidWallThickness
	case s.CollisionThreshold <= 0:
		return ErrInvalidThreshold
	case s.EyeHeight <= 0:
		return ErrInvalidEyeHeight
	case s.OverheadHeight <= s.EyeHeight:
		return ErrInvalidOverheadHeight
	case s.AnimationStep <= 0:
		return ErrInvalidAnimationStep
	}
	return nil
}

// tickEpsilon absorbs rounding in the height ratio, so 0.7/0.1 counts as 7.
const tickEpsilon = 1e-9

// AnimationTicks is the number of ticks a jump takes in either direction,
// ceil((OverheadHeight - EyeHeight) / AnimationStep).
func (s Settings) AnimationTicks() int {
	return int(math.Ceil((s.OverheadHeight-s.EyeHeight)/s.AnimationStep - tickEpsilon))
}
