package game

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ViewMode is the camera state of a session.
type ViewMode uint8

const (
	Normal ViewMode = iota
	RisingToOverhead
	Overhead
	FallingToNormal
)

var viewModeNames = map[ViewMode]string{
	Normal:           "normal",
	RisingToOverhead: "rising",
	Overhead:         "overhead",
	FallingToNormal:  "falling",
}

// String returns the mode name used in snapshots and the API.
func (m ViewMode) String() string {
	if name, ok := viewModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("ViewMode(%d)", uint8(m))
}

// Animating reports whether ticks change the camera in this mode.
func (m ViewMode) Animating() bool {
	return m == RisingToOverhead || m == FallingToNormal
}

// ParseViewMode is the inverse of ViewMode.String.
func ParseViewMode(s string) (ViewMode, error) {
	for mode, name := range viewModeNames {
		if name == s {
			return mode, nil
		}
	}
	return Normal, fmt.Errorf("unknown view mode %q", s)
}

// AnimationState is the camera height and look-at anchor of a jump. Ticks
// counts the steps taken above eye height; Height is derived from it so
// that rounding never adds a tick.
type AnimationState struct {
	Height float64    `msgpack:"height"`
	Step   float64    `msgpack:"step"`
	Ticks  int        `msgpack:"ticks"`
	Anchor mgl64.Vec3 `msgpack:"anchor"`
}

// ViewMachine drives the first-person / overhead transition.
type ViewMachine struct {
	mode     ViewMode
	anim     *AnimationState
	settings Settings
	nav      *Navigator
}

// NewViewMachine starts in Normal mode.
func NewViewMachine(s Settings, nav *Navigator) *ViewMachine {
	return &ViewMachine{mode: Normal, settings: s, nav: nav}
}

// Mode returns the current view mode.
func (v *ViewMachine) Mode() ViewMode {
	return v.mode
}

// Animation returns a copy of the jump state, or false in Normal mode.
func (v *ViewMachine) Animation() (AnimationState, bool) {
	if v.anim == nil {
		return AnimationState{}, false
	}
	return *v.anim, true
}

// Toggle starts a jump from Normal or a descent from Overhead. It is ignored
// while an animation is running.
func (v *ViewMachine) Toggle() bool {
	switch v.mode {
	case Normal:
		pose := v.nav.Pose()
		v.anim = &AnimationState{
			Height: v.settings.EyeHeight,
			Step:   v.settings.AnimationStep,
			Anchor: pose.Position().Add(pose.Facing()),
		}
		v.mode = RisingToOverhead
		return true
	case Overhead:
		v.mode = FallingToNormal
		return true
	default:
		return false
	}
}

// Tick advances a running animation by one step. Outside the animating
// modes it does nothing.
func (v *ViewMachine) Tick() bool {
	switch v.mode {
	case RisingToOverhead:
		v.anim.Ticks++
		if v.anim.Ticks >= v.settings.AnimationTicks() {
			v.anim.Ticks = v.settings.AnimationTicks()
			v.anim.Height = v.settings.OverheadHeight
			v.mode = Overhead
		} else {
			v.anim.Height = v.heightAt(v.anim.Ticks)
		}
		v.nav.setHeight(v.anim.Height)
		return true
	case FallingToNormal:
		v.anim.Ticks--
		if v.anim.Ticks <= 0 {
			v.nav.setHeight(v.settings.EyeHeight)
			v.anim = nil
			v.mode = Normal
			return true
		}
		v.anim.Height = v.heightAt(v.anim.Ticks)
		v.nav.setHeight(v.anim.Height)
		return true
	default:
		return false
	}
}

func (v *ViewMachine) heightAt(ticks int) float64 {
	return math.Min(v.settings.EyeHeight+float64(ticks)*v.settings.AnimationStep, v.settings.OverheadHeight)
}
