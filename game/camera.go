package game

import "github.com/go-gl/mathgl/mgl64"

var worldUp = mgl64.Vec3{0, 1, 0}

// Camera is the view transform a renderer draws the scene with.
type Camera struct {
	Eye    mgl64.Vec3
	Target mgl64.Vec3
	Up     mgl64.Vec3
	View   mgl64.Mat4
}

// newCamera builds the camera for a pose. In first-person view it looks one
// unit along the heading; during a jump it looks at the captured anchor from
// the animation height.
func newCamera(pose Pose, anim *AnimationState) Camera {
	eye := pose.Position()
	target := eye.Add(pose.Facing())
	if anim != nil {
		eye[1] = anim.Height
		target = anim.Anchor
	}

	return Camera{
		Eye:    eye,
		Target: target,
		Up:     worldUp,
		View:   mgl64.LookAtV(eye, target, worldUp),
	}
}
