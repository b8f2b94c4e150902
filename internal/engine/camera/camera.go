// Package camera provides camera implementations for 3D rendering.
package camera

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

// Default follow camera settings.
const (
	DefaultRadius = 10.0
	DefaultYaw    = -90.0
	DefaultPitch  = 0.0
)

// FollowCamera orbits a target at a fixed radius. Yaw and pitch are in
// degrees and owned by the caller, which turns them from input.
type FollowCamera struct {
	Radius float32

	// Projection
	FOV    float32 // Vertical field of view (degrees)
	Aspect float32
	Near   float32
	Far    float32

	// Cached eye position from the last ViewMatrix call
	Eye mgl32.Vec3
}

// NewFollowCamera creates a follow camera with the default radius.
func NewFollowCamera(fov, aspect, near, far float32) *FollowCamera {
	return &FollowCamera{
		Radius: DefaultRadius,
		FOV:    fov,
		Aspect: aspect,
		Near:   near,
		Far:    far,
	}
}

// Position returns the eye position for a target and look angles.
func (c *FollowCamera) Position(target mgl32.Vec3, yaw, pitch float32) mgl32.Vec3 {
	y := float64(mgl32.DegToRad(yaw))
	p := float64(mgl32.DegToRad(pitch))

	return mgl32.Vec3{
		target.X() + c.Radius*float32(gomath.Cos(y)*gomath.Cos(p)),
		target.Y() + c.Radius*float32(gomath.Sin(p)),
		target.Z() - c.Radius*float32(gomath.Sin(y)*gomath.Cos(p)),
	}
}

// ViewMatrix returns the view matrix looking at target with +Y up.
func (c *FollowCamera) ViewMatrix(target mgl32.Vec3, yaw, pitch float32) mgl32.Mat4 {
	c.Eye = c.Position(target, yaw, pitch)
	return mgl32.LookAtV(c.Eye, target, mgl32.Vec3{0, 1, 0})
}

// ProjectionMatrix returns the perspective projection.
func (c *FollowCamera) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}

// ViewProjection returns projection × view.
func (c *FollowCamera) ViewProjection(target mgl32.Vec3, yaw, pitch float32) mgl32.Mat4 {
	return c.ProjectionMatrix().Mul4(c.ViewMatrix(target, yaw, pitch))
}

// ForwardDirection returns the horizontal direction from the eye towards the
// target for a yaw in degrees.
func ForwardDirection(yaw float32) (x, z float32) {
	y := float64(mgl32.DegToRad(yaw))
	return float32(-gomath.Cos(y)), float32(gomath.Sin(y))
}

// RightDirection returns the horizontal right direction for a yaw in degrees.
func RightDirection(yaw float32) (x, z float32) {
	y := float64(mgl32.DegToRad(yaw))
	return float32(-gomath.Sin(y)), float32(-gomath.Cos(y))
}
