package shadow

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/hopper/internal/engine/model"
)

// Center returns the center point of b.
func Center(b model.Bounds) mgl32.Vec3 {
	return mgl32.Vec3{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}

// Radius returns the distance from center to corner (half-diagonal).
func Radius(b model.Bounds) float32 {
	return mgl32.Vec3{b.Max[0] - b.Min[0], b.Max[1] - b.Min[1], b.Max[2] - b.Min[2]}.Len() / 2
}

// DirectionalLightMatrix computes the light view-projection that covers the
// scene bounds. lightDir is the normalized direction towards the light.
// Empty bounds fall back to a unit box at the origin.
func DirectionalLightMatrix(lightDir mgl32.Vec3, bounds model.Bounds) mgl32.Mat4 {
	if bounds.IsEmpty() {
		bounds = model.Bounds{Min: [3]float32{-1, -1, -1}, Max: [3]float32{1, 1, 1}}
	}

	center := Center(bounds)
	radius := Radius(bounds)
	if radius < 1 {
		radius = 1
	}

	// Far enough back to keep the whole scene in front of the near plane.
	lightDistance := radius * 2.0
	lightPos := center.Add(lightDir.Mul(lightDistance))

	// Avoid an up vector parallel with the light.
	up := mgl32.Vec3{0, 1, 0}
	if abs32(lightDir[1]) > 0.99 {
		up = mgl32.Vec3{0, 0, 1}
	}

	view := mgl32.LookAtV(lightPos, center, up)

	padding := radius * 0.1
	halfSize := radius + padding
	near := float32(0.1)
	far := lightDistance + radius + padding

	proj := mgl32.Ortho(-halfSize, halfSize, -halfSize, halfSize, near, far)

	return proj.Mul4(view)
}

func abs32(x float32) float32 {
	return float32(math.Abs(float64(x)))
}
