// Package world runs the fixed-step simulation: player, enemies and static
// colliders.
package world

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/hopper/internal/engine/scene"
)

// AABB is an axis-aligned box. Instance is the debug cube that visualizes
// it, or scene.NoInstance.
type AABB struct {
	Center   mgl32.Vec3
	Half     mgl32.Vec3
	Instance scene.InstanceID
}

// NewAABB creates a box without a debug instance.
func NewAABB(center, half mgl32.Vec3) AABB {
	return AABB{Center: center, Half: half, Instance: scene.NoInstance}
}

// Overlaps reports whether a and b intersect. Touching faces count.
func (a AABB) Overlaps(b AABB) bool {
	for i := 0; i < 3; i++ {
		if a.Center[i]+a.Half[i] < b.Center[i]-b.Half[i] ||
			a.Center[i]-a.Half[i] > b.Center[i]+b.Half[i] {
			return false
		}
	}
	return true
}

// Transform maps the unit debug cube onto the box: translate × scale.
func (a AABB) Transform() mgl32.Mat4 {
	return mgl32.Translate3D(a.Center.X(), a.Center.Y(), a.Center.Z()).
		Mul4(mgl32.Scale3D(a.Half.X(), a.Half.Y(), a.Half.Z()))
}

// OverlapsAny reports whether box overlaps any of boxes.
func OverlapsAny(box AABB, boxes []AABB) bool {
	for i := range boxes {
		if box.Overlaps(boxes[i]) {
			return true
		}
	}
	return false
}
