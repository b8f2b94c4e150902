package entity

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/hopper/internal/engine/scene"
)

// EnemyHalfExtents is the enemy's collision box.
var EnemyHalfExtents = mgl32.Vec3{1, 1, 1}

// Enemy patrols between A and B on a sine wave.
type Enemy struct {
	Position mgl32.Vec3
	A, B     mgl32.Vec3
	Instance scene.InstanceID
}

// NewEnemy creates an enemy patrolling from a to b.
func NewEnemy(a, b mgl32.Vec3, instance scene.InstanceID) *Enemy {
	return &Enemy{Position: a, A: a, B: b, Instance: instance}
}

// Factor returns the interpolation factor (sin(t) + 1) / 2.
func Factor(t float64) float32 {
	return float32((math.Sin(t) + 1) / 2)
}

// PositionAt returns the position at factor f, per axis a + (b - a) * f.
func (e *Enemy) PositionAt(f float32) mgl32.Vec3 {
	return e.A.Add(e.B.Sub(e.A).Mul(f))
}

// Update places the enemy for simulation time t in seconds.
func (e *Enemy) Update(t float64) {
	e.Position = e.PositionAt(Factor(t))
}

// Transform is the enemy's instance transform.
func (e *Enemy) Transform() mgl32.Mat4 {
	return mgl32.Translate3D(e.Position.X(), e.Position.Y(), e.Position.Z())
}
