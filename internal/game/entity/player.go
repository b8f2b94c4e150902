// Package entity implements the player and enemies.
package entity

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/hopper/internal/engine/camera"
	"github.com/Faultbox/hopper/internal/engine/input"
	"github.com/Faultbox/hopper/internal/engine/scene"
)

// Player tuning. Speeds are per second; velocity is in units per tick.
const (
	Gravity      = 0.6
	MoveSpeed    = 1.5
	JumpVelocity = 0.2
	CoyoteTime   = 0.1 // jump allowed while AirTime is below this
	LookSpeed    = 100 // degrees per second
	Damping      = 0.7 // horizontal velocity kept per tick
	RespawnAir   = 1.0
)

// Spawn is where the player starts and respawns.
var Spawn = mgl32.Vec3{0, 6, 2.3}

// PlayerHalfExtents is the player's collision box.
var PlayerHalfExtents = mgl32.Vec3{1, 1, 1}

// Player is the controllable character.
type Player struct {
	Position mgl32.Vec3
	Velocity mgl32.Vec3

	// Look angles in degrees, used by the camera only
	Yaw   float32
	Pitch float32

	// Seconds since the player last landed
	AirTime float32

	Instance scene.InstanceID
}

// NewPlayer creates a player at the spawn point.
func NewPlayer(instance scene.InstanceID) *Player {
	return &Player{
		Position: Spawn,
		Yaw:      camera.DefaultYaw,
		Pitch:    camera.DefaultPitch,
		AirTime:  RespawnAir,
		Instance: instance,
	}
}

// Respawn resets position, velocity and air time. Look angles are kept.
func (p *Player) Respawn() {
	p.Position = Spawn
	p.Velocity = mgl32.Vec3{}
	p.AirTime = RespawnAir
}

// CanJump reports whether the jump gate is open.
func (p *Player) CanJump() bool {
	return p.AirTime < CoyoteTime
}

// ApplyInput advances air time, applies gravity, movement, jump and look
// for one tick of dt seconds. It returns true when a jump started.
func (p *Player) ApplyInput(keys input.State, dt float32) (jumped bool) {
	p.AirTime += dt
	p.Velocity[1] -= Gravity * dt

	impulse := MoveSpeed * dt
	fx, fz := camera.ForwardDirection(p.Yaw)
	rx, rz := camera.RightDirection(p.Yaw)

	if keys.Down(input.ActionForward) {
		p.Velocity[0] += fx * impulse
		p.Velocity[2] += fz * impulse
	}
	if keys.Down(input.ActionBack) {
		p.Velocity[0] -= fx * impulse
		p.Velocity[2] -= fz * impulse
	}
	if keys.Down(input.ActionLeft) {
		p.Velocity[0] -= rx * impulse
		p.Velocity[2] -= rz * impulse
	}
	if keys.Down(input.ActionRight) {
		p.Velocity[0] += rx * impulse
		p.Velocity[2] += rz * impulse
	}

	if keys.Down(input.ActionJump) && p.CanJump() {
		p.Velocity[1] = JumpVelocity
		jumped = true
	}

	look := LookSpeed * dt
	if keys.Down(input.ActionLookUp) {
		p.Pitch -= look
	}
	if keys.Down(input.ActionLookDown) {
		p.Pitch += look
	}
	if keys.Down(input.ActionLookLeft) {
		p.Yaw += look
	}
	if keys.Down(input.ActionLookRight) {
		p.Yaw -= look
	}

	return jumped
}

// Transform is the player's instance transform.
func (p *Player) Transform() mgl32.Mat4 {
	return mgl32.Translate3D(p.Position.X(), p.Position.Y(), p.Position.Z())
}
