package world

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/hopper/internal/engine/input"
	"github.com/Faultbox/hopper/internal/engine/scene"
	"github.com/Faultbox/hopper/internal/game/entity"
	"github.com/Faultbox/hopper/internal/logger"
)

// FloorY is the height below which the player respawns.
const FloorY = -2

// Events reports what happened during a tick.
type Events uint8

const (
	EventJump Events = 1 << iota
	EventStomp
	EventRespawn
)

// Has reports whether e includes ev.
func (e Events) Has(ev Events) bool {
	return e&ev != 0
}

// World is the complete simulation state. Only Tick and the bounds editor
// mutate it.
type World struct {
	scene *scene.Scene
	log   *zap.Logger

	Player    *entity.Player
	Enemies   []*entity.Enemy
	Colliders []AABB

	dt       float32
	ticks    uint64
	selected int
}

// New creates a world ticking at tickRate Hz. sc may be nil when no
// instances need updating.
func New(sc *scene.Scene, player *entity.Player, colliders []AABB, enemies []*entity.Enemy, tickRate int) *World {
	return &World{
		scene:     sc,
		log:       logger.Named("world"),
		Player:    player,
		Enemies:   enemies,
		Colliders: colliders,
		dt:        1 / float32(tickRate),
	}
}

// TickSeconds returns the fixed step length.
func (w *World) TickSeconds() float32 {
	return w.dt
}

// Ticks returns the number of ticks run.
func (w *World) Ticks() uint64 {
	return w.ticks
}

// Clock returns simulation time in seconds.
func (w *World) Clock() float64 {
	return float64(w.ticks) * float64(w.dt)
}

// Tick advances the simulation by one fixed step with keys held.
func (w *World) Tick(keys input.State) Events {
	var ev Events
	p := w.Player

	for _, e := range w.Enemies {
		e.Update(w.Clock())
		w.place(e.Instance, e.Transform())
	}

	if p.ApplyInput(keys, w.dt) {
		ev |= EventJump
	}

	w.movePlayer()

	if p.Position.Y() < FloorY {
		p.Respawn()
		ev |= EventRespawn
	}

	if i := w.touchedEnemy(); i >= 0 {
		if p.Velocity.Y() < 0 {
			w.defeat(i)
			ev |= EventStomp
		} else {
			p.Respawn()
			ev |= EventRespawn
		}
	}

	w.place(p.Instance, p.Transform())
	w.ticks++
	return ev
}

// movePlayer resolves Y, X then Z against the static colliders.
func (w *World) movePlayer() {
	p := w.Player
	box := AABB{Center: p.Position, Half: entity.PlayerHalfExtents}

	for _, axis := range resolveOrder {
		delta := p.Velocity[axis]
		if moveAxis(&box, axis, delta, w.Colliders) {
			p.Velocity[axis] = 0
			if axis == AxisY && delta <= 0 {
				p.AirTime = 0
			}
		}
		if axis != AxisY {
			p.Velocity[axis] *= entity.Damping
		}
	}

	p.Position = box.Center
}

// touchedEnemy returns the index of the first live enemy overlapping the
// player, or -1.
func (w *World) touchedEnemy() int {
	player := AABB{Center: w.Player.Position, Half: entity.PlayerHalfExtents}
	for i, e := range w.Enemies {
		if player.Overlaps(AABB{Center: e.Position, Half: entity.EnemyHalfExtents}) {
			return i
		}
	}
	return -1
}

// defeat hides the enemy's instance and drops it from the live list.
func (w *World) defeat(i int) {
	e := w.Enemies[i]
	if w.scene != nil && e.Instance != scene.NoInstance {
		if err := w.scene.SetVisible(e.Instance, false); err != nil {
			w.log.Warn("hide defeated enemy", zap.Int("instance", int(e.Instance)), zap.Error(err))
		}
	}
	w.Enemies = append(w.Enemies[:i], w.Enemies[i+1:]...)
	w.log.Debug("enemy defeated", zap.Int("remaining", len(w.Enemies)))
}

func (w *World) place(id scene.InstanceID, m mgl32.Mat4) {
	if w.scene == nil || id == scene.NoInstance {
		return
	}
	if err := w.scene.SetTransform(id, m); err != nil {
		w.log.Warn("update instance", zap.Int("instance", int(id)), zap.Error(err))
	}
}
