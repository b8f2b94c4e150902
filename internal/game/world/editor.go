package world

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/hopper/internal/engine/picking"
)

// ErrBoundsIndex is returned for a collider index outside the list.
var ErrBoundsIndex = errors.New("collider index out of range")

// BoundsEditor is the overlay's view of the static colliders. Edits apply
// from the next tick.
type BoundsEditor interface {
	Count() int
	Selected() int
	// Select clamps i into range and returns the selection.
	Select(i int) int
	Bounds(i int) (center, half mgl32.Vec3, err error)
	// SetBounds moves and resizes collider i and its debug instance.
	SetBounds(i int, center, half mgl32.Vec3) error
	// Pick returns the nearest collider hit by r, or -1.
	Pick(r picking.Ray) int
}

var _ BoundsEditor = (*World)(nil)

// Count returns the number of static colliders.
func (w *World) Count() int {
	return len(w.Colliders)
}

// Selected returns the selected collider index.
func (w *World) Selected() int {
	return w.selected
}

// Select clamps i to [0, Count-1] and selects it.
func (w *World) Select(i int) int {
	w.selected = max(0, min(i, len(w.Colliders)-1))
	return w.selected
}

// Bounds returns collider i.
func (w *World) Bounds(i int) (mgl32.Vec3, mgl32.Vec3, error) {
	if i < 0 || i >= len(w.Colliders) {
		return mgl32.Vec3{}, mgl32.Vec3{}, fmt.Errorf("%w: %d of %d", ErrBoundsIndex, i, len(w.Colliders))
	}
	c := w.Colliders[i]
	return c.Center, c.Half, nil
}

// SetBounds replaces collider i and moves its debug instance to match.
// Negative half-extents are clamped to zero.
func (w *World) SetBounds(i int, center, half mgl32.Vec3) error {
	if i < 0 || i >= len(w.Colliders) {
		return fmt.Errorf("%w: %d of %d", ErrBoundsIndex, i, len(w.Colliders))
	}
	for k := range half {
		half[k] = max(half[k], 0)
	}
	c := &w.Colliders[i]
	c.Center = center
	c.Half = half
	w.place(c.Instance, c.Transform())
	return nil
}

// Pick returns the index of the nearest collider hit by r, or -1.
func (w *World) Pick(r picking.Ray) int {
	best, bestT := -1, float32(0)
	for i, c := range w.Colliders {
		t, hit := r.IntersectBox(c.Center.Sub(c.Half), c.Center.Add(c.Half))
		if hit && (best < 0 || t < bestT) {
			best, bestT = i, t
		}
	}
	return best
}
