package world

// Axis indices in resolution order.
const (
	AxisX = 0
	AxisY = 1
	AxisZ = 2
)

// Resolution order: vertical first so landing settles before sliding.
var resolveOrder = [3]int{AxisY, AxisX, AxisZ}

const (
	// StepBack is the fixed correction increment.
	StepBack = 0.001
	// maxPushSteps bounds the upward push out of a box the player started in.
	maxPushSteps = 100000
)

// moveAxis moves box by delta along axis, then steps it back against the
// move in StepBack increments until it no longer overlaps colliders. The
// step-back never passes the pre-move position. On the vertical axis a box
// still overlapping there (it started inside a collider, or did not move)
// is pushed up until free. It reports whether the move collided.
func moveAxis(box *AABB, axis int, delta float32, colliders []AABB) bool {
	start := box.Center[axis]
	box.Center[axis] += delta
	if !OverlapsAny(*box, colliders) {
		return false
	}

	if delta != 0 {
		dir := float32(-1)
		if delta < 0 {
			dir = 1
		}
		for OverlapsAny(*box, colliders) {
			next := box.Center[axis] + dir*StepBack
			if (dir > 0 && next >= start) || (dir < 0 && next <= start) {
				box.Center[axis] = start
				break
			}
			box.Center[axis] = next
		}
	}

	if axis == AxisY {
		for i := 0; i < maxPushSteps && OverlapsAny(*box, colliders); i++ {
			box.Center[axis] += StepBack
		}
	}
	return true
}
