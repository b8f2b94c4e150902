package game

import "math"

// Accumulator turns wall-clock time into whole fixed-length ticks.
type Accumulator struct {
	tick     float64
	maxTicks int // 0 means unbounded
	acc      float64
}

// NewAccumulator creates an accumulator for steps of tick seconds. With
// maxTicks > 0, at most maxTicks steps run per frame and any older backlog
// is dropped. With 0 a slow frame is always caught up, which can spiral when
// a tick costs more than it simulates.
func NewAccumulator(tick float64, maxTicks int) *Accumulator {
	return &Accumulator{tick: tick, maxTicks: maxTicks}
}

// Add accumulates delta seconds and returns how many ticks are due.
// Negative deltas are ignored.
func (a *Accumulator) Add(delta float64) int {
	if delta > 0 {
		a.acc += delta
	}

	n := 0
	for a.acc >= a.tick {
		if a.maxTicks > 0 && n == a.maxTicks {
			a.acc = math.Mod(a.acc, a.tick)
			break
		}
		a.acc -= a.tick
		n++
	}
	return n
}

// Pending returns the accumulated time not yet consumed by a tick.
func (a *Accumulator) Pending() float64 {
	return a.acc
}
