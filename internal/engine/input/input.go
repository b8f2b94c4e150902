// Package input turns backend keyboard state into game actions.
package input

// Action is a bindable game action.
type Action uint8

const (
	ActionForward Action = iota
	ActionBack
	ActionLeft
	ActionRight
	ActionJump
	ActionLookUp
	ActionLookDown
	ActionLookLeft
	ActionLookRight
	ActionQuit
	ActionScreenshot

	actionCount
)

var actionNames = [actionCount]string{
	ActionForward:    "forward",
	ActionBack:       "back",
	ActionLeft:       "left",
	ActionRight:      "right",
	ActionJump:       "jump",
	ActionLookUp:     "look_up",
	ActionLookDown:   "look_down",
	ActionLookLeft:   "look_left",
	ActionLookRight:  "look_right",
	ActionQuit:       "quit",
	ActionScreenshot: "screenshot",
}

func (a Action) String() string {
	if a < actionCount {
		return actionNames[a]
	}
	return "unknown"
}

// Actions returns every action in declaration order.
func Actions() []Action {
	out := make([]Action, actionCount)
	for i := range out {
		out[i] = Action(i)
	}
	return out
}

// State is a snapshot of held actions, one bit per action.
type State uint16

// Down reports whether a is held.
func (s State) Down(a Action) bool {
	return s&(1<<a) != 0
}

// With returns s with a held.
func (s State) With(a Action) State {
	return s | 1<<a
}

// Pressed reports whether a went down between prev and s.
func (s State) Pressed(prev State, a Action) bool {
	return s.Down(a) && !prev.Down(a)
}

// Capture builds a snapshot by querying down for every action.
func Capture(down func(Action) bool) State {
	var s State
	for a := Action(0); a < actionCount; a++ {
		if down(a) {
			s = s.With(a)
		}
	}
	return s
}
