package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// SDLScancodes binds actions to SDL scancodes.
var SDLScancodes = [actionCount]sdl.Scancode{
	ActionForward:    sdl.SCANCODE_W,
	ActionBack:       sdl.SCANCODE_S,
	ActionLeft:       sdl.SCANCODE_A,
	ActionRight:      sdl.SCANCODE_D,
	ActionJump:       sdl.SCANCODE_SPACE,
	ActionLookUp:     sdl.SCANCODE_UP,
	ActionLookDown:   sdl.SCANCODE_DOWN,
	ActionLookLeft:   sdl.SCANCODE_LEFT,
	ActionLookRight:  sdl.SCANCODE_RIGHT,
	ActionQuit:       sdl.SCANCODE_ESCAPE,
	ActionScreenshot: sdl.SCANCODE_F12,
}

// SDLState converts an SDL keyboard array (sdl.GetKeyboardState) into a
// snapshot.
func SDLState(keys []uint8) State {
	return Capture(func(a Action) bool {
		sc := int(SDLScancodes[a])
		return sc < len(keys) && keys[sc] != 0
	})
}
