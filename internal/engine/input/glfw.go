package input

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

// GLFWKeys binds actions to GLFW keys.
var GLFWKeys = [actionCount]glfw.Key{
	ActionForward:    glfw.KeyW,
	ActionBack:       glfw.KeyS,
	ActionLeft:       glfw.KeyA,
	ActionRight:      glfw.KeyD,
	ActionJump:       glfw.KeySpace,
	ActionLookUp:     glfw.KeyUp,
	ActionLookDown:   glfw.KeyDown,
	ActionLookLeft:   glfw.KeyLeft,
	ActionLookRight:  glfw.KeyRight,
	ActionQuit:       glfw.KeyEscape,
	ActionScreenshot: glfw.KeyF12,
}

// GLFWState builds a snapshot from a key query such as (*glfw.Window).GetKey.
func GLFWState(getKey func(glfw.Key) glfw.Action) State {
	return Capture(func(a Action) bool {
		return getKey(GLFWKeys[a]) == glfw.Press
	})
}
