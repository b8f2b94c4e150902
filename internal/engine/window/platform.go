// Package window creates the OS window and OpenGL context and drives the
// frame loop.
package window

import (
	"fmt"
	"runtime"

	"github.com/Faultbox/hopper/internal/engine/input"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// Platform owns the window, the GL context and the event loop.
type Platform interface {
	// Run calls frame once per displayed frame and presents after each call,
	// until the window is asked to close.
	Run(frame func())
	// Keyboard returns the action snapshot captured before the current frame.
	Keyboard() input.State
	// Elapsed returns monotonic seconds since the platform started.
	Elapsed() float64
	// FramebufferSize returns the drawable size in pixels.
	FramebufferSize() (width, height int32)
	// RequestClose ends Run after the current frame.
	RequestClose()
	// Close destroys the context and window. Call it exactly once, after Run
	// returns and after every GL resource has been released. Later calls do
	// nothing.
	Close()
}

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
	MSAA       int // samples, 0 disables multisampling
}

// Backend names.
const (
	BackendSDL  = "sdl"
	BackendGLFW = "glfw"
)

// New opens a window on the named backend.
func New(backend string, cfg Config) (Platform, error) {
	switch backend {
	case BackendSDL, "":
		return NewSDL(cfg)
	case BackendGLFW:
		return NewGLFW(cfg)
	default:
		return nil, fmt.Errorf("unknown window backend %q", backend)
	}
}

var (
	_ Platform = (*SDLWindow)(nil)
	_ Platform = (*GLFWWindow)(nil)
)
