package window

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"

	"github.com/Faultbox/hopper/internal/engine/input"
	"github.com/Faultbox/hopper/internal/logger"
)

// GLFWWindow wraps a GLFW window and its OpenGL context.
type GLFWWindow struct {
	config Config
	window *glfw.Window
	log    *zap.Logger
	keys   input.State
	closed bool
}

// NewGLFW creates a GLFW window with an OpenGL 4.1 core context.
func NewGLFW(cfg Config) (*GLFWWindow, error) {
	w := &GLFWWindow{
		config: cfg,
		log:    logger.Named("window"),
	}

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.DoubleBuffer, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 24)
	glfw.WindowHint(glfw.Samples, cfg.MSAA)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	var monitor *glfw.Monitor
	if cfg.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
	}

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create GLFW window: %w", err)
	}
	w.window = win

	win.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	glfw.SetTime(0)

	w.log.Info("window created",
		zap.String("backend", BackendGLFW),
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
		zap.Int("msaa", cfg.MSAA),
	)

	return w, nil
}

// Run calls frame and swaps buffers until the window should close.
func (w *GLFWWindow) Run(frame func()) {
	for !w.window.ShouldClose() {
		glfw.PollEvents()
		if w.window.ShouldClose() {
			break
		}
		w.keys = input.GLFWState(w.window.GetKey)
		frame()
		w.window.SwapBuffers()
	}
}

// Keyboard returns the snapshot taken before the current frame.
func (w *GLFWWindow) Keyboard() input.State {
	return w.keys
}

// Elapsed returns seconds since the window was created.
func (w *GLFWWindow) Elapsed() float64 {
	return glfw.GetTime()
}

// FramebufferSize returns the drawable size in pixels.
func (w *GLFWWindow) FramebufferSize() (int32, int32) {
	width, height := w.window.GetFramebufferSize()
	return int32(width), int32(height)
}

// RequestClose stops Run after the current frame.
func (w *GLFWWindow) RequestClose() {
	w.window.SetShouldClose(true)
}

// Close destroys the window and terminates GLFW.
func (w *GLFWWindow) Close() {
	if w.closed {
		return
	}
	w.closed = true
	w.log.Info("closing window")
	if w.window != nil {
		w.window.Destroy()
		w.window = nil
	}
	glfw.Terminate()
}
