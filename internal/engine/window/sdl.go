package window

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/hopper/internal/engine/input"
	"github.com/Faultbox/hopper/internal/logger"
)

// SDLWindow wraps an SDL2 window and OpenGL context.
type SDLWindow struct {
	config    Config
	sdlWindow *sdl.Window
	glContext sdl.GLContext
	log       *zap.Logger

	keys    input.State
	start   uint64
	freq    float64
	closing bool
	closed  bool
}

// NewSDL creates a new window with an OpenGL 4.1 core context.
func NewSDL(cfg Config) (*SDLWindow, error) {
	w := &SDLWindow{
		config: cfg,
		log:    logger.Named("window"),
	}

	w.log.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	// Set OpenGL attributes BEFORE creating window
	// We want OpenGL 4.1 Core Profile (max supported on macOS)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)
	if cfg.MSAA > 0 {
		sdl.GLSetAttribute(sdl.GL_MULTISAMPLEBUFFERS, 1)
		sdl.GLSetAttribute(sdl.GL_MULTISAMPLESAMPLES, cfg.MSAA)
	}

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN
	}

	var err error
	w.sdlWindow, err = sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width),
		int32(cfg.Height),
		flags,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	w.glContext, err = w.sdlWindow.GLCreateContext()
	if err != nil {
		w.sdlWindow.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	if cfg.VSync {
		if err := sdl.GLSetSwapInterval(1); err != nil {
			w.log.Warn("failed to enable VSync", zap.Error(err))
		}
	} else {
		sdl.GLSetSwapInterval(0)
	}

	w.start = sdl.GetPerformanceCounter()
	w.freq = float64(sdl.GetPerformanceFrequency())

	w.log.Info("window created",
		zap.String("backend", BackendSDL),
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
		zap.Int("msaa", cfg.MSAA),
	)

	return w, nil
}

// Run polls events, snapshots the keyboard, calls frame and swaps buffers
// until the window closes.
func (w *SDLWindow) Run(frame func()) {
	for !w.closing {
		w.pollEvents()
		if w.closing {
			break
		}
		w.keys = input.SDLState(sdl.GetKeyboardState())
		frame()
		w.sdlWindow.GLSwap()
	}
}

func (w *SDLWindow) pollEvents() {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			w.closing = true
		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_CLOSE {
				w.closing = true
			}
		}
	}
}

// Keyboard returns the snapshot taken before the current frame.
func (w *SDLWindow) Keyboard() input.State {
	return w.keys
}

// Elapsed returns seconds since the window was created.
func (w *SDLWindow) Elapsed() float64 {
	return float64(sdl.GetPerformanceCounter()-w.start) / w.freq
}

// FramebufferSize returns the drawable size in pixels.
func (w *SDLWindow) FramebufferSize() (int32, int32) {
	return w.sdlWindow.GLGetDrawableSize()
}

// RequestClose stops Run after the current frame.
func (w *SDLWindow) RequestClose() {
	w.closing = true
}

// Close destroys the window and cleans up SDL2.
func (w *SDLWindow) Close() {
	if w.closed {
		return
	}
	w.closed = true
	w.log.Info("closing window")

	if w.glContext != nil {
		sdl.GLDeleteContext(w.glContext)
		w.glContext = nil
	}
	if w.sdlWindow != nil {
		w.sdlWindow.Destroy()
		w.sdlWindow = nil
	}

	sdl.Quit()
}
