package window

import (
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNewRejectsUnknownBackend(t *testing.T) {
	p, err := New("vulkan", Config{Title: "test", Width: 64, Height: 64})
	if err == nil {
		t.Fatal("expected error for unknown backend")
	}
	if p != nil {
		t.Error("expected nil platform on error")
	}
	if !strings.Contains(err.Error(), "vulkan") {
		t.Errorf("error %q should name the backend", err)
	}
}

func TestCloseTwiceIsSafe(t *testing.T) {
	t.Run("sdl", func(t *testing.T) {
		w := &SDLWindow{log: zap.NewNop()}
		w.Close()
		w.Close()
		if !w.closed || w.sdlWindow != nil || w.glContext != nil {
			t.Errorf("after Close: closed=%v window=%v context=%v", w.closed, w.sdlWindow, w.glContext)
		}
	})
	t.Run("glfw", func(t *testing.T) {
		w := &GLFWWindow{log: zap.NewNop()}
		w.Close()
		w.Close()
		if !w.closed || w.window != nil {
			t.Errorf("after Close: closed=%v window=%v", w.closed, w.window)
		}
	})
}
