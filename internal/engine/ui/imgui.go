// Package ui provides the ImGui platform used by the debug overlay.
package ui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/hopper/internal/engine/input"
	"github.com/Faultbox/hopper/internal/engine/window"
	"github.com/Faultbox/hopper/internal/logger"
)

// ImGuiKeys binds actions to ImGui keys.
var ImGuiKeys = map[input.Action]imgui.Key{
	input.ActionForward:    imgui.KeyW,
	input.ActionBack:       imgui.KeyS,
	input.ActionLeft:       imgui.KeyA,
	input.ActionRight:      imgui.KeyD,
	input.ActionJump:       imgui.KeySpace,
	input.ActionLookUp:     imgui.KeyUpArrow,
	input.ActionLookDown:   imgui.KeyDownArrow,
	input.ActionLookLeft:   imgui.KeyLeftArrow,
	input.ActionLookRight:  imgui.KeyRightArrow,
	input.ActionQuit:       imgui.KeyEscape,
	input.ActionScreenshot: imgui.KeyF12,
}

// Backend wraps the ImGui SDL backend. It owns the window and the GL context
// and implements window.Platform, so the game loop runs inside ImGui frames.
type Backend struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
	log     *zap.Logger
	start   time.Time
	keys    input.State
}

var _ window.Platform = (*Backend)(nil)

// NewBackend creates the window and initializes OpenGL.
func NewBackend(cfg window.Config) (*Backend, error) {
	b := &Backend{
		log:   logger.Named("ui"),
		start: time.Now(),
	}

	var err error
	b.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	b.backend.SetAfterCreateContextHook(func() {
		imgui.StyleColorsDark()
	})

	b.backend.SetBgColor(imgui.NewVec4(0.1, 0.1, 0.12, 1.0))
	b.backend.CreateWindow(cfg.Title, cfg.Width, cfg.Height)

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init opengl: %w", err)
	}

	b.log.Info("overlay window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
	)
	return b, nil
}

// Run hands frame to the ImGui loop. The backend renders ImGui and swaps
// after every call.
func (b *Backend) Run(frame func()) {
	b.backend.Run(func() {
		b.keys = captureKeys()
		frame()
	})
}

// captureKeys snapshots actions unless a widget has keyboard focus.
func captureKeys() input.State {
	if imgui.CurrentIO().WantCaptureKeyboard() {
		return 0
	}
	return input.Capture(func(a input.Action) bool {
		k, ok := ImGuiKeys[a]
		return ok && imgui.IsKeyDown(k)
	})
}

// Keyboard returns the snapshot taken before the current frame.
func (b *Backend) Keyboard() input.State {
	return b.keys
}

// Elapsed returns seconds since the backend was created.
func (b *Backend) Elapsed() float64 {
	return time.Since(b.start).Seconds()
}

// FramebufferSize returns the drawable size in pixels.
func (b *Backend) FramebufferSize() (int32, int32) {
	io := imgui.CurrentIO()
	size := io.DisplaySize()
	scale := io.DisplayFramebufferScale()
	return int32(size.X * scale.X), int32(size.Y * scale.Y)
}

// RequestClose ends the ImGui loop after the current frame.
func (b *Backend) RequestClose() {
	b.backend.SetShouldClose(true)
}

// Close logs shutdown. The backend tears down its context when Run returns.
func (b *Backend) Close() {
	b.log.Info("closing overlay window")
}

// DrawSceneTexture fills the display with a rendered scene texture, flipped
// to ImGui's top-left origin.
func DrawSceneTexture(textureID uint32) {
	if textureID == 0 {
		return
	}
	size := imgui.CurrentIO().DisplaySize()
	width, height := size.X, size.Y

	imgui.SetNextWindowPos(imgui.NewVec2(0, 0))
	imgui.SetNextWindowSize(imgui.NewVec2(width, height))

	flags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoMove | imgui.WindowFlagsNoScrollbar |
		imgui.WindowFlagsNoScrollWithMouse | imgui.WindowFlagsNoBringToFrontOnFocus |
		imgui.WindowFlagsNoInputs

	imgui.PushStyleVarVec2(imgui.StyleVarWindowPadding, imgui.NewVec2(0, 0))
	if imgui.BeginV("##SceneBackground", nil, flags) {
		texRef := imgui.NewTextureRefTextureID(imgui.TextureID(textureID))
		imgui.ImageV(*texRef,
			imgui.NewVec2(width, height),
			imgui.NewVec2(0, 1),
			imgui.NewVec2(1, 0))
	}
	imgui.End()
	imgui.PopStyleVar()
}
