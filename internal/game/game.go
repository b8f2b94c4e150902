// Package game wires the platform, renderer and simulation into the frame
// loop.
package game

import (
	"errors"
	"fmt"
	"path"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/hopper/internal/assets"
	"github.com/Faultbox/hopper/internal/config"
	"github.com/Faultbox/hopper/internal/engine/audio"
	"github.com/Faultbox/hopper/internal/engine/camera"
	"github.com/Faultbox/hopper/internal/engine/debug"
	"github.com/Faultbox/hopper/internal/engine/input"
	"github.com/Faultbox/hopper/internal/engine/model"
	"github.com/Faultbox/hopper/internal/engine/renderer"
	"github.com/Faultbox/hopper/internal/engine/scene"
	"github.com/Faultbox/hopper/internal/engine/ui"
	"github.com/Faultbox/hopper/internal/engine/window"
	"github.com/Faultbox/hopper/internal/game/level"
	gameui "github.com/Faultbox/hopper/internal/game/ui"
	"github.com/Faultbox/hopper/internal/game/world"
	"github.com/Faultbox/hopper/internal/logger"
)

// SoundDir is the asset directory holding sound effects.
const SoundDir = "sfx"

// Game is the main game instance.
type Game struct {
	cfg *config.Config
	log *zap.Logger

	platform window.Platform
	overlay  *gameui.Overlay // nil unless the debug overlay is enabled

	assets   *assets.Manager
	scene    *scene.Scene
	renderer *renderer.Renderer
	level    *level.Level
	world    *world.World
	camera   *camera.FollowCamera
	audio    *audio.Manager // nil when disabled or unavailable

	screenshots *debug.ScreenshotCapture
	clock       *Accumulator
	options     renderer.Options

	lastTime float64
	prevKeys input.State
	fbWidth  int32
	fbHeight int32
}

// New opens the window, builds the renderer and loads the level.
func New(cfg *config.Config) (*Game, error) {
	g := &Game{
		cfg:    cfg,
		log:    logger.Named("game"),
		assets: assets.NewManager(cfg.Assets.Root),
		scene:  scene.New(),
		clock:  NewAccumulator(cfg.TickSeconds(), cfg.Simulation.MaxTicksPerFrame),
		options: renderer.Options{
			Shadows:     cfg.Render.Shadows,
			DebugBounds: cfg.Render.DebugBounds,
		},
		screenshots: debug.NewScreenshotCapture(cfg.Debug.ScreenshotDir, "hopper"),
	}

	g.log.Info("initializing game",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.String("backend", cfg.Window.Backend),
		zap.Bool("overlay", cfg.Debug.Overlay),
	)

	if err := g.openPlatform(); err != nil {
		return nil, err
	}

	if err := g.initRenderer(); err != nil {
		g.Close()
		return nil, err
	}

	if err := g.loadLevel(); err != nil {
		g.Close()
		return nil, err
	}

	g.camera = camera.NewFollowCamera(cfg.Render.FOV, cfg.Aspect(), cfg.Render.Near, cfg.Render.Far)

	if cfg.Debug.Overlay {
		g.overlay = gameui.NewOverlay(g.world, g.world.Player, &g.options, g.saveLayout)
	}

	if cfg.Audio.Enabled {
		g.initAudio()
	}

	g.lastTime = g.platform.Elapsed()
	g.log.Info("game initialized")
	return g, nil
}

func (g *Game) openPlatform() error {
	wcfg := window.Config{
		Title:      g.cfg.Window.Title,
		Width:      g.cfg.Window.Width,
		Height:     g.cfg.Window.Height,
		Fullscreen: g.cfg.Window.Fullscreen,
		VSync:      g.cfg.Window.VSync,
		MSAA:       g.cfg.Window.MSAA,
	}

	var err error
	if g.cfg.Debug.Overlay {
		g.platform, err = ui.NewBackend(wcfg)
	} else {
		g.platform, err = window.New(g.cfg.Window.Backend, wcfg)
	}
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	return nil
}

// initRenderer must run after openPlatform, since the OpenGL context must
// exist.
func (g *Game) initRenderer() error {
	g.fbWidth, g.fbHeight = g.platform.FramebufferSize()
	if g.fbWidth <= 0 || g.fbHeight <= 0 {
		g.fbWidth, g.fbHeight = int32(g.cfg.Window.Width), int32(g.cfg.Window.Height)
	}

	r, err := renderer.New(renderer.Config{
		Width:            g.fbWidth,
		Height:           g.fbHeight,
		ClearColor:       g.cfg.Render.ClearColor,
		ShadowResolution: g.cfg.Render.ShadowResolution,
		SunLongitude:     g.cfg.Render.SunLongitude,
		SunLatitude:      g.cfg.Render.SunLatitude,
		MSAA:             g.cfg.Window.MSAA > 0,
		Offscreen:        g.cfg.Debug.Overlay,
		CheckErrors:      g.cfg.Render.CheckErrors,
	}, g.scene, model.NewGLTFImporter())
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	g.renderer = r
	return nil
}

func (g *Game) loadLevel() error {
	lvl, err := level.Load(g.assets, g.cfg.Assets.Level)
	if err != nil {
		return err
	}

	meshes, err := lvl.LoadModels(g.renderer.Resources(), g.assets.Path)
	if err != nil {
		return err
	}
	if err := g.renderer.Resources().FinalizeModels(); err != nil {
		return fmt.Errorf("finalize models: %w", err)
	}

	res, err := lvl.Instantiate(g.scene, meshes)
	if err != nil {
		return fmt.Errorf("build level: %w", err)
	}

	g.level = lvl
	g.world = world.New(g.scene, res.Player, res.Colliders, res.Enemies, g.cfg.Simulation.TickRate)
	return nil
}

// initAudio opens the speaker and decodes the sound effects found under
// SoundDir. Audio is optional: failures are logged and the game stays silent.
func (g *Game) initAudio() {
	m := audio.New()
	if err := m.Init(); err != nil {
		g.log.Warn("audio unavailable", zap.Error(err))
		return
	}
	m.SetMasterVolume(float64(g.cfg.Audio.MasterVolume))
	m.SetSFXVolume(float64(g.cfg.Audio.SFXVolume))

	loaded := 0
	for _, s := range audio.Sounds() {
		name := path.Join(SoundDir, s.File())
		data, err := g.assets.Load(name)
		if err != nil {
			g.log.Debug("sound effect missing", zap.String("file", name))
			continue
		}
		if err := m.Load(s, data); err != nil {
			g.log.Warn("sound effect skipped", zap.String("file", name), zap.Error(err))
			continue
		}
		loaded++
	}
	g.log.Info("audio ready", zap.Int("effects", loaded), zap.Float64("gain", m.Gain()))
	g.audio = m
}

// Run starts the main loop and returns when the window closes.
func (g *Game) Run() {
	g.log.Info("starting game loop")
	g.platform.Run(g.Frame)
}

// Frame runs the due ticks and draws exactly one frame. The platform presents
// after it returns.
func (g *Game) Frame() {
	g.syncFramebuffer()
	f := g.step(g.renderer)

	if f.keys.Pressed(g.prevKeys, input.ActionScreenshot) {
		g.screenshot()
	}
	g.prevKeys = f.keys

	if g.overlay != nil {
		g.overlay.Update(f.delta * 1000)
		ui.DrawSceneTexture(g.renderer.ColorTexture())
		g.overlay.Draw(f.viewProj)
	}
}

// frameRenderer is the part of the renderer a frame step drives.
type frameRenderer interface {
	BeginFrame()
	Render(viewProj mgl32.Mat4, opts renderer.Options) error
}

var _ frameRenderer = (*renderer.Renderer)(nil)

// frameState is what one step read and produced.
type frameState struct {
	delta    float64
	keys     input.State
	ticks    int
	viewProj mgl32.Mat4
}

// step reads the clock and keyboard, runs every due tick, then begins and
// renders exactly one frame with r. Ticks never draw.
func (g *Game) step(r frameRenderer) frameState {
	now := g.platform.Elapsed()
	f := frameState{delta: now - g.lastTime, keys: g.platform.Keyboard()}
	g.lastTime = now

	if f.keys.Down(input.ActionQuit) {
		g.platform.RequestClose()
	}

	f.ticks = g.clock.Add(f.delta)
	for i := 0; i < f.ticks; i++ {
		g.playEvents(g.world.Tick(f.keys))
	}

	p := g.world.Player
	f.viewProj = g.camera.ViewProjection(p.Position, p.Yaw, p.Pitch)

	r.BeginFrame()
	if err := r.Render(f.viewProj, g.options); err != nil {
		g.log.Error("render failed", zap.Error(err))
		g.platform.RequestClose()
	}
	return f
}

// syncFramebuffer resizes the render target when the drawable changed.
func (g *Game) syncFramebuffer() {
	w, h := g.platform.FramebufferSize()
	if w <= 0 || h <= 0 || (w == g.fbWidth && h == g.fbHeight) {
		return
	}
	g.fbWidth, g.fbHeight = w, h
	g.renderer.Resize(w, h)
	g.log.Debug("framebuffer resized", zap.Int32("width", w), zap.Int32("height", h))
}

func (g *Game) playEvents(ev world.Events) {
	if g.audio == nil {
		return
	}
	for _, s := range eventSounds(ev) {
		if err := g.audio.Play(s); err != nil && !errors.Is(err, audio.ErrNotLoaded) {
			g.log.Debug("play sound", zap.String("file", s.File()), zap.Error(err))
		}
	}
}

// eventSounds maps tick events to the effects they trigger.
func eventSounds(ev world.Events) []audio.Sound {
	var out []audio.Sound
	if ev.Has(world.EventJump) {
		out = append(out, audio.SoundJump)
	}
	if ev.Has(world.EventStomp) {
		out = append(out, audio.SoundStomp)
	}
	if ev.Has(world.EventRespawn) {
		out = append(out, audio.SoundRespawn)
	}
	return out
}

func (g *Game) screenshot() {
	pixels, w, h := g.renderer.ReadPixels()
	file, err := g.screenshots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		g.log.Error("screenshot failed", zap.Error(err))
		return
	}
	g.log.Info("screenshot saved", zap.String("file", file))
}

// saveLayout writes the current level with the edited colliders.
func (g *Game) saveLayout(path string) error {
	return g.level.WithColliders(g.world.Colliders).Save(path)
}

// Close releases GPU resources, audio and the window, in that order.
func (g *Game) Close() {
	g.log.Info("closing game")

	if g.renderer != nil {
		g.renderer.Destroy()
		g.renderer = nil
	}
	if g.audio != nil {
		g.audio.Close()
		g.audio = nil
	}
	g.assets.Close()
	if g.platform != nil {
		g.platform.Close()
		g.platform = nil
	}
}
