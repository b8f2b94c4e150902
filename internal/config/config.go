// Package config handles game configuration loading and management.
package config

import "fmt"

// Config holds all game settings.
type Config struct {
	Window     WindowConfig     `yaml:"window"`
	Render     RenderConfig     `yaml:"render"`
	Simulation SimulationConfig `yaml:"simulation"`
	Assets     AssetsConfig     `yaml:"assets"`
	Audio      AudioConfig      `yaml:"audio"`
	Debug      DebugConfig      `yaml:"debug"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
	MSAA       int    `yaml:"msaa"`
	Backend    string `yaml:"backend"` // sdl or glfw
}

// RenderConfig holds camera and pass settings.
type RenderConfig struct {
	FOV              float32    `yaml:"fov"` // degrees
	Near             float32    `yaml:"near"`
	Far              float32    `yaml:"far"`
	Shadows          bool       `yaml:"shadows"`
	ShadowResolution int32      `yaml:"shadow_resolution"`
	DebugBounds      bool       `yaml:"debug_bounds"`
	ClearColor       [4]float32 `yaml:"clear_color"`
	SunLongitude     int32      `yaml:"sun_longitude"`
	SunLatitude      int32      `yaml:"sun_latitude"`
	CheckErrors      bool       `yaml:"check_errors"` // glGetError after every pass
}

// SimulationConfig holds fixed-step settings.
type SimulationConfig struct {
	TickRate int `yaml:"tick_rate"`
	// MaxTicksPerFrame caps catch-up work per frame. 0 means unbounded.
	MaxTicksPerFrame int `yaml:"max_ticks_per_frame"`
}

// AssetsConfig holds asset locations.
type AssetsConfig struct {
	Root  string `yaml:"root"`
	Level string `yaml:"level"` // empty selects the built-in layout
}

// AudioConfig holds sound effect settings.
type AudioConfig struct {
	Enabled      bool    `yaml:"enabled"`
	MasterVolume float32 `yaml:"master_volume"`
	SFXVolume    float32 `yaml:"sfx_volume"`
}

// DebugConfig holds developer tooling settings.
type DebugConfig struct {
	Overlay       bool   `yaml:"overlay"`
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "hopper",
			Width:      1600,
			Height:     900,
			Fullscreen: false,
			VSync:      true,
			MSAA:       4,
			Backend:    "sdl",
		},
		Render: RenderConfig{
			FOV:              90,
			Near:             0.01,
			Far:              1000,
			Shadows:          false,
			ShadowResolution: 1024,
			DebugBounds:      false,
			ClearColor:       [4]float32{0.53, 0.81, 0.92, 1},
			SunLongitude:     45,
			SunLatitude:      45,
		},
		Simulation: SimulationConfig{
			TickRate:         60,
			MaxTicksPerFrame: 0,
		},
		Assets: AssetsConfig{
			Root: "assets",
		},
		Audio: AudioConfig{
			Enabled:      true,
			MasterVolume: 1,
			SFXVolume:    0.8,
		},
		Debug: DebugConfig{
			Overlay:       false,
			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate rejects settings the engine cannot start with.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	switch c.Window.Backend {
	case "sdl", "glfw":
	default:
		return fmt.Errorf("unknown window backend %q", c.Window.Backend)
	}
	if c.Simulation.TickRate <= 0 {
		return fmt.Errorf("tick rate %d must be positive", c.Simulation.TickRate)
	}
	if c.Simulation.MaxTicksPerFrame < 0 {
		return fmt.Errorf("max ticks per frame %d must not be negative", c.Simulation.MaxTicksPerFrame)
	}
	if c.Render.Near <= 0 || c.Render.Far <= c.Render.Near {
		return fmt.Errorf("clip range [%g, %g] is invalid", c.Render.Near, c.Render.Far)
	}
	if c.Render.ShadowResolution <= 0 {
		return fmt.Errorf("shadow resolution %d must be positive", c.Render.ShadowResolution)
	}
	for _, v := range []float32{c.Audio.MasterVolume, c.Audio.SFXVolume} {
		if v < 0 || v > 1 {
			return fmt.Errorf("audio volume %g is outside [0, 1]", v)
		}
	}
	return nil
}

// Aspect returns the projection aspect ratio of the configured window.
func (c *Config) Aspect() float32 {
	return float32(c.Window.Width) / float32(c.Window.Height)
}

// TickSeconds returns the fixed simulation step.
func (c *Config) TickSeconds() float64 {
	return 1 / float64(c.Simulation.TickRate)
}
