package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Window defaults
	if cfg.Window.Width != 1600 {
		t.Errorf("expected width 1600, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 900 {
		t.Errorf("expected height 900, got %d", cfg.Window.Height)
	}
	if cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if cfg.Window.Backend != "sdl" {
		t.Errorf("expected sdl backend, got %s", cfg.Window.Backend)
	}

	// Render defaults
	if cfg.Render.FOV != 90 {
		t.Errorf("expected fov 90, got %f", cfg.Render.FOV)
	}
	if cfg.Render.Near != 0.01 || cfg.Render.Far != 1000 {
		t.Errorf("expected clip range [0.01, 1000], got [%f, %f]", cfg.Render.Near, cfg.Render.Far)
	}
	if cfg.Render.ShadowResolution != 1024 {
		t.Errorf("expected shadow resolution 1024, got %d", cfg.Render.ShadowResolution)
	}
	if cfg.Render.Shadows || cfg.Render.DebugBounds {
		t.Error("expected optional passes to be off by default")
	}

	// Simulation defaults
	if cfg.Simulation.TickRate != 60 {
		t.Errorf("expected tick rate 60, got %d", cfg.Simulation.TickRate)
	}
	if cfg.Simulation.MaxTicksPerFrame != 0 {
		t.Errorf("expected unbounded catch-up, got %d", cfg.Simulation.MaxTicksPerFrame)
	}

	// Logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestAspectAndTick(t *testing.T) {
	cfg := Default()
	if got := cfg.Aspect(); got != float32(16)/9 {
		t.Errorf("expected 16:9 aspect, got %f", got)
	}
	if got := cfg.TickSeconds(); got != 1.0/60 {
		t.Errorf("expected 1/60 tick, got %f", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"negative height", func(c *Config) { c.Window.Height = -1 }},
		{"unknown backend", func(c *Config) { c.Window.Backend = "vulkan" }},
		{"zero tick rate", func(c *Config) { c.Simulation.TickRate = 0 }},
		{"negative tick cap", func(c *Config) { c.Simulation.MaxTicksPerFrame = -2 }},
		{"inverted clip range", func(c *Config) { c.Render.Far = c.Render.Near }},
		{"zero shadow resolution", func(c *Config) { c.Render.ShadowResolution = 0 }},
		{"master volume above one", func(c *Config) { c.Audio.MasterVolume = 1.5 }},
		{"negative sfx volume", func(c *Config) { c.Audio.SFXVolume = -0.1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false
  backend: glfw

render:
  shadows: true
  debug_bounds: true
  shadow_resolution: 2048

simulation:
  tick_rate: 120
  max_ticks_per_frame: 8

assets:
  root: "data"
  level: "levels/one.yaml"

audio:
  enabled: false
  master_volume: 0.25
  sfx_volume: 0.5

logging:
  level: "debug"
  log_file: "game.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Window.Width)
	}
	if !cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Window.VSync {
		t.Error("expected vsync to be false")
	}
	if cfg.Window.Backend != "glfw" {
		t.Errorf("expected glfw backend, got %s", cfg.Window.Backend)
	}
	// Untouched keys keep their defaults.
	if cfg.Window.MSAA != 4 {
		t.Errorf("expected msaa default 4, got %d", cfg.Window.MSAA)
	}

	if !cfg.Render.Shadows || !cfg.Render.DebugBounds {
		t.Error("expected both optional passes enabled")
	}
	if cfg.Render.ShadowResolution != 2048 {
		t.Errorf("expected shadow resolution 2048, got %d", cfg.Render.ShadowResolution)
	}

	if cfg.Simulation.TickRate != 120 || cfg.Simulation.MaxTicksPerFrame != 8 {
		t.Errorf("unexpected simulation config %+v", cfg.Simulation)
	}

	if cfg.Assets.Root != "data" || cfg.Assets.Level != "levels/one.yaml" {
		t.Errorf("unexpected assets config %+v", cfg.Assets)
	}

	if cfg.Audio.Enabled {
		t.Error("expected audio disabled")
	}
	if cfg.Audio.MasterVolume != 0.25 || cfg.Audio.SFXVolume != 0.5 {
		t.Errorf("unexpected audio volumes %+v", cfg.Audio)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "game.log" {
		t.Errorf("expected log file 'game.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
window:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}

	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("window:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	path = findConfigFile()
	if path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Render.Shadows = true
	cfg.Window.Backend = "glfw"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}
	if !loaded.Render.Shadows || loaded.Window.Backend != "glfw" {
		t.Errorf("saved values not restored: %+v", loaded.Render)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
				if !cfg.Render.CheckErrors {
					t.Error("expected GL error checks with debug flag")
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "overlay and pass flags",
			setup: func() {
				*flagOverlay = true
				*flagShadows = true
				*flagBounds = true
			},
			verify: func(cfg *Config) {
				if !cfg.Debug.Overlay {
					t.Error("expected overlay enabled")
				}
				if !cfg.Render.Shadows || !cfg.Render.DebugBounds {
					t.Error("expected shadow and bounds passes enabled")
				}
			},
			teardown: func() {
				*flagOverlay = false
				*flagShadows = false
				*flagBounds = false
			},
		},
		{
			name: "backend and level flags",
			setup: func() {
				*flagBackend = "glfw"
				*flagLevel = "custom.yaml"
			},
			verify: func(cfg *Config) {
				if cfg.Window.Backend != "glfw" {
					t.Errorf("expected glfw backend, got %s", cfg.Window.Backend)
				}
				if cfg.Assets.Level != "custom.yaml" {
					t.Errorf("expected custom.yaml level, got %s", cfg.Assets.Level)
				}
			},
			teardown: func() {
				*flagBackend = ""
				*flagLevel = ""
			},
		},
		{
			name: "windowed flag",
			setup: func() {
				*flagWindowed = true
			},
			verify: func(cfg *Config) {
				if cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() {
				*flagWindowed = false
			},
		},
		{
			name: "fullscreen flag",
			setup: func() {
				*flagFullscreen = true
			},
			verify: func(cfg *Config) {
				if !cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() {
				*flagFullscreen = false
			},
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(cfg *Config) {
				if cfg.Window.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Window.Width)
				}
				if cfg.Window.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Window.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1280
  height: 720
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width from flag, height from file.
	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 720 {
		t.Errorf("expected height 720 from file, got %d", cfg.Window.Height)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("simulation:\n  tick_rate: 0\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected error for zero tick rate")
	}
}
