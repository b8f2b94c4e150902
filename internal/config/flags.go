package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagOverlay    = flag.Bool("overlay", false, "Show the ImGui debug overlay")
	flagShadows    = flag.Bool("shadows", false, "Enable the shadow pass")
	flagBounds     = flag.Bool("bounds", false, "Draw collision bounds")
	flagBackend    = flag.String("backend", "", "Window backend (sdl, glfw)")
	flagLevel      = flag.String("level", "", "Path to a level YAML file")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Render.CheckErrors = true
	}
	if *flagOverlay {
		cfg.Debug.Overlay = true
	}
	if *flagShadows {
		cfg.Render.Shadows = true
	}
	if *flagBounds {
		cfg.Render.DebugBounds = true
	}
	if *flagBackend != "" {
		cfg.Window.Backend = *flagBackend
	}
	if *flagLevel != "" {
		cfg.Assets.Level = *flagLevel
	}
	if *flagWindowed {
		cfg.Window.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
}
