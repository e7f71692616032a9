package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/rampart/engine/core"
)

const DefaultPath = "rampart.toml"

// Window holds the startup window parameters.
type Window struct {
	Title  string `toml:"title"`
	Width  uint32 `toml:"width"`
	Height uint32 `toml:"height"`
}

// Config is the application configuration loaded from rampart.toml.
type Config struct {
	Window Window `toml:"window"`
	// ScenePath points at the scene descriptor. Empty means the built-in
	// castle layout.
	ScenePath string `toml:"scene_path"`
	// WatchScene enables live reload of the scene descriptor.
	WatchScene bool `toml:"watch_scene"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Window: Window{
			Title:  "Rampart",
			Width:  1280,
			Height: 720,
		},
		ScenePath:  "",
		WatchScene: false,
	}
}

// Load reads the configuration from path. A missing file is not an error;
// the defaults are returned instead.
func Load(path string) (*Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			core.LogInfo("No configuration at '%s', using defaults.", path)
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read configuration '%s': %w", path, err)
	}

	if err := toml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration '%s': %w", path, err)
	}

	if cfg.Window.Width == 0 || cfg.Window.Height == 0 {
		return nil, fmt.Errorf("configuration '%s' has a zero window dimension", path)
	}
	if cfg.Window.Title == "" {
		cfg.Window.Title = Default().Window.Title
	}

	return cfg, nil
}
