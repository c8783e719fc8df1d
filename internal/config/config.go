// Package config loads the TOML configuration file and watches it for edits.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"fireball/internal/control"
	"fireball/internal/utils"

	"github.com/pelletier/go-toml/v2"
)

type Window struct {
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
	Title     string `toml:"title"`
	Resizable bool   `toml:"resizable"`
	VSync     bool   `toml:"vsync"`
	MSAA      bool   `toml:"msaa"`
	TargetFPS int    `toml:"target_fps"`
}

type Render struct {
	ClearColor [4]float32 `toml:"clear_color"`
	Overlay    bool       `toml:"overlay"`
}

type Camera struct {
	Position      [3]float32 `toml:"position"`
	Target        [3]float32 `toml:"target"`
	FovY          float32    `toml:"fov_y"`
	FollowPointer bool       `toml:"follow_pointer"`
}

type Log struct {
	Level      string `toml:"level"`
	RaylibInfo bool   `toml:"raylib_info"`
}

// Config mirrors the config file. Zero sized windows mean "fit the screen".
type Config struct {
	Window   Window         `toml:"window"`
	Controls control.Params `toml:"controls"`
	Render   Render         `toml:"render"`
	Camera   Camera         `toml:"camera"`
	Log      Log            `toml:"log"`
}

func Default() Config {
	return Config{
		Window: Window{
			Title:     "fireball",
			Resizable: true,
			VSync:     true,
			MSAA:      true,
			TargetFPS: 60,
		},
		Controls: control.Defaults(),
		Render: Render{
			ClearColor: [4]float32{0, 0, 0, 1},
			Overlay:    true,
		},
		Camera: Camera{
			Position: [3]float32{0, 0, 5},
			FovY:     45,
		},
		Log: Log{Level: "warn"},
	}
}

// Parse decodes TOML on top of the defaults, so missing keys keep their
// default values.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("config: %w", err)
	}
	return cfg.Normalize(), nil
}

// Load reads path. A missing file is not an error: the defaults are returned.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		utils.Warn("Config: %s not found, using defaults", path)
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	utils.Info("Config: loaded %s", path)
	return cfg, nil
}

// Normalize clamps every value into its usable range.
func (c Config) Normalize() Config {
	c.Controls = c.Controls.Normalize()

	c.Window.Width = max(c.Window.Width, 0)
	c.Window.Height = max(c.Window.Height, 0)
	if c.Window.TargetFPS < 0 {
		c.Window.TargetFPS = 0
	}
	if c.Window.Title == "" {
		c.Window.Title = "fireball"
	}

	for i, v := range c.Render.ClearColor {
		c.Render.ClearColor[i] = min(max(v, 0), 1)
	}

	if c.Camera.FovY <= 0 || c.Camera.FovY >= 180 {
		c.Camera.FovY = 45
	}
	if c.Camera.Position == c.Camera.Target {
		c.Camera.Position = Default().Camera.Position
		c.Camera.Target = [3]float32{}
	}
	return c
}

// Save writes c as TOML.
func Save(path string, c Config) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
