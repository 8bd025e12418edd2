// Package config provides YAML-based configuration for the breakout runtime:
// window and paddle geometry, asset manifest, level set and runtime options.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// Config contains all configuration for the game.
type Config struct {
	Window   WindowConfig    `yaml:"window"`
	Player   PlayerConfig    `yaml:"player"`
	Input    InputConfig     `yaml:"input"`
	Levels   LevelsConfig    `yaml:"levels"`
	Material MaterialConfig  `yaml:"material"`
	Textures []TextureConfig `yaml:"textures"`
	Scene    SceneConfig     `yaml:"scene"`
	Runtime  RuntimeConfig   `yaml:"runtime"`
}

// WindowConfig defines the logical framebuffer the game is laid out in.
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// PlayerConfig defines the paddle.
type PlayerConfig struct {
	Width    float32 `yaml:"width"`
	Height   float32 `yaml:"height"`
	Velocity float32 `yaml:"velocity"` // pixels per second
	Texture  string  `yaml:"texture"`
}

// InputConfig tunes key handling for sources without release events.
type InputConfig struct {
	HoldMillis int `yaml:"hold_ms"` // how long a terminal key press counts as held
}

// LevelsConfig selects the level files loaded at startup.
type LevelsConfig struct {
	Dir   string `yaml:"dir"`
	Count int    `yaml:"count"` // levels level_1..level_<count>
	Start int    `yaml:"start"` // zero-based index of the first level played
}

// MaterialConfig names the sprite material and its shader sources.
type MaterialConfig struct {
	Name           string `yaml:"name"`
	Vertex         string `yaml:"vertex"`
	Fragment       string `yaml:"fragment"`
	LenientShaders bool   `yaml:"lenient_shaders"` // log compile/link failures instead of failing
}

// TextureConfig is one entry of the texture manifest.
type TextureConfig struct {
	Name  string `yaml:"name"`
	File  string `yaml:"file"`
	Alpha bool   `yaml:"alpha"`
}

// SceneConfig configures the render pass. Brick textures are fixed by the
// tile table and must be named "block" and "block_solid" in the manifest.
type SceneConfig struct {
	Background string     `yaml:"background"`
	Clear      [3]float32 `yaml:"clear"` // frame clear color
}

// RuntimeConfig defines the frame loop and logging.
type RuntimeConfig struct {
	TickRate int    `yaml:"tick_rate"` // frames per second
	LogLevel string `yaml:"log_level"`
}

// LevelPath returns the resource path of the level with the given
// one-based number.
func (c Config) LevelPath(n int) string {
	dir := strings.TrimSuffix(c.Levels.Dir, "/")
	if dir == "" {
		dir = "levels"
	}
	return fmt.Sprintf("%s/level_%d.lvl", dir, n)
}

// LevelCount returns the number of levels to load, at least one.
func (c Config) LevelCount() int {
	if c.Levels.Count < 1 {
		return 1
	}
	return c.Levels.Count
}

// Texture returns the manifest entry with the given name.
func (c Config) Texture(name string) (TextureConfig, bool) {
	for _, t := range c.Textures {
		if t.Name == name {
			return t, true
		}
	}
	return TextureConfig{}, false
}

// Validate reports every missing or out-of-range field at once.
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Player.Width <= 0 || c.Player.Height <= 0 {
		errs = append(errs, fmt.Errorf("player size must be positive, got %vx%v", c.Player.Width, c.Player.Height))
	}
	if c.Player.Velocity < 0 {
		errs = append(errs, fmt.Errorf("player velocity must not be negative, got %v", c.Player.Velocity))
	}
	if float32(c.Window.Width) < c.Player.Width {
		errs = append(errs, fmt.Errorf("player width %v exceeds window width %d", c.Player.Width, c.Window.Width))
	}
	if c.Levels.Start < 0 || c.Levels.Start >= c.LevelCount() {
		errs = append(errs, fmt.Errorf("levels.start %d out of range [0,%d)", c.Levels.Start, c.LevelCount()))
	}
	if c.Material.Name == "" || c.Material.Vertex == "" || c.Material.Fragment == "" {
		errs = append(errs, errors.New("material name, vertex and fragment are required"))
	}
	if c.Runtime.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("runtime.tick_rate must be positive, got %d", c.Runtime.TickRate))
	}

	seen := make(map[string]bool, len(c.Textures))
	for i, t := range c.Textures {
		if t.Name == "" || t.File == "" {
			errs = append(errs, fmt.Errorf("textures[%d]: name and file are required", i))
			continue
		}
		if seen[t.Name] {
			errs = append(errs, fmt.Errorf("textures[%d]: duplicate name %q", i, t.Name))
		}
		seen[t.Name] = true
	}
	for _, name := range []string{c.Player.Texture, c.Scene.Background, "block", "block_solid"} {
		if name == "" {
			errs = append(errs, errors.New("player.texture and scene.background are required"))
			break
		}
		if !seen[name] {
			errs = append(errs, fmt.Errorf("texture %q is not in the manifest", name))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
