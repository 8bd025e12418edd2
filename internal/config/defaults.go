package config

import (
	_ "embed"
)

//go:embed defaults/breakout.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration. It matches the embedded
// defaults/breakout.yaml and is used when that cannot be parsed.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Width:  800,
			Height: 600,
			Title:  "Breakout",
		},
		Player: PlayerConfig{
			Width:    100,
			Height:   20,
			Velocity: 500,
			Texture:  "paddle",
		},
		Input: InputConfig{
			HoldMillis: 300,
		},
		Levels: LevelsConfig{
			Dir:   "levels",
			Count: 1,
		},
		Material: MaterialConfig{
			Name:     "sprite",
			Vertex:   "shaders/sprite.vert",
			Fragment: "shaders/sprite.frag",
		},
		Textures: []TextureConfig{
			{Name: "background", File: "textures/background.png"},
			{Name: "face", File: "textures/awesomeface.png", Alpha: true},
			{Name: "block", File: "textures/block.png"},
			{Name: "block_solid", File: "textures/block_solid.png"},
			{Name: "paddle", File: "textures/paddle.png", Alpha: true},
		},
		Scene: SceneConfig{
			Background: "background",
		},
		Runtime: RuntimeConfig{
			TickRate: 30,
			LogLevel: "info",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
