package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Presets lists the accepted preset names in display order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}

// ParsePreset validates a preset name. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	if s == "" {
		return DifficultyNormal, nil
	}
	for _, p := range Presets {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", s)
}

// paddleScale returns the paddle width and speed multipliers for a preset.
func paddleScale(preset DifficultyPreset) (width, speed float32) {
	switch preset {
	case DifficultyEasy:
		return 1.5, 1.2
	case DifficultyHard:
		return 0.6, 0.8
	default:
		return 1, 1
	}
}

// ApplyPreset modifies the paddle based on a difficulty preset. The width is
// capped at the window width so the paddle always fits.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	ws, vs := paddleScale(preset)
	cfg.Player.Width *= ws
	cfg.Player.Velocity *= vs
	if maxW := float32(cfg.Window.Width); cfg.Player.Width > maxW && maxW > 0 {
		cfg.Player.Width = maxW
	}
}
