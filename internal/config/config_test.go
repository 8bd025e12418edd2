package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultMatchesDefaultConfig(t *testing.T) {
	var cfg Config
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded yaml: %v", err)
	}
	def := DefaultConfig()
	if cfg.Window != def.Window || cfg.Player != def.Player || cfg.Levels != def.Levels {
		t.Errorf("embedded yaml differs from DefaultConfig:\n%+v\n%+v", cfg, def)
	}
	if cfg.Material != def.Material || cfg.Runtime != def.Runtime || cfg.Scene != def.Scene {
		t.Errorf("embedded yaml differs from DefaultConfig:\n%+v\n%+v", cfg, def)
	}
	if len(cfg.Textures) != len(def.Textures) {
		t.Fatalf("expected %d textures, got %d", len(def.Textures), len(cfg.Textures))
	}
	for i := range def.Textures {
		if cfg.Textures[i] != def.Textures[i] {
			t.Errorf("texture %d: expected %+v, got %+v", i, def.Textures[i], cfg.Textures[i])
		}
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadCustomPathOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := "window:\n  width: 320\n  height: 200\nplayer:\n  velocity: 250\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Window.Width != 320 || cfg.Window.Height != 200 {
		t.Errorf("expected 320x200, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Player.Velocity != 250 {
		t.Errorf("expected velocity 250, got %v", cfg.Player.Velocity)
	}
	if cfg.Player.Width != 100 {
		t.Errorf("unset keys should keep defaults, got paddle width %v", cfg.Player.Width)
	}
	if len(cfg.Textures) != len(DefaultConfig().Textures) {
		t.Errorf("missing manifest should keep default textures, got %d", len(cfg.Textures))
	}
}

func TestLoadCustomManifestReplacesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := "textures:\n  - name: block\n    file: a.png\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Textures) != 1 || cfg.Textures[0].File != "a.png" {
		t.Errorf("expected single texture a.png, got %+v", cfg.Textures)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("window: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "failed to parse") {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Window.Width != 800 || cfg.Material.Name != "sprite" {
		t.Errorf("expected embedded defaults, got %+v", cfg)
	}
}

func TestLoadPrefersLocalFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.MkdirAll(filepath.Join(dir, "configs"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, LocalPath), []byte("levels:\n  count: 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LevelCount() != 4 {
		t.Errorf("expected 4 levels from local file, got %d", cfg.LevelCount())
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Window.Width = 0
	cfg.Player.Texture = "ghost"
	cfg.Levels.Start = 3
	cfg.Textures = append(cfg.Textures, TextureConfig{Name: "block", File: "x.png"})

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"window size", "ghost", "levels.start", "duplicate name"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in %v", want, err)
		}
	}
}

func TestLevelPath(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.LevelPath(2); got != "levels/level_2.lvl" {
		t.Errorf("expected levels/level_2.lvl, got %s", got)
	}
	cfg.Levels.Dir = "extra/"
	if got := cfg.LevelPath(1); got != "extra/level_1.lvl" {
		t.Errorf("expected extra/level_1.lvl, got %s", got)
	}
	cfg.Levels.Count = 0
	if cfg.LevelCount() != 1 {
		t.Errorf("expected at least one level, got %d", cfg.LevelCount())
	}
}

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-3
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultConfig()
	ApplyPreset(&cfg, DifficultyEasy)
	if !approx(cfg.Player.Width, 150) || !approx(cfg.Player.Velocity, 600) {
		t.Errorf("easy: expected 150/600, got %v/%v", cfg.Player.Width, cfg.Player.Velocity)
	}

	cfg = DefaultConfig()
	ApplyPreset(&cfg, DifficultyHard)
	if !approx(cfg.Player.Width, 60) || !approx(cfg.Player.Velocity, 400) {
		t.Errorf("hard: expected 60/400, got %v/%v", cfg.Player.Width, cfg.Player.Velocity)
	}

	cfg = DefaultConfig()
	cfg.Window.Width = 120
	ApplyPreset(&cfg, DifficultyEasy)
	if cfg.Player.Width != 120 {
		t.Errorf("paddle should be capped at window width, got %v", cfg.Player.Width)
	}
}

func TestParsePreset(t *testing.T) {
	if p, err := ParsePreset(""); err != nil || p != DifficultyNormal {
		t.Errorf("empty: expected normal, got %q %v", p, err)
	}
	if p, err := ParsePreset("hard"); err != nil || p != DifficultyHard {
		t.Errorf("expected hard, got %q %v", p, err)
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestTextureLookup(t *testing.T) {
	cfg := DefaultConfig()
	tc, ok := cfg.Texture("paddle")
	if !ok || tc.File != "textures/paddle.png" || !tc.Alpha {
		t.Errorf("unexpected paddle entry %+v (found=%v)", tc, ok)
	}
	if _, ok := cfg.Texture("missing"); ok {
		t.Error("missing texture should not be found")
	}
}
