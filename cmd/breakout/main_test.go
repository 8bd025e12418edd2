package main

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tile-breakout/internal/config"
	"github.com/vovakirdan/tile-breakout/resources"
)

func TestStartLevelWithDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	if err := prepareConfig(&cfg, config.DifficultyNormal, 2); err != nil {
		t.Fatalf("prepareConfig: %v", err)
	}
	if cfg.Levels.Start != 1 || cfg.LevelCount() != 2 {
		t.Fatalf("expected start 1 of 2 levels, got start %d of %d", cfg.Levels.Start, cfg.LevelCount())
	}

	e := &env{cfg: cfg, fsys: resources.FS, logger: log.New(io.Discard), close: func() {}}
	game, _, err := newSoftGame(e, 40, 30)
	if err != nil {
		t.Fatalf("newSoftGame: %v", err)
	}
	if game.CurrentIndex() != 1 || len(game.Levels()) != 2 {
		t.Errorf("expected level index 1 of 2, got %d of %d", game.CurrentIndex(), len(game.Levels()))
	}
	if game.CurrentLevel().Name() != "levels/level_2.lvl" {
		t.Errorf("unexpected current level %q", game.CurrentLevel().Name())
	}
}

func TestStartLevelKeepsLargerCount(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Levels.Count = 4
	if err := prepareConfig(&cfg, config.DifficultyNormal, 2); err != nil {
		t.Fatalf("prepareConfig: %v", err)
	}
	if cfg.Levels.Start != 1 || cfg.Levels.Count != 4 {
		t.Errorf("expected start 1 of 4, got start %d of %d", cfg.Levels.Start, cfg.Levels.Count)
	}

	cfg = config.DefaultConfig()
	if err := prepareConfig(&cfg, config.DifficultyNormal, 0); err != nil {
		t.Fatalf("prepareConfig: %v", err)
	}
	if cfg.Levels.Start != 0 || cfg.Levels.Count != 1 {
		t.Errorf("level 0 should keep config, got start %d of %d", cfg.Levels.Start, cfg.Levels.Count)
	}
}

func TestPrepareConfigErrorPrefix(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Window.Width = 0
	err := prepareConfig(&cfg, config.DifficultyNormal, 0)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if n := strings.Count(err.Error(), "invalid config"); n != 1 {
		t.Errorf("expected one %q prefix, got %d in %q", "invalid config", n, err.Error())
	}
}
