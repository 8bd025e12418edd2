package main

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/vovakirdan/tile-breakout/internal/breakout"
	"github.com/vovakirdan/tile-breakout/resources"
)

func TestLevelFilesOrder(t *testing.T) {
	fsys := fstest.MapFS{
		"levels/level_10.lvl": {Data: []byte("1\n")},
		"levels/level_2.lvl":  {Data: []byte("1\n")},
		"levels/level_1.lvl":  {Data: []byte("1\n")},
		"levels/extra.lvl":    {Data: []byte("1\n")},
		"levels/readme.txt":   {Data: []byte("x")},
	}
	files, err := levelFiles(fsys, "levels")
	if err != nil {
		t.Fatalf("levelFiles: %v", err)
	}
	// Numbered files sort numerically among themselves.
	want := []string{"levels/extra.lvl", "levels/level_1.lvl", "levels/level_2.lvl", "levels/level_10.lvl"}
	if len(files) != len(want) {
		t.Fatalf("expected %v, got %v", want, files)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("files[%d]: expected %s, got %s", i, want[i], files[i])
		}
	}
}

func TestBundledLevelsParse(t *testing.T) {
	files, err := levelFiles(resources.FS, "levels")
	if err != nil {
		t.Fatalf("levelFiles: %v", err)
	}
	if len(files) != 4 {
		t.Fatalf("expected 4 bundled levels, got %v", files)
	}
	for _, p := range files {
		if _, err := parseLevelFile(resources.FS, p); err != nil {
			t.Errorf("%s: %v", p, err)
		}
	}
}

func TestParseLevelFileErrors(t *testing.T) {
	fsys := fstest.MapFS{"bad.lvl": {Data: []byte("1 x\n")}}
	if _, err := parseLevelFile(fsys, "bad.lvl"); !errors.Is(err, breakout.ErrInvalidTileData) {
		t.Errorf("expected ErrInvalidTileData, got %v", err)
	}
	if _, err := parseLevelFile(fsys, "missing.lvl"); err == nil {
		t.Error("expected error for missing file")
	}
}
