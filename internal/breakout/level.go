package breakout

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"unicode"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/tile-breakout/internal/resource"
)

// Level is the set of bricks built from one tile grid, in row-major order.
type Level struct {
	name   string
	rows   int
	cols   int
	bricks []*Entity
}

// Parse reads a tile grid. Blank lines are skipped and whitespace inside a
// line is ignored; every other character must be a digit. All rows must have
// as many tiles as the first. name is used in error messages.
func Parse(r io.Reader, name string) ([][]int, error) {
	var grid [][]int
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		var row []int
		for col, ch := range []rune(sc.Text()) {
			if unicode.IsSpace(ch) {
				continue
			}
			if ch < '0' || ch > '9' {
				return nil, &TileError{Path: name, Line: lineNo, Column: col + 1, Char: ch}
			}
			row = append(row, int(ch-'0'))
		}
		if len(row) == 0 {
			continue
		}
		if len(grid) > 0 && len(row) != len(grid[0]) {
			return nil, &RaggedRowError{Path: name, Line: lineNo, Got: len(row), Want: len(grid[0])}
		}
		grid = append(grid, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("breakout: read %s: %w", name, err)
	}
	if len(grid) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyLevel, name)
	}
	return grid, nil
}

// Load replaces the level's bricks with the grid read from path in the
// cache's filesystem, laid out over width x height pixels. Each tile is
// width/cols by height/rows pixels; leftover pixels stay uncovered.
func (l *Level) Load(path string, width, height int, cache *resource.Cache) error {
	l.bricks = nil
	l.rows, l.cols = 0, 0
	l.name = path

	data, err := fs.ReadFile(cache.FS(), path)
	if err != nil {
		return &resource.IOError{Path: path, Err: err}
	}
	grid, err := Parse(bytes.NewReader(data), path)
	if err != nil {
		return err
	}
	return l.build(grid, width, height, cache)
}

func (l *Level) build(grid [][]int, width, height int, cache *resource.Cache) error {
	rows, cols := len(grid), len(grid[0])
	unit := mgl32.Vec2{float32(width / cols), float32(height / rows)}

	textures := make(map[string]*resource.Texture2D, 2)
	for y, row := range grid {
		for x, code := range row {
			if code == 0 {
				continue
			}
			tile := TileFor(code)
			tex, ok := textures[tile.Texture]
			if !ok {
				var err error
				if tex, err = cache.Texture(tile.Texture); err != nil {
					l.bricks = nil
					return fmt.Errorf("breakout: level %s: %w", l.name, err)
				}
				textures[tile.Texture] = tex
			}
			pos := mgl32.Vec2{unit[0] * float32(x), unit[1] * float32(y)}
			brick := NewEntity(pos, unit, tex, tile.Color)
			brick.solid = tile.Solid
			l.bricks = append(l.bricks, brick)
		}
	}
	l.rows, l.cols = rows, cols
	return nil
}

// Draw draws every brick that is not destroyed, in storage order.
func (l *Level) Draw(r SpriteDrawer) {
	for _, b := range l.bricks {
		if !b.IsDestroyed() {
			b.Draw(r)
		}
	}
}

// IsCompleted reports whether every non-solid brick is destroyed.
func (l *Level) IsCompleted() bool {
	return l.Remaining() == 0
}

// Remaining returns the number of non-solid bricks still in play.
func (l *Level) Remaining() int {
	n := 0
	for _, b := range l.bricks {
		if !b.IsSolid() && !b.IsDestroyed() {
			n++
		}
	}
	return n
}

// Bricks returns the bricks in row-major order.
func (l *Level) Bricks() []*Entity { return l.bricks }

// Name returns the path the level was loaded from.
func (l *Level) Name() string { return l.name }

// Grid returns the row and column count of the loaded grid.
func (l *Level) Grid() (rows, cols int) { return l.rows, l.cols }
