package breakout

import "github.com/go-gl/mathgl/mgl32"

// Texture names the tile table refers to.
const (
	TextureBlock      = "block"
	TextureBlockSolid = "block_solid"
)

// Tile describes how a tile code is drawn.
type Tile struct {
	Color   mgl32.Vec3
	Texture string
	Solid   bool
}

var tileTable = map[int]Tile{
	1: {Color: mgl32.Vec3{0.8, 0.8, 0.8}, Texture: TextureBlockSolid, Solid: true},
	2: {Color: mgl32.Vec3{0.2, 0.6, 1.0}, Texture: TextureBlock},
	3: {Color: mgl32.Vec3{0.0, 0.7, 0.0}, Texture: TextureBlock},
	4: {Color: mgl32.Vec3{0.8, 0.8, 0.4}, Texture: TextureBlock},
	5: {Color: mgl32.Vec3{1.0, 0.5, 0.0}, Texture: TextureBlock},
}

var defaultTile = Tile{Color: mgl32.Vec3{1, 1, 1}, Texture: TextureBlock}

// TileFor returns the appearance of a non-zero tile code. Codes outside the
// table get a plain white block.
func TileFor(code int) Tile {
	if t, ok := tileTable[code]; ok {
		return t
	}
	return defaultTile
}

// GridStats counts the tiles of a parsed grid.
type GridStats struct {
	Rows, Cols int
	Bricks     int // non-zero tiles
	Solid      int
}

// Stats summarizes grid the way Load would build it.
func Stats(grid [][]int) GridStats {
	s := GridStats{Rows: len(grid)}
	if len(grid) > 0 {
		s.Cols = len(grid[0])
	}
	for _, row := range grid {
		for _, code := range row {
			if code == 0 {
				continue
			}
			s.Bricks++
			if TileFor(code).Solid {
				s.Solid++
			}
		}
	}
	return s
}
