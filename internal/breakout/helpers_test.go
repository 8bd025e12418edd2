package breakout

import (
	"bytes"
	"image"
	"image/png"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/tile-breakout/internal/config"
	"github.com/vovakirdan/tile-breakout/internal/gfx/soft"
	"github.com/vovakirdan/tile-breakout/internal/resource"
	"github.com/vovakirdan/tile-breakout/resources"
)

type drawCall struct {
	tex   string
	pos   mgl32.Vec2
	size  mgl32.Vec2
	rot   float32
	color mgl32.Vec3
}

// recorder is a SpriteDrawer that remembers every call.
type recorder struct {
	calls []drawCall
}

func (r *recorder) Draw(tex *resource.Texture2D, pos, size mgl32.Vec2, rotateDeg float32, color mgl32.Vec3) {
	name := ""
	if tex != nil {
		name = tex.Name()
	}
	r.calls = append(r.calls, drawCall{tex: name, pos: pos, size: size, rot: rotateDeg, color: color})
}

func solidPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 200
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

// testFS returns the bundled shaders, small generated textures and the given
// level files.
func testFS(t *testing.T, levels map[string]string) fstest.MapFS {
	t.Helper()
	fsys := fstest.MapFS{}
	for _, name := range []string{"shaders/sprite.vert", "shaders/sprite.frag"} {
		data, err := fs.ReadFile(resources.FS, name)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		fsys[name] = &fstest.MapFile{Data: data}
	}
	for _, tc := range config.DefaultConfig().Textures {
		fsys[tc.File] = &fstest.MapFile{Data: solidPNG(t, 4, 4)}
	}
	for name, body := range levels {
		fsys[name] = &fstest.MapFile{Data: []byte(body)}
	}
	return fsys
}

// textureCache returns a cache with only the brick textures loaded.
func textureCache(t *testing.T, levels map[string]string) *resource.Cache {
	t.Helper()
	c := resource.New(soft.New(16, 16), testFS(t, levels))
	for _, name := range []string{TextureBlock, TextureBlockSolid} {
		if _, err := c.LoadTexture(name, "textures/"+name+".png", false); err != nil {
			t.Fatalf("LoadTexture %s: %v", name, err)
		}
	}
	return c
}

func newTestGame(t *testing.T, width, height int) *Game {
	t.Helper()
	levels := map[string]string{"levels/level_1.lvl": "1 1 1\n0 2 0\n0 0 0\n"}
	cache := resource.New(soft.New(width/10, height/10), testFS(t, levels))
	g, err := NewGame(width, height, cache, config.DefaultConfig())
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	return g
}
