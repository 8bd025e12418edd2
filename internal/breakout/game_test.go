package breakout

import (
	"errors"
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/tile-breakout/internal/config"
	"github.com/vovakirdan/tile-breakout/internal/gfx/soft"
	"github.com/vovakirdan/tile-breakout/internal/resource"
	"github.com/vovakirdan/tile-breakout/internal/sprite"
)

func TestNewGameLayout(t *testing.T) {
	g := newTestGame(t, 800, 600)

	if g.State() != StateActive {
		t.Errorf("expected active state, got %s", g.State())
	}
	p := g.Player()
	if p.Position() != (mgl32.Vec2{350, 580}) {
		t.Errorf("expected paddle at (350,580), got %v", p.Position())
	}
	if p.Size() != (mgl32.Vec2{100, 20}) {
		t.Errorf("expected paddle size (100,20), got %v", p.Size())
	}
	if p.Sprite().Name() != "paddle" {
		t.Errorf("expected paddle texture, got %s", p.Sprite().Name())
	}

	if len(g.Levels()) != 1 {
		t.Fatalf("expected exactly one level, got %d", len(g.Levels()))
	}
	// The level covers the top half: 3 rows over 300 pixels.
	b := g.CurrentLevel().Bricks()
	if len(b) != 4 || b[3].Position() != (mgl32.Vec2{266, 100}) {
		t.Errorf("unexpected level layout: %d bricks", len(b))
	}
}

func TestNewGameSetsProjection(t *testing.T) {
	levels := map[string]string{"levels/level_1.lvl": "2"}
	backend := soft.New(8, 6)
	cache := resource.New(backend, testFS(t, levels))
	if _, err := NewGame(800, 600, cache, config.DefaultConfig()); err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	mat, err := cache.Material("sprite")
	if err != nil {
		t.Fatalf("Material: %v", err)
	}
	got, _, ok := backend.UniformValue(mat.Program(), "projection")
	if !ok || mgl32.Mat4(got) != sprite.Projection(800, 600) {
		t.Errorf("expected projection uniform for 800x600, got %v", got)
	}
	if _, unit, ok := backend.UniformValue(mat.Program(), "image"); !ok || unit != 0 {
		t.Errorf("expected image sampler on unit 0, got %d", unit)
	}
	for _, name := range []string{"background", "face", "block", "block_solid", "paddle"} {
		if _, err := cache.Texture(name); err != nil {
			t.Errorf("texture %s not loaded: %v", name, err)
		}
	}
}

func TestNewGameErrors(t *testing.T) {
	cache := resource.New(soft.New(8, 8), testFS(t, nil))
	_, err := NewGame(800, 600, cache, config.DefaultConfig())
	if !errors.Is(err, resource.ErrIO) {
		t.Errorf("missing level file: expected ErrIO, got %v", err)
	}

	cache = resource.New(soft.New(8, 8), testFS(t, map[string]string{"levels/level_1.lvl": "2"}))
	if _, err := cache.LoadMaterial("sprite", "shaders/sprite.vert", "shaders/sprite.frag"); err != nil {
		t.Fatal(err)
	}
	if _, err := NewGame(800, 600, cache, config.DefaultConfig()); !errors.Is(err, resource.ErrDuplicateName) {
		t.Errorf("reused cache: expected ErrDuplicateName, got %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.Levels.Start = 2
	cache = resource.New(soft.New(8, 8), testFS(t, map[string]string{"levels/level_1.lvl": "2"}))
	if _, err := NewGame(800, 600, cache, cfg); !errors.Is(err, ErrLevelIndex) {
		t.Errorf("bad start level: expected ErrLevelIndex, got %v", err)
	}
}

func TestNewGameLoadsLevelSet(t *testing.T) {
	levels := map[string]string{
		"levels/level_1.lvl": "2",
		"levels/level_2.lvl": "3 3",
		"levels/level_3.lvl": "4 4 4",
	}
	cfg := config.DefaultConfig()
	cfg.Levels.Count = 3
	cfg.Levels.Start = 1
	g, err := NewGame(300, 200, resource.New(soft.New(8, 8), testFS(t, levels)), cfg)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	if len(g.Levels()) != 3 || g.CurrentIndex() != 1 {
		t.Fatalf("expected 3 levels starting at 1, got %d at %d", len(g.Levels()), g.CurrentIndex())
	}
	if n := len(g.CurrentLevel().Bricks()); n != 2 {
		t.Errorf("expected level 2 with 2 bricks, got %d", n)
	}
	if err := g.SelectLevel(3); !errors.Is(err, ErrLevelIndex) {
		t.Errorf("expected ErrLevelIndex, got %v", err)
	}
}

func TestSetKeyRange(t *testing.T) {
	g := newTestGame(t, 800, 600)
	for _, code := range []int{0, KeyA, KeyLeft, NumKeys - 1} {
		if err := g.SetKey(code, true); err != nil {
			t.Errorf("SetKey(%d): %v", code, err)
		}
		if !g.KeyDown(code) {
			t.Errorf("key %d should be down", code)
		}
	}
	for _, code := range []int{-1, NumKeys, 5000} {
		err := g.SetKey(code, true)
		if !errors.Is(err, ErrKeyOutOfRange) {
			t.Errorf("SetKey(%d): expected ErrKeyOutOfRange, got %v", code, err)
		}
	}
	g.ReleaseKeys()
	if g.KeyDown(KeyA) {
		t.Error("ReleaseKeys should release every key")
	}
}

func TestProcessInputClamps(t *testing.T) {
	g := newTestGame(t, 800, 600)
	p := g.Player()

	_ = g.SetKey(KeyLeft, true)
	for range 100 {
		g.ProcessInput(0.1)
	}
	if x := p.Position()[0]; x != 0 {
		t.Errorf("paddle should stop at the left edge, got %v", x)
	}

	_ = g.SetKey(KeyLeft, false)
	_ = g.SetKey(KeyD, true)
	for range 100 {
		g.ProcessInput(0.1)
	}
	if x := p.Position()[0]; x != 700 {
		t.Errorf("paddle should stop at width-paddle=700, got %v", x)
	}
	if y := p.Position()[1]; y != 580 {
		t.Errorf("input must not move the paddle vertically, got y=%v", y)
	}
}

func TestProcessInputStep(t *testing.T) {
	g := newTestGame(t, 800, 600)
	_ = g.SetKey(KeyA, true)
	g.ProcessInput(0.01)
	if x := g.Player().Position()[0]; x != 345 {
		t.Errorf("expected 350-500*0.01=345, got %v", x)
	}
}

func TestProcessInputLeftWins(t *testing.T) {
	g := newTestGame(t, 800, 600)
	_ = g.SetKey(KeyA, true)
	_ = g.SetKey(KeyRight, true)
	g.ProcessInput(0.1)
	if x := g.Player().Position()[0]; x != 300 {
		t.Errorf("left should take priority, expected x=300, got %v", x)
	}
}

func TestProcessInputOnlyWhenActive(t *testing.T) {
	g := newTestGame(t, 800, 600)
	g.SetState(StateMenu)
	_ = g.SetKey(KeyA, true)
	g.ProcessInput(0.1)
	if x := g.Player().Position()[0]; x != 350 {
		t.Errorf("paddle should not move outside active state, got %v", x)
	}
}

func TestRenderOrder(t *testing.T) {
	g := newTestGame(t, 800, 600)
	rec := &recorder{}
	g.drawer = rec
	g.CurrentLevel().Bricks()[3].Destroy()

	if err := g.Render(g.cache); err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := []string{"background", "block_solid", "block_solid", "block_solid", "paddle"}
	if len(rec.calls) != len(want) {
		t.Fatalf("expected %d draws, got %d", len(want), len(rec.calls))
	}
	for i, c := range rec.calls {
		if c.tex != want[i] {
			t.Errorf("draw %d: expected %s, got %s", i, want[i], c.tex)
		}
	}
	bg := rec.calls[0]
	if bg.pos != (mgl32.Vec2{}) || bg.size != (mgl32.Vec2{800, 600}) || bg.rot != 0 || bg.color != (mgl32.Vec3{1, 1, 1}) {
		t.Errorf("unexpected background draw %+v", bg)
	}
}

func TestUnsupportedStates(t *testing.T) {
	g := newTestGame(t, 800, 600)
	if err := g.Update(0.016); err != nil {
		t.Errorf("active update: %v", err)
	}
	for _, s := range []State{StateMenu, StateWin} {
		g.SetState(s)
		err := g.Update(0.016)
		if !errors.Is(err, ErrStateNotSupported) {
			t.Errorf("%s update: expected ErrStateNotSupported, got %v", s, err)
		}
		err = g.Render(g.cache)
		var serr *StateError
		if !errors.As(err, &serr) || serr.State != s || serr.Op != "render" {
			t.Errorf("%s render: expected *StateError, got %v", s, err)
		}
	}
}

func TestStepDrawsFrame(t *testing.T) {
	levels := map[string]string{"levels/level_1.lvl": "0 0\n0 0"}
	backend := soft.New(80, 60)
	cache := resource.New(backend, testFS(t, levels))
	g, err := NewGame(800, 600, cache, config.DefaultConfig())
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	if err := g.Step(0.016); err != nil {
		t.Fatalf("Step: %v", err)
	}
	// Textures are a flat 200 gray, so every pixel is covered by the background.
	frame := backend.Frame()
	want := color.NRGBA{R: 200, G: 200, B: 200, A: 255}
	for _, pt := range [][2]int{{0, 0}, {79, 0}, {40, 30}, {10, 59}} {
		if got := frame.NRGBAAt(pt[0], pt[1]); got != want {
			t.Errorf("pixel %v: expected %v, got %v", pt, want, got)
		}
	}
	if backend.DrawCalls() != 2 {
		t.Errorf("expected background and paddle draws, got %d", backend.DrawCalls())
	}

	g.SetState(StateWin)
	if err := g.Step(0.016); !errors.Is(err, ErrStateNotSupported) {
		t.Errorf("expected ErrStateNotSupported, got %v", err)
	}
}
