package breakout

import (
	"context"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/tile-breakout/internal/config"
	"github.com/vovakirdan/tile-breakout/internal/gfx"
	"github.com/vovakirdan/tile-breakout/internal/resource"
	"github.com/vovakirdan/tile-breakout/internal/sprite"
)

// State is the top-level game state.
type State int

const (
	StateActive State = iota
	StateMenu
	StateWin
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateMenu:
		return "menu"
	case StateWin:
		return "win"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Game owns the levels, the player paddle and the key-state table, and runs
// one input, update and render pass per frame. It is not safe for concurrent
// use; every method must be called from the frame goroutine.
type Game struct {
	state  State
	keys   KeyTable
	width  int
	height int

	cfg    config.Config
	cache  *resource.Cache
	drawer SpriteDrawer

	levels  []*Level
	current int
	player  *Entity
}

// NewGame builds a game on a cache that has no game assets yet. It loads the
// sprite material and sets its projection for a width x height window,
// uploads the texture manifest, loads the configured levels over the top
// half of the window and puts the paddle centered on the bottom edge.
func NewGame(width, height int, cache *resource.Cache, cfg config.Config) (*Game, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("breakout: invalid window size %dx%d", width, height)
	}

	mat, err := cache.LoadMaterial(cfg.Material.Name, cfg.Material.Vertex, cfg.Material.Fragment)
	if err != nil {
		return nil, err
	}
	mat.Use()
	mat.SetInteger("image", 0)
	mat.SetMatrix4("projection", sprite.Projection(float32(width), float32(height)))

	renderer, err := sprite.New(cache.Backend(), mat)
	if err != nil {
		return nil, err
	}

	specs := make([]resource.TextureSpec, 0, len(cfg.Textures))
	for _, t := range cfg.Textures {
		specs = append(specs, resource.TextureSpec{Name: t.Name, Path: t.File, HasAlpha: t.Alpha})
	}
	if err := cache.LoadTextures(context.Background(), specs); err != nil {
		return nil, err
	}

	g := &Game{
		state:  StateActive,
		width:  width,
		height: height,
		cfg:    cfg,
		cache:  cache,
		drawer: renderer,
	}

	for n := 1; n <= cfg.LevelCount(); n++ {
		lvl := &Level{}
		if err := lvl.Load(cfg.LevelPath(n), width, height/2, cache); err != nil {
			return nil, err
		}
		g.levels = append(g.levels, lvl)
	}
	if err := g.SelectLevel(cfg.Levels.Start); err != nil {
		return nil, err
	}

	paddle, err := cache.Texture(cfg.Player.Texture)
	if err != nil {
		return nil, err
	}
	size := mgl32.Vec2{cfg.Player.Width, cfg.Player.Height}
	pos := mgl32.Vec2{float32(width)/2 - size[0]/2, float32(height) - size[1]}
	g.player = NewEntity(pos, size, paddle, mgl32.Vec3{1, 1, 1})
	return g, nil
}

// SetKey records a key press or release from the input source.
func (g *Game) SetKey(code int, pressed bool) error {
	return g.keys.Set(code, pressed)
}

// KeyDown reports whether a key is held.
func (g *Game) KeyDown(code int) bool {
	return g.keys.Down(code)
}

// ReleaseKeys clears the key-state table, e.g. when the window loses focus.
func (g *Game) ReleaseKeys() {
	g.keys.Reset()
}

// ProcessInput moves the paddle by velocity*dt while A/Left or D/Right is
// held, keeping it inside the window. Left wins when both are held. It does
// nothing outside the active state.
func (g *Game) ProcessInput(dt float32) {
	if g.state != StateActive {
		return
	}
	step := g.cfg.Player.Velocity * dt
	pos := g.player.Position()
	maxX := float32(g.width) - g.player.Size()[0]

	switch {
	case g.keys.Down(KeyA, KeyLeft):
		pos[0] = max(pos[0]-step, 0)
	case g.keys.Down(KeyD, KeyRight):
		pos[0] = min(pos[0]+step, maxX)
	default:
		return
	}
	g.player.SetPosition(pos)
}

// Update advances the simulation. The active state has nothing to advance
// yet; menu and win return a *StateError.
func (g *Game) Update(dt float32) error {
	if g.state != StateActive {
		return &StateError{Op: "update", State: g.state}
	}
	return nil
}

// Render draws the background over the whole window, then the current level,
// then the paddle. Menu and win return a *StateError without drawing.
func (g *Game) Render(cache *resource.Cache) error {
	if g.state != StateActive {
		return &StateError{Op: "render", State: g.state}
	}
	bg, err := cache.Texture(g.cfg.Scene.Background)
	if err != nil {
		return err
	}
	g.drawer.Draw(bg, mgl32.Vec2{0, 0}, mgl32.Vec2{float32(g.width), float32(g.height)}, 0, mgl32.Vec3{1, 1, 1})
	g.levels[g.current].Draw(g.drawer)
	g.player.Draw(g.drawer)
	return nil
}

// Step runs one full frame: input, update, clear to the scene color, render.
func (g *Game) Step(dt float32) error {
	g.ProcessInput(dt)
	if err := g.Update(dt); err != nil {
		return err
	}
	c := g.cfg.Scene.Clear
	g.cache.Backend().Clear(gfx.Color{R: c[0], G: c[1], B: c[2], A: 1})
	return g.Render(g.cache)
}

// Resize sets the backend viewport for a new framebuffer size. Layout and
// projection keep the size the game was created with.
func (g *Game) Resize(width, height int) {
	g.cache.Backend().Viewport(width, height)
}

func (g *Game) State() State          { return g.state }
func (g *Game) SetState(s State)      { g.state = s }
func (g *Game) Player() *Entity       { return g.player }
func (g *Game) Levels() []*Level      { return g.levels }
func (g *Game) CurrentLevel() *Level  { return g.levels[g.current] }
func (g *Game) CurrentIndex() int     { return g.current }
func (g *Game) Width() int            { return g.width }
func (g *Game) Height() int           { return g.height }
func (g *Game) Config() config.Config { return g.cfg }

// SelectLevel makes level i current.
func (g *Game) SelectLevel(i int) error {
	if i < 0 || i >= len(g.levels) {
		return fmt.Errorf("%w: %d of %d", ErrLevelIndex, i, len(g.levels))
	}
	g.current = i
	return nil
}
