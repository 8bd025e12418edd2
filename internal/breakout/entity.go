// Package breakout implements the game core: drawable entities, levels built
// from tile grids and the game state machine driving input, update and render.
package breakout

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/tile-breakout/internal/resource"
)

// SpriteDrawer draws one textured quad. *sprite.Renderer implements it.
type SpriteDrawer interface {
	Draw(tex *resource.Texture2D, pos, size mgl32.Vec2, rotateDeg float32, color mgl32.Vec3)
}

// Entity is a drawable game object: a brick or the player paddle.
type Entity struct {
	position  mgl32.Vec2
	size      mgl32.Vec2
	velocity  mgl32.Vec2
	color     mgl32.Vec3
	rotation  float32 // degrees
	sprite    *resource.Texture2D
	solid     bool
	destroyed bool
}

// NewEntity creates an entity at rest, non-solid and not destroyed.
func NewEntity(pos, size mgl32.Vec2, sprite *resource.Texture2D, color mgl32.Vec3) *Entity {
	return &Entity{
		position: pos,
		size:     size,
		color:    color,
		sprite:   sprite,
	}
}

// Draw renders the entity. Destroyed entities are drawn too; skipping them is
// up to the caller.
func (e *Entity) Draw(r SpriteDrawer) {
	r.Draw(e.sprite, e.position, e.size, e.rotation, e.color)
}

func (e *Entity) Position() mgl32.Vec2         { return e.position }
func (e *Entity) Size() mgl32.Vec2             { return e.size }
func (e *Entity) Velocity() mgl32.Vec2         { return e.velocity }
func (e *Entity) Color() mgl32.Vec3            { return e.color }
func (e *Entity) Rotation() float32            { return e.rotation }
func (e *Entity) Sprite() *resource.Texture2D { return e.sprite }

// SetPosition moves the entity.
func (e *Entity) SetPosition(p mgl32.Vec2) { e.position = p }

// SetVelocity sets the velocity in pixels per second.
func (e *Entity) SetVelocity(v mgl32.Vec2) { e.velocity = v }

// SetRotation sets the rotation in degrees around the entity's center.
func (e *Entity) SetRotation(deg float32) { e.rotation = deg }

// IsSolid reports whether the entity can never be destroyed by play.
func (e *Entity) IsSolid() bool { return e.solid }

// IsDestroyed reports whether the entity has been removed from play.
func (e *Entity) IsDestroyed() bool { return e.destroyed }

// Destroy removes the entity from play. Solid entities ignore it.
func (e *Entity) Destroy() {
	if !e.solid {
		e.destroyed = true
	}
}
