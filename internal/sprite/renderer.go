// Package sprite draws textured, tinted, rotated quads through a material.
package sprite

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/tile-breakout/internal/gfx"
	"github.com/vovakirdan/tile-breakout/internal/resource"
)

// quad is a unit square as two triangles; each vertex doubles as its
// texture coordinate.
var quad = []float32{
	0, 1,
	1, 0,
	0, 0,

	0, 1,
	1, 1,
	1, 0,
}

const quadVertices = 6

// Renderer owns the shared quad buffer and the material it draws with.
type Renderer struct {
	backend  gfx.Backend
	material *resource.Material
	quad     gfx.Buffer
}

// New uploads the unit quad. It is created once per renderer.
func New(backend gfx.Backend, material *resource.Material) (*Renderer, error) {
	buf, err := backend.CreateVertexBuffer(quad, 2)
	if err != nil {
		return nil, fmt.Errorf("sprite: create quad: %w", err)
	}
	return &Renderer{backend: backend, material: material, quad: buf}, nil
}

// Material returns the material used for drawing.
func (r *Renderer) Material() *resource.Material { return r.material }

// Draw renders tex into the rectangle at pos with the given size, rotated by
// rotateDeg degrees around the rectangle's center and multiplied by color.
func (r *Renderer) Draw(tex *resource.Texture2D, pos, size mgl32.Vec2, rotateDeg float32, color mgl32.Vec3) {
	r.material.Use()
	r.material.SetMatrix4("model", ModelMatrix(pos, size, rotateDeg))
	r.material.SetVector3f("spriteColor", color)

	r.backend.ActiveTexture(0)
	tex.Bind()
	r.backend.DrawTriangles(r.quad, 0, quadVertices)
}

// ModelMatrix maps the unit quad onto the destination rectangle: scale to
// size, rotate around the center, then translate to pos.
func ModelMatrix(pos, size mgl32.Vec2, rotateDeg float32) mgl32.Mat4 {
	half := size.Mul(0.5)
	return mgl32.Translate3D(pos[0], pos[1], 0).
		Mul4(mgl32.Translate3D(half[0], half[1], 0)).
		Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(rotateDeg))).
		Mul4(mgl32.Translate3D(-half[0], -half[1], 0)).
		Mul4(mgl32.Scale3D(size[0], size[1], 1))
}

// Projection returns a left-handed orthographic projection with (0,0) at the
// top-left corner, (width,height) at the bottom-right and depth in [-1, 1]
// mapped to [0, 1].
func Projection(width, height float32) mgl32.Mat4 {
	const near, far float32 = -1, 1
	left, right := float32(0), width
	top, bottom := float32(0), height

	rw := 1 / (right - left)
	rh := 1 / (top - bottom)
	rd := 1 / (far - near)
	return mgl32.Mat4{
		2 * rw, 0, 0, 0,
		0, 2 * rh, 0, 0,
		0, 0, rd, 0,
		-(left + right) * rw, -(top + bottom) * rh, -near * rd, 1,
	}
}
