package soft

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/tile-breakout/internal/gfx"
)

type rasterVertex struct {
	x, y float32 // framebuffer pixels, y down
	u, v float32
}

// DrawTriangles rasterizes count vertices of b starting at first as a
// triangle list using the current program.
func (b *Backend) DrawTriangles(buf gfx.Buffer, first, count int) {
	prog := b.program(b.current)
	vb := b.buffer(buf)
	if prog == nil || !prog.linked || vb == nil || first < 0 {
		return
	}
	total := len(vb.data) / vb.components
	if first+count > total {
		count = total - first
	}

	mvp := prog.mat4("projection").Mul4(prog.mat4("model"))
	tint := prog.vec3("spriteColor", mgl32.Vec3{1, 1, 1})
	unit := prog.integer("image")
	var tex *textureObject
	if unit >= 0 && unit < maxTextureUnits {
		tex = b.texture(b.units[unit])
	}

	w := float32(b.frame.Rect.Dx())
	h := float32(b.frame.Rect.Dy())
	for i := first; i+2 < first+count; i += 3 {
		var tri [3]rasterVertex
		for k := range 3 {
			base := (i + k) * vb.components
			x, y := vb.data[base], vb.data[base+1]
			clip := mvp.Mul4x1(mgl32.Vec4{x, y, 0, 1})
			if clip.W() == 0 {
				continue
			}
			ndcX, ndcY := clip.X()/clip.W(), clip.Y()/clip.W()
			tri[k] = rasterVertex{
				x: (ndcX + 1) / 2 * w,
				y: (1 - ndcY) / 2 * h,
				u: x,
				v: y,
			}
		}
		b.fillTriangle(tri, tex, tint)
	}
	b.drawCalls++
}

func edge(a, b rasterVertex, px, py float32) float32 {
	return (b.x-a.x)*(py-a.y) - (b.y-a.y)*(px-a.x)
}

// ownsEdge breaks ties for pixel centers exactly on an edge. It is
// antisymmetric, so of two triangles sharing an edge exactly one covers it.
func ownsEdge(a, b rasterVertex) bool {
	return b.y > a.y || (b.y == a.y && b.x < a.x)
}

func covers(w float32, owned bool) bool {
	return w > 0 || (w == 0 && owned)
}

func (b *Backend) fillTriangle(tri [3]rasterVertex, tex *textureObject, tint mgl32.Vec3) {
	area := edge(tri[0], tri[1], tri[2].x, tri[2].y)
	if area == 0 {
		return
	}
	if area < 0 {
		tri[1], tri[2] = tri[2], tri[1]
		area = -area
	}

	bounds := b.frame.Rect
	minX := max(int(math.Floor(float64(min(tri[0].x, tri[1].x, tri[2].x)))), bounds.Min.X)
	maxX := min(int(math.Ceil(float64(max(tri[0].x, tri[1].x, tri[2].x)))), bounds.Max.X)
	minY := max(int(math.Floor(float64(min(tri[0].y, tri[1].y, tri[2].y)))), bounds.Min.Y)
	maxY := min(int(math.Ceil(float64(max(tri[0].y, tri[1].y, tri[2].y)))), bounds.Max.Y)
	if minX >= maxX || minY >= maxY {
		return
	}

	own0 := ownsEdge(tri[1], tri[2])
	own1 := ownsEdge(tri[2], tri[0])
	own2 := ownsEdge(tri[0], tri[1])
	minify := tex != nil && texelArea(tri, tex) > area/2

	for y := minY; y < maxY; y++ {
		py := float32(y) + 0.5
		for x := minX; x < maxX; x++ {
			px := float32(x) + 0.5
			w0 := edge(tri[1], tri[2], px, py)
			w1 := edge(tri[2], tri[0], px, py)
			w2 := edge(tri[0], tri[1], px, py)
			if !covers(w0, own0) || !covers(w1, own1) || !covers(w2, own2) {
				continue
			}
			b0, b1, b2 := w0/area, w1/area, w2/area
			u := b0*tri[0].u + b1*tri[1].u + b2*tri[2].u
			v := b0*tri[0].v + b1*tri[1].v + b2*tri[2].v

			r, g, bl, a := float32(1), float32(1), float32(1), float32(1)
			if tex != nil {
				r, g, bl, a = tex.sample(u, v, minify)
			}
			b.blend(x, y, r*tint[0], g*tint[1], bl*tint[2], a)
		}
	}
}

// texelArea estimates how many texels the triangle spans, for choosing
// between the minification and magnification filter.
func texelArea(tri [3]rasterVertex, tex *textureObject) float32 {
	du1, dv1 := tri[1].u-tri[0].u, tri[1].v-tri[0].v
	du2, dv2 := tri[2].u-tri[0].u, tri[2].v-tri[0].v
	uvArea := float32(math.Abs(float64(du1*dv2-du2*dv1))) / 2
	return uvArea * float32(tex.width*tex.height)
}

func (b *Backend) blend(x, y int, r, g, bl, a float32) {
	i := b.frame.PixOffset(x, y)
	dst := b.frame.Pix[i : i+4 : i+4]
	inv := 1 - a
	dst[0] = toByte(r*a + float32(dst[0])/255*inv)
	dst[1] = toByte(g*a + float32(dst[1])/255*inv)
	dst[2] = toByte(bl*a + float32(dst[2])/255*inv)
	dst[3] = toByte(a + float32(dst[3])/255*inv)
}

func (t *textureObject) sample(u, v float32, minify bool) (r, g, b, a float32) {
	filter := t.params.FilterMag
	if minify {
		filter = t.params.FilterMin
	}
	if filter == gfx.FilterNearest {
		x := wrapIndex(int(math.Floor(float64(wrapCoord(u, t.params.WrapS)*float32(t.width)))), t.width, t.params.WrapS)
		y := wrapIndex(int(math.Floor(float64(wrapCoord(v, t.params.WrapT)*float32(t.height)))), t.height, t.params.WrapT)
		return t.texel(x, y)
	}

	fx := wrapCoord(u, t.params.WrapS)*float32(t.width) - 0.5
	fy := wrapCoord(v, t.params.WrapT)*float32(t.height) - 0.5
	x0f, y0f := float32(math.Floor(float64(fx))), float32(math.Floor(float64(fy)))
	tx, ty := fx-x0f, fy-y0f
	x0 := wrapIndex(int(x0f), t.width, t.params.WrapS)
	x1 := wrapIndex(int(x0f)+1, t.width, t.params.WrapS)
	y0 := wrapIndex(int(y0f), t.height, t.params.WrapT)
	y1 := wrapIndex(int(y0f)+1, t.height, t.params.WrapT)

	r00, g00, b00, a00 := t.texel(x0, y0)
	r10, g10, b10, a10 := t.texel(x1, y0)
	r01, g01, b01, a01 := t.texel(x0, y1)
	r11, g11, b11, a11 := t.texel(x1, y1)
	lerp2 := func(c00, c10, c01, c11 float32) float32 {
		top := c00 + (c10-c00)*tx
		bottom := c01 + (c11-c01)*tx
		return top + (bottom-top)*ty
	}
	return lerp2(r00, r10, r01, r11), lerp2(g00, g10, g01, g11), lerp2(b00, b10, b01, b11), lerp2(a00, a10, a01, a11)
}

func (t *textureObject) texel(x, y int) (r, g, b, a float32) {
	i := (y*t.width + x) * t.channels
	r = float32(t.pix[i]) / 255
	g = float32(t.pix[i+1]) / 255
	b = float32(t.pix[i+2]) / 255
	a = 1
	if t.channels == 4 {
		a = float32(t.pix[i+3]) / 255
	}
	return r, g, b, a
}

func wrapCoord(c float32, mode gfx.WrapMode) float32 {
	if mode == gfx.WrapClampToEdge {
		return min(max(c, 0), 1)
	}
	return c - float32(math.Floor(float64(c)))
}

func wrapIndex(i, n int, mode gfx.WrapMode) int {
	if mode == gfx.WrapClampToEdge {
		return min(max(i, 0), n-1)
	}
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

func (p *programObject) mat4(name string) mgl32.Mat4 {
	if loc, ok := p.locations[name]; ok && p.slots[loc].set {
		return mgl32.Mat4(p.slots[loc].f)
	}
	return mgl32.Ident4()
}

func (p *programObject) vec3(name string, def mgl32.Vec3) mgl32.Vec3 {
	if loc, ok := p.locations[name]; ok && p.slots[loc].set {
		f := p.slots[loc].f
		return mgl32.Vec3{f[0], f[1], f[2]}
	}
	return def
}

func (p *programObject) integer(name string) int {
	if loc, ok := p.locations[name]; ok && p.slots[loc].set {
		return int(p.slots[loc].i)
	}
	return 0
}
