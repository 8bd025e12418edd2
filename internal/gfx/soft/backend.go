// Package soft implements gfx.Backend on the CPU. It rasterizes into an
// in-memory framebuffer, which the terminal platform presents and tests read
// back pixel by pixel.
//
// GLSL is not executed. Compilation validates the source shape and records
// uniform declarations so locations behave as they do on a GPU driver; drawing
// runs the fixed sprite pipeline those shaders describe: the vertex position is
// transformed by the "projection" and "model" mat4 uniforms, texture coordinates
// are the vertex position, and the fragment is the "image" sampler multiplied by
// the "spriteColor" vec3.
package soft

import (
	"fmt"
	"image"
	"regexp"
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/tile-breakout/internal/gfx"
)

const maxTextureUnits = 16

var (
	versionRe = regexp.MustCompile(`(?m)^\s*#version\s+\d+`)
	mainRe    = regexp.MustCompile(`\bvoid\s+main\s*\(\s*(void)?\s*\)`)
	uniformRe = regexp.MustCompile(`(?m)^\s*uniform\s+(\w+)\s+(\w+)\s*;`)
)

type shaderObject struct {
	stage    gfx.ShaderStage
	compiled bool
	deleted  bool
	uniforms map[string]string // name -> GLSL type
}

type uniformSlot struct {
	name string
	kind string
	set  bool
	f    [16]float32
	i    int32
}

type programObject struct {
	linked    bool
	locations map[string]int32
	slots     []uniformSlot
}

type textureObject struct {
	width    int
	height   int
	channels int
	pix      []byte
	params   gfx.TextureParams
}

type bufferObject struct {
	components int
	data       []float32
}

// Backend is a software renderer. Handles index into the object tables
// starting at 1.
type Backend struct {
	frame *image.NRGBA

	shaders  []*shaderObject
	programs []*programObject
	textures []*textureObject
	buffers  []*bufferObject

	current    gfx.Program
	activeUnit int
	units      [maxTextureUnits]gfx.Texture

	drawCalls int
}

var _ gfx.Backend = (*Backend)(nil)

// New creates a backend with a framebuffer of the given size.
func New(width, height int) *Backend {
	b := &Backend{}
	b.Viewport(width, height)
	return b
}

// CompileShader validates source and records its uniform declarations.
func (b *Backend) CompileShader(stage gfx.ShaderStage, source string) (gfx.Shader, error) {
	obj := &shaderObject{stage: stage, uniforms: make(map[string]string)}
	b.shaders = append(b.shaders, obj)
	handle := gfx.Shader(len(b.shaders))

	var problems []string
	if !versionRe.MatchString(source) {
		problems = append(problems, "0:1: error: missing #version directive")
	}
	if !mainRe.MatchString(source) {
		problems = append(problems, "0:0: error: no definition of void main()")
	}
	if strings.Count(source, "{") != strings.Count(source, "}") {
		problems = append(problems, "0:0: error: unbalanced braces")
	}
	if len(problems) > 0 {
		return handle, &gfx.InfoLogError{Kind: gfx.ErrCompile, Log: strings.Join(problems, "\n")}
	}

	for _, m := range uniformRe.FindAllStringSubmatch(source, -1) {
		obj.uniforms[m[2]] = m[1]
	}
	obj.compiled = true
	return handle, nil
}

// LinkProgram merges the uniform tables of both stages and assigns locations
// in name order.
func (b *Backend) LinkProgram(vertex, fragment gfx.Shader) (gfx.Program, error) {
	prog := &programObject{locations: make(map[string]int32)}
	b.programs = append(b.programs, prog)
	handle := gfx.Program(len(b.programs))

	vs, fs := b.shader(vertex), b.shader(fragment)
	var problems []string
	switch {
	case vs == nil || vs.stage != gfx.StageVertex:
		problems = append(problems, "error: no valid vertex shader attached")
	case !vs.compiled:
		problems = append(problems, "error: vertex shader not compiled")
	}
	switch {
	case fs == nil || fs.stage != gfx.StageFragment:
		problems = append(problems, "error: no valid fragment shader attached")
	case !fs.compiled:
		problems = append(problems, "error: fragment shader not compiled")
	}
	if len(problems) > 0 {
		return handle, &gfx.InfoLogError{Kind: gfx.ErrLink, Log: strings.Join(problems, "\n")}
	}

	kinds := make(map[string]string, len(vs.uniforms)+len(fs.uniforms))
	for name, kind := range vs.uniforms {
		kinds[name] = kind
	}
	for name, kind := range fs.uniforms {
		if prev, ok := kinds[name]; ok && prev != kind {
			problems = append(problems, fmt.Sprintf("error: uniform %q declared as %s and %s", name, prev, kind))
			continue
		}
		kinds[name] = kind
	}
	if len(problems) > 0 {
		return handle, &gfx.InfoLogError{Kind: gfx.ErrLink, Log: strings.Join(problems, "\n")}
	}

	names := make([]string, 0, len(kinds))
	for name := range kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	for i, name := range names {
		prog.locations[name] = int32(i)
		prog.slots = append(prog.slots, uniformSlot{name: name, kind: kinds[name]})
	}
	prog.linked = true
	return handle, nil
}

// DeleteShader flags a shader for deletion. Linked programs keep working.
func (b *Backend) DeleteShader(s gfx.Shader) {
	if obj := b.shader(s); obj != nil {
		obj.deleted = true
	}
}

// UseProgram makes p the target of subsequent uniform and draw calls.
func (b *Backend) UseProgram(p gfx.Program) {
	b.current = p
}

// UniformLocation returns -1 for unknown names or unlinked programs.
func (b *Backend) UniformLocation(p gfx.Program, name string) int32 {
	prog := b.program(p)
	if prog == nil || !prog.linked {
		return -1
	}
	loc, ok := prog.locations[name]
	if !ok {
		return -1
	}
	return loc
}

func (b *Backend) Uniform1f(loc int32, v float32) {
	if s := b.slot(loc); s != nil {
		s.f[0] = v
		s.set = true
	}
}

func (b *Backend) Uniform1i(loc int32, v int32) {
	if s := b.slot(loc); s != nil {
		s.i = v
		s.set = true
	}
}

func (b *Backend) Uniform2f(loc int32, x, y float32) {
	if s := b.slot(loc); s != nil {
		s.f[0], s.f[1] = x, y
		s.set = true
	}
}

func (b *Backend) Uniform3f(loc int32, x, y, z float32) {
	if s := b.slot(loc); s != nil {
		s.f[0], s.f[1], s.f[2] = x, y, z
		s.set = true
	}
}

func (b *Backend) Uniform4f(loc int32, x, y, z, w float32) {
	if s := b.slot(loc); s != nil {
		s.f[0], s.f[1], s.f[2], s.f[3] = x, y, z, w
		s.set = true
	}
}

func (b *Backend) UniformMatrix4f(loc int32, m mgl32.Mat4) {
	if s := b.slot(loc); s != nil {
		s.f = [16]float32(m)
		s.set = true
	}
}

// CreateTexture copies pixels into a new texture object.
func (b *Backend) CreateTexture(width, height int, pixels []byte, params gfx.TextureParams) (gfx.Texture, error) {
	if width <= 0 || height <= 0 {
		return 0, fmt.Errorf("soft: invalid texture size %dx%d", width, height)
	}
	channels := params.ImageFormat.Channels()
	if want := width * height * channels; len(pixels) != want {
		return 0, fmt.Errorf("soft: texture data is %d bytes, want %d for %dx%d %s",
			len(pixels), want, width, height, params.ImageFormat)
	}
	pix := make([]byte, len(pixels))
	copy(pix, pixels)
	b.textures = append(b.textures, &textureObject{
		width:    width,
		height:   height,
		channels: channels,
		pix:      pix,
		params:   params,
	})
	return gfx.Texture(len(b.textures)), nil
}

// ActiveTexture selects the unit BindTexture writes to.
func (b *Backend) ActiveTexture(unit int) {
	if unit >= 0 && unit < maxTextureUnits {
		b.activeUnit = unit
	}
}

// BindTexture binds t to the active unit.
func (b *Backend) BindTexture(t gfx.Texture) {
	b.units[b.activeUnit] = t
}

// CreateVertexBuffer stores a copy of vertices.
func (b *Backend) CreateVertexBuffer(vertices []float32, components int) (gfx.Buffer, error) {
	if components < 2 || components > 4 {
		return 0, fmt.Errorf("soft: unsupported vertex size %d", components)
	}
	if len(vertices)%components != 0 {
		return 0, fmt.Errorf("soft: %d floats is not a multiple of %d components", len(vertices), components)
	}
	data := make([]float32, len(vertices))
	copy(data, vertices)
	b.buffers = append(b.buffers, &bufferObject{components: components, data: data})
	return gfx.Buffer(len(b.buffers)), nil
}

// Viewport resizes the framebuffer. Contents are discarded.
func (b *Backend) Viewport(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if b.frame != nil && b.frame.Rect.Dx() == width && b.frame.Rect.Dy() == height {
		return
	}
	b.frame = image.NewNRGBA(image.Rect(0, 0, width, height))
}

// Clear fills the framebuffer with c.
func (b *Backend) Clear(c gfx.Color) {
	px := [4]byte{toByte(c.R), toByte(c.G), toByte(c.B), toByte(c.A)}
	for i := 0; i < len(b.frame.Pix); i += 4 {
		copy(b.frame.Pix[i:i+4], px[:])
	}
}

// Frame returns the framebuffer. Row 0 is the top of the viewport.
func (b *Backend) Frame() *image.NRGBA {
	return b.frame
}

// DrawCalls returns the number of DrawTriangles calls that produced output.
func (b *Backend) DrawCalls() int {
	return b.drawCalls
}

// BufferCount returns the number of vertex buffers created so far.
func (b *Backend) BufferCount() int {
	return len(b.buffers)
}

// TextureCount returns the number of textures created so far.
func (b *Backend) TextureCount() int {
	return len(b.textures)
}

// ProgramCount returns the number of programs created so far.
func (b *Backend) ProgramCount() int {
	return len(b.programs)
}

// BoundTexture returns the texture bound to unit.
func (b *Backend) BoundTexture(unit int) gfx.Texture {
	if unit < 0 || unit >= maxTextureUnits {
		return 0
	}
	return b.units[unit]
}

// UniformValue returns the raw value stored for a uniform of program p.
func (b *Backend) UniformValue(p gfx.Program, name string) ([16]float32, int32, bool) {
	prog := b.program(p)
	if prog == nil {
		return [16]float32{}, 0, false
	}
	loc, ok := prog.locations[name]
	if !ok || !prog.slots[loc].set {
		return [16]float32{}, 0, false
	}
	s := prog.slots[loc]
	return s.f, s.i, true
}

func (b *Backend) shader(s gfx.Shader) *shaderObject {
	if s == 0 || int(s) > len(b.shaders) {
		return nil
	}
	return b.shaders[s-1]
}

func (b *Backend) program(p gfx.Program) *programObject {
	if p == 0 || int(p) > len(b.programs) {
		return nil
	}
	return b.programs[p-1]
}

func (b *Backend) texture(t gfx.Texture) *textureObject {
	if t == 0 || int(t) > len(b.textures) {
		return nil
	}
	return b.textures[t-1]
}

func (b *Backend) buffer(h gfx.Buffer) *bufferObject {
	if h == 0 || int(h) > len(b.buffers) {
		return nil
	}
	return b.buffers[h-1]
}

func (b *Backend) slot(loc int32) *uniformSlot {
	prog := b.program(b.current)
	if prog == nil || loc < 0 || int(loc) >= len(prog.slots) {
		return nil
	}
	return &prog.slots[loc]
}

func toByte(v float32) byte {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	default:
		return byte(v*255 + 0.5)
	}
}
