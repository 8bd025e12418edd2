//go:build glfw

// Package opengl implements gfx.Backend on an OpenGL 3.3 core context.
// The caller owns the context and must call gl.Init (via Init) on the thread
// the context is current on before creating a Backend.
package opengl

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/tile-breakout/internal/gfx"
)

// Backend forwards gfx calls to the current GL context. Vertex buffers are
// returned as vertex array object names.
type Backend struct{}

var _ gfx.Backend = (*Backend)(nil)

// Init loads GL function pointers and sets the blend state the sprite
// pipeline expects.
func Init() (*Backend, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("opengl: init: %w", err)
	}
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	return &Backend{}, nil
}

func (b *Backend) CompileShader(stage gfx.ShaderStage, source string) (gfx.Shader, error) {
	kind := uint32(gl.VERTEX_SHADER)
	if stage == gfx.StageFragment {
		kind = gl.FRAGMENT_SHADER
	}
	shader := gl.CreateShader(kind)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		return gfx.Shader(shader), &gfx.InfoLogError{Kind: gfx.ErrCompile, Log: strings.TrimRight(log, "\x00")}
	}
	return gfx.Shader(shader), nil
}

func (b *Backend) LinkProgram(vertex, fragment gfx.Shader) (gfx.Program, error) {
	program := gl.CreateProgram()
	gl.AttachShader(program, uint32(vertex))
	gl.AttachShader(program, uint32(fragment))
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		return gfx.Program(program), &gfx.InfoLogError{Kind: gfx.ErrLink, Log: strings.TrimRight(log, "\x00")}
	}
	return gfx.Program(program), nil
}

func (b *Backend) DeleteShader(s gfx.Shader) {
	gl.DeleteShader(uint32(s))
}

func (b *Backend) UseProgram(p gfx.Program) {
	gl.UseProgram(uint32(p))
}

func (b *Backend) UniformLocation(p gfx.Program, name string) int32 {
	return gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00"))
}

func (b *Backend) Uniform1f(loc int32, v float32)          { gl.Uniform1f(loc, v) }
func (b *Backend) Uniform1i(loc int32, v int32)            { gl.Uniform1i(loc, v) }
func (b *Backend) Uniform2f(loc int32, x, y float32)       { gl.Uniform2f(loc, x, y) }
func (b *Backend) Uniform3f(loc int32, x, y, z float32)    { gl.Uniform3f(loc, x, y, z) }
func (b *Backend) Uniform4f(loc int32, x, y, z, w float32) { gl.Uniform4f(loc, x, y, z, w) }

func (b *Backend) UniformMatrix4f(loc int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(loc, 1, false, &m[0])
}

func (b *Backend) CreateTexture(width, height int, pixels []byte, params gfx.TextureParams) (gfx.Texture, error) {
	if want := width * height * params.ImageFormat.Channels(); len(pixels) != want {
		return 0, fmt.Errorf("opengl: texture data is %d bytes, want %d", len(pixels), want)
	}
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, glFormat(params.InternalFormat), int32(width), int32(height), 0,
		uint32(glFormat(params.ImageFormat)), gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, glWrap(params.WrapS))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, glWrap(params.WrapT))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, glFilter(params.FilterMin))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, glFilter(params.FilterMag))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return gfx.Texture(tex), nil
}

func (b *Backend) ActiveTexture(unit int) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
}

func (b *Backend) BindTexture(t gfx.Texture) {
	gl.BindTexture(gl.TEXTURE_2D, uint32(t))
}

func (b *Backend) CreateVertexBuffer(vertices []float32, components int) (gfx.Buffer, error) {
	if components < 1 || components > 4 || len(vertices)%components != 0 {
		return 0, fmt.Errorf("opengl: invalid vertex layout: %d floats, %d components", len(vertices), components)
	}
	var vao, vbo uint32
	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(1, &vbo)

	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)
	gl.VertexAttribPointer(0, int32(components), gl.FLOAT, false, int32(components*4), gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return gfx.Buffer(vao), nil
}

func (b *Backend) DrawTriangles(buf gfx.Buffer, first, count int) {
	gl.BindVertexArray(uint32(buf))
	gl.DrawArrays(gl.TRIANGLES, int32(first), int32(count))
	gl.BindVertexArray(0)
}

func (b *Backend) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (b *Backend) Clear(c gfx.Color) {
	gl.ClearColor(c.R, c.G, c.B, c.A)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func glFormat(f gfx.PixelFormat) int32 {
	if f == gfx.FormatRGBA {
		return gl.RGBA
	}
	return gl.RGB
}

func glWrap(w gfx.WrapMode) int32 {
	if w == gfx.WrapClampToEdge {
		return gl.CLAMP_TO_EDGE
	}
	return gl.REPEAT
}

func glFilter(f gfx.FilterMode) int32 {
	if f == gfx.FilterNearest {
		return gl.NEAREST
	}
	return gl.LINEAR
}
