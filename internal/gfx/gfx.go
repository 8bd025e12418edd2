// Package gfx defines the renderer backend contract the game core draws through.
// It contains no graphics API bindings itself: the software rasterizer in
// gfx/soft and the OpenGL binding in gfx/opengl both implement Backend.
package gfx

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Handles are opaque, backend-assigned identifiers. Zero is never a valid handle.
type (
	Shader  uint32
	Program uint32
	Texture uint32
	Buffer  uint32
)

// ShaderStage selects the pipeline stage a shader source is compiled for.
type ShaderStage int

const (
	StageVertex ShaderStage = iota
	StageFragment
)

// String returns a human-readable name for the stage.
func (s ShaderStage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return "unknown"
	}
}

// PixelFormat is the channel layout of texture data.
type PixelFormat int

const (
	FormatRGB PixelFormat = iota
	FormatRGBA
)

// Channels returns the number of bytes per pixel for the format.
func (f PixelFormat) Channels() int {
	if f == FormatRGBA {
		return 4
	}
	return 3
}

// String returns the conventional name of the format.
func (f PixelFormat) String() string {
	if f == FormatRGBA {
		return "RGBA"
	}
	return "RGB"
}

// WrapMode controls texture coordinate wrapping outside [0, 1].
type WrapMode int

const (
	WrapRepeat WrapMode = iota
	WrapClampToEdge
)

// FilterMode controls texture sampling between texels.
type FilterMode int

const (
	FilterLinear FilterMode = iota
	FilterNearest
)

// TextureParams are the immutable sampling parameters of a texture.
type TextureParams struct {
	InternalFormat PixelFormat
	ImageFormat    PixelFormat
	WrapS          WrapMode
	WrapT          WrapMode
	FilterMin      FilterMode
	FilterMag      FilterMode
}

// Color is a linear RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float32
}

// Backend is the low-level graphics capability consumed by the resource cache
// and the sprite renderer. Uniform setters apply to the program most recently
// passed to UseProgram, and a location of -1 is silently ignored, matching GL.
//
// Implementations are not safe for concurrent use; all calls happen on the
// frame goroutine.
type Backend interface {
	// CompileShader compiles a single stage. On failure it still returns the
	// shader handle together with an *InfoLogError carrying the diagnostics.
	CompileShader(stage ShaderStage, source string) (Shader, error)
	// LinkProgram links a vertex and a fragment shader. On failure it returns
	// the program handle together with an *InfoLogError.
	LinkProgram(vertex, fragment Shader) (Program, error)
	DeleteShader(s Shader)
	UseProgram(p Program)
	UniformLocation(p Program, name string) int32

	Uniform1f(loc int32, v float32)
	Uniform1i(loc int32, v int32)
	Uniform2f(loc int32, x, y float32)
	Uniform3f(loc int32, x, y, z float32)
	Uniform4f(loc int32, x, y, z, w float32)
	UniformMatrix4f(loc int32, m mgl32.Mat4)

	// CreateTexture uploads width*height pixels laid out in params.ImageFormat.
	CreateTexture(width, height int, pixels []byte, params TextureParams) (Texture, error)
	ActiveTexture(unit int)
	BindTexture(t Texture)

	// CreateVertexBuffer uploads static vertex data with the given number of
	// float components per vertex.
	CreateVertexBuffer(vertices []float32, components int) (Buffer, error)
	DrawTriangles(b Buffer, first, count int)

	Viewport(width, height int)
	Clear(c Color)
}

var (
	ErrCompile = errors.New("shader compilation failed")
	ErrLink    = errors.New("program link failed")
)

// InfoLogError carries the diagnostic text a backend produced for a failed
// compile or link. Kind is ErrCompile or ErrLink.
type InfoLogError struct {
	Kind error
	Log  string
}

func (e *InfoLogError) Error() string {
	return fmt.Sprintf("%v: %s", e.Kind, e.Log)
}

func (e *InfoLogError) Unwrap() error {
	return e.Kind
}
