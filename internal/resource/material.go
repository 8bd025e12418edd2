package resource

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/tile-breakout/internal/gfx"
)

// Material is a linked shader program together with its uniform setters.
// A *Material is a handle: copying the pointer never creates a new program.
// Setters target the material's own program, so call Use first when another
// program may be current.
type Material struct {
	name    string
	backend gfx.Backend
	program gfx.Program
}

// Name returns the cache key the material was loaded under.
func (m *Material) Name() string { return m.name }

// Program returns the backend program handle.
func (m *Material) Program() gfx.Program { return m.program }

// Use makes this material's program current.
func (m *Material) Use() {
	m.backend.UseProgram(m.program)
}

func (m *Material) location(name string) int32 {
	return m.backend.UniformLocation(m.program, name)
}

// SetFloat sets a float uniform.
func (m *Material) SetFloat(name string, v float32) {
	m.backend.Uniform1f(m.location(name), v)
}

// SetInteger sets an int or sampler uniform.
func (m *Material) SetInteger(name string, v int32) {
	m.backend.Uniform1i(m.location(name), v)
}

// SetVector2f sets a vec2 uniform.
func (m *Material) SetVector2f(name string, v mgl32.Vec2) {
	m.backend.Uniform2f(m.location(name), v[0], v[1])
}

// SetVector3f sets a vec3 uniform.
func (m *Material) SetVector3f(name string, v mgl32.Vec3) {
	m.backend.Uniform3f(m.location(name), v[0], v[1], v[2])
}

// SetVector4f sets a vec4 uniform.
func (m *Material) SetVector4f(name string, v mgl32.Vec4) {
	m.backend.Uniform4f(m.location(name), v[0], v[1], v[2], v[3])
}

// SetMatrix4 sets a mat4 uniform.
func (m *Material) SetMatrix4(name string, v mgl32.Mat4) {
	m.backend.UniformMatrix4f(m.location(name), v)
}
