package resource

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tile-breakout/internal/gfx"
)

// Sentinel errors. Every error returned by the cache wraps exactly one of them.
var (
	ErrDuplicateName = errors.New("resource: name already loaded")
	ErrNotFound      = errors.New("resource: not found")
	ErrIO            = errors.New("resource: cannot read file")
	ErrDecode        = errors.New("resource: cannot decode image")
	ErrCompile       = errors.New("resource: shader compilation failed")
	ErrLink          = errors.New("resource: program link failed")
)

// Kind names the two resource tables.
type Kind string

const (
	KindMaterial Kind = "material"
	KindTexture  Kind = "texture"
)

// NameError reports a duplicate insert or a failed lookup.
type NameError struct {
	Kind Kind
	Name string
	Err  error // ErrDuplicateName or ErrNotFound
}

func (e *NameError) Error() string {
	return fmt.Sprintf("%v: %s %q", e.Err, e.Kind, e.Name)
}

func (e *NameError) Unwrap() error { return e.Err }

// IOError reports an unreadable shader or image file.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("resource: cannot read %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() []error { return []error{ErrIO, e.Err} }

// DecodeError reports image data the decoder rejected.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("resource: cannot decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() []error { return []error{ErrDecode, e.Err} }

// CompileError carries the backend diagnostics for one shader stage.
type CompileError struct {
	Material string
	Stage    gfx.ShaderStage
	Path     string
	Log      string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("resource: material %q: %s shader %s: %s", e.Material, e.Stage, e.Path, e.Log)
}

func (e *CompileError) Unwrap() error { return ErrCompile }

// LinkError carries the backend diagnostics for a failed program link.
type LinkError struct {
	Material string
	Log      string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("resource: material %q: link: %s", e.Material, e.Log)
}

func (e *LinkError) Unwrap() error { return ErrLink }
