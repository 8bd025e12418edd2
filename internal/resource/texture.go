package resource

import "github.com/vovakirdan/tile-breakout/internal/gfx"

// Texture2D is an uploaded image and its sampling parameters. It is
// immutable; entities share the same *Texture2D rather than re-uploading.
type Texture2D struct {
	name    string
	backend gfx.Backend
	handle  gfx.Texture
	width   int
	height  int
	params  gfx.TextureParams
}

// Name returns the cache key the texture was loaded under.
func (t *Texture2D) Name() string { return t.name }

// Handle returns the backend texture handle.
func (t *Texture2D) Handle() gfx.Texture { return t.handle }

// Width returns the width in pixels.
func (t *Texture2D) Width() int { return t.width }

// Height returns the height in pixels.
func (t *Texture2D) Height() int { return t.height }

// Params returns the sampling parameters.
func (t *Texture2D) Params() gfx.TextureParams { return t.params }

// Bind binds the texture to the backend's active texture unit.
func (t *Texture2D) Bind() {
	t.backend.BindTexture(t.handle)
}

// textureParams returns the fixed sampling setup used for every texture:
// repeat wrap, linear filtering, RGBA when the image has alpha and RGB otherwise.
func textureParams(hasAlpha bool) gfx.TextureParams {
	format := gfx.FormatRGB
	if hasAlpha {
		format = gfx.FormatRGBA
	}
	return gfx.TextureParams{
		InternalFormat: format,
		ImageFormat:    format,
		WrapS:          gfx.WrapRepeat,
		WrapT:          gfx.WrapRepeat,
		FilterMin:      gfx.FilterLinear,
		FilterMag:      gfx.FilterLinear,
	}
}
