// Package imgdec decodes image files into tightly packed 8-bit pixel buffers
// ready for texture upload.
package imgdec

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"  // register GIF
	_ "image/jpeg" // register JPEG
	_ "image/png"  // register PNG
	"io"

	_ "golang.org/x/image/bmp"  // register BMP
	_ "golang.org/x/image/webp" // register WebP
)

// ErrUnsupportedChannels is returned by Pixels for channel counts other than 3 or 4.
var ErrUnsupportedChannels = errors.New("imgdec: unsupported channel count")

// Image is a decoded image in row-major order, top row first.
type Image struct {
	Width    int
	Height   int
	Channels int
	Pix      []byte
}

// Decoder turns encoded image bytes into pixels.
type Decoder interface {
	Decode(r io.Reader) (*Image, error)
}

// Std decodes every format registered with the image package: PNG, JPEG and
// GIF from the standard library plus BMP and WebP from golang.org/x/image.
type Std struct{}

// Decode returns a 4-channel RGBA image. The format name reported by the
// image package is included in errors.
func (Std) Decode(r io.Reader) (*Image, error) {
	src, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("imgdec: %w", err)
	}
	b := src.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("imgdec: %s image has no pixels", format)
	}

	nrgba, ok := src.(*image.NRGBA)
	if !ok || nrgba.Rect.Min != (image.Point{}) || nrgba.Stride != 4*b.Dx() {
		nrgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(nrgba, nrgba.Rect, src, b.Min, draw.Src)
	}
	return &Image{Width: b.Dx(), Height: b.Dy(), Channels: 4, Pix: nrgba.Pix}, nil
}

// Pixels returns the image data re-packed to the given channel count.
// Dropping to 3 channels discards alpha; growing to 4 adds opaque alpha.
func (img *Image) Pixels(channels int) ([]byte, error) {
	if channels != 3 && channels != 4 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedChannels, channels)
	}
	if channels == img.Channels {
		return img.Pix, nil
	}
	n := img.Width * img.Height
	out := make([]byte, n*channels)
	for i := range n {
		src := img.Pix[i*img.Channels : i*img.Channels+img.Channels]
		dst := out[i*channels : i*channels+channels]
		copy(dst[:3], src[:3])
		if channels == 4 {
			dst[3] = 255
		}
	}
	return out, nil
}
