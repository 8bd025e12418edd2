package imgdec

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"golang.org/x/image/bmp"
)

func checker() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{G: 255, A: 128})
	img.SetNRGBA(0, 1, color.NRGBA{B: 255, A: 255})
	img.SetNRGBA(1, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	return img
}

func TestDecodePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, checker()); err != nil {
		t.Fatal(err)
	}
	img, err := Std{}.Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if img.Width != 2 || img.Height != 2 || img.Channels != 4 {
		t.Fatalf("unexpected shape %dx%dx%d", img.Width, img.Height, img.Channels)
	}
	// Second pixel keeps its alpha, last pixel is bottom right.
	if got := img.Pix[4:8]; !bytes.Equal(got, []byte{0, 255, 0, 128}) {
		t.Errorf("pixel (1,0): got %v", got)
	}
	if got := img.Pix[12:16]; !bytes.Equal(got, []byte{10, 20, 30, 255}) {
		t.Errorf("pixel (1,1): got %v", got)
	}
}

func TestDecodeBMP(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 1))
	src.Set(0, 0, color.RGBA{A: 255})
	src.Set(1, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	src.Set(2, 0, color.RGBA{R: 1, G: 2, B: 3, A: 255})
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, src); err != nil {
		t.Fatal(err)
	}
	img, err := Std{}.Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if img.Width != 3 || img.Height != 1 {
		t.Fatalf("unexpected size %dx%d", img.Width, img.Height)
	}
	if got := img.Pix[8:12]; !bytes.Equal(got, []byte{1, 2, 3, 255}) {
		t.Errorf("pixel (2,0): got %v", got)
	}
}

func TestDecodeGarbage(t *testing.T) {
	if _, err := (Std{}).Decode(bytes.NewReader([]byte("not an image"))); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestPixels(t *testing.T) {
	img := &Image{Width: 2, Height: 1, Channels: 4, Pix: []byte{1, 2, 3, 4, 5, 6, 7, 8}}

	rgb, err := img.Pixels(3)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(rgb, []byte{1, 2, 3, 5, 6, 7}) {
		t.Errorf("RGB: got %v", rgb)
	}

	back, err := (&Image{Width: 2, Height: 1, Channels: 3, Pix: rgb}).Pixels(4)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(back, []byte{1, 2, 3, 255, 5, 6, 7, 255}) {
		t.Errorf("RGBA: got %v", back)
	}

	same, _ := img.Pixels(4)
	if &same[0] != &img.Pix[0] {
		t.Error("matching channel count should return the buffer as is")
	}

	if _, err := img.Pixels(2); !errors.Is(err, ErrUnsupportedChannels) {
		t.Errorf("expected ErrUnsupportedChannels, got %v", err)
	}
}
