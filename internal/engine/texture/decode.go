// Package texture decodes images into straight-alpha RGBA pixel buffers and
// uploads them as GL textures.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Channels is the channel count of every decoded Image.
const Channels = 4

// ErrEmptyData is returned when there are no bytes to decode.
var ErrEmptyData = errors.New("texture: empty image data")

// Image is a decoded, tightly packed RGBA pixel buffer, rows top to bottom.
// Colour channels are not premultiplied by alpha.
type Image struct {
	Pix      []byte
	Width    int
	Height   int
	Channels int
}

// Decode decodes any registered format (PNG, JPEG, GIF, BMP, TIFF, WebP).
func Decode(data []byte) (*Image, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("decode %s: image has no pixels", format)
	}
	return FromImage(img), nil
}

// DecodeNamed picks the decoder from the file extension for formats without a
// signature (TGA), and falls back to Decode otherwise.
func DecodeNamed(name string, data []byte) (*Image, error) {
	if strings.EqualFold(filepath.Ext(name), ".tga") {
		img, err := DecodeTGA(data)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		return FromImage(img), nil
	}
	img, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return img, nil
}

// FromImage converts img to a packed RGBA Image.
func FromImage(img image.Image) *Image {
	n := ToNRGBA(img)
	return &Image{
		Pix:      n.Pix,
		Width:    n.Rect.Dx(),
		Height:   n.Rect.Dy(),
		Channels: Channels,
	}
}

// ToNRGBA returns img as a zero-origin *image.NRGBA, copying only when needed.
// Translucent pixels keep their colour values, so a heightmap's red channel
// is the stored height whatever its alpha.
func ToNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) && n.Stride == 4*n.Rect.Dx() {
		return n
	}
	b := img.Bounds()
	n := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(n, n.Rect, img, b.Min, draw.Src)
	return n
}

// NRGBA wraps the buffer as an *image.NRGBA without copying.
func (img *Image) NRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    img.Pix,
		Stride: img.Width * Channels,
		Rect:   image.Rect(0, 0, img.Width, img.Height),
	}
}

// Fit returns img scaled down so neither side exceeds maxSize, keeping the aspect ratio.
// img is returned unchanged when it already fits.
func Fit(img *Image, maxSize int) *Image {
	if maxSize <= 0 || (img.Width <= maxSize && img.Height <= maxSize) {
		return img
	}
	w, h := img.Width, img.Height
	if w >= h {
		h = max(1, h*maxSize/w)
		w = maxSize
	} else {
		w = max(1, w*maxSize/h)
		h = maxSize
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Rect, img.NRGBA(), image.Rect(0, 0, img.Width, img.Height), draw.Src, nil)
	return FromImage(dst)
}
