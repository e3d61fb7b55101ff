package texture

import (
	"errors"
	"image/color"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Params controls sampling of an uploaded texture.
type Params struct {
	Wrap       int32 // gl.REPEAT or gl.CLAMP_TO_EDGE
	Mipmaps    bool
	Anisotropy float32 // 0 disables
}

// DetailParams suit tiled surface textures.
var DetailParams = Params{Wrap: gl.REPEAT, Mipmaps: true, Anisotropy: 8}

// DataParams suit textures that are sampled once across the terrain, such as the
// heightmap and its normal map.
var DataParams = Params{Wrap: gl.CLAMP_TO_EDGE}

// Texture is a 2D GL texture.
type Texture struct {
	ID     uint32
	Width  int
	Height int
}

// Upload creates a GL texture from img. Must be called with a current GL context.
func Upload(img *Image, p Params) (*Texture, error) {
	if img == nil || len(img.Pix) < img.Width*img.Height*Channels || img.Width == 0 || img.Height == 0 {
		return nil, errors.New("texture: image buffer does not match its size")
	}

	if limit := MaxSize(); limit > 0 {
		img = Fit(img, limit)
	}

	t := &Texture{Width: img.Width, Height: img.Height}
	gl.GenTextures(1, &t.ID)
	gl.BindTexture(gl.TEXTURE_2D, t.ID)

	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
		int32(img.Width), int32(img.Height),
		0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))

	minFilter := int32(gl.LINEAR)
	if p.Mipmaps {
		gl.GenerateMipmap(gl.TEXTURE_2D)
		minFilter = gl.LINEAR_MIPMAP_LINEAR
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, minFilter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, p.Wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, p.Wrap)
	if p.Anisotropy > 0 {
		gl.TexParameterf(gl.TEXTURE_2D, gl.TEXTURE_MAX_ANISOTROPY, p.Anisotropy)
	}

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return t, nil
}

// Colours for 1x1 stand-ins of textures that failed to load.
var (
	WhiteTexel = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	// FlatNormalTexel decodes to the tangent-space normal (0,0,1).
	FlatNormalTexel = color.NRGBA{R: 128, G: 128, B: 255, A: 255}
)

// Solid creates a 1x1 texture of a single colour. Must be called with a current GL context.
func Solid(c color.NRGBA) *Texture {
	t, _ := Upload(SolidImage(c), DataParams)
	return t
}

// SolidImage returns a 1x1 image of a single colour.
func SolidImage(c color.NRGBA) *Image {
	return &Image{Pix: []byte{c.R, c.G, c.B, c.A}, Width: 1, Height: 1, Channels: Channels}
}

// Bind binds the texture to a texture unit.
func (t *Texture) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, t.ID)
}

// Unbind clears whatever texture is bound to a texture unit.
func Unbind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Delete frees the GL texture. Calling it again is a no-op.
func (t *Texture) Delete() {
	if t == nil || t.ID == 0 {
		return
	}
	gl.DeleteTextures(1, &t.ID)
	t.ID = 0
}

// MaxSize returns GL_MAX_TEXTURE_SIZE for the current context.
func MaxSize() int {
	var size int32
	gl.GetIntegerv(gl.MAX_TEXTURE_SIZE, &size)
	return int(size)
}
