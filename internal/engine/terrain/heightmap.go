package terrain

// Heightmap is a decoded height image with the scales that map it into world units.
// Height is read from the first channel of each pixel.
type Heightmap struct {
	Pix      []byte
	Width    int
	Height   int
	Channels int

	HeightScale float32 // world units for a full-white sample
	XZScale     float32 // world units between neighbouring samples
}

// NewHeightmap validates the pixel buffer and wraps it.
func NewHeightmap(pix []byte, width, height, channels int, heightScale, xzScale float32) (*Heightmap, error) {
	if width < 2 || height < 2 {
		return nil, ErrInvalidDimensions
	}
	if len(pix) == 0 {
		return nil, ErrDecodeFailure
	}
	if channels < 1 {
		return nil, ErrInvalidDimensions
	}
	if len(pix) < width*height*channels {
		return nil, ErrShortPixelBuffer
	}
	return &Heightmap{
		Pix:         pix,
		Width:       width,
		Height:      height,
		Channels:    channels,
		HeightScale: heightScale,
		XZScale:     xzScale,
	}, nil
}

// Raw returns the 0-255 sample at grid (x, z), clamping to the edges.
func (h *Heightmap) Raw(x, z int) byte {
	x = clampi(x, 0, h.Width-1)
	z = clampi(z, 0, h.Height-1)
	return h.Pix[(z*h.Width+x)*h.Channels]
}

// Sample returns the world-space height at grid (x, z).
func (h *Heightmap) Sample(x, z int) float32 {
	return float32(h.Raw(x, z)) / 255 * h.HeightScale
}

// HeightAt returns the bilinearly interpolated height at a position in the
// terrain's local space (before the world offset is applied).
func (h *Heightmap) HeightAt(localX, localZ float32) float32 {
	if h.XZScale <= 0 {
		return h.Sample(0, 0)
	}

	fx := localX / h.XZScale
	fz := localZ / h.XZScale

	cellX := clampi(int(floorf(fx)), 0, h.Width-2)
	cellZ := clampi(int(floorf(fz)), 0, h.Height-2)

	fracX := clampf(fx-float32(cellX), 0, 1)
	fracZ := clampf(fz-float32(cellZ), 0, 1)

	h00 := h.Sample(cellX, cellZ)
	h10 := h.Sample(cellX+1, cellZ)
	h01 := h.Sample(cellX, cellZ+1)
	h11 := h.Sample(cellX+1, cellZ+1)

	near := h00*(1-fracX) + h10*fracX
	far := h01*(1-fracX) + h11*fracX
	return near*(1-fracZ) + far*fracZ
}

// Contains reports whether a local-space XZ position lies over the grid.
func (h *Heightmap) Contains(localX, localZ float32) bool {
	maxX := float32(h.Width-1) * h.XZScale
	maxZ := float32(h.Height-1) * h.XZScale
	return localX >= 0 && localZ >= 0 && localX <= maxX && localZ <= maxZ
}

func clampf(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampi(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func floorf(v float32) float32 {
	i := float32(int(v))
	if v < 0 && i != v {
		return i - 1
	}
	return i
}
