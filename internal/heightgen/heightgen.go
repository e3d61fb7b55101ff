// Package heightgen generates fractal Perlin-noise heightmaps.
package heightgen

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"runtime"
	"sync"

	"github.com/alitto/pond/v2"
	"github.com/aquilax/go-perlin"
)

// Params controls the generated terrain.
type Params struct {
	Width  int
	Height int
	Seed   int64

	Octaves     int
	Frequency   float64 // noise cycles across the map at the first octave
	Persistence float64 // amplitude ratio between octaves
	Lacunarity  float64 // frequency ratio between octaves

	Workers int // 0 uses one per CPU
}

// DefaultParams returns a 513x513 six-octave map.
func DefaultParams() Params {
	return Params{
		Width:       513,
		Height:      513,
		Seed:        1,
		Octaves:     6,
		Frequency:   4,
		Persistence: 0.5,
		Lacunarity:  2,
	}
}

// Validate reports every invalid parameter.
func (p Params) Validate() error {
	var errs []error
	if p.Width < 2 || p.Height < 2 {
		errs = append(errs, fmt.Errorf("size %dx%d: both sides must be at least 2", p.Width, p.Height))
	}
	if p.Octaves < 1 {
		errs = append(errs, fmt.Errorf("octaves %d must be at least 1", p.Octaves))
	}
	if p.Frequency <= 0 {
		errs = append(errs, fmt.Errorf("frequency %g must be positive", p.Frequency))
	}
	if p.Persistence <= 0 {
		errs = append(errs, fmt.Errorf("persistence %g must be positive", p.Persistence))
	}
	if p.Lacunarity <= 0 {
		errs = append(errs, fmt.Errorf("lacunarity %g must be positive", p.Lacunarity))
	}
	if p.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers %d must not be negative", p.Workers))
	}
	return errors.Join(errs...)
}

// Generate renders a grayscale heightmap, one row per pool task. The result
// depends only on p, not on the worker count. onRow, if set, is called once
// per finished row from worker goroutines and must be safe for concurrent use.
func Generate(ctx context.Context, p Params, onRow func()) (*image.Gray, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("heightgen: %w", err)
	}

	workers := p.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}

	// alpha 2, beta 2, n 3: the library's usual smooth setting.
	noise := perlin.NewPerlin(2, 2, 3, p.Seed)
	values := make([]float64, p.Width*p.Height)

	pool := pond.NewPool(workers)
	defer pool.StopAndWait()

	var wg sync.WaitGroup
	for z := 0; z < p.Height; z++ {
		wg.Add(1)
		pool.Submit(func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			row := values[z*p.Width : (z+1)*p.Width]
			for x := range row {
				row[x] = fbm(noise, p, float64(x)/float64(p.Width), float64(z)/float64(p.Height))
			}
			if onRow != nil {
				onRow()
			}
		})
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return quantize(values, p.Width, p.Height), nil
}

// fbm sums octaves of noise at a position in [0, 1)².
func fbm(noise *perlin.Perlin, p Params, u, v float64) float64 {
	var sum, norm float64
	amp, freq := 1.0, p.Frequency
	for o := 0; o < p.Octaves; o++ {
		sum += amp * noise.Noise2D(u*freq, v*freq)
		norm += amp
		amp *= p.Persistence
		freq *= p.Lacunarity
	}
	return sum / norm
}

// quantize stretches values to the full 0-255 range.
func quantize(values []float64, width, height int) *image.Gray {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	img := image.NewGray(image.Rect(0, 0, width, height))
	span := hi - lo
	for i, v := range values {
		if span == 0 {
			img.Pix[i] = 128
			continue
		}
		img.Pix[i] = uint8(math.Round((v - lo) / span * 255))
	}
	return img
}

// WritePNG encodes img as a PNG.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return nil
}
