// Package terrain builds triangle meshes from heightmap images.
package terrain

import "errors"

var (
	// ErrInvalidDimensions is returned when the heightmap is too small to form a triangle.
	ErrInvalidDimensions = errors.New("terrain: heightmap must be at least 2x2")

	// ErrDecodeFailure is returned when no pixel data is available (missing or failed decode).
	ErrDecodeFailure = errors.New("terrain: heightmap decode failed")

	// ErrShortPixelBuffer is returned when the pixel buffer holds fewer than width*height*channels bytes.
	ErrShortPixelBuffer = errors.New("terrain: pixel buffer shorter than width*height*channels")
)

// Floats per vertex for each layout.
const (
	StrideBasic    = 8  // position(3) normal(3) uv(2)
	StrideTangents = 14 // basic + tangent(3) bitangent(3)
)

// NormalMode selects how vertex normals are produced.
type NormalMode int

const (
	// NormalsFlat writes the world up vector (0,1,0) for every vertex.
	// Lighting ignores slopes in this mode.
	NormalsFlat NormalMode = iota

	// NormalsComputed derives normals from the height field with central differences.
	NormalsComputed
)

// String returns the config spelling of the mode.
func (m NormalMode) String() string {
	switch m {
	case NormalsComputed:
		return "computed"
	default:
		return "flat"
	}
}

// ParseNormalMode parses "flat" or "computed".
func ParseNormalMode(s string) (NormalMode, bool) {
	switch s {
	case "", "flat":
		return NormalsFlat, true
	case "computed":
		return NormalsComputed, true
	}
	return NormalsFlat, false
}

// Options tune mesh generation. The zero value reproduces the classic layout:
// flat normals, stride 8.
type Options struct {
	Normals  NormalMode
	Tangents bool
}

// Stride returns the number of floats per vertex for these options.
func (o Options) Stride() int {
	if o.Tangents {
		return StrideTangents
	}
	return StrideBasic
}

// Mesh holds interleaved vertex data and triangle indices ready for GPU upload.
type Mesh struct {
	Vertices    []float32
	Indices     []uint32
	VertexCount int
	IndexCount  int
	Stride      int // floats per vertex
	Width       int // grid vertices along X
	Depth       int // grid vertices along Z
	Bounds      Bounds
}

// Position returns the position of vertex i.
func (m *Mesh) Position(i int) [3]float32 {
	o := i * m.Stride
	return [3]float32{m.Vertices[o], m.Vertices[o+1], m.Vertices[o+2]}
}

// Normal returns the normal of vertex i.
func (m *Mesh) Normal(i int) [3]float32 {
	o := i*m.Stride + 3
	return [3]float32{m.Vertices[o], m.Vertices[o+1], m.Vertices[o+2]}
}

// UV returns the texture coordinate of vertex i.
func (m *Mesh) UV(i int) [2]float32 {
	o := i*m.Stride + 6
	return [2]float32{m.Vertices[o], m.Vertices[o+1]}
}

// Bounds holds the axis-aligned bounding box of the terrain.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Center returns the midpoint of the box.
func (b Bounds) Center() [3]float32 {
	return [3]float32{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}
