// Package gpu owns GPU-resident vertex and index buffers.
package gpu

import (
	"fmt"

	"github.com/Faultbox/heightfield/internal/engine/terrain"
)

const floatSize = 4

// Attribute is one float vertex attribute inside an interleaved record.
type Attribute struct {
	Name     string
	Location uint32
	Size     int32 // component count
	Offset   int   // in floats from the start of the record
}

// Layout describes an interleaved vertex record.
type Layout struct {
	Stride     int // floats per vertex
	Attributes []Attribute
}

// TerrainLayout is position(3) normal(3) uv(2).
var TerrainLayout = Layout{
	Stride: terrain.StrideBasic,
	Attributes: []Attribute{
		{Name: "position", Location: 0, Size: 3, Offset: 0},
		{Name: "normal", Location: 1, Size: 3, Offset: 3},
		{Name: "uv", Location: 2, Size: 2, Offset: 6},
	},
}

// TerrainTangentLayout extends TerrainLayout with tangent(3) bitangent(3).
var TerrainTangentLayout = Layout{
	Stride: terrain.StrideTangents,
	Attributes: []Attribute{
		{Name: "position", Location: 0, Size: 3, Offset: 0},
		{Name: "normal", Location: 1, Size: 3, Offset: 3},
		{Name: "uv", Location: 2, Size: 2, Offset: 6},
		{Name: "tangent", Location: 3, Size: 3, Offset: 8},
		{Name: "bitangent", Location: 4, Size: 3, Offset: 11},
	},
}

// LayoutFor picks the terrain layout matching a vertex stride.
func LayoutFor(stride int) (Layout, bool) {
	switch stride {
	case terrain.StrideBasic:
		return TerrainLayout, true
	case terrain.StrideTangents:
		return TerrainTangentLayout, true
	}
	return Layout{}, false
}

// StrideBytes returns the record size in bytes.
func (l Layout) StrideBytes() int32 {
	return int32(l.Stride * floatSize)
}

// OffsetBytes returns the byte offset of a.
func (a Attribute) OffsetBytes() uintptr {
	return uintptr(a.Offset * floatSize)
}

// Validate checks that every attribute fits inside the record without overlap.
func (l Layout) Validate() error {
	if l.Stride <= 0 {
		return fmt.Errorf("layout stride %d must be positive", l.Stride)
	}
	used := make([]bool, l.Stride)
	for _, a := range l.Attributes {
		if a.Size < 1 || a.Size > 4 {
			return fmt.Errorf("attribute %s: size %d outside [1, 4]", a.Name, a.Size)
		}
		end := a.Offset + int(a.Size)
		if a.Offset < 0 || end > l.Stride {
			return fmt.Errorf("attribute %s: floats [%d, %d) outside stride %d", a.Name, a.Offset, end, l.Stride)
		}
		for i := a.Offset; i < end; i++ {
			if used[i] {
				return fmt.Errorf("attribute %s overlaps float %d", a.Name, i)
			}
			used[i] = true
		}
	}
	return nil
}
