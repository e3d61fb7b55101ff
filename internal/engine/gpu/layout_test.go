package gpu

import (
	"errors"
	"testing"

	"github.com/Faultbox/heightfield/internal/engine/terrain"
)

func TestTerrainLayouts(t *testing.T) {
	tests := []struct {
		name       string
		layout     Layout
		stride     int32
		attributes int
	}{
		{"basic", TerrainLayout, 32, 3},
		{"tangents", TerrainTangentLayout, 56, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.layout.Validate(); err != nil {
				t.Fatalf("Validate: %v", err)
			}
			if got := tt.layout.StrideBytes(); got != tt.stride {
				t.Errorf("StrideBytes = %d, want %d", got, tt.stride)
			}
			if len(tt.layout.Attributes) != tt.attributes {
				t.Errorf("attributes = %d, want %d", len(tt.layout.Attributes), tt.attributes)
			}

			// Locations are dense from zero and every float is covered.
			covered := 0
			for i, a := range tt.layout.Attributes {
				if a.Location != uint32(i) {
					t.Errorf("attribute %s at location %d, want %d", a.Name, a.Location, i)
				}
				covered += int(a.Size)
			}
			if covered != tt.layout.Stride {
				t.Errorf("attributes cover %d floats, stride is %d", covered, tt.layout.Stride)
			}
		})
	}
}

func TestAttributeOffsets(t *testing.T) {
	want := map[string]uintptr{
		"position":  0,
		"normal":    12,
		"uv":        24,
		"tangent":   32,
		"bitangent": 44,
	}
	for _, a := range TerrainTangentLayout.Attributes {
		if got := a.OffsetBytes(); got != want[a.Name] {
			t.Errorf("%s offset = %d, want %d", a.Name, got, want[a.Name])
		}
	}
}

func TestLayoutFor(t *testing.T) {
	if l, ok := LayoutFor(terrain.StrideBasic); !ok || l.Stride != terrain.StrideBasic {
		t.Errorf("LayoutFor(%d) = %v, %v", terrain.StrideBasic, l.Stride, ok)
	}
	if l, ok := LayoutFor(terrain.StrideTangents); !ok || l.Stride != terrain.StrideTangents {
		t.Errorf("LayoutFor(%d) = %v, %v", terrain.StrideTangents, l.Stride, ok)
	}
	if _, ok := LayoutFor(5); ok {
		t.Error("LayoutFor(5) should fail")
	}
}

func TestLayoutValidate(t *testing.T) {
	tests := []struct {
		name   string
		layout Layout
	}{
		{"zero stride", Layout{}},
		{"overflow", Layout{Stride: 4, Attributes: []Attribute{{Name: "p", Size: 3, Offset: 2}}}},
		{"overlap", Layout{Stride: 6, Attributes: []Attribute{
			{Name: "a", Size: 3, Offset: 0},
			{Name: "b", Location: 1, Size: 3, Offset: 2},
		}}},
		{"bad size", Layout{Stride: 8, Attributes: []Attribute{{Name: "p", Size: 5}}}},
		{"negative offset", Layout{Stride: 8, Attributes: []Attribute{{Name: "p", Size: 2, Offset: -1}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.layout.Validate(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

// Argument checks run before any GL call, so they work without a context.
func TestUploadRejectsEmpty(t *testing.T) {
	tests := []struct {
		name     string
		vertices []float32
		indices  []uint32
	}{
		{"no vertices", nil, []uint32{0, 1, 2}},
		{"no indices", make([]float32, 8), nil},
		{"both empty", []float32{}, []uint32{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Upload(tt.vertices, tt.indices, TerrainLayout)
			if !errors.Is(err, ErrEmptyMesh) {
				t.Errorf("err = %v, want ErrEmptyMesh", err)
			}
			if m != nil {
				t.Error("mesh returned on error")
			}
		})
	}
}

func TestUploadRejectsPartialRecord(t *testing.T) {
	if _, err := Upload(make([]float32, 12), []uint32{0}, TerrainLayout); err == nil {
		t.Error("expected stride error")
	}
}

func TestReleasedMesh(t *testing.T) {
	m := &Mesh{indexCount: 6}
	m.Release()
	m.Release()

	if !m.Released() {
		t.Fatal("Released() = false after Release")
	}
	if err := m.Bind(); !errors.Is(err, ErrReleased) {
		t.Errorf("Bind after release: %v, want ErrReleased", err)
	}
	if err := m.Draw(); !errors.Is(err, ErrReleased) {
		t.Errorf("Draw after release: %v, want ErrReleased", err)
	}

	var nilMesh *Mesh
	nilMesh.Release()
	if !nilMesh.Released() {
		t.Error("nil mesh should report released")
	}
	if err := nilMesh.Draw(); !errors.Is(err, ErrReleased) {
		t.Errorf("Draw on nil mesh: %v, want ErrReleased", err)
	}
}
