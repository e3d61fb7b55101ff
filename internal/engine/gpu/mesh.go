package gpu

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/heightfield/internal/logger"
)

var (
	// ErrEmptyMesh is returned when there is nothing to upload.
	ErrEmptyMesh = errors.New("gpu: empty mesh")
	// ErrOutOfMemory is returned when the driver cannot allocate buffer storage.
	ErrOutOfMemory = errors.New("gpu: out of memory")
	// ErrReleased is returned by Bind and Draw after Release.
	ErrReleased = errors.New("gpu: mesh released")
)

// Mesh is a static indexed triangle list stored in a VAO with its VBO and EBO.
type Mesh struct {
	vao uint32
	vbo uint32
	ebo uint32

	layout      Layout
	vertexCount int
	indexCount  int32
	released    bool
}

// Upload copies interleaved vertices and indices into new GPU buffers.
// Must be called with a current GL context.
func Upload(vertices []float32, indices []uint32, layout Layout) (*Mesh, error) {
	if len(vertices) == 0 || len(indices) == 0 {
		return nil, ErrEmptyMesh
	}
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	if len(vertices)%layout.Stride != 0 {
		return nil, fmt.Errorf("gpu: %d floats is not a multiple of stride %d", len(vertices), layout.Stride)
	}

	drainErrors()

	m := &Mesh{
		layout:      layout,
		vertexCount: len(vertices) / layout.Stride,
		indexCount:  int32(len(indices)),
	}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*floatSize, gl.Ptr(vertices), gl.STATIC_DRAW)

	for _, a := range layout.Attributes {
		gl.VertexAttribPointerWithOffset(a.Location, a.Size, gl.FLOAT, false, layout.StrideBytes(), a.OffsetBytes())
		gl.EnableVertexAttribArray(a.Location)
	}

	// The element binding is VAO state, so it stays bound with the VAO.
	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		m.Release()
		if code == gl.OUT_OF_MEMORY {
			return nil, ErrOutOfMemory
		}
		return nil, fmt.Errorf("gpu: upload failed with GL error 0x%04x", code)
	}

	logger.Named("gpu").Debug("mesh uploaded",
		zap.Uint32("vao", m.vao),
		zap.Int("vertices", m.vertexCount),
		zap.Int32("indices", m.indexCount),
		zap.Int("stride", layout.Stride),
	)
	return m, nil
}

// Bind makes the mesh's VAO current.
func (m *Mesh) Bind() error {
	if m.Released() {
		return ErrReleased
	}
	gl.BindVertexArray(m.vao)
	return nil
}

// Draw issues one indexed draw over the whole index buffer.
func (m *Mesh) Draw() error {
	if err := m.Bind(); err != nil {
		return err
	}
	gl.DrawElements(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
	return nil
}

// Release deletes the GPU buffers. Calling it again is a no-op.
func (m *Mesh) Release() {
	if m == nil || m.released {
		return
	}
	m.released = true

	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		m.vao = 0
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
		m.vbo = 0
	}
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
		m.ebo = 0
	}
}

// Released reports whether Release has been called. A nil mesh counts as released.
func (m *Mesh) Released() bool { return m == nil || m.released }

// IndexCount returns the number of indices drawn by Draw.
func (m *Mesh) IndexCount() int32 { return m.indexCount }

// VertexCount returns the number of vertex records uploaded.
func (m *Mesh) VertexCount() int { return m.vertexCount }

// Layout returns the attribute layout the mesh was uploaded with.
func (m *Mesh) Layout() Layout { return m.layout }

// drainErrors clears errors left by earlier calls so the post-upload check only sees ours.
func drainErrors() {
	for i := 0; i < 16; i++ {
		if gl.GetError() == gl.NO_ERROR {
			return
		}
	}
}
