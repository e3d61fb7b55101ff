package renderstate

import "github.com/go-gl/gl/v4.1-core/gl"

// GL is the Backend for the current OpenGL context.
type GL struct{}

func (GL) IsEnabled(capability uint32) bool { return gl.IsEnabled(capability) }
func (GL) Enable(capability uint32)         { gl.Enable(capability) }
func (GL) Disable(capability uint32)        { gl.Disable(capability) }

func (GL) CullFaceMode() uint32 {
	var mode int32
	gl.GetIntegerv(gl.CULL_FACE_MODE, &mode)
	return uint32(mode)
}

func (GL) SetCullFaceMode(mode uint32) { gl.CullFace(mode) }
