// Package renderstate scopes GL capability changes to a single draw.
package renderstate

import "github.com/go-gl/gl/v4.1-core/gl"

// State is the set of fixed-function flags a renderer depends on.
type State struct {
	DepthTest bool
	CullFace  bool
	CullMode  uint32 // gl.BACK, gl.FRONT or gl.FRONT_AND_BACK
}

// Opaque is depth-tested geometry with back faces culled.
var Opaque = State{DepthTest: true, CullFace: true, CullMode: gl.BACK}

// Backend reads and writes capability flags.
type Backend interface {
	IsEnabled(capability uint32) bool
	Enable(capability uint32)
	Disable(capability uint32)
	CullFaceMode() uint32
	SetCullFaceMode(mode uint32)
}

// Guard restores the state captured by Push.
type Guard struct {
	backend  Backend
	previous State
	restored bool
}

// Capture reads the current state from backend.
func Capture(b Backend) State {
	return State{
		DepthTest: b.IsEnabled(gl.DEPTH_TEST),
		CullFace:  b.IsEnabled(gl.CULL_FACE),
		CullMode:  b.CullFaceMode(),
	}
}

// Apply writes s to backend.
func Apply(b Backend, s State) {
	set(b, gl.DEPTH_TEST, s.DepthTest)
	set(b, gl.CULL_FACE, s.CullFace)
	if s.CullMode != 0 {
		b.SetCullFaceMode(s.CullMode)
	}
}

// Push applies s and returns a guard that puts the previous state back.
//
//	g := renderstate.Push(backend, renderstate.Opaque)
//	defer g.Restore()
func Push(b Backend, s State) *Guard {
	g := &Guard{backend: b, previous: Capture(b)}
	Apply(b, s)
	return g
}

// Previous returns the state that Restore will apply.
func (g *Guard) Previous() State {
	return g.previous
}

// Restore applies the captured state. Calling it more than once is a no-op.
func (g *Guard) Restore() {
	if g == nil || g.restored {
		return
	}
	g.restored = true
	Apply(g.backend, g.previous)
}

func set(b Backend, capability uint32, on bool) {
	if on {
		b.Enable(capability)
	} else {
		b.Disable(capability)
	}
}
