package shader

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/heightfield/internal/logger"
)

// Program is a linked shader program with cached uniform locations.
// A uniform the linker dropped is reported once and then silently skipped.
type Program struct {
	id   uint32
	name string

	locations map[string]int32
	warned    map[string]bool
	lookup    func(name string) int32
	log       *zap.Logger
}

// New compiles and links a named program.
func New(name, vertexSrc, fragmentSrc string) (*Program, error) {
	id, err := CompileProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("%s program: %w", name, err)
	}

	p := newProgram(id, name, func(uniform string) int32 {
		return gl.GetUniformLocation(id, gl.Str(uniform+"\x00"))
	})
	p.log.Debug("program linked", zap.Uint32("id", id))
	return p, nil
}

func newProgram(id uint32, name string, lookup func(string) int32) *Program {
	return &Program{
		id:        id,
		name:      name,
		locations: make(map[string]int32),
		warned:    make(map[string]bool),
		lookup:    lookup,
		log:       logger.Named("shader").With(zap.String("program", name)),
	}
}

// ID returns the GL program handle.
func (p *Program) ID() uint32 { return p.id }

// Name returns the program name used in logs.
func (p *Program) Name() string { return p.name }

// Use makes the program current.
func (p *Program) Use() {
	gl.UseProgram(p.id)
}

// Has reports whether the uniform is active, without warning.
func (p *Program) Has(uniform string) bool {
	return p.cached(uniform) >= 0
}

// Location returns the uniform location, or -1 after warning once if it is not active.
func (p *Program) Location(uniform string) int32 {
	loc := p.cached(uniform)
	if loc < 0 && !p.warned[uniform] {
		p.warned[uniform] = true
		p.log.Warn("uniform not found", zap.String("uniform", uniform))
	}
	return loc
}

func (p *Program) cached(uniform string) int32 {
	loc, ok := p.locations[uniform]
	if !ok {
		loc = p.lookup(uniform)
		p.locations[uniform] = loc
	}
	return loc
}

// SetMat4 uploads a column-major 4x4 matrix.
func (p *Program) SetMat4(uniform string, m mgl32.Mat4) {
	if loc := p.Location(uniform); loc >= 0 {
		gl.UniformMatrix4fv(loc, 1, false, &m[0])
	}
}

// SetVec3 uploads a vec3.
func (p *Program) SetVec3(uniform string, v mgl32.Vec3) {
	if loc := p.Location(uniform); loc >= 0 {
		gl.Uniform3f(loc, v[0], v[1], v[2])
	}
}

// SetFloat uploads a float.
func (p *Program) SetFloat(uniform string, v float32) {
	if loc := p.Location(uniform); loc >= 0 {
		gl.Uniform1f(loc, v)
	}
}

// SetInt uploads an int, which is also how sampler units are assigned.
func (p *Program) SetInt(uniform string, v int32) {
	if loc := p.Location(uniform); loc >= 0 {
		gl.Uniform1i(loc, v)
	}
}

// Delete frees the GL program. Calling it again is a no-op.
func (p *Program) Delete() {
	if p == nil || p.id == 0 {
		return
	}
	gl.DeleteProgram(p.id)
	p.id = 0
}
