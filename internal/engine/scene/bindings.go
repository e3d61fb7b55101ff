package scene

import (
	"errors"
	"fmt"
)

// TextureRole names a sampler the terrain program reads. The role's value is
// also its texture unit.
type TextureRole int

const (
	RoleHeightmap TextureRole = iota // mainTex
	RoleNormal                       // normalTex
	RoleDirt
	RoleSand
	RoleGrass
	RoleRock
	RoleSnow

	roleCount
)

var roleUniforms = [roleCount]string{
	RoleHeightmap: "mainTex",
	RoleNormal:    "normalTex",
	RoleDirt:      "dirt",
	RoleSand:      "sand",
	RoleGrass:     "grass",
	RoleRock:      "rock",
	RoleSnow:      "snow",
}

// Roles returns every texture role in unit order.
func Roles() []TextureRole {
	roles := make([]TextureRole, roleCount)
	for i := range roles {
		roles[i] = TextureRole(i)
	}
	return roles
}

// Uniform returns the sampler uniform name.
func (r TextureRole) Uniform() string {
	if r < 0 || r >= roleCount {
		return ""
	}
	return roleUniforms[r]
}

// Unit returns the texture unit the role is bound to.
func (r TextureRole) Unit() uint32 {
	return uint32(r)
}

func (r TextureRole) String() string {
	if u := r.Uniform(); u != "" {
		return u
	}
	return fmt.Sprintf("TextureRole(%d)", int(r))
}

// Matrix and vector uniforms set by the terrain renderer.
const (
	UniformWorld          = "world"
	UniformView           = "view"
	UniformProjection     = "projection"
	UniformLightDirection = "lightDirection"
	UniformLightPosition  = "lightPosition"
	UniformCameraPosition = "cameraPosition"
)

// UniformChecker reports whether a linked program has an active uniform.
type UniformChecker interface {
	Has(name string) bool
}

// ValidateBindings reports every texture role whose sampler is not active in p.
func ValidateBindings(p UniformChecker) error {
	var errs []error
	for _, r := range Roles() {
		if !p.Has(r.Uniform()) {
			errs = append(errs, fmt.Errorf("sampler %q (unit %d) is not active", r.Uniform(), r.Unit()))
		}
	}
	return errors.Join(errs...)
}
