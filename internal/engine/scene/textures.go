package scene

import "github.com/Faultbox/heightfield/internal/engine/texture"

// TextureSet holds the shared textures sampled by the terrain. The heightmap
// texture is not part of the set because the terrain creates it.
type TextureSet struct {
	Normal *texture.Texture
	Dirt   *texture.Texture
	Sand   *texture.Texture
	Grass  *texture.Texture
	Rock   *texture.Texture
	Snow   *texture.Texture
}

// For returns the texture bound to role, or nil.
func (s *TextureSet) For(role TextureRole) *texture.Texture {
	switch role {
	case RoleNormal:
		return s.Normal
	case RoleDirt:
		return s.Dirt
	case RoleSand:
		return s.Sand
	case RoleGrass:
		return s.Grass
	case RoleRock:
		return s.Rock
	case RoleSnow:
		return s.Snow
	}
	return nil
}

// Set stores tex under role. The heightmap role is ignored.
func (s *TextureSet) Set(role TextureRole, tex *texture.Texture) {
	switch role {
	case RoleNormal:
		s.Normal = tex
	case RoleDirt:
		s.Dirt = tex
	case RoleSand:
		s.Sand = tex
	case RoleGrass:
		s.Grass = tex
	case RoleRock:
		s.Rock = tex
	case RoleSnow:
		s.Snow = tex
	}
}

// Delete frees every texture in the set. Shared textures appear only once.
func (s *TextureSet) Delete() {
	seen := make(map[*texture.Texture]bool)
	for _, r := range Roles() {
		tex := s.For(r)
		if tex == nil || seen[tex] {
			continue
		}
		seen[tex] = true
		tex.Delete()
	}
	*s = TextureSet{}
}
