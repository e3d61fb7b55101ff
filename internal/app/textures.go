package app

import (
	"fmt"
	"image/color"

	"go.uber.org/zap"

	"github.com/Faultbox/heightfield/internal/assets"
	"github.com/Faultbox/heightfield/internal/config"
	"github.com/Faultbox/heightfield/internal/engine/scene"
	"github.com/Faultbox/heightfield/internal/engine/texture"
)

func newAssetManager(roots []string, log *zap.Logger) *assets.Manager {
	m := assets.NewManager()
	for _, root := range roots {
		if err := m.AddRoot(root); err != nil {
			log.Warn("skipping asset root", zap.String("root", root), zap.Error(err))
		}
	}
	return m
}

// texturePaths maps each shared texture role to its configured file.
func texturePaths(tc config.TerrainConfig) map[scene.TextureRole]string {
	return map[scene.TextureRole]string{
		scene.RoleNormal: tc.NormalMap,
		scene.RoleDirt:   tc.Biomes.Dirt,
		scene.RoleSand:   tc.Biomes.Sand,
		scene.RoleGrass:  tc.Biomes.Grass,
		scene.RoleRock:   tc.Biomes.Rock,
		scene.RoleSnow:   tc.Biomes.Snow,
	}
}

// loadTextureSet uploads the normal map and biome textures. A texture that
// cannot be loaded is replaced by a shared 1x1 texture of its role's fallback
// colour so the terrain still draws.
func (a *App) loadTextureSet() scene.TextureSet {
	var set scene.TextureSet
	fallbacks := make(map[color.NRGBA]*texture.Texture)

	paths := texturePaths(a.cfg.Terrain)
	for _, role := range scene.Roles() {
		path, ok := paths[role]
		if !ok {
			continue
		}

		params := texture.DetailParams
		if role == scene.RoleNormal {
			params = texture.DataParams
		}

		tex, err := a.loadTexture(path, params)
		if err != nil {
			a.log.Warn("using fallback texture", zap.Stringer("role", role), zap.Error(err))
			c := fallbackTexel(role)
			if fallbacks[c] == nil {
				fallbacks[c] = texture.Solid(c)
			}
			tex = fallbacks[c]
		}
		set.Set(role, tex)
	}
	return set
}

// fallbackTexel is the colour substituted for a role's missing texture. A
// missing normal map must not tilt the vertex normals.
func fallbackTexel(role scene.TextureRole) color.NRGBA {
	if role == scene.RoleNormal {
		return texture.FlatNormalTexel
	}
	return texture.WhiteTexel
}

func (a *App) loadTexture(path string, params texture.Params) (*texture.Texture, error) {
	if path == "" {
		return nil, fmt.Errorf("no file configured")
	}
	img, err := a.loadImage(path)
	if err != nil {
		return nil, err
	}
	return texture.Upload(img, params)
}

func (a *App) loadImage(path string) (*texture.Image, error) {
	data, err := a.assets.Load(path)
	if err != nil {
		return nil, err
	}
	return texture.DecodeNamed(path, data)
}
