// Package scene renders a heightmap terrain lit by a directional light.
package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/heightfield/internal/engine/lighting"
	"github.com/Faultbox/heightfield/internal/engine/scene/shaders"
	"github.com/Faultbox/heightfield/internal/engine/shader"
	"github.com/Faultbox/heightfield/internal/engine/texture"
	"github.com/Faultbox/heightfield/internal/logger"
)

// Config contains scene configuration options.
type Config struct {
	Terrain TerrainConfig
	Light   lighting.Directional

	// Shader sources; empty means the embedded terrain shaders.
	VertexSource   string
	FragmentSource string
}

// DefaultConfig returns a default scene configuration.
func DefaultConfig() Config {
	return Config{
		Terrain: DefaultTerrainConfig(),
		Light:   lighting.NewDirectional(mgl32.Vec3{-0.5, -1, -0.5}),
	}
}

// Scene owns the terrain program, the shared texture set and the terrain.
type Scene struct {
	Light    lighting.Directional
	Textures TextureSet

	program *shader.Program
	terrain *Terrain
	log     *zap.Logger
}

// New compiles the terrain program and takes ownership of textures.
// Must be called with a current GL context.
func New(cfg Config, textures TextureSet) (*Scene, error) {
	vs, fs := cfg.VertexSource, cfg.FragmentSource
	if vs == "" {
		vs = shaders.TerrainVertexShader
	}
	if fs == "" {
		fs = shaders.TerrainFragmentShader
	}

	program, err := shader.New("terrain", vs, fs)
	if err != nil {
		textures.Delete()
		return nil, fmt.Errorf("creating terrain program: %w", err)
	}

	s := &Scene{
		Light:    cfg.Light,
		Textures: textures,
		program:  program,
		log:      logger.Named("scene"),
	}
	if err := ValidateBindings(program); err != nil {
		s.log.Warn("terrain program is missing samplers", zap.Error(err))
	}
	s.terrain = NewTerrain(program, &s.Textures, cfg.Terrain)
	return s, nil
}

// LoadTerrain replaces the terrain mesh with one built from img.
func (s *Scene) LoadTerrain(img *texture.Image) error {
	return s.terrain.Load(img)
}

// Terrain returns the scene's terrain.
func (s *Scene) Terrain() *Terrain {
	return s.terrain
}

// Render draws the scene from view.
func (s *Scene) Render(view Viewer, projection mgl32.Mat4) {
	s.terrain.Render(view, s.Light, projection)
}

// Destroy releases all resources.
func (s *Scene) Destroy() {
	if s.terrain != nil {
		s.terrain.Release()
	}
	s.Textures.Delete()
	s.program.Delete()
}
