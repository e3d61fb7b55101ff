package scene

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/heightfield/internal/engine/gpu"
	"github.com/Faultbox/heightfield/internal/engine/lighting"
	"github.com/Faultbox/heightfield/internal/engine/renderstate"
	"github.com/Faultbox/heightfield/internal/engine/shader"
	"github.com/Faultbox/heightfield/internal/engine/terrain"
	"github.com/Faultbox/heightfield/internal/engine/texture"
	"github.com/Faultbox/heightfield/internal/logger"
)

// Viewer is what the terrain needs from a camera.
type Viewer interface {
	ViewMatrix() mgl32.Mat4
	Eye() mgl32.Vec3
	FieldOfView() float32
}

// TerrainConfig holds mesh construction parameters.
type TerrainConfig struct {
	HeightScale float32 // world units for a full-white pixel
	XZScale     float32 // world units per grid cell
	Origin      mgl32.Vec3
	Options     terrain.Options
}

// DefaultTerrainConfig places a 100-unit-high terrain at (-500, -500, -500).
func DefaultTerrainConfig() TerrainConfig {
	return TerrainConfig{
		HeightScale: 100,
		XZScale:     1,
		Origin:      mgl32.Vec3{-500, -500, -500},
	}
}

// Terrain renders one heightmap mesh. It owns its GPU mesh and heightmap
// texture and borrows the program and the shared texture set.
type Terrain struct {
	cfg      TerrainConfig
	program  *shader.Program
	textures *TextureSet
	state    renderstate.Backend
	log      *zap.Logger

	heightmap *terrain.Heightmap
	bounds    terrain.Bounds
	mesh      *gpu.Mesh
	heightTex *texture.Texture

	warnedMissing [roleCount]bool
}

// NewTerrain creates a terrain with nothing loaded. Render is a no-op until Load succeeds.
func NewTerrain(program *shader.Program, textures *TextureSet, cfg TerrainConfig) *Terrain {
	if textures == nil {
		textures = &TextureSet{}
	}
	return &Terrain{
		cfg:      cfg,
		program:  program,
		textures: textures,
		state:    renderstate.GL{},
		log:      logger.Named("scene"),
	}
}

// Load builds the mesh from a decoded heightmap and uploads it. Previously
// loaded data is released first. On failure the terrain is left empty; the
// returned error wraps gpu.ErrOutOfMemory when the driver ran out of memory.
func (t *Terrain) Load(img *texture.Image) error {
	t.Release()

	hm, mesh, err := t.build(img)
	if err != nil {
		return fmt.Errorf("build terrain: %w", err)
	}

	layout, ok := gpu.LayoutFor(mesh.Stride)
	if !ok {
		return fmt.Errorf("build terrain: no vertex layout for stride %d", mesh.Stride)
	}
	gm, err := gpu.Upload(mesh.Vertices, mesh.Indices, layout)
	if err != nil {
		return fmt.Errorf("upload terrain: %w", err)
	}

	tex, err := texture.Upload(img, texture.DataParams)
	if err != nil {
		gm.Release()
		return fmt.Errorf("upload heightmap texture: %w", err)
	}

	t.heightmap = hm
	t.bounds = mesh.Bounds
	t.mesh = gm
	t.heightTex = tex

	t.log.Info("terrain loaded",
		zap.Int("width", mesh.Width),
		zap.Int("depth", mesh.Depth),
		zap.Int("vertices", mesh.VertexCount),
		zap.Int("indices", mesh.IndexCount),
		zap.Stringer("normals", t.cfg.Options.Normals),
	)
	return nil
}

// build is the CPU half of Load.
func (t *Terrain) build(img *texture.Image) (*terrain.Heightmap, *terrain.Mesh, error) {
	if img == nil {
		return nil, nil, terrain.ErrDecodeFailure
	}
	hm, err := terrain.NewHeightmap(img.Pix, img.Width, img.Height, img.Channels, t.cfg.HeightScale, t.cfg.XZScale)
	if err != nil {
		return nil, nil, err
	}
	return hm, hm.Mesh(t.cfg.Options), nil
}

// Renderable reports whether a mesh is loaded.
func (t *Terrain) Renderable() bool {
	return t.mesh != nil && !t.mesh.Released()
}

// World returns the model matrix placing the mesh at its origin.
func (t *Terrain) World() mgl32.Mat4 {
	return mgl32.Translate3D(t.cfg.Origin[0], t.cfg.Origin[1], t.cfg.Origin[2])
}

// Render draws the terrain with depth testing and back-face culling, restoring
// the previous capability state afterwards.
func (t *Terrain) Render(view Viewer, light lighting.Directional, projection mgl32.Mat4) {
	if !t.Renderable() {
		return
	}

	guard := renderstate.Push(t.state, renderstate.Opaque)
	defer guard.Restore()

	p := t.program
	p.Use()
	p.SetMat4(UniformWorld, t.World())
	p.SetMat4(UniformView, view.ViewMatrix())
	p.SetMat4(UniformProjection, projection)
	p.SetVec3(UniformLightDirection, light.Direction)
	p.SetVec3(UniformLightPosition, light.Direction)
	p.SetVec3(UniformCameraPosition, view.Eye())

	// Every unit is rebound so nothing left by another renderer is sampled.
	for _, role := range Roles() {
		if tex := t.textureFor(role); tex != nil {
			tex.Bind(role.Unit())
		} else {
			texture.Unbind(role.Unit())
		}
		p.SetInt(role.Uniform(), int32(role.Unit()))
	}

	if err := t.mesh.Draw(); err != nil {
		t.log.Warn("terrain draw skipped", zap.Error(err))
	}
}

// textureFor returns the texture bound for role, warning once per role when
// there is none.
func (t *Terrain) textureFor(role TextureRole) *texture.Texture {
	tex := t.heightTex
	if role != RoleHeightmap {
		tex = t.textures.For(role)
	}
	if tex == nil && !t.warnedMissing[role] {
		t.warnedMissing[role] = true
		t.log.Warn("no texture for role, unit left empty",
			zap.Stringer("role", role),
			zap.Uint32("unit", role.Unit()),
		)
	}
	return tex
}

// HeightAt returns the terrain surface height at a world-space position.
// ok is false outside the terrain or when nothing is loaded.
func (t *Terrain) HeightAt(worldX, worldZ float32) (height float32, ok bool) {
	if t.heightmap == nil {
		return 0, false
	}
	localX := worldX - t.cfg.Origin[0]
	localZ := worldZ - t.cfg.Origin[2]
	if !t.heightmap.Contains(localX, localZ) {
		return 0, false
	}
	return t.heightmap.HeightAt(localX, localZ) + t.cfg.Origin[1], true
}

// Bounds returns the world-space bounding box. ok is false when nothing is loaded.
func (t *Terrain) Bounds() (min, max mgl32.Vec3, ok bool) {
	if t.heightmap == nil {
		return min, max, false
	}
	min = mgl32.Vec3(t.bounds.Min).Add(t.cfg.Origin)
	max = mgl32.Vec3(t.bounds.Max).Add(t.cfg.Origin)
	return min, max, true
}

// Release frees the mesh and heightmap texture. Calling it again is a no-op.
func (t *Terrain) Release() {
	t.mesh.Release()
	t.mesh = nil
	t.heightTex.Delete()
	t.heightTex = nil
	t.heightmap = nil
	t.bounds = terrain.Bounds{}
}

// IsOutOfMemory reports whether err came from GPU memory exhaustion.
func IsOutOfMemory(err error) bool {
	return errors.Is(err, gpu.ErrOutOfMemory)
}
