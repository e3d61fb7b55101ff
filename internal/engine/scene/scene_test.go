package scene

import (
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/heightfield/internal/engine/lighting"
	"github.com/Faultbox/heightfield/internal/engine/scene/shaders"
	"github.com/Faultbox/heightfield/internal/engine/terrain"
	"github.com/Faultbox/heightfield/internal/engine/texture"
)

func TestTextureRoleTable(t *testing.T) {
	want := []struct {
		role    TextureRole
		uniform string
		unit    uint32
	}{
		{RoleHeightmap, "mainTex", 0},
		{RoleNormal, "normalTex", 1},
		{RoleDirt, "dirt", 2},
		{RoleSand, "sand", 3},
		{RoleGrass, "grass", 4},
		{RoleRock, "rock", 5},
		{RoleSnow, "snow", 6},
	}

	roles := Roles()
	if len(roles) != len(want) {
		t.Fatalf("Roles() has %d entries, want %d", len(roles), len(want))
	}
	for i, w := range want {
		if roles[i] != w.role {
			t.Errorf("Roles()[%d] = %v, want %v", i, roles[i], w.role)
		}
		if got := w.role.Uniform(); got != w.uniform {
			t.Errorf("%v.Uniform() = %q, want %q", w.role, got, w.uniform)
		}
		if got := w.role.Unit(); got != w.unit {
			t.Errorf("%v.Unit() = %d, want %d", w.role, got, w.unit)
		}
	}

	if got := TextureRole(42).String(); got != "TextureRole(42)" {
		t.Errorf("String() of unknown role = %q", got)
	}
}

type uniformSet map[string]bool

func (u uniformSet) Has(name string) bool { return u[name] }

func TestValidateBindings(t *testing.T) {
	all := uniformSet{}
	for _, r := range Roles() {
		all[r.Uniform()] = true
	}
	if err := ValidateBindings(all); err != nil {
		t.Errorf("all samplers active: %v", err)
	}

	delete(all, "rock")
	delete(all, "normalTex")
	err := ValidateBindings(all)
	if err == nil {
		t.Fatal("expected error for missing samplers")
	}
	for _, name := range []string{`"rock"`, `"normalTex"`} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error %q does not mention %s", err, name)
		}
	}
}

// The embedded shaders must declare every uniform the renderer sets, or the
// linker would drop them and the renderer would warn at runtime.
func TestEmbeddedShadersDeclareUniforms(t *testing.T) {
	src := shaders.TerrainVertexShader + shaders.TerrainFragmentShader

	for _, r := range Roles() {
		re := regexp.MustCompile(`uniform\s+sampler2D\s+` + r.Uniform() + `\s*;`)
		if !re.MatchString(shaders.TerrainFragmentShader) {
			t.Errorf("fragment shader does not declare sampler %s", r.Uniform())
		}
	}
	for _, name := range []string{UniformWorld, UniformView, UniformProjection} {
		if !regexp.MustCompile(`uniform\s+mat4\s+` + name + `\s*;`).MatchString(src) {
			t.Errorf("shaders do not declare mat4 %s", name)
		}
	}
	for _, name := range []string{UniformLightDirection, UniformLightPosition, UniformCameraPosition} {
		if !regexp.MustCompile(`uniform\s+vec3\s+` + name + `\s*;`).MatchString(src) {
			t.Errorf("shaders do not declare vec3 %s", name)
		}
	}
	if !strings.HasPrefix(shaders.TerrainVertexShader, "#version 410 core") {
		t.Error("vertex shader must target GLSL 410 core")
	}
}

func TestTextureSet(t *testing.T) {
	var set TextureSet
	rock := &texture.Texture{}
	set.Set(RoleRock, rock)
	set.Set(RoleHeightmap, &texture.Texture{})

	if set.For(RoleRock) != rock {
		t.Error("For(RoleRock) did not return the stored texture")
	}
	if set.For(RoleHeightmap) != nil {
		t.Error("heightmap role must not be stored in the shared set")
	}

	// Zero IDs never reach GL.
	set.Delete()
	if set.For(RoleRock) != nil {
		t.Error("Delete did not clear the set")
	}
}

type fixedViewer struct{}

func (fixedViewer) ViewMatrix() mgl32.Mat4 { return mgl32.Ident4() }
func (fixedViewer) Eye() mgl32.Vec3        { return mgl32.Vec3{} }
func (fixedViewer) FieldOfView() float32   { return 45 }

func TestTerrainNotRenderable(t *testing.T) {
	tr := NewTerrain(nil, nil, DefaultTerrainConfig())

	if tr.Renderable() {
		t.Fatal("new terrain should not be renderable")
	}
	// Without a mesh Render returns before any GL call.
	tr.Render(fixedViewer{}, lighting.NewDirectional(mgl32.Vec3{0, -1, 0}), mgl32.Ident4())

	if _, ok := tr.HeightAt(0, 0); ok {
		t.Error("HeightAt should fail without a heightmap")
	}
	if _, _, ok := tr.Bounds(); ok {
		t.Error("Bounds should fail without a heightmap")
	}
	tr.Release()
	tr.Release()
}

func TestTerrainBuildErrors(t *testing.T) {
	tr := NewTerrain(nil, nil, DefaultTerrainConfig())

	tests := []struct {
		name string
		img  *texture.Image
		want error
	}{
		{"nil image", nil, terrain.ErrDecodeFailure},
		{"empty pixels", &texture.Image{Width: 4, Height: 4, Channels: 4}, terrain.ErrDecodeFailure},
		{"single row", &texture.Image{Pix: make([]byte, 16), Width: 4, Height: 1, Channels: 4}, terrain.ErrInvalidDimensions},
		{"short buffer", &texture.Image{Pix: make([]byte, 10), Width: 2, Height: 2, Channels: 4}, terrain.ErrShortPixelBuffer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Load fails in the CPU build step, so no context is needed.
			err := tr.Load(tt.img)
			if !errors.Is(err, tt.want) {
				t.Errorf("Load error = %v, want %v", err, tt.want)
			}
			if tr.Renderable() {
				t.Error("terrain renderable after failed load")
			}
		})
	}
}

func TestTerrainWorldMatrix(t *testing.T) {
	tr := NewTerrain(nil, nil, DefaultTerrainConfig())

	got := tr.World().Mul4x1(mgl32.Vec4{1, 2, 3, 1})
	want := mgl32.Vec4{-499, -498, -497, 1}
	if !got.ApproxEqual(want) {
		t.Errorf("world * (1,2,3) = %v, want %v", got, want)
	}
}

func TestTerrainHeightAtWorld(t *testing.T) {
	cfg := TerrainConfig{
		HeightScale: 255,
		XZScale:     2,
		Origin:      mgl32.Vec3{-10, 5, -20},
	}
	tr := NewTerrain(nil, nil, cfg)

	// 2x2 RGBA: heights 0, 100 on the first row, 50, 150 on the second.
	img := &texture.Image{
		Pix: []byte{
			0, 0, 0, 255, 100, 0, 0, 255,
			50, 0, 0, 255, 150, 0, 0, 255,
		},
		Width: 2, Height: 2, Channels: 4,
	}
	hm, mesh, err := tr.build(img)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	tr.heightmap = hm
	tr.bounds = mesh.Bounds

	tests := []struct {
		x, z float32
		want float32
	}{
		{-10, -20, 5},  // local (0,0)
		{-8, -20, 105}, // local (2,0)
		{-10, -18, 55}, // local (0,2)
		{-9, -19, 80},  // cell centre
		{-8, -18, 155}, // far corner
	}
	for _, tt := range tests {
		got, ok := tr.HeightAt(tt.x, tt.z)
		if !ok {
			t.Errorf("HeightAt(%g, %g) reported outside", tt.x, tt.z)
			continue
		}
		if diff := got - tt.want; diff > 1e-3 || diff < -1e-3 {
			t.Errorf("HeightAt(%g, %g) = %g, want %g", tt.x, tt.z, got, tt.want)
		}
	}

	if _, ok := tr.HeightAt(-11, -20); ok {
		t.Error("point west of the terrain reported inside")
	}
	if _, ok := tr.HeightAt(-10, -17); ok {
		t.Error("point south of the terrain reported inside")
	}

	min, max, ok := tr.Bounds()
	if !ok {
		t.Fatal("Bounds failed")
	}
	if !min.ApproxEqual(mgl32.Vec3{-10, 5, -20}) || !max.ApproxEqual(mgl32.Vec3{-8, 155, -18}) {
		t.Errorf("Bounds = %v..%v", min, max)
	}
}
