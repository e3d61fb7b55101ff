package app

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/heightfield/internal/engine/camera"
	"github.com/Faultbox/heightfield/internal/engine/picking"
)

// surface is the part of the terrain picking needs.
type surface interface {
	HeightAt(worldX, worldZ float32) (float32, bool)
	Bounds() (min, max mgl32.Vec3, ok bool)
}

// pickStep is the ray-march increment in world units.
const pickStep = 0.5

// pickSurface casts a ray through the pixel at (x, y) of a viewport w by h
// and returns the first point where it meets the surface.
func pickSurface(s surface, view, projection mgl32.Mat4, x, y, w, h float32) (mgl32.Vec3, bool) {
	lo, hi, ok := s.Bounds()
	if !ok || w <= 0 || h <= 0 {
		return mgl32.Vec3{}, false
	}
	ray := picking.ScreenToRay(x, y, w, h, projection.Mul4(view).Inv())
	t, hit := ray.IntersectSurface(picking.NewAABB(lo, hi), pickStep, s.HeightAt)
	if !hit {
		return mgl32.Vec3{}, false
	}
	return ray.At(t), true
}

// pick logs the terrain point under the cursor. Mouse coordinates are in
// window units.
func (a *App) pick(mouseX, mouseY int) {
	w, h := a.window.LogicalSize()
	g := a.cfg.Graphics
	projection := camera.Projection(a.camera.FieldOfView(), a.render.Aspect(), g.Near, g.Far)

	p, ok := pickSurface(a.scene.Terrain(), a.camera.ViewMatrix(), projection,
		float32(mouseX), float32(mouseY), float32(w), float32(h))
	if !ok {
		a.log.Info("nothing under cursor", zap.Int("x", mouseX), zap.Int("y", mouseY))
		return
	}
	a.log.Info("terrain picked",
		zap.Float32("x", p[0]),
		zap.Float32("y", p[1]),
		zap.Float32("z", p[2]),
	)
}
