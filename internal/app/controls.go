package app

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/heightfield/internal/engine/camera"
	"github.com/Faultbox/heightfield/internal/engine/scene"
)

// controls is the per-frame input a camera controller reads.
type controls interface {
	IsKeyDown(key sdl.Scancode) bool
	MouseDelta() (dx, dy int)
	Wheel() float32
}

// controller drives a camera from input.
type controller interface {
	scene.Viewer
	update(in controls, dt float32)
}

var flyKeys = []struct {
	key sdl.Scancode
	dir camera.Movement
}{
	{sdl.SCANCODE_W, camera.Forward},
	{sdl.SCANCODE_S, camera.Backward},
	{sdl.SCANCODE_A, camera.Left},
	{sdl.SCANCODE_D, camera.Right},
	{sdl.SCANCODE_SPACE, camera.Up},
	{sdl.SCANCODE_LSHIFT, camera.Down},
}

// heightFunc returns the ground height under a world XZ position.
type heightFunc func(x, z float32) (float32, bool)

type flyController struct {
	*camera.FlyCamera

	follow    heightFunc // nil disables terrain following
	eyeHeight float32
}

func (c *flyController) update(in controls, dt float32) {
	for _, k := range flyKeys {
		if in.IsKeyDown(k.key) {
			c.ProcessKeyboard(k.dir, dt)
		}
	}

	// Screen Y grows downwards; pitch grows upwards.
	if dx, dy := in.MouseDelta(); dx != 0 || dy != 0 {
		c.ProcessMouseMovement(float32(dx), float32(-dy))
	}
	if w := in.Wheel(); w != 0 {
		c.ProcessMouseScroll(w)
	}

	if c.follow != nil {
		if ground, ok := c.follow(c.Position.X(), c.Position.Z()); ok {
			c.Position = keepAbove(c.Position, ground+c.eyeHeight)
		}
	}
}

// keepAbove lifts p so it is no lower than minY.
func keepAbove(p mgl32.Vec3, minY float32) mgl32.Vec3 {
	if p.Y() < minY {
		p[1] = minY
	}
	return p
}

type orbitController struct {
	*camera.OrbitCamera
}

func (c *orbitController) update(in controls, dt float32) {
	var forward, right, up float32
	if in.IsKeyDown(sdl.SCANCODE_W) {
		forward++
	}
	if in.IsKeyDown(sdl.SCANCODE_S) {
		forward--
	}
	if in.IsKeyDown(sdl.SCANCODE_D) {
		right++
	}
	if in.IsKeyDown(sdl.SCANCODE_A) {
		right--
	}
	if in.IsKeyDown(sdl.SCANCODE_SPACE) {
		up++
	}
	if in.IsKeyDown(sdl.SCANCODE_LSHIFT) {
		up--
	}
	if forward != 0 || right != 0 || up != 0 {
		// HandleMovement is tuned for one step per frame at 60 Hz.
		scale := dt * 60
		c.HandleMovement(forward*scale, right*scale, up*scale)
	}

	if dx, dy := in.MouseDelta(); dx != 0 || dy != 0 {
		c.HandleDrag(float32(dx), float32(dy))
	}
	if w := in.Wheel(); w != 0 {
		c.HandleZoom(w)
	}
}
