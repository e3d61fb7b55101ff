// Package camera provides camera implementations for 3D rendering.
package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Movement is a keyboard-driven movement direction.
type Movement int

const (
	Forward Movement = iota
	Backward
	Left
	Right
	Up
	Down
)

// Zoom limits in degrees of vertical field of view.
const (
	MinZoom = 1.0
	MaxZoom = 45.0
)

// maxPitch keeps the view from flipping over the vertical.
const maxPitch = 89.0

// FlyCamera is a free-flying first-person camera driven by Euler angles.
type FlyCamera struct {
	Position mgl32.Vec3
	Front    mgl32.Vec3
	Up       mgl32.Vec3
	Right    mgl32.Vec3
	WorldUp  mgl32.Vec3

	Yaw   float32 // degrees, -90 looks down -Z
	Pitch float32 // degrees

	MovementSpeed    float32 // world units per second
	MouseSensitivity float32
	Zoom             float32 // vertical field of view in degrees
}

// NewFlyCamera creates a camera at position looking along yaw/pitch (degrees).
func NewFlyCamera(position mgl32.Vec3, yaw, pitch float32) *FlyCamera {
	c := &FlyCamera{
		Position:         position,
		WorldUp:          mgl32.Vec3{0, 1, 0},
		Yaw:              yaw,
		Pitch:            clampf(pitch, -maxPitch, maxPitch),
		MovementSpeed:    2.5,
		MouseSensitivity: 0.1,
		Zoom:             MaxZoom,
	}
	c.updateVectors()
	return c
}

// ViewMatrix returns the view matrix for this camera.
func (c *FlyCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front), c.Up)
}

// Eye returns the camera position in world space.
func (c *FlyCamera) Eye() mgl32.Vec3 {
	return c.Position
}

// FieldOfView returns the vertical field of view in degrees.
func (c *FlyCamera) FieldOfView() float32 {
	return c.Zoom
}

// ProcessKeyboard moves the camera along its own axes. dt is in seconds.
func (c *FlyCamera) ProcessKeyboard(dir Movement, dt float32) {
	velocity := c.MovementSpeed * dt
	switch dir {
	case Forward:
		c.Position = c.Position.Add(c.Front.Mul(velocity))
	case Backward:
		c.Position = c.Position.Sub(c.Front.Mul(velocity))
	case Left:
		c.Position = c.Position.Sub(c.Right.Mul(velocity))
	case Right:
		c.Position = c.Position.Add(c.Right.Mul(velocity))
	case Up:
		c.Position = c.Position.Add(c.WorldUp.Mul(velocity))
	case Down:
		c.Position = c.Position.Sub(c.WorldUp.Mul(velocity))
	}
}

// ProcessMouseMovement turns the camera by a mouse offset in pixels.
// yOffset is positive when the mouse moves up.
func (c *FlyCamera) ProcessMouseMovement(xOffset, yOffset float32) {
	c.Yaw += xOffset * c.MouseSensitivity
	c.Pitch = clampf(c.Pitch+yOffset*c.MouseSensitivity, -maxPitch, maxPitch)
	c.updateVectors()
}

// ProcessMouseScroll narrows or widens the field of view.
func (c *FlyCamera) ProcessMouseScroll(yOffset float32) {
	c.Zoom = clampf(c.Zoom-yOffset, MinZoom, MaxZoom)
}

func (c *FlyCamera) updateVectors() {
	yaw := mgl32.DegToRad(c.Yaw)
	pitch := mgl32.DegToRad(c.Pitch)

	c.Front = mgl32.Vec3{
		cos(yaw) * cos(pitch),
		sin(pitch),
		sin(yaw) * cos(pitch),
	}.Normalize()
	c.Right = c.Front.Cross(c.WorldUp).Normalize()
	c.Up = c.Right.Cross(c.Front).Normalize()
}

// Projection returns the perspective matrix for a viewer's current zoom.
func Projection(fovDegrees, aspect, near, far float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(fovDegrees), aspect, near, far)
}

func clampf(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
