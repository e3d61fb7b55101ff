package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-4

func near(a, b mgl32.Vec3) bool {
	return a.ApproxEqualThreshold(b, eps)
}

func TestFlyCameraDefaultAxes(t *testing.T) {
	c := NewFlyCamera(mgl32.Vec3{0, 0, 5}, -90, 0)

	if !near(c.Front, mgl32.Vec3{0, 0, -1}) {
		t.Errorf("front = %v, want (0,0,-1)", c.Front)
	}
	if !near(c.Right, mgl32.Vec3{1, 0, 0}) {
		t.Errorf("right = %v, want (1,0,0)", c.Right)
	}
	if !near(c.Up, mgl32.Vec3{0, 1, 0}) {
		t.Errorf("up = %v, want (0,1,0)", c.Up)
	}
}

func TestFlyCameraKeyboard(t *testing.T) {
	tests := []struct {
		dir  Movement
		want mgl32.Vec3
	}{
		{Forward, mgl32.Vec3{0, 0, -2}},
		{Backward, mgl32.Vec3{0, 0, 2}},
		{Left, mgl32.Vec3{-2, 0, 0}},
		{Right, mgl32.Vec3{2, 0, 0}},
		{Up, mgl32.Vec3{0, 2, 0}},
		{Down, mgl32.Vec3{0, -2, 0}},
	}

	for _, tt := range tests {
		c := NewFlyCamera(mgl32.Vec3{}, -90, 0)
		c.MovementSpeed = 4
		c.ProcessKeyboard(tt.dir, 0.5)
		if !near(c.Position, tt.want) {
			t.Errorf("direction %d: position = %v, want %v", tt.dir, c.Position, tt.want)
		}
	}
}

func TestFlyCameraPitchClamp(t *testing.T) {
	c := NewFlyCamera(mgl32.Vec3{}, -90, 0)
	c.ProcessMouseMovement(0, 10000)
	if c.Pitch != 89 {
		t.Errorf("pitch = %f, want 89", c.Pitch)
	}
	c.ProcessMouseMovement(0, -20000)
	if c.Pitch != -89 {
		t.Errorf("pitch = %f, want -89", c.Pitch)
	}

	// Looking almost straight down keeps a valid right vector.
	if l := c.Right.Len(); math.Abs(float64(l-1)) > eps {
		t.Errorf("|right| = %f, want 1", l)
	}
}

func TestFlyCameraYaw(t *testing.T) {
	c := NewFlyCamera(mgl32.Vec3{}, -90, 0)
	c.MouseSensitivity = 1
	c.ProcessMouseMovement(90, 0)

	if !near(c.Front, mgl32.Vec3{1, 0, 0}) {
		t.Errorf("front after +90 yaw = %v, want (1,0,0)", c.Front)
	}
}

func TestFlyCameraZoom(t *testing.T) {
	c := NewFlyCamera(mgl32.Vec3{}, -90, 0)

	c.ProcessMouseScroll(5)
	if c.Zoom != 40 {
		t.Errorf("zoom = %f, want 40", c.Zoom)
	}
	c.ProcessMouseScroll(100)
	if c.Zoom != MinZoom {
		t.Errorf("zoom = %f, want %f", c.Zoom, MinZoom)
	}
	c.ProcessMouseScroll(-100)
	if c.Zoom != MaxZoom {
		t.Errorf("zoom = %f, want %f", c.Zoom, MaxZoom)
	}
	if c.FieldOfView() != c.Zoom {
		t.Error("FieldOfView should report zoom")
	}
}

func TestFlyCameraViewMatrix(t *testing.T) {
	pos := mgl32.Vec3{3, 4, 5}
	c := NewFlyCamera(pos, 30, -20)

	eye := c.ViewMatrix().Mul4x1(pos.Vec4(1))
	if !near(eye.Vec3(), mgl32.Vec3{}) {
		t.Errorf("camera position in view space = %v, want origin", eye)
	}

	ahead := c.ViewMatrix().Mul4x1(pos.Add(c.Front).Vec4(1))
	if !near(ahead.Vec3(), mgl32.Vec3{0, 0, -1}) {
		t.Errorf("point ahead in view space = %v, want (0,0,-1)", ahead)
	}
}

func TestOrbitCameraEye(t *testing.T) {
	c := NewOrbitCamera()
	c.Center = mgl32.Vec3{10, 0, 10}
	c.Distance = 100
	c.RotationX = 0
	c.RotationY = 0

	if !near(c.Eye(), mgl32.Vec3{10, 0, 110}) {
		t.Errorf("eye = %v, want (10,0,110)", c.Eye())
	}
	if d := c.Eye().Sub(c.Center).Len(); math.Abs(float64(d-100)) > eps {
		t.Errorf("distance to center = %f, want 100", d)
	}
}

func TestOrbitCameraLimits(t *testing.T) {
	c := NewOrbitCamera()

	c.HandleZoom(1000)
	if c.Distance != c.MinDistance {
		t.Errorf("distance = %f, want min %f", c.Distance, c.MinDistance)
	}
	c.HandleDrag(0, 1e6)
	if c.RotationX != c.MaxPitch {
		t.Errorf("pitch = %f, want max %f", c.RotationX, c.MaxPitch)
	}
	c.HandleDrag(0, -1e6)
	if c.RotationX != c.MinPitch {
		t.Errorf("pitch = %f, want min %f", c.RotationX, c.MinPitch)
	}
}

func TestOrbitCameraFitToBounds(t *testing.T) {
	c := NewOrbitCamera()
	c.FitToBounds(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{100, 20, 50})

	if !near(c.Center, mgl32.Vec3{50, 10, 25}) {
		t.Errorf("center = %v, want (50,10,25)", c.Center)
	}
	if c.Distance != 80 {
		t.Errorf("distance = %f, want 80", c.Distance)
	}
}

func TestProjection(t *testing.T) {
	m := Projection(45, 16.0/9.0, 0.1, 100)
	if m[11] != -1 {
		t.Errorf("projection [11] = %f, want -1", m[11])
	}
	if m[15] != 0 {
		t.Errorf("projection [15] = %f, want 0", m[15])
	}

	// Invalid aspect falls back to square.
	sq := Projection(45, 0, 0.1, 100)
	if math.Abs(float64(sq[0]-sq[5])) > eps {
		t.Errorf("aspect fallback: m[0]=%f m[5]=%f", sq[0], sq[5])
	}
}
