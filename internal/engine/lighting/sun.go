// Package lighting provides lighting utilities for 3D rendering.
package lighting

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Directional is a light infinitely far away. Direction points from the light
// into the scene and is always unit length.
type Directional struct {
	Direction mgl32.Vec3
}

// straightDown is used when a light is configured with a zero vector.
var straightDown = mgl32.Vec3{0, -1, 0}

// NewDirectional normalizes dir into a directional light.
func NewDirectional(dir mgl32.Vec3) Directional {
	if dir.Len() < 1e-6 {
		return Directional{Direction: straightDown}
	}
	return Directional{Direction: dir.Normalize()}
}

// Sun returns the light cast by a sun at the given angles in degrees.
func Sun(longitude, latitude float32) Directional {
	return NewDirectional(SunDirection(longitude, latitude).Mul(-1))
}

// SunDirection converts longitude/latitude angles in degrees to a unit vector
// pointing towards the sun. Longitude rotates around Y, latitude is the
// elevation above the horizon.
func SunDirection(longitude, latitude float32) mgl32.Vec3 {
	lonRad := float64(mgl32.DegToRad(longitude))
	latRad := float64(mgl32.DegToRad(latitude))

	return mgl32.Vec3{
		float32(math.Cos(latRad) * math.Sin(lonRad)),
		float32(math.Sin(latRad)),
		float32(math.Cos(latRad) * math.Cos(lonRad)),
	}
}
