package terrain

import "math"

var (
	up    = [3]float32{0, 1, 0}
	unitX = [3]float32{1, 0, 0}
	unitZ = [3]float32{0, 0, 1}
)

// surfaceFrame returns normal, tangent and bitangent at grid (x, z) using
// central differences (one-sided on the border).
func (h *Heightmap) surfaceFrame(x, z int) (normal, tangent, bitangent [3]float32) {
	x0, x1 := clampi(x-1, 0, h.Width-1), clampi(x+1, 0, h.Width-1)
	z0, z1 := clampi(z-1, 0, h.Height-1), clampi(z+1, 0, h.Height-1)

	var dhdx, dhdz float32
	if run := float32(x1-x0) * h.XZScale; run != 0 {
		dhdx = (h.Sample(x1, z) - h.Sample(x0, z)) / run
	}
	if run := float32(z1-z0) * h.XZScale; run != 0 {
		dhdz = (h.Sample(x, z1) - h.Sample(x, z0)) / run
	}

	normal = normalize([3]float32{-dhdx, 1, -dhdz})
	tangent = normalize([3]float32{1, dhdx, 0})
	bitangent = normalize([3]float32{0, dhdz, 1})
	return normal, tangent, bitangent
}

func normalize(v [3]float32) [3]float32 {
	l := float32(math.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])))
	if l < 1e-6 {
		return up
	}
	return [3]float32{v[0] / l, v[1] / l, v[2] / l}
}
