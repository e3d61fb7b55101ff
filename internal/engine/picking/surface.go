package picking

// HeightFunc reports the surface height at a world XZ position. ok is false
// where there is no surface.
type HeightFunc func(x, z float32) (height float32, ok bool)

const refineSteps = 16

// IntersectSurface marches the ray through box in increments of step until it
// passes below the surface, then bisects between the last two samples.
// box should enclose the surface.
func (r Ray) IntersectSurface(box AABB, step float32, heightAt HeightFunc) (t float32, hit bool) {
	if step <= 0 {
		return 0, false
	}
	tmin, tmax, ok := r.slabs(box)
	if !ok {
		return 0, false
	}
	start := max(tmin, 0)

	if r.below(start, heightAt) {
		return start, true
	}
	for prev := start; prev < tmax; {
		cur := min(prev+step, tmax)
		if cur <= prev {
			break
		}
		if r.below(cur, heightAt) {
			return r.bisect(prev, cur, heightAt), true
		}
		prev = cur
	}
	return 0, false
}

func (r Ray) below(t float32, heightAt HeightFunc) bool {
	p := r.At(t)
	h, ok := heightAt(p[0], p[2])
	return ok && p[1] <= h
}

// bisect narrows a crossing between lo (above) and hi (below).
func (r Ray) bisect(lo, hi float32, heightAt HeightFunc) float32 {
	for i := 0; i < refineSteps; i++ {
		mid := (lo + hi) / 2
		if r.below(mid, heightAt) {
			hi = mid
		} else {
			lo = mid
		}
	}
	return hi
}
