// Package physics provides collision detection, distance and wraparound utilities.
package physics

import (
	"math"
	"math/rand/v2"
)

// Distance calculates the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// CirclesOverlap reports whether two circles overlap.
// Touching circles (distance == r1+r2) do not overlap.
func CirclesOverlap(x1, y1, r1, x2, y2, r2 float64) bool {
	minDist := r1 + r2
	return DistanceSquared(x1, y1, x2, y2) < minDist*minDist
}

// RandomRange returns a uniform random value in [lo, hi).
func RandomRange(r *rand.Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// RandomSign returns 1 or -1 with equal probability.
func RandomSign(r *rand.Rand) float64 {
	if r.Float64() < 0.5 {
		return 1
	}
	return -1
}

// Wrap bounds v into [-radius, size+radius] on a toroidal axis.
// A value past one bound re-enters at the opposite bound.
func Wrap(v, radius, size float64) float64 {
	switch {
	case v < -radius:
		return size + radius
	case v > size+radius:
		return -radius
	default:
		return v
	}
}

// Rotate transforms a local offset (dx, dy), given in a y-up frame, into screen
// coordinates: the offset is rotated by angle, scaled by scale and translated to
// (x, y). Screen y grows downward, so the rotated y component is subtracted.
func Rotate(x, y, dx, dy, angle, scale float64) (float64, float64) {
	sin, cos := math.Sincos(angle)
	return x + scale*(dx*cos-dy*sin), y - scale*(dx*sin+dy*cos)
}
