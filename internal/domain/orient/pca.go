package orient

import (
	"math"

	"github.com/wikimol/wikimolgen/internal/domain/molgraph"
)

// Principal-axis analysis.  Covariance matrices of atom coordinates are
// always symmetric, so the eigenproblems here are solved in closed form with
// a fixed sign convention instead of a general eigensolver: generic routines
// return eigenvectors with an arbitrary overall sign, and near-equal
// eigenvalues can swap order under floating-point noise, which would make
// alignment angles flap between runs.

// degenerateVariance is the threshold below which a point set is treated as
// zero-variance (single atom, or all atoms coincident).
const degenerateVariance = 1e-12

// PlanarAlignmentAngle computes the rotation, in radians within [0, 2π),
// that brings the dominant spatial axis of a 2D point set onto the
// horizontal.  Degenerate input (empty, single point, zero variance) yields 0.
func PlanarAlignmentAngle(pos []molgraph.Vec2) float64 {
	if len(pos) < 2 {
		return 0
	}

	c := molgraph.Centroid2D(pos)
	var xx, xy, yy float64
	for _, p := range pos {
		dx, dy := p.X-c.X, p.Y-c.Y
		xx += dx * dx
		xy += dx * dy
		yy += dy * dy
	}
	n := float64(len(pos))
	xx, xy, yy = xx/n, xy/n, yy/n

	if xx < degenerateVariance && yy < degenerateVariance {
		return 0
	}

	vx, vy := dominantAxis2(xx, xy, yy)
	angle := math.Atan2(vy, vx)

	// Rotate the dominant axis onto the horizontal.
	return normalizeAngle(-angle)
}

// dominantAxis2 returns the eigenvector of the larger eigenvalue of the
// symmetric matrix [[xx, xy], [xy, yy]], with the sign convention that the
// larger-magnitude component is positive.
func dominantAxis2(xx, xy, yy float64) (float64, float64) {
	tr := xx + yy
	det := xx*yy - xy*xy
	disc := math.Sqrt(math.Max(0, tr*tr/4-det))
	lambda := tr/2 + disc

	var vx, vy float64
	if math.Abs(xy) > degenerateVariance {
		// (A - λI)v = 0 → v ∝ (xy, λ - xx) or (λ - yy, xy); pick the bigger.
		vx, vy = xy, lambda-xx
		if ax, ay := lambda-yy, xy; ax*ax+ay*ay > vx*vx+vy*vy {
			vx, vy = ax, ay
		}
	} else if xx >= yy {
		vx, vy = 1, 0
	} else {
		vx, vy = 0, 1
	}

	norm := math.Hypot(vx, vy)
	vx, vy = vx/norm, vy/norm
	return fixSign2(vx, vy)
}

// fixSign2 forces the larger-magnitude component positive; ties resolve on X.
func fixSign2(vx, vy float64) (float64, float64) {
	if math.Abs(vx) >= math.Abs(vy) {
		if vx < 0 {
			return -vx, -vy
		}
	} else if vy < 0 {
		return -vx, -vy
	}
	return vx, vy
}

// SpatialAlignmentAngles computes Euler-style rotation angles, in degrees,
// that align a 3D point set's dominant axis with the x-axis for a clear
// framing, plus the configured artistic tilt on the x and y angles.  The
// angles are meant to be applied as sequential axis rotations: x, then y,
// then z.  Degenerate input yields only the tilt offsets.
func SpatialAlignmentAngles(pos []molgraph.Vec3, opts Options) (xDeg, yDeg, zDeg float64) {
	if len(pos) < 2 {
		return opts.TiltXDeg, opts.TiltYDeg, 0
	}

	cov := covariance3(pos)
	_, v1 := symmetricEigen3(cov)

	// Align v1 with the x-axis: yaw about z, pitch about y.
	yRot := math.Atan2(-v1[2], math.Hypot(v1[0], v1[1]))
	zRot := math.Atan2(v1[1], v1[0])

	xDeg = opts.TiltXDeg
	yDeg = rad2deg(yRot) + opts.TiltYDeg
	zDeg = rad2deg(zRot)
	return xDeg, yDeg, zDeg
}

// AspectRatio is sqrt(λ0/λ1) of the coordinate covariance eigenvalues,
// the elongation of the point cloud.  Returns 1.0 when the second eigenvalue
// is not positive (degenerate or near-linear-through-a-point geometry).
func AspectRatio(pos []molgraph.Vec3) float64 {
	if len(pos) < 2 {
		return 1.0
	}
	ev, _ := symmetricEigen3(covariance3(pos))
	if ev[1] <= 0 {
		return 1.0
	}
	return math.Sqrt(ev[0] / ev[1])
}

// ZoomBuffer recommends a multiplicative framing margin from the molecule's
// aspect ratio: elongated molecules need less buffer than compact ones.
// Thresholds are strict greater-than comparisons, so a ratio of exactly
// ZoomLargeExtent falls into the medium band.
func ZoomBuffer(pos []molgraph.Vec3, opts Options) float64 {
	ratio := AspectRatio(pos)
	switch {
	case ratio > opts.ZoomLargeExtent:
		return opts.ZoomLargeBuffer
	case ratio > opts.ZoomMediumExtent:
		return opts.ZoomMediumBuffer
	default:
		return opts.ZoomSmallBuffer
	}
}

// covariance3 computes the 3×3 covariance matrix of pos about its centroid,
// packed as [xx, xy, xz, yy, yz, zz].
func covariance3(pos []molgraph.Vec3) [6]float64 {
	c := molgraph.Centroid3D(pos)
	var m [6]float64
	for _, p := range pos {
		dx, dy, dz := p.X-c.X, p.Y-c.Y, p.Z-c.Z
		m[0] += dx * dx
		m[1] += dx * dy
		m[2] += dx * dz
		m[3] += dy * dy
		m[4] += dy * dz
		m[5] += dz * dz
	}
	n := float64(len(pos))
	for i := range m {
		m[i] /= n
	}
	return m
}

// symmetricEigen3 returns the eigenvalues of the packed symmetric 3×3 matrix
// in descending order, plus the unit eigenvector of the largest eigenvalue
// under the fixed sign convention.  Uses the trigonometric closed form for
// symmetric 3×3 eigenvalues, which is deterministic by construction.
func symmetricEigen3(m [6]float64) ([3]float64, [3]float64) {
	a, b, c := m[0], m[1], m[2]
	d, e := m[3], m[4]
	f := m[5]

	p1 := b*b + c*c + e*e
	var ev [3]float64
	if p1 < degenerateVariance*degenerateVariance {
		// Already diagonal.
		ev = sort3Desc(a, d, f)
	} else {
		q := (a + d + f) / 3
		p2 := (a-q)*(a-q) + (d-q)*(d-q) + (f-q)*(f-q) + 2*p1
		p := math.Sqrt(p2 / 6)

		// B = (A - qI) / p
		ba, bb, bc := (a-q)/p, b/p, c/p
		bd, be := (d-q)/p, e/p
		bf := (f - q) / p
		detB := ba*(bd*bf-be*be) - bb*(bb*bf-be*bc) + bc*(bb*be-bd*bc)

		r := math.Max(-1, math.Min(1, detB/2))
		phi := math.Acos(r) / 3

		e0 := q + 2*p*math.Cos(phi)
		e2 := q + 2*p*math.Cos(phi+2*math.Pi/3)
		e1 := 3*q - e0 - e2
		ev = [3]float64{e0, e1, e2}
	}

	v := eigenvector3(m, ev[0])
	return ev, v
}

// eigenvector3 recovers a unit eigenvector for eigenvalue lambda via the
// cross product of two rows of (A - λI); the cross product of independent
// rows is orthogonal to both and therefore spans the null space.
func eigenvector3(m [6]float64, lambda float64) [3]float64 {
	r0 := [3]float64{m[0] - lambda, m[1], m[2]}
	r1 := [3]float64{m[1], m[3] - lambda, m[4]}
	r2 := [3]float64{m[2], m[4], m[5] - lambda}

	candidates := [3][3]float64{
		cross3(r0, r1),
		cross3(r0, r2),
		cross3(r1, r2),
	}
	best := candidates[0]
	bestNorm := norm3(best)
	for _, cand := range candidates[1:] {
		if n := norm3(cand); n > bestNorm {
			best, bestNorm = cand, n
		}
	}
	if bestNorm < degenerateVariance {
		// Repeated eigenvalue; any axis works, pick x deterministically.
		return [3]float64{1, 0, 0}
	}
	for i := range best {
		best[i] /= bestNorm
	}
	return fixSign3(best)
}

// fixSign3 forces the largest-magnitude component positive.
func fixSign3(v [3]float64) [3]float64 {
	maxIdx := 0
	for i := 1; i < 3; i++ {
		if math.Abs(v[i]) > math.Abs(v[maxIdx]) {
			maxIdx = i
		}
	}
	if v[maxIdx] < 0 {
		for i := range v {
			v[i] = -v[i]
		}
	}
	return v
}

func cross3(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func norm3(v [3]float64) float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

func sort3Desc(a, b, c float64) [3]float64 {
	if a < b {
		a, b = b, a
	}
	if b < c {
		b, c = c, b
	}
	if a < b {
		a, b = b, a
	}
	return [3]float64{a, b, c}
}

// normalizeAngle wraps an angle into [0, 2π).
func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

func rad2deg(r float64) float64 { return r * 180 / math.Pi }

func deg2rad(d float64) float64 { return d * math.Pi / 180 }
