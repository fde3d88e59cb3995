package orient

import (
	"math"

	"github.com/wikimol/wikimolgen/internal/domain/molgraph"
)

// Rigid rotation primitives.  The shared contract: rotation and translation
// only, never scaling or shearing, always about the centroid of every atom
// present, and always into a freshly allocated slice.

// Rotate2D rotates every position by angleRad about the centroid of the full
// point set and returns the result as a new slice.
func Rotate2D(pos []molgraph.Vec2, angleRad float64) []molgraph.Vec2 {
	out := make([]molgraph.Vec2, len(pos))
	if len(pos) == 0 {
		return out
	}
	c := molgraph.Centroid2D(pos)
	sin, cos := math.Sincos(angleRad)
	for i, p := range pos {
		x, y := p.X-c.X, p.Y-c.Y
		out[i] = molgraph.Vec2{
			X: x*cos - y*sin + c.X,
			Y: x*sin + y*cos + c.Y,
		}
	}
	return out
}

// OrientVectorToAngle rotates the whole coordinate set rigidly so that the
// vector from reference to pivot points at targetDeg (0° = right,
// 90° = up).  The rotation is about the centroid of all positions, so the
// depiction turns as one body.
//
// Returns (nil, false) without rotating when there are no coordinates or the
// pivot/reference pair is unusable (out of range, or the same atom) — both
// are expected precondition failures, not errors.
func OrientVectorToAngle(pos []molgraph.Vec2, pivot, reference int, targetDeg float64) ([]molgraph.Vec2, bool) {
	if len(pos) == 0 {
		return nil, false
	}
	if pivot < 0 || pivot >= len(pos) || reference < 0 || reference >= len(pos) || pivot == reference {
		return nil, false
	}

	vx := pos[pivot].X - pos[reference].X
	vy := pos[pivot].Y - pos[reference].Y
	if vx == 0 && vy == 0 {
		// Coincident atoms leave the direction undefined.
		return nil, false
	}

	current := math.Atan2(vy, vx)
	delta := deg2rad(targetDeg) - current
	return Rotate2D(pos, delta), true
}

// VectorAngleDeg returns the angle, in degrees within [0, 360), of the
// vector from reference to pivot.  Used to verify targeting and by render
// diagnostics.
func VectorAngleDeg(pos []molgraph.Vec2, pivot, reference int) float64 {
	if pivot < 0 || pivot >= len(pos) || reference < 0 || reference >= len(pos) {
		return 0
	}
	a := math.Atan2(pos[pivot].Y-pos[reference].Y, pos[pivot].X-pos[reference].X)
	return rad2deg(normalizeAngle(a))
}

// ApplyEulerRotations rotates a 3D point set about its centroid by the given
// angles, applied sequentially about the x, y, and z axes, returning a new
// slice.  This is how the 3D renderer consumes SpatialAlignmentAngles.
func ApplyEulerRotations(pos []molgraph.Vec3, xDeg, yDeg, zDeg float64) []molgraph.Vec3 {
	out := make([]molgraph.Vec3, len(pos))
	if len(pos) == 0 {
		return out
	}
	c := molgraph.Centroid3D(pos)
	sx, cx := math.Sincos(deg2rad(xDeg))
	sy, cy := math.Sincos(deg2rad(yDeg))
	sz, cz := math.Sincos(deg2rad(zDeg))

	for i, p := range pos {
		x, y, z := p.X-c.X, p.Y-c.Y, p.Z-c.Z

		// Rotate about x.
		y, z = y*cx-z*sx, y*sx+z*cx
		// Rotate about y.
		x, z = x*cy+z*sy, -x*sy+z*cy
		// Rotate about z.
		x, y = x*cz-y*sz, x*sz+y*cz

		out[i] = molgraph.Vec3{X: x + c.X, Y: y + c.Y, Z: z + c.Z}
	}
	return out
}
