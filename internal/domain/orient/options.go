// Package orient is the orientation engine: pure functions over atom
// coordinates and bond connectivity that compute canonical depiction
// rotations.  It covers principal-axis alignment (2D and 3D), amine and
// phenethylamine substructure rules, rigid rotation primitives, and the
// canonicalization orchestrator that composes them.
//
// Every transform takes input coordinates and returns a new slice; caller
// data is never mutated.  All functions are synchronous and allocation-light;
// concurrent use across molecules needs no locking because nothing is shared.
package orient

// Options carries the stylistic constants of the engine.  They are depiction
// conventions, not numerical necessities, so they live in configuration
// rather than inline in the algorithms.
type Options struct {
	// TargetAngleDeg is the canonical direction functional groups are rotated
	// toward.  90 points the group straight up.
	TargetAngleDeg float64

	// TiltXDeg and TiltYDeg are added to the computed 3D alignment angles so
	// the final framing is never perfectly axis-aligned, which reads as flat.
	TiltXDeg float64
	TiltYDeg float64

	// Zoom framing: molecules with an aspect ratio strictly above
	// ZoomLargeExtent get ZoomLargeBuffer, above ZoomMediumExtent get
	// ZoomMediumBuffer, everything else ZoomSmallBuffer.
	ZoomLargeExtent  float64
	ZoomMediumExtent float64
	ZoomLargeBuffer  float64
	ZoomMediumBuffer float64
	ZoomSmallBuffer  float64
}

// DefaultOptions returns the documented depiction defaults: groups point up,
// a +10°/+20° tilt on the 3D x/y angles, and the 5.0/3.0 aspect-ratio zoom
// steps.
func DefaultOptions() Options {
	return Options{
		TargetAngleDeg:   90,
		TiltXDeg:         10,
		TiltYDeg:         20,
		ZoomLargeExtent:  5.0,
		ZoomMediumExtent: 3.0,
		ZoomLargeBuffer:  1.5,
		ZoomMediumBuffer: 2.0,
		ZoomSmallBuffer:  2.5,
	}
}
