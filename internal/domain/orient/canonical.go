package orient

import "github.com/wikimol/wikimolgen/internal/domain/molgraph"

// Canonicalization orchestrator: the single "auto-orient for standard
// presentation" decision composed from the substructure rules and the PCA
// fallback.

// Branch identifies which canonicalization rule fired.
type Branch string

const (
	// BranchPhenethylamine: the scaffold matched and the ethyl-bridge vector
	// was pointed at the target angle.
	BranchPhenethylamine Branch = "phenethylamine"
	// BranchFirstAmine: no scaffold, but an amine was present; the first
	// amine in atom-index order was oriented.  Index order is a documented
	// simplification — it is not "the most prominent amine".
	BranchFirstAmine Branch = "first-amine"
	// BranchPCA: no special substructure; dominant-axis alignment applied.
	BranchPCA Branch = "pca"
	// BranchNone: nothing applied (no coordinates).
	BranchNone Branch = "none"
)

// Report describes which branch fired and whether its rotation succeeded.
// It exists for diagnostics and logging; callers do not branch on it beyond
// noting that auto-orientation did not apply.
type Report struct {
	Branch    Branch
	Succeeded bool

	// Pivot and Reference are the atom pair the rotation aimed, when a
	// substructure branch fired; -1 otherwise.
	Pivot     int
	Reference int

	// AngleDeg is the target angle for substructure branches, or the applied
	// PCA rotation (in degrees) for the fallback.
	AngleDeg float64
}

// Canonicalize orients a molecule's 2D coordinates for standard
// presentation:
//
//  1. A phenethylamine scaffold rotates the whole structure so the ethyl
//     bridge points at the target angle; this class rule supersedes PCA.
//  2. Otherwise the first amine nitrogen, by atom index, is oriented to the
//     same target.
//  3. Otherwise the dominant axis is aligned to the horizontal.
//
// The input slice is never mutated; the returned slice is always fresh.  On
// failure the original coordinates are returned copied and the report says
// what was attempted.
func Canonicalize(mol *molgraph.Molecule, pos []molgraph.Vec2, opts Options) ([]molgraph.Vec2, Report) {
	if len(pos) == 0 || mol == nil || len(pos) != mol.NumAtoms() {
		return copyPositions(pos), Report{Branch: BranchNone, Pivot: -1, Reference: -1}
	}

	if pivot, ref, ok := PhenethylamineBridge(mol); ok {
		rotated, done := OrientVectorToAngle(pos, pivot, ref, opts.TargetAngleDeg)
		rep := Report{
			Branch:    BranchPhenethylamine,
			Succeeded: done,
			Pivot:     pivot,
			Reference: ref,
			AngleDeg:  opts.TargetAngleDeg,
		}
		if !done {
			return copyPositions(pos), rep
		}
		return rotated, rep
	}

	if sites := ClassifyAmines(mol); len(sites) > 0 {
		first := sites[0]
		rep := Report{
			Branch:   BranchFirstAmine,
			Pivot:    first.AtomIndex,
			AngleDeg: opts.TargetAngleDeg,
		}
		ref, ok := AmineReference(mol, first.AtomIndex)
		if !ok {
			rep.Reference = -1
			return copyPositions(pos), rep
		}
		rep.Reference = ref
		rotated, done := OrientVectorToAngle(pos, first.AtomIndex, ref, opts.TargetAngleDeg)
		rep.Succeeded = done
		if !done {
			return copyPositions(pos), rep
		}
		return rotated, rep
	}

	angle := PlanarAlignmentAngle(pos)
	return Rotate2D(pos, angle), Report{
		Branch:    BranchPCA,
		Succeeded: true,
		Pivot:     -1,
		Reference: -1,
		AngleDeg:  rad2deg(angle),
	}
}

func copyPositions(pos []molgraph.Vec2) []molgraph.Vec2 {
	out := make([]molgraph.Vec2, len(pos))
	copy(out, pos)
	return out
}
