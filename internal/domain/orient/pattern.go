package orient

import "github.com/wikimol/wikimolgen/internal/domain/molgraph"

// Declarative substructure templates.  A template is data — ring size, bridge
// length, terminal heteroatom — matched by one generic traversal, so new
// scaffolds are added as values rather than new walking code.

// CoreTemplate describes an aromatic-ring–aliphatic-chain–heteroatom
// scaffold.
type CoreTemplate struct {
	Name string

	// MinAtoms is a fast-reject bound: graphs smaller than this can never
	// contain the scaffold.
	MinAtoms int

	// RingSize is the aromatic ring size (only 6 is perceived today).
	RingSize int

	// BridgeLength is the number of aliphatic carbons between ring and
	// terminal atom.
	BridgeLength int

	// TerminalElement is the element symbol ending the chain.
	TerminalElement string
}

// PhenethylamineTemplate is the aromatic-ring–CH2–CH2–N scaffold (the
// SMARTS query c1ccccc1-CCN).  It is deliberately a single fixed pattern: it
// will not match bridge-substituted, branched, or fused-ring variants.
var PhenethylamineTemplate = CoreTemplate{
	Name:            "phenethylamine",
	MinAtoms:        9,
	RingSize:        6,
	BridgeLength:    2,
	TerminalElement: "N",
}

// CoreMatch records where a template matched: the ring attachment carbon,
// the aliphatic bridge in ring→terminal order, and the terminal atom.
type CoreMatch struct {
	RingAtom int
	Bridge   []int
	Terminal int
}

// MatchCore finds the first occurrence of tpl in the graph, scanning ring
// atoms in index order so the result is deterministic.  Returns false when
// the scaffold is absent or the graph is below the fast-reject bound.
func MatchCore(mol *molgraph.Molecule, tpl CoreTemplate) (CoreMatch, bool) {
	if mol == nil || mol.NumAtoms() < tpl.MinAtoms {
		return CoreMatch{}, false
	}

	// PerceiveAromaticity runs at parse time; handle hand-built graphs too.
	hasAromatic := false
	for _, a := range mol.Atoms {
		if a.Aromatic {
			hasAromatic = true
			break
		}
	}
	if !hasAromatic {
		mol.PerceiveAromaticity()
	}

	for ringAtom := range mol.Atoms {
		if !mol.Atoms[ringAtom].Aromatic {
			continue
		}
		if bridge, term, ok := walkBridge(mol, ringAtom, tpl); ok {
			return CoreMatch{RingAtom: ringAtom, Bridge: bridge, Terminal: term}, true
		}
	}
	return CoreMatch{}, false
}

// walkBridge walks outward from an aromatic ring atom through exactly
// tpl.BridgeLength non-aromatic carbons to the terminal element, all through
// single bonds.
func walkBridge(mol *molgraph.Molecule, ringAtom int, tpl CoreTemplate) ([]int, int, bool) {
	var walk func(prev, current int, depth int, bridge []int) ([]int, int, bool)
	walk = func(prev, current, depth int, bridge []int) ([]int, int, bool) {
		for _, next := range mol.Neighbors(current) {
			if next == prev {
				continue
			}
			b := mol.BondBetween(current, next)
			if b == nil || b.Order != molgraph.BondSingle {
				continue
			}
			a := mol.Atoms[next]
			if depth < tpl.BridgeLength {
				if a.Element != "C" || a.Aromatic {
					continue
				}
				if got, term, ok := walk(current, next, depth+1, append(bridge, next)); ok {
					return got, term, ok
				}
			} else if a.Element == tpl.TerminalElement && !a.Aromatic {
				out := make([]int, len(bridge))
				copy(out, bridge)
				return out, next, true
			}
		}
		return nil, -1, false
	}
	return walk(-1, ringAtom, 0, nil)
}

// IsPhenethylamineCore reports whether the graph contains the fixed
// phenethylamine scaffold.
func IsPhenethylamineCore(mol *molgraph.Molecule) bool {
	_, ok := MatchCore(mol, PhenethylamineTemplate)
	return ok
}

// phenethylamineNitrogen returns the terminal nitrogen of the scaffold, as
// the match walk finds it.
func phenethylamineNitrogen(mol *molgraph.Molecule) (int, bool) {
	m, ok := MatchCore(mol, PhenethylamineTemplate)
	if !ok {
		return -1, false
	}
	return m.Terminal, true
}

// PhenethylamineBridge locates the pivot/reference pair for sidechain
// orientation: the terminal nitrogen and the sp3 bridge carbon adjacent to
// it.  It fails closed — (0, 0, false) — when the aromatic→aliphatic→
// aliphatic walk cannot be located, rather than guessing at atom ordering.
func PhenethylamineBridge(mol *molgraph.Molecule) (pivot, reference int, ok bool) {
	m, found := MatchCore(mol, PhenethylamineTemplate)
	if !found || len(m.Bridge) != PhenethylamineTemplate.BridgeLength {
		return 0, 0, false
	}
	return m.Terminal, m.Bridge[len(m.Bridge)-1], true
}
