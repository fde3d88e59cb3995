package orient

import "github.com/wikimol/wikimolgen/internal/domain/molgraph"

// Amine substructure classification.  Classification is a pure function of
// connectivity and element types: identical graphs always classify
// identically, and nothing is cached between calls.

// AmineType classifies an amine nitrogen by substitution pattern.
type AmineType string

const (
	AminePrimary   AmineType = "NH2"
	AmineSecondary AmineType = "NHR"
	AmineTertiary  AmineType = "NR3"
	AmineAniline   AmineType = "ArNH2"
)

// AmineSite is one classified nitrogen: its atom index, category, and
// whether it terminates a recognized phenethylamine sidechain.
type AmineSite struct {
	AtomIndex      int
	Type           AmineType
	Phenethylamine bool
}

// ClassifyAmines walks every nitrogen in the graph and classifies it by
// carbon-neighbor count and ring aromaticity:
//
//	0 carbons → primary (bare NH2/NH3 fragment), skipped entirely when the
//	            nitrogen has no bonds at all
//	1 carbon  → aniline when that carbon is aromatic, else primary
//	2 carbons → secondary
//	3 carbons → tertiary
//
// Amide nitrogens (bonded to a carbon that carries a double bond to oxygen)
// are excluded: they behave nothing like free amines and orienting them as
// one produces misleading depictions.
func ClassifyAmines(mol *molgraph.Molecule) []AmineSite {
	var sites []AmineSite
	peaN, peaOK := phenethylamineNitrogen(mol)

	for i, atom := range mol.Atoms {
		if atom.Element != "N" {
			continue
		}
		if isAmideNitrogen(mol, i) {
			continue
		}

		var carbons []int
		aromaticCarbon := false
		for _, n := range mol.Neighbors(i) {
			if mol.Atoms[n].Element == "C" {
				carbons = append(carbons, n)
				if mol.Atoms[n].Aromatic {
					aromaticCarbon = true
				}
			}
		}

		var cat AmineType
		switch len(carbons) {
		case 0:
			if mol.Degree(i) == 0 {
				// Isolated nitrogen: malformed input, skip rather than guess.
				continue
			}
			cat = AminePrimary
		case 1:
			if aromaticCarbon {
				cat = AmineAniline
			} else {
				cat = AminePrimary
			}
		case 2:
			cat = AmineSecondary
		default:
			cat = AmineTertiary
		}

		sites = append(sites, AmineSite{
			AtomIndex:      i,
			Type:           cat,
			Phenethylamine: peaOK && i == peaN,
		})
	}
	return sites
}

// isAmideNitrogen reports whether nitrogen i is bonded to a carbonyl carbon:
// one bond out to a carbon, then one bond out from that carbon to an oxygen
// through a double bond.
func isAmideNitrogen(mol *molgraph.Molecule, i int) bool {
	for _, c := range mol.Neighbors(i) {
		if mol.Atoms[c].Element != "C" {
			continue
		}
		for _, o := range mol.Neighbors(c) {
			if mol.Atoms[o].Element != "O" {
				continue
			}
			if b := mol.BondBetween(c, o); b != nil && b.Order == molgraph.BondDouble {
				return true
			}
		}
	}
	return false
}

// AmineReference picks the neighbor used as the rotation reference when
// orienting amine site n: prefer a non-aromatic neighbor (for a primary
// amine this is the C–N bond direction), falling back to any neighbor.
// Returns (-1, false) for an isolated atom.
func AmineReference(mol *molgraph.Molecule, n int) (int, bool) {
	nbrs := mol.Neighbors(n)
	if len(nbrs) == 0 {
		return -1, false
	}
	for _, nb := range nbrs {
		if !mol.Atoms[nb].Aromatic {
			return nb, true
		}
	}
	return nbrs[0], true
}
