package molgraph

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// benzeneMolecule builds a kekulized benzene ring with regular-hexagon
// coordinates, the way a PubChem 2D record lays it out.
func benzeneMolecule() *Molecule {
	mol := &Molecule{Name: "benzene"}
	for i := 0; i < 6; i++ {
		theta := float64(i) * math.Pi / 3
		mol.Atoms = append(mol.Atoms, Atom{
			Element:  "C",
			Position: Vec3{X: 1.5 * math.Cos(theta), Y: 1.5 * math.Sin(theta)},
		})
	}
	for i := 0; i < 6; i++ {
		order := BondSingle
		if i%2 == 0 {
			order = BondDouble
		}
		mol.Bonds = append(mol.Bonds, Bond{From: i, To: (i + 1) % 6, Order: order})
	}
	return mol
}

func TestNeighbors(t *testing.T) {
	mol := benzeneMolecule()
	nbrs := mol.Neighbors(0)
	assert.ElementsMatch(t, []int{1, 5}, nbrs)
	assert.Equal(t, 2, mol.Degree(3))
	assert.Nil(t, mol.Neighbors(99))
}

func TestBondBetween(t *testing.T) {
	mol := benzeneMolecule()
	b := mol.BondBetween(0, 1)
	require.NotNil(t, b)
	assert.Equal(t, BondDouble, b.Order)

	// Reverse direction resolves to the same bond.
	assert.Equal(t, b, mol.BondBetween(1, 0))
	assert.Nil(t, mol.BondBetween(0, 3))
}

func TestCentroid2D(t *testing.T) {
	pos := []Vec2{{0, 0}, {2, 0}, {2, 2}, {0, 2}}
	c := Centroid2D(pos)
	assert.InDelta(t, 1.0, c.X, 1e-12)
	assert.InDelta(t, 1.0, c.Y, 1e-12)

	assert.Equal(t, Vec2{}, Centroid2D(nil))
}

func TestCentroid3D(t *testing.T) {
	pos := []Vec3{{0, 0, 0}, {3, 3, 3}}
	c := Centroid3D(pos)
	assert.InDelta(t, 1.5, c.X, 1e-12)
	assert.InDelta(t, 1.5, c.Z, 1e-12)
}

func TestBounds2D(t *testing.T) {
	min, max := Bounds2D([]Vec2{{-1, 4}, {2, -3}, {0, 0}})
	assert.Equal(t, Vec2{-1, -3}, min)
	assert.Equal(t, Vec2{2, 4}, max)
}

func TestAverageBondLength(t *testing.T) {
	mol := benzeneMolecule()
	avg := mol.AverageBondLength()
	// Regular hexagon of circumradius 1.5 has side length 1.5.
	assert.InDelta(t, 1.5, avg, 1e-9)

	empty := &Molecule{}
	assert.Zero(t, empty.AverageBondLength())
}

func TestHasCoordinates(t *testing.T) {
	mol := benzeneMolecule()
	assert.True(t, mol.HasCoordinates())

	flat := &Molecule{Atoms: []Atom{{Element: "C"}, {Element: "N"}}}
	assert.False(t, flat.HasCoordinates())
}

func TestPositionsRoundTrip(t *testing.T) {
	mol := benzeneMolecule()
	pos := mol.Positions2D()
	require.Len(t, pos, 6)

	// Mutating the returned slice must not touch the molecule.
	pos[0] = Vec2{100, 100}
	assert.NotEqual(t, 100.0, mol.Atoms[0].Position.X)

	// Writing back moves the atoms.
	mol.SetPositions2D(pos)
	assert.Equal(t, 100.0, mol.Atoms[0].Position.X)

	// Length mismatch is a no-op.
	mol.SetPositions2D([]Vec2{{1, 1}})
	assert.Equal(t, 100.0, mol.Atoms[0].Position.X)
}

func TestHydrogenate(t *testing.T) {
	// Ethylamine: C-C-N, all single bonds.
	mol := &Molecule{
		Atoms: []Atom{{Element: "C"}, {Element: "C"}, {Element: "N"}},
		Bonds: []Bond{{From: 0, To: 1, Order: BondSingle}, {From: 1, To: 2, Order: BondSingle}},
	}
	mol.Hydrogenate()
	assert.Equal(t, 3, mol.Atoms[0].HCount) // CH3
	assert.Equal(t, 2, mol.Atoms[1].HCount) // CH2
	assert.Equal(t, 2, mol.Atoms[2].HCount) // NH2
}

func TestPerceiveAromaticity_KekulizedBenzene(t *testing.T) {
	mol := benzeneMolecule()
	mol.PerceiveAromaticity()
	for i := 0; i < 6; i++ {
		assert.True(t, mol.Atoms[i].Aromatic, "atom %d should be aromatic", i)
	}
	b := mol.BondBetween(0, 1)
	require.NotNil(t, b)
	assert.True(t, b.Aromatic)
}

func TestPerceiveAromaticity_CyclohexaneNotAromatic(t *testing.T) {
	mol := benzeneMolecule()
	for i := range mol.Bonds {
		mol.Bonds[i].Order = BondSingle
	}
	mol.PerceiveAromaticity()
	for i := 0; i < 6; i++ {
		assert.False(t, mol.Atoms[i].Aromatic)
	}
}

func TestPerceiveAromaticity_PyridineExcluded(t *testing.T) {
	// The minimal aromaticity model only covers all-carbon rings.
	mol := benzeneMolecule()
	mol.Atoms[0].Element = "N"
	mol.PerceiveAromaticity()
	assert.False(t, mol.Atoms[2].Aromatic)
}

func TestSixMemberedRings(t *testing.T) {
	mol := benzeneMolecule()
	rings := mol.SixMemberedRings()
	require.Len(t, rings, 1)
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4, 5}, rings[0])

	chain := &Molecule{
		Atoms: []Atom{{Element: "C"}, {Element: "C"}, {Element: "C"}},
		Bonds: []Bond{{From: 0, To: 1, Order: BondSingle}, {From: 1, To: 2, Order: BondSingle}},
	}
	assert.Empty(t, chain.SixMemberedRings())
}
