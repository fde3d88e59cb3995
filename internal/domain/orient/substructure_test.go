package orient

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wikimol/wikimolgen/internal/domain/molgraph"
)

// benzeneRing appends a kekulized benzene ring to mol and returns the ring's
// atom indices.
func benzeneRing(mol *molgraph.Molecule) []int {
	base := mol.NumAtoms()
	ring := make([]int, 6)
	for i := 0; i < 6; i++ {
		theta := float64(i) * math.Pi / 3
		mol.Atoms = append(mol.Atoms, molgraph.Atom{
			Element:  "C",
			Position: molgraph.Vec3{X: 1.4 * math.Cos(theta), Y: 1.4 * math.Sin(theta)},
		})
		ring[i] = base + i
	}
	for i := 0; i < 6; i++ {
		order := molgraph.BondSingle
		if i%2 == 0 {
			order = molgraph.BondDouble
		}
		mol.Bonds = append(mol.Bonds, molgraph.Bond{From: ring[i], To: ring[(i+1)%6], Order: order})
	}
	return ring
}

// phenethylamineMolecule builds ring–CH2–CH2–NH2 with arbitrary coordinates.
// Atom indices: 0-5 ring, 6-7 bridge, 8 nitrogen.
func phenethylamineMolecule() *molgraph.Molecule {
	mol := &molgraph.Molecule{Name: "phenethylamine"}
	ring := benzeneRing(mol)
	mol.Atoms = append(mol.Atoms,
		molgraph.Atom{Element: "C", Position: molgraph.Vec3{X: 2.6, Y: 0.6}},
		molgraph.Atom{Element: "C", Position: molgraph.Vec3{X: 3.6, Y: 0.1}},
		molgraph.Atom{Element: "N", Position: molgraph.Vec3{X: 4.7, Y: 0.8}},
	)
	mol.Bonds = append(mol.Bonds,
		molgraph.Bond{From: ring[0], To: 6, Order: molgraph.BondSingle},
		molgraph.Bond{From: 6, To: 7, Order: molgraph.BondSingle},
		molgraph.Bond{From: 7, To: 8, Order: molgraph.BondSingle},
	)
	mol.PerceiveAromaticity()
	return mol
}

// amphetamineMolecule adds an alpha-methyl branch on the second bridge
// carbon: ring–CH2–CH(CH3)–NH2.
func amphetamineMolecule() *molgraph.Molecule {
	mol := phenethylamineMolecule()
	mol.Name = "amphetamine"
	mol.Atoms = append(mol.Atoms, molgraph.Atom{Element: "C", Position: molgraph.Vec3{X: 3.9, Y: -1.2}})
	mol.Bonds = append(mol.Bonds, molgraph.Bond{From: 7, To: 9, Order: molgraph.BondSingle})
	mol.InvalidateAdjacency()
	return mol
}

// dopamineMolecule adds two ring hydroxyls to the phenethylamine scaffold.
func dopamineMolecule() *molgraph.Molecule {
	mol := phenethylamineMolecule()
	mol.Name = "dopamine"
	mol.Atoms = append(mol.Atoms,
		molgraph.Atom{Element: "O", Position: molgraph.Vec3{X: -2.4, Y: 1.2}},
		molgraph.Atom{Element: "O", Position: molgraph.Vec3{X: -2.4, Y: -1.2}},
	)
	mol.Bonds = append(mol.Bonds,
		molgraph.Bond{From: 2, To: 9, Order: molgraph.BondSingle},
		molgraph.Bond{From: 3, To: 10, Order: molgraph.BondSingle},
	)
	mol.InvalidateAdjacency()
	return mol
}

// ethylamineMolecule is CH3-CH2-NH2: a primary aliphatic amine, no ring.
func ethylamineMolecule() *molgraph.Molecule {
	return &molgraph.Molecule{
		Name: "ethylamine",
		Atoms: []molgraph.Atom{
			{Element: "C", Position: molgraph.Vec3{X: 0, Y: 0}},
			{Element: "C", Position: molgraph.Vec3{X: 1.2, Y: 0.6}},
			{Element: "N", Position: molgraph.Vec3{X: 2.4, Y: 0}},
		},
		Bonds: []molgraph.Bond{
			{From: 0, To: 1, Order: molgraph.BondSingle},
			{From: 1, To: 2, Order: molgraph.BondSingle},
		},
	}
}

// acetamideMolecule is CH3-C(=O)-NH2: the nitrogen is an amide.
func acetamideMolecule() *molgraph.Molecule {
	return &molgraph.Molecule{
		Name: "acetamide",
		Atoms: []molgraph.Atom{
			{Element: "C", Position: molgraph.Vec3{X: 0, Y: 0}},
			{Element: "C", Position: molgraph.Vec3{X: 1.3, Y: 0}},
			{Element: "O", Position: molgraph.Vec3{X: 2, Y: 1.1}},
			{Element: "N", Position: molgraph.Vec3{X: 2, Y: -1.1}},
		},
		Bonds: []molgraph.Bond{
			{From: 0, To: 1, Order: molgraph.BondSingle},
			{From: 1, To: 2, Order: molgraph.BondDouble},
			{From: 1, To: 3, Order: molgraph.BondSingle},
		},
	}
}

func TestClassifyAmines_Primary(t *testing.T) {
	sites := ClassifyAmines(ethylamineMolecule())
	require.Len(t, sites, 1)
	assert.Equal(t, 2, sites[0].AtomIndex)
	assert.Equal(t, AminePrimary, sites[0].Type)
	assert.False(t, sites[0].Phenethylamine)
}

func TestClassifyAmines_Tertiary(t *testing.T) {
	// N(CH3)3: nitrogen with exactly three carbon neighbors, no aromaticity.
	mol := &molgraph.Molecule{
		Atoms: []molgraph.Atom{
			{Element: "N"}, {Element: "C"}, {Element: "C"}, {Element: "C"},
		},
		Bonds: []molgraph.Bond{
			{From: 0, To: 1, Order: molgraph.BondSingle},
			{From: 0, To: 2, Order: molgraph.BondSingle},
			{From: 0, To: 3, Order: molgraph.BondSingle},
		},
	}
	sites := ClassifyAmines(mol)
	require.Len(t, sites, 1)
	assert.Equal(t, AmineTertiary, sites[0].Type)
}

func TestClassifyAmines_Secondary(t *testing.T) {
	mol := &molgraph.Molecule{
		Atoms: []molgraph.Atom{
			{Element: "C"}, {Element: "N"}, {Element: "C"},
		},
		Bonds: []molgraph.Bond{
			{From: 0, To: 1, Order: molgraph.BondSingle},
			{From: 1, To: 2, Order: molgraph.BondSingle},
		},
	}
	sites := ClassifyAmines(mol)
	require.Len(t, sites, 1)
	assert.Equal(t, AmineSecondary, sites[0].Type)
}

func TestClassifyAmines_Aniline(t *testing.T) {
	mol := &molgraph.Molecule{Name: "aniline"}
	ring := benzeneRing(mol)
	mol.Atoms = append(mol.Atoms, molgraph.Atom{Element: "N", Position: molgraph.Vec3{X: 3, Y: 0}})
	mol.Bonds = append(mol.Bonds, molgraph.Bond{From: ring[0], To: 6, Order: molgraph.BondSingle})
	mol.PerceiveAromaticity()

	sites := ClassifyAmines(mol)
	require.Len(t, sites, 1)
	assert.Equal(t, AmineAniline, sites[0].Type)
}

func TestClassifyAmines_AmideExcluded(t *testing.T) {
	assert.Empty(t, ClassifyAmines(acetamideMolecule()))
}

func TestClassifyAmines_IsolatedNitrogenSkipped(t *testing.T) {
	mol := &molgraph.Molecule{
		Atoms: []molgraph.Atom{{Element: "N"}},
	}
	assert.Empty(t, ClassifyAmines(mol))
}

func TestClassifyAmines_PhenethylamineFlag(t *testing.T) {
	sites := ClassifyAmines(phenethylamineMolecule())
	require.Len(t, sites, 1)
	assert.Equal(t, 8, sites[0].AtomIndex)
	assert.True(t, sites[0].Phenethylamine)
}

func TestClassifyAmines_Deterministic(t *testing.T) {
	mol := dopamineMolecule()
	first := ClassifyAmines(mol)
	second := ClassifyAmines(mol)
	assert.Equal(t, first, second)
}

func TestIsPhenethylamineCore_Positive(t *testing.T) {
	assert.True(t, IsPhenethylamineCore(phenethylamineMolecule()))
	assert.True(t, IsPhenethylamineCore(amphetamineMolecule()))
	assert.True(t, IsPhenethylamineCore(dopamineMolecule()))
}

func TestIsPhenethylamineCore_Negative(t *testing.T) {
	assert.False(t, IsPhenethylamineCore(ethylamineMolecule()))

	// Ring with the nitrogen directly attached (aniline): no ethyl bridge.
	aniline := &molgraph.Molecule{}
	ring := benzeneRing(aniline)
	aniline.Atoms = append(aniline.Atoms,
		molgraph.Atom{Element: "N"},
		molgraph.Atom{Element: "C"}, molgraph.Atom{Element: "C"}, molgraph.Atom{Element: "C"},
	)
	aniline.Bonds = append(aniline.Bonds, molgraph.Bond{From: ring[0], To: 6, Order: molgraph.BondSingle})
	aniline.PerceiveAromaticity()
	assert.False(t, IsPhenethylamineCore(aniline))
}

func TestIsPhenethylamineCore_FastReject(t *testing.T) {
	// 8 atoms: below the minimum for the 9-atom scaffold.
	small := ethylamineMolecule()
	assert.Less(t, small.NumAtoms(), PhenethylamineTemplate.MinAtoms)
	assert.False(t, IsPhenethylamineCore(small))
}

func TestMatchCore(t *testing.T) {
	m, ok := MatchCore(phenethylamineMolecule(), PhenethylamineTemplate)
	require.True(t, ok)
	assert.Equal(t, 0, m.RingAtom)
	assert.Equal(t, []int{6, 7}, m.Bridge)
	assert.Equal(t, 8, m.Terminal)
}

func TestPhenethylamineBridge(t *testing.T) {
	pivot, ref, ok := PhenethylamineBridge(phenethylamineMolecule())
	require.True(t, ok)
	assert.Equal(t, 8, pivot)
	assert.Equal(t, 7, ref)

	_, _, ok = PhenethylamineBridge(ethylamineMolecule())
	assert.False(t, ok)
}

func TestAmineReference(t *testing.T) {
	mol := phenethylamineMolecule()
	ref, ok := AmineReference(mol, 8)
	require.True(t, ok)
	assert.Equal(t, 7, ref)

	isolated := &molgraph.Molecule{Atoms: []molgraph.Atom{{Element: "N"}}}
	_, ok = AmineReference(isolated, 0)
	assert.False(t, ok)
}
