// Package molgraph provides the transient molecular-graph model used by the
// orientation engine and the renderers: atoms with element types and 2D/3D
// positions, bonds with order and aromaticity, and adjacency helpers.  Graphs
// are caller-owned and live only for the duration of a single render.
package molgraph

import "math"

// ─────────────────────────────────────────────────────────────────────────────
// Geometry primitives
// ─────────────────────────────────────────────────────────────────────────────

// Vec2 is a 2D coordinate.
type Vec2 struct {
	X, Y float64
}

// Vec3 is a 3D coordinate.
type Vec3 struct {
	X, Y, Z float64
}

// Sub returns v - w.
func (v Vec2) Sub(w Vec2) Vec2 { return Vec2{v.X - w.X, v.Y - w.Y} }

// Add returns v + w.
func (v Vec2) Add(w Vec2) Vec2 { return Vec2{v.X + w.X, v.Y + w.Y} }

// Dist returns the Euclidean distance between v and w.
func (v Vec2) Dist(w Vec2) float64 {
	dx, dy := v.X-w.X, v.Y-w.Y
	return math.Hypot(dx, dy)
}

// Sub returns v - w.
func (v Vec3) Sub(w Vec3) Vec3 { return Vec3{v.X - w.X, v.Y - w.Y, v.Z - w.Z} }

// Add returns v + w.
func (v Vec3) Add(w Vec3) Vec3 { return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z} }

// Dist returns the Euclidean distance between v and w.
func (v Vec3) Dist(w Vec3) float64 {
	dx, dy, dz := v.X-w.X, v.Y-w.Y, v.Z-w.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// ─────────────────────────────────────────────────────────────────────────────
// Graph model
// ─────────────────────────────────────────────────────────────────────────────

// BondOrder enumerates molfile bond orders.
type BondOrder int

const (
	BondSingle   BondOrder = 1
	BondDouble   BondOrder = 2
	BondTriple   BondOrder = 3
	BondAromatic BondOrder = 4
)

// Atom is one node of the molecular graph.  Position carries whatever the
// record supplied: Z is zero for 2D records.
type Atom struct {
	Element  string
	Aromatic bool
	Charge   int
	HCount   int
	Position Vec3
}

// Bond connects two atoms by zero-based index.
type Bond struct {
	From, To int
	Order    BondOrder
	Aromatic bool
}

// Molecule is the aggregate: atoms, bonds, and a lazily built adjacency list.
// It is not safe for concurrent mutation; callers own the lifecycle.
type Molecule struct {
	Name  string
	Atoms []Atom
	Bonds []Bond

	adjacency [][]int // atom index → bonded atom indices
}

// NumAtoms returns the atom count.
func (m *Molecule) NumAtoms() int { return len(m.Atoms) }

// NumBonds returns the bond count.
func (m *Molecule) NumBonds() int { return len(m.Bonds) }

// buildAdjacency populates the adjacency list from the bond set.
func (m *Molecule) buildAdjacency() {
	m.adjacency = make([][]int, len(m.Atoms))
	for _, b := range m.Bonds {
		if b.From < 0 || b.From >= len(m.Atoms) || b.To < 0 || b.To >= len(m.Atoms) {
			continue
		}
		m.adjacency[b.From] = append(m.adjacency[b.From], b.To)
		m.adjacency[b.To] = append(m.adjacency[b.To], b.From)
	}
}

// Neighbors returns the indices of atoms bonded to atom i.  The returned
// slice is shared; callers must not modify it.
func (m *Molecule) Neighbors(i int) []int {
	if m.adjacency == nil || len(m.adjacency) != len(m.Atoms) {
		m.buildAdjacency()
	}
	if i < 0 || i >= len(m.adjacency) {
		return nil
	}
	return m.adjacency[i]
}

// Degree returns the number of explicit bonds incident on atom i.
func (m *Molecule) Degree(i int) int { return len(m.Neighbors(i)) }

// BondBetween returns the bond connecting atoms i and j, or nil.
func (m *Molecule) BondBetween(i, j int) *Bond {
	for bi := range m.Bonds {
		b := &m.Bonds[bi]
		if (b.From == i && b.To == j) || (b.From == j && b.To == i) {
			return b
		}
	}
	return nil
}

// InvalidateAdjacency discards the cached adjacency list.  Call after
// mutating the bond set.
func (m *Molecule) InvalidateAdjacency() { m.adjacency = nil }

// ─────────────────────────────────────────────────────────────────────────────
// Coordinate access
// ─────────────────────────────────────────────────────────────────────────────

// Positions2D returns a fresh slice of the atoms' XY coordinates.
func (m *Molecule) Positions2D() []Vec2 {
	out := make([]Vec2, len(m.Atoms))
	for i, a := range m.Atoms {
		out[i] = Vec2{a.Position.X, a.Position.Y}
	}
	return out
}

// Positions3D returns a fresh slice of the atoms' XYZ coordinates.
func (m *Molecule) Positions3D() []Vec3 {
	out := make([]Vec3, len(m.Atoms))
	for i, a := range m.Atoms {
		out[i] = a.Position
	}
	return out
}

// SetPositions2D writes pos back into the atoms' XY coordinates, leaving Z
// untouched.  It is a no-op when the lengths differ.
func (m *Molecule) SetPositions2D(pos []Vec2) {
	if len(pos) != len(m.Atoms) {
		return
	}
	for i := range m.Atoms {
		m.Atoms[i].Position.X = pos[i].X
		m.Atoms[i].Position.Y = pos[i].Y
	}
}

// SetPositions3D writes pos back into the atoms' coordinates.  It is a no-op
// when the lengths differ.
func (m *Molecule) SetPositions3D(pos []Vec3) {
	if len(pos) != len(m.Atoms) {
		return
	}
	for i := range m.Atoms {
		m.Atoms[i].Position = pos[i]
	}
}

// HasCoordinates reports whether any atom carries a non-zero position.  An
// all-zero coordinate block is what PubChem emits for records without a
// computed layout.
func (m *Molecule) HasCoordinates() bool {
	for _, a := range m.Atoms {
		if a.Position.X != 0 || a.Position.Y != 0 || a.Position.Z != 0 {
			return true
		}
	}
	return false
}

// ─────────────────────────────────────────────────────────────────────────────
// Derived geometry
// ─────────────────────────────────────────────────────────────────────────────

// Centroid2D returns the unweighted mean of all atom XY positions, or the
// zero vector for an empty molecule.
func Centroid2D(pos []Vec2) Vec2 {
	if len(pos) == 0 {
		return Vec2{}
	}
	var c Vec2
	for _, p := range pos {
		c.X += p.X
		c.Y += p.Y
	}
	n := float64(len(pos))
	return Vec2{c.X / n, c.Y / n}
}

// Centroid3D returns the unweighted mean of all atom positions, or the zero
// vector for an empty molecule.
func Centroid3D(pos []Vec3) Vec3 {
	if len(pos) == 0 {
		return Vec3{}
	}
	var c Vec3
	for _, p := range pos {
		c.X += p.X
		c.Y += p.Y
		c.Z += p.Z
	}
	n := float64(len(pos))
	return Vec3{c.X / n, c.Y / n, c.Z / n}
}

// Bounds2D returns the axis-aligned bounding box of pos.
func Bounds2D(pos []Vec2) (min, max Vec2) {
	if len(pos) == 0 {
		return Vec2{}, Vec2{}
	}
	min, max = pos[0], pos[0]
	for _, p := range pos[1:] {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	return min, max
}

// AverageBondLength returns the mean Euclidean length of all bonds, or 0 for
// a molecule without bonds.  Renderers use it to pick a drawing scale.
func (m *Molecule) AverageBondLength() float64 {
	if len(m.Bonds) == 0 {
		return 0
	}
	var sum float64
	n := 0
	for _, b := range m.Bonds {
		if b.From < 0 || b.From >= len(m.Atoms) || b.To < 0 || b.To >= len(m.Atoms) {
			continue
		}
		sum += m.Atoms[b.From].Position.Dist(m.Atoms[b.To].Position)
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// Hydrogenate fills each atom's implicit-hydrogen count from standard
// valences (C=4, N/P=3, O/S=2) minus the sum of explicit bond orders.
// Elements outside the table keep their explicit HCount.
func (m *Molecule) Hydrogenate() {
	for i := range m.Atoms {
		atom := &m.Atoms[i]
		total := 0
		for _, j := range m.Neighbors(i) {
			if b := m.BondBetween(i, j); b != nil {
				order := int(b.Order)
				if b.Order == BondAromatic {
					order = 1
				}
				total += order
			}
		}
		switch atom.Element {
		case "C":
			atom.HCount = maxInt(0, 4-total)
		case "N", "P":
			atom.HCount = maxInt(0, 3-total)
		case "O", "S":
			atom.HCount = maxInt(0, 2-total)
		}
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
