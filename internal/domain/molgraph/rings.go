package molgraph

// Ring perception.  Molfile records from PubChem arrive kekulized, so benzene
// shows as alternating single/double bonds rather than order-4 aromatic
// bonds.  The aromaticity perception here is the minimal model the
// orientation rules need: six-membered all-carbon rings with alternating
// single/double (or explicit aromatic) bonds.

// SixMemberedRings enumerates all simple cycles of exactly six atoms.
// Each ring is returned once, as a slice of atom indices in traversal order.
func (m *Molecule) SixMemberedRings() [][]int {
	var rings [][]int
	seen := make(map[[6]int]bool)

	var dfs func(start, current int, path []int)
	dfs = func(start, current int, path []int) {
		if len(path) == 6 {
			// Closing edge back to the start completes a six-ring.
			for _, n := range m.Neighbors(current) {
				if n == start {
					key := ringKey(path)
					if !seen[key] {
						seen[key] = true
						ring := make([]int, 6)
						copy(ring, path)
						rings = append(rings, ring)
					}
				}
			}
			return
		}
		for _, n := range m.Neighbors(current) {
			if n < start { // canonical start: smallest index in the ring
				continue
			}
			if containsInt(path, n) {
				continue
			}
			dfs(start, n, append(path, n))
		}
	}

	for i := range m.Atoms {
		dfs(i, i, []int{i})
	}
	return rings
}

// ringKey produces an orientation-independent identity for a six-ring.
func ringKey(path []int) [6]int {
	var key [6]int
	copy(key[:], path)
	// Selection sort; six elements.
	for i := 0; i < 5; i++ {
		min := i
		for j := i + 1; j < 6; j++ {
			if key[j] < key[min] {
				min = j
			}
		}
		key[i], key[min] = key[min], key[i]
	}
	return key
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

// PerceiveAromaticity marks atoms and bonds of benzene-like rings aromatic:
// six-membered, all-carbon, with every ring bond either explicit aromatic or
// part of an alternating single/double pattern.  Call once after parsing.
func (m *Molecule) PerceiveAromaticity() {
	for _, ring := range m.SixMemberedRings() {
		if !m.isBenzenoid(ring) {
			continue
		}
		for i := 0; i < 6; i++ {
			m.Atoms[ring[i]].Aromatic = true
			if b := m.BondBetween(ring[i], ring[(i+1)%6]); b != nil {
				b.Aromatic = true
			}
		}
	}
}

// isBenzenoid reports whether the six-ring is all carbon and its bond orders
// form an aromatic or alternating single/double pattern.
func (m *Molecule) isBenzenoid(ring []int) bool {
	for _, idx := range ring {
		if m.Atoms[idx].Element != "C" {
			return false
		}
	}
	allAromatic := true
	singles, doubles := 0, 0
	for i := 0; i < 6; i++ {
		b := m.BondBetween(ring[i], ring[(i+1)%6])
		if b == nil {
			return false
		}
		switch b.Order {
		case BondAromatic:
		case BondSingle:
			allAromatic = false
			singles++
		case BondDouble:
			allAromatic = false
			doubles++
		default:
			return false
		}
	}
	if allAromatic {
		return true
	}
	// Kekulized benzene: three alternating single and double bonds.
	return singles == 3 && doubles == 3
}

// IsAromaticRingAtom reports whether atom i was marked aromatic by
// PerceiveAromaticity.
func (m *Molecule) IsAromaticRingAtom(i int) bool {
	if i < 0 || i >= len(m.Atoms) {
		return false
	}
	return m.Atoms[i].Aromatic
}
