package molgraph

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wikimol/wikimolgen/pkg/errors"
)

// V2000 molfile / SDF parsing and writing.  PubChem SDF records are the
// coordinate source for both 2D and 3D rendering; only the V2000 connection
// table is supported.

// sdfRecordSeparator terminates each molecule block in an SDF stream.
const sdfRecordSeparator = "$$$$"

// ParseMolBlock parses a single V2000 mol block into a Molecule.  The three
// header lines precede the counts line; atom lines use fixed columns
// (x: 0-10, y: 10-20, z: 20-30, element: 31-34) and bond lines use columns
// (from: 0-3, to: 3-6, order: 6-9, one-based indices).
func ParseMolBlock(block string) (*Molecule, error) {
	lines := strings.Split(strings.ReplaceAll(block, "\r\n", "\n"), "\n")
	if len(lines) < 4 {
		return nil, errors.New(errors.ErrCodeMolfileParseFailed, "mol block too short")
	}

	name := strings.TrimSpace(lines[0])

	countsLine := lines[3]
	if len(countsLine) < 6 {
		return nil, errors.New(errors.ErrCodeMolfileParseFailed, "counts line too short")
	}
	atomCount, err := strconv.Atoi(strings.TrimSpace(countsLine[0:3]))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeMolfileParseFailed, "invalid atom count")
	}
	bondCount, err := strconv.Atoi(strings.TrimSpace(countsLine[3:6]))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeMolfileParseFailed, "invalid bond count")
	}
	if len(lines) < 4+atomCount+bondCount {
		return nil, errors.New(errors.ErrCodeMolfileParseFailed, "mol block truncated").
			WithDetail(fmt.Sprintf("want %d atom + %d bond lines", atomCount, bondCount))
	}

	mol := &Molecule{
		Name:  name,
		Atoms: make([]Atom, atomCount),
		Bonds: make([]Bond, bondCount),
	}

	for i := 0; i < atomCount; i++ {
		l := lines[4+i]
		if len(l) < 34 {
			return nil, errors.New(errors.ErrCodeMolfileParseFailed, "atom line too short").
				WithDetail(fmt.Sprintf("line %d", 4+i+1))
		}
		x := parseFloatColumn(l[0:10])
		y := parseFloatColumn(l[10:20])
		z := parseFloatColumn(l[20:30])
		elem := strings.TrimSpace(l[31:34])
		if elem == "" {
			return nil, errors.New(errors.ErrCodeMolfileParseFailed, "missing element symbol").
				WithDetail(fmt.Sprintf("line %d", 4+i+1))
		}
		mol.Atoms[i] = Atom{Element: elem, Position: Vec3{x, y, z}}
	}

	for i := 0; i < bondCount; i++ {
		l := lines[4+atomCount+i]
		if len(l) < 9 {
			return nil, errors.New(errors.ErrCodeMolfileParseFailed, "bond line too short").
				WithDetail(fmt.Sprintf("line %d", 4+atomCount+i+1))
		}
		from := parseIntColumn(l[0:3]) - 1
		to := parseIntColumn(l[3:6]) - 1
		order := parseIntColumn(l[6:9])
		if from < 0 || from >= atomCount || to < 0 || to >= atomCount {
			return nil, errors.New(errors.ErrCodeMolfileParseFailed, "bond references missing atom").
				WithDetail(fmt.Sprintf("bond %d: %d-%d", i+1, from+1, to+1))
		}
		mol.Bonds[i] = Bond{From: from, To: to, Order: BondOrder(order), Aromatic: BondOrder(order) == BondAromatic}
	}

	// Property block: only charges are interesting here.
	for _, l := range lines[4+atomCount+bondCount:] {
		if strings.HasPrefix(l, "M  CHG") {
			applyChargeLine(mol, l)
		}
		if strings.HasPrefix(l, "M  END") {
			break
		}
	}

	mol.PerceiveAromaticity()
	return mol, nil
}

// applyChargeLine parses an "M  CHG nn8 aaa vvv ..." property line.
func applyChargeLine(mol *Molecule, line string) {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return
	}
	n, err := strconv.Atoi(fields[2])
	if err != nil {
		return
	}
	for i := 0; i < n && 3+2*i+1 < len(fields); i++ {
		idx, err1 := strconv.Atoi(fields[3+2*i])
		chg, err2 := strconv.Atoi(fields[3+2*i+1])
		if err1 != nil || err2 != nil {
			continue
		}
		if idx >= 1 && idx <= len(mol.Atoms) {
			mol.Atoms[idx-1].Charge = chg
		}
	}
}

// ParseSDF parses every record in an SDF stream.  Records that fail to parse
// abort the whole stream; an empty stream is an error.
func ParseSDF(data string) ([]*Molecule, error) {
	var mols []*Molecule
	for _, block := range splitSDFRecords(data) {
		mol, err := ParseMolBlock(block)
		if err != nil {
			return nil, err
		}
		mols = append(mols, mol)
	}
	if len(mols) == 0 {
		return nil, errors.New(errors.ErrCodeMolfileParseFailed, "SDF stream contains no records")
	}
	return mols, nil
}

// ParseFirstSDFRecord parses only the first record of an SDF stream, which is
// all a single-compound PubChem response contains.
func ParseFirstSDFRecord(data string) (*Molecule, error) {
	blocks := splitSDFRecords(data)
	if len(blocks) == 0 {
		return nil, errors.New(errors.ErrCodeMolfileParseFailed, "SDF stream contains no records")
	}
	return ParseMolBlock(blocks[0])
}

// splitSDFRecords splits an SDF stream on "$$$$" separator lines, dropping
// blank records.
func splitSDFRecords(data string) []string {
	var blocks []string
	var current []string
	for _, line := range strings.Split(strings.ReplaceAll(data, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) == sdfRecordSeparator {
			if block := strings.Join(current, "\n"); strings.TrimSpace(block) != "" {
				blocks = append(blocks, block)
			}
			current = current[:0]
			continue
		}
		current = append(current, line)
	}
	if block := strings.Join(current, "\n"); strings.TrimSpace(block) != "" {
		blocks = append(blocks, block)
	}
	return blocks
}

// WriteMolBlock serializes mol back to a V2000 mol block.  Charges are
// emitted as an "M  CHG" property line when present.
func WriteMolBlock(mol *Molecule) string {
	var sb strings.Builder
	sb.WriteString(mol.Name)
	sb.WriteString("\n  wikimolgen\n\n")
	fmt.Fprintf(&sb, "%3d%3d  0  0  0  0  0  0  0  0999 V2000\n", len(mol.Atoms), len(mol.Bonds))

	for _, a := range mol.Atoms {
		fmt.Fprintf(&sb, "%10.4f%10.4f%10.4f %-3s 0  0  0  0  0  0  0  0  0  0  0  0\n",
			a.Position.X, a.Position.Y, a.Position.Z, a.Element)
	}
	for _, b := range mol.Bonds {
		fmt.Fprintf(&sb, "%3d%3d%3d  0\n", b.From+1, b.To+1, int(b.Order))
	}

	var charged []int
	for i, a := range mol.Atoms {
		if a.Charge != 0 {
			charged = append(charged, i)
		}
	}
	if len(charged) > 0 {
		fmt.Fprintf(&sb, "M  CHG%3d", len(charged))
		for _, i := range charged {
			fmt.Fprintf(&sb, " %3d %3d", i+1, mol.Atoms[i].Charge)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("M  END\n")
	return sb.String()
}

func parseIntColumn(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}

func parseFloatColumn(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}
