package bond

import (
	"sort"

	"github.com/bcblab/molio/mol"
)

// backbone is shared by every standard amino acid. OXT only exists on the
// C-terminal residue; pairs whose atoms are absent are simply skipped.
var backbone = [][2]string{
	{"N", "CA"}, {"CA", "C"}, {"C", "O"}, {"CA", "CB"}, {"C", "OXT"},
}

// sideChains lists the heavy-atom side chain bonds per standard amino acid.
var sideChains = map[string][][2]string{
	"ALA": {},
	"ARG": {{"CB", "CG"}, {"CG", "CD"}, {"CD", "NE"}, {"NE", "CZ"},
		{"CZ", "NH1"}, {"CZ", "NH2"}},
	"ASN": {{"CB", "CG"}, {"CG", "OD1"}, {"CG", "ND2"}},
	"ASP": {{"CB", "CG"}, {"CG", "OD1"}, {"CG", "OD2"}},
	"CYS": {{"CB", "SG"}},
	"GLN": {{"CB", "CG"}, {"CG", "CD"}, {"CD", "OE1"}, {"CD", "NE2"}},
	"GLU": {{"CB", "CG"}, {"CG", "CD"}, {"CD", "OE1"}, {"CD", "OE2"}},
	"GLY": {},
	"HIS": {{"CB", "CG"}, {"CG", "ND1"}, {"ND1", "CE1"}, {"CE1", "NE2"},
		{"NE2", "CD2"}, {"CD2", "CG"}},
	"ILE": {{"CB", "CG1"}, {"CB", "CG2"}, {"CG1", "CD1"}},
	"LEU": {{"CB", "CG"}, {"CG", "CD1"}, {"CG", "CD2"}},
	"LYS": {{"CB", "CG"}, {"CG", "CD"}, {"CD", "CE"}, {"CE", "NZ"}},
	"MET": {{"CB", "CG"}, {"CG", "SD"}, {"SD", "CE"}},
	"PHE": {{"CB", "CG"}, {"CG", "CD1"}, {"CD1", "CE1"}, {"CE1", "CZ"},
		{"CZ", "CE2"}, {"CE2", "CD2"}, {"CD2", "CG"}},
	"PRO": {{"CB", "CG"}, {"CG", "CD"}, {"CD", "N"}},
	"SER": {{"CB", "OG"}},
	"THR": {{"CB", "OG1"}, {"CB", "CG2"}},
	"TRP": {{"CB", "CG"}, {"CG", "CD1"}, {"CD1", "NE1"}, {"NE1", "CE2"},
		{"CE2", "CD2"}, {"CD2", "CG"}, {"CE2", "CZ2"}, {"CZ2", "CH2"},
		{"CH2", "CZ3"}, {"CZ3", "CE3"}, {"CE3", "CD2"}},
	"TYR": {{"CB", "CG"}, {"CG", "CD1"}, {"CD1", "CE1"}, {"CE1", "CZ"},
		{"CZ", "CE2"}, {"CE2", "CD2"}, {"CD2", "CG"}, {"CZ", "OH"}},
	"VAL": {{"CB", "CG1"}, {"CB", "CG2"}},
}

var waterPairs = [][2]string{{"O", "H1"}, {"O", "H2"}}

// residuePairs returns the template atom-name pairs for the given component
// id, or nil when no template is known.
func residuePairs(residue string) [][2]string {
	if side, ok := sideChains[residue]; ok {
		pairs := make([][2]string, 0, len(backbone)+len(side))
		pairs = append(pairs, backbone...)
		return append(pairs, side...)
	}
	if mol.IsSolvent(residue) {
		return waterPairs
	}
	return nil
}

// residueRun is a run of consecutive atoms sharing (chain, resID, insCode).
type residueRun struct {
	start, end int // [start, end)
	residue    string
	chain      string
}

func residues(s *mol.Structure) []residueRun {
	var runs []residueRun
	for i := range s.Atoms {
		a := &s.Atoms[i]
		if n := len(runs); n > 0 {
			prev := &s.Atoms[runs[n-1].start]
			if sameResidue(prev, a) {
				runs[n-1].end = i + 1
				continue
			}
		}
		runs = append(runs, residueRun{
			start:   i,
			end:     i + 1,
			residue: a.Residue,
			chain:   a.Chain,
		})
	}
	return runs
}

// ByResidueNames infers bonds from per-residue atom-name templates:
// backbone and side chain pairs for the standard amino acids, plus water.
// When interResidue is true, consecutive amino acid residues of the same
// chain are linked with a C-N peptide bond. Residues without a template
// contribute no bonds.
//
// No geometry is consulted; the result is a pure function of the atom
// names and their grouping into residues.
func ByResidueNames(s *mol.Structure, interResidue bool) []mol.Bond {
	var bonds []mol.Bond
	runs := residues(s)
	for ri, run := range runs {
		index := make(map[string]int, run.end-run.start)
		for i := run.start; i < run.end; i++ {
			name := s.Atoms[i].Name
			if _, ok := index[name]; !ok {
				index[name] = i
			}
		}
		for _, pair := range residuePairs(run.residue) {
			a, oka := index[pair[0]]
			b, okb := index[pair[1]]
			if oka && okb {
				bonds = append(bonds, newBond(a, b, mol.OrderSingle))
			}
		}

		if !interResidue || ri == 0 {
			continue
		}
		prev := runs[ri-1]
		if prev.chain != run.chain {
			continue
		}
		if !mol.IsAminoAcid(prev.residue) || !mol.IsAminoAcid(run.residue) {
			continue
		}
		c := findAtom(s, prev, "C")
		n := findAtom(s, run, "N")
		if c >= 0 && n >= 0 {
			bonds = append(bonds, newBond(c, n, mol.OrderSingle))
		}
	}
	return sortBonds(bonds)
}

func findAtom(s *mol.Structure, run residueRun, name string) int {
	for i := run.start; i < run.end; i++ {
		if s.Atoms[i].Name == name {
			return i
		}
	}
	return -1
}

func newBond(a, b int, order mol.BondOrder) mol.Bond {
	if a > b {
		a, b = b, a
	}
	return mol.Bond{A: a, B: b, Order: order}
}

// Sorted reports whether the bond slice is sorted by (A, B). Exposed for
// tests of readers that merge bond sources.
func Sorted(bonds []mol.Bond) bool {
	return sort.SliceIsSorted(bonds, func(i, j int) bool {
		if bonds[i].A != bonds[j].A {
			return bonds[i].A < bonds[j].A
		}
		return bonds[i].B < bonds[j].B
	})
}
