package bond

import (
	"math"
	"sort"
	"strings"

	"github.com/TuftsBCB/structure"

	"github.com/bcblab/molio/mol"
)

// Single-bond covalent radii in Angstroms (Cordero et al. 2008), for the
// elements that show up in PDB entries with any regularity.
var covalentRadius = map[string]float64{
	"H": 0.31, "D": 0.31, "C": 0.76, "N": 0.71, "O": 0.66,
	"S": 1.05, "P": 1.07, "SE": 1.20, "B": 0.84,
	"F": 0.57, "CL": 1.02, "BR": 1.20, "I": 1.39,
	"LI": 1.28, "NA": 1.66, "K": 2.03, "MG": 1.41, "CA": 1.76,
	"MN": 1.39, "FE": 1.32, "CO": 1.26, "NI": 1.24, "CU": 1.32,
	"ZN": 1.22, "MO": 1.54, "W": 1.62,
}

const (
	// Pair distances are accepted within the summed covalent radii plus
	// this tolerance.
	distanceTolerance = 0.45
	// Anything closer than this is an altloc artifact, not a bond.
	minBondDistance = 0.4
)

// ByDistance infers bonds from interatomic distances and covalent radii.
// Two atoms are bonded when their distance lies in
// (minBondDistance, r1+r2+tolerance]. Atoms whose element cannot be
// determined never bond. When interResidue is false, only pairs within the
// same residue are considered.
//
// The result is deduplicated, single order and sorted by (A, B).
func ByDistance(s *mol.Structure, interResidue bool) []mol.Bond {
	radii := make([]float64, len(s.Atoms))
	for i := range s.Atoms {
		radii[i] = covalentRadius[elementOf(&s.Atoms[i])]
	}

	var bonds []mol.Bond
	for i := range s.Atoms {
		if radii[i] == 0 {
			continue
		}
		for j := i + 1; j < len(s.Atoms); j++ {
			if radii[j] == 0 {
				continue
			}
			if !interResidue && !sameResidue(&s.Atoms[i], &s.Atoms[j]) {
				continue
			}
			d := dist(s.Atoms[i].Coords, s.Atoms[j].Coords)
			if d > minBondDistance && d <= radii[i]+radii[j]+distanceTolerance {
				bonds = append(bonds, mol.Bond{A: i, B: j, Order: mol.OrderSingle})
			}
		}
	}
	return sortBonds(bonds)
}

func sameResidue(a, b *mol.Atom) bool {
	return a.Chain == b.Chain && a.ResID == b.ResID && a.InsCode == b.InsCode
}

func dist(a, b structure.Coords) float64 {
	dx, dy, dz := a.X-b.X, a.Y-b.Y, a.Z-b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// elementOf returns the element symbol of an atom, upper-cased. When the
// record has no element field, the symbol is guessed from the atom name.
// A name that is itself a two letter element ("FE", "ZN") is taken at face
// value, except inside amino acid residues where names like "CA" and "CD"
// are carbons, not metals.
func elementOf(a *mol.Atom) string {
	if a.Element != "" {
		return strings.ToUpper(strings.TrimSpace(a.Element))
	}
	name := strings.TrimLeft(strings.TrimSpace(a.Name), "0123456789")
	if name == "" {
		return ""
	}
	name = strings.ToUpper(name)
	if len(name) == 2 && !mol.IsAminoAcid(a.Residue) {
		if _, ok := covalentRadius[name]; ok {
			return name
		}
	}
	return name[:1]
}

func sortBonds(bonds []mol.Bond) []mol.Bond {
	sort.Slice(bonds, func(i, j int) bool {
		if bonds[i].A != bonds[j].A {
			return bonds[i].A < bonds[j].A
		}
		return bonds[i].B < bonds[j].B
	})
	// Dedup in place. Readers can feed overlapping sources (e.g. CONECT
	// records listing both directions).
	out := bonds[:0]
	for i, b := range bonds {
		if i > 0 && b.A == out[len(out)-1].A && b.B == out[len(out)-1].B {
			continue
		}
		out = append(out, b)
	}
	return out
}
