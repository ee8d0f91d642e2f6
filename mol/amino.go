package mol

import "github.com/TuftsBCB/seq"

// AminoThreeToOne maps three letter amino acid component ids to their
// single letter representation.
var AminoThreeToOne = map[string]seq.Residue{
	"ALA": 'A', "ARG": 'R', "ASN": 'N', "ASP": 'D', "CYS": 'C',
	"GLU": 'E', "GLN": 'Q', "GLY": 'G', "HIS": 'H', "ILE": 'I',
	"LEU": 'L', "LYS": 'K', "MET": 'M', "PHE": 'F', "PRO": 'P',
	"SER": 'S', "THR": 'T', "TRP": 'W', "TYR": 'Y', "VAL": 'V',
	"SEC": 'U', "PYL": 'O',
}

// IsAminoAcid reports whether the given three letter component id names a
// standard amino acid.
func IsAminoAcid(residue string) bool {
	_, ok := AminoThreeToOne[residue]
	return ok
}

var solventNames = map[string]bool{
	"HOH": true, "DOD": true, "WAT": true, "SOL": true,
}

// IsSolvent reports whether the given component id names a water residue.
func IsSolvent(residue string) bool {
	return solventNames[residue]
}

// Sequence returns the one letter amino acid sequence of the given chain,
// in atom-array order with one residue per distinct residue id. Non
// amino acid residues are skipped.
func (s *Structure) Sequence(chain string) []seq.Residue {
	var sequence []seq.Residue
	lastID, lastIns := 0, byte(0)
	first := true
	for i := range s.Atoms {
		a := &s.Atoms[i]
		if a.Chain != chain {
			continue
		}
		if !first && a.ResID == lastID && a.InsCode == lastIns {
			continue
		}
		first = false
		lastID, lastIns = a.ResID, a.InsCode
		if r, ok := AminoThreeToOne[a.Residue]; ok {
			sequence = append(sequence, r)
		}
	}
	return sequence
}
