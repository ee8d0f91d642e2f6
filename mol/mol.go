package mol

import (
	"fmt"

	"github.com/TuftsBCB/structure"
)

// Atom is a single ATOM or HETATM record. Chain and residue identifiers use
// the author-assigned ("auth") numbering, which is what both the PDB format
// and the auth_* items of PDBx/mmCIF carry.
type Atom struct {
	Serial  int
	Name    string
	Element string
	Residue string // three-letter component id, e.g. "ALA", "HOH"
	ResID   int
	InsCode byte
	Chain   string
	Het     bool
	AltLoc  byte

	Occupancy float64
	BFactor   float64
	Charge    int

	Coords structure.Coords
}

// BondOrder describes the multiplicity of a bond. Readers that have no order
// information (distance inference, CONECT records) use Single.
type BondOrder int8

const (
	OrderUnknown BondOrder = iota
	OrderSingle
	OrderDouble
	OrderTriple
	OrderAromatic
)

// Bond connects the atoms at indices A and B of a Structure's atom array.
// A < B always holds for bonds produced by this module's readers.
type Bond struct {
	A, B  int
	Order BondOrder
}

// SecStruct is a per-atom secondary-structure label.
type SecStruct int8

const (
	// SSNone marks atoms that are not part of a standard amino acid.
	SSNone SecStruct = iota
	SSHelix
	SSStrand
	SSLoop
)

func (ss SecStruct) String() string {
	switch ss {
	case SSNone:
		return "none"
	case SSHelix:
		return "helix"
	case SSStrand:
		return "strand"
	case SSLoop:
		return "loop"
	}
	return fmt.Sprintf("SecStruct(%d)", int8(ss))
}

// Structure is an ordered atom array with its bond set and, when the source
// file holds more than one model, one coordinate frame per model.
//
// Invariant: when Frames is non-empty, every frame has exactly len(Atoms)
// coordinates and Frames[0][i] equals Atoms[i].Coords.
type Structure struct {
	Name  string
	Atoms []Atom
	Bonds []Bond

	// Frames holds the coordinates of every model in the source file.
	// It is empty for single-model sources; the model-1 coordinates are
	// then only in the Atoms themselves.
	Frames [][]structure.Coords

	// SecStruct is a per-atom secondary-structure annotation, aligned with
	// Atoms. It is nil when the source carried no annotation.
	SecStruct []SecStruct
}

// ModelCount reports how many coordinate frames the structure carries.
// A structure without explicit frames has one model.
func (s *Structure) ModelCount() int {
	if len(s.Frames) == 0 {
		return 1
	}
	return len(s.Frames)
}

// HasBonds reports whether the bond set is non-empty.
func (s *Structure) HasBonds() bool {
	return len(s.Bonds) > 0
}

// Chains returns the distinct chain identifiers in order of first
// appearance.
func (s *Structure) Chains() []string {
	seen := make(map[string]bool, 4)
	var chains []string
	for i := range s.Atoms {
		c := s.Atoms[i].Chain
		if !seen[c] {
			seen[c] = true
			chains = append(chains, c)
		}
	}
	return chains
}

// Centre translates every coordinate frame so that its centroid sits at the
// origin. The model-1 coordinates stored in the atoms are kept in sync.
func (s *Structure) Centre() {
	if len(s.Atoms) == 0 {
		return
	}
	if len(s.Frames) == 0 {
		s.centreAtoms()
		return
	}
	for _, frame := range s.Frames {
		centreCoords(frame)
	}
	for i := range s.Atoms {
		s.Atoms[i].Coords = s.Frames[0][i]
	}
}

func atomCoords(atoms []Atom) []structure.Coords {
	cs := make([]structure.Coords, len(atoms))
	for i := range atoms {
		cs[i] = atoms[i].Coords
	}
	return cs
}

func centreCoords(cs []structure.Coords) {
	var cx, cy, cz float64
	for _, c := range cs {
		cx += c.X
		cy += c.Y
		cz += c.Z
	}
	n := float64(len(cs))
	cx, cy, cz = cx/n, cy/n, cz/n
	for i := range cs {
		cs[i].X -= cx
		cs[i].Y -= cy
		cs[i].Z -= cz
	}
}

func (s *Structure) centreAtoms() {
	cs := atomCoords(s.Atoms)
	centreCoords(cs)
	for i := range s.Atoms {
		s.Atoms[i].Coords = cs[i]
	}
}

// RemoveSolvent drops every atom belonging to a water residue and reindexes
// the bond set, the secondary-structure annotation and all coordinate
// frames accordingly. Bonds touching a removed atom are dropped.
func (s *Structure) RemoveSolvent() {
	s.Filter(func(a Atom) bool { return !IsSolvent(a.Residue) })
}

// Filter keeps only the atoms for which keep returns true, reindexing the
// bond set, annotation and frames. Bonds with a removed endpoint are
// dropped.
func (s *Structure) Filter(keep func(Atom) bool) {
	newIndex := make([]int, len(s.Atoms))
	kept := s.Atoms[:0]
	n := 0
	for i := range s.Atoms {
		if keep(s.Atoms[i]) {
			newIndex[i] = n
			kept = append(kept, s.Atoms[i])
			n++
		} else {
			newIndex[i] = -1
		}
	}
	s.Atoms = kept

	bonds := s.Bonds[:0]
	for _, b := range s.Bonds {
		a, bb := newIndex[b.A], newIndex[b.B]
		if a < 0 || bb < 0 {
			continue
		}
		bonds = append(bonds, Bond{A: a, B: bb, Order: b.Order})
	}
	s.Bonds = bonds

	if s.SecStruct != nil {
		ss := s.SecStruct[:0]
		for i, v := range s.SecStruct {
			if newIndex[i] >= 0 {
				ss = append(ss, v)
			}
		}
		s.SecStruct = ss
	}

	for fi, frame := range s.Frames {
		f := frame[:0]
		for i, c := range frame {
			if newIndex[i] >= 0 {
				f = append(f, c)
			}
		}
		s.Frames[fi] = f
	}
}
