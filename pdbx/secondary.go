package pdbx

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/cif"

	"github.com/bcblab/molio/mol"
)

// ErrNoSecondaryStructure is returned by SecondaryStructure when the data
// block has no struct_conf category at all. Callers typically treat this
// as "no annotation" rather than a failure.
var ErrNoSecondaryStructure = errors.New(
	"pdbx: no secondary structure annotation")

// ClassifySS maps a struct_conf id string to a secondary-structure label:
// ids containing "HELX" are helices, ids containing "STRN" are strands and
// everything else (turns, bends, ...) is loop.
func ClassifySS(id string) mol.SecStruct {
	switch {
	case strings.Contains(id, "HELX"):
		return mol.SSHelix
	case strings.Contains(id, "STRN"):
		return mol.SSStrand
	default:
		return mol.SSLoop
	}
}

// SecondaryStructure computes a per-atom secondary-structure label from
// the struct_conf and struct_sheet_range categories of the data block.
// The result is aligned 1:1 with s.Atoms.
//
// Ranges use author-assigned chain ids and residue numbers, inclusive on
// both ends. Precedence is explicit: struct_sheet_range entries always
// override struct_conf entries claiming the same residue, and within a
// category later rows override earlier ones. Residues outside every range
// are loop; atoms that are not part of a standard amino acid are always
// SSNone, whatever the ranges say.
//
// ErrNoSecondaryStructure is returned iff struct_conf is absent,
// regardless of whether struct_sheet_range is present. The function has no
// other failure mode besides a struct_conf category missing its range
// fields, and is a pure function of its inputs.
func SecondaryStructure(s *mol.Structure, b *cif.DataBlock) ([]mol.SecStruct, error) {
	conf := categoryLoop(b, "struct_conf.id",
		"struct_conf.beg_auth_seq_id", "struct_conf.end_auth_seq_id",
		"struct_conf.end_auth_asym_id")
	if conf == nil {
		return nil, ErrNoSecondaryStructure
	}

	lookup := make(map[string]map[int]mol.SecStruct, 4)
	expand := func(chain string, start, end int, label mol.SecStruct) {
		byRes := lookup[chain]
		if byRes == nil {
			byRes = make(map[int]mol.SecStruct, end-start+1)
			lookup[chain] = byRes
		}
		for r := start; r <= end; r++ {
			byRes[r] = label
		}
	}

	starts := intColumn(conf, "struct_conf.beg_auth_seq_id")
	ends := intColumn(conf, "struct_conf.end_auth_seq_id")
	chains := stringColumn(conf, "struct_conf.end_auth_asym_id")
	ids := stringColumn(conf, "struct_conf.id")
	if starts == nil || ends == nil || chains == nil {
		return nil, fmt.Errorf("pdbx: struct_conf category is missing its " +
			"range fields")
	}
	for i := range starts {
		label := mol.SSLoop
		if ids != nil {
			label = ClassifySS(ids[i])
		}
		expand(chains[i], starts[i], ends[i], label)
	}

	// Sheet ranges have no meaningful id strings; they are always strands.
	// Expanding them last is what gives the sheet category precedence.
	sheet := categoryLoop(b, "struct_sheet_range.id",
		"struct_sheet_range.beg_auth_seq_id",
		"struct_sheet_range.end_auth_seq_id",
		"struct_sheet_range.end_auth_asym_id")
	if sheet != nil {
		starts := intColumn(sheet, "struct_sheet_range.beg_auth_seq_id")
		ends := intColumn(sheet, "struct_sheet_range.end_auth_seq_id")
		chains := stringColumn(sheet, "struct_sheet_range.end_auth_asym_id")
		if starts != nil && ends != nil && chains != nil {
			for i := range starts {
				expand(chains[i], starts[i], ends[i], mol.SSStrand)
			}
		}
	}

	out := make([]mol.SecStruct, len(s.Atoms))
	for i := range s.Atoms {
		a := &s.Atoms[i]
		if !mol.IsAminoAcid(a.Residue) {
			out[i] = mol.SSNone
			continue
		}
		label := mol.SSLoop
		if byRes, ok := lookup[a.Chain]; ok {
			if v, ok := byRes[a.ResID]; ok {
				label = v
			}
		}
		out[i] = label
	}
	return out, nil
}
