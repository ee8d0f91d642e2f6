package pdbx

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/BurntSushi/cif"
	"github.com/TuftsBCB/structure"

	"github.com/bcblab/molio/mol"
)

// Entry is a single data block of a PDBx/mmCIF file together with the
// structure read from it.
type Entry struct {
	// The underlying CIF data block. This provides raw access to
	// attributes of a PDBx file that are not captured by this package.
	Block *cif.DataBlock

	// The entry id ("entry.id"), normalized to lowercase. The CIF reader
	// lowercases block names and tags but leaves data values as written.
	Id string

	Structure *mol.Structure
}

// ReadFile reads a PDBx/mmCIF entry from the named file. If the file name
// ends with ".gz", gzip decompression is used.
func ReadFile(fp string) (*Entry, error) {
	f, err := os.Open(fp)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var reader io.Reader = f
	if path.Ext(fp) == ".gz" {
		if reader, err = gzip.NewReader(reader); err != nil {
			return nil, err
		}
	}
	e, err := Read(reader)
	if err != nil {
		return nil, err
	}
	e.Structure.Name = path.Base(fp)
	return e, nil
}

// Read reads exactly one PDBx entry from the reader given. If there are 0
// entries or more than 1 entry, an error is returned.
//
// An error is also returned if the reader could not be interpreted as a
// valid PDBx/mmCIF file (which must be a valid CIF file).
func Read(r io.Reader) (*Entry, error) {
	cf, err := cif.Read(r)
	if err != nil {
		return nil, err
	}
	if len(cf.Blocks) != 1 {
		return nil, fmt.Errorf("pdbx: expected one data block but got %d",
			len(cf.Blocks))
	}
	for _, block := range cf.Blocks {
		return ReadBlock(block)
	}
	panic("unreachable")
}

// ReadBlock converts a PDBx/mmCIF data block to an Entry. It is exposed so
// that clients can freely mix Entry values and their underlying data
// blocks.
//
// When the block has no atom_site category, the chem_comp_atom category is
// read instead, so that component definition files (small molecules) still
// yield a structure. An error is returned when neither category is
// present.
func ReadBlock(b *cif.DataBlock) (*Entry, error) {
	e := &Entry{
		Block:     b,
		Id:        strings.ToLower(value(b, "entry.id").String()),
		Structure: &mol.Structure{Name: b.Name},
	}
	if hasTag(b, "atom_site.id") {
		if err := e.readAtomSites(b); err != nil {
			return nil, err
		}
		return e, nil
	}
	if err := e.readComponent(b); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Entry) readAtomSites(b *cif.DataBlock) error {
	loop, ok := b.Loops["atom_site.id"]
	if !ok {
		return fmt.Errorf("pdbx: atom_site category is not a loop")
	}

	ids := intColumn(loop, "atom_site.id")
	n := len(ids)
	xs := floatColumn(loop, "atom_site.cartn_x")
	ys := floatColumn(loop, "atom_site.cartn_y")
	zs := floatColumn(loop, "atom_site.cartn_z")
	if xs == nil || ys == nil || zs == nil {
		return fmt.Errorf("pdbx: atom_site category has no coordinates")
	}

	groups := stringColumn(loop, "atom_site.group_pdb")
	names := firstStringColumn(loop,
		"atom_site.auth_atom_id", "atom_site.label_atom_id")
	elements := stringColumn(loop, "atom_site.type_symbol")
	comps := firstStringColumn(loop,
		"atom_site.auth_comp_id", "atom_site.label_comp_id")
	chains := firstStringColumn(loop,
		"atom_site.auth_asym_id", "atom_site.label_asym_id")
	seqids := firstIntColumn(loop,
		"atom_site.auth_seq_id", "atom_site.label_seq_id")
	inscodes := stringColumn(loop, "atom_site.pdbx_pdb_ins_code")
	altlocs := stringColumn(loop, "atom_site.label_alt_id")
	occs := floatColumn(loop, "atom_site.occupancy")
	bfs := floatColumn(loop, "atom_site.b_iso_or_equiv")
	charges := intColumn(loop, "atom_site.pdbx_formal_charge")
	models := intColumn(loop, "atom_site.pdbx_pdb_model_num")

	// Only the first model is read; multi-frame import is a PDB-format
	// concern in this design.
	firstModel := 0
	if models != nil {
		firstModel = models[0]
	}

	atoms := make([]mol.Atom, 0, n)
	for i := 0; i < n; i++ {
		if models != nil && models[i] != firstModel {
			continue
		}
		atom := mol.Atom{
			Serial: ids[i],
			Coords: structure.Coords{X: xs[i], Y: ys[i], Z: zs[i]},
		}
		if names != nil {
			atom.Name = names[i]
		}
		if elements != nil {
			atom.Element = elements[i]
		}
		if comps != nil {
			atom.Residue = comps[i]
		}
		if chains != nil {
			atom.Chain = chains[i]
		}
		if seqids != nil {
			atom.ResID = seqids[i]
		}
		if inscodes != nil {
			atom.InsCode = markByte(inscodes[i])
		}
		if altlocs != nil {
			atom.AltLoc = markByte(altlocs[i])
		}
		if occs != nil {
			atom.Occupancy = occs[i]
		}
		if bfs != nil {
			atom.BFactor = bfs[i]
		}
		if charges != nil {
			atom.Charge = charges[i]
		}
		if groups != nil {
			atom.Het = groups[i] == "HETATM"
		}
		atoms = append(atoms, atom)
	}
	if len(atoms) == 0 {
		return fmt.Errorf("pdbx: atom_site category has no atoms")
	}
	e.Structure.Atoms = atoms
	return nil
}

// markByte interprets a single-character CIF value, where "." and "?" mean
// absent.
func markByte(s string) byte {
	if s == "" || s == "." || s == "?" {
		return 0
	}
	return s[0]
}

// hasTag reports whether the data block defines the given tag, either
// inside a loop or as a plain item.
func hasTag(b *cif.DataBlock, tag string) bool {
	if _, ok := b.Loops[tag]; ok {
		return true
	}
	_, ok := b.Items[tag]
	return ok
}

// value returns the data value tagged by "key". If it does not exist, then
// an empty string is returned (wrapped in a cif.Value).
func value(b *cif.DataBlock, key string) cif.Value {
	if v, ok := b.Items[key]; ok {
		return v
	}
	return cif.AsValue("")
}

// stringColumn returns the named column of the loop as strings, converting
// numeric columns when necessary. It returns nil when the loop has no such
// column.
func stringColumn(loop *cif.Loop, tag string) []string {
	if _, ok := loop.Columns[tag]; !ok {
		return nil
	}
	v := loop.Get(tag)
	if ss := v.Strings(); ss != nil {
		return ss
	}
	if is := v.Ints(); is != nil {
		ss := make([]string, len(is))
		for i, x := range is {
			ss[i] = strconv.Itoa(x)
		}
		return ss
	}
	if fs := v.Floats(); fs != nil {
		ss := make([]string, len(fs))
		for i, x := range fs {
			ss[i] = strconv.FormatFloat(x, 'g', -1, 64)
		}
		return ss
	}
	return nil
}

// intColumn returns the named column as ints. Values that do not parse
// (the "." and "?" markers in particular) become 0. It returns nil when
// the loop has no such column.
func intColumn(loop *cif.Loop, tag string) []int {
	if _, ok := loop.Columns[tag]; !ok {
		return nil
	}
	v := loop.Get(tag)
	if is := v.Ints(); is != nil {
		return is
	}
	ss := v.Strings()
	if ss == nil {
		return nil
	}
	is := make([]int, len(ss))
	for i, s := range ss {
		if x, err := strconv.Atoi(s); err == nil {
			is[i] = x
		}
	}
	return is
}

// floatColumn is intColumn's float64 counterpart.
func floatColumn(loop *cif.Loop, tag string) []float64 {
	if _, ok := loop.Columns[tag]; !ok {
		return nil
	}
	v := loop.Get(tag)
	if fs := v.Floats(); fs != nil {
		return fs
	}
	if is := v.Ints(); is != nil {
		fs := make([]float64, len(is))
		for i, x := range is {
			fs[i] = float64(x)
		}
		return fs
	}
	ss := v.Strings()
	if ss == nil {
		return nil
	}
	fs := make([]float64, len(ss))
	for i, s := range ss {
		if x, err := strconv.ParseFloat(s, 64); err == nil {
			fs[i] = x
		}
	}
	return fs
}

func firstStringColumn(loop *cif.Loop, tags ...string) []string {
	for _, tag := range tags {
		if col := stringColumn(loop, tag); col != nil {
			return col
		}
	}
	return nil
}

func firstIntColumn(loop *cif.Loop, tags ...string) []int {
	for _, tag := range tags {
		if col := intColumn(loop, tag); col != nil {
			return col
		}
	}
	return nil
}
