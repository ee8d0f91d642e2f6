package molio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bcblab/molio/mol"
)

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	fp := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(fp, []byte(data), 0o666); err != nil {
		t.Fatalf("%s", err)
	}
	return fp
}

func atomLine(record string, serial int, name, residue, chain string,
	resID int, x float64) string {

	return fmt.Sprintf(
		"%-6s%5d %-4s %3s %s%4d    %8.3f%8.3f%8.3f%6.2f%6.2f          %2s  \n",
		record, serial, name, residue, chain, resID, x, 0.0, 0.0, 1.0, 0.0,
		strings.ToUpper(name[:1]))
}

// glycine is a single GLY residue with realistic backbone geometry and no
// CONECT records, so Load has to infer bonds by distance.
func glycine() string {
	var b strings.Builder
	b.WriteString(atomLine("ATOM", 1, "N", "GLY", "A", 1, 0.000))
	b.WriteString(atomLine("ATOM", 2, "CA", "GLY", "A", 1, 1.458))
	b.WriteString(atomLine("ATOM", 3, "C", "GLY", "A", 1, 2.981))
	b.WriteString(atomLine("HETATM", 4, "O", "HOH", "A", 101, 9.000))
	b.WriteString("END\n")
	return b.String()
}

const cifEntry = `data_test
_entry.id test
loop_
_atom_site.group_PDB
_atom_site.id
_atom_site.auth_atom_id
_atom_site.type_symbol
_atom_site.auth_comp_id
_atom_site.auth_asym_id
_atom_site.auth_seq_id
_atom_site.Cartn_x
_atom_site.Cartn_y
_atom_site.Cartn_z
ATOM 1 N N ALA A 1 0.0 0.0 0.0
ATOM 2 CA C ALA A 1 1.5 0.0 0.0
ATOM 3 C C ALA A 1 3.0 0.0 0.0
ATOM 4 O O ALA A 1 3.5 1.0 0.0
ATOM 5 CB C ALA A 1 1.5 1.5 0.0
HETATM 6 O O HOH A 101 9.0 9.0 9.0
loop_
_struct_conf.id
_struct_conf.beg_auth_seq_id
_struct_conf.end_auth_seq_id
_struct_conf.end_auth_asym_id
HELX_P1 1 1 A
`

func TestLoadUnsupportedExtension(t *testing.T) {
	fp := writeFile(t, "structure.xyz", "whatever\n")
	if _, err := Load(fp, Options{}); err == nil {
		t.Fatal("expected an error for an unsupported extension")
	}
}

func TestLoadPDB(t *testing.T) {
	fp := writeFile(t, "gly.pdb", glycine())
	res, err := Load(fp, Options{})
	if err != nil {
		t.Fatalf("%s", err)
	}
	s := res.Structure
	if len(s.Atoms) != 4 {
		t.Fatalf("got %d atoms, want 4", len(s.Atoms))
	}
	// No CONECT records, so the bond set must come from distance
	// inference.
	if !s.HasBonds() {
		t.Fatal("structure has no bonds after import")
	}
	if res.Source != "local" {
		t.Errorf("source = %q, want %q", res.Source, "local")
	}
	if res.Frames != nil {
		t.Errorf("single model import retained a frame source")
	}
	if s.SecStruct != nil {
		t.Errorf("PDB import fabricated a secondary-structure annotation")
	}
}

func TestLoadPDBOptions(t *testing.T) {
	fp := writeFile(t, "gly.pdb", glycine())
	res, err := Load(fp, Options{
		Name:          "glycine",
		Centre:        true,
		RemoveSolvent: true,
	})
	if err != nil {
		t.Fatalf("%s", err)
	}
	s := res.Structure
	if s.Name != "glycine" {
		t.Errorf("name = %q, want %q", s.Name, "glycine")
	}
	if len(s.Atoms) != 3 {
		t.Fatalf("got %d atoms after solvent removal, want 3", len(s.Atoms))
	}
	var cx float64
	for _, a := range s.Atoms {
		cx += a.Coords.X
	}
	if cx < -1e-9 || cx > 1e-9 {
		t.Errorf("structure not centred, centroid x sum = %g", cx)
	}
	for _, b := range s.Bonds {
		if b.A >= len(s.Atoms) || b.B >= len(s.Atoms) {
			t.Fatalf("bond %+v points outside the atom array", b)
		}
	}
}

func TestLoadCIF(t *testing.T) {
	fp := writeFile(t, "ala.cif", cifEntry)
	res, err := Load(fp, Options{})
	if err != nil {
		t.Fatalf("%s", err)
	}
	s := res.Structure
	if len(s.Atoms) != 6 {
		t.Fatalf("got %d atoms, want 6", len(s.Atoms))
	}
	// PDBx carries no bonds; templates must fill them in.
	if !s.HasBonds() {
		t.Fatal("structure has no bonds after import")
	}
	if s.SecStruct == nil {
		t.Fatal("secondary structure annotation missing")
	}
	if len(s.SecStruct) != len(s.Atoms) {
		t.Fatalf("got %d labels for %d atoms",
			len(s.SecStruct), len(s.Atoms))
	}
	if s.SecStruct[0] != mol.SSHelix {
		t.Errorf("first atom label = %s, want helix", s.SecStruct[0])
	}
	if s.SecStruct[5] != mol.SSNone {
		t.Errorf("water label = %s, want none", s.SecStruct[5])
	}
}

func TestLoadCIFWithoutAnnotation(t *testing.T) {
	// Strip the struct_conf category; the import must still succeed.
	data := cifEntry[:strings.Index(cifEntry, "loop_\n_struct_conf")]
	fp := writeFile(t, "bare.cif", data)
	res, err := Load(fp, Options{})
	if err != nil {
		t.Fatalf("%s", err)
	}
	if res.Structure.SecStruct != nil {
		t.Errorf("annotation present despite missing struct_conf")
	}
}

func TestLoadPDBxExtension(t *testing.T) {
	fp := writeFile(t, "ala.pdbx", cifEntry)
	if _, err := Load(fp, Options{}); err != nil {
		t.Fatalf(".pdbx extension rejected: %s", err)
	}
}

func TestLoadMultiModelPDB(t *testing.T) {
	var b strings.Builder
	b.WriteString("MODEL        1\n")
	b.WriteString(atomLine("ATOM", 1, "N", "GLY", "A", 1, 0.000))
	b.WriteString(atomLine("ATOM", 2, "CA", "GLY", "A", 1, 1.458))
	b.WriteString("ENDMDL\n")
	b.WriteString("MODEL        2\n")
	b.WriteString(atomLine("ATOM", 1, "N", "GLY", "A", 1, 0.500))
	b.WriteString(atomLine("ATOM", 2, "CA", "GLY", "A", 1, 1.958))
	b.WriteString("ENDMDL\n")

	fp := writeFile(t, "nmr.pdb", b.String())
	res, err := Load(fp, Options{})
	if err != nil {
		t.Fatalf("%s", err)
	}
	if res.Frames == nil {
		t.Fatal("multi-model import did not retain its frame source")
	}
	if res.Frames.ModelCount() != 2 {
		t.Errorf("model count = %d, want 2", res.Frames.ModelCount())
	}
}
