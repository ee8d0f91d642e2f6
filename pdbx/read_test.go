package pdbx

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bcblab/molio/mol"
)

const smallEntry = `data_1abc
_entry.id 1ABC
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
_atom_site.occupancy
_atom_site.B_iso_or_equiv
_atom_site.pdbx_PDB_model_num
ATOM 1 N N MET A 1 11.104 6.134 -6.504 1.00 23.11 1
ATOM 2 CA C MET A 1 11.639 6.071 -5.147 1.00 22.04 1
HETATM 3 O O HOH A 101 5.000 5.000 5.000 1.00 40.00 1
ATOM 1 N N MET A 1 12.000 6.000 -6.000 1.00 23.11 2
loop_
_pdbx_struct_oper_list.id
_pdbx_struct_oper_list.matrix[1][1]
_pdbx_struct_oper_list.matrix[1][2]
_pdbx_struct_oper_list.matrix[1][3]
_pdbx_struct_oper_list.vector[1]
_pdbx_struct_oper_list.matrix[2][1]
_pdbx_struct_oper_list.matrix[2][2]
_pdbx_struct_oper_list.matrix[2][3]
_pdbx_struct_oper_list.vector[2]
_pdbx_struct_oper_list.matrix[3][1]
_pdbx_struct_oper_list.matrix[3][2]
_pdbx_struct_oper_list.matrix[3][3]
_pdbx_struct_oper_list.vector[3]
1 1.0 0.0 0.0 0.0 0.0 1.0 0.0 0.0 0.0 0.0 1.0 0.0
2 -1.0 0.0 0.0 10.5 0.0 -1.0 0.0 0.0 0.0 0.0 1.0 0.0
`

func TestReadAtomSites(t *testing.T) {
	e, err := Read(strings.NewReader(smallEntry))
	if err != nil {
		t.Fatalf("%s", err)
	}
	// The file writes "1ABC"; the id must come out lowercased no matter
	// how the file cases it.
	if e.Id != "1abc" {
		t.Errorf("entry id = %q, want %q", e.Id, "1abc")
	}

	atoms := e.Structure.Atoms
	// The model-2 row must not add a fourth atom.
	if len(atoms) != 3 {
		t.Fatalf("got %d atoms, want 3", len(atoms))
	}

	ca := atoms[1]
	if ca.Serial != 2 || ca.Name != "CA" || ca.Element != "C" {
		t.Errorf("unexpected CA identity: %+v", ca)
	}
	if ca.Residue != "MET" || ca.Chain != "A" || ca.ResID != 1 {
		t.Errorf("unexpected CA residue fields: %+v", ca)
	}
	if ca.Coords.X != 11.639 || ca.BFactor != 22.04 || ca.Occupancy != 1.0 {
		t.Errorf("unexpected CA numeric fields: %+v", ca)
	}
	if ca.Het {
		t.Errorf("CA marked HETATM")
	}
	if water := atoms[2]; !water.Het || water.Residue != "HOH" {
		t.Errorf("unexpected water atom: %+v", water)
	}

	// atom_site carries no bond table.
	if e.Structure.HasBonds() {
		t.Errorf("expected no bonds, got %d", len(e.Structure.Bonds))
	}
}

func TestAssemblies(t *testing.T) {
	e, err := Read(strings.NewReader(smallEntry))
	if err != nil {
		t.Fatalf("%s", err)
	}
	transforms, err := Assemblies(e.Block)
	if err != nil {
		t.Fatalf("%s", err)
	}
	if len(transforms) != 2 {
		t.Fatalf("got %d transforms, want 2", len(transforms))
	}
	if !transforms[0].IsIdentity() {
		t.Errorf("first operation is not the identity: %+v", transforms[0])
	}
	want := mol.Transform{
		Rotation:    [3][3]float64{{-1, 0, 0}, {0, -1, 0}, {0, 0, 1}},
		Translation: [3]float64{10.5, 0, 0},
	}
	if diff := cmp.Diff(want, transforms[1]); diff != "" {
		t.Errorf("second operation mismatch (-want +got):\n%s", diff)
	}
}

func TestAssembliesAbsent(t *testing.T) {
	data := "data_x\n_entry.id x\n" + atomSiteHeader + caSite(1, "ALA", "A", 1)
	e, err := Read(strings.NewReader(data))
	if err != nil {
		t.Fatalf("%s", err)
	}
	transforms, err := Assemblies(e.Block)
	if err != nil || transforms != nil {
		t.Fatalf("got (%v, %v), want (nil, nil)", transforms, err)
	}
}

const componentEntry = `data_eoh
_chem_comp.id EOH
loop_
_chem_comp_atom.comp_id
_chem_comp_atom.atom_id
_chem_comp_atom.type_symbol
_chem_comp_atom.model_Cartn_x
_chem_comp_atom.model_Cartn_y
_chem_comp_atom.model_Cartn_z
_chem_comp_atom.charge
_chem_comp_atom.pdbx_ordinal
EOH C1 C -0.926 0.471 0.000 0 1
EOH C2 C 0.560 0.161 0.000 0 2
EOH O O -1.165 1.867 0.000 0 3
loop_
_chem_comp_bond.comp_id
_chem_comp_bond.atom_id_1
_chem_comp_bond.atom_id_2
_chem_comp_bond.value_order
EOH C1 C2 SING
EOH C1 O SING
`

func TestReadComponentFallback(t *testing.T) {
	e, err := Read(strings.NewReader(componentEntry))
	if err != nil {
		t.Fatalf("%s", err)
	}
	atoms := e.Structure.Atoms
	if len(atoms) != 3 {
		t.Fatalf("got %d atoms, want 3", len(atoms))
	}
	if atoms[0].Name != "C1" || atoms[0].Residue != "EOH" || !atoms[0].Het {
		t.Errorf("unexpected first atom: %+v", atoms[0])
	}

	want := []mol.Bond{
		{A: 0, B: 1, Order: mol.OrderSingle},
		{A: 0, B: 2, Order: mol.OrderSingle},
	}
	if diff := cmp.Diff(want, e.Structure.Bonds); diff != "" {
		t.Errorf("bonds mismatch (-want +got):\n%s", diff)
	}
}

func TestReadNoAtoms(t *testing.T) {
	if _, err := Read(strings.NewReader("data_x\n_entry.id x\n")); err == nil {
		t.Fatal("expected an error for a block without atoms")
	}
}
