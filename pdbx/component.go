package pdbx

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/cif"
	"github.com/TuftsBCB/structure"

	"github.com/bcblab/molio/mol"
)

// readComponent reads the chem_comp_atom category, the representation used
// by component definition files for small molecules. Unlike atom_site,
// this category comes with its own bond table (chem_comp_bond), including
// bond orders.
func (e *Entry) readComponent(b *cif.DataBlock) error {
	loop := categoryLoop(b, "chem_comp_atom.atom_id",
		"chem_comp_atom.comp_id", "chem_comp_atom.type_symbol",
		"chem_comp_atom.model_cartn_x", "chem_comp_atom.model_cartn_y",
		"chem_comp_atom.model_cartn_z", "chem_comp_atom.charge",
		"chem_comp_atom.pdbx_ordinal")
	if loop == nil {
		return fmt.Errorf("pdbx: data block '%s' has neither atom_site "+
			"nor chem_comp_atom categories", b.Name)
	}

	names := stringColumn(loop, "chem_comp_atom.atom_id")
	if names == nil {
		return fmt.Errorf("pdbx: chem_comp_atom category has no atom ids")
	}
	xs := floatColumn(loop, "chem_comp_atom.model_cartn_x")
	ys := floatColumn(loop, "chem_comp_atom.model_cartn_y")
	zs := floatColumn(loop, "chem_comp_atom.model_cartn_z")
	if xs == nil || ys == nil || zs == nil {
		// Some component files only carry computed ideal coordinates.
		xs = floatColumn(loop, "chem_comp_atom.pdbx_model_cartn_x_ideal")
		ys = floatColumn(loop, "chem_comp_atom.pdbx_model_cartn_y_ideal")
		zs = floatColumn(loop, "chem_comp_atom.pdbx_model_cartn_z_ideal")
	}
	if xs == nil || ys == nil || zs == nil {
		return fmt.Errorf("pdbx: chem_comp_atom category has no coordinates")
	}
	comps := stringColumn(loop, "chem_comp_atom.comp_id")
	elements := stringColumn(loop, "chem_comp_atom.type_symbol")
	charges := intColumn(loop, "chem_comp_atom.charge")
	ordinals := intColumn(loop, "chem_comp_atom.pdbx_ordinal")

	atoms := make([]mol.Atom, len(names))
	byName := make(map[string]int, len(names))
	for i := range names {
		atom := mol.Atom{
			Serial:    i + 1,
			Name:      names[i],
			ResID:     1,
			Het:       true,
			Occupancy: 1,
			Coords:    structure.Coords{X: xs[i], Y: ys[i], Z: zs[i]},
		}
		if ordinals != nil {
			atom.Serial = ordinals[i]
		}
		if comps != nil {
			atom.Residue = comps[i]
		}
		if elements != nil {
			atom.Element = elements[i]
		}
		if charges != nil {
			atom.Charge = charges[i]
		}
		atoms[i] = atom
		if _, ok := byName[atom.Name]; !ok {
			byName[atom.Name] = i
		}
	}
	e.Structure.Atoms = atoms
	e.Structure.Bonds = componentBonds(b, byName)
	return nil
}

func componentBonds(b *cif.DataBlock, byName map[string]int) []mol.Bond {
	loop := categoryLoop(b, "chem_comp_bond.atom_id_1",
		"chem_comp_bond.atom_id_2", "chem_comp_bond.value_order")
	if loop == nil {
		return nil
	}
	firsts := stringColumn(loop, "chem_comp_bond.atom_id_1")
	seconds := stringColumn(loop, "chem_comp_bond.atom_id_2")
	orders := stringColumn(loop, "chem_comp_bond.value_order")
	if firsts == nil || seconds == nil {
		return nil
	}

	var bonds []mol.Bond
	for i := range firsts {
		a, oka := byName[firsts[i]]
		c, okc := byName[seconds[i]]
		if !oka || !okc {
			continue
		}
		if a > c {
			a, c = c, a
		}
		order := mol.OrderSingle
		if orders != nil {
			order = bondOrder(orders[i])
		}
		bonds = append(bonds, mol.Bond{A: a, B: c, Order: order})
	}
	return bonds
}

func bondOrder(s string) mol.BondOrder {
	switch strings.ToUpper(s) {
	case "SING":
		return mol.OrderSingle
	case "DOUB":
		return mol.OrderDouble
	case "TRIP":
		return mol.OrderTriple
	case "AROM":
		return mol.OrderAromatic
	}
	return mol.OrderUnknown
}
