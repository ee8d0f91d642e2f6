/*
Package pdbx reads structures from PDBx/mmCIF formatted files.

The package consumes only a small subset of the categories a PDBx file can
carry: atom_site for the atom array, chem_comp_atom/chem_comp_bond as a
small-molecule fallback when no atom_site records exist, struct_conf and
struct_sheet_range for secondary structure, and pdbx_struct_oper_list for
biological-assembly transforms. Raw access to everything else is available
through the underlying cif.DataBlock, which every Entry exposes.

PDBx files carry no bond table for polymer structures; callers that need
connectivity should fall back to the bond package after reading.
*/
package pdbx
