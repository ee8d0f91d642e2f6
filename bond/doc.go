/*
Package bond infers connectivity for structures whose source file carries no
bond information. Two deterministic fallbacks are provided: a geometric one
based on covalent radii (used for PDB-derived structures) and a
template-based one driven by residue and atom names (used for PDBx/mmCIF
derived structures, whose atom_site category has no bond table).
*/
package bond
