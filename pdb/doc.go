/*
Package pdb reads structures from PDB formatted files. All ATOM and HETATM
records are kept, along with the per-atom extras the format carries
(b-factor, occupancy, formal charge, element, serial number). CONECT
records become the structure's bond set, every MODEL becomes a coordinate
frame, and REMARK 350 blocks are retained so biological-assembly transforms
can be extracted after the fact.
*/
package pdb
