/*
Package mol defines the data model shared by the molio format readers: an
ordered atom array with per-atom fields, a bond set indexing into that
array, per-model coordinate frames, secondary-structure labels and
biological-assembly transforms.

A Structure is produced by one of the format packages (pdb, pdbx) and then
annotated or edited in place. Every edit that removes atoms keeps the bond
set consistent by reindexing it.
*/
package mol
