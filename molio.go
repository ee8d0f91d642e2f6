/*
Package molio imports molecular structure files for downstream scene
construction. Given a file path it picks a reader by extension (.pdb, or
.pdbx/.cif), guarantees the resulting structure has a bond set (inferring
one when the source format carries none), resolves secondary structure
from mmCIF annotation categories, and collects biological-assembly
transforms when the file has them.

The Result returned by Load is the hand-off boundary: whatever builds
scene objects from it (3D hosts, exporters) is outside this module.
*/
package molio

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bcblab/molio/bond"
	"github.com/bcblab/molio/mol"
	"github.com/bcblab/molio/pdb"
	"github.com/bcblab/molio/pdbx"
)

// Options configures a Load call. The zero value imports the structure
// as-is under its file name.
type Options struct {
	// Name overrides the structure name (which otherwise defaults to the
	// file's base name).
	Name string

	// Centre translates the structure (all frames) so its centroid sits
	// at the origin.
	Centre bool

	// RemoveSolvent drops water residues after import.
	RemoveSolvent bool
}

// Result is what an import hands to the host: the annotated structure
// plus the metadata a scene builder consumes.
type Result struct {
	Structure *mol.Structure

	// Frames is the raw PDB entry when, and only when, the source file
	// holds more than one model; scene builders use it for trajectory
	// setup. Single-model imports leave it nil.
	Frames *pdb.Entry

	// Assemblies holds the biological-assembly transforms, nil when the
	// file has none (or its assembly records were malformed).
	Assemblies []mol.Transform

	// Source is a provenance tag; Load always sets it to "local".
	Source string
}

// Load imports the structure file at the given path.
//
// The format is picked by extension: ".pdb" for PDB, ".pdbx" or ".cif"
// for PDBx/mmCIF; any other extension is an error. Whatever the source,
// the returned structure has a non-empty bond set (when it has at least
// two atoms): bonds missing from a PDB file are inferred from interatomic
// distances, bonds missing from a PDBx/mmCIF file from residue-name
// templates.
//
// Expected absences are tolerated: missing secondary-structure annotation
// and missing or malformed assembly records simply leave the corresponding
// fields unset. A file that fails to parse as its format is an error.
func Load(path string, opts Options) (*Result, error) {
	res := &Result{Source: "local"}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".pdb":
		entry, err := pdb.ReadFile(path)
		if err != nil {
			return nil, err
		}
		res.Structure = entry.Structure
		if transforms, err := entry.Assemblies(); err == nil {
			res.Assemblies = transforms
		}
		if entry.ModelCount() > 1 {
			res.Frames = entry
		}
		if !res.Structure.HasBonds() {
			res.Structure.Bonds = bond.ByDistance(res.Structure, true)
		}

	case ".pdbx", ".cif":
		entry, err := pdbx.ReadFile(path)
		if err != nil {
			return nil, err
		}
		res.Structure = entry.Structure
		ss, err := pdbx.SecondaryStructure(entry.Structure, entry.Block)
		if err != nil && !errors.Is(err, pdbx.ErrNoSecondaryStructure) {
			return nil, err
		}
		res.Structure.SecStruct = ss
		if transforms, err := pdbx.Assemblies(entry.Block); err == nil {
			res.Assemblies = transforms
		}
		if !res.Structure.HasBonds() {
			res.Structure.Bonds = bond.ByResidueNames(res.Structure, true)
		}

	default:
		return nil, fmt.Errorf("molio: unsupported structure format %q "+
			"(want .pdb, .pdbx or .cif)", ext)
	}

	if opts.RemoveSolvent {
		res.Structure.RemoveSolvent()
	}
	if opts.Centre {
		res.Structure.Centre()
	}
	if opts.Name != "" {
		res.Structure.Name = opts.Name
	}
	return res, nil
}
