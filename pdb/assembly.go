package pdb

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bcblab/molio/mol"
)

// Assemblies extracts the biological-assembly transforms from the REMARK
// 350 block of the entry. Each BIOMT operation consists of three rows,
//
//	REMARK 350   BIOMT1   1  1.000000  0.000000  0.000000        0.00000
//	REMARK 350   BIOMT2   1  0.000000  1.000000  0.000000        0.00000
//	REMARK 350   BIOMT3   1  0.000000  0.000000  1.000000        0.00000
//
// giving one rotation row and one translation component each. Operations
// are returned in order of first appearance across all biomolecule blocks.
//
// A file without BIOMT rows yields (nil, nil). An error is returned only
// when BIOMT rows are present but malformed or incomplete.
func (e *Entry) Assemblies() ([]mol.Transform, error) {
	type op struct {
		t    mol.Transform
		rows int // bitmask of BIOMT1..3 rows seen
	}
	var order []string
	ops := make(map[string]*op, 2)

	// Operation ids restart at 1 inside every BIOMOLECULE block, so keys
	// must include the block number.
	biomol := 0
	for _, line := range e.remark350 {
		fields := strings.Fields(line)
		if len(fields) >= 4 && fields[2] == "BIOMOLECULE:" {
			biomol++
			continue
		}
		// REMARK 350 BIOMTn opid r1 r2 r3 t
		if len(fields) < 3 || !strings.HasPrefix(fields[2], "BIOMT") {
			continue
		}
		if len(fields) != 8 || len(fields[2]) != 6 {
			return nil, fmt.Errorf("pdb: malformed BIOMT record in '%s': %q",
				e.Path, line)
		}
		row := int(fields[2][5] - '1')
		if row < 0 || row > 2 {
			return nil, fmt.Errorf("pdb: bad BIOMT row in '%s': %q",
				e.Path, line)
		}

		id := fmt.Sprintf("%d/%s", biomol, fields[3])
		o := ops[id]
		if o == nil {
			o = new(op)
			ops[id] = o
			order = append(order, id)
		}

		var vals [4]float64
		for i := 0; i < 4; i++ {
			v, err := strconv.ParseFloat(fields[4+i], 64)
			if err != nil {
				return nil, fmt.Errorf("pdb: bad BIOMT value in '%s': %q",
					e.Path, line)
			}
			vals[i] = v
		}
		o.t.Rotation[row] = [3]float64{vals[0], vals[1], vals[2]}
		o.t.Translation[row] = vals[3]
		o.rows |= 1 << row
	}

	if len(order) == 0 {
		return nil, nil
	}
	transforms := make([]mol.Transform, len(order))
	for i, id := range order {
		o := ops[id]
		if o.rows != 0b111 {
			return nil, fmt.Errorf("pdb: incomplete BIOMT operation %s in "+
				"'%s'", id, e.Path)
		}
		transforms[i] = o.t
	}
	return transforms, nil
}
