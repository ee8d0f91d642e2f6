package pdbx

import (
	"fmt"

	"github.com/BurntSushi/cif"

	"github.com/bcblab/molio/mol"
)

var operTags = []string{
	"pdbx_struct_oper_list.matrix[1][1]",
	"pdbx_struct_oper_list.matrix[1][2]",
	"pdbx_struct_oper_list.matrix[1][3]",
	"pdbx_struct_oper_list.vector[1]",
	"pdbx_struct_oper_list.matrix[2][1]",
	"pdbx_struct_oper_list.matrix[2][2]",
	"pdbx_struct_oper_list.matrix[2][3]",
	"pdbx_struct_oper_list.vector[2]",
	"pdbx_struct_oper_list.matrix[3][1]",
	"pdbx_struct_oper_list.matrix[3][2]",
	"pdbx_struct_oper_list.matrix[3][3]",
	"pdbx_struct_oper_list.vector[3]",
}

// Assemblies extracts the biological-assembly transforms from the
// pdbx_struct_oper_list category. A block without the category yields
// (nil, nil); an error is returned only when the category is present but
// incomplete.
func Assemblies(b *cif.DataBlock) ([]mol.Transform, error) {
	loop := categoryLoop(b, "pdbx_struct_oper_list.id", operTags...)
	if loop == nil {
		return nil, nil
	}

	cols := make([][]float64, len(operTags))
	n := -1
	for i, tag := range operTags {
		cols[i] = floatColumn(loop, tag)
		if cols[i] == nil {
			return nil, fmt.Errorf("pdbx: pdbx_struct_oper_list is "+
				"missing '%s'", tag)
		}
		if n == -1 {
			n = len(cols[i])
		}
	}

	transforms := make([]mol.Transform, n)
	for i := 0; i < n; i++ {
		t := &transforms[i]
		for row := 0; row < 3; row++ {
			t.Rotation[row][0] = cols[row*4+0][i]
			t.Rotation[row][1] = cols[row*4+1][i]
			t.Rotation[row][2] = cols[row*4+2][i]
			t.Translation[row] = cols[row*4+3][i]
		}
	}
	return transforms, nil
}
