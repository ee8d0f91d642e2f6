package mol

import "github.com/TuftsBCB/structure"

// Transform is a biological-assembly operation: a rotation followed by a
// translation, as given by REMARK 350 BIOMT records or the
// pdbx_struct_oper_list category.
type Transform struct {
	Rotation    [3][3]float64
	Translation [3]float64
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{
		Rotation: [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
	}
}

// IsIdentity reports whether t is the identity operation.
func (t Transform) IsIdentity() bool {
	return t == Identity()
}

// Apply transforms the given coordinates.
func (t Transform) Apply(c structure.Coords) structure.Coords {
	return structure.Coords{
		X: t.Rotation[0][0]*c.X + t.Rotation[0][1]*c.Y + t.Rotation[0][2]*c.Z + t.Translation[0],
		Y: t.Rotation[1][0]*c.X + t.Rotation[1][1]*c.Y + t.Rotation[1][2]*c.Z + t.Translation[1],
		Z: t.Rotation[2][0]*c.X + t.Rotation[2][1]*c.Y + t.Rotation[2][2]*c.Z + t.Translation[2],
	}
}
