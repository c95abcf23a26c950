package grid

// GridID identifies one cell under a given Params. It is a value type: two ids
// are equal exactly when their family and components are equal, so GridID
// works directly as a map key.
//
// Component meaning per family:
//
//	Rect  (I, J, K) = (column, row, 0)
//	Tri   (I, J, K) = (triangle along the row band, row band, 0 up / 1 down)
//	Hexa  (I, J, K) = (column, row, row parity), odd rows shifted east
//
// For a grid anchored at the south-west corner of an area every point inside
// the area gets non-negative components.
type GridID struct {
	Family Family `json:"family"`
	I      int    `json:"i"`
	J      int    `json:"j"`
	K      int    `json:"k"`
}

// Arity is the number of meaningful components for the id's family.
func (id GridID) Arity() int {
	if id.Family == Rect {
		return 2
	}
	return 3
}

// Values lists the meaningful components in order.
func (id GridID) Values() []int {
	if id.Arity() == 2 {
		return []int{id.I, id.J}
	}
	return []int{id.I, id.J, id.K}
}

// Less orders ids by family, then component-wise.
func (id GridID) Less(other GridID) bool {
	if id.Family != other.Family {
		return id.Family < other.Family
	}
	if id.I != other.I {
		return id.I < other.I
	}
	if id.J != other.J {
		return id.J < other.J
	}
	return id.K < other.K
}
