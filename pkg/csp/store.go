package csp

// store owns the flat assignment: one contiguous integer vector of cell
// values plus parallel lower and upper bound vectors, all in variable
// declaration order. The odometer mutates cells through the store; views
// alias non-overlapping windows of the same vector.
type store struct {
	cells []int
	lower []int
	upper []int
}

// newStore flattens the variables' bounds in declaration order and
// initializes every cell to its lower bound.
func newStore(vars []*Variable) *store {
	n := 0
	for _, v := range vars {
		n += v.Len()
	}
	s := &store{
		cells: make([]int, n),
		lower: make([]int, n),
		upper: make([]int, n),
	}
	for _, v := range vars {
		copy(s.lower[v.offset:], v.lower)
		copy(s.upper[v.offset:], v.upper)
	}
	copy(s.cells, s.lower)
	return s
}

// allocViews hands out one view per variable, each aliasing the variable's
// consecutive window of the flat vector, in declaration order. The offset
// of variable k is the sum of the lengths of variables 0..k-1, which is
// the stable mapping between odometer positions and view cells.
func (s *store) allocViews(vars []*Variable) []*View {
	views := make([]*View, len(vars))
	for i, v := range vars {
		views[i] = newView(v.name, v.dims, v.offset, s.cells[v.offset:v.offset+v.Len()])
	}
	return views
}

func (s *store) len() int          { return len(s.cells) }
func (s *store) cell(i int) int    { return s.cells[i] }
func (s *store) setCell(i, v int)  { s.cells[i] = v }
func (s *store) incCell(i int)     { s.cells[i]++ }
func (s *store) lowerAt(i int) int { return s.lower[i] }
func (s *store) upperAt(i int) int { return s.upper[i] }

// clearTouches resets the touch record on every view.
func clearTouches(views []*View) {
	for _, v := range views {
		v.ClearTouches()
	}
}

// snapshotTouches assembles the per-view touch records into one flat
// boolean vector aligned with the store's cell positions.
func snapshotTouches(views []*View, dst []bool) {
	for i := range dst {
		dst[i] = false
	}
	for _, v := range views {
		v.SnapshotTouches(dst[v.offset : v.offset+v.Len()])
	}
}

// countTouches sums the touched cells across all views.
func countTouches(views []*View) int {
	total := 0
	for _, v := range views {
		for _, t := range v.touched {
			if t {
				total++
			}
		}
	}
	return total
}

// orTouches folds the per-view touch records into a cumulative flat vector.
func orTouches(views []*View, cum []bool) {
	for _, v := range views {
		for i, t := range v.touched {
			if t {
				cum[v.offset+i] = true
			}
		}
	}
}
