package csp

// View is a grid-shaped, read-recording window over one variable's slice of
// the flat assignment. Predicates receive their variables as views; every
// At call marks the cell touched, and the recorded touch pattern is what
// the engine uses to compute skip indices after a failure.
//
// Views are read-only. Only the odometer mutates the underlying storage,
// and it does so between predicate evaluations, which is what makes the
// touch pattern a faithful read-set.
type View struct {
	name    string
	dims    []int
	offset  int    // position of this window in the flat assignment
	cells   []int  // window into the flat assignment, length == product(dims)
	touched []bool // parallel to cells, reset via ClearTouches
}

func newView(name string, dims []int, offset int, cells []int) *View {
	return &View{
		name:    name,
		dims:    dims,
		offset:  offset,
		cells:   cells,
		touched: make([]bool, len(cells)),
	}
}

// Name returns the name of the variable this view presents.
func (v *View) Name() string { return v.name }

// Shape returns a copy of the view's grid shape.
func (v *View) Shape() []int {
	dims := make([]int, len(v.dims))
	copy(dims, v.dims)
	return dims
}

// Len returns the total number of cells in the view.
func (v *View) Len() int { return len(v.cells) }

// At returns the cell at the given indices and records the read. It panics
// with an error wrapping ErrIndexOutOfRange when the indices do not fit
// the view's shape; the engine surfaces such a panic as a ConstraintError.
func (v *View) At(indices ...int) int {
	i, err := linearIndex(v.dims, indices)
	if err != nil {
		panic(err)
	}
	v.touched[i] = true
	return v.cells[i]
}

// ClearTouches resets the touch record.
func (v *View) ClearTouches() {
	for i := range v.touched {
		v.touched[i] = false
	}
}

// SnapshotTouches copies the touch record in linear order into dst, which
// must have length Len().
func (v *View) SnapshotTouches(dst []bool) {
	if len(dst) != len(v.touched) {
		panic(ErrShapeMismatch)
	}
	copy(dst, v.touched)
}
