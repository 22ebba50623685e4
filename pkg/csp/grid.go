package csp

import (
	"fmt"

	"github.com/pkg/errors"
)

// Grid is an M-dimensional integer grid in column-major layout: the first
// index varies fastest, so the stride of dimension d is the product of the
// sizes of dimensions 0..d-1. Grids returned in solutions own their data
// and stay valid across further solving.
type Grid struct {
	dims []int
	data []int
}

// NewGrid builds a grid of the given shape from data in linear
// (column-major) order. The data slice is copied.
func NewGrid(dims []int, data []int) (*Grid, error) {
	if len(dims) == 0 {
		return nil, errors.Wrap(ErrShapeMismatch, "grid needs at least one dimension")
	}
	n := 1
	for d, size := range dims {
		if size <= 0 {
			return nil, errors.Wrapf(ErrShapeMismatch, "dimension %d has size %d", d, size)
		}
		n *= size
	}
	if n != len(data) {
		return nil, errors.Wrapf(ErrShapeMismatch, "shape %v holds %d cells, got %d values", dims, n, len(data))
	}
	g := &Grid{dims: make([]int, len(dims)), data: make([]int, len(data))}
	copy(g.dims, dims)
	copy(g.data, data)
	return g, nil
}

// Dims returns a copy of the grid's shape.
func (g *Grid) Dims() []int {
	dims := make([]int, len(g.dims))
	copy(dims, g.dims)
	return dims
}

// Len returns the total number of cells.
func (g *Grid) Len() int { return len(g.data) }

// At returns the cell at the given indices. It panics with an error
// wrapping ErrIndexOutOfRange when the indices do not fit the shape.
func (g *Grid) At(indices ...int) int {
	i, err := linearIndex(g.dims, indices)
	if err != nil {
		panic(err)
	}
	return g.data[i]
}

// Values returns a copy of the cell values in linear order.
func (g *Grid) Values() []int {
	out := make([]int, len(g.data))
	copy(out, g.data)
	return out
}

func (g *Grid) String() string {
	return fmt.Sprintf("Grid%v%v", g.dims, g.data)
}

// linearIndex maps multi-dimensional indices to a linear offset using the
// mixed-radix mapping shared by views, grids and the odometer: first index
// stride 1, subsequent strides the running product of prior dimensions.
func linearIndex(dims []int, indices []int) (int, error) {
	if len(indices) != len(dims) {
		return 0, errors.Wrapf(ErrIndexOutOfRange, "got %d indices for %d dimensions", len(indices), len(dims))
	}
	lin, stride := 0, 1
	for d, ix := range indices {
		if ix < 0 || ix >= dims[d] {
			return 0, errors.Wrapf(ErrIndexOutOfRange, "index %d outside [0,%d) in dimension %d", ix, dims[d], d)
		}
		lin += ix * stride
		stride *= dims[d]
	}
	return lin, nil
}

func cellCount(dims []int) int {
	n := 1
	for _, size := range dims {
		n *= size
	}
	return n
}
