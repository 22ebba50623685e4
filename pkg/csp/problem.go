package csp

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"
)

// Variable is a named contiguous block of cells arranged as a grid with a
// fixed shape and fixed per-cell bounds. Variables never share cells; the
// block of variable k starts at the sum of the lengths of the variables
// declared before it.
type Variable struct {
	name   string
	dims   []int
	lower  []int // per-cell lower bounds, linear order
	upper  []int // per-cell upper bounds, linear order
	offset int   // position of the first cell in the flat assignment
}

// Name returns the variable's name.
func (v *Variable) Name() string { return v.name }

// Shape returns a copy of the variable's grid shape.
func (v *Variable) Shape() []int {
	dims := make([]int, len(v.dims))
	copy(dims, v.dims)
	return dims
}

// Len returns the number of cells in the variable.
func (v *Variable) Len() int { return len(v.lower) }

// Predicate is a user-supplied constraint function. It receives the views
// of its declared variables in the declared order and reports whether the
// current candidate satisfies the constraint.
//
// Predicates must be pure with respect to the values they read: the same
// cell values must produce the same result and the same touch pattern.
// A failing predicate must have read at least one cell.
type Predicate func(views ...*View) bool

// Constraint couples an ordered list of variable names with the predicate
// that reads them. The listed variables must be exactly the set the
// predicate reads from.
type Constraint struct {
	names []string
	pred  Predicate
	index int // declaration position, used in diagnostics
}

// Variables returns a copy of the constraint's variable names in the order
// the predicate receives them.
func (c *Constraint) Variables() []string {
	names := make([]string, len(c.names))
	copy(names, c.names)
	return names
}

// Problem is a constraint satisfaction problem under construction:
// variables with finite per-cell integer ranges plus predicate constraints
// over them. Problems are built incrementally and are immutable during
// solving.
//
// Thread safety: construction must be sequential; a fully built problem is
// safe for concurrent reads.
type Problem struct {
	mu sync.RWMutex

	// variables holds all variables in declaration order
	variables []*Variable

	// varIndex maps names to variables for constraint resolution
	varIndex map[string]*Variable

	// constraints holds all constraints in declaration order
	constraints []*Constraint

	// totalCells is the length of the flat assignment
	totalCells int
}

// NewProblem creates an empty problem.
func NewProblem() *Problem {
	return &Problem{
		variables:   make([]*Variable, 0),
		varIndex:    make(map[string]*Variable),
		constraints: make([]*Constraint, 0),
	}
}

// AddVariable declares a grid variable. The shape fixes the grid's
// dimensions; lower and upper give per-cell bounds in linear (column-major)
// order and must both hold exactly as many values as the shape has cells,
// so upper always adopts lower's shape. Returns the name for chaining.
func (p *Problem) AddVariable(name string, shape []int, lower, upper []int) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if name == "" {
		return "", errors.Wrap(ErrUnknownVariable, "variable name must be non-empty")
	}
	if _, ok := p.varIndex[name]; ok {
		return "", errors.Wrapf(ErrDuplicateVariable, "variable %q", name)
	}
	if len(lower) != len(upper) {
		return "", errors.Wrapf(ErrShapeMismatch, "variable %q: %d lower bounds, %d upper bounds", name, len(lower), len(upper))
	}
	if len(shape) == 0 {
		return "", errors.Wrapf(ErrShapeMismatch, "variable %q: shape needs at least one dimension", name)
	}
	for d, size := range shape {
		if size <= 0 {
			return "", errors.Wrapf(ErrShapeMismatch, "variable %q: dimension %d has size %d", name, d, size)
		}
	}
	if cellCount(shape) != len(lower) {
		return "", errors.Wrapf(ErrShapeMismatch, "variable %q: shape %v holds %d cells, got %d bounds", name, shape, cellCount(shape), len(lower))
	}
	for i := range lower {
		if lower[i] > upper[i] {
			return "", errors.Wrapf(ErrInvalidBounds, "variable %q cell %d: [%d,%d]", name, i, lower[i], upper[i])
		}
	}

	v := &Variable{
		name:   name,
		dims:   make([]int, len(shape)),
		lower:  make([]int, len(lower)),
		upper:  make([]int, len(upper)),
		offset: p.totalCells,
	}
	copy(v.dims, shape)
	copy(v.lower, lower)
	copy(v.upper, upper)

	p.variables = append(p.variables, v)
	p.varIndex[name] = v
	p.totalCells += v.Len()
	return name, nil
}

// AddIntVar declares a scalar variable with the given inclusive range.
func (p *Problem) AddIntVar(name string, lo, hi int) (string, error) {
	return p.AddVariable(name, []int{1}, []int{lo}, []int{hi})
}

// AddGridVar declares a grid variable whose cells all share the same
// inclusive range.
func (p *Problem) AddGridVar(name string, shape []int, lo, hi int) (string, error) {
	n := cellCount(shape)
	lower := make([]int, n)
	upper := make([]int, n)
	for i := range lower {
		lower[i] = lo
		upper[i] = hi
	}
	return p.AddVariable(name, shape, lower, upper)
}

// AddConstraint attaches a predicate over the named variables. The
// predicate is invoked with the views for the names in the listed order;
// a single name covers the common one-variable case.
func (p *Problem) AddConstraint(pred Predicate, names ...string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if pred == nil {
		return errors.Wrapf(ErrNilPredicate, "constraint %d", len(p.constraints))
	}
	if len(names) == 0 {
		return errors.Wrapf(ErrEmptyConstraint, "constraint %d", len(p.constraints))
	}
	for _, name := range names {
		if _, ok := p.varIndex[name]; !ok {
			return errors.Wrapf(ErrUnknownVariable, "constraint %d references %q", len(p.constraints), name)
		}
	}
	c := &Constraint{
		names: make([]string, len(names)),
		pred:  pred,
		index: len(p.constraints),
	}
	copy(c.names, names)
	p.constraints = append(p.constraints, c)
	return nil
}

// Variables returns the variables in declaration order. The returned slice
// must not be modified.
func (p *Problem) Variables() []*Variable {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.variables
}

// Constraints returns the constraints in declaration order. The returned
// slice must not be modified.
func (p *Problem) Constraints() []*Constraint {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.constraints
}

// VariableCount returns the number of declared variables.
func (p *Problem) VariableCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.variables)
}

// ConstraintCount returns the number of declared constraints.
func (p *Problem) ConstraintCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.constraints)
}

// TotalCells returns the length of the flat assignment.
func (p *Problem) TotalCells() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.totalCells
}

// String returns a human-readable summary of the problem.
func (p *Problem) String() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return fmt.Sprintf("Problem{variables: %d, cells: %d, constraints: %d}",
		len(p.variables), p.totalCells, len(p.constraints))
}

// Validate checks that the problem is ready for solving: at least one
// constraint, and every constraint's variables declared. Build-time checks
// already enforce these, so Validate only fails on problems assembled
// through unusual paths.
func (p *Problem) Validate() error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if len(p.constraints) == 0 {
		return ErrEmptyProblem
	}
	for _, c := range p.constraints {
		if c.pred == nil {
			return errors.Wrapf(ErrNilPredicate, "constraint %d", c.index)
		}
		for _, name := range c.names {
			if _, ok := p.varIndex[name]; !ok {
				return errors.Wrapf(ErrUnknownVariable, "constraint %d references %q", c.index, name)
			}
		}
	}
	return nil
}
