package csp

import (
	"fmt"
	"strings"
	"time"
)

// Solution maps variable names to independently-owned grids of the shapes
// the variables were declared with. Names iterate in declaration order so
// discovery order stays reproducible.
type Solution struct {
	names []string
	grids map[string]*Grid
}

// Names returns the variable names in declaration order.
func (s *Solution) Names() []string {
	names := make([]string, len(s.names))
	copy(names, s.names)
	return names
}

// Grid returns the grid for the named variable, or nil if the name is
// unknown.
func (s *Solution) Grid(name string) *Grid {
	return s.grids[name]
}

// Value returns one cell of the named variable's grid. It panics on an
// unknown name or out-of-shape indices.
func (s *Solution) Value(name string, indices ...int) int {
	g := s.grids[name]
	if g == nil {
		panic(fmt.Sprintf("csp: no variable %q in solution", name))
	}
	return g.At(indices...)
}

func (s *Solution) String() string {
	parts := make([]string, len(s.names))
	for i, name := range s.names {
		parts[i] = fmt.Sprintf("%s=%v", name, s.grids[name].Values())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// SolveStats summarizes a solve.
type SolveStats struct {
	// Nodes is the number of candidates considered, counting the
	// iteration in which the odometer overflowed.
	Nodes int

	// Solutions is the number of solutions found.
	Solutions int

	// Skips counts odometer steps whose increment index exceeded 1,
	// i.e. steps that jumped over a subtree instead of advancing the
	// least significant position.
	Skips int

	// Reorders counts constraint-table resorts.
	Reorders int

	// SearchTime is the wall-clock duration of the search loop.
	SearchTime time.Duration
}

// Result is what a solve returns: the solutions in discovery order plus
// the node count. On an aborted solve (cancellation or a solve-time
// error) Result carries the partial solution list and the nodes
// accumulated so far.
type Result struct {
	Solutions []*Solution
	Nodes     int
	Stats     SolveStats
}
