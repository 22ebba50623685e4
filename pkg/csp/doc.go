// Package csp implements a finite-domain constraint satisfaction solver
// driven by observed constraint read-sets.
//
// A Problem is a set of named integer variables, each a grid of cells with
// per-cell inclusive bounds, plus predicate constraints over subsets of
// those variables. The solver enumerates the Cartesian product of the
// per-cell ranges with an odometer whose digit order is chosen so that
// constraint failures land in the most significant positions, letting the
// engine skip every candidate that differs only in cells the failing
// constraint never looked at.
//
// # How read observation works
//
// Predicates are opaque functions. They never see the raw assignment;
// each variable is presented as a View, a grid-shaped window whose At
// method records every cell it returns. After a predicate fails, the
// recorded touches tell the engine the deepest odometer position the
// predicate depended on, and the next candidate is produced by
// incrementing that position directly:
//
//	Candidate:  a=0 b=0   constraint reads only a, fails
//	Skip:       all b values for a=0 are skipped; next candidate is a=1
//
// Constraints are also reordered during search so that the constraints
// observed to fail fastest are evaluated first.
//
// # Typical usage
//
//	p := csp.NewProblem()
//	p.AddIntVar("a", 0, 2)
//	p.AddIntVar("b", 0, 2)
//	p.AddConstraint(func(vs ...*csp.View) bool {
//		return vs[0].At(0) < vs[1].At(0)
//	}, "a", "b")
//
//	result, err := csp.Solve(context.Background(), p, 0)
//	for _, sol := range result.Solutions {
//		fmt.Println(sol.Value("a", 0), sol.Value("b", 0))
//	}
//
// Solving is single-threaded; cancellation is cooperative through the
// context passed to Solve, checked once per candidate.
package csp
