package csp

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Solver runs the odometer search over a problem's assignment space.
//
// The search enumerates the Cartesian product of the per-cell ranges with
// a mixed-radix counter whose digit order comes from planIncrementOrder.
// Each candidate is checked constraint by constraint; when a constraint
// fails, the lowest odometer position it read becomes the increment index
// and the counter jumps there directly. Every skipped candidate differs
// only in positions the failing constraint never read, so it would fail
// the same way. Constraints are resorted between candidates so observed
// fast failers are checked first.
//
// A Solver is not safe for concurrent use. Each Solve call allocates
// fresh per-solve state, so repeated calls on the same problem are
// independent and yield identical results.
type Solver struct {
	problem *Problem
	config  *SolverConfig
	log     logrus.FieldLogger

	// per-solve state, rebuilt by init
	store   *store
	views   []*View // declaration order, aliasing the store
	table   *constraintTable
	order   []int  // odometer significance order, position 0 fastest
	scratch []bool // flat touch snapshot, length TotalCells
	stats   SolveStats
}

// NewSolver creates a solver for the given problem with default
// configuration.
func NewSolver(p *Problem) *Solver {
	return NewSolverWithConfig(p, nil)
}

// NewSolverWithConfig creates a solver with a custom configuration. A nil
// config falls back to DefaultSolverConfig.
func NewSolverWithConfig(p *Problem, config *SolverConfig) *Solver {
	if config == nil {
		config = DefaultSolverConfig()
	}
	config = config.normalized()
	return &Solver{
		problem: p,
		config:  config,
		log:     config.Logger,
	}
}

// Solve is a convenience wrapper: build a default solver and run it.
func Solve(ctx context.Context, p *Problem, limit int) (*Result, error) {
	return NewSolver(p).Solve(ctx, limit)
}

// init rebuilds all per-solve storage: the flat assignment (initialized to
// the lower bounds), the views, the constraint table and the touch
// snapshot buffer.
func (s *Solver) init() {
	vars := s.problem.Variables()
	s.store = newStore(vars)
	s.views = s.store.allocViews(vars)
	viewsByName := make(map[string]*View, len(s.views))
	for _, v := range s.views {
		viewsByName[v.Name()] = v
	}
	s.table = newConstraintTable(s.problem.Constraints(), viewsByName)
	s.order = nil
	s.scratch = make([]bool, s.store.len())
	s.stats = SolveStats{}
}

// Solve searches for up to limit solutions; limit <= 0 means all. The
// context is checked once per candidate; on cancellation the partial
// result is returned together with the context's error. Solve-time errors
// (a panicking predicate, a failing predicate that read no cells) likewise
// return the partial result alongside the error.
func (s *Solver) Solve(ctx context.Context, limit int) (*Result, error) {
	if err := s.problem.Validate(); err != nil {
		return nil, err
	}
	s.init()

	start := time.Now()
	order, err := planIncrementOrder(s.table, s.views, s.store.len())
	if err != nil {
		return s.result(nil, start), err
	}
	s.order = order
	s.log.WithFields(logrus.Fields{
		"cells":       s.store.len(),
		"constraints": len(s.table.entries),
	}).Debug("planned increment order")
	s.log.WithField("order", order).Trace("increment order")

	n := s.store.len()
	var solutions []*Solution

	for {
		if err := ctx.Err(); err != nil {
			return s.result(solutions, start), err
		}
		s.stats.Nodes++

		exploring := (s.stats.Nodes-1)%s.config.ReorderInterval == 0
		incrementIndex := 0
		solutionOK := true

		for _, e := range s.table.entries {
			clearTouches(s.views)
			ok, err := e.eval()
			if err != nil {
				return s.result(solutions, start), err
			}
			if ok {
				e.quality = 0
				continue
			}
			solutionOK = false
			snapshotTouches(s.views, s.scratch)
			skip := 0
			for k := 1; k <= n; k++ {
				if s.scratch[s.order[k-1]] {
					skip = k
					break
				}
			}
			if skip == 0 {
				return s.result(solutions, start), errors.Wrapf(ErrNoCellsRead, "constraint %d", e.c.index)
			}
			e.quality = skip
			if skip > incrementIndex {
				incrementIndex = skip
			}
			if !exploring {
				break
			}
		}

		if exploring {
			s.table.sortByQualityDesc()
			s.stats.Reorders++
		}

		if solutionOK {
			sol := s.capture()
			solutions = append(solutions, sol)
			s.stats.Solutions++
			s.log.WithField("nodes", s.stats.Nodes).Trace("solution found")
			incrementIndex = 1
			if limit > 0 && len(solutions) >= limit {
				break
			}
		}

		if incrementIndex < 1 {
			panic("csp: increment index below 1; predicate or planner broke its contract")
		}
		if incrementIndex > 1 {
			s.stats.Skips++
		}

		// Odometer step: reset everything below the increment position,
		// bump the increment position, then ripple the carries upward.
		for i := 0; i < incrementIndex-1; i++ {
			j := s.order[i]
			s.store.setCell(j, s.store.lowerAt(j))
		}
		s.store.incCell(s.order[incrementIndex-1])
		for i := incrementIndex - 1; i < n-1; i++ {
			j := s.order[i]
			if s.store.cell(j) <= s.store.upperAt(j) {
				break
			}
			s.store.setCell(j, s.store.lowerAt(j))
			s.store.incCell(s.order[i+1])
		}
		if top := s.order[n-1]; s.store.cell(top) > s.store.upperAt(top) {
			break
		}
	}

	result := s.result(solutions, start)
	s.log.WithFields(logrus.Fields{
		"solutions": len(result.Solutions),
		"nodes":     result.Nodes,
		"skips":     result.Stats.Skips,
	}).Debug("search finished")
	return result, nil
}

// capture copies the per-variable slices of the flat assignment into fresh
// grids, so the solution stays valid while the odometer keeps mutating the
// store.
func (s *Solver) capture() *Solution {
	vars := s.problem.Variables()
	sol := &Solution{
		names: make([]string, len(vars)),
		grids: make(map[string]*Grid, len(vars)),
	}
	for i, v := range vars {
		data := make([]int, v.Len())
		copy(data, s.store.cells[v.offset:v.offset+v.Len()])
		dims := make([]int, len(v.dims))
		copy(dims, v.dims)
		sol.names[i] = v.name
		sol.grids[v.name] = &Grid{dims: dims, data: data}
	}
	return sol
}

func (s *Solver) result(solutions []*Solution, start time.Time) *Result {
	s.stats.SearchTime = time.Since(start)
	return &Result{
		Solutions: solutions,
		Nodes:     s.stats.Nodes,
		Stats:     s.stats,
	}
}
