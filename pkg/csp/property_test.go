package csp

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

// randomProblem builds a problem with at most maxCells cells across one or
// more 1-D variables, per-cell ranges of width at most 3, and a
// conjunction of up to four pairwise comparisons between random cells.
func randomProblem(t *testing.T, rng *rand.Rand, maxCells int) *Problem {
	t.Helper()
	p := NewProblem()

	type cellRef struct {
		name  string
		index int
	}
	var cells []cellRef

	remaining := maxCells
	for v := 0; remaining > 0; v++ {
		length := 1 + rng.Intn(3)
		if length > remaining {
			length = remaining
		}
		remaining -= length
		name := fmt.Sprintf("v%d", v)
		lower := make([]int, length)
		upper := make([]int, length)
		for i := range lower {
			lower[i] = rng.Intn(5) - 2
			upper[i] = lower[i] + rng.Intn(3)
		}
		_, err := p.AddVariable(name, []int{length}, lower, upper)
		require.NoError(t, err)
		for i := 0; i < length; i++ {
			cells = append(cells, cellRef{name: name, index: i})
		}
	}

	ops := []func(a, b int) bool{
		func(a, b int) bool { return a < b },
		func(a, b int) bool { return a <= b },
		func(a, b int) bool { return a == b },
		func(a, b int) bool { return a != b },
		func(a, b int) bool { return a >= b },
	}
	for c := 0; c < 1+rng.Intn(4); c++ {
		left := cells[rng.Intn(len(cells))]
		right := cells[rng.Intn(len(cells))]
		op := ops[rng.Intn(len(ops))]
		if left.name == right.name {
			li, ri := left.index, right.index
			err := p.AddConstraint(func(vs ...*View) bool {
				return op(vs[0].At(li), vs[0].At(ri))
			}, left.name)
			require.NoError(t, err)
		} else {
			li, ri := left.index, right.index
			err := p.AddConstraint(func(vs ...*View) bool {
				return op(vs[0].At(li), vs[1].At(ri))
			}, left.name, right.name)
			require.NoError(t, err)
		}
	}
	return p
}

// bruteForce enumerates the full Cartesian product and keeps every
// assignment all predicates accept, as flat vectors in declaration order.
func bruteForce(t *testing.T, p *Problem) [][]int {
	t.Helper()
	vars := p.Variables()
	n := p.TotalCells()
	lower := make([]int, n)
	upper := make([]int, n)
	for _, v := range vars {
		copy(lower[v.offset:], v.lower)
		copy(upper[v.offset:], v.upper)
	}

	// A scratch store and views let the same predicates run unchanged.
	s := newStore(vars)
	views := s.allocViews(vars)
	byName := make(map[string]*View, len(views))
	for _, v := range views {
		byName[v.Name()] = v
	}

	var accepted [][]int
	flat := make([]int, n)
	copy(flat, lower)
	for {
		copy(s.cells, flat)
		ok := true
		for _, c := range p.Constraints() {
			args := make([]*View, len(c.names))
			for i, name := range c.names {
				args[i] = byName[name]
			}
			clearTouches(views)
			if !c.pred(args...) {
				ok = false
				break
			}
		}
		if ok {
			row := make([]int, n)
			copy(row, flat)
			accepted = append(accepted, row)
		}

		// Plain little-endian counter over the flat positions.
		i := 0
		for ; i < n; i++ {
			flat[i]++
			if flat[i] <= upper[i] {
				break
			}
			flat[i] = lower[i]
		}
		if i == n {
			break
		}
	}
	return accepted
}

func flatten(result *Result, p *Problem) [][]int {
	out := make([][]int, 0, len(result.Solutions))
	for _, sol := range result.Solutions {
		row := make([]int, 0, p.TotalCells())
		for _, v := range p.Variables() {
			row = append(row, sol.Grid(v.Name()).Values()...)
		}
		out = append(out, row)
	}
	return out
}

func sortRows(rows [][]int) {
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		for k := range a {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return false
	})
}

// TestSolve_MatchesBruteForce checks completeness, soundness and
// uniqueness against exhaustive enumeration on random small problems.
func TestSolve_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 60; trial++ {
		p := randomProblem(t, rng, 1+rng.Intn(6))

		want := bruteForce(t, p)
		result, err := Solve(context.Background(), p, 0)
		require.NoError(t, err, "trial %d", trial)
		got := flatten(result, p)

		require.Len(t, got, len(want), "trial %d: %s", trial, p)

		sortRows(want)
		sortRows(got)
		if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
			t.Fatalf("trial %d: solution set mismatch (-brute +engine):\n%s", trial, diff)
		}
	}
}
