package csp

import "sort"

// scoredConstraint pairs a constraint with its resolved views and the
// estimated quality the engine maintains for dynamic reordering. For a
// satisfied constraint the quality is 0; for a failing one it is the
// 1-based odometer position of the deepest cell the predicate read, which
// doubles as the skip index.
type scoredConstraint struct {
	c       *Constraint
	views   []*View // views for c's variables, in the declared order
	quality int
}

// eval runs the predicate on its views, converting a panic into a
// ConstraintError so a broken predicate aborts the solve instead of the
// process.
func (e *scoredConstraint) eval() (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ConstraintError{Index: e.c.index, Cause: r}
		}
	}()
	return e.c.pred(e.views...), nil
}

// constraintTable owns the solve-time constraint ordering. Constraints are
// never added or removed during a solve; only their order and qualities
// change.
type constraintTable struct {
	entries []*scoredConstraint
}

func newConstraintTable(constraints []*Constraint, viewsByName map[string]*View) *constraintTable {
	t := &constraintTable{entries: make([]*scoredConstraint, len(constraints))}
	for i, c := range constraints {
		views := make([]*View, len(c.names))
		for j, name := range c.names {
			views[j] = viewsByName[name]
		}
		t.entries[i] = &scoredConstraint{c: c, views: views}
	}
	return t
}

// sortByQualityDesc reorders the table so the highest estimated quality
// comes first, keeping declaration order among ties. Satisfied constraints
// carry quality 0 and sink to the end, so observed failers are tried first.
func (t *constraintTable) sortByQualityDesc() {
	sort.SliceStable(t.entries, func(i, j int) bool {
		return t.entries[i].quality > t.entries[j].quality
	})
}
