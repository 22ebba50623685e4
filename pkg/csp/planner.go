package csp

import "sort"

// planIncrementOrder derives the odometer's significance order: a
// permutation of the cell positions, position 0 incremented fastest. Both
// passes evaluate every predicate once against the all-lower-bound
// assignment, so the store must be freshly initialized.
//
// Pass 1 scores each constraint by how few cells it reads (fewer reads =
// cheaper and more selective) and sorts the table so those run first.
//
// Pass 2 builds the permutation: cells no constraint has read yet stay at
// the front of the order, cells read by earlier (cheaper) constraints
// migrate to the back. The low positions are incremented most often, so
// the cells constraints actually depend on end up in the high positions,
// where a failure lets the engine skip the whole subtree below.
func planIncrementOrder(table *constraintTable, views []*View, n int) ([]int, error) {
	// Pass 1: fast failers first.
	for _, e := range table.entries {
		clearTouches(views)
		if _, err := e.eval(); err != nil {
			return nil, err
		}
		e.quality = n - countTouches(views)
	}
	table.sortByQualityDesc()

	// Pass 2: touch-minimising order.
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	cum := make([]bool, n)
	for _, e := range table.entries {
		clearTouches(views)
		if _, err := e.eval(); err != nil {
			return nil, err
		}
		orTouches(views, cum)
		sort.SliceStable(order, func(i, j int) bool {
			return !cum[order[i]] && cum[order[j]]
		})
	}
	return order, nil
}
