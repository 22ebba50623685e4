package csp

import (
	"fmt"

	"github.com/pkg/errors"
)

// Build-time and solve-time errors. Build errors surface at the offending
// AddVariable/AddConstraint call. Problem checks at the start of Solve
// return a nil Result; errors raised during the search abort it and are
// returned alongside the partial Result. All are matchable with errors.Is
// even when wrapped with call-site context.
var (
	// ErrShapeMismatch indicates a variable's lower and upper bound slices
	// disagree in length, or disagree with the declared shape.
	ErrShapeMismatch = errors.New("lower and upper bounds have mismatched shapes")

	// ErrInvalidBounds indicates a cell whose lower bound exceeds its upper bound.
	ErrInvalidBounds = errors.New("lower bound exceeds upper bound")

	// ErrDuplicateVariable indicates a variable name declared twice.
	ErrDuplicateVariable = errors.New("variable already declared")

	// ErrUnknownVariable indicates a constraint referencing an undeclared name.
	// AddVariable also returns it for an empty variable name.
	ErrUnknownVariable = errors.New("constraint references undeclared variable")

	// ErrEmptyConstraint indicates a constraint declared over no variables.
	ErrEmptyConstraint = errors.New("constraint lists no variables")

	// ErrNilPredicate indicates a constraint declared without a predicate.
	ErrNilPredicate = errors.New("constraint predicate is nil")

	// ErrEmptyProblem indicates solve was invoked on a problem with no constraints.
	ErrEmptyProblem = errors.New("problem has no constraints")

	// ErrIndexOutOfRange indicates a view or grid was indexed outside its shape.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrNoCellsRead indicates a failing predicate recorded zero touches,
	// leaving the engine no cell to skip on. Predicates must read at least
	// one cell of their declared variables on every evaluation.
	ErrNoCellsRead = errors.New("failing predicate read no cells")
)

// ConstraintError reports a predicate that panicked during evaluation.
// The search is aborted; Cause holds the recovered panic value.
type ConstraintError struct {
	// Index is the constraint's position in declaration order.
	Index int

	// Cause is the recovered panic value.
	Cause interface{}
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("constraint %d failed during evaluation: %v", e.Index, e.Cause)
}

// Unwrap exposes the cause when it is itself an error, so indexing bugs
// inside predicates stay matchable as ErrIndexOutOfRange.
func (e *ConstraintError) Unwrap() error {
	if err, ok := e.Cause.(error); ok {
		return err
	}
	return nil
}
