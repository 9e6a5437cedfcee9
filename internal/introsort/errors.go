package introsort

import (
	"errors"
	"fmt"
)

var (
	// ErrBadComparer is returned when a comparison function is not a
	// consistent ordering, for example compare(x, x) != 0.
	ErrBadComparer = errors.New("introsort: inconsistent comparer")

	// ErrNoOrdering is returned when no comparison function was given and
	// the element type has no default ordering.
	ErrNoOrdering = errors.New("introsort: element type has no default ordering")
)

// ComparerError wraps a failure raised by a comparison function.
type ComparerError struct {
	Cause error
}

func (e *ComparerError) Error() string {
	return fmt.Sprintf("introsort: comparer failed: %v", e.Cause)
}

func (e *ComparerError) Unwrap() error { return e.Cause }

// outOfPartition is raised when a partition scan leaves its bounds.
type outOfPartition struct{}

func recoverComparer(err *error) {
	r := recover()
	if r == nil {
		return
	}
	if _, ok := r.(outOfPartition); ok {
		*err = ErrBadComparer
		return
	}
	cause, ok := r.(error)
	if !ok {
		cause = fmt.Errorf("%v", r)
	}
	*err = &ComparerError{Cause: cause}
}
