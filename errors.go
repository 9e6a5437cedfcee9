package segmented

import (
	"errors"
	"fmt"

	"github.com/hupe1980/segmented/internal/introsort"
)

var (
	// ErrOutOfRange is returned when an index, offset or length falls outside
	// the valid bounds of a collection.
	ErrOutOfRange = errors.New("index out of range")

	// ErrInvalidArgument is returned for malformed arguments, such as a
	// destination too small for a copy or a type without a default ordering.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotSupported is returned by fixed-size collections for operations
	// that would change their length.
	ErrNotSupported = errors.New("operation not supported")

	// ErrInvalidOperation is returned when a list is modified during
	// enumeration.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrBadComparer is returned when a comparer is inconsistent and a
	// partition scan runs past its bounds.
	ErrBadComparer = errors.New("comparer is inconsistent")

	// ErrComparerFailed matches every *ComparerFailedError.
	ErrComparerFailed = errors.New("comparer failed")
)

// ComparerFailedError reports a comparer that panicked during a sort or
// search. The collection is left in a valid but unspecified order.
//
// The recovered panic value can be accessed via errors.Unwrap.
type ComparerFailedError struct {
	cause error
}

func (e *ComparerFailedError) Error() string {
	return fmt.Sprintf("comparer failed: %v", e.cause)
}

func (e *ComparerFailedError) Unwrap() error { return e.cause }

// Is reports true for ErrComparerFailed.
func (e *ComparerFailedError) Is(target error) bool { return target == ErrComparerFailed }

// mustPredicate panics with an error wrapping ErrInvalidArgument when
// match is nil.
func mustPredicate[T any](match func(T) bool) {
	if match == nil {
		panic(fmt.Errorf("%w: nil predicate", ErrInvalidArgument))
	}
}

func errOutOfRange(name string, value, limit int) error {
	return fmt.Errorf("%w: %s %d (limit %d)", ErrOutOfRange, name, value, limit)
}

// checkRange validates the sub-range [index, index+count) of a collection
// holding n elements.
func checkRange(index, count, n int) error {
	if index < 0 {
		return errOutOfRange("index", index, n)
	}
	if count < 0 {
		return errOutOfRange("count", count, n)
	}
	if n-index < count {
		return fmt.Errorf("%w: range [%d, %d) exceeds length %d", ErrOutOfRange, index, index+count, n)
	}
	return nil
}

func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, introsort.ErrBadComparer) {
		return fmt.Errorf("%w: %w", ErrBadComparer, err)
	}
	var ce *introsort.ComparerError
	if errors.As(err, &ce) {
		return &ComparerFailedError{cause: ce.Cause}
	}
	if errors.Is(err, introsort.ErrNoOrdering) {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	return err
}
