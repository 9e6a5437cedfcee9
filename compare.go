package segmented

import (
	"fmt"
	"reflect"

	"github.com/hupe1980/segmented/internal/introsort"
)

// Comparer defines a three-way ordering: negative when a < b, zero when
// equal and positive when a > b.
type Comparer[T any] interface {
	Compare(a, b T) int
}

// CompareFunc adapts an ordinary function to the Comparer interface.
type CompareFunc[T any] func(a, b T) int

// Compare implements Comparer.
func (f CompareFunc[T]) Compare(a, b T) int { return f(a, b) }

// Comparable is implemented by element types that carry their own default
// ordering. It is consulted when no Comparer is given and T is not one of
// the built-in ordered types.
type Comparable[T any] interface {
	CompareTo(other T) int
}

// EqualityComparer decides element equality for searches.
type EqualityComparer[T any] interface {
	Equal(a, b T) bool
}

// EqualFunc adapts an ordinary function to the EqualityComparer interface.
type EqualFunc[T any] func(a, b T) bool

// Equal implements EqualityComparer.
func (f EqualFunc[T]) Equal(a, b T) bool { return f(a, b) }

// Equatable is implemented by element types that define their own equality.
type Equatable[T any] interface {
	Equals(other T) bool
}

// DefaultComparer returns the default ordering of T. Built-in integer,
// floating-point and string types use their natural order (NaN first);
// types implementing Comparable use CompareTo. Any other type yields
// ErrInvalidArgument.
func DefaultComparer[T any]() (Comparer[T], error) {
	if f, ok := introsort.DefaultCompare[T](); ok {
		return CompareFunc[T](f), nil
	}
	return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, introsort.ErrNoOrdering)
}

// DefaultEquality returns the default equality of T. Types implementing
// Equatable use Equals, built-in ordered types compare equal when their
// order is (so NaN equals NaN), and other comparable types use ==.
func DefaultEquality[T any]() (EqualityComparer[T], error) {
	var zero T
	if _, ok := any(zero).(Equatable[T]); ok {
		return EqualFunc[T](func(a, b T) bool {
			return any(a).(Equatable[T]).Equals(b)
		}), nil
	}
	if f, ok := introsort.OrderedCompare[T](); ok {
		return EqualFunc[T](func(a, b T) bool { return f(a, b) == 0 }), nil
	}
	typ := reflect.TypeFor[T]()
	if !typ.Comparable() {
		return nil, fmt.Errorf("%w: %v has no default equality", ErrInvalidArgument, typ)
	}
	return EqualFunc[T](func(a, b T) bool { return any(a) == any(b) }), nil
}

// compareFunc unwraps c for the sort engine. A nil comparer selects the
// default ordering.
func compareFunc[T any](c Comparer[T]) func(a, b T) int {
	switch f := c.(type) {
	case nil:
		return nil
	case CompareFunc[T]:
		return f
	default:
		return c.Compare
	}
}

func equalityOrDefault[T any](eq EqualityComparer[T]) (func(a, b T) bool, error) {
	if eq == nil {
		var err error
		if eq, err = DefaultEquality[T](); err != nil {
			return nil, err
		}
	}
	if f, ok := eq.(EqualFunc[T]); ok {
		return f, nil
	}
	return eq.Equal, nil
}
