package segmented

import (
	"cmp"
	"fmt"

	"github.com/hupe1980/segmented/internal/introsort"
)

// Sort sorts the elements of v. A nil comparer selects the default ordering
// of T (see DefaultComparer).
//
// The sort is not stable. If the comparer panics the view is left in a
// valid but unspecified order and a *ComparerFailedError is returned.
func Sort[T any](v View[T], c Comparer[T]) error {
	return translateError(introsort.Sort(&v.array.s, v.start, v.length, compareFunc(c)))
}

// SortFunc sorts the elements of v using fn.
func SortFunc[T any](v View[T], fn func(a, b T) int) error {
	if fn == nil {
		return fmt.Errorf("%w: nil comparison function", ErrInvalidArgument)
	}
	return translateError(introsort.SortFunc(&v.array.s, v.start, v.length, fn))
}

// SortOrdered sorts v by the natural order of T using the operator-based
// fast path. Floating-point NaNs are moved to the front.
func SortOrdered[T cmp.Ordered](v View[T]) {
	introsort.SortOrderedNaN(&v.array.s, v.start, v.length)
}

// SortPairs sorts keys and applies every move to values as well, so that
// values[i] stays associated with keys[i]. Both views must have the same
// length.
func SortPairs[K, V any](keys View[K], values View[V], c Comparer[K]) error {
	if keys.length != values.length {
		return fmt.Errorf("%w: %d keys but %d values", ErrInvalidArgument, keys.length, values.length)
	}
	voff := values.start - keys.start
	return translateError(introsort.SortPairs(&keys.array.s, &values.array.s, keys.start, keys.length, voff, compareFunc(c)))
}

// BinarySearch searches the sorted range a[start:start+length] for value.
// It returns the index of a matching element, or the bitwise complement of
// the index at which value would be inserted.
func BinarySearch[T any](a Array[T], start, length int, value T, c Comparer[T]) (int, error) {
	if err := checkRange(start, length, a.Len()); err != nil {
		return 0, err
	}
	i, err := introsort.BinarySearch(&a.s, start, length, value, compareFunc(c))
	return i, translateError(err)
}

// BinarySearchOrdered is BinarySearch over the natural order of T. NaNs
// order before every other value.
func BinarySearchOrdered[T cmp.Ordered](a Array[T], start, length int, value T) (int, error) {
	if err := checkRange(start, length, a.Len()); err != nil {
		return 0, err
	}
	return introsort.BinarySearchOrdered(&a.s, start, length, value), nil
}
