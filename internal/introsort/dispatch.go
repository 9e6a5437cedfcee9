package introsort

import (
	"cmp"

	"github.com/hupe1980/segmented/internal/segstore"
)

// Comparable is implemented by element types that define their own order.
type Comparable[T any] interface {
	CompareTo(other T) int
}

// Sort sorts s[lo:lo+n]. A nil compare selects the default ordering of T.
func Sort[T any](s *segstore.Store[T], lo, n int, compare func(a, b T) int) error {
	if compare != nil {
		return SortFunc(s, lo, n, compare)
	}
	if impl, ok := orderedFor[T](); ok {
		impl.sort(s, lo, n)
		return nil
	}
	if cf, ok := comparableFor[T](); ok {
		return SortFunc(s, lo, n, cf)
	}
	return ErrNoOrdering
}

// SortPairs sorts keys[lo:lo+n] and moves values[lo+voff:] in lock-step.
// A nil compare selects the default ordering of K.
func SortPairs[K, V any](keys *segstore.Store[K], values *segstore.Store[V], lo, n, voff int, compare func(a, b K) int) error {
	if compare != nil {
		return SortPairsFunc(keys, values, lo, n, voff, compare)
	}
	if sort, ok := orderedPairsFor[K, V](); ok {
		sort(keys, values, lo, n, voff)
		return nil
	}
	if cf, ok := comparableFor[K](); ok {
		return SortPairsFunc(keys, values, lo, n, voff, cf)
	}
	return ErrNoOrdering
}

// BinarySearch searches the sorted range s[lo:lo+n] for v. A nil compare
// selects the default ordering of T.
func BinarySearch[T any](s *segstore.Store[T], lo, n int, v T, compare func(a, b T) int) (int, error) {
	if compare != nil {
		return BinarySearchFunc(s, lo, n, v, compare)
	}
	if impl, ok := orderedFor[T](); ok {
		return impl.search(s, lo, n, v), nil
	}
	if cf, ok := comparableFor[T](); ok {
		return BinarySearchFunc(s, lo, n, v, cf)
	}
	return 0, ErrNoOrdering
}

// DefaultCompare returns the default three-way comparison for T.
func DefaultCompare[T any]() (func(a, b T) int, bool) {
	if impl, ok := orderedFor[T](); ok {
		return impl.compare, true
	}
	return comparableFor[T]()
}

// OrderedCompare returns cmp.Compare for the built-in ordered types.
func OrderedCompare[T any]() (func(a, b T) int, bool) {
	impl, ok := orderedFor[T]()
	return impl.compare, ok
}

func comparableFor[T any]() (func(a, b T) int, bool) {
	var zero T
	if _, ok := any(zero).(Comparable[T]); !ok {
		return nil, false
	}
	return func(a, b T) int {
		return any(a).(Comparable[T]).CompareTo(b)
	}, true
}

type orderedImpl[T any] struct {
	sort    func(s *segstore.Store[T], lo, n int)
	search  func(s *segstore.Store[T], lo, n int, v T) int
	compare func(a, b T) int
}

func integerImpl[T cmp.Ordered]() orderedImpl[T] {
	return orderedImpl[T]{sort: SortOrdered[T], search: BinarySearchOrdered[T], compare: cmp.Compare[T]}
}

func floatImpl[T cmp.Ordered]() orderedImpl[T] {
	return orderedImpl[T]{sort: SortOrderedNaN[T], search: BinarySearchOrdered[T], compare: cmp.Compare[T]}
}

// orderedFor resolves the operator-based implementation for the built-in
// ordered types. Named types fall through to the Comparable path.
func orderedFor[T any]() (orderedImpl[T], bool) {
	var impl any
	switch any(*new(T)).(type) {
	case int:
		impl = integerImpl[int]()
	case int8:
		impl = integerImpl[int8]()
	case int16:
		impl = integerImpl[int16]()
	case int32:
		impl = integerImpl[int32]()
	case int64:
		impl = integerImpl[int64]()
	case uint:
		impl = integerImpl[uint]()
	case uint8:
		impl = integerImpl[uint8]()
	case uint16:
		impl = integerImpl[uint16]()
	case uint32:
		impl = integerImpl[uint32]()
	case uint64:
		impl = integerImpl[uint64]()
	case uintptr:
		impl = integerImpl[uintptr]()
	case string:
		impl = integerImpl[string]()
	case float32:
		impl = floatImpl[float32]()
	case float64:
		impl = floatImpl[float64]()
	default:
		return orderedImpl[T]{}, false
	}
	return impl.(orderedImpl[T]), true
}

type pairSortFunc[K, V any] func(keys *segstore.Store[K], values *segstore.Store[V], lo, n, voff int)

func orderedPairsFor[K, V any]() (pairSortFunc[K, V], bool) {
	var fn any
	switch any(*new(K)).(type) {
	case int:
		fn = pairSortFunc[int, V](SortPairsOrdered[int, V])
	case int8:
		fn = pairSortFunc[int8, V](SortPairsOrdered[int8, V])
	case int16:
		fn = pairSortFunc[int16, V](SortPairsOrdered[int16, V])
	case int32:
		fn = pairSortFunc[int32, V](SortPairsOrdered[int32, V])
	case int64:
		fn = pairSortFunc[int64, V](SortPairsOrdered[int64, V])
	case uint:
		fn = pairSortFunc[uint, V](SortPairsOrdered[uint, V])
	case uint8:
		fn = pairSortFunc[uint8, V](SortPairsOrdered[uint8, V])
	case uint16:
		fn = pairSortFunc[uint16, V](SortPairsOrdered[uint16, V])
	case uint32:
		fn = pairSortFunc[uint32, V](SortPairsOrdered[uint32, V])
	case uint64:
		fn = pairSortFunc[uint64, V](SortPairsOrdered[uint64, V])
	case uintptr:
		fn = pairSortFunc[uintptr, V](SortPairsOrdered[uintptr, V])
	case string:
		fn = pairSortFunc[string, V](SortPairsOrdered[string, V])
	case float32:
		fn = pairSortFunc[float32, V](SortPairsOrderedNaN[float32, V])
	case float64:
		fn = pairSortFunc[float64, V](SortPairsOrderedNaN[float64, V])
	default:
		return nil, false
	}
	return fn.(pairSortFunc[K, V]), true
}
