package segmented

import (
	"context"
	"fmt"
	"time"
)

// IndexOf returns the index of the first element equal to item, or -1.
// A nil eq selects DefaultEquality.
func (l *List[T]) IndexOf(item T, eq EqualityComparer[T]) (int, error) {
	return IndexOfRange(l.items, item, 0, l.count, eq)
}

// IndexOfRange is IndexOf restricted to [index, index+count).
func (l *List[T]) IndexOfRange(item T, index, count int, eq EqualityComparer[T]) (int, error) {
	if err := checkRange(index, count, l.count); err != nil {
		return -1, err
	}
	return IndexOfRange(l.items, item, index, count, eq)
}

// LastIndexOf returns the index of the last element equal to item, or -1.
func (l *List[T]) LastIndexOf(item T, eq EqualityComparer[T]) (int, error) {
	return LastIndexOfRange(l.items, item, 0, l.count, eq)
}

// LastIndexOfRange is LastIndexOf restricted to [index, index+count),
// scanning from the end of the range.
func (l *List[T]) LastIndexOfRange(item T, index, count int, eq EqualityComparer[T]) (int, error) {
	if err := checkRange(index, count, l.count); err != nil {
		return -1, err
	}
	return LastIndexOfRange(l.items, item, index, count, eq)
}

// Contains reports whether an element equal to item is present.
func (l *List[T]) Contains(item T, eq EqualityComparer[T]) (bool, error) {
	i, err := l.IndexOf(item, eq)
	return i >= 0, err
}

// BinarySearch searches the sorted list for item. It returns the index of
// a matching element, or the bitwise complement of the index at which item
// would be inserted. A nil comparer selects the default ordering.
func (l *List[T]) BinarySearch(item T, c Comparer[T]) (int, error) {
	return BinarySearch(l.items, 0, l.count, item, c)
}

// BinarySearchRange is BinarySearch restricted to [index, index+count).
func (l *List[T]) BinarySearchRange(index, count int, item T, c Comparer[T]) (int, error) {
	if err := checkRange(index, count, l.count); err != nil {
		return 0, err
	}
	return BinarySearch(l.items, index, count, item, c)
}

// Sort sorts the list. A nil comparer selects the default ordering.
func (l *List[T]) Sort(c Comparer[T]) error {
	return l.SortRange(0, l.count, c)
}

// SortFunc sorts the list with fn.
func (l *List[T]) SortFunc(fn func(a, b T) int) error {
	if fn == nil {
		return fmt.Errorf("%w: nil comparison function", ErrInvalidArgument)
	}
	return l.SortRange(0, l.count, CompareFunc[T](fn))
}

// SortRange sorts count elements starting at index.
func (l *List[T]) SortRange(index, count int, c Comparer[T]) error {
	if err := checkRange(index, count, l.count); err != nil {
		return err
	}
	if count < 2 {
		return nil
	}

	start := time.Now()
	err := Sort(View[T]{array: l.items, start: index, length: count}, c)
	l.version++

	l.metrics().RecordSort(count, time.Since(start), err)
	l.logger().LogSort(context.Background(), count, err)
	return err
}

// Exists reports whether any element matches match.
func (l *List[T]) Exists(match func(T) bool) bool {
	mustPredicate(match)
	return l.FindIndex(match) >= 0
}

// Find returns the first element matching match.
func (l *List[T]) Find(match func(T) bool) (T, bool) {
	mustPredicate(match)
	if i := l.FindIndex(match); i >= 0 {
		return l.items.s.Get(i), true
	}
	var zero T
	return zero, false
}

// FindIndex returns the index of the first element matching match, or -1.
//
// FindIndex and the other predicate searches panic with an error wrapping
// ErrInvalidArgument if match is nil.
func (l *List[T]) FindIndex(match func(T) bool) int {
	mustPredicate(match)
	i := 0
	for c := range l.items.s.Chunks(0, l.count) {
		for _, v := range c {
			if match(v) {
				return i
			}
			i++
		}
	}
	return -1
}

// FindLastIndex returns the index of the last element matching match, or -1.
func (l *List[T]) FindLastIndex(match func(T) bool) int {
	mustPredicate(match)
	for i := l.count - 1; i >= 0; i-- {
		if match(l.items.s.Get(i)) {
			return i
		}
	}
	return -1
}

// FindAll returns a new list holding every element matching match. The new
// list inherits the options of l.
func (l *List[T]) FindAll(match func(T) bool) *List[T] {
	mustPredicate(match)
	r := derive[T](l, 0)
	for c := range l.items.s.Chunks(0, l.count) {
		for _, v := range c {
			if match(v) {
				r.Add(v)
			}
		}
	}
	return r
}

// TrueForAll reports whether every element matches match. It is true for
// an empty list.
func (l *List[T]) TrueForAll(match func(T) bool) bool {
	mustPredicate(match)
	return l.FindIndex(func(v T) bool { return !match(v) }) < 0
}
