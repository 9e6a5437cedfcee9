// Package segmented provides arrays and lists that store their elements in
// fixed-size segments instead of one contiguous buffer.
//
// A segment holds as many elements as fit below 85,000 bytes, so even very
// long collections are built from many small allocations. Growing a List
// reuses the full segments of its old backing array: appending copies at
// most one segment and never asks the allocator for a huge block.
//
// # Quick Start
//
//	l := segmented.NewList[int]()
//	for i := range 1_000_000 {
//	    l.Add(i)
//	}
//	v, _ := l.Get(42)
//
//	_ = l.Sort(nil)                    // default ordering
//	i, _ := l.BinarySearch(7, nil)     // index, or ^insertionPoint
//
// # Arrays and Views
//
// Array is a fixed-length value type; copies alias the same elements and
// Clone makes an independent copy. View narrows an array to a sub-range
// without copying and is the unit the sort functions operate on:
//
//	a, _ := segmented.NewArray[float64](1 << 20)
//	v, _ := a.Slice(100, 5000)
//	segmented.SortOrdered(v)
//
// # Ordering and Equality
//
// Sort and search functions accept an optional Comparer. A nil comparer
// selects the default ordering: the natural order for built-in integer,
// floating-point and string types (NaNs first), or CompareTo for types
// implementing Comparable. Searches by value accept an optional
// EqualityComparer with an analogous default.
//
// # Errors
//
// Bounds violations return ErrOutOfRange. Inconsistent comparers return
// ErrBadComparer and comparers that panic return a *ComparerFailedError.
// Modifying a List while enumerating it is reported with ErrInvalidOperation.
//
// # Observability
//
// Lists accept WithLogger and WithMetricsCollector options and report
// capacity changes and sorts through them.
package segmented
