// Package introsort sorts and searches segmented storage in place.
//
// The sort is an introspective sort: partitions of at most 16 elements are
// finished with small sorting networks or insertion sort, larger ones are
// quicksorted around a median-of-three pivot, and a partition that exhausts
// its depth budget of 2*(floor(log2 n)+1) levels falls back to heapsort.
//
// Every algorithm exists in two flavours that are selected once per call:
//
//   - Func variants take a three-way comparison function.
//   - Ordered variants use the language operators on cmp.Ordered keys.
//
// Each flavour has a keys-only and a paired (keys plus values) form. Sort,
// SortPairs and BinarySearch pick the flavour for a nil comparison function.
package introsort
