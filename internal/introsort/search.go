package introsort

import (
	"cmp"

	"github.com/hupe1980/segmented/internal/segstore"
)

// BinarySearchFunc searches the sorted range s[lo:lo+n] for v.
// It returns the index of a matching element, or the bitwise complement of
// the index at which v would be inserted.
func BinarySearchFunc[T any](s *segstore.Store[T], lo, n int, v T, compare func(a, b T) int) (idx int, err error) {
	defer recoverComparer(&err)

	hi := lo + n - 1
	for lo <= hi {
		i := lo + (hi-lo)>>1
		c := compare(s.Get(i), v)
		if c == 0 {
			return i, nil
		}
		if c < 0 {
			lo = i + 1
		} else {
			hi = i - 1
		}
	}
	return ^lo, nil
}

// BinarySearchOrdered is BinarySearchFunc using cmp.Compare, which orders
// NaNs before all other values.
func BinarySearchOrdered[T cmp.Ordered](s *segstore.Store[T], lo, n int, v T) int {
	hi := lo + n - 1
	for lo <= hi {
		i := lo + (hi-lo)>>1
		c := cmp.Compare(s.Get(i), v)
		if c == 0 {
			return i
		}
		if c < 0 {
			lo = i + 1
		} else {
			hi = i - 1
		}
	}
	return ^lo
}
