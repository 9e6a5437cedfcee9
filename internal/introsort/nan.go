package introsort

import (
	"cmp"

	"github.com/hupe1980/segmented/internal/segstore"
)

// isNaN reports whether v is a floating-point NaN. It is always false for
// integer and string keys.
func isNaN[T cmp.Ordered](v T) bool {
	return v != v
}

// MoveNaNs moves every NaN in s[lo:lo+n] to the front of the range and
// returns how many were moved. NaNs have no place in a total order, so the
// default ordering treats them as smaller than every other value.
func MoveNaNs[T cmp.Ordered](s *segstore.Store[T], lo, n int) int {
	left := lo
	for i := lo; i < lo+n; i++ {
		if isNaN(s.Get(i)) {
			s.Swap(left, i)
			left++
		}
	}
	return left - lo
}

// MoveNaNPairs is MoveNaNs for paired storage.
func MoveNaNPairs[K cmp.Ordered, V any](keys *segstore.Store[K], values *segstore.Store[V], lo, n, voff int) int {
	left := lo
	for i := lo; i < lo+n; i++ {
		if isNaN(keys.Get(i)) {
			keys.Swap(left, i)
			values.Swap(left+voff, i+voff)
			left++
		}
	}
	return left - lo
}
