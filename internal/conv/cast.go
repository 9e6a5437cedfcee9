package conv

import (
	"errors"
	"fmt"
)

// ErrOverflow is returned when a value does not fit the target type.
var ErrOverflow = errors.New("integer overflow")

// Integer is the set of integer types Checked converts between.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Checked converts v to To, failing with ErrOverflow when the value would
// change: it is truncated or its sign flips.
func Checked[To, From Integer](v From) (To, error) {
	t := To(v)
	if From(t) != v || (t < 0) != (v < 0) {
		return 0, fmt.Errorf("%w: %d does not fit in %T", ErrOverflow, v, t)
	}
	return t, nil
}

// IntToUint32 converts a length or index to its on-disk width.
func IntToUint32(v int) (uint32, error) { return Checked[uint32](v) }

// Uint32ToInt converts an on-disk length or index back to int.
func Uint32ToInt(v uint32) (int, error) { return Checked[int](v) }

// Uint64ToInt converts an on-disk 64-bit length back to int.
func Uint64ToInt(v uint64) (int, error) { return Checked[int](v) }
