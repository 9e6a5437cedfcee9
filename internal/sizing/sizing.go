package sizing

import (
	"math/bits"
	"unsafe"
)

// Threshold is the large-allocation boundary in bytes. A single segment
// is always strictly smaller than this (unless one element alone exceeds it).
const Threshold = 85000

// MaxLength is the largest element count a segmented array may hold.
const MaxLength = 0x7FFFFFC7

// Params holds the segment geometry for one element size.
type Params struct {
	Size  int  // elements per segment, power of two
	Shift uint // log2(Size)
	Mask  int  // Size - 1
}

// Segments returns the number of segments needed for length elements.
func (p Params) Segments(length int) int {
	return (length + p.Mask) >> p.Shift
}

// table covers the power-of-two element sizes up to a cache line.
var table = [...]Params{
	1:  {Size: 65536, Shift: 16, Mask: 65535},
	2:  {Size: 32768, Shift: 15, Mask: 32767},
	4:  {Size: 16384, Shift: 14, Mask: 16383},
	8:  {Size: 8192, Shift: 13, Mask: 8191},
	16: {Size: 4096, Shift: 12, Mask: 4095},
	32: {Size: 2048, Shift: 11, Mask: 2047},
	64: {Size: 1024, Shift: 10, Mask: 1023},
}

// For returns the segment geometry for T.
func For[T any]() Params {
	var zero T
	return ForSize(unsafe.Sizeof(zero))
}

// ForSize returns the segment geometry for elements of elemSize bytes.
// Zero-sized elements are treated as one byte wide.
func ForSize(elemSize uintptr) Params {
	if elemSize == 0 {
		elemSize = 1
	}
	if elemSize < uintptr(len(table)) && table[elemSize].Size != 0 {
		return table[elemSize]
	}
	return General(elemSize)
}

// General computes the segment geometry without the lookup table.
func General(elemSize uintptr) Params {
	if elemSize == 0 {
		elemSize = 1
	}
	size := uintptr(1)
	for size*2*elemSize < Threshold {
		size <<= 1
	}
	shift := uint(bits.TrailingZeros64(uint64(size)))
	return Params{
		Size:  int(size),
		Shift: shift,
		Mask:  int(size) - 1,
	}
}
