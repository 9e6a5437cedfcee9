// Package segstore implements the unchecked storage behind segmented arrays.
//
// Callers are responsible for bounds validation; every method here assumes
// its indexes are already in range.
package segstore

import (
	"iter"
	"unsafe"

	"github.com/hupe1980/segmented/internal/sizing"
)

// Store is a fixed-length sequence of elements split into segments.
// All segments hold exactly Params.Size elements except the last one,
// which holds the remainder.
//
// Copying a Store value aliases its segments.
type Store[T any] struct {
	segments [][]T
	length   int
	params   sizing.Params
}

// buildTableHint bounds the segment table preallocated by Build, which
// trusts its length only as far as fill succeeds.
const buildTableHint = 64

// newTable returns a segment table of n entries. The backing array is
// never zero-sized, so every table, including an empty one, has its own
// identity for Same.
func newTable[T any](n, capacity int) [][]T {
	return make([][]T, n, max(capacity, 1))
}

// New allocates a store holding length zeroed elements.
func New[T any](length int) Store[T] {
	p := sizing.For[T]()
	n := p.Segments(length)
	s := Store[T]{length: length, params: p, segments: newTable[T](n, n)}
	if n == 0 {
		return s
	}

	for i := range n - 1 {
		s.segments[i] = make([]T, p.Size)
	}
	s.segments[n-1] = make([]T, length-(n-1)<<p.Shift)
	return s
}

// Build returns a store of length elements whose segments are allocated
// one at a time and handed to fill in index order. It stops at the first
// error, so no more than one segment beyond those fill accepted is ever
// allocated.
func Build[T any](length int, fill func(seg []T) error) (Store[T], error) {
	p := sizing.For[T]()
	n := p.Segments(length)
	s := Store[T]{length: length, params: p, segments: newTable[T](0, min(n, buildTableHint))}

	for i := range n {
		want := p.Size
		if i == n-1 {
			want = length - i<<p.Shift
		}
		seg := make([]T, want)
		if err := fill(seg); err != nil {
			return Store[T]{}, err
		}
		s.segments = append(s.segments, seg)
	}
	return s, nil
}

// Len returns the number of elements.
func (s *Store[T]) Len() int { return s.length }

// Params returns the segment geometry.
func (s *Store[T]) Params() sizing.Params {
	if s.params.Size == 0 {
		s.params = sizing.For[T]()
	}
	return s.params
}

// SegmentCount returns the number of allocated segments.
func (s *Store[T]) SegmentCount() int { return len(s.segments) }

// Get returns the element at i.
func (s *Store[T]) Get(i int) T {
	return s.segments[i>>s.params.Shift][i&s.params.Mask]
}

// Set stores v at i.
func (s *Store[T]) Set(i int, v T) {
	s.segments[i>>s.params.Shift][i&s.params.Mask] = v
}

// Ref returns a pointer to the element at i.
func (s *Store[T]) Ref(i int) *T {
	return &s.segments[i>>s.params.Shift][i&s.params.Mask]
}

// Swap exchanges the elements at i and j.
func (s *Store[T]) Swap(i, j int) {
	a, b := s.Ref(i), s.Ref(j)
	*a, *b = *b, *a
}

// Same reports whether both stores share the same segment table. Stores
// created by New, Build, Clone or Resize are distinct even when empty; only
// zero-value stores compare the same as each other.
func (s *Store[T]) Same(o *Store[T]) bool {
	return s.length == o.length && unsafe.SliceData(s.segments) == unsafe.SliceData(o.segments)
}

// sharesFirstSegment reports whether s and o start with the same buffer.
// Stores produced by Resize keep the old buffers, so this detects aliasing
// even when the segment tables differ.
func (s *Store[T]) sharesFirstSegment(o *Store[T]) bool {
	if len(s.segments) == 0 || len(o.segments) == 0 {
		return false
	}
	return unsafe.SliceData(s.segments[0]) == unsafe.SliceData(o.segments[0])
}

// Chunks yields the contiguous runs covering [start, start+n).
// The yielded slices alias the store.
func (s *Store[T]) Chunks(start, n int) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		for n > 0 {
			seg := s.segments[start>>s.params.Shift]
			off := start & s.params.Mask
			k := min(n, len(seg)-off)
			if !yield(seg[off : off+k]) {
				return
			}
			start += k
			n -= k
		}
	}
}

// Clone returns a deep copy.
func (s *Store[T]) Clone() Store[T] {
	c := Store[T]{length: s.length, params: s.params, segments: newTable[T](len(s.segments), len(s.segments))}
	for i, seg := range s.segments {
		c.segments[i] = make([]T, len(seg))
		copy(c.segments[i], seg)
	}
	return c
}

// ResizeStats describes how a Resize obtained its segments.
type ResizeStats struct {
	Reused    int // segments carried over untouched
	Allocated int // segments freshly allocated or reallocated
}

// Resize returns a store of length n that keeps the receiver's full
// segments. Only the boundary segment and any additional segments are
// allocated; elements beyond the old length are zero.
func (s *Store[T]) Resize(n int) (Store[T], ResizeStats) {
	p := s.Params()
	count := p.Segments(n)
	r := Store[T]{length: n, params: p, segments: newTable[T](count, count)}
	var stats ResizeStats
	if n == 0 {
		return r, stats
	}

	keep := copy(r.segments, s.segments)

	for i := range count {
		want := p.Size
		if i == count-1 {
			want = n - i<<p.Shift
		}
		if i < keep && len(r.segments[i]) == want {
			stats.Reused++
			continue
		}
		seg := make([]T, want)
		if i < keep {
			copy(seg, r.segments[i])
		}
		r.segments[i] = seg
		stats.Allocated++
	}
	return r, stats
}

// Clear zeroes [start, start+n).
func (s *Store[T]) Clear(start, n int) {
	for c := range s.Chunks(start, n) {
		clear(c)
	}
}

// Fill sets every element in [start, start+n) to v.
func (s *Store[T]) Fill(start, n int, v T) {
	for c := range s.Chunks(start, n) {
		for i := range c {
			c[i] = v
		}
	}
}

// Reverse reverses [start, start+n) in place.
func (s *Store[T]) Reverse(start, n int) {
	for i, j := start, start+n-1; i < j; i, j = i+1, j-1 {
		s.Swap(i, j)
	}
}

// CopyToSlice copies len(dst) elements starting at start into dst.
func (s *Store[T]) CopyToSlice(start int, dst []T) {
	for c := range s.Chunks(start, len(dst)) {
		dst = dst[copy(dst, c):]
	}
}

// CopyFromSlice copies src into the store starting at start.
func (s *Store[T]) CopyFromSlice(start int, src []T) {
	for c := range s.Chunks(start, len(src)) {
		src = src[copy(c, src):]
	}
}

// Copy moves n elements from src[si:] to dst[di:]. Overlapping ranges
// within the same storage behave like memmove.
func Copy[T any](src *Store[T], si int, dst *Store[T], di int, n int) {
	if n <= 0 {
		return
	}
	if di > si && si+n > di && src.sharesFirstSegment(dst) {
		copyBackward(src, si, dst, di, n)
		return
	}

	for n > 0 {
		sseg := src.segments[si>>src.params.Shift]
		soff := si & src.params.Mask
		dseg := dst.segments[di>>dst.params.Shift]
		doff := di & dst.params.Mask

		k := min(n, len(sseg)-soff, len(dseg)-doff)
		copy(dseg[doff:doff+k], sseg[soff:soff+k])
		si += k
		di += k
		n -= k
	}
}

func copyBackward[T any](src *Store[T], si int, dst *Store[T], di int, n int) {
	send, dend := si+n, di+n
	for n > 0 {
		slast, dlast := send-1, dend-1
		sseg := src.segments[slast>>src.params.Shift]
		dseg := dst.segments[dlast>>dst.params.Shift]
		soff := slast&src.params.Mask + 1
		doff := dlast&dst.params.Mask + 1

		k := min(n, soff, doff)
		copy(dseg[doff-k:doff], sseg[soff-k:soff])
		send -= k
		dend -= k
		n -= k
	}
}
