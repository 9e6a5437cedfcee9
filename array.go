package segmented

import (
	"fmt"
	"iter"

	"github.com/hupe1980/segmented/internal/segstore"
	"github.com/hupe1980/segmented/internal/sizing"
)

// MaxLength is the largest length of an Array and the largest capacity of
// a List.
const MaxLength = sizing.MaxLength

// IndexedCollection is the list-like surface shared by Array and List.
// Fixed-size implementations reject Insert and RemoveAt with ErrNotSupported.
type IndexedCollection[T any] interface {
	Len() int
	Get(i int) (T, error)
	Set(i int, v T) error
	Insert(i int, v T) error
	RemoveAt(i int) error
}

var (
	_ IndexedCollection[int] = Array[int]{}
	_ IndexedCollection[int] = (*List[int])(nil)
)

// Array is a fixed-length sequence of T stored in equally sized segments,
// so that no single allocation grows large enough to land on the large
// object heap of a generational collector.
//
// Array is a small value; copies share the same elements. Use Clone for an
// independent copy. The zero value is an empty array.
type Array[T any] struct {
	s segstore.Store[T]
}

// NewArray allocates an array of length zeroed elements.
func NewArray[T any](length int) (Array[T], error) {
	if length < 0 || length > MaxLength {
		return Array[T]{}, errOutOfRange("length", length, MaxLength)
	}
	return Array[T]{s: segstore.New[T](length)}, nil
}

// BuildArray returns an array of length elements whose segments are
// allocated one at a time and passed to fill in index order. Each segment
// is zeroed when fill sees it. BuildArray stops at the first error fill
// returns, so a caller reading from an untrusted source never allocates far
// ahead of the data it has actually consumed.
func BuildArray[T any](length int, fill func(segment []T) error) (Array[T], error) {
	if length < 0 || length > MaxLength {
		return Array[T]{}, errOutOfRange("length", length, MaxLength)
	}
	if fill == nil {
		return Array[T]{}, fmt.Errorf("%w: nil fill function", ErrInvalidArgument)
	}
	s, err := segstore.Build(length, fill)
	if err != nil {
		return Array[T]{}, err
	}
	return Array[T]{s: s}, nil
}

// ArrayOf returns an array holding a copy of items.
func ArrayOf[T any](items ...T) Array[T] {
	a := Array[T]{s: segstore.New[T](len(items))}
	a.s.CopyFromSlice(0, items)
	return a
}

// Len returns the number of elements.
func (a Array[T]) Len() int { return a.s.Len() }

// SegmentSize returns the number of elements per segment for T.
func (a Array[T]) SegmentSize() int { return a.s.Params().Size }

// SegmentCount returns the number of allocated segments.
func (a Array[T]) SegmentCount() int { return a.s.SegmentCount() }

// Get returns the element at i.
func (a Array[T]) Get(i int) (T, error) {
	if uint(i) >= uint(a.s.Len()) {
		var zero T
		return zero, errOutOfRange("index", i, a.s.Len())
	}
	return a.s.Get(i), nil
}

// Set stores v at i.
func (a Array[T]) Set(i int, v T) error {
	if uint(i) >= uint(a.s.Len()) {
		return errOutOfRange("index", i, a.s.Len())
	}
	a.s.Set(i, v)
	return nil
}

// Insert always fails: arrays have a fixed length.
func (a Array[T]) Insert(int, T) error {
	return fmt.Errorf("%w: insert into fixed-size array", ErrNotSupported)
}

// RemoveAt always fails: arrays have a fixed length.
func (a Array[T]) RemoveAt(int) error {
	return fmt.Errorf("%w: remove from fixed-size array", ErrNotSupported)
}

// Clone returns a deep copy of the array.
func (a Array[T]) Clone() Array[T] {
	return Array[T]{s: a.s.Clone()}
}

// Equal reports whether a and o are the same array, not whether their
// contents match. Arrays returned by different constructor calls are never
// equal, even when both are empty; zero-value arrays are equal to each
// other.
func (a Array[T]) Equal(o Array[T]) bool {
	return a.s.Same(&o.s)
}

// View returns a view over the whole array.
func (a Array[T]) View() View[T] {
	return View[T]{array: a, length: a.s.Len()}
}

// Slice returns a view over [start, start+length).
func (a Array[T]) Slice(start, length int) (View[T], error) {
	return NewView(a, start, length)
}

// CopyTo copies every element into dst starting at dstIndex.
func (a Array[T]) CopyTo(dst []T, dstIndex int) error {
	if dstIndex < 0 {
		return errOutOfRange("dstIndex", dstIndex, len(dst))
	}
	if len(dst)-dstIndex < a.s.Len() {
		return fmt.Errorf("%w: destination too short: need %d, have %d", ErrInvalidArgument, a.s.Len(), len(dst)-dstIndex)
	}
	a.s.CopyToSlice(0, dst[dstIndex:dstIndex+a.s.Len()])
	return nil
}

// CopyFrom copies all of src into the array starting at index.
func (a Array[T]) CopyFrom(src []T, index int) error {
	if index < 0 {
		return errOutOfRange("index", index, a.s.Len())
	}
	if a.s.Len()-index < len(src) {
		return fmt.Errorf("%w: source too long: need %d, have %d", ErrInvalidArgument, len(src), a.s.Len()-index)
	}
	a.s.CopyFromSlice(index, src)
	return nil
}

// Values returns an iterator over the elements in index order.
func (a Array[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for c := range a.s.Chunks(0, a.s.Len()) {
			for _, v := range c {
				if !yield(v) {
					return
				}
			}
		}
	}
}

// All returns an iterator over index/element pairs.
func (a Array[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		i := 0
		for c := range a.s.Chunks(0, a.s.Len()) {
			for _, v := range c {
				if !yield(i, v) {
					return
				}
				i++
			}
		}
	}
}

// Chunks returns an iterator over the contiguous runs covering
// [start, start+length). The yielded slices alias the array and are valid
// until the array is discarded. Chunks panics if the range is invalid.
func (a Array[T]) Chunks(start, length int) iter.Seq[[]T] {
	if err := checkRange(start, length, a.s.Len()); err != nil {
		panic(err)
	}
	return a.s.Chunks(start, length)
}

// Reverse reverses the order of [index, index+length).
func (a Array[T]) Reverse(index, length int) error {
	if err := checkRange(index, length, a.s.Len()); err != nil {
		return err
	}
	a.s.Reverse(index, length)
	return nil
}

// Clear resets [index, index+length) to the zero value.
func (a Array[T]) Clear(index, length int) error {
	if err := checkRange(index, length, a.s.Len()); err != nil {
		return err
	}
	a.s.Clear(index, length)
	return nil
}

// Fill sets every element to v.
func (a Array[T]) Fill(v T) {
	a.s.Fill(0, a.s.Len(), v)
}

// Copy copies length elements from src starting at srcIndex to dst
// starting at dstIndex. Source and destination may be the same array and
// may overlap.
func Copy[T any](src Array[T], srcIndex int, dst Array[T], dstIndex int, length int) error {
	if srcIndex < 0 {
		return errOutOfRange("srcIndex", srcIndex, src.Len())
	}
	if dstIndex < 0 {
		return errOutOfRange("dstIndex", dstIndex, dst.Len())
	}
	if length < 0 {
		return errOutOfRange("length", length, src.Len())
	}
	if src.Len()-srcIndex < length {
		return fmt.Errorf("%w: source too short: need %d, have %d", ErrInvalidArgument, length, src.Len()-srcIndex)
	}
	if dst.Len()-dstIndex < length {
		return fmt.Errorf("%w: destination too short: need %d, have %d", ErrInvalidArgument, length, dst.Len()-dstIndex)
	}
	segstore.Copy(&src.s, srcIndex, &dst.s, dstIndex, length)
	return nil
}

// CopyToSlice copies length elements from src starting at srcIndex into
// dst starting at dstIndex.
func CopyToSlice[T any](src Array[T], srcIndex int, dst []T, dstIndex int, length int) error {
	if srcIndex < 0 {
		return errOutOfRange("srcIndex", srcIndex, src.Len())
	}
	if dstIndex < 0 {
		return errOutOfRange("dstIndex", dstIndex, len(dst))
	}
	if length < 0 {
		return errOutOfRange("length", length, src.Len())
	}
	if src.Len()-srcIndex < length {
		return fmt.Errorf("%w: source too short: need %d, have %d", ErrInvalidArgument, length, src.Len()-srcIndex)
	}
	if len(dst)-dstIndex < length {
		return fmt.Errorf("%w: destination too short: need %d, have %d", ErrInvalidArgument, length, len(dst)-dstIndex)
	}
	src.s.CopyToSlice(srcIndex, dst[dstIndex:dstIndex+length])
	return nil
}

// CopyFromSlice copies length elements from src starting at srcIndex into
// dst starting at dstIndex.
func CopyFromSlice[T any](src []T, srcIndex int, dst Array[T], dstIndex int, length int) error {
	if srcIndex < 0 {
		return errOutOfRange("srcIndex", srcIndex, len(src))
	}
	if dstIndex < 0 {
		return errOutOfRange("dstIndex", dstIndex, dst.Len())
	}
	if length < 0 {
		return errOutOfRange("length", length, len(src))
	}
	if len(src)-srcIndex < length {
		return fmt.Errorf("%w: source too short: need %d, have %d", ErrInvalidArgument, length, len(src)-srcIndex)
	}
	if dst.Len()-dstIndex < length {
		return fmt.Errorf("%w: destination too short: need %d, have %d", ErrInvalidArgument, length, dst.Len()-dstIndex)
	}
	dst.s.CopyFromSlice(dstIndex, src[srcIndex:srcIndex+length])
	return nil
}

// IndexOf returns the index of the first element equal to value, or -1.
// A nil eq selects DefaultEquality.
func IndexOf[T any](a Array[T], value T, eq EqualityComparer[T]) (int, error) {
	return IndexOfRange(a, value, 0, a.Len(), eq)
}

// IndexOfRange is IndexOf restricted to [index, index+count).
func IndexOfRange[T any](a Array[T], value T, index, count int, eq EqualityComparer[T]) (int, error) {
	if err := checkRange(index, count, a.Len()); err != nil {
		return -1, err
	}
	equal, err := equalityOrDefault(eq)
	if err != nil {
		return -1, err
	}
	i := index
	for c := range a.s.Chunks(index, count) {
		for _, v := range c {
			if equal(v, value) {
				return i, nil
			}
			i++
		}
	}
	return -1, nil
}

// LastIndexOf returns the index of the last element equal to value, or -1.
// A nil eq selects DefaultEquality.
func LastIndexOf[T any](a Array[T], value T, eq EqualityComparer[T]) (int, error) {
	return LastIndexOfRange(a, value, 0, a.Len(), eq)
}

// LastIndexOfRange is LastIndexOf restricted to [index, index+count),
// scanning from the end of the range.
func LastIndexOfRange[T any](a Array[T], value T, index, count int, eq EqualityComparer[T]) (int, error) {
	if err := checkRange(index, count, a.Len()); err != nil {
		return -1, err
	}
	equal, err := equalityOrDefault(eq)
	if err != nil {
		return -1, err
	}
	for i := index + count - 1; i >= index; i-- {
		if equal(a.s.Get(i), value) {
			return i, nil
		}
	}
	return -1, nil
}
