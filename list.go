package segmented

import (
	"context"
	"fmt"
	"iter"

	"github.com/hupe1980/segmented/internal/segstore"
)

const (
	// defaultCapacity is the first capacity of a list grown from empty.
	defaultCapacity = 4

	// trimThreshold is the fill ratio below which TrimExcess reallocates.
	trimThreshold = 0.9
)

var discardLogger = NoopLogger()

// List is a growable sequence of T backed by an Array. Growing reuses the
// full segments of the old backing array, so appending never copies more
// than one segment and no single allocation exceeds the segment budget.
//
// The zero value is an empty list ready to use. A List is not safe for
// concurrent use; modifications during enumeration are detected and
// reported with ErrInvalidOperation.
type List[T any] struct {
	items   Array[T]
	count   int
	version int
	opts    options
}

// NewList returns an empty list.
func NewList[T any](opts ...Option) *List[T] {
	return &List[T]{opts: applyOptions(opts)}
}

// NewListWithCapacity returns an empty list able to hold capacity elements
// without growing.
func NewListWithCapacity[T any](capacity int, opts ...Option) (*List[T], error) {
	if capacity < 0 || capacity > MaxLength {
		return nil, errOutOfRange("capacity", capacity, MaxLength)
	}
	l := &List[T]{opts: applyOptions(opts)}
	l.items = Array[T]{s: segstore.New[T](capacity)}
	return l, nil
}

// NewListFromSlice returns a list holding a copy of items.
func NewListFromSlice[T any](items []T, opts ...Option) *List[T] {
	l := &List[T]{opts: applyOptions(opts)}
	l.items = ArrayOf(items...)
	l.count = len(items)
	return l
}

// NewListFromSeq returns a list holding the values produced by seq.
func NewListFromSeq[T any](seq iter.Seq[T], opts ...Option) *List[T] {
	l := NewList[T](opts...)
	l.AddSeq(seq)
	return l
}

func (l *List[T]) logger() *Logger {
	if l.opts.logger == nil {
		return discardLogger
	}
	return l.opts.logger
}

func (l *List[T]) metrics() MetricsCollector {
	if l.opts.metricsCollector == nil {
		return NoopMetricsCollector{}
	}
	return l.opts.metricsCollector
}

// derive returns an empty list with capacity n sharing the options of src.
func derive[U, T any](src *List[T], n int) *List[U] {
	return &List[U]{
		items: Array[U]{s: segstore.New[U](n)},
		opts:  src.opts,
	}
}

// Len returns the number of elements.
func (l *List[T]) Len() int { return l.count }

// Cap returns the number of elements the list can hold without growing.
func (l *List[T]) Cap() int { return l.items.Len() }

// SetCap reallocates the backing array to exactly capacity elements.
// capacity must not be below Len.
func (l *List[T]) SetCap(capacity int) error {
	if capacity < l.count || capacity > MaxLength {
		return errOutOfRange("capacity", capacity, MaxLength)
	}
	l.setCapacity(capacity)
	return nil
}

func (l *List[T]) setCapacity(capacity int) {
	old := l.items.Len()
	if capacity == old {
		return
	}

	s, stats := l.items.s.Resize(capacity)
	l.items = Array[T]{s: s}
	l.version++

	if capacity > old {
		l.metrics().RecordGrow(old, capacity, stats.Reused, stats.Allocated)
		l.logger().LogGrow(context.Background(), old, capacity, stats.Reused, stats.Allocated)
	} else {
		l.metrics().RecordTrim(old, capacity)
		l.logger().LogTrim(context.Background(), old, capacity)
	}
}

// newCapacity computes the capacity to grow to so that at least minimum
// elements fit.
func (l *List[T]) newCapacity(minimum int) int {
	size := l.items.SegmentSize()
	old := l.items.Len()

	var capacity int
	switch {
	case old < size/2:
		capacity = max(defaultCapacity, 2*old)
	case old < size:
		capacity = size
	default:
		segments := (old + size - 1) / size
		capacity = size * (segments + max(1, segments>>3))
	}

	if capacity > MaxLength {
		capacity = MaxLength
	}
	if capacity < minimum {
		capacity = minimum
	}
	if capacity > size {
		capacity = (capacity + size - 1) / size * size
	}
	if capacity > MaxLength {
		capacity = MaxLength
	}
	return capacity
}

func (l *List[T]) grow(minimum int) {
	l.setCapacity(l.newCapacity(minimum))
}

// EnsureCapacity grows the list so that it can hold at least capacity
// elements and returns the resulting capacity.
func (l *List[T]) EnsureCapacity(capacity int) (int, error) {
	if capacity < 0 || capacity > MaxLength {
		return l.Cap(), errOutOfRange("capacity", capacity, MaxLength)
	}
	if l.items.Len() < capacity {
		l.grow(capacity)
	}
	return l.items.Len(), nil
}

// TrimExcess shrinks the capacity to Len when less than 90% of the
// capacity is in use.
func (l *List[T]) TrimExcess() {
	threshold := int(float64(l.items.Len()) * trimThreshold)
	if l.count < threshold {
		l.setCapacity(l.count)
	}
}

// Get returns the element at i.
func (l *List[T]) Get(i int) (T, error) {
	if uint(i) >= uint(l.count) {
		var zero T
		return zero, errOutOfRange("index", i, l.count)
	}
	return l.items.s.Get(i), nil
}

// Set replaces the element at i.
func (l *List[T]) Set(i int, v T) error {
	if uint(i) >= uint(l.count) {
		return errOutOfRange("index", i, l.count)
	}
	l.items.s.Set(i, v)
	l.version++
	return nil
}

// Add appends v. It panics if the list already holds MaxLength elements.
func (l *List[T]) Add(v T) {
	if l.count == l.items.Len() {
		if l.count == MaxLength {
			panic(fmt.Errorf("%w: list is at maximum length %d", ErrOutOfRange, MaxLength))
		}
		l.grow(l.count + 1)
	}
	l.items.s.Set(l.count, v)
	l.count++
	l.version++
}

// AddRange appends all of items.
func (l *List[T]) AddRange(items []T) {
	if len(items) == 0 {
		return
	}
	if MaxLength-l.count < len(items) {
		panic(fmt.Errorf("%w: list would exceed maximum length %d", ErrOutOfRange, MaxLength))
	}
	if l.items.Len()-l.count < len(items) {
		l.grow(l.count + len(items))
	}
	l.items.s.CopyFromSlice(l.count, items)
	l.count += len(items)
	l.version++
}

// AddSeq appends the values produced by seq.
func (l *List[T]) AddSeq(seq iter.Seq[T]) {
	for v := range seq {
		l.Add(v)
	}
}

// Insert inserts v at index i, shifting later elements up. i may equal Len.
func (l *List[T]) Insert(i int, v T) error {
	if uint(i) > uint(l.count) {
		return errOutOfRange("index", i, l.count)
	}
	if l.count == l.items.Len() {
		if l.count == MaxLength {
			return fmt.Errorf("%w: list is at maximum length %d", ErrOutOfRange, MaxLength)
		}
		l.grow(l.count + 1)
	}
	if i < l.count {
		segstore.Copy(&l.items.s, i, &l.items.s, i+1, l.count-i)
	}
	l.items.s.Set(i, v)
	l.count++
	l.version++
	return nil
}

// InsertRange inserts items at index, shifting later elements up.
func (l *List[T]) InsertRange(index int, items []T) error {
	if uint(index) > uint(l.count) {
		return errOutOfRange("index", index, l.count)
	}
	n := len(items)
	if n == 0 {
		return nil
	}
	if MaxLength-l.count < n {
		return fmt.Errorf("%w: list would exceed maximum length %d", ErrOutOfRange, MaxLength)
	}
	if l.items.Len()-l.count < n {
		l.grow(l.count + n)
	}
	if index < l.count {
		segstore.Copy(&l.items.s, index, &l.items.s, index+n, l.count-index)
	}
	l.items.s.CopyFromSlice(index, items)
	l.count += n
	l.version++
	return nil
}

// RemoveAt removes the element at i, shifting later elements down.
func (l *List[T]) RemoveAt(i int) error {
	if uint(i) >= uint(l.count) {
		return errOutOfRange("index", i, l.count)
	}
	l.count--
	if i < l.count {
		segstore.Copy(&l.items.s, i+1, &l.items.s, i, l.count-i)
	}
	l.items.s.Clear(l.count, 1)
	l.version++
	return nil
}

// RemoveRange removes count elements starting at index.
func (l *List[T]) RemoveRange(index, count int) error {
	if err := checkRange(index, count, l.count); err != nil {
		return err
	}
	if count == 0 {
		return nil
	}
	l.count -= count
	if index < l.count {
		segstore.Copy(&l.items.s, index+count, &l.items.s, index, l.count-index)
	}
	l.items.s.Clear(l.count, count)
	l.version++
	return nil
}

// Remove removes the first element equal to item and reports whether one
// was found. A nil eq selects DefaultEquality.
func (l *List[T]) Remove(item T, eq EqualityComparer[T]) (bool, error) {
	i, err := l.IndexOf(item, eq)
	if err != nil || i < 0 {
		return false, err
	}
	return true, l.RemoveAt(i)
}

// RemoveAll removes every element matching match in a single pass and
// returns the number removed. The relative order of the survivors is kept.
// It panics if match is nil.
func (l *List[T]) RemoveAll(match func(T) bool) int {
	mustPredicate(match)
	s := &l.items.s

	free := 0
	for free < l.count && !match(s.Get(free)) {
		free++
	}
	if free >= l.count {
		return 0
	}

	for current := free + 1; current < l.count; current++ {
		v := s.Get(current)
		if !match(v) {
			s.Set(free, v)
			free++
		}
	}

	removed := l.count - free
	s.Clear(free, removed)
	l.count = free
	l.version++
	return removed
}

// Clear removes all elements. The capacity is unchanged.
func (l *List[T]) Clear() {
	if l.count > 0 {
		l.items.s.Clear(0, l.count)
		l.count = 0
	}
	l.version++
}

// Reverse reverses the order of the elements.
func (l *List[T]) Reverse() {
	l.items.s.Reverse(0, l.count)
	l.version++
}

// ReverseRange reverses the order of count elements starting at index.
func (l *List[T]) ReverseRange(index, count int) error {
	if err := checkRange(index, count, l.count); err != nil {
		return err
	}
	l.items.s.Reverse(index, count)
	l.version++
	return nil
}

// GetRange returns a new list holding a copy of count elements starting at
// index. The new list inherits the options of l.
func (l *List[T]) GetRange(index, count int) (*List[T], error) {
	if err := checkRange(index, count, l.count); err != nil {
		return nil, err
	}
	r := derive[T](l, count)
	segstore.Copy(&l.items.s, index, &r.items.s, 0, count)
	r.count = count
	return r, nil
}

// Slice is an alias of GetRange.
func (l *List[T]) Slice(index, count int) (*List[T], error) {
	return l.GetRange(index, count)
}

// ConvertAll returns a new list holding fn applied to every element of l.
func ConvertAll[T, U any](l *List[T], fn func(T) U) (*List[U], error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: nil converter", ErrInvalidArgument)
	}
	r := derive[U](l, l.count)
	i := 0
	for c := range l.items.s.Chunks(0, l.count) {
		for _, v := range c {
			r.items.s.Set(i, fn(v))
			i++
		}
	}
	r.count = l.count
	return r, nil
}

// ToArray returns a new array holding a copy of the elements.
func (l *List[T]) ToArray() Array[T] {
	a := Array[T]{s: segstore.New[T](l.count)}
	segstore.Copy(&l.items.s, 0, &a.s, 0, l.count)
	return a
}

// ToSlice returns the elements as a new flat slice.
func (l *List[T]) ToSlice() []T {
	out := make([]T, l.count)
	l.items.s.CopyToSlice(0, out)
	return out
}

// CopyTo copies every element into dst starting at dstIndex.
func (l *List[T]) CopyTo(dst []T, dstIndex int) error {
	return l.CopyRangeTo(0, dst, dstIndex, l.count)
}

// CopyRangeTo copies count elements starting at index into dst starting at
// dstIndex.
func (l *List[T]) CopyRangeTo(index int, dst []T, dstIndex, count int) error {
	if err := checkRange(index, count, l.count); err != nil {
		return err
	}
	if dstIndex < 0 {
		return errOutOfRange("dstIndex", dstIndex, len(dst))
	}
	if len(dst)-dstIndex < count {
		return fmt.Errorf("%w: destination too short: need %d, have %d", ErrInvalidArgument, count, len(dst)-dstIndex)
	}
	l.items.s.CopyToSlice(index, dst[dstIndex:dstIndex+count])
	return nil
}
