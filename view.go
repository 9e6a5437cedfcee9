package segmented

import "iter"

// View is a window [start, start+length) over an Array. It never copies or
// allocates; writes through a view are visible in the array.
type View[T any] struct {
	array  Array[T]
	start  int
	length int
}

// NewView returns a view over a[start:start+length].
func NewView[T any](a Array[T], start, length int) (View[T], error) {
	if err := checkRange(start, length, a.Len()); err != nil {
		return View[T]{}, err
	}
	return View[T]{array: a, start: start, length: length}, nil
}

// Len returns the number of elements in the view.
func (v View[T]) Len() int { return v.length }

// Start returns the offset of the view in its array.
func (v View[T]) Start() int { return v.start }

// Array returns the underlying array.
func (v View[T]) Array() Array[T] { return v.array }

// Get returns the element at i, relative to the view.
func (v View[T]) Get(i int) (T, error) {
	if uint(i) >= uint(v.length) {
		var zero T
		return zero, errOutOfRange("index", i, v.length)
	}
	return v.array.s.Get(v.start + i), nil
}

// Set stores x at i, relative to the view.
func (v View[T]) Set(i int, x T) error {
	if uint(i) >= uint(v.length) {
		return errOutOfRange("index", i, v.length)
	}
	v.array.s.Set(v.start+i, x)
	return nil
}

// Slice returns a narrower view; start is relative to v.
func (v View[T]) Slice(start, length int) (View[T], error) {
	if err := checkRange(start, length, v.length); err != nil {
		return View[T]{}, err
	}
	return View[T]{array: v.array, start: v.start + start, length: length}, nil
}

// Values returns an iterator over the elements of the view.
func (v View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for c := range v.array.s.Chunks(v.start, v.length) {
			for _, x := range c {
				if !yield(x) {
					return
				}
			}
		}
	}
}
