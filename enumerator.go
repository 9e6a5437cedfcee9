package segmented

import (
	"fmt"
	"iter"
)

func errModified() error {
	return fmt.Errorf("%w: list was modified during enumeration", ErrInvalidOperation)
}

// Enumerator walks a List and detects modifications made after it was
// created.
//
//	e := l.Enumerator()
//	for e.Next() {
//	    fmt.Println(e.Current())
//	}
//	if err := e.Err(); err != nil {
//	    // the list was modified
//	}
type Enumerator[T any] struct {
	list    *List[T]
	index   int
	version int
	current T
	err     error
}

// Enumerator returns an enumerator positioned before the first element.
func (l *List[T]) Enumerator() *Enumerator[T] {
	return &Enumerator[T]{list: l, version: l.version}
}

// Next advances to the next element. It returns false at the end of the
// list or when the list was modified; Err distinguishes the two.
func (e *Enumerator[T]) Next() bool {
	if e.err != nil {
		return false
	}
	if e.version != e.list.version {
		e.err = errModified()
		return false
	}
	if e.index < e.list.count {
		e.current = e.list.items.s.Get(e.index)
		e.index++
		return true
	}
	var zero T
	e.current = zero
	e.index = e.list.count + 1
	return false
}

// Current returns the element at the current position.
func (e *Enumerator[T]) Current() T { return e.current }

// Err returns ErrInvalidOperation if the list was modified during
// enumeration.
func (e *Enumerator[T]) Err() error { return e.err }

// Reset rewinds the enumerator. It fails if the list was modified since
// the enumerator was created.
func (e *Enumerator[T]) Reset() error {
	if e.version != e.list.version {
		e.err = errModified()
		return e.err
	}
	var zero T
	e.index = 0
	e.current = zero
	e.err = nil
	return nil
}

// All returns an iterator over index/element pairs. It panics with an error
// wrapping ErrInvalidOperation if the list is modified during iteration.
func (l *List[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		version := l.version
		for i := 0; i < l.count; i++ {
			if !yield(i, l.items.s.Get(i)) {
				return
			}
			if version != l.version {
				panic(errModified())
			}
		}
	}
}

// Values returns an iterator over the elements. It panics with an error
// wrapping ErrInvalidOperation if the list is modified during iteration.
func (l *List[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range l.All() {
			if !yield(v) {
				return
			}
		}
	}
}

// ForEach calls action for every element. It stops and returns
// ErrInvalidOperation if action modifies the list.
func (l *List[T]) ForEach(action func(T)) error {
	if action == nil {
		return fmt.Errorf("%w: nil action", ErrInvalidArgument)
	}
	version := l.version
	for i := 0; i < l.count; i++ {
		action(l.items.s.Get(i))
		if version != l.version {
			return errModified()
		}
	}
	return nil
}
