package introsort

import (
	"cmp"

	"github.com/hupe1980/segmented/internal/segstore"
)

// SortOrdered sorts s[lo:lo+n] in ascending order using the < operator.
// The range must not contain NaNs; see SortOrderedNaN.
func SortOrdered[T cmp.Ordered](s *segstore.Store[T], lo, n int) {
	if n < 2 {
		return
	}
	o := orderedSorter[T]{s: s}
	o.introSort(lo, lo+n-1, depthLimit(n))
}

// SortOrderedNaN moves NaNs to the front of s[lo:lo+n] and sorts the
// remainder with SortOrdered.
func SortOrderedNaN[T cmp.Ordered](s *segstore.Store[T], lo, n int) {
	k := MoveNaNs(s, lo, n)
	SortOrdered(s, lo+k, n-k)
}

type orderedSorter[T cmp.Ordered] struct {
	s *segstore.Store[T]
}

func (o orderedSorter[T]) introSort(lo, hi, depth int) {
	for hi > lo {
		size := hi - lo + 1
		if size <= insertionThreshold {
			switch size {
			case 2:
				o.swapIfGreater(lo, hi)
			case 3:
				o.swapIfGreater(lo, hi-1)
				o.swapIfGreater(lo, hi)
				o.swapIfGreater(hi-1, hi)
			default:
				o.insertionSort(lo, hi)
			}
			return
		}

		if depth == 0 {
			o.heapSort(lo, hi)
			return
		}
		depth--

		p := o.partition(lo, hi)
		if p-lo < hi-p {
			o.introSort(lo, p-1, depth)
			lo = p + 1
		} else {
			o.introSort(p+1, hi, depth)
			hi = p - 1
		}
	}
}

func (o orderedSorter[T]) swapIfGreater(i, j int) {
	if i != j && o.s.Get(i) > o.s.Get(j) {
		o.s.Swap(i, j)
	}
}

func (o orderedSorter[T]) partition(lo, hi int) int {
	mid := lo + (hi-lo)>>1
	o.swapIfGreater(lo, mid)
	o.swapIfGreater(lo, hi)
	o.swapIfGreater(mid, hi)

	pivot := o.s.Get(mid)
	o.s.Swap(mid, hi-1)

	left, right := lo, hi-1
	for left < right {
		for left < hi-1 {
			left++
			if !(o.s.Get(left) < pivot) {
				break
			}
		}
		for right > lo {
			right--
			if !(pivot < o.s.Get(right)) {
				break
			}
		}
		if left >= right {
			break
		}
		o.s.Swap(left, right)
	}

	if left != hi-1 {
		o.s.Swap(left, hi-1)
	}
	return left
}

func (o orderedSorter[T]) insertionSort(lo, hi int) {
	for i := lo; i < hi; i++ {
		t := o.s.Get(i + 1)
		j := i
		for j >= lo && t < o.s.Get(j) {
			o.s.Set(j+1, o.s.Get(j))
			j--
		}
		o.s.Set(j+1, t)
	}
}

func (o orderedSorter[T]) heapSort(lo, hi int) {
	n := hi - lo + 1
	for i := n >> 1; i >= 1; i-- {
		o.downHeap(lo, i, n)
	}
	for i := n; i > 1; i-- {
		o.s.Swap(lo, lo+i-1)
		o.downHeap(lo, 1, i-1)
	}
}

func (o orderedSorter[T]) downHeap(lo, i, n int) {
	d := o.s.Get(lo + i - 1)
	for i <= n>>1 {
		child := 2 * i
		if child < n && o.s.Get(lo+child-1) < o.s.Get(lo+child) {
			child++
		}
		if !(d < o.s.Get(lo+child-1)) {
			break
		}
		o.s.Set(lo+i-1, o.s.Get(lo+child-1))
		i = child
	}
	o.s.Set(lo+i-1, d)
}
