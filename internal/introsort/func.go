package introsort

import (
	"math/bits"

	"github.com/hupe1980/segmented/internal/segstore"
)

// insertionThreshold is the largest partition finished without quicksort.
const insertionThreshold = 16

func depthLimit(n int) int {
	return 2 * bits.Len(uint(n))
}

// SortFunc sorts s[lo:lo+n] in ascending order of compare.
//
// A panic raised by compare is returned as a *ComparerError; a compare that
// drives a partition scan out of bounds yields ErrBadComparer. The range is
// left in an unspecified permutation in both cases.
func SortFunc[T any](s *segstore.Store[T], lo, n int, compare func(a, b T) int) (err error) {
	if n < 2 {
		return nil
	}
	defer recoverComparer(&err)

	fs := funcSorter[T]{s: s, cmp: compare}
	fs.introSort(lo, lo+n-1, depthLimit(n))
	return nil
}

type funcSorter[T any] struct {
	s   *segstore.Store[T]
	cmp func(a, b T) int
}

// introSort sorts s[lo..hi] (inclusive).
func (fs funcSorter[T]) introSort(lo, hi, depth int) {
	for hi > lo {
		size := hi - lo + 1
		if size <= insertionThreshold {
			switch size {
			case 2:
				fs.swapIfGreater(lo, hi)
			case 3:
				fs.swapIfGreater(lo, hi-1)
				fs.swapIfGreater(lo, hi)
				fs.swapIfGreater(hi-1, hi)
			default:
				fs.insertionSort(lo, hi)
			}
			return
		}

		if depth == 0 {
			fs.heapSort(lo, hi)
			return
		}
		depth--

		p := fs.partition(lo, hi)

		// Recurse into the smaller side and keep looping on the larger one.
		if p-lo < hi-p {
			fs.introSort(lo, p-1, depth)
			lo = p + 1
		} else {
			fs.introSort(p+1, hi, depth)
			hi = p - 1
		}
	}
}

func (fs funcSorter[T]) swapIfGreater(i, j int) {
	if i != j && fs.cmp(fs.s.Get(i), fs.s.Get(j)) > 0 {
		fs.s.Swap(i, j)
	}
}

// partition orders lo, mid and hi, parks the pivot at hi-1 and splits the
// rest around it. It returns the final pivot position.
func (fs funcSorter[T]) partition(lo, hi int) int {
	mid := lo + (hi-lo)>>1
	fs.swapIfGreater(lo, mid)
	fs.swapIfGreater(lo, hi)
	fs.swapIfGreater(mid, hi)

	pivot := fs.s.Get(mid)
	fs.s.Swap(mid, hi-1)

	left, right := lo, hi-1
	for left < right {
		// s[hi-1] and s[lo] stop both scans for a consistent comparer.
		for {
			left++
			if left >= hi {
				panic(outOfPartition{})
			}
			if fs.cmp(fs.s.Get(left), pivot) >= 0 {
				break
			}
		}
		for {
			right--
			if right < lo {
				panic(outOfPartition{})
			}
			if fs.cmp(pivot, fs.s.Get(right)) >= 0 {
				break
			}
		}
		if left >= right {
			break
		}
		fs.s.Swap(left, right)
	}

	if left != hi-1 {
		fs.s.Swap(left, hi-1)
	}
	return left
}

func (fs funcSorter[T]) insertionSort(lo, hi int) {
	for i := lo; i < hi; i++ {
		t := fs.s.Get(i + 1)
		j := i
		for j >= lo && fs.cmp(t, fs.s.Get(j)) < 0 {
			fs.s.Set(j+1, fs.s.Get(j))
			j--
		}
		fs.s.Set(j+1, t)
	}
}

func (fs funcSorter[T]) heapSort(lo, hi int) {
	n := hi - lo + 1
	for i := n >> 1; i >= 1; i-- {
		fs.downHeap(lo, i, n)
	}
	for i := n; i > 1; i-- {
		fs.s.Swap(lo, lo+i-1)
		fs.downHeap(lo, 1, i-1)
	}
}

// downHeap sifts the 1-based heap node i down within a heap of n nodes
// rooted at lo.
func (fs funcSorter[T]) downHeap(lo, i, n int) {
	d := fs.s.Get(lo + i - 1)
	for i <= n>>1 {
		child := 2 * i
		if child < n && fs.cmp(fs.s.Get(lo+child-1), fs.s.Get(lo+child)) < 0 {
			child++
		}
		if fs.cmp(d, fs.s.Get(lo+child-1)) >= 0 {
			break
		}
		fs.s.Set(lo+i-1, fs.s.Get(lo+child-1))
		i = child
	}
	fs.s.Set(lo+i-1, d)
}
