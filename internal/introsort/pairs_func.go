package introsort

import "github.com/hupe1980/segmented/internal/segstore"

// SortPairsFunc sorts keys[lo:lo+n] by compare and applies every move to
// values as well. The value for keys[i] lives at values[i+voff].
func SortPairsFunc[K, V any](keys *segstore.Store[K], values *segstore.Store[V], lo, n, voff int, compare func(a, b K) int) (err error) {
	if n < 2 {
		return nil
	}
	defer recoverComparer(&err)

	ps := pairFuncSorter[K, V]{keys: keys, values: values, voff: voff, cmp: compare}
	ps.introSort(lo, lo+n-1, depthLimit(n))
	return nil
}

type pairFuncSorter[K, V any] struct {
	keys   *segstore.Store[K]
	values *segstore.Store[V]
	voff   int
	cmp    func(a, b K) int
}

func (ps pairFuncSorter[K, V]) swap(i, j int) {
	ps.keys.Swap(i, j)
	ps.values.Swap(i+ps.voff, j+ps.voff)
}

func (ps pairFuncSorter[K, V]) move(dst, src int) {
	ps.keys.Set(dst, ps.keys.Get(src))
	ps.values.Set(dst+ps.voff, ps.values.Get(src+ps.voff))
}

func (ps pairFuncSorter[K, V]) introSort(lo, hi, depth int) {
	for hi > lo {
		size := hi - lo + 1
		if size <= insertionThreshold {
			switch size {
			case 2:
				ps.swapIfGreater(lo, hi)
			case 3:
				ps.swapIfGreater(lo, hi-1)
				ps.swapIfGreater(lo, hi)
				ps.swapIfGreater(hi-1, hi)
			default:
				ps.insertionSort(lo, hi)
			}
			return
		}

		if depth == 0 {
			ps.heapSort(lo, hi)
			return
		}
		depth--

		p := ps.partition(lo, hi)
		if p-lo < hi-p {
			ps.introSort(lo, p-1, depth)
			lo = p + 1
		} else {
			ps.introSort(p+1, hi, depth)
			hi = p - 1
		}
	}
}

func (ps pairFuncSorter[K, V]) swapIfGreater(i, j int) {
	if i != j && ps.cmp(ps.keys.Get(i), ps.keys.Get(j)) > 0 {
		ps.swap(i, j)
	}
}

func (ps pairFuncSorter[K, V]) partition(lo, hi int) int {
	mid := lo + (hi-lo)>>1
	ps.swapIfGreater(lo, mid)
	ps.swapIfGreater(lo, hi)
	ps.swapIfGreater(mid, hi)

	pivot := ps.keys.Get(mid)
	ps.swap(mid, hi-1)

	left, right := lo, hi-1
	for left < right {
		for {
			left++
			if left >= hi {
				panic(outOfPartition{})
			}
			if ps.cmp(ps.keys.Get(left), pivot) >= 0 {
				break
			}
		}
		for {
			right--
			if right < lo {
				panic(outOfPartition{})
			}
			if ps.cmp(pivot, ps.keys.Get(right)) >= 0 {
				break
			}
		}
		if left >= right {
			break
		}
		ps.swap(left, right)
	}

	if left != hi-1 {
		ps.swap(left, hi-1)
	}
	return left
}

func (ps pairFuncSorter[K, V]) insertionSort(lo, hi int) {
	for i := lo; i < hi; i++ {
		t := ps.keys.Get(i + 1)
		tv := ps.values.Get(i + 1 + ps.voff)
		j := i
		for j >= lo && ps.cmp(t, ps.keys.Get(j)) < 0 {
			ps.move(j+1, j)
			j--
		}
		ps.keys.Set(j+1, t)
		ps.values.Set(j+1+ps.voff, tv)
	}
}

func (ps pairFuncSorter[K, V]) heapSort(lo, hi int) {
	n := hi - lo + 1
	for i := n >> 1; i >= 1; i-- {
		ps.downHeap(lo, i, n)
	}
	for i := n; i > 1; i-- {
		ps.swap(lo, lo+i-1)
		ps.downHeap(lo, 1, i-1)
	}
}

func (ps pairFuncSorter[K, V]) downHeap(lo, i, n int) {
	d := ps.keys.Get(lo + i - 1)
	dv := ps.values.Get(lo + i - 1 + ps.voff)
	for i <= n>>1 {
		child := 2 * i
		if child < n && ps.cmp(ps.keys.Get(lo+child-1), ps.keys.Get(lo+child)) < 0 {
			child++
		}
		if ps.cmp(d, ps.keys.Get(lo+child-1)) >= 0 {
			break
		}
		ps.move(lo+i-1, lo+child-1)
		i = child
	}
	ps.keys.Set(lo+i-1, d)
	ps.values.Set(lo+i-1+ps.voff, dv)
}
