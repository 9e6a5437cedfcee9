package segmented

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/segmented/internal/conv"
)

// IndexSet returns the indexes of every element matching match as a
// compressed bitmap. The result can be combined with other index sets and
// passed to RemoveIndices.
func (l *List[T]) IndexSet(match func(T) bool) (*roaring.Bitmap, error) {
	if match == nil {
		return nil, fmt.Errorf("%w: nil predicate", ErrInvalidArgument)
	}
	rb := roaring.New()
	i := 0
	for c := range l.items.s.Chunks(0, l.count) {
		for _, v := range c {
			if match(v) {
				idx, err := conv.IntToUint32(i)
				if err != nil {
					return nil, err
				}
				rb.Add(idx)
			}
			i++
		}
	}
	return rb, nil
}

// RemoveIndices removes the elements at every index in indexes with one
// forward compaction pass and returns the number removed. The relative
// order of the survivors is kept. Every index must be below Len.
func (l *List[T]) RemoveIndices(indexes *roaring.Bitmap) (int, error) {
	if indexes == nil || indexes.IsEmpty() {
		return 0, nil
	}
	last, err := conv.Uint32ToInt(indexes.Maximum())
	if err != nil {
		return 0, err
	}
	if last >= l.count {
		return 0, errOutOfRange("index", last, l.count)
	}

	s := &l.items.s
	it := indexes.Iterator()
	next := int(it.Next())
	free := next
	for current := next; current < l.count; current++ {
		if current == next {
			next = -1
			if it.HasNext() {
				next = int(it.Next())
			}
			continue
		}
		s.Set(free, s.Get(current))
		free++
	}

	removed := l.count - free
	s.Clear(free, removed)
	l.count = free
	l.version++
	return removed, nil
}
