package segmented

import (
	"fmt"
	"reflect"
	"strings"
)

// previewLimit caps the number of elements rendered by String.
const previewLimit = 16

// DebugView returns the contents as a flat slice for inspection in tests
// and debuggers. It copies every element.
func (a Array[T]) DebugView() []T {
	out := make([]T, a.s.Len())
	a.s.CopyToSlice(0, out)
	return out
}

// String renders the length, segment geometry and a short preview.
func (a Array[T]) String() string {
	return fmt.Sprintf("Array[%v](len=%d, segments=%d×%d)%s",
		reflect.TypeFor[T](), a.s.Len(), a.s.SegmentCount(), a.s.Params().Size, preview(a, a.s.Len()))
}

// DebugView returns the elements as a flat slice.
func (l *List[T]) DebugView() []T {
	return l.ToSlice()
}

// String renders the length, capacity and a short preview.
func (l *List[T]) String() string {
	return fmt.Sprintf("List[%v](len=%d, cap=%d)%s", reflect.TypeFor[T](), l.count, l.items.Len(), preview(l.items, l.count))
}

func preview[T any](a Array[T], n int) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i := range min(n, previewLimit) {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprint(&sb, a.s.Get(i))
	}
	if n > previewLimit {
		fmt.Fprintf(&sb, " ...+%d", n-previewLimit)
	}
	sb.WriteByte(']')
	return sb.String()
}
