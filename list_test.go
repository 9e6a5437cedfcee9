package segmented

import (
	"bytes"
	"errors"
	"log/slog"
	"slices"
	"strconv"
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/segmented/testutil"
)

func seqList(n int, opts ...Option) *List[int64] {
	l := NewList[int64](opts...)
	for i := range n {
		l.Add(int64(i))
	}
	return l
}

func TestList_WorkedExample(t *testing.T) {
	l := NewListFromSlice([]int{5, 3, 1, 4, 1, 5, 9, 2, 6})

	require.NoError(t, l.Sort(nil))
	assert.Equal(t, []int{1, 1, 2, 3, 4, 5, 5, 6, 9}, l.ToSlice())

	i, err := l.BinarySearch(5, nil)
	require.NoError(t, err)
	v, _ := l.Get(i)
	assert.Equal(t, 5, v)

	i, err = l.BinarySearch(7, nil)
	require.NoError(t, err)
	assert.Negative(t, i)
	assert.Equal(t, 8, ^i)
}

func TestList_Construction(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		l := NewList[string]()
		assert.Equal(t, 0, l.Len())
		assert.Equal(t, 0, l.Cap())
	})

	t.Run("zero value", func(t *testing.T) {
		var l List[int]
		l.Add(1)
		l.Add(2)
		assert.Equal(t, []int{1, 2}, l.ToSlice())
		assert.Equal(t, defaultCapacity, l.Cap())
	})

	t.Run("with capacity", func(t *testing.T) {
		l, err := NewListWithCapacity[int64](10000)
		require.NoError(t, err)
		assert.Equal(t, 0, l.Len())
		assert.Equal(t, 10000, l.Cap())

		_, err = NewListWithCapacity[int64](-1)
		assert.ErrorIs(t, err, ErrOutOfRange)
	})

	t.Run("from seq", func(t *testing.T) {
		l := NewListFromSeq(slices.Values([]string{"a", "b", "c"}))
		assert.Equal(t, []string{"a", "b", "c"}, l.ToSlice())
	})
}

func TestList_GrowthPolicy(t *testing.T) {
	l := NewList[int64]()
	const seg = 8192

	var caps []int
	for i := range 20*seg + 1 {
		l.Add(int64(i))
		if len(caps) == 0 || caps[len(caps)-1] != l.Cap() {
			caps = append(caps, l.Cap())
		}
	}

	want := []int{4, 8, 16, 32, 64, 128, 256, 512, 1024, 2048, 4096, seg}
	for segs := 2; segs <= 16; segs++ {
		want = append(want, segs*seg)
	}
	want = append(want, 18*seg, 20*seg, 22*seg)
	assert.Equal(t, want, caps)

	for i := range l.Len() {
		v, err := l.Get(i)
		require.NoError(t, err)
		require.Equal(t, int64(i), v)
	}
}

func TestList_EnsureCapacity(t *testing.T) {
	tests := []struct {
		name    string
		initial int
		request int
		wantCap int
	}{
		{"small", 0, 5, 5},
		{"default", 0, 3, 4},
		{"doubling", 100, 150, 200},
		{"one segment", 5000, 5001, 8192},
		{"rounded to segment", 0, 10000, 16384},
		{"segment growth", 8 * 8192, 8*8192 + 1, 9 * 8192},
		{"no-op", 100, 50, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := NewListWithCapacity[int64](tt.initial)
			require.NoError(t, err)

			got, err := l.EnsureCapacity(tt.request)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCap, got)
			assert.Equal(t, tt.wantCap, l.Cap())
		})
	}

	l := NewList[int64]()
	_, err := l.EnsureCapacity(-1)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = l.EnsureCapacity(MaxLength + 1)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestList_GrowReusesSegments(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	l := seqList(4*8192, WithMetricsCollector(metrics))

	before := metrics.GetStats()
	l.Add(-1)
	after := metrics.GetStats()

	assert.Equal(t, before.GrowCount+1, after.GrowCount)
	assert.Equal(t, before.SegmentsReused+4, after.SegmentsReused)
	assert.Equal(t, before.SegmentsAllocated+1, after.SegmentsAllocated)
	assert.Equal(t, int64(5*8192), after.MaxCapacity)
}

func TestList_SetCapAndTrimExcess(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	l := seqList(10000, WithMetricsCollector(metrics))
	require.Equal(t, 16384, l.Cap())

	l.TrimExcess()
	assert.Equal(t, 10000, l.Cap())
	assert.Equal(t, int64(1), metrics.GetStats().TrimCount)

	// Already above the 90% threshold.
	require.NoError(t, l.RemoveRange(9500, 500))
	l.TrimExcess()
	assert.Equal(t, 10000, l.Cap())

	require.NoError(t, l.SetCap(9500))
	assert.Equal(t, 9500, l.Cap())
	assert.ErrorIs(t, l.SetCap(9499), ErrOutOfRange)

	v, err := l.Get(9499)
	require.NoError(t, err)
	assert.Equal(t, int64(9499), v)

	l.Clear()
	l.TrimExcess()
	assert.Equal(t, 0, l.Cap())
}

func TestList_GetSet(t *testing.T) {
	l := seqList(10)

	require.NoError(t, l.Set(3, 30))
	v, err := l.Get(3)
	require.NoError(t, err)
	assert.Equal(t, int64(30), v)

	_, err = l.Get(10)
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.ErrorIs(t, l.Set(-1, 0), ErrOutOfRange)

	// Capacity beyond Len is not addressable.
	require.Greater(t, l.Cap(), l.Len())
	_, err = l.Get(l.Len())
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestList_InsertRemoveAcrossSegments(t *testing.T) {
	const seg = 8192
	l := seqList(seg + 10)
	want := l.ToSlice()

	require.NoError(t, l.Insert(seg-1, -1))
	assert.Equal(t, seg+11, l.Len())
	v, _ := l.Get(seg - 1)
	assert.Equal(t, int64(-1), v)
	v, _ = l.Get(seg)
	assert.Equal(t, int64(seg-1), v)

	require.NoError(t, l.RemoveAt(seg-1))
	assert.Equal(t, want, l.ToSlice())

	require.NoError(t, l.Insert(l.Len(), 42))
	v, _ = l.Get(l.Len() - 1)
	assert.Equal(t, int64(42), v)

	assert.ErrorIs(t, l.Insert(l.Len()+1, 0), ErrOutOfRange)
	assert.ErrorIs(t, l.RemoveAt(l.Len()), ErrOutOfRange)
}

func TestList_InsertRange(t *testing.T) {
	l := NewListFromSlice([]int{1, 2, 6})
	require.NoError(t, l.InsertRange(2, []int{3, 4, 5}))
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, l.ToSlice())

	require.NoError(t, l.InsertRange(0, []int{0}))
	require.NoError(t, l.InsertRange(l.Len(), []int{7}))
	require.NoError(t, l.InsertRange(3, nil))
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, l.ToSlice())

	assert.ErrorIs(t, l.InsertRange(-1, []int{1}), ErrOutOfRange)

	big := testutil.Ascending(3 * 8192)
	l.AddRange(big[:10])
	require.NoError(t, l.InsertRange(4, big))
	assert.Equal(t, 8+10+len(big), l.Len())
	v, _ := l.Get(4 + len(big))
	assert.Equal(t, 4, v)
}

func TestList_RemoveRange(t *testing.T) {
	l := seqList(3 * 8192)
	require.NoError(t, l.RemoveRange(100, 2*8192))
	assert.Equal(t, 8192, l.Len())

	v, _ := l.Get(99)
	assert.Equal(t, int64(99), v)
	v, _ = l.Get(100)
	assert.Equal(t, int64(100+2*8192), v)

	assert.ErrorIs(t, l.RemoveRange(8000, 500), ErrOutOfRange)
	assert.ErrorIs(t, l.RemoveRange(0, -1), ErrOutOfRange)
	require.NoError(t, l.RemoveRange(0, 0))
}

func TestList_Remove(t *testing.T) {
	l := NewListFromSlice([]string{"a", "b", "a"})

	ok, err := l.Remove("a", nil)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"b", "a"}, l.ToSlice())

	ok, err = l.Remove("z", nil)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestList_RemoveAll(t *testing.T) {
	l := seqList(2*8192 + 3)
	version := l.version

	removed := l.RemoveAll(func(v int64) bool { return v%2 == 0 })
	assert.Equal(t, 8192+2, removed)
	assert.Equal(t, 8192+1, l.Len())
	assert.NotEqual(t, version, l.version)

	i := 0
	for v := range l.Values() {
		require.Equal(t, int64(2*i+1), v)
		i++
	}

	// Nothing matches: unchanged.
	version = l.version
	assert.Zero(t, l.RemoveAll(func(int64) bool { return false }))
	assert.Equal(t, version, l.version)

	assert.Equal(t, l.Len(), l.RemoveAll(func(int64) bool { return true }))
	assert.Zero(t, l.Len())
}

func TestList_NilPredicate(t *testing.T) {
	tests := []struct {
		name string
		call func(l *List[int])
	}{
		{"RemoveAll", func(l *List[int]) { l.RemoveAll(nil) }},
		{"Exists", func(l *List[int]) { l.Exists(nil) }},
		{"Find", func(l *List[int]) { l.Find(nil) }},
		{"FindIndex", func(l *List[int]) { l.FindIndex(nil) }},
		{"FindLastIndex", func(l *List[int]) { l.FindLastIndex(nil) }},
		{"FindAll", func(l *List[int]) { l.FindAll(nil) }},
		{"TrueForAll", func(l *List[int]) { l.TrueForAll(nil) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewListFromSlice([]int{1, 2, 3})

			var recovered any
			func() {
				defer func() { recovered = recover() }()
				tt.call(l)
			}()

			err, ok := recovered.(error)
			require.True(t, ok, "want an error panic, got %v", recovered)
			assert.ErrorIs(t, err, ErrInvalidArgument)
			assert.Equal(t, []int{1, 2, 3}, l.ToSlice())
		})
	}

	l := NewListFromSlice([]int{1, 2, 3})
	_, err := l.IndexSet(nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.ErrorIs(t, l.ForEach(nil), ErrInvalidArgument)
}

func TestList_Search(t *testing.T) {
	l := NewListFromSlice([]int{4, 8, 15, 16, 23, 42, 8})
	_, err := l.EnsureCapacity(16)
	require.NoError(t, err)

	i, err := l.IndexOf(8, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, i)

	i, err = l.LastIndexOf(8, nil)
	require.NoError(t, err)
	assert.Equal(t, 6, i)

	i, err = l.IndexOfRange(8, 2, 4, nil)
	require.NoError(t, err)
	assert.Equal(t, -1, i)

	i, err = l.LastIndexOfRange(8, 0, 6, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, i)

	_, err = l.IndexOfRange(8, 5, 3, nil)
	assert.ErrorIs(t, err, ErrOutOfRange)

	ok, err := l.Contains(23, nil)
	require.NoError(t, err)
	assert.True(t, ok)

	// Unused capacity is never matched.
	require.Greater(t, l.Cap(), l.Len())
	i, err = l.IndexOf(0, nil)
	require.NoError(t, err)
	assert.Equal(t, -1, i)
}

func TestList_Find(t *testing.T) {
	l := NewListFromSlice([]int{1, 3, 4, 7, 10, 11})
	even := func(v int) bool { return v%2 == 0 }

	assert.True(t, l.Exists(even))
	assert.False(t, l.Exists(func(v int) bool { return v > 100 }))

	v, ok := l.Find(even)
	assert.True(t, ok)
	assert.Equal(t, 4, v)

	_, ok = l.Find(func(v int) bool { return v < 0 })
	assert.False(t, ok)

	assert.Equal(t, 2, l.FindIndex(even))
	assert.Equal(t, 4, l.FindLastIndex(even))
	assert.Equal(t, -1, l.FindLastIndex(func(v int) bool { return v == 2 }))

	assert.Equal(t, []int{4, 10}, l.FindAll(even).ToSlice())
	assert.True(t, l.TrueForAll(func(v int) bool { return v > 0 }))
	assert.False(t, l.TrueForAll(even))
	assert.True(t, NewList[int]().TrueForAll(even))
}

func TestList_SortVariants(t *testing.T) {
	rng := testutil.NewRNG(11)
	xs := rng.Ints(3*8192+17, 1000)

	l := NewListFromSlice(xs)
	require.NoError(t, l.Sort(nil))
	assert.True(t, slices.IsSorted(l.ToSlice()))

	require.NoError(t, l.SortFunc(func(a, b int) int { return b - a }))
	assert.True(t, slices.IsSortedFunc(l.ToSlice(), func(a, b int) int { return b - a }))

	r := NewListFromSlice([]int{5, 4, 3, 2, 1})
	require.NoError(t, r.SortRange(1, 3, nil))
	assert.Equal(t, []int{5, 2, 3, 4, 1}, r.ToSlice())
	assert.ErrorIs(t, r.SortRange(3, 3, nil), ErrOutOfRange)
	assert.ErrorIs(t, r.SortFunc(nil), ErrInvalidArgument)

	i, err := r.BinarySearchRange(1, 3, 4, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, i)
	_, err = r.BinarySearchRange(4, 2, 1, nil)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestList_Reverse(t *testing.T) {
	l := NewListFromSlice([]int{1, 2, 3, 4, 5})
	l.Reverse()
	assert.Equal(t, []int{5, 4, 3, 2, 1}, l.ToSlice())

	require.NoError(t, l.ReverseRange(1, 3))
	assert.Equal(t, []int{5, 2, 3, 4, 1}, l.ToSlice())
	assert.ErrorIs(t, l.ReverseRange(4, 2), ErrOutOfRange)
}

func TestList_GetRangeAndConvert(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	l := seqList(8192+50, WithMetricsCollector(metrics))

	r, err := l.GetRange(8190, 20)
	require.NoError(t, err)
	assert.Equal(t, 20, r.Len())
	v, _ := r.Get(0)
	assert.Equal(t, int64(8190), v)

	// The copy is independent.
	require.NoError(t, r.Set(0, -1))
	v, _ = l.Get(8190)
	assert.Equal(t, int64(8190), v)

	s, err := l.Slice(0, 0)
	require.NoError(t, err)
	assert.Zero(t, s.Len())

	_, err = l.GetRange(8200, 100)
	assert.ErrorIs(t, err, ErrOutOfRange)

	strs, err := ConvertAll(r, func(v int64) string { return strconv.FormatInt(v, 10) })
	require.NoError(t, err)
	assert.Equal(t, "-1", strs.ToSlice()[0])
	assert.Equal(t, "8191", strs.ToSlice()[1])

	_, err = ConvertAll[int64, string](r, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	// Derived lists report to the same collector.
	grows := metrics.GetStats().GrowCount
	for range 100 {
		r.Add(0)
	}
	assert.Greater(t, metrics.GetStats().GrowCount, grows)
}

func TestList_CopyAndToArray(t *testing.T) {
	l := seqList(10)

	a := l.ToArray()
	assert.Equal(t, 10, a.Len())
	assert.Equal(t, l.ToSlice(), a.DebugView())

	dst := make([]int64, 12)
	require.NoError(t, l.CopyTo(dst, 2))
	assert.Equal(t, l.ToSlice(), dst[2:])
	assert.ErrorIs(t, l.CopyTo(dst, 3), ErrInvalidArgument)
	assert.ErrorIs(t, l.CopyTo(dst, -1), ErrOutOfRange)

	part := make([]int64, 3)
	require.NoError(t, l.CopyRangeTo(7, part, 0, 3))
	assert.Equal(t, []int64{7, 8, 9}, part)
	assert.ErrorIs(t, l.CopyRangeTo(8, part, 0, 3), ErrOutOfRange)
}

func TestList_Enumerator(t *testing.T) {
	l := seqList(5)

	e := l.Enumerator()
	var got []int64
	for e.Next() {
		got = append(got, e.Current())
	}
	require.NoError(t, e.Err())
	assert.Equal(t, l.ToSlice(), got)
	assert.False(t, e.Next())

	require.NoError(t, e.Reset())
	require.True(t, e.Next())
	assert.Equal(t, int64(0), e.Current())

	l.Add(5)
	assert.False(t, e.Next())
	assert.ErrorIs(t, e.Err(), ErrInvalidOperation)
	assert.ErrorIs(t, e.Reset(), ErrInvalidOperation)
}

func TestList_IteratorDetectsModification(t *testing.T) {
	l := seqList(5)

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.ErrorIs(t, err, ErrInvalidOperation)
	}()

	for i, v := range l.All() {
		if i == 2 {
			require.NoError(t, l.Set(0, v))
		}
	}
	t.Fatal("modification not detected")
}

func TestList_ForEach(t *testing.T) {
	l := seqList(4)

	var sum int64
	require.NoError(t, l.ForEach(func(v int64) { sum += v }))
	assert.Equal(t, int64(6), sum)

	err := l.ForEach(func(v int64) { l.Add(v) })
	assert.ErrorIs(t, err, ErrInvalidOperation)
	assert.Equal(t, 5, l.Len())

	assert.ErrorIs(t, l.ForEach(nil), ErrInvalidArgument)
}

func TestList_IndexSetAndRemoveIndices(t *testing.T) {
	l := seqList(2*8192 + 1)

	threes, err := l.IndexSet(func(v int64) bool { return v%3 == 0 })
	require.NoError(t, err)
	assert.Equal(t, uint64((2*8192)/3+1), threes.GetCardinality())

	fives, err := l.IndexSet(func(v int64) bool { return v%5 == 0 })
	require.NoError(t, err)

	union := roaring.Or(threes, fives)
	removed, err := l.RemoveIndices(union)
	require.NoError(t, err)
	assert.Equal(t, int(union.GetCardinality()), removed)

	prev := int64(-1)
	for v := range l.Values() {
		require.NotZero(t, v%3)
		require.NotZero(t, v%5)
		require.Greater(t, v, prev)
		prev = v
	}

	n, err := l.RemoveIndices(roaring.New())
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = l.RemoveIndices(roaring.BitmapOf(uint32(l.Len())))
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestList_RemoveIndicesEdges(t *testing.T) {
	l := NewListFromSlice([]string{"a", "b", "c", "d", "e"})

	removed, err := l.RemoveIndices(roaring.BitmapOf(0, 4))
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.Equal(t, []string{"b", "c", "d"}, l.ToSlice())

	removed, err = l.RemoveIndices(roaring.BitmapOf(0, 1, 2))
	require.NoError(t, err)
	assert.Equal(t, 3, removed)
	assert.Zero(t, l.Len())
}

func TestList_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	l := NewList[int](WithLogger(logger))
	l.AddRange([]int{3, 1, 2})
	require.NoError(t, l.Sort(nil))
	l.Clear()
	l.TrimExcess()

	out := buf.String()
	assert.Contains(t, out, "list capacity grown")
	assert.Contains(t, out, "new_capacity=4")
	assert.Contains(t, out, "sort completed")
	assert.Contains(t, out, "count=3")
	assert.Contains(t, out, "list capacity trimmed")
}

func TestList_SortMetricsOnFailure(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	l := NewListFromSlice([]int{2, 1}, WithMetricsCollector(metrics), WithLogger(nil))

	err := l.SortFunc(func(a, b int) int { panic(errors.New("cmp")) })
	assert.ErrorIs(t, err, ErrComparerFailed)

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats.SortCount)
	assert.Equal(t, int64(1), stats.SortErrors)
	assert.Equal(t, int64(2), stats.SortedElements)
}

func TestList_String(t *testing.T) {
	l := NewListFromSlice([]int{1, 2, 3})
	assert.Equal(t, "List[int](len=3, cap=3)[1 2 3]", l.String())
	assert.Equal(t, []int{1, 2, 3}, l.DebugView())
}

func BenchmarkList_Add(b *testing.B) {
	b.ReportAllocs()
	for b.Loop() {
		l := NewList[int64]()
		for i := range 1 << 18 {
			l.Add(int64(i))
		}
	}
}
