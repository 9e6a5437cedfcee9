package segmented

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting list metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Implementations must be safe for concurrent use when shared between lists
// owned by different goroutines.
type MetricsCollector interface {
	// RecordGrow is called after the capacity of a list increases.
	// reused and allocated count the segments carried over and created.
	RecordGrow(oldCap, newCap, reused, allocated int)

	// RecordTrim is called after the capacity of a list decreases.
	RecordTrim(oldCap, newCap int)

	// RecordSort is called after each sort of n elements.
	// err is nil if successful.
	RecordSort(n int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordGrow(int, int, int, int)       {}
func (NoopMetricsCollector) RecordTrim(int, int)                 {}
func (NoopMetricsCollector) RecordSort(int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	GrowCount         atomic.Int64
	SegmentsReused    atomic.Int64
	SegmentsAllocated atomic.Int64
	TrimCount         atomic.Int64
	MaxCapacity       atomic.Int64
	SortCount         atomic.Int64
	SortErrors        atomic.Int64
	SortedElements    atomic.Int64
	SortTotalNanos    atomic.Int64
}

// RecordGrow implements MetricsCollector.
func (b *BasicMetricsCollector) RecordGrow(oldCap, newCap, reused, allocated int) {
	b.GrowCount.Add(1)
	b.SegmentsReused.Add(int64(reused))
	b.SegmentsAllocated.Add(int64(allocated))
	for {
		cur := b.MaxCapacity.Load()
		if int64(newCap) <= cur || b.MaxCapacity.CompareAndSwap(cur, int64(newCap)) {
			return
		}
	}
}

// RecordTrim implements MetricsCollector.
func (b *BasicMetricsCollector) RecordTrim(oldCap, newCap int) {
	b.TrimCount.Add(1)
}

// RecordSort implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSort(n int, duration time.Duration, err error) {
	b.SortCount.Add(1)
	b.SortedElements.Add(int64(n))
	b.SortTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SortErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		GrowCount:         b.GrowCount.Load(),
		SegmentsReused:    b.SegmentsReused.Load(),
		SegmentsAllocated: b.SegmentsAllocated.Load(),
		TrimCount:         b.TrimCount.Load(),
		MaxCapacity:       b.MaxCapacity.Load(),
		SortCount:         b.SortCount.Load(),
		SortErrors:        b.SortErrors.Load(),
		SortedElements:    b.SortedElements.Load(),
		SortAvgNanos:      b.getAvgSortNanos(),
	}
}

func (b *BasicMetricsCollector) getAvgSortNanos() int64 {
	count := b.SortCount.Load()
	if count == 0 {
		return 0
	}
	return b.SortTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	GrowCount         int64
	SegmentsReused    int64
	SegmentsAllocated int64
	TrimCount         int64
	MaxCapacity       int64
	SortCount         int64
	SortErrors        int64
	SortedElements    int64
	SortAvgNanos      int64
}
