package segmented

import (
	"log/slog"
)

type options struct {
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures List construction.
//
// Lists derived from another list (GetRange, FindAll, ConvertAll) inherit
// the options of their source.
type Option func(*options)

// WithMetricsCollector configures a metrics collector for capacity changes
// and sorts. Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &segmented.BasicMetricsCollector{}
//	l := segmented.NewList[int](segmented.WithMetricsCollector(metrics))
//	// ... use l ...
//	stats := metrics.GetStats()
//	fmt.Printf("Grows: %d, segments reused: %d\n", stats.GrowCount, stats.SegmentsReused)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for capacity changes and sorts.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := segmented.NewJSONLogger(slog.LevelDebug)
//	l := segmented.NewList[string](segmented.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
