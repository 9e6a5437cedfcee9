package segcodec

import "runtime"

type options struct {
	compression Compression
	concurrency int
}

// Option configures Encode.
type Option func(*options)

// WithCompression selects the block compression. The default is LZ4.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithConcurrency bounds the number of segments compressed in parallel.
// Values below 1 select GOMAXPROCS.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		compression: CompressionLZ4,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.concurrency < 1 {
		o.concurrency = runtime.GOMAXPROCS(0)
	}
	if !o.compression.valid() {
		o.compression = CompressionNone
	}
	return o
}
