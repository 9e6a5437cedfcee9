// Package main provides seginspect, a tool that prints segment sizing
// parameters and list growth traces.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	flag "github.com/spf13/pflag"

	"github.com/hupe1980/segmented"
	"github.com/hupe1980/segmented/internal/sizing"
	"github.com/hupe1980/segmented/segcodec"
)

type config struct {
	typ         string
	count       int
	sizes       []uint
	compression string
	verbose     bool
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var cfg config

	fs := flag.NewFlagSet("seginspect", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&cfg.typ, "type", "t", "int64", "element type: int8, int16, int32, int64, float32, float64 or string")
	fs.IntVarP(&cfg.count, "count", "n", 100_000, "number of elements to append in the growth trace")
	fs.UintSliceVar(&cfg.sizes, "sizes", nil, "print sizing parameters for these element sizes in bytes and exit")
	fs.StringVarP(&cfg.compression, "compression", "c", "", "encode the grown list with none, lz4 or zstd and report its size")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "log every capacity change")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if len(cfg.sizes) > 0 {
		printSizes(stdout, cfg.sizes)
		return 0
	}

	if err := trace(ctx, stdout, stderr, cfg); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	return 0
}

func printSizes(w io.Writer, sizes []uint) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "elem bytes\tsegment size\tshift\tmask\tsegment bytes\t")
	for _, s := range sizes {
		p := sizing.ForSize(uintptr(s))
		fmt.Fprintf(tw, "%d\t%d\t%d\t%#x\t%d\t\n", s, p.Size, p.Shift, p.Mask, uint(p.Size)*max(s, 1))
	}
	tw.Flush()
}

func trace(ctx context.Context, stdout, stderr io.Writer, cfg config) error {
	if cfg.count < 0 {
		return fmt.Errorf("count must not be negative: %d", cfg.count)
	}

	switch strings.ToLower(cfg.typ) {
	case "int8":
		return traceNumbers(ctx, stdout, stderr, cfg, func(i int) int8 { return int8(i) })
	case "int16":
		return traceNumbers(ctx, stdout, stderr, cfg, func(i int) int16 { return int16(i) })
	case "int32":
		return traceNumbers(ctx, stdout, stderr, cfg, func(i int) int32 { return int32(i) })
	case "int64":
		return traceNumbers(ctx, stdout, stderr, cfg, func(i int) int64 { return int64(i) })
	case "float32":
		return traceNumbers(ctx, stdout, stderr, cfg, func(i int) float32 { return float32(i) })
	case "float64":
		return traceNumbers(ctx, stdout, stderr, cfg, func(i int) float64 { return float64(i) })
	case "string":
		if cfg.compression != "" {
			return fmt.Errorf("cannot encode %s elements", cfg.typ)
		}
		_, err := grow(stdout, stderr, cfg, func(i int) string { return fmt.Sprint(i) })
		return err
	default:
		return fmt.Errorf("unknown type %q", cfg.typ)
	}
}

func traceNumbers[T segcodec.Number](ctx context.Context, stdout, stderr io.Writer, cfg config, gen func(int) T) error {
	l, err := grow(stdout, stderr, cfg, gen)
	if err != nil || cfg.compression == "" {
		return err
	}

	c, err := segcodec.ParseCompression(cfg.compression)
	if err != nil {
		return err
	}
	var cw countingWriter
	if err := segcodec.Encode(ctx, &cw, l.ToArray(), segcodec.WithCompression(c)); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "encoded %d elements with %v: %d bytes\n", l.Len(), c, cw.n)
	return nil
}

// grow appends cfg.count generated elements to a new list and prints every
// capacity change.
func grow[T any](stdout, stderr io.Writer, cfg config, gen func(int) T) (*segmented.List[T], error) {
	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := segmented.NewLogger(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	metrics := &segmented.BasicMetricsCollector{}

	l := segmented.NewList[T](segmented.WithLogger(logger), segmented.WithMetricsCollector(metrics))

	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "len\tcapacity\tsegments\t")
	p := sizing.For[T]()
	last := -1
	for i := range cfg.count {
		l.Add(gen(i))
		if l.Cap() != last {
			last = l.Cap()
			fmt.Fprintf(tw, "%d\t%d\t%d\t\n", l.Len(), last, p.Segments(last))
		}
	}
	if err := tw.Flush(); err != nil {
		return nil, err
	}

	stats := metrics.GetStats()
	fmt.Fprintf(stdout, "%d elements: %d grows, %d segments reused, %d allocated\n",
		l.Len(), stats.GrowCount, stats.SegmentsReused, stats.SegmentsAllocated)
	return l, nil
}

type countingWriter struct {
	n int64
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.n += int64(len(p))
	return len(p), nil
}
