package segcodec

import (
	"bytes"
	"context"
	"encoding/binary"
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/segmented"
	"github.com/hupe1980/segmented/testutil"
)

func zipfArray(t *testing.T, n int) segmented.Array[float64] {
	t.Helper()
	xs := testutil.NewRNG(5).ZipfInts(n, 64, 1.2)
	a, err := segmented.NewArray[float64](n)
	require.NoError(t, err)
	for i, x := range xs {
		require.NoError(t, a.Set(i, float64(x)*0.5))
	}
	return a
}

func TestRoundTrip(t *testing.T) {
	a := zipfArray(t, 3*8192+123)

	for _, c := range []Compression{CompressionNone, CompressionLZ4, CompressionZSTD} {
		t.Run(c.String(), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(context.Background(), &buf, a, WithCompression(c), WithConcurrency(2)))

			if c != CompressionNone {
				assert.Less(t, buf.Len(), a.Len()*8, "repetitive data should compress")
			}

			got, err := Decode[float64](&buf)
			require.NoError(t, err)
			if diff := cmp.Diff(a.DebugView(), got.DebugView()); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, a.SegmentCount(), got.SegmentCount())
			assert.Zero(t, buf.Len(), "decoder consumed the whole stream")
		})
	}
}

func TestRoundTrip_Incompressible(t *testing.T) {
	xs := testutil.NewRNG(9).Int64s(5000, 1<<62)
	a := segmented.ArrayOf(xs...)

	var buf bytes.Buffer
	require.NoError(t, Encode(context.Background(), &buf, a, WithCompression(CompressionZSTD)))

	// Random data is stored raw.
	assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(buf.Bytes()[headerSize+4:]))

	got, err := Decode[int64](&buf)
	require.NoError(t, err)
	assert.Equal(t, xs, got.DebugView())
}

func TestRoundTrip_SmallTypes(t *testing.T) {
	type level int8

	a := segmented.ArrayOf[level](-128, 0, 5, 127)
	var buf bytes.Buffer
	require.NoError(t, Encode(context.Background(), &buf, a))

	got, err := Decode[level](&buf)
	require.NoError(t, err)
	assert.Equal(t, a.DebugView(), got.DebugView())
}

func TestRoundTrip_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(context.Background(), &buf, segmented.Array[uint16]{}))
	assert.Equal(t, headerSize, buf.Len())

	got, err := Decode[uint16](&buf)
	require.NoError(t, err)
	assert.Zero(t, got.Len())
}

func encoded(t *testing.T, c Compression) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Encode(context.Background(), &buf, segmented.ArrayOf[int32](1, 2, 3, 4, 5, 6, 7, 8), WithCompression(c)))
	return buf.Bytes()
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name    string
		corrupt func([]byte) []byte
		want    error
	}{
		{"magic", func(b []byte) []byte { b[0] = 'X'; return b }, ErrInvalidMagic},
		{"version", func(b []byte) []byte { b[4] = 9; return b }, ErrInvalidVersion},
		{"compression", func(b []byte) []byte { b[5] = 7; return b }, ErrCorrupted},
		{"element size", func(b []byte) []byte { b[6] = 8; return b }, ErrElementSize},
		{"length", func(b []byte) []byte { b[8] = 9; return b }, ErrCorrupted},
		{"checksum", func(b []byte) []byte { b[headerSize+blockHeaderSize+1] ^= 0xFF; return b }, ErrCorrupted},
		{"truncated header", func(b []byte) []byte { return b[:10] }, ErrCorrupted},
		{"truncated block", func(b []byte) []byte { return b[:len(b)-1] }, ErrCorrupted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.corrupt(encoded(t, CompressionNone))
			_, err := Decode[int32](bytes.NewReader(b))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDecode_HugeLengthHeader(t *testing.T) {
	const length = 400_000_000
	segments := uint32((length + 65535) / 65536)

	tests := []struct {
		name     string
		segCount uint32
	}{
		{"consistent layout without blocks", segments},
		{"inconsistent layout", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := header{
				compression:  CompressionNone,
				elemSize:     1,
				length:       length,
				segmentSize:  65536,
				segmentCount: tt.segCount,
			}

			var before, after runtime.MemStats
			runtime.ReadMemStats(&before)
			_, err := Decode[int8](bytes.NewReader(h.marshal()))
			runtime.ReadMemStats(&after)

			assert.ErrorIs(t, err, ErrCorrupted)
			assert.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(4<<20), "decode allocated ahead of the stream")
		})
	}
}

func TestDecode_WrongType(t *testing.T) {
	_, err := Decode[int64](bytes.NewReader(encoded(t, CompressionLZ4)))
	assert.ErrorIs(t, err, ErrElementSize)

	// Same width, different type: decodes the bits as-is.
	got, err := Decode[uint32](bytes.NewReader(encoded(t, CompressionLZ4)))
	require.NoError(t, err)
	assert.Equal(t, 8, got.Len())
}

func TestEncode_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := Encode(ctx, &buf, segmented.ArrayOf[int16](1, 2, 3))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseCompression(t *testing.T) {
	for _, c := range []Compression{CompressionNone, CompressionLZ4, CompressionZSTD} {
		got, err := ParseCompression(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
	_, err := ParseCompression("brotli")
	assert.Error(t, err)
	assert.Equal(t, "Compression(9)", Compression(9).String())
}

func BenchmarkEncode(b *testing.B) {
	xs := testutil.NewRNG(1).ZipfInts(1<<20, 1024, 1.1)
	a, _ := segmented.NewArray[int32](len(xs))
	for i, x := range xs {
		_ = a.Set(i, int32(x))
	}

	for _, c := range []Compression{CompressionLZ4, CompressionZSTD} {
		b.Run(c.String(), func(b *testing.B) {
			b.ReportAllocs()
			var buf bytes.Buffer
			for b.Loop() {
				buf.Reset()
				_ = Encode(context.Background(), &buf, a, WithCompression(c))
			}
		})
	}
}
