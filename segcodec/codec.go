package segcodec

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/segmented"
	"github.com/hupe1980/segmented/internal/conv"
	"github.com/hupe1980/segmented/internal/hash"
	"github.com/hupe1980/segmented/internal/sizing"
)

// Number is the set of fixed-width element types the codec can encode.
// int, uint and uintptr are excluded because their width is platform
// dependent.
type Number interface {
	~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

var magic = [4]byte{'S', 'G', 'A', '1'}

const (
	// Version is the format version written by Encode.
	Version = 1

	headerSize = 24
)

// header is the fixed-size stream prefix:
// [magic 4][version u8][compression u8][elemSize u8][reserved u8]
// [length u64][segmentSize u32][segmentCount u32].
type header struct {
	compression  Compression
	elemSize     uint8
	length       uint64
	segmentSize  uint32
	segmentCount uint32
}

func (h header) marshal() []byte {
	buf := make([]byte, headerSize)
	copy(buf, magic[:])
	buf[4] = Version
	buf[5] = byte(h.compression)
	buf[6] = h.elemSize
	binary.LittleEndian.PutUint64(buf[8:], h.length)
	binary.LittleEndian.PutUint32(buf[16:], h.segmentSize)
	binary.LittleEndian.PutUint32(buf[20:], h.segmentCount)
	return buf
}

func readHeader(r io.Reader) (header, error) {
	var buf [headerSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return header{}, fmt.Errorf("%w: header: %w", ErrCorrupted, err)
	}
	if [4]byte(buf[:4]) != magic {
		return header{}, ErrInvalidMagic
	}
	if buf[4] != Version {
		return header{}, fmt.Errorf("%w: %d", ErrInvalidVersion, buf[4])
	}
	h := header{
		compression:  Compression(buf[5]),
		elemSize:     buf[6],
		length:       binary.LittleEndian.Uint64(buf[8:]),
		segmentSize:  binary.LittleEndian.Uint32(buf[16:]),
		segmentCount: binary.LittleEndian.Uint32(buf[20:]),
	}
	if !h.compression.valid() {
		return header{}, fmt.Errorf("%w: unknown compression %d", ErrCorrupted, buf[5])
	}
	return h, nil
}

// Encode writes a to w. Segments are converted to little-endian bytes and
// compressed concurrently; blocks are written in segment order.
func Encode[T Number](ctx context.Context, w io.Writer, a segmented.Array[T], optFns ...Option) error {
	o := applyOptions(optFns)

	var zero T
	elemSize := binary.Size(zero)
	segSize, err := conv.IntToUint32(a.SegmentSize())
	if err != nil {
		return err
	}
	segCount, err := conv.IntToUint32(a.SegmentCount())
	if err != nil {
		return err
	}

	h := header{
		compression:  o.compression,
		elemSize:     uint8(elemSize),
		length:       uint64(a.Len()),
		segmentSize:  segSize,
		segmentCount: segCount,
	}
	if _, err := w.Write(h.marshal()); err != nil {
		return err
	}

	segments := make([][]T, 0, a.SegmentCount())
	for seg := range a.Chunks(0, a.Len()) {
		segments = append(segments, seg)
	}

	blocks := make([][]byte, o.concurrency)
	for start := 0; start < len(segments); start += o.concurrency {
		window := segments[start:min(start+o.concurrency, len(segments))]

		g, gctx := errgroup.WithContext(ctx)
		for i, seg := range window {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				raw, err := binary.Append(make([]byte, 0, len(seg)*elemSize), binary.LittleEndian, seg)
				if err != nil {
					return err
				}
				blocks[i], err = encodeBlock(raw, o.compression)
				return err
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		for i := range window {
			if _, err := w.Write(blocks[i]); err != nil {
				return err
			}
			blocks[i] = nil
		}
	}
	return nil
}

// Decode reads an array written by Encode.
func Decode[T Number](r io.Reader) (segmented.Array[T], error) {
	h, err := readHeader(r)
	if err != nil {
		return segmented.Array[T]{}, err
	}

	var zero T
	elemSize := binary.Size(zero)
	if int(h.elemSize) != elemSize {
		return segmented.Array[T]{}, fmt.Errorf("%w: stream has %d-byte elements, want %d", ErrElementSize, h.elemSize, elemSize)
	}

	length, err := conv.Uint64ToInt(h.length)
	if err != nil || length > segmented.MaxLength {
		return segmented.Array[T]{}, fmt.Errorf("%w: length %d", ErrCorrupted, h.length)
	}

	// The header is untrusted: check the layout before allocating.
	p := sizing.For[T]()
	if int64(h.segmentSize) != int64(p.Size) || int64(h.segmentCount) != int64(p.Segments(length)) {
		return segmented.Array[T]{}, fmt.Errorf("%w: segment layout %d×%d does not match %d×%d",
			ErrCorrupted, h.segmentCount, h.segmentSize, p.Segments(length), p.Size)
	}

	var raw []byte
	return segmented.BuildArray(length, func(seg []T) error {
		want := len(seg) * elemSize
		if cap(raw) < want {
			raw = make([]byte, want)
		}
		raw = raw[:want]

		if err := readBlock(r, raw, h.compression); err != nil {
			return err
		}
		if _, err := binary.Decode(raw, binary.LittleEndian, seg); err != nil {
			return fmt.Errorf("%w: %w", ErrCorrupted, err)
		}
		return nil
	})
}

// readBlock reads one block and expands it into dst, whose length is the
// expected uncompressed size.
func readBlock(r io.Reader, dst []byte, c Compression) error {
	var bh [blockHeaderSize]byte
	if _, err := io.ReadFull(r, bh[:]); err != nil {
		return fmt.Errorf("%w: block header: %w", ErrCorrupted, err)
	}
	rawSize := binary.LittleEndian.Uint32(bh[0:])
	compSize := binary.LittleEndian.Uint32(bh[4:])
	sum := binary.LittleEndian.Uint32(bh[8:])

	if int(rawSize) != len(dst) {
		return fmt.Errorf("%w: block holds %d bytes, want %d", ErrCorrupted, rawSize, len(dst))
	}

	if compSize == 0 {
		if _, err := io.ReadFull(r, dst); err != nil {
			return fmt.Errorf("%w: block data: %w", ErrCorrupted, err)
		}
	} else {
		if compSize > rawSize {
			return fmt.Errorf("%w: compressed size %d exceeds raw size %d", ErrCorrupted, compSize, rawSize)
		}
		payload := make([]byte, compSize)
		if _, err := io.ReadFull(r, payload); err != nil {
			return fmt.Errorf("%w: block data: %w", ErrCorrupted, err)
		}
		if err := decompress(payload, dst, c); err != nil {
			return err
		}
	}

	if !hash.Verify(dst, sum) {
		return fmt.Errorf("%w: checksum mismatch", ErrCorrupted)
	}
	return nil
}
