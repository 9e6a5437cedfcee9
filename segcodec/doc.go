// Package segcodec serialises segmented arrays of fixed-width numbers.
//
// A stream is a 24-byte header followed by one block per segment:
//
//	header  [magic "SGA1"][version u8][compression u8][elemSize u8][reserved u8]
//	        [length u64][segmentSize u32][segmentCount u32]
//	block   [uncompressed u32][compressed u32][crc32c u32][data]
//
// All integers are little endian. A compressed size of 0 marks a block
// stored raw, which happens when compression saves less than 10%. The
// checksum covers the uncompressed bytes.
//
// Encode compresses segments in parallel with LZ4 or ZSTD:
//
//	var buf bytes.Buffer
//	err := segcodec.Encode(ctx, &buf, arr, segcodec.WithCompression(segcodec.CompressionZSTD))
//	...
//	arr, err = segcodec.Decode[float64](&buf)
package segcodec
