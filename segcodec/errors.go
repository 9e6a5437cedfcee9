package segcodec

import "errors"

var (
	// ErrInvalidMagic is returned when a stream does not start with the
	// segcodec magic bytes.
	ErrInvalidMagic = errors.New("segcodec: invalid magic")

	// ErrInvalidVersion is returned for streams written by an unknown
	// format version.
	ErrInvalidVersion = errors.New("segcodec: unsupported version")

	// ErrCorrupted is returned when a stream is truncated, fails its
	// checksum or describes an impossible layout.
	ErrCorrupted = errors.New("segcodec: corrupted stream")

	// ErrElementSize is returned when decoding into a type whose width
	// differs from the encoded elements.
	ErrElementSize = errors.New("segcodec: element size mismatch")
)
