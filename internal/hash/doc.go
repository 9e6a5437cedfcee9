// Package hash provides the CRC32-Castagnoli checksums that guard every
// encoded segment block. Go's crc32 package uses SSE4.2 or the ARM CRC
// extension for this polynomial when available.
package hash
