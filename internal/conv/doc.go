// Package conv provides checked integer conversions for lengths and
// indexes that cross a fixed-width boundary: bitmap positions and codec
// headers.
//
// Conversions that are safe by construction (loop indexes bounded by a
// collection length) use plain casts instead.
package conv
