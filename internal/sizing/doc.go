// Package sizing derives segment geometry for segmented storage.
//
// Every element type gets a power-of-two segment length chosen so that a
// full segment stays below Threshold bytes. The length is expressed as a
// shift and a mask so index math reduces to
//
//	segment := i >> p.Shift
//	offset  := i & p.Mask
//
// Common element sizes are served from a table; everything else goes
// through General. Both paths produce identical results.
package sizing
