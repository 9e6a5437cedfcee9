// Package testutil provides testing utilities for segmented collections.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded random source, input shapes that stress the sort
// thresholds, and order/multiset checks.
//
// # Random Input Generation
//
//	rng := testutil.NewRNG(seed)
//	xs := rng.Int64s(1000, 100)           // uniform [0, 100)
//	fs := rng.Float64sWithNaN(1000, 0.1)  // ~10% NaN
//
// # Adversarial Shapes
//
//	xs := testutil.OrganPipe(1024)
//
// # Verification
//
//	ok := testutil.SameMultiset(before, after)
package testutil
