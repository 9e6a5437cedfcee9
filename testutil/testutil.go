package testutil

import (
	"cmp"
	"math"
	"math/rand"
	"slices"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Ints returns n values in [0, maxVal).
func (r *RNG) Ints(n, maxVal int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]int, n)
	for i := range out {
		out[i] = r.rand.Intn(maxVal)
	}
	return out
}

// Int64s returns n values in [0, maxVal).
// Locks only once per call (preferred over calling Intn in a loop).
func (r *RNG) Int64s(n int, maxVal int64) []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]int64, n)
	for i := range out {
		out[i] = r.rand.Int63n(maxVal)
	}
	return out
}

// Float64s returns n values from a standard normal distribution.
func (r *RNG) Float64s(n int) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]float64, n)
	for i := range out {
		out[i] = r.rand.NormFloat64()
	}
	return out
}

// Float64sWithNaN is Float64s where each value is NaN with probability nanRate.
func (r *RNG) Float64sWithNaN(n int, nanRate float64) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]float64, n)
	for i := range out {
		if r.rand.Float64() < nanRate {
			out[i] = math.NaN()
		} else {
			out[i] = r.rand.NormFloat64()
		}
	}
	return out
}

// Shuffle randomizes the order of xs.
func Shuffle[T any](r *RNG, xs []T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Shuffle(len(xs), func(i, j int) { xs[i], xs[j] = xs[j], xs[i] })
}

// Zipf returns a Zipfian-distributed value in [0, n).
// Uses Zipf's law: P(k) ∝ 1/k^s where s is the skew parameter.
// Skewed values produce long runs of duplicates.
func (r *RNG) Zipf(n int, s float64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.zipfLocked(n, s)
}

// zipfLocked is the internal implementation (caller must hold lock).
func (r *RNG) zipfLocked(n int, s float64) int {
	if n <= 1 {
		return 0
	}

	var hns float64
	for i := 1; i <= n; i++ {
		hns += 1.0 / math.Pow(float64(i), s)
	}

	u := r.rand.Float64() * hns
	var cumulative float64
	for k := 1; k <= n; k++ {
		cumulative += 1.0 / math.Pow(float64(k), s)
		if u <= cumulative {
			return k - 1
		}
	}

	return n - 1
}

// ZipfInts generates n values in [0, distinct) with a Zipfian distribution.
func (r *RNG) ZipfInts(n, distinct int, s float64) []int {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]int, n)
	for i := range out {
		out[i] = r.zipfLocked(distinct, s)
	}
	return out
}

// ============================================================================
// Adversarial Distribution Generators
// ============================================================================

// Ascending returns 0..n-1.
func Ascending(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// Descending returns n-1..0.
func Descending(n int) []int {
	out := Ascending(n)
	slices.Reverse(out)
	return out
}

// OrganPipe returns 0,1,..,n/2,..,1,0 which defeats naive middle pivots.
func OrganPipe(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = min(i, n-1-i)
	}
	return out
}

// Sawtooth returns values cycling through [0, period).
func Sawtooth(n, period int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i % period
	}
	return out
}

// Constant returns n copies of v.
func Constant(n, v int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// ============================================================================
// Verification
// ============================================================================

// SameMultiset reports whether a and b hold the same values with the same
// multiplicities. NaNs are counted as equal to each other.
func SameMultiset[T cmp.Ordered](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	x, y := slices.Clone(a), slices.Clone(b)
	slices.Sort(x)
	slices.Sort(y)
	for i := range x {
		if cmp.Compare(x[i], y[i]) != 0 {
			return false
		}
	}
	return true
}

// NaNPrefix returns the length of the leading run of NaNs in xs.
func NaNPrefix[T cmp.Ordered](xs []T) int {
	for i, v := range xs {
		if v == v {
			return i
		}
	}
	return len(xs)
}
