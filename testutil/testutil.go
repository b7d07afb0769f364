package testutil

import (
	"math"
	"math/rand"
	"sync"
)

const (
	identStart = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ_"
	identRest  = identStart + "0123456789"
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

// Identifier returns a random identifier with a length in [minLen, maxLen].
func (r *RNG) Identifier(minLen, maxLen int) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.identifierLocked(minLen, maxLen)
}

func (r *RNG) identifierLocked(minLen, maxLen int) string {
	if minLen < 1 {
		minLen = 1
	}
	if maxLen < minLen {
		maxLen = minLen
	}
	n := minLen + r.rand.Intn(maxLen-minLen+1)

	b := make([]byte, n)
	b[0] = identStart[r.rand.Intn(len(identStart))]
	for i := 1; i < n; i++ {
		b[i] = identRest[r.rand.Intn(len(identRest))]
	}
	return string(b)
}

// DistinctIdentifiers returns n pairwise distinct random identifiers.
//
// The length range must leave room for n distinct values; with minLen >= 4
// that holds for any practical n.
func (r *RNG) DistinctIdentifiers(n, minLen, maxLen int) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]struct{}, n)
	out := make([]string, 0, n)
	for len(out) < n {
		id := r.identifierLocked(minLen, maxLen)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// TokenStream returns n tokens drawn from vocab with a Zipfian distribution of
// exponent s, so low indices of vocab repeat most.
func (r *RNG) TokenStream(vocab []string, n int, s float64) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	cdf := zipfCDF(len(vocab), s)
	out := make([]string, n)
	for i := range out {
		out[i] = vocab[sampleCDF(cdf, r.rand.Float64())]
	}
	return out
}

// Zipf returns a Zipf-distributed random number in [0, n).
// s is the exponent parameter (s > 1). Higher s = more skewed.
func (r *RNG) Zipf(n int, s float64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n <= 1 {
		return 0
	}
	return sampleCDF(zipfCDF(n, s), r.rand.Float64())
}

// zipfCDF returns the normalized cumulative distribution for ranks 1..n.
func zipfCDF(n int, s float64) []float64 {
	cdf := make([]float64, n)
	var total float64
	for k := 1; k <= n; k++ {
		total += 1.0 / math.Pow(float64(k), s)
		cdf[k-1] = total
	}
	for i := range cdf {
		cdf[i] /= total
	}
	return cdf
}

func sampleCDF(cdf []float64, u float64) int {
	lo, hi := 0, len(cdf)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if u <= cdf[mid] {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}
