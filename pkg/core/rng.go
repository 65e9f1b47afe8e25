package core

import (
	"hash/fnv"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
)

// Seed identifies a deterministic run. Integer seeds are stored in their
// decimal form so that 42 and "42" name the same run.
type Seed string

// SeedFromInt returns the seed for an integer value.
func SeedFromInt(n int64) Seed { return Seed(strconv.FormatInt(n, 10)) }

// RandomSeed draws a fresh six digit seed from the process-wide source.
// It is the only non-deterministic call in the module and is meant for
// callers that were handed an empty seed.
func RandomSeed() Seed {
	return SeedFromInt(rand.Int64N(1000000))
}

// String returns the seed as given.
func (s Seed) String() string { return string(s) }

// Value folds the seed into 64 bits. Decimal seeds map to their integer
// value, anything else is hashed with FNV-1a.
func (s Seed) Value() uint64 {
	trimmed := strings.TrimSpace(string(s))
	if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return uint64(n)
	}
	h := fnv.New64a()
	h.Write([]byte(trimmed))
	return h.Sum64()
}

// Source returns a PCG source for the given stream. Separate streams keep
// the noise tables and the parameter draws independent of each other.
func (s Seed) Source(stream uint64) *rand.Rand {
	return rand.New(rand.NewPCG(s.Value(), stream))
}

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed Seed) *RNG {
	return &RNG{r: seed.Source(0)}
}

// Float64 returns a value in [0, 1).
func (r *RNG) Float64() float64 { return r.r.Float64() }

// Bool returns a random boolean value.
func (r *RNG) Bool() bool {
	return r.r.IntN(2) == 1
}

// Range returns a value in [min, max).
func (r *RNG) Range(min, max float64) float64 {
	return min + r.r.Float64()*(max-min)
}

// RangeFloor returns an integer in [min, max). It returns min when the
// range is empty.
func (r *RNG) RangeFloor(min, max int) int {
	if max <= min {
		return min
	}
	return min + r.r.IntN(max-min)
}

// Gaussian returns a normally distributed value.
func (r *RNG) Gaussian(mean, std float64) float64 {
	return mean + r.r.NormFloat64()*std
}

// Angle returns a value in [0, 2π).
func (r *RNG) Angle() float64 { return r.r.Float64() * 2 * math.Pi }

// Pick returns a random element of values. It panics on an empty slice.
func Pick[T any](r *RNG, values []T) T {
	return values[r.r.IntN(len(values))]
}

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }
