// Package noise provides a seeded Perlin noise field. The 1D, 2D and 3D
// samplers are served by one generator, so they share a permutation table
// and a seed behaves the same whichever dimensionality a sketch asks for.
package noise

import (
	"math"

	"github.com/aquilax/go-perlin"

	"penplot/pkg/core"
)

// Octave settings: each octave halves the weight (alpha) and doubles the
// frequency (beta) of the previous one.
const (
	alpha   = 2
	beta    = 2
	octaves = 3
)

// Field is an immutable gradient noise evaluator. It is safe for
// concurrent use once constructed.
type Field struct {
	p *perlin.Perlin
}

// New builds the noise tables for seed.
func New(seed core.Seed) *Field {
	return &Field{p: perlin.NewPerlin(alpha, beta, octaves, int64(seed.Value()))}
}

// Sample1D returns amplitude * noise(x * frequency).
func (f *Field) Sample1D(x, frequency, amplitude float64) float64 {
	return amplitude * f.Noise1D(x*frequency)
}

// Sample2D returns amplitude * noise(x * frequency, y * frequency).
func (f *Field) Sample2D(x, y, frequency, amplitude float64) float64 {
	return amplitude * f.Noise2D(x*frequency, y*frequency)
}

// Sample3D returns amplitude * noise(x * frequency, y * frequency, z * frequency).
func (f *Field) Sample3D(x, y, z, frequency, amplitude float64) float64 {
	return amplitude * f.Noise3D(x*frequency, y*frequency, z*frequency)
}

// Noise1D returns noise in [-1, 1]. Non-finite input yields 0.
func (f *Field) Noise1D(x float64) float64 {
	if !finite(x) {
		return 0
	}
	return clamp(f.p.Noise1D(x))
}

// Noise2D returns noise in [-1, 1]. Non-finite input yields 0.
func (f *Field) Noise2D(x, y float64) float64 {
	if !finite(x) || !finite(y) {
		return 0
	}
	return clamp(f.p.Noise2D(x, y))
}

// Noise3D returns noise in [-1, 1]. Non-finite input yields 0.
func (f *Field) Noise3D(x, y, z float64) float64 {
	if !finite(x) || !finite(y) || !finite(z) {
		return 0
	}
	return clamp(f.p.Noise3D(x, y, z))
}

// clamp bounds the octave sum, which can exceed 1 in magnitude.
func clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
