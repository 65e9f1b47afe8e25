// Package harmonic builds harmonograph curves: the sum of rotating
// sinusoidal terms, sampled over one full turn, with a radius channel per
// sample for drawing rings along the curve.
package harmonic

import (
	"math"
	"strconv"

	"penplot/pkg/core"
)

// Rotator is one epicycle term.
type Rotator struct {
	Amplitude float64
	Rate      float64
}

// Sample is a curve point with its ring radius.
type Sample struct {
	X, Y, R float64
}

// RadiusFunc returns the ring radius for curve parameter t.
type RadiusFunc func(t float64) float64

// Ring modulates the radius as Bias + Coef*(1 - cos(Rate*t)).
type Ring struct {
	Bias float64
	Coef float64
	Rate float64
}

// Radius implements RadiusFunc.
func (r Ring) Radius(t float64) float64 {
	return r.Bias + r.Coef*(1-math.Cos(r.Rate*t))
}

// Sampler is the slice of a noise field the radius modulation needs.
type Sampler interface {
	Sample1D(x, frequency, amplitude float64) float64
}

// NoiseRadius adds |noise(t)| to base, so rings swell and shrink
// coherently along the curve. A nil base starts from zero.
func NoiseRadius(field Sampler, frequency, amplitude float64, base RadiusFunc) RadiusFunc {
	return func(t float64) float64 {
		r := math.Abs(field.Sample1D(t, frequency, amplitude))
		if base != nil {
			r += base(t)
		}
		return r
	}
}

// Generate samples the rotator sum at steps+1 evenly spaced parameters
// from 0 to 2π inclusive:
//
//	x = Σ a·sin(rate·t)    y = Σ a·cos(rate·t)
//
// The first and last samples coincide for integer rates. Callers that
// want each point once should drop the last sample with Open.
func Generate(steps int, rotators []Rotator, radius RadiusFunc) ([]Sample, error) {
	if err := core.AtLeast("steps", steps, 1); err != nil {
		return nil, err
	}
	for i, rot := range rotators {
		prefix := "rotators[" + strconv.Itoa(i) + "]"
		if err := core.FirstError(
			core.Finite(prefix+".amplitude", rot.Amplitude),
			core.Finite(prefix+".rate", rot.Rate),
		); err != nil {
			return nil, err
		}
	}

	out := make([]Sample, steps+1)
	for i := range out {
		t := 2 * math.Pi * float64(i) / float64(steps)
		var x, y float64
		for _, rot := range rotators {
			s, c := math.Sincos(rot.Rate * t)
			x += rot.Amplitude * s
			y += rot.Amplitude * c
		}
		var r float64
		if radius != nil {
			r = radius(t)
			if err := core.Finite("radius", r); err != nil {
				return nil, err
			}
		}
		out[i] = Sample{X: x, Y: y, R: r}
	}
	return out, nil
}

// Open drops the closing sample that repeats the first one.
func Open(samples []Sample) []Sample {
	if len(samples) < 2 {
		return samples
	}
	return samples[:len(samples)-1]
}

// Nudge returns a copy of rotators with delta added to the amplitude of
// every rotator from index from on. Layers drawn with increasing nudges
// trace the same figure slightly offset, which separates pen colours.
func Nudge(rotators []Rotator, from int, delta float64) []Rotator {
	out := append([]Rotator(nil), rotators...)
	for i := from; i < len(out); i++ {
		if i < 0 {
			continue
		}
		out[i].Amplitude += delta
	}
	return out
}

// Reach is the largest distance the curve can get from the origin.
func Reach(rotators []Rotator) float64 {
	var total float64
	for _, rot := range rotators {
		total += math.Abs(rot.Amplitude)
	}
	return total
}

// Tube replaces each radius with the sample's distance from the origin
// mapped from [0, reach] onto [0, limit], so rings grow toward the
// outside of the figure.
func Tube(samples []Sample, reach, limit float64) {
	for i := range samples {
		d := math.Hypot(samples[i].X, samples[i].Y)
		samples[i].R = core.MapRange(d, 0, reach, 0, limit)
	}
}
