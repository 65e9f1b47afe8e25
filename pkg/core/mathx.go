package core

import "math"

// MapRange linearly maps v from [inMin, inMax] onto [outMin, outMax]
// without clamping. A degenerate input range maps everything to outMin.
func MapRange(v, inMin, inMax, outMin, outMax float64) float64 {
	if inMax == inMin {
		return outMin
	}
	return outMin + (v-inMin)*(outMax-outMin)/(inMax-inMin)
}

// Lerp returns a + (b-a)*t.
func Lerp(a, b, t float64) float64 { return a + (b-a)*t }

// Span counts the values from, from+step, ... that do not pass to. A tiny
// tolerance keeps the last value when rounding lands it just beyond to.
// Counts too large for an int saturate at math.MaxInt.
func Span(from, to, step float64) int {
	if step <= 0 || to < from {
		return 0
	}
	n := math.Floor((to-from)/step+1e-9) + 1
	if n >= math.MaxInt || math.IsNaN(n) {
		return math.MaxInt
	}
	return int(n)
}
