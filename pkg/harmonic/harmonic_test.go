package harmonic

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"penplot/pkg/core"
	"penplot/pkg/noise"
)

func TestSingleRotatorQuarterTurns(t *testing.T) {
	const r = 1.5
	samples, err := Generate(4, []Rotator{{Amplitude: r, Rate: 1}}, nil)
	require.NoError(t, err)
	require.Len(t, samples, 5)

	want := [][2]float64{{0, r}, {r, 0}, {0, -r}, {-r, 0}}
	for i, w := range want {
		assert.InDelta(t, w[0], samples[i].X, 1e-12, "sample %d x", i)
		assert.InDelta(t, w[1], samples[i].Y, 1e-12, "sample %d y", i)
	}
	assert.InDelta(t, samples[0].X, samples[4].X, 1e-12)
	assert.InDelta(t, samples[0].Y, samples[4].Y, 1e-12)
	assert.Len(t, Open(samples), 4)
}

func TestEpicycleSuperposition(t *testing.T) {
	rots := []Rotator{{Amplitude: 2, Rate: 1}, {Amplitude: 0.3, Rate: 5}, {Amplitude: 0.1, Rate: -3}}
	samples, err := Generate(7, rots, nil)
	require.NoError(t, err)
	for i, s := range samples {
		tt := 2 * math.Pi * float64(i) / 7
		var x, y float64
		for _, r := range rots {
			x += r.Amplitude * math.Sin(r.Rate*tt)
			y += r.Amplitude * math.Cos(r.Rate*tt)
		}
		assert.InDelta(t, x, s.X, 1e-12)
		assert.InDelta(t, y, s.Y, 1e-12)
	}
}

func TestRingRadius(t *testing.T) {
	ring := Ring{Bias: 0.1, Coef: 0.2, Rate: 8}
	samples, err := Generate(16, []Rotator{{Amplitude: 2, Rate: 1}}, ring.Radius)
	require.NoError(t, err)
	assert.InDelta(t, 0.1, samples[0].R, 1e-12)
	// cos(8 * π/8 * 2) = cos(2π) at step 2, cos(π) at step 1.
	assert.InDelta(t, 0.1+0.2*2, samples[1].R, 1e-12)
	assert.InDelta(t, 0.1, samples[2].R, 1e-12)
}

func TestDeterministic(t *testing.T) {
	field := noise.New(core.Seed("spiro"))
	radius := NoiseRadius(field, 0.5, 0.2, Ring{Bias: 0.05, Coef: 0.1, Rate: 3}.Radius)
	rots := []Rotator{{Amplitude: 1.5, Rate: 1}, {Amplitude: 0.4, Rate: 6}}

	a, err := Generate(400, rots, radius)
	require.NoError(t, err)
	b, err := Generate(400, rots, radius)
	require.NoError(t, err)
	require.Equal(t, a, b)
	for _, s := range a {
		require.GreaterOrEqual(t, s.R, 0.05)
	}
}

func TestInvalidInput(t *testing.T) {
	_, err := Generate(0, nil, nil)
	assert.ErrorIs(t, err, core.ErrInvalidParameter)

	_, err = Generate(10, []Rotator{{Amplitude: math.NaN(), Rate: 1}}, nil)
	assert.ErrorIs(t, err, core.ErrInvalidParameter)
	assert.ErrorContains(t, err, "rotators[0].amplitude")

	_, err = Generate(10, nil, func(float64) float64 { return math.Inf(1) })
	assert.ErrorIs(t, err, core.ErrInvalidParameter)
}

func TestNudgeCopies(t *testing.T) {
	base := []Rotator{{Amplitude: 2, Rate: 1}, {Amplitude: 0.5, Rate: 3}, {Amplitude: 0.7, Rate: 4}}
	nudged := Nudge(base, 1, 0.015)
	assert.Equal(t, 2.0, nudged[0].Amplitude)
	assert.InDelta(t, 0.515, nudged[1].Amplitude, 1e-12)
	assert.InDelta(t, 0.715, nudged[2].Amplitude, 1e-12)
	assert.Equal(t, 0.5, base[1].Amplitude, "input must not change")
}

func TestTube(t *testing.T) {
	rots := []Rotator{{Amplitude: 1, Rate: 1}, {Amplitude: -0.5, Rate: 2}}
	assert.Equal(t, 1.5, Reach(rots))

	samples := []Sample{{X: 0, Y: 0}, {X: 1.5, Y: 0}, {X: 0, Y: 0.75}}
	Tube(samples, 1.5, 0.6)
	assert.InDelta(t, 0, samples[0].R, 1e-12)
	assert.InDelta(t, 0.6, samples[1].R, 1e-12)
	assert.InDelta(t, 0.3, samples[2].R, 1e-12)
}
