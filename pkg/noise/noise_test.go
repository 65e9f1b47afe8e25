package noise

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"penplot/pkg/core"
)

func TestSample3DStableAcrossConstruction(t *testing.T) {
	a := New(core.SeedFromInt(42))
	b := New(core.Seed("42"))

	first := a.Sample3D(0, 0, 0, 1, 1)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, a.Sample3D(0, 0, 0, 1, 1))
	}
	require.Equal(t, first, b.Sample3D(0, 0, 0, 1, 1))
	require.Equal(t, a.Sample3D(0.3, -1.7, 2.2, 1, 1), b.Sample3D(0.3, -1.7, 2.2, 1, 1))
}

func TestSeedsProduceDifferentFields(t *testing.T) {
	a := New(core.Seed("abcd"))
	b := New(core.Seed("abce"))

	differs := false
	for i := 0; i < 64; i++ {
		x := float64(i)*0.37 + 0.11
		y := float64(i)*0.91 - 3.2
		if a.Noise2D(x, y) != b.Noise2D(x, y) {
			differs = true
			break
		}
	}
	assert.True(t, differs, "distinct seeds should not share a lattice")
}

func TestSamplesStayWithinAmplitude(t *testing.T) {
	f := New(core.Seed("range"))
	const amp = 0.35
	for i := 0; i < 2000; i++ {
		x := float64(i)*0.173 - 100
		y := float64(i)*0.057 + 12
		z := float64(i) * 0.031
		v2 := f.Sample2D(x, y, 1.3, amp)
		v3 := f.Sample3D(x, y, z, 0.7, amp)
		require.LessOrEqual(t, math.Abs(v2), amp)
		require.LessOrEqual(t, math.Abs(v3), amp)
		require.False(t, math.IsNaN(v2) || math.IsNaN(v3))
	}
}

func TestNoise2DContinuousAcrossLatticeBoundaries(t *testing.T) {
	f := New(core.Seed("continuity"))
	const eps = 1e-7
	for xi := -8; xi <= 8; xi++ {
		for yi := -8; yi <= 8; yi++ {
			// Integer and half-integer coordinates sit on cell boundaries
			// of the first two octaves, which is where a seam would show up.
			for _, p := range [][2]float64{
				{float64(xi), float64(yi)},
				{float64(xi) + 0.5, float64(yi) - 0.25},
				{float64(xi) - 0.5, float64(yi) + 0.5},
			} {
				x, y := p[0], p[1]
				dx := math.Abs(f.Noise2D(x+eps, y) - f.Noise2D(x, y))
				dy := math.Abs(f.Noise2D(x, y+eps) - f.Noise2D(x, y))
				require.Less(t, dx, 1e-4, "jump at (%v,%v)", x, y)
				require.Less(t, dy, 1e-4, "jump at (%v,%v)", x, y)
			}
		}
	}
}

func TestNoise3DContinuous(t *testing.T) {
	f := New(core.Seed("continuity"))
	const eps = 1e-7
	for i := -20; i <= 20; i++ {
		x := float64(i) * 0.5
		y := float64(i) * -0.25
		z := float64(i) / 3
		d := math.Abs(f.Noise3D(x+eps, y, z) - f.Noise3D(x, y, z))
		require.Less(t, d, 1e-4)
	}
}

func TestSample1DBoundedAndContinuous(t *testing.T) {
	f := New(core.Seed("line"))
	const eps = 1e-7
	varied := false
	for i := 0; i < 200; i++ {
		x := float64(i)*0.21 - 20
		v := f.Sample1D(x, 2, 3)
		require.LessOrEqual(t, math.Abs(v), 3.0)
		require.Less(t, math.Abs(f.Sample1D(x+eps, 2, 3)-v), 1e-4)
		assert.Equal(t, 3*f.Noise1D(2*x), v)
		varied = varied || v != 0
	}
	assert.True(t, varied)
}

func TestSeed42(t *testing.T) {
	a := New(core.SeedFromInt(42))
	b := New(core.SeedFromInt(42))
	for i := 0; i < 20; i++ {
		x, y, z := float64(i)*0.13, float64(i)*-0.29, float64(i)*0.41
		require.Equal(t, a.Sample3D(x, y, z, 1, 1), b.Sample3D(x, y, z, 1, 1))
	}
}

func TestFrequencyScalesInput(t *testing.T) {
	f := New(core.Seed("freq"))
	assert.Equal(t, f.Sample2D(2, 4, 0.5, 1), f.Noise2D(1, 2))
	assert.Equal(t, f.Sample3D(2, 4, 6, 0.5, 2), 2*f.Noise3D(1, 2, 3))
}

func TestNonFiniteInputIsZero(t *testing.T) {
	f := New(core.Seed("nan"))
	assert.Zero(t, f.Noise2D(math.NaN(), 1))
	assert.Zero(t, f.Noise3D(1, math.Inf(1), 0))
	assert.Zero(t, f.Noise1D(math.Inf(-1)))
}

func TestConcurrentReads(t *testing.T) {
	f := New(core.Seed("shared"))
	want := f.Noise3D(1.5, 2.5, 3.5)

	var wg sync.WaitGroup
	results := make([]float64, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = f.Noise3D(1.5, 2.5, 3.5)
		}(i)
	}
	wg.Wait()
	for _, got := range results {
		require.Equal(t, want, got)
	}
}
