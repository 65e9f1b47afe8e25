package fmwave

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"penplot/internal/core"
	pcore "penplot/pkg/core"
	"penplot/pkg/geom"
)

func TestGenerate(t *testing.T) {
	res, err := core.Run(context.Background(), core.Document{Sketch: "fmwave", Seed: "1"}, nil)
	require.NoError(t, err)
	require.Len(t, res.Layers, 1)
	assert.InDelta(t, 42.0, res.Canvas.Width, 1e-9)

	// 0, 0.02, ... 42 inclusive plus the registration mark.
	assert.Equal(t, 2101+1, len(res.Layers[0].Paths))

	first := res.Layers[0].Paths[0]
	arc, ok := first[0].(geom.ArcTo)
	require.True(t, ok)
	assert.Equal(t, geom.Pt(0, res.Canvas.Height/2), arc.Center)
	assert.Zero(t, arc.Radius)

	last := res.Layers[0].Paths[len(res.Layers[0].Paths)-1]
	assert.Equal(t, geom.RegistrationMark(geom.Pt(0.5, 0.5)), last)
}

func TestSeedIndependent(t *testing.T) {
	a, err := core.Run(context.Background(), core.Document{Sketch: "fmwave", Seed: "1"}, nil)
	require.NoError(t, err)
	b, err := core.Run(context.Background(), core.Document{Sketch: "fmwave", Seed: "2"}, nil)
	require.NoError(t, err)
	assert.Equal(t, a.Layers, b.Layers, "the wave draws no randomness")
}

func TestWave(t *testing.T) {
	c := DefaultConfig()
	assert.Zero(t, c.Wave(0))
	x := 1.3
	want := (math.Sin(x)+math.Sin(3*x))*(math.Sin(5*x)*math.Sin(0.3*x)) + math.Sin(0.15*x)
	assert.InDelta(t, want, c.Wave(x), 1e-12)
	assert.InDelta(t, 1.0, c.Radius(math.Pi/2/0.2), 1e-12)
}

func TestFromMap(t *testing.T) {
	c, err := FromMap(map[string]string{"step": "0.5", "amplitude": "2"})
	require.NoError(t, err)
	assert.Equal(t, 0.5, c.Step)
	assert.Equal(t, 2.0, c.Amplitude)

	_, err = FromMap(map[string]string{"step": "0"})
	assert.ErrorIs(t, err, pcore.ErrInvalidParameter)
	_, err = FromMap(map[string]string{"amplitude": "Inf"})
	assert.ErrorIs(t, err, pcore.ErrInvalidParameter)

	snap := New(DefaultConfig()).Parameters()
	back, err := FromMap(snap.Map())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), back)
}

func TestStepTooSmall(t *testing.T) {
	_, err := core.Run(context.Background(), core.Document{Sketch: "fmwave", Seed: "1", Params: map[string]string{"step": "0.00001"}}, nil)
	assert.ErrorIs(t, err, pcore.ErrInvalidParameter)
}
