package eclipse

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"penplot/internal/core"
	pcore "penplot/pkg/core"
	"penplot/pkg/geom"
)

func TestGenerate(t *testing.T) {
	res, err := core.Run(context.Background(), core.Document{Sketch: "eclipse", Seed: "297592"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{201, 201, 201}, res.Counts())

	mid := res.Canvas.Mid()
	assert.Equal(t, geom.Pt(4, 5), mid)

	for i := 0; i < 200; i++ {
		inner := res.Layers[0].Paths[i]
		outer := res.Layers[1].Paths[i]
		halo := res.Layers[2].Paths[i]
		ci := inner[0].(geom.ArcTo)
		co := outer[0].(geom.ArcTo)
		ch := halo[0].(geom.ArcTo)
		assert.Equal(t, ci.Center, co.Center)
		assert.Equal(t, ci.Center, ch.Center)
		assert.InDelta(t, 2.0, ci.Center.Sub(mid).Len(), 1e-9)

		// Radii scale with amplitude: inner 0.25, halo 0.375, outer 0.5.
		assert.LessOrEqual(t, ci.Radius, ch.Radius+1e-12)
		assert.LessOrEqual(t, ch.Radius, co.Radius+1e-12)

		spokeEnd := inner[2].(geom.LineTo)
		assert.InDelta(t, 2.0-ci.Radius, geom.Point(spokeEnd).Sub(mid).Len(), 1e-9)
		far := outer[2].(geom.LineTo)
		assert.InDelta(t, 20.0, geom.Point(far).Sub(mid).Len(), 1e-9)
	}
}

func TestFirstPointBelowCentre(t *testing.T) {
	res, err := core.Run(context.Background(), core.Document{Sketch: "eclipse", Seed: "1", Params: map[string]string{"points": "4"}}, nil)
	require.NoError(t, err)
	c := res.Layers[2].Paths[0][0].(geom.ArcTo).Center
	assert.InDelta(t, 4.0, c.X, 1e-12)
	assert.InDelta(t, 7.0, c.Y, 1e-12)
}

func TestFromMap(t *testing.T) {
	_, err := FromMap(map[string]string{"reach": "1"})
	assert.ErrorIs(t, err, pcore.ErrInvalidParameter)
	_, err = FromMap(map[string]string{"points": "0"})
	assert.ErrorIs(t, err, pcore.ErrInvalidParameter)
	c, err := FromMap(New(DefaultConfig()).Parameters().Map())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), c)
}
