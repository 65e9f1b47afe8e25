package noisecols

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

func run(t *testing.T, seed string, params map[string]string) core.Result {
	t.Helper()
	res, err := core.Run(context.Background(), core.Document{Sketch: "noisecols", Seed: seed, Params: params}, nil)
	require.NoError(t, err)
	return res
}

func TestLayout(t *testing.T) {
	res := run(t, "42", nil)
	require.Len(t, res.Layers, 3)
	assert.Equal(t, "columns-1", res.Layers[0].Name)

	// 12 x 9 in landscape, 0.25 margins: columns at 0.25..11.75.
	cols := pcore.Span(0.25, 11.75, 0.125)
	for _, l := range res.Layers {
		assert.Len(t, l.Paths, cols+1)
	}
}

func TestDisplacement(t *testing.T) {
	res := run(t, "7", map[string]string{"layers": "3", "amplitude": "0.2", "growth": "0.3"})
	for li, l := range res.Layers {
		limit := 0.2 + float64(li)*0.3 + 1e-9
		for i, p := range l.Paths[:len(l.Paths)-1] {
			gridX := 0.25 + float64(i)*0.125
			start := p[0].(geom.MoveTo)
			assert.Equal(t, 0.25, start.Y)
			if li > 0 {
				assert.InDelta(t, gridX, start.X, 1e-12, "growing layers start on the grid")
			}
			for _, op := range p[1:] {
				pt := op.(geom.LineTo)
				assert.LessOrEqual(t, math.Abs(pt.X-gridX), limit)
			}
		}
	}
}

func TestDeterministic(t *testing.T) {
	assert.Equal(t, run(t, "abc", nil).Layers, run(t, "abc", nil).Layers)
	assert.NotEqual(t, run(t, "abc", nil).Layers, run(t, "abd", nil).Layers)
}

func TestFromMap(t *testing.T) {
	_, err := FromMap(map[string]string{"layers": "0"})
	assert.ErrorIs(t, err, pcore.ErrInvalidParameter)
	_, err = FromMap(map[string]string{"y_step": "-1"})
	assert.ErrorIs(t, err, pcore.ErrInvalidParameter)
	c, err := FromMap(map[string]string{"layers": "5"})
	require.NoError(t, err)
	assert.Len(t, New(c).Layers(), 5)
}

func TestTinyStepsAreRejected(t *testing.T) {
	for key, params := range map[string]map[string]string{
		"x_step": {"x_step": "0.00001"},
		"y_step": {"y_step": "0.00001"},
	} {
		_, err := core.Run(context.Background(), core.Document{Sketch: "noisecols", Seed: "1", Params: params}, nil)
		var pe *pcore.ParamError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, key, pe.Name)
		assert.ErrorIs(t, err, pcore.ErrInvalidParameter)
	}
}
