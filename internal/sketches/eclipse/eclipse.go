// Package eclipse draws a ring of noise-sized circles with spokes running
// inward to a gap and outward off the page.
package eclipse

import (
	"math"

	"penplot/internal/core"
	"penplot/pkg/geom"
)

// Config holds the ring geometry and per-layer noise amplitudes.
type Config struct {
	Points    int     `key:"points" validate:"gte=1,lte=100000"`
	Radius    float64 `key:"radius" validate:"gt=0"`
	Gap       float64 `key:"gap" validate:"gte=0"`
	Reach     float64 `key:"reach" validate:"gtfield=Radius"`
	Frequency float64 `key:"frequency"`
	Inner     float64 `key:"inner_amp" validate:"gte=0"`
	Outer     float64 `key:"outer_amp" validate:"gte=0"`
	Halo      float64 `key:"halo_amp" validate:"gte=0"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Points:    200,
		Radius:    2,
		Gap:       0.5,
		Reach:     20,
		Frequency: 1,
		Inner:     0.25,
		Outer:     0.5,
		Halo:      0.375,
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(m map[string]string) (Config, error) {
	c := DefaultConfig()
	v := core.NewValues(m)
	v.Int("points", &c.Points)
	v.Float("radius", &c.Radius)
	v.Float("gap", &c.Gap)
	v.Float("reach", &c.Reach)
	v.Float("frequency", &c.Frequency)
	v.Float("inner_amp", &c.Inner)
	v.Float("outer_amp", &c.Outer)
	v.Float("halo_amp", &c.Halo)
	if err := v.Err(); err != nil {
		return c, err
	}
	return c, core.Validate(c)
}

// Eclipse is the eclipse sketch.
type Eclipse struct {
	cfg Config
}

// New returns the sketch for cfg.
func New(cfg Config) *Eclipse { return &Eclipse{cfg: cfg} }

func (e *Eclipse) Name() string    { return "eclipse" }
func (e *Eclipse) Summary() string { return "ring of noise-sized circles with spokes" }

func (e *Eclipse) Canvas() core.Canvas {
	return core.Canvas{Preset: "8r", Orientation: "portrait", Units: "in", Margin: 0.25}
}

func (e *Eclipse) Layers() []string { return []string{"inner", "outer", "halo"} }

func (e *Eclipse) Parameters() core.ParameterSnapshot {
	c := e.cfg
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Ring",
			Params: []core.Parameter{
				core.IntParam("points", "Points", c.Points),
				core.FloatParam("radius", "Radius", c.Radius),
				core.FloatParam("gap", "Centre gap", c.Gap),
				core.FloatParam("reach", "Spoke reach", c.Reach),
			},
		},
		{
			Name: "Noise",
			Params: []core.Parameter{
				core.FloatParam("frequency", "Frequency", c.Frequency),
				core.FloatParam("inner_amp", "Inner amplitude", c.Inner),
				core.FloatParam("outer_amp", "Outer amplitude", c.Outer),
				core.FloatParam("halo_amp", "Halo amplitude", c.Halo),
			},
		},
	}}
}

func (e *Eclipse) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "points", Label: "Points", Type: core.ParamTypeInt, Step: 10, Min: 10, HasMin: true},
		{Key: "radius", Label: "Radius", Type: core.ParamTypeFloat, Step: 0.1, Min: 0.1, HasMin: true},
		{Key: "gap", Label: "Centre gap", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, HasMin: true},
	}
}

// Generate places Points circles evenly around the page centre. Each
// layer sizes its circle from the same noise sample at a different
// amplitude, so the three pens nest.
func (e *Eclipse) Generate(env core.Env, out *geom.LayerSet) error {
	c := e.cfg
	mid := env.Canvas.Mid()
	for i := 0; i < c.Points; i++ {
		ang := 2 * math.Pi * float64(i) / float64(c.Points)
		at := mid.Toward(ang, c.Radius)
		size := func(amp float64) float64 {
			return math.Abs(env.Noise.Sample2D(at.X, at.Y, c.Frequency, amp))
		}

		r := size(c.Inner)
		var inner geom.Path
		inner.Circle(at, r).
			MoveTo(mid.Toward(ang, c.Gap)).
			LineTo(mid.Toward(ang, c.Radius-r))

		r = size(c.Outer)
		var outer geom.Path
		outer.Circle(at, r).
			MoveTo(mid.Toward(ang, c.Radius+r)).
			LineTo(mid.Toward(ang, c.Reach))

		for l, p := range []geom.Path{inner, outer, geom.CirclePath(at, size(c.Halo))} {
			if err := out.Append(l, p); err != nil {
				return err
			}
		}
	}
	return nil
}

func init() {
	core.Register("eclipse", func(m map[string]string) (core.Sketch, error) {
		cfg, err := FromMap(m)
		if err != nil {
			return nil, err
		}
		return New(cfg), nil
	})
}
