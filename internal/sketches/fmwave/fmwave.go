// Package fmwave strings circles along a frequency-modulated wave.
package fmwave

import (
	"math"

	"penplot/internal/core"
	pcore "penplot/pkg/core"
	"penplot/pkg/geom"
)

// maxCircles bounds the number of circles one run may emit.
const maxCircles = 1 << 18

// Config holds the synth and sampling constants.
type Config struct {
	CarrierAM  float64 `key:"carrier_am"`
	Op1        float64 `key:"op1"`
	Op2        float64 `key:"op2"`
	PostAM     float64 `key:"post_am"`
	Amplitude  float64 `key:"amplitude"`
	RadialFreq float64 `key:"radial_freq"`
	Step       float64 `key:"step" validate:"gt=0"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		CarrierAM:  3,
		Op1:        5,
		Op2:        0.3,
		PostAM:     0.15,
		Amplitude:  5,
		RadialFreq: 0.2,
		Step:       0.02,
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(m map[string]string) (Config, error) {
	c := DefaultConfig()
	v := core.NewValues(m)
	v.Float("carrier_am", &c.CarrierAM)
	v.Float("op1", &c.Op1)
	v.Float("op2", &c.Op2)
	v.Float("post_am", &c.PostAM)
	v.Float("amplitude", &c.Amplitude)
	v.Float("radial_freq", &c.RadialFreq)
	v.Float("step", &c.Step)
	if err := v.Err(); err != nil {
		return c, err
	}
	return c, core.Validate(c)
}

// Wave is the carrier, amplitude modulated, times two operators, plus a
// slow post modulation.
func (c Config) Wave(x float64) float64 {
	carrier := math.Sin(x) + math.Sin(x*c.CarrierAM)
	ops := math.Sin(x*c.Op1) * math.Sin(x*c.Op2)
	return carrier*ops + math.Sin(x*c.PostAM)
}

// Radius is the circle radius at x.
func (c Config) Radius(x float64) float64 {
	return math.Abs(math.Sin(x * c.RadialFreq))
}

// Wave is the fmwave sketch.
type Wave struct {
	cfg Config
}

// New returns the sketch for cfg.
func New(cfg Config) *Wave { return &Wave{cfg: cfg} }

func (w *Wave) Name() string    { return "fmwave" }
func (w *Wave) Summary() string { return "circles riding an FM-synthesized wave across the page" }

func (w *Wave) Canvas() core.Canvas {
	return core.Canvas{Preset: "a3", Orientation: "landscape", Units: "cm", Margin: 0.5}
}

func (w *Wave) Layers() []string { return []string{"circles"} }

func (w *Wave) Parameters() core.ParameterSnapshot {
	c := w.cfg
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Synth",
			Params: []core.Parameter{
				core.FloatParam("carrier_am", "Carrier AM", c.CarrierAM),
				core.FloatParam("op1", "Operator 1", c.Op1),
				core.FloatParam("op2", "Operator 2", c.Op2),
				core.FloatParam("post_am", "Post AM", c.PostAM),
				core.FloatParam("amplitude", "Amplitude", c.Amplitude),
			},
		},
		{
			Name: "Circles",
			Params: []core.Parameter{
				core.FloatParam("radial_freq", "Radius frequency", c.RadialFreq),
				core.FloatParam("step", "Step", c.Step),
			},
		},
	}}
}

func (w *Wave) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "amplitude", Label: "Amplitude", Type: core.ParamTypeFloat, Step: 0.5},
		{Key: "op1", Label: "Operator 1", Type: core.ParamTypeFloat, Step: 0.5},
		{Key: "op2", Label: "Operator 2", Type: core.ParamTypeFloat, Step: 0.05},
		{Key: "step", Label: "Step", Type: core.ParamTypeFloat, Step: 0.01, Min: 0.01, HasMin: true},
	}
}

// Generate walks x across the full page width.
func (w *Wave) Generate(env core.Env, out *geom.LayerSet) error {
	n := pcore.Span(0, env.Canvas.Width, w.cfg.Step)
	if n > maxCircles {
		return &pcore.ParamError{Name: "step", Value: w.cfg.Step, Reason: "too small for the page width"}
	}
	midY := env.Canvas.Height / 2
	for i := 0; i < n; i++ {
		x := float64(i) * w.cfg.Step
		c := geom.Pt(x, midY+w.cfg.Amplitude*w.cfg.Wave(x))
		if err := out.Append(0, geom.CirclePath(c, w.cfg.Radius(x))); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	core.Register("fmwave", func(m map[string]string) (core.Sketch, error) {
		cfg, err := FromMap(m)
		if err != nil {
			return nil, err
		}
		return New(cfg), nil
	})
}
