// Package noisecols draws vertical columns displaced sideways by noise,
// one layer per pen, with the displacement growing down the page on every
// layer after the first.
package noisecols

import (
	"strconv"

	"penplot/internal/core"
	pcore "penplot/pkg/core"
	"penplot/pkg/geom"
)

// maxVertices bounds the column vertices one run may emit.
const maxVertices = 1 << 21

// Config controls column spacing and displacement.
type Config struct {
	XStep     float64 `key:"x_step" validate:"gt=0"`
	YStep     float64 `key:"y_step" validate:"gt=0"`
	Frequency float64 `key:"frequency"`
	Amplitude float64 `key:"amplitude"`
	Growth    float64 `key:"growth"`
	Layers    int     `key:"layers" validate:"gte=1,lte=9"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		XStep:     0.125,
		YStep:     0.03,
		Frequency: 1,
		Amplitude: 0.1,
		Growth:    0.1,
		Layers:    3,
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(m map[string]string) (Config, error) {
	c := DefaultConfig()
	v := core.NewValues(m)
	v.Float("x_step", &c.XStep)
	v.Float("y_step", &c.YStep)
	v.Float("frequency", &c.Frequency)
	v.Float("amplitude", &c.Amplitude)
	v.Float("growth", &c.Growth)
	v.Int("layers", &c.Layers)
	if err := v.Err(); err != nil {
		return c, err
	}
	return c, core.Validate(c)
}

// Columns is the noisecols sketch.
type Columns struct {
	cfg Config
}

// New returns the sketch for cfg.
func New(cfg Config) *Columns { return &Columns{cfg: cfg} }

func (c *Columns) Name() string    { return "noisecols" }
func (c *Columns) Summary() string { return "noise-displaced vertical columns with growing amplitude" }

func (c *Columns) Canvas() core.Canvas {
	return core.Canvas{Preset: "arch-a", Orientation: "landscape", Units: "in", Margin: 0.25}
}

func (c *Columns) Layers() []string {
	names := make([]string, c.cfg.Layers)
	for i := range names {
		names[i] = "columns-" + strconv.Itoa(i+1)
	}
	return names
}

func (c *Columns) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{{
		Name: "Columns",
		Params: []core.Parameter{
			core.FloatParam("x_step", "Column gap", c.cfg.XStep),
			core.FloatParam("y_step", "Vertex gap", c.cfg.YStep),
			core.FloatParam("frequency", "Noise frequency", c.cfg.Frequency),
			core.FloatParam("amplitude", "Base amplitude", c.cfg.Amplitude),
			core.FloatParam("growth", "Growth per layer", c.cfg.Growth),
			core.IntParam("layers", "Layers", c.cfg.Layers),
		},
	}}}
}

// amplitude returns the displacement amplitude for layer l at height y.
// Layer 0 is uniform; layer l ramps from zero at the top margin to
// Amplitude + l*Growth at the bottom margin.
func (c *Columns) amplitude(l int, y, top, bottom float64) float64 {
	if l == 0 {
		return c.cfg.Amplitude
	}
	return pcore.MapRange(y, top, bottom, 0, c.cfg.Amplitude+float64(l)*c.cfg.Growth)
}

// Generate fills each layer with one column per XStep inside the margins.
func (c *Columns) Generate(env core.Env, out *geom.LayerSet) error {
	box := env.Canvas.Box()
	cols := pcore.Span(box.Min.X, box.Max.X, c.cfg.XStep)
	rows := pcore.Span(box.Min.Y, box.Max.Y, c.cfg.YStep)
	if float64(cols)*float64(rows)*float64(c.cfg.Layers) > maxVertices {
		// Blame whichever step divides the page more finely.
		if cols >= rows {
			return &pcore.ParamError{Name: "x_step", Value: c.cfg.XStep, Reason: "too small for the page width"}
		}
		return &pcore.ParamError{Name: "y_step", Value: c.cfg.YStep, Reason: "too small for the page height"}
	}
	for l := 0; l < c.cfg.Layers; l++ {
		for i := 0; i < cols; i++ {
			x := box.Min.X + float64(i)*c.cfg.XStep
			line := make(geom.Polyline, rows)
			for j := range line {
				y := box.Min.Y + float64(j)*c.cfg.YStep
				dx := env.Noise.Sample2D(x, y, c.cfg.Frequency, c.amplitude(l, y, box.Min.Y, box.Max.Y))
				line[j] = geom.Pt(x+dx, y)
			}
			if err := out.Append(l, line.Path()); err != nil {
				return err
			}
		}
	}
	return nil
}

func init() {
	core.Register("noisecols", func(m map[string]string) (core.Sketch, error) {
		cfg, err := FromMap(m)
		if err != nil {
			return nil, err
		}
		return New(cfg), nil
	})
}
