// Package tube stacks half-ellipse plates down the page, pushes each out
// by 3D noise and joins neighbouring plates with rungs.
package tube

import (
	"math"

	"penplot/internal/core"
	pcore "penplot/pkg/core"
	"penplot/pkg/geom"
)

// maxVertices bounds the plate and rung vertices one run may emit.
const maxVertices = 1 << 21

// Config holds the plate layout and noise constants.
type Config struct {
	PlateGap   float64 `key:"plate_gap" validate:"gt=0"`
	Segments   int     `key:"segments" validate:"gte=1,lte=10000"`
	Sweep      float64 `key:"sweep" validate:"gt=0"`
	StartAngle float64 `key:"start_angle"`
	Bias       float64 `key:"bias"`
	StretchX   float64 `key:"stretch_x"`
	StretchY   float64 `key:"stretch_y"`
	Frequency  float64 `key:"frequency"`
	Amplitude  float64 `key:"amplitude"`
	Depth      float64 `key:"depth"`
	Rungs      bool    `key:"rungs"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		PlateGap:   0.3,
		Segments:   30,
		Sweep:      math.Pi,
		StartAngle: 1.5 * math.Pi,
		Bias:       2,
		StretchX:   1.5,
		StretchY:   0.5,
		Frequency:  1.5,
		Amplitude:  0.5,
		Depth:      0.3,
		Rungs:      true,
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(m map[string]string) (Config, error) {
	c := DefaultConfig()
	v := core.NewValues(m)
	v.Float("plate_gap", &c.PlateGap)
	v.Int("segments", &c.Segments)
	v.Float("sweep", &c.Sweep)
	v.Float("start_angle", &c.StartAngle)
	v.Float("bias", &c.Bias)
	v.Float("stretch_x", &c.StretchX)
	v.Float("stretch_y", &c.StretchY)
	v.Float("frequency", &c.Frequency)
	v.Float("amplitude", &c.Amplitude)
	v.Float("depth", &c.Depth)
	v.Bool("rungs", &c.Rungs)
	if err := v.Err(); err != nil {
		return c, err
	}
	return c, core.Validate(c)
}

// Tube is the tube sketch.
type Tube struct {
	cfg Config
}

// New returns the sketch for cfg.
func New(cfg Config) *Tube { return &Tube{cfg: cfg} }

func (t *Tube) Name() string    { return "tube" }
func (t *Tube) Summary() string { return "stacked noise-displaced plates joined by rungs" }

func (t *Tube) Canvas() core.Canvas {
	return core.Canvas{Preset: "arch-a", Orientation: "portrait", Units: "in", Margin: 0.25}
}

func (t *Tube) Layers() []string { return []string{"plates"} }

func (t *Tube) Parameters() core.ParameterSnapshot {
	c := t.cfg
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Plates",
			Params: []core.Parameter{
				core.FloatParam("plate_gap", "Plate gap", c.PlateGap),
				core.IntParam("segments", "Segments", c.Segments),
				core.FloatParam("sweep", "Sweep", c.Sweep),
				core.FloatParam("start_angle", "Start angle", c.StartAngle),
				core.FloatParam("bias", "Bias", c.Bias),
				core.FloatParam("stretch_x", "Stretch X", c.StretchX),
				core.FloatParam("stretch_y", "Stretch Y", c.StretchY),
				core.BoolParam("rungs", "Rungs", c.Rungs),
			},
		},
		{
			Name: "Noise",
			Params: []core.Parameter{
				core.FloatParam("frequency", "Frequency", c.Frequency),
				core.FloatParam("amplitude", "Amplitude", c.Amplitude),
				core.FloatParam("depth", "Depth per unit", c.Depth),
			},
		},
	}}
}

// plate returns the outline of the plate whose axis sits at height y.
func (t *Tube) plate(env core.Env, midX, y float64) geom.Polyline {
	c := t.cfg
	pts := make(geom.Polyline, c.Segments+1)
	for k := range pts {
		a := c.StartAngle + c.Sweep*float64(k)/float64(c.Segments)
		ux := c.StretchX * math.Sin(a)
		uy := c.StretchY * math.Cos(a)
		d := c.Bias + env.Noise.Sample3D(ux, uy, y*c.Depth, c.Frequency, c.Amplitude)
		pts[k] = geom.Pt(midX+ux*d, y+uy*d)
	}
	return pts
}

// Generate draws one path per plate from the top margin to the bottom
// margin. Every plate but the last also carries the rungs to the next.
func (t *Tube) Generate(env core.Env, out *geom.LayerSet) error {
	box := env.Canvas.Box()
	n := pcore.Span(box.Min.Y, box.Max.Y, t.cfg.PlateGap)
	// Rungs add a move and a line per plate vertex.
	if float64(n)*float64(t.cfg.Segments+1)*3 > maxVertices {
		return &pcore.ParamError{Name: "plate_gap", Value: t.cfg.PlateGap, Reason: "too small for the page height"}
	}
	midX := env.Canvas.Mid().X

	plates := make([]geom.Polyline, n)
	for i := range plates {
		plates[i] = t.plate(env, midX, box.Min.Y+float64(i)*t.cfg.PlateGap)
	}
	for i, pl := range plates {
		p := pl.Path()
		if t.cfg.Rungs && i+1 < len(plates) {
			next := plates[i+1]
			for k, pt := range pl {
				p.MoveTo(pt).LineTo(next[k])
			}
		}
		if err := out.Append(0, p); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	core.Register("tube", func(m map[string]string) (core.Sketch, error) {
		cfg, err := FromMap(m)
		if err != nil {
			return nil, err
		}
		return New(cfg), nil
	})
}
