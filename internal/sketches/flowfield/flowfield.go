// Package flowfield traces drift lines through a noise field, either from
// a lattice covering the page (one offset lattice per pen) or from points
// on a ring.
package flowfield

import (
	"fmt"
	"math"

	"penplot/internal/core"
	pcore "penplot/pkg/core"
	"penplot/pkg/flow"
	"penplot/pkg/geom"
)

// maxVertices bounds the drift-line vertices one run may trace.
const maxVertices = 1 << 21

// Config holds the seed layout and the tracer settings.
type Config struct {
	Mode string `key:"mode" validate:"oneof=lattice ring"`

	Spacing float64 `key:"spacing" validate:"gt=0"`
	Layers  int     `key:"layers" validate:"gte=1,lte=9"`
	Depth   float64 `key:"depth"`

	Points int     `key:"points" validate:"gte=1,lte=100000"`
	Radius float64 `key:"radius" validate:"gt=0"`

	Steps      int     `key:"steps" validate:"gte=0,lte=10000"`
	StepLength float64 `key:"step_length"`
	Frequency  float64 `key:"frequency"`
	Amplitude  float64 `key:"amplitude"`
	Workers    int     `key:"workers" validate:"gte=0,lte=256"`
}

// DefaultConfig returns the lattice drawing: three pens of short drift
// lines, each lattice nudged a third of the spacing from the last.
func DefaultConfig() Config {
	return Config{
		Mode:       "lattice",
		Spacing:    0.15,
		Layers:     3,
		Depth:      0.1,
		Points:     1000,
		Radius:     3,
		Steps:      10,
		StepLength: 0.1,
		Frequency:  0.05,
		Amplitude:  math.Pi,
		Workers:    4,
	}
}

// RingConfig returns the ring drawing: long drift lines leaving a circle.
func RingConfig() Config {
	c := DefaultConfig()
	c.Mode = "ring"
	c.Layers = 1
	c.Steps = 100
	c.StepLength = 0.06
	c.Frequency = 0.15
	return c
}

// FromMap populates the config from a string map (flag-style key/value
// pairs). The mode is read first since it picks the defaults.
func FromMap(m map[string]string) (Config, error) {
	c := DefaultConfig()
	if m["mode"] == "ring" {
		c = RingConfig()
	}
	v := core.NewValues(m)
	v.String("mode", &c.Mode)
	v.Float("spacing", &c.Spacing)
	v.Int("layers", &c.Layers)
	v.Float("depth", &c.Depth)
	v.Int("points", &c.Points)
	v.Float("radius", &c.Radius)
	v.Int("steps", &c.Steps)
	v.Float("step_length", &c.StepLength)
	v.Float("frequency", &c.Frequency)
	v.Float("amplitude", &c.Amplitude)
	v.Int("workers", &c.Workers)
	if err := v.Err(); err != nil {
		return c, err
	}
	return c, core.Validate(c)
}

// Field is the flowfield sketch.
type Field struct {
	cfg Config
}

// New returns the sketch for cfg.
func New(cfg Config) *Field { return &Field{cfg: cfg} }

func (f *Field) Name() string    { return "flowfield" }
func (f *Field) Summary() string { return "drift lines traced through a noise field" }

func (f *Field) Canvas() core.Canvas {
	if f.cfg.Mode == "ring" {
		return core.Canvas{Width: 8, Height: 8, Units: "in", Margin: 0.25}
	}
	return core.Canvas{Preset: "a3", Orientation: "landscape", Units: "in", Margin: 0.25}
}

func (f *Field) Layers() []string {
	if f.cfg.Mode == "ring" {
		return []string{"drift", "outline"}
	}
	names := make([]string, f.cfg.Layers)
	for i := range names {
		names[i] = fmt.Sprintf("drift-%d", i)
	}
	return names
}

func (f *Field) Parameters() core.ParameterSnapshot {
	c := f.cfg
	seeds := core.ParameterGroup{Name: "Seeds", Params: []core.Parameter{core.StringParam("mode", "Mode", c.Mode)}}
	if c.Mode == "ring" {
		seeds.Params = append(seeds.Params,
			core.IntParam("points", "Points", c.Points),
			core.FloatParam("radius", "Radius", c.Radius),
		)
	} else {
		seeds.Params = append(seeds.Params,
			core.FloatParam("spacing", "Spacing", c.Spacing),
			core.IntParam("layers", "Layers", c.Layers),
			core.FloatParam("depth", "Noise depth per layer", c.Depth),
		)
	}
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		seeds,
		{
			Name: "Drift",
			Params: []core.Parameter{
				core.IntParam("steps", "Steps", c.Steps),
				core.FloatParam("step_length", "Step length", c.StepLength),
				core.FloatParam("frequency", "Frequency", c.Frequency),
				core.FloatParam("amplitude", "Phase amplitude", c.Amplitude),
				core.IntParam("workers", "Workers", c.Workers),
			},
		},
	}}
}

func (f *Field) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "steps", Label: "Steps", Type: core.ParamTypeInt, Step: 5, Min: 0, HasMin: true},
		{Key: "step_length", Label: "Step length", Type: core.ParamTypeFloat, Step: 0.01, Min: 0, HasMin: true},
		{Key: "frequency", Label: "Frequency", Type: core.ParamTypeFloat, Step: 0.01, Min: 0, HasMin: true},
		{Key: "amplitude", Label: "Phase amplitude", Type: core.ParamTypeFloat, Step: 0.1},
	}
}

func (f *Field) options() flow.Options {
	c := f.cfg
	return flow.Options{
		Steps:          c.Steps,
		StepLength:     c.StepLength,
		Frequency:      c.Frequency,
		PhaseAmplitude: c.Amplitude,
		Workers:        c.Workers,
	}
}

// budget rejects runs whose seeds*(steps+1) vertices exceed maxVertices.
func (f *Field) budget(name string, value any, seeds int) error {
	if float64(seeds)*float64(f.cfg.Steps+1) > maxVertices {
		return &pcore.ParamError{Name: name, Value: value, Reason: fmt.Sprintf("%d seeds at %d steps exceed %d vertices", seeds, f.cfg.Steps, maxVertices)}
	}
	return nil
}

// Generate traces every seed and appends one path per drift line.
func (f *Field) Generate(env core.Env, out *geom.LayerSet) error {
	if f.cfg.Mode == "ring" {
		return f.ring(env, out)
	}
	return f.lattice(env, out)
}

// lattice traces layer l from the lattice offset by l·spacing/layers,
// reading the 3D field at depth l·depth.
func (f *Field) lattice(env core.Env, out *geom.LayerSet) error {
	c := f.cfg
	for l := 0; l < c.Layers; l++ {
		nudge := float64(l) * c.Spacing / float64(c.Layers)
		grid, err := geom.CoverLattice(env.Canvas.Width, env.Canvas.Height, c.Spacing, geom.Pt(nudge, nudge))
		if err != nil {
			return err
		}
		if err := f.budget("spacing", c.Spacing, grid.Len()*c.Layers); err != nil {
			return err
		}
		opts := f.options()
		opts.Use3D = true
		opts.Z = float64(l) * c.Depth
		lines, err := flow.Trace(grid.Points(), env.Noise, opts)
		if err != nil {
			return err
		}
		if err := out.AppendPolylines(l, lines); err != nil {
			return err
		}
	}
	return nil
}

func (f *Field) ring(env core.Env, out *geom.LayerSet) error {
	c := f.cfg
	mid := env.Canvas.Mid()
	if err := f.budget("points", c.Points, c.Points); err != nil {
		return err
	}
	seeds, err := geom.Ring(mid, c.Radius, c.Points)
	if err != nil {
		return err
	}
	lines, err := flow.Trace(seeds, env.Noise, f.options())
	if err != nil {
		return err
	}
	if err := out.AppendPolylines(0, lines); err != nil {
		return err
	}
	return out.Append(1, geom.CirclePath(mid, c.Radius))
}

func init() {
	core.Register("flowfield", func(m map[string]string) (core.Sketch, error) {
		cfg, err := FromMap(m)
		if err != nil {
			return nil, err
		}
		return New(cfg), nil
	})
}
