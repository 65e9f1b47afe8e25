// Package slices stacks closed contours into a squashed sphere, each
// contour's radius pushed in and out by 3D noise.
package slices

import (
	"math"

	"penplot/internal/core"
	"penplot/pkg/geom"
)

// Config holds the shape and noise constants.
type Config struct {
	Height    float64 `key:"height" validate:"gt=0"`
	Slices    int     `key:"slices" validate:"gte=1,lte=10000"`
	Points    int     `key:"points" validate:"gte=3,lte=100000"`
	Amplitude float64 `key:"amplitude"`
	Frequency float64 `key:"frequency"`
	Tilt      float64 `key:"tilt"`
	Depth     float64 `key:"depth"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Height:    1.5,
		Slices:    10,
		Points:    100,
		Amplitude: 0.035,
		Frequency: 2,
		Tilt:      0.5,
		Depth:     0.1,
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(m map[string]string) (Config, error) {
	c := DefaultConfig()
	v := core.NewValues(m)
	v.Float("height", &c.Height)
	v.Int("slices", &c.Slices)
	v.Int("points", &c.Points)
	v.Float("amplitude", &c.Amplitude)
	v.Float("frequency", &c.Frequency)
	v.Float("tilt", &c.Tilt)
	v.Float("depth", &c.Depth)
	if err := v.Err(); err != nil {
		return c, err
	}
	return c, core.Validate(c)
}

// Stack is the slices sketch.
type Stack struct {
	cfg Config
}

// New returns the sketch for cfg.
func New(cfg Config) *Stack { return &Stack{cfg: cfg} }

func (s *Stack) Name() string    { return "slices" }
func (s *Stack) Summary() string { return "stacked noise-deformed closed contours" }

func (s *Stack) Canvas() core.Canvas {
	return core.Canvas{Width: 2.5, Height: 3.75, Units: "in", Margin: 0.25}
}

func (s *Stack) Layers() []string { return []string{"slices"} }

func (s *Stack) Parameters() core.ParameterSnapshot {
	c := s.cfg
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{{
		Name: "Shape",
		Params: []core.Parameter{
			core.FloatParam("height", "Height", c.Height),
			core.IntParam("slices", "Slices", c.Slices),
			core.IntParam("points", "Points per slice", c.Points),
			core.FloatParam("amplitude", "Noise amplitude", c.Amplitude),
			core.FloatParam("frequency", "Noise frequency", c.Frequency),
			core.FloatParam("tilt", "Tilt", c.Tilt),
			core.FloatParam("depth", "Noise depth per slice", c.Depth),
		},
	}}}
}

func (s *Stack) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "slices", Label: "Slices", Type: core.ParamTypeInt, Step: 1, Min: 1, HasMin: true},
		{Key: "amplitude", Label: "Noise amplitude", Type: core.ParamTypeFloat, Step: 0.005, Min: 0, HasMin: true},
		{Key: "tilt", Label: "Tilt", Type: core.ParamTypeFloat, Step: 0.05},
	}
}

// Generate draws the contours top to bottom. Slice i has radius
// R·sin(iπ/n), so the first is a point and the widest sits in the middle.
func (s *Stack) Generate(env core.Env, out *geom.LayerSet) error {
	c := s.cfg
	mid := env.Canvas.Mid()
	radius := c.Height / 2
	gap := c.Height / float64(c.Slices)
	for i := 0; i < c.Slices; i++ {
		r := radius * math.Sin(float64(i)*math.Pi/float64(c.Slices))
		centre := geom.Pt(mid.X, mid.Y+float64(i)*gap-radius)
		pts := make([]geom.Point, c.Points)
		for p := range pts {
			sin, cos := math.Sincos(2 * math.Pi * float64(p) / float64(c.Points))
			pr := r + env.Noise.Sample3D(1+cos, 1+sin, float64(i)*c.Depth, c.Frequency, c.Amplitude)
			pts[p] = geom.Pt(centre.X+pr*cos, centre.Y+pr*sin*c.Tilt)
		}
		var path geom.Path
		if err := out.Append(0, *path.Polygon(pts...)); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	core.Register("slices", func(m map[string]string) (core.Sketch, error) {
		cfg, err := FromMap(m)
		if err != nil {
			return nil, err
		}
		return New(cfg), nil
	})
}
