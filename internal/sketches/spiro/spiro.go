// Package spiro draws rings along harmonograph figures. The figure's
// rotators are drawn from the seed; each pen draws the same figure with a
// few rotators nudged outward, so the pens separate into bands.
package spiro

import (
	"math"
	"strconv"

	"penplot/internal/core"
	pcore "penplot/pkg/core"
	"penplot/pkg/geom"
	"penplot/pkg/harmonic"
)

// Spiro is the spiro sketch.
type Spiro struct {
	cfg Config
}

// New returns the sketch for cfg.
func New(cfg Config) *Spiro { return &Spiro{cfg: cfg} }

func (s *Spiro) Name() string { return "spiro" }

func (s *Spiro) Summary() string {
	return "rings or triangles along a seeded harmonograph, one band per pen"
}

func (s *Spiro) Canvas() core.Canvas {
	return core.Canvas{Preset: "arch-a", Orientation: "landscape", Units: "in", Margin: 0.25}
}

func (s *Spiro) Layers() []string {
	names := make([]string, 0, s.cfg.Colors+1)
	for i := 0; i < s.cfg.Colors; i++ {
		names = append(names, "pen-"+strconv.Itoa(i+1))
	}
	if s.cfg.Curtain {
		names = append(names, "curtain")
	}
	return names
}

// Figure is the seeded part of a drawing.
type Figure struct {
	Rotators []harmonic.Rotator
	Ring     harmonic.Ring
	// TubeLimit is the largest ring radius in tube mode.
	TubeLimit float64
}

// Figure draws the rotators from rng. Ring mode draws the ring
// modulation first, then a size and rate per rotator with widening
// spreads; tube mode draws the radius limit, then rotators with absolute
// gaussian sizes.
func (s *Spiro) Figure(rng *pcore.RNG) Figure {
	c := s.cfg
	rots := []harmonic.Rotator{{Amplitude: c.BaseSize, Rate: 1}}
	if c.Mode == "tube" {
		fig := Figure{TubeLimit: math.Abs(rng.Gaussian(0.6, 0.5))}
		for i := 1; i < c.Rotators; i++ {
			rots = append(rots, harmonic.Rotator{
				Amplitude: math.Abs(rng.Gaussian(1, 0.6)),
				Rate:      float64(rng.RangeFloor(3, 20)),
			})
		}
		fig.Rotators = rots
		return fig
	}

	fig := Figure{Ring: harmonic.Ring{Coef: rng.Range(0.1, 0.4)}}
	fig.Ring.Rate = float64(rng.RangeFloor(1, 12))
	fig.Ring.Bias = rng.Range(0.01, 0.5)
	for i := 1; i < c.Rotators; i++ {
		std := min(0.5+0.2*float64(i-1), 0.9)
		maxRate := 7
		if i >= 3 {
			maxRate = 12
		}
		amp := rng.Gaussian(0.1, std)
		rots = append(rots, harmonic.Rotator{Amplitude: amp, Rate: float64(rng.RangeFloor(1, maxRate))})
	}
	fig.Rotators = rots
	return fig
}

func (s *Spiro) samples(env core.Env, fig Figure, pen int) ([]harmonic.Sample, error) {
	c := s.cfg
	rots := harmonic.Nudge(fig.Rotators, c.NudgeFrom, float64(pen)*c.Nudge)
	if c.Mode == "tube" {
		samples, err := harmonic.Generate(c.Steps, rots, nil)
		if err != nil {
			return nil, err
		}
		samples = harmonic.Open(samples)
		harmonic.Tube(samples, harmonic.Reach(rots), fig.TubeLimit)
		return samples, nil
	}
	radius := fig.Ring.Radius
	if c.NoiseAmp > 0 {
		radius = harmonic.NoiseRadius(env.Noise, c.NoiseFreq, c.NoiseAmp, radius)
	}
	return harmonic.Generate(c.Steps, rots, radius)
}

func (s *Spiro) glyph(at geom.Point, r float64) geom.Path {
	if s.cfg.Glyph == "triangle" {
		var p geom.Path
		return *p.Polygon(
			at.Toward(2*math.Pi/1.5, r),
			at.Toward(2*math.Pi/3, r),
			at.Toward(2*math.Pi, r),
		)
	}
	return geom.CirclePath(at, r)
}

// Generate draws every pen's band, then the curtain if enabled.
func (s *Spiro) Generate(env core.Env, out *geom.LayerSet) error {
	fig := s.Figure(env.RNG)
	origin := geom.Pt(env.Canvas.Width/2, env.Canvas.Height*s.cfg.CenterY)
	for pen := 0; pen < s.cfg.Colors; pen++ {
		samples, err := s.samples(env, fig, pen)
		if err != nil {
			return err
		}
		for _, sm := range samples {
			if err := out.Append(pen, s.glyph(origin.Add(geom.Pt(sm.X, sm.Y)), sm.R)); err != nil {
				return err
			}
		}
	}
	if s.cfg.Curtain {
		return s.curtain(env.Canvas, out)
	}
	return nil
}

// maxCurtainLines bounds the curtain's rule pairs.
const maxCurtainLines = 1 << 18

// curtain draws vertical rules rising from the bottom edge, mirrored about
// the centre, whose heights grow with the cube of their distance from the
// page edge.
func (s *Spiro) curtain(canvas core.Canvas, out *geom.LayerSet) error {
	layer := s.cfg.Colors
	w, h := canvas.Width, canvas.Height
	lines := (w / 2) / s.cfg.CurtainGap
	if lines > maxCurtainLines {
		return &pcore.ParamError{Name: "curtain_gap", Value: s.cfg.CurtainGap, Reason: "too small for the page width"}
	}
	top := lines * lines * lines
	for i := 0; float64(i) < lines; i++ {
		x1 := float64(i) * s.cfg.CurtainGap
		x2 := w - x1
		y := h - pcore.MapRange(math.Pow(float64(i), 3), 0, top, 0, h-canvas.Margin)
		var p geom.Path
		p.MoveTo(geom.Pt(x1, h)).LineTo(geom.Pt(x1, y)).
			MoveTo(geom.Pt(x2, h)).LineTo(geom.Pt(x2, y))
		if err := out.Append(layer, p); err != nil {
			return err
		}
	}
	return out.Append(layer, geom.Segment(geom.Pt(w/2, 0), geom.Pt(w/2, h)))
}

func init() {
	core.Register("spiro", func(m map[string]string) (core.Sketch, error) {
		cfg, err := FromMap(m)
		if err != nil {
			return nil, err
		}
		return New(cfg), nil
	})
}
