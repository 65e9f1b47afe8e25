// Package flow traces drift lines: points advected step by step along a
// heading read from a noise field.
package flow

import (
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"penplot/pkg/core"
	"penplot/pkg/geom"
)

// Sampler is the part of a noise field the tracer reads.
type Sampler interface {
	Sample2D(x, y, frequency, amplitude float64) float64
	Sample3D(x, y, z, frequency, amplitude float64) float64
}

// Options controls a trace.
type Options struct {
	Steps          int
	StepLength     float64
	Frequency      float64
	PhaseAmplitude float64

	// Use3D reads the phase from the 3D lattice at depth Z, so several
	// layers can drift coherently but not identically.
	Use3D bool
	Z     float64

	// Workers splits the seeds across goroutines when > 1. Output order
	// is always seed order.
	Workers int
}

func (o Options) validate() error {
	return core.FirstError(
		core.AtLeast("steps", o.Steps, 0),
		core.Finite("step_length", o.StepLength),
		core.Finite("frequency", o.Frequency),
		core.Finite("phase_amplitude", o.PhaseAmplitude),
		core.Finite("z", o.Z),
		core.AtLeast("workers", o.Workers, 0),
	)
}

// Trace returns one polyline of exactly Steps+1 points per seed. At each
// step the heading is φ = noise(x, y[, z]) scaled by PhaseAmplitude and the
// point advances by (StepLength·cos φ, StepLength·sin φ).
func Trace(seeds []geom.Point, field Sampler, opts Options) ([]geom.Polyline, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	for i, s := range seeds {
		if err := core.FirstError(
			core.Finite(fmt.Sprintf("seeds[%d].x", i), s.X),
			core.Finite(fmt.Sprintf("seeds[%d].y", i), s.Y),
		); err != nil {
			return nil, err
		}
	}

	n := len(seeds)
	width := opts.Steps + 1
	// One backing array keeps the per-step loop free of allocations.
	backing := make([]geom.Point, n*width)
	lines := make([]geom.Polyline, n)
	for i := range lines {
		lines[i] = backing[i*width : (i+1)*width : (i+1)*width]
	}

	if opts.Workers <= 1 || n < 2 {
		for i, s := range seeds {
			trace(lines[i], s, field, opts)
		}
		return lines, nil
	}

	chunk := (n + opts.Workers - 1) / opts.Workers
	var g errgroup.Group
	g.SetLimit(opts.Workers)
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				trace(lines[i], seeds[i], field, opts)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return lines, nil
}

func trace(dst geom.Polyline, p geom.Point, field Sampler, opts Options) {
	dst[0] = p
	for n := 1; n < len(dst); n++ {
		var phi float64
		if opts.Use3D {
			phi = field.Sample3D(p.X, p.Y, opts.Z, opts.Frequency, opts.PhaseAmplitude)
		} else {
			phi = field.Sample2D(p.X, p.Y, opts.Frequency, opts.PhaseAmplitude)
		}
		s, c := math.Sincos(phi)
		p = geom.Point{X: p.X + opts.StepLength*c, Y: p.Y + opts.StepLength*s}
		dst[n] = p
	}
}
