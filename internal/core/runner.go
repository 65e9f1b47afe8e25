package core

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	pcore "penplot/pkg/core"
	"penplot/pkg/geom"
)

// Result is one generated drawing.
type Result struct {
	Sketch  string
	Seed    pcore.Seed
	Drawn   bool // seed was drawn at random
	Canvas  Canvas
	Params  ParameterSnapshot
	Layers  []geom.Layer
	Elapsed time.Duration
}

// Counts returns the number of paths per layer, registration marks
// included.
func (r Result) Counts() []int {
	out := make([]int, len(r.Layers))
	for i, l := range r.Layers {
		out[i] = len(l.Paths)
	}
	return out
}

// Paths returns the layers' paths in plot order: layer by layer, each in
// insertion order.
func (r Result) Paths() []geom.Path {
	var out []geom.Path
	for _, l := range r.Layers {
		out = append(out, l.Paths...)
	}
	return out
}

// Run builds the document's sketch and generates it. A nil logger
// discards.
func Run(ctx context.Context, doc Document, logger *slog.Logger) (Result, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	sk, err := New(doc.Sketch, doc.Params)
	if err != nil {
		return Result{}, err
	}
	canvas, err := doc.Canvas.Over(sk.Canvas()).Resolve()
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", doc.Sketch, err)
	}
	seed, drawn := doc.ResolveSeed()
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	res, err := Generate(sk, seed, canvas)
	if err != nil {
		return Result{}, err
	}
	res.Drawn = drawn

	logger.Info("generated",
		slog.String("sketch", res.Sketch),
		slog.String("seed", res.Seed.String()),
		slog.Bool("random_seed", drawn),
		slog.Int("layers", len(res.Layers)),
		slog.Any("paths", res.Counts()),
		slog.Duration("elapsed", res.Elapsed),
	)
	for _, l := range res.Layers {
		logger.Debug("layer", slog.String("sketch", res.Sketch), slog.String("layer", l.Name), slog.Int("paths", len(l.Paths)))
	}
	return res, nil
}

// Generate runs sk once. The layers come back finalized, each ending with
// a registration mark at the canvas margin corner.
func Generate(sk Sketch, seed pcore.Seed, canvas Canvas) (Result, error) {
	start := time.Now()
	ls, err := geom.NewNamedLayerSet(sk.Layers()...)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", sk.Name(), err)
	}
	if err := sk.Generate(NewEnv(seed, canvas), ls); err != nil {
		return Result{}, fmt.Errorf("%s (seed %s): %w", sk.Name(), seed, err)
	}
	return Result{
		Sketch:  sk.Name(),
		Seed:    seed,
		Canvas:  canvas,
		Params:  sk.Parameters(),
		Layers:  ls.Finalize(canvas.Mark()),
		Elapsed: time.Since(start),
	}, nil
}

// Coverage is the fraction of flattened path vertices that fall inside
// the canvas margin box. Registration marks are skipped.
func Coverage(r Result, tol float64) float64 {
	box := r.Canvas.Box()
	var inside, total int
	for _, l := range r.Layers {
		paths := l.Paths
		if n := len(paths); n > 0 {
			paths = paths[:n-1]
		}
		for _, p := range paths {
			for _, pl := range geom.Flatten(p, tol) {
				for _, pt := range pl {
					total++
					if box.Contains(pt) {
						inside++
					}
				}
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(inside) / float64(total)
}
