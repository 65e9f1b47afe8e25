package core

import (
	"context"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	pcore "penplot/pkg/core"
	"penplot/pkg/geom"
)

// Candidate is one seed's sweep outcome.
type Candidate struct {
	Seed     pcore.Seed
	Coverage float64
	Paths    int
}

// Sweep generates the document's sketch once per seed, at most workers at a
// time, and ranks the seeds by Coverage, best first. Ties keep seed order.
func Sweep(ctx context.Context, doc Document, seeds []pcore.Seed, workers int, logger *slog.Logger) ([]Candidate, error) {
	if err := pcore.AtLeast("workers", workers, 1); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	sk, err := New(doc.Sketch, doc.Params)
	if err != nil {
		return nil, err
	}
	canvas, err := doc.Canvas.Over(sk.Canvas()).Resolve()
	if err != nil {
		return nil, err
	}

	out := make([]Candidate, len(seeds))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, seed := range seeds {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := Generate(sk, seed, canvas)
			if err != nil {
				return err
			}
			var paths int
			for _, n := range res.Counts() {
				paths += n
			}
			out[i] = Candidate{Seed: seed, Coverage: Coverage(res, geom.DefaultTolerance), Paths: paths}
			logger.Debug("swept", slog.String("seed", seed.String()), slog.Float64("coverage", out[i].Coverage))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Coverage > out[b].Coverage })
	return out, nil
}

// SeedRange returns count consecutive integer seeds starting at first.
func SeedRange(first int64, count int) []pcore.Seed {
	out := make([]pcore.Seed, 0, max(count, 0))
	for i := 0; i < count; i++ {
		out = append(out, pcore.SeedFromInt(first+int64(i)))
	}
	return out
}
