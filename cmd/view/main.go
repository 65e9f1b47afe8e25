//go:build ebiten

package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/pflag"

	"penplot/internal/app"
	"penplot/internal/core"
	"penplot/internal/render"
	_ "penplot/internal/sketches"
	"penplot/internal/watch"
)

func main() {
	var (
		doc      core.Document
		file     string
		tps      int
		perTick  int
		hudWidth int
		scale    float64
		verbose  bool
	)
	fs := pflag.NewFlagSet("view", pflag.ExitOnError)
	doc.Bind(fs)
	fs.StringVarP(&file, "file", "f", "", "YAML document to load and watch")
	fs.IntVar(&tps, "tps", 60, "playback ticks per second")
	fs.IntVar(&perTick, "paths-per-tick", 4, "paths revealed per tick")
	fs.IntVar(&hudWidth, "hud", 260, "parameter panel width in pixels, 0 hides it")
	fs.Float64Var(&scale, "scale", 0, "pixels per canvas unit, 0 for 96 dpi")
	fs.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	_ = fs.Parse(os.Args[1:])

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	load := func() (core.Document, error) {
		var base core.Document
		if file != "" {
			d, err := core.LoadDocument(file)
			if err != nil {
				return core.Document{}, err
			}
			base = d
		}
		return doc.Merge(base)
	}
	initial, err := load()
	if err != nil {
		logger.Error("document", "err", err)
		os.Exit(2)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	session, err := app.NewSession(ctx, initial, core.NewPlayback(0, tps, perTick), nil, logger)
	if err != nil {
		logger.Error("generate", "err", err)
		os.Exit(2)
	}
	logger.Info("seed", "sketch", session.Document().Sketch, "seed", session.Document().Seed)

	if file != "" {
		w, err := watch.New(file, 0, logger)
		if err != nil {
			logger.Error("watch", "err", err)
			os.Exit(2)
		}
		go func() {
			err := w.Run(ctx, func() {
				d, err := load()
				if err != nil {
					logger.Error("reload", "err", err)
					return
				}
				session.Queue(d)
			})
			if err != nil {
				logger.Error("watch", "err", err)
			}
		}()
	}

	style := render.DefaultStyle(session.Result().Canvas.Units)
	if scale > 0 {
		style.Scale = scale
		style.Tolerance = 0.5 / scale
	}
	game := app.New(session, style, hudWidth, logger)
	w, h := game.Size()

	ebiten.SetWindowTitle("penplot: " + session.Document().Sketch)
	ebiten.SetTPS(tps)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Error("viewer", "err", err)
		os.Exit(1)
	}
}
