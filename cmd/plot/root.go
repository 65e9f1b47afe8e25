package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"penplot/internal/core"
	_ "penplot/internal/sketches"
)

// options are the flags shared by every command.
type options struct {
	file     string
	logLevel string
	flags    core.Document

	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:   "plot",
		Short: "Generate pen-plotter drawings",
		Long: `Generate layered pen-plotter geometry from seeded sketches.

A run is described by a document: the sketch, the seed, the page and any
parameter overrides. Documents can be loaded from YAML with --file and
adjusted with flags; flags win.

Examples:
  plot list
  plot params spiro
  plot generate --sketch eclipse --seed 297592
  plot generate --sketch spiro --set mode=tube --png tube.png
  plot sweep --sketch flowfield --from 1000 --count 200 --top 10
  plot watch --file drawing.yaml`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var level slog.Level
			if err := level.UnmarshalText([]byte(o.logLevel)); err != nil {
				return fmt.Errorf("--log-level: %w", err)
			}
			o.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			return nil
		},
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&o.file, "file", "f", "", "YAML document to load")
	pf.StringVar(&o.logLevel, "log-level", "warn", "debug, info, warn or error")
	o.flags.Bind(pf)

	root.AddCommand(
		newListCmd(),
		newParamsCmd(o),
		newGenerateCmd(o),
		newSweepCmd(o),
		newWatchCmd(o),
	)
	return root
}

// document loads --file, if given, and layers the flags over it.
func (o *options) document() (core.Document, error) {
	var base core.Document
	if o.file != "" {
		doc, err := core.LoadDocument(o.file)
		if err != nil {
			return core.Document{}, err
		}
		base = doc
	}
	doc, err := o.flags.Merge(base)
	if err != nil {
		return core.Document{}, err
	}
	if doc.Sketch == "" {
		return core.Document{}, fmt.Errorf("no sketch given, want --sketch or a document with one (see plot list)")
	}
	return doc, nil
}
