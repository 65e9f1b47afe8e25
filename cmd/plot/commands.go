package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"penplot/internal/core"
	"penplot/internal/watch"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available sketches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, name := range core.Names() {
				sk, err := core.New(name, nil)
				if err != nil {
					return err
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", name, sk.Summary(), layerList(sk.Layers()))
			}
			return tw.Flush()
		},
	}
}

func newParamsCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "params [sketch]",
		Short: "Show a sketch's parameters and their current values",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				o.flags.Sketch = args[0]
			}
			doc, err := o.document()
			if err != nil {
				return err
			}
			sk, err := core.New(doc.Sketch, doc.Params)
			if err != nil {
				return err
			}
			writeParams(cmd.OutOrStdout(), sk)
			return nil
		},
	}
}

func newGenerateCmd(o *options) *cobra.Command {
	var (
		format string
		png    string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a drawing and report it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := o.document()
			if err != nil {
				return err
			}
			res, err := core.Run(cmd.Context(), doc, o.logger)
			if err != nil {
				return err
			}
			if err := writeResult(cmd.OutOrStdout(), res, format); err != nil {
				return err
			}
			if png != "" {
				return writePNG(png, res)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "summary", "output format: summary or yaml")
	cmd.Flags().StringVar(&png, "png", "", "also write a preview image to this file")
	return cmd
}

func newSweepCmd(o *options) *cobra.Command {
	var (
		from    int64
		count   int
		workers int
		top     int
	)
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Generate many seeds and rank them by how much lands on the page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := o.document()
			if err != nil {
				return err
			}
			start := time.Now()
			ranked, err := core.Sweep(cmd.Context(), doc, core.SeedRange(from, count), workers, o.logger)
			if err != nil {
				return err
			}
			o.logger.Info("sweep done", "sketch", doc.Sketch, "seeds", count, "elapsed", time.Since(start))
			if top > 0 && top < len(ranked) {
				ranked = ranked[:top]
			}
			return writeCandidates(cmd.OutOrStdout(), ranked)
		},
	}
	cmd.Flags().Int64Var(&from, "from", 1, "first seed")
	cmd.Flags().IntVar(&count, "count", 100, "number of consecutive seeds")
	cmd.Flags().IntVar(&workers, "workers", 4, "seeds generated in parallel")
	cmd.Flags().IntVar(&top, "top", 20, "rows to print; 0 prints all")
	return cmd
}

func newWatchCmd(o *options) *cobra.Command {
	var debounce time.Duration
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate whenever the --file document changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if o.file == "" {
				return errors.New("watch needs --file")
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			w, err := watch.New(o.file, debounce, o.logger)
			if err != nil {
				return err
			}
			regenerate := func() {
				if err := generateOnce(ctx, cmd, o); err != nil {
					o.logger.Error("regenerate", "file", o.file, "err", err)
				}
			}
			regenerate()
			return w.Run(ctx, regenerate)
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "quiet period before regenerating")
	return cmd
}

func generateOnce(ctx context.Context, cmd *cobra.Command, o *options) error {
	doc, err := o.document()
	if err != nil {
		return err
	}
	res, err := core.Run(ctx, doc, o.logger)
	if err != nil {
		return err
	}
	return writeResult(cmd.OutOrStdout(), res, "summary")
}
