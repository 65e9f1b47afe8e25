package main

import (
	"fmt"
	"image/png"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"penplot/internal/core"
	"penplot/internal/render"
	"penplot/pkg/geom"
)

func layerList(names []string) string { return strings.Join(names, ",") }

func writeParams(w io.Writer, sk core.Sketch) {
	fmt.Fprintf(w, "%s: %s\n", sk.Name(), sk.Summary())
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, g := range sk.Parameters().Groups {
		fmt.Fprintf(tw, "\n%s\n", g.Name)
		for _, p := range g.Params {
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", p.Key, p.Value, p.Type, p.Label)
		}
	}
	tw.Flush()
}

type layerDump struct {
	Name  string   `yaml:"name"`
	Paths []string `yaml:"paths"`
}

type resultDump struct {
	Sketch string            `yaml:"sketch"`
	Seed   string            `yaml:"seed"`
	Canvas core.Canvas       `yaml:"canvas"`
	Params map[string]string `yaml:"params"`
	Layers []layerDump       `yaml:"layers"`
}

func writeResult(w io.Writer, res core.Result, format string) error {
	switch format {
	case "summary":
		writeSummary(w, res)
		return nil
	case "yaml":
		dump := resultDump{
			Sketch: res.Sketch,
			Seed:   res.Seed.String(),
			Canvas: res.Canvas,
			Params: res.Params.Map(),
		}
		for _, l := range res.Layers {
			ld := layerDump{Name: l.Name, Paths: make([]string, len(l.Paths))}
			for i, p := range l.Paths {
				ld.Paths[i] = p.String()
			}
			dump.Layers = append(dump.Layers, ld)
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(dump); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("--format %q: want summary or yaml", format)
	}
}

func writeSummary(w io.Writer, res core.Result) {
	c := res.Canvas
	fmt.Fprintf(w, "sketch   %s\n", res.Sketch)
	fmt.Fprintf(w, "seed     %s\n", res.Seed)
	fmt.Fprintf(w, "canvas   %gx%g %s, margin %g\n", c.Width, c.Height, c.Units, c.Margin)
	fmt.Fprintf(w, "coverage %.1f%%\n", 100*core.Coverage(res, geom.DefaultTolerance))
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, l := range res.Layers {
		fmt.Fprintf(tw, "  %s\t%d paths\n", l.Name, len(l.Paths))
	}
	tw.Flush()
}

func writeCandidates(w io.Writer, ranked []core.Candidate) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "rank\tseed\tcoverage\tpaths")
	for i, c := range ranked {
		fmt.Fprintf(tw, "%d\t%s\t%.1f%%\t%d\n", i+1, c.Seed, 100*c.Coverage, c.Paths)
	}
	return tw.Flush()
}

func writePNG(path string, res core.Result) error {
	img := render.DefaultStyle(res.Canvas.Units).Rasterize(res, render.All)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
