package core

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	pcore "penplot/pkg/core"
	"penplot/pkg/geom"
)

// Canvas is the drawing page. Width, Height and Margin are in Units;
// geometry is produced in the same units and never converted.
type Canvas struct {
	Preset      string  `yaml:"preset,omitempty"`
	Orientation string  `yaml:"orientation,omitempty" validate:"omitempty,oneof=portrait landscape"`
	Width       float64 `yaml:"width,omitempty" validate:"gt=0"`
	Height      float64 `yaml:"height,omitempty" validate:"gt=0"`
	Units       string  `yaml:"units,omitempty" validate:"oneof=in cm mm"`
	Margin      float64 `yaml:"margin,omitempty" validate:"gte=0"`
}

// Mid is the page centre.
func (c Canvas) Mid() geom.Point { return geom.Pt(c.Width/2, c.Height/2) }

// Box is the page inset by the margin.
func (c Canvas) Box() geom.Rect {
	return geom.Rect{Max: geom.Pt(c.Width, c.Height)}.Inset(c.Margin)
}

// Mark is where the registration mark of every layer goes.
func (c Canvas) Mark() geom.Point { return geom.Pt(c.Margin, c.Margin) }

type paper struct {
	w, h  float64
	units string
}

// Paper sizes, portrait.
var presets = map[string]paper{
	"letter": {8.5, 11, "in"},
	"arch-a": {9, 12, "in"},
	"8r":     {8, 10, "in"},
	"a4":     {210, 297, "mm"},
	"a3":     {297, 420, "mm"},
}

var perInch = map[string]float64{"in": 1, "cm": 2.54, "mm": 25.4}

// Presets lists the known paper names.
func Presets() []string {
	out := make([]string, 0, len(presets))
	for name := range presets {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Resolve fills the canvas from its preset and orientation, in c.Units.
// Explicit Width and Height win over the preset.
func (c Canvas) Resolve() (Canvas, error) {
	if c.Units == "" {
		c.Units = "in"
	}
	if c.Preset != "" {
		p, ok := presets[strings.ToLower(c.Preset)]
		if !ok {
			return c, &pcore.ParamError{Name: "canvas.preset", Value: c.Preset, Reason: "unknown paper, want one of " + strings.Join(Presets(), ", ")}
		}
		to, ok := perInch[c.Units]
		if !ok {
			return c, &pcore.ParamError{Name: "canvas.units", Value: c.Units, Reason: "must be one of: in cm mm"}
		}
		scale := to / perInch[p.units]
		w, h := p.w*scale, p.h*scale
		if c.Orientation == "landscape" {
			w, h = h, w
		}
		if c.Width == 0 {
			c.Width = w
		}
		if c.Height == 0 {
			c.Height = h
		}
	}
	if err := Validate(c); err != nil {
		return c, err
	}
	if 2*c.Margin >= min(c.Width, c.Height) {
		return c, &pcore.ParamError{Name: "canvas.margin", Value: c.Margin, Reason: "leaves no drawable area"}
	}
	return c, nil
}

// Over layers the non-zero fields of c over base. Choosing a preset, or
// changing the orientation or units of a preset page, discards the base's
// resolved size so the preset is sized again.
func (c Canvas) Over(base Canvas) Canvas {
	if c.Preset != "" {
		base.Preset = c.Preset
		base.Width, base.Height = 0, 0
	}
	if c.Orientation != "" && c.Orientation != base.Orientation {
		base.Orientation = c.Orientation
		if base.Preset != "" {
			base.Width, base.Height = 0, 0
		}
	}
	if c.Units != "" && c.Units != base.Units {
		base.Units = c.Units
		if base.Preset != "" {
			base.Width, base.Height = 0, 0
		}
	}
	if c.Width != 0 {
		base.Width = c.Width
	}
	if c.Height != 0 {
		base.Height = c.Height
	}
	if c.Margin != 0 {
		base.Margin = c.Margin
	}
	return base
}

// Document is one run request: which sketch, which seed, which page and
// which parameter overrides.
type Document struct {
	Sketch string            `yaml:"sketch"`
	Seed   string            `yaml:"seed,omitempty"`
	Canvas Canvas            `yaml:"canvas,omitempty"`
	Params map[string]string `yaml:"params,omitempty"`

	sets []string
}

// ParseDocument decodes YAML. Unknown fields are errors.
func ParseDocument(data []byte) (Document, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return Document{}, fmt.Errorf("parse document: %w", err)
	}
	return doc, nil
}

// LoadDocument reads and decodes a YAML document.
func LoadDocument(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read document: %w", err)
	}
	doc, err := ParseDocument(data)
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Marshal encodes the document as YAML.
func (d Document) Marshal() ([]byte, error) {
	return yaml.Marshal(d)
}

// Bind registers the document's flags on fs. Flags left at their zero
// value do not override a loaded document; call Merge after parsing.
func (d *Document) Bind(fs *pflag.FlagSet) {
	fs.StringVar(&d.Sketch, "sketch", d.Sketch, "sketch to run")
	fs.StringVar(&d.Seed, "seed", d.Seed, "seed (integer or any string); empty picks one at random")
	fs.StringVar(&d.Canvas.Preset, "paper", d.Canvas.Preset, "paper preset: "+strings.Join(Presets(), ", "))
	fs.StringVar(&d.Canvas.Orientation, "orientation", d.Canvas.Orientation, "portrait or landscape")
	fs.Float64Var(&d.Canvas.Width, "width", d.Canvas.Width, "page width in units")
	fs.Float64Var(&d.Canvas.Height, "height", d.Canvas.Height, "page height in units")
	fs.StringVar(&d.Canvas.Units, "units", d.Canvas.Units, "in, cm or mm")
	fs.Float64Var(&d.Canvas.Margin, "margin", d.Canvas.Margin, "margin in units")
	fs.StringArrayVar(&d.sets, "set", nil, "parameter override in key=value form (repeatable)")
}

// Merge returns base with every field set in d layered on top, then the
// --set overrides applied.
func (d Document) Merge(base Document) (Document, error) {
	out := base
	if d.Sketch != "" {
		out.Sketch = d.Sketch
	}
	if d.Seed != "" {
		out.Seed = d.Seed
	}
	out.Canvas = d.Canvas.Over(base.Canvas)
	out.Params = make(map[string]string, len(base.Params)+len(d.Params))
	for k, v := range base.Params {
		out.Params[k] = v
	}
	for k, v := range d.Params {
		out.Params[k] = v
	}
	if err := out.Set(d.sets...); err != nil {
		return base, err
	}
	return out, nil
}

// Set applies key=value overrides to Params.
func (d *Document) Set(kvs ...string) error {
	for _, kv := range kvs {
		key, value, ok := strings.Cut(kv, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return &pcore.ParamError{Name: "set", Value: kv, Reason: "want key=value"}
		}
		if d.Params == nil {
			d.Params = map[string]string{}
		}
		d.Params[key] = value
	}
	return nil
}

// ResolveSeed returns the document's seed, drawing a random one if empty.
// The second result reports whether the seed was drawn.
func (d Document) ResolveSeed() (pcore.Seed, bool) {
	if s := strings.TrimSpace(d.Seed); s != "" {
		return pcore.Seed(s), false
	}
	return pcore.RandomSeed(), true
}
