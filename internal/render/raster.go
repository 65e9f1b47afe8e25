// Package render strokes generated layers into images for preview.
package render

import (
	"image"
	"image/color"
	"math"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"

	"penplot/internal/core"
	"penplot/pkg/geom"
)

// Style sets how canvas units become pixels.
type Style struct {
	// Scale is pixels per canvas unit.
	Scale float64
	// PenWidth is the stroke width in canvas units.
	PenWidth float64
	// Tolerance is the arc flattening tolerance in canvas units.
	Tolerance  float64
	Background color.RGBA
	Pens       []color.RGBA
}

// DefaultStyle is a white sheet at 96 pixels per inch with a 0.4mm pen
// per layer, for a canvas measured in units.
func DefaultStyle(units string) Style {
	perInch := 1.0
	switch units {
	case "cm":
		perInch = 2.54
	case "mm":
		perInch = 25.4
	}
	scale := 96 / perInch
	return Style{
		Scale:      scale,
		PenWidth:   0.4 / 25.4 * perInch,
		Tolerance:  0.5 / scale,
		Background: color.RGBA{0xff, 0xff, 0xff, 0xff},
		Pens: []color.RGBA{
			{0x1b, 0x1b, 0x1b, 0xff},
			{0xd6, 0x2d, 0x20, 0xff},
			{0x1f, 0x5f, 0xbf, 0xff},
			{0x2a, 0x8c, 0x4a, 0xff},
			{0xe0, 0x9a, 0x1b, 0xff},
			{0x7b, 0x3f, 0xa8, 0xff},
			{0x16, 0x9c, 0xa0, 0xff},
			{0xc2, 0x3b, 0x8a, 0xff},
			{0x6b, 0x6b, 0x6b, 0xff},
		},
	}
}

// Size is the pixel size of canvas c.
func (s Style) Size(c core.Canvas) (int, int) {
	return max(1, int(math.Ceil(c.Width*s.Scale))), max(1, int(math.Ceil(c.Height*s.Scale)))
}

// View selects what part of a result is drawn.
type View struct {
	// Hidden skips layers by index.
	Hidden []bool
	// Limit caps the number of paths drawn, counted in plot order across
	// all layers. Negative draws everything.
	Limit int
}

// All draws every path of every layer.
var All = View{Limit: -1}

func (v View) hidden(i int) bool { return i < len(v.Hidden) && v.Hidden[i] }

// Rasterize draws r into a new image sized for its canvas.
func (s Style) Rasterize(r core.Result, v View) *image.RGBA {
	w, h := s.Size(r.Canvas)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	s.Draw(img, r.Layers, v)
	return img
}

// Draw clears img to the background and strokes the visible paths of
// layers over it, one pen colour per layer.
func (s Style) Draw(img *image.RGBA, layers []geom.Layer, v View) {
	fillRGBA(img.Pix, s.Background)
	b := img.Bounds()
	scanner := rasterx.NewScannerGV(b.Dx(), b.Dy(), img, b)
	dasher := rasterx.NewDasher(b.Dx(), b.Dy(), scanner)
	width := fixed.Int26_6(math.Max(s.PenWidth*s.Scale, 1) * 64)
	dasher.SetStroke(width, 0, rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.Round, nil, 0)

	drawn := 0
	for i, l := range layers {
		for _, p := range l.Paths {
			if v.Limit >= 0 && drawn >= v.Limit {
				return
			}
			drawn++
			if v.hidden(i) {
				continue
			}
			for _, pl := range geom.Flatten(p, s.Tolerance) {
				s.stroke(dasher, pl)
			}
			dasher.SetColor(penColor(s.Pens, i))
			dasher.Draw()
			dasher.Clear()
		}
	}
}

func (s Style) stroke(d *rasterx.Dasher, pl geom.Polyline) {
	if len(pl) < 2 || pl.Length() == 0 {
		return
	}
	d.Start(s.fixed(pl[0]))
	for _, pt := range pl[1:] {
		d.Line(s.fixed(pt))
	}
	closed := len(pl) > 2 && pl[0] == pl[len(pl)-1]
	d.Stop(closed)
}

func (s Style) fixed(p geom.Point) fixed.Point26_6 {
	return fixed.Point26_6{
		X: fixed.Int26_6(p.X * s.Scale * 64),
		Y: fixed.Int26_6(p.Y * s.Scale * 64),
	}
}
