//go:build ebiten

package ui

import (
	"fmt"
	"image/color"

	"penplot/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

var digitKeys = [...]ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
	ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

// Overlay draws the layer legend and plot progress over the page. Keys 1
// to 9 toggle the matching layer.
type Overlay struct {
	Toggles LayerToggles

	pens  []color.RGBA
	pixel *ebiten.Image
}

// NewOverlay constructs an overlay using the pen colours of the page.
func NewOverlay(pens []color.RGBA) *Overlay {
	o := &Overlay{pens: pens}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update handles the layer toggle keys. It reports whether any layer
// changed.
func (o *Overlay) Update() bool {
	changed := false
	for i, k := range digitKeys {
		if inpututil.IsKeyJustPressed(k) && i < len(o.Toggles.Hidden()) {
			o.Toggles.Toggle(i)
			changed = true
		}
	}
	return changed
}

// Draw renders the legend for r and a progress bar of shown out of total
// paths along the bottom edge of a page width by height pixels.
func (o *Overlay) Draw(screen *ebiten.Image, r core.Result, shown, total, width, height int) {
	face := basicfont.Face7x13
	hidden := o.Toggles.Hidden()
	y := legendTop
	for i, l := range r.Layers {
		col := o.pen(i)
		label := fmt.Sprintf("%d %s (%d)", i+1, l.Name, len(l.Paths))
		if i < len(hidden) && hidden[i] {
			col.A = 60
			label += " hidden"
		}
		o.drawRect(screen, legendLeft, float64(y-swatchSize+2), swatchSize, swatchSize, col)
		text.Draw(screen, label, face, legendLeft+swatchSize+6, y, color.RGBA{R: 40, G: 40, B: 48, A: 255})
		y += legendLine
	}
	text.Draw(screen, "seed "+r.Seed.String(), face, legendLeft, y, color.RGBA{R: 90, G: 90, B: 100, A: 255})

	if total <= 0 {
		return
	}
	frac := float64(shown) / float64(total)
	o.drawRect(screen, 0, float64(height-progressHeight), float64(width), progressHeight, color.RGBA{R: 220, G: 220, B: 226, A: 255})
	o.drawRect(screen, 0, float64(height-progressHeight), float64(width)*frac, progressHeight, color.RGBA{R: 64, G: 164, B: 223, A: 255})
}

func (o *Overlay) pen(i int) color.RGBA {
	if len(o.pens) == 0 {
		return color.RGBA{A: 255}
	}
	return o.pens[i%len(o.pens)]
}

func (o *Overlay) drawRect(screen *ebiten.Image, x, y, w, h float64, col color.RGBA) {
	if w <= 0 || h <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

const (
	legendLeft     = 8
	legendTop      = 18
	legendLine     = 16
	swatchSize     = 10
	progressHeight = 3
)
