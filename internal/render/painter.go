//go:build ebiten

package render

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"penplot/internal/core"
)

// Painter keeps a CPU image of the drawing and uploads it to an ebiten
// texture when it changes.
type Painter struct {
	style Style
	rgba  *image.RGBA
	tex   *ebiten.Image
	dirty bool
}

// NewPainter returns a painter for pages drawn with style.
func NewPainter(style Style) *Painter {
	return &Painter{style: style}
}

// Style returns the painter's style.
func (p *Painter) Style() Style { return p.style }

// Size is the pixel size of the last painted page.
func (p *Painter) Size() (int, int) {
	if p.rgba == nil {
		return 1, 1
	}
	b := p.rgba.Bounds()
	return b.Dx(), b.Dy()
}

// Paint redraws r under v. The texture is reallocated when the page size
// changes.
func (p *Painter) Paint(r core.Result, v View) {
	w, h := p.style.Size(r.Canvas)
	if p.rgba == nil || p.rgba.Bounds().Dx() != w || p.rgba.Bounds().Dy() != h {
		p.rgba = image.NewRGBA(image.Rect(0, 0, w, h))
		if p.tex != nil {
			p.tex.Deallocate()
		}
		p.tex = ebiten.NewImage(w, h)
	}
	p.style.Draw(p.rgba, r.Layers, v)
	p.dirty = true
}

// Blit draws the page onto screen.
func (p *Painter) Blit(screen *ebiten.Image) {
	if p.tex == nil {
		return
	}
	if p.dirty {
		p.tex.WritePixels(p.rgba.Pix)
		p.dirty = false
	}
	screen.DrawImage(p.tex, nil)
}
