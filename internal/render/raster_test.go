package render

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"penplot/internal/core"
	"penplot/pkg/geom"
)

func result() core.Result {
	var box geom.Path
	box.Polygon(geom.Pt(1, 1), geom.Pt(3, 1), geom.Pt(3, 3), geom.Pt(1, 3))
	return core.Result{
		Canvas: core.Canvas{Width: 4, Height: 4, Units: "in"},
		Layers: []geom.Layer{
			{Name: "box", Paths: []geom.Path{box}},
			{Name: "ring", Paths: []geom.Path{geom.CirclePath(geom.Pt(2, 2), 0.5)}},
		},
	}
}

func testStyle() Style {
	s := DefaultStyle("in")
	s.Scale = 10
	s.PenWidth = 0.2
	s.Tolerance = 0.01
	return s
}

// near allows for antialiasing at the edge of a stroke.
func near(t *testing.T, want, got color.RGBA) {
	t.Helper()
	for _, d := range [][2]uint8{{want.R, got.R}, {want.G, got.G}, {want.B, got.B}} {
		assert.InDelta(t, float64(d[0]), float64(d[1]), 8, "want %v got %v", want, got)
	}
}

func TestDefaultStyle(t *testing.T) {
	in := DefaultStyle("in")
	mm := DefaultStyle("mm")
	assert.InDelta(t, 96, in.Scale, 1e-9)
	assert.InDelta(t, in.PenWidth*in.Scale, mm.PenWidth*mm.Scale, 1e-9)
}

func TestSize(t *testing.T) {
	w, h := testStyle().Size(core.Canvas{Width: 4, Height: 2.05})
	assert.Equal(t, 40, w)
	assert.Equal(t, 21, h)
}

func TestRasterize(t *testing.T) {
	s := testStyle()
	img := s.Rasterize(result(), All)
	require.Equal(t, 40, img.Bounds().Dx())

	// Corner of the page stays paper, box edge and ring take their pens.
	near(t, s.Background, img.RGBAAt(0, 0))
	near(t, s.Pens[0], img.RGBAAt(20, 10))
	near(t, s.Pens[1], img.RGBAAt(24, 20))
	near(t, s.Background, img.RGBAAt(20, 20))
}

func TestHiddenLayer(t *testing.T) {
	s := testStyle()
	img := s.Rasterize(result(), View{Hidden: []bool{true}, Limit: -1})
	near(t, s.Background, img.RGBAAt(20, 10))
	near(t, s.Pens[1], img.RGBAAt(24, 20))
}

func TestLimit(t *testing.T) {
	s := testStyle()
	img := s.Rasterize(result(), View{Limit: 1})
	near(t, s.Pens[0], img.RGBAAt(20, 10))
	near(t, s.Background, img.RGBAAt(24, 20))

	img = s.Rasterize(result(), View{Limit: 0})
	near(t, s.Background, img.RGBAAt(20, 10))
}

func TestPenColor(t *testing.T) {
	pal := []color.RGBA{{R: 1, A: 255}, {G: 1, A: 255}}
	assert.Equal(t, pal[0], penColor(pal, 2))
	assert.Equal(t, color.RGBA{A: 0xff}, penColor(nil, 3))
}

func TestFillRGBA(t *testing.T) {
	buf := make([]byte, 8)
	fillRGBA(buf, color.RGBA{1, 2, 3, 4})
	assert.Equal(t, []byte{1, 2, 3, 4, 1, 2, 3, 4}, buf)
}
