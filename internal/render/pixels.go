package render

import "image/color"

// fillRGBA clears buf to a single colour.
func fillRGBA(buf []byte, c color.Color) {
	r, g, b, a := c.RGBA()
	for base := 0; base+3 < len(buf); base += 4 {
		buf[base+0] = uint8(r >> 8)
		buf[base+1] = uint8(g >> 8)
		buf[base+2] = uint8(b >> 8)
		buf[base+3] = uint8(a >> 8)
	}
}

// penColor returns the pen for layer i. Layers beyond the palette reuse
// it from the start; an empty palette draws black.
func penColor(palette []color.RGBA, i int) color.RGBA {
	if len(palette) == 0 {
		return color.RGBA{A: 0xff}
	}
	return palette[i%len(palette)]
}
