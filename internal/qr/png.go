package qr

import (
	"image"
	"image/color"
	"image/png"
	"io"
)

const (
	backIndex = 0
	fillIndex = 1
)

// writePNG rasterizes sym with boxSize pixels per module. Palette index 0 is
// the background, so a fresh image starts fully blank.
func writePNG(w io.Writer, sym *Symbol, st style) error {
	px := st.side(sym) * st.boxSize
	img := image.NewPaletted(image.Rect(0, 0, px, px), color.Palette{st.back, st.fill})

	n := sym.Size()
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if !sym.At(x, y) {
				continue
			}
			x0 := (x + st.border) * st.boxSize
			y0 := (y + st.border) * st.boxSize
			for dy := 0; dy < st.boxSize; dy++ {
				row := img.Pix[(y0+dy)*img.Stride:]
				for dx := 0; dx < st.boxSize; dx++ {
					row[x0+dx] = fillIndex
				}
			}
		}
	}
	return png.Encode(w, img)
}
