package qr

import (
	"bufio"
	"fmt"
	"io"
)

// writeSVG draws sym in module units; width and height scale it to boxSize
// pixels per module. Dark runs in a row are merged into one path segment.
func writeSVG(w io.Writer, sym *Symbol, st style) error {
	side := st.side(sym)
	px := side * st.boxSize
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, `<?xml version="1.0" encoding="UTF-8"?>`+"\n")
	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" shape-rendering="crispEdges">`, px, px, side, side)
	fmt.Fprintf(bw, `<rect width="%d" height="%d" fill="%s"/>`, side, side, hexString(st.back))
	fmt.Fprintf(bw, `<path fill="%s" d="`, hexString(st.fill))

	n := sym.Size()
	for y := 0; y < n; y++ {
		for x := 0; x < n; {
			if !sym.At(x, y) {
				x++
				continue
			}
			start := x
			for x < n && sym.At(x, y) {
				x++
			}
			fmt.Fprintf(bw, "M%d %dh%dv1h-%dz", start+st.border, y+st.border, x-start, x-start)
		}
	}
	bw.WriteString(`"/></svg>`)
	return bw.Flush()
}
