package qr

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"sync"

	qrcode "github.com/skip2/go-qrcode"
)

// go-qrcode always pads its bitmap with a 4 module quiet zone.
const encoderQuietZone = 4

// maxPooledBuffer keeps very large renders out of the pool.
const maxPooledBuffer = 4 << 20

var bufPool = sync.Pool{
	New: func() any { return new(bytes.Buffer) },
}

// Symbol is an encoded QR code without its quiet zone.
type Symbol struct {
	Version int
	modules [][]bool
}

// Encode builds the smallest symbol that holds text at recovery level M.
func Encode(text string) (*Symbol, error) {
	code, err := qrcode.New(text, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	bitmap := code.Bitmap()
	n := len(bitmap) - 2*encoderQuietZone
	if n <= 0 {
		return nil, fmt.Errorf("empty qr")
	}
	modules := make([][]bool, n)
	for y := 0; y < n; y++ {
		modules[y] = bitmap[y+encoderQuietZone][encoderQuietZone : encoderQuietZone+n]
	}
	return &Symbol{Version: code.VersionNumber, modules: modules}, nil
}

// Size is the number of modules per side.
func (s *Symbol) Size() int { return len(s.modules) }

// At reports whether the module at column x, row y is dark.
func (s *Symbol) At(x, y int) bool { return s.modules[y][x] }

type style struct {
	boxSize int
	border  int
	fill    color.RGBA
	back    color.RGBA
}

// side returns the image width in modules, quiet zone included.
func (st style) side(sym *Symbol) int { return sym.Size() + 2*st.border }

// Image is a rendered QR code held in a pooled buffer. Close returns the
// buffer to the pool; the image must not be used afterwards.
type Image struct {
	Format Format
	buf    *bytes.Buffer
}

// Render validates o, encodes the text and draws it in the requested format.
func Render(o Options) (*Image, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	fill, err := ParseColor(o.Fill)
	if err != nil {
		return nil, fmt.Errorf("fill_color: %w", err)
	}
	back, err := ParseColor(o.Back)
	if err != nil {
		return nil, fmt.Errorf("back_color: %w", err)
	}
	sym, err := Encode(o.Text)
	if err != nil {
		return nil, err
	}
	st := style{boxSize: o.BoxSize, border: o.Border, fill: fill, back: back}

	img := &Image{Format: o.Format, buf: bufPool.Get().(*bytes.Buffer)}
	img.buf.Reset()
	switch o.Format {
	case FormatSVG:
		err = writeSVG(img.buf, sym, st)
	default:
		err = writePNG(img.buf, sym, st)
	}
	if err != nil {
		img.Close()
		return nil, fmt.Errorf("render %s: %w", o.Format, err)
	}
	return img, nil
}

func (img *Image) MediaType() string { return img.Format.MediaType() }

// Len is the number of unread bytes.
func (img *Image) Len() int {
	if img.buf == nil {
		return 0
	}
	return img.buf.Len()
}

// Bytes returns the unread bytes. The slice is only valid until Close.
func (img *Image) Bytes() []byte {
	if img.buf == nil {
		return nil
	}
	return img.buf.Bytes()
}

func (img *Image) WriteTo(w io.Writer) (int64, error) {
	if img.buf == nil {
		return 0, nil
	}
	return img.buf.WriteTo(w)
}

func (img *Image) Close() error {
	if img.buf == nil {
		return nil
	}
	if img.buf.Cap() <= maxPooledBuffer {
		img.buf.Reset()
		bufPool.Put(img.buf)
	}
	img.buf = nil
	return nil
}
