package qr

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

var ErrUnknownColor = errors.New("unknown color")

// ParseColor accepts a CSS color name, #rgb, #rgba, #rrggbb, #rrggbbaa,
// rgb(r, g, b) with integer or percent components, rgba(r, g, b, a),
// hsl(h, s%, l%) and hsv(h, s%, v%) (also spelled hsb). Alpha is dropped:
// the result is always opaque.
func ParseColor(s string) (color.RGBA, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch {
	case v == "":
		return color.RGBA{}, fmt.Errorf("%w: empty", ErrUnknownColor)
	case strings.HasPrefix(v, "#"):
		return parseHex(v, s)
	case !strings.HasSuffix(v, ")"):
		// not functional notation; try names
	case strings.HasPrefix(v, "rgb("):
		return parseRGB(splitArgs(v, "rgb("), s)
	case strings.HasPrefix(v, "rgba("):
		args := splitArgs(v, "rgba(")
		if len(args) != 4 {
			return color.RGBA{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
		}
		if _, err := strconv.ParseUint(args[3], 10, 8); err != nil {
			return color.RGBA{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
		}
		return parseRGB(args[:3], s)
	case strings.HasPrefix(v, "hsl("):
		return parseCylinder(splitArgs(v, "hsl("), s, colorful.Hsl)
	case strings.HasPrefix(v, "hsv("):
		return parseCylinder(splitArgs(v, "hsv("), s, colorful.Hsv)
	case strings.HasPrefix(v, "hsb("):
		return parseCylinder(splitArgs(v, "hsb("), s, colorful.Hsv)
	}
	if c, ok := colornames.Map[v]; ok {
		return c, nil
	}
	return color.RGBA{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
}

func parseHex(v, orig string) (color.RGBA, error) {
	if _, err := strconv.ParseUint(v[1:], 16, 32); err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrUnknownColor, orig)
	}
	switch len(v) {
	case 4, 7:
	case 5:
		v = v[:4]
	case 9:
		v = v[:7]
	default:
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrUnknownColor, orig)
	}
	c, err := colorful.Hex(v)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrUnknownColor, orig)
	}
	return opaque(c), nil
}

// parseRGB takes three integer components, or three percentages.
func parseRGB(args []string, orig string) (color.RGBA, error) {
	if len(args) != 3 {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrUnknownColor, orig)
	}
	percent := strings.HasSuffix(args[0], "%")
	var rgb [3]uint8
	for i, a := range args {
		if strings.HasSuffix(a, "%") != percent {
			return color.RGBA{}, fmt.Errorf("%w: %q", ErrUnknownColor, orig)
		}
		if !percent {
			n, err := strconv.ParseUint(a, 10, 8)
			if err != nil {
				return color.RGBA{}, fmt.Errorf("%w: %q", ErrUnknownColor, orig)
			}
			rgb[i] = uint8(n)
			continue
		}
		n, err := strconv.ParseUint(strings.TrimSuffix(a, "%"), 10, 8)
		if err != nil || n > 100 {
			return color.RGBA{}, fmt.Errorf("%w: %q", ErrUnknownColor, orig)
		}
		rgb[i] = uint8((n*255 + 50) / 100)
	}
	return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 0xff}, nil
}

// parseCylinder reads hue, then two percentages, and builds the color with
// conv (colorful.Hsl or colorful.Hsv).
func parseCylinder(args []string, orig string, conv func(h, a, b float64) colorful.Color) (color.RGBA, error) {
	if len(args) != 3 || !strings.HasSuffix(args[1], "%") || !strings.HasSuffix(args[2], "%") {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrUnknownColor, orig)
	}
	h, err1 := strconv.ParseFloat(args[0], 64)
	s, err2 := strconv.ParseFloat(strings.TrimSuffix(args[1], "%"), 64)
	l, err3 := strconv.ParseFloat(strings.TrimSuffix(args[2], "%"), 64)
	if err := errors.Join(err1, err2, err3); err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrUnknownColor, orig)
	}
	if math.IsNaN(h) || math.IsInf(h, 0) || !(s >= 0 && s <= 100) || !(l >= 0 && l <= 100) {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrUnknownColor, orig)
	}
	h = mod360(h)
	return opaque(conv(h, s/100, l/100).Clamped()), nil
}

func splitArgs(v, prefix string) []string {
	inner := strings.TrimSuffix(strings.TrimPrefix(v, prefix), ")")
	parts := strings.Split(inner, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func mod360(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

func opaque(c colorful.Color) color.RGBA {
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// hexString formats c as #rrggbb for SVG attributes.
func hexString(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
