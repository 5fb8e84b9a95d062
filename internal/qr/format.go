package qr

import (
	"path/filepath"
	"strings"
)

type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// Formats lists the accepted output formats in display order.
var Formats = []Format{FormatPNG, FormatSVG}

func (f Format) MediaType() string {
	if f == FormatSVG {
		return "image/svg+xml"
	}
	return "image/png"
}

// Ext is the file extension without the dot.
func (f Format) Ext() string {
	if f == FormatSVG {
		return "svg"
	}
	return "png"
}

// FormatFromPath picks svg for a .svg file and png for anything else.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		return FormatSVG
	}
	return FormatPNG
}
