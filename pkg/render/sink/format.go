package sink

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/wordcloud/pkg/errors"
)

// Format is an output encoding.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatSVG  Format = "svg"
	FormatJSON Format = "json"
)

// Formats lists the supported formats in display order.
var Formats = []Format{FormatPNG, FormatJPEG, FormatSVG, FormatJSON}

// Raster reports whether the format encodes a rendered canvas.
func (f Format) Raster() bool { return f == FormatPNG || f == FormatJPEG }

// Ext returns the conventional file extension including the dot.
func (f Format) Ext() string {
	if f == FormatJPEG {
		return ".jpg"
	}
	return "." + string(f)
}

// ContentType returns the MIME type served for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatJPEG:
		return "image/jpeg"
	case FormatSVG:
		return "image/svg+xml"
	case FormatJSON:
		return "application/json"
	}
	return "application/octet-stream"
}

// ParseFormat parses a format name. "jpg" is accepted for JPEG.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))); f {
	case FormatPNG, FormatJPEG, FormatSVG, FormatJSON:
		return f, nil
	case "jpg":
		return FormatJPEG, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %q (must be one of: png, jpeg, svg, json)", s)
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", errors.New(errors.ErrCodeInvalidFormat, "cannot infer format from %q: no extension", path)
	}
	return ParseFormat(ext)
}
