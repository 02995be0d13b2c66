package sink

import (
	"bytes"
	"image"
	"image/png"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/wordcloud/pkg/errors"
)

// PNGOption configures PNG encoding.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	level png.CompressionLevel
}

// WithCompression sets the PNG compression level (default png.DefaultCompression).
func WithCompression(l png.CompressionLevel) PNGOption {
	return func(r *pngRenderer) { r.level = l }
}

// RenderPNG encodes a rendered canvas as PNG.
func RenderPNG(img image.Image, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{level: png.DefaultCompression}
	for _, opt := range opts {
		opt(&r)
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG, imaging.PNGCompressionLevel(r.level)); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}
