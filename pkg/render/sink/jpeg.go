package sink

import (
	"bytes"
	"image"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/wordcloud/pkg/errors"
)

// DefaultJPEGQuality is used when no quality option is given.
const DefaultJPEGQuality = 90

// JPEGOption configures JPEG encoding.
type JPEGOption func(*jpegRenderer)

type jpegRenderer struct {
	quality int
}

// WithQuality sets the JPEG quality, 1 to 100. Out-of-range values are clamped.
func WithQuality(q int) JPEGOption {
	return func(r *jpegRenderer) { r.quality = max(1, min(100, q)) }
}

// RenderJPEG encodes a rendered canvas as JPEG. JPEG has no alpha channel;
// transparent backgrounds come out black.
func RenderJPEG(img image.Image, opts ...JPEGOption) ([]byte, error) {
	r := jpegRenderer{quality: DefaultJPEGQuality}
	for _, opt := range opts {
		opt(&r)
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(r.quality)); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode jpeg")
	}
	return buf.Bytes(), nil
}
