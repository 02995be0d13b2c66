package mask

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // register webp; imaging registers bmp and tiff

	"github.com/matzehuels/wordcloud/pkg/errors"
)

// ParsePolarity parses "light-forbidden" or "dark-forbidden"; empty means
// light-forbidden. "light" and "dark" are accepted as short forms.
func ParsePolarity(s string) (Polarity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "light", "light-forbidden":
		return LightForbidden, nil
	case "dark", "dark-forbidden":
		return DarkForbidden, nil
	}
	return LightForbidden, errors.New(errors.ErrCodeInvalidConfig,
		"invalid mask polarity: %q (must be one of: light-forbidden, dark-forbidden)", s)
}

// Stats summarises the luminance of a processed mask.
type Stats struct {
	SourceWidth  int
	SourceHeight int
	MinLuma      uint8
	MaxLuma      uint8
	MeanLuma     float64
	AllowedRatio float64
}

// Load reads and processes a mask image file.
//
// A missing file yields ErrCodeFileNotFound, an undecodable one
// ErrCodeMaskUnreadable. Callers usually downgrade both to a warning and
// continue without a mask.
func Load(path string, opts Options) (*Bitmap, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, Stats{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "mask image %s not found", path)
		}
		return nil, Stats{}, errors.Wrap(errors.ErrCodeMaskUnreadable, err, "open mask image %s", path)
	}
	defer f.Close()
	return Decode(f, opts)
}

// Decode reads an image in any registered format and processes it.
func Decode(r io.Reader, opts Options) (*Bitmap, Stats, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, Stats{}, errors.Wrap(errors.ErrCodeMaskUnreadable, err, "decode mask image")
	}
	return FromImage(img, opts)
}

// FromImage converts img into a bitmap:
//
//  1. images with transparency are composited onto the background colour
//  2. converted to luminance
//  3. resized to exactly Width × Height with a Lanczos filter
//  4. thresholded according to the polarity
//
// Processing is deterministic: the same image and options always give an
// equal bitmap.
func FromImage(img image.Image, opts Options) (*Bitmap, Stats, error) {
	src := img.Bounds()
	if src.Empty() {
		return nil, Stats{}, errors.New(errors.ErrCodeMaskUnreadable, "mask image is empty")
	}
	w, h := opts.Width, opts.Height
	if w <= 0 || h <= 0 {
		w, h = src.Dx(), src.Dy()
	}
	if err := errors.ValidateDimensions(w, h); err != nil {
		return nil, Stats{}, err
	}

	flat := flatten(img, opts.background())
	gray := imaging.Grayscale(flat)
	if gray.Bounds().Dx() != w || gray.Bounds().Dy() != h {
		gray = imaging.Resize(gray, w, h, imaging.Lanczos)
	}

	st := Stats{SourceWidth: src.Dx(), SourceHeight: src.Dy(), MinLuma: 255}
	cut := opts.threshold()
	b := New(w, h)
	var sum int
	for y := 0; y < h; y++ {
		row := gray.Pix[y*gray.Stride : y*gray.Stride+w*4]
		for x := 0; x < w; x++ {
			l := row[x*4]
			sum += int(l)
			st.MinLuma = min(st.MinLuma, l)
			st.MaxLuma = max(st.MaxLuma, l)
			dark := l < cut
			b.forbidden[y*w+x] = dark == (opts.Polarity == DarkForbidden)
		}
	}
	st.MeanLuma = float64(sum) / float64(w*h)
	st.AllowedRatio = b.AllowedRatio()
	return b, st, nil
}

// flatten composites img onto an opaque background when it may contain
// transparency.
func flatten(img image.Image, bg color.Color) image.Image {
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return img
	}
	b := img.Bounds()
	canvas := imaging.New(b.Dx(), b.Dy(), bg)
	return imaging.Overlay(canvas, img, image.Pt(0, 0), 1.0)
}

// String formats stats for debug logging.
func (s Stats) String() string {
	return fmt.Sprintf("source=%dx%d luma[min=%d max=%d mean=%.1f] allowed=%.1f%%",
		s.SourceWidth, s.SourceHeight, s.MinLuma, s.MaxLuma, s.MeanLuma, s.AllowedRatio*100)
}
