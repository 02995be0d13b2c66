// Package mask converts silhouette images into occupancy bitmaps.
//
// An occupancy bitmap marks every canvas cell as allowed (glyphs may be drawn
// there) or forbidden. Bitmaps are immutable once built; the layout engine
// tracks its own placements separately.
//
// # Polarity
//
// Which side of the luminance threshold is forbidden is explicit:
//
//   - [LightForbidden] (default): cells at or above the threshold are
//     forbidden. A black shape on a white or transparent background is the
//     drawable area.
//   - [DarkForbidden]: cells darker than the threshold are forbidden, so an
//     all-black mask forbids everything.
package mask

import (
	"image"
	"image/color"
)

// Bitmap is an immutable width × height grid of allowed/forbidden cells.
type Bitmap struct {
	width     int
	height    int
	forbidden []bool
}

// New returns a bitmap where every cell is allowed.
func New(width, height int) *Bitmap {
	return &Bitmap{
		width:     width,
		height:    height,
		forbidden: make([]bool, width*height),
	}
}

// FromFunc builds a bitmap by asking forbidden for every cell.
func FromFunc(width, height int, forbidden func(x, y int) bool) *Bitmap {
	b := New(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			b.forbidden[y*width+x] = forbidden(x, y)
		}
	}
	return b
}

// Bounds returns the bitmap dimensions as an image.Rectangle.
func (b *Bitmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.width, b.height)
}

// Width returns the bitmap width.
func (b *Bitmap) Width() int { return b.width }

// Height returns the bitmap height.
func (b *Bitmap) Height() int { return b.height }

// Forbidden reports whether (x, y) is off limits.
// Coordinates outside the bitmap are forbidden.
func (b *Bitmap) Forbidden(x, y int) bool {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return true
	}
	return b.forbidden[y*b.width+x]
}

// Allowed reports whether a glyph may cover (x, y).
func (b *Bitmap) Allowed(x, y int) bool {
	return !b.Forbidden(x, y)
}

// AllowedCount returns the number of allowed cells.
func (b *Bitmap) AllowedCount() int {
	n := 0
	for _, f := range b.forbidden {
		if !f {
			n++
		}
	}
	return n
}

// AllowedRatio returns the fraction of allowed cells in [0, 1].
func (b *Bitmap) AllowedRatio() float64 {
	if len(b.forbidden) == 0 {
		return 0
	}
	return float64(b.AllowedCount()) / float64(len(b.forbidden))
}

// Equal reports whether two bitmaps have the same size and cells.
func (b *Bitmap) Equal(o *Bitmap) bool {
	if b.width != o.width || b.height != o.height {
		return false
	}
	for i := range b.forbidden {
		if b.forbidden[i] != o.forbidden[i] {
			return false
		}
	}
	return true
}

// Image renders the bitmap as a grayscale image: allowed cells white,
// forbidden cells black.
func (b *Bitmap) Image() *image.Gray {
	img := image.NewGray(b.Bounds())
	for i, f := range b.forbidden {
		if !f {
			img.Pix[i] = 0xff
		}
	}
	return img
}

// Polarity selects which luminance class is forbidden.
type Polarity int

const (
	LightForbidden Polarity = iota
	DarkForbidden
)

// String returns the configuration name of the polarity.
func (p Polarity) String() string {
	if p == DarkForbidden {
		return "dark-forbidden"
	}
	return "light-forbidden"
}

// DefaultThreshold is the luminance cutoff used when Options.Threshold is 0.
const DefaultThreshold = 128

// Options controls how an image becomes a bitmap.
type Options struct {
	// Width and Height are the target canvas size. Zero keeps the image size.
	Width, Height int

	// Threshold is the luminance cutoff in [1, 255]. 0 means DefaultThreshold.
	Threshold int

	// Polarity selects the forbidden class.
	Polarity Polarity

	// Background is composited under images with transparency.
	// Nil means white.
	Background color.Color
}

func (o Options) threshold() uint8 {
	if o.Threshold <= 0 || o.Threshold > 255 {
		return DefaultThreshold
	}
	return uint8(o.Threshold)
}

func (o Options) background() color.Color {
	if o.Background == nil {
		return color.White
	}
	return o.Background
}
