package layout

import (
	"image"
	"image/color"
)

// Glyph is the rendered extent of a term at one font size, horizontal.
//
// The box is Width × Height pixels. DotX and DotY locate the text baseline
// origin relative to the box's top-left corner, which is what a renderer
// needs to reproduce the exact same ink.
type Glyph struct {
	Width, Height int
	DotX, DotY    int

	// Ink is the coverage of the term inside the box, bounds (0,0)-(W,H).
	// Only filled when requested.
	Ink *image.Alpha
}

// Rasterizer measures and rasterizes terms. Sizes are in pixels.
// When ink is false implementations may leave Glyph.Ink nil.
type Rasterizer interface {
	Rasterize(term string, size int, ink bool) (Glyph, error)
}

// Placement is the resolved position of one term.
type Placement struct {
	Term  string `json:"term"`
	Count int    `json:"count"`

	// X, Y, Width and Height are the box as drawn on the canvas. For rotated
	// placements Width and Height are the rotated extents.
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`

	// Rotated placements are turned 90° counter-clockwise.
	Rotated  bool `json:"rotated"`
	FontSize int  `json:"font_size"`

	// DotX and DotY are the baseline origin in the unrotated glyph frame.
	DotX int `json:"dot_x"`
	DotY int `json:"dot_y"`

	// Color is assigned after layout; the zero value means unset.
	Color color.RGBA `json:"-"`
}

// Bounds returns the placement box.
func (p Placement) Bounds() image.Rectangle {
	return image.Rect(p.X, p.Y, p.X+p.Width, p.Y+p.Height)
}

// rotateCCW turns a coverage mask 90° counter-clockwise.
// Pixel (u, v) of a w × h source lands on (v, w-1-u) of the h × w result.
func rotateCCW(src *image.Alpha) *image.Alpha {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewAlpha(image.Rect(0, 0, h, w))
	for v := 0; v < h; v++ {
		for u := 0; u < w; u++ {
			dst.Pix[(w-1-u)*dst.Stride+v] = src.Pix[v*src.Stride+u]
		}
	}
	return dst
}
