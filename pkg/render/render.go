// Package render paints laid-out terms onto a raster canvas.
//
// The renderer trusts the layout: it does not re-check overlaps or bounds,
// it only reproduces each placement with the same faces that measured it.
//
//	faces := fonts.NewFaces(font)
//	res, _ := engine.Place(ctx, table, bitmap)
//	_ = render.Colorize(res.Placements, palette, render.ColorRandom, seed)
//	img, err := render.Render(res, faces, render.WithBackground(color.White))
//
// Encoders for PNG, JPEG, SVG and JSON live in the [sink] subpackage.
package render

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/layout"
)

// FaceSource supplies a face per pixel size.
type FaceSource interface {
	Face(size int) (font.Face, error)
}

// Option configures Render.
type Option func(*renderer)

type renderer struct {
	background color.Color
	fallback   color.Color
	scale      int
}

// WithBackground sets the canvas colour (default white).
func WithBackground(c color.Color) Option {
	return func(r *renderer) { r.background = c }
}

// WithDefaultColor sets the colour for placements that have none (default black).
func WithDefaultColor(c color.Color) Option {
	return func(r *renderer) { r.fallback = c }
}

// WithScale renders at an integer multiple of the layout size.
func WithScale(s int) Option {
	return func(r *renderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// Render paints placements in order onto a fresh canvas of the layout size.
// An empty layout gives a background-only canvas.
func Render(res *layout.Result, faces FaceSource, opts ...Option) (*image.RGBA, error) {
	r := renderer{background: color.White, fallback: color.Black, scale: 1}
	for _, opt := range opts {
		opt(&r)
	}
	if err := errors.ValidateDimensions(res.Width*r.scale, res.Height*r.scale); err != nil {
		return nil, err
	}

	s := float64(r.scale)
	dc := gg.NewContext(res.Width*r.scale, res.Height*r.scale)
	dc.SetColor(r.background)
	dc.Clear()

	for _, p := range res.Placements {
		face, err := faces.Face(p.FontSize * r.scale)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeFontUnreadable, err, "face for %q at %dpx", p.Term, p.FontSize)
		}
		dc.SetFontFace(face)
		if p.Color.A != 0 {
			dc.SetColor(p.Color)
		} else {
			dc.SetColor(r.fallback)
		}

		dc.Push()
		if p.Rotated {
			// The unrotated glyph is p.Height wide; turn it 90° counter-clockwise
			// about the box's bottom-left corner.
			dc.Translate(float64(p.X)*s, float64(p.Y+p.Height)*s)
			dc.Rotate(-math.Pi / 2)
		} else {
			dc.Translate(float64(p.X)*s, float64(p.Y)*s)
		}
		dc.DrawString(p.Term, float64(p.DotX)*s, float64(p.DotY)*s)
		dc.Pop()
	}

	img, ok := dc.Image().(*image.RGBA)
	if !ok {
		return nil, errors.New(errors.ErrCodeInternal, "unexpected canvas type %T", dc.Image())
	}
	return img, nil
}
