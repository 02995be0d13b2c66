package fonts

import (
	"image"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/wordcloud/pkg/layout"
)

// Faces caches one face per pixel size for a single run. It implements
// layout.Rasterizer and supplies the renderer with the very same faces, so
// measured and drawn ink agree.
type Faces struct {
	font  *Font
	faces map[int]font.Face
}

// NewFaces creates an empty face set for f.
func NewFaces(f *Font) *Faces {
	return &Faces{font: f, faces: make(map[int]font.Face)}
}

// Font returns the underlying font.
func (fs *Faces) Font() *Font { return fs.font }

// Face returns the face at size pixels, creating it on first use.
func (fs *Faces) Face(size int) (font.Face, error) {
	if face, ok := fs.faces[size]; ok {
		return face, nil
	}
	face, err := fs.font.NewFace(size)
	if err != nil {
		return nil, err
	}
	fs.faces[size] = face
	return face, nil
}

// Rasterize measures term at size and optionally draws its coverage.
//
// The box is the ink bounds rounded outward to whole pixels. Terms without
// ink reserve their advance on one line.
func (fs *Faces) Rasterize(term string, size int, ink bool) (layout.Glyph, error) {
	face, err := fs.Face(size)
	if err != nil {
		return layout.Glyph{}, err
	}
	if !utf8.ValidString(term) || term == "" {
		return layout.Glyph{}, nil
	}

	bounds, advance := font.BoundString(face, term)
	minX, minY := bounds.Min.X.Floor(), bounds.Min.Y.Floor()
	maxX, maxY := bounds.Max.X.Ceil(), bounds.Max.Y.Ceil()
	if maxX <= minX || maxY <= minY {
		// No ink at all (whitespace); reserve the advance on one line.
		m := face.Metrics()
		minX, maxX = 0, advance.Ceil()
		minY, maxY = -m.Ascent.Ceil(), m.Descent.Ceil()
	}

	g := layout.Glyph{
		Width:  maxX - minX,
		Height: maxY - minY,
		DotX:   -minX,
		DotY:   -minY,
	}
	if ink && g.Width > 0 && g.Height > 0 {
		g.Ink = image.NewAlpha(image.Rect(0, 0, g.Width, g.Height))
		d := font.Drawer{
			Dst:  g.Ink,
			Src:  image.Opaque,
			Face: face,
			Dot:  fixed.P(g.DotX, g.DotY),
		}
		d.DrawString(term)
	}
	return g, nil
}

// Close releases every cached face.
func (fs *Faces) Close() error {
	var first error
	for size, face := range fs.faces {
		if err := face.Close(); err != nil && first == nil {
			first = err
		}
		delete(fs.faces, size)
	}
	return first
}

var _ layout.Rasterizer = (*Faces)(nil)
