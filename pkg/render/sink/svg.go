package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"image/color"

	"github.com/matzehuels/wordcloud/pkg/fonts"
	"github.com/matzehuels/wordcloud/pkg/layout"
	"github.com/matzehuels/wordcloud/pkg/render"
)

// embeddedFamily names the @font-face declared for an embedded font.
const embeddedFamily = "wordcloud-font"

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	background color.RGBA
	fallback   color.RGBA
	font       *fonts.Font
	embed      bool
}

// WithSVGBackground fills the canvas. A transparent colour omits the fill.
func WithSVGBackground(c color.RGBA) SVGOption {
	return func(r *svgRenderer) { r.background = c }
}

// WithSVGDefaultColor sets the fill for placements that have no colour.
func WithSVGDefaultColor(c color.RGBA) SVGOption {
	return func(r *svgRenderer) { r.fallback = c }
}

// WithSVGFont names the font family used for every term.
func WithSVGFont(f *fonts.Font) SVGOption {
	return func(r *svgRenderer) { r.font = f }
}

// WithEmbeddedFont inlines the font as a base64 @font-face so the document
// renders identically without the font installed. Requires WithSVGFont.
func WithEmbeddedFont() SVGOption {
	return func(r *svgRenderer) { r.embed = true }
}

// RenderSVG writes the layout as an SVG document, one <text> element per
// placement, in placement order.
func RenderSVG(res *layout.Result, opts ...SVGOption) []byte {
	r := svgRenderer{
		background: color.RGBA{0xff, 0xff, 0xff, 0xff},
		fallback:   color.RGBA{A: 0xff},
	}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		res.Width, res.Height, res.Width, res.Height)

	family := r.family()
	if r.embed && r.font != nil {
		fmt.Fprintf(&buf, "  <defs><style>@font-face { font-family: %q; src: url(data:%s;base64,%s); }</style></defs>\n",
			embeddedFamily, r.font.MIMEType(), r.font.Base64())
	}
	if r.background.A != 0 {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", render.Hex(r.background))
	}

	fmt.Fprintf(&buf, `  <g font-family="%s">`+"\n", escapeXML(family))
	for _, p := range res.Placements {
		renderText(&buf, p, r.fill(p))
	}
	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) family() string {
	switch {
	case r.embed && r.font != nil:
		return fmt.Sprintf("'%s', sans-serif", embeddedFamily)
	case r.font != nil && r.font.Name() != "":
		return fmt.Sprintf("'%s', sans-serif", r.font.Name())
	}
	return "sans-serif"
}

func (r *svgRenderer) fill(p layout.Placement) color.RGBA {
	if p.Color.A != 0 {
		return p.Color
	}
	return r.fallback
}

// renderText positions the baseline origin exactly as the raster renderer
// does. Rotated text is turned about the box's bottom-left corner.
func renderText(buf *bytes.Buffer, p layout.Placement, fill color.RGBA) {
	var transform string
	if p.Rotated {
		transform = fmt.Sprintf("translate(%d %d) rotate(-90)", p.X, p.Y+p.Height)
	} else {
		transform = fmt.Sprintf("translate(%d %d)", p.X, p.Y)
	}
	fmt.Fprintf(buf, `    <text x="%d" y="%d" font-size="%d" fill="%s" transform="%s">%s</text>`+"\n",
		p.DotX, p.DotY, p.FontSize, render.Hex(fill), transform, escapeXML(p.Term))
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
