package sink

import (
	"encoding/json"
	"image/color"

	"github.com/matzehuels/wordcloud/pkg/layout"
	"github.com/matzehuels/wordcloud/pkg/render"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	background *color.RGBA
	palette    string
	seed       uint64
	font       string
}

// WithJSONBackground records the canvas colour.
func WithJSONBackground(c color.RGBA) JSONOption {
	return func(r *jsonRenderer) { r.background = &c }
}

// WithJSONPalette records the palette name the colours were drawn from.
func WithJSONPalette(name string) JSONOption {
	return func(r *jsonRenderer) { r.palette = name }
}

// WithJSONSeed records the seed used for layout and colouring, so the cloud
// can be regenerated identically.
func WithJSONSeed(seed uint64) JSONOption {
	return func(r *jsonRenderer) { r.seed = seed }
}

// WithJSONFont records the font family name.
func WithJSONFont(name string) JSONOption {
	return func(r *jsonRenderer) { r.font = name }
}

type jsonOutput struct {
	Width      int        `json:"width"`
	Height     int        `json:"height"`
	Background string     `json:"background,omitempty"`
	Palette    string     `json:"palette,omitempty"`
	Font       string     `json:"font,omitempty"`
	Seed       uint64     `json:"seed,omitempty"`
	Words      []jsonWord `json:"words"`
	Skipped    []jsonSkip `json:"skipped,omitempty"`
}

type jsonWord struct {
	Term     string `json:"term"`
	Count    int    `json:"count"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	FontSize int    `json:"font_size"`
	Rotated  bool   `json:"rotated,omitempty"`
	Color    string `json:"color,omitempty"`
}

type jsonSkip struct {
	Term   string `json:"term"`
	Count  int    `json:"count"`
	Reason string `json:"reason"`
}

// RenderJSON exports the layout as a pretty-printed JSON document: canvas
// size, every placed word with its box, size and colour, and the words that
// did not fit. It does not modify res and is safe to call concurrently.
func RenderJSON(res *layout.Result, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Width:   res.Width,
		Height:  res.Height,
		Palette: r.palette,
		Font:    r.font,
		Seed:    r.seed,
		Words:   make([]jsonWord, 0, len(res.Placements)),
	}
	if r.background != nil {
		out.Background = render.Hex(*r.background)
	}
	for _, p := range res.Placements {
		w := jsonWord{
			Term: p.Term, Count: p.Count,
			X: p.X, Y: p.Y, Width: p.Width, Height: p.Height,
			FontSize: p.FontSize, Rotated: p.Rotated,
		}
		if p.Color.A != 0 {
			w.Color = render.Hex(p.Color)
		}
		out.Words = append(out.Words, w)
	}
	for _, s := range res.Skipped {
		out.Skipped = append(out.Skipped, jsonSkip{Term: s.Term, Count: s.Count, Reason: s.Reason})
	}
	return json.MarshalIndent(out, "", "  ")
}
