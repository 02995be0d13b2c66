package render

import (
	"image/color"
	"math"
	"slices"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/wordcloud/pkg/errors"
)

// Palette is a named colour map sampled on [0, 1].
//
// Listed palettes (qualitative maps such as Paired) return one of their
// colours unchanged; continuous palettes blend adjacent stops in CIE Lab.
type Palette struct {
	Name   string
	Stops  []colorful.Color
	Listed bool
}

// DefaultPalette is the palette used when none is configured.
const DefaultPalette = "Paired"

func hexStops(hexes ...string) []colorful.Color {
	out := make([]colorful.Color, len(hexes))
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			panic("render: bad palette colour " + h)
		}
		out[i] = c
	}
	return out
}

// palettes holds the built-in colour maps, keyed by lower-case name.
// Colours follow the matplotlib maps of the same names.
var palettes = map[string]Palette{
	"paired": {Name: "Paired", Listed: true, Stops: hexStops(
		"#a6cee3", "#1f78b4", "#b2df8a", "#33a02c", "#fb9a99", "#e31a1c",
		"#fdbf6f", "#ff7f00", "#cab2d6", "#6a3d9a", "#ffff99", "#b15928")},
	"tab10": {Name: "tab10", Listed: true, Stops: hexStops(
		"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
		"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf")},
	"set1": {Name: "Set1", Listed: true, Stops: hexStops(
		"#e41a1c", "#377eb8", "#4daf4a", "#984ea3", "#ff7f00",
		"#ffff33", "#a65628", "#f781bf", "#999999")},
	"set2": {Name: "Set2", Listed: true, Stops: hexStops(
		"#66c2a5", "#fc8d62", "#8da0cb", "#e78ac3", "#a6d854",
		"#ffd92f", "#e5c494", "#b3b3b3")},
	"dark2": {Name: "Dark2", Listed: true, Stops: hexStops(
		"#1b9e77", "#d95f02", "#7570b3", "#e7298a", "#66a61e",
		"#e6ab02", "#a6761d", "#666666")},
	"accent": {Name: "Accent", Listed: true, Stops: hexStops(
		"#7fc97f", "#beaed4", "#fdc086", "#ffff99", "#386cb0",
		"#f0027f", "#bf5b17", "#666666")},
	"pastel1": {Name: "Pastel1", Listed: true, Stops: hexStops(
		"#fbb4ae", "#b3cde3", "#ccebc5", "#decbe4", "#fed9a6",
		"#ffffcc", "#e5d8bd", "#fddaec", "#f2f2f2")},
	"viridis": {Name: "viridis", Stops: hexStops(
		"#440154", "#482878", "#3e4989", "#31688e", "#26828e",
		"#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725")},
	"plasma": {Name: "plasma", Stops: hexStops(
		"#0d0887", "#46039f", "#7201a8", "#9c179e", "#bd3786",
		"#d8576b", "#ed7953", "#fb9f3a", "#fdca26", "#f0f921")},
	"inferno": {Name: "inferno", Stops: hexStops(
		"#000004", "#1b0c41", "#4a0c6b", "#781c6d", "#a52c60",
		"#cf4446", "#ed6925", "#fb9b06", "#f7d13d", "#fcffa4")},
	"magma": {Name: "magma", Stops: hexStops(
		"#000004", "#180f3d", "#440f76", "#721f81", "#9e2f7f",
		"#cd4071", "#f1605d", "#fd9668", "#feca8d", "#fcfdbf")},
	"cividis": {Name: "cividis", Stops: hexStops(
		"#00224e", "#123570", "#3b496c", "#575d6d", "#707173",
		"#8a8678", "#a59c74", "#c3b369", "#e1cc55", "#fee838")},
	"gray": {Name: "gray", Stops: hexStops("#000000", "#ffffff")},
}

// PaletteNames returns the built-in palette names, sorted.
func PaletteNames() []string {
	names := make([]string, 0, len(palettes))
	for _, p := range palettes {
		names = append(names, p.Name)
	}
	slices.SortFunc(names, func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	})
	return names
}

// LookupPalette resolves a palette by name, case-insensitively.
//
// A "_r" suffix reverses the palette. A comma-separated list of hex colours
// ("#e41a1c,#377eb8") defines a listed palette inline.
func LookupPalette(name string) (Palette, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultPalette
	}
	if strings.Contains(name, ",") || strings.HasPrefix(name, "#") {
		var stops []colorful.Color
		for _, h := range strings.Split(name, ",") {
			c, err := colorful.Hex(strings.TrimSpace(h))
			if err != nil {
				return Palette{}, errors.Wrap(errors.ErrCodeInvalidPalette, err, "invalid colour %q in palette", h)
			}
			stops = append(stops, c)
		}
		return Palette{Name: name, Stops: stops, Listed: true}, nil
	}

	key := strings.ToLower(name)
	reversed := strings.HasSuffix(key, "_r")
	key = strings.TrimSuffix(key, "_r")
	p, ok := palettes[key]
	if !ok {
		return Palette{}, errors.New(errors.ErrCodeInvalidPalette,
			"unknown colormap: %q (must be one of: %s)", name, strings.Join(PaletteNames(), ", "))
	}
	if reversed {
		p.Name += "_r"
		p.Stops = slices.Clone(p.Stops)
		slices.Reverse(p.Stops)
	}
	return p, nil
}

// At samples the palette at t in [0, 1]; values outside are clamped.
func (p Palette) At(t float64) color.RGBA {
	n := len(p.Stops)
	if n == 0 {
		return color.RGBA{A: 0xff}
	}
	t = max(0, min(1, t))
	if p.Listed || n == 1 {
		return toRGBA(p.Stops[min(int(t*float64(n)), n-1)])
	}
	pos := t * float64(n-1)
	i := int(math.Floor(pos))
	if i >= n-1 {
		return toRGBA(p.Stops[n-1])
	}
	return toRGBA(p.Stops[i].BlendLab(p.Stops[i+1], pos-float64(i)).Clamped())
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
