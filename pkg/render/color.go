package render

import (
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"

	"github.com/matzehuels/wordcloud/pkg/errors"
)

// ParseColor parses an SVG/CSS colour name ("white", "midnightblue"), a hex
// colour ("#fff", "#1f78b4") or "transparent".
func ParseColor(s string) (color.RGBA, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	switch key {
	case "":
		return color.RGBA{}, errors.New(errors.ErrCodeInvalidColor, "colour cannot be empty")
	case "transparent", "none":
		return color.RGBA{}, nil
	}
	if c, ok := colornames.Map[key]; ok {
		return c, nil
	}
	if !strings.HasPrefix(key, "#") {
		key = "#" + key
	}
	c, err := colorful.Hex(key)
	if err != nil {
		return color.RGBA{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "invalid colour %q", s)
	}
	return toRGBA(c), nil
}

// Hex formats c as #rrggbb.
func Hex(c color.Color) string {
	cf, _ := colorful.MakeColor(c)
	return cf.Hex()
}
