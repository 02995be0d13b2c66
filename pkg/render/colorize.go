package render

import (
	"math/rand/v2"

	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/layout"
)

// Colour modes.
const (
	ColorRandom = "random" // seeded random sample of the palette per term
	ColorRank   = "rank"   // palette position follows the term's rank
)

// Colorize assigns a colour to every placement that has none, in place.
//
// Colours are chosen after layout so that every output format shares them.
// The same placements, palette, mode and seed always give the same colours.
func Colorize(placements []layout.Placement, p Palette, mode string, seed uint64) error {
	if mode == "" {
		mode = ColorRandom
	}
	if err := errors.ValidateOneOf("color_mode", mode, ColorRandom, ColorRank); err != nil {
		return err
	}
	rng := rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
	n := len(placements)
	for i := range placements {
		if placements[i].Color.A != 0 {
			continue
		}
		var t float64
		switch mode {
		case ColorRank:
			if n > 1 {
				t = float64(i) / float64(n-1)
			}
		default:
			t = rng.Float64()
		}
		placements[i].Color = p.At(t)
	}
	return nil
}
