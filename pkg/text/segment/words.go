package segment

import (
	"strings"
	"unicode"

	uaxseg "github.com/npillmayer/uax/segment"
	"github.com/npillmayer/uax/uax29"
)

// Words segments text at UAX #29 word boundaries.
//
// Segments containing at least one letter are tagged [Noun]; whitespace,
// punctuation and digit runs are tagged [Other] so the part-of-speech filter
// drops them.
type Words struct{}

// NewWords creates a whitespace-language segmenter.
func NewWords() *Words {
	return &Words{}
}

// Segment splits text into word and non-word segments, in order.
// A fresh breaker is built per call; uax segmenters carry iteration state.
func (w *Words) Segment(text string) ([]Token, error) {
	if text == "" {
		return nil, nil
	}
	seg := uaxseg.NewSegmenter(uax29.NewWordBreaker(1))
	seg.BreakOnZero(true, false)
	seg.Init(strings.NewReader(text))

	var out []Token
	for seg.Next() {
		s := seg.Text()
		if s == "" {
			continue
		}
		tok := Token{Surface: s, POS: Other, Tag: "symbol"}
		if strings.IndexFunc(s, unicode.IsLetter) >= 0 {
			tok.POS = Noun
			tok.Tag = "word"
		} else if strings.TrimSpace(s) == "" {
			tok.Tag = "space"
		}
		out = append(out, tok)
	}
	return out, nil
}

var _ Segmenter = (*Words)(nil)
