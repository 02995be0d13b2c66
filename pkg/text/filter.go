package text

import (
	"fmt"
	"unicode"

	"github.com/matzehuels/wordcloud/pkg/text/segment"
)

// Hiragana is the phonetic alphabet whose pure runs are dropped as function
// words (ぁ U+3041 through ゖ U+3096).
var Hiragana = &unicode.RangeTable{
	R16: []unicode.Range16{{Lo: 0x3041, Hi: 0x3096, Stride: 1}},
}

// DefaultAllow is the default part-of-speech allow-set.
var DefaultAllow = []segment.Category{segment.Noun, segment.Verb, segment.Adjective}

// Filter keeps content-bearing tokens.
//
// A token survives when its category is in the allow-set and its surface is
// not made up entirely of runes from the phonetic table.
type Filter struct {
	allow    map[segment.Category]bool
	phonetic *unicode.RangeTable
}

// NewFilter returns a filter for the given categories, dropping pure
// hiragana surfaces. With no categories, DefaultAllow is used.
func NewFilter(allow ...segment.Category) *Filter {
	if len(allow) == 0 {
		allow = DefaultAllow
	}
	m := make(map[segment.Category]bool, len(allow))
	for _, c := range allow {
		m[c] = true
	}
	return &Filter{allow: m, phonetic: Hiragana}
}

// Allows reports whether c is in the allow-set.
func (f *Filter) Allows(c segment.Category) bool {
	return f.allow[c]
}

// Keep reports whether a single token survives the filter.
func (f *Filter) Keep(t segment.Token) bool {
	if t.Surface == "" || !f.Allows(t.POS) {
		return false
	}
	return !f.isPhonetic(t.Surface)
}

func (f *Filter) isPhonetic(s string) bool {
	if f.phonetic == nil {
		return false
	}
	for _, r := range s {
		if !unicode.Is(f.phonetic, r) {
			return false
		}
	}
	return true
}

// Apply returns the surfaces of the surviving tokens, in input order.
// The result is non-nil even when nothing survives.
func (f *Filter) Apply(tokens []segment.Token) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if f.Keep(t) {
			out = append(out, t.Surface)
		}
	}
	return out
}

// Tokenizer turns raw text into filtered terms.
type Tokenizer struct {
	Normalizer *Normalizer
	Segmenter  segment.Segmenter
	Filter     *Filter
}

// NewTokenizer combines seg with the default normalizer and a filter for
// allow (DefaultAllow when empty).
func NewTokenizer(seg segment.Segmenter, allow ...segment.Category) *Tokenizer {
	return &Tokenizer{
		Normalizer: defaultNormalizer,
		Segmenter:  seg,
		Filter:     NewFilter(allow...),
	}
}

// Tokens normalizes and segments raw text without filtering.
func (t *Tokenizer) Tokens(raw string) ([]segment.Token, error) {
	if t.Segmenter == nil {
		return nil, fmt.Errorf("tokenizer has no segmenter")
	}
	norm := raw
	if t.Normalizer != nil {
		norm = t.Normalizer.Normalize(raw)
	}
	toks, err := t.Segmenter.Segment(norm)
	if err != nil {
		return nil, fmt.Errorf("segment: %w", err)
	}
	return toks, nil
}

// Terms runs the full text stage and returns surviving surfaces in order.
// Empty or fully filtered input yields an empty slice and no error.
func (t *Tokenizer) Terms(raw string) ([]string, error) {
	toks, err := t.Tokens(raw)
	if err != nil {
		return nil, err
	}
	f := t.Filter
	if f == nil {
		f = NewFilter()
	}
	return f.Apply(toks), nil
}
