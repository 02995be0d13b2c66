// Package segment splits normalized text into (surface, part-of-speech) tokens.
//
// Segmenters are explicit values passed to the tokenizer rather than package
// singletons, so independent word-cloud requests never share mutable state and
// languages can be swapped without touching the filtering logic.
//
// Two implementations are provided:
//
//   - [Kagome]: dictionary-based morphological analysis for Japanese
//     (IPA dictionary). Parts of speech come from the dictionary.
//   - [Words]: Unicode (UAX #29) word segmentation for whitespace-delimited
//     languages. There is no tagger, so every word-like segment is a [Noun].
package segment

import (
	"fmt"
	"slices"
	"strings"
)

// Category is a coarse grammatical class.
type Category int

const (
	// Other covers particles, auxiliaries, symbols, whitespace and anything
	// the segmenter could not classify.
	Other Category = iota
	Noun
	Verb
	Adjective
)

var categoryNames = map[Category]string{
	Other:     "other",
	Noun:      "noun",
	Verb:      "verb",
	Adjective: "adjective",
}

// String returns the lowercase English name of the category.
func (c Category) String() string {
	if s, ok := categoryNames[c]; ok {
		return s
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// ParseCategory parses an English or IPA (Japanese) category name.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "noun", "名詞":
		return Noun, nil
	case "verb", "動詞":
		return Verb, nil
	case "adjective", "adj", "形容詞":
		return Adjective, nil
	case "other":
		return Other, nil
	}
	return Other, fmt.Errorf("unknown part of speech: %q", s)
}

// ParseCategories parses a list of category names, dropping repeats.
func ParseCategories(names []string) ([]Category, error) {
	out := make([]Category, 0, len(names))
	for _, name := range names {
		c, err := ParseCategory(name)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(out, c) {
			out = append(out, c)
		}
	}
	return out, nil
}

// Token is one segment of text with its grammatical category.
// Tag holds the segmenter's raw top-level tag (e.g. "助詞") for diagnostics.
type Token struct {
	Surface string
	POS     Category
	Tag     string
}

// Segmenter turns text into an ordered token sequence.
// Implementations must be safe for concurrent use.
type Segmenter interface {
	Segment(text string) ([]Token, error)
}

// Names of the built-in segmenters.
const (
	NameJapanese = "ja"
	NameWords    = "words"
)

// New returns the built-in segmenter registered under name.
// "kagome" is accepted as an alias of "ja", "whitespace" of "words".
func New(name string) (Segmenter, error) {
	switch strings.ToLower(name) {
	case NameJapanese, "kagome", "":
		return NewKagome()
	case NameWords, "whitespace", "uax29":
		return NewWords(), nil
	}
	return nil, fmt.Errorf("unknown segmenter: %q (must be one of: %s, %s)", name, NameJapanese, NameWords)
}
