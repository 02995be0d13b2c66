// Package text implements the text side of the word-cloud pipeline:
// normalization of raw input and part-of-speech filtering of segmented tokens.
//
// The flow is:
//
//	raw text ──▶ Normalizer ──▶ segment.Segmenter ──▶ Filter ──▶ []string terms
//
// [Tokenizer] bundles the three steps for callers that only want terms.
package text

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Default symbol sets applied after NFKC and case folding.
const (
	// DefaultRemoveSymbols are bracket and quote characters deleted outright.
	// U+3000 (ideographic space) survives NFKC only in already-ASCII input,
	// so it is listed for completeness.
	DefaultRemoveSymbols = "【】()（）『』　「」"

	// DefaultSpaceSymbols are array-like brackets replaced by a single space
	// so the words on either side do not merge.
	DefaultSpaceSymbols = "[]［］"
)

var (
	mentionPattern = regexp.MustCompile(`[@＠][\p{L}\p{N}_]+`)
	numberPattern  = regexp.MustCompile(`\p{Nd}+\.*\p{Nd}*`)
)

// NormalizeOptions configures a Normalizer. The zero value uses the defaults.
type NormalizeOptions struct {
	RemoveSymbols string // Characters deleted; empty means DefaultRemoveSymbols
	SpaceSymbols  string // Characters replaced by a space; empty means DefaultSpaceSymbols
	KeepMentions  bool   // Do not strip @mentions
	KeepNumbers   bool   // Do not strip numeric literals
}

// Normalizer canonicalizes raw text before segmentation. It is immutable and
// safe for concurrent use.
type Normalizer struct {
	remove *strings.Replacer
	space  *strings.Replacer
	opts   NormalizeOptions
}

// NewNormalizer builds a Normalizer from opts.
func NewNormalizer(opts NormalizeOptions) *Normalizer {
	if opts.RemoveSymbols == "" {
		opts.RemoveSymbols = DefaultRemoveSymbols
	}
	if opts.SpaceSymbols == "" {
		opts.SpaceSymbols = DefaultSpaceSymbols
	}
	return &Normalizer{
		remove: runeReplacer(opts.RemoveSymbols, ""),
		space:  runeReplacer(opts.SpaceSymbols, " "),
		opts:   opts,
	}
}

func runeReplacer(set, with string) *strings.Replacer {
	var pairs []string
	for _, r := range set {
		pairs = append(pairs, string(r), with)
	}
	return strings.NewReplacer(pairs...)
}

var defaultNormalizer = NewNormalizer(NormalizeOptions{})

// Normalize applies the default normalizer to s.
func Normalize(s string) string {
	return defaultNormalizer.Normalize(s)
}

// Normalize returns the canonical form of s:
//
//  1. NFKC, collapsing half-width and full-width variants
//  2. upper-case folding
//  3. removal of bracket and quote symbols
//  4. array brackets replaced by a space
//  5. removal of @mentions
//  6. removal of numeric literals, including decimals
//
// The steps are repeated until the output stops changing, so removing one
// symbol can never expose a match that a second call would strip.
// Normalize(Normalize(s)) == Normalize(s) for every s.
func (n *Normalizer) Normalize(s string) string {
	for i := 0; i < maxPasses; i++ {
		next := n.pass(s)
		if next == s {
			break
		}
		s = next
	}
	return s
}

// maxPasses bounds the fixed-point loop. Real input converges in two passes.
const maxPasses = 8

func (n *Normalizer) pass(s string) string {
	s = norm.NFKC.String(s)
	// cases.Caser is stateful; one per call keeps the Normalizer shareable.
	s = cases.Upper(language.Und).String(s)
	s = n.remove.Replace(s)
	s = n.space.Replace(s)
	if !n.opts.KeepMentions {
		s = mentionPattern.ReplaceAllString(s, "")
	}
	if !n.opts.KeepNumbers {
		s = numberPattern.ReplaceAllString(s, "")
	}
	return s
}
