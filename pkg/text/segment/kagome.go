package segment

import (
	"fmt"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// ipaCategories maps IPA top-level parts of speech onto categories.
var ipaCategories = map[string]Category{
	"名詞":  Noun,
	"動詞":  Verb,
	"形容詞": Adjective,
}

// Kagome segments Japanese text with the kagome morphological analyzer and
// the IPA dictionary. The dictionary is loaded once per process by the ipa
// package; the tokenizer itself is safe for concurrent use.
type Kagome struct {
	t *tokenizer.Tokenizer
}

// NewKagome creates a Japanese segmenter.
func NewKagome() (*Kagome, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("init kagome: %w", err)
	}
	return &Kagome{t: t}, nil
}

// Segment runs morphological analysis in normal mode.
func (k *Kagome) Segment(text string) ([]Token, error) {
	if text == "" {
		return nil, nil
	}
	ktoks := k.t.Tokenize(text)
	out := make([]Token, 0, len(ktoks))
	for _, kt := range ktoks {
		if kt.Class == tokenizer.DUMMY {
			continue
		}
		var tag string
		if pos := kt.POS(); len(pos) > 0 {
			tag = pos[0]
		}
		out = append(out, Token{
			Surface: kt.Surface,
			POS:     ipaCategories[tag],
			Tag:     tag,
		})
	}
	return out, nil
}

var _ Segmenter = (*Kagome)(nil)
