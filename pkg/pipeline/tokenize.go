package pipeline

import (
	"encoding/json"

	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/freq"
	"github.com/matzehuels/wordcloud/pkg/text"
	"github.com/matzehuels/wordcloud/pkg/text/segment"
)

// Tokenize normalizes, segments and filters text, then aggregates the kept
// terms. It returns the ranked table and the number of kept tokens.
//
// Empty text gives an empty table, not an error.
func Tokenize(raw string, seg segment.Segmenter, opts Options) (freq.Table, int, error) {
	terms, err := text.NewTokenizer(seg, opts.allow...).Terms(raw)
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrCodeSegmenter, err, "tokenize")
	}
	table, err := freq.Aggregate(terms, freq.Options{
		Limit:     opts.MaxWords,
		Stopwords: opts.Stopwords,
	})
	if err != nil {
		return nil, 0, err
	}
	return table, len(terms), nil
}

// tokensEntry is the cached form of a tokenization.
type tokensEntry struct {
	Table  freq.Table `json:"table"`
	Tokens int        `json:"tokens"`
}

func marshalTokens(t freq.Table, tokens int) ([]byte, error) {
	return json.Marshal(tokensEntry{Table: t, Tokens: tokens})
}

func unmarshalTokens(data []byte) (freq.Table, int, error) {
	var e tokensEntry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, 0, err
	}
	return e.Table, e.Tokens, nil
}
