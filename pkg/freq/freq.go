// Package freq counts filtered terms and ranks them for layout.
//
// A [Table] is the hand-off between the text stage and the layout engine:
// unique terms, positive counts, sorted by count descending with ties broken
// by first occurrence, truncated to a configured limit.
package freq

import (
	"slices"

	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/text"
)

// Entry is one ranked term.
type Entry struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// Table is a ranked term-frequency table.
type Table []Entry

// Options configures Aggregate.
type Options struct {
	// Limit is the maximum number of entries kept. Must be positive.
	Limit int

	// Stopwords are dropped before counting. They are folded with Fold
	// so they match normalized terms regardless of width or case.
	Stopwords []string

	// Fold canonicalizes stopwords. Nil means text.Normalize.
	Fold func(string) string
}

// Aggregate counts terms, drops stopwords and returns the top Limit entries.
//
// Ranking is stable: equal counts keep the order in which the terms were
// first seen. A Limit of zero or less is a configuration error.
func Aggregate(terms []string, opts Options) (Table, error) {
	if opts.Limit <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "max_words must be positive, got %d", opts.Limit)
	}
	fold := opts.Fold
	if fold == nil {
		fold = text.Normalize
	}
	stop := make(map[string]bool, len(opts.Stopwords))
	for _, s := range opts.Stopwords {
		if f := fold(s); f != "" {
			stop[f] = true
		}
	}

	index := make(map[string]int)
	table := make(Table, 0)
	for _, term := range terms {
		if term == "" || stop[term] {
			continue
		}
		if i, ok := index[term]; ok {
			table[i].Count++
			continue
		}
		index[term] = len(table)
		table = append(table, Entry{Term: term, Count: 1})
	}

	slices.SortStableFunc(table, func(a, b Entry) int {
		return b.Count - a.Count
	})
	if len(table) > opts.Limit {
		table = table[:opts.Limit:opts.Limit]
	}
	return table, nil
}

// Max returns the highest count, or 0 for an empty table.
func (t Table) Max() int {
	if len(t) == 0 {
		return 0
	}
	return t[0].Count
}

// Min returns the lowest count, or 0 for an empty table.
func (t Table) Min() int {
	if len(t) == 0 {
		return 0
	}
	return t[len(t)-1].Count
}

// Total returns the sum of all counts.
func (t Table) Total() int {
	n := 0
	for _, e := range t {
		n += e.Count
	}
	return n
}

