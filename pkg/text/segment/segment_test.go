package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func surfaces(toks []Token) []string {
	out := make([]string, 0, len(toks))
	for _, t := range toks {
		out = append(out, t.Surface)
	}
	return out
}

func TestKagomeSegment(t *testing.T) {
	k, err := NewKagome()
	require.NoError(t, err)

	toks, err := k.Segment("猫が好き。猫は可愛い。")
	require.NoError(t, err)
	assert.Equal(t, []string{"猫", "が", "好き", "。", "猫", "は", "可愛い", "。"}, surfaces(toks))

	want := map[string]Category{
		"猫":   Noun,
		"が":   Other,
		"好き":  Noun,
		"。":   Other,
		"は":   Other,
		"可愛い": Adjective,
	}
	for _, tok := range toks {
		assert.Equal(t, want[tok.Surface], tok.POS, "surface %q (tag %q)", tok.Surface, tok.Tag)
	}
}

func TestKagomeVerb(t *testing.T) {
	k, err := NewKagome()
	require.NoError(t, err)

	toks, err := k.Segment("走る")
	require.NoError(t, err)
	require.Len(t, toks, 1)
	assert.Equal(t, Verb, toks[0].POS)
	assert.Equal(t, "動詞", toks[0].Tag)
}

func TestKagomeEmpty(t *testing.T) {
	k, err := NewKagome()
	require.NoError(t, err)

	toks, err := k.Segment("")
	require.NoError(t, err)
	assert.Empty(t, toks)
}

func TestWordsSegment(t *testing.T) {
	toks, err := NewWords().Segment("The quick, brown fox")
	require.NoError(t, err)

	var nouns []string
	for _, tok := range toks {
		if tok.POS == Noun {
			nouns = append(nouns, tok.Surface)
		}
	}
	assert.Equal(t, []string{"The", "quick", "brown", "fox"}, nouns)

	for _, tok := range toks {
		if tok.Surface == "," {
			assert.Equal(t, Other, tok.POS)
		}
	}
}

func TestWordsDigitsAreOther(t *testing.T) {
	toks, err := NewWords().Segment("42")
	require.NoError(t, err)
	for _, tok := range toks {
		assert.Equal(t, Other, tok.POS, "surface %q", tok.Surface)
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in      string
		want    Category
		wantErr bool
	}{
		{"noun", Noun, false},
		{"Verb", Verb, false},
		{" adjective ", Adjective, false},
		{"adj", Adjective, false},
		{"名詞", Noun, false},
		{"動詞", Verb, false},
		{"形容詞", Adjective, false},
		{"adverb", Other, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCategory(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCategories(t *testing.T) {
	got, err := ParseCategories([]string{"名詞", "verb", "Noun"})
	require.NoError(t, err)
	assert.Equal(t, []Category{Noun, Verb}, got)

	got, err = ParseCategories(nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = ParseCategories([]string{"noun", "adverb"})
	assert.Error(t, err)
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "noun", Noun.String())
	assert.Equal(t, "other", Other.String())
	assert.Equal(t, "category(42)", Category(42).String())
}

func TestNew(t *testing.T) {
	for _, name := range []string{"ja", "kagome", "words", "whitespace"} {
		seg, err := New(name)
		require.NoError(t, err, name)
		assert.NotNil(t, seg)
	}
	_, err := New("klingon")
	assert.Error(t, err)
}
