package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"full width latin", "Ｗｏｒｄ", "WORD"},
		{"half width katakana", "ｶﾀｶﾅ", "カタカナ"},
		{"case folding", "Hello World", "HELLO WORLD"},
		{"sharp s", "straße", "STRASSE"},
		{"quote brackets removed", "「猫」（ねこ）", "猫ねこ"},
		{"lenticular brackets removed", "【速報】猫", "速報猫"},
		{"array brackets spaced", "a[b]c", "A B C"},
		{"full width array brackets", "猫［犬］", "猫 犬 "},
		{"mention", "hello @user world", "HELLO  WORLD"},
		{"full width mention", "＠someone 猫", " 猫"},
		{"japanese mention", "@猫好き です", " です"},
		{"integer", "猫が3匹", "猫が匹"},
		{"decimal", "円周率は3.14です", "円周率はです"},
		{"full width digits", "１２３ABC", "ABC"},
		{"thousands separator", "1,000", ","},
		{"passthrough", "猫が好き。", "猫が好き。"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"猫が好き。猫は可愛い。",
		"@(user)name",
		"1(2)3.4.5",
		"[@]abc",
		"＠＠ｘ１．２",
		"「【（『ｓｔｒａßｅ』）】」",
		"ﬁﬂ ligatures ①②③",
		"x1@y2[z]3",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestNormalizerOptions(t *testing.T) {
	n := NewNormalizer(NormalizeOptions{KeepMentions: true, KeepNumbers: true})
	assert.Equal(t, "@USER 42", n.Normalize("@user 42"))

	n = NewNormalizer(NormalizeOptions{RemoveSymbols: "#", SpaceSymbols: "|"})
	assert.Equal(t, "TAG A B (X)", n.Normalize("#tag a|b (x)"))
}

func TestNormalizeDoesNotGrowBeyondFolding(t *testing.T) {
	in := "猫［犬］【鳥】@魚 12.5"
	assert.LessOrEqual(t, len([]rune(Normalize(in))), len([]rune(in)))
}
