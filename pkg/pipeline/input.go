package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wordcloud/pkg/config"
	"github.com/matzehuels/wordcloud/pkg/errors"
)

// SampleText seeds the default input file when it does not exist yet.
const SampleText = `Pythonは、オープンソースのプログラミング言語です。
データ分析や機械学習、自然言語処理などの分野で広く利用されています。
MeCabを使って日本語のテキストを解析し、ワードクラウドを作成するのは非常に楽しい作業です。
このファイルを編集して、自由にテキストを変更できます。
`

// ReadInput returns the text of a run. Inline text wins over a path.
//
// The default input path is created with [SampleText] when missing. Any
// other missing or unreadable file yields empty text and a warning, which
// renders as a background-only canvas. Invalid UTF-8 is dropped with a
// warning.
func ReadInput(opts Options, logger *log.Logger) (string, []errors.Warning) {
	if opts.Text != "" || opts.InputPath == "" {
		return validUTF8(opts.Text)
	}
	path := opts.InputPath

	if filepath.Clean(path) == filepath.Clean(config.DefaultInputPath) {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			logger.Info("creating default input file", "path", path)
			if err := writeSample(path); err != nil {
				return "", []errors.Warning{errors.Warn(errors.ErrCodeTextUnreadable, err, "create default input %s", path)}
			}
		}
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", []errors.Warning{errors.Warn(errors.ErrCodeFileNotFound, err, "text file not found: %s", path)}
	}
	if err != nil {
		return "", []errors.Warning{errors.Warn(errors.ErrCodeTextUnreadable, err, "read text file %s", path)}
	}
	logger.Info("loaded text file", "path", path, "chars", utf8.RuneCount(data))
	return validUTF8(string(data))
}

func validUTF8(s string) (string, []errors.Warning) {
	if utf8.ValidString(s) {
		return s, nil
	}
	return strings.ToValidUTF8(s, ""), []errors.Warning{
		errors.Warn(errors.ErrCodeTextUnreadable, nil, "text is not valid UTF-8; invalid bytes dropped"),
	}
}

func writeSample(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(SampleText), 0o644)
}
