package fonts

import (
	"github.com/flopp/go-findfont"

	"github.com/matzehuels/wordcloud/pkg/errors"
)

// SystemFallbacks are font files looked up with findfont when the configured
// font is unusable, in order. Japanese-capable fonts come first.
var SystemFallbacks = []string{
	"NotoSansJP-Regular.ttf",
	"NotoSansCJKjp-Regular.otf",
	"NotoSansCJK-Regular.ttc",
	"ipaexg.ttf",
	"ipag.ttf",
	"TakaoGothic.ttf",
	"VL-Gothic-Regular.ttf",
	"YuGothM.ttc",
	"msgothic.ttc",
	"Hiragino Sans GB.ttc",
	"DejaVuSans.ttf",
	"Arial.ttf",
}

// Resolve loads the font at path, falling back to a system font and finally
// to the embedded default.
//
// Every fallback step adds a warning. An empty path skips straight to the
// system lookup without warning about it.
func Resolve(path string) (*Font, []errors.Warning) {
	var warnings []errors.Warning
	if path != "" {
		f, err := Load(path)
		if err == nil {
			return f, nil
		}
		warnings = append(warnings, errors.AsWarning(err, errors.ErrCodeFontUnreadable))
	}

	if f, name := findSystem(SystemFallbacks); f != nil {
		if path != "" {
			warnings = append(warnings, errors.Warn(errors.ErrCodeFontUnreadable, nil,
				"using system font %s (%s)", f.Name(), name))
		}
		return f, warnings
	}

	warnings = append(warnings, errors.Warn(errors.ErrCodeFontUnreadable, nil,
		"no system font found, using embedded %s (no CJK glyphs)", Default().Name()))
	return Default(), warnings
}

func findSystem(names []string) (*Font, string) {
	for _, name := range names {
		p, err := findfont.Find(name)
		if err != nil {
			continue
		}
		f, err := Load(p)
		if err != nil {
			continue
		}
		return f, p
	}
	return nil, ""
}
