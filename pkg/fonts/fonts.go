// Package fonts loads fonts and turns them into sized faces for layout and
// rendering.
//
// A [Font] is parsed once and is immutable; it can be shared by concurrent
// runs. Faces are not safe for concurrent use, so every run creates its own
// [Faces] set, which caches one face per pixel size.
//
// Sizes are pixels: faces are created at 72 DPI so one point is one pixel.
package fonts

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"

	"github.com/matzehuels/wordcloud/pkg/errors"
)

// Font is a parsed font file.
type Font struct {
	name string
	path string
	data []byte

	sf *sfnt.Font     // set when x/image/font/sfnt accepts the file
	tt *truetype.Font // fallback parser for glyf fonts sfnt rejects

	b64Once sync.Once
	b64     string
}

// Parse parses TrueType, OpenType (CFF) or collection (.ttc, first face)
// data. Files the sfnt parser rejects are retried with freetype.
func Parse(name string, data []byte) (*Font, error) {
	f := &Font{name: name, data: data}

	var err error
	if bytes.HasPrefix(data, []byte("ttcf")) {
		var c *opentype.Collection
		if c, err = opentype.ParseCollection(data); err == nil {
			f.sf, err = c.Font(0)
		}
	} else {
		f.sf, err = opentype.Parse(data)
	}
	if err != nil {
		tt, ttErr := truetype.Parse(data)
		if ttErr != nil {
			return nil, fmt.Errorf("parse font %s: %w", name, err)
		}
		f.sf, f.tt = nil, tt
	}

	if family := f.family(); family != "" {
		f.name = family
	}
	return f, nil
}

// Load reads and parses a font file.
func Load(path string) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "font %s not found", path)
		}
		return nil, errors.Wrap(errors.ErrCodeFontUnreadable, err, "read font %s", path)
	}
	f, err := Parse(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)), data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFontUnreadable, err, "font %s", path)
	}
	f.path = path
	return f, nil
}

var (
	defaultFont     *Font
	defaultFontOnce sync.Once
)

// Default returns the embedded Go Regular font. It covers Latin, Greek and
// Cyrillic only; CJK terms render as missing-glyph boxes.
func Default() *Font {
	defaultFontOnce.Do(func() {
		f, err := Parse("Go Regular", goregular.TTF)
		if err != nil {
			panic(fmt.Sprintf("fonts: embedded Go Regular: %v", err))
		}
		defaultFont = f
	})
	return defaultFont
}

func (f *Font) family() string {
	if f.sf != nil {
		name, err := f.sf.Name(&sfnt.Buffer{}, sfnt.NameIDFamily)
		if err == nil {
			return name
		}
		return ""
	}
	return f.tt.Name(truetype.NameIDFontFamily)
}

// Name returns the family name, or the file name when the font has none.
func (f *Font) Name() string { return f.name }

// Path returns the file the font was loaded from; empty for embedded fonts.
func (f *Font) Path() string { return f.path }

// Data returns the raw font file.
func (f *Font) Data() []byte { return f.data }

// Base64 returns the font file as base64, for embedding in SVG.
// The result is cached after first computation.
func (f *Font) Base64() string {
	f.b64Once.Do(func() {
		f.b64 = base64.StdEncoding.EncodeToString(f.data)
	})
	return f.b64
}

// MIMEType guesses the font's media type for data URLs.
func (f *Font) MIMEType() string {
	switch {
	case bytes.HasPrefix(f.data, []byte("OTTO")):
		return "font/otf"
	case bytes.HasPrefix(f.data, []byte("ttcf")):
		return "font/collection"
	default:
		return "font/ttf"
	}
}

// NewFace creates a face at size pixels. Faces are not safe for concurrent
// use; prefer a [Faces] set per run.
func (f *Font) NewFace(size int) (font.Face, error) {
	if size <= 0 {
		return nil, fmt.Errorf("font size must be positive, got %d", size)
	}
	if f.sf != nil {
		return opentype.NewFace(f.sf, &opentype.FaceOptions{
			Size:    float64(size),
			DPI:     72,
			Hinting: font.HintingNone,
		})
	}
	return truetype.NewFace(f.tt, &truetype.Options{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingNone,
	}), nil
}
