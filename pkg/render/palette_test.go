package render

import (
	"image/color"
	"testing"

	"github.com/matzehuels/wordcloud/pkg/errors"
)

func TestLookupPalette(t *testing.T) {
	p, err := LookupPalette("paired")
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "Paired" || len(p.Stops) != 12 || !p.Listed {
		t.Errorf("Paired = %+v", p)
	}

	def, err := LookupPalette("")
	if err != nil || def.Name != DefaultPalette {
		t.Errorf("default palette = %v, %v", def.Name, err)
	}

	rev, err := LookupPalette("Paired_r")
	if err != nil {
		t.Fatal(err)
	}
	if rev.At(0) != p.At(1) || rev.At(1) != p.At(0) {
		t.Error("reversed palette endpoints do not mirror")
	}
	if p.At(0) != (color.RGBA{0xa6, 0xce, 0xe3, 0xff}) {
		t.Errorf("reversing mutated the built-in palette: %v", p.At(0))
	}

	_, err = LookupPalette("nope")
	if !errors.Is(err, errors.ErrCodeInvalidPalette) {
		t.Errorf("unknown: err = %v, want INVALID_PALETTE", err)
	}
}

func TestInlinePalette(t *testing.T) {
	p, err := LookupPalette("#ff0000, #0000ff")
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Stops) != 2 || !p.Listed {
		t.Fatalf("inline palette = %+v", p)
	}
	if p.At(0.1) != (color.RGBA{0xff, 0, 0, 0xff}) || p.At(0.9) != (color.RGBA{0, 0, 0xff, 0xff}) {
		t.Error("inline palette sampled wrong")
	}
	if _, err := LookupPalette("#ff0000,#zz"); !errors.Is(err, errors.ErrCodeInvalidPalette) {
		t.Errorf("bad inline colour: err = %v", err)
	}
}

func TestPaletteAtContinuous(t *testing.T) {
	p, _ := LookupPalette("gray")
	if p.At(0) != (color.RGBA{0, 0, 0, 0xff}) {
		t.Errorf("At(0) = %v", p.At(0))
	}
	if p.At(1) != (color.RGBA{0xff, 0xff, 0xff, 0xff}) {
		t.Errorf("At(1) = %v", p.At(1))
	}
	mid := p.At(0.5)
	if mid.R < 0x40 || mid.R > 0xc0 || absDiff(mid.R, mid.G) > 2 || absDiff(mid.G, mid.B) > 2 {
		t.Errorf("At(0.5) = %v, want a neutral mid grey", mid)
	}
	if p.At(-3) != p.At(0) || p.At(7) != p.At(1) {
		t.Error("out-of-range t should clamp")
	}
}

func TestPaletteNames(t *testing.T) {
	names := PaletteNames()
	if len(names) == 0 || names[0] != "Accent" {
		t.Errorf("PaletteNames = %v", names)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"white", color.RGBA{0xff, 0xff, 0xff, 0xff}, false},
		{"White", color.RGBA{0xff, 0xff, 0xff, 0xff}, false},
		{"#1f78b4", color.RGBA{0x1f, 0x78, 0xb4, 0xff}, false},
		{"f00", color.RGBA{0xff, 0, 0, 0xff}, false},
		{"transparent", color.RGBA{}, false},
		{"", color.RGBA{}, true},
		{"blurple", color.RGBA{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, errors.ErrCodeInvalidColor) {
					t.Errorf("code = %s", errors.GetCode(err))
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestHex(t *testing.T) {
	if got := Hex(color.RGBA{0x1f, 0x78, 0xb4, 0xff}); got != "#1f78b4" {
		t.Errorf("Hex = %q", got)
	}
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}
