package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/matzehuels/wordcloud/pkg/fonts"
	"github.com/matzehuels/wordcloud/pkg/layout"
)

func placementFor(t *testing.T, faces *fonts.Faces, term string, size, x, y int, rotated bool) layout.Placement {
	t.Helper()
	g, err := faces.Rasterize(term, size, false)
	if err != nil {
		t.Fatal(err)
	}
	p := layout.Placement{
		Term: term, X: x, Y: y, Width: g.Width, Height: g.Height,
		FontSize: size, DotX: g.DotX, DotY: g.DotY, Rotated: rotated,
		Color: color.RGBA{R: 0xff, A: 0xff},
	}
	if rotated {
		p.Width, p.Height = p.Height, p.Width
	}
	return p
}

// inkOutside counts non-background pixels outside r grown by one pixel, and
// inked pixels inside.
func inkCounts(img *image.RGBA, r image.Rectangle, bg color.RGBA) (inside, outside int) {
	grown := r.Inset(-1)
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) == bg {
				continue
			}
			if image.Pt(x, y).In(grown) {
				inside++
			} else {
				outside++
			}
		}
	}
	return inside, outside
}

func TestRenderEmpty(t *testing.T) {
	faces := fonts.NewFaces(fonts.Default())
	defer faces.Close()

	bg := color.RGBA{R: 10, G: 20, B: 30, A: 0xff}
	img, err := Render(&layout.Result{Width: 64, Height: 32}, faces, WithBackground(bg))
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds() != image.Rect(0, 0, 64, 32) {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	inside, outside := inkCounts(img, image.Rectangle{}, bg)
	if inside+outside != 0 {
		t.Errorf("%d non-background pixels on an empty canvas", inside+outside)
	}
}

func TestRenderStaysInBox(t *testing.T) {
	faces := fonts.NewFaces(fonts.Default())
	defer faces.Close()

	for _, rotated := range []bool{false, true} {
		p := placementFor(t, faces, "Gopher", 40, 30, 20, rotated)
		res := &layout.Result{Width: 240, Height: 200, Placements: []layout.Placement{p}}

		img, err := Render(res, faces)
		if err != nil {
			t.Fatal(err)
		}
		white := color.RGBA{0xff, 0xff, 0xff, 0xff}
		inside, outside := inkCounts(img, p.Bounds(), white)
		if inside < 50 {
			t.Errorf("rotated=%v: only %d inked pixels inside %v", rotated, inside, p.Bounds())
		}
		if outside != 0 {
			t.Errorf("rotated=%v: %d inked pixels outside %v", rotated, outside, p.Bounds())
		}
	}
}

func TestRenderScale(t *testing.T) {
	faces := fonts.NewFaces(fonts.Default())
	defer faces.Close()

	p := placementFor(t, faces, "Go", 20, 5, 5, false)
	img, err := Render(&layout.Result{Width: 100, Height: 50, Placements: []layout.Placement{p}}, faces, WithScale(2))
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 200 || img.Bounds().Dy() != 100 {
		t.Errorf("bounds = %v, want 200x100", img.Bounds())
	}
}

func TestRenderDefaultColor(t *testing.T) {
	faces := fonts.NewFaces(fonts.Default())
	defer faces.Close()

	p := placementFor(t, faces, "Go", 30, 5, 5, false)
	p.Color = color.RGBA{}
	img, err := Render(&layout.Result{Width: 80, Height: 50, Placements: []layout.Placement{p}}, faces)
	if err != nil {
		t.Fatal(err)
	}
	black := 0
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] == 0 && img.Pix[i+1] == 0 && img.Pix[i+2] == 0 {
			black++
		}
	}
	if black == 0 {
		t.Error("uncoloured placement should be drawn in black")
	}
}

func TestColorize(t *testing.T) {
	pal, err := LookupPalette("viridis")
	if err != nil {
		t.Fatal(err)
	}
	mk := func() []layout.Placement {
		ps := make([]layout.Placement, 5)
		ps[2].Color = color.RGBA{R: 1, A: 0xff}
		return ps
	}

	a, b := mk(), mk()
	if err := Colorize(a, pal, ColorRandom, 3); err != nil {
		t.Fatal(err)
	}
	_ = Colorize(b, pal, ColorRandom, 3)
	for i := range a {
		if a[i].Color != b[i].Color {
			t.Errorf("placement %d: colours differ for the same seed", i)
		}
		if a[i].Color.A == 0 {
			t.Errorf("placement %d left uncoloured", i)
		}
	}
	if a[2].Color != (color.RGBA{R: 1, A: 0xff}) {
		t.Error("preset colour overwritten")
	}

	r := mk()
	if err := Colorize(r, pal, ColorRank, 0); err != nil {
		t.Fatal(err)
	}
	if r[0].Color != pal.At(0) || r[4].Color != pal.At(1) {
		t.Error("rank mode should span the palette")
	}

	if err := Colorize(mk(), pal, "rainbow", 0); err == nil {
		t.Error("unknown mode accepted")
	}
}
