package layout

import (
	"image"
	"math/rand/v2"
	"reflect"
	"testing"

	"github.com/matzehuels/wordcloud/pkg/freq"
)

func bruteCount(g *grid, r image.Rectangle) int {
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if g.at(x, y) {
				n++
			}
		}
	}
	return n
}

func TestGridCount(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	g := gridFrom(37, 23, func(x, y int) bool { return rng.IntN(3) == 0 })

	for i := 0; i < 200; i++ {
		x0, y0 := rng.IntN(45)-4, rng.IntN(30)-4
		r := image.Rect(x0, y0, x0+rng.IntN(20), y0+rng.IntN(20))
		if got, want := g.count(r), bruteCount(g, r); got != want {
			t.Fatalf("count(%v) = %d, want %d", r, got, want)
		}
	}
	if g.total() != bruteCount(g, image.Rect(0, 0, 37, 23)) {
		t.Error("total mismatch")
	}
}

func TestGridFillUpdatesTable(t *testing.T) {
	g := newGrid(20, 10)
	g.fill(image.Rect(5, 2, 9, 6))
	g.fill(image.Rect(15, 8, 30, 30))

	if got := g.total(); got != 16+10 {
		t.Errorf("total = %d, want 26", got)
	}
	for _, r := range []image.Rectangle{
		image.Rect(0, 0, 20, 10),
		image.Rect(6, 3, 7, 4),
		image.Rect(0, 0, 5, 10),
		image.Rect(8, 5, 16, 9),
	} {
		if got, want := g.count(r), bruteCount(g, r); got != want {
			t.Errorf("count(%v) = %d, want %d", r, got, want)
		}
	}
}

func TestGridStampDilates(t *testing.T) {
	g := newGrid(10, 10)
	ink := image.NewAlpha(image.Rect(0, 0, 1, 1))
	ink.Pix[0] = 0xff
	g.stamp(ink, 4, 4, 1)

	if g.total() != 9 {
		t.Errorf("total = %d, want 9", g.total())
	}
	if !g.at(3, 3) || !g.at(5, 5) || g.at(6, 6) {
		t.Error("dilation footprint wrong")
	}
	if !g.hitsInk(ink, 5, 5) || g.hitsInk(ink, 6, 6) {
		t.Error("hitsInk disagrees with cells")
	}
}

func TestRotateCCW(t *testing.T) {
	// 3×2 source:
	//   a b c
	//   d e f
	src := image.NewAlpha(image.Rect(0, 0, 3, 2))
	copy(src.Pix, []uint8{1, 2, 3, 4, 5, 6})

	// Counter-clockwise result is 2×3:
	//   c f
	//   b e
	//   a d
	dst := rotateCCW(src)
	if dst.Bounds() != image.Rect(0, 0, 2, 3) {
		t.Fatalf("bounds = %v", dst.Bounds())
	}
	want := []uint8{3, 6, 2, 5, 1, 4}
	if !reflect.DeepEqual(dst.Pix, want) {
		t.Errorf("Pix = %v, want %v", dst.Pix, want)
	}
}

func TestSpiral(t *testing.T) {
	sp := newSpiral(50, 50, 0, 2, 10)
	x, y, ok := sp.next()
	if !ok || x != 50 || y != 50 {
		t.Fatalf("first point = (%g,%g,%v), want centre", x, y, ok)
	}
	n := 1
	prevR := 0.0
	for {
		x, y, ok := sp.next()
		if !ok {
			break
		}
		n++
		r := (x-50)*(x-50) + (y-50)*(y-50)
		if r < prevR {
			t.Fatalf("radius decreased at sample %d", n)
		}
		prevR = r
		if r > 100+1e-9 {
			t.Fatalf("sample outside radius: (%g,%g)", x, y)
		}
	}
	if n < 10 {
		t.Errorf("only %d samples inside radius 10", n)
	}
}

func TestFontSizes(t *testing.T) {
	tbl := freq.Table{{Term: "a", Count: 100}, {Term: "b", Count: 10}, {Term: "c", Count: 10}, {Term: "d", Count: 1}}

	lin := fontSizes(tbl, 10, 109, ScaleLinear)
	if want := []int{109, 19, 19, 10}; !reflect.DeepEqual(lin, want) {
		t.Errorf("linear = %v, want %v", lin, want)
	}
	lg := fontSizes(tbl, 10, 110, ScaleLog)
	if want := []int{110, 60, 60, 10}; !reflect.DeepEqual(lg, want) {
		t.Errorf("log = %v, want %v", lg, want)
	}

	same := fontSizes(freq.Table{{Term: "a", Count: 3}, {Term: "b", Count: 3}}, 10, 50, ScaleLinear)
	if want := []int{50, 50}; !reflect.DeepEqual(same, want) {
		t.Errorf("equal counts = %v, want %v", same, want)
	}

	if got := fontSizes(nil, 10, 50, ScaleLinear); len(got) != 0 {
		t.Errorf("empty = %v", got)
	}
}
