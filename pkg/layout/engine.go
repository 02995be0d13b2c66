package layout

import (
	"context"
	"image"
	"math"
	"math/rand/v2"
	"time"

	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/freq"
	"github.com/matzehuels/wordcloud/pkg/mask"
)

// Skip reasons reported in Result.Skipped.
const (
	ReasonNoSpace = "no space"
	ReasonTimeout = "timeout"
	ReasonEmpty   = "empty glyph"
)

// Skip records a term that could not be placed.
type Skip struct {
	Term   string `json:"term"`
	Count  int    `json:"count"`
	Reason string `json:"reason"`
}

// Result is the outcome of one layout pass.
type Result struct {
	Width      int         `json:"width"`
	Height     int         `json:"height"`
	Placements []Placement `json:"placements"`
	Skipped    []Skip      `json:"skipped"`

	// Candidates is the number of positions tested.
	Candidates int `json:"candidates"`
}

// Engine places terms on a canvas. An Engine holds no per-run state and may
// be reused; every Place call gets its own placement grid.
type Engine struct {
	raster Rasterizer
	opts   Options
}

// New creates an Engine. Zero options take their defaults; invalid ones are
// rejected.
func New(r Rasterizer, opts Options) (*Engine, error) {
	if r == nil {
		return nil, errors.New(errors.ErrCodeInternal, "layout requires a rasterizer")
	}
	opts = opts.WithDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Engine{raster: r, opts: opts}, nil
}

// Options returns the effective options after defaults.
func (e *Engine) Options() Options {
	return e.opts
}

// Place lays out terms in rank order.
//
// bm restricts placement to its allowed cells; nil allows the whole canvas.
// Its size must equal the canvas size. Terms that do not fit at any size
// are skipped and reported; an empty table yields an empty result. Place
// returns the partial result together with ctx.Err() when ctx is cancelled.
func (e *Engine) Place(ctx context.Context, terms freq.Table, bm *mask.Bitmap) (*Result, error) {
	o := e.opts
	if bm != nil && (bm.Width() != o.Width || bm.Height() != o.Height) {
		return nil, errors.New(errors.ErrCodeInvalidDimensions,
			"mask is %dx%d but canvas is %dx%d", bm.Width(), bm.Height(), o.Width, o.Height)
	}

	r := &run{
		opts:   o,
		raster: e.raster,
		placed: newGrid(o.Width, o.Height),
		rng:    rand.New(rand.NewPCG(o.Seed, o.Seed^0xdeadbeef)),
	}
	if bm != nil {
		r.forbidden = gridFrom(o.Width, o.Height, bm.Forbidden)
	} else {
		r.forbidden = newGrid(o.Width, o.Height)
	}
	r.allowed = o.Width*o.Height - r.forbidden.total()

	res := &Result{
		Width:      o.Width,
		Height:     o.Height,
		Placements: []Placement{},
		Skipped:    []Skip{},
	}
	defer func() { res.Candidates = r.candidates }()

	sizes := fontSizes(terms, o.MinFontSize, o.MaxFontSize, o.Scaling)
	last := o.MaxFontSize
	for i, entry := range terms {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if o.MaxGlyphs > 0 && len(res.Placements) >= o.MaxGlyphs {
			break
		}
		p, reason, err := r.placeTerm(ctx, entry, min(sizes[i], last))
		if err != nil {
			return res, err
		}
		if p == nil {
			res.Skipped = append(res.Skipped, Skip{Term: entry.Term, Count: entry.Count, Reason: reason})
			continue
		}
		res.Placements = append(res.Placements, *p)
		last = p.FontSize
	}
	return res, nil
}

// run is the mutable state of one Place call.
type run struct {
	opts       Options
	raster     Rasterizer
	forbidden  *grid
	placed     *grid
	allowed    int
	rng        *rand.Rand
	candidates int
}

// placeTerm tries sizes from size down to MinFontSize and both orientations
// at each size.
func (r *run) placeTerm(ctx context.Context, entry freq.Entry, size int) (*Placement, string, error) {
	o := r.opts
	var deadline time.Time
	if o.TermTimeout > 0 {
		deadline = time.Now().Add(o.TermTimeout)
	}

	orients := []bool{false}
	if o.Vertical > 0 {
		orients = []bool{false, true}
		if r.rng.Float64() < o.Vertical {
			orients = []bool{true, false}
		}
	}
	phase := r.rng.Float64() * 2 * math.Pi
	pixel := o.Collision == CollisionPixel

	for s := size; ; s = max(s-o.FontStep, o.MinFontSize) {
		g, err := r.raster.Rasterize(entry.Term, s, pixel)
		if err != nil {
			return nil, "", errors.Wrap(errors.ErrCodeLayout, err, "rasterize %q at %dpx", entry.Term, s)
		}
		if g.Width <= 0 || g.Height <= 0 {
			return nil, ReasonEmpty, nil
		}
		for _, rotated := range orients {
			if err := ctx.Err(); err != nil {
				return nil, "", err
			}
			if !deadline.IsZero() && time.Now().After(deadline) {
				return nil, ReasonTimeout, nil
			}
			w, h, ink := g.Width, g.Height, g.Ink
			if rotated {
				w, h = h, w
				if ink != nil {
					ink = rotateCCW(ink)
				}
			}
			x, y, ok := r.search(ctx, w, h, ink, phase, deadline)
			if !ok {
				continue
			}
			box := image.Rect(x, y, x+w, y+h)
			if pixel && ink != nil {
				r.placed.stamp(ink, x, y, o.Margin)
			} else {
				r.placed.fill(box)
			}
			return &Placement{
				Term:     entry.Term,
				Count:    entry.Count,
				X:        x,
				Y:        y,
				Width:    w,
				Height:   h,
				Rotated:  rotated,
				FontSize: s,
				DotX:     g.DotX,
				DotY:     g.DotY,
			}, "", nil
		}
		if s == o.MinFontSize {
			break
		}
	}
	return nil, ReasonNoSpace, nil
}

// search walks the spiral for a w × h box. ink is non-nil in pixel mode.
func (r *run) search(ctx context.Context, w, h int, ink *image.Alpha, phase float64, deadline time.Time) (int, int, bool) {
	o := r.opts
	if w > o.Width || h > o.Height || r.allowed < w*h {
		return 0, 0, false
	}
	// In box mode placed cells are always allowed cells, so the free area
	// is exact and bounds what can still fit.
	if ink == nil && r.allowed-r.placed.total() < w*h {
		return 0, 0, false
	}

	cx, cy := float64(o.Width)/2, float64(o.Height)/2
	sp := newSpiral(cx, cy, phase, o.Step, math.Hypot(cx, cy))
	for n := 0; ; n++ {
		if o.MaxIterations > 0 && n >= o.MaxIterations {
			return 0, 0, false
		}
		if n&4095 == 0 && n > 0 {
			if ctx.Err() != nil || (!deadline.IsZero() && time.Now().After(deadline)) {
				return 0, 0, false
			}
		}
		px, py, ok := sp.next()
		if !ok {
			return 0, 0, false
		}
		r.candidates++

		x := int(math.Round(px - float64(w)/2))
		y := int(math.Round(py - float64(h)/2))
		if x < 0 || y < 0 || x+w > o.Width || y+h > o.Height {
			continue
		}
		box := image.Rect(x, y, x+w, y+h)
		if r.forbidden.count(box) > 0 {
			continue
		}
		if r.placed.count(box.Inset(-o.Margin)) == 0 {
			return x, y, true
		}
		if ink != nil && !r.placed.hitsInk(ink, x, y) {
			return x, y, true
		}
	}
}
