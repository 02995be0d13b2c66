package layout

import "image"

// grid is a boolean cell grid with a summed-area table for O(1) box counts.
type grid struct {
	w, h  int
	cells []bool
	sum   []int32 // (w+1) × (h+1), row-major, first row and column zero
}

func newGrid(w, h int) *grid {
	return &grid{
		w:     w,
		h:     h,
		cells: make([]bool, w*h),
		sum:   make([]int32, (w+1)*(h+1)),
	}
}

// gridFrom builds a grid whose set cells are those where set reports true.
func gridFrom(w, h int, set func(x, y int) bool) *grid {
	g := newGrid(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g.cells[y*w+x] = set(x, y)
		}
	}
	g.rebuild(0, 0)
	return g
}

// rebuild recomputes the summed-area table for every entry at or below row
// y0 and at or right of column x0. Entries above or left of that corner
// only depend on unchanged cells.
func (g *grid) rebuild(x0, y0 int) {
	stride := g.w + 1
	for y := max(y0, 0); y < g.h; y++ {
		for x := max(x0, 0); x < g.w; x++ {
			var c int32
			if g.cells[y*g.w+x] {
				c = 1
			}
			i := (y+1)*stride + x + 1
			g.sum[i] = c + g.sum[i-stride] + g.sum[i-1] - g.sum[i-stride-1]
		}
	}
}

// count returns the number of set cells in r, clipped to the grid.
func (g *grid) count(r image.Rectangle) int {
	r = r.Intersect(image.Rect(0, 0, g.w, g.h))
	if r.Empty() {
		return 0
	}
	stride := g.w + 1
	a := g.sum[r.Min.Y*stride+r.Min.X]
	b := g.sum[r.Min.Y*stride+r.Max.X]
	c := g.sum[r.Max.Y*stride+r.Min.X]
	d := g.sum[r.Max.Y*stride+r.Max.X]
	return int(d - b - c + a)
}

// total returns the number of set cells.
func (g *grid) total() int {
	return int(g.sum[len(g.sum)-1])
}

func (g *grid) at(x, y int) bool {
	if x < 0 || x >= g.w || y < 0 || y >= g.h {
		return false
	}
	return g.cells[y*g.w+x]
}

// fill sets every cell of r and refreshes the table.
func (g *grid) fill(r image.Rectangle) {
	r = r.Intersect(image.Rect(0, 0, g.w, g.h))
	if r.Empty() {
		return
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := g.cells[y*g.w : (y+1)*g.w]
		for x := r.Min.X; x < r.Max.X; x++ {
			row[x] = true
		}
	}
	g.rebuild(r.Min.X, r.Min.Y)
}

// stamp sets the cells under every inked pixel of ink placed at (x, y),
// dilated by margin, and refreshes the table.
func (g *grid) stamp(ink *image.Alpha, x, y, margin int) {
	b := ink.Bounds()
	minX, minY := g.w, g.h
	for v := 0; v < b.Dy(); v++ {
		for u := 0; u < b.Dx(); u++ {
			if ink.Pix[v*ink.Stride+u] == 0 {
				continue
			}
			for dy := -margin; dy <= margin; dy++ {
				py := y + v + dy
				if py < 0 || py >= g.h {
					continue
				}
				for dx := -margin; dx <= margin; dx++ {
					px := x + u + dx
					if px < 0 || px >= g.w {
						continue
					}
					g.cells[py*g.w+px] = true
					minX, minY = min(minX, px), min(minY, py)
				}
			}
		}
	}
	if minX < g.w {
		g.rebuild(minX, minY)
	}
}

// hitsInk reports whether any inked pixel of ink placed at (x, y) lands on
// a set cell.
func (g *grid) hitsInk(ink *image.Alpha, x, y int) bool {
	b := ink.Bounds()
	for v := 0; v < b.Dy(); v++ {
		row := g.cells[(y+v)*g.w:]
		for u := 0; u < b.Dx(); u++ {
			if ink.Pix[v*ink.Stride+u] != 0 && row[x+u] {
				return true
			}
		}
	}
	return false
}
