package layout

import "math"

// spiral walks an Archimedean spiral r = a·θ outward from a centre point.
// Successive turns are step pixels apart and successive samples are roughly
// step pixels apart along the curve.
type spiral struct {
	cx, cy float64
	phase  float64 // start angle
	a      float64
	step   float64
	maxR   float64
	theta  float64
	first  bool
}

func newSpiral(cx, cy, phase, step, maxR float64) *spiral {
	return &spiral{
		cx:    cx,
		cy:    cy,
		phase: phase,
		a:     step / (2 * math.Pi),
		step:  step,
		maxR:  maxR,
		first: true,
	}
}

// next returns the next candidate point, or false once the spiral has left
// the search radius. The first point is the centre itself.
func (s *spiral) next() (x, y float64, ok bool) {
	if s.first {
		s.first = false
		return s.cx, s.cy, true
	}
	r := s.a * s.theta
	// Arc length per sample is about r·dθ; near the centre use a full step.
	s.theta += s.step / max(r, s.step)
	r = s.a * s.theta
	if r > s.maxR {
		return 0, 0, false
	}
	t := s.theta + s.phase
	return s.cx + r*math.Cos(t), s.cy + r*math.Sin(t), true
}
