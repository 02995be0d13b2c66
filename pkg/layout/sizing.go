package layout

import (
	"math"

	"github.com/matzehuels/wordcloud/pkg/freq"
)

// Scaling maps counts to font sizes.
type Scaling int

const (
	ScaleLinear Scaling = iota
	ScaleLog
)

// String returns the configuration name of the scaling.
func (s Scaling) String() string {
	if s == ScaleLog {
		return "log"
	}
	return "linear"
}

// fontSizes returns the target size of every entry in rank order.
//
// The top count maps to maxSize and the lowest to minSize. Equal counts get
// equal sizes and, because the table is sorted, sizes never increase.
func fontSizes(t freq.Table, minSize, maxSize int, scaling Scaling) []int {
	out := make([]int, len(t))
	if len(t) == 0 {
		return out
	}
	hi, lo := float64(t.Max()), float64(t.Min())
	if scaling == ScaleLog {
		hi, lo = math.Log(hi), math.Log(lo)
	}
	span := float64(maxSize - minSize)
	for i, e := range t {
		c := float64(e.Count)
		if scaling == ScaleLog {
			c = math.Log(c)
		}
		frac := 1.0
		if hi > lo {
			frac = (c - lo) / (hi - lo)
		}
		out[i] = minSize + int(math.Round(frac*span))
		if i > 0 && out[i] > out[i-1] {
			out[i] = out[i-1]
		}
	}
	return out
}
