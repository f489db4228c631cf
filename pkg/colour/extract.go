package colour

import (
	"errors"
	"math"
)

// ErrEmptyHistogram is returned when extraction is attempted over a histogram
// with no entries: no maximum exists, and returning a default color would
// silently corrupt downstream contrast decisions.
var ErrEmptyHistogram = errors.New("colour: empty histogram")

// degradeLevels is the fixed refinement schedule: the number of low-order
// bits dropped from each channel before bucketing. The first pass groups the
// 16.7M possible colors into 64 buckets per channel to find the dominant
// region of color space; each later pass refines within the previous winner
// only, down to the exact color at level 0.
var degradeLevels = [...]uint{6, 4, 2, 0}

// rgbMatch is the per-pass accumulator: the winning degraded color, its
// accumulated weight, and the level it was computed at. It constrains which
// histogram entries survive into the next, finer pass.
type rgbMatch struct {
	r, g, b uint8
	weight  uint64
	degrade uint
}

func (m *rgbMatch) admits(c RGB) bool {
	if m == nil {
		return true
	}
	return c.R>>m.degrade == m.r && c.G>>m.degrade == m.g && c.B>>m.degrade == m.b
}

type weightedColor struct {
	color RGB
	total uint64 // policy weight times occurrence count
}

// Extract finds the single most representative color of the histogram under
// the given weighting policy.
func Extract(h *Histogram, p Policy) (RGB, error) {
	if h == nil || h.Len() == 0 {
		return RGB{}, ErrEmptyHistogram
	}

	weighted := make([]weightedColor, 0, h.Len())
	h.each(func(c RGB, count int) {
		w := math.Floor(p.Weigh(c))
		if w < 0 {
			w = 0
		}
		weighted = append(weighted, weightedColor{color: c, total: uint64(w) * uint64(count)})
	})

	var match *rgbMatch
	for _, degrade := range degradeLevels {
		next := prominentAt(weighted, degrade, match)
		match = &next
	}

	return RGB{match.r, match.g, match.b}, nil
}

// prominentAt runs one bucketing pass at the given degrade level, keeping
// only entries admitted by the previous pass's winner. Ties on accumulated
// weight break toward the first bucket seen, which is deterministic because
// the entries are walked in histogram insertion order.
func prominentAt(weighted []weightedColor, degrade uint, prev *rgbMatch) rgbMatch {
	buckets := make(map[RGB]uint64)
	order := make([]RGB, 0, len(weighted))

	for _, wc := range weighted {
		if !prev.admits(wc.color) {
			continue
		}

		key := RGB{wc.color.R >> degrade, wc.color.G >> degrade, wc.color.B >> degrade}
		if _, seen := buckets[key]; !seen {
			order = append(order, key)
		}
		buckets[key] += wc.total
	}

	best := order[0]
	for _, key := range order[1:] {
		if buckets[key] > buckets[best] {
			best = key
		}
	}

	return rgbMatch{r: best.R, g: best.G, b: best.B, weight: buckets[best], degrade: degrade}
}
