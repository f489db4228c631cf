package colour

import "image"

// Histogram counts how often each distinct color occurs in an image. Entries
// preserve first-seen (scanline) order so iteration is deterministic: Go map
// order is randomized, and the extractor's tie-breaking depends on a stable
// walk over the entries.
type Histogram struct {
	index   map[RGB]int
	entries []histEntry
	pixels  int
}

type histEntry struct {
	color RGB
	count int
}

// NewHistogram builds the frequency table for img, visiting pixels row by
// row. Alpha is dropped, matching an RGB conversion of the source image.
func NewHistogram(img image.Image) *Histogram {
	h := &Histogram{index: make(map[RGB]int)}

	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			h.Add(RGB{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)})
		}
	}

	return h
}

// Add records one occurrence of c.
func (h *Histogram) Add(c RGB) {
	h.pixels++
	if i, ok := h.index[c]; ok {
		h.entries[i].count++
		return
	}

	h.index[c] = len(h.entries)
	h.entries = append(h.entries, histEntry{color: c, count: 1})
}

// Len reports the number of distinct colors.
func (h *Histogram) Len() int {
	return len(h.entries)
}

// Pixels reports the total number of recorded occurrences. For a histogram
// built from an image this equals width multiplied by height.
func (h *Histogram) Pixels() int {
	return h.pixels
}

// Count reports the occurrences recorded for c.
func (h *Histogram) Count(c RGB) int {
	if i, ok := h.index[c]; ok {
		return h.entries[i].count
	}
	return 0
}

func (h *Histogram) each(fn func(c RGB, count int)) {
	for _, e := range h.entries {
		fn(e.color, e.count)
	}
}
