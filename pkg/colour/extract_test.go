package colour

import (
	"errors"
	"image/color"
	"testing"
)

func histogramOf(entries map[RGB]int, order []RGB) *Histogram {
	h := &Histogram{index: make(map[RGB]int)}
	for _, c := range order {
		for i := 0; i < entries[c]; i++ {
			h.Add(c)
		}
	}
	return h
}

func TestExtractEmptyHistogram(t *testing.T) {
	h := &Histogram{index: make(map[RGB]int)}
	_, err := Extract(h, FavourHue)
	if !errors.Is(err, ErrEmptyHistogram) {
		t.Fatalf("expected ErrEmptyHistogram, got %v", err)
	}

	if _, err := Extract(nil, FavourHue); !errors.Is(err, ErrEmptyHistogram) {
		t.Fatalf("expected ErrEmptyHistogram for nil, got %v", err)
	}
}

func TestExtractDominantRed(t *testing.T) {
	// The red bucket's weight*count dwarfs the green one at every degrade
	// level, so refinement must converge on the exact red.
	h := histogramOf(
		map[RGB]int{{255, 0, 0}: 100, {0, 255, 0}: 1},
		[]RGB{{255, 0, 0}, {0, 255, 0}},
	)

	got, err := Extract(h, FavourHue)
	if err != nil {
		t.Fatal(err)
	}

	if got != (RGB{255, 0, 0}) {
		t.Errorf("Extract = %v, want #ff0000", got)
	}
}

func TestExtractSingleColor(t *testing.T) {
	h := histogramOf(map[RGB]int{{0, 0, 0}: 64}, []RGB{{0, 0, 0}})

	got, err := Extract(h, FavourDark)
	if err != nil {
		t.Fatal(err)
	}

	if got != Black {
		t.Errorf("Extract = %v, want #000000", got)
	}
}

func TestExtractRefinesWithinWinningBucket(t *testing.T) {
	// (200,0,0) and (201,0,0) share every coarse bucket; (10,10,10) is a
	// hue-weight lightweight. The final pass must separate the two reds.
	h := histogramOf(
		map[RGB]int{{200, 0, 0}: 10, {201, 0, 0}: 30, {10, 10, 10}: 500},
		[]RGB{{200, 0, 0}, {201, 0, 0}, {10, 10, 10}},
	)

	got, err := Extract(h, FavourHue)
	if err != nil {
		t.Fatal(err)
	}

	if got != (RGB{201, 0, 0}) {
		t.Errorf("Extract = %v, want (201,0,0)", got)
	}
}

func TestExtractDeterministic(t *testing.T) {
	h := NewHistogram(uniformImage(8, 8, color.RGBA{40, 90, 160, 255}))
	h.Add(RGB{90, 40, 160})
	h.Add(RGB{160, 90, 40})

	first, err := Extract(h, FavourSaturation)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 20; i++ {
		again, err := Extract(h, FavourSaturation)
		if err != nil {
			t.Fatal(err)
		}
		if again != first {
			t.Fatalf("run %d returned %v, first run returned %v", i, again, first)
		}
	}
}

func TestExtractTieBreaksOnFirstSeen(t *testing.T) {
	// Two colors in distinct top-level buckets with identical weight*count:
	// the winner must be whichever the histogram saw first.
	a, b := RGB{255, 0, 0}, RGB{0, 255, 0}

	h := histogramOf(map[RGB]int{a: 5, b: 5}, []RGB{a, b})
	got, err := Extract(h, FavourHue)
	if err != nil {
		t.Fatal(err)
	}
	if got != a {
		t.Errorf("first-seen %v should win the tie, got %v", a, got)
	}

	h = histogramOf(map[RGB]int{a: 5, b: 5}, []RGB{b, a})
	got, err = Extract(h, FavourHue)
	if err != nil {
		t.Fatal(err)
	}
	if got != b {
		t.Errorf("first-seen %v should win the tie, got %v", b, got)
	}
}

func TestExtractAllZeroWeights(t *testing.T) {
	// FavourBrightExcludeWhite zeroes near-white pixels; with nothing else in
	// the image every bucket weighs zero and the first-seen bucket wins.
	h := histogramOf(
		map[RGB]int{{250, 250, 250}: 9, {255, 255, 255}: 3},
		[]RGB{{250, 250, 250}, {255, 255, 255}},
	)

	got, err := Extract(h, FavourBrightExcludeWhite)
	if err != nil {
		t.Fatal(err)
	}

	if got != (RGB{250, 250, 250}) {
		t.Errorf("Extract = %v, want the first-seen color", got)
	}
}
