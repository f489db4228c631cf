// Package colour implements the prominent-color selection used to pick
// foreground/background inks for a generated QR code. The selection walks a
// pixel histogram through progressively finer color-space buckets, guided by
// a pluggable weighting policy.
package colour

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is an exact 24-bit color value. It is the unit the histogram, the
// weighting policies, and the extractor all operate on.
type RGB struct {
	R, G, B uint8
}

var (
	Black = RGB{0, 0, 0}
	White = RGB{255, 255, 255}
)

// Hex returns the color formatted as "#rrggbb".
func (c RGB) Hex() string {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}.Hex()
}

func (c RGB) String() string {
	return c.Hex()
}

// Parse reads a "#rrggbb" (or "#rgb") formatted color value.
func Parse(s string) (RGB, error) {
	col, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("unable to parse color %q: %w", s, err)
	}

	r, g, b := col.RGB255()
	return RGB{r, g, b}, nil
}
