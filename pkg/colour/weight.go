package colour

import "fmt"

// Policy scores a color for the extractor: higher means more desirable as the
// prominent pick. The set is closed; a new selection goal means a new
// constant here, not a caller-supplied callback.
type Policy int

const (
	// FavourHue rewards chromatic spread between the channels. Near-gray
	// pixels score close to 1.
	FavourHue Policy = iota

	// FavourDark scores monotonically higher for darker pixels: pure black
	// scores 769, pure white scores 1.
	FavourDark

	// FavourBrightExcludeWhite rewards bright pixels but zeroes out
	// near-white ones (all channels above 245).
	FavourBrightExcludeWhite

	// FavourSaturation scores the HSL saturation of the pixel.
	FavourSaturation
)

var policyNames = map[string]Policy{
	"hue":        FavourHue,
	"dark":       FavourDark,
	"bright":     FavourBrightExcludeWhite,
	"saturation": FavourSaturation,
}

// ParsePolicy resolves a policy by its short name: hue, dark, bright, or
// saturation.
func ParsePolicy(name string) (Policy, error) {
	p, ok := policyNames[name]
	if !ok {
		return 0, fmt.Errorf("unknown weighting policy: %q", name)
	}
	return p, nil
}

func (p Policy) String() string {
	switch p {
	case FavourHue:
		return "hue"
	case FavourDark:
		return "dark"
	case FavourBrightExcludeWhite:
		return "bright"
	case FavourSaturation:
		return "saturation"
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

// Weigh scores c according to the policy. Results are never negative.
func (p Policy) Weigh(c RGB) float64 {
	r, g, b := float64(c.R), float64(c.G), float64(c.B)

	switch p {
	case FavourDark:
		return 768 - r - g - b + 1
	case FavourBrightExcludeWhite:
		if c.R > 245 && c.G > 245 && c.B > 245 {
			return 0
		}
		return (r*r+g*g+b*b)/65535*20 + 1
	case FavourSaturation:
		maxValue := max(r, g, b) / 255
		minValue := min(r, g, b) / 255
		luminosity := maxValue - minValue

		switch {
		case luminosity == 0:
			return 0
		case luminosity < 0.5:
			return luminosity / (maxValue + minValue)
		default:
			// Includes luminosity exactly 0.5, which the HSL formula leaves
			// ambiguous between the two denominators. The high branch is
			// used so the function stays continuous from above.
			return luminosity / (2 - maxValue - minValue)
		}
	default: // FavourHue
		rg, rb, gb := r-g, r-b, g-b
		return (rg*rg+rb*rb+gb*gb)/65535*50 + 1
	}
}
