package colour

import "image"

// minContrast is the normalized squared distance below which an extracted
// dark/light pair is considered too close to use as a two-tone ink pair.
const minContrast = 0.3

// maxDistance is the largest possible squared channel distance, 255²×3,
// used to normalize into [0,1].
const maxDistance = 195075

// DarkLight picks a usable dark/light color pair from an image: the dark ink
// is the prominent color favoring darkness, the light one the prominent color
// favoring hue. When the pair lacks contrast the dark ink falls back to
// black; when the light pick turns out near-black it falls back to white.
// Both corrections are independent and may both apply.
func DarkLight(img image.Image) (dark, light RGB, err error) {
	h := NewHistogram(img)
	return darkLight(h)
}

func darkLight(h *Histogram) (dark, light RGB, err error) {
	dark, err = Extract(h, FavourDark)
	if err != nil {
		return RGB{}, RGB{}, err
	}

	light, err = Extract(h, FavourHue)
	if err != nil {
		return RGB{}, RGB{}, err
	}

	dr := int(dark.R) - int(light.R)
	dg := int(dark.G) - int(light.G)
	db := int(dark.B) - int(light.B)
	distance := float64(dr*dr+dg*dg+db*db) / maxDistance

	if distance < minContrast {
		dark = Black
	}

	if light.R < 50 && light.G < 50 && light.B < 50 {
		light = White
	}

	return dark, light, nil
}
