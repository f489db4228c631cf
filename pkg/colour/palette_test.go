package colour

import (
	"image"
	"image/color"
	"testing"
)

func TestDarkLightKeepsContrastingPair(t *testing.T) {
	// Dark pixels dominate the dark pick, a saturated red dominates the hue
	// pick; distance (245²+35²+35²)/195075 ≈ 0.32 stays above the contrast
	// floor so neither correction applies.
	img := image.NewRGBA(image.Rect(0, 0, 15, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 15; x++ {
			if x < 10 {
				img.SetRGBA(x, y, color.RGBA{5, 5, 5, 255})
			} else {
				img.SetRGBA(x, y, color.RGBA{250, 40, 40, 255})
			}
		}
	}

	dark, light, err := DarkLight(img)
	if err != nil {
		t.Fatal(err)
	}

	if dark != (RGB{5, 5, 5}) {
		t.Errorf("dark = %v, want (5,5,5)", dark)
	}

	if light != (RGB{250, 40, 40}) {
		t.Errorf("light = %v, want (250,40,40)", light)
	}
}

func TestDarkLightForcesBlackOnLowContrast(t *testing.T) {
	// Both picks land close together; the dark ink must fall back to black
	// while the light pick survives (its red channel is not below 50).
	img := image.NewRGBA(image.Rect(0, 0, 15, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 15; x++ {
			if x < 10 {
				img.SetRGBA(x, y, color.RGBA{10, 10, 10, 255})
			} else {
				img.SetRGBA(x, y, color.RGBA{60, 20, 20, 255})
			}
		}
	}

	dark, light, err := DarkLight(img)
	if err != nil {
		t.Fatal(err)
	}

	if dark != Black {
		t.Errorf("dark = %v, want forced black", dark)
	}

	if light != (RGB{60, 20, 20}) {
		t.Errorf("light = %v, want (60,20,20)", light)
	}
}

func TestDarkLightForcesBothCorrections(t *testing.T) {
	// A single near-black color: zero distance forces dark to black, and the
	// near-black light pick is forced to white independently.
	img := uniformImage(8, 8, color.RGBA{40, 40, 40, 255})

	dark, light, err := DarkLight(img)
	if err != nil {
		t.Fatal(err)
	}

	if dark != Black {
		t.Errorf("dark = %v, want forced black", dark)
	}

	if light != White {
		t.Errorf("light = %v, want forced white", light)
	}
}

func TestDarkLightScenarioFromKnownPair(t *testing.T) {
	// dark=(10,10,10), light=(250,250,250): distance (240²×3)/195075 ≈ 0.886,
	// no correction fires and the pair comes back unchanged. Both colors are
	// gray so the hue weights tie per pixel; the light color's count
	// dominance decides its bucket.
	img := image.NewRGBA(image.Rect(0, 0, 6, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 6; x++ {
			if x == 0 {
				img.SetRGBA(x, y, color.RGBA{10, 10, 10, 255})
			} else {
				img.SetRGBA(x, y, color.RGBA{250, 250, 250, 255})
			}
		}
	}

	dark, light, err := DarkLight(img)
	if err != nil {
		t.Fatal(err)
	}

	if dark != (RGB{10, 10, 10}) {
		t.Errorf("dark = %v, want (10,10,10)", dark)
	}

	if light != (RGB{250, 250, 250}) {
		t.Errorf("light = %v, want (250,250,250)", light)
	}
}

func TestDarkLightEmptyImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 0, 0))
	if _, _, err := DarkLight(img); err == nil {
		t.Fatal("expected an error for an empty image")
	}
}
