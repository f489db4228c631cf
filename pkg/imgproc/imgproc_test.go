package imgproc

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestResizeDimensions(t *testing.T) {
	src := solid(10, 10, color.RGBA{30, 60, 90, 255})
	dst := Resize(src, 25, 15)

	if dst.Bounds().Dx() != 25 || dst.Bounds().Dy() != 15 {
		t.Fatalf("resized bounds = %v, want 25x15", dst.Bounds())
	}

	if got := dst.RGBAAt(12, 7); got != (color.RGBA{30, 60, 90, 255}) {
		t.Errorf("resized pixel = %v, want source color", got)
	}
}

func TestEnhanceIdentity(t *testing.T) {
	src := solid(4, 4, color.RGBA{100, 150, 200, 255})
	out := Enhance(src, 1.0, 1.0)

	if got := out.RGBAAt(2, 2); got != (color.RGBA{100, 150, 200, 255}) {
		t.Errorf("identity enhancement changed pixel: %v", got)
	}
}

func TestEnhanceBrightness(t *testing.T) {
	src := solid(4, 4, color.RGBA{100, 100, 100, 255})
	out := Enhance(src, 1.0, 1.5)

	if got := out.RGBAAt(0, 0); got != (color.RGBA{150, 150, 150, 255}) {
		t.Errorf("brightened pixel = %v, want (150,150,150)", got)
	}

	// Brightness clamps rather than wrapping.
	bright := Enhance(solid(2, 2, color.RGBA{200, 200, 200, 255}), 1.0, 2.0)
	if got := bright.RGBAAt(0, 0); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("overbright pixel = %v, want clamped white", got)
	}
}

func TestEnhanceContrastSpreadsAroundMean(t *testing.T) {
	// Two-tone image: contrast > 1 must push the dark side darker and the
	// bright side brighter while a uniform image is a fixed point.
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{100, 100, 100, 255})
	img.SetRGBA(1, 0, color.RGBA{200, 200, 200, 255})

	out := Enhance(img, 1.5, 1.0)

	darker := out.RGBAAt(0, 0)
	brighter := out.RGBAAt(1, 0)

	if darker.R >= 100 {
		t.Errorf("dark pixel should darken, got %d", darker.R)
	}
	if brighter.R <= 200 {
		t.Errorf("bright pixel should brighten, got %d", brighter.R)
	}

	flat := Enhance(solid(3, 3, color.RGBA{90, 90, 90, 255}), 1.5, 1.0)
	if got := flat.RGBAAt(1, 1); got != (color.RGBA{90, 90, 90, 255}) {
		t.Errorf("uniform image should be unchanged by contrast, got %v", got)
	}
}

func TestEncodePNGWithDPI(t *testing.T) {
	src := solid(5, 5, color.RGBA{1, 2, 3, 255})

	var buf bytes.Buffer
	if err := EncodePNGWithDPI(&buf, src, 300); err != nil {
		t.Fatal(err)
	}

	decoded, err := png.Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("stamped PNG no longer decodes: %v", err)
	}

	if decoded.Bounds().Dx() != 5 || decoded.Bounds().Dy() != 5 {
		t.Errorf("decoded bounds = %v", decoded.Bounds())
	}

	// The pHYs chunk sits immediately after IHDR.
	raw := buf.Bytes()
	if string(raw[pngHeaderLen+4:pngHeaderLen+8]) != "pHYs" {
		t.Fatalf("expected pHYs chunk after IHDR, found %q", raw[pngHeaderLen+4:pngHeaderLen+8])
	}

	ppm := binary.BigEndian.Uint32(raw[pngHeaderLen+8 : pngHeaderLen+12])
	if want := PixelsPerMeter(300); ppm != want {
		t.Errorf("pHYs x density = %d, want %d", ppm, want)
	}

	if want := uint32(11811); ppm != want { // 300 DPI in pixels per meter
		t.Errorf("300 DPI should be %d ppm, got %d", want, ppm)
	}
}

func TestEncodePNGWithDPIRejectsBadDPI(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodePNGWithDPI(&buf, solid(1, 1, color.RGBA{}), 0); err == nil {
		t.Error("expected an error for zero DPI")
	}
}
