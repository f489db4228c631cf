// Package imgproc provides the raster-image plumbing around QR generation:
// decoding companion images, the pre-extraction color correction, the final
// resize, and PNG encoding with DPI metadata.
package imgproc

import (
	"fmt"
	"image"
	"os"

	// Register the supported companion-image formats.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"golang.org/x/image/draw"
)

// Load decodes an image file from disk.
func Load(pathname string) (image.Image, error) {
	f, err := os.Open(pathname)
	if err != nil {
		return nil, fmt.Errorf("unable to open %s: %w", pathname, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("unable to decode %s: %w", pathname, err)
	}

	return img, nil
}

// ToRGBA converts any image to an RGBA buffer, copying if needed.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)
	return rgba
}

// Resize scales img to exactly width x height using nearest-neighbor
// sampling, which keeps QR module edges sharp.
func Resize(img image.Image, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// Enhance applies a contrast and a brightness adjustment. A factor of 1.0
// leaves the image unchanged. Contrast interpolates each channel against the
// mean luminance of the image; brightness scales channels directly.
func Enhance(img image.Image, contrast, brightness float64) *image.RGBA {
	src := ToRGBA(img)
	out := image.NewRGBA(src.Bounds())

	mean := meanLuminance(src)

	bounds := src.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			i := src.PixOffset(x, y)
			for c := 0; c < 3; c++ {
				v := float64(src.Pix[i+c])
				v = mean + contrast*(v-mean)
				v *= brightness
				out.Pix[i+c] = clampByte(v)
			}
			out.Pix[i+3] = src.Pix[i+3]
		}
	}

	return out
}

// ColourCorrect boosts an image before palette extraction: contrast up,
// brightness up, contrast up again. The double contrast pass pushes muddled
// midtones apart so the dominant hue separates from the background.
func ColourCorrect(img image.Image) *image.RGBA {
	out := Enhance(img, 1.3, 1.0)
	out = Enhance(out, 1.0, 1.1)
	return Enhance(out, 1.3, 1.0)
}

func meanLuminance(img *image.RGBA) float64 {
	bounds := img.Bounds()
	total := 0
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			i := img.PixOffset(x, y)
			r, g, b := int(img.Pix[i]), int(img.Pix[i+1]), int(img.Pix[i+2])
			total += (r*299 + g*587 + b*114) / 1000
		}
	}

	return float64(total) / float64(pixels)
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
