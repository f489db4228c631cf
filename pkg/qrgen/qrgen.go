// Package qrgen builds QR code images whose three finder markers can be
// located, stripped, and replaced with custom artwork. Encoding and error
// correction are delegated to the go-qrcode library; this package owns the
// module-matrix geometry and the marker compositing.
package qrgen

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/yeqown/go-qrcode/v2"
	"github.com/yeqown/go-qrcode/writer/standard"

	"github.com/moalkhateeb/qrink/pkg/colour"
	"github.com/moalkhateeb/qrink/pkg/imgproc"
)

// maxModuleScale is the largest per-module pixel width the bitmap writer
// accepts.
const maxModuleScale = 255

// Code is one QR code tied to a target output size. The rendered bitmap is
// borderless so a module at matrix position (col,row) occupies the pixel
// block starting at (col*scale, row*scale).
type Code struct {
	Data   string
	Width  int
	Height int
	DPI    int

	qrc   *qrcode.QRCode
	mat   qrcode.Matrix
	scale int
	img   *image.RGBA
}

// New encodes data at the highest error-correction level (marker artwork
// costs readability, so redundancy is maxed) and derives the pixels-per-
// module scale factor from the target width.
func New(data string, width, height, dpi int) (*Code, error) {
	if data == "" {
		return nil, fmt.Errorf("no data to encode")
	}

	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid target size %dx%d", width, height)
	}

	qrc, err := qrcode.NewWith(data, qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionHighest))
	if err != nil {
		return nil, fmt.Errorf("unable to encode %q: %w", data, err)
	}

	c := &Code{
		Data:   data,
		Width:  width,
		Height: height,
		DPI:    dpi,
		qrc:    qrc,
	}

	// The library only exposes its module matrix to a Writer, so capture it
	// through one.
	mw := &matrixWriter{}
	if err := qrc.Save(mw); err != nil {
		return nil, fmt.Errorf("unable to read module matrix: %w", err)
	}
	c.mat = mw.mat

	dim := c.mat.Width()
	c.scale = (width + dim - 1) / dim
	if c.scale < 1 {
		c.scale = 1
	}
	if c.scale > maxModuleScale {
		return nil, fmt.Errorf("target width %d needs module scale %d (max %d)", width, c.scale, maxModuleScale)
	}

	return c, nil
}

// Dimension reports the module matrix width (the matrix is square).
func (c *Code) Dimension() int {
	return c.mat.Width()
}

// Scale reports the derived pixels-per-module factor.
func (c *Code) Scale() int {
	return c.scale
}

// Image returns the rendered bitmap, or nil before Render is called.
func (c *Code) Image() *image.RGBA {
	return c.img
}

// Render draws the two-tone bitmap with dark modules in dark and the
// background in light, at Scale pixels per module with no quiet zone. The
// quiet zone is reintroduced by whatever surrounds the final image; keeping
// the bitmap borderless keeps module and pixel coordinates aligned for the
// marker scan.
func (c *Code) Render(dark, light colour.RGB) error {
	var buf bytes.Buffer
	w := standard.NewWithWriter(nopCloser{&buf},
		standard.WithQRWidth(uint8(c.scale)),
		standard.WithBorderWidth(0),
		standard.WithFgColor(rgba(dark)),
		standard.WithBgColor(rgba(light)),
		standard.WithBuiltinImageEncoder(standard.PNG_FORMAT),
	)

	if err := c.qrc.Save(w); err != nil {
		return fmt.Errorf("unable to render bitmap: %w", err)
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("unable to finish bitmap: %w", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		return fmt.Errorf("unable to decode rendered bitmap: %w", err)
	}

	c.img = imgproc.ToRGBA(img)
	return nil
}

// Save resizes the rendered bitmap to the target width and height and writes
// it to pathname as a PNG with the configured DPI.
func (c *Code) Save(pathname string) error {
	if c.img == nil {
		return fmt.Errorf("no rendered image to save")
	}

	out := c.img
	bounds := out.Bounds()
	if bounds.Dx() != c.Width || bounds.Dy() != c.Height {
		out = imgproc.Resize(out, c.Width, c.Height)
	}

	return imgproc.SavePNG(pathname, out, c.DPI)
}

//--------------------------------------------------------------------------------
// private

// matrixWriter satisfies the qrcode.Writer interface purely to copy the
// module matrix out of the encoder.
type matrixWriter struct {
	mat qrcode.Matrix
}

var _ qrcode.Writer = (*matrixWriter)(nil)

func (w *matrixWriter) Write(mat qrcode.Matrix) error {
	w.mat = mat
	return nil
}

func (w *matrixWriter) Close() error { return nil }

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

func rgba(c colour.RGB) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}
