// Package svgdoc holds the vector-artwork utilities: loading a marker SVG,
// rewriting its stylable attributes, and rasterizing it to an RGBA buffer at
// a requested size.
package svgdoc

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// Document is a mutable in-memory SVG. Attribute rewrites are plain text
// edits; the markup is only parsed when rasterizing.
type Document struct {
	raw []byte
}

// Load reads an SVG file from disk.
func Load(path string) (*Document, error) {
	if !strings.EqualFold(filepath.Ext(path), ".svg") {
		return nil, fmt.Errorf("not an SVG file: %s", path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", path, err)
	}

	return &Document{raw: raw}, nil
}

// FromBytes wraps raw SVG markup. The bytes are copied.
func FromBytes(raw []byte) *Document {
	return &Document{raw: bytes.Clone(raw)}
}

// Bytes returns the current markup.
func (d *Document) Bytes() []byte {
	return d.raw
}

// Clone returns an independent copy, so one loaded artwork can be recolored
// differently per use.
func (d *Document) Clone() *Document {
	return FromBytes(d.raw)
}

// SetAttr replaces the value of every attr attribute in the document. When
// condition is non-empty only attributes whose current value equals the
// condition are rewritten; artwork marks its stylable parts with sentinel
// values like fill="dark" for exactly this substitution.
func (d *Document) SetAttr(attr, value, condition string) {
	current := `[^"']*`
	if condition != "" {
		current = regexp.QuoteMeta(condition)
	}

	re := regexp.MustCompile(fmt.Sprintf(`\b(%s)\s*=\s*(["'])%s(["'])`, regexp.QuoteMeta(attr), current))
	d.raw = re.ReplaceAll(d.raw, []byte(`${1}=${2}`+value+`${3}`))
}

// Rasterize renders the document to an RGBA image of exactly width x height
// pixels, stretching the viewbox to fit.
func (d *Document) Rasterize(width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid raster size %dx%d", width, height)
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(d.raw))
	if err != nil {
		return nil, fmt.Errorf("unable to parse SVG: %w", err)
	}

	icon.SetTarget(0, 0, float64(width), float64(height))

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(width, height, scanner), 1.0)

	return img, nil
}
