package qrgen

import (
	"errors"
	"fmt"
	"image"
	"image/draw"

	"github.com/moalkhateeb/qrink/pkg/colour"
	"github.com/moalkhateeb/qrink/pkg/svgdoc"
)

// ErrRegionMismatch indicates a marker region with inverted corners or one
// that falls outside the image it is applied to.
var ErrRegionMismatch = errors.New("qrgen: marker region does not fit the image")

// ErrMissingArtwork indicates the marker artwork could not be rasterized at
// the required size.
var ErrMissingArtwork = errors.New("qrgen: marker artwork unavailable")

// StripMarkers paints each region of img with the fill color, erasing the
// structural marker pixels so artwork can be layered into the cleared
// rectangles.
func StripMarkers(img *image.RGBA, regions [3]Region, fill colour.RGB) error {
	for _, r := range regions {
		if err := checkRegion(img, r); err != nil {
			return err
		}

		draw.Draw(img, r.Rect(), image.NewUniform(rgba(fill)), image.Point{}, draw.Src)
	}

	return nil
}

// OverlayArtwork rasterizes art at each region's size and composites it over
// img at the region's top-left corner, honoring the artwork's alpha channel.
// Regions are processed in their fixed top-left, top-right, bottom-left
// order so output bytes are reproducible.
func OverlayArtwork(img *image.RGBA, regions [3]Region, art *svgdoc.Document) error {
	for _, r := range regions {
		if err := checkRegion(img, r); err != nil {
			return err
		}

		raster, err := art.Rasterize(r.Dx(), r.Dy())
		if err != nil {
			return fmt.Errorf("%w: %s at %dx%d", ErrMissingArtwork, err, r.Dx(), r.Dy())
		}

		draw.Draw(img, r.Rect(), raster, image.Point{}, draw.Over)
	}

	return nil
}

// ReplaceMarkers performs the full marker swap on the rendered code: locate
// the three finder markers, erase them with the light fill, recolor the
// artwork's stylable parts, and composite it into each cleared region.
func (c *Code) ReplaceMarkers(art *svgdoc.Document, dark, light colour.RGB) error {
	if c.img == nil {
		return fmt.Errorf("no rendered image to replace markers on")
	}

	tl, tr, bl, err := c.LocateMarkers()
	if err != nil {
		return err
	}
	regions := [3]Region{tl, tr, bl}

	if err := StripMarkers(c.img, regions, light); err != nil {
		return err
	}

	recolored := art.Clone()
	recolored.SetAttr("fill", dark.Hex(), "dark")
	recolored.SetAttr("stroke", dark.Hex(), "dark")
	recolored.SetAttr("fill", light.Hex(), "light")
	recolored.SetAttr("stroke", light.Hex(), "light")

	return OverlayArtwork(c.img, regions, recolored)
}

func checkRegion(img *image.RGBA, r Region) error {
	if r.Max.X < r.Min.X || r.Max.Y < r.Min.Y {
		return fmt.Errorf("%w: inverted corners %s", ErrRegionMismatch, r)
	}

	if !r.Rect().In(img.Bounds()) {
		return fmt.Errorf("%w: %s outside %v", ErrRegionMismatch, r, img.Bounds())
	}

	return nil
}
