// Package kmeans cross-checks the histogram-based palette with a clustering
// pass over the same image.
package kmeans

import (
	"errors"
	"fmt"
	"image"

	"github.com/EdlinOrg/prominentcolor"

	"github.com/moalkhateeb/qrink/pkg/colour"
	"github.com/moalkhateeb/qrink/pkg/imgproc"
)

// Dominant returns the centroid of the largest k-means cluster of img.
func Dominant(img image.Image) (colour.RGB, error) {
	colors, err := prominentcolor.KmeansWithArgs(prominentcolor.ArgumentNoCropping, img)
	if err != nil {
		return colour.RGB{}, fmt.Errorf("unable to cluster image: %w", err)
	}

	var best *prominentcolor.ColorItem
	for i := range colors {
		if best == nil || colors[i].Cnt > best.Cnt {
			best = &colors[i]
		}
	}

	if best == nil {
		return colour.RGB{}, errors.New("no clusters found")
	}

	return colour.RGB{
		R: uint8(best.Color.R),
		G: uint8(best.Color.G),
		B: uint8(best.Color.B),
	}, nil
}

// DominantOf is Dominant applied to an image file.
func DominantOf(pathname string) (colour.RGB, error) {
	img, err := imgproc.Load(pathname)
	if err != nil {
		return colour.RGB{}, err
	}

	return Dominant(img)
}
