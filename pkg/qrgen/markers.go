package qrgen

import (
	"errors"
	"fmt"
	"image"
	"sort"

	"github.com/yeqown/go-qrcode/v2"
)

// ErrIncompleteMarker indicates the module matrix did not yield finder-dark
// modules in one of the three expected quadrants, so the code is malformed
// or uses a non-standard layout.
var ErrIncompleteMarker = errors.New("qrgen: incomplete finder marker")

// Region is one finder marker's bounding box in pixel space. Min and Max are
// both inclusive corners.
type Region struct {
	Min image.Point
	Max image.Point
}

// Dx reports the region width in pixels.
func (r Region) Dx() int { return r.Max.X - r.Min.X + 1 }

// Dy reports the region height in pixels.
func (r Region) Dy() int { return r.Max.Y - r.Min.Y + 1 }

// Rect converts the inclusive corners to a half-open image.Rectangle.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.Min.X, r.Min.Y, r.Max.X+1, r.Max.Y+1)
}

func (r Region) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.Min.X, r.Min.Y, r.Max.X, r.Max.Y)
}

// Overlaps reports whether two regions share any pixel.
func (r Region) Overlaps(other Region) bool {
	return r.Rect().Overlaps(other.Rect())
}

// LocateMarkers scans the module matrix for the three finder markers and
// returns their pixel-space bounding boxes in the order top-left, top-right,
// bottom-left. Modules are classified by their position relative to the
// rendered image's midpoints; the extremes of x+y over each quadrant's
// points are the marker's corners, since finder patterns are axis-aligned
// filled squares.
func (c *Code) LocateMarkers() (topLeft, topRight, bottomLeft Region, err error) {
	scale := c.scale
	side := c.mat.Width() * scale
	midX, midY := side/2, side/2

	var tl, tr, bl []image.Point
	onMidpoint := false

	c.mat.Iterate(qrcode.IterDirection_ROW, func(col, row int, v qrcode.QRValue) {
		if v.Type() != qrcode.QRType_FINDER || !v.IsSet() {
			return
		}

		x, y := col*scale, row*scale

		// A finder module can never straddle the center of the code; if one
		// does, the matrix is not something this classifier understands.
		if x == midX || y == midY {
			onMidpoint = true
			return
		}

		// Record both pixel corners of the module's rendered block so the
		// x+y extremes land on true pixel boundaries at any scale.
		near := image.Pt(x, y)
		far := image.Pt(x+scale-1, y+scale-1)

		switch {
		case x > midX:
			tr = append(tr, near, far)
		case y < midY:
			tl = append(tl, near, far)
		case y > midY:
			bl = append(bl, near, far)
		}
	})

	if onMidpoint {
		return Region{}, Region{}, Region{}, fmt.Errorf("%w: finder module on image midpoint", ErrIncompleteMarker)
	}

	names := [3]string{"top-left", "top-right", "bottom-left"}
	regions := [3]Region{}
	for i, pts := range [][]image.Point{tl, tr, bl} {
		if len(pts) == 0 {
			return Region{}, Region{}, Region{}, fmt.Errorf("%w: no finder modules in %s quadrant", ErrIncompleteMarker, names[i])
		}

		sort.Slice(pts, func(a, b int) bool {
			return pts[a].X+pts[a].Y < pts[b].X+pts[b].Y
		})

		regions[i] = Region{Min: pts[0], Max: pts[len(pts)-1]}
	}

	return regions[0], regions[1], regions[2], nil
}
