package geom

import "math"

// Point is a 2D coordinate in scene-local units.
type Point struct {
	X, Y float64
}

// FBox is an axis-aligned rectangle with floating-point edges, used for
// node footprints, src_box sub-rectangles, and anywhere sub-pixel geometry
// matters before it is rounded into device pixels.
type FBox struct {
	X, Y, Width, Height float64
}

// IsEmpty reports whether the box covers no area.
func (b FBox) IsEmpty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// Intersect returns the overlap of b and other, or an empty FBox if they
// don't overlap.
func (b FBox) Intersect(other FBox) FBox {
	x0 := math.Max(b.X, other.X)
	y0 := math.Max(b.Y, other.Y)
	x1 := math.Min(b.X+b.Width, other.X+other.Width)
	y1 := math.Min(b.Y+b.Height, other.Y+other.Height)
	if x1 <= x0 || y1 <= y0 {
		return FBox{}
	}
	return FBox{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Box is an axis-aligned rectangle with integer edges — scene-space node
// footprints at their natural resolution, or output-local device pixels
// once scaled.
type Box struct {
	X, Y, Width, Height int
}

// IsEmpty reports whether the box covers no area.
func (b Box) IsEmpty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// Right returns the box's right edge.
func (b Box) Right() int { return b.X + b.Width }

// Bottom returns the box's bottom edge.
func (b Box) Bottom() int { return b.Y + b.Height }

// Translate shifts the box by (dx, dy).
func (b Box) Translate(dx, dy int) Box {
	return Box{X: b.X + dx, Y: b.Y + dy, Width: b.Width, Height: b.Height}
}

// Area returns the box's pixel area (0 for empty boxes).
func (b Box) Area() int {
	if b.IsEmpty() {
		return 0
	}
	return b.Width * b.Height
}

// Intersect returns the overlap of b and other, or an empty Box.
func (b Box) Intersect(other Box) Box {
	x0 := max(b.X, other.X)
	y0 := max(b.Y, other.Y)
	x1 := min(b.Right(), other.Right())
	y1 := min(b.Bottom(), other.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Box{}
	}
	return Box{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Intersects reports whether b and other overlap.
func (b Box) Intersects(other Box) bool {
	return !b.Intersect(other).IsEmpty()
}

// FBoxOf converts a Box to an FBox.
func FBoxOf(b Box) FBox {
	return FBox{X: float64(b.X), Y: float64(b.Y), Width: float64(b.Width), Height: float64(b.Height)}
}

// ScaleBox scales an integer box by s, rounding each edge independently of
// the others so that neighboring boxes scaled the same way tile without
// gaps or overlaps.
//
// This reproduces, bit-exactly, the asymmetric rounding formula used by
// the original wlr_scene implementation: the box's right and bottom edges
// are derived from the *rounded far edge*, not from an independently
// rounded width/height. That is what makes horizontally (or vertically)
// adjacent boxes scaled with the same s produce contiguous integer pixel
// runs — see spec.md §4.B and Testable Property 7.
func ScaleBox(b Box, s float64) Box {
	x0 := roundScale(float64(b.X), s)
	y0 := roundScale(float64(b.Y), s)
	x1 := roundScale(float64(b.X+b.Width), s)
	y1 := roundScale(float64(b.Y+b.Height), s)
	return Box{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// ScaleFBox is ScaleBox's floating-point-input counterpart, used when the
// source box comes from node-local floating geometry (e.g. a buffer's
// src_box derived footprint) rather than already-integer scene coordinates.
func ScaleFBox(b FBox, s float64) Box {
	x0 := roundScale(b.X, s)
	y0 := roundScale(b.Y, s)
	x1 := roundScale(b.X+b.Width, s)
	y1 := roundScale(b.Y+b.Height, s)
	return Box{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

func roundScale(v, s float64) int {
	return int(math.Round(v * s))
}
