package geom

// Region is an ordered list of non-necessarily-disjoint integer boxes,
// representing a set of pixels — the in-tree default shape of the damage
// a display.DamageAccumulator carries.
//
// This is a deliberately simple box-list region rather than a true
// pixman-style disjoint-rectangle set: adjacent or overlapping boxes are
// kept as separate entries and are only merged implicitly by whatever
// consumes the region (e.g. scissoring each box independently is correct
// even with overlaps, just not maximally efficient). See
// display.RegionAccumulator for the collapse-to-full-surface fallback once
// the list grows past
// a threshold, adapted from the teacher's DirtyRect/maxDirtyRects design
// (_examples/gogpu-gg/render/scene.go).
type Region struct {
	boxes []Box
}

// NewRegion returns an empty region.
func NewRegion() *Region {
	return &Region{}
}

// IsEmpty reports whether the region contains no area.
func (r *Region) IsEmpty() bool {
	return len(r.boxes) == 0
}

// Boxes returns the region's boxes. The slice must not be mutated by the
// caller.
func (r *Region) Boxes() []Box {
	return r.boxes
}

// Add unions box into the region, dropping empty boxes.
func (r *Region) Add(box Box) {
	if box.IsEmpty() {
		return
	}
	r.boxes = append(r.boxes, box)
}

// AddRegion unions every box of other into r.
func (r *Region) AddRegion(other *Region) {
	if other == nil {
		return
	}
	r.boxes = append(r.boxes, other.boxes...)
}

// Clear empties the region.
func (r *Region) Clear() {
	r.boxes = r.boxes[:0]
}

// Bounds returns the smallest box containing the whole region.
func (r *Region) Bounds() Box {
	if len(r.boxes) == 0 {
		return Box{}
	}
	b := r.boxes[0]
	x0, y0, x1, y1 := b.X, b.Y, b.Right(), b.Bottom()
	for _, b := range r.boxes[1:] {
		x0 = min(x0, b.X)
		y0 = min(y0, b.Y)
		x1 = max(x1, b.Right())
		y1 = max(y1, b.Bottom())
	}
	return Box{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// IntersectBox returns a new region containing the parts of r that fall
// within clip.
func (r *Region) IntersectBox(clip Box) *Region {
	out := NewRegion()
	for _, b := range r.boxes {
		out.Add(b.Intersect(clip))
	}
	return out
}

// Clone returns an independent copy of r.
func (r *Region) Clone() *Region {
	out := &Region{boxes: make([]Box, len(r.boxes))}
	copy(out.boxes, r.boxes)
	return out
}

// Subtract removes every box of other from r in place, splitting any box
// that only partially overlaps an "other" box into its uncovered remnants.
func (r *Region) Subtract(other *Region) {
	if other == nil || len(other.boxes) == 0 {
		return
	}
	current := r.boxes
	for _, sub := range other.boxes {
		var next []Box
		for _, b := range current {
			next = append(next, subtractBox(b, sub)...)
		}
		current = next
	}
	r.boxes = current
}

// subtractBox returns the parts of a not covered by b, decomposed into up
// to four non-overlapping rectangles (top/bottom slabs spanning the full
// width of a, and left/right slabs spanning only the intersection's row
// range). If a and b don't overlap, a is returned unchanged.
func subtractBox(a, b Box) []Box {
	ix := a.Intersect(b)
	if ix.IsEmpty() {
		return []Box{a}
	}

	var out []Box
	if ix.Y > a.Y {
		out = append(out, Box{X: a.X, Y: a.Y, Width: a.Width, Height: ix.Y - a.Y})
	}
	if ix.Bottom() < a.Bottom() {
		out = append(out, Box{X: a.X, Y: ix.Bottom(), Width: a.Width, Height: a.Bottom() - ix.Bottom()})
	}
	if ix.X > a.X {
		out = append(out, Box{X: a.X, Y: ix.Y, Width: ix.X - a.X, Height: ix.Height})
	}
	if ix.Right() < a.Right() {
		out = append(out, Box{X: ix.Right(), Y: ix.Y, Width: a.Right() - ix.Right(), Height: ix.Height})
	}
	return out
}
