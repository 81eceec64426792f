package geom

import "testing"

func TestRegionSubtract(t *testing.T) {
	r := NewRegion()
	r.Add(Box{X: 0, Y: 0, Width: 10, Height: 10})

	hole := NewRegion()
	hole.Add(Box{X: 2, Y: 2, Width: 4, Height: 4})

	r.Subtract(hole)

	// The hole must be fully covered: no remaining box should overlap it.
	for _, b := range r.Boxes() {
		if b.Intersects(Box{X: 2, Y: 2, Width: 4, Height: 4}) {
			t.Fatalf("remaining box %v overlaps subtracted hole", b)
		}
	}

	total := 0
	for _, b := range r.Boxes() {
		total += b.Area()
	}
	if want := 100 - 16; total != want {
		t.Errorf("remaining area = %d, want %d", total, want)
	}
}

func TestRegionAddRegionAndBounds(t *testing.T) {
	a := NewRegion()
	a.Add(Box{X: 0, Y: 0, Width: 5, Height: 5})

	b := NewRegion()
	b.Add(Box{X: 10, Y: 10, Width: 5, Height: 5})

	a.AddRegion(b)
	bounds := a.Bounds()
	want := Box{X: 0, Y: 0, Width: 15, Height: 15}
	if bounds != want {
		t.Errorf("Bounds() = %v, want %v", bounds, want)
	}
}

func TestRegionIntersectBox(t *testing.T) {
	r := NewRegion()
	r.Add(Box{X: 0, Y: 0, Width: 10, Height: 10})
	r.Add(Box{X: 100, Y: 100, Width: 10, Height: 10})

	clipped := r.IntersectBox(Box{X: 0, Y: 0, Width: 20, Height: 20})
	for _, b := range clipped.Boxes() {
		if !b.Intersects(Box{X: 0, Y: 0, Width: 20, Height: 20}) {
			t.Errorf("box %v survives clip outside the clip rect", b)
		}
	}
}

func TestRegionIsEmpty(t *testing.T) {
	r := NewRegion()
	if !r.IsEmpty() {
		t.Error("new region should be empty")
	}
	r.Add(Box{Width: 1, Height: 1})
	if r.IsEmpty() {
		t.Error("region with a box should not be empty")
	}
}
