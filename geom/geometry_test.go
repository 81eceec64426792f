package geom

import "testing"

func TestBoxIntersect(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Box
		wantZero bool
	}{
		{"overlap", Box{0, 0, 10, 10}, Box{5, 5, 10, 10}, false},
		{"disjoint", Box{0, 0, 10, 10}, Box{20, 20, 5, 5}, true},
		{"touching edges", Box{0, 0, 10, 10}, Box{10, 0, 10, 10}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.a.Intersect(tc.b)
			if got.IsEmpty() != tc.wantZero {
				t.Errorf("Intersect(%v, %v) = %v, IsEmpty=%v, want %v", tc.a, tc.b, got, got.IsEmpty(), tc.wantZero)
			}
		})
	}
}

func TestScaleBoxContiguity(t *testing.T) {
	// Two horizontally adjacent boxes scaled by the same factor must
	// produce contiguous integer pixel runs with no gap or overlap.
	left := Box{X: 0, Y: 0, Width: 3, Height: 10}
	right := Box{X: 3, Y: 0, Width: 7, Height: 10}
	scale := 1.333333

	sl := ScaleBox(left, scale)
	sr := ScaleBox(right, scale)

	if sl.Right() != sr.X {
		t.Errorf("scaled boxes not contiguous: left ends at %d, right starts at %d", sl.Right(), sr.X)
	}
}

func TestScaleBoxIdentity(t *testing.T) {
	b := Box{X: 10, Y: 20, Width: 30, Height: 40}
	got := ScaleBox(b, 1)
	if got != b {
		t.Errorf("ScaleBox(b, 1) = %v, want %v", got, b)
	}
}

func TestFBoxOf(t *testing.T) {
	b := Box{X: 1, Y: 2, Width: 3, Height: 4}
	got := FBoxOf(b)
	want := FBox{X: 1, Y: 2, Width: 3, Height: 4}
	if got != want {
		t.Errorf("FBoxOf(%v) = %v, want %v", b, got, want)
	}
}
