package display

import (
	"testing"

	"github.com/gogpu/scenegraph/geom"
)

func TestRegionAccumulatorAddBox(t *testing.T) {
	a := NewRegionAccumulator(100, 100)
	a.AddBox(geom.Box{X: 10, Y: 10, Width: 5, Height: 5})

	cur := a.Current()
	if cur.IsEmpty() {
		t.Fatal("expected accumulated damage after AddBox")
	}
	bounds := cur.Bounds()
	if bounds.X != 10 || bounds.Y != 10 || bounds.Width != 5 || bounds.Height != 5 {
		t.Errorf("Bounds() = %+v, want {10 10 5 5}", bounds)
	}
}

func TestRegionAccumulatorAddBoxIgnoresEmpty(t *testing.T) {
	a := NewRegionAccumulator(100, 100)
	a.AddBox(geom.Box{})

	if !a.Current().IsEmpty() {
		t.Error("expected an empty box to contribute no damage")
	}
}

func TestRegionAccumulatorCollapsesPastThreshold(t *testing.T) {
	a := NewRegionAccumulator(50, 50)
	for i := 0; i < maxAccumulatedBoxes+1; i++ {
		a.AddBox(geom.Box{X: i, Y: i, Width: 1, Height: 1})
	}

	cur := a.Current()
	bounds := cur.Bounds()
	if bounds.Width != 50 || bounds.Height != 50 {
		t.Errorf("expected collapse to the full 50x50 surface, got bounds %+v", bounds)
	}
}

func TestRegionAccumulatorAddWhole(t *testing.T) {
	a := NewRegionAccumulator(20, 30)
	a.AddWhole()

	cur := a.Current()
	bounds := cur.Bounds()
	if bounds.Width != 20 || bounds.Height != 30 {
		t.Errorf("AddWhole bounds = %+v, want {0 0 20 30}", bounds)
	}
}

func TestRegionAccumulatorAttachRenderConsumesDamage(t *testing.T) {
	a := NewRegionAccumulator(100, 100)
	a.AddBox(geom.Box{X: 0, Y: 0, Width: 10, Height: 10})

	needsFrame, damage := a.AttachRender()
	if !needsFrame {
		t.Fatal("expected AttachRender to report needsFrame when damage is pending")
	}
	if damage.IsEmpty() {
		t.Fatal("expected AttachRender to return the accumulated damage")
	}

	needsFrame, _ = a.AttachRender()
	if needsFrame {
		t.Error("expected a second AttachRender with no new damage to report needsFrame=false")
	}
}

func TestRegionAccumulatorResize(t *testing.T) {
	a := NewRegionAccumulator(10, 10)
	a.Resize(40, 40)
	a.AddWhole()

	bounds := a.Current().Bounds()
	if bounds.Width != 40 || bounds.Height != 40 {
		t.Errorf("expected AddWhole to use the resized dimensions, got %+v", bounds)
	}
}
