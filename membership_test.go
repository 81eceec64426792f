package scenegraph

import (
	"image"
	"testing"

	"github.com/gogpu/scenegraph/bufsrc"
	"github.com/gogpu/scenegraph/display"
)

func TestMembershipEnterAndLeaveOnMove(t *testing.T) {
	s, fake := newTestScene(100, 100)
	root := s.Root()

	buf := CreateBuffer(root)
	buf.SetPosition(1000, 1000) // start off every output so the first intersection comes from a move
	buf.SetBuffer(bufsrc.NewImageSource(image.NewRGBA(image.Rect(0, 0, 20, 20))))

	var entered, left []*Output
	buf.OnOutputEnter(func(e OutputEvent) { entered = append(entered, e.Output) })
	buf.OnOutputLeave(func(e OutputEvent) { left = append(left, e.Output) })

	buf.SetPosition(0, 0)
	s.recomputeMembership()
	if len(entered) != 1 {
		t.Fatalf("expected 1 output_enter after first intersecting an output, got %d", len(entered))
	}

	buf.SetPosition(1000, 1000)
	if len(left) != 1 {
		t.Fatalf("expected 1 output_leave after moving off every output, got %d", len(left))
	}

	_ = fake
}

func TestMembershipDisabledNodeStillActive(t *testing.T) {
	s, _ := newTestScene(100, 100)
	root := s.Root()
	buf := CreateBuffer(root)
	buf.SetBuffer(bufsrc.NewImageSource(image.NewRGBA(image.Rect(0, 0, 20, 20))))
	buf.SetPosition(0, 0)

	if buf.ActiveOutputs() == 0 {
		t.Fatal("buffer intersecting the output should be active before disabling")
	}

	left := false
	buf.OnOutputLeave(func(OutputEvent) { left = true })
	buf.SetEnabled(false)

	if left {
		t.Error("disabling a node must not fire OutputLeave — membership is geometric only")
	}
	if buf.ActiveOutputs() == 0 {
		t.Error("disabling a node must not clear its active_outputs bitmask")
	}
}

func TestPrimaryOutputIsLargestOverlapArea(t *testing.T) {
	s := NewScene(WithDebugDamage(DebugDamageNone))
	// buf spans x in [0, 100). partial is registered first (lower index) but
	// only overlaps the last 20 columns (area 2000); full is registered
	// second yet covers the whole buffer (area 10000), so primary must be
	// chosen by overlap area, not by lowest output index.
	partial := s.NewOutput(display.NewFakeOutput(100, 100), 80, 0)
	full := s.NewOutput(display.NewFakeOutput(100, 100), 0, 0)

	root := s.Root()
	buf := CreateBuffer(root)
	buf.SetBuffer(bufsrc.NewImageSource(image.NewRGBA(image.Rect(0, 0, 100, 100))))
	buf.SetPosition(0, 0)

	if buf.PrimaryOutput() != full {
		t.Fatalf("expected the output with more overlap area to be primary, got index %d, want %d", buf.PrimaryOutput().Index(), full.Index())
	}
	_ = partial
}

func TestOutputIndexReuse(t *testing.T) {
	s := NewScene(WithDebugDamage(DebugDamageNone))
	o1 := s.NewOutput(display.NewFakeOutput(10, 10), 0, 0)
	o2 := s.NewOutput(display.NewFakeOutput(10, 10), 0, 0)

	if o1.Index() != 0 || o2.Index() != 1 {
		t.Fatalf("expected indices 0,1, got %d,%d", o1.Index(), o2.Index())
	}

	s.RemoveOutput(o1)
	o3 := s.NewOutput(display.NewFakeOutput(10, 10), 0, 0)
	if o3.Index() != 0 {
		t.Errorf("expected freed index 0 to be reused, got %d", o3.Index())
	}
}
