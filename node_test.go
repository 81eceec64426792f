package scenegraph

import (
	"testing"

	"github.com/gogpu/scenegraph/display"
	"github.com/gogpu/scenegraph/geom"
)

func newTestScene(w, h int) (*Scene, *display.FakeOutput) {
	s := NewScene(WithDebugDamage(DebugDamageNone))
	fake := display.NewFakeOutput(w, h)
	s.NewOutput(fake, 0, 0)
	return s, fake
}

func TestNodeLifecycleAndZOrder(t *testing.T) {
	s, _ := newTestScene(100, 100)
	root := s.Root()

	a := CreateRect(root, 10, 10, geom.Black)
	b := CreateRect(root, 10, 10, geom.Black)
	c := CreateRect(root, 10, 10, geom.Black)

	children := root.Children()
	if len(children) != 3 || children[0] != Node(a) || children[1] != Node(b) || children[2] != Node(c) {
		t.Fatalf("unexpected initial order: %v", children)
	}

	a.RaiseToTop()
	children = root.Children()
	if children[len(children)-1] != Node(a) {
		t.Fatalf("RaiseToTop did not move a to the top: %v", children)
	}

	c.LowerToBottom()
	children = root.Children()
	if children[0] != Node(c) {
		t.Fatalf("LowerToBottom did not move c to the bottom: %v", children)
	}

	b.PlaceAbove(c)
	children = root.Children()
	if children[1] != Node(b) {
		t.Fatalf("PlaceAbove did not place b right above c: %v", children)
	}
}

func TestPlaceAboveDamagesBothNodes(t *testing.T) {
	s, fake := newTestScene(100, 100)
	root := s.Root()

	a := CreateRect(root, 10, 10, geom.Black)
	b := CreateRect(root, 10, 10, geom.Black)
	b.SetPosition(50, 50)
	b.LowerToBottom() // order is now [b, a]; b is already below a, not above it
	fake.Damage().AttachRender() // drain setup damage

	b.PlaceAbove(a) // moves b back above a, a real change

	bounds := fake.Damage().Current().Bounds()
	if bounds.X > 0 || bounds.Y > 0 {
		t.Fatalf("expected damage to include a's footprint near the origin, got bounds %+v", bounds)
	}
	if bounds.Width < 60 || bounds.Height < 60 {
		t.Errorf("expected damage to span both a's and b's footprints, got bounds %+v", bounds)
	}
}

func TestPlaceAboveNoOpWhenAlreadyInRelation(t *testing.T) {
	s, _ := newTestScene(100, 100)
	root := s.Root()

	a := CreateRect(root, 10, 10, geom.Black)
	b := CreateRect(root, 10, 10, geom.Black)

	b.PlaceAbove(a)
	children := root.Children()
	b.PlaceAbove(a)
	if root.Children()[0] != children[0] || root.Children()[1] != children[1] {
		t.Fatalf("expected PlaceAbove to no-op when already in the requested relation, got %v", root.Children())
	}
}

func TestNodeDestroyFiresSignalAndUnlinks(t *testing.T) {
	s, _ := newTestScene(100, 100)
	root := s.Root()
	r := CreateRect(root, 10, 10, geom.Black)

	destroyed := false
	r.OnDestroy(func(Node) { destroyed = true })
	r.Destroy()

	if !destroyed {
		t.Error("OnDestroy handler did not fire")
	}
	if len(root.Children()) != 0 {
		t.Errorf("destroyed node still linked: %v", root.Children())
	}
}

func TestDestroyRecursesIntoChildren(t *testing.T) {
	s, _ := newTestScene(100, 100)
	root := s.Root()
	sub := CreateTree(root)
	r := CreateRect(sub, 10, 10, geom.Black)

	childDestroyed := false
	r.OnDestroy(func(Node) { childDestroyed = true })

	sub.Destroy()

	if !childDestroyed {
		t.Error("destroying a Tree should destroy its descendants first")
	}
}

func TestReparentCycleRejected(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected Reparent into own descendant to panic")
		}
	}()
	s, _ := newTestScene(100, 100)
	root := s.Root()
	t1 := CreateTree(root)
	t2 := CreateTree(t1)

	t1.Reparent(t2)
}

type fakePresentationFeedback struct {
	destroyed bool
}

func (f *fakePresentationFeedback) OnDestroy() { f.destroyed = true }

func TestDestroyRootTearsDownScene(t *testing.T) {
	s, fake := newTestScene(10, 10)
	o := s.Outputs()[0]

	fb := &fakePresentationFeedback{}
	s.SetPresentationFeedback(fb)

	outputDestroyed := false
	o.OnDestroy(func(*Output) { outputDestroyed = true })

	s.Root().Destroy()

	if !outputDestroyed {
		t.Error("expected destroying the scene root to destroy its outputs")
	}
	if len(s.Outputs()) != 0 {
		t.Errorf("expected no outputs left after root destroy, got %d", len(s.Outputs()))
	}
	if !fb.destroyed {
		t.Error("expected destroying the scene root to call OnDestroy on the presentation feedback")
	}
	_ = fake
}

func TestCoordsAccumulatesThroughAncestors(t *testing.T) {
	s, _ := newTestScene(100, 100)
	root := s.Root()
	sub := CreateTree(root)
	sub.SetPosition(10, 20)
	r := CreateRect(sub, 5, 5, geom.Black)
	r.SetPosition(1, 2)

	x, y, enabled := Coords(r)
	if x != 11 || y != 22 || !enabled {
		t.Errorf("Coords = (%d, %d, %v), want (11, 22, true)", x, y, enabled)
	}

	sub.SetEnabled(false)
	_, _, enabled = Coords(r)
	if enabled {
		t.Error("disabling an ancestor should make the enabled chain false")
	}
}
