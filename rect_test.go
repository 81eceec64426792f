package scenegraph

import (
	"testing"

	"github.com/gogpu/scenegraph/geom"
)

func TestRectSetSizeNoOpWhenUnchanged(t *testing.T) {
	s, fake := newTestScene(50, 50)
	root := s.Root()
	r := CreateRect(root, 10, 10, geom.Black)

	// Drain the damage CreateRect queued.
	fake.Damage().AttachRender()

	r.SetSize(10, 10)
	if !fake.Damage().Current().IsEmpty() {
		t.Error("SetSize with unchanged dimensions should not emit damage")
	}

	r.SetSize(20, 20)
	if fake.Damage().Current().IsEmpty() {
		t.Error("SetSize with changed dimensions should emit damage")
	}
	w, h := r.Size()
	if w != 20 || h != 20 {
		t.Errorf("Size() = (%d, %d), want (20, 20)", w, h)
	}
}

func TestRectSetColorNoOpWhenUnchanged(t *testing.T) {
	s, fake := newTestScene(50, 50)
	root := s.Root()
	r := CreateRect(root, 10, 10, geom.RGB(0, 0, 1))
	fake.Damage().AttachRender()

	r.SetColor(geom.RGB(0, 0, 1))
	if !fake.Damage().Current().IsEmpty() {
		t.Error("SetColor with unchanged color should not emit damage")
	}

	r.SetColor(geom.RGB(1, 0, 0))
	if fake.Damage().Current().IsEmpty() {
		t.Error("SetColor with a new color should emit damage")
	}
}
