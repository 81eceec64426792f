package scenegraph

import (
	"image"
	"testing"

	"github.com/gogpu/scenegraph/bufsrc"
)

func TestSetBufferLocksNewAndUnlocksOld(t *testing.T) {
	s, _ := newTestScene(50, 50)
	root := s.Root()
	buf := CreateBuffer(root)

	first := bufsrc.NewImageSource(image.NewRGBA(image.Rect(0, 0, 10, 10)))
	buf.SetBuffer(first)
	if !first.Locked() {
		t.Fatal("expected the newly attached source to be locked")
	}

	second := bufsrc.NewImageSource(image.NewRGBA(image.Rect(0, 0, 10, 10)))
	buf.SetBuffer(second)
	if first.Locked() {
		t.Error("expected the replaced source to be unlocked")
	}
	if !second.Locked() {
		t.Error("expected the new source to be locked")
	}

	buf.Destroy()
	if second.Locked() {
		t.Error("expected destroying the node to unlock its attached source")
	}
}

func TestSetBufferDamagesOldAndNewFootprint(t *testing.T) {
	s, fake := newTestScene(50, 50)
	root := s.Root()
	buf := CreateBuffer(root)

	big := bufsrc.NewImageSource(image.NewRGBA(image.Rect(0, 0, 30, 30)))
	buf.SetBuffer(big)
	buf.SetPosition(0, 0)
	fake.Damage().AttachRender() // drain whatever setup already accumulated

	small := bufsrc.NewImageSource(image.NewRGBA(image.Rect(0, 0, 10, 10)))
	buf.SetBuffer(small)

	bounds := fake.Damage().Current().Bounds()
	if bounds.Width < 30 || bounds.Height < 30 {
		t.Errorf("expected damage to still cover the old (larger) footprint, got bounds %+v", bounds)
	}
}
