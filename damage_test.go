package scenegraph

import (
	"testing"

	"github.com/gogpu/scenegraph/geom"
)

func TestDamageWholeSkipsDisabledChain(t *testing.T) {
	s, fake := newTestScene(50, 50)
	root := s.Root()
	sub := CreateTree(root)
	r := CreateRect(sub, 10, 10, geom.Black)
	r.SetPosition(5, 5)

	sub.SetEnabled(false)
	fake.Damage().AttachRender() // drain whatever setup already accumulated

	damageWhole(r)
	if !fake.Damage().Current().IsEmpty() {
		t.Error("expected damageWhole to be a no-op when an ancestor is disabled")
	}
}

func TestDamageBufferRegionSkipsDisabledNode(t *testing.T) {
	s, fake := newTestScene(50, 50)
	root := s.Root()
	buf := CreateBuffer(root)
	buf.SetDestSize(20, 20)
	buf.SetEnabled(false)
	fake.Damage().AttachRender()

	region := geom.NewRegion()
	region.Add(geom.Box{Width: 20, Height: 20})
	damageBufferRegion(buf, region)
	if !fake.Damage().Current().IsEmpty() {
		t.Error("expected damageBufferRegion to be a no-op on a disabled node")
	}
}
