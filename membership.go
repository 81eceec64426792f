package scenegraph

import "github.com/gogpu/scenegraph/geom"

// recomputeMembership walks the whole scene and updates every Buffer
// node's active_outputs bitmask and primary_output. It is called after
// any structural or positional change that could alter which outputs a
// node intersects: Buffer creation, SetBuffer, SetDestSize, SetTransform,
// SetPosition, Reparent, Destroy, output add/remove/move. Z-order changes
// (PlaceAbove/PlaceBelow) do not trigger it.
//
// Membership is purely geometric: a disabled node's ancestry does not
// exclude it from membership, only from being drawn or damaged (spec §9,
// resolved Open Question — enabled=false suppresses damage, not
// output_enter/output_leave).
func (s *Scene) recomputeMembership() {
	walkBuffers(s.root, func(b *Buffer) {
		s.updateBufferMembership(b)
	})
}

func walkBuffers(n Node, fn func(*Buffer)) {
	switch v := n.(type) {
	case *Buffer:
		fn(v)
	case *Tree:
		for _, c := range v.children {
			walkBuffers(c, fn)
		}
	}
}

func (s *Scene) updateBufferMembership(b *Buffer) {
	x, y, _ := Coords(b)
	fp := b.footprint()
	box := geom.Box{X: x, Y: y, Width: fp.Width, Height: fp.Height}

	var newMask uint64
	var primary *Output
	largestOverlap := 0
	for _, o := range s.outputs {
		inter := box.Intersect(o.Box())
		if inter.IsEmpty() {
			continue
		}
		newMask |= 1 << uint(o.index)
		if area := inter.Area(); primary == nil || area > largestOverlap {
			largestOverlap = area
			primary = o
		}
	}

	old := b.activeOutputs
	b.activeOutputs = newMask
	b.primaryOutput = primary

	for _, o := range s.outputs {
		bit := uint64(1) << uint(o.index)
		if old&bit != 0 && newMask&bit == 0 {
			b.onOutputLeave.Emit(OutputEvent{Output: o})
		}
	}
	for _, o := range s.outputs {
		bit := uint64(1) << uint(o.index)
		if newMask&bit != 0 && old&bit == 0 {
			b.onOutputEnter.Emit(OutputEvent{Output: o})
		}
	}
}
