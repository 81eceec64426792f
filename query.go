package scenegraph

// NodeAt hit-tests the scene at scene-coordinate (x, y), returning the
// topmost enabled Rect or Buffer node under the point (reverse child
// order: later siblings are drawn on top and are tested first) along
// with the point expressed in that node's own local coordinate space.
// Returns a nil Node if nothing is hit.
//
// A Buffer with a PointAcceptsInput predicate installed defers entirely
// to it, whether or not the point is within the node's destination
// bounds — the predicate fully overrides the default "anywhere inside
// bounds" rule rather than refining it (spec §6, point_accepts_input).
func (s *Scene) NodeAt(x, y float64) (Node, float64, float64) {
	return nodeAt(s.root, x, y)
}

func nodeAt(t *Tree, x, y float64) (Node, float64, float64) {
	if !t.enabled {
		return nil, 0, 0
	}
	for i := len(t.children) - 1; i >= 0; i-- {
		c := t.children[i]
		if !c.Enabled() {
			continue
		}
		cx, cy := c.Position()
		lx, ly := x-float64(cx), y-float64(cy)

		switch v := c.(type) {
		case *Tree:
			if n, rx, ry := nodeAt(v, lx, ly); n != nil {
				return n, rx, ry
			}
		case *Rect:
			w, h := v.Size()
			if pointInBox(lx, ly, w, h) {
				return v, lx, ly
			}
		case *Buffer:
			if v.acceptsInput != nil {
				if v.acceptsInput(v, lx, ly) {
					return v, lx, ly
				}
				continue
			}
			w, h := v.destSize()
			if pointInBox(lx, ly, w, h) {
				return v, lx, ly
			}
		}
	}
	return nil, 0, 0
}

func pointInBox(x, y float64, w, h int) bool {
	return x >= 0 && y >= 0 && x < float64(w) && y < float64(h)
}

// ForEachBuffer visits every enabled Buffer node in the scene (skipping
// any whose enabled chain is broken by a disabled ancestor or itself)
// in front-to-back paint order, passing its absolute scene coordinates
// alongside it.
func (s *Scene) ForEachBuffer(fn func(b *Buffer, x, y int)) {
	forEachBuffer(s.root, 0, 0, true, fn)
}

func forEachBuffer(t *Tree, offX, offY int, enabled bool, fn func(*Buffer, int, int)) {
	enabled = enabled && t.enabled
	if !enabled {
		return
	}
	x, y := offX+t.x, offY+t.y
	for _, c := range t.children {
		ce := enabled && c.Enabled()
		switch v := c.(type) {
		case *Tree:
			forEachBuffer(v, x, y, ce, fn)
		case *Buffer:
			if !ce {
				continue
			}
			cx, cy := v.Position()
			fn(v, x+cx, y+cy)
		}
	}
}

// OutputForEachBuffer visits every Buffer node currently active on out,
// in front-to-back paint order.
func (s *Scene) OutputForEachBuffer(out *Output, fn func(b *Buffer, x, y int)) {
	bit := uint64(1) << uint(out.index)
	s.ForEachBuffer(func(b *Buffer, x, y int) {
		if b.activeOutputs&bit != 0 {
			fn(b, x, y)
		}
	})
}
