package scenegraph

// SetEnabled toggles the node on or off. Damage is emitted for the
// node's footprint both before and after the change so the old visible
// content gets erased and the new state (if now enabled) gets drawn.
// Membership (active_outputs) is unaffected — see membership.go.
func (n *nodeBase) SetEnabled(enabled bool) {
	if n.enabled == enabled {
		return
	}
	damageWhole(n.self)
	n.enabled = enabled
	damageWhole(n.self)
}

// SetPosition moves the node relative to its parent, damaging the union
// of its old and new footprint and recomputing output membership for any
// Buffer descendants whose intersection with outputs may have changed.
func (n *nodeBase) SetPosition(x, y int) {
	if n.x == x && n.y == y {
		return
	}
	damageWhole(n.self)
	n.x, n.y = x, y
	damageWhole(n.self)
	if n.scene != nil {
		n.scene.recomputeMembership()
	}
}

// RaiseToTop moves the node to the topmost position among its siblings
// (the end of its parent's children slice), damaging both the node's
// own footprint and the sibling that was previously topmost (spec §4.A:
// "emits damage for both nodes").
func (n *nodeBase) RaiseToTop() {
	p := n.parent
	assert(p != nil, "scenegraph: RaiseToTop requires a non-root node")
	if len(p.children) == 0 || p.children[len(p.children)-1] == n.self {
		return
	}
	prevTop := p.children[len(p.children)-1]
	p.removeChild(n.self)
	p.children = append(p.children, n.self)
	damageWhole(n.self)
	damageWhole(prevTop)
}

// LowerToBottom moves the node to the bottommost position among its
// siblings (the start of its parent's children slice), damaging both
// the node's own footprint and the sibling that was previously
// bottommost.
func (n *nodeBase) LowerToBottom() {
	p := n.parent
	assert(p != nil, "scenegraph: LowerToBottom requires a non-root node")
	if len(p.children) == 0 || p.children[0] == n.self {
		return
	}
	prevBottom := p.children[0]
	p.removeChild(n.self)
	p.children = append([]Node{n.self}, p.children...)
	damageWhole(n.self)
	damageWhole(prevBottom)
}

// PlaceAbove moves the node to immediately above sibling in z-order
// (sibling renders first, n renders over it), damaging both nodes. Both
// must share a parent. No-ops when n is already directly above sibling
// (spec §4.A).
func (n *nodeBase) PlaceAbove(sibling Node) {
	p := n.parent
	assert(p != nil && sibling.base().parent == p, "scenegraph: PlaceAbove requires nodes sharing a parent")
	if sibling == n.self || p.indexOf(n.self) == p.indexOf(sibling)+1 {
		return
	}
	p.removeChild(n.self)
	idx := p.indexOf(sibling)
	p.children = insertAt(p.children, idx+1, n.self)
	damageWhole(n.self)
	damageWhole(sibling)
}

// PlaceBelow moves the node to immediately below sibling in z-order,
// damaging both nodes. Both must share a parent. No-ops when n is
// already directly below sibling (spec §4.A).
func (n *nodeBase) PlaceBelow(sibling Node) {
	p := n.parent
	assert(p != nil && sibling.base().parent == p, "scenegraph: PlaceBelow requires nodes sharing a parent")
	if sibling == n.self || p.indexOf(n.self) == p.indexOf(sibling)-1 {
		return
	}
	p.removeChild(n.self)
	idx := p.indexOf(sibling)
	p.children = insertAt(p.children, idx, n.self)
	damageWhole(n.self)
	damageWhole(sibling)
}

func insertAt(s []Node, i int, n Node) []Node {
	if i < 0 {
		i = 0
	}
	if i > len(s) {
		i = len(s)
	}
	s = append(s, nil)
	copy(s[i+1:], s[i:])
	s[i] = n
	return s
}

// Reparent moves the node (with its whole subtree) to be the topmost
// child of newParent. Panics if newParent is the node itself or one of
// its own descendants, which would create a cycle.
func (n *nodeBase) Reparent(newParent *Tree) {
	assert(newParent != nil, "scenegraph: Reparent requires a non-nil new parent")
	if t, ok := n.self.(*Tree); ok {
		assert(!isAncestor(t, newParent), "scenegraph: Reparent would create a cycle")
	}
	damageWhole(n.self)
	if n.parent != nil {
		n.parent.removeChild(n.self)
	}
	n.parent = newParent
	newParent.children = append(newParent.children, n.self)
	damageWhole(n.self)
	if n.scene != nil {
		n.scene.recomputeMembership()
	}
}

// Destroy removes the node and its entire subtree from the scene. Every
// descendant's OnDestroy signal fires, each immediately before that
// node's own children are in turn destroyed, walking front-to-back.
func (n *nodeBase) Destroy() {
	if n.destroyed {
		return
	}
	destroyNode(n.self)
	if n.scene != nil {
		n.scene.recomputeMembership()
	}
}

func destroyNode(n Node) {
	b := n.base()
	if b.destroyed {
		return
	}
	damageWhole(n)
	b.destroyed = true
	b.destroySig.Emit(n)

	if t, ok := n.(*Tree); ok {
		children := append([]Node(nil), t.children...)
		t.children = nil
		for _, c := range children {
			destroyNode(c)
		}
	}

	switch v := n.(type) {
	case *Tree:
		v.onDestroyCleanup()
	case *Rect:
		v.onDestroyCleanup()
	case *Buffer:
		v.onDestroyCleanup()
	}

	if b.parent != nil {
		b.parent.removeChild(n)
	}
}
