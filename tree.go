package scenegraph

// Tree is a Node variant with no intrinsic size, holding an ordered list
// of children. The scene root is the one Tree whose Parent is nil.
type Tree struct {
	nodeBase
	children []Node // front-to-back; children[len-1] is topmost
}

// newTreeIn allocates a Tree under parent (nil only for the scene root)
// and links it as parent's topmost child.
func newTreeIn(scene *Scene, parent *Tree) *Tree {
	t := &Tree{
		nodeBase: nodeBase{typ: NodeTypeTree, scene: scene, parent: parent, enabled: true},
	}
	t.self = t
	if parent != nil {
		parent.children = append(parent.children, t)
	}
	return t
}

// CreateTree allocates a new Tree node under parent and returns it.
// spec §4.A: "allocates, links as the topmost child" — Tree creation does
// not itself emit damage since a Tree has no intrinsic content.
func CreateTree(parent *Tree) *Tree {
	assert(parent != nil, "scenegraph: CreateTree requires a non-nil parent")
	return newTreeIn(parent.scene, parent)
}

// Children returns the tree's children in front-to-back order (last is
// topmost). The returned slice must not be retained past the next
// mutating call.
func (t *Tree) Children() []Node {
	return t.children
}

func (t *Tree) indexOf(n Node) int {
	for i, c := range t.children {
		if c == n {
			return i
		}
	}
	return -1
}

func (t *Tree) removeChild(n Node) {
	i := t.indexOf(n)
	if i < 0 {
		return
	}
	t.children = append(t.children[:i], t.children[i+1:]...)
}

// onDestroyCleanup is a no-op for an ordinary Tree. Destroying the scene
// root additionally tears down scene-wide state: every output is
// destroyed (its own destroy signal fires), all highlight history is
// discarded, and the scene's presentation-feedback reference is notified
// and cleared (spec §4.A: "for the scene-root Tree, additionally destroy
// all outputs and highlight regions and unsubscribe from presentation
// destroy"). By the time this runs, destroyNode has already recursed
// into every descendant, so Buffer nodes still saw the outputs intact
// when they fired their own output_leave signals.
func (t *Tree) onDestroyCleanup() {
	if t.parent != nil {
		return
	}
	s := t.scene
	for _, o := range s.outputs {
		o.destroySig.Emit(o)
	}
	s.outputs = nil
	s.highlights = make(map[*Output][]highlightRegion)
	if s.presentation != nil {
		s.presentation.OnDestroy()
		s.presentation = nil
	}
}

var _ Node = (*Tree)(nil)
