package scenegraph

import "github.com/gogpu/scenegraph/geom"

// Rect is a Node variant painting a solid color over a fixed-size box
// (spec §3).
type Rect struct {
	nodeBase
	width, height int
	color         geom.Color
}

// CreateRect allocates a Rect of the given size and color under parent.
// It is created enabled, linked as parent's topmost child, and its whole
// footprint is damaged immediately.
func CreateRect(parent *Tree, width, height int, color geom.Color) *Rect {
	assert(parent != nil, "scenegraph: CreateRect requires a non-nil parent")
	r := &Rect{
		nodeBase: nodeBase{typ: NodeTypeRect, scene: parent.scene, parent: parent, enabled: true},
		width:    width,
		height:   height,
		color:    color,
	}
	r.self = r
	parent.children = append(parent.children, r)
	damageWhole(r)
	return r
}

// Size returns the rect's fixed width and height.
func (r *Rect) Size() (int, int) { return r.width, r.height }

// Color returns the rect's fill color.
func (r *Rect) Color() geom.Color { return r.color }

// SetSize resizes the rect, damaging the union of its old and new
// footprint. A no-op if the size is unchanged (spec §4.A: setters that
// don't change state don't damage).
func (r *Rect) SetSize(width, height int) {
	if r.width == width && r.height == height {
		return
	}
	damageWhole(r)
	r.width, r.height = width, height
	damageWhole(r)
}

// SetColor changes the rect's fill color, damaging its footprint. A
// no-op if the color is unchanged.
func (r *Rect) SetColor(c geom.Color) {
	if r.color == c {
		return
	}
	r.color = c
	damageWhole(r)
}

func (r *Rect) footprint() geom.Box {
	return geom.Box{Width: r.width, Height: r.height}
}

func (r *Rect) onDestroyCleanup() {}

var _ Node = (*Rect)(nil)
