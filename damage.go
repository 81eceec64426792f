package scenegraph

import (
	"math"

	"github.com/gogpu/scenegraph/geom"
)

// damageWhole damages n's entire current footprint on every output it
// intersects, in scene coordinates (spec §4.B, damage_whole). A no-op
// when n or any ancestor is disabled: callers that need the old visible
// footprint erased must call this before flipping enabled to false, not
// after (see SetEnabled).
func damageWhole(n Node) {
	scene := n.Scene()
	if scene == nil {
		return
	}
	x, y, enabledChain := Coords(n)
	if !enabledChain {
		return
	}
	fp := n.footprint()
	scene.damageSceneBox(geom.Box{X: x, Y: y, Width: fp.Width, Height: fp.Height})
}

// damageBufferRegion damages the portion of b's footprint that
// corresponds to region, expressed in the buffer's own pre-transform,
// pre-scale pixel space. Region is intersected with the source crop,
// passed through the node's transform, then scaled up to the
// destination size before being handed to damageSceneBox per-output. A
// no-op when b or any ancestor is disabled, same as damageWhole.
func damageBufferRegion(b *Buffer, region *geom.Region) {
	scene := b.scene
	if scene == nil {
		return
	}
	x, y, enabledChain := Coords(b)
	if !enabledChain {
		return
	}
	dstW, dstH := b.destSize()
	if dstW <= 0 || dstH <= 0 {
		return
	}
	src := b.srcBox
	if src.IsEmpty() && b.buffer != nil {
		src = geom.FBox{Width: float64(b.buffer.Width()), Height: float64(b.buffer.Height())}
	}
	srcW, srcH := b.sourceTransformedSize()
	if srcW <= 0 || srcH <= 0 {
		return
	}
	for _, box := range region.Boxes() {
		cropped := geom.FBoxOf(box).Intersect(src)
		if cropped.IsEmpty() {
			continue
		}
		local := bufferLocalToDest(cropped, src, srcW, srcH, b.transform, dstW, dstH)
		if local.IsEmpty() {
			continue
		}
		scene.damageSceneBox(local.Translate(x, y))
	}
}

// sourceTransformedSize returns the buffer's native size after b's
// transform (width/height swapped for a 90/270 rotation). src_box itself
// is expressed in the untransformed buffer pixel space.
func (b *Buffer) sourceTransformedSize() (int, int) {
	if b.buffer == nil {
		return 0, 0
	}
	w, h := b.buffer.Width(), b.buffer.Height()
	if b.transform.Rotates90() {
		w, h = h, w
	}
	return w, h
}

// bufferLocalToDest maps a damage box expressed in buffer pixel space
// (pre-crop) into the node's local destination coordinate space: box and
// src are both carried through the inverse of t (the same mapping the
// renderer draws the buffer with), then scaled by the ratio between the
// transformed source size and the destination size. srcW/srcH are the
// buffer's transformed size.
func bufferLocalToDest(box, src geom.FBox, srcW, srcH int, t geom.OutputTransform, dstW, dstH int) geom.Box {
	bufW, bufH := float64(srcW), float64(srcH)
	if t.Rotates90() {
		bufW, bufH = bufH, bufW
	}
	m := t.Invert().Matrix(bufW, bufH)
	xf := func(b geom.FBox) geom.FBox {
		x0, y0 := m.TransformPoint(b.X, b.Y)
		x1, y1 := m.TransformPoint(b.X+b.Width, b.Y+b.Height)
		return geom.FBox{X: math.Min(x0, x1), Y: math.Min(y0, y1), Width: math.Abs(x1 - x0), Height: math.Abs(y1 - y0)}
	}
	box, src = xf(box), xf(src)
	if src.Width <= 0 || src.Height <= 0 {
		return geom.Box{}
	}
	sx := float64(dstW) / src.Width
	sy := float64(dstH) / src.Height
	local := geom.FBox{
		X:      (box.X - src.X) * sx,
		Y:      (box.Y - src.Y) * sy,
		Width:  box.Width * sx,
		Height: box.Height * sy,
	}
	return geom.ScaleFBox(local, 1)
}

// damageSceneBox is the common sink every node/output damage call routes
// through: it intersects box (in scene coordinates) against each output's
// footprint, converts the overlap into that output's physical pixel
// space, and adds it to the output's accumulator.
func (s *Scene) damageSceneBox(box geom.Box) {
	if box.IsEmpty() {
		return
	}
	for _, o := range s.outputs {
		outBox := o.Box()
		inter := box.Intersect(outBox)
		if inter.IsEmpty() {
			continue
		}
		local := inter.Translate(-outBox.X, -outBox.Y)
		scaled := geom.ScaleBox(local, o.disp.Scale())
		preW, preH := o.disp.Resolution()
		preScaled := geom.ScaleBox(geom.Box{Width: preW, Height: preH}, o.disp.Scale())
		m := o.disp.Transform().Matrix(float64(preScaled.Width), float64(preScaled.Height))
		phys := geom.TransformBox(scaled, m)
		o.disp.Damage().AddBox(phys)
	}
}
