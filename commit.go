package scenegraph

import (
	"image"

	"github.com/gogpu/scenegraph/bufsrc"
	"github.com/gogpu/scenegraph/geom"
	"github.com/gogpu/scenegraph/raster"
)

// imageBackend is implemented by raster.Backend implementations that
// render into a CPU-addressable target (currently only
// raster.SoftwareBackend), letting the commit pipeline turn a composited
// frame back into a bufsrc.Source and hand it to the output through the
// same AttachBuffer/Test/Commit path scanout uses.
type imageBackend interface {
	Image() *image.RGBA
}

// backgroundColor is what each damaged box of an output is cleared to
// before nodes are drawn over it.
var backgroundColor = geom.Black

// Commit renders and presents one frame to every output that needs one:
// attempting direct scanout first, falling back to compositing through
// the scene's raster.Backend, and overlaying debug damage visualization
// per the scene's DebugDamageMode (spec §4.F).
func (s *Scene) Commit() {
	for _, o := range s.outputs {
		s.commitOutput(o)
	}
}

func (s *Scene) commitOutput(o *Output) {
	if s.debugDamage != DebugDamageHighlight {
		if buf, ok := s.scanoutCandidate(o); ok {
			s.commitScanout(o, buf)
			return
		}
	}
	s.prevScanoutTransition(o, false)
	s.commitComposite(o)
}

// prevScanoutTransition damages the whole output whenever scanout status
// flips, in either direction: leaving direct scanout exposes content the
// output's own previous plane contents can't be assumed to still hold,
// and entering it means the compositor's own render target no longer
// matters once the client buffer is attached directly.
func (s *Scene) prevScanoutTransition(o *Output, nowScanning bool) {
	if s.prevScanout[o] != nowScanning {
		o.disp.Damage().AddWhole()
	}
	s.prevScanout[o] = nowScanning
}

func (s *Scene) commitScanout(o *Output, buf *Buffer) {
	s.prevScanoutTransition(o, true)
	if !o.disp.AttachBuffer(buf.Source()) || !o.disp.Test() {
		o.disp.Rollback()
		s.prevScanout[o] = false
		s.commitComposite(o)
		return
	}
	o.disp.Damage().AttachRender()
	if o.disp.Commit() {
		s.presentBuffer(o, buf)
	} else {
		o.disp.Rollback()
	}
}

// scanoutCandidate reports the single Buffer node eligible for direct
// scanout on o: the lone visible node active on o, uncropped, untransformed
// relative to o, at scale 1, and exactly covering o's viewport.
func (s *Scene) scanoutCandidate(o *Output) (*Buffer, bool) {
	if o.disp.Scale() != 1 {
		return nil, false
	}
	var candidate *Buffer
	ob := o.Box()
	ok := true
	s.ForEachBuffer(func(b *Buffer, x, y int) {
		if !ok {
			return
		}
		bit := uint64(1) << uint(o.index)
		if b.activeOutputs&bit == 0 {
			return
		}
		_, _, enabled := Coords(b)
		if !enabled {
			return
		}
		if candidate != nil {
			ok = false
			return
		}
		w, h := b.destSize()
		if x != ob.X || y != ob.Y || w != ob.Width || h != ob.Height {
			ok = false
			return
		}
		if !b.srcBox.IsEmpty() || b.transform != o.disp.Transform() || b.Source() == nil {
			ok = false
			return
		}
		candidate = b
	})
	if s.hasVisibleRect(o) {
		ok = false
	}
	return candidate, ok && candidate != nil
}

func (s *Scene) hasVisibleRect(o *Output) bool {
	found := false
	var walk func(t *Tree, enabled bool)
	ob := o.Box()
	walk = func(t *Tree, enabled bool) {
		enabled = enabled && t.enabled
		for _, c := range t.children {
			ce := enabled && c.Enabled()
			switch v := c.(type) {
			case *Tree:
				walk(v, ce)
			case *Rect:
				if !ce {
					continue
				}
				x, y, en := Coords(v)
				if !en {
					continue
				}
				w, h := v.Size()
				box := geom.Box{X: x, Y: y, Width: w, Height: h}
				if box.Intersects(ob) {
					found = true
				}
			}
		}
	}
	walk(s.root, true)
	return found
}

func (s *Scene) commitComposite(o *Output) {
	physW, physH := o.disp.TransformedResolution()

	if s.debugDamage == DebugDamageRerender {
		o.disp.Damage().AddWhole()
	}

	var highlights []highlightRegion
	if s.debugDamage == DebugDamageHighlight {
		s.captureHighlight(o, o.disp.Damage().Current())
		var accumulator *geom.Region
		accumulator, highlights = s.sweepHighlights(o)
		o.disp.Damage().Add(accumulator)
	}

	needsFrame, damage := o.disp.Damage().AttachRender()
	if !needsFrame && len(highlights) == 0 {
		return
	}
	if damage == nil || damage.IsEmpty() {
		damage = geom.NewRegion()
		damage.Add(geom.Box{Width: physW, Height: physH})
	}

	backend := s.backend
	backend.Begin(physW, physH)
	for _, box := range damage.Boxes() {
		backend.Scissor(&box)
		backend.Clear(backgroundColor)
	}
	s.renderNodes(backend, o, damage)
	now := s.now()
	for _, h := range highlights {
		col := highlightColor(now, h.created)
		for _, box := range h.region.Boxes() {
			backend.Scissor(nil)
			backend.RenderRect(box, col, geom.IdentityMatrix())
		}
	}
	o.disp.RenderSoftwareCursors(damage)
	backend.End()

	ib, ok := backend.(imageBackend)
	if !ok {
		return
	}
	src := bufsrc.NewImageSource(ib.Image())
	if !o.disp.AttachBuffer(src) || !o.disp.Test() {
		o.disp.Rollback()
		return
	}
	if !o.disp.Commit() {
		o.disp.Rollback()
		return
	}
	s.presentAllOn(o)
	if len(highlights) > 0 {
		o.disp.ScheduleFrame()
	}
}

// renderNodes draws every enabled Rect and Buffer on o, front-to-back,
// skipping nodes whose box does not intersect damage. Each drawn node is
// scissored to its own box, not to the damage region.
func (s *Scene) renderNodes(backend interface {
	Scissor(*geom.Box)
	RenderRect(geom.Box, geom.Color, geom.Matrix)
	RenderTexturedQuad(bufsrc.Texture, geom.Box, geom.FBox, geom.Matrix, float64)
}, o *Output, damage *geom.Region) {
	scale := o.disp.Scale()
	preW, preH := o.disp.Resolution()
	preScaled := geom.ScaleBox(geom.Box{Width: preW, Height: preH}, scale)
	tm := o.disp.Transform().Matrix(float64(preScaled.Width), float64(preScaled.Height))
	ob := o.Box()

	var walk func(t *Tree, enabled bool)
	walk = func(t *Tree, enabled bool) {
		enabled = enabled && t.enabled
		for _, c := range t.children {
			ce := enabled && c.Enabled()
			switch v := c.(type) {
			case *Tree:
				walk(v, ce)
			case *Rect:
				if !ce {
					continue
				}
				s.renderRect(backend, v, o, ob, scale, tm, damage)
			case *Buffer:
				if !ce {
					continue
				}
				s.renderBuffer(backend, v, o, ob, scale, tm, damage)
			}
		}
	}
	walk(s.root, true)
}

func (s *Scene) renderRect(backend interface {
	Scissor(*geom.Box)
	RenderRect(geom.Box, geom.Color, geom.Matrix)
}, r *Rect, o *Output, ob geom.Box, scale float64, tm geom.Matrix, damage *geom.Region) {
	x, y, _ := Coords(r)
	w, h := r.Size()
	scene := geom.Box{X: x, Y: y, Width: w, Height: h}
	local := scene.Intersect(ob)
	if local.IsEmpty() {
		return
	}
	local = local.Translate(-ob.X, -ob.Y)
	scaled := geom.ScaleBox(local, scale)
	phys := geom.TransformBox(scaled, tm)
	if !intersectsAny(phys, damage) {
		return
	}
	backend.Scissor(&phys)
	backend.RenderRect(phys, r.Color(), geom.IdentityMatrix())
}

func (s *Scene) renderBuffer(backend interface {
	Scissor(*geom.Box)
	RenderTexturedQuad(bufsrc.Texture, geom.Box, geom.FBox, geom.Matrix, float64)
}, b *Buffer, o *Output, ob geom.Box, scale float64, tm geom.Matrix, damage *geom.Region) {
	bit := uint64(1) << uint(o.index)
	if b.activeOutputs&bit == 0 || b.buffer == nil {
		return
	}
	x, y, enabled := Coords(b)
	if !enabled {
		return
	}
	dstW, dstH := b.destSize()
	scene := geom.Box{X: x, Y: y, Width: dstW, Height: dstH}
	local := scene.Intersect(ob)
	if local.IsEmpty() {
		return
	}
	local = local.Translate(-ob.X, -ob.Y)
	scaled := geom.ScaleBox(local, scale)
	phys := geom.TransformBox(scaled, tm)
	if !intersectsAny(phys, damage) {
		return
	}

	tex, err := s.bufferTexture(b)
	if err != nil {
		logger().Warn("scenegraph: texture upload failed", "error", err)
		return
	}

	src := b.srcBox
	if src.IsEmpty() {
		src = geom.FBox{Width: float64(b.buffer.Width()), Height: float64(b.buffer.Height())}
	}

	// nativeBox is the buffer's own pixel box, pre-transform — the space
	// src_box and sampling are expressed in. nodeMatrix applies the inverse
	// of the node's transform to it, and the dst scale then stretches the
	// transformed buffer size to (dst_w, dst_h) (spec §4.F step 7).
	bufW, bufH := b.buffer.Width(), b.buffer.Height()
	nativeBox := geom.Box{Width: bufW, Height: bufH}
	nodeMatrix := b.transform.Invert().Matrix(float64(bufW), float64(bufH))
	tw, th := b.sourceTransformedSize()
	full := tm.Multiply(geom.ScaleMatrix(scale, scale)).
		Multiply(geom.TranslateMatrix(float64(x-ob.X), float64(y-ob.Y))).
		Multiply(geom.ScaleMatrix(float64(dstW)/float64(tw), float64(dstH)/float64(th))).
		Multiply(nodeMatrix)

	backend.Scissor(&phys)
	backend.RenderTexturedQuad(tex, nativeBox, src, full, 1)

	s.onOutputPresent(b, o)
}

func (s *Scene) bufferTexture(b *Buffer) (bufsrc.Texture, error) {
	if ct := b.buffer.ClientTexture(); ct != nil {
		return ct, nil
	}
	if b.cachedTexture != nil && b.cachedBackend == s.backend {
		return b.cachedTexture, nil
	}
	desc := raster.DefaultTextureDescriptor(uint32(b.buffer.Width()), uint32(b.buffer.Height()))
	tex, err := s.backend.TextureFromBuffer(b.buffer, desc)
	if err != nil {
		return nil, err
	}
	b.releaseTexture()
	b.cachedTexture = tex
	b.cachedBackend = s.backend
	return tex, nil
}

func intersectsAny(box geom.Box, region *geom.Region) bool {
	for _, b := range region.Boxes() {
		if box.Intersects(b) {
			return true
		}
	}
	return false
}

func (s *Scene) presentBuffer(o *Output, b *Buffer) {
	s.onOutputPresent(b, o)
}

func (s *Scene) presentAllOn(o *Output) {
	s.OutputForEachBuffer(o, func(b *Buffer, x, y int) {
		s.onOutputPresent(b, o)
	})
}

// onOutputPresent fires when a buffer is actually drawn (composite) or
// scanned out directly to o. Frame-done is a separate, vsync-driven
// operation the host calls through Output.SendFrameDone, not something
// Commit bundles with presentation (spec §4.F's commit steps never
// mention send_frame_done; it is defined and tested independently).
func (s *Scene) onOutputPresent(b *Buffer, o *Output) {
	b.onOutputPresent.Emit(PresentEvent{Output: o, When: s.now()})
}
