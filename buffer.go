package scenegraph

import (
	"time"

	"github.com/gogpu/scenegraph/bufsrc"
	"github.com/gogpu/scenegraph/geom"
	"github.com/gogpu/scenegraph/raster"
	"github.com/gogpu/scenegraph/signal"
)

// OutputEvent is emitted on a Buffer's OutputEnter/OutputLeave signals
// when the node starts or stops intersecting an output.
type OutputEvent struct {
	Output *Output
}

// PresentEvent is emitted on a Buffer's OutputPresent signal once per
// commit for each output the buffer was actually drawn to.
type PresentEvent struct {
	Output  *Output
	When    time.Time
	Seq     uint64
	Refresh time.Duration
}

// FrameDoneEvent is emitted on a Buffer's FrameDone signal by
// SendFrameDone (either the buffer's own, or its primary output's, which
// fans out to every buffer it is primary for) so a client receives
// exactly one frame callback per vsync from its "home" output even when
// visible on several (spec §4.A, §4.F).
type FrameDoneEvent struct {
	Output *Output
	When   time.Time
}

// PointAcceptsInput lets a Buffer override hit-testing with custom
// per-pixel logic (e.g. alpha-channel testing on the backing buffer),
// in place of the default "anywhere inside dst size" rule.
type PointAcceptsInput func(buf *Buffer, x, y float64) bool

// Buffer is a Node variant that samples from a bufsrc.Source and
// presents it scaled/cropped/transformed into a destination box
// (spec §3).
type Buffer struct {
	nodeBase

	buffer bufsrc.Source
	srcBox geom.FBox // empty means "whole buffer"

	dstWidth, dstHeight int // 0 means "derive from buffer size"
	transform           geom.OutputTransform

	cachedTexture bufsrc.Texture
	cachedBackend raster.Backend

	activeOutputs uint64
	primaryOutput *Output

	acceptsInput PointAcceptsInput

	onOutputEnter   signal.Signal[OutputEvent]
	onOutputLeave   signal.Signal[OutputEvent]
	onOutputPresent signal.Signal[PresentEvent]
	onFrameDone     signal.Signal[FrameDoneEvent]
}

// CreateBuffer allocates a Buffer node under parent, initially with no
// buffer attached (and therefore nothing drawn or damaged until
// SetBuffer is called).
func CreateBuffer(parent *Tree) *Buffer {
	assert(parent != nil, "scenegraph: CreateBuffer requires a non-nil parent")
	b := &Buffer{
		nodeBase: nodeBase{typ: NodeTypeBuffer, scene: parent.scene, parent: parent, enabled: true},
	}
	b.self = b
	parent.children = append(parent.children, b)
	if b.scene != nil {
		b.scene.recomputeMembership()
	}
	return b
}

// Source returns the currently attached buffer source, or nil.
func (b *Buffer) Source() bufsrc.Source { return b.buffer }

// SourceBox returns the current sampling crop, or a zero FBox meaning
// "whole buffer".
func (b *Buffer) SourceBox() geom.FBox { return b.srcBox }

// Transform returns the buffer's current source transform.
func (b *Buffer) Transform() geom.OutputTransform { return b.transform }

// SetBuffer attaches buf, replacing (and releasing the cached texture
// for) any previously attached buffer. Damages the node's whole
// footprint, both old and new, since the new buffer's content may differ
// from the old in ways finer-grained damage can't describe.
func (b *Buffer) SetBuffer(buf bufsrc.Source) {
	b.SetBufferWithDamage(buf, nil)
}

// SetBufferWithDamage attaches buf like SetBuffer, but restricts damage
// to the given region of the buffer's own (pre-transform, pre-scale)
// pixel space, translated through the node's transform and src box into
// each output's coordinate space, instead of damaging the whole node.
// The whole-footprint path damages both the old and new footprint,
// mirroring SetDestSize/SetTransform, since a differently-sized
// replacement buffer changes destSize() and the old footprint would
// otherwise never get cleared (spec §4.A).
//
// Per spec §9 (resolved Open Question): this still emits damage when buf
// is the same pointer as the buffer already attached — content may have
// changed in place without the Source identity changing, so "same
// pointer" is not treated as "no-op".
func (b *Buffer) SetBufferWithDamage(buf bufsrc.Source, damage *geom.Region) {
	partial := damage != nil && !damage.IsEmpty()
	if !partial {
		damageWhole(b)
	}
	b.releaseTexture()
	old := b.buffer
	if buf != nil {
		buf.Lock()
	}
	b.buffer = buf
	if old != nil {
		old.Unlock()
	}
	if partial {
		damageBufferRegion(b, damage)
	} else {
		damageWhole(b)
	}
	if b.scene != nil {
		b.scene.recomputeMembership()
	}
}

// SetSourceBox sets the sampling crop rectangle in buffer pixel space; a
// zero box means "sample the whole buffer".
func (b *Buffer) SetSourceBox(box geom.FBox) {
	if b.srcBox == box {
		return
	}
	b.srcBox = box
	damageWhole(b)
}

// SetDestSize sets the node's destination size in its own local
// coordinate space; (0, 0) means "derive from the buffer's size,
// swapped for a 90/270 transform".
func (b *Buffer) SetDestSize(width, height int) {
	if b.dstWidth == width && b.dstHeight == height {
		return
	}
	damageWhole(b)
	b.dstWidth, b.dstHeight = width, height
	damageWhole(b)
	if b.scene != nil {
		b.scene.recomputeMembership()
	}
}

// SetTransform sets the transform applied to the buffer's content before
// it is scaled into the destination box.
func (b *Buffer) SetTransform(t geom.OutputTransform) {
	if b.transform == t {
		return
	}
	damageWhole(b)
	b.transform = t
	damageWhole(b)
	if b.scene != nil {
		b.scene.recomputeMembership()
	}
}

// SetPointAcceptsInput installs a custom hit-test predicate, or clears it
// (falling back to bounds-only testing) when fn is nil.
func (b *Buffer) SetPointAcceptsInput(fn PointAcceptsInput) {
	b.acceptsInput = fn
}

// OnOutputEnter registers fn to run whenever this node starts
// intersecting an output it was not already active on.
func (b *Buffer) OnOutputEnter(fn func(OutputEvent)) signal.Token {
	return b.onOutputEnter.Add(fn)
}

// OnOutputLeave registers fn to run whenever this node stops
// intersecting an output it was active on.
func (b *Buffer) OnOutputLeave(fn func(OutputEvent)) signal.Token {
	return b.onOutputLeave.Add(fn)
}

// OnOutputPresent registers fn to run once per commit for each output
// this node was actually drawn to.
func (b *Buffer) OnOutputPresent(fn func(PresentEvent)) signal.Token {
	return b.onOutputPresent.Add(fn)
}

// OnFrameDone registers fn to run whenever SendFrameDone fires for this
// node, either called directly or through its primary output's
// Output.SendFrameDone. Commit does not fire it.
func (b *Buffer) OnFrameDone(fn func(FrameDoneEvent)) signal.Token {
	return b.onFrameDone.Add(fn)
}

// SendFrameDone fires this buffer's FrameDone signal directly (spec
// §4.A). Output.SendFrameDone is the usual caller, invoking this once
// per output-level frame-done for every buffer that output is primary
// for, but a host may call it on a single buffer directly as well.
func (b *Buffer) SendFrameDone(now time.Time) {
	b.onFrameDone.Emit(FrameDoneEvent{Output: b.primaryOutput, When: now})
}

// ActiveOutputs returns the bitmask of output indices this node currently
// intersects (bit i set means Scene.Outputs()[...] with Index() == i).
func (b *Buffer) ActiveOutputs() uint64 { return b.activeOutputs }

// PrimaryOutput returns the output FrameDone events are fan-out to, or
// nil if the node is not active on any output.
func (b *Buffer) PrimaryOutput() *Output { return b.primaryOutput }

// destSize resolves the effective destination size: the explicit
// SetDestSize value if set, otherwise the buffer's own size with the
// width/height swapped for a 90/270-rotating transform.
func (b *Buffer) destSize() (int, int) {
	if b.dstWidth != 0 || b.dstHeight != 0 {
		return b.dstWidth, b.dstHeight
	}
	if b.buffer == nil {
		return 0, 0
	}
	w, h := b.buffer.Width(), b.buffer.Height()
	if b.transform.Rotates90() {
		w, h = h, w
	}
	return w, h
}

func (b *Buffer) footprint() geom.Box {
	w, h := b.destSize()
	return geom.Box{Width: w, Height: h}
}

func (b *Buffer) releaseTexture() {
	if b.cachedTexture != nil && b.cachedBackend != nil {
		b.cachedBackend.TextureDestroy(b.cachedTexture)
	}
	b.cachedTexture = nil
	b.cachedBackend = nil
}

func (b *Buffer) onDestroyCleanup() {
	b.releaseTexture()
	if b.buffer != nil {
		b.buffer.Unlock()
	}
	for _, o := range b.scene.outputs {
		if b.activeOutputs&(1<<uint(o.index)) != 0 {
			b.onOutputLeave.Emit(OutputEvent{Output: o})
		}
	}
	b.activeOutputs = 0
	b.primaryOutput = nil
}

var _ Node = (*Buffer)(nil)
