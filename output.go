package scenegraph

import (
	"time"

	"github.com/gogpu/scenegraph/display"
	"github.com/gogpu/scenegraph/geom"
	"github.com/gogpu/scenegraph/signal"
)

// maxOutputs bounds how many outputs may be tracked in a single scene: the
// active-outputs membership bitmask is a uint64, one bit per output.
const maxOutputs = 64

// Output is a physical display attached to a Scene, pairing a
// display.Output with the scene-coordinate position and index the
// membership tracker and commit pipeline key off of.
type Output struct {
	scene *Scene
	disp  display.Output
	index int // bit position in active_outputs bitmasks, 0..63
	x, y  int // top-left in scene coordinates

	destroySig signal.Signal[*Output]
}

// NewOutput attaches disp to the scene at scene position (x, y) and
// returns the Output handle. Panics if the scene already tracks
// maxOutputs outputs (spec §9, Open Question: the 64-output cap is a
// hard, fatal limit rather than a soft one).
func (s *Scene) NewOutput(disp display.Output, x, y int) *Output {
	idx := s.allocOutputIndex()
	assert(idx >= 0, "scenegraph: scene already has the maximum of %d outputs", maxOutputs)
	o := &Output{scene: s, disp: disp, index: idx, x: x, y: y}
	s.outputs = append(s.outputs, o)
	disp.Damage().AddWhole()
	s.recomputeMembership()
	return o
}

// allocOutputIndex returns the smallest index not currently in use by any
// tracked output, or -1 if the scene is already at maxOutputs.
func (s *Scene) allocOutputIndex() int {
	used := uint64(0)
	for _, o := range s.outputs {
		used |= 1 << uint(o.index)
	}
	for i := 0; i < maxOutputs; i++ {
		if used&(1<<uint(i)) == 0 {
			return i
		}
	}
	return -1
}

// Index reports this output's bit position in active_outputs bitmasks.
func (o *Output) Index() int { return o.index }

// Display returns the underlying display.Output this wraps.
func (o *Output) Display() display.Output { return o.disp }

// Position returns the output's top-left in scene coordinates.
func (o *Output) Position() (int, int) { return o.x, o.y }

// SetPosition moves the output within the scene. Moving an output changes
// which nodes intersect it, so membership is recomputed afterward.
func (o *Output) SetPosition(x, y int) {
	if o.x == x && o.y == y {
		return
	}
	o.x, o.y = x, y
	o.scene.recomputeMembership()
}

// Box returns the output's footprint in scene (logical) coordinates.
func (o *Output) Box() geom.Box {
	w, h := o.disp.Resolution()
	return geom.Box{X: o.x, Y: o.y, Width: w, Height: h}
}

// OnDestroy registers fn to run when this output is removed from the
// scene via Scene.RemoveOutput.
func (o *Output) OnDestroy(fn func(*Output)) signal.Token {
	return o.destroySig.Add(fn)
}

// RemoveOutput detaches out from the scene: its index is freed for reuse,
// membership is recomputed as if it had never intersected any node (which
// fires output_leave for every Buffer that was active on it), and its
// destroy signal fires.
func (s *Scene) RemoveOutput(out *Output) {
	idx := -1
	for i, o := range s.outputs {
		if o == out {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	s.outputs = append(s.outputs[:idx], s.outputs[idx+1:]...)
	s.recomputeMembership()
	out.destroySig.Emit(out)
}

// Outputs returns the scene's tracked outputs in registration order. The
// primary output (the one with the largest overlap area among a
// Buffer's active outputs, spec §4.E) is not necessarily Outputs()[0],
// and need not even be the lowest-indexed active output.
func (s *Scene) Outputs() []*Output {
	return s.outputs
}

// SendFrameDone fires FrameDone on every Buffer node whose primary
// output is this one (spec §4.F): this guarantees each buffer receives
// exactly one frame-done per vsync from its "home" output even when
// visible on several.
func (o *Output) SendFrameDone(now time.Time) {
	o.scene.ForEachBuffer(func(b *Buffer, x, y int) {
		if b.primaryOutput == o {
			b.SendFrameDone(now)
		}
	})
}
