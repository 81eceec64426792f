package display

import (
	"github.com/gogpu/scenegraph/bufsrc"
	"github.com/gogpu/scenegraph/geom"
)

// FakeOutput is a minimal in-memory Output, used by scenegraph's own
// tests and by cmd/scenedemo to drive the commit pipeline without a real
// compositor backend behind it.
type FakeOutput struct {
	Width, Height int
	ScaleValue    float64
	TransformVal  geom.OutputTransform

	damage *RegionAccumulator

	attached       bufsrc.Source
	testResult     bool
	commitResult   bool
	scheduledFrame bool
	cursorDamage   *geom.Region
}

// NewFakeOutput creates a FakeOutput of the given logical size at scale 1,
// normal transform. Test/Commit both default to succeeding.
func NewFakeOutput(width, height int) *FakeOutput {
	phys := widthHeightForTransform(width, height, geom.TransformNormal, 1)
	return &FakeOutput{
		Width:        width,
		Height:       height,
		ScaleValue:   1,
		TransformVal: geom.TransformNormal,
		damage:       NewRegionAccumulator(phys.w, phys.h),
		testResult:   true,
		commitResult: true,
	}
}

type wh struct{ w, h int }

func widthHeightForTransform(w, h int, t geom.OutputTransform, scale float64) wh {
	pw, ph := int(float64(w)*scale), int(float64(h)*scale)
	if t.Rotates90() {
		pw, ph = ph, pw
	}
	return wh{pw, ph}
}

func (o *FakeOutput) Resolution() (int, int) { return o.Width, o.Height }

func (o *FakeOutput) TransformedResolution() (int, int) {
	r := widthHeightForTransform(o.Width, o.Height, o.TransformVal, o.ScaleValue)
	return r.w, r.h
}

func (o *FakeOutput) Scale() float64 { return o.ScaleValue }

func (o *FakeOutput) Transform() geom.OutputTransform { return o.TransformVal }

func (o *FakeOutput) TransformMatrix() geom.Matrix {
	r := widthHeightForTransform(o.Width, o.Height, geom.TransformNormal, o.ScaleValue)
	return o.TransformVal.Matrix(float64(r.w), float64(r.h))
}

// SetTestResult controls what the next Test() call returns.
func (o *FakeOutput) SetTestResult(ok bool) { o.testResult = ok }

// SetCommitResult controls what the next Commit() call returns.
func (o *FakeOutput) SetCommitResult(ok bool) { o.commitResult = ok }

func (o *FakeOutput) AttachBuffer(buf bufsrc.Source) bool {
	o.attached = buf
	return true
}

func (o *FakeOutput) Test() bool { return o.testResult }

func (o *FakeOutput) Rollback() { o.attached = nil }

func (o *FakeOutput) Commit() bool { return o.commitResult }

func (o *FakeOutput) ScheduleFrame() { o.scheduledFrame = true }

// FramePending reports whether ScheduleFrame was called since the last
// ConsumeFramePending.
func (o *FakeOutput) FramePending() bool { return o.scheduledFrame }

// ConsumeFramePending clears and returns FramePending's previous value.
func (o *FakeOutput) ConsumeFramePending() bool {
	v := o.scheduledFrame
	o.scheduledFrame = false
	return v
}

func (o *FakeOutput) RenderSoftwareCursors(damage *geom.Region) {
	o.cursorDamage = damage
}

func (o *FakeOutput) Damage() DamageAccumulator { return o.damage }

// AttachedBuffer returns the buffer most recently passed to AttachBuffer,
// or nil after Rollback.
func (o *FakeOutput) AttachedBuffer() bufsrc.Source { return o.attached }

var _ Output = (*FakeOutput)(nil)
