// Package display defines the "external display abstraction" scene.Output
// wraps (spec §6, "Consumed from the display abstraction"): resolution,
// scale, transform, buffer attach/test/commit, and a damage accumulator.
// scenegraph's commit pipeline (root package commit.go) drives one Output
// per physical display; it never owns the display's actual presentation
// loop or mode-setting.
package display

import (
	"github.com/gogpu/scenegraph/bufsrc"
	"github.com/gogpu/scenegraph/geom"
)

// DamageAccumulator tracks the set of pixels a display still needs
// repainted, mirroring spec §6's damage-accumulator group: add/add_box/
// add_whole/attach_render/current.
type DamageAccumulator interface {
	// Add unions region into the accumulator.
	Add(region *geom.Region)

	// AddBox unions a single box into the accumulator.
	AddBox(box geom.Box)

	// AddWhole marks the entire output as damaged.
	AddWhole()

	// AttachRender prepares to render a frame using the accumulated
	// damage, returning whether a frame is actually needed and the
	// damage to repaint. The call itself clears the accumulator; the
	// caller commits or rolls back the frame separately.
	AttachRender() (needsFrame bool, damage *geom.Region)

	// Current returns the currently accumulated (not yet attached)
	// damage, without consuming it.
	Current() *geom.Region
}

// Output is one physical display a scene can commit to.
type Output interface {
	// Resolution returns the output's logical (scene-unit) size.
	Resolution() (width, height int)

	// TransformedResolution returns the output's physical pixel size
	// after Transform is applied (width/height swapped for 90/270).
	TransformedResolution() (width, height int)

	// Scale returns the ratio between logical and physical pixels.
	Scale() float64

	// Transform returns the output's current orientation.
	Transform() geom.OutputTransform

	// TransformMatrix returns the 2D affine matrix for Transform.
	TransformMatrix() geom.Matrix

	// AttachBuffer stages buf for direct scanout, returning whether the
	// attach succeeded. A failed attach leaves the display uncommitted.
	AttachBuffer(buf bufsrc.Source) bool

	// Test validates the currently attached state without presenting it.
	Test() bool

	// Rollback discards a staged attach/render that was never committed.
	Rollback()

	// Commit presents the currently attached/rendered frame.
	Commit() bool

	// ScheduleFrame requests a future frame callback (used to drive
	// highlight-region fadeout animation when no other damage exists).
	ScheduleFrame()

	// RenderSoftwareCursors composites any software cursor planes over
	// the given damage region, called after scene content is drawn.
	RenderSoftwareCursors(damage *geom.Region)

	// Damage returns the output's damage accumulator.
	Damage() DamageAccumulator
}
