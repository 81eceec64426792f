package display

import "github.com/gogpu/scenegraph/geom"

// maxAccumulatedBoxes bounds how many individual damage boxes
// RegionAccumulator will track before collapsing to a single full-surface
// box.
// Adapted from the teacher's render.Scene dirty-rect threshold
// (_examples/gogpu-gg/render/scene.go: maxDirtyRects = 16) — the same
// engineering tradeoff (many small rects cost more to scissor/clear
// individually than one big rect costs to over-draw).
const maxAccumulatedBoxes = 16

// RegionAccumulator is the reference DamageAccumulator implementation: a
// bounded list of damage boxes that collapses to a single full-surface
// box once it grows past maxAccumulatedBoxes, exactly mirroring the
// teacher's fullRedraw fallback.
type RegionAccumulator struct {
	region geom.Region
	full   bool
	width  int
	height int
}

// NewRegionAccumulator creates an accumulator for a surface of the given
// physical pixel size.
func NewRegionAccumulator(width, height int) *RegionAccumulator {
	return &RegionAccumulator{width: width, height: height}
}

// Resize updates the surface size backing AddWhole/the full-redraw
// fallback box. Existing accumulated damage is left as-is.
func (a *RegionAccumulator) Resize(width, height int) {
	a.width, a.height = width, height
}

func (a *RegionAccumulator) Add(region *geom.Region) {
	if region == nil {
		return
	}
	for _, b := range region.Boxes() {
		a.AddBox(b)
	}
}

func (a *RegionAccumulator) AddBox(box geom.Box) {
	if a.full || box.IsEmpty() {
		return
	}
	a.region.Add(box)
	if len(a.region.Boxes()) > maxAccumulatedBoxes {
		a.full = true
		a.region.Clear()
	}
}

func (a *RegionAccumulator) AddWhole() {
	a.full = true
	a.region.Clear()
}

func (a *RegionAccumulator) Current() *geom.Region {
	if a.full {
		r := geom.NewRegion()
		r.Add(geom.Box{Width: a.width, Height: a.height})
		return r
	}
	return a.region.Clone()
}

func (a *RegionAccumulator) AttachRender() (bool, *geom.Region) {
	cur := a.Current()
	needsFrame := !cur.IsEmpty()
	a.full = false
	a.region.Clear()
	return needsFrame, cur
}

var _ DamageAccumulator = (*RegionAccumulator)(nil)
