package scenegraph

import (
	"time"

	"github.com/gogpu/scenegraph/geom"
	"github.com/gogpu/scenegraph/raster"
)

// highlightFadeout is how long a highlighted damage region stays visible
// before it is swept from the list (spec §4.F step 8).
const highlightFadeout = 250 * time.Millisecond

// highlightStartColor is the overlay color of a highlight region at age
// 0; it fades toward geom.Transparent as the region ages, reaching fully
// transparent at highlightFadeout (spec §4.F step 8: "alpha decays
// linearly from 0.5 at age 0 to 0 at age 250ms").
var highlightStartColor = geom.RGBA(1, 0, 0, 0.5)

// highlightColor computes a highlight region's overlay color at age
// now-created, linearly faded between highlightStartColor and fully
// transparent over highlightFadeout.
func highlightColor(now, created time.Time) geom.Color {
	t := now.Sub(created).Seconds() / highlightFadeout.Seconds()
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return highlightStartColor.Lerp(geom.Transparent, t)
}

// highlightRegion is one generation of an output's damage still being
// visualized in DebugDamageHighlight mode: the portion of that frame's
// damage not already covered by a newer highlight, tagged with when it
// was captured so its overlay alpha and lifetime can be derived from
// age (spec §4.F step 4).
type highlightRegion struct {
	region  *geom.Region
	created time.Time
}

// Scene is the root of a scene graph: one root Tree, the set of outputs
// it is presented on, and the bookkeeping (debug damage mode, highlight
// history, presentation feedback) the commit pipeline needs.
type Scene struct {
	root *Tree

	outputs []*Output

	debugDamage DebugDamageMode
	highlights  map[*Output][]highlightRegion
	now         func() time.Time

	backend      raster.Backend
	prevScanout  map[*Output]bool
	presentation PresentationFeedback
}

// NewScene creates an empty scene with a single root Tree and applies
// opts in order. The debug damage mode defaults to what
// WLR_SCENE_DEBUG_DAMAGE specifies, same as the teacher's logger reading
// its level from the environment once at construction (spec §4.3).
func NewScene(opts ...SceneOption) *Scene {
	s := &Scene{
		debugDamage: parseDebugDamageMode(),
		now:         time.Now,
		highlights:  make(map[*Output][]highlightRegion),
		prevScanout: make(map[*Output]bool),
		backend:     raster.Default(),
	}
	s.root = newTreeIn(s, nil)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Root returns the scene's single root Tree, the node every other node in
// the scene is a descendant of.
func (s *Scene) Root() *Tree {
	return s.root
}

// DebugDamageMode reports the scene's current debug damage visualization
// mode.
func (s *Scene) DebugDamageMode() DebugDamageMode {
	return s.debugDamage
}

// SetDebugDamageMode changes the debug damage visualization mode at
// runtime. Switching away from Highlight mode drops any outstanding
// highlight regions; switching into it starts with none.
func (s *Scene) SetDebugDamageMode(mode DebugDamageMode) {
	if mode == s.debugDamage {
		return
	}
	s.debugDamage = mode
	s.highlights = make(map[*Output][]highlightRegion)
	s.damageAllOutputs()
}

// SetBackend installs the raster.Backend the commit pipeline renders
// composited frames with. Passing nil falls back to raster.Default().
func (s *Scene) SetBackend(b raster.Backend) {
	if b == nil {
		b = raster.Default()
	}
	s.backend = b
}

// SetPresentationFeedback installs the scene-wide presentation feedback
// sink, or clears it when fb is nil.
func (s *Scene) SetPresentationFeedback(fb PresentationFeedback) {
	s.presentation = fb
}

// captureHighlight snapshots region (o's currently accumulated damage)
// as a new highlightRegion prepended to o's history, if it is non-empty
// (spec §4.F step 4: "if the current damage is non-empty, snapshot it
// into a new HighlightRegion prepended to the scene's list").
func (s *Scene) captureHighlight(o *Output, region *geom.Region) {
	if region == nil || region.IsEmpty() {
		return
	}
	s.highlights[o] = append([]highlightRegion{{region: region, created: s.now()}}, s.highlights[o]...)
}

// sweepHighlights processes o's highlight history in list (newest-first)
// order: each region has whatever the newer regions already cover
// subtracted out so masked areas don't double-draw, the remainder is
// unioned into the returned accumulator, and any region left empty by
// the subtraction or older than highlightFadeout is dropped from the
// list (spec §4.F step 4).
func (s *Scene) sweepHighlights(o *Output) (*geom.Region, []highlightRegion) {
	now := s.now()
	accumulator := geom.NewRegion()
	live := s.highlights[o][:0]
	for _, h := range s.highlights[o] {
		h.region.Subtract(accumulator)
		accumulator.AddRegion(h.region)
		if h.region.IsEmpty() || now.Sub(h.created) >= highlightFadeout {
			continue
		}
		live = append(live, h)
	}
	s.highlights[o] = live
	return accumulator, live
}

func (s *Scene) damageAllOutputs() {
	for _, o := range s.outputs {
		o.disp.Damage().AddWhole()
	}
}
