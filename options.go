package scenegraph

import "time"

// SceneOption configures a Scene at construction, following the
// functional-options idiom the teacher's gg.Context uses for optional
// construction-time knobs.
type SceneOption func(*Scene)

// WithDebugDamage overrides the debug damage visualization mode that
// would otherwise be read from the WLR_SCENE_DEBUG_DAMAGE environment
// variable, letting callers (notably tests) select a mode without
// mutating process environment.
func WithDebugDamage(mode DebugDamageMode) SceneOption {
	return func(s *Scene) { s.debugDamage = mode }
}

// WithClock overrides the time source the highlight-region fadeout timer
// uses, in place of time.Now, so tests can drive fadeout deterministically.
func WithClock(now func() time.Time) SceneOption {
	return func(s *Scene) {
		if now != nil {
			s.now = now
		}
	}
}
