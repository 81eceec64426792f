package scenegraph

import (
	"os"
	"strings"
)

// DebugDamageMode controls the scene's damage-visualization behavior,
// mirroring the WLR_SCENE_DEBUG_DAMAGE environment variable (spec §6).
type DebugDamageMode uint8

const (
	// DebugDamageNone renders normally: scanout when possible, composite
	// otherwise, no visualization.
	DebugDamageNone DebugDamageMode = iota

	// DebugDamageRerender damages every output in full on each composited
	// frame. Direct scanout is still attempted first.
	DebugDamageRerender

	// DebugDamageHighlight disables scanout and overlays a fading red
	// highlight over the regions that were actually damaged.
	DebugDamageHighlight
)

const debugDamageEnvVar = "WLR_SCENE_DEBUG_DAMAGE"

// parseDebugDamageMode parses the WLR_SCENE_DEBUG_DAMAGE environment
// variable. Unset or "none" (case-insensitive) yields DebugDamageNone. Any
// other unrecognized value is logged at warn level and also defaults to
// DebugDamageNone — spec §7 requires this to never abort.
func parseDebugDamageMode() DebugDamageMode {
	val, ok := os.LookupEnv(debugDamageEnvVar)
	if !ok {
		return DebugDamageNone
	}
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "", "none":
		return DebugDamageNone
	case "rerender":
		return DebugDamageRerender
	case "highlight":
		return DebugDamageHighlight
	default:
		logger().Warn("unknown debug damage mode, defaulting to none",
			"env", debugDamageEnvVar, "value", val)
		return DebugDamageNone
	}
}
