package scenegraph

// PresentationFeedback is the scene's optional presentation-feedback
// reference. The scene only notifies it of its own teardown; it receives
// no per-commit timing. A Scene holds at most one, installed via
// SetPresentationFeedback; it is
// deliberately a thin, single-method interface rather than the richer
// wp_presentation protocol object it stands in for (spec §1, Non-goals:
// protocol wire handling is out of scope for this core).
type PresentationFeedback interface {
	// OnDestroy is called once, when the scene root is destroyed, so a
	// client holding a reference to the feedback object knows the scene
	// it was tracking presentation for is gone (spec §4.A).
	OnDestroy()
}
