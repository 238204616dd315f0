package app

// ShouldRender is the render decision accumulated between frames.
type ShouldRender bool

const (
	Skip   ShouldRender = false
	Render ShouldRender = true
)

// Or merges two decisions; Render dominates.
func (s ShouldRender) Or(other ShouldRender) ShouldRender {
	return s || other
}

// IsRender reports whether a redraw is due.
func (s ShouldRender) IsRender() bool {
	return s == Render
}

// String returns "render" or "skip".
func (s ShouldRender) String() string {
	if s {
		return "render"
	}
	return "skip"
}

// RuntimeInfo carries scheduler telemetry to the draw step.
type RuntimeInfo struct {
	// FPS is the number of render cycles completed in the previous timer window.
	FPS int
}

// FoldFrames turns the frame count accumulated since the previous timer event
// into the telemetry shown for the next window.
func FoldFrames(count int) RuntimeInfo {
	return RuntimeInfo{FPS: count}
}
