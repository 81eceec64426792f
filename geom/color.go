package geom

// Color is an RGBA color with each component in [0, 1], adapted from the
// teacher's gg.RGBA (_examples/gogpu-gg/color.go), trimmed to what a Rect
// node's fill color needs — the hex/HSL constructors the teacher carries
// for its drawing API have no caller here.
type Color struct {
	R, G, B, A float64
}

// RGB returns an opaque color.
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// RGBA returns a color with explicit alpha.
func RGBA(r, g, b, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Lerp linearly interpolates between c and other.
func (c Color) Lerp(other Color, t float64) Color {
	return Color{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
		A: c.A + (other.A-c.A)*t,
	}
}

// Common colors used by debug-damage highlighting.
var (
	Black       = RGB(0, 0, 0)
	Transparent = RGBA(0, 0, 0, 0)
)
