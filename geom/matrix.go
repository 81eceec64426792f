package geom

import (
	"math"
)

// Matrix is a 2D affine transformation matrix in row-major order:
//
//	| A  B  C |
//	| D  E  F |
//
// representing x' = A*x + B*y + C, y' = D*x + E*y + F. Adapted from the
// teacher's gg.Matrix (_examples/gogpu-gg/matrix.go); this module additionally
// provides the eight Transform matrices the glossary's "output transform"
// calls for, which plain affine algebra in the teacher has no use for.
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// IdentityMatrix returns the identity transform.
func IdentityMatrix() Matrix {
	return Matrix{A: 1, D: 0, B: 0, E: 1}
}

// TranslateMatrix returns a pure translation.
func TranslateMatrix(x, y float64) Matrix {
	return Matrix{A: 1, B: 0, C: x, D: 0, E: 1, F: y}
}

// ScaleMatrix returns a pure scale about the origin.
func ScaleMatrix(x, y float64) Matrix {
	return Matrix{A: x, B: 0, C: 0, D: 0, E: y, F: 0}
}

// Multiply returns m composed with other (m applied after other: m*other).
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// TransformPoint applies m to (x, y).
func (m Matrix) TransformPoint(x, y float64) (float64, float64) {
	return m.A*x + m.B*y + m.C, m.D*x + m.E*y + m.F
}

// Invert returns m's inverse, or the identity if m is singular.
func (m Matrix) Invert() Matrix {
	det := m.A*m.E - m.B*m.D
	if math.Abs(det) < 1e-10 {
		return IdentityMatrix()
	}
	inv := 1.0 / det
	return Matrix{
		A: m.E * inv,
		B: -m.B * inv,
		C: (m.B*m.F - m.C*m.E) * inv,
		D: -m.D * inv,
		E: m.A * inv,
		F: (m.C*m.D - m.A*m.F) * inv,
	}
}

// IsIdentity reports whether m is the identity matrix.
func (m Matrix) IsIdentity() bool {
	return m == IdentityMatrix()
}

// OutputTransform is one of the eight discrete orientations that remap
// pixel coordinates between a display and its logical surface (glossary:
// "output transform").
type OutputTransform uint8

const (
	TransformNormal OutputTransform = iota
	Transform90
	Transform180
	Transform270
	TransformFlipped
	TransformFlipped90
	TransformFlipped180
	TransformFlipped270
)

// Rotates90 reports whether t swaps width and height (used by size
// queries and scanout eligibility checks).
func (t OutputTransform) Rotates90() bool {
	switch t {
	case Transform90, Transform270, TransformFlipped90, TransformFlipped270:
		return true
	default:
		return false
	}
}

// Flipped reports whether t includes a horizontal mirror component.
func (t OutputTransform) Flipped() bool {
	return t >= TransformFlipped
}

// Invert returns the transform that undoes t.
func (t OutputTransform) Invert() OutputTransform {
	if t.Flipped() {
		// Flipped transforms are their own inverse under this encoding:
		// mirroring twice with the same rotation returns to start, and the
		// rotation component for flipped variants is already expressed
		// relative to the mirror, matching the Wayland wl_output.transform
		// enum's composition rules.
		return t
	}
	switch t {
	case Transform90:
		return Transform270
	case Transform270:
		return Transform90
	default:
		return t
	}
}

// Matrix returns the 3x3-equivalent 2D affine matrix for t applied to
// content of the given (unrotated) width and height, expressed as our 2x3
// Matrix (the homogeneous third row is always [0 0 1] and is omitted).
func (t OutputTransform) Matrix(width, height float64) Matrix {
	var m Matrix
	switch t {
	case TransformNormal:
		m = IdentityMatrix()
	case Transform90:
		m = Matrix{A: 0, B: -1, C: height, D: 1, E: 0, F: 0}
	case Transform180:
		m = Matrix{A: -1, B: 0, C: width, D: 0, E: -1, F: height}
	case Transform270:
		m = Matrix{A: 0, B: 1, C: 0, D: -1, E: 0, F: width}
	case TransformFlipped:
		m = Matrix{A: -1, B: 0, C: width, D: 0, E: 1, F: 0}
	case TransformFlipped90:
		m = Matrix{A: 0, B: 1, C: 0, D: 1, E: 0, F: 0}
	case TransformFlipped180:
		m = Matrix{A: 1, B: 0, C: 0, D: 0, E: -1, F: height}
	case TransformFlipped270:
		m = Matrix{A: 0, B: -1, C: height, D: -1, E: 0, F: width}
	default:
		m = IdentityMatrix()
	}
	return m
}

// TransformBox maps box's four corners through m and returns their
// axis-aligned bounding box, rounded outward to integer pixels. Used to
// carry a damage box from an output's pre-transform pixel space into its
// physical framebuffer space.
func TransformBox(box Box, m Matrix) Box {
	if box.IsEmpty() {
		return Box{}
	}
	x0, y0 := m.TransformPoint(float64(box.X), float64(box.Y))
	x1, y1 := m.TransformPoint(float64(box.Right()), float64(box.Y))
	x2, y2 := m.TransformPoint(float64(box.X), float64(box.Bottom()))
	x3, y3 := m.TransformPoint(float64(box.Right()), float64(box.Bottom()))
	minX := math.Min(math.Min(x0, x1), math.Min(x2, x3))
	maxX := math.Max(math.Max(x0, x1), math.Max(x2, x3))
	minY := math.Min(math.Min(y0, y1), math.Min(y2, y3))
	maxY := math.Max(math.Max(y0, y1), math.Max(y2, y3))
	rx0, ry0 := int(math.Floor(minX)), int(math.Floor(minY))
	rx1, ry1 := int(math.Ceil(maxX)), int(math.Ceil(maxY))
	return Box{X: rx0, Y: ry0, Width: rx1 - rx0, Height: ry1 - ry0}
}
