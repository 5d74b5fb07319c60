package math

// BezierBasis returns the cubic Bezier basis matrix.
// Row i holds the coefficients of the i-th Bernstein polynomial over
// [t³, t², t, 1], so P × B × BezierVector(t) is the curve point for a
// control point matrix P whose columns are the four control points.
func BezierBasis() Mat4 {
	// The matrix is symmetric, so row- and column-major layouts agree.
	return Mat4{
		-1, 3, -3, 1,
		3, -6, 3, 0,
		-3, 3, 0, 0,
		1, 0, 0, 0,
	}
}

// BezierVector returns [t³, t², t, 1].
func BezierVector(t float64) Vec4 {
	return Vec4{t * t * t, t * t, t, 1}
}
