// Package bezier evaluates cubic Bezier curves through a precomputed
// basis-change matrix.
package bezier

import (
	gomath "math"

	"github.com/Faultbox/canyon-flight/pkg/math"
)

// Curve is a cubic Bezier curve defined by exactly four control points.
type Curve struct {
	points [4]math.Vec3
	matrix math.Mat4
}

// New builds a curve and precomputes its evaluation matrix.
func New(p0, p1, p2, p3 math.Vec3) *Curve {
	points := [4]math.Vec3{p0, p1, p2, p3}
	return &Curve{
		points: points,
		matrix: Matrix(points),
	}
}

// Matrix returns M = ControlPointMatrix × BezierBasis, so that
// M × [t³, t², t, 1] is the curve position at t.
func Matrix(points [4]math.Vec3) math.Mat4 {
	control := math.FromColumns(
		points[0].Vec4(),
		points[1].Vec4(),
		points[2].Vec4(),
		points[3].Vec4(),
	)
	return control.Mul(math.BezierBasis())
}

// Matrix returns the precomputed evaluation matrix.
func (c *Curve) Matrix() math.Mat4 {
	return c.matrix
}

// ControlPoints returns the four control points.
func (c *Curve) ControlPoints() [4]math.Vec3 {
	return c.points
}

// Point evaluates the curve at parameter t.
// t outside [0,1] extrapolates the same polynomial.
func (c *Curve) Point(t float64) math.Vec3 {
	return c.matrix.MulVec4(math.BezierVector(t)).Vec3()
}

// Sample evaluates the curve at samples+2*pad evenly spaced parameters with
// step 1/samples, starting pad steps before t=0. The padding keeps distance
// queries accurate near the ends of the curve.
func (c *Curve) Sample(samples, pad int) []math.Vec3 {
	if samples <= 0 {
		return nil
	}
	step := 1.0 / float64(samples)
	out := make([]math.Vec3, 0, samples+2*pad)
	for k := -pad; k < samples+pad; k++ {
		out = append(out, c.Point(float64(k)*step))
	}
	return out
}

// Distance returns the smallest planar (X/Y) distance from (x, y) to any of
// the sampled points. It returns +Inf for an empty sample set.
func Distance(x, y float64, samples []math.Vec3) float64 {
	best := gomath.Inf(1)
	for _, p := range samples {
		dx := x - p.X
		dy := y - p.Y
		if d := dx*dx + dy*dy; d < best {
			best = d
		}
	}
	return gomath.Sqrt(best)
}
