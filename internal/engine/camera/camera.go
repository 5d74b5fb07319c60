// Package camera provides camera implementations for 3D rendering.
package camera

import (
	"github.com/Faultbox/canyon-flight/pkg/math"
)

// ChaseCamera rides behind the vehicle. Its eye and target are fixed points
// in the vehicle's body frame, so bank and pitch do not shake the view.
type ChaseCamera struct {
	Eye    math.Vec3 // Eye position in body space
	Target math.Vec3 // Look-at point in body space

	FovY float64 // Vertical field of view, degrees
	Near float64
	Far  float64
}

// NewChaseCamera creates a chase camera with the default framing.
func NewChaseCamera() *ChaseCamera {
	return &ChaseCamera{
		Eye:    math.Vec3{X: 0, Y: 10, Z: -18},
		Target: math.Vec3{X: 0, Y: 5, Z: 1},
		FovY:   90,
		Near:   10,
		Far:    1000,
	}
}

// Position returns the camera position in world space.
func (c *ChaseCamera) Position(body math.Mat4) math.Vec3 {
	return body.TransformVec3(c.Eye)
}

// LookAt returns the world-space point the camera faces.
func (c *ChaseCamera) LookAt(body math.Mat4) math.Vec3 {
	return body.TransformVec3(c.Target)
}

// ViewMatrix returns the view matrix for a vehicle with the given body transform.
func (c *ChaseCamera) ViewMatrix(body math.Mat4) math.Mat4 {
	up := body.TransformDirection(math.Vec3{X: 0, Y: 1, Z: 0})
	return math.LookAt(c.Position(body), c.LookAt(body), up)
}

// Projection returns the perspective projection for the viewport aspect ratio.
func (c *ChaseCamera) Projection(aspect float64) math.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return math.Perspective(math.Radians(c.FovY), aspect, c.Near, c.Far)
}

// ViewProj returns Projection × View.
func (c *ChaseCamera) ViewProj(body math.Mat4, aspect float64) math.Mat4 {
	return c.Projection(aspect).Mul(c.ViewMatrix(body))
}
