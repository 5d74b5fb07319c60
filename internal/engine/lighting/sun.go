// Package lighting provides lighting utilities for 3D rendering.
package lighting

import "math"

// Sun is a directional light placed by angles in degrees.
type Sun struct {
	Azimuth   float64 // Rotation around +Y; 0 points toward +Z, 90 toward +X
	Elevation float64 // Above the horizon, 0-90
}

// DefaultSun lights the canyon from high over the left shoulder of a
// vehicle flying toward +Z.
func DefaultSun() Sun {
	return Sun{Azimuth: 145, Elevation: 60}
}

// ToSun returns the unit vector pointing from the scene toward the sun.
func (s Sun) ToSun() [3]float32 {
	az := s.Azimuth * math.Pi / 180
	el := s.Elevation * math.Pi / 180

	x := float32(math.Cos(el) * math.Sin(az))
	y := float32(math.Sin(el))
	z := float32(math.Cos(el) * math.Cos(az))
	return [3]float32{x, y, z}
}

// Direction returns the direction the light travels, as the shaders expect.
func (s Sun) Direction() [3]float32 {
	v := s.ToSun()
	return [3]float32{-v[0], -v[1], -v[2]}
}
