package renderer

import (
	gomath "math"

	"github.com/Faultbox/canyon-flight/internal/canyon"
	"github.com/Faultbox/canyon-flight/internal/engine/terrain"
	"github.com/Faultbox/canyon-flight/internal/flight"
	"github.com/Faultbox/canyon-flight/pkg/math"
)

const (
	explosionRadius = 9.5
	sphereSlices    = 12
	sphereStacks    = 12
)

var (
	airframeColor  = [4]float32{0.75, 0.78, 0.85, 1}
	explosionColor = [3]float32{1, 0.4, 0}
)

// AirframeMesh builds the vehicle model from the same points used for
// terrain contact: a delta wing and a tail fin.
func AirframeMesh() *terrain.Mesh {
	nose, left, right := flight.AirframePoints()
	tail := math.Vec3{X: 0, Y: left.Y, Z: left.Z}
	finTop := math.Vec3{X: 0, Y: 3, Z: left.Z}
	finRoot := math.Vec3{X: 0, Y: 0, Z: 0}

	mesh := &terrain.Mesh{}
	addTriangle(mesh, nose, left, right)
	addTriangle(mesh, finRoot, tail, finTop)
	return mesh
}

func addTriangle(mesh *terrain.Mesh, a, b, c math.Vec3) {
	n := b.Sub(a).Cross(c.Sub(a)).Normalize()
	if n.Y < 0 {
		n = n.Scale(-1)
	}
	base := uint32(len(mesh.Vertices))
	for _, p := range []math.Vec3{a, b, c} {
		mesh.Vertices = append(mesh.Vertices, terrain.Vertex{
			Position: p.Float32(),
			Normal:   n.Float32(),
			Color:    airframeColor,
		})
	}
	mesh.Indices = append(mesh.Indices, base, base+1, base+2)
}

// SphereMesh builds a unit UV sphere with smooth normals.
func SphereMesh(slices, stacks int) *terrain.Mesh {
	mesh := &terrain.Mesh{}
	for st := 0; st <= stacks; st++ {
		phi := gomath.Pi * float64(st) / float64(stacks)
		for sl := 0; sl <= slices; sl++ {
			theta := 2 * gomath.Pi * float64(sl) / float64(slices)
			p := math.Vec3{
				X: gomath.Sin(phi) * gomath.Cos(theta),
				Y: gomath.Cos(phi),
				Z: gomath.Sin(phi) * gomath.Sin(theta),
			}
			mesh.Vertices = append(mesh.Vertices, terrain.Vertex{
				Position: p.Float32(),
				Normal:   p.Float32(),
				Color:    [4]float32{1, 1, 1, 1},
			})
		}
	}

	row := uint32(slices + 1)
	for st := 0; st < stacks; st++ {
		for sl := 0; sl < slices; sl++ {
			a := uint32(st)*row + uint32(sl)
			b := a + row
			mesh.Indices = append(mesh.Indices, a, b, a+1, a+1, b, b+1)
		}
	}
	return mesh
}

// ExplosionAt returns the fireball radius and colour t seconds after a crash.
// The fireball grows linearly while its opacity fades out over two seconds.
func ExplosionAt(t float64) (radius float64, color [4]float32) {
	if t < 0 {
		t = 0
	}
	fade := gomath.Max(0, 1-t/2)
	return t * explosionRadius * 2, [4]float32{
		explosionColor[0], explosionColor[1], explosionColor[2],
		float32(fade * fade),
	}
}

// diffSegments compares uploaded segments with the current ready set.
func diffSegments(have []*canyon.Segment, current [2]*canyon.Segment) (add, drop []*canyon.Segment) {
	for _, seg := range current {
		if !seg.Ready() {
			continue
		}
		found := false
		for _, h := range have {
			if h == seg {
				found = true
				break
			}
		}
		if !found {
			add = append(add, seg)
		}
	}
	for _, h := range have {
		if h != current[0] && h != current[1] {
			drop = append(drop, h)
		}
	}
	return add, drop
}
