package terrain

import "math"

// Altitude bands, in heightfield units.
const (
	WaterLevel = 10
	SandLevel  = 20
	GrassLevel = 45
	RockLevel  = 70
)

// BuildMesh creates a flat-shaded quad mesh from a heightfield.
// Grid cell (i, j) maps to world ((i+xMin)*cellSize, height, (j+yMin)*cellSize).
func BuildMesh(hf Heightfield, cellSize float64) *Mesh {
	width, height := hf.Size()
	xMin, yMin := hf.Origin()

	mesh := &Mesh{
		Bounds: Bounds{
			Min: [3]float32{1e10, 1e10, 1e10},
			Max: [3]float32{-1e10, -1e10, -1e10},
		},
	}
	if width < 2 || height < 2 {
		return mesh
	}

	quads := (width - 1) * (height - 1)
	mesh.Vertices = make([]Vertex, 0, quads*4)
	mesh.Indices = make([]uint32, 0, quads*6)

	point := func(i, j int) [3]float32 {
		return [3]float32{
			float32(float64(i+xMin) * cellSize),
			float32(hf.At(i, j)),
			float32(float64(j+yMin) * cellSize),
		}
	}

	for j := 0; j < height-1; j++ {
		for i := 0; i < width-1; i++ {
			corners := [4][3]float32{
				point(i, j),
				point(i, j+1),
				point(i+1, j+1),
				point(i+1, j),
			}
			for _, c := range corners {
				updateBounds(&mesh.Bounds, c)
			}

			normal := normalize(cross(sub(corners[2], corners[1]), sub(corners[0], corners[1])))

			base := uint32(len(mesh.Vertices))
			for _, c := range corners {
				mesh.Vertices = append(mesh.Vertices, Vertex{
					Position: c,
					Normal:   normal,
					Color:    BandColor(float64(c[1])),
				})
			}
			mesh.Indices = append(mesh.Indices,
				base, base+1, base+2,
				base, base+2, base+3,
			)
		}
	}

	return mesh
}

// BandColor returns the vertex colour for a terrain height.
func BandColor(h float64) [4]float32 {
	switch {
	case h < WaterLevel:
		return [4]float32{0, 0, 0.7, 1}
	case h < SandLevel:
		return [4]float32{1, 1, 0.3, 1}
	case h < GrassLevel:
		return [4]float32{0, 0.6, 0, 1}
	case h < RockLevel:
		return [4]float32{0.3, 0.3, 0, 1}
	default:
		return [4]float32{1, 1, 1, 1}
	}
}

func updateBounds(b *Bounds, p [3]float32) {
	for k := 0; k < 3; k++ {
		if p[k] < b.Min[k] {
			b.Min[k] = p[k]
		}
		if p[k] > b.Max[k] {
			b.Max[k] = p[k]
		}
	}
}

func sub(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func cross(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func normalize(v [3]float32) [3]float32 {
	l := float32(math.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])))
	if l < 0.0001 {
		return [3]float32{0, 1, 0}
	}
	return [3]float32{v[0] / l, v[1] / l, v[2] / l}
}
