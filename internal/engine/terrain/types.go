// Package terrain turns canyon heightfields into renderable meshes.
package terrain

// Vertex represents a terrain mesh vertex with all attributes.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	Color    [4]float32
}

// Mesh holds the complete terrain mesh data ready for GPU upload.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
}

// Bounds holds the axis-aligned bounding box of the terrain.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Heightfield is a grid of heights placed in world space.
type Heightfield interface {
	Size() (width, height int)
	Origin() (xMin, yMin int)
	At(i, j int) float64
}
