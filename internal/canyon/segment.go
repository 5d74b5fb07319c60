package canyon

import (
	gomath "math"
	"math/rand/v2"
	"sync/atomic"

	"github.com/Faultbox/canyon-flight/internal/bezier"
	"github.com/Faultbox/canyon-flight/pkg/math"
)

// Segment is one generated stretch of canyon.
// The grid is written only while the segment is built; once Ready reports
// true the segment is immutable and safe for concurrent reads.
type Segment struct {
	Heights []float64 // Row-major, index j*Width+i
	Width   int
	Height  int
	XMin    int // Grid column 0 in world cells
	YMin    int // Grid row 0 in world cells
	Index   int // Sequence number along the canyon

	ControlPoints [4]math.Vec3 // Centerline control points in world cells

	ready atomic.Bool
}

// GenerateParams places a segment along the canyon.
type GenerateParams struct {
	XStart float64 // Centerline X where the segment begins
	YStart float64 // First row of the segment in world cells
	XNext  float64 // X of the second control point (sets the entry tangent)
	Index  int
}

// First returns the parameters of the opening segment.
func First(rng *rand.Rand, cfg Config) GenerateParams {
	return GenerateParams{
		XStart: float64(rng.IntN(cfg.Width)),
		YStart: 0,
		XNext:  float64(rng.IntN(cfg.Width)),
		Index:  0,
	}
}

// Continuation returns the parameters of the segment that follows prev.
// It starts at prev's terminal control point and mirrors prev's third
// control point through it, so the centerlines join with a continuous tangent.
func Continuation(prev *Segment, index int, cfg Config) GenerateParams {
	last := prev.ControlPoints[3]
	before := prev.ControlPoints[2]
	return GenerateParams{
		XStart: last.X,
		YStart: float64(index * cfg.Height),
		XNext:  2*last.X - before.X,
		Index:  index,
	}
}

// Generate builds a segment: a random centerline curve and a height grid
// that is low along the curve and rises quadratically away from it.
func Generate(p GenerateParams, cfg Config, rng *rand.Rand) *Segment {
	width := float64(cfg.Width)
	height := float64(cfg.Height)

	midpointX := (p.XStart + p.XNext) / 2
	ctrl1X := midpointX + (rng.Float64()-0.5)*width
	ctrl2X := midpointX + (rng.Float64()-0.5)*width

	s := &Segment{
		Height: cfg.Height,
		YMin:   int(gomath.Floor(p.YStart)),
		Index:  p.Index,
		ControlPoints: [4]math.Vec3{
			{X: p.XStart, Y: p.YStart},
			{X: p.XNext, Y: p.YStart + height/3},
			{X: ctrl1X, Y: p.YStart + 2*height/3},
			{X: ctrl2X, Y: p.YStart + height},
		},
	}

	// The curve can bend well outside the nominal width, so the box comes
	// from the actual control points.
	minX, maxX := s.ControlPoints[0].X, s.ControlPoints[0].X
	for _, cp := range s.ControlPoints[1:] {
		minX = gomath.Min(minX, cp.X)
		maxX = gomath.Max(maxX, cp.X)
	}
	s.XMin = int(gomath.Floor(minX - cfg.WallPadding))
	s.Width = int(gomath.Ceil(maxX+cfg.WallPadding)) - s.XMin

	origin := math.Vec3{X: float64(s.XMin), Y: float64(s.YMin)}
	curve := bezier.New(
		s.ControlPoints[0].Sub(origin),
		s.ControlPoints[1].Sub(origin),
		s.ControlPoints[2].Sub(origin),
		s.ControlPoints[3].Sub(origin),
	)
	samples := curve.Sample(cfg.CurveSamples, cfg.BoundarySamples)

	s.Heights = make([]float64, s.Width*s.Height)
	for j := 0; j < s.Height; j++ {
		for i := 0; i < s.Width; i++ {
			d := bezier.Distance(float64(i), float64(j), samples)
			noise := (rng.Float64()*2 - 1) * cfg.NoiseAmplitude
			h := (d/cfg.WallFalloff)*(d/cfg.WallFalloff) + noise
			s.Heights[j*s.Width+i] = clamp(h, 0, 1) * MaxHeight
		}
	}

	s.ready.Store(true)
	return s
}

// Ready reports whether the grid is fully populated.
func (s *Segment) Ready() bool {
	return s != nil && s.ready.Load()
}

// Size returns the grid dimensions.
func (s *Segment) Size() (int, int) {
	return s.Width, s.Height
}

// Origin returns the world cell of grid (0, 0).
func (s *Segment) Origin() (int, int) {
	return s.XMin, s.YMin
}

// At returns the height of grid cell (i, j).
func (s *Segment) At(i, j int) float64 {
	return s.Heights[j*s.Width+i]
}

// ControlPoint returns centerline control point n (0..3).
func (s *Segment) ControlPoint(n int) math.Vec3 {
	return s.ControlPoints[n]
}

// CenterX returns the centerline X (in cells) at world row y. Control points
// are evenly spaced along Y, so the curve parameter is linear in y.
// ok is false when y lies outside the segment.
func (s *Segment) CenterX(y float64) (x float64, ok bool) {
	t := (y - s.ControlPoints[0].Y) / float64(s.Height)
	if t < 0 || t > 1 {
		return 0, false
	}
	cp := s.ControlPoints
	return bezier.New(cp[0], cp[1], cp[2], cp[3]).Point(t).X, true
}

// WorldPoint returns the world-space vertex of grid cell (i, j).
func (s *Segment) WorldPoint(i, j int, cellSize float64) math.Vec3 {
	return math.Vec3{
		X: float64(i+s.XMin) * cellSize,
		Y: s.At(i, j),
		Z: float64(j+s.YMin) * cellSize,
	}
}

// HeightAt returns the bilinearly interpolated terrain height at a world
// position. ok is false when the position lies outside the grid.
func (s *Segment) HeightAt(worldX, worldZ, cellSize float64) (h float64, ok bool) {
	if !s.Ready() {
		return 0, false
	}

	gx := worldX/cellSize - float64(s.XMin)
	gz := worldZ/cellSize - float64(s.YMin)
	if gx < 0 || gz < 0 || gx > float64(s.Width-1) || gz > float64(s.Height-1) {
		return 0, false
	}

	cellX := int(gx)
	cellZ := int(gz)
	if cellX >= s.Width-1 {
		cellX = s.Width - 2
	}
	if cellZ >= s.Height-1 {
		cellZ = s.Height - 2
	}
	if cellX < 0 || cellZ < 0 {
		return s.At(0, 0), true
	}

	fracX := clamp(gx-float64(cellX), 0, 1)
	fracZ := clamp(gz-float64(cellZ), 0, 1)

	near := s.At(cellX, cellZ)*(1-fracX) + s.At(cellX+1, cellZ)*fracX
	far := s.At(cellX, cellZ+1)*(1-fracX) + s.At(cellX+1, cellZ+1)*fracX
	return near*(1-fracZ) + far*fracZ, true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
