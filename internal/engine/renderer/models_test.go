package renderer

import (
	gomath "math"
	"math/rand/v2"
	"testing"

	"github.com/Faultbox/canyon-flight/internal/canyon"
	"github.com/Faultbox/canyon-flight/internal/flight"
)

func TestAirframeMatchesContactPoints(t *testing.T) {
	mesh := AirframeMesh()
	nose, left, right := flight.AirframePoints()

	if len(mesh.Indices)%3 != 0 {
		t.Fatalf("index count %d is not a triangle list", len(mesh.Indices))
	}
	for _, want := range [][3]float32{nose.Float32(), left.Float32(), right.Float32()} {
		found := false
		for _, v := range mesh.Vertices {
			if v.Position == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("airframe mesh has no vertex at %v", want)
		}
	}
}

func TestSphereMesh(t *testing.T) {
	mesh := SphereMesh(12, 12)
	if got, want := len(mesh.Vertices), 13*13; got != want {
		t.Errorf("vertices = %d, want %d", got, want)
	}
	if got, want := len(mesh.Indices), 12*12*6; got != want {
		t.Errorf("indices = %d, want %d", got, want)
	}
	for i, v := range mesh.Vertices {
		p := v.Position
		l := gomath.Sqrt(float64(p[0]*p[0] + p[1]*p[1] + p[2]*p[2]))
		if gomath.Abs(l-1) > 1e-5 {
			t.Fatalf("vertex %d not on the unit sphere: %f", i, l)
		}
	}
	for _, idx := range mesh.Indices {
		if int(idx) >= len(mesh.Vertices) {
			t.Fatalf("index %d out of range", idx)
		}
	}
}

func TestExplosionAt(t *testing.T) {
	tests := []struct {
		t      float64
		radius float64
		alpha  float32
	}{
		{0, 0, 1},
		{0.5, 9.5, 0.5625},
		{1, 19, 0.25},
		{2, 38, 0},
		{3, 57, 0},
		{-1, 0, 1},
	}
	for _, tt := range tests {
		radius, color := ExplosionAt(tt.t)
		if gomath.Abs(radius-tt.radius) > 1e-9 {
			t.Errorf("ExplosionAt(%v) radius = %v, want %v", tt.t, radius, tt.radius)
		}
		if gomath.Abs(float64(color[3]-tt.alpha)) > 1e-6 {
			t.Errorf("ExplosionAt(%v) alpha = %v, want %v", tt.t, color[3], tt.alpha)
		}
		if color[0] != 1 || color[1] != 0.4 || color[2] != 0 {
			t.Errorf("ExplosionAt(%v) colour = %v, want orange", tt.t, color)
		}
	}
}

func TestDiffSegments(t *testing.T) {
	cfg := canyon.DefaultConfig()
	cfg.Width, cfg.Height = 8, 8
	rng := rand.New(rand.NewPCG(1, 1))
	gen := func(i int) *canyon.Segment {
		return canyon.Generate(canyon.GenerateParams{XStart: 4, XNext: 4, YStart: float64(i * 8), Index: i}, cfg, rng)
	}
	a, b, c := gen(0), gen(1), gen(2)

	add, drop := diffSegments(nil, [2]*canyon.Segment{a, b})
	if len(add) != 2 || len(drop) != 0 {
		t.Fatalf("initial sync: add=%d drop=%d, want 2/0", len(add), len(drop))
	}

	// Slot swap: a retired, c arrives
	add, drop = diffSegments([]*canyon.Segment{a, b}, [2]*canyon.Segment{c, b})
	if len(add) != 1 || add[0] != c {
		t.Errorf("add = %v, want [c]", add)
	}
	if len(drop) != 1 || drop[0] != a {
		t.Errorf("drop = %v, want [a]", drop)
	}

	// Nothing changed
	add, drop = diffSegments([]*canyon.Segment{b, c}, [2]*canyon.Segment{c, b})
	if len(add) != 0 || len(drop) != 0 {
		t.Errorf("steady state: add=%d drop=%d, want 0/0", len(add), len(drop))
	}

	// Segments that are not ready yet are skipped
	add, _ = diffSegments(nil, [2]*canyon.Segment{&canyon.Segment{}, nil})
	if len(add) != 0 {
		t.Errorf("unready segments should not be uploaded, got %d", len(add))
	}
}
