package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)

	// Translation lives in column 4 (indices 12, 13, 14)
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
}

func TestTransformVec3(t *testing.T) {
	got := Translate(10, 20, 30).TransformVec3(Vec3{1, 2, 3})
	if got != (Vec3{11, 22, 33}) {
		t.Errorf("TransformVec3: got %v, want (11, 22, 33)", got)
	}

	got = Scale(2, 2, 2).TransformVec3(Vec3{1, 2, 3})
	if got != (Vec3{2, 4, 6}) {
		t.Errorf("TransformVec3 with scale: got %v, want (2, 4, 6)", got)
	}
}

func TestTransformDirectionIgnoresTranslation(t *testing.T) {
	got := Translate(10, 20, 30).TransformDirection(Vec3{0, 0, 1})
	if got != (Vec3{0, 0, 1}) {
		t.Errorf("TransformDirection: got %v, want (0, 0, 1)", got)
	}
}

func TestRotateY90(t *testing.T) {
	got := RotateY(math.Pi / 2).TransformVec3(Vec3{1, 0, 0})

	// After 90 degree Y rotation, (1,0,0) becomes (0,0,-1)
	if !near(got, Vec3{0, 0, -1}, 1e-9) {
		t.Errorf("RotateY 90: got %v, want (0, 0, -1)", got)
	}
}

func TestRotationsPreserveLength(t *testing.T) {
	v := Vec3{3, -4, 12}
	for name, m := range map[string]Mat4{
		"x": RotateX(0.7),
		"y": RotateY(-1.3),
		"z": RotateZ(2.1),
	} {
		if got := m.TransformDirection(v).Length(); math.Abs(got-13) > 1e-9 {
			t.Errorf("Rotate%s changed length: got %f, want 13", name, got)
		}
	}
}

func TestPerspective(t *testing.T) {
	m := Perspective(math.Pi/4, 1, 0.1, 100)

	if m[0] == 0 || m[5] == 0 {
		t.Error("Perspective should have non-zero elements")
	}
	if m[15] != 0 {
		t.Errorf("Perspective [15] should be 0, got %f", m[15])
	}
	if m[11] != -1 {
		t.Errorf("Perspective [11] should be -1, got %f", m[11])
	}
}

func TestFrustumMatchesSymmetricPerspective(t *testing.T) {
	// glFrustum(-10, 10, -10, 10, 10, 1000) is a 90 degree square frustum.
	f := Frustum(-10, 10, -10, 10, 10, 1000)
	p := Perspective(math.Pi/2, 1, 10, 1000)

	for i := range f {
		if math.Abs(f[i]-p[i]) > 1e-9 {
			t.Errorf("element %d: frustum %f, perspective %f", i, f[i], p[i])
		}
	}
}

func TestLookAtMovesEyeToOrigin(t *testing.T) {
	eye := Vec3{3, 4, 5}
	m := LookAt(eye, Vec3{0, 0, 0}, Vec3{0, 1, 0})

	if got := m.TransformVec3(eye); !near(got, Vec3{}, 1e-9) {
		t.Errorf("LookAt should map eye to origin, got %v", got)
	}
}

func TestFromColumns(t *testing.T) {
	m := FromColumns(Vec4{1, 2, 3, 4}, Vec4{5, 6, 7, 8}, Vec4{9, 10, 11, 12}, Vec4{13, 14, 15, 16})
	for i := 0; i < 16; i++ {
		if m[i] != float64(i+1) {
			t.Fatalf("element %d: got %f, want %d", i, m[i], i+1)
		}
	}
}

func TestBezierBasisReproducesBernstein(t *testing.T) {
	b := BezierBasis()
	for _, tt := range []float64{0, 0.25, 0.5, 0.8, 1} {
		w := b.MulVec4(BezierVector(tt))
		s := 1 - tt
		want := Vec4{s * s * s, 3 * tt * s * s, 3 * tt * tt * s, tt * tt * tt}
		for i := range w {
			if math.Abs(w[i]-want[i]) > 1e-12 {
				t.Errorf("t=%v weight %d: got %f, want %f", tt, i, w[i], want[i])
			}
		}
	}
}

func TestFloat32(t *testing.T) {
	f := Translate(1.5, 2.5, 3.5).Float32()
	if f[12] != 1.5 || f[13] != 2.5 || f[14] != 3.5 || f[15] != 1 {
		t.Errorf("Float32: got %v", f)
	}
}

func near(a, b Vec3, eps float64) bool {
	return a.Distance(b) <= eps
}
