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

	if result != m {
		t.Errorf("M * I should equal M: got %v, want %v", result, m)
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)

	// Translation should be in column 4 (indices 12, 13, 14)
	if m.Translation() != (Vec3{5, 10, 15}) {
		t.Errorf("Translate: got %v, want (5, 10, 15)", m.Translation())
	}
}

func TestTranslateMethodComposes(t *testing.T) {
	m := Scale(2, 2, 2).Translate(Vec3{1, 0, 0})
	got := m.TransformPoint(Vec3{0, 0, 0})

	// Translation is applied first, then the scale.
	if got != (Vec3{2, 0, 0}) {
		t.Errorf("Scale*Translate: got %v, want (2, 0, 0)", got)
	}
}

func TestTransformPoint(t *testing.T) {
	m := Translate(10, 20, 30)
	result := m.TransformPoint(Vec3{1, 2, 3})

	expected := Vec3{11, 22, 33}
	if result != expected {
		t.Errorf("TransformPoint: got %v, want %v", result, expected)
	}
}

func TestTransformVectorDividesByW(t *testing.T) {
	m := Scale(1, 1, 1)
	m[15] = 2
	got := m.TransformVector(Vec4{2, 4, 6, 1})

	if got != (Vec4{1, 2, 3, 1}) {
		t.Errorf("TransformVector: got %v, want (1, 2, 3, 1)", got)
	}
}

func TestRotateZ90(t *testing.T) {
	m := RotateZ(math.Pi / 2)
	result := m.TransformPoint(Vec3{1, 0, 0})

	// After 90 degree Z rotation, (1,0,0) should become (0,1,0)
	if math.Abs(result[0]) > 1e-12 || math.Abs(result[1]-1) > 1e-12 || math.Abs(result[2]) > 1e-12 {
		t.Errorf("RotateZ 90: got %v, want (0, 1, 0)", result)
	}
}

func TestRotateX90(t *testing.T) {
	m := RotateX(math.Pi / 2)
	result := m.TransformPoint(Vec3{0, 1, 0})

	if math.Abs(result[0]) > 1e-12 || math.Abs(result[1]) > 1e-12 || math.Abs(result[2]-1) > 1e-12 {
		t.Errorf("RotateX 90: got %v, want (0, 0, 1)", result)
	}
}

func TestPerspective(t *testing.T) {
	m := Perspective(math.Pi/4, 1.0, 0.1, 100.0)

	if m[0] == 0 || m[5] == 0 {
		t.Error("Perspective should have non-zero elements")
	}
	// Element [15] should be 0 for perspective projection
	if m[15] != 0 {
		t.Errorf("Perspective [15] should be 0, got %f", m[15])
	}
	// Element [11] should be -1 for perspective projection
	if m[11] != -1 {
		t.Errorf("Perspective [11] should be -1, got %f", m[11])
	}
}

func TestOrthoMapsBoxToClipCube(t *testing.T) {
	m := Ortho(-2, 2, -1, 1, 1, 10)

	near := m.TransformPoint(Vec3{2, 1, -1})
	if !EqualSlices(near[:], []float64{1, 1, -1}, 1e-12) {
		t.Errorf("near corner: got %v, want (1, 1, -1)", near)
	}
	far := m.TransformPoint(Vec3{-2, -1, -10})
	if !EqualSlices(far[:], []float64{-1, -1, 1}, 1e-12) {
		t.Errorf("far corner: got %v, want (-1, -1, 1)", far)
	}
}

func TestInverse(t *testing.T) {
	m := Translate(3, -4, 5).Mul(RotateZ(0.3)).Mul(Scale(2, 3, 4))
	inv, ok := m.Inverse()
	if !ok {
		t.Fatal("expected invertible matrix")
	}

	if !m.Mul(inv).Equal(Identity()) {
		// Equal uses a 1e-12 relative tolerance which products of these
		// magnitudes stay within.
		t.Errorf("M * M^-1 should be identity, got %v", m.Mul(inv))
	}
}

func TestInverseSingular(t *testing.T) {
	if _, ok := Scale(1, 0, 1).Inverse(); ok {
		t.Error("expected singular matrix to report ok=false")
	}
}

func TestVectorToPointDropsTranslation(t *testing.T) {
	m := Translate(100, 200, 300).Mul(VectorToPoint())
	got := m.MulVec4(Vec4{1, 2, 3, 1})

	if got != (Vec4{1, 2, 3, 0}) {
		t.Errorf("got %v, want (1, 2, 3, 0)", got)
	}
}

func TestFloat32(t *testing.T) {
	m := Translate(1.5, 2.5, 3.5).Float32()
	if m[12] != 1.5 || m[13] != 2.5 || m[14] != 3.5 || m[15] != 1 {
		t.Errorf("Float32 lost values: %v", m)
	}
}
