package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
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

func TestComposeOrder(t *testing.T) {
	// Scale first, then translate.
	m := Compose(Translate(10, 0, 0), Scale(2, 2, 2))
	got := m.TransformVec3(Vec3{1, 0, 0})
	if got != (Vec3{12, 0, 0}) {
		t.Errorf("Compose(T, S) applied to (1,0,0) = %v, want (12,0,0)", got)
	}

	if Compose() != Identity() {
		t.Error("Compose() should be identity")
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
	if TranslateVec3(Vec3{5, 10, 15}) != m {
		t.Error("TranslateVec3 should match Translate")
	}
}

func TestTransformVec3(t *testing.T) {
	m := Translate(10, 20, 30)
	got := m.TransformVec3(Vec3{1, 2, 3})
	if got != (Vec3{11, 22, 33}) {
		t.Errorf("TransformVec3: got %v, want (11, 22, 33)", got)
	}
}

func TestRotateAxisZ90(t *testing.T) {
	m := RotateAxis(Vec3{0, 0, 2}, float32(math.Pi/2)) // axis is normalized internally
	got := m.TransformVec3(Vec3{1, 0, 0})

	if abs(got.X) > 0.001 || abs(got.Y-1) > 0.001 || abs(got.Z) > 0.001 {
		t.Errorf("RotateAxis Z 90: got %v, want (0, 1, 0)", got)
	}
}

func TestRotateAxisZeroAxis(t *testing.T) {
	if RotateAxis(Vec3{}, 1) != Identity() {
		t.Error("RotateAxis with zero axis should be identity")
	}
}

func TestOrthoSymmetric(t *testing.T) {
	p := float32(2)
	m := Ortho(-p, p, -p, p, -p, p)

	origin := m.MulVec4(Vec4{0, 0, 0, 1})
	if origin != (Vec4{0, 0, 0, 1}) {
		t.Errorf("origin maps to %v, want (0,0,0,1)", origin)
	}

	edge := m.MulVec4(Vec4{p, 0, 0, 1})
	if abs(edge[0]-1) > 1e-6 || edge[1] != 0 || edge[2] != 0 || edge[3] != 1 {
		t.Errorf("(p,0,0) maps to %v, want (1,0,0,1)", edge)
	}
}

func TestPerspective(t *testing.T) {
	m := Perspective(float32(math.Pi/4), 1, 0.1, 100)

	if m[0] == 0 || m[5] == 0 {
		t.Error("Perspective should have non-zero elements")
	}
	if m[15] != 0 {
		t.Errorf("Perspective [15] should be 0, got %f", m[15])
	}
	if m[11] != -1 {
		t.Errorf("Perspective [11] should be -1, got %f", m[11])
	}

	// A point on the near plane lands on NDC z = -1.
	near := m.TransformVec3(Vec3{0, 0, -0.1})
	if abs(near.Z+1) > 1e-4 {
		t.Errorf("near plane z = %f, want -1", near.Z)
	}
}

func TestLookAt(t *testing.T) {
	m := LookAt(Vec3{0, 0, 5}, Vec3{0, 0, 0}, Vec3{0, 1, 0})

	got := m.TransformVec3(Vec3{0, 0, 0})
	if abs(got.X) > 1e-6 || abs(got.Y) > 1e-6 || abs(got.Z+5) > 1e-6 {
		t.Errorf("center should land 5 units in front of the eye, got %v", got)
	}
}

func TestMat3(t *testing.T) {
	m := Translate(7, 8, 9)
	m3 := m.Mat3()
	want := [9]float32{1, 0, 0, 0, 1, 0, 0, 0, 1}
	if m3 != want {
		t.Errorf("Mat3 of a translation = %v, want identity block", m3)
	}
}

func TestApproxEqual(t *testing.T) {
	a := Identity()
	b := Identity()
	b[5] += 1e-5
	if !a.ApproxEqual(b, 1e-4) {
		t.Error("matrices within tolerance should be approx equal")
	}
	if a.ApproxEqual(b, 1e-6) {
		t.Error("matrices outside tolerance should not be approx equal")
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func TestInverse(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
	}{
		{"identity", Identity()},
		{"translate", Translate(1, -2, 3)},
		{"rotate scale", Compose(RotateAxis(Vec3{X: 1, Y: 1}, 0.7), Scale(2, 3, 0.5))},
		{"ortho", Ortho(-2, 2, -1, 1, -2, 2)},
		{"perspective view", Compose(Perspective(0.8, 1.5, 0.1, 100), Translate(0, 0, -5))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, ok := tt.m.Inverse()
			if !ok {
				t.Fatal("matrix reported singular")
			}
			if got := tt.m.Mul(inv); !got.ApproxEqual(Identity(), 1e-4) {
				t.Errorf("m * inv = %v", got)
			}
		})
	}

	if _, ok := Scale(1, 0, 1).Inverse(); ok {
		t.Error("singular matrix should not invert")
	}
}
