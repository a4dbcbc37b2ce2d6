package common

import (
	"math"
	"testing"
)

const epsilon = 1e-5

func matricesEqual(a, b []float32) bool {
	for i := 0; i < 16; i++ {
		if math.Abs(float64(a[i]-b[i])) > epsilon {
			return false
		}
	}
	return true
}

func TestIdentity(t *testing.T) {
	m := make([]float32, 16)
	for i := range m {
		m[i] = 9
	}
	Identity(m)
	for i, v := range m {
		want := float32(0)
		if i%5 == 0 {
			want = 1
		}
		if v != want {
			t.Errorf("m[%d] = %v, want %v", i, v, want)
		}
	}
}

func TestMul4Identity(t *testing.T) {
	id := make([]float32, 16)
	Identity(id)
	a := []float32{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
		13, 14, 15, 16,
	}
	out := make([]float32, 16)

	Mul4(out, a, id)
	if !matricesEqual(out, a) {
		t.Errorf("a * I = %v, want %v", out, a)
	}
	Mul4(out, id, a)
	if !matricesEqual(out, a) {
		t.Errorf("I * a = %v, want %v", out, a)
	}
}

func TestMul4Translations(t *testing.T) {
	a := make([]float32, 16)
	b := make([]float32, 16)
	Identity(a)
	Identity(b)
	a[12], a[13], a[14] = 1, 2, 3
	b[12], b[13], b[14] = 10, 20, 30

	out := make([]float32, 16)
	Mul4(out, a, b)

	if out[12] != 11 || out[13] != 22 || out[14] != 33 {
		t.Errorf("translation = (%v, %v, %v), want (11, 22, 33)", out[12], out[13], out[14])
	}
}

func TestMul4AliasesOutput(t *testing.T) {
	a := make([]float32, 16)
	Identity(a)
	a[12] = 5
	b := make([]float32, 16)
	Identity(b)
	b[12] = 7

	// out overlapping an operand must still yield the correct product.
	Mul4(a, a, b)
	if a[12] != 12 {
		t.Errorf("aliased multiply translation x = %v, want 12", a[12])
	}
}

func TestPerspectiveDepthRange(t *testing.T) {
	const near, far = 0.1, 250.0
	m := make([]float32, 16)
	Perspective(m, float32(math.Pi/4), 16.0/9.0, near, far)

	// Project points on the near and far planes; depth must land on 0 and 1
	// after the perspective divide (WebGPU clip space).
	project := func(z float32) float32 {
		clipZ := m[10]*z + m[14]
		clipW := m[11] * z
		return clipZ / clipW
	}
	if d := project(-near); math.Abs(float64(d)) > epsilon {
		t.Errorf("near plane depth = %v, want 0", d)
	}
	if d := project(-far); math.Abs(float64(d-1)) > epsilon {
		t.Errorf("far plane depth = %v, want 1", d)
	}
	if m[11] != -1 {
		t.Errorf("m[11] = %v, want -1", m[11])
	}
}

func TestBuildModelMatrixTranslationScale(t *testing.T) {
	m := make([]float32, 16)
	BuildModelMatrix(m, 1, 2, 3, 0, 0, 0, 2, 3, 4)

	want := []float32{
		2, 0, 0, 0,
		0, 3, 0, 0,
		0, 0, 4, 0,
		1, 2, 3, 1,
	}
	if !matricesEqual(m, want) {
		t.Errorf("matrix = %v, want %v", m, want)
	}
}

func TestBuildModelMatrixYRotation(t *testing.T) {
	m := make([]float32, 16)
	BuildModelMatrix(m, 0, 0, 0, 0, float32(math.Pi/2), 0, 1, 1, 1)

	// A quarter turn around Y maps +X to -Z.
	x := []float32{m[0], m[1], m[2]}
	if math.Abs(float64(x[0])) > epsilon || math.Abs(float64(x[1])) > epsilon || math.Abs(float64(x[2]+1)) > epsilon {
		t.Errorf("rotated x axis = %v, want (0, 0, -1)", x)
	}
}

func TestLookAtOrigin(t *testing.T) {
	m := make([]float32, 16)
	LookAt(m, 0, 0, 5, 0, 0, 0, 0, 1, 0)

	// The eye point must land at the view-space origin.
	ex := m[0]*0 + m[4]*0 + m[8]*5 + m[12]
	ey := m[1]*0 + m[5]*0 + m[9]*5 + m[13]
	ez := m[2]*0 + m[6]*0 + m[10]*5 + m[14]
	if math.Abs(float64(ex)) > epsilon || math.Abs(float64(ey)) > epsilon || math.Abs(float64(ez)) > epsilon {
		t.Errorf("eye maps to (%v, %v, %v), want origin", ex, ey, ez)
	}

	// The look target must sit on the negative view-space z axis.
	tz := m[2]*0 + m[6]*0 + m[10]*0 + m[14]
	if tz >= 0 {
		t.Errorf("target view z = %v, want negative", tz)
	}
}

func TestCoalesce(t *testing.T) {
	if got := Coalesce(0, 0, 7, 9); got != 7 {
		t.Errorf("Coalesce(0, 0, 7, 9) = %d, want 7", got)
	}
	if got := Coalesce(0, 0); got != 0 {
		t.Errorf("Coalesce(0, 0) = %d, want 0", got)
	}
	if got := Coalesce("", "a"); got != "a" {
		t.Errorf(`Coalesce("", "a") = %q, want "a"`, got)
	}
}

func TestSliceToBytes(t *testing.T) {
	if got := SliceToBytes([]float32(nil)); got != nil {
		t.Errorf("empty slice produced %v, want nil", got)
	}
	data := []float32{1.0}
	b := SliceToBytes(data)
	if len(b) != 4 {
		t.Fatalf("len = %d, want 4", len(b))
	}
	// 1.0 is 0x3F800000 little-endian.
	if b[0] != 0x00 || b[1] != 0x00 || b[2] != 0x80 || b[3] != 0x3F {
		t.Errorf("bytes = %v, want [0 0 128 63]", b)
	}
}
