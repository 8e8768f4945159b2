package vecmath

import (
	"math"
	"testing"
)

func TestDot(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float32
	}{
		{"identity", []float32{1, 0, 0}, []float32{1, 0, 0}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"mixed", []float32{1, 2, 3}, []float32{4, 5, 6}, 32},
		{"negative", []float32{1, -1}, []float32{1, 1}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Dot(tt.a, tt.b); got != tt.want {
				t.Errorf("Dot = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestNorm(t *testing.T) {
	if got := Norm([]float32{3, 4}); got != 5 {
		t.Errorf("Norm = %f, want 5", got)
	}
	if got := Norm([]float32{0, 0, 0}); got != 0 {
		t.Errorf("Norm of zero vector = %f, want 0", got)
	}
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float32
	}{
		{"identical", []float32{1, 0, 0}, []float32{1, 0, 0}, 1},
		{"scaled", []float32{2, 0}, []float32{5, 0}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Cosine(tt.a, tt.b)
			if math.Abs(float64(got-tt.want)) > 1e-6 {
				t.Errorf("Cosine = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestCosineZeroVectors(t *testing.T) {
	zero := []float32{0, 0, 0}
	unit := []float32{1, 0, 0}

	if got := Cosine(zero, unit); got != 0 {
		t.Errorf("Cosine(zero, unit) = %f, want 0", got)
	}
	if got := Cosine(unit, zero); got != 0 {
		t.Errorf("Cosine(unit, zero) = %f, want 0", got)
	}
	// Two zero vectors are dissimilar to each other as well, not NaN.
	if got := Cosine(zero, zero); got != 0 {
		t.Errorf("Cosine(zero, zero) = %f, want 0", got)
	}
}

func TestLerp(t *testing.T) {
	a := []float32{0, 10}
	b := []float32{10, 20}
	dst := make([]float32, 2)

	Lerp(dst, a, b, 0)
	if dst[0] != 0 || dst[1] != 10 {
		t.Errorf("Lerp t=0 = %v, want [0 10]", dst)
	}

	Lerp(dst, a, b, 1)
	if dst[0] != 10 || dst[1] != 20 {
		t.Errorf("Lerp t=1 = %v, want [10 20]", dst)
	}

	Lerp(dst, a, b, 0.5)
	if dst[0] != 5 || dst[1] != 15 {
		t.Errorf("Lerp t=0.5 = %v, want [5 15]", dst)
	}
}

func TestLerpAliased(t *testing.T) {
	// The engine interpolates slot vectors in place; dst aliasing a must work.
	a := []float32{0, 10}
	b := []float32{10, 20}
	Lerp(a, a, b, 0.5)
	if a[0] != 5 || a[1] != 15 {
		t.Errorf("aliased Lerp = %v, want [5 15]", a)
	}
}

func TestDeterminism(t *testing.T) {
	a := []float32{0.123, -0.456, 0.789, 0.321}
	b := []float32{-0.987, 0.654, -0.321, 0.111}

	first := Cosine(a, b)
	for i := 0; i < 100; i++ {
		if got := Cosine(a, b); got != first {
			t.Fatalf("Cosine not bit-stable: %v != %v", got, first)
		}
	}
}
