package geom_test

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/Gadiguibou/creaform-technical-challenge/pkg/geom"
)

func TestAddSub(t *testing.T) {
	a := geom.Vector3{X: 1, Y: -2, Z: 3}
	b := geom.Vector3{X: 0.5, Y: 4, Z: -1}

	sum := a.Add(b)
	want := geom.Vector3{X: 1.5, Y: 2, Z: 2}
	if !sum.ApproxEqual(want) {
		t.Errorf("Add = %v, want %v", sum, want)
	}

	// Sub undoes Add.
	if diff := sum.Sub(b); !diff.ApproxEqual(a) {
		t.Errorf("Sub = %v, want %v", diff, a)
	}
}

func TestScale(t *testing.T) {
	v := geom.Vector3{X: 1, Y: -2, Z: 3}
	got := v.Scale(-2)
	want := geom.Vector3{X: -2, Y: 4, Z: -6}
	if !got.ApproxEqual(want) {
		t.Errorf("Scale(-2) = %v, want %v", got, want)
	}
}

func TestDotSymmetryAndBilinearity(t *testing.T) {
	vectors := []geom.Vector3{
		{X: 1, Y: 2, Z: 3},
		{X: -4, Y: 0.5, Z: 2},
		{X: 0, Y: 0, Z: 0},
		{X: 1e3, Y: -1e-3, Z: 7},
	}

	for _, a := range vectors {
		for _, b := range vectors {
			if ab, ba := a.Dot(b), b.Dot(a); ab != ba {
				t.Errorf("Dot not symmetric: %v.%v = %v, %v.%v = %v", a, b, ab, b, a, ba)
			}
			const k = 3.25
			if got, want := a.Scale(k).Dot(b), k*a.Dot(b); !scalar.EqualWithinAbs(got, want, geom.Epsilon) {
				t.Errorf("Dot not bilinear: (k*a).b = %v, k*(a.b) = %v", got, want)
			}
		}
	}
}

func TestCrossAnticommutative(t *testing.T) {
	vectors := []geom.Vector3{
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0},
		{X: 1, Y: 2, Z: 3},
		{X: -2.5, Y: 4, Z: 0.125},
	}

	for _, a := range vectors {
		for _, b := range vectors {
			ab := a.Cross(b)
			ba := b.Cross(a).Scale(-1)
			if !ab.ApproxEqual(ba) {
				t.Errorf("Cross(%v, %v) = %v, want -Cross(b, a) = %v", a, b, ab, ba)
			}
		}
	}
}

func TestCrossRightHanded(t *testing.T) {
	x := geom.Vector3{X: 1}
	y := geom.Vector3{Y: 1}
	z := geom.Vector3{Z: 1}
	if got := x.Cross(y); !got.ApproxEqual(z) {
		t.Errorf("x cross y = %v, want %v", got, z)
	}
}

func TestMagnitude(t *testing.T) {
	tests := []struct {
		name string
		v    geom.Vector3
		want float64
	}{
		{"zero", geom.Vector3{}, 0},
		{"unit x", geom.Vector3{X: 1}, 1},
		{"pythagorean", geom.Vector3{X: 3, Y: 4, Z: 0}, 5},
		{"negative components", geom.Vector3{X: -1, Y: -2, Z: -2}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.v.Magnitude()
			if got < 0 {
				t.Fatalf("Magnitude(%v) = %v, must be non-negative", tt.v, got)
			}
			if !scalar.EqualWithinAbs(got, tt.want, geom.Epsilon) {
				t.Errorf("Magnitude(%v) = %v, want %v", tt.v, got, tt.want)
			}
			if (got == 0) != tt.v.IsZero() {
				t.Errorf("Magnitude(%v) == 0 is %v, IsZero is %v", tt.v, got == 0, tt.v.IsZero())
			}
		})
	}
}

func TestMagnitudeDotConsistency(t *testing.T) {
	v := geom.Vector3{X: 2, Y: -3, Z: 6}
	if got, want := v.Magnitude(), math.Sqrt(v.Dot(v)); !scalar.EqualWithinAbs(got, want, geom.Epsilon) {
		t.Errorf("Magnitude = %v, sqrt(v.v) = %v", got, want)
	}
}
