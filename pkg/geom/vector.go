// Package geom provides the core geometric primitives and predicates:
// 3D vectors, lines, triangular planes, and tetrahedra, together with
// the line/tetrahedron intersection query.
package geom

import "math"

// Epsilon is the absolute tolerance used for every near-zero and
// near-one comparison in this package. Floating-point quantities
// within Epsilon of zero (or one) are treated as exactly zero (one).
const Epsilon = 1e-5

// Vector3 represents a point or direction in 3-dimensional space.
// It is an immutable value type; every operation returns a new value.
type Vector3 struct {
	X float64
	Y float64
	Z float64
}

// Add returns the component-wise sum of v and other.
func (v Vector3) Add(other Vector3) Vector3 {
	return Vector3{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}

// Sub returns the component-wise difference of v and other.
func (v Vector3) Sub(other Vector3) Vector3 {
	return Vector3{
		X: v.X - other.X,
		Y: v.Y - other.Y,
		Z: v.Z - other.Z,
	}
}

// Scale returns v with every component multiplied by s.
func (v Vector3) Scale(s float64) Vector3 {
	return Vector3{
		X: v.X * s,
		Y: v.Y * s,
		Z: v.Z * s,
	}
}

// Dot returns the dot product of v and other.
func (v Vector3) Dot(other Vector3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the right-handed cross product of v and other.
// It is anticommutative: a.Cross(b) == b.Cross(a).Scale(-1).
func (v Vector3) Cross(other Vector3) Vector3 {
	return Vector3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// Magnitude returns the Euclidean norm of v.
func (v Vector3) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// IsZero reports whether every component of v is exactly zero.
func (v Vector3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// ApproxEqual reports whether v and other agree component-wise
// within Epsilon. Exact float equality is never used for comparing
// computed vectors.
func (v Vector3) ApproxEqual(other Vector3) bool {
	return math.Abs(v.X-other.X) < Epsilon &&
		math.Abs(v.Y-other.Y) < Epsilon &&
		math.Abs(v.Z-other.Z) < Epsilon
}
