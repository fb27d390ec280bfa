package geom

// Plane is a plane defined by an ordered triple of vertices. It serves
// two roles: as an infinite plane (only Normal and one vertex matter)
// and as a triangle (all three vertices matter, in order).
//
// Normal is (V1-V0) x (V2-V0). Its direction flips under a swap of any
// two vertices and its magnitude depends on vertex spacing; callers
// must not assume a unit normal. Collinear vertices yield a zero
// normal; the constructor does not reject this (see Degenerate).
type Plane struct {
	V0, V1, V2 Vector3
	Normal     Vector3
}

// NewPlane returns the plane through the three ordered vertices, with
// its normal derived from them.
func NewPlane(v0, v1, v2 Vector3) Plane {
	return Plane{
		V0:     v0,
		V1:     v1,
		V2:     v2,
		Normal: v1.Sub(v0).Cross(v2.Sub(v0)),
	}
}

// Area returns the area of the triangle formed by the plane's vertices.
func (p Plane) Area() float64 {
	return p.Normal.Magnitude() / 2
}

// Degenerate reports whether the plane's vertices are collinear within
// Epsilon. A degenerate plane has a (near-)zero normal and no
// well-defined triangle interior. This is an advisory check; the
// intersection query never calls it.
func (p Plane) Degenerate() bool {
	return p.Normal.Magnitude() < Epsilon
}

// ContainsPoint reports whether point lies inside or on the boundary
// of the plane's triangle, using the sub-triangle area-ratio test:
// the three sub-triangles formed by the point and each vertex pair
// must each have an area between 0 and 1 times the full area, and the
// ratios must sum to 1.
//
// The sum check is one-sided (sum - 1 < Epsilon): for a point in the
// triangle's plane the ratios can never sum to less than 1, so only
// the upper side needs a tolerance.
//
// A degenerate (zero-area) triangle makes the ratios divide by zero,
// producing NaN or Inf; those fail the range checks, so the point is
// reported as not contained rather than faulting.
func (p Plane) ContainsPoint(point Vector3) bool {
	area := p.Area()

	r0 := point.Sub(p.V1).Cross(point.Sub(p.V2)).Magnitude() / (2 * area)
	r1 := point.Sub(p.V2).Cross(point.Sub(p.V0)).Magnitude() / (2 * area)
	r2 := point.Sub(p.V0).Cross(point.Sub(p.V1)).Magnitude() / (2 * area)

	for _, r := range [3]float64{r0, r1, r2} {
		if !(r >= 0 && r <= 1) {
			return false
		}
	}
	return r0+r1+r2-1 < Epsilon
}
