package geom

import "math"

// IntersectPlane returns the single point where the line crosses the
// plane, solving (Point + d*Direction - V0) . Normal = 0 for d.
//
// There is no intersection point when the line is parallel to the
// plane (|Direction . Normal| < Epsilon, which also covers a zero
// normal from a degenerate plane) or when the line lies in the plane
// (|(V0 - Point) . Normal| < Epsilon); both cases return (zero, false).
// The in-plane case has infinitely many intersections and is reported
// as no intersection rather than an error.
//
// No restriction is placed on the sign of d: a solution behind the
// line's point is still reported, since Line models a full line.
func (l Line) IntersectPlane(p Plane) (Vector3, bool) {
	denom := l.Direction.Dot(p.Normal)
	if math.Abs(denom) < Epsilon {
		return Vector3{}, false
	}

	offset := p.V0.Sub(l.Point).Dot(p.Normal)
	if math.Abs(offset) < Epsilon {
		return Vector3{}, false
	}

	return l.At(offset / denom), true
}

// Intersects reports whether the line crosses the pyramid's boundary.
// Each face is tried in the fixed order of Faces: the line/plane
// intersection point is computed and, if present, tested for
// membership in that face's triangle. The first face whose triangle
// contains its intersection point decides the query; remaining faces
// are not evaluated. The boolean outcome is independent of face order.
func (p Pyramid) Intersects(l Line) bool {
	for _, face := range p.Faces() {
		point, ok := l.IntersectPlane(face)
		if !ok {
			continue
		}
		if face.ContainsPoint(point) {
			return true
		}
	}
	return false
}
