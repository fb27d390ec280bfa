package geom

// Pyramid is a tetrahedron defined by an ordered 4-tuple of vertices.
// The vertices are assumed, not verified, to be affinely independent;
// see Degenerate for an advisory check.
type Pyramid struct {
	Vertices [4]Vector3
}

// faceIndices fixes the enumeration order of a pyramid's triangular
// faces: the 3-element subsets of {0,1,2,3} in lexicographic order.
var faceIndices = [4][3]int{
	{0, 1, 2},
	{0, 1, 3},
	{0, 2, 3},
	{1, 2, 3},
}

// NewPyramid returns the tetrahedron with the four given vertices.
func NewPyramid(v0, v1, v2, v3 Vector3) Pyramid {
	return Pyramid{Vertices: [4]Vector3{v0, v1, v2, v3}}
}

// Faces returns the pyramid's four triangular faces as planes, one per
// distinct 3-subset of its vertices, always in the same order.
func (p Pyramid) Faces() [4]Plane {
	var faces [4]Plane
	for i, fi := range faceIndices {
		faces[i] = NewPlane(p.Vertices[fi[0]], p.Vertices[fi[1]], p.Vertices[fi[2]])
	}
	return faces
}

// Degenerate reports whether the pyramid's vertices are coplanar (or
// worse) within Epsilon, i.e. whether any face is degenerate or the
// fourth vertex lies in the plane of the first three. Advisory only;
// Intersects does not call it.
func (p Pyramid) Degenerate() bool {
	base := NewPlane(p.Vertices[0], p.Vertices[1], p.Vertices[2])
	if base.Degenerate() {
		return true
	}
	height := p.Vertices[3].Sub(p.Vertices[0]).Dot(base.Normal) / base.Normal.Magnitude()
	if height < 0 {
		height = -height
	}
	return height < Epsilon
}
