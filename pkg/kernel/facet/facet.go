// Package facet implements the kernel.Kernel interface directly on
// the boundary faces of the tetrahedron. Containment is an exact
// half-space test and tessellation emits the four boundary triangles
// as-is.
package facet

import (
	"errors"
	"math"

	"github.com/Gadiguibou/creaform-technical-challenge/pkg/geom"
	"github.com/Gadiguibou/creaform-technical-challenge/pkg/kernel"
)

// Compile-time interface check.
var _ kernel.Kernel = (*FacetKernel)(nil)

// facetSolid is a tetrahedron represented by its outward-oriented
// boundary faces.
type facetSolid struct {
	faces    [4]geom.Plane // vertices wound so the derived normal points outward
	valid    int           // number of non-degenerate faces
	min, max geom.Vector3
}

// FacetKernel implements kernel.Kernel without a solid-modeling
// library.
type FacetKernel struct{}

// New returns a new FacetKernel.
func New() *FacetKernel {
	return &FacetKernel{}
}

// BoundingBox returns the tight axis-aligned bounding box.
func (s *facetSolid) BoundingBox() (min, max [3]float64) {
	min = [3]float64{s.min.X, s.min.Y, s.min.Z}
	max = [3]float64{s.max.X, s.max.Y, s.max.Z}
	return min, max
}

// Tetrahedron builds the boundary representation of a pyramid.
// Each face is rewound, if necessary, so its normal points away from
// the opposite vertex. Degenerate faces are kept for tessellation
// parity but excluded from containment.
func (k *FacetKernel) Tetrahedron(p geom.Pyramid) kernel.Solid {
	s := &facetSolid{min: p.Vertices[0], max: p.Vertices[0]}

	for i, face := range p.Faces() {
		opposite := p.Vertices[3-i]
		if !face.Degenerate() {
			if opposite.Sub(face.V0).Dot(face.Normal) > 0 {
				face = geom.NewPlane(face.V0, face.V2, face.V1)
			}
			s.valid++
		}
		s.faces[i] = face
	}

	for _, v := range p.Vertices[1:] {
		s.min = geom.Vector3{X: math.Min(s.min.X, v.X), Y: math.Min(s.min.Y, v.Y), Z: math.Min(s.min.Z, v.Z)}
		s.max = geom.Vector3{X: math.Max(s.max.X, v.X), Y: math.Max(s.max.Y, v.Y), Z: math.Max(s.max.Z, v.Z)}
	}
	return s
}

// Contains reports whether the point lies on the inner side of every
// non-degenerate face, boundary included. A degenerate solid (fewer
// than four usable faces) contains nothing.
func (k *FacetKernel) Contains(s kernel.Solid, point geom.Vector3) bool {
	fs := s.(*facetSolid)
	if fs.valid < 4 {
		return false
	}
	for _, face := range fs.faces {
		dist := point.Sub(face.V0).Dot(face.Normal) / face.Normal.Magnitude()
		if dist > geom.Epsilon {
			return false
		}
	}
	return true
}

// ToMesh emits the four boundary triangles directly, one flat normal
// per face, without any surface sampling.
func (k *FacetKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	fs := s.(*facetSolid)
	if fs.valid == 0 {
		return nil, errors.New("facet: degenerate solid has no surface")
	}

	mesh := &kernel.Mesh{
		Vertices: make([]float32, 0, 4*3*3),
		Normals:  make([]float32, 0, 4*3*3),
		Indices:  make([]uint32, 0, 4*3),
	}

	i := 0
	for _, face := range fs.faces {
		if face.Degenerate() {
			continue
		}
		n := face.Normal.Scale(1 / face.Normal.Magnitude())
		nx := float32(n.X)
		ny := float32(n.Y)
		nz := float32(n.Z)

		for _, v := range [3]geom.Vector3{face.V0, face.V1, face.V2} {
			mesh.Vertices = append(mesh.Vertices, float32(v.X), float32(v.Y), float32(v.Z))
			mesh.Normals = append(mesh.Normals, nx, ny, nz)
			mesh.Indices = append(mesh.Indices, uint32(i))
			i++
		}
	}
	return mesh, nil
}
