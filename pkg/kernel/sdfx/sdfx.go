// Package sdfx implements the kernel.Kernel interface on top of the
// github.com/deadsy/sdfx CAD library. A tetrahedron is modeled as a
// signed-distance field: the maximum of the signed distances to its
// four outward-oriented face planes, which is the distance field of
// the intersection of the four half-spaces.
package sdfx

import (
	"errors"
	"math"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/Gadiguibou/creaform-technical-challenge/pkg/geom"
	"github.com/Gadiguibou/creaform-technical-challenge/pkg/kernel"
)

// Compile-time interface checks.
var (
	_ kernel.Kernel = (*SdfxKernel)(nil)
	_ sdf.SDF3      = (*tetraSDF)(nil)
)

// defaultMeshCells controls marching cubes tessellation resolution.
const defaultMeshCells = 200

// halfSpace is one face plane with an outward unit normal.
type halfSpace struct {
	point  v3.Vec
	normal v3.Vec
}

// tetraSDF is the signed-distance field of a tetrahedron.
type tetraSDF struct {
	planes []halfSpace
	bb     sdf.Box3
}

// newTetraSDF builds the field from a pyramid's faces. Degenerate
// faces (zero normal) contribute no half-space; a fully degenerate
// pyramid yields an empty field that contains nothing.
func newTetraSDF(p geom.Pyramid) *tetraSDF {
	t := &tetraSDF{}

	faces := p.Faces()
	for i, face := range faces {
		mag := face.Normal.Magnitude()
		if mag < geom.Epsilon {
			continue
		}
		n := face.Normal.Scale(1 / mag)
		// Orient the normal away from the opposite vertex.
		opposite := p.Vertices[3-i]
		if opposite.Sub(face.V0).Dot(n) > 0 {
			n = n.Scale(-1)
		}
		t.planes = append(t.planes, halfSpace{
			point:  toVec(face.V0),
			normal: toVec(n),
		})
	}

	min := p.Vertices[0]
	max := p.Vertices[0]
	for _, v := range p.Vertices[1:] {
		min = geom.Vector3{X: math.Min(min.X, v.X), Y: math.Min(min.Y, v.Y), Z: math.Min(min.Z, v.Z)}
		max = geom.Vector3{X: math.Max(max.X, v.X), Y: math.Max(max.Y, v.Y), Z: math.Max(max.Z, v.Z)}
	}
	// Pad the box so the marching cubes isosurface never touches it.
	pad := 0.05*max.Sub(min).Magnitude() + 1e-3
	t.bb = sdf.Box3{
		Min: v3.Vec{X: min.X - pad, Y: min.Y - pad, Z: min.Z - pad},
		Max: v3.Vec{X: max.X + pad, Y: max.Y + pad, Z: max.Z + pad},
	}
	return t
}

// Evaluate returns the signed distance from p to the tetrahedron:
// negative inside, positive outside.
func (t *tetraSDF) Evaluate(p v3.Vec) float64 {
	if len(t.planes) == 0 {
		return math.Inf(1)
	}
	d := math.Inf(-1)
	for _, hs := range t.planes {
		dist := (p.X-hs.point.X)*hs.normal.X +
			(p.Y-hs.point.Y)*hs.normal.Y +
			(p.Z-hs.point.Z)*hs.normal.Z
		d = math.Max(d, dist)
	}
	return d
}

// BoundingBox returns the padded axis-aligned bounding box.
func (t *tetraSDF) BoundingBox() sdf.Box3 {
	return t.bb
}

func toVec(v geom.Vector3) v3.Vec {
	return v3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}

// sdfxSolid wraps an sdf.SDF3 to implement kernel.Solid.
type sdfxSolid struct {
	s sdf.SDF3
}

// BoundingBox returns the axis-aligned bounding box.
func (s *sdfxSolid) BoundingBox() (min, max [3]float64) {
	bb := s.s.BoundingBox()
	min = [3]float64{bb.Min.X, bb.Min.Y, bb.Min.Z}
	max = [3]float64{bb.Max.X, bb.Max.Y, bb.Max.Z}
	return min, max
}

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct {
	cells int
}

// New returns a new SdfxKernel with the default mesh resolution.
func New() *SdfxKernel {
	return &SdfxKernel{cells: defaultMeshCells}
}

// NewWithResolution returns a SdfxKernel using the given marching
// cubes cell count.
func NewWithResolution(cells int) *SdfxKernel {
	if cells <= 0 {
		cells = defaultMeshCells
	}
	return &SdfxKernel{cells: cells}
}

// unwrap extracts the underlying sdf.SDF3 from a kernel.Solid.
func unwrap(s kernel.Solid) sdf.SDF3 {
	return s.(*sdfxSolid).s
}

// Tetrahedron builds the SDF solid for a pyramid.
func (k *SdfxKernel) Tetrahedron(p geom.Pyramid) kernel.Solid {
	return &sdfxSolid{s: newTetraSDF(p)}
}

// Contains evaluates the field at the point. The boundary counts as
// inside, within the geom tolerance.
func (k *SdfxKernel) Contains(s kernel.Solid, point geom.Vector3) bool {
	return unwrap(s).Evaluate(toVec(point)) <= geom.Epsilon
}

// ToMesh converts a solid to a triangle mesh using marching cubes.
func (k *SdfxKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	sdf3 := unwrap(s)
	if t, ok := sdf3.(*tetraSDF); ok && len(t.planes) == 0 {
		return nil, errors.New("sdfx: empty solid has no surface")
	}

	renderer := render.NewMarchingCubesUniform(k.cells)
	triangles := render.ToTriangles(sdf3, renderer)

	numTri := len(triangles)
	numVerts := numTri * 3

	vertices := make([]float32, 0, numVerts*3)
	normals := make([]float32, 0, numVerts*3)
	indices := make([]uint32, 0, numVerts)

	for i, tri := range triangles {
		n := tri.Normal()
		nx := float32(n.X)
		ny := float32(n.Y)
		nz := float32(n.Z)

		for j := 0; j < 3; j++ {
			v := tri[j]
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, nx, ny, nz)
			indices = append(indices, uint32(i*3+j))
		}
	}

	return &kernel.Mesh{
		Vertices: vertices,
		Normals:  normals,
		Indices:  indices,
	}, nil
}
