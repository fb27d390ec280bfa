// Package kernel defines the abstract solid-query kernel interface.
// Implementations (sdfx, facet) answer solid-level questions about a
// tetrahedron (point containment, bounding box, tessellation) that
// complement the boundary-intersection predicate in pkg/geom.
// The kernel abstraction allows swapping backends without changing
// the rest of the system.
package kernel

import "github.com/Gadiguibou/creaform-technical-challenge/pkg/geom"

// Solid is an opaque handle to a kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract solid-query interface.
type Kernel interface {
	// Tetrahedron builds a solid from the pyramid's four vertices.
	Tetrahedron(p geom.Pyramid) Solid

	// Contains reports whether the point lies inside the solid
	// (boundary included, within tolerance).
	Contains(s Solid, point geom.Vector3) bool

	// ToMesh tessellates the solid into a triangle mesh.
	ToMesh(s Solid) (*Mesh, error)
}
