package geom_test

import (
	"testing"

	"github.com/Gadiguibou/creaform-technical-challenge/pkg/geom"
)

func TestIntersectPlane(t *testing.T) {
	// The z=0 plane as a triangle.
	plane := geom.NewPlane(
		geom.Vector3{},
		geom.Vector3{X: 1},
		geom.Vector3{Y: 1},
	)

	t.Run("crossing line", func(t *testing.T) {
		l := geom.NewLine(geom.Vector3{X: 0.5, Y: 0.5, Z: -2}, geom.Vector3{Z: 1})
		point, ok := l.IntersectPlane(plane)
		if !ok {
			t.Fatal("expected an intersection point")
		}
		want := geom.Vector3{X: 0.5, Y: 0.5, Z: 0}
		if !point.ApproxEqual(want) {
			t.Errorf("intersection = %v, want %v", point, want)
		}
	})

	t.Run("behind the line point", func(t *testing.T) {
		// The solution has a negative parameter; a full line still
		// reports it.
		l := geom.NewLine(geom.Vector3{Z: 3}, geom.Vector3{Z: 1})
		point, ok := l.IntersectPlane(plane)
		if !ok {
			t.Fatal("expected an intersection point")
		}
		if !point.ApproxEqual(geom.Vector3{}) {
			t.Errorf("intersection = %v, want origin", point)
		}
	})

	t.Run("parallel line", func(t *testing.T) {
		// Direction perpendicular to the normal, offset from the plane.
		l := geom.NewLine(geom.Vector3{Z: 5}, geom.Vector3{X: 1, Y: -2})
		if _, ok := l.IntersectPlane(plane); ok {
			t.Error("parallel line must not intersect, regardless of offset")
		}
	})

	t.Run("in-plane line", func(t *testing.T) {
		l := geom.NewLine(geom.Vector3{X: 0.25, Y: 0.25}, geom.Vector3{X: 1, Y: -1})
		if _, ok := l.IntersectPlane(plane); ok {
			t.Error("a line contained in the plane reports no intersection")
		}
	})

	t.Run("degenerate plane", func(t *testing.T) {
		// Zero normal makes every direction parallel.
		collinear := geom.NewPlane(
			geom.Vector3{},
			geom.Vector3{X: 1},
			geom.Vector3{X: 2},
		)
		l := geom.NewLine(geom.Vector3{Z: -1}, geom.Vector3{Z: 1})
		if _, ok := l.IntersectPlane(collinear); ok {
			t.Error("degenerate plane must yield no intersection")
		}
	})
}

func TestIntersects(t *testing.T) {
	diagonal := geom.NewLine(geom.Vector3{}, geom.Vector3{X: 1, Y: 1, Z: 1})

	tests := []struct {
		name string
		line geom.Line
		p    geom.Pyramid
		want bool
	}{
		{
			"diagonal line through solid",
			diagonal,
			geom.NewPyramid(
				geom.Vector3{},
				geom.Vector3{X: 1},
				geom.Vector3{Y: 1},
				geom.Vector3{X: 1, Y: 1, Z: 1},
			),
			true,
		},
		{
			"diagonal line missing solid",
			diagonal,
			geom.NewPyramid(
				geom.Vector3{},
				geom.Vector3{X: 1},
				geom.Vector3{Y: 1},
				geom.Vector3{Z: -1},
			),
			false,
		},
		{
			"line behind its point still hits",
			geom.NewLine(geom.Vector3{X: 5, Y: 5, Z: 5}, geom.Vector3{X: 1, Y: 1, Z: 1}),
			geom.NewPyramid(
				geom.Vector3{},
				geom.Vector3{X: 1},
				geom.Vector3{Y: 1},
				geom.Vector3{X: 1, Y: 1, Z: 1},
			),
			true,
		},
		{
			"axis line away from solid",
			geom.NewLine(geom.Vector3{X: 10, Y: 10, Z: 10}, geom.Vector3{Z: 1}),
			geom.NewPyramid(
				geom.Vector3{},
				geom.Vector3{X: 1},
				geom.Vector3{Y: 1},
				geom.Vector3{Z: 1},
			),
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Intersects(tt.line); got != tt.want {
				t.Errorf("Intersects = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIntersectsThroughSharedVertex(t *testing.T) {
	// The line passes exactly through the apex (1,1,1), a vertex
	// shared by three faces. Boundary inclusion of the ratio range
	// makes at least one face accept it.
	l := geom.NewLine(geom.Vector3{}, geom.Vector3{X: 1, Y: 1, Z: 1})
	p := geom.NewPyramid(
		geom.Vector3{},
		geom.Vector3{X: 1},
		geom.Vector3{Y: 1},
		geom.Vector3{X: 1, Y: 1, Z: 1},
	)
	if !p.Intersects(l) {
		t.Error("line through a shared vertex must intersect")
	}
}

func TestIntersectsDegeneratePyramid(t *testing.T) {
	// Three collinear vertices. The degenerate face has a zero
	// normal, so the solver skips it; the query reports false (or
	// true via a surviving non-degenerate face) without faulting.
	l := geom.NewLine(geom.Vector3{X: -3, Y: -3, Z: -3}, geom.Vector3{Z: 1})
	flat := geom.NewPyramid(
		geom.Vector3{},
		geom.Vector3{X: 1},
		geom.Vector3{X: 2},
		geom.Vector3{X: 3},
	)
	if flat.Intersects(l) {
		t.Error("fully collinear pyramid must not report an intersection")
	}
}

func TestIntersectsIdempotent(t *testing.T) {
	l := geom.NewLine(geom.Vector3{}, geom.Vector3{X: 1, Y: 1, Z: 1})
	p := geom.NewPyramid(
		geom.Vector3{},
		geom.Vector3{X: 1},
		geom.Vector3{Y: 1},
		geom.Vector3{X: 1, Y: 1, Z: 1},
	)
	first := p.Intersects(l)
	for i := 0; i < 10; i++ {
		if p.Intersects(l) != first {
			t.Fatal("repeated identical queries must return identical results")
		}
	}
}
