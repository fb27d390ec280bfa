package main

import (
	"testing"

	"github.com/Gadiguibou/creaform-technical-challenge/pkg/geom"
	"github.com/Gadiguibou/creaform-technical-challenge/pkg/kernel/facet"
)

func TestParseVec(t *testing.T) {
	tests := []struct {
		in      string
		want    geom.Vector3
		wantErr bool
	}{
		{"1,2,3", geom.Vector3{X: 1, Y: 2, Z: 3}, false},
		{" 0.5 , -2 , 1e-3 ", geom.Vector3{X: 0.5, Y: -2, Z: 0.001}, false},
		{"1,2", geom.Vector3{}, true},
		{"1,2,3,4", geom.Vector3{}, true},
		{"a,b,c", geom.Vector3{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseVec(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseVec(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && !got.ApproxEqual(tt.want) {
				t.Errorf("parseVec(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParsePyramid(t *testing.T) {
	p, err := parsePyramid("0,0,0;1,0,0;0,1,0;1,1,1")
	if err != nil {
		t.Fatalf("parsePyramid failed: %v", err)
	}
	want := geom.NewPyramid(
		geom.Vector3{},
		geom.Vector3{X: 1},
		geom.Vector3{Y: 1},
		geom.Vector3{X: 1, Y: 1, Z: 1},
	)
	for i := range want.Vertices {
		if !p.Vertices[i].ApproxEqual(want.Vertices[i]) {
			t.Errorf("vertex %d = %v, want %v", i, p.Vertices[i], want.Vertices[i])
		}
	}

	if _, err := parsePyramid("0,0,0;1,0,0;0,1,0"); err == nil {
		t.Error("expected an error for 3 vertices")
	}
	if _, err := parsePyramid("0,0,0;1,0,0;0,1,0;bad"); err == nil {
		t.Error("expected an error for a malformed vertex")
	}
}

// TestE2EIntersect exercises the same path as the intersect command:
// flag strings through the parsers into the predicate.
func TestE2EIntersect(t *testing.T) {
	app := NewApp(facet.New())

	point, err := parseVec("0,0,0")
	if err != nil {
		t.Fatal(err)
	}
	direction, err := parseVec("1,1,1")
	if err != nil {
		t.Fatal(err)
	}

	crossed, err := parsePyramid("0,0,0;1,0,0;0,1,0;1,1,1")
	if err != nil {
		t.Fatal(err)
	}
	missed, err := parsePyramid("0,0,0;1,0,0;0,1,0;0,0,-1")
	if err != nil {
		t.Fatal(err)
	}

	l := geom.NewLine(point, direction)
	if !app.Intersect(l, crossed) {
		t.Error("expected the diagonal line to cross the first pyramid")
	}
	if app.Intersect(l, missed) {
		t.Error("expected the diagonal line to miss the second pyramid")
	}
}

func TestE2EContains(t *testing.T) {
	app := NewApp(facet.New())

	p, err := parsePyramid("0,0,0;1,0,0;0,1,0;0,0,1")
	if err != nil {
		t.Fatal(err)
	}
	if !app.Contains(p, geom.Vector3{X: 0.25, Y: 0.25, Z: 0.25}) {
		t.Error("centroid should be inside")
	}
	if app.Contains(p, geom.Vector3{X: 2, Y: 2, Z: 2}) {
		t.Error("far point should be outside")
	}

	min, max := app.BoundingBox(p)
	if min != [3]float64{0, 0, 0} || max != [3]float64{1, 1, 1} {
		t.Errorf("bounding box = %v .. %v, want unit box", min, max)
	}
}

// TestE2EScript exercises the full pipeline: Lisp source through the
// engine to a query trace. This is the same path the eval command
// takes, without the file read.
func TestE2EScript(t *testing.T) {
	app := NewApp(facet.New())

	trace, evalErrs, err := app.RunScript(`
(def l (line :point (vec3 0 0 0) :direction (vec3 1 1 1)))
(intersects l (pyramid (vec3 0 0 0) (vec3 1 0 0) (vec3 0 1 0) (vec3 1 1 1)))
(intersects l (pyramid (vec3 0 0 0) (vec3 1 0 0) (vec3 0 1 0) (vec3 0 0 -1)))
`)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	if trace.QueryCount() != 2 {
		t.Fatalf("recorded %d queries, want 2", trace.QueryCount())
	}
	if !trace.Queries[0].Hit || trace.Queries[1].Hit {
		t.Errorf("query results = [%v %v], want [true false]", trace.Queries[0].Hit, trace.Queries[1].Hit)
	}
}
