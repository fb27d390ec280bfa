package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Gadiguibou/creaform-technical-challenge/pkg/engine"
	"github.com/Gadiguibou/creaform-technical-challenge/pkg/geom"
	"github.com/Gadiguibou/creaform-technical-challenge/pkg/kernel"
)

// App ties the scripting engine and the solid kernel together behind
// the CLI commands.
type App struct {
	engine *engine.Engine
	kernel kernel.Kernel
}

// NewApp creates an App using the given solid kernel backend.
func NewApp(k kernel.Kernel) *App {
	return &App{
		engine: engine.NewEngine(),
		kernel: k,
	}
}

// Intersect answers the boundary intersection query.
func (a *App) Intersect(l geom.Line, p geom.Pyramid) bool {
	return p.Intersects(l)
}

// Contains answers the solid containment query through the kernel.
func (a *App) Contains(p geom.Pyramid, point geom.Vector3) bool {
	return a.kernel.Contains(a.kernel.Tetrahedron(p), point)
}

// BoundingBox returns the solid's axis-aligned bounding box.
func (a *App) BoundingBox(p geom.Pyramid) (min, max [3]float64) {
	return a.kernel.Tetrahedron(p).BoundingBox()
}

// RunScript evaluates geometry-script source and returns the recorded
// queries.
func (a *App) RunScript(source string) (*engine.Trace, []engine.EvalError, error) {
	return a.engine.Evaluate(source)
}

// parseVec parses "x,y,z" into a vector.
func parseVec(s string) (geom.Vector3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return geom.Vector3{}, fmt.Errorf("expected 3 comma-separated coordinates, got %q", s)
	}
	var c [3]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return geom.Vector3{}, fmt.Errorf("coordinate %d of %q: %w", i+1, s, err)
		}
		c[i] = f
	}
	return geom.Vector3{X: c[0], Y: c[1], Z: c[2]}, nil
}

// parsePyramid parses "x,y,z;x,y,z;x,y,z;x,y,z" into a pyramid.
func parsePyramid(s string) (geom.Pyramid, error) {
	parts := strings.Split(s, ";")
	if len(parts) != 4 {
		return geom.Pyramid{}, fmt.Errorf("expected 4 semicolon-separated vertices, got %d", len(parts))
	}
	var vs [4]geom.Vector3
	for i, p := range parts {
		v, err := parseVec(p)
		if err != nil {
			return geom.Pyramid{}, fmt.Errorf("vertex %d: %w", i+1, err)
		}
		vs[i] = v
	}
	return geom.NewPyramid(vs[0], vs[1], vs[2], vs[3]), nil
}
